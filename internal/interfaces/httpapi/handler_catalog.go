package httpapi

import (
	"net/http"

	"github.com/riskibarqy/football-manager/internal/domain/formation"
)

func (h *Handler) ListFormations(w http.ResponseWriter, r *http.Request) {
	ctx, span := startHandlerSpan(r, "ListFormations")
	defer span.End()

	all := formation.All()
	out := make([]formationDTO, 0, len(all))
	for _, f := range all {
		item, err := toFormationDTO(f)
		if err != nil {
			h.fail(ctx, w, "render formation failed", err, "formation", f.ID)
			return
		}
		out = append(out, item)
	}
	writeSuccess(ctx, w, http.StatusOK, out)
}

func (h *Handler) ListInventory(w http.ResponseWriter, r *http.Request) {
	ctx, span := startHandlerSpan(r, "ListInventory")
	defer span.End()

	principal, err := requirePrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	includeStats, err := queryBool(r, "include_stats")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	entries, err := h.inventoryService.ListInventory(ctx, principal.UserID, includeStats)
	if err != nil {
		h.fail(ctx, w, "list inventory failed", err, "user_id", principal.UserID)
		return
	}

	out := make([]inventoryEntryDTO, 0, len(entries))
	for _, e := range entries {
		out = append(out, inventoryEntryDTO{
			Player:     toPlayerSummaryDTO(e.Player),
			AcquiredAt: e.AcquiredAt,
		})
	}
	writeSuccess(ctx, w, http.StatusOK, out)
}

func (h *Handler) GetPlayer(w http.ResponseWriter, r *http.Request) {
	ctx, span := startHandlerSpan(r, "GetPlayer")
	defer span.End()

	playerID, err := pathUUID(r, "playerID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	item, err := h.playerService.GetPlayer(ctx, playerID)
	if err != nil {
		h.fail(ctx, w, "get player failed", err, "player_id", playerID)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, toPlayerDTO(item))
}
