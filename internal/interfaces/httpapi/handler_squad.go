package httpapi

import (
	"net/http"

	"github.com/riskibarqy/football-manager/internal/domain/squad"
	"github.com/riskibarqy/football-manager/internal/usecase"
)

func (h *Handler) CreateSquad(w http.ResponseWriter, r *http.Request) {
	ctx, span := startHandlerSpan(r, "CreateSquad")
	defer span.End()

	principal, err := requirePrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var req createSquadRequest
	if err := h.decodeJSON(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	detail, err := h.squadService.CreateSquad(ctx, usecase.CreateSquadInput{
		UserID:    principal.UserID,
		Name:      req.Name,
		Formation: req.Formation,
		Activate:  req.Activate,
	})
	if err != nil {
		h.fail(ctx, w, "create squad failed", err, "user_id", principal.UserID)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, toSquadDetailDTO(detail))
}

func (h *Handler) ListSquads(w http.ResponseWriter, r *http.Request) {
	ctx, span := startHandlerSpan(r, "ListSquads")
	defer span.End()

	principal, err := requirePrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	items, err := h.squadService.ListSquads(ctx, principal.UserID)
	if err != nil {
		h.fail(ctx, w, "list squads failed", err, "user_id", principal.UserID)
		return
	}

	out := make([]squadDTO, 0, len(items))
	for _, item := range items {
		out = append(out, toSquadDTO(item.Squad, item.Counters))
	}
	writeSuccess(ctx, w, http.StatusOK, out)
}

func (h *Handler) GetSquad(w http.ResponseWriter, r *http.Request) {
	ctx, span := startHandlerSpan(r, "GetSquad")
	defer span.End()

	principal, err := requirePrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	squadID, err := pathUUID(r, "squadID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	includeStats, err := queryBool(r, "include_stats")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	detail, err := h.squadService.GetSquadByID(ctx, squadID, principal.UserID, includeStats)
	if err != nil {
		h.fail(ctx, w, "get squad failed", err, "squad_id", squadID, "user_id", principal.UserID)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, toSquadDetailDTO(detail))
}

func (h *Handler) ActivateSquad(w http.ResponseWriter, r *http.Request) {
	ctx, span := startHandlerSpan(r, "ActivateSquad")
	defer span.End()

	principal, err := requirePrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	squadID, err := pathUUID(r, "squadID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	summary, err := h.squadService.ActivateSquad(ctx, squadID, principal.UserID)
	if err != nil {
		h.fail(ctx, w, "activate squad failed", err, "squad_id", squadID, "user_id", principal.UserID)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, toSquadDTO(summary.Squad, summary.Counters))
}

func (h *Handler) DeleteSquad(w http.ResponseWriter, r *http.Request) {
	ctx, span := startHandlerSpan(r, "DeleteSquad")
	defer span.End()

	principal, err := requirePrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	squadID, err := pathUUID(r, "squadID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	if err := h.squadService.DeleteSquad(ctx, squadID, principal.UserID); err != nil {
		h.fail(ctx, w, "delete squad failed", err, "squad_id", squadID, "user_id", principal.UserID)
		return
	}

	writeNoContent(w)
}

func (h *Handler) UpdateLineup(w http.ResponseWriter, r *http.Request) {
	ctx, span := startHandlerSpan(r, "UpdateLineup")
	defer span.End()

	principal, err := requirePrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	squadID, err := pathUUID(r, "squadID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var req updateLineupRequest
	if err := h.decodeJSON(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	assignments := make([]squad.Assignment, 0, len(req.Assignments))
	for _, a := range req.Assignments {
		assignments = append(assignments, squad.Assignment{SlotID: a.SlotID, PlayerID: a.PlayerID})
	}

	detail, err := h.squadService.UpdateLineup(ctx, usecase.UpdateLineupInput{
		SquadID:     squadID,
		UserID:      principal.UserID,
		Assignments: assignments,
	}, h.inventoryService)
	if err != nil {
		h.fail(ctx, w, "update lineup failed", err, "squad_id", squadID, "user_id", principal.UserID)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, toSquadDetailDTO(detail))
}
