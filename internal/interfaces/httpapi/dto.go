package httpapi

import (
	"time"

	"github.com/riskibarqy/football-manager/internal/domain/formation"
	"github.com/riskibarqy/football-manager/internal/domain/player"
	"github.com/riskibarqy/football-manager/internal/domain/squad"
	"github.com/riskibarqy/football-manager/internal/usecase"
)

type createSquadRequest struct {
	Name      string `json:"name" validate:"required,max=64"`
	Formation string `json:"formation" validate:"required"`
	Activate  bool   `json:"activate"`
}

type lineupAssignmentRequest struct {
	SlotID   string  `json:"slot_id" validate:"required,slotid"`
	PlayerID *string `json:"player_id" validate:"omitempty,uuid"`
}

type updateLineupRequest struct {
	Assignments []lineupAssignmentRequest `json:"assignments" validate:"required,min=1,max=18,dive"`
}

type playerStatsDTO struct {
	Pace      int `json:"pace"`
	Shooting  int `json:"shooting"`
	Passing   int `json:"passing"`
	Dribbling int `json:"dribbling"`
	Defending int `json:"defending"`
	Physical  int `json:"physical"`
}

type playerSummaryDTO struct {
	ID      string          `json:"id"`
	Name    string          `json:"name"`
	Role    string          `json:"role"`
	Rarity  string          `json:"rarity"`
	Overall int             `json:"overall"`
	Tier    int             `json:"tier"`
	Stats   *playerStatsDTO `json:"stats,omitempty"`
}

type slotDTO struct {
	SlotID   string            `json:"slot_id"`
	Kind     string            `json:"kind"`
	PlayerID *string           `json:"player_id"`
	Player   *playerSummaryDTO `json:"player,omitempty"`
}

type countersDTO struct {
	Starters int `json:"starters"`
	Bench    int `json:"bench"`
	Filled   int `json:"filled"`
	Empty    int `json:"empty"`
}

type squadDTO struct {
	ID        string      `json:"id"`
	Name      string      `json:"name"`
	Formation string      `json:"formation"`
	IsActive  bool        `json:"is_active"`
	Counters  countersDTO `json:"counters"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
}

type squadDetailDTO struct {
	squadDTO
	Slots []slotDTO `json:"slots"`
}

type formationDTO struct {
	ID       string         `json:"id"`
	Starters map[string]int `json:"starters"`
	Bench    int            `json:"bench"`
	Slots    []slotDTO      `json:"slots"`
}

type inventoryEntryDTO struct {
	Player     playerSummaryDTO `json:"player"`
	AcquiredAt time.Time        `json:"acquired_at"`
}

func toSquadDTO(item squad.Squad, counters squad.Counters) squadDTO {
	return squadDTO{
		ID:        item.ID,
		Name:      item.Name,
		Formation: string(item.Formation),
		IsActive:  item.IsActive,
		Counters: countersDTO{
			Starters: counters.Starters,
			Bench:    counters.Bench,
			Filled:   counters.Filled,
			Empty:    counters.Empty,
		},
		CreatedAt: item.CreatedAt,
		UpdatedAt: item.UpdatedAt,
	}
}

func toSquadDetailDTO(detail usecase.SquadDetail) squadDetailDTO {
	slots := make([]slotDTO, 0, len(detail.Slots))
	for _, slot := range detail.Slots {
		out := slotDTO{SlotID: slot.SlotID, Kind: string(slot.Kind)}
		if slot.PlayerID != "" {
			id := slot.PlayerID
			out.PlayerID = &id
		}
		if slot.Player != nil {
			summary := toPlayerSummaryDTO(*slot.Player)
			out.Player = &summary
		}
		slots = append(slots, out)
	}
	return squadDetailDTO{
		squadDTO: toSquadDTO(detail.Squad, detail.Counters),
		Slots:    slots,
	}
}

func toPlayerSummaryDTO(p usecase.PlayerSummary) playerSummaryDTO {
	out := playerSummaryDTO{
		ID:      p.ID,
		Name:    p.Name,
		Role:    string(p.Role),
		Rarity:  string(p.Rarity),
		Overall: p.Overall,
		Tier:    p.Tier,
	}
	if p.Stats != nil {
		stats := toPlayerStatsDTO(*p.Stats)
		out.Stats = &stats
	}
	return out
}

func toPlayerDTO(p player.Player) playerSummaryDTO {
	stats := toPlayerStatsDTO(p.Stats)
	return playerSummaryDTO{
		ID:      p.ID,
		Name:    p.Name,
		Role:    string(p.Role),
		Rarity:  string(p.Rarity),
		Overall: p.Overall,
		Tier:    p.Tier,
		Stats:   &stats,
	}
}

func toPlayerStatsDTO(s player.Stats) playerStatsDTO {
	return playerStatsDTO{
		Pace:      s.Pace,
		Shooting:  s.Shooting,
		Passing:   s.Passing,
		Dribbling: s.Dribbling,
		Defending: s.Defending,
		Physical:  s.Physical,
	}
}

func toFormationDTO(f formation.Formation) (formationDTO, error) {
	specs, err := formation.GenerateSlots(f.ID)
	if err != nil {
		return formationDTO{}, err
	}
	starters := make(map[string]int, len(f.Starters))
	for role, n := range f.Starters {
		starters[string(role)] = n
	}
	slots := make([]slotDTO, 0, len(specs))
	for _, spec := range specs {
		slots = append(slots, slotDTO{SlotID: spec.ID, Kind: string(spec.Kind)})
	}
	return formationDTO{
		ID:       string(f.ID),
		Starters: starters,
		Bench:    f.Bench,
		Slots:    slots,
	}, nil
}
