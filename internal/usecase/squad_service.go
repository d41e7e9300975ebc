package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/sourcegraph/conc/pool"
	"go.opentelemetry.io/otel/attribute"

	"github.com/riskibarqy/football-manager/internal/domain/formation"
	"github.com/riskibarqy/football-manager/internal/domain/player"
	"github.com/riskibarqy/football-manager/internal/domain/squad"
	idgen "github.com/riskibarqy/football-manager/internal/platform/id"
	"github.com/riskibarqy/football-manager/internal/platform/logging"
)

const (
	squadNameMaxLength        = 64
	defaultLineupCheckWorkers = 4
	squadListConcurrency      = 4
)

// CreateSquadInput is the incoming payload for squad creation.
type CreateSquadInput struct {
	UserID    string
	Name      string
	Formation string
	Activate  bool
}

// PlayerSummary is the player view embedded in a squad slot. Stats is only
// populated when detailed stats are requested.
type PlayerSummary struct {
	ID      string
	Name    string
	Role    player.Role
	Rarity  player.Rarity
	Overall int
	Tier    int
	Stats   *player.Stats
}

type SlotView struct {
	SlotID   string
	Kind     formation.SlotKind
	PlayerID string
	Player   *PlayerSummary
}

type SquadDetail struct {
	Squad    squad.Squad
	Slots    []SlotView
	Counters squad.Counters
}

type SquadSummary struct {
	Squad    squad.Squad
	Counters squad.Counters
}

type SquadService struct {
	squadRepo    squad.Repository
	playerRepo   player.Repository
	idGen        idgen.Generator
	logger       *logging.Logger
	checkWorkers int
	now          func() time.Time
}

func NewSquadService(
	squadRepo squad.Repository,
	playerRepo player.Repository,
	idGen idgen.Generator,
	checkWorkers int,
	logger *logging.Logger,
) *SquadService {
	if logger == nil {
		logger = logging.Default()
	}
	if checkWorkers <= 0 {
		checkWorkers = defaultLineupCheckWorkers
	}

	return &SquadService{
		squadRepo:    squadRepo,
		playerRepo:   playerRepo,
		idGen:        idGen,
		logger:       logger,
		checkWorkers: checkWorkers,
		now:          time.Now,
	}
}

func (s *SquadService) CreateSquad(ctx context.Context, input CreateSquadInput) (SquadDetail, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SquadService.CreateSquad")
	defer span.End()

	input.UserID = strings.TrimSpace(input.UserID)
	input.Name = strings.TrimSpace(input.Name)

	if input.UserID == "" {
		return SquadDetail{}, fmt.Errorf("%w: user id is required", ErrInvalidInput)
	}
	if input.Name == "" {
		return SquadDetail{}, fmt.Errorf("%w: squad name is required", ErrInvalidInput)
	}
	if len([]rune(input.Name)) > squadNameMaxLength {
		return SquadDetail{}, fmt.Errorf("%w: squad name exceeds %d characters", ErrInvalidInput, squadNameMaxLength)
	}

	formationID, err := formation.ParseID(input.Formation)
	if err != nil {
		return SquadDetail{}, err
	}
	specs, err := formation.GenerateSlots(formationID)
	if err != nil {
		return SquadDetail{}, err
	}

	exists, err := s.squadRepo.ExistsByUserAndName(ctx, input.UserID, input.Name)
	if err != nil {
		return SquadDetail{}, fmt.Errorf("check squad name: %w", err)
	}
	if exists {
		return SquadDetail{}, fmt.Errorf("%w: name=%s", squad.ErrSquadNameExists, input.Name)
	}

	squadID, err := s.idGen.NewID()
	if err != nil {
		return SquadDetail{}, fmt.Errorf("generate squad id: %w", err)
	}

	now := s.now().UTC()
	item := squad.Squad{
		ID:        squadID,
		UserID:    input.UserID,
		Name:      input.Name,
		Formation: formationID,
		IsActive:  input.Activate,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := item.Validate(); err != nil {
		return SquadDetail{}, fmt.Errorf("validate squad: %w", err)
	}

	slots := squad.NewSlots(item.ID, specs, now)
	if err := s.squadRepo.Create(ctx, item, slots); err != nil {
		return SquadDetail{}, fmt.Errorf("create squad: %w", err)
	}

	s.logger.InfoContext(ctx, "squad created",
		"user_id", item.UserID,
		"squad_id", item.ID,
		"formation", string(item.Formation),
		"active", item.IsActive,
	)

	return buildSquadDetail(item, slots, nil, false), nil
}

func (s *SquadService) GetSquadByID(ctx context.Context, squadID, userID string, includeStats bool) (SquadDetail, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SquadService.GetSquadByID", squadAttrs(squadID, userID)...)
	defer span.End()

	squadID = strings.TrimSpace(squadID)
	userID = strings.TrimSpace(userID)
	if squadID == "" || userID == "" {
		return SquadDetail{}, fmt.Errorf("%w: squad id and user id are required", ErrInvalidInput)
	}

	item, err := s.loadOwnedSquad(ctx, squadID, userID)
	if err != nil {
		return SquadDetail{}, err
	}

	slots, err := s.squadRepo.ListSlots(ctx, item.ID)
	if err != nil {
		return SquadDetail{}, fmt.Errorf("list squad slots: %w", err)
	}

	playerIDs := make([]string, 0, len(slots))
	for _, slot := range slots {
		if slot.Filled() {
			playerIDs = append(playerIDs, slot.PlayerID)
		}
	}

	var players []player.Player
	if len(playerIDs) > 0 {
		players, err = s.playerRepo.GetByIDs(ctx, playerIDs)
		if err != nil {
			return SquadDetail{}, fmt.Errorf("get players by ids: %w", err)
		}
	}

	return buildSquadDetail(item, slots, players, includeStats), nil
}

func (s *SquadService) ListSquads(ctx context.Context, userID string) ([]SquadSummary, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SquadService.ListSquads", attribute.String("user.id", userID))
	defer span.End()

	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, fmt.Errorf("%w: user id is required", ErrInvalidInput)
	}

	items, err := s.squadRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list squads by user: %w", err)
	}
	if len(items) == 0 {
		return []SquadSummary{}, nil
	}

	type indexedSummary struct {
		index   int
		summary SquadSummary
	}

	p := pool.NewWithResults[indexedSummary]().
		WithContext(ctx).
		WithCancelOnError().
		WithMaxGoroutines(squadListConcurrency)
	for i, item := range items {
		p.Go(func(ctx context.Context) (indexedSummary, error) {
			slots, err := s.squadRepo.ListSlots(ctx, item.ID)
			if err != nil {
				return indexedSummary{}, fmt.Errorf("list slots squad=%s: %w", item.ID, err)
			}
			return indexedSummary{
				index:   i,
				summary: SquadSummary{Squad: item, Counters: squad.CountSlots(slots)},
			}, nil
		})
	}
	rows, err := p.Wait()
	if err != nil {
		return nil, err
	}

	out := make([]SquadSummary, len(items))
	for _, row := range rows {
		out[row.index] = row.summary
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Squad.IsActive != out[j].Squad.IsActive {
			return out[i].Squad.IsActive
		}
		return out[i].Squad.CreatedAt.Before(out[j].Squad.CreatedAt)
	})

	return out, nil
}

func (s *SquadService) ActivateSquad(ctx context.Context, squadID, userID string) (SquadSummary, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SquadService.ActivateSquad", squadAttrs(squadID, userID)...)
	defer span.End()

	squadID = strings.TrimSpace(squadID)
	userID = strings.TrimSpace(userID)
	if squadID == "" || userID == "" {
		return SquadSummary{}, fmt.Errorf("%w: squad id and user id are required", ErrInvalidInput)
	}

	item, err := s.loadOwnedSquad(ctx, squadID, userID)
	if err != nil {
		return SquadSummary{}, err
	}

	now := s.now().UTC()
	if !item.IsActive {
		if err := s.squadRepo.Activate(ctx, userID, squadID, now); err != nil {
			return SquadSummary{}, fmt.Errorf("activate squad: %w", err)
		}
		item.IsActive = true
		item.UpdatedAt = now

		s.logger.InfoContext(ctx, "squad activated", "user_id", userID, "squad_id", squadID)
	}

	slots, err := s.squadRepo.ListSlots(ctx, squadID)
	if err != nil {
		return SquadSummary{}, fmt.Errorf("list squad slots: %w", err)
	}

	return SquadSummary{Squad: item, Counters: squad.CountSlots(slots)}, nil
}

func (s *SquadService) DeleteSquad(ctx context.Context, squadID, userID string) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.SquadService.DeleteSquad", squadAttrs(squadID, userID)...)
	defer span.End()

	squadID = strings.TrimSpace(squadID)
	userID = strings.TrimSpace(userID)
	if squadID == "" || userID == "" {
		return fmt.Errorf("%w: squad id and user id are required", ErrInvalidInput)
	}

	if _, err := s.loadOwnedSquad(ctx, squadID, userID); err != nil {
		return err
	}
	if err := s.squadRepo.Delete(ctx, userID, squadID); err != nil {
		return fmt.Errorf("delete squad: %w", err)
	}

	s.logger.InfoContext(ctx, "squad deleted", "user_id", userID, "squad_id", squadID)
	return nil
}

func (s *SquadService) loadOwnedSquad(ctx context.Context, squadID, userID string) (squad.Squad, error) {
	item, exists, err := s.squadRepo.GetByID(ctx, squadID)
	if err != nil {
		return squad.Squad{}, fmt.Errorf("get squad by id: %w", err)
	}
	if !exists {
		return squad.Squad{}, fmt.Errorf("%w: squad=%s", squad.ErrSquadNotFound, squadID)
	}
	if item.UserID != userID {
		return squad.Squad{}, fmt.Errorf("%w: squad=%s", squad.ErrForbidden, squadID)
	}
	return item, nil
}

func buildSquadDetail(item squad.Squad, slots []squad.Slot, players []player.Player, includeStats bool) SquadDetail {
	playerByID := make(map[string]player.Player, len(players))
	for _, p := range players {
		playerByID[p.ID] = p
	}

	ordered := make([]squad.Slot, len(slots))
	copy(ordered, slots)
	sortSlots(ordered)

	views := make([]SlotView, 0, len(ordered))
	for _, slot := range ordered {
		view := SlotView{
			SlotID:   slot.SlotID,
			Kind:     slot.Kind,
			PlayerID: slot.PlayerID,
		}
		if p, ok := playerByID[slot.PlayerID]; ok && slot.Filled() {
			view.Player = summarizePlayer(p, includeStats)
		}
		views = append(views, view)
	}

	return SquadDetail{
		Squad:    item,
		Slots:    views,
		Counters: squad.CountSlots(ordered),
	}
}

func sortSlots(slots []squad.Slot) {
	sort.SliceStable(slots, func(i, j int) bool {
		if slots[i].Kind != slots[j].Kind {
			return slots[i].Kind == formation.SlotKindStarter
		}
		return formation.LessSlotID(slots[i].SlotID, slots[j].SlotID)
	})
}

func summarizePlayer(p player.Player, includeStats bool) *PlayerSummary {
	out := &PlayerSummary{
		ID:      p.ID,
		Name:    p.Name,
		Role:    p.Role,
		Rarity:  p.Rarity,
		Overall: p.Overall,
		Tier:    p.Tier,
	}
	if includeStats {
		stats := p.Stats
		out.Stats = &stats
	}
	return out
}
