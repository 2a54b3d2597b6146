package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/logger"

	"dailydraw/internal/gacha"
	"dailydraw/internal/models"
	"dailydraw/internal/storage"
)

var (
	ErrUserNotFound            = errors.New("user not found")
	ErrItemNotFound            = errors.New("item not found")
	ErrNoDraws                 = errors.New("no draws found for this user")
	ErrEmptyCatalog            = errors.New("catalog has no drawable items")
	ErrClientSelectionDisabled = errors.New("items are selected by the server")
)

// DrawState is the position of one draw request in the engine.
type DrawState int

const (
	StateCheckingEligibility DrawState = iota
	StateSelecting
	StatePersisting
	StateDone
	StateRejected
	StateFailed
)

func (s DrawState) String() string {
	switch s {
	case StateCheckingEligibility:
		return "checking_eligibility"
	case StateSelecting:
		return "selecting"
	case StatePersisting:
		return "persisting"
	case StateDone:
		return "done"
	case StateRejected:
		return "rejected"
	case StateFailed:
		return "failed"
	}
	return fmt.Sprintf("DrawState(%d)", int(s))
}

// RejectReason explains a business-rule rejection.
type RejectReason string

const ReasonAlreadyDrawnToday RejectReason = "already_drawn_today"

// DrawOutcome is the typed result of a draw that did not fail. Rejections are
// expected outcomes and are reported here, not as errors.
type DrawOutcome struct {
	State  DrawState
	Reason RejectReason
	Draw   *models.DrawWithItem
	Tally  *models.CollectionTally
}

// Rejected reports whether the draw was refused by a business rule.
func (o *DrawOutcome) Rejected() bool {
	return o.State == StateRejected
}

// DrawRequest asks for today's draw. ItemID is only honoured when client
// selection is enabled.
type DrawRequest struct {
	UserID int64
	ItemID *int64
}

// CatalogReader is the part of the catalog the engine reads.
type CatalogReader interface {
	ListAll(ctx context.Context) ([]models.Item, error)
	GetByID(ctx context.Context, id int64) (*models.Item, error)
}

// DrawService runs the daily draw. It keeps no per-user state between calls;
// the repository is the only source of truth.
type DrawService struct {
	repo                 storage.Repository
	catalog              CatalogReader
	weights              gacha.Weights
	rng                  gacha.RandomSource
	now                  func() time.Time
	allowClientSelection bool
}

// DrawOption customises a DrawService.
type DrawOption func(*DrawService)

// WithRandomSource replaces the crypto-backed source.
func WithRandomSource(rng gacha.RandomSource) DrawOption {
	return func(s *DrawService) { s.rng = rng }
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) DrawOption {
	return func(s *DrawService) { s.now = now }
}

// WithClientSelection lets callers name the item they drew.
func WithClientSelection(allowed bool) DrawOption {
	return func(s *DrawService) { s.allowClientSelection = allowed }
}

// NewDrawService creates the draw engine.
func NewDrawService(repo storage.Repository, catalog CatalogReader, weights gacha.Weights, opts ...DrawOption) *DrawService {
	s := &DrawService{
		repo:    repo,
		catalog: catalog,
		weights: weights,
		rng:     gacha.DefaultRNG(),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Today is the calendar day used for eligibility right now.
func (s *DrawService) Today() models.Day {
	return models.DayOf(s.now())
}

// Draw performs today's draw for req.UserID.
func (s *DrawService) Draw(ctx context.Context, req DrawRequest) (*DrawOutcome, error) {
	at := s.now().UTC()
	day := models.DayOf(at)

	if _, err := s.repo.GetUser(ctx, req.UserID); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, s.fail(StateCheckingEligibility, req.UserID, err)
	}

	// The check below only gives a fast, clean answer. The ledger's
	// uniqueness on (user, day) is what actually prevents a second draw.
	drawn, err := s.repo.HasDrawnOn(ctx, req.UserID, day)
	if err != nil {
		return nil, s.fail(StateCheckingEligibility, req.UserID, err)
	}
	if drawn {
		return s.reject(req.UserID, day), nil
	}

	item, err := s.selectItem(ctx, req)
	if err != nil {
		return nil, err
	}

	var (
		record *models.DrawRecord
		tally  *models.CollectionTally
	)
	err = s.repo.RunInTx(ctx, func(ctx context.Context, uow storage.UnitOfWork) error {
		var err error
		if record, err = uow.AppendDraw(ctx, req.UserID, item.ID, day, at); err != nil {
			return err
		}
		tally, err = uow.IncrementTally(ctx, req.UserID, item.ID, at)
		return err
	})
	switch {
	case errors.Is(err, storage.ErrDuplicateDraw):
		// lost the race against a concurrent draw for the same day
		return s.reject(req.UserID, day), nil
	case err != nil:
		return nil, s.fail(StatePersisting, req.UserID, err)
	}

	logger.Infof("User %d drew item %d (%s, %s) on %s", req.UserID, item.ID, item.Name, item.Rarity, day)
	return &DrawOutcome{
		State: StateDone,
		Draw:  &models.DrawWithItem{DrawRecord: *record, Item: *item},
		Tally: tally,
	}, nil
}

func (s *DrawService) selectItem(ctx context.Context, req DrawRequest) (*models.Item, error) {
	if req.ItemID != nil {
		if !s.allowClientSelection {
			return nil, ErrClientSelectionDisabled
		}
		item, err := s.catalog.GetByID(ctx, *req.ItemID)
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrItemNotFound
		}
		if err != nil {
			return nil, s.fail(StateSelecting, req.UserID, err)
		}
		return item, nil
	}

	items, err := s.catalog.ListAll(ctx)
	if err != nil {
		return nil, s.fail(StateSelecting, req.UserID, err)
	}
	item, err := gacha.Select(items, s.weights, s.rng)
	if errors.Is(err, gacha.ErrEmptyCatalog) || errors.Is(err, gacha.ErrNoWeightedTier) {
		logger.Errorf("Draw for user %d failed while %s: %v", req.UserID, StateSelecting, err)
		return nil, fmt.Errorf("%w: %v", ErrEmptyCatalog, err)
	}
	if err != nil {
		return nil, s.fail(StateSelecting, req.UserID, err)
	}
	return &item, nil
}

func (s *DrawService) reject(userID int64, day models.Day) *DrawOutcome {
	logger.Infof("User %d already drew on %s", userID, day)
	return &DrawOutcome{State: StateRejected, Reason: ReasonAlreadyDrawnToday}
}

func (s *DrawService) fail(state DrawState, userID int64, err error) error {
	logger.Errorf("Draw for user %d failed while %s: %v", userID, state, err)
	return fmt.Errorf("draw %s: %w", state, err)
}

// HasDrawnToday reports whether userID already has today's draw.
func (s *DrawService) HasDrawnToday(ctx context.Context, userID int64) (bool, error) {
	return s.repo.HasDrawnOn(ctx, userID, s.Today())
}

// History returns every draw of userID, newest first.
func (s *DrawService) History(ctx context.Context, userID int64) ([]models.DrawWithItem, error) {
	draws, err := s.repo.ListDrawsByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list draws: %w", err)
	}
	if draws == nil {
		draws = []models.DrawWithItem{}
	}
	return draws, nil
}

// Latest returns the most recent draw of userID.
func (s *DrawService) Latest(ctx context.Context, userID int64) (*models.DrawWithItem, error) {
	draw, err := s.repo.LatestDrawByUser(ctx, userID)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, ErrNoDraws
	}
	if err != nil {
		return nil, fmt.Errorf("latest draw: %w", err)
	}
	return draw, nil
}

// Collection returns the per-item tallies of userID, highest count first.
func (s *DrawService) Collection(ctx context.Context, userID int64) ([]models.TallyWithItem, error) {
	tallies, err := s.repo.ListTalliesByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list tallies: %w", err)
	}
	if tallies == nil {
		tallies = []models.TallyWithItem{}
	}
	return tallies, nil
}

// Odds returns the effective per-tier probability for the current catalog.
func (s *DrawService) Odds(ctx context.Context) (map[models.Rarity]float64, error) {
	items, err := s.catalog.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list catalog: %w", err)
	}
	return gacha.Odds(items, s.weights), nil
}
