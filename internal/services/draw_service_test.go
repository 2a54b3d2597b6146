package services

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"go.uber.org/mock/gomock"

	"dailydraw/internal/catalog"
	"dailydraw/internal/gacha"
	"dailydraw/internal/models"
	"dailydraw/internal/storage"
	"dailydraw/internal/storage/memory"
	"dailydraw/internal/storage/mock"
)

// testClock is a settable clock shared by a test and the service under test.
type testClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *testClock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = t
}

type fixture struct {
	store   *memory.Store
	catalog *catalog.Service
	service *DrawService
	clock   *testClock
	user    *models.User
}

func newFixture(t *testing.T, opts ...DrawOption) *fixture {
	t.Helper()
	ctx := context.Background()

	store := memory.New()
	cat, err := catalog.NewService(store, 0)
	if err != nil {
		t.Fatal(err)
	}
	seed, err := catalog.LoadSeed("")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := cat.Seed(ctx, seed); err != nil {
		t.Fatal(err)
	}
	user, err := store.CreateUser(ctx, models.User{Username: "U1"})
	if err != nil {
		t.Fatal(err)
	}

	clock := &testClock{now: time.Date(2026, 10, 19, 9, 30, 0, 0, time.UTC)}
	opts = append([]DrawOption{WithClock(clock.Now), WithRandomSource(gacha.NewSeededRNG(7))}, opts...)
	return &fixture{
		store:   store,
		catalog: cat,
		service: NewDrawService(store, cat, gacha.DefaultWeights(), opts...),
		clock:   clock,
		user:    user,
	}
}

func TestDrawService_Draw(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	t.Run("Test first draw of the day", func(t *testing.T) {
		drawn, err := f.service.HasDrawnToday(ctx, f.user.ID)
		if err != nil || drawn {
			t.Fatalf("Expected no draw yet, but got drawn=%v err=%v", drawn, err)
		}

		outcome, err := f.service.Draw(ctx, DrawRequest{UserID: f.user.ID})
		if err != nil {
			t.Fatalf("Expected no error, but got %v", err)
		}
		if outcome.State != StateDone {
			t.Fatalf("Expected state done, but got %s", outcome.State)
		}
		if outcome.Draw.UserID != f.user.ID {
			t.Errorf("Expected user %d, but got %d", f.user.ID, outcome.Draw.UserID)
		}
		if outcome.Draw.PullDate != "2026-10-19" {
			t.Errorf("Expected pull date 2026-10-19, but got %s", outcome.Draw.PullDate)
		}
		if outcome.Draw.Item.ID != outcome.Draw.ItemID || outcome.Draw.Item.Name == "" {
			t.Errorf("Expected the draw to carry its item, got %+v", outcome.Draw.Item)
		}
		if outcome.Tally == nil || outcome.Tally.Count != 1 {
			t.Errorf("Expected a tally with count 1, got %+v", outcome.Tally)
		}

		drawn, err = f.service.HasDrawnToday(ctx, f.user.ID)
		if err != nil || !drawn {
			t.Fatalf("Expected drawn today after a draw, but got drawn=%v err=%v", drawn, err)
		}
	})

	t.Run("Test second draw on the same day is rejected", func(t *testing.T) {
		f.clock.Set(time.Date(2026, 10, 19, 23, 59, 0, 0, time.UTC))
		outcome, err := f.service.Draw(ctx, DrawRequest{UserID: f.user.ID})
		if err != nil {
			t.Fatalf("Expected a rejection, not an error, but got %v", err)
		}
		if !outcome.Rejected() || outcome.Reason != ReasonAlreadyDrawnToday {
			t.Fatalf("Expected rejection already_drawn_today, got %+v", outcome)
		}
	})

	t.Run("Test next UTC day is eligible again", func(t *testing.T) {
		f.clock.Set(time.Date(2026, 10, 20, 0, 0, 1, 0, time.UTC))
		outcome, err := f.service.Draw(ctx, DrawRequest{UserID: f.user.ID})
		if err != nil || outcome.State != StateDone {
			t.Fatalf("Expected a successful draw, got %+v err=%v", outcome, err)
		}
		history, _ := f.service.History(ctx, f.user.ID)
		if len(history) != 2 {
			t.Errorf("Expected 2 draws in history, but got %d", len(history))
		}
		latest, err := f.service.Latest(ctx, f.user.ID)
		if err != nil || latest.ID != outcome.Draw.ID {
			t.Errorf("Expected latest draw %d, got %+v err=%v", outcome.Draw.ID, latest, err)
		}
	})

	t.Run("Test unknown user", func(t *testing.T) {
		_, err := f.service.Draw(ctx, DrawRequest{UserID: 4242})
		if !errors.Is(err, ErrUserNotFound) {
			t.Fatalf("Expected ErrUserNotFound, but got %v", err)
		}
	})
}

func TestDrawService_ConcurrentDrawsSameDay(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	const racers = 8
	var wg sync.WaitGroup
	outcomes := make(chan *DrawOutcome, racers)
	for i := 0; i < racers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			outcome, err := f.service.Draw(ctx, DrawRequest{UserID: f.user.ID})
			if err != nil {
				t.Errorf("Expected no error, but got %v", err)
				return
			}
			outcomes <- outcome
		}()
	}
	wg.Wait()
	close(outcomes)

	done, rejected := 0, 0
	for outcome := range outcomes {
		switch outcome.State {
		case StateDone:
			done++
		case StateRejected:
			rejected++
		}
	}
	if done != 1 || rejected != racers-1 {
		t.Fatalf("Expected 1 done and %d rejected, but got %d done and %d rejected", racers-1, done, rejected)
	}
}

func TestDrawService_TallyMatchesLedger(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, WithClientSelection(true))
	itemID := int64(3)

	var times []time.Time
	for day := 0; day < 3; day++ {
		at := time.Date(2026, 10, 10+day, 12, 0, 0, 0, time.UTC)
		times = append(times, at)
		f.clock.Set(at)
		if _, err := f.service.Draw(ctx, DrawRequest{UserID: f.user.ID, ItemID: &itemID}); err != nil {
			t.Fatalf("Expected no error on day %d, but got %v", day, err)
		}
	}
	// a few random draws on later days mix other items into the ledger
	for day := 3; day < 10; day++ {
		f.clock.Set(time.Date(2026, 10, 10+day, 12, 0, 0, 0, time.UTC))
		if _, err := f.service.Draw(ctx, DrawRequest{UserID: f.user.ID}); err != nil {
			t.Fatalf("Expected no error on day %d, but got %v", day, err)
		}
	}

	history, _ := f.service.History(ctx, f.user.ID)
	perItem := make(map[int64]int64)
	for _, draw := range history {
		perItem[draw.ItemID]++
	}

	collection, _ := f.service.Collection(ctx, f.user.ID)
	for _, tally := range collection {
		if tally.Count != perItem[tally.ItemID] {
			t.Errorf("Item %d: expected tally %d to equal ledger count %d", tally.ItemID, tally.Count, perItem[tally.ItemID])
		}
		delete(perItem, tally.ItemID)
	}
	if len(perItem) != 0 {
		t.Errorf("Expected every drawn item to have a tally, missing %v", perItem)
	}

	tally, err := f.store.GetTally(ctx, f.user.ID, itemID)
	if err != nil {
		t.Fatal(err)
	}
	if tally.Count < 3 {
		t.Errorf("Expected at least 3 draws of item %d, but got %d", itemID, tally.Count)
	}
	if !tally.FirstPulledAt.Equal(times[0]) {
		t.Errorf("Expected first pull at %s, but got %s", times[0], tally.FirstPulledAt)
	}
}

func TestDrawService_ThreeDrawsOfOneItem(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, WithClientSelection(true))
	itemID := int64(1)

	first := time.Date(2026, 10, 1, 8, 0, 0, 0, time.UTC)
	third := time.Date(2026, 10, 3, 20, 0, 0, 0, time.UTC)
	for _, at := range []time.Time{first, first.AddDate(0, 0, 1), third} {
		f.clock.Set(at)
		if _, err := f.service.Draw(ctx, DrawRequest{UserID: f.user.ID, ItemID: &itemID}); err != nil {
			t.Fatal(err)
		}
	}

	tally, err := f.store.GetTally(ctx, f.user.ID, itemID)
	if err != nil {
		t.Fatal(err)
	}
	if tally.Count != 3 {
		t.Errorf("Expected count 3, but got %d", tally.Count)
	}
	if !tally.FirstPulledAt.Equal(first) || !tally.LastPulledAt.Equal(third) {
		t.Errorf("Expected first=%s last=%s, got first=%s last=%s", first, third, tally.FirstPulledAt, tally.LastPulledAt)
	}
}

func TestDrawService_ClientSelection(t *testing.T) {
	ctx := context.Background()
	itemID := int64(2)

	t.Run("Test disabled by default", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.service.Draw(ctx, DrawRequest{UserID: f.user.ID, ItemID: &itemID})
		if !errors.Is(err, ErrClientSelectionDisabled) {
			t.Fatalf("Expected ErrClientSelectionDisabled, but got %v", err)
		}
	})

	t.Run("Test unknown item", func(t *testing.T) {
		f := newFixture(t, WithClientSelection(true))
		missing := int64(999)
		_, err := f.service.Draw(ctx, DrawRequest{UserID: f.user.ID, ItemID: &missing})
		if !errors.Is(err, ErrItemNotFound) {
			t.Fatalf("Expected ErrItemNotFound, but got %v", err)
		}
	})
}

func TestDrawService_EmptyCatalog(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	cat, _ := catalog.NewService(store, 0)
	user, _ := store.CreateUser(ctx, models.User{Username: "U1"})
	service := NewDrawService(store, cat, gacha.DefaultWeights())

	_, err := service.Draw(ctx, DrawRequest{UserID: user.ID})
	if !errors.Is(err, ErrEmptyCatalog) {
		t.Fatalf("Expected ErrEmptyCatalog, but got %v", err)
	}
	drawn, _ := service.HasDrawnToday(ctx, user.ID)
	if drawn {
		t.Error("Expected a failed draw to leave no ledger row")
	}
}

func mockedService(t *testing.T) (*mock.MockRepository, *mock.MockUnitOfWork, *DrawService) {
	ctrl := gomock.NewController(t)
	repo := mock.NewMockRepository(ctrl)
	uow := mock.NewMockUnitOfWork(ctrl)

	items := []models.Item{{ID: 1, Name: "URUZ", Rarity: models.RarityCommon}}
	repo.EXPECT().ListItems(gomock.Any()).Return(items, nil).AnyTimes()
	repo.EXPECT().GetUser(gomock.Any(), int64(1)).Return(&models.User{ID: 1}, nil).AnyTimes()
	repo.EXPECT().HasDrawnOn(gomock.Any(), int64(1), gomock.Any()).Return(false, nil).AnyTimes()

	cat, err := catalog.NewService(repo, 0)
	if err != nil {
		t.Fatal(err)
	}
	return repo, uow, NewDrawService(repo, cat, gacha.DefaultWeights())
}

func runTxWith(uow storage.UnitOfWork) func(context.Context, func(context.Context, storage.UnitOfWork) error) error {
	return func(ctx context.Context, fn func(context.Context, storage.UnitOfWork) error) error {
		return fn(ctx, uow)
	}
}

func TestDrawService_LostRaceIsRejection(t *testing.T) {
	repo, uow, service := mockedService(t)

	repo.EXPECT().RunInTx(gomock.Any(), gomock.Any()).DoAndReturn(runTxWith(uow))
	uow.EXPECT().
		AppendDraw(gomock.Any(), int64(1), int64(1), gomock.Any(), gomock.Any()).
		Return(nil, storage.ErrDuplicateDraw)

	outcome, err := service.Draw(context.Background(), DrawRequest{UserID: 1})
	if err != nil {
		t.Fatalf("Expected no error, but got %v", err)
	}
	if !outcome.Rejected() {
		t.Fatalf("Expected a rejection, got %+v", outcome)
	}
}

func TestDrawService_StorageFailure(t *testing.T) {
	repo, uow, service := mockedService(t)
	boom := errors.New("connection reset by peer")

	repo.EXPECT().RunInTx(gomock.Any(), gomock.Any()).DoAndReturn(runTxWith(uow))
	uow.EXPECT().
		AppendDraw(gomock.Any(), int64(1), int64(1), gomock.Any(), gomock.Any()).
		Return(&models.DrawRecord{ID: 1, UserID: 1, ItemID: 1}, nil)
	uow.EXPECT().
		IncrementTally(gomock.Any(), int64(1), int64(1), gomock.Any()).
		Return(nil, boom)

	outcome, err := service.Draw(context.Background(), DrawRequest{UserID: 1})
	if !errors.Is(err, boom) {
		t.Fatalf("Expected the storage error to propagate, but got %v", err)
	}
	if outcome != nil {
		t.Errorf("Expected no outcome on failure, got %+v", outcome)
	}
}

func TestDrawService_Odds(t *testing.T) {
	f := newFixture(t)
	odds, err := f.service.Odds(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	var total float64
	for _, p := range odds {
		total += p
	}
	if total < 0.999 || total > 1.001 {
		t.Errorf("Expected odds to sum to 1, but got %f", total)
	}
}
