package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dailydraw/internal/models"
	"dailydraw/internal/storage"
)

func TestTranslate(t *testing.T) {
	assert.NoError(t, translate(nil, "noop"))
	assert.ErrorIs(t, translate(sql.ErrNoRows, "item 1"), storage.ErrNotFound)

	plain := errors.New("connection reset")
	err := translate(plain, "list items")
	assert.ErrorIs(t, err, plain)
	assert.False(t, errors.Is(err, storage.ErrConflict))
	assert.False(t, isUniqueViolation(plain))
}

func TestRowConversion(t *testing.T) {
	now := time.Date(2026, 10, 19, 8, 0, 0, 0, time.UTC)
	row := &drawRow{
		ID:        7,
		UserID:    1,
		ItemID:    3,
		PullDate:  "2026-10-19",
		CreatedAt: now,
		Item:      &itemRow{ID: 3, Name: "THURISAZ", Rarity: "rare"},
	}

	joined := row.toJoined()
	assert.Equal(t, int64(7), joined.ID)
	assert.Equal(t, models.Day("2026-10-19"), joined.PullDate)
	assert.Equal(t, models.RarityRare, joined.Item.Rarity)

	var missing *itemRow
	assert.Equal(t, models.Item{}, missing.toModel())
}

// openTestStore connects to the database named by DAILYDRAW_TEST_DSN and
// starts from empty tables.
func openTestStore(t *testing.T) *Store {
	t.Helper()
	dsn := os.Getenv("DAILYDRAW_TEST_DSN")
	if dsn == "" {
		t.Skip("DAILYDRAW_TEST_DSN not set")
	}

	ctx := context.Background()
	store, err := Open(ctx, Options{DSN: dsn, PoolSize: 8})
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	require.NoError(t, store.InitSchema(ctx))
	_, err = store.db.ExecContext(ctx, `TRUNCATE TABLE collection_tallies, draw_records, users, items RESTART IDENTITY CASCADE`)
	require.NoError(t, err)
	return store
}

func TestStoreLedgerIntegration(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	inserted, err := store.SeedItems(ctx, []models.Item{
		{Name: "FEHU", Symbol: "ᚠ", Rarity: models.RarityUncommon},
		{Name: "URUZ", Symbol: "ᚢ", Rarity: models.RarityCommon},
	})
	require.NoError(t, err)
	require.Equal(t, 2, inserted)

	again, err := store.SeedItems(ctx, []models.Item{{Name: "FEHU", Rarity: models.RarityUncommon}})
	require.NoError(t, err)
	assert.Equal(t, 0, again)

	user, err := store.CreateUser(ctx, models.User{Username: "testuser"})
	require.NoError(t, err)
	items, err := store.ListItems(ctx)
	require.NoError(t, err)

	day := models.Day("2026-10-19")
	at := time.Date(2026, 10, 19, 9, 0, 0, 0, time.UTC)

	// the unique index lets exactly one of the racing transactions commit
	var wg sync.WaitGroup
	results := make(chan error, 4)
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results <- store.RunInTx(ctx, func(ctx context.Context, uow storage.UnitOfWork) error {
				if _, err := uow.AppendDraw(ctx, user.ID, items[0].ID, day, at); err != nil {
					return err
				}
				_, err := uow.IncrementTally(ctx, user.ID, items[0].ID, at)
				return err
			})
		}()
	}
	wg.Wait()
	close(results)

	committed := 0
	for err := range results {
		if err == nil {
			committed++
			continue
		}
		assert.ErrorIs(t, err, storage.ErrDuplicateDraw, fmt.Sprintf("unexpected error %v", err))
	}
	assert.Equal(t, 1, committed)

	drawn, err := store.HasDrawnOn(ctx, user.ID, day)
	require.NoError(t, err)
	assert.True(t, drawn)

	tally, err := store.GetTally(ctx, user.ID, items[0].ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), tally.Count)

	latest, err := store.LatestDrawByUser(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, items[0].Name, latest.Item.Name)
}
