package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/uptrace/bun"

	"dailydraw/internal/models"
	"dailydraw/internal/storage"
)

func (s *Store) HasDrawnOn(ctx context.Context, userID int64, day models.Day) (bool, error) {
	exists, err := s.db.NewSelect().
		Model((*drawRow)(nil)).
		Where("dr.user_id = ? AND dr.pull_date = ?", userID, day).
		Exists(ctx)
	if err != nil {
		return false, translate(err, "check draw")
	}
	return exists, nil
}

func (s *Store) ListDrawsByUser(ctx context.Context, userID int64) ([]models.DrawWithItem, error) {
	var rows []drawRow
	err := s.db.NewSelect().
		Model(&rows).
		Relation("Item").
		Where("dr.user_id = ?", userID).
		OrderExpr("dr.created_at DESC, dr.id DESC").
		Scan(ctx)
	if err != nil {
		return nil, translate(err, "list draws")
	}

	draws := make([]models.DrawWithItem, 0, len(rows))
	for i := range rows {
		draws = append(draws, rows[i].toJoined())
	}
	return draws, nil
}

func (s *Store) LatestDrawByUser(ctx context.Context, userID int64) (*models.DrawWithItem, error) {
	row := new(drawRow)
	err := s.db.NewSelect().
		Model(row).
		Relation("Item").
		Where("dr.user_id = ?", userID).
		OrderExpr("dr.created_at DESC, dr.id DESC").
		Limit(1).
		Scan(ctx)
	if err != nil {
		return nil, translate(err, fmt.Sprintf("latest draw for user %d", userID))
	}
	joined := row.toJoined()
	return &joined, nil
}

func (s *Store) ListTalliesByUser(ctx context.Context, userID int64) ([]models.TallyWithItem, error) {
	var rows []tallyRow
	err := s.db.NewSelect().
		Model(&rows).
		Relation("Item").
		Where("ct.user_id = ?", userID).
		OrderExpr("ct.count DESC, ct.item_id ASC").
		Scan(ctx)
	if err != nil {
		return nil, translate(err, "list tallies")
	}

	tallies := make([]models.TallyWithItem, 0, len(rows))
	for i := range rows {
		tallies = append(tallies, models.TallyWithItem{
			CollectionTally: *rows[i].toModel(),
			Item:            rows[i].Item.toModel(),
		})
	}
	return tallies, nil
}

func (s *Store) GetTally(ctx context.Context, userID, itemID int64) (*models.CollectionTally, error) {
	row := new(tallyRow)
	err := s.db.NewSelect().
		Model(row).
		Where("ct.user_id = ? AND ct.item_id = ?", userID, itemID).
		Scan(ctx)
	if err != nil {
		return nil, translate(err, fmt.Sprintf("tally %d/%d", userID, itemID))
	}
	return row.toModel(), nil
}

// unitOfWork writes through a single bun.Tx.
type unitOfWork struct {
	tx bun.Tx
}

func (u *unitOfWork) AppendDraw(ctx context.Context, userID, itemID int64, day models.Day, at time.Time) (*models.DrawRecord, error) {
	row := &drawRow{
		UserID:    userID,
		ItemID:    itemID,
		PullDate:  day,
		CreatedAt: at,
	}
	if _, err := u.tx.NewInsert().Model(row).Returning("*").Exec(ctx); err != nil {
		if isUniqueViolation(err) {
			return nil, storage.ErrDuplicateDraw
		}
		return nil, fmt.Errorf("append draw: %w", err)
	}
	return row.toModel(), nil
}

// IncrementTally upserts so concurrent draws of the same item by the same
// user never lose an increment.
func (u *unitOfWork) IncrementTally(ctx context.Context, userID, itemID int64, at time.Time) (*models.CollectionTally, error) {
	row := &tallyRow{
		UserID:        userID,
		ItemID:        itemID,
		Count:         1,
		FirstPulledAt: at,
		LastPulledAt:  at,
	}
	_, err := u.tx.NewInsert().
		Model(row).
		On("CONFLICT (user_id, item_id) DO UPDATE").
		Set("count = ?TableAlias.count + 1").
		Set("last_pulled_at = EXCLUDED.last_pulled_at").
		Returning("*").
		Exec(ctx)
	if err != nil {
		return nil, fmt.Errorf("increment tally: %w", err)
	}
	return row.toModel(), nil
}
