package postgres

import (
	"context"
	"fmt"

	"dailydraw/internal/models"
)

func (s *Store) ListItems(ctx context.Context) ([]models.Item, error) {
	var rows []itemRow
	if err := s.db.NewSelect().Model(&rows).OrderExpr("it.id ASC").Scan(ctx); err != nil {
		return nil, translate(err, "list items")
	}

	items := make([]models.Item, 0, len(rows))
	for i := range rows {
		items = append(items, rows[i].toModel())
	}
	return items, nil
}

func (s *Store) GetItem(ctx context.Context, id int64) (*models.Item, error) {
	row := new(itemRow)
	if err := s.db.NewSelect().Model(row).Where("it.id = ?", id).Scan(ctx); err != nil {
		return nil, translate(err, fmt.Sprintf("item %d", id))
	}
	item := row.toModel()
	return &item, nil
}

// SeedItems relies on the unique item name, so concurrent seeders on several
// instances cannot insert duplicates.
func (s *Store) SeedItems(ctx context.Context, items []models.Item) (int, error) {
	if len(items) == 0 {
		return 0, nil
	}

	rows := make([]*itemRow, 0, len(items))
	for _, item := range items {
		rows = append(rows, newItemRow(item))
	}

	res, err := s.db.NewInsert().
		Model(&rows).
		On("CONFLICT (name) DO NOTHING").
		Exec(ctx)
	if err != nil {
		return 0, translate(err, "seed items")
	}
	inserted, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("seed items: %w", err)
	}
	return int(inserted), nil
}

func (s *Store) AddItem(ctx context.Context, item models.Item) (*models.Item, error) {
	row := newItemRow(item)
	if _, err := s.db.NewInsert().Model(row).Returning("*").Exec(ctx); err != nil {
		return nil, translate(err, fmt.Sprintf("item %q", item.Name))
	}
	created := row.toModel()
	return &created, nil
}
