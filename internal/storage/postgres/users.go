package postgres

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"

	"dailydraw/internal/models"
	"dailydraw/internal/storage"
)

func (s *Store) CreateUser(ctx context.Context, user models.User) (*models.User, error) {
	row := &userRow{
		Username:         user.Username,
		FarcasterAddress: user.FarcasterAddress,
		WalletAddress:    user.WalletAddress,
	}
	if _, err := s.db.NewInsert().Model(row).Returning("*").Exec(ctx); err != nil {
		return nil, translate(err, fmt.Sprintf("user %q", user.Username))
	}
	return row.toModel(), nil
}

func (s *Store) GetUser(ctx context.Context, id int64) (*models.User, error) {
	return s.findUser(ctx, "u.id = ?", id)
}

func (s *Store) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	return s.findUser(ctx, "u.username = ?", username)
}

func (s *Store) GetUserByFarcasterAddress(ctx context.Context, address string) (*models.User, error) {
	return s.findUser(ctx, "u.farcaster_address = ?", address)
}

func (s *Store) GetUserByWalletAddress(ctx context.Context, address string) (*models.User, error) {
	return s.findUser(ctx, "u.wallet_address = ?", address)
}

func (s *Store) findUser(ctx context.Context, where string, arg any) (*models.User, error) {
	row := new(userRow)
	if err := s.db.NewSelect().Model(row).Where(where, arg).Scan(ctx); err != nil {
		return nil, translate(err, fmt.Sprintf("user %v", arg))
	}
	return row.toModel(), nil
}

func (s *Store) UpdateUserWallet(ctx context.Context, id int64, address string) (*models.User, error) {
	return s.setUserColumn(ctx, id, "wallet_address", address)
}

func (s *Store) UpdateUserFarcaster(ctx context.Context, id int64, address string) (*models.User, error) {
	return s.setUserColumn(ctx, id, "farcaster_address", address)
}

func (s *Store) setUserColumn(ctx context.Context, id int64, column, value string) (*models.User, error) {
	row := new(userRow)
	res, err := s.db.NewUpdate().
		Model(row).
		Set("? = ?", bun.Ident(column), value).
		Where("u.id = ?", id).
		Returning("*").
		Exec(ctx)
	if err != nil {
		return nil, translate(err, fmt.Sprintf("user %d %s", id, column))
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		return nil, fmt.Errorf("user %d: %w", id, storage.ErrNotFound)
	}
	return row.toModel(), nil
}
