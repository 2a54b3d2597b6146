package postgres

import (
	"time"

	"github.com/uptrace/bun"

	"dailydraw/internal/models"
)

type itemRow struct {
	bun.BaseModel `bun:"table:items,alias:it"`

	ID             int64  `bun:"id,pk,autoincrement"`
	Name           string `bun:"name,notnull,unique"`
	Symbol         string `bun:"symbol,notnull"`
	Meaning        string `bun:"meaning,notnull"`
	Interpretation string `bun:"interpretation,notnull"`
	Guidance       string `bun:"guidance,notnull"`
	Rarity         string `bun:"rarity,notnull,default:'common'"`
}

type userRow struct {
	bun.BaseModel `bun:"table:users,alias:u"`

	ID               int64   `bun:"id,pk,autoincrement"`
	Username         string  `bun:"username,notnull,unique"`
	FarcasterAddress *string `bun:"farcaster_address,unique"`
	WalletAddress    *string `bun:"wallet_address,unique"`
}

type drawRow struct {
	bun.BaseModel `bun:"table:draw_records,alias:dr"`

	ID        int64      `bun:"id,pk,autoincrement"`
	UserID    int64      `bun:"user_id,notnull,unique:draw_records_user_day"`
	ItemID    int64      `bun:"item_id,notnull"`
	PullDate  models.Day `bun:"pull_date,type:date,notnull,unique:draw_records_user_day"`
	CreatedAt time.Time  `bun:"created_at,type:timestamptz,notnull,default:current_timestamp"`

	Item *itemRow `bun:"rel:belongs-to,join:item_id=id"`
}

type tallyRow struct {
	bun.BaseModel `bun:"table:collection_tallies,alias:ct"`

	UserID        int64     `bun:"user_id,pk"`
	ItemID        int64     `bun:"item_id,pk"`
	Count         int64     `bun:"count,notnull"`
	FirstPulledAt time.Time `bun:"first_pulled_at,type:timestamptz,notnull"`
	LastPulledAt  time.Time `bun:"last_pulled_at,type:timestamptz,notnull"`

	Item *itemRow `bun:"rel:belongs-to,join:item_id=id"`
}

func newItemRow(item models.Item) *itemRow {
	return &itemRow{
		Name:           item.Name,
		Symbol:         item.Symbol,
		Meaning:        item.Meaning,
		Interpretation: item.Interpretation,
		Guidance:       item.Guidance,
		Rarity:         string(item.Rarity),
	}
}

func (r *itemRow) toModel() models.Item {
	if r == nil {
		return models.Item{}
	}
	return models.Item{
		ID:             r.ID,
		Name:           r.Name,
		Symbol:         r.Symbol,
		Meaning:        r.Meaning,
		Interpretation: r.Interpretation,
		Guidance:       r.Guidance,
		Rarity:         models.Rarity(r.Rarity),
	}
}

func (r *userRow) toModel() *models.User {
	return &models.User{
		ID:               r.ID,
		Username:         r.Username,
		FarcasterAddress: r.FarcasterAddress,
		WalletAddress:    r.WalletAddress,
	}
}

func (r *drawRow) toModel() *models.DrawRecord {
	return &models.DrawRecord{
		ID:        r.ID,
		UserID:    r.UserID,
		ItemID:    r.ItemID,
		PullDate:  r.PullDate,
		CreatedAt: r.CreatedAt,
	}
}

func (r *drawRow) toJoined() models.DrawWithItem {
	return models.DrawWithItem{DrawRecord: *r.toModel(), Item: r.Item.toModel()}
}

func (r *tallyRow) toModel() *models.CollectionTally {
	return &models.CollectionTally{
		UserID:        r.UserID,
		ItemID:        r.ItemID,
		Count:         r.Count,
		FirstPulledAt: r.FirstPulledAt,
		LastPulledAt:  r.LastPulledAt,
	}
}
