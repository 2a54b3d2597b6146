package models

import (
	"database/sql/driver"
	"fmt"
	"time"
)

// DayLayout is the wire and storage format of a calendar day.
const DayLayout = "2006-01-02"

// Day is a calendar day in UTC. Eligibility is always compared on Day values,
// never on timestamps.
type Day string

// DayOf returns the UTC calendar day containing t.
func DayOf(t time.Time) Day {
	return Day(t.UTC().Format(DayLayout))
}

// ParseDay validates s as a calendar day.
func ParseDay(s string) (Day, error) {
	t, err := time.Parse(DayLayout, s)
	if err != nil {
		return "", fmt.Errorf("invalid calendar day %q: %w", s, err)
	}
	return DayOf(t), nil
}

func (d Day) String() string { return string(d) }

// Value stores the day as a date literal.
func (d Day) Value() (driver.Value, error) {
	return string(d), nil
}

// Scan accepts the shapes a SQL driver hands back for a date column.
func (d *Day) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*d = ""
	case time.Time:
		*d = Day(v.Format(DayLayout))
	case []byte:
		return d.Scan(string(v))
	case string:
		if len(v) > len(DayLayout) {
			v = v[:len(DayLayout)]
		}
		parsed, err := ParseDay(v)
		if err != nil {
			return err
		}
		*d = parsed
	default:
		return fmt.Errorf("cannot scan %T into Day", src)
	}
	return nil
}

// DrawRecord is one row of the append-only draw ledger.
type DrawRecord struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"userId"`
	ItemID    int64     `json:"itemId"`
	PullDate  Day       `json:"pullDate"`
	CreatedAt time.Time `json:"createdAt"`
}

// DrawWithItem is a ledger row joined with the item it refers to.
type DrawWithItem struct {
	DrawRecord
	Item Item `json:"item"`
}

// CollectionTally is the running per-user, per-item count of draws.
type CollectionTally struct {
	UserID        int64     `json:"userId"`
	ItemID        int64     `json:"itemId"`
	Count         int64     `json:"count"`
	FirstPulledAt time.Time `json:"firstPulledAt"`
	LastPulledAt  time.Time `json:"lastPulledAt"`
}

// TallyWithItem is a tally joined with its item.
type TallyWithItem struct {
	CollectionTally
	Item Item `json:"item"`
}
