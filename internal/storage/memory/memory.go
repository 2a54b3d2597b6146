// Package memory is the process-local Repository used for development and
// tests. All writes go through a single writer lock, and the (user, day)
// uniqueness of the ledger is checked under that lock like a unique index.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"dailydraw/internal/models"
	"dailydraw/internal/storage"
)

type drawKey struct {
	userID int64
	day    models.Day
}

type tallyKey struct {
	userID int64
	itemID int64
}

// Store keeps every table in maps guarded by one RWMutex.
type Store struct {
	mu sync.RWMutex

	items     map[int64]models.Item
	itemNames map[string]int64

	users      map[int64]models.User
	usernames  map[string]int64
	wallets    map[string]int64
	farcasters map[string]int64

	draws    []models.DrawRecord
	drawDays map[drawKey]int64
	tallies  map[tallyKey]models.CollectionTally

	nextItemID int64
	nextUserID int64
	nextDrawID int64
}

var _ storage.Repository = (*Store)(nil)

// New returns an empty store.
func New() *Store {
	return &Store{
		items:      make(map[int64]models.Item),
		itemNames:  make(map[string]int64),
		users:      make(map[int64]models.User),
		usernames:  make(map[string]int64),
		wallets:    make(map[string]int64),
		farcasters: make(map[string]int64),
		drawDays:   make(map[drawKey]int64),
		tallies:    make(map[tallyKey]models.CollectionTally),
	}
}

func (s *Store) Close() error { return nil }

// ----- catalog -----

func (s *Store) ListItems(ctx context.Context) ([]models.Item, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]models.Item, 0, len(s.items))
	for _, item := range s.items {
		items = append(items, item)
	}
	sort.Slice(items, func(i, j int) bool { return items[i].ID < items[j].ID })
	return items, nil
}

func (s *Store) GetItem(ctx context.Context, id int64) (*models.Item, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	item, ok := s.items[id]
	if !ok {
		return nil, fmt.Errorf("item %d: %w", id, storage.ErrNotFound)
	}
	return &item, nil
}

func (s *Store) SeedItems(ctx context.Context, items []models.Item) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	inserted := 0
	for _, item := range items {
		if _, exists := s.itemNames[item.Name]; exists {
			continue
		}
		s.insertItemLocked(item)
		inserted++
	}
	return inserted, nil
}

func (s *Store) AddItem(ctx context.Context, item models.Item) (*models.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.itemNames[item.Name]; exists {
		return nil, fmt.Errorf("item %q: %w", item.Name, storage.ErrConflict)
	}
	created := s.insertItemLocked(item)
	return &created, nil
}

func (s *Store) insertItemLocked(item models.Item) models.Item {
	s.nextItemID++
	item.ID = s.nextItemID
	s.items[item.ID] = item
	s.itemNames[item.Name] = item.ID
	return item
}

// ----- users -----

func (s *Store) CreateUser(ctx context.Context, user models.User) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.usernames[user.Username]; exists {
		return nil, fmt.Errorf("username %q: %w", user.Username, storage.ErrConflict)
	}
	if user.WalletAddress != nil {
		if _, exists := s.wallets[*user.WalletAddress]; exists {
			return nil, fmt.Errorf("wallet address: %w", storage.ErrConflict)
		}
	}
	if user.FarcasterAddress != nil {
		if _, exists := s.farcasters[*user.FarcasterAddress]; exists {
			return nil, fmt.Errorf("farcaster address: %w", storage.ErrConflict)
		}
	}

	s.nextUserID++
	user.ID = s.nextUserID
	s.users[user.ID] = user
	s.usernames[user.Username] = user.ID
	if user.WalletAddress != nil {
		s.wallets[*user.WalletAddress] = user.ID
	}
	if user.FarcasterAddress != nil {
		s.farcasters[*user.FarcasterAddress] = user.ID
	}
	return &user, nil
}

func (s *Store) GetUser(ctx context.Context, id int64) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.userLocked(id)
}

func (s *Store) userLocked(id int64) (*models.User, error) {
	user, ok := s.users[id]
	if !ok {
		return nil, fmt.Errorf("user %d: %w", id, storage.ErrNotFound)
	}
	return &user, nil
}

func (s *Store) lookupUser(index map[string]int64, key string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := index[key]
	if !ok {
		return nil, fmt.Errorf("user %q: %w", key, storage.ErrNotFound)
	}
	return s.userLocked(id)
}

func (s *Store) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	return s.lookupUser(s.usernames, username)
}

func (s *Store) GetUserByFarcasterAddress(ctx context.Context, address string) (*models.User, error) {
	return s.lookupUser(s.farcasters, address)
}

func (s *Store) GetUserByWalletAddress(ctx context.Context, address string) (*models.User, error) {
	return s.lookupUser(s.wallets, address)
}

func (s *Store) UpdateUserWallet(ctx context.Context, id int64, address string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.relinkLocked(id, address, s.wallets, func(u *models.User) **string { return &u.WalletAddress })
}

func (s *Store) UpdateUserFarcaster(ctx context.Context, id int64, address string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.relinkLocked(id, address, s.farcasters, func(u *models.User) **string { return &u.FarcasterAddress })
}

// relinkLocked moves an address index entry to user id.
func (s *Store) relinkLocked(id int64, address string, index map[string]int64, field func(*models.User) **string) (*models.User, error) {
	user, ok := s.users[id]
	if !ok {
		return nil, fmt.Errorf("user %d: %w", id, storage.ErrNotFound)
	}
	if owner, taken := index[address]; taken && owner != id {
		return nil, fmt.Errorf("address already linked: %w", storage.ErrConflict)
	}

	current := field(&user)
	if *current != nil {
		delete(index, **current)
	}
	linked := address
	*current = &linked
	index[address] = id
	s.users[id] = user
	return &user, nil
}

// ----- ledger and tallies -----

func (s *Store) HasDrawnOn(ctx context.Context, userID int64, day models.Day) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, drawn := s.drawDays[drawKey{userID: userID, day: day}]
	return drawn, nil
}

func (s *Store) ListDrawsByUser(ctx context.Context, userID int64) ([]models.DrawWithItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var draws []models.DrawWithItem
	for _, record := range s.draws {
		if record.UserID != userID {
			continue
		}
		draws = append(draws, models.DrawWithItem{DrawRecord: record, Item: s.items[record.ItemID]})
	}
	sort.SliceStable(draws, func(i, j int) bool {
		if !draws[i].CreatedAt.Equal(draws[j].CreatedAt) {
			return draws[i].CreatedAt.After(draws[j].CreatedAt)
		}
		return draws[i].ID > draws[j].ID
	})
	return draws, nil
}

func (s *Store) LatestDrawByUser(ctx context.Context, userID int64) (*models.DrawWithItem, error) {
	draws, err := s.ListDrawsByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(draws) == 0 {
		return nil, fmt.Errorf("draws for user %d: %w", userID, storage.ErrNotFound)
	}
	return &draws[0], nil
}

func (s *Store) ListTalliesByUser(ctx context.Context, userID int64) ([]models.TallyWithItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var tallies []models.TallyWithItem
	for key, tally := range s.tallies {
		if key.userID != userID {
			continue
		}
		tallies = append(tallies, models.TallyWithItem{CollectionTally: tally, Item: s.items[key.itemID]})
	}
	sort.Slice(tallies, func(i, j int) bool {
		if tallies[i].Count != tallies[j].Count {
			return tallies[i].Count > tallies[j].Count
		}
		return tallies[i].ItemID < tallies[j].ItemID
	})
	return tallies, nil
}

func (s *Store) GetTally(ctx context.Context, userID, itemID int64) (*models.CollectionTally, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	tally, ok := s.tallies[tallyKey{userID: userID, itemID: itemID}]
	if !ok {
		return nil, fmt.Errorf("tally %d/%d: %w", userID, itemID, storage.ErrNotFound)
	}
	return &tally, nil
}

// RunInTx holds the writer lock for the whole of fn and applies the staged
// writes only when fn succeeds. fn must only use the UnitOfWork it is given.
func (s *Store) RunInTx(ctx context.Context, fn func(ctx context.Context, uow storage.UnitOfWork) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx := &txn{
		store:   s,
		days:    make(map[drawKey]struct{}),
		tallies: make(map[tallyKey]models.CollectionTally),
		nextID:  s.nextDrawID,
	}
	if err := fn(ctx, tx); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	for _, record := range tx.draws {
		s.draws = append(s.draws, record)
		s.drawDays[drawKey{userID: record.UserID, day: record.PullDate}] = record.ID
	}
	for key, tally := range tx.tallies {
		s.tallies[key] = tally
	}
	s.nextDrawID = tx.nextID
	return nil
}

// txn stages writes on top of the committed state.
type txn struct {
	store   *Store
	draws   []models.DrawRecord
	days    map[drawKey]struct{}
	tallies map[tallyKey]models.CollectionTally
	nextID  int64
}

func (t *txn) AppendDraw(ctx context.Context, userID, itemID int64, day models.Day, at time.Time) (*models.DrawRecord, error) {
	if _, ok := t.store.items[itemID]; !ok {
		return nil, fmt.Errorf("item %d: %w", itemID, storage.ErrNotFound)
	}
	key := drawKey{userID: userID, day: day}
	if _, taken := t.store.drawDays[key]; taken {
		return nil, storage.ErrDuplicateDraw
	}
	if _, taken := t.days[key]; taken {
		return nil, storage.ErrDuplicateDraw
	}

	t.nextID++
	record := models.DrawRecord{
		ID:        t.nextID,
		UserID:    userID,
		ItemID:    itemID,
		PullDate:  day,
		CreatedAt: at,
	}
	t.draws = append(t.draws, record)
	t.days[key] = struct{}{}
	return &record, nil
}

func (t *txn) IncrementTally(ctx context.Context, userID, itemID int64, at time.Time) (*models.CollectionTally, error) {
	key := tallyKey{userID: userID, itemID: itemID}

	tally, staged := t.tallies[key]
	if !staged {
		tally, staged = t.store.tallies[key]
	}
	if !staged {
		tally = models.CollectionTally{
			UserID:        userID,
			ItemID:        itemID,
			FirstPulledAt: at,
		}
	}
	tally.Count++
	tally.LastPulledAt = at
	t.tallies[key] = tally
	return &tally, nil
}
