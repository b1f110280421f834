package service

import (
	"context"
	"sort"
	"time"

	"gorm.io/gorm"

	"github.com/aubrey-sherman/baby-bootcamp-be/internal/model"
)

// ── Mock UserRepository ──

type mockUserRepo struct {
	users map[string]*model.User
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: make(map[string]*model.User)}
}

func (m *mockUserRepo) Create(_ context.Context, user *model.User) error {
	if _, ok := m.users[user.Username]; ok {
		return gorm.ErrDuplicatedKey
	}
	for _, u := range m.users {
		if u.Email == user.Email {
			return gorm.ErrDuplicatedKey
		}
	}
	m.users[user.Username] = user
	return nil
}

func (m *mockUserRepo) GetByUsername(_ context.Context, username string) (*model.User, error) {
	if u, ok := m.users[username]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) GetByEmail(_ context.Context, email string) (*model.User, error) {
	for _, u := range m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) Delete(_ context.Context, username string) error {
	delete(m.users, username)
	return nil
}

// ── Mock FeedingBlockRepository ──

type mockBlockRepo struct {
	blocks map[string]*model.FeedingBlock
}

func newMockBlockRepo() *mockBlockRepo {
	return &mockBlockRepo{blocks: make(map[string]*model.FeedingBlock)}
}

func (m *mockBlockRepo) Create(_ context.Context, block *model.FeedingBlock) error {
	for _, b := range m.blocks {
		if b.Username == block.Username && b.Number == block.Number {
			return gorm.ErrDuplicatedKey
		}
	}
	cp := *block
	m.blocks[block.ID] = &cp
	return nil
}

func (m *mockBlockRepo) GetOwned(_ context.Context, id, username string) (*model.FeedingBlock, error) {
	if b, ok := m.blocks[id]; ok && b.Username == username {
		cp := *b
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockBlockRepo) ListByUsername(_ context.Context, username string) ([]model.FeedingBlock, error) {
	var result []model.FeedingBlock
	for _, b := range m.blocks {
		if b.Username == username {
			result = append(result, *b)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Number < result[j].Number })
	return result, nil
}

func (m *mockBlockRepo) MaxNumber(_ context.Context, username string) (int, error) {
	max := 0
	for _, b := range m.blocks {
		if b.Username == username && b.Number > max {
			max = b.Number
		}
	}
	return max, nil
}

func (m *mockBlockRepo) Update(_ context.Context, block *model.FeedingBlock) error {
	if _, ok := m.blocks[block.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	cp := *block
	m.blocks[block.ID] = &cp
	return nil
}

func (m *mockBlockRepo) Delete(_ context.Context, id string) error {
	if _, ok := m.blocks[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(m.blocks, id)
	return nil
}

func (m *mockBlockRepo) DecrementNumbersAbove(_ context.Context, username string, number int) error {
	for _, b := range m.blocks {
		if b.Username == username && b.Number > number {
			b.Number--
		}
	}
	return nil
}

// ── Mock FeedingEntryRepository ──

type mockEntryRepo struct {
	entries map[string]*model.FeedingEntry
}

func newMockEntryRepo() *mockEntryRepo {
	return &mockEntryRepo{entries: make(map[string]*model.FeedingEntry)}
}

func (m *mockEntryRepo) BatchCreate(_ context.Context, entries []model.FeedingEntry) error {
	for i := range entries {
		e := entries[i]
		for _, existing := range m.entries {
			if existing.BlockID == e.BlockID && existing.FeedingDay.Equal(e.FeedingDay) {
				return gorm.ErrDuplicatedKey
			}
		}
		cp := e
		m.entries[e.ID] = &cp
	}
	return nil
}

func (m *mockEntryRepo) GetByID(_ context.Context, id string) (*model.FeedingEntry, error) {
	if e, ok := m.entries[id]; ok {
		cp := *e
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockEntryRepo) sorted(blockID string) []model.FeedingEntry {
	var result []model.FeedingEntry
	for _, e := range m.entries {
		if e.BlockID == blockID {
			result = append(result, *e)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].FeedingTime.Before(result[j].FeedingTime)
	})
	return result
}

func (m *mockEntryRepo) ListByBlock(_ context.Context, blockID string) ([]model.FeedingEntry, error) {
	return m.sorted(blockID), nil
}

func (m *mockEntryRepo) ListInRange(_ context.Context, blockID string, start, end time.Time) ([]model.FeedingEntry, error) {
	var result []model.FeedingEntry
	for _, e := range m.sorted(blockID) {
		if !e.FeedingTime.Before(start) && e.FeedingTime.Before(end) {
			result = append(result, e)
		}
	}
	return result, nil
}

func (m *mockEntryRepo) ListFrom(_ context.Context, blockID string, t time.Time) ([]model.FeedingEntry, error) {
	var result []model.FeedingEntry
	for _, e := range m.sorted(blockID) {
		if !e.FeedingTime.Before(t) {
			result = append(result, e)
		}
	}
	return result, nil
}

func (m *mockEntryRepo) MostRecentBefore(_ context.Context, blockID string, t time.Time) (*model.FeedingEntry, error) {
	var found *model.FeedingEntry
	for _, e := range m.sorted(blockID) {
		if e.FeedingTime.Before(t) {
			cp := e
			found = &cp
		}
	}
	if found == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return found, nil
}

func (m *mockEntryRepo) Update(_ context.Context, entry *model.FeedingEntry) error {
	if _, ok := m.entries[entry.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	cp := *entry
	m.entries[entry.ID] = &cp
	return nil
}

func (m *mockEntryRepo) Delete(_ context.Context, id string) error {
	if _, ok := m.entries[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(m.entries, id)
	return nil
}

func (m *mockEntryRepo) DeleteByBlock(_ context.Context, blockID string) error {
	for id, e := range m.entries {
		if e.BlockID == blockID {
			delete(m.entries, id)
		}
	}
	return nil
}
