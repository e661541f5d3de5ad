package registry

import (
	"context"
	"sort"
	"sync"

	"github.com/stretchr/testify/mock"

	"github.com/osse101/CreadorsBot_Go/internal/domain"
)

type MockSubscriptions struct {
	mock.Mock
}

func (m *MockSubscriptions) ResolveIdentity(ctx context.Context, login string) (string, error) {
	args := m.Called(ctx, login)
	return args.String(0), args.Error(1)
}

func (m *MockSubscriptions) Subscribe(ctx context.Context, login string) error {
	args := m.Called(ctx, login)
	return args.Error(0)
}

func (m *MockSubscriptions) Unsubscribe(ctx context.Context, login string) error {
	args := m.Called(ctx, login)
	return args.Error(0)
}

func (m *MockSubscriptions) UnsubscribeAll(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

type storeKey struct {
	login string
	group string
}

// fakeStreamerRepo is an in-memory repository.Streamer with the same key rules as the table.
type fakeStreamerRepo struct {
	mu      sync.Mutex
	records map[storeKey]domain.StreamerRecord
	order   []storeKey

	addErr error
}

func newFakeStreamerRepo() *fakeStreamerRepo {
	return &fakeStreamerRepo{records: make(map[storeKey]domain.StreamerRecord)}
}

func (f *fakeStreamerRepo) AddStreamer(_ context.Context, rec domain.StreamerRecord) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.addErr != nil {
		return f.addErr
	}
	key := storeKey{rec.TwitchUsername, rec.DiscordChannelUID}
	if _, ok := f.records[key]; ok {
		return domain.ErrDuplicateKey
	}
	f.records[key] = rec
	f.order = append(f.order, key)
	return nil
}

func (f *fakeStreamerRepo) RemoveStreamer(_ context.Context, twitchUsername, groupID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	key := storeKey{twitchUsername, groupID}
	delete(f.records, key)
	for i, k := range f.order {
		if k == key {
			f.order = append(f.order[:i], f.order[i+1:]...)
			break
		}
	}
	return nil
}

func (f *fakeStreamerRepo) ClearAll(_ context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.records = make(map[storeKey]domain.StreamerRecord)
	f.order = nil
	return nil
}

func (f *fakeStreamerRepo) ListStreamersByDiscordUsers(_ context.Context, discordUsernames []string) ([]domain.StreamerPair, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	wanted := make(map[string]bool, len(discordUsernames))
	for _, name := range discordUsernames {
		wanted[name] = true
	}
	pairs := []domain.StreamerPair{}
	for _, key := range f.order {
		rec := f.records[key]
		if rec.DiscordUsername != nil && wanted[*rec.DiscordUsername] {
			pairs = append(pairs, pairOf(rec))
		}
	}
	return pairs, nil
}

func (f *fakeStreamerRepo) ListStreamersByGroup(_ context.Context, groupID string) ([]domain.StreamerPair, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	pairs := []domain.StreamerPair{}
	for _, key := range f.order {
		if key.group == groupID {
			pairs = append(pairs, pairOf(f.records[key]))
		}
	}
	return pairs, nil
}

func (f *fakeStreamerRepo) ListIncompleteForGroup(_ context.Context, groupID string) ([]domain.StreamerRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	records := []domain.StreamerRecord{}
	for _, key := range f.order {
		rec := f.records[key]
		if key.group == groupID && rec.IsIncomplete() {
			records = append(records, rec)
		}
	}
	return records, nil
}

func (f *fakeStreamerRepo) CountStreamers(_ context.Context) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.records), nil
}

func (f *fakeStreamerRepo) groups() []string {
	f.mu.Lock()
	defer f.mu.Unlock()

	seen := map[string]bool{}
	for key := range f.records {
		seen[key.group] = true
	}
	out := make([]string, 0, len(seen))
	for g := range seen {
		out = append(out, g)
	}
	sort.Strings(out)
	return out
}

func pairOf(rec domain.StreamerRecord) domain.StreamerPair {
	pair := domain.StreamerPair{TwitchUsername: rec.TwitchUsername}
	if rec.DiscordUsername != nil {
		pair.DiscordUsername = *rec.DiscordUsername
	}
	return pair
}
