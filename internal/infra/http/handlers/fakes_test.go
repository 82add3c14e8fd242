package handlers

import (
	"context"
	"encoding/json"
	"sort"
	"sync"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/xavierca1/landing-leads/internal/entity"
)

// memLeadRepo keeps leads in memory with the same semantics as the SQL repository.
type memLeadRepo struct {
	mu     sync.Mutex
	leads  []entity.Lead
	nextID int64
	clock  time.Time
}

func newMemLeadRepo() *memLeadRepo {
	return &memLeadRepo{clock: time.Now().Add(-time.Hour)}
}

func (m *memLeadRepo) Create(_ context.Context, lead *entity.Lead) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, l := range m.leads {
		if l.Email == lead.Email {
			return entity.ErrEmailAlreadyExists
		}
	}

	m.nextID++
	m.clock = m.clock.Add(time.Second)
	lead.ID = m.nextID
	lead.CreatedAt = m.clock
	m.leads = append(m.leads, *lead)
	return nil
}

func (m *memLeadRepo) ExistsByEmail(_ context.Context, email string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, l := range m.leads {
		if l.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (m *memLeadRepo) find(id int64) *entity.Lead {
	for i := range m.leads {
		if m.leads[i].ID == id {
			return &m.leads[i]
		}
	}
	return nil
}

func (m *memLeadRepo) FindByID(_ context.Context, id int64) (*entity.Lead, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	l := m.find(id)
	if l == nil {
		return nil, entity.ErrLeadNotFound
	}
	cp := *l
	return &cp, nil
}

func (m *memLeadRepo) sorted() []entity.Lead {
	out := make([]entity.Lead, len(m.leads))
	copy(out, m.leads)
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}

func (m *memLeadRepo) FindAll(_ context.Context, limit, offset int) ([]entity.Lead, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	all := m.sorted()
	if offset >= len(all) {
		return []entity.Lead{}, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], nil
}

func (m *memLeadRepo) FindByEmail(_ context.Context, email string) ([]entity.Lead, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := []entity.Lead{}
	for _, l := range m.sorted() {
		if l.Email == email {
			out = append(out, l)
		}
	}
	return out, nil
}

func (m *memLeadRepo) MarkProcessed(_ context.Context, id int64, notes string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if l := m.find(id); l != nil {
		now := time.Now()
		l.IsProcessed = true
		l.ProcessedAt = &now
		l.Notes = &notes
	}
	return nil
}

func (m *memLeadRepo) MarkUnprocessed(_ context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if l := m.find(id); l != nil {
		l.IsProcessed = false
		l.ProcessedAt = nil
	}
	return nil
}

func (m *memLeadRepo) Update(_ context.Context, id int64, fields map[string]any) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	l := m.find(id)
	if l == nil {
		return nil
	}
	for k, v := range fields {
		if !entity.IsUpdatableLeadField(k) {
			return entity.ErrInvalidUpdateField
		}
		s, _ := v.(string)
		switch k {
		case "name":
			l.Name = s
		case "email":
			l.Email = s
		case "notes":
			if v == nil {
				l.Notes = nil
			} else {
				l.Notes = &s
			}
		}
	}
	return nil
}

func (m *memLeadRepo) Delete(_ context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i, l := range m.leads {
		if l.ID == id {
			m.leads = append(m.leads[:i], m.leads[i+1:]...)
			break
		}
	}
	return nil
}

func (m *memLeadRepo) Stats(_ context.Context) (*entity.LeadStats, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	stats := &entity.LeadStats{ByPage: []entity.LeadPageCount{}}
	pages := map[string]int{}
	weekAgo := time.Now().AddDate(0, 0, -7)
	total := 0

	for _, l := range m.leads {
		stats.Total++
		if l.IsProcessed {
			stats.Processed++
		} else {
			stats.Unprocessed++
		}
		if l.CreatedAt.After(weekAgo) {
			stats.Recent++
		}
		total += l.TimeOnPage
		pages[l.PageURL]++
	}
	if stats.Total > 0 {
		stats.AvgTime = float64(total) / float64(stats.Total)
	}
	for page, count := range pages {
		stats.ByPage = append(stats.ByPage, entity.LeadPageCount{PageURL: page, Count: count})
	}
	sort.Slice(stats.ByPage, func(i, j int) bool { return stats.ByPage[i].PageURL < stats.ByPage[j].PageURL })
	return stats, nil
}

func (m *memLeadRepo) countByEmail(email string) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	n := 0
	for _, l := range m.leads {
		if l.Email == email {
			n++
		}
	}
	return n
}

type memUserRepo struct {
	mu     sync.Mutex
	users  map[string]entity.User
	nextID int64
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: map[string]entity.User{}}
}

func (m *memUserRepo) Create(_ context.Context, user *entity.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.users[user.Email]; ok {
		return entity.ErrEmailAlreadyExists
	}
	m.nextID++
	user.ID = m.nextID
	user.DataCadastro = time.Now()
	m.users[user.Email] = *user
	return nil
}

func (m *memUserRepo) ExistsByEmail(_ context.Context, email string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	_, ok := m.users[email]
	return ok, nil
}

func (m *memUserRepo) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	u, ok := m.users[email]
	if !ok {
		return nil, entity.ErrUserNotFound
	}
	return &u, nil
}

type memProgressRepo struct {
	mu   sync.Mutex
	docs map[int64]map[string]json.RawMessage
}

func newMemProgressRepo() *memProgressRepo {
	return &memProgressRepo{docs: map[int64]map[string]json.RawMessage{}}
}

func (m *memProgressRepo) Merge(_ context.Context, p *entity.Progress) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	var incoming map[string]json.RawMessage
	if err := json.Unmarshal(p.Data, &incoming); err != nil {
		return err
	}
	doc, ok := m.docs[p.UserID]
	if !ok {
		doc = map[string]json.RawMessage{}
		m.docs[p.UserID] = doc
	}
	for k, v := range incoming {
		doc[k] = v
	}
	return nil
}

func (m *memProgressRepo) FindByUserID(_ context.Context, userID int64) (*entity.Progress, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	doc, ok := m.docs[userID]
	if !ok {
		return nil, nil
	}
	data, err := json.Marshal(doc)
	if err != nil {
		return nil, err
	}
	return &entity.Progress{UserID: userID, Data: data}, nil
}

type memAnalyticsRepo struct {
	mu     sync.Mutex
	events []entity.AnalyticsEvent
}

func (m *memAnalyticsRepo) Create(_ context.Context, event *entity.AnalyticsEvent) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	event.CreatedAt = time.Now()
	m.events = append(m.events, *event)
	return nil
}

func (m *memAnalyticsRepo) CountByType(_ context.Context) (map[string]int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	counts := map[string]int{}
	for _, e := range m.events {
		counts[e.Type]++
	}
	return counts, nil
}

func (m *memAnalyticsRepo) DeleteOlderThan(_ context.Context, cutoff time.Time) (int64, error) {
	return 0, nil
}

// MockLeadRepository is used where a storage failure has to be simulated.
type MockLeadRepository struct {
	mock.Mock
}

func (m *MockLeadRepository) Create(ctx context.Context, lead *entity.Lead) error {
	return m.Called(ctx, lead).Error(0)
}

func (m *MockLeadRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

func (m *MockLeadRepository) FindByID(ctx context.Context, id int64) (*entity.Lead, error) {
	args := m.Called(ctx, id)
	lead, _ := args.Get(0).(*entity.Lead)
	return lead, args.Error(1)
}

func (m *MockLeadRepository) FindAll(ctx context.Context, limit, offset int) ([]entity.Lead, error) {
	args := m.Called(ctx, limit, offset)
	leads, _ := args.Get(0).([]entity.Lead)
	return leads, args.Error(1)
}

func (m *MockLeadRepository) FindByEmail(ctx context.Context, email string) ([]entity.Lead, error) {
	args := m.Called(ctx, email)
	leads, _ := args.Get(0).([]entity.Lead)
	return leads, args.Error(1)
}

func (m *MockLeadRepository) MarkProcessed(ctx context.Context, id int64, notes string) error {
	return m.Called(ctx, id, notes).Error(0)
}

func (m *MockLeadRepository) MarkUnprocessed(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockLeadRepository) Update(ctx context.Context, id int64, fields map[string]any) error {
	return m.Called(ctx, id, fields).Error(0)
}

func (m *MockLeadRepository) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockLeadRepository) Stats(ctx context.Context) (*entity.LeadStats, error) {
	args := m.Called(ctx)
	stats, _ := args.Get(0).(*entity.LeadStats)
	return stats, args.Error(1)
}
