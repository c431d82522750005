package service

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/dermaclinic/dermaclinic-api/internal/domain"
	"github.com/dermaclinic/dermaclinic-api/internal/domain/patient"
	"github.com/dermaclinic/dermaclinic-api/pkg/metrics"
)

// One collector for the whole test binary; prometheus panics on duplicate
// registration.
var testMetrics = metrics.NewCollector("service_test")

// --- MockPatientRepository ---

var _ patient.Repository = (*MockPatientRepository)(nil)

// MockPatientRepository is a hand-rolled mock: set only the funcs a test needs.
type MockPatientRepository struct {
	CreateFunc  func(ctx context.Context, p *patient.Patient) error
	GetByIDFunc func(ctx context.Context, id uuid.UUID) (*patient.Patient, error)
	UpdateFunc  func(ctx context.Context, id uuid.UUID, cmd *patient.UpdatePatientCommand) (*patient.Patient, error)
	DeleteFunc  func(ctx context.Context, id uuid.UUID) error
	ListFunc    func(ctx context.Context) ([]*patient.Patient, error)
	SearchFunc  func(ctx context.Context, query string) ([]*patient.Patient, error)

	CreateCallCount int32
	ListCallCount   int32
}

func (m *MockPatientRepository) Create(ctx context.Context, p *patient.Patient) error {
	atomic.AddInt32(&m.CreateCallCount, 1)
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, p)
	}
	return nil
}

func (m *MockPatientRepository) GetByID(ctx context.Context, id uuid.UUID) (*patient.Patient, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, errors.New("GetByIDFunc not implemented in mock")
}

func (m *MockPatientRepository) Update(ctx context.Context, id uuid.UUID, cmd *patient.UpdatePatientCommand) (*patient.Patient, error) {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, id, cmd)
	}
	return nil, errors.New("UpdateFunc not implemented in mock")
}

func (m *MockPatientRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return errors.New("DeleteFunc not implemented in mock")
}

func (m *MockPatientRepository) List(ctx context.Context) ([]*patient.Patient, error) {
	atomic.AddInt32(&m.ListCallCount, 1)
	if m.ListFunc != nil {
		return m.ListFunc(ctx)
	}
	return nil, nil
}

func (m *MockPatientRepository) Search(ctx context.Context, query string) ([]*patient.Patient, error) {
	if m.SearchFunc != nil {
		return m.SearchFunc(ctx, query)
	}
	return nil, errors.New("SearchFunc not implemented in mock")
}

// --- MockAuditRepository ---

type MockAuditRepository struct {
	mu      sync.Mutex
	Entries []*domain.AuditLog
}

func (m *MockAuditRepository) Create(ctx context.Context, entry *domain.AuditLog) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Entries = append(m.Entries, entry)
	return nil
}

// --- fakePatientStore ---

var _ patient.Repository = (*fakePatientStore)(nil)

// fakePatientStore behaves like the real table: store-assigned ids and
// timestamps, newest-first ordering, ILIKE-style search. It lets the tests
// exercise the repository contract end to end without a database.
type fakePatientStore struct {
	mu   sync.Mutex
	byID map[uuid.UUID]*patient.Patient
	tick time.Time
}

func newFakePatientStore() *fakePatientStore {
	return &fakePatientStore{
		byID: make(map[uuid.UUID]*patient.Patient),
		tick: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func (f *fakePatientStore) next() time.Time {
	f.tick = f.tick.Add(time.Second)
	return f.tick
}

func (f *fakePatientStore) Create(_ context.Context, p *patient.Patient) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	now := f.next()
	p.ID = uuid.New()
	p.CreatedAt = now
	p.UpdatedAt = now

	stored := *p
	f.byID[p.ID] = &stored
	return nil
}

func (f *fakePatientStore) GetByID(_ context.Context, id uuid.UUID) (*patient.Patient, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	p, ok := f.byID[id]
	if !ok {
		return nil, nil
	}
	copied := *p
	return &copied, nil
}

func (f *fakePatientStore) Update(_ context.Context, id uuid.UUID, cmd *patient.UpdatePatientCommand) (*patient.Patient, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	p, ok := f.byID[id]
	if !ok {
		return nil, patient.ErrPatientNotFound
	}

	if cmd.FirstName != nil {
		p.FirstName = *cmd.FirstName
	}
	if cmd.LastName != nil {
		p.LastName = *cmd.LastName
	}
	if cmd.DateOfBirth != nil {
		p.DateOfBirth = *cmd.DateOfBirth
	}
	if cmd.Gender != nil {
		p.Gender = *cmd.Gender
	}
	if cmd.Phone != nil {
		p.Phone = *cmd.Phone
	}
	if cmd.Email != nil {
		p.Email = *cmd.Email
	}
	if cmd.Address != nil {
		p.Address = *cmd.Address
	}
	if cmd.MedicalHistory != nil {
		p.MedicalHistory = *cmd.MedicalHistory
	}
	if cmd.Allergies != nil {
		p.Allergies = *cmd.Allergies
	}
	p.UpdatedAt = f.next()

	copied := *p
	return &copied, nil
}

func (f *fakePatientStore) Delete(_ context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.byID, id)
	return nil
}

func (f *fakePatientStore) List(_ context.Context) ([]*patient.Patient, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	out := make([]*patient.Patient, 0, len(f.byID))
	for _, p := range f.byID {
		copied := *p
		out = append(out, &copied)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (f *fakePatientStore) Search(ctx context.Context, query string) ([]*patient.Patient, error) {
	all, err := f.List(ctx)
	if err != nil {
		return nil, err
	}
	if query == "" {
		return all, nil
	}

	q := strings.ToLower(query)
	out := make([]*patient.Patient, 0, len(all))
	for _, p := range all {
		if strings.Contains(strings.ToLower(p.FirstName), q) ||
			strings.Contains(strings.ToLower(p.LastName), q) ||
			strings.Contains(strings.ToLower(p.Email), q) {
			out = append(out, p)
		}
	}
	return out, nil
}
