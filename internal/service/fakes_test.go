package service

import (
	"context"
	"sort"
	"sync"
	"time"

	"leave_system/internal/domain"
	"leave_system/internal/repository"
)

type memUserStore struct {
	mu      sync.Mutex
	byID    map[uint]*domain.User
	byEmail map[string]*domain.User
	nextID  uint
}

func newMemUserStore() *memUserStore {
	return &memUserStore{byID: map[uint]*domain.User{}, byEmail: map[string]*domain.User{}}
}

func (m *memUserStore) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if u, ok := m.byEmail[email]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, nil
}

func (m *memUserStore) FindByID(_ context.Context, id uint) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if u, ok := m.byID[id]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, nil
}

func (m *memUserStore) Insert(_ context.Context, u *domain.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.byEmail[u.Email]; ok {
		return domain.ErrDuplicateEmail
	}
	m.nextID++
	u.ID = m.nextID
	u.CreatedAt = time.Now()
	u.UpdatedAt = u.CreatedAt
	cp := *u
	m.byID[u.ID] = &cp
	m.byEmail[u.Email] = &cp
	return nil
}

type memLeaveStore struct {
	mu    sync.Mutex
	users *memUserStore
	rows  []domain.LeaveRequest
	calls map[string]int
}

func newMemLeaveStore(users *memUserStore) *memLeaveStore {
	return &memLeaveStore{users: users, calls: map[string]int{}}
}

func (m *memLeaveStore) Create(_ context.Context, ownerID uint, in repository.NewLeave) (*domain.LeaveRequest, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls["Create"]++
	row := domain.LeaveRequest{
		ID:             uint(len(m.rows) + 1),
		UserID:         ownerID,
		LeaveType:      in.LeaveType,
		StartDate:      in.StartDate,
		EndDate:        in.EndDate,
		Reason:         in.Reason,
		Status:         domain.StatusPending,
		AttachmentPath: in.AttachmentPath,
		CreatedAt:      time.Now().Add(time.Duration(len(m.rows)) * time.Millisecond),
	}
	m.rows = append(m.rows, row)
	return &row, nil
}

func (m *memLeaveStore) newest(filter func(domain.LeaveRequest) bool) []domain.LeaveRequest {
	var out []domain.LeaveRequest
	for _, r := range m.rows {
		if filter(r) {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out
}

func paginate[T any](all []T, page, size int) []T {
	out := make([]T, 0, size)
	start := (page - 1) * size
	for i := start; i < len(all) && i < start+size; i++ {
		out = append(out, all[i])
	}
	return out
}

func (m *memLeaveStore) ListByOwner(_ context.Context, ownerID uint, page, size int) ([]domain.LeaveRequest, int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls["ListByOwner"]++
	all := m.newest(func(r domain.LeaveRequest) bool { return r.UserID == ownerID })
	return paginate(all, page, size), int64(len(all)), nil
}

func (m *memLeaveStore) withOwner(r domain.LeaveRequest) domain.LeaveWithOwner {
	row := domain.LeaveWithOwner{LeaveRequest: r}
	if u, ok := m.users.byID[r.UserID]; ok {
		row.FirstName, row.LastName, row.Email = u.FirstName, u.LastName, u.Email
	}
	return row
}

func (m *memLeaveStore) ListAll(_ context.Context, page, size int) ([]domain.LeaveWithOwner, int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls["ListAll"]++
	all := m.newest(func(domain.LeaveRequest) bool { return true })
	joined := make([]domain.LeaveWithOwner, 0, len(all))
	for _, r := range all {
		joined = append(joined, m.withOwner(r))
	}
	return paginate(joined, page, size), int64(len(all)), nil
}

func (m *memLeaveStore) UpdateStatus(_ context.Context, id uint, status domain.Status, comment *string) (*domain.LeaveRequest, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls["UpdateStatus"]++
	for i := range m.rows {
		if m.rows[i].ID != id {
			continue
		}
		if m.rows[i].Status != domain.StatusPending {
			return nil, domain.ErrConflict
		}
		m.rows[i].Status = status
		m.rows[i].AdminComment = comment
		m.rows[i].UpdatedAt = time.Now()
		row := m.rows[i]
		return &row, nil
	}
	return nil, domain.ErrNotFound
}

func (m *memLeaveStore) GetWithOwner(_ context.Context, id uint) (*domain.LeaveWithOwner, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, r := range m.rows {
		if r.ID == id {
			row := m.withOwner(r)
			return &row, nil
		}
	}
	return nil, nil
}

type fakeTokens struct{}

func (fakeTokens) Issue(identity domain.Identity) (string, error) {
	return "token-for-" + identity.Email, nil
}

type notification struct {
	leave   domain.LeaveWithOwner
	status  domain.Status
	comment *string
}

type recordingNotifier struct {
	mu  sync.Mutex
	got []notification
	err error
}

func (n *recordingNotifier) NotifyDecision(_ context.Context, leave domain.LeaveWithOwner, status domain.Status, comment *string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.got = append(n.got, notification{leave: leave, status: status, comment: comment})
	return n.err
}

func (n *recordingNotifier) all() []notification {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]notification(nil), n.got...)
}
