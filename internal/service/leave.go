package service

import (
	"context"                          // Context for store and mail calls
	"fmt"                              // Message formatting
	"leave_system/internal/domain"     // Importing domain models
	"leave_system/internal/metrics"    // Prometheus counters
	"leave_system/internal/repository" // Repository input types
	"strings"                          // String manipulation
	"sync"                             // Synchronization primitives
	"time"                             // Time durations
	"unicode/utf8"                     // Length in characters

	"github.com/redis/go-redis/v9" // Redis client
	"github.com/sirupsen/logrus"   // Logging library
)

const (
	DefaultPageSize = 10  // Page size when the caller gives none
	MaxPageSize     = 100 // Largest page a caller may ask for

	minReasonLen    = 10
	maxReasonLen    = 500
	maxLeaveTypeLen = 50
	maxCommentLen   = 500
	notifyTimeout   = 30 * time.Second
)

// LeaveStore is the leave repository the workflow depends on
type LeaveStore interface {
	Create(ctx context.Context, ownerID uint, in repository.NewLeave) (*domain.LeaveRequest, error)
	ListByOwner(ctx context.Context, ownerID uint, page, pageSize int) ([]domain.LeaveRequest, int64, error)
	ListAll(ctx context.Context, page, pageSize int) ([]domain.LeaveWithOwner, int64, error)
	UpdateStatus(ctx context.Context, id uint, status domain.Status, comment *string) (*domain.LeaveRequest, error)
	GetWithOwner(ctx context.Context, id uint) (*domain.LeaveWithOwner, error)
}

// Notifier tells a leave owner about a decision
type Notifier interface {
	NotifyDecision(ctx context.Context, leave domain.LeaveWithOwner, status domain.Status, comment *string) error
}

// SubmitInput is the raw submission as received from the client
type SubmitInput struct {
	LeaveType      string  // Free-form leave type
	StartDate      string  // YYYY-MM-DD
	EndDate        string  // YYYY-MM-DD, not before StartDate
	Reason         string  // 10 to 500 characters
	AttachmentPath *string // Filled in by the upload handler
}

// Validate checks the submission and returns it in repository form.
// The first failing field wins.
func (in SubmitInput) Validate() (repository.NewLeave, error) {
	var out repository.NewLeave
	leaveType := strings.TrimSpace(in.LeaveType)
	if leaveType == "" {
		return out, domain.Invalid("leave_type", `"leave_type" is required`)
	}
	if utf8.RuneCountInString(leaveType) > maxLeaveTypeLen {
		return out, domain.Invalid("leave_type", fmt.Sprintf(`"leave_type" length must be less than or equal to %d characters long`, maxLeaveTypeLen))
	}
	start, err := parseDateField("start_date", in.StartDate)
	if err != nil {
		return out, err
	}
	end, err := parseDateField("end_date", in.EndDate)
	if err != nil {
		return out, err
	}
	if end.Before(start.Time) {
		return out, domain.Invalid("end_date", `"end_date" must be on or after "start_date"`)
	}
	reasonLen := utf8.RuneCountInString(in.Reason)
	switch {
	case reasonLen == 0:
		return out, domain.Invalid("reason", `"reason" is required`)
	case reasonLen < minReasonLen:
		return out, domain.Invalid("reason", fmt.Sprintf(`"reason" length must be at least %d characters long`, minReasonLen))
	case reasonLen > maxReasonLen:
		return out, domain.Invalid("reason", fmt.Sprintf(`"reason" length must be less than or equal to %d characters long`, maxReasonLen))
	}
	return repository.NewLeave{
		LeaveType:      leaveType,
		StartDate:      start,
		EndDate:        end,
		Reason:         in.Reason,
		AttachmentPath: in.AttachmentPath,
	}, nil
}

func parseDateField(field, value string) (domain.Date, error) {
	if strings.TrimSpace(value) == "" {
		return domain.Date{}, domain.Invalid(field, fmt.Sprintf(`"%s" is required`, field))
	}
	d, err := domain.ParseDate(value)
	if err != nil {
		return domain.Date{}, domain.Invalid(field, fmt.Sprintf(`"%s" must be a valid date in YYYY-MM-DD format`, field))
	}
	return d, nil
}

// Pagination describes where a page sits in the full result
type Pagination struct {
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Total int64 `json:"total"`
	Pages int   `json:"pages"`
}

// NewPagination computes pages = ceil(total / limit)
func NewPagination(page, limit int, total int64) Pagination {
	pages := int((total + int64(limit) - 1) / int64(limit))
	return Pagination{Page: page, Limit: limit, Total: total, Pages: pages}
}

// Page is one page of leave requests
type Page[T any] struct {
	LeaveRequests []T        `json:"leaveRequests"`
	Pagination    Pagination `json:"pagination"`
}

// NormalizePage applies defaults and bounds to client paging input
func NormalizePage(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = DefaultPageSize
	}
	if limit > MaxPageSize {
		limit = MaxPageSize
	}
	return page, limit
}

// LeaveService is the leave request workflow
type LeaveService struct {
	leaves   LeaveStore
	notifier Notifier
	cache    *listCache
	log      logrus.FieldLogger
	inflight sync.WaitGroup // Outstanding notifications
}

// NewLeaveService creates the workflow. notifier may be nil.
func NewLeaveService(leaves LeaveStore, notifier Notifier, log logrus.FieldLogger) *LeaveService {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &LeaveService{leaves: leaves, notifier: notifier, log: log}
}

// WithCache caches list pages in redis for ttl. A nil client leaves caching off.
func (s *LeaveService) WithCache(rdb *redis.Client, ttl time.Duration) *LeaveService {
	if rdb != nil {
		s.cache = &listCache{rdb: rdb, ttl: ttl, log: s.log}
	}
	return s
}

// Submit validates and stores a new pending request owned by the caller
func (s *LeaveService) Submit(ctx context.Context, identity *domain.Identity, in SubmitInput) (*domain.LeaveRequest, error) {
	if identity == nil {
		return nil, domain.ErrUnauthorized
	}
	fields, err := in.Validate()
	if err != nil {
		return nil, err
	}
	leave, err := s.leaves.Create(ctx, identity.ID, fields) // Store as pending
	if err != nil {
		return nil, err
	}
	s.cache.invalidate(ctx, identity.ID) // Owner and admin pages are stale
	s.log.WithFields(logrus.Fields{
		"leave_id": leave.ID,
		"user_id":  identity.ID,
		"type":     leave.LeaveType,
	}).Info("Leave request submitted")
	return leave, nil
}

// ListMine pages through the caller's own requests, newest first
func (s *LeaveService) ListMine(ctx context.Context, identity *domain.Identity, page, limit int) (*Page[domain.LeaveRequest], error) {
	if identity == nil {
		return nil, domain.ErrUnauthorized
	}
	page, limit = NormalizePage(page, limit)
	key := s.cache.ownerKey(ctx, identity.ID, page, limit) // Empty when caching is off
	var result Page[domain.LeaveRequest]
	if s.cache.get(ctx, key, &result) {
		return &result, nil // Cache hit
	}
	items, total, err := s.leaves.ListByOwner(ctx, identity.ID, page, limit)
	if err != nil {
		return nil, err
	}
	result = Page[domain.LeaveRequest]{LeaveRequests: items, Pagination: NewPagination(page, limit, total)}
	s.cache.set(ctx, key, result)
	return &result, nil
}

// ListAll pages through every request with owner details. Admins only.
func (s *LeaveService) ListAll(ctx context.Context, identity *domain.Identity, page, limit int) (*Page[domain.LeaveWithOwner], error) {
	if err := Authorize(identity, domain.RoleAdmin); err != nil {
		return nil, err
	}
	page, limit = NormalizePage(page, limit)
	key := s.cache.allKey(ctx, page, limit) // Empty when caching is off
	var result Page[domain.LeaveWithOwner]
	if s.cache.get(ctx, key, &result) {
		return &result, nil // Cache hit
	}
	items, total, err := s.leaves.ListAll(ctx, page, limit)
	if err != nil {
		return nil, err
	}
	result = Page[domain.LeaveWithOwner]{LeaveRequests: items, Pagination: NewPagination(page, limit, total)}
	s.cache.set(ctx, key, result)
	return &result, nil
}

// Decide approves or rejects a pending request. Admins only.
// The owner is notified in the background; notification errors are logged and dropped.
func (s *LeaveService) Decide(ctx context.Context, identity *domain.Identity, id uint, status string, comment *string) (*domain.LeaveRequest, error) {
	if err := Authorize(identity, domain.RoleAdmin); err != nil {
		return nil, err
	}
	decision := domain.Status(status)
	if !decision.Terminal() {
		return nil, domain.Invalid("status", `"status" must be one of [approved, rejected]`)
	}
	if comment != nil && utf8.RuneCountInString(*comment) > maxCommentLen {
		return nil, domain.Invalid("admin_comment", fmt.Sprintf(`"admin_comment" length must be less than or equal to %d characters long`, maxCommentLen))
	}

	leave, err := s.leaves.UpdateStatus(ctx, id, decision, comment) // Pending to terminal, once
	if err != nil {
		return nil, err // Not found, conflict or store failure
	}
	metrics.ObserveDecision(string(decision))
	s.cache.invalidate(ctx, leave.UserID)
	s.log.WithFields(logrus.Fields{
		"leave_id": leave.ID,
		"admin_id": identity.ID,
		"status":   decision,
	}).Info("Leave request decided")

	s.notifyAsync(leave.ID, decision, comment) // Does not block the response
	return leave, nil
}

// Wait blocks until background notifications have finished
func (s *LeaveService) Wait() {
	s.inflight.Wait()
}

func (s *LeaveService) notifyAsync(id uint, status domain.Status, comment *string) {
	if s.notifier == nil {
		return
	}
	s.inflight.Add(1)
	go func() {
		defer s.inflight.Done()
		// Detached from the request so the response is not held up
		ctx, cancel := context.WithTimeout(context.Background(), notifyTimeout)
		defer cancel()
		entry := s.log.WithFields(logrus.Fields{"leave_id": id, "status": status})
		leave, err := s.leaves.GetWithOwner(ctx, id) // Owner's name and email for the message
		if err != nil {
			entry.WithError(err).Error("Failed to load leave request for notification")
			return
		}
		if leave == nil {
			entry.Warn("Leave request vanished before notification")
			return
		}
		if err := s.notifier.NotifyDecision(ctx, *leave, status, comment); err != nil {
			entry.WithError(err).Error("Failed to send email notification")
		}
	}()
}
