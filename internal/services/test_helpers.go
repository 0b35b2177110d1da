package services

import (
	"context"
	"encoding/json"
	"io"
	"sync"
	"time"

	"github.com/BradenHooton/heavyprofile/internal/models"
)

// MockAttemptStore implements repositories.AttemptStore for testing
type MockAttemptStore struct {
	GetFunc           func(ctx context.Context, id string, now time.Time) (*models.AttemptRecord, error)
	RecordFailureFunc func(ctx context.Context, id string, now time.Time) (*models.AttemptRecord, bool, error)
	ResetFunc         func(ctx context.Context, id string) error
	SweepExpiredFunc  func(ctx context.Context, now time.Time) (int, error)
}

func (m *MockAttemptStore) Get(ctx context.Context, id string, now time.Time) (*models.AttemptRecord, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, id, now)
	}
	return nil, nil
}

func (m *MockAttemptStore) RecordFailure(ctx context.Context, id string, now time.Time) (*models.AttemptRecord, bool, error) {
	if m.RecordFailureFunc != nil {
		return m.RecordFailureFunc(ctx, id, now)
	}
	return &models.AttemptRecord{Count: 1, FirstAttempt: now}, false, nil
}

func (m *MockAttemptStore) Reset(ctx context.Context, id string) error {
	if m.ResetFunc != nil {
		return m.ResetFunc(ctx, id)
	}
	return nil
}

func (m *MockAttemptStore) SweepExpired(ctx context.Context, now time.Time) (int, error) {
	if m.SweepExpiredFunc != nil {
		return m.SweepExpiredFunc(ctx, now)
	}
	return 0, nil
}

// MockAdminRepository implements AdminCredentialRepository for testing
type MockAdminRepository struct {
	GetFunc    func(ctx context.Context) (*models.AdminCredentials, error)
	UpdateFunc func(ctx context.Context, id string, username, password *string) error
}

func (m *MockAdminRepository) Get(ctx context.Context) (*models.AdminCredentials, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx)
	}
	return nil, models.ErrNotFound
}

func (m *MockAdminRepository) Update(ctx context.Context, id string, username, password *string) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, id, username, password)
	}
	return nil
}

// NewStaticAdminRepository returns a mock that always serves the given admin
func NewStaticAdminRepository(username, password string) *MockAdminRepository {
	return &MockAdminRepository{
		GetFunc: func(ctx context.Context) (*models.AdminCredentials, error) {
			return &models.AdminCredentials{ID: "1", Username: username, Password: password}, nil
		},
	}
}

// MockCredentialVerifier implements CredentialVerifier for testing and counts calls
type MockCredentialVerifier struct {
	VerifyFunc func(ctx context.Context, username, password string) (bool, error)

	mu    sync.Mutex
	calls int
}

func (m *MockCredentialVerifier) Verify(ctx context.Context, username, password string) (bool, error) {
	m.mu.Lock()
	m.calls++
	m.mu.Unlock()
	if m.VerifyFunc != nil {
		return m.VerifyFunc(ctx, username, password)
	}
	return false, nil
}

func (m *MockCredentialVerifier) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

// MockSessionIssuer implements SessionIssuer for testing
type MockSessionIssuer struct {
	IssueFunc func(username string) (string, time.Time, error)
}

func (m *MockSessionIssuer) Issue(username string) (string, time.Time, error) {
	if m.IssueFunc != nil {
		return m.IssueFunc(username)
	}
	return "session-token", time.Now().Add(time.Hour), nil
}

// MockLoginAttemptRecorder implements LoginAttemptRecorder for testing and keeps what it recorded
type MockLoginAttemptRecorder struct {
	RecordAttemptFunc func(ctx context.Context, attempt *models.LoginAttempt) error

	mu       sync.Mutex
	attempts []*models.LoginAttempt
}

func (m *MockLoginAttemptRecorder) RecordAttempt(ctx context.Context, attempt *models.LoginAttempt) error {
	m.mu.Lock()
	m.attempts = append(m.attempts, attempt)
	m.mu.Unlock()
	if m.RecordAttemptFunc != nil {
		return m.RecordAttemptFunc(ctx, attempt)
	}
	return nil
}

func (m *MockLoginAttemptRecorder) Attempts() []*models.LoginAttempt {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*models.LoginAttempt, len(m.attempts))
	copy(out, m.attempts)
	return out
}

// MockLoginMetrics implements LoginMetrics for testing
type MockLoginMetrics struct {
	mu       sync.Mutex
	outcomes map[string]int
}

func (m *MockLoginMetrics) ObserveLogin(outcome string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.outcomes == nil {
		m.outcomes = make(map[string]int)
	}
	m.outcomes[outcome]++
}

func (m *MockLoginMetrics) Count(outcome string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.outcomes[outcome]
}

// MockLeadNotifier implements LeadNotifier for testing
type MockLeadNotifier struct {
	NotifyFunc func(ctx context.Context, lead *models.Lead) error

	mu    sync.Mutex
	leads []*models.Lead
}

func (m *MockLeadNotifier) Notify(ctx context.Context, lead *models.Lead) error {
	m.mu.Lock()
	m.leads = append(m.leads, lead)
	m.mu.Unlock()
	if m.NotifyFunc != nil {
		return m.NotifyFunc(ctx, lead)
	}
	return nil
}

func (m *MockLeadNotifier) Leads() []*models.Lead {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]*models.Lead(nil), m.leads...)
}

// MockObjectStorage implements ObjectStorage for testing
type MockObjectStorage struct {
	PutFunc func(ctx context.Context, name, contentType string, body io.Reader, size int64) (string, error)

	Names []string
}

func (m *MockObjectStorage) Put(ctx context.Context, name, contentType string, body io.Reader, size int64) (string, error) {
	m.Names = append(m.Names, name)
	if m.PutFunc != nil {
		return m.PutFunc(ctx, name, contentType, body, size)
	}
	if _, err := io.Copy(io.Discard, body); err != nil {
		return "", err
	}
	return "/uploads/" + name, nil
}

// MockJSONDocumentStore implements JSONDocumentStore in memory for testing
type MockJSONDocumentStore struct {
	GetErr error
	PutErr error
	Data   json.RawMessage
}

func (m *MockJSONDocumentStore) Get(ctx context.Context) (json.RawMessage, error) {
	if m.GetErr != nil {
		return nil, m.GetErr
	}
	if m.Data == nil {
		return nil, models.ErrNotFound
	}
	return m.Data, nil
}

func (m *MockJSONDocumentStore) Put(ctx context.Context, data json.RawMessage) error {
	if m.PutErr != nil {
		return m.PutErr
	}
	m.Data = append(json.RawMessage(nil), data...)
	return nil
}

// MockContentRepository implements ContentRepository for testing
type MockContentRepository[T ContentItem] struct {
	ListFunc   func(ctx context.Context) ([]*T, error)
	CreateFunc func(ctx context.Context, item *T) (*T, error)
	UpdateFunc func(ctx context.Context, item *T) (*T, error)
	DeleteFunc func(ctx context.Context, id string) error
}

func (m *MockContentRepository[T]) List(ctx context.Context) ([]*T, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx)
	}
	return nil, nil
}

func (m *MockContentRepository[T]) Create(ctx context.Context, item *T) (*T, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, item)
	}
	return item, nil
}

func (m *MockContentRepository[T]) Update(ctx context.Context, item *T) (*T, error) {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, item)
	}
	return nil, models.ErrNotFound
}

func (m *MockContentRepository[T]) Delete(ctx context.Context, id string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}
