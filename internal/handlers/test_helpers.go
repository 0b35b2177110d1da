package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/BradenHooton/heavyprofile/internal/models"
	"github.com/BradenHooton/heavyprofile/internal/services"
	"github.com/stretchr/testify/assert"
)

// NewTestRequest creates an HTTP request with JSON body for testing
func NewTestRequest(t *testing.T, method, url string, body interface{}) *http.Request {
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("failed to encode request body: %v", err)
		}
	}
	req := httptest.NewRequest(method, url, &buf)
	req.Header.Set("Content-Type", "application/json")
	return req
}

// AssertJSONResponse checks that response has correct status and decodes JSON body
func AssertJSONResponse(t *testing.T, w *httptest.ResponseRecorder, expectedStatus int, target interface{}) {
	assert.Equal(t, expectedStatus, w.Code, "Response status mismatch")

	contentType := w.Header().Get("Content-Type")
	assert.Equal(t, "application/json", contentType, "Content-Type should be application/json")

	if target != nil {
		err := json.Unmarshal(w.Body.Bytes(), target)
		assert.NoError(t, err, "Failed to decode response JSON")
	}
}

// AssertMessageError checks a `{ "error": msg }` response
func AssertMessageError(t *testing.T, w *httptest.ResponseRecorder, expectedStatus int, expectedMessage string) {
	var body map[string]string
	AssertJSONResponse(t, w, expectedStatus, &body)
	assert.Equal(t, expectedMessage, body["error"])
}

// MockLoginService implements LoginServiceInterface for testing
type MockLoginService struct {
	LoginFunc func(ctx context.Context, req services.LoginRequest) (*services.LoginResult, error)

	LastRequest services.LoginRequest
	Calls       int
	Rejected    int
}

func (m *MockLoginService) Login(ctx context.Context, req services.LoginRequest) (*services.LoginResult, error) {
	m.Calls++
	m.LastRequest = req
	if m.LoginFunc != nil {
		return m.LoginFunc(ctx, req)
	}
	return &services.LoginResult{Outcome: services.OutcomeInvalid, RemainingAttempts: 4}, nil
}

func (m *MockLoginService) ObserveRejected() {
	m.Rejected++
}

// MockSessionValidator implements SessionValidator for testing
type MockSessionValidator struct {
	ValidateFunc func(token string) (*models.SessionClaims, error)
}

func (m *MockSessionValidator) Validate(token string) (*models.SessionClaims, error) {
	if m.ValidateFunc != nil {
		return m.ValidateFunc(token)
	}
	return nil, models.ErrUnauthorized
}

// MockAdminService implements AdminServiceInterface for testing
type MockAdminService struct {
	StatusFunc            func(ctx context.Context) (*services.AdminStatus, error)
	ChangeCredentialsFunc func(ctx context.Context, change services.CredentialChange) (*services.CredentialChangeResult, error)
}

func (m *MockAdminService) Status(ctx context.Context) (*services.AdminStatus, error) {
	if m.StatusFunc != nil {
		return m.StatusFunc(ctx)
	}
	return &services.AdminStatus{Username: models.DefaultAdminUsername, Exists: true}, nil
}

func (m *MockAdminService) ChangeCredentials(ctx context.Context, change services.CredentialChange) (*services.CredentialChangeResult, error) {
	if m.ChangeCredentialsFunc != nil {
		return m.ChangeCredentialsFunc(ctx, change)
	}
	return &services.CredentialChangeResult{}, nil
}

// MockLoginAttemptLister implements LoginAttemptLister for testing
type MockLoginAttemptLister struct {
	ListRecentFunc func(ctx context.Context, limit int) ([]*models.LoginAttempt, error)
}

func (m *MockLoginAttemptLister) ListRecent(ctx context.Context, limit int) ([]*models.LoginAttempt, error) {
	if m.ListRecentFunc != nil {
		return m.ListRecentFunc(ctx, limit)
	}
	return nil, nil
}

// MockSiteContentService implements SiteContentServiceInterface for testing
type MockSiteContentService struct {
	SettingsValue     models.SiteSettings
	SaveSettingsFunc  func(ctx context.Context, settings *models.SiteSettings) error
	DocumentsFunc     func(ctx context.Context) (models.Documents, error)
	SaveDocumentsFunc func(ctx context.Context, docs *models.Documents) error
}

func (m *MockSiteContentService) Settings(ctx context.Context) models.SiteSettings {
	return m.SettingsValue
}

func (m *MockSiteContentService) SaveSettings(ctx context.Context, settings *models.SiteSettings) error {
	if m.SaveSettingsFunc != nil {
		return m.SaveSettingsFunc(ctx, settings)
	}
	return nil
}

func (m *MockSiteContentService) Documents(ctx context.Context) (models.Documents, error) {
	if m.DocumentsFunc != nil {
		return m.DocumentsFunc(ctx)
	}
	return models.DefaultDocuments(), nil
}

func (m *MockSiteContentService) SaveDocuments(ctx context.Context, docs *models.Documents) error {
	if m.SaveDocumentsFunc != nil {
		return m.SaveDocumentsFunc(ctx, docs)
	}
	return nil
}

// MockUploadService implements UploadServiceInterface for testing
type MockUploadService struct {
	UploadFunc func(ctx context.Context, declaredType string, size int64, body io.Reader) (string, error)
	Max        int64
}

func (m *MockUploadService) Upload(ctx context.Context, declaredType string, size int64, body io.Reader) (string, error) {
	if m.UploadFunc != nil {
		return m.UploadFunc(ctx, declaredType, size, body)
	}
	return "/uploads/file.png", nil
}

func (m *MockUploadService) MaxBytes() int64 {
	if m.Max == 0 {
		return 5 * 1024 * 1024
	}
	return m.Max
}

// MockLeadService implements LeadServiceInterface for testing
type MockLeadService struct {
	SubmitFunc func(ctx context.Context, lead *models.Lead) error

	Submitted []*models.Lead
}

func (m *MockLeadService) Submit(ctx context.Context, lead *models.Lead) error {
	m.Submitted = append(m.Submitted, lead)
	if m.SubmitFunc != nil {
		return m.SubmitFunc(ctx, lead)
	}
	return nil
}
