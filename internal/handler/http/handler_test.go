package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/apmod1/password-manager/internal/logger"
	"github.com/apmod1/password-manager/internal/service"
	"github.com/apmod1/password-manager/models"
)

const (
	testSignKey    = "test-sign-key"
	testIssuer     = "password-manager"
	testSessionKey = "deadbeefdeadbeefdeadbeefdeadbeef"
)

// ─────────────────────────────────────────────
// Mock: service.RegistrationService
// ─────────────────────────────────────────────

type mockRegistrationService struct {
	initiateFn   func(ctx context.Context, sessionKey string) (models.RegistrationChallenge, error)
	verifyTOTPFn func(ctx context.Context, sessionKey, code string) error
	completeFn   func(ctx context.Context, sessionKey string, completion models.CompleteRegistration) (uuid.UUID, error)
}

func (m *mockRegistrationService) Initiate(ctx context.Context, sessionKey string) (models.RegistrationChallenge, error) {
	if m.initiateFn != nil {
		return m.initiateFn(ctx, sessionKey)
	}
	return models.RegistrationChallenge{}, nil
}

func (m *mockRegistrationService) VerifyTOTP(ctx context.Context, sessionKey, code string) error {
	if m.verifyTOTPFn != nil {
		return m.verifyTOTPFn(ctx, sessionKey, code)
	}
	return nil
}

func (m *mockRegistrationService) Complete(ctx context.Context, sessionKey string, completion models.CompleteRegistration) (uuid.UUID, error) {
	if m.completeFn != nil {
		return m.completeFn(ctx, sessionKey, completion)
	}
	return uuid.Nil, nil
}

// ─────────────────────────────────────────────
// Mock: service.LoginService
// ─────────────────────────────────────────────

type mockLoginService struct {
	identifyFn func(ctx context.Context, sessionKey string, identity models.LoginIdentity) (string, error)
	verifyFn   func(ctx context.Context, sessionKey, loginToken, code string) (models.LoginResult, error)
}

func (m *mockLoginService) Identify(ctx context.Context, sessionKey string, identity models.LoginIdentity) (string, error) {
	if m.identifyFn != nil {
		return m.identifyFn(ctx, sessionKey, identity)
	}
	return "", nil
}

func (m *mockLoginService) VerifyTOTPAndComplete(ctx context.Context, sessionKey, loginToken, code string) (models.LoginResult, error) {
	if m.verifyFn != nil {
		return m.verifyFn(ctx, sessionKey, loginToken, code)
	}
	return models.LoginResult{}, nil
}

// ─────────────────────────────────────────────
// Mock: service.VaultService
// ─────────────────────────────────────────────

type mockVaultService struct {
	listItemsFn  func(ctx context.Context, userID uuid.UUID) ([]models.VaultItemSummary, error)
	createItemFn func(ctx context.Context, userID uuid.UUID, item models.VaultItem, tag []byte) (models.VaultItem, error)
	getItemFn    func(ctx context.Context, userID, itemID uuid.UUID) (models.VaultItem, error)
	updateItemFn func(ctx context.Context, userID, itemID uuid.UUID, update models.VaultItemUpdate, tag []byte) (models.VaultItem, error)
	deleteItemFn func(ctx context.Context, userID, itemID uuid.UUID) error
}

func (m *mockVaultService) ListItems(ctx context.Context, userID uuid.UUID) ([]models.VaultItemSummary, error) {
	if m.listItemsFn != nil {
		return m.listItemsFn(ctx, userID)
	}
	return nil, nil
}

func (m *mockVaultService) CreateItem(ctx context.Context, userID uuid.UUID, item models.VaultItem, tag []byte) (models.VaultItem, error) {
	if m.createItemFn != nil {
		return m.createItemFn(ctx, userID, item, tag)
	}
	return item, nil
}

func (m *mockVaultService) GetItem(ctx context.Context, userID, itemID uuid.UUID) (models.VaultItem, error) {
	if m.getItemFn != nil {
		return m.getItemFn(ctx, userID, itemID)
	}
	return models.VaultItem{}, nil
}

func (m *mockVaultService) UpdateItem(ctx context.Context, userID, itemID uuid.UUID, update models.VaultItemUpdate, tag []byte) (models.VaultItem, error) {
	if m.updateItemFn != nil {
		return m.updateItemFn(ctx, userID, itemID, update, tag)
	}
	return models.VaultItem{}, nil
}

func (m *mockVaultService) DeleteItem(ctx context.Context, userID, itemID uuid.UUID) error {
	if m.deleteItemFn != nil {
		return m.deleteItemFn(ctx, userID, itemID)
	}
	return nil
}

// newTestRouter wires the handler over the given mocks with a no-op logger.
func newTestRouter(registration *mockRegistrationService, login *mockLoginService, vault *mockVaultService) *chi.Mux {
	h := &Handler{
		services: &service.Services{
			RegistrationService: registration,
			LoginService:        login,
			VaultService:        vault,
		},
		tokenSignKey: testSignKey,
		tokenIssuer:  testIssuer,
		logger:       logger.Nop(),
	}
	return h.Init()
}

// doRequest performs an in-process request against the router, pinning the
// session cookie so multi-step flows stay on one session.
func doRequest(router *chi.Mux, method, target, body string, header map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.AddCookie(&http.Cookie{Name: sessionCookieName, Value: testSessionKey})
	for key, value := range header {
		req.Header.Set(key, value)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}
