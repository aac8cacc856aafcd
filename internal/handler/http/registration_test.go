package http

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/apmod1/password-manager/internal/service"
	"github.com/apmod1/password-manager/models"
)

func TestInitiateRegistration(t *testing.T) {
	userID := uuid.New()
	registration := &mockRegistrationService{
		initiateFn: func(ctx context.Context, sessionKey string) (models.RegistrationChallenge, error) {
			assert.Equal(t, testSessionKey, sessionKey)
			return models.RegistrationChallenge{
				UserID:          userID,
				Words:           []string{"a", "b", "c", "d", "e", "f", "g", "h", "i", "j"},
				TOTPSecret:      "JBSWY3DPEHPK3PXP",
				ProvisioningURI: "otpauth://totp/password-manager:" + userID.String() + "?secret=JBSWY3DPEHPK3PXP",
			}, nil
		},
	}
	router := newTestRouter(registration, &mockLoginService{}, &mockVaultService{})

	w := doRequest(router, http.MethodPost, "/api/register/initiate", "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var response models.InitiateRegistrationResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, userID.String(), response.UUID)
	assert.Len(t, response.Words, 10)
	assert.Equal(t, "JBSWY3DPEHPK3PXP", response.TOTPSecret)
	assert.True(t, len(response.QRCode) > 0)
	assert.Contains(t, response.QRCode, "data:image/png;base64,")
}

func TestInitiateRegistrationMintsSessionCookie(t *testing.T) {
	router := newTestRouter(&mockRegistrationService{}, &mockLoginService{}, &mockVaultService{})

	// no cookie on the request: the middleware must set one
	req := httptest.NewRequest(http.MethodPost, "/api/register/initiate", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	var sessionCookie *http.Cookie
	for _, cookie := range w.Result().Cookies() {
		if cookie.Name == sessionCookieName {
			sessionCookie = cookie
		}
	}
	require.NotNil(t, sessionCookie)
	assert.NotEmpty(t, sessionCookie.Value)
	assert.True(t, sessionCookie.HttpOnly)
}

func TestVerifyRegistrationTOTP(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		serviceErr error
		wantStatus int
	}{
		{name: "valid code", body: `{"totp_code":"123456"}`, wantStatus: http.StatusNoContent},
		{name: "broken JSON", body: `{"totp_code"`, wantStatus: http.StatusBadRequest},
		{name: "invalid code", body: `{"totp_code":"000000"}`, serviceErr: service.ErrInvalidCode, wantStatus: http.StatusBadRequest},
		{name: "no transaction", body: `{"totp_code":"123456"}`, serviceErr: service.ErrSessionExpired, wantStatus: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			registration := &mockRegistrationService{
				verifyTOTPFn: func(ctx context.Context, sessionKey, code string) error {
					return tt.serviceErr
				},
			}
			router := newTestRouter(registration, &mockLoginService{}, &mockVaultService{})

			w := doRequest(router, http.MethodPost, "/api/register/totp", tt.body, nil)
			assert.Equal(t, tt.wantStatus, w.Code)
		})
	}
}

func TestCompleteRegistration(t *testing.T) {
	userID := uuid.New()
	b64 := base64.StdEncoding.EncodeToString

	body := fmt.Sprintf(`{
		"username_hash": %q,
		"wrapped_key": %q,
		"hmac_wrapped_key": %q,
		"algorithm": "xchacha20-poly1305",
		"email": "alice@example.com",
		"auth_hash": "opaque-verifier"
	}`, b64([]byte("fingerprint")), b64([]byte("wrapped")), b64([]byte("tag")))

	t.Run("success decodes the payload", func(t *testing.T) {
		var received models.CompleteRegistration
		registration := &mockRegistrationService{
			completeFn: func(ctx context.Context, sessionKey string, completion models.CompleteRegistration) (uuid.UUID, error) {
				received = completion
				return userID, nil
			},
		}
		router := newTestRouter(registration, &mockLoginService{}, &mockVaultService{})

		w := doRequest(router, http.MethodPost, "/api/register/complete", body, nil)
		require.Equal(t, http.StatusCreated, w.Code)

		var response models.CompleteRegistrationResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.Equal(t, userID.String(), response.UUID)

		assert.Equal(t, []byte("fingerprint"), received.Fingerprint)
		assert.Equal(t, []byte("wrapped"), received.WrappedKey)
		assert.Equal(t, []byte("tag"), received.WrappedKeyHMAC)
		assert.Equal(t, models.AlgorithmXChaCha20Poly1305, received.Algorithm)
		assert.Equal(t, "alice@example.com", received.Email)
		assert.Equal(t, "opaque-verifier", received.Verifier)
	})

	t.Run("invalid base64", func(t *testing.T) {
		router := newTestRouter(&mockRegistrationService{}, &mockLoginService{}, &mockVaultService{})

		w := doRequest(router, http.MethodPost, "/api/register/complete", `{"username_hash":"%%%"}`, nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("error mapping", func(t *testing.T) {
		tests := []struct {
			serviceErr error
			wantStatus int
		}{
			{serviceErr: service.ErrTotpNotVerified, wantStatus: http.StatusForbidden},
			{serviceErr: service.ErrIntegrityCheckFailed, wantStatus: http.StatusBadRequest},
			{serviceErr: service.ErrSessionExpired, wantStatus: http.StatusBadRequest},
		}

		for _, tt := range tests {
			registration := &mockRegistrationService{
				completeFn: func(ctx context.Context, sessionKey string, completion models.CompleteRegistration) (uuid.UUID, error) {
					return uuid.Nil, tt.serviceErr
				},
			}
			router := newTestRouter(registration, &mockLoginService{}, &mockVaultService{})

			w := doRequest(router, http.MethodPost, "/api/register/complete", body, nil)
			assert.Equal(t, tt.wantStatus, w.Code)

			var response models.ErrorResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
			assert.Equal(t, tt.serviceErr.Error(), response.Error)
		}
	})
}
