package service

import (
	"context"
	"crypto/hmac"
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/apmod1/password-manager/internal/config"
	"github.com/apmod1/password-manager/internal/integrity"
	"github.com/apmod1/password-manager/internal/logger"
	"github.com/apmod1/password-manager/internal/session"
	"github.com/apmod1/password-manager/internal/store"
	"github.com/apmod1/password-manager/internal/totp"
	"github.com/apmod1/password-manager/internal/utils"
	"github.com/apmod1/password-manager/internal/validators"
	"github.com/apmod1/password-manager/models"
)

// loginTokenBytes is the entropy of the single-use login token. The token
// travels hex-encoded, so the wire form is twice as long.
const loginTokenBytes = 32

// loginService is the concrete implementation of LoginService. It resolves
// accounts, guards the identify step against account probing, and exchanges
// a verified one-time code for the stored key material plus a signed vault
// access token.
type loginService struct {
	// userRepository resolves accounts by identifier or fingerprint.
	userRepository store.UserRepository

	// deviceRepository resolves the account's authenticator and advances
	// its replay window.
	deviceRepository store.DeviceRepository

	// transactions holds the pending login between the two steps.
	transactions session.Store

	// validator checks the identification payload before any lookup.
	validator validators.Validator

	// loginTTL bounds the window between identify and code verification.
	loginTTL time.Duration

	// tokenSignKey is the HMAC secret used to sign vault access tokens.
	tokenSignKey string

	// tokenIssuer is the "iss" claim embedded in every issued JWT.
	tokenIssuer string

	// tokenDuration controls how long a vault access token remains valid.
	tokenDuration time.Duration

	// now is the clock. Overridable in tests.
	now func() time.Time

	// logger is the structured logger used for diagnostic and error output.
	logger *logger.Logger
}

// NewLoginService constructs a LoginService wired to the given repositories
// and transaction store, with protocol parameters from cfg.
//
// The returned service is safe for concurrent use; all state is read-only
// after construction.
func NewLoginService(
	userRepository store.UserRepository,
	deviceRepository store.DeviceRepository,
	transactions session.Store,
	validator validators.Validator,
	cfg config.App,
	logger *logger.Logger,
) LoginService {
	return &loginService{
		userRepository:   userRepository,
		deviceRepository: deviceRepository,
		transactions:     transactions,
		validator:        validator,
		loginTTL:         cfg.LoginTTL,
		tokenSignKey:     cfg.TokenSignKey,
		tokenIssuer:      cfg.TokenIssuer,
		tokenDuration:    cfg.TokenDuration,
		now:              time.Now,
		logger:           logger,
	}
}

// Identify performs login step 1.
//
// The account is resolved by identifier or username fingerprint and the
// supplied hash is compared with the stored authentication-words hash in
// constant time. When the lookup misses, a dummy comparison of the same
// shape runs anyway so the miss path costs as much as the hit path.
//
// Returns:
//   - ErrInvalidDataProvided if neither identifier nor fingerprint is set,
//     or the hash is missing.
//   - ErrInvalidCredentials for every credential-class failure: unknown
//     account and wrong hash are deliberately indistinguishable.
func (s *loginService) Identify(ctx context.Context, sessionKey string, identity models.LoginIdentity) (string, error) {
	log := logger.FromContext(ctx)

	if sessionKey == "" {
		log.Error().Msg("empty session key on login identification")
		return "", ErrInvalidDataProvided
	}
	if err := s.validator.Validate(ctx, identity); err != nil {
		log.Error().Err(err).Msg("incomplete identity data on login")
		return "", errors.Join(ErrInvalidDataProvided, err)
	}

	user, err := s.findUser(ctx, identity)
	if err != nil {
		if errors.Is(err, store.ErrNoUserWasFound) {
			// Burn the same comparison work the hit path would.
			integrity.DummyCompare()
			log.Warn().Msg("login identification failed")
			return "", ErrInvalidCredentials
		}
		log.Err(err).Msg("user lookup failed")
		return "", fmt.Errorf("user lookup failed: %w", err)
	}

	if !hmac.Equal(user.AuthWordsHash, identity.AuthHash) {
		log.Warn().Str("userID", user.ID.String()).Msg("login identification failed")
		return "", ErrInvalidCredentials
	}

	loginToken, err := generateLoginToken()
	if err != nil {
		log.Err(err).Msg("login token generation failed")
		return "", fmt.Errorf("login token generation failed: %w", err)
	}

	transaction := models.LoginTransaction{
		UserID:     user.ID,
		LoginToken: loginToken,
		CreatedAt:  s.now(),
	}
	// The read-time Age check owns the window so an elapsed login reports
	// ErrSessionExpired; the store TTL is a garbage-collection backstop and
	// must outlive it.
	if err = s.transactions.Put(ctx, sessionKey, models.KindLogin, transaction, 2*s.loginTTL); err != nil {
		log.Err(err).Msg("storing login transaction failed")
		return "", fmt.Errorf("storing login transaction failed: %w", err)
	}

	log.Info().Str("userID", user.ID.String()).Msg("login identified")

	return loginToken, nil
}

// VerifyTOTPAndComplete performs login step 2.
//
// Returns:
//   - ErrInvalidSession if the session has no pending login or the token
//     does not match it.
//   - ErrSessionExpired once the login window elapsed; the stale
//     transaction is removed.
//   - ErrInvalidCode if the one-time code fails to verify or replays an
//     already accepted counter. The transaction survives for a retry.
//
// On success the transaction is consumed: the login token cannot be used a
// second time.
func (s *loginService) VerifyTOTPAndComplete(ctx context.Context, sessionKey, loginToken, code string) (models.LoginResult, error) {
	log := logger.FromContext(ctx)

	var transaction models.LoginTransaction
	if err := s.transactions.Get(ctx, sessionKey, models.KindLogin, &transaction); err != nil {
		log.Warn().Err(err).Msg("no pending login for session")
		return models.LoginResult{}, ErrInvalidSession
	}

	if subtle.ConstantTimeCompare([]byte(transaction.LoginToken), []byte(loginToken)) != 1 {
		log.Warn().Msg("login token mismatch")
		return models.LoginResult{}, ErrInvalidSession
	}

	if transaction.Age(s.now()) > s.loginTTL {
		if err := s.transactions.Delete(ctx, sessionKey, models.KindLogin); err != nil {
			log.Err(err).Msg("deleting stale login transaction failed")
		}
		log.Warn().Str("userID", transaction.UserID.String()).Msg("login window elapsed")
		return models.LoginResult{}, ErrSessionExpired
	}

	device, err := s.deviceRepository.FindDeviceByUser(ctx, transaction.UserID)
	if err != nil {
		log.Err(err).Str("userID", transaction.UserID.String()).Msg("device lookup failed")
		return models.LoginResult{}, fmt.Errorf("device lookup failed: %w", err)
	}

	ok, counter, err := totp.VerifyAt(device.Secret, code, s.now())
	if err != nil {
		log.Err(err).Msg("totp verification failed")
		return models.LoginResult{}, fmt.Errorf("totp verification failed: %w", err)
	}
	if !ok {
		log.Warn().Str("userID", transaction.UserID.String()).Msg("invalid totp code during login")
		return models.LoginResult{}, ErrInvalidCode
	}

	// Advancing the counter is what makes a code single-use: the update
	// refuses to move backwards, so a replayed code surfaces here.
	if err = s.deviceRepository.UpdateDeviceCounter(ctx, device.DeviceID, counter); err != nil {
		if errors.Is(err, store.ErrNoDeviceWasFound) {
			log.Warn().Str("userID", transaction.UserID.String()).Msg("replayed totp code during login")
			return models.LoginResult{}, ErrInvalidCode
		}
		log.Err(err).Msg("advancing device counter failed")
		return models.LoginResult{}, fmt.Errorf("advancing device counter failed: %w", err)
	}

	user, err := s.userRepository.FindUserByID(ctx, transaction.UserID)
	if err != nil {
		log.Err(err).Str("userID", transaction.UserID.String()).Msg("user lookup failed")
		return models.LoginResult{}, fmt.Errorf("user lookup failed: %w", err)
	}

	if err = s.transactions.Delete(ctx, sessionKey, models.KindLogin); err != nil {
		log.Err(err).Msg("deleting login transaction failed")
	}

	accessToken, err := utils.GenerateJWTToken(s.tokenIssuer, user.ID, s.tokenDuration, s.tokenSignKey)
	if err != nil {
		log.Err(err).Msg("issuing access token failed")
		return models.LoginResult{}, fmt.Errorf("issuing access token failed: %w", err)
	}

	log.Info().Str("userID", user.ID.String()).Msg("login completed")

	return models.LoginResult{
		WrappedKey:     user.WrappedKey,
		WrappedKeyHMAC: user.WrappedKeyHMAC,
		Algorithm:      user.Algorithm,
		AccessToken:    accessToken,
	}, nil
}

// findUser resolves the identity by identifier first, fingerprint second.
func (s *loginService) findUser(ctx context.Context, identity models.LoginIdentity) (models.User, error) {
	if identity.UserID != uuid.Nil {
		return s.userRepository.FindUserByID(ctx, identity.UserID)
	}
	return s.userRepository.FindUserByFingerprint(ctx, identity.Fingerprint)
}

// generateLoginToken draws a fresh single-use token from the OS CSPRNG.
func generateLoginToken() (string, error) {
	raw := make([]byte, loginTokenBytes)
	if _, err := rand.Read(raw); err != nil {
		return "", err
	}
	return hex.EncodeToString(raw), nil
}
