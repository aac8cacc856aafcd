package http

import (
	"encoding/base64"
	"encoding/json"
	"net/http"

	"github.com/google/uuid"

	"github.com/apmod1/password-manager/internal/logger"
	"github.com/apmod1/password-manager/internal/utils"
	"github.com/apmod1/password-manager/models"
)

// identify is login step 1: it resolves the account by identifier or
// username fingerprint and returns the single-use login token.
func (h *Handler) identify(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	sessionKey, ok := sessionKeyFromContext(ctx)
	if !ok {
		log.Error().Err(ErrNoSessionKey).Send()
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	var request models.LoginIdentifyRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		log.Err(err).Msg("invalid JSON was passed")
		http.Error(w, "invalid JSON was passed", http.StatusBadRequest)
		return
	}

	identity := models.LoginIdentity{}
	if request.UUID != "" {
		userID, err := uuid.Parse(request.UUID)
		if err != nil {
			log.Err(err).Msg("malformed account identifier")
			http.Error(w, "malformed account identifier", http.StatusBadRequest)
			return
		}
		identity.UserID = userID
	}
	if request.UsernameHash != "" {
		fingerprint, err := base64.StdEncoding.DecodeString(request.UsernameHash)
		if err != nil {
			log.Err(err).Msg("username hash is not valid base64")
			http.Error(w, "username hash is not valid base64", http.StatusBadRequest)
			return
		}
		identity.Fingerprint = fingerprint
	}
	if request.AuthHash != "" {
		authHash, err := base64.StdEncoding.DecodeString(request.AuthHash)
		if err != nil {
			log.Err(err).Msg("auth hash is not valid base64")
			http.Error(w, "auth hash is not valid base64", http.StatusBadRequest)
			return
		}
		identity.AuthHash = authHash
	}

	loginToken, err := h.services.LoginService.Identify(ctx, sessionKey, identity)
	if err != nil {
		writeError(w, r, err)
		return
	}

	response := models.LoginIdentifyResponse{
		LoginToken:   loginToken,
		TOTPRequired: true,
	}
	if _, err = utils.WriteJSON(w, response, http.StatusOK); err != nil {
		log.Err(err).Msg("writing response failed")
	}
}

// verifyLoginTOTP is login step 2: it exchanges the login token and a valid
// one-time code for the stored key material and a vault access token.
func (h *Handler) verifyLoginTOTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	sessionKey, ok := sessionKeyFromContext(ctx)
	if !ok {
		log.Error().Err(ErrNoSessionKey).Send()
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	var request models.LoginTOTPRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		log.Err(err).Msg("invalid JSON was passed")
		http.Error(w, "invalid JSON was passed", http.StatusBadRequest)
		return
	}

	result, err := h.services.LoginService.VerifyTOTPAndComplete(ctx, sessionKey, request.LoginToken, request.TOTPCode)
	if err != nil {
		writeError(w, r, err)
		return
	}

	response := models.LoginTOTPResponse{
		WrappedKey:     base64.StdEncoding.EncodeToString(result.WrappedKey),
		HMACWrappedKey: base64.StdEncoding.EncodeToString(result.WrappedKeyHMAC),
		Algorithm:      result.Algorithm.String(),
		AccessToken:    result.AccessToken.SignedString,
	}
	if _, err = utils.WriteJSON(w, response, http.StatusOK); err != nil {
		log.Err(err).Msg("writing response failed")
	}
}
