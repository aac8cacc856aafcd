package http

import (
	"encoding/base64"
	"encoding/json"
	"net/http"

	"github.com/apmod1/password-manager/internal/logger"
	"github.com/apmod1/password-manager/internal/qrcode"
	"github.com/apmod1/password-manager/internal/utils"
	"github.com/apmod1/password-manager/models"
)

// initiateRegistration is registration step 1: it hands the client the
// candidate account identifier, the secret words and the authenticator
// provisioning material, QR image included.
func (h *Handler) initiateRegistration(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	sessionKey, ok := sessionKeyFromContext(ctx)
	if !ok {
		log.Error().Err(ErrNoSessionKey).Send()
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	challenge, err := h.services.RegistrationService.Initiate(ctx, sessionKey)
	if err != nil {
		writeError(w, r, err)
		return
	}

	// the QR code is a convenience; provisioning still works without it
	qr, err := qrcode.GenerateDataURI(challenge.ProvisioningURI, qrcode.DefaultSize)
	if err != nil {
		log.Warn().Err(err).Msg("rendering provisioning QR code failed")
		qr = ""
	}

	response := models.InitiateRegistrationResponse{
		UUID:            challenge.UserID.String(),
		Words:           challenge.Words,
		TOTPSecret:      challenge.TOTPSecret,
		ProvisioningURI: challenge.ProvisioningURI,
		QRCode:          qr,
	}
	if _, err = utils.WriteJSON(w, response, http.StatusOK); err != nil {
		log.Err(err).Msg("writing response failed")
	}
}

// verifyRegistrationTOTP is registration step 2: it confirms the pending
// authenticator with a one-time code. Answers 204 on success.
func (h *Handler) verifyRegistrationTOTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	sessionKey, ok := sessionKeyFromContext(ctx)
	if !ok {
		log.Error().Err(ErrNoSessionKey).Send()
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	var request models.VerifyTOTPRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		log.Err(err).Msg("invalid JSON was passed")
		http.Error(w, "invalid JSON was passed", http.StatusBadRequest)
		return
	}

	if err := h.services.RegistrationService.VerifyTOTP(ctx, sessionKey, request.TOTPCode); err != nil {
		writeError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// completeRegistration is registration step 3: it receives the client-side
// credential material and finalizes the account.
func (h *Handler) completeRegistration(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	sessionKey, ok := sessionKeyFromContext(ctx)
	if !ok {
		log.Error().Err(ErrNoSessionKey).Send()
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	var request models.CompleteRegistrationRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		log.Err(err).Msg("invalid JSON was passed")
		http.Error(w, "invalid JSON was passed", http.StatusBadRequest)
		return
	}

	fingerprint, err := base64.StdEncoding.DecodeString(request.UsernameHash)
	if err != nil {
		log.Err(err).Msg("username hash is not valid base64")
		http.Error(w, "username hash is not valid base64", http.StatusBadRequest)
		return
	}
	wrappedKey, err := base64.StdEncoding.DecodeString(request.WrappedKey)
	if err != nil {
		log.Err(err).Msg("wrapped key is not valid base64")
		http.Error(w, "wrapped key is not valid base64", http.StatusBadRequest)
		return
	}
	wrappedKeyHMAC, err := base64.StdEncoding.DecodeString(request.HMACWrappedKey)
	if err != nil {
		log.Err(err).Msg("wrapped key tag is not valid base64")
		http.Error(w, "wrapped key tag is not valid base64", http.StatusBadRequest)
		return
	}

	// auth_hash is the client's opaque password verifier, stored verbatim
	completion := models.CompleteRegistration{
		Fingerprint:    fingerprint,
		WrappedKey:     wrappedKey,
		WrappedKeyHMAC: wrappedKeyHMAC,
		Algorithm:      models.UnwrapAlgorithm(request.Algorithm),
		Email:          request.Email,
		Verifier:       request.AuthHash,
	}

	userID, err := h.services.RegistrationService.Complete(ctx, sessionKey, completion)
	if err != nil {
		writeError(w, r, err)
		return
	}

	if _, err = utils.WriteJSON(w, models.CompleteRegistrationResponse{UUID: userID.String()}, http.StatusCreated); err != nil {
		log.Err(err).Msg("writing response failed")
	}
}
