package http

import (
	"encoding/base64"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/apmod1/password-manager/internal/logger"
	"github.com/apmod1/password-manager/internal/service"
	"github.com/apmod1/password-manager/internal/utils"
	"github.com/apmod1/password-manager/models"
)

// hmacHeader carries the optional client integrity tag on vault writes.
const hmacHeader = "X-HMAC"

func (h *Handler) listItems(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		log.Error().Err(ErrNoUserID).Send()
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	items, err := h.services.VaultService.ListItems(ctx, userID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	if _, err = utils.WriteJSON(w, models.VaultItemListResponse{Items: items}, http.StatusOK); err != nil {
		log.Err(err).Msg("writing response failed")
	}
}

func (h *Handler) createItem(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		log.Error().Err(ErrNoUserID).Send()
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	var request models.CreateVaultItemRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		log.Err(err).Msg("invalid JSON was passed")
		http.Error(w, "invalid JSON was passed", http.StatusBadRequest)
		return
	}

	tag, err := integrityTag(r)
	if err != nil {
		log.Err(err).Msg("integrity tag is not valid base64")
		http.Error(w, "integrity tag is not valid base64", http.StatusBadRequest)
		return
	}

	item := models.VaultItem{
		EncryptedData: request.EncryptedData,
		Name:          request.Name,
	}
	created, err := h.services.VaultService.CreateItem(ctx, userID, item, tag)
	if err != nil {
		writeError(w, r, err)
		return
	}

	if _, err = utils.WriteJSON(w, created, http.StatusCreated); err != nil {
		log.Err(err).Msg("writing response failed")
	}
}

func (h *Handler) getItem(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		log.Error().Err(ErrNoUserID).Send()
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	itemID, err := itemIDFromRequest(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	item, err := h.services.VaultService.GetItem(ctx, userID, itemID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	if _, err = utils.WriteJSON(w, item, http.StatusOK); err != nil {
		log.Err(err).Msg("writing response failed")
	}
}

func (h *Handler) updateItem(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		log.Error().Err(ErrNoUserID).Send()
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	itemID, err := itemIDFromRequest(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	var request models.UpdateVaultItemRequest
	if err = json.NewDecoder(r.Body).Decode(&request); err != nil {
		log.Err(err).Msg("invalid JSON was passed")
		http.Error(w, "invalid JSON was passed", http.StatusBadRequest)
		return
	}

	tag, err := integrityTag(r)
	if err != nil {
		log.Err(err).Msg("integrity tag is not valid base64")
		http.Error(w, "integrity tag is not valid base64", http.StatusBadRequest)
		return
	}

	update := models.VaultItemUpdate{
		EncryptedData: request.EncryptedData,
		Name:          request.Name,
	}
	updated, err := h.services.VaultService.UpdateItem(ctx, userID, itemID, update, tag)
	if err != nil {
		writeError(w, r, err)
		return
	}

	if _, err = utils.WriteJSON(w, updated, http.StatusOK); err != nil {
		log.Err(err).Msg("writing response failed")
	}
}

func (h *Handler) deleteItem(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		log.Error().Err(ErrNoUserID).Send()
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	itemID, err := itemIDFromRequest(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	if err = h.services.VaultService.DeleteItem(ctx, userID, itemID); err != nil {
		writeError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// itemIDFromRequest parses the item identifier from the URL. A malformed
// identifier cannot name an item, so it reports the same "not found" as a
// missing one.
func itemIDFromRequest(r *http.Request) (uuid.UUID, error) {
	itemID, err := uuid.Parse(chi.URLParam(r, "itemID"))
	if err != nil {
		return uuid.Nil, service.ErrNotFound
	}
	return itemID, nil
}

// integrityTag decodes the optional X-HMAC header. An absent header yields
// a nil tag, which skips the integrity check downstream.
func integrityTag(r *http.Request) ([]byte, error) {
	raw := r.Header.Get(hmacHeader)
	if raw == "" {
		return nil, nil
	}
	return base64.StdEncoding.DecodeString(raw)
}
