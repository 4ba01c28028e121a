package rest

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/dmitrijs2005/secretstash/internal/common"
	"github.com/dmitrijs2005/secretstash/internal/server/services"
	"github.com/go-chi/chi/v5"
)

// GetAllMessages handles GET /api/game/getAllMessages.
func (s *Server) GetAllMessages(w http.ResponseWriter, r *http.Request) {
	items, err := s.game.GetAllMessages(r.Context())
	if err != nil {
		s.internalError(w, r, "Unexpected error occurred when retrieving all secret messages", err)
		return
	}
	respondSuccess(w, http.StatusOK, "Retrieved all secret messages successfully", map[string]any{"secretMessages": items})
}

// GetStashedSecrets handles GET /api/game/stash.
func (s *Server) GetStashedSecrets(w http.ResponseWriter, r *http.Request) {
	id, ok := IdentityFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, msgNoToken)
		return
	}

	items, err := s.game.GetStashedSecrets(r.Context(), id.ProfileID)
	if err != nil {
		s.internalError(w, r, "Unexpected error occurred when retrieving stashed secret messages", err)
		return
	}
	respondSuccess(w, http.StatusOK, "Retrieved all stashed secret messages successfully", map[string]any{"stashedSecrets": items})
}

// GetAllRanking handles GET /api/game/ranking.
func (s *Server) GetAllRanking(w http.ResponseWriter, r *http.Request) {
	items, err := s.game.GetAllRanking(r.Context())
	if err != nil {
		s.internalError(w, r, "Unexpected error occurred when retrieving ranking", err)
		return
	}
	respondSuccess(w, http.StatusOK, "Retrieved ranking successfully", map[string]any{"ranking": items})
}

// PostNewSecret handles POST /api/game/postNewSecret.
func (s *Server) PostNewSecret(w http.ResponseWriter, r *http.Request) {
	id, ok := IdentityFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, msgNoToken)
		return
	}
	// Coordinates are non-nil once the body passed validation.
	req, ok := bodyFrom[secretRequest](r.Context())
	if !ok {
		respondError(w, http.StatusBadRequest, msgInvalidBody)
		return
	}

	err := s.game.PostNewSecret(r.Context(), req.Message, id.ProfileID, *req.Latitude, *req.Longitude)
	if err != nil {
		if errors.Is(err, common.ErrInsertFailed) {
			respondError(w, http.StatusBadRequest, "Failed to post new secret message")
			return
		}
		s.internalError(w, r, "Unexpected error occurred when posting new secret message", err)
		return
	}

	respondSuccess(w, http.StatusCreated, "New secret message posted successfully", nil)
}

// DeleteAndStashSecret handles POST /api/game/secrets/{secretId}/stash.
func (s *Server) DeleteAndStashSecret(w http.ResponseWriter, r *http.Request) {
	id, ok := IdentityFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, msgNoToken)
		return
	}
	secretID, err := strconv.ParseInt(chi.URLParam(r, "secretId"), 10, 64)
	if err != nil || secretID <= 0 {
		respondError(w, http.StatusBadRequest, "Invalid secret id")
		return
	}

	err = s.game.DeleteAndStashSecret(r.Context(), id.ProfileID, secretID)
	if err != nil {
		switch {
		case errors.Is(err, common.ErrSecretNotFound):
			respondError(w, http.StatusBadRequest, "Secret message not found or already deleted")
		case errors.Is(err, common.ErrSelfClaimForbidden):
			respondError(w, http.StatusBadRequest, "You cannot stash your own secret message")
		default:
			s.internalError(w, r, "Unexpected error occurred when deleting and stashing secret", err)
		}
		return
	}

	s.logger.Info(r.Context(), "secret claimed", "profile_id", id.ProfileID, "secret_id", secretID)
	respondSuccess(w, http.StatusOK, "Successfully deleted and stashed the secret message", nil)
}

var _ GameService = (*services.GameService)(nil)
