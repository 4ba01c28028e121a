package rest

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/dmitrijs2005/secretstash/internal/common"
	"github.com/dmitrijs2005/secretstash/internal/server/services"
	"github.com/go-chi/chi/v5"
)

// Register handles POST /api/profiles/register.
func (s *Server) Register(w http.ResponseWriter, r *http.Request) {
	req, ok := bodyFrom[credentialsRequest](r.Context())
	if !ok {
		respondError(w, http.StatusBadRequest, msgInvalidBody)
		return
	}

	id, err := s.profiles.RegisterUser(r.Context(), req.Email, req.PasswordHash)
	if err != nil {
		if errors.Is(err, common.ErrDuplicateEmail) {
			respondError(w, http.StatusBadRequest, fmt.Sprintf("Email %s already exists", req.Email))
			return
		}
		s.internalError(w, r, "Unexpected error occurred when registering user", err)
		return
	}

	s.logger.Info(r.Context(), "Registered", "profile_id", id)
	respondSuccess(w, http.StatusOK, "User registered successfully", map[string]any{"profile_id": id})
}

// Login handles POST /api/profiles/login.
func (s *Server) Login(w http.ResponseWriter, r *http.Request) {
	req, ok := bodyFrom[credentialsRequest](r.Context())
	if !ok {
		respondError(w, http.StatusBadRequest, msgInvalidBody)
		return
	}

	res, err := s.profiles.LoginUser(r.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, common.ErrProfileNotFound):
			respondError(w, http.StatusBadRequest, fmt.Sprintf("No profile found for %s. Please Register", req.Email))
		case errors.Is(err, common.ErrPasswordMismatch):
			respondError(w, http.StatusBadRequest, "Password does not match with email")
		default:
			s.internalError(w, r, "Unexpected error occurred when logging in", err)
		}
		return
	}

	if !res.HasUsername {
		respondSuccess(w, http.StatusOK, "Transfer user to username page", map[string]any{
			"has_username": false,
			"user":         res.User,
		})
		return
	}

	respondSuccess(w, http.StatusOK, "User logged in successfully", map[string]any{
		"has_username": true,
		"token":        res.Token,
		"user":         res.User,
	})
}

// RegisterUsername handles PATCH /api/profiles/{profile_id}/username.
func (s *Server) RegisterUsername(w http.ResponseWriter, r *http.Request) {
	profileID, err := strconv.ParseInt(chi.URLParam(r, "profile_id"), 10, 64)
	if err != nil || profileID <= 0 {
		respondError(w, http.StatusBadRequest, "Invalid profile id")
		return
	}

	req, ok := bodyFrom[usernameRequest](r.Context())
	if !ok {
		respondError(w, http.StatusBadRequest, msgInvalidBody)
		return
	}

	res, err := s.profiles.RegisterUsername(r.Context(), profileID, req.Username)
	if err != nil {
		switch {
		case errors.Is(err, common.ErrUsernameTaken):
			respondError(w, http.StatusBadRequest, fmt.Sprintf("Username %s already in use. Please choose another", req.Username))
		case errors.Is(err, common.ErrProfileNotFound):
			respondError(w, http.StatusBadRequest, fmt.Sprintf("User %s not found", req.Username))
		default:
			s.internalError(w, r, "Unexpected error occurred when updating username", err)
		}
		return
	}

	respondSuccess(w, http.StatusOK, "Username updated successfully", map[string]any{
		"token": res.Token,
		"user":  res.User,
	})
}

// Me handles GET /api/profiles/me.
func (s *Server) Me(w http.ResponseWriter, r *http.Request) {
	id, ok := IdentityFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, msgNoToken)
		return
	}

	p, err := s.profiles.GetProfileInfo(r.Context(), id.ProfileID)
	if err != nil {
		if errors.Is(err, common.ErrProfileNotFound) {
			respondError(w, http.StatusBadRequest, "Profile not found")
			return
		}
		s.internalError(w, r, "Unexpected error occurred when retrieving profile data", err)
		return
	}

	respondSuccess(w, http.StatusOK, "Retrieved profile data successfully", map[string]any{"user": p})
}

// Health handles GET /api/health.
func (s *Server) Health(w http.ResponseWriter, r *http.Request) {
	if s.db != nil {
		if err := s.db.PingContext(r.Context()); err != nil {
			s.logger.Error(r.Context(), "health check failed", "error", err)
			respondError(w, http.StatusServiceUnavailable, "Database unavailable")
			return
		}
	}
	respondSuccess(w, http.StatusOK, "OK", nil)
}

// internalError logs err and answers 500 with msg.
func (s *Server) internalError(w http.ResponseWriter, r *http.Request, msg string, err error) {
	s.logger.Error(r.Context(), msg, "error", err, "path", r.URL.Path)
	respondError(w, http.StatusInternalServerError, msg)
}

var _ ProfileService = (*services.ProfileService)(nil)
