package rest

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/dmitrijs2005/secretstash/internal/server/auth"
	"github.com/go-playground/validator/v10"
)

const msgInvalidBody = "Invalid request body"

// credentialsRequest is the body of register and login.
type credentialsRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=64"`

	// PasswordHash is set by hashPassword; Password is cleared at that point.
	PasswordHash string `json:"-" validate:"-"`
}

type usernameRequest struct {
	Username string `json:"username" validate:"required,min=4,max=20"`
}

// secretRequest is the body of postNewSecret. Coordinates are pointers so a
// missing value is distinguishable from zero.
type secretRequest struct {
	Message   string   `json:"message" validate:"required,max=500"`
	Latitude  *float64 `json:"latitude" validate:"required,min=-90,max=90"`
	Longitude *float64 `json:"longitude" validate:"required,min=-180,max=180"`
}

const coordinatesMessage = "Latitude and Longitude must be valid numbers"

// fieldMessages maps a struct field and failed validation tag to the client
// facing message. "*" matches any tag of that field.
var fieldMessages = map[string]map[string]string{
	"Email": {
		"required": "Email required",
		"email":    "Please use a valid email",
	},
	"Username": {
		"required": "Username is required",
		"min":      "Username needs to be between 4 - 20 characters long",
		"max":      "Username needs to be between 4 - 20 characters long",
	},
	"Password": {
		"required": "Password is required",
		"min":      "Password needs to be between 8 to 64 characters long",
		"max":      "Password needs to be between 8 to 64 characters long",
	},
	"Message": {
		"required": "Message is required",
		"max":      "Message is too long. Must be less than 500 characters",
	},
	"Latitude":  {"*": coordinatesMessage},
	"Longitude": {"*": coordinatesMessage},
}

func messageFor(fe validator.FieldError) string {
	byTag, ok := fieldMessages[fe.StructField()]
	if !ok {
		return msgInvalidBody
	}
	if msg, ok := byTag[fe.Tag()]; ok {
		return msg
	}
	if msg, ok := byTag["*"]; ok {
		return msg
	}
	return msgInvalidBody
}

// decodeBody decodes the JSON request body into a fresh T and stores it in
// the request context. An empty body decodes as an empty object.
func decodeBody[T any](next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body := new(T)
		if err := json.NewDecoder(r.Body).Decode(body); err != nil && !errors.Is(err, io.EOF) {
			respondError(w, http.StatusBadRequest, msgInvalidBody)
			return
		}
		next.ServeHTTP(w, r.WithContext(withBody(r.Context(), body)))
	})
}

// requireFields validates the named fields of the decoded body and answers
// 400 with the message of the first failing one.
func (s *Server) requireFields(fields ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			body := r.Context().Value(bodyKey)
			if body == nil {
				respondError(w, http.StatusBadRequest, msgInvalidBody)
				return
			}

			if err := s.validate.StructPartial(body, fields...); err != nil {
				var verrs validator.ValidationErrors
				if errors.As(err, &verrs) && len(verrs) > 0 {
					respondError(w, http.StatusBadRequest, messageFor(verrs[0]))
					return
				}
				respondError(w, http.StatusBadRequest, msgInvalidBody)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func (s *Server) validateEmail(next http.Handler) http.Handler {
	return s.requireFields("Email")(next)
}

func (s *Server) validatePassword(next http.Handler) http.Handler {
	return s.requireFields("Password")(next)
}

func (s *Server) validateUsername(next http.Handler) http.Handler {
	return s.requireFields("Username")(next)
}

func (s *Server) validateSecret(next http.Handler) http.Handler {
	return s.requireFields("Message", "Latitude", "Longitude")(next)
}

// hashPassword validates the password, replaces it with its bcrypt hash and
// passes the request on.
func (s *Server) hashPassword(next http.Handler) http.Handler {
	return s.validatePassword(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		req, ok := bodyFrom[credentialsRequest](r.Context())
		if !ok {
			respondError(w, http.StatusBadRequest, msgInvalidBody)
			return
		}

		hash, err := auth.HashPassword(req.Password)
		if err != nil {
			s.logger.Error(r.Context(), "password hashing failed", "error", err)
			respondError(w, http.StatusInternalServerError, msgInternalError)
			return
		}
		req.PasswordHash = hash
		req.Password = ""

		next.ServeHTTP(w, r)
	}))
}
