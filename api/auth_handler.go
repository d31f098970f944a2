package api

import (
	"crypto/subtle"
	"encoding/json"
	"net/http"
	"time"

	"github.com/avisser/personal-site-backend/errs"
	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const adminTokenTTL = 24 * time.Hour

type authHandler struct {
	responder Responder
	logger    zerolog.Logger
	password  string
	jwtSecret []byte
}

func newAuthHandler(password string, jwtSecret []byte) authHandler {
	logger := log.With().Str("handlerName", "authHandler").Logger()

	return authHandler{
		responder: NewResponder(logger),
		logger:    logger,
		password:  password,
		jwtSecret: jwtSecret,
	}
}

type loginRequest struct {
	Password string `json:"password"`
}

// login exchanges the admin password for a signed token used on the
// /admin routes.
func (h authHandler) login() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req loginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("malformed request body"))
			return
		}

		if subtle.ConstantTimeCompare([]byte(req.Password), []byte(h.password)) != 1 {
			h.logger.Warn().Msg("Rejected admin login attempt")
			h.responder.WriteError(w, errs.NewUnauthorizedError("invalid password"))
			return
		}

		now := time.Now()
		token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
			Subject:   "admin",
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(adminTokenTTL)),
		})
		signed, err := token.SignedString(h.jwtSecret)
		if err != nil {
			h.responder.WriteError(w, errs.NewInternalErrorWithCause("failed to sign token", err))
			return
		}

		h.responder.WriteJSON(w, map[string]any{
			"token":     signed,
			"expiresAt": now.Add(adminTokenTTL),
		})
	}
}
