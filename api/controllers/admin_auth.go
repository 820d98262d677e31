package controllers

import (
	"net/http"
	"strings"
	"time"

	"github.com/cutiefy/cutiefy-backend/api/responses"
	"github.com/cutiefy/cutiefy-backend/api/validators"
	pkgauth "github.com/cutiefy/cutiefy-backend/pkg/auth"
	"github.com/cutiefy/cutiefy-backend/pkg/config"
	pkgerrors "github.com/cutiefy/cutiefy-backend/pkg/errors"
	"github.com/cutiefy/cutiefy-backend/pkg/logger"
	"github.com/cutiefy/cutiefy-backend/pkg/security"
)

type adminLoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// AdminLogin checks the configured admin credentials and mints a bearer
// token. Wrong email and wrong password return the same error.
func AdminLogin(cfg *config.Config, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req adminLoginRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		invalid := pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid credentials")

		if !strings.EqualFold(req.Email, cfg.Admin.Email) {
			responses.WriteError(r.Context(), logg, w, invalid)
			return
		}
		ok, err := security.VerifyPassword(req.Password, cfg.Admin.PasswordHash)
		if err != nil || !ok {
			responses.WriteError(r.Context(), logg, w, invalid)
			return
		}

		now := time.Now()
		token, err := pkgauth.MintAdminToken(cfg.JWT, now, cfg.Admin.Email)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "mint admin token"))
			return
		}
		expiresAt := now.Add(cfg.JWT.Expiration())

		responses.WriteSuccess(w, map[string]any{
			"token":      token,
			"expires_at": expiresAt,
		})
	}
}
