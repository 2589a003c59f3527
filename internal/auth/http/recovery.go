package http

import (
	"errors"
	"net/http"

	"github.com/project-nt/auth/internal/auth/service"
	"github.com/project-nt/auth/pkg/authsdk"
	"github.com/project-nt/auth/pkg/httpx"
	"github.com/project-nt/auth/pkg/slogx"
)

// emailOrNull renders "" as a JSON null.
func emailOrNull(email string) authsdk.EmailResponse {
	if email == "" {
		return authsdk.EmailResponse{}
	}
	return authsdk.EmailResponse{Email: &email}
}

type FindEmailHandler struct {
	UserService *service.UserService
}

// ServeHTTP godoc
//
//	@Summary		Find account email
//	@Description	Looks up the email of an account by name and phone. Returns null when nothing matches.
//	@Tags			Recovery
//	@Accept			x-www-form-urlencoded
//	@Produce		json
//	@Param			name	formData	string					true	"Display name"
//	@Param			phone	formData	string					true	"Phone number"
//	@Success		200		{object}	authsdk.EmailResponse	"email or null"
//	@Failure		500		{object}	authsdk.ErrorResponse	"Internal server error"
//	@Router			/v1/auth/find-email [post].
func (h *FindEmailHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if err := r.ParseForm(); err != nil {
		authsdk.ErrInvalidFormBody.WriteError(w)
		return
	}

	email, err := h.UserService.FindEmail(ctx, r.PostFormValue("name"), r.PostFormValue("phone"))
	if err != nil {
		slogx.FromContext(ctx).Error("failed to find email", "err", err)
		authsdk.ErrServerError.WriteError(w)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, emailOrNull(email))
}

type ForgotPasswordHandler struct {
	ResetService *service.ResetService
}

// ServeHTTP godoc
//
//	@Summary		Request a password reset
//	@Description	Mails a single-use reset link when exactly one account matches email and phone.
//	@Description	Returns null when no account, or more than one, matched.
//	@Tags			Recovery
//	@Accept			x-www-form-urlencoded
//	@Produce		json
//	@Param			email	formData	string					true	"Account email"
//	@Param			phone	formData	string					true	"Phone number"
//	@Success		200		{object}	authsdk.EmailResponse	"email or null"
//	@Failure		500		{object}	authsdk.ErrorResponse	"Internal server error"
//	@Router			/v1/auth/password/forgot [post].
func (h *ForgotPasswordHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if err := r.ParseForm(); err != nil {
		authsdk.ErrInvalidFormBody.WriteError(w)
		return
	}

	email, err := h.ResetService.RequestReset(ctx, r.PostFormValue("email"), r.PostFormValue("phone"))
	if err != nil {
		slogx.FromContext(ctx).Error("failed to initiate password reset", "err", err)
		authsdk.ErrServerError.WriteError(w)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, emailOrNull(email))
}

type VerifyResetHandler struct {
	ResetService *service.ResetService
}

// ServeHTTP godoc
//
//	@Summary		Verify a reset token
//	@Description	Checks and consumes a reset token from a mailed link. A token can be verified once.
//	@Tags			Recovery
//	@Produce		json
//	@Param			token	path		string						true	"Reset token"
//	@Success		200		{object}	authsdk.VerifyResetResponse	"message, email"
//	@Failure		400		{object}	authsdk.ErrorResponse		"reset_token_invalid or reset_token_expired"
//	@Failure		500		{object}	authsdk.ErrorResponse		"Internal server error"
//	@Router			/v1/auth/password/verify/{token} [get].
func (h *VerifyResetHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	email, err := h.ResetService.VerifyResetToken(ctx, r.PathValue("token"))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrResetTokenInvalid):
			authsdk.ErrResetTokenInvalid.WriteError(w)
		case errors.Is(err, service.ErrResetTokenExpired):
			authsdk.ErrResetTokenExpired.WriteError(w)
		default:
			slogx.FromContext(ctx).Error("failed to verify reset token", "err", err)
			authsdk.ErrServerError.WriteError(w)
		}
		return
	}

	httpx.WriteJSON(w, http.StatusOK, authsdk.VerifyResetResponse{
		Message: "reset token is valid",
		Email:   email,
	})
}

type ResetPasswordHandler struct {
	ResetService *service.ResetService
	LoginURL     string
}

// ServeHTTP godoc
//
//	@Summary		Set a new password
//	@Description	Sets a new password for the account a reset token was issued to, then redirects to login.
//	@Tags			Recovery
//	@Accept			x-www-form-urlencoded
//	@Produce		json
//	@Param			token		formData	string	true	"Reset token"
//	@Param			password	formData	string	true	"New password"
//	@Success		303			"Redirect to login"
//	@Failure		400			{object}	authsdk.ErrorResponse	"Missing password or unknown account"
//	@Failure		500			{object}	authsdk.ErrorResponse	"Internal server error"
//	@Router			/v1/auth/password/reset [post].
func (h *ResetPasswordHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if err := r.ParseForm(); err != nil {
		authsdk.ErrInvalidFormBody.WriteError(w)
		return
	}

	err := h.ResetService.UpdatePassword(ctx, r.PostFormValue("token"), r.PostFormValue("password"))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidInput):
			authsdk.NewAPIError(http.StatusBadRequest, authsdk.ErrorCodeInvalidRequest, "password is required").WriteError(w)
		case errors.Is(err, service.ErrResetTokenInvalid):
			authsdk.ErrResetTokenInvalid.WriteError(w)
		default:
			slogx.FromContext(ctx).Error("failed to update password", "err", err)
			authsdk.ErrServerError.WriteError(w)
		}
		return
	}

	httpx.SeeOther(w, r, h.LoginURL)
}
