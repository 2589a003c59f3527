package http

import (
	"errors"
	"net/http"

	"github.com/project-nt/auth/internal/auth/service"
	"github.com/project-nt/auth/pkg/authsdk"
	"github.com/project-nt/auth/pkg/httpx"
	"github.com/project-nt/auth/pkg/slogx"
)

type RegisterHandler struct {
	UserService *service.UserService
	LoginURL    string
}

// ServeHTTP godoc
//
//	@Summary		Register
//	@Description	Creates an account and redirects to the login page.
//	@Tags			Session
//	@Accept			x-www-form-urlencoded
//	@Produce		json
//	@Param			name		formData	string	false	"Display name"
//	@Param			email		formData	string	true	"Email, the account's identity"
//	@Param			password	formData	string	true	"Password"
//	@Param			type		formData	string	false	"Cooperation type"
//	@Param			phone		formData	string	false	"Phone number"
//	@Param			techs		formData	string	false	"Technologies"
//	@Param			onOffline	formData	string	false	"online or offline; anything else is stored as unknown"
//	@Success		303			"Redirect to login"
//	@Failure		400			{object}	authsdk.ErrorResponse	"Invalid form body or missing email/password"
//	@Failure		409			{object}	authsdk.ErrorResponse	"Email already registered"
//	@Failure		500			{object}	authsdk.ErrorResponse	"Internal server error"
//	@Router			/v1/auth/register [post].
func (h *RegisterHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	if err := r.ParseForm(); err != nil {
		authsdk.ErrInvalidFormBody.WriteError(w)
		return
	}

	_, err := h.UserService.Register(ctx, service.RegisterInput{
		Name:            r.PostFormValue("name"),
		Email:           r.PostFormValue("email"),
		Password:        r.PostFormValue("password"),
		CooperationType: r.PostFormValue("type"),
		Phone:           r.PostFormValue("phone"),
		Techs:           r.PostFormValue("techs"),
		OnlineFlag:      r.PostFormValue("onOffline"),
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidInput):
			authsdk.NewAPIError(http.StatusBadRequest, authsdk.ErrorCodeInvalidRequest, "email and password are required").WriteError(w)
		case errors.Is(err, service.ErrEmailTaken):
			authsdk.ErrEmailTaken.WriteError(w)
		default:
			log.Error("failed to register user", "err", err)
			authsdk.ErrServerError.WriteError(w)
		}
		return
	}

	httpx.SeeOther(w, r, h.LoginURL)
}
