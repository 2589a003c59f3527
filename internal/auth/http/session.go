package http

import (
	"errors"
	"net/http"

	"github.com/project-nt/auth/internal/auth/service"
	"github.com/project-nt/auth/pkg/authsdk"
	"github.com/project-nt/auth/pkg/httpx"
	"github.com/project-nt/auth/pkg/slogx"
)

type LoginHandler struct {
	SessionService *service.SessionService
	Cookies        httpx.CookieConfig
}

// ServeHTTP godoc
//
//	@Summary		Login
//	@Description	Authenticates with email and password. Sets the accessToken and refreshToken cookies
//	@Description	and returns the same tokens in the body. A new login replaces any earlier refresh token.
//	@Tags			Session
//	@Accept			x-www-form-urlencoded
//	@Produce		json
//	@Param			email		formData	string					true	"Account email"
//	@Param			password	formData	string					true	"Account password"
//	@Success		200			{object}	authsdk.LoginResponse	"accessToken, refreshToken"
//	@Failure		400			{object}	authsdk.ErrorResponse	"Invalid form body"
//	@Failure		401			{object}	authsdk.ErrorResponse	"user_not_found or invalid_credentials"
//	@Failure		500			{object}	authsdk.ErrorResponse	"Internal server error"
//	@Router			/v1/auth/login [post].
func (h *LoginHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	if err := r.ParseForm(); err != nil {
		authsdk.ErrInvalidFormBody.WriteError(w)
		return
	}

	pair, err := h.SessionService.Authenticate(ctx, r.PostFormValue("email"), r.PostFormValue("password"))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUserNotFound):
			authsdk.ErrUserNotFound.WriteError(w)
		case errors.Is(err, service.ErrInvalidCredentials):
			authsdk.ErrInvalidCredentials.WriteError(w)
		default:
			log.Error("login failed", "err", err)
			authsdk.ErrServerError.WriteError(w)
		}
		return
	}

	h.Cookies.SetAccess(w, pair.AccessToken, h.SessionService.AccessTTL)
	h.Cookies.SetRefresh(w, pair.RefreshToken, h.SessionService.RefreshTTL)
	httpx.WriteJSON(w, http.StatusOK, authsdk.LoginResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
	})
}

type LogoutHandler struct {
	SessionService *service.SessionService
	Cookies        httpx.CookieConfig
}

// ServeHTTP godoc
//
//	@Summary		Logout
//	@Description	Revokes the caller's refresh token and clears both session cookies.
//	@Tags			Session
//	@Produce		json
//	@Success		200	{object}	authsdk.MessageResponse	"Logout successful"
//	@Router			/v1/auth/logout [post].
func (h *LogoutHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if refresh := httpx.ReadCookie(r, httpx.RefreshCookie); refresh != "" {
		if err := h.SessionService.Revoke(ctx, refresh); err != nil {
			// The cookies are cleared regardless; the row expires on its own.
			slogx.FromContext(ctx).Warn("failed to revoke refresh token", "err", err)
		}
	}

	h.Cookies.Clear(w)
	httpx.WriteJSON(w, http.StatusOK, authsdk.MessageResponse{Message: "Logout successful"})
}

type SessionHandler struct {
	SessionService *service.SessionService
}

// ServeHTTP godoc
//
//	@Summary		Check session
//	@Description	Reports whether the access token cookie is valid. Never refreshes.
//	@Tags			Session
//	@Produce		json
//	@Success		200	{object}	authsdk.SessionResponse	"loggedIn, user"
//	@Router			/v1/auth/session [get].
func (h *SessionHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	claims, err := h.SessionService.VerifyAccess(httpx.ReadCookie(r, httpx.AccessCookie))
	if err != nil {
		httpx.WriteJSON(w, http.StatusOK, authsdk.SessionResponse{LoggedIn: false})
		return
	}

	user := &authsdk.SessionUser{Email: claims.Email, Name: claims.Name}
	if claims.ExpiresAt != nil {
		user.ExpiresAt = claims.ExpiresAt.Unix()
	}
	httpx.WriteJSON(w, http.StatusOK, authsdk.SessionResponse{LoggedIn: true, User: user})
}

type MeHandler struct {
	UserService *service.UserService

	// LoginURL receives requests whose session has no account behind it.
	LoginURL string
}

// ServeHTTP godoc
//
//	@Summary		Current user profile
//	@Description	Returns the profile of the session owner. Behind the session gate: an expired access
//	@Description	token is renewed from the refresh cookie, and a request with no valid session is
//	@Description	redirected to the login page.
//	@Tags			Session
//	@Security		SessionCookie
//	@Produce		json
//	@Success		200	{object}	authsdk.ProfileResponse	"Profile"
//	@Success		303	"Redirect to login"
//	@Failure		500	{object}	authsdk.ErrorResponse	"Internal server error"
//	@Router			/v1/auth/me [get].
func (h *MeHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	claims, ok := httpx.SessionFromContext(ctx)
	if !ok {
		httpx.SeeOther(w, r, h.LoginURL)
		return
	}

	user, err := h.UserService.Profile(ctx, claims.Email)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			log.Info("session owner no longer exists", "email", claims.Email)
			httpx.SeeOther(w, r, h.LoginURL)
			return
		}
		log.Error("failed to load profile", "email", claims.Email, "err", err)
		authsdk.ErrServerError.WriteError(w)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, authsdk.ProfileResponse{
		ID:              user.ID,
		Name:            user.Name,
		Email:           user.Email,
		CooperationType: user.CooperationType,
		Phone:           user.Phone,
		Techs:           user.Techs,
		OnOff:           user.OnOff,
	})
}
