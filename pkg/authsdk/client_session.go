package authsdk

import (
	"context"
	"net/http"
	"net/url"
)

// Register creates an account. On success the service redirects to its
// login page; the Location is returned.
func (c *Client) Register(ctx context.Context, req RegisterRequest) (string, error) {
	resp, err := c.postForm(ctx, "/v1/auth/register", url.Values{
		"name":            {req.Name},
		"email":           {req.Email},
		"password":        {req.Password},
		"type":            {req.CooperationType},
		"phone":           {req.Phone},
		"techs":           {req.Techs},
		"onOffline":       {req.OnlineFlag},
	})
	if err != nil {
		return "", err
	}
	return checkRedirect(resp)
}

// Login authenticates and stores the session cookies in the client's jar.
func (c *Client) Login(ctx context.Context, email, password string) (*LoginResponse, error) {
	resp, err := c.postForm(ctx, "/v1/auth/login", url.Values{
		"email":    {email},
		"password": {password},
	})
	if err != nil {
		return nil, err
	}

	var out LoginResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// Logout revokes the refresh token and clears the session cookies.
func (c *Client) Logout(ctx context.Context) error {
	resp, err := c.doRequest(ctx, http.MethodPost, "/v1/auth/logout", nil, nil)
	if err != nil {
		return err
	}

	var out MessageResponse
	return decodeJSON(resp, &out, http.StatusOK)
}

// Session reports whether the current access token is valid.
func (c *Client) Session(ctx context.Context) (*SessionResponse, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, "/v1/auth/session", nil, nil)
	if err != nil {
		return nil, err
	}

	var out SessionResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// Me fetches the caller's profile through the session gate. An expired
// access token is renewed by the server from the refresh cookie. When both
// are invalid the server redirects to login and ErrInvalidToken is returned.
func (c *Client) Me(ctx context.Context) (*ProfileResponse, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, "/v1/auth/me", nil, nil)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode == http.StatusSeeOther {
		_ = resp.Body.Close()
		return nil, ErrInvalidToken
	}

	var out ProfileResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}
