package authsdk

import (
	"context"
	"net/http"
	"net/url"
)

// FindEmail looks an account's email up by name and phone. It returns ""
// when nothing matched.
func (c *Client) FindEmail(ctx context.Context, name, phone string) (string, error) {
	resp, err := c.postForm(ctx, "/v1/auth/find-email", url.Values{
		"name":  {name},
		"phone": {phone},
	})
	if err != nil {
		return "", err
	}
	return decodeEmail(resp)
}

// RequestPasswordReset asks for a reset link to be mailed. It returns the
// email the link was sent to, or "" when no unique account matched.
func (c *Client) RequestPasswordReset(ctx context.Context, email, phone string) (string, error) {
	resp, err := c.postForm(ctx, "/v1/auth/password/forgot", url.Values{
		"email": {email},
		"phone": {phone},
	})
	if err != nil {
		return "", err
	}
	return decodeEmail(resp)
}

// VerifyResetToken consumes a reset token and returns its email.
func (c *Client) VerifyResetToken(ctx context.Context, token string) (string, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, "/v1/auth/password/verify/"+url.PathEscape(token), nil, nil)
	if err != nil {
		return "", err
	}

	var out VerifyResetResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return "", err
	}
	return out.Email, nil
}

// ResetPassword sets a new password with a verified reset token. The
// service redirects to login on success; the Location is returned.
func (c *Client) ResetPassword(ctx context.Context, token, newPassword string) (string, error) {
	resp, err := c.postForm(ctx, "/v1/auth/password/reset", url.Values{
		"token":    {token},
		"password": {newPassword},
	})
	if err != nil {
		return "", err
	}
	return checkRedirect(resp)
}

func decodeEmail(resp *http.Response) (string, error) {
	var out EmailResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return "", err
	}
	if out.Email == nil {
		return "", nil
	}
	return *out.Email, nil
}
