/*
Package authsdk provides a client SDK for the Project-NT authentication service
along with the JSON types the service speaks.

# Sessions

The service keeps its session in two HttpOnly cookies, accessToken and
refreshToken. Client carries a cookie jar, so a login on one Client
authenticates every later call made through it:

	client := authsdk.NewClient("http://localhost:8080")

	if _, err := client.Login(ctx, "ada@example.com", "hunter22"); err != nil {
		return err
	}

	// Gated endpoint. An expired access token is renewed server side
	// from the refresh cookie.
	me, err := client.Me(ctx)

	err = client.Logout(ctx)

# Account Recovery

	email, err := client.FindEmail(ctx, "Ada", "010-1234-5678")

	// Mails a single-use link valid for three minutes.
	email, err = client.RequestPasswordReset(ctx, "ada@example.com", "010-1234-5678")

	// token comes from the mailed link.
	email, err = client.VerifyResetToken(ctx, token)
	_, err = client.ResetPassword(ctx, token, "new-password")

# Error Handling

Non-2xx responses are returned as *APIError. The predefined values match by
code, so errors.Is works:

	_, err := client.Login(ctx, email, password)
	if errors.Is(err, authsdk.ErrInvalidCredentials) {
		// wrong password
	}

# Thread Safety

Client is safe for concurrent use; its cookie jar is shared by every call.
*/
package authsdk
