package authsdk

// ============================================================================
// Error Types
// ============================================================================

// ErrorResponse is the JSON body of every non-2xx response.
// Client code should use the APIError type from errors.go instead.
type ErrorResponse struct {
	// Error is the machine readable error code (e.g., "invalid_credentials")
	Error string `json:"error"`

	// ErrorDescription is a human-readable description of the error
	ErrorDescription string `json:"error_description"`
}

// ============================================================================
// Session Types
// ============================================================================

// LoginResponse is returned by POST /v1/auth/login. The same tokens are
// also set as the accessToken and refreshToken cookies.
type LoginResponse struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// SessionUser is the decoded access token of a logged-in caller.
type SessionUser struct {
	Email     string `json:"email"`
	Name      string `json:"name"`
	ExpiresAt int64  `json:"exp"` // unix seconds
}

// SessionResponse is returned by GET /v1/auth/session.
type SessionResponse struct {
	LoggedIn bool         `json:"loggedIn"`
	User     *SessionUser `json:"user,omitempty"`
}

// MessageResponse carries a human readable confirmation.
type MessageResponse struct {
	Message string `json:"message"`
}

// ProfileResponse is returned by GET /v1/auth/me.
type ProfileResponse struct {
	ID              string  `json:"id"`
	Name            string  `json:"name"`
	Email           string  `json:"email"`
	CooperationType string  `json:"cooperationType"`
	Phone           string  `json:"phone"`
	Techs           string  `json:"techs"`
	OnOff           *string `json:"onOff"` // "ON", "OFF" or null
}

// ============================================================================
// Account Recovery Types
// ============================================================================

// EmailResponse is returned by the find-email and forgot-password
// endpoints. Email is nil when no (unique) account matched.
type EmailResponse struct {
	Email *string `json:"email"`
}

// VerifyResetResponse is returned when a reset token is accepted.
type VerifyResetResponse struct {
	Message string `json:"message"`
	Email   string `json:"email"`
}

// RegisterRequest carries the registration form fields.
type RegisterRequest struct {
	Name            string
	Email           string
	Password        string
	CooperationType string
	Phone           string
	Techs           string
	OnlineFlag      string // "online", "offline", anything else stores null
}

// ============================================================================
// Health Types
// ============================================================================

// HealthResponse represents the response structure for health check endpoints.
// Used by both /livez and /readyz endpoints (readyz includes additional Checks field).
type HealthResponse struct {
	// Status indicates the overall health status (e.g., "ok")
	Status string `json:"status"`

	// Uptime is the service uptime duration as a string (e.g., "1h23m45s")
	Uptime string `json:"uptime,omitempty"`

	// Version is the service version string
	Version string `json:"version,omitempty"`

	// Checks contains readiness check results for critical dependencies (only for /readyz)
	Checks *HealthChecks `json:"checks,omitempty"`
}

// HealthChecks represents the status of critical service dependencies.
type HealthChecks struct {
	// Database indicates the database connection status
	Database string `json:"database"`
}
