//go:build e2e

package auth_test

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/project-nt/auth/pkg/authsdk"
)

/*
 * Common constants and helper functions for auth service end-to-end tests.
 * This includes container setup, account setup, and assertions.
 */

const (
	testImageName = "project-nt-auth-test:latest"

	testName     = "Ada Lovelace"
	testEmail    = "ada@example.com"
	testPassword = "Hunter22!"
	testPhone    = "010-1234-5678"
)

var resetLinkPattern = regexp.MustCompile(`verifyToken/([A-Za-z0-9._-]+)`)

// authContainer is a running auth service.
type authContainer struct {
	BaseURL   string
	container testcontainers.Container
}

// TestMain manages the test lifecycle, builds the Docker image once before
// all tests and cleans it up after all tests complete.
func TestMain(m *testing.M) {
	fmt.Fprintf(os.Stdout, "Building Auth Service Docker image...")

	if err := buildDockerImage(); err != nil {
		fmt.Fprintf(os.Stderr, "\nFailed to build Docker image: %v\n", err)
		os.Exit(1)
	}
	fmt.Fprintf(os.Stdout, " done\n")

	exitCode := m.Run()

	fmt.Fprintf(os.Stdout, "Cleaning up Auth Service Docker image...")
	cleanupDockerImage()
	fmt.Fprintf(os.Stdout, " done\n")

	os.Exit(exitCode)
}

// buildDockerImage builds the test Docker image.
func buildDockerImage() error {
	ctx := context.Background()
	cmd := exec.CommandContext(ctx, "docker", "build",
		"-t", testImageName,
		"-f", "../../../cmd/auth/Dockerfile",
		"../../../")
	cmd.Dir = "."
	cmd.Stdout = os.Stdout
	cmd.Stderr = nil

	return cmd.Run()
}

// cleanupDockerImage removes the test Docker image.
func cleanupDockerImage() {
	ctx := context.Background()
	cmd := exec.CommandContext(ctx, "docker", "rmi", "-f", testImageName)
	_ = cmd.Run() // image might not exist
}

// setupAuthContainer starts the auth service in a container. Email goes to
// the log notifier at debug level so tests can read reset links back out
// of the container logs.
func setupAuthContainer(t *testing.T) *authContainer {
	t.Helper()
	ctx := context.Background()

	req := testcontainers.ContainerRequest{
		Image:        testImageName,
		ExposedPorts: []string{"8080/tcp"},
		Env: map[string]string{
			"AUTH_DATABASE_FILE":  "/data/auth.db",
			"AUTH_PEPPER_FILE":    "/data/pepper",
			"AUTH_SESSION_SECRET": "e2e-session-secret",
			"AUTH_RESET_SECRET":   "e2e-reset-secret",
			"ENV":                 "test",
			"LOG_LEVEL":           "debug",
			"LOG_FORMAT":          "json",
		},
		WaitingFor: wait.ForHTTP("/livez").
			WithPort("8080/tcp").
			WithStartupTimeout(60 * time.Second),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)

	t.Cleanup(func() {
		if err := container.Terminate(context.Background()); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	})

	mappedPort, err := container.MappedPort(ctx, "8080")
	require.NoError(t, err)

	host, err := container.Host(ctx)
	require.NoError(t, err)

	return &authContainer{
		BaseURL:   fmt.Sprintf("http://%s:%s", host, mappedPort.Port()),
		container: container,
	}
}

// lastResetToken waits for the log notifier to print a reset link and
// returns the most recent token in it.
func (c *authContainer) lastResetToken(t *testing.T) string {
	t.Helper()

	var token string
	require.Eventually(t, func() bool {
		rc, err := c.container.Logs(context.Background())
		if err != nil {
			return false
		}
		defer rc.Close()

		logs, err := io.ReadAll(rc)
		if err != nil {
			return false
		}
		matches := resetLinkPattern.FindAllSubmatch(logs, -1)
		if len(matches) == 0 {
			return false
		}
		token = string(matches[len(matches)-1][1])
		return true
	}, 10*time.Second, 100*time.Millisecond, "reset link never appeared in the service logs")

	return token
}

// registerAccount creates the standard test account.
func registerAccount(t *testing.T, client *authsdk.Client) {
	t.Helper()

	loc, err := client.Register(t.Context(), authsdk.RegisterRequest{
		Name:            testName,
		Email:           testEmail,
		Password:        testPassword,
		CooperationType: "company",
		Phone:           testPhone,
		Techs:           "go,sql",
		OnlineFlag:      "online",
	})
	require.NoError(t, err, "Register should succeed")
	require.Equal(t, "/login", loc, "Register should redirect to the login page")
}

// performLogin logs the client in and checks both session cookies landed.
func performLogin(t *testing.T, client *authsdk.Client, email, password string) *authsdk.LoginResponse {
	t.Helper()

	tokens, err := client.Login(t.Context(), email, password)
	require.NoError(t, err, "Login should succeed")
	require.NotEmpty(t, tokens.AccessToken, "Access token should not be empty")
	require.NotEmpty(t, tokens.RefreshToken, "Refresh token should not be empty")
	require.Equal(t, tokens.AccessToken, client.Cookie("accessToken"))
	require.Equal(t, tokens.RefreshToken, client.Cookie("refreshToken"))

	return tokens
}

// assertHealthy verifies a health check response is OK.
func assertHealthy(t *testing.T, health *authsdk.HealthResponse, err error) {
	t.Helper()
	require.NoError(t, err)
	require.NotNil(t, health)
	require.Equal(t, "ok", health.Status)
}
