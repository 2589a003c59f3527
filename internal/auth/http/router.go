package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "github.com/project-nt/auth/api/auth" // Swagger docs
	"github.com/project-nt/auth/internal/auth/observability"
	"github.com/project-nt/auth/internal/auth/service"
	"github.com/project-nt/auth/internal/auth/store"
	"github.com/project-nt/auth/pkg/httpx"
	"github.com/project-nt/auth/pkg/slogx"
)

//go:generate swag init -g router.go -o ../../../api/auth --packageName auth --parseDependency

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	buildVersion string
	startTime    time.Time
	logger       *slog.Logger
	store        store.Store

	// Cookies controls the attributes of the session cookies.
	Cookies httpx.CookieConfig
	// LoginURL is where register, reset and a failed session gate send the browser.
	LoginURL string
	// Registry is served on /metrics when set.
	Registry *prometheus.Registry

	SessionService *service.SessionService
	ResetService   *service.ResetService
	UserService    *service.UserService
}

func NewRouter(buildVersion string, st store.Store, logger *slog.Logger) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		buildVersion: buildVersion,
		startTime:    time.Now(),
		store:        st,
		logger:       logger,
		LoginURL:     "/login",
	}

	// Set default middleware chain
	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerSession()
	r.registerRecovery()
	r.registerSystem()

	r.Mux.Handle("/swagger/", httpSwagger.Handler())
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title			Project-NT Authentication Service API
//	@version		0.1.0
//	@description	Cookie based session authentication with password recovery.
//	@description
//	@description	Sessions are a pair of HS256 JWTs held in the accessToken and refreshToken cookies.
//	@description	Gated endpoints renew an expired access token from the refresh cookie.
//
//	@contact.name	Project-NT Team
//
//	@license.name	MIT
//	@license.url	https://opensource.org/licenses/MIT
//
//	@host			localhost:8080
//	@BasePath		/
//
//	@schemes		http https
//
//	@securityDefinitions.apikey	SessionCookie
//	@in							cookie
//	@name						accessToken
//	@description				Access token cookie set by login. The refreshToken cookie renews it.
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

func (r *Router) registerSession() {
	r.Mux.Handle("POST /v1/auth/register", &RegisterHandler{
		UserService: r.UserService,
		LoginURL:    r.LoginURL,
	})

	r.Mux.Handle("POST /v1/auth/login", &LoginHandler{
		SessionService: r.SessionService,
		Cookies:        r.Cookies,
	})

	r.Mux.Handle("POST /v1/auth/logout", &LogoutHandler{
		SessionService: r.SessionService,
		Cookies:        r.Cookies,
	})

	r.Mux.Handle("GET /v1/auth/session", &SessionHandler{SessionService: r.SessionService})

	// Gated: an expired access token is renewed from the refresh cookie,
	// otherwise the browser is sent to login.
	r.Mux.Handle("GET /v1/auth/me",
		httpx.Chain(&MeHandler{UserService: r.UserService, LoginURL: r.LoginURL},
			SessionMiddleware(r.SessionService, r.Cookies, r.LoginURL),
		),
	)
}

func (r *Router) registerRecovery() {
	r.Mux.Handle("POST /v1/auth/find-email", &FindEmailHandler{UserService: r.UserService})

	r.Mux.Handle("POST /v1/auth/password/forgot", &ForgotPasswordHandler{ResetService: r.ResetService})

	r.Mux.Handle("GET /v1/auth/password/verify/{token}", &VerifyResetHandler{ResetService: r.ResetService})

	r.Mux.Handle("POST /v1/auth/password/reset", &ResetPasswordHandler{
		ResetService: r.ResetService,
		LoginURL:     r.LoginURL,
	})
}

func (r *Router) registerSystem() {
	r.Mux.Handle("GET /livez", LivezHandler(r.startTime, r.buildVersion))
	r.Mux.Handle("GET /readyz", ReadyzHandler(r.startTime, r.buildVersion, r.store))

	if r.Registry != nil {
		r.Mux.Handle("GET /metrics", observability.Handler(r.Registry))
	}
}
