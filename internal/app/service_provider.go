package app

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"

	assignmentAPI "gradescope_proxy/internal/api/assignment"
	authAPI "gradescope_proxy/internal/api/auth"
	courseAPI "gradescope_proxy/internal/api/course"
	extensionAPI "gradescope_proxy/internal/api/extension"
	healthAPI "gradescope_proxy/internal/api/health"
	uploadAPI "gradescope_proxy/internal/api/upload"
	"gradescope_proxy/internal/config"
	"gradescope_proxy/internal/config/env"
	"gradescope_proxy/internal/middleware"
	"gradescope_proxy/internal/repository"
	"gradescope_proxy/internal/repository/session_repo"
	"gradescope_proxy/internal/service"
	"gradescope_proxy/internal/service/assignment"
	"gradescope_proxy/internal/service/auth"
	"gradescope_proxy/internal/service/course"
	"gradescope_proxy/internal/service/extension"
	"gradescope_proxy/internal/service/upload"
	"gradescope_proxy/pkg/resp"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

type ServiceProvider struct {
	// Configs
	httpCfg      config.HTTPConfig
	upstreamCfg  config.UpstreamConfig
	sessionCfg   config.SessionConfig
	corsCfg      config.CORSConfig
	rateLimitCfg config.RateLimitConfig
	logCfg       config.LogConfig
	loginCfg     config.LoginConfig

	// Session bits
	sessionRepo repository.SessionRepository

	// Auth bits
	driver      *auth.Driver
	authServ    service.AuthService
	authHand    *authAPI.Handler
	rateLimiter *middleware.IPRateLimiter

	// Feature bits
	courseServ     service.CourseService
	courseHand     *courseAPI.Handler
	assignmentServ service.AssignmentService
	assignmentHand *assignmentAPI.Handler
	extensionServ  service.ExtensionService
	extensionHand  *extensionAPI.Handler
	uploadServ     service.UploadService
	uploadHand     *uploadAPI.Handler
	healthHand     *healthAPI.Handler

	router chi.Router
}

func newServiceProvider() *ServiceProvider {
	return &ServiceProvider{}
}

func (sp *ServiceProvider) HTTPCfg() config.HTTPConfig {
	if sp.httpCfg == nil {
		cfg, err := env.NewHTTPConfig()
		if err != nil {
			panic("failed to get http config: " + err.Error())
		}
		sp.httpCfg = cfg
	}
	return sp.httpCfg
}

func (sp *ServiceProvider) UpstreamCfg() config.UpstreamConfig {
	if sp.upstreamCfg == nil {
		cfg, err := env.NewUpstreamConfig()
		if err != nil {
			panic("failed to get upstream config: " + err.Error())
		}
		sp.upstreamCfg = cfg
	}
	return sp.upstreamCfg
}

func (sp *ServiceProvider) SessionCfg() config.SessionConfig {
	if sp.sessionCfg == nil {
		cfg, err := env.NewSessionConfig()
		if err != nil {
			panic("failed to get session config: " + err.Error())
		}
		sp.sessionCfg = cfg
	}
	return sp.sessionCfg
}

func (sp *ServiceProvider) CORSCfg() config.CORSConfig {
	if sp.corsCfg == nil {
		cfg, err := env.NewCORSConfig()
		if err != nil {
			panic("failed to get cors config: " + err.Error())
		}
		sp.corsCfg = cfg
	}
	return sp.corsCfg
}

func (sp *ServiceProvider) RateLimitCfg() config.RateLimitConfig {
	if sp.rateLimitCfg == nil {
		cfg, err := env.NewRateLimitConfig()
		if err != nil {
			panic("failed to get rate limit config: " + err.Error())
		}
		sp.rateLimitCfg = cfg
	}
	return sp.rateLimitCfg
}

func (sp *ServiceProvider) LogCfg() config.LogConfig {
	if sp.logCfg == nil {
		cfg, err := env.NewLogConfig()
		if err != nil {
			panic("failed to get log config: " + err.Error())
		}
		sp.logCfg = cfg
	}
	return sp.logCfg
}

func (sp *ServiceProvider) LoginCfg() config.LoginConfig {
	if sp.loginCfg == nil {
		cfg, err := env.NewLoginConfigFromYAML(env.LoginConfigPath())
		if err != nil {
			panic("failed to get login config: " + err.Error())
		}
		sp.loginCfg = cfg
	}
	return sp.loginCfg
}

func (sp *ServiceProvider) SessionRepo() repository.SessionRepository {
	if sp.sessionRepo == nil {
		sp.sessionRepo = session_repo.NewSessionRepository(sp.SessionCfg().IdleTimeout())
	}
	return sp.sessionRepo
}

func (sp *ServiceProvider) Driver() *auth.Driver {
	if sp.driver == nil {
		sp.driver = auth.NewDriver(sp.UpstreamCfg(), sp.LoginCfg())
	}
	return sp.driver
}

func (sp *ServiceProvider) AuthService() service.AuthService {
	if sp.authServ == nil {
		sp.authServ = auth.NewService(sp.Driver(), sp.SessionRepo())
	}
	return sp.authServ
}

func (sp *ServiceProvider) AuthHandler() *authAPI.Handler {
	if sp.authHand == nil {
		sp.authHand = authAPI.NewHandler(authAPI.HandlerDeps{Serv: sp.AuthService()})
	}
	return sp.authHand
}

func (sp *ServiceProvider) RateLimiter() *middleware.IPRateLimiter {
	if sp.rateLimiter == nil {
		cfg := sp.RateLimitCfg()
		sp.rateLimiter = middleware.NewIPRateLimiter(cfg.LoginPerMinute(), cfg.LoginBurst())
	}
	return sp.rateLimiter
}

func (sp *ServiceProvider) CourseService() service.CourseService {
	if sp.courseServ == nil {
		sp.courseServ = course.NewService()
	}
	return sp.courseServ
}

func (sp *ServiceProvider) CourseHandler() *courseAPI.Handler {
	if sp.courseHand == nil {
		sp.courseHand = courseAPI.NewHandler(courseAPI.HandlerDeps{Serv: sp.CourseService()})
	}
	return sp.courseHand
}

func (sp *ServiceProvider) AssignmentService() service.AssignmentService {
	if sp.assignmentServ == nil {
		sp.assignmentServ = assignment.NewService()
	}
	return sp.assignmentServ
}

func (sp *ServiceProvider) AssignmentHandler() *assignmentAPI.Handler {
	if sp.assignmentHand == nil {
		sp.assignmentHand = assignmentAPI.NewHandler(assignmentAPI.HandlerDeps{Serv: sp.AssignmentService()})
	}
	return sp.assignmentHand
}

func (sp *ServiceProvider) ExtensionService() service.ExtensionService {
	if sp.extensionServ == nil {
		sp.extensionServ = extension.NewService()
	}
	return sp.extensionServ
}

func (sp *ServiceProvider) ExtensionHandler() *extensionAPI.Handler {
	if sp.extensionHand == nil {
		sp.extensionHand = extensionAPI.NewHandler(extensionAPI.HandlerDeps{Serv: sp.ExtensionService()})
	}
	return sp.extensionHand
}

func (sp *ServiceProvider) UploadService() service.UploadService {
	if sp.uploadServ == nil {
		sp.uploadServ = upload.NewService()
	}
	return sp.uploadServ
}

func (sp *ServiceProvider) UploadHandler() *uploadAPI.Handler {
	if sp.uploadHand == nil {
		sp.uploadHand = uploadAPI.NewHandler(uploadAPI.HandlerDeps{Serv: sp.UploadService()})
	}
	return sp.uploadHand
}

func (sp *ServiceProvider) HealthHandler() *healthAPI.Handler {
	if sp.healthHand == nil {
		sp.healthHand = healthAPI.NewHandler(healthAPI.HandlerDeps{Sessions: sp.SessionRepo()})
	}
	return sp.healthHand
}

func (sp *ServiceProvider) Router() chi.Router {
	if sp.router == nil {
		r := chi.NewRouter()

		r.Use(chimw.RequestID)
		if sp.HTTPCfg().TrustProxyHeaders() {
			r.Use(chimw.RealIP)
		}
		r.Use(chimw.Logger)
		r.Use(chimw.Recoverer)

		// CORS middleware
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   sp.CORSCfg().AllowedOrigins(),
			AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token", middleware.SessionTokenHeader},
			ExposedHeaders:   []string{"Link"},
			AllowCredentials: false,
			MaxAge:           60 * 15,
		}))

		r.Get("/health", sp.HealthHandler().Check)

		authHandler := sp.AuthHandler()
		courseHandler := sp.CourseHandler()
		assignmentHandler := sp.AssignmentHandler()
		extensionHandler := sp.ExtensionHandler()
		uploadHandler := sp.UploadHandler()

		r.Route("/api", func(rr chi.Router) {
			rr.With(middleware.RateLimit(sp.RateLimiter())).Post("/login", authHandler.Login)

			// Всё остальное только с живой сессией
			rr.Group(func(pr chi.Router) {
				pr.Use(middleware.RequireSession(sp.AuthService()))

				pr.Post("/logout", authHandler.Logout)
				pr.Get("/session", authHandler.Session)

				pr.Post("/courses", courseHandler.List)
				pr.Post("/course_users", courseHandler.Members)

				pr.Post("/assignments", assignmentHandler.List)
				pr.Post("/assignment_submissions", assignmentHandler.Submissions)
				pr.Post("/single_assignment_submission", assignmentHandler.StudentSubmission)
				pr.Post("/assignments/update_dates", assignmentHandler.UpdateDates)
				pr.Post("/assignments/extensions", extensionHandler.List)
				pr.Post("/assignments/extensions/update", extensionHandler.Update)
				pr.Post("/assignments/upload", uploadHandler.Upload)
			})

			rr.NotFound(apiNotFound)
		})

		if dir := sp.HTTPCfg().StaticDir(); dir != "" {
			r.NotFound(spaHandler(dir))
		}

		sp.router = r
	}

	return sp.router
}

func apiNotFound(w http.ResponseWriter, r *http.Request) {
	resp.WriteJSONResponse(w, http.StatusNotFound, map[string]string{
		"error":   "not_found",
		"message": "unknown endpoint " + r.URL.Path,
	})
}

// spaHandler отдаёт статику фронтенда, неизвестные пути уходят в index.html
func spaHandler(dir string) http.HandlerFunc {
	files := http.FileServer(http.Dir(dir))
	return func(w http.ResponseWriter, r *http.Request) {
		if strings.HasPrefix(r.URL.Path, "/api/") {
			apiNotFound(w, r)
			return
		}
		path := filepath.Join(dir, filepath.Clean("/"+r.URL.Path))
		if info, err := os.Stat(path); err != nil || info.IsDir() {
			http.ServeFile(w, r, filepath.Join(dir, "index.html"))
			return
		}
		files.ServeHTTP(w, r)
	}
}
