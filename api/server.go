package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/rpupo63/portfolio-backend/cache"
	"github.com/rpupo63/portfolio-backend/config"
	"github.com/rpupo63/portfolio-backend/database"
	"github.com/rpupo63/portfolio-backend/services"
	"github.com/rs/zerolog/log"
)

type Server struct {
	*http.Server
	startupTime time.Time
}

func NewServer(db database.Database, responseCache cache.Cache, uploader *services.S3Uploader) (Server, error) {
	c := config.New()

	port := config.GetString(c, "PORT", "8080")
	address := fmt.Sprintf("0.0.0.0:%s", port)

	startupTime := time.Now()

	router := newRouter(db, responseCache, uploader, withConfig(c), withStartupTime(startupTime))

	readTimeout := config.GetDuration(c, "READ_TIMEOUT_SECONDS", 180*time.Second)
	writeTimeout := config.GetDuration(c, "WRITE_TIMEOUT_SECONDS", 180*time.Second)
	idleTimeout := config.GetDuration(c, "IDLE_TIMEOUT_SECONDS", 180*time.Second)

	server := &http.Server{
		Addr:         address,
		Handler:      router,
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
		IdleTimeout:  idleTimeout,
	}

	return Server{server, startupTime}, nil
}

type router struct {
	config      map[string]string
	startupTime time.Time
}

func withConfig(c map[string]string) func(*router) {
	return func(r *router) {
		r.config = c
	}
}

func withStartupTime(startupTime time.Time) func(*router) {
	return func(r *router) {
		r.startupTime = startupTime
	}
}

func newRouter(db database.Database, responseCache cache.Cache, uploader *services.S3Uploader, opts ...func(*router)) *chi.Mux {
	var router router
	for _, opt := range opts {
		opt(&router)
	}

	svc := serviceSet{
		auth: services.NewAuthService(
			db.UserRepo(),
			config.GetString(router.config, "JWT_SECRET", ""),
			config.GetString(router.config, "ADMIN_SETUP_TOKEN", ""),
			config.GetInt(router.config, "MIN_PASSWORD_LENGTH", 8),
			config.GetDuration(router.config, "RESET_TOKEN_TTL_SECONDS", 15*time.Minute),
		),
		projects:    services.NewProjectService(db.ProjectRepo(), responseCache),
		skills:      services.NewSkillService(db.SkillRepo(), responseCache),
		learning:    services.NewLearningService(db.LearningRepo(), responseCache),
		experiences: services.NewExperienceService(db.ExperienceRepo(), responseCache),
		certs:       services.NewCertificateService(db.CertificateRepo(), responseCache),
		media:       services.NewMediaService(db.MediaRepo(), responseCache, uploader),
		profile:     services.NewProfileService(db.ProfileRepo(), responseCache),
		about:       services.NewAboutService(db.AboutRepo(), responseCache),
		contact:     services.NewContactService(db.ContactRepo(), responseCache),
	}

	exposeResetToken := config.GetBool(router.config, "AUTH_EXPOSE_RESET_TOKEN", false)
	handlers := initializeHandlers(svc, router.startupTime, exposeResetToken)
	authMiddleware := newAuthMiddleware(svc.auth)

	chiRouter := chi.NewRouter()
	chiRouter.Use(LogInternalServerErrors)
	chiRouter.Use(ColoredHTTPLoggingMiddleware)

	acceptedOrigins := config.GetStringList(router.config, "ACCEPTED_ORIGINS")
	chiRouter.Use(CORSCheckMiddleware(acceptedOrigins))
	chiRouter.Use(cors.Handler(cors.Options{
		AllowedOrigins:   acceptedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	rps := config.GetInt(router.config, "RATE_LIMIT_RPS", 20)
	burst := config.GetInt(router.config, "RATE_LIMIT_BURST", 40)
	chiRouter.Use(RateLimitMiddleware(float64(rps), burst))

	setupRoutes(chiRouter, handlers, authMiddleware)

	return chiRouter
}

func (s Server) Start(errChannel chan<- error) {
	log.Info().Msgf("Server started on: %s", s.Addr)
	errChannel <- s.ListenAndServe()
}

func (s Server) ShutdownGracefully(timeout time.Duration) {
	log.Info().Msg("Gracefully shutting down...")

	gracefullCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := s.Shutdown(gracefullCtx); err != nil {
		log.Error().Msgf("Error shutting down the server: %v", err)
	} else {
		log.Info().Msg("HttpServer gracefully shut down")
	}
}
