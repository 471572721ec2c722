package api

import (
	"net/http"
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/confiteria/conference-system/docs"
	"github.com/confiteria/conference-system/internal/api/handler"
	"github.com/confiteria/conference-system/internal/api/middleware"
	"github.com/confiteria/conference-system/internal/core/domain"
	"github.com/confiteria/conference-system/internal/core/service"
	mongostore "github.com/confiteria/conference-system/internal/infrastructure/db/mongo"
	redisstore "github.com/confiteria/conference-system/internal/infrastructure/db/redis"
	"github.com/confiteria/conference-system/internal/infrastructure/gravatar"
	"github.com/confiteria/conference-system/internal/infrastructure/mail"
	"github.com/confiteria/conference-system/internal/infrastructure/queue"
	"github.com/confiteria/conference-system/pkg/logger"
)

// NewRouter builds the Echo instance with all routes registered, plus the
// ticket dispatcher so main can start and stop its workers.
func NewRouter(db *mongo.Database, rdb *redis.Client, jwtSecret string, dispatchWorkers int) (*echo.Echo, *queue.Dispatcher) {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(logger.Component("http"))

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("conference"))

	// --- Stores ---
	userRepo := mongostore.NewUserRepository(db)
	presentationRepo := mongostore.NewPresentationRepository(db)
	participationRepo := mongostore.NewParticipationRepository(db)
	voucherRepo := mongostore.NewVoucherRepository(db)
	voteRepo := mongostore.NewVoteRepository(db)
	guard := redisstore.NewDispatchGuard(rdb)

	// --- Services ---
	avatars := gravatar.NewClient(&http.Client{Timeout: 5 * time.Second})
	userService := service.NewUserService(userRepo, avatars, logger.Component("users"))
	presentationService := service.NewPresentationService(presentationRepo, userRepo, logger.Component("presentations"))
	registrationService := service.NewRegistrationService(participationRepo, voucherRepo, logger.Component("registrations"))
	voucherService := service.NewVoucherService(voucherRepo, logger.Component("vouchers"))
	votingService := service.NewVotingService(voteRepo, presentationRepo, logger.Component("votes"))
	authService := service.NewAuthService(userRepo, jwtSecret, 24*time.Hour)

	notifier := mail.NewLogNotifier(logger.Component("mailer"))
	ticketService := service.NewTicketService(participationRepo, guard, notifier, logger.Component("tickets"))
	dispatcher := queue.NewDispatcher(dispatchWorkers, ticketService, logger.Component("dispatcher"))

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService, presentationService)
	presentationHandler := handler.NewPresentationHandler(presentationService)
	registrationHandler := handler.NewRegistrationHandler(registrationService)
	voucherHandler := handler.NewVoucherHandler(voucherService)
	voteHandler := handler.NewVoteHandler(votingService)
	ticketHandler := handler.NewTicketHandler(ticketService, dispatcher)

	auth := middleware.Auth(jwtSecret)
	adminOnly := middleware.RBAC(domain.RoleAdmin)
	staffOnly := middleware.RBAC(domain.RoleAdmin, domain.RoleVolunteer)

	// --- Auth routes ---
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)

	// --- Accounts and submissions ---
	e.GET("/users/search/speakers", userHandler.Speakers)
	e.POST("/users", userHandler.Save, auth)
	e.GET("/users/:userId", userHandler.Get, auth)
	e.POST("/users/:userId/volunteer/:isVolunteer", userHandler.MarkVolunteer, auth, adminOnly)
	e.POST("/users/:userId/presentations", userHandler.AddPresentation, auth)
	e.GET("/users/:userId/presentations", userHandler.ListPresentations, auth)

	e.GET("/presentations/:id", presentationHandler.Get)
	e.PUT("/presentations/:id/status", presentationHandler.UpdateStatus, auth, adminOnly)

	// --- Registration and ticketing ---
	e.POST("/participants/register", registrationHandler.Register, auth)
	e.POST("/participants/:id/arrived", registrationHandler.CheckIn, auth, staffOnly)
	e.GET("/participants/tickets/pending", registrationHandler.PendingTickets, auth, adminOnly)
	e.GET("/participants/present", registrationHandler.Present, auth, adminOnly)
	e.POST("/tickets/dispatch", ticketHandler.Dispatch, auth, adminOnly)

	// --- Vouchers ---
	e.POST("/vouchers", voucherHandler.Generate, auth, adminOnly)
	e.GET("/vouchers/:id", voucherHandler.Get, auth, adminOnly)

	// --- Voting ---
	e.POST("/votes/token", voteHandler.IssueBallot)
	e.POST("/votes/:voteId", voteHandler.Cast)
	e.GET("/votes/summary", voteHandler.Summary, auth, adminOnly)

	// --- Observability ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?

	return e, dispatcher
}
