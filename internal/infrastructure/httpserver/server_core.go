package httpserver

import (
	"time"

	"github.com/craftyard/marketplace-backend/internal/core/ports"
	customMiddleware "github.com/craftyard/marketplace-backend/internal/infrastructure/httpserver/middleware"
	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
)

type ServerConfig struct {
	Host         string
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

type ServerDeps struct {
	UserService         ports.UserService
	PostService         ports.PostService
	ReelService         ports.ReelService
	ReviewService       ports.ReviewService
	MessageService      ports.MessageService
	NotificationService ports.NotificationService
	StatusService       ports.StatusService
	PortfolioService    ports.PortfolioService
	SavedService        ports.SavedService
	HealthCheckers      []ports.HealthChecker
}

type Server struct {
	echo            *echo.Echo
	config          *ServerConfig
	logger          *logrus.Logger
	userService     ports.UserService
	postService     ports.PostService
	reelService     ports.ReelService
	reviewService   ports.ReviewService
	messageService  ports.MessageService
	notificationSvc ports.NotificationService
	statusService   ports.StatusService
	portfolioSvc    ports.PortfolioService
	savedService    ports.SavedService
	middleware      *customMiddleware.MiddlewareCollection
	healthCheckers  []ports.HealthChecker
}

func NewServer(serverConfig *ServerConfig, jwtSecret string, logger *logrus.Logger, deps ServerDeps) *Server {
	e := echo.New()

	server := &Server{
		echo:            e,
		config:          serverConfig,
		logger:          logger,
		userService:     deps.UserService,
		postService:     deps.PostService,
		reelService:     deps.ReelService,
		reviewService:   deps.ReviewService,
		messageService:  deps.MessageService,
		notificationSvc: deps.NotificationService,
		statusService:   deps.StatusService,
		portfolioSvc:    deps.PortfolioService,
		savedService:    deps.SavedService,
		healthCheckers:  deps.HealthCheckers,
		middleware: customMiddleware.NewMiddlewareCollection(
			jwtSecret,
			logger,
			GetRequestsTotal(),
			GetRequestDuration(),
		),
	}

	server.setupMiddleware()
	server.setupRoutes()

	return server
}
