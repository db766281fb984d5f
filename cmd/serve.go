package cmd

import (
	"database/sql"
	"net"

	"github.com/DevRyuki/todo-with-cline/app/controller"
	"github.com/DevRyuki/todo-with-cline/app/middleware"
	"github.com/DevRyuki/todo-with-cline/app/repository"
	"github.com/DevRyuki/todo-with-cline/app/service"
	"github.com/DevRyuki/todo-with-cline/config"

	_ "github.com/go-sql-driver/mysql"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	Run:   runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(_ *cobra.Command, _ []string) {
	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("Failed to load configuration")
	}
	configureLogging(cfg)

	db, err := sql.Open("mysql", cfg.DSN())
	if err != nil {
		logrus.WithError(err).Fatal("Failed to connect to database")
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		logrus.WithError(err).Fatal("Failed to ping database")
	}

	// Missing mail provider configuration refuses to start rather than
	// degrading into silently dropped reset emails.
	mailer, err := service.NewResendMailer(cfg.Mail)
	if err != nil {
		logrus.WithError(err).Fatal("Failed to configure mail delivery")
	}

	userRepo := repository.NewUserRepository(db)
	passwordRepo := repository.NewPasswordRepository(db)
	tokenRepo := repository.NewVerificationTokenRepository(db)
	sessionRepo := repository.NewSessionRepository(db)
	todoRepo := repository.NewTodoRepository(db)

	authService := service.NewAuthService(db, userRepo, passwordRepo, tokenRepo, sessionRepo, mailer, cfg)
	todoService := service.NewTodoService(todoRepo)

	startHTTPServer(cfg, authService, todoService)
}

func startHTTPServer(cfg *config.Config, authService *service.AuthService, todoService *service.TodoService) {
	e := echo.New()
	defer e.Close()
	e.HideBanner = true

	e.Use(echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogURI:       true,
		LogHost:      true,
		LogStatus:    true,
		LogMethod:    true,
		LogRemoteIP:  true,
		LogLatency:   true,
		LogUserAgent: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v echomiddleware.RequestLoggerValues) error {
			fields := logrus.Fields{
				"remote_ip":  v.RemoteIP,
				"host":       v.Host,
				"method":     v.Method,
				"uri":        v.URI,
				"status":     v.Status,
				"latency":    v.Latency.String(),
				"user_agent": v.UserAgent,
			}
			entry := logrus.WithFields(fields)
			if v.Error != nil {
				entry = entry.WithError(v.Error)
			}
			entry.Info("http_request")
			return nil
		},
	}))
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.CORS())

	authController := controller.NewAuthController(authService)
	todoController := controller.NewTodoController(todoService)
	authMiddleware := middleware.NewAuthMiddleware(authService)

	auth := e.Group("/api/auth")
	auth.POST("/register", authController.Register)
	auth.POST("/login", authController.Login)
	auth.POST("/forgot-password", authController.ForgotPassword)
	auth.POST("/reset-password", authController.ResetPassword)

	authProtected := auth.Group("")
	authProtected.Use(authMiddleware.RequireAuth)
	authProtected.POST("/logout", authController.Logout)
	authProtected.GET("/me", authController.Me)

	todos := e.Group("/api/todos")
	todos.GET("", todoController.List)
	todos.POST("", todoController.Create)
	todos.GET("/:id", todoController.Get)
	todos.PATCH("/:id", todoController.Update)
	todos.DELETE("/:id", todoController.Delete)

	httpAddr := net.JoinHostPort(cfg.Server.Host, cfg.Server.Port)
	logrus.WithField("addr", httpAddr).Info("Starting HTTP server")
	if err := e.Start(httpAddr); err != nil {
		logrus.WithError(err).Fatal("Failed to start HTTP server")
	}
}

func configureLogging(cfg *config.Config) {
	level, err := logrus.ParseLevel(cfg.Log.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	logrus.SetLevel(level)

	if cfg.Log.Format == "json" {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	}
}
