package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/uptrace/bun"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/userbook/userbook/internal/config"
	"github.com/userbook/userbook/internal/database"
	"github.com/userbook/userbook/internal/users"
	"github.com/userbook/userbook/internal/web"
)

// AppState holds all application services
type AppState struct {
	DB          *bun.DB
	Logger      *zap.Logger
	Config      *config.Config
	UserService users.UserService
}

func main() {
	config.Load()

	logger := initLogger()
	defer logger.Sync()
	logger.Info("Configuration loaded", zap.String("source", "config.Load()"))

	as, err := newAppState(logger)
	if err != nil {
		logger.Fatal("Failed to initialize application state", zap.Error(err))
	}

	router, err := setupRouter(as)
	if err != nil {
		logger.Fatal("Failed to set up router", zap.Error(err))
	}

	addr := config.Http().Addr()
	server := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	done := setupSignalHandler(as, server, logger)

	logger.Info("Starting userbook server", zap.String("address", addr))

	err = server.ListenAndServe()
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Fatal("Failed to start server", zap.Error(err))
	}

	<-done
	logger.Info("Server shutdown complete")
}

// newAppState opens the database and wires store → service
func newAppState(logger *zap.Logger) (*AppState, error) {
	dbConfig := config.Database()

	opts := database.Options{
		Driver:         dbConfig.Driver,
		MaxConnections: dbConfig.MaxOpenConnections,
	}
	switch dbConfig.Driver {
	case database.DriverSQLite:
		opts.DatabaseURL = dbConfig.Sqlite.Path
		logger.Info("Database configuration",
			zap.String("driver", dbConfig.Driver),
			zap.String("path", dbConfig.Sqlite.Path))
	default:
		opts.DatabaseURL = dbConfig.Postgres.DSN()
		logger.Info("Database configuration",
			zap.String("driver", dbConfig.Driver),
			zap.String("host", dbConfig.Postgres.Host),
			zap.Int("port", dbConfig.Postgres.Port),
			zap.String("database", dbConfig.Postgres.Database),
			zap.String("user", dbConfig.Postgres.User))
	}

	db, err := database.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if dbConfig.EnableSchemaBootstrap {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := users.CreateTables(ctx, db); err != nil {
			db.Close()
			return nil, err
		}
		logger.Info("Users table ready")
	}

	q := config.Queries()
	userStore := users.NewUserStore(db, users.Queries{
		FindAll:    q.FindAll,
		Save:       q.Save,
		DeleteByID: q.DeleteByID,
		GetOne:     q.GetOne,
		Update:     q.Update,
	})
	userService := users.NewUserService(userStore)

	return &AppState{
		DB:          db,
		Logger:      logger,
		Config:      config.Get(),
		UserService: userService,
	}, nil
}

func initLogger() *zap.Logger {
	logConfig := config.Logger()

	var config zap.Config
	if logConfig.Format == "json" {
		config = zap.NewProductionConfig()
	} else {
		config = zap.NewDevelopmentConfig()
	}

	switch logConfig.Level {
	case "debug":
		config.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	case "info":
		config.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	case "warn":
		config.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	case "error":
		config.Level = zap.NewAtomicLevelAt(zap.ErrorLevel)
	default:
		config.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	}

	config.EncoderConfig.TimeKey = "timestamp"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	logger, err := config.Build()
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}

	return logger
}

func setupRouter(as *AppState) (*gin.Engine, error) {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()
	router.Use(cors.Default())
	router.Use(web.AccessLogMiddleware(as.Logger))
	router.Use(gin.Recovery())

	router.GET("/health", func(c *gin.Context) {
		if err := as.DB.PingContext(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":    "unhealthy",
				"timestamp": time.Now().Format(time.RFC3339),
				"error":     err.Error(),
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status":    "healthy",
			"timestamp": time.Now().Format(time.RFC3339),
			"services": gin.H{
				"database": "healthy",
			},
		})
	})

	handler := web.NewHandler(as.UserService, as.Logger)
	if err := handler.SetupRoutes(router); err != nil {
		return nil, fmt.Errorf("failed to load page templates: %w", err)
	}

	return router, nil
}

func setupSignalHandler(as *AppState, server *http.Server, logger *zap.Logger) chan struct{} {
	done := make(chan struct{}, 1)

	signalCh := make(chan os.Signal, 1)
	signal.Notify(signalCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-signalCh

		logger.Info("Shutting down server...")

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := server.Shutdown(ctx); err != nil {
			logger.Error("Error during server shutdown", zap.Error(err))
		}

		if err := as.DB.Close(); err != nil {
			logger.Error("Error closing database", zap.Error(err))
		}

		done <- struct{}{}
	}()

	return done
}
