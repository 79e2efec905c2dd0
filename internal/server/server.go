package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"taskboard/internal/auth"
	"taskboard/internal/config"
	"taskboard/internal/handler"
	"taskboard/internal/middleware"
	"taskboard/internal/repository"
	"taskboard/internal/service"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type Server struct {
	Engine *gin.Engine
	DB     *gorm.DB
	Config *config.Config
}

// Init connects to the database and builds the HTTP server on top of it.
func Init(cfg *config.Config) (*Server, error) {
	db, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{
		Logger: logger.New(log.StandardLogger(), logger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
		}),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to DB: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get DB handle: %w", err)
	}
	sqlDB.SetMaxIdleConns(cfg.DBMaxIdleConns)
	sqlDB.SetMaxOpenConns(cfg.DBMaxOpenConns)
	sqlDB.SetConnMaxLifetime(time.Hour)
	log.WithFields(log.Fields{"host": cfg.DBHost, "db": cfg.DBName}).Info("connected to database")

	if cfg.DBAutoMigrate {
		if err := repository.AutoMigrate(db); err != nil {
			return nil, err
		}
		log.Info("schema migrated")
	}

	return New(db, cfg), nil
}

// New wires repositories, services and handlers over an open database.
func New(db *gorm.DB, cfg *config.Config) *Server {
	handler.RegisterValidators()

	store := repository.NewStore(db)
	tokens := auth.NewTokenManager(cfg.JWTSecret, cfg.AccessTTL)
	hasher := auth.NewBcryptHasher(cfg.BcryptCost)

	h := &handlers{
		users:       handler.NewUserHandler(service.NewUserService(store, hasher, tokens, cfg.RefreshTTL)),
		boards:      handler.NewBoardHandler(service.NewBoardService(store)),
		members:     handler.NewMemberHandler(service.NewMemberService(store)),
		lists:       handler.NewListHandler(service.NewListService(store)),
		cards:       handler.NewCardHandler(service.NewCardService(store)),
		assignments: handler.NewAssignmentHandler(service.NewAssignmentService(store)),
		comments:    handler.NewCommentHandler(service.NewCommentService(store)),
		labels:      handler.NewLabelHandler(service.NewLabelService(store)),
	}

	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestLogger())
	registerRoutes(r, h, middleware.JWTAuthMiddleware(tokens))

	return &Server{
		Engine: r,
		DB:     db,
		Config: cfg,
	}
}

func (s *Server) Run() {
	srv := &http.Server{
		Addr:              ":" + s.Config.ServerPort,
		Handler:           s.Engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.WithField("port", s.Config.ServerPort).Info("server running")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Fatal("failed to listen")
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.WithError(err).Fatal("server forced to shutdown")
	}

	if sqlDB, err := s.DB.DB(); err == nil {
		_ = sqlDB.Close()
	}
	log.Info("server exited properly")
}
