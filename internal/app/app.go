package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/mech-ai/internal/audit"
	"github.com/BruksfildServices01/mech-ai/internal/chat"
	"github.com/BruksfildServices01/mech-ai/internal/classifycache"
	"github.com/BruksfildServices01/mech-ai/internal/config"
	dbpkg "github.com/BruksfildServices01/mech-ai/internal/db"
	"github.com/BruksfildServices01/mech-ai/internal/gemini"
	infraRepo "github.com/BruksfildServices01/mech-ai/internal/infra/repository"
	"github.com/BruksfildServices01/mech-ai/internal/intent"
	"github.com/BruksfildServices01/mech-ai/internal/middleware"
	"github.com/BruksfildServices01/mech-ai/internal/routes"
	"github.com/BruksfildServices01/mech-ai/internal/storage"
	ucServiceRecord "github.com/BruksfildServices01/mech-ai/internal/usecase/servicerecord"
)

// App owns the process-wide dependencies shared by the HTTP server and
// the CLI.
type App struct {
	Config *config.Config
	Log    *zap.Logger
	DB     *gorm.DB
	Audit  *audit.Dispatcher
	Chat   *chat.Service

	redis *redis.Client
}

func New(ctx context.Context, cfg *config.Config, log *zap.Logger) (*App, error) {
	db, err := dbpkg.NewDB(cfg, log)
	if err != nil {
		return nil, err
	}

	a, err := NewWithDB(ctx, cfg, log, db)
	if err != nil {
		if sqlDB, derr := db.DB(); derr == nil {
			_ = sqlDB.Close()
		}
		return nil, err
	}
	return a, nil
}

// NewWithDB wires the application on an already migrated database.
func NewWithDB(ctx context.Context, cfg *config.Config, log *zap.Logger, db *gorm.DB) (*App, error) {
	a := &App{
		Config: cfg,
		Log:    log,
		DB:     db,
		Audit:  audit.NewDispatcher(audit.New(db), log, cfg.AuditQueueSize),
	}

	store := infraRepo.NewGormStore(db)

	router := chat.NewRouter(
		ucServiceRecord.NewCreateServiceRecord(store, a.Audit, log, cfg.Timezone),
		ucServiceRecord.NewSearchServiceRecords(store),
		ucServiceRecord.NewListActiveServiceRecords(store),
		log,
	)

	// --------------------------------------------------
	// LLM (opcional)
	// --------------------------------------------------
	var (
		classifier  chat.Classifier
		transcriber chat.Transcriber
		archive     chat.Archiver
	)

	if cfg.GeminiEnabled() {
		gc, err := gemini.NewClient(ctx, gemini.Config{
			APIKey:     cfg.GeminiAPIKey,
			Model:      cfg.GeminiModel,
			AudioModel: cfg.GeminiAudioModel,
			Timezone:   cfg.Timezone,
		}, log)
		if err != nil {
			a.release()
			return nil, err
		}

		var raw intent.RawClassifier = gc
		if cfg.RedisURL != "" {
			rdb, err := classifycache.NewRedisClient(cfg.RedisURL)
			if err != nil {
				a.release()
				return nil, err
			}
			a.redis = rdb
			raw = classifycache.New(gc, rdb, cfg.ClassifyCacheTTL, cfg.Timezone, log)
		}

		classifier = intent.NewClassifier(raw, log)
		transcriber = gc
	} else {
		log.Warn("GEMINI_API_KEY not set, chat endpoints will fail")
	}

	if cfg.AudioArchiveBucket != "" {
		archive = storage.NewS3AudioArchive(storage.S3Config{
			Bucket:          cfg.AudioArchiveBucket,
			Region:          cfg.AWSRegion,
			AccessKeyID:     cfg.AWSAccessKeyID,
			SecretAccessKey: cfg.AWSSecretAccessKey,
			Endpoint:        cfg.AWSS3Endpoint,
		})
	}

	a.Chat = chat.NewService(classifier, transcriber, archive, router, log)
	return a, nil
}

// Router builds the gin engine with every route mounted.
func (a *App) Router() *gin.Engine {
	r := gin.New()
	r.Use(
		middleware.Recovery(a.Log),
		middleware.RequestLogger(a.Log),
		middleware.CORSMiddleware(a.Config.CORSAllowedOrigins),
	)

	r.GET("/health", a.health)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	routes.RegisterRoutes(r, routes.Deps{
		DB:     a.DB,
		Config: a.Config,
		Chat:   a.Chat,
		Audit:  a.Audit,
		Log:    a.Log,
	})

	return r
}

func (a *App) health(c *gin.Context) {
	sqlDB, err := a.DB.DB()
	if err == nil {
		err = sqlDB.PingContext(c.Request.Context())
	}
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded", "database": "down"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Serve runs the HTTP server until ctx is cancelled.
func (a *App) Serve(ctx context.Context) error {
	srv := &http.Server{
		Addr:              a.Config.Addr(),
		Handler:           a.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		a.Log.Info("server running", zap.String("addr", srv.Addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("start server: %w", err)
	case <-ctx.Done():
	}

	a.Log.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// Close drains the audit queue and releases connections, the database
// included.
func (a *App) Close() {
	a.release()
	if sqlDB, err := a.DB.DB(); err == nil {
		_ = sqlDB.Close()
	}
}

// release stops what NewWithDB started. The database belongs to the caller.
func (a *App) release() {
	a.Audit.Close()
	if a.redis != nil {
		_ = a.redis.Close()
		a.redis = nil
	}
}
