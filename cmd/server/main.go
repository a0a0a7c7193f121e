package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/playmatatu/minigolf/internal/api"
	"github.com/playmatatu/minigolf/internal/config"
	"github.com/playmatatu/minigolf/internal/course"
	"github.com/playmatatu/minigolf/internal/database"
	"github.com/playmatatu/minigolf/internal/game"
	"github.com/playmatatu/minigolf/internal/logging"
	"github.com/playmatatu/minigolf/internal/migrations"
	"github.com/playmatatu/minigolf/internal/redis"
	"github.com/playmatatu/minigolf/internal/store"
	"github.com/playmatatu/minigolf/internal/ws"
	"golang.org/x/sync/errgroup"
)

func main() {
	// Initialize configuration (loads .env if present)
	cfg := config.Load()

	if err := logging.Init(cfg.Environment); err != nil {
		os.Stderr.WriteString("failed to init logger: " + err.Error() + "\n")
		os.Exit(1)
	}
	defer logging.Sync()
	log := logging.S()

	// Courses first: nothing else matters if there is nothing to play.
	courses, err := course.Load(cfg.CoursesDir)
	if err != nil {
		log.Fatalf("Failed to load courses: %v", err)
	}
	log.Infof("[COURSE] loaded %q: %d holes, par %d, fingerprint %s", courses.Name, courses.Len(), courses.TotalPar(), courses.Fingerprint())

	bootCtx := context.Background()

	// Initialize database
	db, err := database.Connect(bootCtx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if cfg.MigrateOnStart {
		log.Info("[MIGRATE] Running DB migrations on startup...")
		if err := migrations.RunMigrations(cfg.DatabaseURL, "migrations"); err != nil {
			log.Fatalf("Failed to run migrations: %v", err)
		}
	}

	// Initialize Redis
	rdb, err := redis.Connect(bootCtx, cfg.RedisURL)
	if err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	defer rdb.Close()

	scorecards := store.NewScorecards(db)
	mgr := game.NewSessionManager(courses, rdb, scorecards, cfg)
	hub := ws.NewHub()
	publisher := ws.NewPublisher(hub, rdb)

	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery(), logging.GinLogger())
	api.SetupRoutes(router, mgr, hub, scorecards, cfg)

	port := cfg.Port
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{Addr: ":" + port, Handler: router}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error { return hub.Run(ctx) })
	g.Go(func() error { return ws.RunEventSubscriber(ctx, rdb, hub) })
	g.Go(func() error { return game.RunTickWorker(ctx, mgr, publisher, cfg) })
	g.Go(func() error { return game.RunIdleWorker(ctx, mgr, cfg) })
	g.Go(func() error {
		log.Infof("Starting minigolf server on port %s", port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		// Keep what players have so far.
		for _, s := range mgr.Sessions() {
			if err := mgr.SaveSession(shutdownCtx, s); err != nil {
				log.Warnf("[REDIS] snapshot on shutdown for %s failed: %v", s.ID, err)
			}
		}
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Fatalf("Server stopped: %v", err)
	}
	log.Info("Server stopped")
}
