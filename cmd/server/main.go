package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"golang.org/x/sync/errgroup"

	"github.com/ugaemi/citypursuit/internal/config"
	"github.com/ugaemi/citypursuit/internal/game"
	"github.com/ugaemi/citypursuit/internal/handler"
	"github.com/ugaemi/citypursuit/internal/logging"
	"github.com/ugaemi/citypursuit/internal/session"
	"github.com/ugaemi/citypursuit/internal/store"
	"github.com/ugaemi/citypursuit/internal/ws"
)

const shutdownTimeout = 5 * time.Second

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow all origins for development
	},
}

func main() {
	if err := run(); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	flush, err := logging.Setup(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return err
	}
	defer flush()
	for _, w := range cfg.Warnings {
		slog.Warn("config value replaced by default", "detail", w)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	journal, err := openJournal(ctx, cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer journal.Close()

	settings := session.DefaultSettings()
	settings.Seed = cfg.Seed
	settings.CapturePolicy = cfg.CapturePolicy
	settings.StrikePolicy = cfg.StrikePolicy
	settings.DebugControls = cfg.DebugControls
	settings.TickInterval = cfg.TickInterval()
	if cfg.LayoutFile != "" {
		if settings.Layout, err = loadLayout(cfg.LayoutFile); err != nil {
			return err
		}
	}

	sm, err := session.NewManager(settings, journal)
	if err != nil {
		return err
	}
	defer sm.StopAll()

	hub := ws.NewHub()
	router := handler.NewRouter(sm)

	hub.OnMessage = router.HandleMessage
	hub.OnDisconnect = router.HandleDisconnect

	mux := http.NewServeMux()
	mux.HandleFunc("/health", handleHealth)
	mux.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
		handleWebSocket(hub, w, r)
	})

	addr := fmt.Sprintf(":%d", cfg.Port)
	srv := &http.Server{Addr: addr, Handler: mux}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		hub.Run(ctx)
		return nil
	})
	g.Go(func() error {
		slog.Info("server starting", "addr", addr,
			"capture_policy", cfg.CapturePolicy.String(),
			"strike_policy", cfg.StrikePolicy.String(),
			"debug_controls", cfg.DebugControls)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		slog.Info("server shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

// openJournal connects to Postgres when a database URL is configured and
// falls back to an in-memory journal otherwise.
func openJournal(ctx context.Context, databaseURL string) (store.IncidentStore, error) {
	if databaseURL == "" {
		slog.Info("no database configured, journaling incidents in memory")
		return store.NewMemoryStore(), nil
	}
	pg, err := store.NewPostgresStore(ctx, databaseURL)
	if err != nil {
		return nil, err
	}
	slog.Info("journaling incidents to postgres")
	return pg, nil
}

func loadLayout(path string) (*game.Layout, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open layout: %w", err)
	}
	defer f.Close()

	l, err := game.LoadLayout(f)
	if err != nil {
		return nil, fmt.Errorf("load layout %s: %w", path, err)
	}
	return l, nil
}

func handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}

func handleWebSocket(hub *ws.Hub, w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.Error("websocket upgrade failed", "error", err)
		return
	}

	client := ws.NewClient(uuid.NewString(), hub, conn)
	select {
	case hub.Register <- client:
	case <-hub.Done():
		conn.Close()
		return
	}

	go client.WritePump()
	go client.ReadPump()
}
