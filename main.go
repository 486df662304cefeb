package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	tea "charm.land/bubbletea/v2"
	"github.com/joho/godotenv"

	"github.com/oyilmaz/firsat/internal/api"
	"github.com/oyilmaz/firsat/internal/board"
	"github.com/oyilmaz/firsat/internal/config"
	"github.com/oyilmaz/firsat/internal/events"
	"github.com/oyilmaz/firsat/internal/logging"
	"github.com/oyilmaz/firsat/internal/services/deal"
	"github.com/oyilmaz/firsat/internal/store"
	"github.com/oyilmaz/firsat/internal/tui/components"
	"github.com/oyilmaz/firsat/internal/tui/core"
)

func main() {
	// .env is optional; FIRSAT_* variables override the config file
	_ = godotenv.Load()

	if err := logging.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logging: %v\n", err)
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	components.InitStyles(cfg.ColorScheme)

	ctx, cancel := signal.NotifyContext(
		context.Background(),
		os.Interrupt,
		syscall.SIGTERM,
	)
	defer cancel()

	stages := cfg.StageModels()
	st := store.New(stages, cfg.Cache.TTL)

	snapshot, err := store.OpenSnapshot(ctx, snapshotPath(cfg))
	if err != nil {
		// Offline fallback is best-effort; the board still works without it
		slog.Warn("snapshot cache unavailable", "error", err)
	}
	if snapshot != nil {
		defer snapshot.Close()
	}

	client := api.NewClient(cfg.API)
	svc := deal.NewService(client, st, snapshot)
	committer := board.NewCommitter(st, client, stages, cfg.Transitions)

	eventChan, notifyChan, eventClient := connectEventFeed(ctx, cfg)
	if eventClient != nil {
		defer func() {
			if err := eventClient.Close(); err != nil {
				slog.Debug("error closing event feed", "error", err)
			}
		}()
	}

	app := core.New(ctx, cfg, svc, st, committer, eventChan, notifyChan)

	p := tea.NewProgram(app)
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running program: %v\n", err)
		os.Exit(1)
	}
}

// connectEventFeed connects the websocket change feed when one is
// configured. Failures disable the feed rather than failing startup; the
// board then refreshes on cache TTL alone.
func connectEventFeed(ctx context.Context, cfg *config.Config) (<-chan events.Event, <-chan events.NotificationMsg, events.Listener) {
	if cfg.API.EventURL == "" {
		return nil, nil, nil
	}

	var client events.Listener = events.NewClient(cfg.API.EventURL)

	notifyChan := make(chan events.NotificationMsg, 10)
	client.SetNotifyFunc(func(level, message string) {
		select {
		case notifyChan <- events.NotificationMsg{Level: level, Message: message}:
		default:
		}
	})

	if err := client.Connect(ctx); err != nil {
		slog.Warn("event feed unavailable, falling back to TTL refresh", "error", err)
		return nil, nil, nil
	}
	if err := client.Subscribe(cfg.API.TenantID); err != nil {
		slog.Warn("event feed subscription failed", "error", err)
	}

	eventChan, err := client.Listen(ctx)
	if err != nil {
		slog.Warn("event feed listen failed", "error", err)
		if closeErr := client.Close(); closeErr != nil {
			slog.Debug("error closing event feed", "error", closeErr)
		}
		return nil, nil, nil
	}

	return eventChan, notifyChan, client
}

// snapshotPath resolves the offline snapshot location, defaulting to
// ~/.firsat/snapshot.db.
func snapshotPath(cfg *config.Config) string {
	if cfg.Cache.SnapshotPath != "" {
		return cfg.Cache.SnapshotPath
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "snapshot.db"
	}
	return filepath.Join(home, ".firsat", "snapshot.db")
}
