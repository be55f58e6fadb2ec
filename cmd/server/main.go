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

	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/sync/errgroup"

	"investdesk/internal/audit"
	audithandler "investdesk/internal/audit/handler"
	"investdesk/internal/inquiry"
	inquiryhandler "investdesk/internal/inquiry/handler"
	"investdesk/internal/offer"
	offerhandler "investdesk/internal/offer/handler"
	"investdesk/internal/platform/config"
	"investdesk/internal/platform/httpserver"
	"investdesk/internal/platform/logger"
	"investdesk/internal/platform/metrics"
	"investdesk/internal/profile"
	profilehandler "investdesk/internal/profile/handler"
	"investdesk/internal/refdata"
	refdatahandler "investdesk/internal/refdata/handler"
	"investdesk/internal/storage"
	"investdesk/internal/suitability"
	suitabilityhandler "investdesk/internal/suitability/handler"
	httptransport "investdesk/internal/transport/http"
)

// main wires dependencies and keeps the server lifecycle small. Business
// logic lives in the internal service packages.
func main() {
	if err := run(); err != nil {
		slog.Error("server exited", "error", err.Error())
		os.Exit(1)
	}
}

func run() error {
	cfg := config.FromEnv()
	log := logger.New()
	slog.SetDefault(log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	catalog, err := refdata.LoadDir(cfg.DataDir)
	if err != nil {
		return fmt.Errorf("load reference data: %w", err)
	}

	stores, cleanup, err := buildStores(ctx, cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	m := metrics.New()
	trail := audit.NewTrail(stores.events, log)

	profiles := profile.New(stores.profiles, profile.WithLogger(log))
	if err := profiles.Seed(ctx, catalog.Profiles()); err != nil {
		return fmt.Errorf("seed investment profiles: %w", err)
	}

	checks := suitability.New(profiles, catalog)

	offers := offer.New(stores.offers, checks, catalog,
		offer.WithLogger(log),
		offer.WithMetrics(m),
		offer.WithAuditTrail(trail),
	)
	inquiries := inquiry.New(stores.inquiries, offers,
		inquiry.WithLogger(log),
		inquiry.WithMetrics(m),
		inquiry.WithAuditTrail(trail),
	)

	router := httptransport.NewRouter(log,
		inquiryhandler.New(inquiries, log),
		offerhandler.New(offers, log),
		suitabilityhandler.New(checks, log),
		profilehandler.New(profiles, log),
		refdatahandler.New(catalog),
		audithandler.New(trail),
	)

	srv := httpserver.New(cfg.Addr, router)

	log.Info("starting investdesk",
		"addr", cfg.Addr,
		"storage", cfg.Storage,
		"data_dir", cfg.DataDir,
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

// appStores groups the persisted collections behind one backend choice.
type appStores struct {
	inquiries storage.Store[inquiry.Inquiry]
	offers    storage.Store[offer.Offer]
	profiles  storage.Store[refdata.InvestmentProfile]
	events    storage.Store[audit.Event]
}

func buildStores(ctx context.Context, cfg config.Server) (appStores, func(), error) {
	cleanup := func() {}

	switch cfg.Storage {
	case config.BackendMemory:
		return appStores{
			inquiries: storage.NewInMemoryStore[inquiry.Inquiry](),
			offers:    storage.NewInMemoryStore[offer.Offer](),
			profiles:  storage.NewInMemoryStore[refdata.InvestmentProfile](),
			events:    storage.NewInMemoryStore[audit.Event](),
		}, cleanup, nil

	case config.BackendPostgres:
		pool, err := pgxpool.New(ctx, cfg.PostgresDSN)
		if err != nil {
			return appStores{}, cleanup, fmt.Errorf("connect postgres: %w", err)
		}
		if err := storage.Migrate(ctx, pool); err != nil {
			pool.Close()
			return appStores{}, cleanup, fmt.Errorf("migrate postgres: %w", err)
		}
		return appStores{
			inquiries: storage.NewPostgresStore[inquiry.Inquiry](pool, "inquiries"),
			offers:    storage.NewPostgresStore[offer.Offer](pool, "offers"),
			profiles:  storage.NewPostgresStore[refdata.InvestmentProfile](pool, "profiles"),
			events:    storage.NewPostgresStore[audit.Event](pool, "audit_events"),
		}, pool.Close, nil

	default:
		inquiries, err := storage.NewFileStore[inquiry.Inquiry](cfg.DataDir, "inquiries")
		if err != nil {
			return appStores{}, cleanup, fmt.Errorf("open inquiry store: %w", err)
		}
		offers, err := storage.NewFileStore[offer.Offer](cfg.DataDir, "offers")
		if err != nil {
			return appStores{}, cleanup, fmt.Errorf("open offer store: %w", err)
		}
		profiles, err := storage.NewFileStore[refdata.InvestmentProfile](cfg.DataDir, "profiles")
		if err != nil {
			return appStores{}, cleanup, fmt.Errorf("open profile store: %w", err)
		}
		events, err := storage.NewFileStore[audit.Event](cfg.DataDir, "audit_events")
		if err != nil {
			return appStores{}, cleanup, fmt.Errorf("open audit store: %w", err)
		}
		return appStores{
			inquiries: inquiries,
			offers:    offers,
			profiles:  profiles,
			events:    events,
		}, cleanup, nil
	}
}
