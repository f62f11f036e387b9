package cli

import (
	"bufio"
	"context"
	"log"
	"log/slog"
	"os"

	"github.com/pocketlegal/pocketlegal/internal/app/billing"
	"github.com/pocketlegal/pocketlegal/internal/app/capture"
	"github.com/pocketlegal/pocketlegal/internal/app/config"
	"github.com/pocketlegal/pocketlegal/internal/app/localdb"
	"github.com/pocketlegal/pocketlegal/internal/app/location"
	"github.com/pocketlegal/pocketlegal/internal/app/models"
	"github.com/pocketlegal/pocketlegal/internal/app/remote"
	"github.com/pocketlegal/pocketlegal/internal/app/report"
	"github.com/pocketlegal/pocketlegal/internal/app/scripts"
	"github.com/pocketlegal/pocketlegal/internal/app/services"
	"github.com/pocketlegal/pocketlegal/internal/app/storage"
	"github.com/pocketlegal/pocketlegal/internal/common"
	"github.com/pocketlegal/pocketlegal/internal/cryptox"
	"github.com/pocketlegal/pocketlegal/internal/logging"
)

// App is the interactive shell state.
type App struct {
	config *config.Config
	user   *models.UserAccount

	recorder *capture.Recorder
	session  *capture.Session
	durable  storage.BlobStore

	encounters *services.EncounterService
	subs       *services.SubscriptionService
	advisor    *scripts.Advisor
	reconciler *services.Reconciler

	mon    *report.Monitor
	logger logging.Logger
	reader *bufio.Reader

	closers []func()
}

// NewApp wires the full application from config. Collaborators whose
// endpoints are not configured are left out: the app runs fully local with
// an empty config.
func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {
	logger := logging.NewSlogLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn})))
	mon := report.NewMonitor(16)

	repos, err := localdb.InitDatabase(ctx, cfg.LocalDatabaseDSN)
	if err != nil {
		log.Printf("error initializing database: %s", err.Error())
		return nil, err
	}

	a := &App{
		config: cfg,
		mon:    mon,
		logger: logger,
		reader: bufio.NewReader(os.Stdin),
	}
	a.closers = append(a.closers, func() { _ = repos.DB.Close() })

	var sealer *cryptox.Sealer
	if cfg.SealRecordings {
		pass, err := GetPassword(os.Stdout)
		if err != nil {
			return nil, err
		}
		key := cryptox.DeriveKey(pass, []byte(cfg.UserID))
		common.WipeByteArray(pass)
		sealer, err = cryptox.NewSealer(key)
		if err != nil {
			return nil, err
		}
	}

	var durable storage.BlobStore
	if cfg.S3Bucket != "" {
		durable = storage.NewS3Store(storage.S3Config{
			Region:       cfg.S3Region,
			Bucket:       cfg.S3Bucket,
			BaseEndpoint: cfg.S3BaseEndpoint,
			AccessKey:    cfg.S3AccessKey,
			SecretKey:    cfg.S3SecretKey,
		})
	}
	a.durable = durable

	router := storage.NewRouter(storage.RouterOptions{
		Durable:       durable,
		Sealer:        sealer,
		UploadTimeout: cfg.UploadTimeout,
		Reporter:      mon,
		Logger:        logger,
	})

	var docStore remote.DocumentStore
	if cfg.RemoteDatabaseDSN != "" {
		rdb, err := remote.Open(ctx, cfg.RemoteDatabaseDSN)
		if err != nil {
			// The app is usable without the mirror; start local-only.
			logger.Warn(ctx, "remote database unavailable, running local-only", "error", err)
		} else {
			docStore = remote.NewPostgresStore(rdb)
			a.closers = append(a.closers, func() { _ = rdb.Close() })
		}
	}

	a.reconciler = services.NewReconciler(services.ReconcilerOptions{
		Remote:   docStore,
		Reporter: mon,
		Logger:   logger,
	})

	a.encounters = services.NewEncounterService(services.EncounterServiceOptions{
		Encounters: repos.Encounters,
		Users:      repos.Users,
		Router:     router,
		Reconciler: a.reconciler,
		Reporter:   mon,
		Logger:     logger,
	})

	var provider billing.PaymentProvider
	if cfg.BillingAPIKey != "" {
		provider = billing.NewHTTPProvider(cfg.BillingEndpoint, cfg.BillingAPIKey, cfg.BillingPriceID)
	} else {
		provider = billing.NewMockProvider()
	}
	a.subs = services.NewSubscriptionService(repos.Users, provider, a.reconciler, nil)

	var scriptProvider scripts.Provider
	if cfg.OpenAIAPIKey != "" {
		scriptProvider = scripts.NewOpenAIProvider(cfg.OpenAIEndpoint, cfg.OpenAIAPIKey, cfg.OpenAIModel)
	}
	a.advisor = scripts.NewAdvisor(scripts.AdvisorOptions{
		Provider: scriptProvider,
		Reporter: mon,
		Logger:   logger,
	})

	geocoder := location.NewHTTPGeocoder(cfg.GeocodeEndpoint, nil)
	a.recorder = capture.NewRecorder(&capture.FileDevice{Path: cfg.CaptureSource}, capture.Options{
		Geocoder:        geocoder,
		LocationTimeout: cfg.LocationTimeout,
		Reporter:        mon,
		Logger:          logger,
	})

	return a, nil
}

// Run loads the user, starts the background reconciler and enters the REPL.
func (a *App) Run(ctx context.Context) error {
	defer a.Close()

	user, err := a.subs.CurrentUser(ctx, a.config.UserID)
	if err != nil {
		return err
	}
	a.user = user

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	go a.reconciler.Run(ctx)

	a.Root(ctx)
	return nil
}

// Close releases database handles.
func (a *App) Close() {
	for _, fn := range a.closers {
		fn()
	}
}

func (a *App) isRecording() bool {
	return a.session != nil && a.session.State() == capture.StateRecording
}

func (a *App) hasStoppedRecording() bool {
	return a.session != nil && a.session.State() == capture.StateStopped
}

// Warnings drains the advisory monitor into printable lines.
func (a *App) Warnings() []string {
	events := a.mon.Drain()
	lines := make([]string, 0, len(events))
	for _, e := range events {
		lines = append(lines, "warning: "+e.Op+": "+e.Err.Error())
	}
	return lines
}
