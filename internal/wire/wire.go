// Package wire provides dependency injection for the vintry application.
// It creates singleton services with lazy initialization.
package wire

import (
	"io"
	"log"
	"os"
	"sync"

	"github.com/example/vintry/internal/adapters/cache"
	cliadapter "github.com/example/vintry/internal/adapters/cli"
	"github.com/example/vintry/internal/adapters/reasoning"
	"github.com/example/vintry/internal/adapters/report"
	"github.com/example/vintry/internal/adapters/sqlite"
	"github.com/example/vintry/internal/app"
	"github.com/example/vintry/internal/config"
	"github.com/example/vintry/internal/db"
	"github.com/example/vintry/internal/ports/primary"
	"github.com/example/vintry/internal/ports/secondary"
	"github.com/example/vintry/internal/zones"
)

var (
	cfg            *config.Config
	registry       *zones.Registry
	reconfigSvc    primary.ReconfigService
	moveSvc        primary.MoveService
	settingsRepo   secondary.SettingsRepository
	reconfigRepo   secondary.ReconfigurationRepository
	slotRepo       secondary.SlotRepository
	allocationRepo secondary.AllocationRepository
	counterRepo    secondary.ChangeCounterRepository
	pinRepo        secondary.ZonePinRepository
	planStore      secondary.PlanStore
	once           sync.Once
)

// Config returns the resolved configuration.
func Config() *config.Config {
	once.Do(initServices)
	return cfg
}

// Registry returns the embedded zone registry.
func Registry() *zones.Registry {
	once.Do(initServices)
	return registry
}

// ReconfigService returns the singleton ReconfigService instance.
func ReconfigService() primary.ReconfigService {
	once.Do(initServices)
	return reconfigSvc
}

// MoveService returns the singleton MoveService instance.
func MoveService() primary.MoveService {
	once.Do(initServices)
	return moveSvc
}

// Settings returns the settings repository for CLI-level overrides.
func Settings() secondary.SettingsRepository {
	once.Do(initServices)
	return settingsRepo
}

// Reconfigurations returns the reconfiguration history repository.
func Reconfigurations() secondary.ReconfigurationRepository {
	once.Do(initServices)
	return reconfigRepo
}

// Slots returns the slot repository (used by init to seed the grid).
func Slots() secondary.SlotRepository {
	once.Do(initServices)
	return slotRepo
}

// Allocations returns the allocation repository.
func Allocations() secondary.AllocationRepository {
	once.Do(initServices)
	return allocationRepo
}

// Counters returns the change counter repository.
func Counters() secondary.ChangeCounterRepository {
	once.Do(initServices)
	return counterRepo
}

// Pins returns the zone pin repository.
func Pins() secondary.ZonePinRepository {
	once.Do(initServices)
	return pinRepo
}

// Plans returns the stored-plan holder.
func Plans() secondary.PlanStore {
	once.Do(initServices)
	return planStore
}

// initServices initializes all services and their dependencies.
// This is called once via sync.Once.
func initServices() {
	cwd, err := os.Getwd()
	if err != nil {
		log.Fatalf("failed to resolve working directory: %v", err)
	}
	cfg, err = config.LoadConfig(cwd)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	registry, err = zones.Load()
	if err != nil {
		log.Fatalf("failed to load zone registry: %v", err)
	}

	database, err := db.GetDB()
	if err != nil {
		log.Fatalf("failed to initialize database: %v", err)
	}

	logw := sqlite.NewLogWriter(database)

	allocationRepo = sqlite.NewAllocationRepository(database)
	reconfigRepo = sqlite.NewReconfigurationRepository(database)
	counterRepo = sqlite.NewChangeCounterRepository(database)
	pinRepo = sqlite.NewZonePinRepository(database)
	slotRepo = sqlite.NewSlotRepository(database)
	settingsRepo = sqlite.NewSettingsRepository(database)
	wineRepo := sqlite.NewWineRepository(database)
	planStore = sqlite.NewPlanStore(database, logw)
	telemetryRepo := sqlite.NewReviewTelemetryRepository(database)
	uow := sqlite.NewUnitOfWork(database)

	memo := cache.NewMemory()
	reports := cache.NewCachingProvider(memo, report.NewFileProvider(cfg.ReportPath))

	// nil when no endpoint is configured; refinement then degrades to the
	// deterministic draft.
	reasoner := reasoning.NewClient(reasoning.Config{
		Endpoint:    cfg.ReasoningEndpoint,
		APIKey:      cfg.ReasoningKey,
		RefineModel: cfg.RefineModel,
		ReviewModel: cfg.ReviewModel,
	})

	deps := app.ReconfigDeps{
		Registry:            registry,
		Reports:             reports,
		Allocs:              allocationRepo,
		Plans:               planStore,
		Reconfigs:           reconfigRepo,
		Counters:            counterRepo,
		Pins:                pinRepo,
		Wines:               wineRepo,
		Settings:            settingsRepo,
		Telemetry:           telemetryRepo,
		UoW:                 uow,
		Cache:               memo,
		Log:                 logw,
		DefaultThresholdPct: cfg.ThresholdPct,
	}
	if reasoner != nil {
		deps.Reasoner = reasoner
	}

	reconfigSvc = app.NewReconfigService(deps)
	moveSvc = app.NewMoveService(wineRepo, slotRepo, uow, memo, logw)
}

// PlanAdapter returns a new PlanAdapter writing to stdout.
// Each call creates a new adapter (adapters are stateless translators).
func PlanAdapter() *cliadapter.PlanAdapter {
	return PlanAdapterWithOutput(os.Stdout)
}

// PlanAdapterWithOutput returns a new PlanAdapter writing to the given output.
// This variant allows testing or alternate output destinations.
func PlanAdapterWithOutput(out io.Writer) *cliadapter.PlanAdapter {
	once.Do(initServices)
	return cliadapter.NewPlanAdapter(reconfigSvc, out)
}

// MoveAdapter returns a new MoveAdapter writing to stdout.
func MoveAdapter() *cliadapter.MoveAdapter {
	return MoveAdapterWithOutput(os.Stdout)
}

// MoveAdapterWithOutput returns a new MoveAdapter writing to the given output.
func MoveAdapterWithOutput(out io.Writer) *cliadapter.MoveAdapter {
	once.Do(initServices)
	return cliadapter.NewMoveAdapter(moveSvc, out)
}
