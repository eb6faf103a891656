package app

import (
	"context"
	"fmt"

	"github.com/example/vintry/internal/core/planner"
	"github.com/example/vintry/internal/models"
	"github.com/example/vintry/internal/ports/primary"
	"github.com/example/vintry/internal/ports/secondary"
	"github.com/example/vintry/internal/zones"
)

// ReconfigServiceImpl implements primary.ReconfigService.
type ReconfigServiceImpl struct {
	registry  *zones.Registry
	pipeline  *planner.Pipeline
	reports   secondary.AnalysisProvider
	allocs    secondary.AllocationRepository
	plans     secondary.PlanStore
	reconfigs secondary.ReconfigurationRepository
	counters  secondary.ChangeCounterRepository
	pins      secondary.ZonePinRepository
	wines     secondary.WineRepository
	settings  secondary.SettingsRepository
	telemetry secondary.ReviewTelemetryRepository
	uow       secondary.UnitOfWork
	cache     secondary.CacheInvalidator
	logw      secondary.LogWriter

	defaultThresholdPct int
}

// ReconfigDeps bundles the dependencies for NewReconfigService.
type ReconfigDeps struct {
	Registry  *zones.Registry
	Reasoner  planner.Reasoner // optional
	Reports   secondary.AnalysisProvider
	Allocs    secondary.AllocationRepository
	Plans     secondary.PlanStore
	Reconfigs secondary.ReconfigurationRepository
	Counters  secondary.ChangeCounterRepository
	Pins      secondary.ZonePinRepository
	Wines     secondary.WineRepository
	Settings  secondary.SettingsRepository
	Telemetry secondary.ReviewTelemetryRepository
	UoW       secondary.UnitOfWork
	Cache     secondary.CacheInvalidator
	Log       secondary.LogWriter

	DefaultThresholdPct int
}

// NewReconfigService creates the reconfiguration service.
func NewReconfigService(d ReconfigDeps) *ReconfigServiceImpl {
	s := &ReconfigServiceImpl{
		registry:            d.Registry,
		reports:             d.Reports,
		allocs:              d.Allocs,
		plans:               d.Plans,
		reconfigs:           d.Reconfigs,
		counters:            d.Counters,
		pins:                d.Pins,
		wines:               d.Wines,
		settings:            d.Settings,
		telemetry:           d.Telemetry,
		uow:                 d.UoW,
		cache:               d.Cache,
		logw:                d.Log,
		defaultThresholdPct: d.DefaultThresholdPct,
	}
	s.pipeline = &planner.Pipeline{
		Registry: d.Registry,
		Reasoner: d.Reasoner,
		Warn: func(format string, args ...any) {
			if s.logw != nil {
				_ = s.logw.Warn(context.Background(), "", "planner", fmt.Sprintf(format, args...))
			}
		},
	}
	return s
}

// GeneratePlan runs the threshold gate and the planning pipeline, storing
// the finished plan for a 15-minute apply window.
func (s *ReconfigServiceImpl) GeneratePlan(ctx context.Context, cellarID string, req primary.GeneratePlanRequest) (*primary.GeneratePlanResponse, error) {
	if !req.Force {
		status, err := s.CheckThreshold(ctx, cellarID)
		if err != nil {
			return nil, err
		}
		if !status.Allowed {
			return &primary.GeneratePlanResponse{Threshold: status}, nil
		}
	}

	report, err := s.reports.GetReport(ctx, cellarID)
	if err != nil {
		return nil, fmt.Errorf("failed to get analysis report: %w", err)
	}

	allocs, err := s.allocs.ListByCellar(ctx, cellarID)
	if err != nil {
		return nil, fmt.Errorf("failed to load allocations: %w", err)
	}

	pins, err := s.pins.ListByCellar(ctx, cellarID)
	if err != nil {
		return nil, fmt.Errorf("failed to load zone pins: %w", err)
	}
	pinList := make([]models.ZonePin, 0, len(pins))
	for _, p := range pins {
		pinList = append(pinList, *p)
	}

	result, err := s.pipeline.Generate(ctx, planner.GenerateInput{
		CellarID:           cellarID,
		Report:             report,
		RowMap:             models.BuildRowMap(allocs),
		Pins:               pinList,
		StabilityBias:      req.StabilityBias,
		IncludeRetirements: req.IncludeRetirements,
		IncludeNewZones:    req.IncludeNewZones,
	})
	if err != nil {
		return nil, fmt.Errorf("plan generation failed: %w", err)
	}

	planID, err := s.plans.Put(ctx, cellarID, result.Plan)
	if err != nil {
		return nil, fmt.Errorf("failed to store plan: %w", err)
	}

	if s.telemetry != nil {
		if err := s.telemetry.Record(ctx, &secondary.ReviewTelemetryRecord{
			CellarID:       cellarID,
			PlanID:         planID,
			Verdict:        result.Telemetry.Verdict,
			Escalated:      result.Telemetry.Escalated,
			FallbackUsed:   result.Telemetry.FallbackUsed,
			LatencyMs:      result.Telemetry.LatencyMs,
			StabilityScore: result.Telemetry.StabilityScore,
		}); err != nil {
			s.warn(ctx, cellarID, "telemetry", fmt.Sprintf("failed to record review telemetry: %v", err))
		}
	}

	plan := result.Plan
	return &primary.GeneratePlanResponse{PlanID: planID, Plan: &plan}, nil
}

func (s *ReconfigServiceImpl) warn(ctx context.Context, cellarID, event, detail string) {
	if s.logw != nil {
		_ = s.logw.Warn(ctx, cellarID, event, detail)
	}
}
