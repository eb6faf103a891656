// Package cache provides the in-process invalidation fan-out notified
// after every successful apply or undo.
package cache

import (
	"context"
	"sync"

	"github.com/example/vintry/internal/core/analysis"
)

// Memory caches the last analysis report per cellar and drops it on
// invalidation. It wraps another provider: reads hit the cache, misses
// fall through.
type Memory struct {
	mu      sync.Mutex
	reports map[string]*analysis.Report
}

// NewMemory creates an empty in-process cache.
func NewMemory() *Memory {
	return &Memory{reports: make(map[string]*analysis.Report)}
}

// GetReport returns the cached report for a cellar, nil on miss.
func (m *Memory) GetReport(cellarID string) *analysis.Report {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.reports[cellarID]
}

// PutReport caches a report for a cellar.
func (m *Memory) PutReport(cellarID string, rep *analysis.Report) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.reports[cellarID] = rep
}

// InvalidateCellar drops every cached entry for the cellar. Implements
// secondary.CacheInvalidator.
func (m *Memory) InvalidateCellar(ctx context.Context, cellarID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.reports, cellarID)
}

// CachingProvider layers Memory over a slower AnalysisProvider.
type CachingProvider struct {
	cache *Memory
	next  reportSource
}

type reportSource interface {
	GetReport(ctx context.Context, cellarID string) (*analysis.Report, error)
}

// NewCachingProvider wraps next with the shared cache.
func NewCachingProvider(cache *Memory, next reportSource) *CachingProvider {
	return &CachingProvider{cache: cache, next: next}
}

// GetReport serves from cache when possible.
func (p *CachingProvider) GetReport(ctx context.Context, cellarID string) (*analysis.Report, error) {
	if rep := p.cache.GetReport(cellarID); rep != nil {
		return rep, nil
	}
	rep, err := p.next.GetReport(ctx, cellarID)
	if err != nil {
		return nil, err
	}
	p.cache.PutReport(cellarID, rep)
	return rep, nil
}
