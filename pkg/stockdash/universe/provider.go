package universe

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/ternarybob/arbor"
)

// Provider serves the ticker universe. The first successful load is kept for
// the process lifetime unless refreshed; a failed load serves the fallback.
type Provider struct {
	source   Source
	fallback []string
	logger   arbor.ILogger
	timeout  time.Duration

	loadMu  sync.Mutex
	mu      sync.RWMutex
	symbols []string
	live    bool

	cron *cron.Cron
}

func NewProvider(source Source, logger arbor.ILogger) *Provider {
	return &Provider{
		source:   source,
		fallback: Fallback,
		logger:   logger,
		timeout:  30 * time.Second,
	}
}

// Universe returns the current symbols, loading them on first use.
func (p *Provider) Universe(ctx context.Context) []string {
	if syms, ok := p.cached(); ok {
		return syms
	}
	p.loadMu.Lock()
	defer p.loadMu.Unlock()
	if syms, ok := p.cached(); ok {
		return syms
	}
	return p.loadLocked(ctx)
}

// Refresh reloads the universe from the source. A failed refresh keeps a
// previously loaded live list rather than reverting to the fallback.
func (p *Provider) Refresh(ctx context.Context) []string {
	p.loadMu.Lock()
	defer p.loadMu.Unlock()
	return p.loadLocked(ctx)
}

// Live reports whether the served list came from the source.
func (p *Provider) Live() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.live
}

func (p *Provider) cached() ([]string, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.symbols == nil {
		return nil, false
	}
	return append([]string(nil), p.symbols...), true
}

func (p *Provider) loadLocked(ctx context.Context) []string {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	start := time.Now()
	syms, err := p.source.Load(ctx)
	if err != nil || len(syms) == 0 {
		if err == nil {
			err = ErrNoSymbols
		}
		p.mu.Lock()
		defer p.mu.Unlock()
		if p.live {
			p.logger.Warn().Err(err).Int("symbols", len(p.symbols)).Msg("Universe refresh failed, keeping current list")
			return append([]string(nil), p.symbols...)
		}
		p.logger.Warn().Err(err).Int("symbols", len(p.fallback)).Msg("Universe unavailable, using fallback list")
		p.symbols = append([]string(nil), p.fallback...)
		return append([]string(nil), p.symbols...)
	}

	p.mu.Lock()
	p.symbols = syms
	p.live = true
	p.mu.Unlock()
	p.logger.Info().Int("symbols", len(syms)).Dur("duration", time.Since(start)).Msg("Universe loaded")
	return append([]string(nil), syms...)
}

// Start schedules periodic refreshes on a cron spec such as "@daily".
// An empty spec disables scheduling.
func (p *Provider) Start(spec string) error {
	if spec == "" {
		return nil
	}
	c := cron.New()
	if _, err := c.AddFunc(spec, func() { p.Refresh(context.Background()) }); err != nil {
		return fmt.Errorf("universe refresh schedule %q: %w", spec, err)
	}
	c.Start()
	p.cron = c
	p.logger.Debug().Str("schedule", spec).Msg("Universe refresh scheduled")
	return nil
}

// Stop halts scheduled refreshes and waits for a running one to finish.
func (p *Provider) Stop() {
	if p.cron == nil {
		return
	}
	<-p.cron.Stop().Done()
	p.cron = nil
}
