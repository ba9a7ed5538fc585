package monitoring

import (
	"runtime"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Gauge reports the current value of a named quantity, e.g. active games
type Gauge func() int

// Config tunes a Monitor
type Config struct {
	CheckInterval  time.Duration
	AlertThreshold int // goroutine count that triggers a warning
	AlertCooldown  time.Duration
}

// DefaultConfig samples every 30s and warns above 1000 goroutines
func DefaultConfig() Config {
	return Config{
		CheckInterval:  30 * time.Second,
		AlertThreshold: 1000,
		AlertCooldown:  5 * time.Minute,
	}
}

// Monitor periodically samples the goroutine count and registered gauges
// and logs them. A goroutine count that keeps growing with no growth in
// sessions points at a leaked opponent timer or handler.
type Monitor struct {
	mu        sync.RWMutex
	cfg       Config
	logger    zerolog.Logger
	now       func() time.Time
	baseline  int
	current   int
	peak      int
	lastAlert time.Time
	gauges    map[string]Gauge
	readings  map[string]int

	stopOnce sync.Once
	stop     chan struct{}
}

// NewMonitor creates a monitor. Call Start to begin sampling.
func NewMonitor(cfg Config, logger zerolog.Logger) *Monitor {
	if cfg.CheckInterval <= 0 {
		cfg.CheckInterval = DefaultConfig().CheckInterval
	}
	baseline := runtime.NumGoroutine()
	return &Monitor{
		cfg:      cfg,
		logger:   logger.With().Str("component", "Monitor").Logger(),
		now:      time.Now,
		baseline: baseline,
		current:  baseline,
		peak:     baseline,
		gauges:   make(map[string]Gauge),
		readings: make(map[string]int),
		stop:     make(chan struct{}),
	}
}

// Register adds a gauge sampled on every check
func (m *Monitor) Register(name string, g Gauge) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.gauges[name] = g
}

// Start begins sampling in the background
func (m *Monitor) Start() {
	go m.run()
	m.logger.Info().
		Int("baseline", m.baseline).
		Dur("interval", m.cfg.CheckInterval).
		Msg("Started goroutine monitoring")
}

// Stop ends sampling. It is safe to call more than once.
func (m *Monitor) Stop() {
	m.stopOnce.Do(func() { close(m.stop) })
}

func (m *Monitor) run() {
	ticker := time.NewTicker(m.cfg.CheckInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			m.safeCheck()
		case <-m.stop:
			return
		}
	}
}

func (m *Monitor) safeCheck() {
	defer func() {
		if r := recover(); r != nil {
			m.logger.Error().Interface("panic", r).Msg("Monitor check panicked")
		}
	}()
	m.Check()
}

// Check takes one sample and returns the resulting metrics
func (m *Monitor) Check() Metrics {
	current := runtime.NumGoroutine()

	m.mu.RLock()
	gauges := make(map[string]Gauge, len(m.gauges))
	for name, g := range m.gauges {
		gauges[name] = g
	}
	m.mu.RUnlock()

	// Gauges may take their own locks; sample them unlocked
	readings := make(map[string]int, len(gauges))
	for name, g := range gauges {
		readings[name] = g()
	}

	now := m.now()
	m.mu.Lock()
	m.current = current
	if current > m.peak {
		m.peak = current
	}
	m.readings = readings

	shouldAlert := m.cfg.AlertThreshold > 0 && current > m.cfg.AlertThreshold &&
		(m.lastAlert.IsZero() || now.Sub(m.lastAlert) > m.cfg.AlertCooldown)
	if shouldAlert {
		m.lastAlert = now
	}
	metrics := m.metricsLocked()
	m.mu.Unlock()

	event := m.logger.Debug().
		Int("current", metrics.Current).
		Int("baseline", metrics.Baseline).
		Int("peak", metrics.Peak)
	for name, v := range readings {
		event = event.Int(name, v)
	}
	event.Msg("Runtime metrics")

	if shouldAlert {
		m.logger.Warn().
			Int("current", current).
			Int("threshold", m.cfg.AlertThreshold).
			Msg("High goroutine count detected - possible leak")
	}
	return metrics
}

// GetMetrics returns the metrics of the last sample
func (m *Monitor) GetMetrics() Metrics {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.metricsLocked()
}

func (m *Monitor) metricsLocked() Metrics {
	return Metrics{
		Current:  m.current,
		Baseline: m.baseline,
		Peak:     m.peak,
		Growth:   m.current - m.baseline,
		Gauges:   copyMap(m.readings),
	}
}

// Metrics contains goroutine statistics and gauge readings
type Metrics struct {
	Current  int            `json:"current"`
	Baseline int            `json:"baseline"`
	Peak     int            `json:"peak"`
	Growth   int            `json:"growth"`
	Gauges   map[string]int `json:"gauges"`
}

func copyMap(m map[string]int) map[string]int {
	result := make(map[string]int, len(m))
	for k, v := range m {
		result[k] = v
	}
	return result
}
