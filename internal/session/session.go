// Package session runs one timed game session: lifecycle phases, pause
// aware timing, visibility auto-pause and adaptive difficulty.
package session

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/abhisek/spiread/internal/clock"
	"github.com/abhisek/spiread/internal/difficulty"
	"github.com/abhisek/spiread/internal/games"
)

const (
	// DefaultGraceDelay is how long the host may stay in the background
	// before the session auto-pauses.
	DefaultGraceDelay = 2 * time.Second

	// DefaultTickInterval is the timeout check granularity used by Run.
	DefaultTickInterval = 100 * time.Millisecond

	// DefaultSaveTimeout bounds one persistence call.
	DefaultSaveTimeout = 5 * time.Second
)

var (
	ErrInvalidState    = difficulty.ErrInvalidState
	ErrInvalidArgument = difficulty.ErrInvalidArgument
)

// PersistenceGateway stores completed runs. Implementations may be slow
// or fail; the machine never waits on them.
type PersistenceGateway interface {
	SaveRun(ctx context.Context, r Results) error
}

// Config describes a session.
type Config struct {
	Game games.ID

	// InitialLevel defaults to 1.
	InitialLevel int

	// Duration of active play. Zero means the session runs until stopped.
	Duration time.Duration

	// GraceDelay defaults to DefaultGraceDelay. Negative disables
	// auto-pause.
	GraceDelay time.Duration

	// TickInterval defaults to DefaultTickInterval.
	TickInterval time.Duration
}

// Option configures a Machine.
type Option func(*Machine)

// WithClock sets the time source. The controller uses it too.
func WithClock(c clock.Clock) Option {
	return func(m *Machine) { m.clk = c }
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(m *Machine) { m.logger = l }
}

// WithPersistence hands completed results to g in the background.
func WithPersistence(g PersistenceGateway) Option {
	return func(m *Machine) { m.persist = g }
}

// WithScoreFunc computes the final score on completion.
func WithScoreFunc(fn ScoreFunc) Option {
	return func(m *Machine) { m.scoreFn = fn }
}

// WithControllerOptions passes options through to the difficulty controller.
func WithControllerOptions(opts ...difficulty.Option) Option {
	return func(m *Machine) { m.ctrlOpts = append(m.ctrlOpts, opts...) }
}

// WithSaveTimeout bounds each persistence call.
func WithSaveTimeout(d time.Duration) Option {
	return func(m *Machine) { m.saveTimeout = d }
}

// Machine is the session state machine. All methods are safe to call from
// multiple goroutines; events are applied in the order they acquire the
// lock. Callbacks and persistence run outside the lock.
type Machine struct {
	mu sync.Mutex

	cfg      Config
	profile  games.Profile
	ctrl     *difficulty.Controller
	ctrlOpts []difficulty.Option
	clk      clock.Clock
	clock    *Clock
	vis      visibility
	logger   *slog.Logger

	phase       Phase
	pauseReason PauseReason
	runID       string
	startLevel  int
	score       int
	scored      bool
	pauses      int
	autoPauses  int

	callbacks []func(Results)
	results   *Results
	done      chan struct{}

	persist     PersistenceGateway
	scoreFn     ScoreFunc
	saveTimeout time.Duration
	saves       sync.WaitGroup
}

// New creates an Idle session.
func New(cfg Config, opts ...Option) (*Machine, error) {
	profile, err := games.Lookup(cfg.Game)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidArgument, err)
	}
	if cfg.InitialLevel == 0 {
		cfg.InitialLevel = 1
	}
	if cfg.Duration < 0 {
		return nil, fmt.Errorf("%w: negative duration %s", ErrInvalidArgument, cfg.Duration)
	}
	if cfg.GraceDelay == 0 {
		cfg.GraceDelay = DefaultGraceDelay
	}
	if cfg.TickInterval <= 0 {
		cfg.TickInterval = DefaultTickInterval
	}

	m := &Machine{
		cfg:         cfg,
		profile:     profile,
		clk:         clock.Real(),
		logger:      slog.Default(),
		phase:       PhaseIdle,
		runID:       uuid.New().String(),
		done:        make(chan struct{}),
		saveTimeout: DefaultSaveTimeout,
	}
	for _, opt := range opts {
		opt(m)
	}

	ctrlOpts := append([]difficulty.Option{
		difficulty.WithClock(m.clk),
		difficulty.WithLogger(m.logger),
	}, m.ctrlOpts...)
	m.ctrl, err = difficulty.NewController(cfg.Game, cfg.InitialLevel, ctrlOpts...)
	if err != nil {
		return nil, fmt.Errorf("create controller: %w", err)
	}
	m.startLevel = m.ctrl.Level()
	m.clock = NewClock(m.clk, cfg.Duration)
	m.vis = visibility{clk: m.clk, grace: cfg.GraceDelay}
	return m, nil
}

// RunID returns the unique ID of this session.
func (m *Machine) RunID() string {
	return m.runID
}

// Profile returns the game's profile.
func (m *Machine) Profile() games.Profile {
	return m.profile
}

// Start moves Idle to Playing and starts the clock at zero.
func (m *Machine) Start() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	switch m.phase {
	case PhaseComplete:
		return nil
	case PhaseIdle:
	default:
		return fmt.Errorf("%w: start while %s", ErrInvalidState, m.phase)
	}

	m.startLevel = m.ctrl.Level()
	m.clock.Start()
	m.phase = PhasePlaying
	if m.vis.hidden {
		m.vis.arm(m.graceExpired)
	}
	m.logger.Info("session started",
		"run", m.runID,
		"game", m.profile.ID,
		"level", m.startLevel,
		"duration", m.cfg.Duration)
	return nil
}

// Pause freezes the session. An empty reason is treated as manual.
func (m *Machine) Pause(reason PauseReason) error {
	if reason == "" {
		reason = PauseManual
	}
	if reason != PauseManual && reason != PauseAuto {
		return fmt.Errorf("%w: pause reason %q", ErrInvalidArgument, reason)
	}

	m.mu.Lock()
	if r, ok := m.expireLocked(); ok {
		m.mu.Unlock()
		m.emit(r)
		return nil
	}
	defer m.mu.Unlock()

	switch m.phase {
	case PhaseComplete:
		return nil
	case PhasePlaying:
	default:
		return fmt.Errorf("%w: pause while %s", ErrInvalidState, m.phase)
	}
	m.pauseLocked(reason)
	return nil
}

func (m *Machine) pauseLocked(reason PauseReason) {
	m.clock.Pause()
	m.vis.cancel()
	m.phase = PhasePaused
	m.pauseReason = reason
	m.pauses++
	if reason == PauseAuto {
		m.autoPauses++
	}
}

// Resume continues a paused session. If the host is still in the
// background the grace timer starts over.
func (m *Machine) Resume() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	switch m.phase {
	case PhaseComplete:
		return nil
	case PhasePaused:
	default:
		return fmt.Errorf("%w: resume while %s", ErrInvalidState, m.phase)
	}

	m.clock.Resume()
	m.phase = PhasePlaying
	m.pauseReason = ""
	if m.vis.hidden {
		m.vis.arm(m.graceExpired)
	}
	return nil
}

// Stop ends a Playing or Paused session manually.
func (m *Machine) Stop() error {
	m.mu.Lock()
	if r, ok := m.expireLocked(); ok {
		m.mu.Unlock()
		m.emit(r)
		return nil
	}
	switch m.phase {
	case PhaseComplete:
		m.mu.Unlock()
		return nil
	case PhasePlaying, PhasePaused:
	default:
		phase := m.phase
		m.mu.Unlock()
		return fmt.Errorf("%w: stop while %s", ErrInvalidState, phase)
	}
	r := m.completeLocked(EndManualStop)
	m.mu.Unlock()

	m.emit(r)
	return nil
}

// Exit tears the session down. A session that has not completed yet is
// completed first so results are still emitted exactly once.
func (m *Machine) Exit() {
	m.mu.Lock()
	if m.phase == PhaseComplete {
		m.mu.Unlock()
		return
	}
	r := m.completeLocked(EndExit)
	m.mu.Unlock()

	m.emit(r)
}

// Tick completes a bounded session whose time is up. It is safe to call
// at any rate; elapsed time does not depend on tick frequency.
func (m *Machine) Tick() {
	m.mu.Lock()
	r, ok := m.expireLocked()
	m.mu.Unlock()
	if ok {
		m.emit(r)
	}
}

// expireLocked completes a Playing session whose time is already up. Every
// command checks it first so a late tick never lets a trial or a pause
// slip past the deadline.
func (m *Machine) expireLocked() (Results, bool) {
	if m.phase != PhasePlaying || !m.clock.Expired() {
		return Results{}, false
	}
	return m.completeLocked(EndTimeout), true
}

// Run ticks the session until it completes or ctx is cancelled.
func (m *Machine) Run(ctx context.Context) error {
	t := time.NewTicker(m.cfg.TickInterval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-m.done:
			return nil
		case <-t.C:
			m.Tick()
		}
	}
}

// Done is closed when the session completes.
func (m *Machine) Done() <-chan struct{} {
	return m.done
}

// RecordTrial forwards an outcome to the difficulty controller. Trials
// are only accepted while Playing and before the deadline.
func (m *Machine) RecordTrial(success bool, opts ...difficulty.TrialOption) (difficulty.Adjustment, error) {
	m.mu.Lock()
	if r, ok := m.expireLocked(); ok {
		m.mu.Unlock()
		m.emit(r)
		return difficulty.Adjustment{}, fmt.Errorf("%w: record trial after timeout", ErrInvalidState)
	}
	defer m.mu.Unlock()

	if m.phase != PhasePlaying {
		return difficulty.Adjustment{}, fmt.Errorf("%w: record trial while %s", ErrInvalidState, m.phase)
	}
	return m.ctrl.RecordTrial(success, opts...)
}

// AddScore adds points to the running score. Ignored unless the session
// is Playing or Paused.
func (m *Machine) AddScore(points int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.phase != PhasePlaying && m.phase != PhasePaused {
		return
	}
	m.score += points
	m.scored = true
}

// Params returns the parameters for the current level.
func (m *Machine) Params() games.Params {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.ctrl.Params()
}

// Stats returns the controller statistics.
func (m *Machine) Stats() difficulty.Stats {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.ctrl.Stats()
}

// Level returns the current level.
func (m *Machine) Level() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.ctrl.Level()
}

// Phase returns the current phase.
func (m *Machine) Phase() Phase {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.phase
}

// Snapshot returns a consistent view of the session.
func (m *Machine) Snapshot() Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()

	elapsed := m.clock.Elapsed()
	if d := m.clock.Duration(); d > 0 && elapsed > d {
		elapsed = d
	}
	s := Snapshot{
		Phase:     m.phase,
		Level:     m.ctrl.Level(),
		StartedAt: m.clock.StartedAt(),
		Elapsed:   elapsed,
		Duration:  m.clock.Duration(),
		Remaining: m.clock.Remaining(),
		PausedFor: m.clock.PausedFor(),
		Hidden:    m.vis.hidden,
		Score:     m.score,
	}
	if m.phase == PhasePaused {
		s.PauseReason = m.pauseReason
	}
	return s
}

// Background reports that the host surface went to the background.
func (m *Machine) Background() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.vis.hidden {
		return
	}
	m.vis.hidden = true
	if m.phase == PhasePlaying {
		m.vis.arm(m.graceExpired)
	}
}

// Foreground reports that the host surface is visible again. A pending
// auto-pause is cancelled; an auto-pause already in effect is kept.
func (m *Machine) Foreground() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.vis.hidden = false
	m.vis.cancel()
}

func (m *Machine) graceExpired(gen uint64) {
	m.mu.Lock()
	if !m.vis.current(gen) {
		m.mu.Unlock()
		return
	}
	m.vis.timer = nil
	if r, ok := m.expireLocked(); ok {
		m.mu.Unlock()
		m.emit(r)
		return
	}
	defer m.mu.Unlock()

	if !m.vis.hidden || m.phase != PhasePlaying {
		return
	}
	m.pauseLocked(PauseAuto)
	m.logger.Info("session auto-paused",
		"run", m.runID,
		"game", m.profile.ID,
		"elapsed", m.clock.Elapsed())
}

// OnComplete registers fn to receive the results. Registering after
// completion invokes fn immediately.
func (m *Machine) OnComplete(fn func(Results)) {
	m.mu.Lock()
	if m.results == nil {
		m.callbacks = append(m.callbacks, fn)
		m.mu.Unlock()
		return
	}
	r := *m.results
	m.mu.Unlock()
	fn(r)
}

// Results returns the final results once the session is complete.
func (m *Machine) Results() (Results, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.results == nil {
		return Results{}, false
	}
	return *m.results, true
}

// Wait blocks until background persistence of the results has finished.
func (m *Machine) Wait() {
	m.saves.Wait()
}

func (m *Machine) completeLocked(reason EndReason) Results {
	now := m.clk.Now()
	if m.phase == PhaseIdle {
		m.clock.Start()
	}
	m.clock.Stop()
	m.vis.cancel()
	m.phase = PhaseComplete
	m.pauseReason = ""

	r := buildResults(m, reason, now)
	if m.persist != nil {
		m.saves.Add(1)
	}

	m.logger.Info("session complete",
		"run", r.RunID,
		"game", r.GameID,
		"reason", r.EndReason,
		"duration_ms", r.DurationMs,
		"level", r.FinalLevel,
		"valid", r.Valid)
	return r
}

// emit applies the score function, publishes the results, runs the
// completion callbacks and starts persistence. Called without the lock,
// exactly once per machine, so a score function may query the machine.
func (m *Machine) emit(r Results) {
	if m.scoreFn != nil {
		score := m.scoreFn(r)
		r.Score = &score
	}

	m.mu.Lock()
	m.results = &r
	callbacks := m.callbacks
	m.callbacks = nil
	close(m.done)
	m.mu.Unlock()

	for _, fn := range callbacks {
		fn(r)
	}
	if m.persist != nil {
		go m.save(r)
	}
}

func (m *Machine) save(r Results) {
	defer m.saves.Done()
	defer func() {
		if p := recover(); p != nil {
			m.logger.Error("persist run panicked", "run", r.RunID, "panic", p)
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), m.saveTimeout)
	defer cancel()
	if err := m.persist.SaveRun(ctx, r); err != nil {
		m.logger.Warn("persist run failed", "run", r.RunID, "game", r.GameID, "err", err)
	}
}
