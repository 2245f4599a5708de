package seeder

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/skillsphere/skillseed/internal/apperrors"
	"github.com/skillsphere/skillseed/internal/config"
	"github.com/skillsphere/skillseed/internal/database"
	"github.com/skillsphere/skillseed/internal/password"
	"go.uber.org/zap"
)

const (
	PhaseReset         = "reset"
	PhaseSkills        = "skills"
	PhaseUsers         = "users"
	PhaseProfiles      = "profiles"
	PhaseUserSkills    = "user_skills"
	PhaseProjects      = "projects"
	PhaseProposals     = "proposals"
	PhaseMessages      = "messages"
	PhaseNotifications = "notifications"
	PhaseRatings       = "ratings"
	PhaseAnalytics     = "analytics"
	PhasePreferences   = "preferences"
	PhaseHistory       = "history"
)

type Seeder struct {
	adapter  database.Adapter
	opts     Options
	reporter Reporter
	logger   *zap.Logger

	gen    *DataGenerator
	hasher *password.Hasher
	graph  *DependencyGraph
	tx     *sql.Tx
}

type step struct {
	name string
	run  func(ctx context.Context, state *runState) (int64, error)
}

func New(adapter database.Adapter, opts Options, reporter Reporter, logger *zap.Logger) *Seeder {
	if reporter == nil {
		reporter = NopReporter
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Seeder{
		adapter:  adapter,
		opts:     opts,
		reporter: reporter,
		logger:   logger,
		hasher:   password.NewHasher(opts.BcryptCost),
		graph:    CatalogGraph(),
	}
}

// OptionsFromConfig resolves the configured distributions.
func OptionsFromConfig(cfg config.Seed) (Options, error) {
	opts := Options{
		RandomSeed:    cfg.RandomSeed,
		BcryptCost:    cfg.BcryptCost,
		BatchSize:     cfg.BatchSize,
		Counts:        cfg.Counts,
		Probabilities: cfg.Probabilities,
		TestUsers:     cfg.TestUsers,
	}

	dists := []struct {
		name    string
		weights map[string]float64
		allowed []string
		dst     **Distribution
	}{
		{"project_status", cfg.Distributions.ProjectStatus, assignedStatuses, &opts.ProjectStatus},
		{"notification_type", cfg.Distributions.NotificationType, notificationTypes, &opts.NotificationType},
		{"event_type", cfg.Distributions.EventType, eventTypes, &opts.EventType},
	}
	for _, d := range dists {
		dist, err := NewDistribution(d.weights)
		if err != nil {
			return Options{}, fmt.Errorf("%s: %w", d.name, err)
		}
		if err := dist.restrict(d.name, d.allowed); err != nil {
			return Options{}, err
		}
		*d.dst = dist
	}

	return opts, nil
}

func (s *Seeder) steps() []step {
	return []step{
		{PhaseReset, s.resetTables},
		{PhaseSkills, s.seedSkills},
		{PhaseUsers, s.seedUsers},
		{PhaseProfiles, s.seedProfiles},
		{PhaseUserSkills, s.seedUserSkills},
		{PhaseProjects, s.seedProjects},
		{PhaseProposals, s.seedProposals},
		{PhaseMessages, s.seedMessages},
		{PhaseNotifications, s.seedNotifications},
		{PhaseRatings, s.seedRatings},
		{PhaseAnalytics, s.seedAnalytics},
		{PhasePreferences, s.seedPreferences},
		{PhaseHistory, s.seedHistory},
	}
}

// Run replaces the contents of every marketplace table inside a single
// transaction. On failure nothing is committed and the error is an
// *apperrors.GenerationError naming the failing phase.
func (s *Seeder) Run(ctx context.Context) (*Result, error) {
	start := time.Now()
	runID := uuid.NewString()
	log := s.logger.With(zap.String("run_id", runID), zap.String("provider", s.adapter.Provider()))

	s.ensureDistributions()
	s.gen = NewDataGenerator(s.opts.RandomSeed, s.opts.Now)
	state := newRunState()

	s.reporter.Note("🌱 Starting database seeding...")
	log.Info("seed run started",
		zap.Int64("random_seed", s.opts.RandomSeed),
		zap.Int("bcrypt_cost", s.hasher.Cost()),
		zap.Any("counts", s.opts.Counts))

	if err := s.begin(ctx); err != nil {
		return nil, err
	}
	defer func() { s.tx = nil }()

	for _, st := range s.steps() {
		s.reporter.Phase(st.name)
		phaseStart := time.Now()

		rows, err := st.run(ctx, state)
		if err != nil {
			log.Error("phase failed", zap.String("phase", st.name), zap.Error(err))
			return nil, s.abort(st.name, err)
		}

		s.reporter.PhaseDone(st.name, rows)
		log.Debug("phase complete",
			zap.String("phase", st.name),
			zap.Int64("rows", rows),
			zap.Duration("elapsed", time.Since(phaseStart)))
	}

	if err := s.tx.Commit(); err != nil {
		return nil, &apperrors.GenerationError{Phase: "commit", Code: s.adapter.ErrorCode(err), Err: err}
	}
	s.reporter.Note("🔓 Transaction committed")

	for _, table := range TableNames() {
		if _, ok := state.counts[table]; !ok {
			state.counts[table] = 0
		}
	}

	result := &Result{
		RunID:     runID,
		Counts:    state.counts,
		TestUsers: s.opts.TestUsers,
		Duration:  time.Since(start),
	}
	log.Info("seed run committed", zap.Duration("elapsed", result.Duration), zap.Any("counts", result.Counts))
	return result, nil
}

// Reset empties every marketplace table without seeding.
func (s *Seeder) Reset(ctx context.Context) (int64, error) {
	if err := s.begin(ctx); err != nil {
		return 0, err
	}
	defer func() { s.tx = nil }()

	s.reporter.Phase(PhaseReset)
	n, err := s.resetTables(ctx, newRunState())
	if err != nil {
		return 0, s.abort(PhaseReset, err)
	}
	s.reporter.PhaseDone(PhaseReset, n)

	if err := s.tx.Commit(); err != nil {
		return 0, &apperrors.GenerationError{Phase: "commit", Code: s.adapter.ErrorCode(err), Err: err}
	}
	return n, nil
}

func (s *Seeder) begin(ctx context.Context) error {
	tx, err := s.adapter.DB().BeginTx(ctx, nil)
	if err != nil {
		return &apperrors.GenerationError{Phase: "begin", Code: s.adapter.ErrorCode(err), Err: err}
	}
	s.tx = tx
	s.reporter.Note("🔒 Transaction started")
	return nil
}

// abort rolls the run back and wraps cause. A failed rollback is joined
// onto the returned error.
func (s *Seeder) abort(phase string, cause error) error {
	genErr := &apperrors.GenerationError{Phase: phase, Code: s.adapter.ErrorCode(cause), Err: cause}

	s.reporter.Warn("Rolling back transaction due to error...")
	if err := s.tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
		return errors.Join(genErr, fmt.Errorf("rollback failed: %w", err))
	}
	s.reporter.Note("✅ Transaction rolled back")
	return genErr
}

func (s *Seeder) ensureDistributions() {
	if s.opts.ProjectStatus == nil {
		d, _ := NewDistribution(config.DefaultDistributions().ProjectStatus)
		s.opts.ProjectStatus = d
	}
	if s.opts.NotificationType == nil {
		d, _ := NewDistribution(config.DefaultDistributions().NotificationType)
		s.opts.NotificationType = d
	}
	if s.opts.EventType == nil {
		d, _ := NewDistribution(config.DefaultDistributions().EventType)
		s.opts.EventType = d
	}
}

func (s *Seeder) resetTables(ctx context.Context, state *runState) (int64, error) {
	order, err := s.graph.DeletionOrder()
	if err != nil {
		return 0, err
	}

	for _, table := range order {
		exists, err := s.adapter.CheckTableExists(ctx, s.tx, table)
		if err != nil {
			return 0, fmt.Errorf("failed to check table %s: %w", table, err)
		}
		if !exists {
			return 0, fmt.Errorf("table %s does not exist; apply the marketplace schema first", table)
		}
	}

	for _, table := range order {
		if err := s.adapter.ResetTable(ctx, s.tx, table); err != nil {
			return 0, err
		}
	}

	if !s.adapter.ResetsCounters() {
		s.reporter.Warn("%s keeps id counters across resets; new ids continue from the previous run", s.adapter.Provider())
	}
	return int64(len(order)), nil
}
