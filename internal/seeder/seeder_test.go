package seeder_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/skillsphere/skillseed/internal/apperrors"
	"github.com/skillsphere/skillseed/internal/config"
	"github.com/skillsphere/skillseed/internal/database"
	"github.com/skillsphere/skillseed/internal/seeder"
	"github.com/skillsphere/skillseed/internal/seedtest"
	"github.com/skillsphere/skillseed/internal/verify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

var fixedNow = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

func testOptions(t *testing.T, mutate func(*config.Seed)) seeder.Options {
	t.Helper()

	cfg := config.DefaultConfig().Seed
	cfg.RandomSeed = 42
	cfg.BcryptCost = bcrypt.MinCost
	cfg.Counts = config.Counts{
		Clients:         30,
		Freelancers:     70,
		Projects:        120,
		Messages:        40,
		Notifications:   60,
		AnalyticsEvents: 80,
	}
	if mutate != nil {
		mutate(&cfg)
	}

	opts, err := seeder.OptionsFromConfig(cfg)
	require.NoError(t, err)
	opts.Now = fixedNow
	return opts
}

func runSeeder(t *testing.T, adapter database.Adapter, opts seeder.Options) *seeder.Result {
	t.Helper()

	result, err := seeder.New(adapter, opts, nil, nil).Run(context.Background())
	require.NoError(t, err)
	return result
}

func TestRunCreatesUsersAndProfiles(t *testing.T) {
	adapter := seedtest.NewSQLite(t)
	result := runSeeder(t, adapter, testOptions(t, nil))

	counts := seedtest.Counts(t, adapter, seeder.TableNames())
	assert.Equal(t, int64(105), counts["users"])
	assert.Equal(t, int64(105), counts["profiles"])
	assert.Equal(t, int64(30), counts["skills"])
	assert.Equal(t, int64(70), counts["freelancer_preferences"])
	assert.Equal(t, int64(120), counts["projects"])
	assert.Equal(t, int64(40), counts["messages"])
	assert.Equal(t, int64(60), counts["notifications"])
	assert.Equal(t, int64(80), counts["analytics_events"])

	assert.Equal(t, counts, result.Counts)
	assert.NotEmpty(t, result.RunID)
	assert.Len(t, result.TestUsers, 5)
}

func TestRunSatisfiesInvariants(t *testing.T) {
	adapter := seedtest.NewSQLite(t)
	opts := testOptions(t, nil)
	runSeeder(t, adapter, opts)

	report, err := verify.Run(context.Background(), adapter, opts.TestUsers)
	require.NoError(t, err)
	assert.Empty(t, report.Violations)
	assert.Equal(t, 120, report.Checked[verify.CheckProjectStatus])
	assert.Equal(t, 5, report.Checked[verify.CheckTestUsers])
	assert.Positive(t, report.Checked[verify.CheckRatings])
}

func TestRerunReplacesData(t *testing.T) {
	adapter := seedtest.NewSQLite(t)
	opts := testOptions(t, nil)

	runSeeder(t, adapter, opts)
	first := seedtest.Counts(t, adapter, seeder.TableNames())

	runSeeder(t, adapter, opts)
	second := seedtest.Counts(t, adapter, seeder.TableNames())

	assert.Equal(t, first, second)

	// Counters restart, so a rerun reuses the same ids.
	var minID int64
	require.NoError(t, adapter.DB().QueryRow("SELECT MIN(id) FROM users").Scan(&minID))
	assert.Equal(t, int64(1), minID)
}

func TestRunReportsPhasesInOrder(t *testing.T) {
	adapter := seedtest.NewSQLite(t)
	reporter := &seeder.RecordingReporter{}

	_, err := seeder.New(adapter, testOptions(t, nil), reporter, nil).Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{
		seeder.PhaseReset,
		seeder.PhaseSkills,
		seeder.PhaseUsers,
		seeder.PhaseProfiles,
		seeder.PhaseUserSkills,
		seeder.PhaseProjects,
		seeder.PhaseProposals,
		seeder.PhaseMessages,
		seeder.PhaseNotifications,
		seeder.PhaseRatings,
		seeder.PhaseAnalytics,
		seeder.PhasePreferences,
		seeder.PhaseHistory,
	}, reporter.Phases)
	assert.Equal(t, int64(105), reporter.Done[seeder.PhaseUsers])
	assert.Empty(t, reporter.Warnings)
}

func TestAssignmentRate(t *testing.T) {
	adapter := seedtest.NewSQLite(t)
	runSeeder(t, adapter, testOptions(t, func(cfg *config.Seed) {
		cfg.Counts.Projects = 1000
	}))

	var assigned, openAssigned, nonOpenUnassigned int64
	db := adapter.DB()
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM projects WHERE freelancer_id IS NOT NULL").Scan(&assigned))
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM projects WHERE status = 'open' AND freelancer_id IS NOT NULL").Scan(&openAssigned))
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM projects WHERE status <> 'open' AND freelancer_id IS NULL").Scan(&nonOpenUnassigned))

	assert.InDelta(t, 700, assigned, 75)
	assert.Zero(t, openAssigned)
	assert.Zero(t, nonOpenUnassigned)
}

func TestSameSeedSameData(t *testing.T) {
	first := seedtest.NewSQLite(t)
	second := seedtest.NewSQLite(t)
	opts := testOptions(t, nil)

	runSeeder(t, first, opts)
	runSeeder(t, second, opts)

	titles := func(adapter database.Adapter) []string {
		rows, err := adapter.DB().Query("SELECT title FROM projects ORDER BY id")
		require.NoError(t, err)
		defer rows.Close()

		var out []string
		for rows.Next() {
			var title string
			require.NoError(t, rows.Scan(&title))
			out = append(out, title)
		}
		require.NoError(t, rows.Err())
		return out
	}

	assert.Equal(t, titles(first), titles(second))
	assert.Equal(t,
		seedtest.Counts(t, first, seeder.TableNames()),
		seedtest.Counts(t, second, seeder.TableNames()))
}

func TestFailedRunRollsBack(t *testing.T) {
	adapter := seedtest.NewSQLite(t)
	opts := testOptions(t, nil)
	runSeeder(t, adapter, opts)
	before := seedtest.Counts(t, adapter, seeder.TableNames())

	_, err := adapter.DB().Exec(`CREATE TRIGGER fail_projects BEFORE INSERT ON projects
WHEN (SELECT COUNT(*) FROM projects) >= 50
BEGIN
    SELECT RAISE(ABORT, 'forced failure');
END`)
	require.NoError(t, err)

	_, err = seeder.New(adapter, opts, nil, nil).Run(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrGeneration))

	var genErr *apperrors.GenerationError
	require.True(t, errors.As(err, &genErr))
	assert.Equal(t, seeder.PhaseProjects, genErr.Phase)
	assert.Contains(t, err.Error(), "forced failure")

	assert.Equal(t, before, seedtest.Counts(t, adapter, seeder.TableNames()))
}

func TestRunRequiresSchema(t *testing.T) {
	adapter, err := database.Open(context.Background(), "sqlite", "sqlite://"+t.TempDir()+"/empty.db")
	require.NoError(t, err)
	defer adapter.Close()

	_, err = seeder.New(adapter, testOptions(t, nil), nil, nil).Run(context.Background())

	var genErr *apperrors.GenerationError
	require.True(t, errors.As(err, &genErr))
	assert.Equal(t, seeder.PhaseReset, genErr.Phase)
}

func TestResetEmptiesTables(t *testing.T) {
	adapter := seedtest.NewSQLite(t)
	runSeeder(t, adapter, testOptions(t, nil))

	n, err := seeder.New(adapter, testOptions(t, nil), nil, nil).Reset(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(len(seeder.Tables)), n)

	for table, count := range seedtest.Counts(t, adapter, seeder.TableNames()) {
		assert.Zero(t, count, table)
	}
}

func TestZeroCounts(t *testing.T) {
	adapter := seedtest.NewSQLite(t)
	result := runSeeder(t, adapter, testOptions(t, func(cfg *config.Seed) {
		cfg.Counts = config.Counts{Clients: 1, Freelancers: 1}
		cfg.TestUsers = nil
	}))

	assert.Equal(t, int64(2), result.Counts["users"])
	assert.Zero(t, result.Counts["projects"])
	assert.Zero(t, result.Counts["proposals"])
	assert.Zero(t, result.Counts["project_applications_history"])
}

func TestOptionsFromConfigRejectsUnknownLabels(t *testing.T) {
	cfg := config.DefaultConfig().Seed
	cfg.Distributions.ProjectStatus = map[string]float64{"open": 1, "completed": 1}

	_, err := seeder.OptionsFromConfig(cfg)
	assert.Error(t, err)

	cfg = config.DefaultConfig().Seed
	cfg.Distributions.EventType = map[string]float64{}
	_, err = seeder.OptionsFromConfig(cfg)
	assert.Error(t, err)
}

func TestRunOnPostgres(t *testing.T) {
	adapter := seedtest.NewPostgres(t)
	opts := testOptions(t, nil)

	runSeeder(t, adapter, opts)
	first := seedtest.Counts(t, adapter, seeder.TableNames())
	assert.Equal(t, int64(105), first["users"])

	runSeeder(t, adapter, opts)
	assert.Equal(t, first, seedtest.Counts(t, adapter, seeder.TableNames()))

	report, err := verify.Run(context.Background(), adapter, opts.TestUsers)
	require.NoError(t, err)
	assert.Empty(t, report.Violations)
}
