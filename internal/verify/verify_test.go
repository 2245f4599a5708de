package verify_test

import (
	"context"
	"testing"
	"time"

	"github.com/skillsphere/skillseed/internal/config"
	"github.com/skillsphere/skillseed/internal/database"
	"github.com/skillsphere/skillseed/internal/seeder"
	"github.com/skillsphere/skillseed/internal/seedtest"
	"github.com/skillsphere/skillseed/internal/verify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func seeded(t *testing.T) (database.Adapter, []config.TestUser) {
	t.Helper()

	cfg := config.DefaultConfig().Seed
	cfg.RandomSeed = 11
	cfg.BcryptCost = bcrypt.MinCost
	cfg.Counts = config.Counts{Clients: 10, Freelancers: 20, Projects: 80, Messages: 20, Notifications: 20, AnalyticsEvents: 20}

	opts, err := seeder.OptionsFromConfig(cfg)
	require.NoError(t, err)
	opts.Now = time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

	adapter := seedtest.NewSQLite(t)
	_, err = seeder.New(adapter, opts, nil, nil).Run(context.Background())
	require.NoError(t, err)
	return adapter, opts.TestUsers
}

func checks(report *verify.Report) map[string]int {
	out := map[string]int{}
	for _, v := range report.Violations {
		out[v.Check]++
	}
	return out
}

func TestCleanDatabasePasses(t *testing.T) {
	adapter, users := seeded(t)

	report, err := verify.Run(context.Background(), adapter, users)
	require.NoError(t, err)
	assert.True(t, report.OK(), "%v", report.Violations)
	assert.Equal(t, 80, report.Checked[verify.CheckProjectStatus])
	assert.Equal(t, 20, report.Checked[verify.CheckPreferences])
}

func TestDetectsCorruption(t *testing.T) {
	tests := []struct {
		name  string
		query string
		check string
	}{
		{
			name:  "assigned project marked open",
			query: "UPDATE projects SET status = 'open' WHERE id = (SELECT MIN(id) FROM projects WHERE freelancer_id IS NOT NULL)",
			check: verify.CheckProjectStatus,
		},
		{
			name:  "second accepted proposal",
			query: "UPDATE proposals SET status = 'accepted' WHERE status = 'rejected'",
			check: verify.CheckProposals,
		},
		{
			name:  "accepted proposal on open project",
			query: "UPDATE proposals SET status = 'accepted' WHERE project_id IN (SELECT id FROM projects WHERE status = 'open')",
			check: verify.CheckProposals,
		},
		{
			name:  "stale profile rating",
			query: "UPDATE profiles SET rating = 1.00 WHERE user_id IN (SELECT rated_id FROM ratings)",
			check: verify.CheckRatings,
		},
		{
			name:  "self addressed message",
			query: "UPDATE messages SET receiver_id = sender_id WHERE id = (SELECT MIN(id) FROM messages)",
			check: verify.CheckMessages,
		},
		{
			name:  "changed password",
			query: "UPDATE users SET password = 'not-a-hash' WHERE email = 'admin@example.com'",
			check: verify.CheckTestUsers,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			adapter, users := seeded(t)

			_, err := adapter.DB().Exec(tt.query)
			require.NoError(t, err)

			report, err := verify.Run(context.Background(), adapter, users)
			require.NoError(t, err)
			assert.False(t, report.OK())
			assert.Positive(t, checks(report)[tt.check], "%v", report.Violations)
		})
	}
}

func TestMissingTestUser(t *testing.T) {
	adapter, users := seeded(t)
	users = append(users, config.TestUser{Email: "ghost@example.com", Password: "x", Role: "client"})

	report, err := verify.Run(context.Background(), adapter, users)
	require.NoError(t, err)
	assert.Equal(t, 1, checks(report)[verify.CheckTestUsers])
}
