// Package verify checks the consistency rules of a seeded marketplace
// database without modifying it.
package verify

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/shopspring/decimal"
	"github.com/skillsphere/skillseed/internal/config"
	"github.com/skillsphere/skillseed/internal/database"
	"github.com/skillsphere/skillseed/internal/password"
)

const (
	CheckProjectStatus = "project_status"
	CheckProposals     = "proposals"
	CheckRatings       = "ratings"
	CheckPreferences   = "preferences"
	CheckMessages      = "messages"
	CheckTestUsers     = "test_users"
)

type Violation struct {
	Check  string
	Detail string
}

func (v Violation) String() string {
	return fmt.Sprintf("[%s] %s", v.Check, v.Detail)
}

type Report struct {
	// Checked counts the rows examined per check.
	Checked    map[string]int
	Violations []Violation
}

func (r *Report) OK() bool { return len(r.Violations) == 0 }

func (r *Report) add(check, format string, args ...any) {
	r.Violations = append(r.Violations, Violation{Check: check, Detail: fmt.Sprintf(format, args...)})
}

type checker struct {
	db     *sql.DB
	qb     squirrel.StatementBuilderType
	report *Report
}

type project struct {
	freelancerID sql.NullInt64
	status       string
}

// Run examines the seeded tables and every account in testUsers.
func Run(ctx context.Context, adapter database.Adapter, testUsers []config.TestUser) (*Report, error) {
	c := &checker{
		db:     adapter.DB(),
		qb:     adapter.Builder(),
		report: &Report{Checked: make(map[string]int)},
	}

	projects, err := c.checkProjects(ctx)
	if err != nil {
		return nil, err
	}

	checks := []func(context.Context) error{
		func(ctx context.Context) error { return c.checkProposals(ctx, projects) },
		c.checkRatings,
		c.checkPreferences,
		c.checkMessages,
		func(ctx context.Context) error { return c.checkTestUsers(ctx, testUsers) },
	}
	for _, check := range checks {
		if err := check(ctx); err != nil {
			return nil, err
		}
	}

	return c.report, nil
}

func (c *checker) query(ctx context.Context, b squirrel.SelectBuilder) (*sql.Rows, error) {
	query, args, err := b.ToSql()
	if err != nil {
		return nil, err
	}
	return c.db.QueryContext(ctx, query, args...)
}

func (c *checker) checkProjects(ctx context.Context) (map[int64]project, error) {
	rows, err := c.query(ctx, c.qb.Select("id", "freelancer_id", "status").From("projects"))
	if err != nil {
		return nil, fmt.Errorf("failed to read projects: %w", err)
	}
	defer rows.Close()

	projects := make(map[int64]project)
	for rows.Next() {
		var id int64
		var p project
		if err := rows.Scan(&id, &p.freelancerID, &p.status); err != nil {
			return nil, err
		}
		projects[id] = p

		open := p.status == "open"
		if open == p.freelancerID.Valid {
			c.report.add(CheckProjectStatus, "project %d has status %q and freelancer %v", id, p.status, p.freelancerID.Int64)
		}
	}
	c.report.Checked[CheckProjectStatus] = len(projects)
	return projects, rows.Err()
}

func (c *checker) checkProposals(ctx context.Context, projects map[int64]project) error {
	rows, err := c.query(ctx, c.qb.Select("project_id", "freelancer_id", "status").From("proposals"))
	if err != nil {
		return fmt.Errorf("failed to read proposals: %w", err)
	}
	defer rows.Close()

	accepted := make(map[int64][]int64)
	n := 0
	for rows.Next() {
		var projectID, freelancerID int64
		var status string
		if err := rows.Scan(&projectID, &freelancerID, &status); err != nil {
			return err
		}
		n++

		if projects[projectID].status == "open" && status != "pending" {
			c.report.add(CheckProposals, "open project %d has a %s proposal", projectID, status)
		}
		if status == "accepted" {
			accepted[projectID] = append(accepted[projectID], freelancerID)
		}
	}
	if err := rows.Err(); err != nil {
		return err
	}
	c.report.Checked[CheckProposals] = n

	for id, p := range projects {
		if !p.freelancerID.Valid {
			continue
		}
		got := accepted[id]
		switch {
		case len(got) != 1:
			c.report.add(CheckProposals, "project %d has %d accepted proposals", id, len(got))
		case got[0] != p.freelancerID.Int64:
			c.report.add(CheckProposals, "project %d accepted freelancer %d but is assigned to %d", id, got[0], p.freelancerID.Int64)
		}
	}
	return nil
}

func (c *checker) checkRatings(ctx context.Context) error {
	rows, err := c.query(ctx, c.qb.Select("rated_id", "rating").From("ratings"))
	if err != nil {
		return fmt.Errorf("failed to read ratings: %w", err)
	}
	defer rows.Close()

	sums := make(map[int64]decimal.Decimal)
	counts := make(map[int64]int64)
	for rows.Next() {
		var ratedID, rating int64
		if err := rows.Scan(&ratedID, &rating); err != nil {
			return err
		}
		sums[ratedID] = sums[ratedID].Add(decimal.NewFromInt(rating))
		counts[ratedID]++
	}
	if err := rows.Err(); err != nil {
		return err
	}

	profiles, err := c.query(ctx, c.qb.Select("user_id", "rating").From("profiles"))
	if err != nil {
		return fmt.Errorf("failed to read profiles: %w", err)
	}
	defer profiles.Close()

	for profiles.Next() {
		var userID int64
		var rating decimal.Decimal
		if err := profiles.Scan(&userID, &rating); err != nil {
			return err
		}
		n, ok := counts[userID]
		if !ok {
			continue
		}
		c.report.Checked[CheckRatings]++

		want := sums[userID].Div(decimal.NewFromInt(n)).Round(2)
		if !rating.Equal(want) {
			c.report.add(CheckRatings, "profile of user %d has rating %s, expected %s", userID, rating, want)
		}
	}
	return profiles.Err()
}

func (c *checker) checkPreferences(ctx context.Context) error {
	rows, err := c.query(ctx, c.qb.Select("user_id", "min_budget", "max_budget").From("freelancer_preferences"))
	if err != nil {
		return fmt.Errorf("failed to read freelancer preferences: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var userID int64
		var minBudget, maxBudget decimal.Decimal
		if err := rows.Scan(&userID, &minBudget, &maxBudget); err != nil {
			return err
		}
		c.report.Checked[CheckPreferences]++

		if !minBudget.IsPositive() || !minBudget.LessThan(maxBudget) {
			c.report.add(CheckPreferences, "freelancer %d has budget range %s-%s", userID, minBudget, maxBudget)
		}
	}
	return rows.Err()
}

func (c *checker) checkMessages(ctx context.Context) error {
	query, args, err := c.qb.Select("COUNT(*)").From("messages").Where("sender_id = receiver_id").ToSql()
	if err != nil {
		return err
	}

	var selfSent int64
	if err := c.db.QueryRowContext(ctx, query, args...).Scan(&selfSent); err != nil {
		return fmt.Errorf("failed to read messages: %w", err)
	}
	c.report.Checked[CheckMessages] = 1
	if selfSent > 0 {
		c.report.add(CheckMessages, "%d messages are addressed to their sender", selfSent)
	}
	return nil
}

func (c *checker) checkTestUsers(ctx context.Context, users []config.TestUser) error {
	for _, u := range users {
		query, args, err := c.qb.Select("password", "role").From("users").Where(squirrel.Eq{"email": u.Email}).ToSql()
		if err != nil {
			return err
		}

		var hash, role string
		err = c.db.QueryRowContext(ctx, query, args...).Scan(&hash, &role)
		if errors.Is(err, sql.ErrNoRows) {
			c.report.add(CheckTestUsers, "test account %s is missing", u.Email)
			continue
		}
		if err != nil {
			return fmt.Errorf("failed to read user %s: %w", u.Email, err)
		}
		c.report.Checked[CheckTestUsers]++

		if !password.Verify(hash, u.Password) {
			c.report.add(CheckTestUsers, "password of %s does not match", u.Email)
		}
		if role != u.Role {
			c.report.add(CheckTestUsers, "%s has role %s, expected %s", u.Email, role, u.Role)
		}
	}
	return nil
}
