package seeder

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"

	"go.uber.org/zap"
)

func (s *Seeder) seedProjects(ctx context.Context, state *runState) (int64, error) {
	if s.opts.Counts.Projects > 0 && len(state.clientIDs) == 0 {
		return 0, fmt.Errorf("cannot create projects without any client")
	}

	columns := []string{
		"client_id", "freelancer_id", "title", "description", "budget",
		"deadline", "expected_work_hours", "status", "categories",
	}
	skills := s.newBatchWriter(ctx, "project_skills", "project_id", "skill_id")

	for i := 0; i < s.opts.Counts.Projects; i++ {
		p := projectRecord{
			clientID: s.gen.PickID(state.clientIDs),
			status:   StatusOpen,
		}

		var freelancer any
		if s.gen.Chance(s.opts.Probabilities.AssignFreelancer) && len(state.freelancerIDs) > 0 {
			p.freelancerID = s.gen.PickID(state.freelancerIDs)
			freelancer = p.freelancerID
		}

		p.title = s.gen.CatchPhrase()
		description := s.gen.Paragraph(5)
		p.budget = s.gen.Money(100, 5000)
		deadline := s.gen.DaysAhead(7, 90)
		hours := s.gen.IntBetween(5, 100)

		// Unassigned projects are always open.
		if p.assigned() {
			p.status = s.opts.ProjectStatus.Pick(s.gen.Rand())
		}

		cats, err := json.Marshal(s.gen.SampleStrings(categories, s.gen.IntBetween(1, 3)))
		if err != nil {
			return 0, err
		}

		p.id, err = s.insertOne(ctx, "projects", columns,
			p.clientID, freelancer, p.title, description, p.budget,
			deadline, hours, p.status, string(cats))
		if err != nil {
			return 0, fmt.Errorf("project %d: %w", i+1, err)
		}
		state.projects = append(state.projects, p)

		for _, skillID := range s.gen.SampleIDs(state.skillIDs, s.gen.IntBetween(2, 5)) {
			if err := skills.Add(p.id, skillID); err != nil {
				return 0, err
			}
		}
	}

	n, err := skills.Close()
	if err != nil {
		return 0, err
	}
	state.counts["projects"] = int64(len(state.projects))
	state.counts["project_skills"] = n
	return state.counts["projects"], nil
}

// seedProposals keeps every project consistent with its assignment: open
// projects only receive pending bids, assigned ones get exactly one
// accepted bid from the assignee and a few rejected competitors.
func (s *Seeder) seedProposals(ctx context.Context, state *runState) (int64, error) {
	w := s.newBatchWriter(ctx, "proposals",
		"project_id", "freelancer_id", "cover_letter", "proposed_amount", "submitted_at", "status")

	for _, p := range state.projects {
		if !p.assigned() {
			for _, fid := range s.gen.SampleIDs(state.freelancerIDs, s.gen.IntBetween(1, 5)) {
				err := w.Add(p.id, fid, s.gen.Paragraph(4),
					s.gen.Scale(p.budget, 0.8, 1.2), s.gen.DaysAgo(1, 30), ProposalPending)
				if err != nil {
					return 0, err
				}
			}
			continue
		}

		err := w.Add(p.id, p.freelancerID, s.gen.Paragraph(4),
			s.gen.Scale(p.budget, 0.9, 1.1), s.gen.DaysAgo(30, 60), ProposalAccepted)
		if err != nil {
			return 0, err
		}

		others := slices.DeleteFunc(slices.Clone(state.freelancerIDs), func(id int64) bool {
			return id == p.freelancerID
		})
		for _, fid := range s.gen.SampleIDs(others, s.gen.IntBetween(0, 3)) {
			err := w.Add(p.id, fid, s.gen.Paragraph(3),
				s.gen.Scale(p.budget, 0.8, 1.3), s.gen.DaysAgo(30, 60), ProposalRejected)
			if err != nil {
				return 0, err
			}
		}
	}

	n, err := w.Close()
	state.counts["proposals"] = n
	return n, err
}

// ratingAggregate overwrites each rated profile with the rounded mean of
// its received ratings. Profiles nobody rated keep their value.
const ratingAggregate = `UPDATE profiles
SET rating = (SELECT ROUND(AVG(r.rating), 2) FROM ratings r WHERE r.rated_id = profiles.user_id)
WHERE user_id IN (SELECT rated_id FROM ratings)`

func (s *Seeder) seedRatings(ctx context.Context, state *runState) (int64, error) {
	w := s.newBatchWriter(ctx, "ratings",
		"rater_id", "rated_id", "project_id", "rating", "review", "created_at")

	for _, p := range state.projects {
		if p.status != StatusCompleted {
			continue
		}

		if s.gen.Chance(s.opts.Probabilities.ClientRates) {
			err := w.Add(p.clientID, p.freelancerID, p.id,
				s.gen.IntBetween(3, 5), s.gen.Paragraph(2), s.gen.DaysAgo(1, 15))
			if err != nil {
				return 0, err
			}
		}

		if s.gen.Chance(s.opts.Probabilities.FreelancerRates) {
			err := w.Add(p.freelancerID, p.clientID, p.id,
				s.gen.IntBetween(3, 5), s.gen.Paragraph(2), s.gen.DaysAgo(1, 15))
			if err != nil {
				return 0, err
			}
		}
	}

	n, err := w.Close()
	if err != nil {
		return 0, err
	}
	state.counts["ratings"] = n

	res, err := s.tx.ExecContext(ctx, ratingAggregate)
	if err != nil {
		return 0, fmt.Errorf("failed to update profile ratings: %w", err)
	}
	if updated, err := res.RowsAffected(); err == nil {
		s.logger.Debug("profile ratings recomputed", zap.Int64("profiles", updated))
	}

	return n, nil
}
