package seeder

import (
	"context"
	"encoding/json"
	"fmt"
)

func (s *Seeder) seedMessages(ctx context.Context, state *runState) (int64, error) {
	if s.opts.Counts.Messages > 0 && len(state.users) < 2 {
		s.reporter.Warn("skipping messages: at least two users are required")
		return 0, nil
	}

	w := s.newBatchWriter(ctx, "messages",
		"sender_id", "receiver_id", "content", "sent_at", "subject", "is_read")

	for i := 0; i < s.opts.Counts.Messages; i++ {
		sender, receiver := s.pickPair(len(state.users))
		err := w.Add(
			state.users[sender].id,
			state.users[receiver].id,
			s.gen.Paragraph(s.gen.IntBetween(1, 5)),
			s.gen.DaysAgo(0, 60),
			s.gen.Subject(),
			s.gen.Chance(s.opts.Probabilities.MessageRead),
		)
		if err != nil {
			return 0, err
		}
	}

	n, err := w.Close()
	state.counts["messages"] = n
	return n, err
}

// pickPair returns two distinct indexes below n. n must be at least 2.
func (s *Seeder) pickPair(n int) (int, int) {
	return s.pickPairWith(s.gen.Rand().Intn(n), n)
}

func (s *Seeder) seedNotifications(ctx context.Context, state *runState) (int64, error) {
	if len(state.users) == 0 {
		return 0, nil
	}

	w := s.newBatchWriter(ctx, "notifications",
		"user_id", "message", "type", "is_read", "created_at", "link")

	for i := 0; i < s.opts.Counts.Notifications; i++ {
		recipient := s.gen.Rand().Intn(len(state.users))
		kind := s.opts.NotificationType.Pick(s.gen.Rand())

		// Project notifications need a project to point at.
		if kind != NotifyNewMessage && len(state.projects) == 0 {
			kind = NotifyNewMessage
		}

		var message, link string
		switch kind {
		case NotifyNewMessage:
			from := state.users[recipient].name
			if len(state.users) > 1 {
				_, other := s.pickPairWith(recipient, len(state.users))
				from = state.users[other].name
			}
			message = fmt.Sprintf("You have a new message from %s", from)
			link = "/messages"
		default:
			p := state.projects[s.gen.Rand().Intn(len(state.projects))]
			link = fmt.Sprintf("/projects/%d", p.id)
			switch kind {
			case NotifyProposalAccepted:
				message = fmt.Sprintf("Your proposal for project '%s' has been accepted!", p.title)
			case NotifyProjectCompleted:
				message = fmt.Sprintf("Project '%s' has been marked as completed.", p.title)
			case NotifyPaymentReceived:
				message = fmt.Sprintf("Payment of $%s received for project '%s'.", p.budget.StringFixed(2), p.title)
			}
		}

		err := w.Add(
			state.users[recipient].id,
			message,
			kind,
			s.gen.Chance(s.opts.Probabilities.NotificationRead),
			s.gen.DaysAgo(0, 30),
			link,
		)
		if err != nil {
			return 0, err
		}
	}

	n, err := w.Close()
	state.counts["notifications"] = n
	return n, err
}

// pickPairWith returns a, plus a random index below n that differs from a.
func (s *Seeder) pickPairWith(a, n int) (int, int) {
	b := s.gen.Rand().Intn(n - 1)
	if b >= a {
		b++
	}
	return a, b
}

type loginEvent struct {
	IPAddress string `json:"ip_address"`
	Device    string `json:"device"`
	Browser   string `json:"browser"`
}

type searchEvent struct {
	Query        string `json:"query"`
	ResultsCount int    `json:"results_count"`
}

type viewProfileEvent struct {
	ViewedUserID    int64 `json:"viewed_user_id"`
	DurationSeconds int   `json:"duration_seconds"`
}

type submitProposalEvent struct {
	ProjectID      int64 `json:"project_id"`
	ProposedAmount int   `json:"proposed_amount"`
}

type completeProjectEvent struct {
	ProjectID    int64 `json:"project_id"`
	DurationDays int   `json:"duration_days"`
}

func (s *Seeder) eventData(kind string, state *runState) any {
	switch kind {
	case EventSearch:
		return searchEvent{
			Query:        s.gen.PickString(searchQueries),
			ResultsCount: s.gen.IntBetween(5, 50),
		}
	case EventViewProfile:
		return viewProfileEvent{
			ViewedUserID:    state.users[s.gen.Rand().Intn(len(state.users))].id,
			DurationSeconds: s.gen.IntBetween(10, 300),
		}
	case EventSubmitProposal:
		return submitProposalEvent{
			ProjectID:      state.projects[s.gen.Rand().Intn(len(state.projects))].id,
			ProposedAmount: s.gen.IntBetween(100, 5000),
		}
	case EventCompleteProject:
		return completeProjectEvent{
			ProjectID:    state.projects[s.gen.Rand().Intn(len(state.projects))].id,
			DurationDays: s.gen.IntBetween(1, 60),
		}
	default:
		return loginEvent{
			IPAddress: s.gen.IPv4(),
			Device:    s.gen.PickString(devices),
			Browser:   s.gen.PickString(browsers),
		}
	}
}

func (s *Seeder) seedAnalytics(ctx context.Context, state *runState) (int64, error) {
	if len(state.users) == 0 {
		return 0, nil
	}

	w := s.newBatchWriter(ctx, "analytics_events", "user_id", "event_type", "event_data", "timestamp")

	for i := 0; i < s.opts.Counts.AnalyticsEvents; i++ {
		userID := state.users[s.gen.Rand().Intn(len(state.users))].id
		kind := s.opts.EventType.Pick(s.gen.Rand())
		if (kind == EventSubmitProposal || kind == EventCompleteProject) && len(state.projects) == 0 {
			kind = EventLogin
		}

		data, err := json.Marshal(s.eventData(kind, state))
		if err != nil {
			return 0, err
		}

		if err := w.Add(userID, kind, string(data), s.gen.DaysAgo(0, 90)); err != nil {
			return 0, err
		}
	}

	n, err := w.Close()
	state.counts["analytics_events"] = n
	return n, err
}

func (s *Seeder) seedPreferences(ctx context.Context, state *runState) (int64, error) {
	w := s.newBatchWriter(ctx, "freelancer_preferences",
		"user_id", "min_budget", "max_budget", "preferred_categories")

	for _, freelancerID := range state.freelancerIDs {
		minBudget := s.gen.Money(100, 1000)
		maxBudget := s.gen.Scale(minBudget, 2, 5)

		cats, err := json.Marshal(s.gen.SampleStrings(categories, s.gen.IntBetween(2, 4)))
		if err != nil {
			return 0, err
		}

		if err := w.Add(freelancerID, minBudget, maxBudget, string(cats)); err != nil {
			return 0, err
		}
	}

	n, err := w.Close()
	state.counts["freelancer_preferences"] = n
	return n, err
}

func (s *Seeder) seedHistory(ctx context.Context, state *runState) (int64, error) {
	w := s.newBatchWriter(ctx, "project_applications_history",
		"user_id", "project_id", "applied_at", "success_score")

	projectIDs := state.projectIDs()
	for _, freelancerID := range state.freelancerIDs {
		for _, projectID := range s.gen.SampleIDs(projectIDs, s.gen.IntBetween(5, 15)) {
			err := w.Add(freelancerID, projectID, s.gen.DaysAgo(30, 180), s.gen.IntBetween(1, 10))
			if err != nil {
				return 0, err
			}
		}
	}

	n, err := w.Close()
	state.counts["project_applications_history"] = n
	return n, err
}
