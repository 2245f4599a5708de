package seeder

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/skillsphere/skillseed/internal/config"
)

type TableInfo struct {
	Name         string
	Dependencies []string
}

// Options is the resolved, validated form of config.Seed.
type Options struct {
	RandomSeed    int64
	BcryptCost    int
	BatchSize     int
	Counts        config.Counts
	Probabilities config.Probabilities
	TestUsers     []config.TestUser

	ProjectStatus    *Distribution
	NotificationType *Distribution
	EventType        *Distribution

	// Now anchors every relative date of a run. Zero means time.Now().
	Now time.Time
}

const (
	RoleClient     = "client"
	RoleFreelancer = "freelancer"

	StatusOpen       = "open"
	StatusInProgress = "in_progress"
	StatusCompleted  = "completed"
	StatusCancelled  = "cancelled"

	ProposalPending  = "pending"
	ProposalAccepted = "accepted"
	ProposalRejected = "rejected"

	NotifyNewMessage       = "new_message"
	NotifyProposalAccepted = "proposal_accepted"
	NotifyProjectCompleted = "project_completed"
	NotifyPaymentReceived  = "payment_received"

	EventLogin           = "login"
	EventSearch          = "search"
	EventViewProfile     = "view_profile"
	EventSubmitProposal  = "submit_proposal"
	EventCompleteProject = "complete_project"
)

type userRecord struct {
	id   int64
	name string
	role string
}

type projectRecord struct {
	id           int64
	clientID     int64
	freelancerID int64 // 0 when unassigned
	title        string
	budget       decimal.Decimal
	status       string
}

func (p projectRecord) assigned() bool { return p.freelancerID != 0 }

// runState holds the identifiers generated during one run. It never
// outlives Run.
type runState struct {
	skillIDs      []int64
	users         []userRecord
	clientIDs     []int64
	freelancerIDs []int64
	projects      []projectRecord
	counts        map[string]int64
}

func newRunState() *runState {
	return &runState{counts: make(map[string]int64)}
}

func (s *runState) projectIDs() []int64 {
	ids := make([]int64, len(s.projects))
	for i, p := range s.projects {
		ids[i] = p.id
	}
	return ids
}

type Result struct {
	RunID     string
	Counts    map[string]int64
	TestUsers []config.TestUser
	Duration  time.Duration
}
