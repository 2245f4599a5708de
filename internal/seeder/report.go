package seeder

import (
	"fmt"
	"strings"
	"sync"

	"github.com/fatih/color"
	"github.com/skillsphere/skillseed/internal/config"
)

// Reporter receives operator-facing progress. Diagnostics go to zap.
type Reporter interface {
	Phase(name string)
	PhaseDone(name string, rows int64)
	Note(format string, args ...any)
	Warn(format string, args ...any)
}

type ConsoleReporter struct{}

func (ConsoleReporter) Phase(name string) {
	color.Cyan("  📝 %s...", phaseTitles[name])
}

func (ConsoleReporter) PhaseDone(name string, rows int64) {
	color.Green("  ✅ %s (%d rows)", phaseTitles[name], rows)
}

func (ConsoleReporter) Note(format string, args ...any) {
	color.Cyan(format, args...)
}

func (ConsoleReporter) Warn(format string, args ...any) {
	color.Yellow("⚠️  "+format, args...)
}

type nopReporter struct{}

func (nopReporter) Phase(string)            {}
func (nopReporter) PhaseDone(string, int64) {}
func (nopReporter) Note(string, ...any)     {}
func (nopReporter) Warn(string, ...any)     {}

// NopReporter discards all progress.
var NopReporter Reporter = nopReporter{}

// RecordingReporter keeps phase names and warnings in memory.
type RecordingReporter struct {
	mu       sync.Mutex
	Phases   []string
	Done     map[string]int64
	Warnings []string
}

func (r *RecordingReporter) Phase(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Phases = append(r.Phases, name)
}

func (r *RecordingReporter) PhaseDone(name string, rows int64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Done == nil {
		r.Done = make(map[string]int64)
	}
	r.Done[name] = rows
}

func (r *RecordingReporter) Note(string, ...any) {}

func (r *RecordingReporter) Warn(format string, args ...any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Warnings = append(r.Warnings, fmt.Sprintf(format, args...))
}

var phaseTitles = map[string]string{
	PhaseReset:         "Clearing existing data",
	PhaseSkills:        "Inserting skills",
	PhaseUsers:         "Generating users",
	PhaseProfiles:      "Creating profiles",
	PhaseUserSkills:    "Assigning skills to users",
	PhaseProjects:      "Creating projects",
	PhaseProposals:     "Creating proposals",
	PhaseMessages:      "Creating messages",
	PhaseNotifications: "Creating notifications",
	PhaseRatings:       "Creating ratings",
	PhaseAnalytics:     "Creating analytics events",
	PhasePreferences:   "Creating freelancer preferences",
	PhaseHistory:       "Creating project applications history",
}

// PrintCredentials lists the fixed test accounts.
func PrintCredentials(users []config.TestUser) {
	color.Green("\n=== Test User Credentials ===")
	for _, u := range users {
		fmt.Printf("Name: %s\n", u.Name)
		fmt.Printf("Email: %s\n", u.Email)
		fmt.Printf("Password: %s\n", u.Password)
		fmt.Printf("Role: %s\n", u.Role)
		fmt.Println(strings.Repeat("-", 30))
	}
}
