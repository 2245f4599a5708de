package seeder

import (
	"fmt"
	"math/rand"
	"strings"
	"time"
	"unicode"

	"github.com/go-faker/faker/v4"
	"github.com/shopspring/decimal"
)

// DataGenerator produces the random content of a run. Every draw goes
// through one seeded source so a fixed seed reproduces the same data.
type DataGenerator struct {
	rand    *rand.Rand
	now     time.Time
	counter int
}

func NewDataGenerator(seed int64, now time.Time) *DataGenerator {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	if now.IsZero() {
		now = time.Now()
	}

	// faker draws from its own package-level source.
	faker.SetRandomSource(faker.NewSafeSource(rand.NewSource(seed)))

	return &DataGenerator{
		rand: rand.New(rand.NewSource(seed)),
		now:  now,
	}
}

func (g *DataGenerator) Rand() *rand.Rand { return g.rand }

// IntBetween returns a uniform integer in [min, max].
func (g *DataGenerator) IntBetween(min, max int) int {
	if max <= min {
		return min
	}
	return min + g.rand.Intn(max-min+1)
}

func (g *DataGenerator) FloatBetween(min, max float64) float64 {
	return min + g.rand.Float64()*(max-min)
}

// Chance returns true with probability p.
func (g *DataGenerator) Chance(p float64) bool {
	return g.rand.Float64() < p
}

func (g *DataGenerator) PickID(ids []int64) int64 {
	return ids[g.rand.Intn(len(ids))]
}

func (g *DataGenerator) PickString(values []string) string {
	return values[g.rand.Intn(len(values))]
}

// SampleIDs returns n distinct elements of ids, or all of them when n
// exceeds len(ids).
func (g *DataGenerator) SampleIDs(ids []int64, n int) []int64 {
	if n > len(ids) {
		n = len(ids)
	}
	out := make([]int64, 0, n)
	for _, i := range g.rand.Perm(len(ids))[:n] {
		out = append(out, ids[i])
	}
	return out
}

func (g *DataGenerator) SampleStrings(values []string, n int) []string {
	if n > len(values) {
		n = len(values)
	}
	out := make([]string, 0, n)
	for _, i := range g.rand.Perm(len(values))[:n] {
		out = append(out, values[i])
	}
	return out
}

// DaysAgo returns a timestamp between min and max whole days before now.
func (g *DataGenerator) DaysAgo(min, max int) time.Time {
	return g.now.AddDate(0, 0, -g.IntBetween(min, max))
}

// DaysAhead returns a calendar date between min and max days after now.
func (g *DataGenerator) DaysAhead(min, max int) string {
	return g.now.AddDate(0, 0, g.IntBetween(min, max)).Format("2006-01-02")
}

// Money returns a uniform amount in [min, max] rounded to cents.
func (g *DataGenerator) Money(min, max float64) decimal.Decimal {
	return decimal.NewFromFloat(g.FloatBetween(min, max)).Round(2)
}

// Scale multiplies amount by a uniform factor in [min, max], rounded to cents.
func (g *DataGenerator) Scale(amount decimal.Decimal, min, max float64) decimal.Decimal {
	return amount.Mul(decimal.NewFromFloat(g.FloatBetween(min, max))).Round(2)
}

func (g *DataGenerator) Name() string {
	return faker.FirstName() + " " + faker.LastName()
}

// Email derives a run-unique address from name.
func (g *DataGenerator) Email(name string) string {
	g.counter++
	local := strings.Map(func(r rune) rune {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			return unicode.ToLower(r)
		case r == ' ':
			return '.'
		}
		return -1
	}, name)
	if local == "" {
		local = "user"
	}
	return fmt.Sprintf("%s%d@%s", local, g.counter, faker.DomainName())
}

func (g *DataGenerator) Password() string {
	return faker.Password()
}

func (g *DataGenerator) Sentence() string {
	return faker.Sentence()
}

// Paragraph joins n generated sentences.
func (g *DataGenerator) Paragraph(n int) string {
	sentences := make([]string, n)
	for i := range sentences {
		sentences[i] = faker.Sentence()
	}
	return strings.Join(sentences, " ")
}

// Subject is a sentence without its trailing period.
func (g *DataGenerator) Subject() string {
	return strings.TrimSuffix(faker.Sentence(), ".")
}

var (
	phraseAdjectives = []string{
		"Adaptive", "Balanced", "Centralized", "Cross-platform", "Customizable",
		"Distributed", "Ergonomic", "Integrated", "Mobile-first", "Optimized",
		"Progressive", "Responsive", "Scalable", "Secure", "Streamlined",
	}
	phraseModifiers = []string{
		"analytics", "client-driven", "content-based", "data-driven", "e-commerce",
		"full-stack", "multimedia", "real-time", "serverless", "user-facing",
	}
	phraseNouns = []string{
		"application", "dashboard", "landing page", "marketplace", "migration",
		"platform", "portal", "redesign", "integration", "toolkit", "website",
	}
)

// CatchPhrase builds a short project title.
func (g *DataGenerator) CatchPhrase() string {
	return fmt.Sprintf("%s %s %s",
		g.PickString(phraseAdjectives), g.PickString(phraseModifiers), g.PickString(phraseNouns))
}

func (g *DataGenerator) Location() string {
	addr := faker.GetRealAddress()
	return addr.City + ", " + addr.State
}

func (g *DataGenerator) IPv4() string {
	return faker.IPv4()
}

func (g *DataGenerator) AvatarURL() string {
	gender := "men"
	if g.rand.Float64() > 0.5 {
		gender = "women"
	}
	return fmt.Sprintf("https://randomuser.me/api/portraits/%s/%d.jpg", gender, g.IntBetween(1, 99))
}
