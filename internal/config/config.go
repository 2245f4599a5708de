package config

import (
	"fmt"
	"net"
	"net/url"
	"os"
	"strconv"

	"github.com/go-sql-driver/mysql"
	"github.com/spf13/viper"
)

type Config struct {
	Database Database `json:"database" mapstructure:"database" yaml:"database"`
	Seed     Seed     `json:"seed" mapstructure:"seed" yaml:"seed"`
}

type Database struct {
	Provider string `json:"provider" mapstructure:"provider" yaml:"provider"`
	URLEnv   string `json:"url_env" mapstructure:"url_env" yaml:"url_env"`
	Host     string `json:"host,omitempty" mapstructure:"host" yaml:"host,omitempty"`
	Port     int    `json:"port,omitempty" mapstructure:"port" yaml:"port,omitempty"`
	Name     string `json:"name,omitempty" mapstructure:"name" yaml:"name,omitempty"`
	User     string `json:"user,omitempty" mapstructure:"user" yaml:"user,omitempty"`
	Password string `json:"password,omitempty" mapstructure:"password" yaml:"password,omitempty"`
	SSLMode  string `json:"sslmode,omitempty" mapstructure:"sslmode" yaml:"sslmode,omitempty"`
}

type Seed struct {
	RandomSeed    int64         `json:"random_seed" mapstructure:"random_seed" yaml:"random_seed"` // 0 = seeded from the clock
	BcryptCost    int           `json:"bcrypt_cost" mapstructure:"bcrypt_cost" yaml:"bcrypt_cost"`
	BatchSize     int           `json:"batch_size" mapstructure:"batch_size" yaml:"batch_size"`
	Counts        Counts        `json:"counts" mapstructure:"counts" yaml:"counts"`
	Probabilities Probabilities `json:"probabilities" mapstructure:"probabilities" yaml:"probabilities"`
	Distributions Distributions `json:"distributions" mapstructure:"distributions" yaml:"distributions"`
	TestUsers     []TestUser    `json:"test_users" mapstructure:"test_users" yaml:"test_users"`
}

type Counts struct {
	Clients         int `json:"clients" mapstructure:"clients" yaml:"clients"`
	Freelancers     int `json:"freelancers" mapstructure:"freelancers" yaml:"freelancers"`
	Projects        int `json:"projects" mapstructure:"projects" yaml:"projects"`
	Messages        int `json:"messages" mapstructure:"messages" yaml:"messages"`
	Notifications   int `json:"notifications" mapstructure:"notifications" yaml:"notifications"`
	AnalyticsEvents int `json:"analytics_events" mapstructure:"analytics_events" yaml:"analytics_events"`
}

type Probabilities struct {
	AssignFreelancer float64 `json:"assign_freelancer" mapstructure:"assign_freelancer" yaml:"assign_freelancer"`
	MessageRead      float64 `json:"message_read" mapstructure:"message_read" yaml:"message_read"`
	NotificationRead float64 `json:"notification_read" mapstructure:"notification_read" yaml:"notification_read"`
	ClientRates      float64 `json:"client_rates" mapstructure:"client_rates" yaml:"client_rates"`
	FreelancerRates  float64 `json:"freelancer_rates" mapstructure:"freelancer_rates" yaml:"freelancer_rates"`
}

// Distributions map a label to its relative weight. Weights need not sum to 1.
type Distributions struct {
	ProjectStatus    map[string]float64 `json:"project_status" mapstructure:"project_status" yaml:"project_status"`
	NotificationType map[string]float64 `json:"notification_type" mapstructure:"notification_type" yaml:"notification_type"`
	EventType        map[string]float64 `json:"event_type" mapstructure:"event_type" yaml:"event_type"`
}

type TestUser struct {
	Name     string `json:"name" mapstructure:"name" yaml:"name"`
	Email    string `json:"email" mapstructure:"email" yaml:"email"`
	Password string `json:"password" mapstructure:"password" yaml:"password"`
	Role     string `json:"role" mapstructure:"role" yaml:"role"`
}

var supportedProviders = []string{"postgresql", "postgres", "mysql", "sqlite", "sqlite3"}

// probabilityKeys lists the viper keys whose zero value is meaningful, so
// defaults are applied only when the key is absent.
var probabilityKeys = map[string]func(*Probabilities) *float64{
	"seed.probabilities.assign_freelancer": func(p *Probabilities) *float64 { return &p.AssignFreelancer },
	"seed.probabilities.message_read":      func(p *Probabilities) *float64 { return &p.MessageRead },
	"seed.probabilities.notification_read": func(p *Probabilities) *float64 { return &p.NotificationRead },
	"seed.probabilities.client_rates":      func(p *Probabilities) *float64 { return &p.ClientRates },
	"seed.probabilities.freelancer_rates":  func(p *Probabilities) *float64 { return &p.FreelancerRates },
}

func DefaultConfig() *Config {
	return &Config{
		Database: Database{
			Provider: "postgresql",
			URLEnv:   "DATABASE_URL",
			Host:     "localhost",
			Port:     5432,
			Name:     "skillsphere",
			SSLMode:  "disable",
		},
		Seed: Seed{
			BcryptCost: 10,
			BatchSize:  100,
			Counts: Counts{
				Clients:         30,
				Freelancers:     70,
				Projects:        1000,
				Messages:        200,
				Notifications:   300,
				AnalyticsEvents: 500,
			},
			Probabilities: Probabilities{
				AssignFreelancer: 0.7,
				MessageRead:      0.7,
				NotificationRead: 0.6,
				ClientRates:      0.9,
				FreelancerRates:  0.7,
			},
			Distributions: DefaultDistributions(),
			TestUsers:     DefaultTestUsers(),
		},
	}
}

func DefaultDistributions() Distributions {
	return Distributions{
		ProjectStatus: map[string]float64{
			"in_progress": 0.2,
			"completed":   0.6,
			"cancelled":   0.2,
		},
		NotificationType: map[string]float64{
			"new_message":       1,
			"proposal_accepted": 1,
			"project_completed": 1,
			"payment_received":  1,
		},
		EventType: map[string]float64{
			"login":            1,
			"search":           1,
			"view_profile":     1,
			"submit_proposal":  1,
			"complete_project": 1,
		},
	}
}

func DefaultTestUsers() []TestUser {
	return []TestUser{
		{Name: "John Client", Email: "john.client@example.com", Password: "Client123!", Role: "client"},
		{Name: "Emily Client", Email: "emily.client@example.com", Password: "Emily456!", Role: "client"},
		{Name: "Mike Freelancer", Email: "mike.freelancer@example.com", Password: "Mike789!", Role: "freelancer"},
		{Name: "Sarah Freelancer", Email: "sarah.freelancer@example.com", Password: "Sarah123!", Role: "freelancer"},
		{Name: "Admin User", Email: "admin@example.com", Password: "Admin123!", Role: "client"},
	}
}

// Load reads the configuration held by the global viper instance.
func Load() (*Config, error) {
	return LoadFrom(viper.GetViper())
}

func LoadFrom(v *viper.Viper) (*Config, error) {
	var cfg Config

	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	def := DefaultConfig()

	if cfg.Database.Provider == "" {
		cfg.Database.Provider = def.Database.Provider
	}
	if cfg.Database.URLEnv == "" {
		cfg.Database.URLEnv = def.Database.URLEnv
	}
	if cfg.Database.Host == "" {
		cfg.Database.Host = def.Database.Host
	}
	if cfg.Database.Port == 0 {
		cfg.Database.Port = def.Database.Port
	}
	if cfg.Database.Name == "" {
		cfg.Database.Name = def.Database.Name
	}
	if cfg.Database.SSLMode == "" {
		cfg.Database.SSLMode = def.Database.SSLMode
	}

	if cfg.Seed.BcryptCost == 0 {
		cfg.Seed.BcryptCost = def.Seed.BcryptCost
	}
	if cfg.Seed.BatchSize == 0 {
		cfg.Seed.BatchSize = def.Seed.BatchSize
	}

	// Counts may legitimately be zero only when set explicitly.
	counts := []struct {
		key string
		dst *int
		def int
	}{
		{"seed.counts.clients", &cfg.Seed.Counts.Clients, def.Seed.Counts.Clients},
		{"seed.counts.freelancers", &cfg.Seed.Counts.Freelancers, def.Seed.Counts.Freelancers},
		{"seed.counts.projects", &cfg.Seed.Counts.Projects, def.Seed.Counts.Projects},
		{"seed.counts.messages", &cfg.Seed.Counts.Messages, def.Seed.Counts.Messages},
		{"seed.counts.notifications", &cfg.Seed.Counts.Notifications, def.Seed.Counts.Notifications},
		{"seed.counts.analytics_events", &cfg.Seed.Counts.AnalyticsEvents, def.Seed.Counts.AnalyticsEvents},
	}
	for _, c := range counts {
		if !v.IsSet(c.key) {
			*c.dst = c.def
		}
	}

	for key, field := range probabilityKeys {
		if !v.IsSet(key) {
			*field(&cfg.Seed.Probabilities) = *field(&def.Seed.Probabilities)
		}
	}

	if len(cfg.Seed.Distributions.ProjectStatus) == 0 {
		cfg.Seed.Distributions.ProjectStatus = def.Seed.Distributions.ProjectStatus
	}
	if len(cfg.Seed.Distributions.NotificationType) == 0 {
		cfg.Seed.Distributions.NotificationType = def.Seed.Distributions.NotificationType
	}
	if len(cfg.Seed.Distributions.EventType) == 0 {
		cfg.Seed.Distributions.EventType = def.Seed.Distributions.EventType
	}
	if !v.IsSet("seed.test_users") {
		cfg.Seed.TestUsers = def.Seed.TestUsers
	}

	return &cfg, nil
}

func (c *Config) Validate() error {
	supported := false
	for _, provider := range supportedProviders {
		if c.Database.Provider == provider {
			supported = true
			break
		}
	}
	if !supported {
		return fmt.Errorf("unsupported database provider: %s. Supported providers: %v", c.Database.Provider, supportedProviders)
	}

	s := c.Seed
	if s.BatchSize <= 0 {
		return fmt.Errorf("batch_size must be positive, got %d", s.BatchSize)
	}
	if s.BcryptCost < 4 || s.BcryptCost > 31 {
		return fmt.Errorf("bcrypt_cost must be between 4 and 31, got %d", s.BcryptCost)
	}

	counts := map[string]int{
		"clients":          s.Counts.Clients,
		"freelancers":      s.Counts.Freelancers,
		"projects":         s.Counts.Projects,
		"messages":         s.Counts.Messages,
		"notifications":    s.Counts.Notifications,
		"analytics_events": s.Counts.AnalyticsEvents,
	}
	for name, n := range counts {
		if n < 0 {
			return fmt.Errorf("counts.%s cannot be negative, got %d", name, n)
		}
	}

	clients, freelancers := 0, 0
	for i, u := range s.TestUsers {
		if u.Email == "" || u.Password == "" {
			return fmt.Errorf("test_users[%d]: email and password are required", i)
		}
		switch u.Role {
		case "client":
			clients++
		case "freelancer":
			freelancers++
		default:
			return fmt.Errorf("test_users[%d]: invalid role %q", i, u.Role)
		}
	}
	if clients+s.Counts.Clients == 0 && s.Counts.Projects > 0 {
		return fmt.Errorf("projects require at least one client")
	}
	if freelancers+s.Counts.Freelancers == 0 && s.Counts.Projects > 0 {
		return fmt.Errorf("projects require at least one freelancer")
	}

	probs := map[string]float64{
		"assign_freelancer": s.Probabilities.AssignFreelancer,
		"message_read":      s.Probabilities.MessageRead,
		"notification_read": s.Probabilities.NotificationRead,
		"client_rates":      s.Probabilities.ClientRates,
		"freelancer_rates":  s.Probabilities.FreelancerRates,
	}
	for name, p := range probs {
		if p < 0 || p > 1 {
			return fmt.Errorf("probabilities.%s must be within [0, 1], got %v", name, p)
		}
	}

	return nil
}

// GetDatabaseURL prefers the URL held in the environment variable named by
// url_env and falls back to a DSN built from the discrete fields.
func (c *Config) GetDatabaseURL() (string, error) {
	if dbURL := os.Getenv(c.Database.URLEnv); dbURL != "" {
		return dbURL, nil
	}

	d := c.Database
	switch d.Provider {
	case "postgresql", "postgres":
		u := url.URL{
			Scheme: "postgres",
			Host:   net.JoinHostPort(d.Host, strconv.Itoa(d.Port)),
			Path:   "/" + d.Name,
		}
		if d.User != "" {
			if d.Password != "" {
				u.User = url.UserPassword(d.User, d.Password)
			} else {
				u.User = url.User(d.User)
			}
		}
		q := url.Values{}
		if d.SSLMode != "" {
			q.Set("sslmode", d.SSLMode)
		}
		u.RawQuery = q.Encode()
		return u.String(), nil
	case "mysql":
		mc := mysql.NewConfig()
		mc.User = d.User
		mc.Passwd = d.Password
		mc.Net = "tcp"
		mc.Addr = net.JoinHostPort(d.Host, strconv.Itoa(d.Port))
		mc.DBName = d.Name
		mc.ParseTime = true
		return mc.FormatDSN(), nil
	case "sqlite", "sqlite3":
		if d.Name == "" {
			return "", fmt.Errorf("database name (file path) is required for sqlite")
		}
		return "file:" + d.Name + "?_foreign_keys=on", nil
	}

	return "", fmt.Errorf("database URL not found in environment variable %s", c.Database.URLEnv)
}
