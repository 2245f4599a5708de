package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/skillsphere/skillseed/internal/config"
	"github.com/skillsphere/skillseed/template"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderConfigRoundTrip(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Seed.RandomSeed = 99
	cfg.Seed.Counts.Projects = 12

	for _, asYAML := range []bool{false, true} {
		name, content, err := renderConfig(cfg, asYAML)
		require.NoError(t, err)

		v := viper.New()
		v.SetConfigType(filepath.Ext(name)[1:])
		require.NoError(t, v.ReadConfig(bytes.NewBufferString(content)))

		loaded, err := config.LoadFrom(v)
		require.NoError(t, err, name)
		assert.Equal(t, cfg.Seed.Counts, loaded.Seed.Counts, name)
		assert.Equal(t, int64(99), loaded.Seed.RandomSeed, name)
		assert.Equal(t, cfg.Seed.TestUsers, loaded.Seed.TestUsers, name)
		assert.Equal(t, cfg.Seed.Probabilities, loaded.Seed.Probabilities, name)
	}
}

func TestInitializeProjectWritesFiles(t *testing.T) {
	t.Chdir(t.TempDir())

	require.NoError(t, initializeProject(template.SQLite, false, false))

	for _, path := range []string{"skillseed.config.json", "db/schema.sql", ".env"} {
		_, err := os.Stat(path)
		assert.NoError(t, err, path)
	}

	env, err := os.ReadFile(".env")
	require.NoError(t, err)
	assert.Contains(t, string(env), "DATABASE_URL=sqlite://")

	// A second run refuses to overwrite without --force.
	assert.Error(t, initializeProject(template.SQLite, false, false))
	assert.NoError(t, initializeProject(template.SQLite, false, true))
}

func TestApplySeedFlags(t *testing.T) {
	c := &cobra.Command{}
	addSeedFlags(c.Flags())
	require.NoError(t, c.Flags().Parse([]string{"--projects", "5", "--seed", "7", "--bcrypt-cost", "4"}))

	s := config.DefaultConfig().Seed
	applySeedFlags(c, &s)

	assert.Equal(t, 5, s.Counts.Projects)
	assert.Equal(t, int64(7), s.RandomSeed)
	assert.Equal(t, 4, s.BcryptCost)
	assert.Equal(t, 30, s.Counts.Clients)
}
