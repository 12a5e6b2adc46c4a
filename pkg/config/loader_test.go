package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JayKim88/polylingo-entitlements/pkg/config"
)

type testConfig struct {
	Name    string        `env:"CONFIG_TEST_NAME" envDefault:"fallback"`
	Timeout time.Duration `env:"CONFIG_TEST_TIMEOUT" envDefault:"10s"`
}

type requiredConfig struct {
	APIKey string `env:"CONFIG_TEST_REQUIRED_KEY,required"`
}

func TestLoad_Defaults(t *testing.T) {
	var cfg testConfig
	require.NoError(t, config.Load(&cfg))
	assert.Equal(t, "fallback", cfg.Name)
	assert.Equal(t, 10*time.Second, cfg.Timeout)
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("CONFIG_TEST_NAME", "from-env")
	t.Setenv("CONFIG_TEST_TIMEOUT", "250ms")

	var cfg testConfig
	require.NoError(t, config.Load(&cfg))
	assert.Equal(t, "from-env", cfg.Name)
	assert.Equal(t, 250*time.Millisecond, cfg.Timeout)
}

func TestLoad_RequiredMissing(t *testing.T) {
	var cfg requiredConfig
	err := config.Load(&cfg)
	assert.ErrorIs(t, err, config.ErrParsingConfig)
}

func TestLoad_NilPointer(t *testing.T) {
	err := config.Load[testConfig](nil)
	assert.ErrorIs(t, err, config.ErrNilPointer)
}

func TestMustLoad_PanicsOnMissingRequired(t *testing.T) {
	var cfg requiredConfig
	assert.Panics(t, func() { config.MustLoad(&cfg) })
}
