package envstruct

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPopulate(t *testing.T) {
	t.Parallel()

	lookupEnv := func(key string) (string, bool) {
		switch key {
		case "CLUETRACK_ADDR":
			return "localhost:4000", true
		case "CLUETRACK_SQLITE_URL":
			return ":memory:", true
		default:
			return "", false
		}
	}

	t.Run("populates tagged string fields", func(t *testing.T) {
		t.Parallel()
		var config struct {
			Addr      string `env:"CLUETRACK_ADDR"`
			SqliteURL string `env:"CLUETRACK_SQLITE_URL"`
			Untagged  string
		}
		err := Populate(&config, lookupEnv)
		require.NoError(t, err)
		require.Equal(t, "localhost:4000", config.Addr)
		require.Equal(t, ":memory:", config.SqliteURL)
		require.Empty(t, config.Untagged)
	})

	t.Run("falls back to default value", func(t *testing.T) {
		t.Parallel()
		var config struct {
			PprofAddr string `env:"CLUETRACK_PPROF_ADDR" envDefault:":6060"`
		}
		err := Populate(&config, lookupEnv)
		require.NoError(t, err)
		require.Equal(t, ":6060", config.PprofAddr)
	})

	t.Run("errors when environment variable is not set", func(t *testing.T) {
		t.Parallel()
		var config struct {
			Missing string `env:"CLUETRACK_MISSING"`
		}
		err := Populate(&config, lookupEnv)
		require.ErrorIs(t, err, ErrEnvNotSet)
	})

	t.Run("errors on non-pointer", func(t *testing.T) {
		t.Parallel()
		var config struct {
			Addr string `env:"CLUETRACK_ADDR"`
		}
		err := Populate(config, lookupEnv)
		require.ErrorIs(t, err, ErrInvalidValue)
	})

	t.Run("errors on non-string field", func(t *testing.T) {
		t.Parallel()
		var config struct {
			Port int `env:"CLUETRACK_ADDR"`
		}
		err := Populate(&config, lookupEnv)
		require.ErrorIs(t, err, ErrInvalidValue)
	})
}
