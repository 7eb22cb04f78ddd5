package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"
)

func TestLoadAppliesDefaults(t *testing.T) {
	cfg, err := Load(nil, "")
	require.NoError(t, err)
	require.Equal(t, "train", cfg.TrainDir)
	require.False(t, cfg.WholeGenome)
	require.Equal(t, "tsv", cfg.Format)
}

func TestLoadEnvOverridesDefault(t *testing.T) {
	t.Setenv("FGS_WHOLE_GENOME", "true")
	cfg, err := Load(nil, "")
	require.NoError(t, err)
	require.True(t, cfg.WholeGenome)
}

func TestLoadFlagOverridesEnv(t *testing.T) {
	t.Setenv("FGS_TRAIN", "from-env")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("train", "train", "training table directory")
	require.NoError(t, flags.Set("train", "from-flag"))

	cfg, err := Load(flags, "")
	require.NoError(t, err)
	require.Equal(t, "from-flag", cfg.TrainDir)
}

func TestLoadConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "fgs.yaml")
	require.NoError(t, os.WriteFile(path, []byte("threads: 8\n"), 0o644))

	cfg, err := Load(nil, path)
	require.NoError(t, err)
	require.Equal(t, 8, cfg.Threads)
}
