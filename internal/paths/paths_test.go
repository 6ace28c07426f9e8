package paths

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func withConfigDir(t *testing.T, dir string, err error) {
	t.Helper()
	orig := userConfigDir
	userConfigDir = func() (string, error) { return dir, err }
	t.Cleanup(func() { userConfigDir = orig })
}

func TestConfigDir(t *testing.T) {
	withConfigDir(t, "/home/u/.config", nil)
	require.Equal(t, filepath.Join("/home/u/.config", "feeportal"), ConfigDir())

	withConfigDir(t, "", errors.New("no home"))
	require.Empty(t, ConfigDir())
}

func TestConfigCandidates(t *testing.T) {
	withConfigDir(t, "/cfg", nil)
	require.Equal(t, []string{
		filepath.Join("proj", ".feeportal.yaml"),
		filepath.Join("/cfg", "feeportal", "config.yaml"),
	}, ConfigCandidates("proj/"))

	withConfigDir(t, "", errors.New("no home"))
	require.Equal(t, []string{".feeportal.yaml"}, ConfigCandidates(""))
}

func TestResolveConfigFile(t *testing.T) {
	work := t.TempDir()
	home := t.TempDir()
	withConfigDir(t, home, nil)

	require.Equal(t, filepath.Join("a", "b.yaml"), ResolveConfigFile("a//b.yaml", work))
	require.Empty(t, ResolveConfigFile("", work))

	userCfg := filepath.Join(home, "feeportal", "config.yaml")
	require.NoError(t, os.MkdirAll(filepath.Dir(userCfg), 0o755))
	require.NoError(t, os.WriteFile(userCfg, []byte("debug: true\n"), 0o644))
	require.Equal(t, userCfg, ResolveConfigFile("", work))

	local := filepath.Join(work, LocalConfigName)
	require.NoError(t, os.WriteFile(local, []byte("debug: false\n"), 0o644))
	require.Equal(t, local, ResolveConfigFile("", work), "working directory wins")
}

func TestResolveConfigFile_SkipsDirectories(t *testing.T) {
	work := t.TempDir()
	withConfigDir(t, "", errors.New("none"))
	require.NoError(t, os.Mkdir(filepath.Join(work, LocalConfigName), 0o755))
	require.Empty(t, ResolveConfigFile("", work))
}

func TestDefaultLogPath(t *testing.T) {
	withConfigDir(t, "/cfg", nil)
	require.Equal(t, filepath.Join("/cfg", "feeportal", "debug.log"), DefaultLogPath())

	withConfigDir(t, "", errors.New("none"))
	require.Equal(t, "feeportal-debug.log", DefaultLogPath())
}
