package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/echoflaresat/earthframes/config"
)

const sampleEOP = "../eop/testdata/finals2000A.sample"

func execute(t *testing.T, stdin string, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	cmd := NewRootCommand()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err = cmd.Execute()
	return out.String(), errOut.String(), err
}

func TestRootCommand(t *testing.T) {
	cmd := NewRootCommand()
	require.NotNil(t, cmd)
	assert.Equal(t, "earthframes", cmd.Use)
	assert.Contains(t, cmd.Long, "finals2000A")
	assert.Contains(t, cmd.Long, "2000B nutation")
}

func TestCommandPresence(t *testing.T) {
	cmd := NewRootCommand()
	for _, name := range []string{"eci2ecef", "ecef2eci", "eop", "geodetic", "batch"} {
		t.Run(name, func(t *testing.T) {
			sub, _, err := cmd.Find([]string{name})
			require.NoError(t, err)
			assert.Equal(t, name, sub.Name())
		})
	}
}

func TestGlobalFlags(t *testing.T) {
	cmd := NewRootCommand()
	for _, name := range []string{"config", "eop", "log-level", "log-format", "time", "workers"} {
		assert.NotNil(t, cmd.PersistentFlags().Lookup(name), name)
	}
	assert.Equal(t, "t", cmd.PersistentFlags().Lookup("time").Shorthand)
}

func TestECIToECEF(t *testing.T) {
	out, _, err := execute(t, "", "--eop", sampleEOP, "--time", "2000-01-01T12:00:00Z",
		"eci2ecef", "3451956.8821", "3810279.8175", "3761878.593")
	require.NoError(t, err)
	assert.Contains(t, out, "2000-01-01T12:00:00.000Z")
	assert.Contains(t, out, "-312019")
	assert.Contains(t, out, "408657")
}

func TestECEFToECI(t *testing.T) {
	out, _, err := execute(t, "", "--eop", sampleEOP, "--time", "2000-01-01T12:00:00Z",
		"ecef2eci", "--", "-3120195.27", "4086570.52", "3761687.39")
	require.NoError(t, err)
	assert.Contains(t, out, "345195")
	assert.Contains(t, out, "38102")
}

func TestEOP(t *testing.T) {
	out, _, err := execute(t, "", "--eop", sampleEOP, "--time", "2006-01-01T00:00:00Z", "eop")
	require.NoError(t, err)
	assert.Contains(t, out, "0.3388276 s")
	assert.Contains(t, out, "33 s")
	assert.Contains(t, out, "0.052611")
	assert.Contains(t, out, "0.383730")
}

func TestEOPMissingFile(t *testing.T) {
	_, _, err := execute(t, "", "--eop", filepath.Join(t.TempDir(), "missing"), "--time", "2006-01-01T00:00:00Z", "eop")
	assert.Error(t, err)
}

func TestGeodetic(t *testing.T) {
	out, _, err := execute(t, "", "geodetic", "36.373650", "127.362608", "55.08")
	require.NoError(t, err)
	assert.Contains(t, out, "-3120195.27")
	assert.Contains(t, out, "4086570.5")

	out, _, err = execute(t, "", "geodetic", "--inverse", "--", "-3120195.27", "4086570.52", "3761687.39")
	require.NoError(t, err)
	assert.Contains(t, out, "36.3736")
	assert.Contains(t, out, "127.3626")
}

func TestBatch(t *testing.T) {
	input := `# x y z [time]
3451956.8821 3810279.8175 3761878.593 2000-01-01T12:00:00Z

7000000 0 0
`
	out, stderr, err := execute(t, input, "--eop", sampleEOP, "--time", "2006-01-01T00:00:00Z", "--workers", "2", "batch")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[0], "-312019"), lines[0])
	assert.Contains(t, stderr, "converted 2 positions")
}

func TestBatchFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "positions.txt")
	require.NoError(t, os.WriteFile(path, []byte("-3120195.27 4086570.52 3761687.39 2000-01-01T12:00:00Z\n"), 0o644))

	out, _, err := execute(t, "", "--eop", sampleEOP, "batch", "--inverse", path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "345195"), out)
}

func TestBatchRejectsBadLine(t *testing.T) {
	_, _, err := execute(t, "1 2\n", "--eop", sampleEOP, "--time", "2006-01-01T00:00:00Z", "batch")
	assert.ErrorContains(t, err, "line 1")
}

func TestInvalidTime(t *testing.T) {
	_, _, err := execute(t, "", "--eop", sampleEOP, "--time", "yesterday", "eop")
	assert.ErrorContains(t, err, "invalid time")
}

func TestConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "earthframes.yaml")
	abs, err := filepath.Abs(sampleEOP)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, []byte("eop_file: "+abs+"\nlog:\n  level: debug\n"), 0o644))

	out, stderr, err := execute(t, "", "--config", path, "--time", "2006-01-01T00:00:00Z", "eop")
	require.NoError(t, err)
	assert.Contains(t, out, "0.3388276")
	assert.Contains(t, stderr, "loaded EOP file")

	_, _, err = execute(t, "", "--config", path, "--log-level", "loud", "eop")
	assert.ErrorIs(t, err, config.ErrInvalidConfig)
}
