package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"CableCheck/internal/calc/analysis"
	"CableCheck/internal/calc/premium/autodesign"
	"CableCheck/internal/calc/premium/recommend"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&bytes.Buffer{})
	root.SetArgs(append(args, "--catalog", "builtin"))
	err := root.Execute()
	return out.String(), err
}

var scenario = []string{"-d", "35", "-l", "10", "-q", "2", "-p", "100", "--ratio", "0.02"}

func TestAnalyze(t *testing.T) {
	out, err := run(t, append([]string{"analyze"}, scenario...)...)
	require.NoError(t, err)
	assert.Contains(t, out, "Allowable load")
	assert.Contains(t, out, "780.0 kN")
	assert.Regexp(t, `Utilization\s+0\.22\s+OK`, out)

	out, err = run(t, append([]string{"analyze", "--format", "json"}, scenario...)...)
	require.NoError(t, err)
	var res analysis.Result
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.Equal(t, 0.22, res.Utilization)
	assert.True(t, res.OKDeflection)
}

func TestAnalyzeErrors(t *testing.T) {
	_, err := run(t, "analyze", "-d", "40", "-l", "10", "-q", "2", "-p", "100")
	assert.Error(t, err)

	_, err = run(t, "analyze", "-d", "35", "-l", "10", "-q", "2")
	assert.ErrorContains(t, err, "prestress")
}

func TestCatalog(t *testing.T) {
	out, err := run(t, "catalog")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	assert.True(t, strings.HasPrefix(lines[0], "DIAMETER"))
	assert.True(t, strings.HasPrefix(lines[1], "25 "))
	assert.Contains(t, out, "780.0")
	assert.Contains(t, out, "safety factor 1.5")
}

func TestSelect(t *testing.T) {
	out, err := run(t, "select", "-l", "10", "-q", "2", "-p", "100", "--ratio", "0.015")
	require.NoError(t, err)
	assert.Contains(t, out, "selected: 35 mm")

	out, err = run(t, "select", "-l", "10", "-q", "2", "-p", "100", "--ratio", "0.005", "--format", "json")
	assert.ErrorIs(t, err, autodesign.ErrNoAdequateCable)
	var res autodesign.Result
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.Len(t, res.Candidates, 5)
}

func TestPrestress(t *testing.T) {
	out, err := run(t, "prestress", "-d", "35", "-l", "10", "-q", "2", "--ratio", "0.015", "--format", "json")
	require.NoError(t, err)
	var res recommend.Result
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.InDelta(t, 85.83, res.MinPrestressKN, 0.05)
}

func TestLoads(t *testing.T) {
	out, err := run(t, "loads", "-d", "35", "--method", "SP20", "--variable", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "SP20 basic")
	assert.Contains(t, out, "1.469 kN/m")

	_, err = run(t, "loads")
	assert.Error(t, err)
}

func TestReport(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sheet.pdf")
	out, err := run(t, append([]string{"report", "-o", path, "--project", "Footbridge"}, scenario...)...)
	require.NoError(t, err)
	assert.Contains(t, out, path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF-")))
}

func TestCLILogLevel(t *testing.T) {
	t.Setenv("LOG_LEVEL", "")
	assert.Equal(t, "warn", cliLogLevel("info", false))
	assert.Equal(t, "debug", cliLogLevel("info", true))

	t.Setenv("LOG_LEVEL", "error")
	assert.Equal(t, "error", cliLogLevel("error", false))
	assert.Equal(t, "debug", cliLogLevel("error", true))
}

func TestHashPassword(t *testing.T) {
	root := NewRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetArgs([]string{"hash-password", "secret"})
	require.NoError(t, root.Execute())
	hash := strings.TrimSpace(out.String())
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(hash), []byte("secret")))
}
