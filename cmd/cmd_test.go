package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gnoswap-labs/inputmask/internal/config"
)

func TestMain(m *testing.M) {
	color.NoColor = true
	os.Exit(m.Run())
}

// resetFlags restores every flag of the command tree to its default so
// package-level flag variables do not leak between runs.
func resetFlags(c *cobra.Command) {
	reset := func(f *pflag.Flag) {
		if sv, ok := f.Value.(pflag.SliceValue); ok {
			_ = sv.Replace(nil)
		} else {
			_ = f.Value.Set(f.DefValue)
		}
		f.Changed = false
	}
	c.Flags().VisitAll(reset)
	c.PersistentFlags().VisitAll(reset)
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	return executeWithConfig(t, filepath.Join(t.TempDir(), ".inputmask.yaml"), args...)
}

func executeWithConfig(t *testing.T, cfg string, args ...string) (string, error) {
	t.Helper()
	resetFlags(rootCmd)

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(append(args, "--config", cfg))
	err := rootCmd.Execute()
	return out.String(), err
}

func TestApply(t *testing.T) {
	out, err := execute(t, "apply", "+7 ([000]) [000] [00] [00]", "89001234567")
	require.NoError(t, err)
	assert.Contains(t, out, "+7 (890) 012 34 56")
}

func TestApplyJSON(t *testing.T) {
	out, err := execute(t, "apply", "--json", "[00]{-}[00]", "1234")
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"input": "1234",
		"formatted": "12-34",
		"caret": 5,
		"value": "12-34",
		"complete": true,
		"affinity": 3,
		"tail_placeholder": ""
	}`, out)
}

func TestApplyShorthand(t *testing.T) {
	out, err := execute(t, "apply", "--json", "--shorthand", "nnnn nnnn", "12345678")
	require.NoError(t, err)
	assert.Contains(t, out, `"formatted":"1234 5678"`)
}

func TestApplyRequiresText(t *testing.T) {
	_, err := execute(t, "apply", "[00]")
	assert.Error(t, err)
}

func TestApplyMalformed(t *testing.T) {
	_, err := execute(t, "apply", "[00", "12")
	assert.Error(t, err)
}

func TestPlaceholder(t *testing.T) {
	out, err := execute(t, "placeholder", "[00]{.}[09]")
	require.NoError(t, err)
	assert.Contains(t, out, "00.00")
	assert.Contains(t, out, "total value length: 5")
}

func TestType(t *testing.T) {
	out, err := execute(t, "type", "[00]-[00]", "1", "2", "3", "BS")
	require.NoError(t, err)
	assert.Contains(t, out, `step 3: "3"`)
	assert.Contains(t, out, "12-3")
	assert.Contains(t, out, `step 4: "BS"`)
}

func TestInitAndCheck(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".inputmask.yaml")

	out, err := executeWithConfig(t, path, "init")
	require.NoError(t, err)
	assert.Contains(t, out, "Configuration file created")

	_, err = executeWithConfig(t, path, "init")
	assert.Error(t, err, "init must not overwrite without --force")

	_, err = executeWithConfig(t, path, "init", "--force")
	require.NoError(t, err)

	out, err = executeWithConfig(t, path, "check")
	require.NoError(t, err)
	assert.Contains(t, out, "masks OK")

	out, err = executeWithConfig(t, path, "apply", "--mask", "color", "ff00aa")
	require.NoError(t, err)
	assert.Contains(t, out, "#ff00aa")
}

func TestCheckReportsMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	data, err := config.Marshal(path, &config.File{
		Name: "bad",
		Masks: map[string]config.MaskSpec{
			"good":   {Pattern: "[00]"},
			"broken": {Pattern: "[00}"},
		},
	})
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, data, 0o644))

	out, err := executeWithConfig(t, path, "check")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "1 of 2")
	assert.Contains(t, out, "error: broken")
}

func TestBatch(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "rows.jsonl")
	require.NoError(t, os.WriteFile(in, []byte(`{"phone":"9001234567"}`+"\n"), 0o644))

	out, err := execute(t, "batch", "--pattern", "[000] [000]-[00]-[00]", "--field", "phone", in)
	require.NoError(t, err)
	assert.Equal(t, `{"phone":"900 123-45-67"}`+"\n", out)
}

func TestBatchRequiresMask(t *testing.T) {
	_, err := execute(t, "batch", t.TempDir())
	assert.Error(t, err)
}
