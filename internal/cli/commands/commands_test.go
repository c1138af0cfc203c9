package commands

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/itemdex/internal/config"
)

// writeItemFile drops a small valid item file into a temp dir.
func writeItemFile(t *testing.T, names ...string) string {
	t.Helper()

	var sb strings.Builder
	for i, n := range names {
		fmt.Fprintf(&sb, "add_item\\%d\\a\\b\\c\\d\\%s\n", i+1, n)
	}

	path := filepath.Join(t.TempDir(), "items.txt")
	require.NoError(t, os.WriteFile(path, []byte(sb.String()), 0o644))
	return path
}

func runCommand(t *testing.T, cmd *cobra.Command, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestVersionCommand(t *testing.T) {
	out, err := runCommand(t, NewVersionCommand("1.2.3", "today", "abc"))
	require.NoError(t, err)
	assert.Contains(t, out, "itemdex v1.2.3")
}

func TestValidateCommand(t *testing.T) {
	config.SetCurrent(nil)
	path := writeItemFile(t, "Oak Log", "Stone", "Dirt", "Sand", "Clay")

	out, err := runCommand(t, NewValidateCommand(), path)
	require.NoError(t, err)
	assert.Contains(t, out, "5 accepted")
}

func TestValidateCommand_InvalidFile(t *testing.T) {
	config.SetCurrent(nil)
	path := filepath.Join(t.TempDir(), "items.txt")
	require.NoError(t, os.WriteFile(path, []byte("nothing useful"), 0o644))

	out, err := runCommand(t, NewValidateCommand(), path)
	require.NoError(t, err, "an invalid file is a report, not a command failure")
	assert.Contains(t, out, "invalid:")
}

func TestSearchCommand(t *testing.T) {
	config.SetCurrent(nil)
	path := writeItemFile(t, "Oak Log", "Oak Planks", "Stone", "Dirt", "Sand")

	out, err := runCommand(t, NewSearchCommand(), path, "oak")
	require.NoError(t, err)
	assert.Contains(t, out, "2 matches")
	assert.Contains(t, out, "Oak Log")
}

func TestSearchCommand_CategoryFilter(t *testing.T) {
	config.SetCurrent(nil)
	path := writeItemFile(t, "Oak Log", "Wheat Seeds", "Stone", "Dirt", "Sand")

	out, err := runCommand(t, NewSearchCommand(), path, "e", "--category", "seed")
	require.NoError(t, err)
	assert.Contains(t, out, "Wheat Seeds")
	assert.NotContains(t, out, "Stone")
}

func TestInfoCommand(t *testing.T) {
	config.SetCurrent(nil)
	path := writeItemFile(t, "Oak Log", "Wheat Seeds", "Stone", "Dirt", "Sand")

	out, err := runCommand(t, NewInfoCommand(), path)
	require.NoError(t, err)
	assert.Contains(t, out, "5 items (4 blocks, 1 seeds)")
}
