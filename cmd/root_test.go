package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/leadscout/internal/config"
)

func TestRootCommand_HasSubcommands(t *testing.T) {
	cmds := rootCmd.Commands()

	names := make(map[string]bool)
	for _, c := range cmds {
		names[c.Name()] = true
	}

	expected := []string{"resolve", "batch", "extract", "cache"}
	for _, name := range expected {
		assert.True(t, names[name], "expected subcommand %q not found", name)
	}
}

func TestRootCommand_Metadata(t *testing.T) {
	assert.Equal(t, "leadscout", rootCmd.Use)
	assert.Equal(t, version, rootCmd.Version)
	assert.NotEmpty(t, rootCmd.Short)
	assert.NotEmpty(t, rootCmd.Long)
}

func TestRootCommand_ConfigFlag(t *testing.T) {
	flag := rootCmd.PersistentFlags().Lookup("config")
	require.NotNil(t, flag, "root command should have --config flag")
	assert.Equal(t, "", flag.DefValue)
}

func TestResolveCommand_Flags(t *testing.T) {
	flag := resolveCmd.Flags().Lookup("file")
	require.NotNil(t, flag, "resolve command should have --file flag")

	assert.NotNil(t, resolveCmd.Flags().Lookup("business"))
	assert.NotNil(t, resolveCmd.Flags().Lookup("location"))
	assert.NotNil(t, resolveCmd.Flags().Lookup("analyze"))
}

func TestBatchCommand_Flags(t *testing.T) {
	require.NotNil(t, batchCmd.Flags().Lookup("file"))

	flag := batchCmd.Flags().Lookup("workers")
	require.NotNil(t, flag)
	assert.Equal(t, "0", flag.DefValue)
}

func TestCacheCommand_HasPurge(t *testing.T) {
	names := make(map[string]bool)
	for _, c := range cacheCmd.Commands() {
		names[c.Name()] = true
	}
	assert.True(t, names["purge"])
}

func TestReadArticle_File(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "article.txt")
	require.NoError(t, os.WriteFile(path, []byte("robbery at 5500 Preston Road"), 0644))

	text, err := readArticle(path)
	require.NoError(t, err)
	assert.Equal(t, "robbery at 5500 Preston Road", text)
}

func TestReadArticle_Missing(t *testing.T) {
	_, err := readArticle(filepath.Join(t.TempDir(), "nope.txt"))
	assert.Error(t, err)
}

func TestReadBatchFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "batch.json")

	payload := `[
		{"article_text": "robbery at 5500 Preston Road in Dallas, TX", "business_name": "Lone Star Pawn"},
		{"article_text": "shooting reported downtown", "location": "Reno, NV"}
	]`
	require.NoError(t, os.WriteFile(path, []byte(payload), 0644))

	articles, err := readBatchFile(path)
	require.NoError(t, err)
	require.Len(t, articles, 2)
	assert.Equal(t, "Lone Star Pawn", articles[0].BusinessName)
	assert.Equal(t, "Reno, NV", articles[1].Location)
}

func TestReadBatchFile_Malformed(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0644))

	_, err := readBatchFile(path)
	assert.Error(t, err)
}

func TestRubricConfig_Defaults(t *testing.T) {
	orig := cfg
	t.Cleanup(func() { cfg = orig })

	cfg = &config.Config{}
	c := rubricConfig()
	assert.Equal(t, 3, c.QualityHigh)
	assert.Equal(t, 6, c.HighTier)
}

func TestRubricConfig_Overrides(t *testing.T) {
	orig := cfg
	t.Cleanup(func() { cfg = orig })

	cfg = &config.Config{}
	cfg.Confirm.HighTier = 8
	cfg.Confirm.CityBonus = 4

	c := rubricConfig()
	assert.Equal(t, 8, c.HighTier)
	assert.Equal(t, 4, c.CityBonus)
	// Untouched values keep defaults
	assert.Equal(t, 3, c.StreetBonus)
}

func TestExtractOutput_JSONShape(t *testing.T) {
	out := extractOutput{Patterns: []string{"5500 Preston Road"}}
	b, err := json.Marshal(out)
	require.NoError(t, err)
	assert.Contains(t, string(b), `"patterns"`)
	assert.Contains(t, string(b), `"clues"`)
	assert.Contains(t, string(b), `"candidates"`)
}
