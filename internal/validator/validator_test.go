package validator

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/solevolog/solevolog/internal/catalog"
)

// copyEmbeddedDeck writes the built-in deck to a temporary directory.
func copyEmbeddedDeck(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	err := fs.WalkDir(catalog.EmbeddedFS(), ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		target := filepath.Join(root, filepath.FromSlash(p))
		if d.IsDir() {
			return os.MkdirAll(target, 0755)
		}
		data, err := fs.ReadFile(catalog.EmbeddedFS(), p)
		if err != nil {
			return err
		}
		return os.WriteFile(target, data, 0644)
	})
	require.NoError(t, err)
	return root
}

func writeFile(t *testing.T, root, name, content string) {
	t.Helper()
	p := filepath.Join(root, filepath.FromSlash(name))
	require.NoError(t, os.MkdirAll(filepath.Dir(p), 0755))
	require.NoError(t, os.WriteFile(p, []byte(content), 0644))
}

func containsMessage(messages []string, substr string) bool {
	for _, m := range messages {
		if strings.Contains(m, substr) {
			return true
		}
	}
	return false
}

func TestEmbeddedDeckIsValid(t *testing.T) {
	root := copyEmbeddedDeck(t)

	results, err := NewValidator(root, nil).Validate()
	require.NoError(t, err)
	assert.True(t, results.Valid(), results.Errors)
	assert.Empty(t, results.Warnings)
}

func TestMissingDeckToml(t *testing.T) {
	_, err := NewValidator(t.TempDir(), nil).Validate()
	assert.ErrorContains(t, err, "deck.toml not found")
}

func TestUnparsableDeckToml(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "deck.toml", "[deck\n")

	_, err := NewValidator(root, nil).Validate()
	assert.ErrorContains(t, err, "error parsing deck.toml")
}

func TestRequiredDeckFields(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "deck.toml", "[deck]\nschema_version = \"2.0\"\n")

	results, err := NewValidator(root, nil).Validate()
	require.NoError(t, err)
	assert.False(t, results.Valid())
	assert.Contains(t, results.Errors, "deck.id is required in deck.toml")
	assert.Contains(t, results.Errors, "deck.name is required in deck.toml")
	assert.Contains(t, results.Errors, "deck.version is required in deck.toml")
	assert.Contains(t, results.Errors, "unsupported schema_version: 2.0 (supported: 1.0)")
}

func TestMinimalDeckWarnsButLoads(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "deck.toml", `
[deck]
id = "plain"
name = "Plain"
version = "0.1.0"
schema_version = "1.0"
`)

	results, err := NewValidator(root, nil).Validate()
	require.NoError(t, err)
	assert.True(t, results.Valid(), results.Errors)
	assert.Contains(t, results.Warnings, "names/en.toml not found, default names will be used")
	assert.Contains(t, results.Warnings, "meanings.toml not found, cards will have no descriptions")
	assert.True(t, containsMessage(results.Warnings, "no image directories found"))
}

func TestMissingNamesAndMeanings(t *testing.T) {
	root := copyEmbeddedDeck(t)
	writeFile(t, root, "names/ko.toml", `
[major_arcana]
"00" = "바보"
"22" = "없음"

[minor_arcana.coins]
ace = "?"
`)
	writeFile(t, root, "meanings.toml", `
[major_arcana."00"]
upright = "go"
reversed = "stop"

[suits.wands]
domain = "energy"

[ranks.ace]
upright = "Start"
reversed = "Stall"
`)

	results, err := NewValidator(root, nil).Validate()
	require.NoError(t, err)

	assert.True(t, containsMessage(results.Errors, "missing major arcana in meanings.toml: 01, 02"))
	assert.True(t, containsMessage(results.Warnings, "missing major arcana in ko.toml names: 01"))
	assert.True(t, containsMessage(results.Warnings, "missing wands in ko.toml names: ace"))
	assert.True(t, containsMessage(results.Warnings, "unknown card keys in names/ko.toml: major_arcana.22, minor_arcana.coins"))
	assert.True(t, containsMessage(results.Warnings, "missing wands in meanings.toml minor: two"))
	assert.True(t, containsMessage(results.Warnings, "missing cups in meanings.toml minor: ace"))
	// A deck with errors is not loaded.
	assert.False(t, containsMessage(results.Errors, "deck does not load"))
}

func TestBrokenNamesFile(t *testing.T) {
	root := copyEmbeddedDeck(t)
	writeFile(t, root, "names/en.toml", "[major_arcana\n")

	results, err := NewValidator(root, nil).Validate()
	require.NoError(t, err)
	assert.True(t, containsMessage(results.Errors, "error parsing language file names/en.toml"))
}

func TestImageCoverage(t *testing.T) {
	root := copyEmbeddedDeck(t)
	writeFile(t, root, "h750/major_arcana/00.png", "png")
	writeFile(t, root, "h750/minor_arcana/cups/ace.jpg", "jpg")

	results, err := NewValidator(root, nil).Validate()
	require.NoError(t, err)
	assert.True(t, results.Valid(), results.Errors)
	assert.True(t, containsMessage(results.Warnings, "missing major arcana in h750 images: 01, 02"))
	assert.True(t, containsMessage(results.Warnings, "missing cups in h750 images: two"))
	assert.False(t, containsMessage(results.Warnings, "missing cups in h750 images: ace"))
}

func TestSameLocalesWarn(t *testing.T) {
	root := copyEmbeddedDeck(t)
	data, err := os.ReadFile(filepath.Join(root, "deck.toml"))
	require.NoError(t, err)
	writeFile(t, root, "deck.toml", strings.Replace(string(data), `secondary = "ko"`, `secondary = "en"`, 1))

	results, err := NewValidator(root, nil).Validate()
	require.NoError(t, err)
	assert.Contains(t, results.Warnings, `locales.primary and locales.secondary are both "en"`)
}
