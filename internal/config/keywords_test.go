package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultKeywords(t *testing.T) {
	kw := DefaultKeywords()

	require.Len(t, kw.Categories, 3)
	assert.Equal(t, "electrician", kw.Categories[0].Name)
	assert.Equal(t, "plumber", kw.Categories[1].Name)
	assert.Equal(t, "gas_fitter", kw.Categories[2].Name)
	assert.NotEmpty(t, kw.Exclusions)
	assert.NotEmpty(t, kw.LegalSuffixes)

	for _, cat := range kw.Categories {
		assert.NotEmpty(t, cat.Query, cat.Name)
		assert.NotEmpty(t, cat.LicenseType, cat.Name)
		assert.NotEmpty(t, cat.Specialties, cat.Name)
	}
}

func TestKeywords_Category(t *testing.T) {
	kw := DefaultKeywords()

	require.NotNil(t, kw.Category("plumber"))
	assert.Equal(t, "PL", kw.Category("plumber").LicenseType)
	assert.Nil(t, kw.Category("carpenter"))
}

func TestKeywords_LicenseTypes(t *testing.T) {
	got := DefaultKeywords().LicenseTypes()
	assert.Equal(t, map[string]string{
		"electrician": "EC",
		"plumber":     "PL",
		"gas_fitter":  "GF",
	}, got)
}

func TestLoadKeywords_EmptyPathUsesDefaults(t *testing.T) {
	kw, err := LoadKeywords("")
	require.NoError(t, err)
	assert.Len(t, kw.Categories, 3)
}

func TestLoadKeywords_File(t *testing.T) {
	doc := `categories:
  - name: carpenter
    query: carpenter
    display: Carpenter
    license_type: BC
    specialties: [Decking, Framing]
    relevant_tags: [carpenter]
exclusions: [warehouse]
legal_suffixes: [pty ltd, carpentry]
`
	path := filepath.Join(t.TempDir(), "keywords.yaml")
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))

	kw, err := LoadKeywords(path)
	require.NoError(t, err)
	require.Len(t, kw.Categories, 1)
	assert.Equal(t, "carpenter", kw.Categories[0].Name)
	assert.Equal(t, "BC", kw.Categories[0].LicenseType)
	assert.Equal(t, []string{"warehouse"}, kw.Exclusions)
}

func TestLoadKeywords_NoCategories(t *testing.T) {
	path := filepath.Join(t.TempDir(), "keywords.yaml")
	require.NoError(t, os.WriteFile(path, []byte("exclusions: [x]\n"), 0o644))

	_, err := LoadKeywords(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no categories")
}

func TestLoadKeywords_MissingFile(t *testing.T) {
	_, err := LoadKeywords(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}
