package sitestore

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/institutions-in-your-pocket/overview/internal/model"
)

func TestDefault(t *testing.T) {
	site, err := Default()
	require.NoError(t, err)

	assert.Equal(t, "Institutions in Your Pocket", site.Project.Name)
	require.Len(t, site.UseCases, 3)
	assert.Equal(t, "Citizen-facing land law guidance", site.UseCases[0].Title)
	assert.Equal(t, []string{"Citizens", "Rural & peri-urban", "Land"}, site.UseCases[0].Tags)
	assert.Len(t, site.Opportunities, 3)
	assert.Len(t, site.Process.Steps, 5)
	assert.Len(t, site.Process.Outcomes, 3)
	assert.Len(t, site.Requirements, 2)
	assert.Len(t, site.FAQ, 4)
	assert.Len(t, site.Contact.Emails, 2)
	assert.Equal(t, "Research approach", site.Sections.Principles.Title)
}

func TestLoad_EmptyPathIsDefault(t *testing.T) {
	a, err := Load("")
	require.NoError(t, err)
	b, err := Default()
	require.NoError(t, err)
	assert.Equal(t, b, a)
}

func TestLoad_YAMLAndJSON(t *testing.T) {
	dir := t.TempDir()

	yamlPath := filepath.Join(dir, "site.yml")
	require.NoError(t, os.WriteFile(yamlPath, []byte(`
project:
  name: Pilot
use_cases:
  - title: One
    tags: [a]
`), 0o644))

	jsonPath := filepath.Join(dir, "site.json")
	require.NoError(t, os.WriteFile(jsonPath, []byte(`{
  "project": {"name": "Pilot"},
  "use_cases": [{"title": "One", "tags": ["a"]}]
}`), 0o644))

	for _, p := range []string{yamlPath, jsonPath} {
		site, err := Load(p)
		require.NoError(t, err, p)
		assert.Equal(t, "Pilot", site.Project.Name)
		require.Len(t, site.UseCases, 1)
		assert.Equal(t, []string{"a"}, site.UseCases[0].Tags)
	}
}

func TestLoad_Errors(t *testing.T) {
	dir := t.TempDir()
	write := func(name, body string) string {
		p := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(p, []byte(body), 0o644))
		return p
	}

	tests := []struct {
		name      string
		path      string
		is        error
		errSubstr string
	}{
		{
			name: "unsupported extension",
			path: write("site.toml", "x = 1"),
			is:   ErrUnsupportedFormat,
		},
		{
			name:      "missing file",
			path:      filepath.Join(dir, "nope.yaml"),
			is:        os.ErrNotExist,
			errSubstr: "read file",
		},
		{
			name:      "unknown field",
			path:      write("typo.yaml", "project:\n  nmae: x\n"),
			errSubstr: "parse",
		},
		{
			name: "duplicate titles",
			path: write("dup.yaml", "project:\n  name: x\nuse_cases:\n  - title: A\n  - title: A\n"),
			is:   model.ErrInvalidContent,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(tt.path)
			require.Error(t, err)
			if tt.is != nil {
				assert.True(t, errors.Is(err, tt.is), "got %v", err)
			}
			if tt.errSubstr != "" {
				assert.Contains(t, err.Error(), tt.errSubstr)
			}
		})
	}
}

func TestSave_RoundTripsDefault(t *testing.T) {
	site, err := Default()
	require.NoError(t, err)

	p := filepath.Join(t.TempDir(), "nested", "site.yaml")
	require.NoError(t, Save(p, site, false))

	back, err := Load(p)
	require.NoError(t, err)
	assert.Equal(t, site, back)
}

func TestSave_RefusesOverwrite(t *testing.T) {
	site, err := Default()
	require.NoError(t, err)
	p := filepath.Join(t.TempDir(), "site.yaml")

	require.NoError(t, Save(p, site, false))
	err = Save(p, site, false)
	assert.True(t, errors.Is(err, ErrExists))

	require.NoError(t, Save(p, site, true))
}

func TestSave_OnlyYAML(t *testing.T) {
	site, err := Default()
	require.NoError(t, err)
	err = Save(filepath.Join(t.TempDir(), "site.json"), site, false)
	assert.True(t, errors.Is(err, ErrUnsupportedFormat))
}

