package prompts

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGet(t *testing.T) {
	prompt, err := Get("scratch-preamble")
	require.NoError(t, err)
	assert.Contains(t, prompt, "groepsplan")

	_, err = Get("nonexistent-key")
	assert.ErrorContains(t, err, `prompt key "nonexistent-key" not found`)
}

func TestMustGet(t *testing.T) {
	assert.Panics(t, func() { MustGet("nonexistent-key") })
	assert.NotPanics(t, func() { assert.NotEmpty(t, MustGet("directive")) })
}

func TestTemplates_BuilderKeysPresent(t *testing.T) {
	keys := []string{
		"scratch-preamble", "scratch-framing", "scratch-challenge", "scratch-composition",
		"scratch-toets", "scratch-starting-point", "directive",
		"upload-preamble", "upload-previous", "upload-new",
		"regenerate-incomplete", "regenerate-language",
	}
	for _, key := range keys {
		t.Run(key, func(t *testing.T) {
			fragment, err := Get(key)
			require.NoError(t, err)
			assert.NotEmpty(t, fragment)
		})
	}
}

func TestTemplates_PlaceholdersWellFormed(t *testing.T) {
	all, err := load()
	require.NoError(t, err)

	placeholder := regexp.MustCompile(`\{\{[^}]*\}\}`)
	wellFormed := regexp.MustCompile(`^\{\{\.[A-Z][A-Za-z]*\}\}$`)
	for key, fragment := range all {
		for _, p := range placeholder.FindAllString(fragment, -1) {
			assert.Regexp(t, wellFormed, p, "placeholder in %s", key)
		}
	}
}

func TestFormat(t *testing.T) {
	tests := []struct {
		name     string
		template string
		data     map[string]string
		want     string
	}{
		{
			name:     "substitutes",
			template: "Groep {{.Groep}}, vakgebied {{.Vakgebied}}",
			data:     map[string]string{"Groep": "5", "Vakgebied": "Rekenen"},
			want:     "Groep 5, vakgebied Rekenen",
		},
		{
			name:     "values are not expanded",
			template: "{{.A}} en {{.B}}",
			data:     map[string]string{"A": "tekst met {{.B}}", "B": "b"},
			want:     "tekst met {{.B}} en b",
		},
		{
			name:     "no placeholders",
			template: "Geen velden",
			data:     map[string]string{"Key": "Value"},
			want:     "Geen velden",
		},
		{
			name:     "empty data leaves placeholder",
			template: "Hallo {{.Naam}}",
			data:     map[string]string{},
			want:     "Hallo {{.Naam}}",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Format(tt.template, tt.data))
		})
	}
}
