// Package prompts builds the generation prompts for the scratch and upload flows.
// Prompt fragments live in groepsplan.json, embedded at compile time.
package prompts

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"sync"
)

//go:embed groepsplan.json
var templateData []byte

var (
	loadOnce  sync.Once
	templates map[string]string
	loadErr   error
)

func load() (map[string]string, error) {
	loadOnce.Do(func() {
		if err := json.Unmarshal(templateData, &templates); err != nil {
			loadErr = fmt.Errorf("failed to parse prompt templates: %w", err)
		}
	})
	return templates, loadErr
}

// Get returns the prompt fragment stored under key.
func Get(key string) (string, error) {
	all, err := load()
	if err != nil {
		return "", err
	}
	fragment, ok := all[key]
	if !ok {
		return "", fmt.Errorf("prompt key %q not found", key)
	}
	return fragment, nil
}

// MustGet is Get for fragments the builders cannot do without. It panics on a missing key.
func MustGet(key string) string {
	fragment, err := Get(key)
	if err != nil {
		panic(fmt.Sprintf("failed to load prompt: %v", err))
	}
	return fragment
}

// Format replaces placeholders of the form {{.Key}} with values from data.
// Substitution is a single pass, so placeholders inside values are left as they are.
func Format(template string, data map[string]string) string {
	if len(data) == 0 {
		return template
	}
	keys := make([]string, 0, len(data))
	for key := range data {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	pairs := make([]string, 0, len(keys)*2)
	for _, key := range keys {
		pairs = append(pairs, "{{."+key+"}}", data[key])
	}
	return strings.NewReplacer(pairs...).Replace(template)
}
