package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/groepsplan/internal/experiments"
	"github.com/jonathan/groepsplan/internal/prompts"
)

func TestBuildPrompt(t *testing.T) {
	in := *scratchInputs()
	base := prompts.BuildScratchPrompt(in)

	t.Run("no experiment", func(t *testing.T) {
		p, err := BuildPrompt(in, "", "")
		require.NoError(t, err)
		assert.Equal(t, Prompt{Text: base}, p)
	})

	t.Run("named variant", func(t *testing.T) {
		p, err := BuildPrompt(in, "prompt-structure", "control")
		require.NoError(t, err)
		assert.Equal(t, "prompt-structure", p.Experiment)
		assert.Equal(t, "control", p.Variant)
		assert.Contains(t, p.Text, base)
	})

	t.Run("assigned variant", func(t *testing.T) {
		want, err := experiments.SelectVariant("prompt-tone", in.SubjectKey())
		require.NoError(t, err)

		p, err := BuildPrompt(in, "prompt-tone", "")
		require.NoError(t, err)
		assert.Equal(t, want.Name, p.Variant)
		assert.Contains(t, p.Text, base)
	})

	t.Run("variant without experiment", func(t *testing.T) {
		_, err := BuildPrompt(in, "", "control")
		assert.ErrorIs(t, err, experiments.ErrUnknownExperiment)
	})

	t.Run("unknown experiment", func(t *testing.T) {
		_, err := BuildPrompt(in, "missing", "")
		assert.ErrorIs(t, err, experiments.ErrUnknownExperiment)
	})
}
