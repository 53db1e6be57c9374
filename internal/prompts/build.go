package prompts

import (
	"fmt"

	"github.com/jonathan/groepsplan/internal/types"
)

// Inputs is implemented by the input shapes a prompt can be built from:
// types.ScratchInputs and types.UploadPromptInputs.
type Inputs interface {
	SubjectKey() string
}

// Build dispatches to the builder that matches the shape of in.
func Build(in Inputs) string {
	switch v := in.(type) {
	case types.ScratchInputs:
		return BuildScratchPrompt(v)
	case *types.ScratchInputs:
		return BuildScratchPrompt(*v)
	case types.UploadPromptInputs:
		return BuildUploadPrompt(v)
	case *types.UploadPromptInputs:
		return BuildUploadPrompt(*v)
	default:
		panic(fmt.Sprintf("prompts: unsupported inputs %T", in))
	}
}

// CorrectionSuffix returns the corrective directive appended when a generated draft is rejected.
// reason is "incomplete" or "language".
func CorrectionSuffix(reason string) string {
	return MustGet("regenerate-" + reason)
}
