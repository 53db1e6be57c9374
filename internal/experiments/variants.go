package experiments

import (
	"fmt"

	"github.com/jonathan/groepsplan/internal/types"
)

// Decoration is the text a variant places around the base prompt.
type Decoration struct {
	Before string
	After  string
}

type decorator func(in any) Decoration

// decorators maps variant names to their transformation.
var decorators = map[string]decorator{
	"control": func(any) Decoration { return Decoration{} },

	"warm_collegiaal": func(in any) Decoration {
		return Decoration{
			Before: fmt.Sprintf("Je schrijft voor een collega die %s lesgeeft. Gebruik een warme, collegiale toon "+
				"en spreek de leerkracht aan met 'je'.\n\n", audience(in)),
		}
	},
	"formeel_inspectie": func(any) Decoration {
		return Decoration{
			After: "\n\nHanteer een formele, zakelijke toon die aansluit bij het onderzoekskader van de inspectie " +
				"van het onderwijs. Vermijd spreektaal.",
		}
	},

	"beknopt": func(any) Decoration {
		return Decoration{
			After: "\n\nHoud het plan beknopt: maximaal 700 woorden, met per onderdeel hooguit vijf zinnen.",
		}
	},
	"uitgebreid": func(any) Decoration {
		return Decoration{
			After: "\n\nWerk elk onderdeel uitgebreid uit, minimaal 1200 woorden in totaal, met per subgroep " +
				"concrete voorbeelden uit de lessen.",
		}
	},

	"tabel": func(any) Decoration {
		return Decoration{
			After: "\n\nPresenteer de aanpak en interventies als markdown-tabel met de kolommen Subgroep, Doel, " +
				"Aanpak, Materiaal en Frequentie.",
		}
	},
	"stappenplan": func(in any) Decoration {
		return Decoration{
			After: fmt.Sprintf("\n\nBeschrijf de interventies als genummerd stappenplan per week voor %s, "+
				"zodat de leerkracht het direct kan uitvoeren.", audience(in)),
		}
	},
}

// audience names the group the plan is for, as far as the inputs tell.
func audience(in any) string {
	switch v := in.(type) {
	case types.ScratchInputs:
		return fmt.Sprintf("groep %d", v.Groep)
	case *types.ScratchInputs:
		return fmt.Sprintf("groep %d", v.Groep)
	case types.UploadPromptInputs:
		if v.Groep > 0 {
			return fmt.Sprintf("groep %d", v.Groep)
		}
	case *types.UploadPromptInputs:
		if v.Groep > 0 {
			return fmt.Sprintf("groep %d", v.Groep)
		}
	}
	return "deze groep"
}
