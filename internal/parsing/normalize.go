package parsing

import (
	"strings"
	"unicode"

	"github.com/jonathan/groepsplan/internal/types"
)

// vakgebiedNormalizations maps common subject spellings in documents to canonical keys
var vakgebiedNormalizations = map[string]types.Vakgebied{
	"rekenen":                    types.VakRekenen,
	"rekenen-wiskunde":           types.VakRekenen,
	"rekenen/wiskunde":           types.VakRekenen,
	"rekenen en wiskunde":        types.VakRekenen,
	"wiskunde":                   types.VakRekenen,
	"taal":                       types.VakTaal,
	"nederlandse taal":           types.VakTaal,
	"taalonderwijs":              types.VakTaal,
	"spelling":                   types.VakSpelling,
	"spellen":                    types.VakSpelling,
	"begrijpend lezen":           types.VakBegrijpendLezen,
	"begrijpend_lezen":           types.VakBegrijpendLezen,
	"bl":                         types.VakBegrijpendLezen,
	"technisch lezen":            types.VakTechnischLezen,
	"technisch_lezen":            types.VakTechnischLezen,
	"tl":                         types.VakTechnischLezen,
	"voortgezet technisch lezen": types.VakTechnischLezen,
}

// NormalizeVakgebied maps a free-text subject name to a known subject key.
// The second return value is false when the name is not recognized.
func NormalizeVakgebied(name string) (types.Vakgebied, bool) {
	lower := strings.ToLower(strings.TrimSpace(name))
	if lower == "" {
		return "", false
	}
	if v, ok := vakgebiedNormalizations[lower]; ok {
		return v, true
	}
	// "Rekenen (Pluspunt)" and similar: try the leading word group before punctuation
	if i := strings.IndexAny(lower, "(,;:"); i > 0 {
		return NormalizeVakgebied(lower[:i])
	}
	return "", false
}

// diacritics folds the accented letters that occur in Dutch headings
var diacritics = strings.NewReplacer(
	"á", "a", "à", "a", "ä", "a", "â", "a",
	"é", "e", "è", "e", "ë", "e", "ê", "e",
	"í", "i", "ì", "i", "ï", "i", "î", "i",
	"ó", "o", "ò", "o", "ö", "o", "ô", "o",
	"ú", "u", "ù", "u", "ü", "u", "û", "u",
	"ĳ", "ij",
)

// Slugify turns a heading title into a lowercase, dash-separated identifier
func Slugify(title string) string {
	lower := diacritics.Replace(strings.ToLower(title))

	var sb strings.Builder
	dash := false
	for _, r := range lower {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			if dash && sb.Len() > 0 {
				sb.WriteByte('-')
			}
			sb.WriteRune(r)
			dash = false
			continue
		}
		dash = true
	}
	return sb.String()
}

// cleanTitle strips inline emphasis markers from a heading title
func cleanTitle(title string) string {
	title = strings.ReplaceAll(title, "**", "")
	title = strings.ReplaceAll(title, "__", "")
	return strings.TrimSpace(title)
}
