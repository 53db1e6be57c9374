// Package types provides type definitions for structured data used throughout the groepsplan generator.
//
//nolint:revive // types is a standard Go package name pattern
package types

// Vakgebied is the subject a plan is written for.
type Vakgebied string

// Vakgebied constants
const (
	VakRekenen         Vakgebied = "rekenen"
	VakTaal            Vakgebied = "taal"
	VakSpelling        Vakgebied = "spelling"
	VakBegrijpendLezen Vakgebied = "begrijpend_lezen"
	VakTechnischLezen  Vakgebied = "technisch_lezen"
)

// AllVakgebieden lists every supported subject in display order.
var AllVakgebieden = []Vakgebied{VakRekenen, VakTaal, VakSpelling, VakBegrijpendLezen, VakTechnischLezen}

// Valid reports whether v is a known subject.
func (v Vakgebied) Valid() bool {
	for _, known := range AllVakgebieden {
		if v == known {
			return true
		}
	}
	return false
}

// Label returns the Dutch display name of the subject.
func (v Vakgebied) Label() string {
	switch v {
	case VakRekenen:
		return "Rekenen"
	case VakTaal:
		return "Taal"
	case VakSpelling:
		return "Spelling"
	case VakBegrijpendLezen:
		return "Begrijpend lezen"
	case VakTechnischLezen:
		return "Technisch lezen"
	default:
		return string(v)
	}
}

// Challenge is the main pedagogical challenge of the group.
type Challenge string

// Challenge constants
const (
	ChallengeNiveauverschillen Challenge = "niveauverschillen"
	ChallengeTaalachterstand   Challenge = "taalachterstand"
	ChallengeGedrag            Challenge = "gedrag_en_concentratie"
	ChallengeMeerbegaafdheid   Challenge = "meerbegaafdheid"
	ChallengeMotivatie         Challenge = "motivatie"
	ChallengeDyslexie          Challenge = "dyslexie"
)

// AllChallenges lists every supported challenge key.
var AllChallenges = []Challenge{
	ChallengeNiveauverschillen, ChallengeTaalachterstand, ChallengeGedrag,
	ChallengeMeerbegaafdheid, ChallengeMotivatie, ChallengeDyslexie,
}

// Valid reports whether c is a known challenge key.
func (c Challenge) Valid() bool {
	for _, known := range AllChallenges {
		if c == known {
			return true
		}
	}
	return false
}

// StartingPoint describes where in the school year the plan starts.
type StartingPoint string

// StartingPoint constants
const (
	StartNieuwSchooljaar         StartingPoint = "nieuw_schooljaar"
	StartNaMiddentoets           StartingPoint = "na_middentoets"
	StartNaEindtoets             StartingPoint = "na_eindtoets"
	StartTussentijdseBijstelling StartingPoint = "tussentijdse_bijstelling"
)

// AllStartingPoints lists every supported starting point.
var AllStartingPoints = []StartingPoint{
	StartNieuwSchooljaar, StartNaMiddentoets, StartNaEindtoets, StartTussentijdseBijstelling,
}

// Valid reports whether p is a known starting point.
func (p StartingPoint) Valid() bool {
	for _, known := range AllStartingPoints {
		if p == known {
			return true
		}
	}
	return false
}

// Groepsindeling is the split of a class into ability tiers.
type Groepsindeling struct {
	Basis     int `json:"basis" validate:"min=0"`
	Intensief int `json:"intensief" validate:"min=0"`
	Meer      int `json:"meer" validate:"min=0"`
}

// Total returns the number of students across all tiers.
func (g Groepsindeling) Total() int {
	return g.Basis + g.Intensief + g.Meer
}

// ToetsScores holds the most recent assessment letter grade per tier.
type ToetsScores struct {
	Basis     string `json:"basis,omitempty" validate:"omitempty,oneof=A B C D E"`
	Intensief string `json:"intensief,omitempty" validate:"omitempty,oneof=A B C D E"`
	Meer      string `json:"meer,omitempty" validate:"omitempty,oneof=A B C D E"`
}

// ScratchInputs are the wizard answers for building a plan from scratch.
type ScratchInputs struct {
	Groep            int            `json:"groep" validate:"required,min=1,max=8"`
	Vakgebied        Vakgebied      `json:"vakgebied" validate:"required,vakgebied"`
	Challenge        Challenge      `json:"challenge" validate:"required,challenge"`
	AantalLeerlingen int            `json:"aantalLeerlingen" validate:"required,min=1"`
	Groepsindeling   Groepsindeling `json:"groepsindeling"`
	StartingPoint    StartingPoint  `json:"startingPoint" validate:"required,startingpoint"`
	ToetsScores      *ToetsScores   `json:"toetsScores,omitempty" validate:"omitempty"`
}

// SubjectKey identifies the inputs for deterministic experiment assignment.
func (in ScratchInputs) SubjectKey() string {
	return string(in.Vakgebied) + "/" + string(in.Challenge) + "/" + string(in.StartingPoint)
}

// UploadPromptInputs are the inputs for building a plan from a previously uploaded document.
type UploadPromptInputs struct {
	ExtractedText          string `json:"extracted_text" validate:"notblank"`
	Groep                  int    `json:"groep,omitempty" validate:"omitempty,min=1,max=8"`
	Vakgebied              string `json:"vakgebied,omitempty"`
	PreviousPeriode        string `json:"previous_periode,omitempty"`
	PreviousGroepsindeling string `json:"previous_groepsindeling,omitempty"`
	PreviousGoals          string `json:"previous_goals,omitempty"`
	PreviousResults        string `json:"previous_results,omitempty"`
	NewVakgebied           string `json:"new_vakgebied" validate:"notblank"`
	ChallengeDescription   string `json:"challenge_description" validate:"notblank"`
	UserModifications      string `json:"any_user_modifications,omitempty"`
}

// SubjectKey identifies the inputs for deterministic experiment assignment.
func (in UploadPromptInputs) SubjectKey() string {
	return in.NewVakgebied + "/" + in.ChallengeDescription
}
