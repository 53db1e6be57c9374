package types

// Compliance dimension names. These are the fixed keys of ComplianceResult.Checks.
const (
	CheckBeginsituatie     = "beginsituatie"
	CheckSmartiDoelen      = "smartiDoelen"
	CheckInterventies      = "interventies"
	CheckEvaluatie         = "evaluatie"
	CheckBetrokkenen       = "betrokkenen"
	CheckHandelingsgericht = "handelingsgericht"
)

// ComplianceDimensions lists the dimensions in the order they are evaluated and reported.
var ComplianceDimensions = []string{
	CheckBeginsituatie,
	CheckSmartiDoelen,
	CheckInterventies,
	CheckEvaluatie,
	CheckBetrokkenen,
	CheckHandelingsgericht,
}

// Severity of a compliance finding.
type Severity string

// Severity constants
const (
	SeverityMinor    Severity = "minor"
	SeverityMajor    Severity = "major"
	SeverityCritical Severity = "critical"
)

// Grade is the quality gradation of a compliance dimension.
type Grade string

// Grade constants
const (
	GradeGood     Grade = "good"
	GradeAdequate Grade = "adequate"
	GradePoor     Grade = "poor"
	GradeMissing  Grade = "missing"
)

// Passed reports whether the grade counts as present.
func (g Grade) Passed() bool {
	return g == GradeGood || g == GradeAdequate || g == GradePoor
}

// Finding is a single compliance warning or error.
type Finding struct {
	Severity Severity `json:"severity"`
	Section  string   `json:"section"`
	Message  string   `json:"message"`
}

// ComplianceResult is the outcome of validating a document against the inspection dimensions.
type ComplianceResult struct {
	Overall        int              `json:"overall"`
	Checks         map[string]bool  `json:"checks"`
	Details        map[string]Grade `json:"details,omitempty"`
	Warnings       []Finding        `json:"warnings"`
	Errors         []Finding        `json:"errors"`
	InspectieProof bool             `json:"inspectieProof"`
}

// PassedCount returns the number of dimensions that passed.
func (c ComplianceResult) PassedCount() int {
	n := 0
	for _, ok := range c.Checks {
		if ok {
			n++
		}
	}
	return n
}
