package types

// Quality check names, in reporting order.
const (
	QualityLength       = "length"
	QualityMickeyMouse  = "mickey_mouse"
	QualityLanguage     = "language"
	QualityCompleteness = "completeness"
)

// QualityCheckResult is the outcome of one named quality check.
type QualityCheckResult struct {
	Name   string `json:"name"`
	Passed bool   `json:"passed"`
	Detail string `json:"detail,omitempty"`
}

// FailedChecks returns the names of the checks that did not pass.
func FailedChecks(results []QualityCheckResult) []string {
	var failed []string
	for _, r := range results {
		if !r.Passed {
			failed = append(failed, r.Name)
		}
	}
	return failed
}
