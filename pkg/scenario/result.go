package scenario

import "time"

// Result is the outcome of running one scenario
type Result struct {
	Scenario    string          `json:"scenario"`
	Description string          `json:"description,omitempty"`
	Source      string          `json:"source,omitempty"`
	Variants    []VariantResult `json:"variants"`
}

// VariantResult is the outcome of one variant of a scenario
type VariantResult struct {
	Name     string        `json:"name"`
	Global   bool          `json:"global"`
	Args     bool          `json:"args"`
	Steps    []StepResult  `json:"steps"`
	Duration time.Duration `json:"duration_ns"`
}

// StepResult is the outcome of one step
type StepResult struct {
	Index    int      `json:"index"`
	Op       string   `json:"op"`
	Label    string   `json:"label"`
	Failures []string `json:"failures,omitempty"`
}

// Passed reports whether the step met all expectations
func (s StepResult) Passed() bool { return len(s.Failures) == 0 }

// Passed reports whether every step passed
func (v VariantResult) Passed() bool {
	for _, s := range v.Steps {
		if !s.Passed() {
			return false
		}
	}
	return true
}

// FailedSteps returns the steps with failures
func (v VariantResult) FailedSteps() []StepResult {
	var failed []StepResult
	for _, s := range v.Steps {
		if !s.Passed() {
			failed = append(failed, s)
		}
	}
	return failed
}

// Passed reports whether every variant passed
func (r *Result) Passed() bool {
	return r.FailedVariants() == 0
}

// FailedVariants counts the variants with at least one failing step
func (r *Result) FailedVariants() int {
	n := 0
	for _, v := range r.Variants {
		if !v.Passed() {
			n++
		}
	}
	return n
}

// Summary totals a set of results
type Summary struct {
	Scenarios       int `json:"scenarios"`
	FailedScenarios int `json:"failed_scenarios"`
	Variants        int `json:"variants"`
	FailedVariants  int `json:"failed_variants"`
	Steps           int `json:"steps"`
	FailedSteps     int `json:"failed_steps"`
}

// Passed reports whether nothing failed
func (s Summary) Passed() bool { return s.FailedScenarios == 0 }

// Summarize totals the results
func Summarize(results []*Result) Summary {
	var s Summary
	for _, r := range results {
		s.Scenarios++
		if !r.Passed() {
			s.FailedScenarios++
		}
		for _, v := range r.Variants {
			s.Variants++
			if !v.Passed() {
				s.FailedVariants++
			}
			s.Steps += len(v.Steps)
			s.FailedSteps += len(v.FailedSteps())
		}
	}
	return s
}
