package domain

// CaseBook is a named list of reference cases whose expected output must not drift.
type CaseBook struct {
	Name  string
	Cases []Case
}

// CaseBookRef is a lightweight listing entry.
type CaseBookRef struct {
	Name string
	Path string
}

// Case is one input plus what its reading must contain.
type Case struct {
	Name   string
	Person string // name analysed by the numerology calculator; empty skips it
	Birth  BirthInput
	Expect Expectation
}

// Expectation lists optional checks; nil/empty fields are not asserted.
type Expectation struct {
	Pillars       string // "己巳 丙子 甲申 甲子"
	Strongest     []Element
	Weakest       []Element
	Grids         map[Grid]int
	GridElements  map[Grid]Element
	BaziContains  []string
	NameContains  []string
	LowConfidence *bool
	// Fields maps a JSONPath into the reading's JSON form to its expected value.
	Fields map[string]string
}

// AssertionResult records one expectation check.
type AssertionResult struct {
	Name    string `json:"name"`
	Passed  bool   `json:"passed"`
	Message string `json:"message"`
}

// CaseResult is the outcome of one case.
type CaseResult struct {
	Name       string            `json:"name"`
	Pillars    string            `json:"pillars,omitempty"`
	Error      string            `json:"error,omitempty"`
	Assertions []AssertionResult `json:"assertions"`
}

// Failed reports whether the case errored or any assertion failed.
func (r CaseResult) Failed() bool {
	if r.Error != "" {
		return true
	}
	for _, a := range r.Assertions {
		if !a.Passed {
			return true
		}
	}
	return false
}

// VerifyResult is the outcome of a whole casebook.
type VerifyResult struct {
	CaseBook string       `json:"casebook"`
	Path     string       `json:"path"`
	Results  []CaseResult `json:"results"`
}

// Failures counts failed cases.
func (v VerifyResult) Failures() int {
	n := 0
	for _, r := range v.Results {
		if r.Failed() {
			n++
		}
	}
	return n
}
