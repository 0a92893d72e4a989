package report

// KeyTerm pairs a piece of medical jargon with a patient-friendly
// definition.
type KeyTerm struct {
	Term       string `json:"term"`
	Definition string `json:"definition"`
}

// Simplified is the structured result of one simplification request.
// A new request replaces the previous result entirely.
type Simplified struct {
	Summary     string    `json:"summary"`
	KeyTerms    []KeyTerm `json:"keyTerms"`
	ActionItems []string  `json:"actionItems"`
}
