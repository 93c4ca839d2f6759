package harness

// Result is the outcome of a scenario run.
type Result struct {
	// Pass is true when the round trip and every assertion held.
	Pass bool `json:"pass"`

	// Data holds the marshalled file.
	Data []byte `json:"-"`

	// Errors contains failure messages. Empty if Pass is true.
	Errors []string `json:"errors,omitempty"`
}

// NewResult creates a passing result for data.
func NewResult(data []byte) *Result {
	return &Result{
		Pass:   true,
		Data:   data,
		Errors: []string{},
	}
}

// AddError adds a failure message and marks the result as failed.
func (r *Result) AddError(err string) {
	r.Errors = append(r.Errors, err)
	r.Pass = false
}
