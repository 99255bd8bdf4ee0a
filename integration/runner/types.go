package runner

import (
	"time"

	"github.com/google/uuid"
)

// Step actions
const (
	ActionAttempt = "attempt"
	ActionAdvance = "advance"
	ActionCipher  = "cipher"
	// ActionReset starts the suite over with a fresh progress session
	ActionReset = "reset"
)

// TestSuite defines a complete integration test scenario
// Can either be a regular test with Steps, or a suite that references other Cases
type TestSuite struct {
	Name  string     `json:"name"`
	Steps []TestStep `json:"steps,omitempty"` // Used for regular tests
	Cases []string   `json:"cases,omitempty"` // Used for suite tests (list of case files)
}

// IsSequence returns true if this is a suite that sequences other cases
func (ts *TestSuite) IsSequence() bool {
	return len(ts.Cases) > 0
}

// TestStep is one request against the API and its expected outcome.
type TestStep struct {
	Name   string `json:"name,omitempty"`
	Action string `json:"action"`

	// attempt and advance
	Chapter int    `json:"chapter,omitempty"`
	Answer  string `json:"answer,omitempty"`
	Event   string `json:"event,omitempty"`

	// cipher
	Cipher    string `json:"cipher,omitempty"`
	Operation string `json:"operation,omitempty"`
	Text      string `json:"text,omitempty"`
	Key       string `json:"key,omitempty"`

	Expectations Expectations `json:"expect"`
}

// Expectations defines what to check after a test step executes
type Expectations struct {
	Status *int `json:"status,omitempty"` // Defaults to 200

	// Attempt response
	Correct     *bool   `json:"correct,omitempty"`
	Unlocked    *string `json:"unlocked,omitempty"` // "" asserts nothing was newly unlocked
	NextChapter *int    `json:"next_chapter,omitempty"`
	Hint        *string `json:"hint,omitempty"`

	// Cipher response
	Result *string `json:"result,omitempty"`
	Valid  *bool   `json:"valid,omitempty"`

	// Stored progress after the step
	Phase           *string  `json:"phase,omitempty"`            // phase of the step's chapter
	UnlockedCiphers []string `json:"unlocked_ciphers,omitempty"` // order independent

	ResponseContains []string `json:"response_contains,omitempty"`
}

// TestResult contains the outcome of running a test step
type TestResult struct {
	TestName     string
	StepName     string
	Success      bool
	Error        error
	Duration     time.Duration
	ResponseText string
	IsReset      bool // True if this was a reset step (should not count toward pass/fail metrics)
}

// TestJob represents a test suite to be executed
type TestJob struct {
	Name     string
	Suite    TestSuite
	CaseFile string
}

// TestRunResult contains the results of running an entire test suite
type TestRunResult struct {
	Job      TestJob
	Results  []TestResult
	Error    error
	Duration time.Duration
	Progress uuid.UUID // ID of the progress session used for this test
}
