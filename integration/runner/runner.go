package runner

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jwebster45206/cipher-engine/pkg/progress"
)

type ErrorHandlingMode string

const ErrorHandlingExit ErrorHandlingMode = "exit"
const ErrorHandlingContinue ErrorHandlingMode = "continue"

// Runner executes integration tests against a running cipher-engine API
type Runner struct {
	BaseURL           string
	Client            *http.Client
	Timeout           time.Duration
	Logger            func(format string, args ...interface{})
	ErrorHandlingMode ErrorHandlingMode
}

// NewRunner creates a new test runner
func NewRunner(baseURL string) *Runner {
	return &Runner{
		BaseURL:           strings.TrimSuffix(baseURL, "/"),
		Client:            &http.Client{Timeout: 60 * time.Second},
		Timeout:           30 * time.Second,
		Logger:            func(string, ...interface{}) {},
		ErrorHandlingMode: ErrorHandlingContinue,
	}
}

// LoadTestSuite loads a test suite from a JSON file
func LoadTestSuite(filename string) (TestSuite, error) {
	content, err := os.ReadFile(filename)
	if err != nil {
		return TestSuite{}, fmt.Errorf("failed to read test file %s: %w", filename, err)
	}

	var suite TestSuite
	if err := json.Unmarshal(content, &suite); err != nil {
		return TestSuite{}, fmt.Errorf("failed to parse JSON in %s: %w", filename, err)
	}

	return suite, nil
}

// LoadTestSuiteWithExpansion loads a test suite and expands it if it's a sequence
// Returns a list of actual test suites (expanded from the sequence if needed)
func LoadTestSuiteWithExpansion(filename string, casesDir string) ([]TestJob, error) {
	suite, err := LoadTestSuite(filename)
	if err != nil {
		return nil, err
	}

	if !suite.IsSequence() {
		return []TestJob{{
			Name:     suite.Name,
			Suite:    suite,
			CaseFile: filename,
		}}, nil
	}

	var jobs []TestJob
	for _, caseFile := range suite.Cases {
		casePath := filepath.Join(casesDir, caseFile)

		// Recursively load (in case a sequence references another sequence)
		subJobs, err := LoadTestSuiteWithExpansion(casePath, casesDir)
		if err != nil {
			return nil, fmt.Errorf("failed to load case '%s' referenced by sequence '%s': %w", caseFile, suite.Name, err)
		}

		jobs = append(jobs, subJobs...)
	}

	return jobs, nil
}

// RunSuite executes a complete test suite against a fresh progress session
func (r *Runner) RunSuite(ctx context.Context, suite TestSuite) (TestRunResult, error) {
	start := time.Now()
	result := TestRunResult{
		Job: TestJob{
			Name:  suite.Name,
			Suite: suite,
		},
		Results: make([]TestResult, 0, len(suite.Steps)),
	}

	progressID, err := r.createProgress(ctx)
	if err != nil {
		result.Error = fmt.Errorf("failed to create progress: %w", err)
		result.Duration = time.Since(start)
		return result, result.Error
	}
	result.Progress = progressID

	for i, step := range suite.Steps {
		r.Logger("    [%d/%d] Running step: %s", i+1, len(suite.Steps), step.Name)

		stepCtx, cancel := context.WithTimeout(ctx, r.Timeout)
		stepResult := r.executeStep(stepCtx, &progressID, step)
		cancel()
		stepResult.TestName = suite.Name
		result.Results = append(result.Results, stepResult)

		if stepResult.Error != nil {
			r.Logger("    [%d/%d] ✗ %s: %v", i+1, len(suite.Steps), step.Name, stepResult.Error)
			if result.Error == nil {
				result.Error = fmt.Errorf("step %d (%s) failed: %w", i, step.Name, stepResult.Error)
			}
			if r.ErrorHandlingMode == ErrorHandlingExit {
				break
			}
			continue
		}

		r.Logger("    [%d/%d] ✓ %s (%v)", i+1, len(suite.Steps), step.Name, stepResult.Duration)
	}

	result.Progress = progressID
	result.Duration = time.Since(start)
	return result, result.Error
}

// executeStep performs one step. A reset step replaces *progressID.
func (r *Runner) executeStep(ctx context.Context, progressID *uuid.UUID, step TestStep) TestResult {
	start := time.Now()
	result := TestResult{StepName: step.Name}
	fail := func(err error) TestResult {
		result.Error = err
		result.Duration = time.Since(start)
		return result
	}

	var (
		path string
		body any
	)
	switch step.Action {
	case ActionReset:
		if err := r.do(ctx, http.MethodDelete, "/v1/progress/"+progressID.String(), nil, http.StatusNoContent, nil); err != nil {
			return fail(fmt.Errorf("failed to delete progress: %w", err))
		}
		id, err := r.createProgress(ctx)
		if err != nil {
			return fail(fmt.Errorf("failed to reset progress: %w", err))
		}
		*progressID = id
		result.Success = true
		result.IsReset = true
		result.ResponseText = "[PROGRESS RESET]"
		result.Duration = time.Since(start)
		return result
	case ActionAttempt:
		path = fmt.Sprintf("/v1/chapters/%d/attempt", step.Chapter)
		body = map[string]string{"progress_id": progressID.String(), "answer": step.Answer}
	case ActionAdvance:
		path = fmt.Sprintf("/v1/chapters/%d/advance", step.Chapter)
		body = map[string]string{"progress_id": progressID.String(), "event": step.Event}
	case ActionCipher:
		path = fmt.Sprintf("/v1/ciphers/%s/%s", step.Cipher, step.Operation)
		body = map[string]string{"text": step.Text, "key": step.Key}
	default:
		return fail(fmt.Errorf("unknown action %q", step.Action))
	}

	wantStatus := http.StatusOK
	if step.Expectations.Status != nil {
		wantStatus = *step.Expectations.Status
	}

	var raw json.RawMessage
	if err := r.do(ctx, http.MethodPost, path, body, wantStatus, &raw); err != nil {
		return fail(err)
	}
	result.ResponseText = string(raw)

	var p *progress.Progress
	if step.Expectations.Phase != nil || len(step.Expectations.UnlockedCiphers) > 0 {
		var err error
		p, err = r.getProgress(ctx, *progressID)
		if err != nil {
			return fail(err)
		}
	}

	if err := checkExpectations(step, raw, p); err != nil {
		return fail(fmt.Errorf("expectation failed: %w", err))
	}

	result.Success = true
	result.Duration = time.Since(start)
	return result
}

// createProgress starts a new session via POST /v1/progress
func (r *Runner) createProgress(ctx context.Context) (uuid.UUID, error) {
	var p progress.Progress
	if err := r.do(ctx, http.MethodPost, "/v1/progress", nil, http.StatusCreated, &p); err != nil {
		return uuid.Nil, err
	}
	return p.ID, nil
}

func (r *Runner) getProgress(ctx context.Context, id uuid.UUID) (*progress.Progress, error) {
	var p progress.Progress
	if err := r.do(ctx, http.MethodGet, "/v1/progress/"+id.String(), nil, http.StatusOK, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// do sends a JSON request and decodes the response into out when out is non-nil.
func (r *Runner) do(ctx context.Context, method, path string, body any, wantStatus int, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, r.BaseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to create %s request: %w", method, err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := r.Client.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s failed: %w", method, path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}
	if resp.StatusCode != wantStatus {
		return fmt.Errorf("%s %s returned %d (expected %d): %s", method, path, resp.StatusCode, wantStatus, string(respBody))
	}
	if out != nil && len(respBody) > 0 {
		if err := json.Unmarshal(respBody, out); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}
	return nil
}

// stepResponse is the union of the response fields expectations look at.
type stepResponse struct {
	Correct     bool   `json:"correct"`
	Unlocked    string `json:"unlocked"`
	NextChapter int    `json:"next_chapter"`
	Hint        string `json:"hint"`
	Result      string `json:"result"`
	Valid       bool   `json:"valid"`
}

// checkExpectations validates the step's expectations against the response and stored progress
func checkExpectations(step TestStep, raw json.RawMessage, p *progress.Progress) error {
	exp := step.Expectations

	var resp stepResponse
	if len(raw) > 0 && raw[0] == '{' {
		if err := json.Unmarshal(raw, &resp); err != nil {
			return fmt.Errorf("failed to decode step response: %w", err)
		}
	}

	if exp.Correct != nil && resp.Correct != *exp.Correct {
		return fmt.Errorf("expected correct=%t, got %t", *exp.Correct, resp.Correct)
	}
	if exp.Unlocked != nil && resp.Unlocked != *exp.Unlocked {
		return fmt.Errorf("expected unlocked %q, got %q", *exp.Unlocked, resp.Unlocked)
	}
	if exp.NextChapter != nil && resp.NextChapter != *exp.NextChapter {
		return fmt.Errorf("expected next_chapter %d, got %d", *exp.NextChapter, resp.NextChapter)
	}
	if exp.Hint != nil && resp.Hint != *exp.Hint {
		return fmt.Errorf("expected hint %q, got %q", *exp.Hint, resp.Hint)
	}
	if exp.Result != nil && resp.Result != *exp.Result {
		return fmt.Errorf("expected result %q, got %q", *exp.Result, resp.Result)
	}
	if exp.Valid != nil && resp.Valid != *exp.Valid {
		return fmt.Errorf("expected valid=%t, got %t", *exp.Valid, resp.Valid)
	}

	for _, want := range exp.ResponseContains {
		if !strings.Contains(strings.ToLower(string(raw)), strings.ToLower(want)) {
			return fmt.Errorf("expected response to contain '%s', but it didn't", want)
		}
	}

	if exp.Phase != nil {
		cp, ok := p.Chapters[step.Chapter]
		got := ""
		if ok {
			got = string(cp.Phase)
		}
		if got != *exp.Phase {
			return fmt.Errorf("expected chapter %d phase %q, got %q", step.Chapter, *exp.Phase, got)
		}
	}

	if len(exp.UnlockedCiphers) > 0 {
		got := make([]string, 0, len(p.Unlocked))
		for _, id := range p.Unlocked {
			got = append(got, string(id))
		}
		want := slices.Clone(exp.UnlockedCiphers)
		slices.Sort(got)
		slices.Sort(want)
		if !slices.Equal(got, want) {
			return fmt.Errorf("expected unlocked ciphers %v, got %v", exp.UnlockedCiphers, got)
		}
	}

	return nil
}
