package report

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"igcleaner/pkg/logger"
	"igcleaner/pkg/storage"
)

// Version of the report file layout
const Version = 1

// FileTimeFormat is the timestamp layout used in report file names
const FileTimeFormat = "2006-01-02_15-04-05"

// SkipReason explains why a conversation was not cleaned
type SkipReason string

const (
	SkipFiltered    SkipReason = "filtered"
	SkipNotFound    SkipReason = "not_found"
	SkipNoClickable SkipReason = "no_clickable_parent"
)

// ConversationResult records what happened to one conversation
type ConversationResult struct {
	Label        string     `json:"label"`
	Index        int        `json:"index"`
	Title        string     `json:"title,omitempty"`
	Found        int        `json:"found"`
	Attempted    int        `json:"attempted"`
	Unsent       int        `json:"unsent"`
	Failed       int        `json:"failed"`
	WouldUnsend  int        `json:"would_unsend,omitempty"`
	ScrollPasses int        `json:"scroll_passes"`
	Truncated    bool       `json:"truncated,omitempty"`
	Skipped      SkipReason `json:"skipped,omitempty"`
	Error        string     `json:"error,omitempty"`
	StartedAt    time.Time  `json:"started_at"`
	FinishedAt   time.Time  `json:"finished_at"`
}

// NewConversationResult starts a result for the conversation at index
func NewConversationResult(label string, index int, started time.Time) *ConversationResult {
	return &ConversationResult{Label: label, Index: index, StartedAt: started}
}

// Duration returns how long the conversation took
func (r *ConversationResult) Duration() time.Duration {
	if r.FinishedAt.IsZero() {
		return 0
	}
	return r.FinishedAt.Sub(r.StartedAt)
}

// Status is a one-word description of the outcome
func (r *ConversationResult) Status() string {
	switch {
	case r.Error != "":
		return "failed"
	case r.Skipped != "":
		return "skipped"
	case r.Truncated:
		return "truncated"
	default:
		return "cleaned"
	}
}

// Summary is the outcome of one run
type Summary struct {
	Version       int                   `json:"version"`
	DryRun        bool                  `json:"dry_run"`
	StartedAt     time.Time             `json:"started_at"`
	FinishedAt    time.Time             `json:"finished_at"`
	Discovered    int                   `json:"discovered"`
	Conversations []*ConversationResult `json:"conversations"`
	Error         string                `json:"error,omitempty"`
}

// Totals aggregates the per-conversation counts of a Summary
type Totals struct {
	Conversations int `json:"conversations"`
	Cleaned       int `json:"cleaned"`
	Skipped       int `json:"skipped"`
	Failed        int `json:"failed"`
	Truncated     int `json:"truncated"`
	Found         int `json:"found"`
	Attempted     int `json:"attempted"`
	Unsent        int `json:"unsent"`
	FailedUnsends int `json:"failed_unsends"`
	WouldUnsend   int `json:"would_unsend"`
}

// NewSummary starts the summary of a run
func NewSummary(started time.Time, dryRun bool) *Summary {
	return &Summary{
		Version:       Version,
		DryRun:        dryRun,
		StartedAt:     started,
		Conversations: []*ConversationResult{},
	}
}

// Add appends a conversation result
func (s *Summary) Add(r *ConversationResult) {
	s.Conversations = append(s.Conversations, r)
}

// Finish stamps the end of the run and the error that ended it, if any
func (s *Summary) Finish(finished time.Time, err error) {
	s.FinishedAt = finished
	if err != nil {
		s.Error = err.Error()
	}
}

// Duration returns the run's wall time
func (s *Summary) Duration() time.Duration {
	if s.FinishedAt.IsZero() {
		return 0
	}
	return s.FinishedAt.Sub(s.StartedAt)
}

// Totals sums the per-conversation results
func (s *Summary) Totals() Totals {
	var t Totals
	for _, r := range s.Conversations {
		t.Conversations++
		switch r.Status() {
		case "failed":
			t.Failed++
		case "skipped":
			t.Skipped++
		case "truncated":
			t.Truncated++
			t.Cleaned++
		default:
			t.Cleaned++
		}
		t.Found += r.Found
		t.Attempted += r.Attempted
		t.Unsent += r.Unsent
		t.FailedUnsends += r.Failed
		t.WouldUnsend += r.WouldUnsend
	}
	return t
}

// Writer saves run summaries as JSON files
type Writer struct {
	store  *storage.Manager
	logger logger.Logger
}

// NewWriter creates a writer saving into dir
func NewWriter(dir string, log logger.Logger) (*Writer, error) {
	store, err := storage.NewManager(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare report directory: %w", err)
	}
	return &Writer{store: store, logger: log}, nil
}

// FileName returns the report file name for a run started at started
func FileName(started time.Time) string {
	return fmt.Sprintf("igcleaner_%s.json", started.Format(FileTimeFormat))
}

// availableName returns FileName(started), or the first numbered variant
// not already present, so two runs started in the same second keep both reports
func (w *Writer) availableName(started time.Time) string {
	name := FileName(started)
	for n := 2; w.store.Exists(name); n++ {
		name = fmt.Sprintf("igcleaner_%s_%d.json", started.Format(FileTimeFormat), n)
	}
	return name
}

// Save writes the summary atomically and returns the file path
func (w *Writer) Save(s *Summary) (string, error) {
	var buf bytes.Buffer
	encoder := json.NewEncoder(&buf)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(struct {
		*Summary
		Totals Totals `json:"totals"`
	}{s, s.Totals()}); err != nil {
		return "", fmt.Errorf("failed to encode report: %w", err)
	}

	path, err := w.store.Save(w.availableName(s.StartedAt), &buf)
	if err != nil {
		return "", fmt.Errorf("failed to save report: %w", err)
	}

	w.logger.InfoWithFields("Run report saved", map[string]interface{}{
		"path":          path,
		"conversations": len(s.Conversations),
	})

	return path, nil
}
