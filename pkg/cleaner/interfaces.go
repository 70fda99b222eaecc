package cleaner

import (
	"context"

	"igcleaner/pkg/browser"
	"igcleaner/pkg/report"
)

// Classifier decides whether a message was sent by the logged-in account.
// It receives the message's like affordance element.
type Classifier interface {
	IsOutgoing(message browser.Element) (bool, error)
}

// ClassifierFunc adapts a function to Classifier
type ClassifierFunc func(message browser.Element) (bool, error)

func (f ClassifierFunc) IsOutgoing(message browser.Element) (bool, error) {
	return f(message)
}

// Prompter blocks until the human confirms they have logged in
type Prompter interface {
	WaitForLogin(ctx context.Context, message string) error
}

// Progress receives per-conversation updates while the inbox is processed
type Progress interface {
	ConversationStarted(label string, index, total int)
	ConversationFinished(result *report.ConversationResult)
}

type noProgress struct{}

func (noProgress) ConversationStarted(string, int, int)            {}
func (noProgress) ConversationFinished(*report.ConversationResult) {}
