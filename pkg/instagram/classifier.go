package instagram

import (
	"fmt"
	"strings"

	"igcleaner/pkg/browser"
)

// StyleMarkerClassifier tells outgoing messages apart by markup: the bubble
// holding a message's like affordance is preceded by a spacer whose inline
// style carries a padding token only rendered on the sender's side.
type StyleMarkerClassifier struct {
	Marker string
}

// NewStyleMarkerClassifier creates a classifier looking for marker in the spacer style
func NewStyleMarkerClassifier(marker string) *StyleMarkerClassifier {
	return &StyleMarkerClassifier{Marker: marker}
}

// IsOutgoing reports whether the message owning likeButton was sent by the
// logged-in account. A missing parent or sibling means incoming.
func (c *StyleMarkerClassifier) IsOutgoing(likeButton browser.Element) (bool, error) {
	if c.Marker == "" {
		return false, nil
	}

	parent, err := likeButton.Parent()
	if err != nil {
		return false, fmt.Errorf("locate message bubble: %w", err)
	}
	if parent == nil {
		return false, nil
	}

	sibling, err := parent.PrecedingSibling()
	if err != nil {
		return false, fmt.Errorf("locate bubble spacer: %w", err)
	}
	if sibling == nil {
		return false, nil
	}

	style, err := sibling.Attribute("style")
	if err != nil {
		return false, fmt.Errorf("read spacer style: %w", err)
	}
	return strings.Contains(style, c.Marker), nil
}
