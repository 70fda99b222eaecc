package instagram

import (
	"strings"

	"igcleaner/pkg/config"
)

// IsInbox reports whether url points at the Direct inbox
func IsInbox(url, marker string) bool {
	return marker != "" && strings.Contains(url, marker)
}

// selectorQuoter escapes a label for a double-quoted selector string. Only
// backslash and double quote are special; every other rune, invisible ones
// included, must reach the selector unchanged.
var selectorQuoter = strings.NewReplacer(`\`, `\\`, `"`, `\"`)

// TextIsSelector builds a selector matching an element whose whole text is
// exactly label
func TextIsSelector(label string) string {
	return `:text-is("` + selectorQuoter.Replace(label) + `")`
}

// TitleSelector matches either a one-to-one conversation title or a group
// chat title, whichever the open conversation renders
func TitleSelector(s config.SelectorsConfig) string {
	var parts []string
	for _, sel := range []string{s.ConversationLink, s.GroupChatHeader} {
		if strings.TrimSpace(sel) != "" {
			parts = append(parts, sel)
		}
	}
	return strings.Join(parts, ", ")
}

// ConversationLabel extracts the label used to re-find an inbox row: the
// first line of the row's text
func ConversationLabel(rowText string) string {
	first, _, _ := strings.Cut(rowText, "\n")
	return strings.TrimSpace(first)
}

// SingleLine collapses multi-line element text for logging
func SingleLine(text string) string {
	return strings.Join(strings.Split(strings.TrimSpace(text), "\n"), " ")
}
