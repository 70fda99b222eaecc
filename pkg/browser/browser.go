package browser

import "time"

// Element is a handle to a rendered DOM node. Handles are invalidated by
// navigation and re-renders; callers should not keep them across either.
type Element interface {
	// Query returns the first descendant matching selector, or nil when there is none.
	// Selectors prefixed with "xpath=" are evaluated relative to the element.
	Query(selector string) (Element, error)

	// Parent returns the element's parent node, or nil at the root
	Parent() (Element, error)

	// PrecedingSibling returns the element immediately before this one, or nil
	PrecedingSibling() (Element, error)

	// Attribute returns the attribute value, or "" when it is not set
	Attribute(name string) (string, error)

	Text() (string, error)
	ScrollIntoView() error
	Hover() error
	Click() error
	Visible() (bool, error)
}

// Page is the single browser tab the cleaner drives
type Page interface {
	Goto(url string) error
	GoBack() error
	URL() string

	// WaitFor blocks until an element matching selector is visible or timeout elapses
	WaitFor(selector string, timeout time.Duration) (Element, error)

	// Query returns the first element matching selector, or nil when there is none
	Query(selector string) (Element, error)
	QueryAll(selector string) ([]Element, error)

	// Click waits up to timeout for selector and clicks it
	Click(selector string, timeout time.Duration) error

	// Press sends a single key, e.g. "Escape" or "Home"
	Press(key string) error

	// Pause waits for a fixed delay
	Pause(d time.Duration)
}

// Session owns the browser process and its persistent profile
type Session interface {
	Page() Page
	Close() error
}
