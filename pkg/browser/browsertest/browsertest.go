// Package browsertest provides in-memory implementations of browser.Page and
// browser.Element for tests. Pages map selectors to elements explicitly; there
// is no DOM and no selector engine beyond splitting "a, b" selector lists.
package browsertest

import (
	"strings"
	"sync"
	"time"

	"igcleaner/pkg/browser"
	errs "igcleaner/pkg/errors"
)

// Element is a scripted DOM node
type Element struct {
	Name    string
	Content string
	Attrs   map[string]string
	Hidden  bool

	ParentElement *Element
	Previous      *Element
	Children      map[string]*Element

	// Err is returned by every interaction (text, hover, click, ...) when set
	Err error
	// TextErr is returned by Text only
	TextErr error

	OnClick func() error
	OnHover func() error

	Clicks  int
	Hovers  int
	Scrolls int
}

// NewElement creates a visible element with the given text
func NewElement(name, content string) *Element {
	return &Element{Name: name, Content: content, Attrs: map[string]string{}, Children: map[string]*Element{}}
}

// WithChild registers child as the result of Query(selector) and returns e
func (e *Element) WithChild(selector string, child *Element) *Element {
	if e.Children == nil {
		e.Children = map[string]*Element{}
	}
	e.Children[selector] = child
	return e
}

func (e *Element) Query(selector string) (browser.Element, error) {
	if e.Err != nil {
		return nil, e.Err
	}
	return asElement(e.Children[selector]), nil
}

func (e *Element) Parent() (browser.Element, error) {
	if e.Err != nil {
		return nil, e.Err
	}
	return asElement(e.ParentElement), nil
}

func (e *Element) PrecedingSibling() (browser.Element, error) {
	if e.Err != nil {
		return nil, e.Err
	}
	return asElement(e.Previous), nil
}

func (e *Element) Attribute(name string) (string, error) {
	if e.Err != nil {
		return "", e.Err
	}
	return e.Attrs[name], nil
}

func (e *Element) Text() (string, error) {
	if e.TextErr != nil {
		return "", e.TextErr
	}
	if e.Err != nil {
		return "", e.Err
	}
	return e.Content, nil
}

func (e *Element) ScrollIntoView() error {
	if e.Err != nil {
		return e.Err
	}
	e.Scrolls++
	return nil
}

func (e *Element) Hover() error {
	if e.Err != nil {
		return e.Err
	}
	e.Hovers++
	if e.OnHover != nil {
		return e.OnHover()
	}
	return nil
}

func (e *Element) Click() error {
	if e.Err != nil {
		return e.Err
	}
	e.Clicks++
	if e.OnClick != nil {
		return e.OnClick()
	}
	return nil
}

func (e *Element) Visible() (bool, error) {
	if e.Err != nil {
		return false, e.Err
	}
	return !e.Hidden, nil
}

func asElement(e *Element) browser.Element {
	if e == nil {
		return nil
	}
	return e
}

// Page is a scripted browser tab. Hooks run after the call is recorded.
type Page struct {
	mu       sync.Mutex
	url      string
	elements map[string][]*Element

	Visits  []string
	GoBacks int
	Clicks  []string
	Keys    []string
	Pauses  []time.Duration

	OnGoto   func(url string) error
	OnGoBack func() error
	OnClick  func(selector string) error
	OnPress  func(key string) error
}

// NewPage creates a page at url with no elements
func NewPage(url string) *Page {
	return &Page{url: url, elements: map[string][]*Element{}}
}

// Set replaces the elements matched by selector
func (p *Page) Set(selector string, elements ...*Element) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.elements[selector] = elements
}

// Clear removes every element matched by selector
func (p *Page) Clear(selector string) {
	p.Set(selector)
}

// Remove drops one element from the matches of selector
func (p *Page) Remove(selector string, target *Element) {
	p.mu.Lock()
	defer p.mu.Unlock()
	kept := p.elements[selector][:0:0]
	for _, el := range p.elements[selector] {
		if el != target {
			kept = append(kept, el)
		}
	}
	p.elements[selector] = kept
}

// SetURL moves the page without recording a visit
func (p *Page) SetURL(url string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.url = url
}

func (p *Page) lookup(selector string) []*Element {
	p.mu.Lock()
	defer p.mu.Unlock()
	if els, ok := p.elements[selector]; ok {
		return append([]*Element(nil), els...)
	}
	var matches []*Element
	for _, part := range strings.Split(selector, ",") {
		matches = append(matches, p.elements[strings.TrimSpace(part)]...)
	}
	return matches
}

func (p *Page) firstVisible(selector string) *Element {
	for _, el := range p.lookup(selector) {
		if !el.Hidden {
			return el
		}
	}
	return nil
}

func (p *Page) Goto(url string) error {
	p.mu.Lock()
	p.Visits = append(p.Visits, url)
	p.url = url
	p.mu.Unlock()
	if p.OnGoto != nil {
		return p.OnGoto(url)
	}
	return nil
}

func (p *Page) GoBack() error {
	p.mu.Lock()
	p.GoBacks++
	p.mu.Unlock()
	if p.OnGoBack != nil {
		return p.OnGoBack()
	}
	return nil
}

func (p *Page) URL() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.url
}

// WaitFor returns the first visible match immediately or a timeout error
func (p *Page) WaitFor(selector string, timeout time.Duration) (browser.Element, error) {
	if el := p.firstVisible(selector); el != nil {
		return el, nil
	}
	return nil, errs.Timeout("wait", selector, nil)
}

func (p *Page) Query(selector string) (browser.Element, error) {
	if els := p.lookup(selector); len(els) > 0 {
		return els[0], nil
	}
	return nil, nil
}

func (p *Page) QueryAll(selector string) ([]browser.Element, error) {
	els := p.lookup(selector)
	out := make([]browser.Element, 0, len(els))
	for _, el := range els {
		out = append(out, el)
	}
	return out, nil
}

// Click fails with a timeout when no visible element matches selector
func (p *Page) Click(selector string, timeout time.Duration) error {
	el := p.firstVisible(selector)
	if el == nil {
		return errs.Timeout("click", selector, nil)
	}
	if el.Err != nil {
		return el.Err
	}
	p.mu.Lock()
	p.Clicks = append(p.Clicks, selector)
	p.mu.Unlock()
	el.Clicks++
	if p.OnClick != nil {
		return p.OnClick(selector)
	}
	return nil
}

func (p *Page) Press(key string) error {
	p.mu.Lock()
	p.Keys = append(p.Keys, key)
	p.mu.Unlock()
	if p.OnPress != nil {
		return p.OnPress(key)
	}
	return nil
}

func (p *Page) Pause(d time.Duration) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.Pauses = append(p.Pauses, d)
}

// ClickCount returns how many times selector was clicked through the page
func (p *Page) ClickCount(selector string) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	n := 0
	for _, s := range p.Clicks {
		if s == selector {
			n++
		}
	}
	return n
}
