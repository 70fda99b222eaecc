package browsertest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"igcleaner/pkg/browser"
	errs "igcleaner/pkg/errors"
)

var _ browser.Page = (*Page)(nil)
var _ browser.Element = (*Element)(nil)

func TestSelectorListLookup(t *testing.T) {
	p := NewPage("https://example.test/")
	link := NewElement("link", "Alice")
	p.Set("a.link", link)

	el, err := p.WaitFor("a.link, div.group", 0)
	require.NoError(t, err)
	assert.Same(t, link, el)

	_, err = p.WaitFor("div.group", 0)
	assert.True(t, errs.IsTimeout(err))
}

func TestQueryMissingIsNilInterface(t *testing.T) {
	p := NewPage("")
	el, err := p.Query("nothing")
	require.NoError(t, err)
	assert.True(t, el == nil)

	child, err := NewElement("x", "").Query("nothing")
	require.NoError(t, err)
	assert.True(t, child == nil)
}

func TestHiddenElementsAreNotClickable(t *testing.T) {
	p := NewPage("")
	btn := NewElement("btn", "")
	btn.Hidden = true
	p.Set("button", btn)

	err := p.Click("button", 0)
	assert.True(t, errs.IsTimeout(err))
	assert.Empty(t, p.Clicks)

	btn.Hidden = false
	require.NoError(t, p.Click("button", 0))
	assert.Equal(t, 1, p.ClickCount("button"))
	assert.Equal(t, 1, btn.Clicks)
}

func TestRemove(t *testing.T) {
	p := NewPage("")
	a, b := NewElement("a", ""), NewElement("b", "")
	p.Set("msg", a, b)
	p.Remove("msg", a)

	all, err := p.QueryAll("msg")
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Same(t, b, all[0])
}
