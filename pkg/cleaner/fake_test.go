package cleaner

import (
	"context"
	"strings"

	"igcleaner/pkg/browser/browsertest"
	"igcleaner/pkg/config"
	errs "igcleaner/pkg/errors"
	"igcleaner/pkg/instagram"
	"igcleaner/pkg/report"
)

const (
	baseURL  = "https://www.instagram.com/"
	inboxURL = "https://www.instagram.com/direct/inbox/"
)

type fakeMessage struct {
	text     string
	outgoing bool
	fail     bool
}

type fakeConversation struct {
	label    string
	rowText  string
	messages []fakeMessage
	// avatar becomes visible after this many Home presses; negative means never
	topAfterScrolls int
	group           bool
	hiddenView      bool
	missing         bool
	noClickable     bool
	openErr         error
}

// inbox simulates the Direct inbox and its conversations on a browsertest.Page
type inbox struct {
	page *browsertest.Page
	sel  config.SelectorsConfig

	convs   []*fakeConversation
	current *fakeConversation
	hovered *browsertest.Element
	avatar  *browsertest.Element

	opened   []string
	attempts map[string][]string
	scrolls  map[string]int
	onScroll func()
}

func newInbox(sel config.SelectorsConfig, convs ...*fakeConversation) *inbox {
	in := &inbox{
		page:     browsertest.NewPage(inboxURL),
		sel:      sel,
		convs:    convs,
		attempts: map[string][]string{},
		scrolls:  map[string]int{},
	}

	rows := []*browsertest.Element{browsertest.NewElement("notes-row", "Notes\nShare a thought")}
	for _, conv := range convs {
		text := conv.rowText
		if text == "" {
			text = conv.label + "\nActive 1h ago"
		}
		rows = append(rows, browsertest.NewElement("row-"+conv.label, text))

		if conv.missing {
			continue
		}
		label := browsertest.NewElement("label-"+conv.label, conv.label)
		if !conv.noClickable {
			button := browsertest.NewElement("button-"+conv.label, conv.label)
			button.OnClick = in.opener(conv)
			label.WithChild(sel.ClickableAncestor, button)
		}
		in.page.Set(instagram.TextIsSelector(conv.label), label)
	}
	in.page.Set(sel.ConversationListItem, rows...)

	in.page.OnClick = in.onClick
	in.page.OnPress = in.onPress
	in.page.OnGoBack = in.onGoBack
	return in
}

// notesOpener lets a test make the Notes row clickable to prove it is never opened
func (in *inbox) notesOpener() {
	label := browsertest.NewElement("label-Notes", "Notes")
	button := browsertest.NewElement("button-Notes", "Notes")
	button.OnClick = func() error {
		in.opened = append(in.opened, "Notes")
		return nil
	}
	label.WithChild(in.sel.ClickableAncestor, button)
	in.page.Set(instagram.TextIsSelector("Notes"), label)
}

func (in *inbox) opener(conv *fakeConversation) func() error {
	return func() error {
		in.opened = append(in.opened, conv.label)
		in.page.SetURL("https://www.instagram.com/direct/t/" + conv.label + "/")
		if conv.openErr != nil {
			return conv.openErr
		}
		in.open(conv)
		return nil
	}
}

// open renders conv as the current thread
func (in *inbox) open(conv *fakeConversation) {
	in.current = conv

	title := browsertest.NewElement("title", conv.label+"\n"+strings.ToLower(conv.label)+"_ig")
	if conv.group {
		in.page.Set(in.sel.GroupChatHeader, title)
	} else {
		in.page.Set(in.sel.ConversationLink, title)
	}

	in.avatar = browsertest.NewElement("avatar", "")
	in.avatar.Hidden = conv.topAfterScrolls != 0
	view := browsertest.NewElement("view", "").WithChild(in.sel.UserAvatar, in.avatar)
	view.Hidden = conv.hiddenView
	in.page.Set(in.sel.ConversationHeader, view)

	var likes []*browsertest.Element
	for _, m := range conv.messages {
		likes = append(likes, in.message(m))
	}
	in.page.Set(in.sel.MessageLikeButton, likes...)

	in.page.Set(in.sel.MessageOptionsButton, browsertest.NewElement("options", ""))
	in.page.Set(in.sel.UnsendButton, browsertest.NewElement("unsend", "Unsend"))
	in.page.Set(in.sel.ConfirmUnsendButton, browsertest.NewElement("confirm", "Unsend"))
}

// message builds like button -> bubble -> preceding spacer, the structure the
// style marker classifier inspects
func (in *inbox) message(m fakeMessage) *browsertest.Element {
	spacer := browsertest.NewElement("spacer", "")
	if m.outgoing {
		spacer.Attrs["style"] = "display: flex; " + in.sel.OutgoingStyleMarker + ": 52px;"
	}
	bubble := browsertest.NewElement("bubble", m.text)
	bubble.Previous = spacer

	like := browsertest.NewElement(m.text, m.text)
	like.ParentElement = bubble
	if m.fail {
		like.Attrs["data-fail"] = "true"
	}
	like.OnHover = func() error {
		in.hovered = like
		return nil
	}
	return like
}

func (in *inbox) onClick(selector string) error {
	label := ""
	if in.current != nil {
		label = in.current.label
	}

	switch selector {
	case in.sel.MessageOptionsButton:
		in.attempts[label] = append(in.attempts[label], in.hovered.Content)
	case in.sel.UnsendButton:
		if in.hovered.Attrs["data-fail"] == "true" {
			return errs.New(errs.ErrorTypeInteraction, "click", selector, nil)
		}
	case in.sel.ConfirmUnsendButton:
		in.page.Remove(in.sel.MessageLikeButton, in.hovered)
	}
	return nil
}

func (in *inbox) onPress(key string) error {
	if key != "Home" || in.current == nil {
		return nil
	}
	in.scrolls[in.current.label]++
	if in.onScroll != nil {
		in.onScroll()
	}
	if in.current.topAfterScrolls > 0 && in.scrolls[in.current.label] >= in.current.topAfterScrolls {
		in.avatar.Hidden = false
	}
	return nil
}

func (in *inbox) onGoBack() error {
	in.current = nil
	in.hovered = nil
	for _, sel := range []string{
		in.sel.ConversationLink,
		in.sel.GroupChatHeader,
		in.sel.ConversationHeader,
		in.sel.MessageLikeButton,
		in.sel.MessageOptionsButton,
		in.sel.UnsendButton,
		in.sel.ConfirmUnsendButton,
	} {
		in.page.Clear(sel)
	}
	in.page.SetURL(inboxURL)
	return nil
}

// fakePrompter returns immediately, recording the prompt
type fakePrompter struct {
	prompts []string
	err     error
}

func (p *fakePrompter) WaitForLogin(ctx context.Context, message string) error {
	p.prompts = append(p.prompts, message)
	return p.err
}

// recordingProgress records Progress callbacks
type recordingProgress struct {
	started  []string
	finished []string
}

func (r *recordingProgress) ConversationStarted(label string, index, total int) {
	r.started = append(r.started, label)
}

func (r *recordingProgress) ConversationFinished(res *report.ConversationResult) {
	r.finished = append(r.finished, res.Label+":"+res.Status())
}
