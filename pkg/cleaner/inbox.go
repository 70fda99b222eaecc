package cleaner

import (
	"context"
	"fmt"

	"igcleaner/pkg/browser"
	errs "igcleaner/pkg/errors"
	"igcleaner/pkg/instagram"
	"igcleaner/pkg/logger"
	"igcleaner/pkg/report"
)

// ConversationRef identifies an inbox conversation by its scraped label. It is
// only a lookup key: renamed or duplicated conversations can be skipped or
// mismatched.
type ConversationRef struct {
	Label string
	Index int
}

// ProcessInbox snapshots the inbox and cleans each selected conversation in
// turn. Automation failures inside a conversation are logged and the run moves
// on; anything else is returned.
func (c *Cleaner) ProcessInbox(ctx context.Context, summary *report.Summary) error {
	c.logger.Info("Navigating to Direct inbox")
	if !instagram.IsInbox(c.page.URL(), c.config.Instagram.InboxPathMarker) {
		if err := c.page.Goto(c.config.Instagram.InboxURL); err != nil {
			return fmt.Errorf("failed to open inbox: %w", err)
		}
	}

	refs, err := c.SnapshotConversations(ctx)
	if err != nil {
		return err
	}
	summary.Discovered = len(refs)

	selected := c.selectConversations(refs, summary)

	for i, ref := range selected {
		if err := ctx.Err(); err != nil {
			return err
		}

		c.progress.ConversationStarted(ref.Label, i+1, len(selected))
		logger.LogConversationStart(c.logger, ref.Label, i+1, len(selected))

		res := report.NewConversationResult(ref.Label, ref.Index, c.now())
		err := c.processConversation(ctx, ref, res)
		res.FinishedAt = c.now()
		summary.Add(res)

		if err != nil {
			if !recoverable(err) {
				return err
			}
			res.Error = err.Error()
			if err := c.returnToInbox(); err != nil {
				return err
			}
		}

		if res.Skipped == "" {
			logger.LogConversationDone(c.logger, ref.Label, res.Unsent, res.Failed, res.ScrollPasses, res.Duration(), err)
		}
		c.progress.ConversationFinished(res)
	}

	return nil
}

// SnapshotConversations reads the labels of the inbox rows, leaving out the
// first cleaner.skip_first rows (the Notes tray)
func (c *Cleaner) SnapshotConversations(ctx context.Context) ([]ConversationRef, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	c.logger.Info("Retrieving list of conversations")
	if _, err := c.page.WaitFor(c.selectors.ConversationListItem, c.config.Timeouts.Inbox); err != nil {
		return nil, fmt.Errorf("inbox did not load: %w", err)
	}
	rows, err := c.page.QueryAll(c.selectors.ConversationListItem)
	if err != nil {
		return nil, fmt.Errorf("failed to list conversations: %w", err)
	}

	var refs []ConversationRef
	for i, row := range rows {
		if i < c.config.Cleaner.SkipFirst {
			continue
		}
		text, err := row.Text()
		if err != nil {
			c.logger.WithError(err).WithField("row", i).Warn("Could not read conversation label")
			continue
		}
		if label := instagram.ConversationLabel(text); label != "" {
			refs = append(refs, ConversationRef{Label: label, Index: i})
		}
	}

	labels := make([]string, len(refs))
	for i, ref := range refs {
		labels[i] = ref.Label
	}
	c.logger.WithField("count", len(refs)).WithField("conversations", labels).Info("Found conversations to process")

	return refs, nil
}

// selectConversations applies the include, exclude and max_conversations
// settings. Filtered conversations are recorded as skipped.
func (c *Cleaner) selectConversations(refs []ConversationRef, summary *report.Summary) []ConversationRef {
	include := toSet(c.config.Cleaner.Include)
	exclude := toSet(c.config.Cleaner.Exclude)

	var selected []ConversationRef
	for _, ref := range refs {
		filtered := exclude[ref.Label] || (len(include) > 0 && !include[ref.Label])
		limited := c.config.Cleaner.MaxConversations > 0 && len(selected) >= c.config.Cleaner.MaxConversations
		if filtered || limited {
			res := report.NewConversationResult(ref.Label, ref.Index, c.now())
			res.Skipped = report.SkipFiltered
			res.FinishedAt = res.StartedAt
			summary.Add(res)
			c.logger.WithField("conversation", ref.Label).Debug("Conversation filtered out")
			continue
		}
		selected = append(selected, ref)
	}
	return selected
}

// processConversation re-finds ref in the inbox, opens it, cleans it and goes
// back to the inbox
func (c *Cleaner) processConversation(ctx context.Context, ref ConversationRef, res *report.ConversationResult) error {
	button, skip, err := c.resolveConversation(ref)
	if err != nil {
		return err
	}
	if skip != "" {
		res.Skipped = skip
		return nil
	}

	if err := button.Click(); err != nil {
		return err
	}
	if err := c.CleanConversation(ctx, res); err != nil {
		return err
	}

	c.logger.Info("Returning to conversation list")
	if err := c.page.GoBack(); err != nil {
		return err
	}
	if _, err := c.page.WaitFor(c.selectors.ConversationListItem, c.config.Timeouts.Inbox); err != nil {
		return err
	}
	return nil
}

// resolveConversation finds the clickable inbox row whose text is exactly the
// label. A label that no longer matches anything is a skip, not an error.
func (c *Cleaner) resolveConversation(ref ConversationRef) (browser.Element, report.SkipReason, error) {
	selector := instagram.TextIsSelector(ref.Label)
	el, err := c.page.WaitFor(selector, c.config.Timeouts.Lookup)
	if err != nil {
		if errs.IsTimeout(err) || errs.IsNotFound(err) {
			c.logger.WithField("conversation", ref.Label).Warn("Could not find conversation, skipping")
			return nil, report.SkipNotFound, nil
		}
		return nil, "", err
	}

	button, err := el.Query(c.selectors.ClickableAncestor)
	if err != nil {
		return nil, "", err
	}
	if button == nil {
		c.logger.WithField("conversation", ref.Label).Warn("Could not find clickable parent for conversation, skipping")
		return nil, report.SkipNoClickable, nil
	}
	return button, "", nil
}

// returnToInbox navigates straight to the inbox unless the page is already there
func (c *Cleaner) returnToInbox() error {
	if instagram.IsInbox(c.page.URL(), c.config.Instagram.InboxPathMarker) {
		return nil
	}
	c.logger.WithField("url", c.page.URL()).Info("Navigating back to inbox")
	if err := c.page.Goto(c.config.Instagram.InboxURL); err != nil {
		return fmt.Errorf("failed to return to inbox: %w", err)
	}
	return nil
}

func toSet(values []string) map[string]bool {
	set := make(map[string]bool, len(values))
	for _, v := range values {
		set[v] = true
	}
	return set
}
