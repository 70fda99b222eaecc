package cleaner

import (
	"context"
	"fmt"
	"strings"

	"igcleaner/pkg/browser"
	"igcleaner/pkg/logger"
	"igcleaner/pkg/report"
)

// DeleteVisibleOutgoing unsends every outgoing message currently rendered,
// latest first. It reports whether any outgoing message was found, not
// whether deleting it worked. A failure on one message never stops the rest.
// In a dry run nothing disappears between passes, so each pass sees the whole
// loaded history again and the counts keep the largest pass instead of a sum.
// res may be nil.
func (c *Cleaner) DeleteVisibleOutgoing(ctx context.Context, res *report.ConversationResult) (bool, error) {
	if res == nil {
		res = &report.ConversationResult{}
	}

	outgoing, err := c.visibleOutgoing()
	if err != nil {
		return false, err
	}
	if len(outgoing) == 0 {
		c.logger.Info("No visible outgoing messages in this view")
		return false, nil
	}

	c.logger.WithField("count", len(outgoing)).Info("Found outgoing messages to delete")

	if c.config.Cleaner.DryRun {
		c.countDryRun(outgoing, res)
		return true, nil
	}
	res.Found += len(outgoing)

	for i := len(outgoing) - 1; i >= 0; i-- {
		if err := ctx.Err(); err != nil {
			return true, err
		}
		ordinal := len(outgoing) - i

		if err := c.limiter.Wait(ctx); err != nil {
			return true, err
		}
		res.Attempted++
		err := c.unsend(outgoing[i])
		if err == nil {
			res.Unsent++
			logger.LogUnsend(c.logger, res.Label, ordinal, nil)
			continue
		}
		if !recoverable(err) {
			return true, err
		}

		res.Failed++
		logger.LogUnsend(c.logger, res.Label, ordinal, err)
		if escErr := c.page.Press("Escape"); escErr != nil {
			c.logger.WithError(escErr).Debug("Escape after failed unsend did not go through")
		}
	}

	return true, nil
}

// countDryRun logs the messages a real run would unsend, latest first
func (c *Cleaner) countDryRun(outgoing []browser.Element, res *report.ConversationResult) {
	for i := len(outgoing) - 1; i >= 0; i-- {
		text, _ := outgoing[i].Text()
		c.logger.WithField("message", len(outgoing)-i).WithField("text", strings.TrimSpace(text)).Info("Would unsend message")
	}
	if len(outgoing) > res.WouldUnsend {
		res.WouldUnsend = len(outgoing)
	}
	if len(outgoing) > res.Found {
		res.Found = len(outgoing)
	}
}

// visibleOutgoing returns the like affordances of outgoing messages in
// discovery order. Messages the classifier cannot read are left alone.
func (c *Cleaner) visibleOutgoing() ([]browser.Element, error) {
	messages, err := c.page.QueryAll(c.selectors.MessageLikeButton)
	if err != nil {
		return nil, fmt.Errorf("failed to list messages: %w", err)
	}

	var outgoing []browser.Element
	for i, msg := range messages {
		mine, err := c.classifier.IsOutgoing(msg)
		if err != nil {
			if !recoverable(err) {
				return nil, err
			}
			c.logger.WithError(err).WithField("position", i).Debug("Could not classify message")
			continue
		}
		if mine {
			outgoing = append(outgoing, msg)
		}
	}
	return outgoing, nil
}

// unsend walks one message through more options, Unsend and the confirmation
// dialog, then waits for the page to settle
func (c *Cleaner) unsend(msg browser.Element) error {
	text, err := msg.Text()
	if err != nil {
		return err
	}
	c.logger.WithField("text", strings.TrimSpace(text)).Info("Removing message")

	if err := msg.ScrollIntoView(); err != nil {
		return err
	}
	if err := msg.Hover(); err != nil {
		return err
	}

	action := c.config.Timeouts.Action
	for _, selector := range []string{
		c.selectors.MessageOptionsButton,
		c.selectors.UnsendButton,
		c.selectors.ConfirmUnsendButton,
	} {
		if _, err := c.page.WaitFor(selector, action); err != nil {
			return err
		}
		if err := c.page.Click(selector, action); err != nil {
			return err
		}
	}

	c.page.Pause(c.config.Timeouts.Settle)
	return nil
}
