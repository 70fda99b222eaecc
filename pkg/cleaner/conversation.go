package cleaner

import (
	"context"
	"fmt"

	"igcleaner/pkg/instagram"
	"igcleaner/pkg/report"
)

// CleanConversation deletes outgoing messages in the open conversation,
// scrolling back one page at a time until the counterpart avatar at the top of
// the history is visible. The loop is bounded by the configured number of
// scroll passes and wall time; hitting either marks res as truncated.
func (c *Cleaner) CleanConversation(ctx context.Context, res *report.ConversationResult) error {
	c.logger.Info("Starting to clean conversation")

	if _, err := c.page.WaitFor(instagram.TitleSelector(c.selectors), c.config.Timeouts.Conversation); err != nil {
		return fmt.Errorf("conversation did not open: %w", err)
	}
	if title := c.conversationTitle(); title != "" {
		res.Title = title
		c.logger.WithField("title", title).Info("Cleaning conversation")
	}

	conv, err := c.page.Query(c.selectors.ConversationHeader)
	if err != nil {
		return err
	}
	if conv == nil {
		c.logger.Warn("Conversation view not found, nothing to clean")
		return nil
	}
	if visible, err := conv.Visible(); err != nil {
		return err
	} else if !visible {
		c.logger.Warn("Conversation view not visible, nothing to clean")
		return nil
	}

	deadline := c.now().Add(c.config.Cleaner.MaxConversationDuration)
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		if _, err := c.DeleteVisibleOutgoing(ctx, res); err != nil {
			return err
		}

		avatar, err := conv.Query(c.selectors.UserAvatar)
		if err != nil {
			return err
		}
		if avatar != nil {
			visible, err := avatar.Visible()
			if err != nil {
				return err
			}
			if visible {
				c.logger.Info("Top of conversation reached")
				break
			}
		}

		if res.ScrollPasses >= c.config.Cleaner.MaxScrollPasses {
			res.Truncated = true
			c.logger.WithField("scroll_passes", res.ScrollPasses).Warn("Scroll pass limit reached before the top of the conversation")
			break
		}
		if c.config.Cleaner.MaxConversationDuration > 0 && !c.now().Before(deadline) {
			res.Truncated = true
			c.logger.WithField("limit", c.config.Cleaner.MaxConversationDuration).Warn("Time limit reached before the top of the conversation")
			break
		}

		if err := conv.Click(); err != nil {
			return err
		}
		c.logger.Debug("Scrolling up")
		if err := c.page.Press("Home"); err != nil {
			return err
		}
		res.ScrollPasses++
	}

	c.logger.Info("Finished cleaning conversation")
	return nil
}

// conversationTitle reads the title of a one-to-one or group conversation
func (c *Cleaner) conversationTitle() string {
	for _, selector := range []string{c.selectors.ConversationLink, c.selectors.GroupChatHeader} {
		if selector == "" {
			continue
		}
		el, err := c.page.Query(selector)
		if err != nil || el == nil {
			continue
		}
		text, err := el.Text()
		if err != nil {
			continue
		}
		return instagram.SingleLine(text)
	}
	return ""
}
