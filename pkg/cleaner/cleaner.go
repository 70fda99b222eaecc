package cleaner

import (
	"context"
	"fmt"
	"time"

	"igcleaner/pkg/browser"
	"igcleaner/pkg/config"
	errs "igcleaner/pkg/errors"
	"igcleaner/pkg/instagram"
	"igcleaner/pkg/logger"
	"igcleaner/pkg/ratelimit"
	"igcleaner/pkg/report"
)

// LoginPrompt is shown while the human logs in through the browser window
const LoginPrompt = "Log in to Instagram in the browser window, then press Enter to continue"

// Cleaner drives one browser page through the inbox, unsending outgoing messages
type Cleaner struct {
	page       browser.Page
	config     *config.Config
	selectors  config.SelectorsConfig
	classifier Classifier
	progress   Progress
	limiter    ratelimit.Limiter
	logger     logger.Logger
	now        func() time.Time
}

// Option configures a Cleaner
type Option func(*Cleaner)

// WithClassifier replaces the markup-based outgoing message classifier
func WithClassifier(c Classifier) Option {
	return func(cl *Cleaner) { cl.classifier = c }
}

// WithProgress reports per-conversation progress to p
func WithProgress(p Progress) Option {
	return func(cl *Cleaner) { cl.progress = p }
}

// WithLimiter paces unsend attempts with l
func WithLimiter(l ratelimit.Limiter) Option {
	return func(cl *Cleaner) { cl.limiter = l }
}

// WithClock sets the time source used for durations and the scroll deadline
func WithClock(now func() time.Time) Option {
	return func(cl *Cleaner) { cl.now = now }
}

// New creates a Cleaner for page
func New(page browser.Page, cfg *config.Config, log logger.Logger, opts ...Option) *Cleaner {
	c := &Cleaner{
		page:       page,
		config:     cfg,
		selectors:  cfg.Instagram.Selectors,
		classifier: instagram.NewStyleMarkerClassifier(cfg.Instagram.Selectors.OutgoingStyleMarker),
		progress:   noProgress{},
		limiter:    ratelimit.PerMinute(cfg.Cleaner.UnsendsPerMinute),
		logger:     log.WithField("component", "cleaner"),
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Run opens Instagram, waits for the human to log in and cleans every
// conversation. The returned summary is non-nil even when err is set.
func (c *Cleaner) Run(ctx context.Context, prompter Prompter) (*report.Summary, error) {
	summary := report.NewSummary(c.now(), c.config.Cleaner.DryRun)

	err := c.run(ctx, prompter, summary)
	summary.Finish(c.now(), err)
	return summary, err
}

func (c *Cleaner) run(ctx context.Context, prompter Prompter, summary *report.Summary) error {
	if err := c.Open(ctx); err != nil {
		return err
	}
	if err := c.WaitForLogin(ctx, prompter); err != nil {
		return err
	}
	return c.ProcessInbox(ctx, summary)
}

// Open navigates to Instagram and accepts the cookie banner if one shows up
func (c *Cleaner) Open(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := c.page.Goto(c.config.Instagram.BaseURL); err != nil {
		return fmt.Errorf("failed to open instagram: %w", err)
	}
	c.logger.WithField("url", c.config.Instagram.BaseURL).Info("Navigated to Instagram")

	c.dismiss(c.selectors.CookiesButton, "cookie banner")
	return nil
}

// WaitForLogin blocks on the prompter, then waits for the inbox icon that only
// renders for a logged-in session
func (c *Cleaner) WaitForLogin(ctx context.Context, prompter Prompter) error {
	c.logger.Info("Waiting for manual login")
	if err := prompter.WaitForLogin(ctx, LoginPrompt); err != nil {
		return fmt.Errorf("login prompt: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	if _, err := c.page.WaitFor(c.selectors.DirectInboxIcon, c.config.Timeouts.Login); err != nil {
		return fmt.Errorf("login not confirmed within %s: %w", c.config.Timeouts.Login, err)
	}
	c.logger.Info("Login confirmed")

	c.dismiss(c.selectors.NotificationsButton, "notifications dialog")
	return nil
}

// dismiss clicks an optional dialog button. Absence is normal and not logged
// above debug.
func (c *Cleaner) dismiss(selector, what string) {
	if selector == "" {
		return
	}
	if _, err := c.page.WaitFor(selector, c.config.Timeouts.Action); err != nil {
		c.logger.WithField("dialog", what).Debug("No dialog to dismiss")
		return
	}
	if err := c.page.Click(selector, c.config.Timeouts.Action); err != nil {
		c.logger.WithError(err).WithField("dialog", what).Debug("Failed to dismiss dialog")
		return
	}
	c.logger.WithField("dialog", what).Info("Dismissed dialog")
}

// recoverable reports whether err is an automation failure the run can step past
func recoverable(err error) bool {
	return errs.IsAutomation(err) && errs.IsRecoverable(errs.TypeOf(err))
}
