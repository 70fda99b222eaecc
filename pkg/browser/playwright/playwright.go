package playwright

import (
	"errors"
	"fmt"
	"time"

	"github.com/playwright-community/playwright-go"
	"igcleaner/pkg/browser"
	"igcleaner/pkg/config"
	errs "igcleaner/pkg/errors"
	"igcleaner/pkg/logger"
)

// Session is a headed Chromium running against a persistent profile directory
type Session struct {
	pw      *playwright.Playwright
	context playwright.BrowserContext
	page    *Page
	logger  logger.Logger
}

// Launch starts Chromium with the profile in cfg.UserDataDir and returns its
// first tab. The driver is installed first when cfg.InstallDriver is set.
func Launch(cfg *config.BrowserConfig, log logger.Logger) (*Session, error) {
	if cfg.InstallDriver {
		log.Info("Installing browser driver")
		if err := playwright.Install(&playwright.RunOptions{Browsers: []string{"chromium"}}); err != nil {
			return nil, fmt.Errorf("failed to install playwright driver: %w", err)
		}
	}

	pw, err := playwright.Run()
	if err != nil {
		return nil, fmt.Errorf("failed to start playwright: %w", err)
	}

	opts := playwright.BrowserTypeLaunchPersistentContextOptions{
		Headless: playwright.Bool(false),
	}
	if cfg.Channel != "" {
		opts.Channel = playwright.String(cfg.Channel)
	}
	if cfg.ExecutablePath != "" {
		opts.ExecutablePath = playwright.String(cfg.ExecutablePath)
	}
	if cfg.SlowMo > 0 {
		opts.SlowMo = playwright.Float(float64(cfg.SlowMo.Milliseconds()))
	}

	bctx, err := pw.Chromium.LaunchPersistentContext(cfg.UserDataDir, opts)
	if err != nil {
		_ = pw.Stop()
		return nil, fmt.Errorf("failed to launch browser with profile %s: %w", cfg.UserDataDir, err)
	}

	var page playwright.Page
	if pages := bctx.Pages(); len(pages) > 0 {
		page = pages[0]
	} else if page, err = bctx.NewPage(); err != nil {
		_ = bctx.Close()
		_ = pw.Stop()
		return nil, fmt.Errorf("failed to open page: %w", err)
	}

	log.WithField("profile", cfg.UserDataDir).Info("Browser launched")

	return &Session{
		pw:      pw,
		context: bctx,
		page:    &Page{page: page},
		logger:  log,
	}, nil
}

// Page returns the tab the session drives
func (s *Session) Page() browser.Page {
	return s.page
}

// Close shuts the browser context down and stops the driver
func (s *Session) Close() error {
	var closeErrs []error
	if err := s.context.Close(); err != nil {
		closeErrs = append(closeErrs, fmt.Errorf("close browser: %w", err))
	}
	if err := s.pw.Stop(); err != nil {
		closeErrs = append(closeErrs, fmt.Errorf("stop playwright: %w", err))
	}
	s.logger.Debug("Browser closed")
	return errors.Join(closeErrs...)
}

// Page adapts a playwright page to browser.Page
type Page struct {
	page playwright.Page
}

func (p *Page) Goto(url string) error {
	if _, err := p.page.Goto(url); err != nil {
		return wrap(errs.ErrorTypeNavigation, "goto "+url, "", err)
	}
	return nil
}

func (p *Page) GoBack() error {
	if _, err := p.page.GoBack(); err != nil {
		return wrap(errs.ErrorTypeNavigation, "go back", "", err)
	}
	return nil
}

func (p *Page) URL() string {
	return p.page.URL()
}

func (p *Page) WaitFor(selector string, timeout time.Duration) (browser.Element, error) {
	h, err := p.page.WaitForSelector(selector, playwright.PageWaitForSelectorOptions{
		Timeout: millis(timeout),
	})
	if err != nil {
		return nil, wrap(errs.ErrorTypeInteraction, "wait", selector, err)
	}
	if h == nil {
		return nil, errs.NotFound("wait", selector)
	}
	return &Element{handle: h}, nil
}

func (p *Page) Query(selector string) (browser.Element, error) {
	h, err := p.page.QuerySelector(selector)
	if err != nil {
		return nil, wrap(errs.ErrorTypeInteraction, "query", selector, err)
	}
	return element(h), nil
}

func (p *Page) QueryAll(selector string) ([]browser.Element, error) {
	handles, err := p.page.QuerySelectorAll(selector)
	if err != nil {
		return nil, wrap(errs.ErrorTypeInteraction, "query all", selector, err)
	}
	elements := make([]browser.Element, 0, len(handles))
	for _, h := range handles {
		elements = append(elements, &Element{handle: h})
	}
	return elements, nil
}

func (p *Page) Click(selector string, timeout time.Duration) error {
	if err := p.page.Click(selector, playwright.PageClickOptions{Timeout: millis(timeout)}); err != nil {
		return wrap(errs.ErrorTypeInteraction, "click", selector, err)
	}
	return nil
}

func (p *Page) Press(key string) error {
	if err := p.page.Keyboard().Press(key); err != nil {
		return wrap(errs.ErrorTypeInteraction, "press "+key, "", err)
	}
	return nil
}

func (p *Page) Pause(d time.Duration) {
	p.page.WaitForTimeout(float64(d.Milliseconds()))
}

// Element adapts a playwright element handle to browser.Element
type Element struct {
	handle playwright.ElementHandle
}

func (e *Element) Query(selector string) (browser.Element, error) {
	h, err := e.handle.QuerySelector(selector)
	if err != nil {
		return nil, wrap(errs.ErrorTypeInteraction, "query", selector, err)
	}
	return element(h), nil
}

func (e *Element) Parent() (browser.Element, error) {
	return e.Query("xpath=..")
}

func (e *Element) PrecedingSibling() (browser.Element, error) {
	return e.Query("xpath=preceding-sibling::*[1]")
}

func (e *Element) Attribute(name string) (string, error) {
	v, err := e.handle.GetAttribute(name)
	if err != nil {
		return "", wrap(errs.ErrorTypeInteraction, "get attribute "+name, "", err)
	}
	return v, nil
}

func (e *Element) Text() (string, error) {
	text, err := e.handle.InnerText()
	if err != nil {
		return "", wrap(errs.ErrorTypeInteraction, "inner text", "", err)
	}
	return text, nil
}

func (e *Element) ScrollIntoView() error {
	if err := e.handle.ScrollIntoViewIfNeeded(); err != nil {
		return wrap(errs.ErrorTypeInteraction, "scroll into view", "", err)
	}
	return nil
}

func (e *Element) Hover() error {
	if err := e.handle.Hover(); err != nil {
		return wrap(errs.ErrorTypeInteraction, "hover", "", err)
	}
	return nil
}

func (e *Element) Click() error {
	if err := e.handle.Click(); err != nil {
		return wrap(errs.ErrorTypeInteraction, "click", "", err)
	}
	return nil
}

func (e *Element) Visible() (bool, error) {
	visible, err := e.handle.IsVisible()
	if err != nil {
		return false, wrap(errs.ErrorTypeInteraction, "visibility check", "", err)
	}
	return visible, nil
}

// element converts a possibly-nil handle, keeping "no match" as a nil interface
func element(h playwright.ElementHandle) browser.Element {
	if h == nil {
		return nil
	}
	return &Element{handle: h}
}

func millis(d time.Duration) *float64 {
	return playwright.Float(float64(d.Milliseconds()))
}

// wrap classifies a driver error. Timeouts and closed targets override the
// fallback type supplied by the caller.
func wrap(fallback errs.ErrorType, op, selector string, err error) error {
	switch {
	case errors.Is(err, playwright.ErrTimeout):
		return errs.Timeout(op, selector, err)
	case errors.Is(err, playwright.ErrTargetClosed):
		return errs.New(errs.ErrorTypeClosed, op, selector, err)
	default:
		return errs.New(fallback, op, selector, err)
	}
}
