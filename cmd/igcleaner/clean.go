package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	pwbrowser "igcleaner/pkg/browser/playwright"
	"igcleaner/pkg/cleaner"
	"igcleaner/pkg/config"
	"igcleaner/pkg/logger"
	"igcleaner/pkg/report"
	"igcleaner/pkg/ui"
)

var (
	// Clean command flags
	dryRun           bool
	profileDir       string
	maxConversations int
	maxScrollPasses  int
	unsendsPerMinute int
	includeLabels    []string
	excludeLabels    []string
	notifications    bool
)

// cleanCmd represents the clean command
var cleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Unsend your messages in every inbox conversation",
	Long: `Open Instagram in a headed browser, wait for a manual login and unsend every
message you sent, conversation by conversation.

The first entry of the inbox list is skipped. Each conversation is scrolled to
its beginning; a conversation that cannot be opened is logged and skipped.`,
	Example: `  # Clean everything with the default profile directory
  igcleaner

  # See what would be unsent without clicking anything
  igcleaner clean --dry-run

  # Only clean two conversations
  igcleaner clean --include "Alice" --include "Bob"

  # Use a different browser profile and stop after 5 conversations
  igcleaner clean --profile-dir ~/.igcleaner/profile --max-conversations 5`,
	Args:         cobra.NoArgs,
	SilenceUsage: true,
	RunE:         runClean,
}

func init() {
	rootCmd.AddCommand(cleanCmd)
	addCleanFlags(cleanCmd)

	// Cleaning is the default action
	addCleanFlags(rootCmd)
	rootCmd.Args = cobra.NoArgs
	rootCmd.SilenceUsage = true
	rootCmd.RunE = runClean
}

func addCleanFlags(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "classify and count messages without unsending")
	cmd.Flags().StringVar(&profileDir, "profile-dir", "", "persistent browser profile directory (default ./user_data)")
	cmd.Flags().IntVar(&maxConversations, "max-conversations", 0, "stop after this many conversations (0 means all)")
	cmd.Flags().IntVar(&maxScrollPasses, "max-scroll-passes", 0, "scroll passes per conversation before giving up (default 500)")
	cmd.Flags().IntVar(&unsendsPerMinute, "unsends-per-minute", 0, "pace unsends to at most this many per minute (0 means unpaced)")
	cmd.Flags().StringArrayVar(&includeLabels, "include", nil, "only clean conversations with this label (repeatable)")
	cmd.Flags().StringArrayVar(&excludeLabels, "exclude", nil, "never clean conversations with this label (repeatable)")
	cmd.Flags().BoolVar(&notifications, "notifications", true, "send a desktop notification when the run ends")
}

// commandLineFlags collects the flags the user actually set
func commandLineFlags(cmd *cobra.Command) map[string]interface{} {
	flags := make(map[string]interface{})
	set := cmd.Flags()

	if set.Changed("profile-dir") {
		flags["profile-dir"] = profileDir
	}
	if set.Changed("dry-run") {
		flags["dry-run"] = dryRun
	}
	if set.Changed("max-conversations") {
		flags["max-conversations"] = maxConversations
	}
	if set.Changed("max-scroll-passes") {
		flags["max-scroll-passes"] = maxScrollPasses
	}
	if set.Changed("unsends-per-minute") {
		flags["unsends-per-minute"] = unsendsPerMinute
	}
	if set.Changed("include") {
		flags["include"] = includeLabels
	}
	if set.Changed("exclude") {
		flags["exclude"] = excludeLabels
	}
	if set.Changed("notifications") {
		flags["notifications"] = notifications
	}
	if logLevel != "" {
		flags["log-level"] = logLevel
	}
	if noColor {
		flags["no-color"] = true
	}
	if quiet {
		flags["quiet"] = true
	}
	return flags
}

func runClean(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configFile, commandLineFlags(cmd))
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	started := time.Now()
	logFile, err := logger.OpenRunFile(&cfg.Logging, started)
	if err != nil {
		return err
	}
	defer logFile.Close()

	var console, out io.Writer
	if cfg.Logging.Console {
		console = os.Stderr
		out = os.Stdout
	}

	log, err := logger.New(&cfg.Logging, console, logFile)
	if err != nil {
		return err
	}
	log.WithFields(map[string]interface{}{
		"version":  version,
		"log_file": logFile.Name(),
	}).Info("igcleaner starting")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.Cleaner.DryRun {
		ui.PrintWarning("Dry run", "nothing will be unsent")
	}
	ui.PrintInfo("Profile", cfg.Browser.UserDataDir)

	logger.LogComponentStart(log, "browser", map[string]interface{}{
		"profile": cfg.Browser.UserDataDir,
		"channel": cfg.Browser.Channel,
	})
	session, err := pwbrowser.Launch(&cfg.Browser, log)
	if err != nil {
		return endSession(log, ui.NewNotifier(out, cfg.Notifications.Enabled), nil, nil, err)
	}

	tracker := ui.NewStatusTracker(out)
	c := cleaner.New(session.Page(), cfg, log, cleaner.WithProgress(tracker))

	summary, runErr := c.Run(ctx, ui.NewLoginPrompter(os.Stdin, os.Stdout))
	saveReport(cfg, log, summary, out)

	return endSession(log, ui.NewNotifier(out, cfg.Notifications.Enabled), session, summary, runErr)
}

// endSession logs the outcome, closes the browser and notifies the user
func endSession(log logger.Logger, notifier *ui.Notifier, session *pwbrowser.Session, summary *report.Summary, runErr error) error {
	if runErr != nil {
		if errors.Is(runErr, context.Canceled) {
			log.Warn("Run interrupted")
		}
		log.WithError(runErr).Error("Critical error, stopping")
	}
	log.Info("End of session")

	if session != nil {
		if err := session.Close(); err != nil {
			log.WithError(err).Warn("Failed to close browser")
		}
		logger.LogComponentStop(log, "browser", "session ended")
	}

	if runErr != nil {
		notifier.SendError("Cleanup failed", runErr.Error())
		return runErr
	}

	message := "Inbox processed"
	if summary != nil {
		t := summary.Totals()
		message = fmt.Sprintf("%d messages unsent in %d conversations", t.Unsent, t.Cleaned)
		if summary.DryRun {
			message = fmt.Sprintf("%d messages would be unsent in %d conversations", t.WouldUnsend, t.Cleaned)
		}
	}
	notifier.SendSuccess("Cleanup complete", message)
	return nil
}

// saveReport writes the JSON report and prints its rendered summary
func saveReport(cfg *config.Config, log logger.Logger, summary *report.Summary, out io.Writer) {
	if !cfg.Report.Enabled || summary == nil {
		return
	}

	writer, err := report.NewWriter(cfg.Report.Dir, log)
	if err != nil {
		log.WithError(err).Warn("Run report not saved")
		return
	}
	path, err := writer.Save(summary)
	if err != nil {
		log.WithError(err).Warn("Run report not saved")
		return
	}

	if out == nil || !cfg.Report.Render {
		return
	}
	rendered, err := report.Render(summary, cfg.Logging.NoColor)
	if err != nil {
		log.WithError(err).Debug("Failed to render run report")
		return
	}
	fmt.Fprint(out, rendered)
	fmt.Fprintf(out, "%s %s\n", ui.Dim("Report saved to"), path)
}
