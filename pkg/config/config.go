package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/mitchellh/go-homedir"
	"gopkg.in/yaml.v3"
)

// Config holds all configuration options for the Instagram cleaner
type Config struct {
	// Target application URLs and selectors
	Instagram InstagramConfig `yaml:"instagram" json:"instagram"`

	// Browser session settings
	Browser BrowserConfig `yaml:"browser" json:"browser"`

	// Wait and settle durations
	Timeouts TimeoutConfig `yaml:"timeouts" json:"timeouts"`

	// Cleanup behaviour
	Cleaner CleanerConfig `yaml:"cleaner" json:"cleaner"`

	// Logging configuration
	Logging LoggingConfig `yaml:"logging" json:"logging"`

	// Run report
	Report ReportConfig `yaml:"report" json:"report"`

	// Notification preferences
	Notifications NotificationConfig `yaml:"notifications" json:"notifications"`
}

// InstagramConfig holds the target URLs and DOM selectors
type InstagramConfig struct {
	BaseURL         string          `yaml:"base_url" json:"base_url"`
	InboxURL        string          `yaml:"inbox_url" json:"inbox_url"`
	InboxPathMarker string          `yaml:"inbox_path_marker" json:"inbox_path_marker"`
	Selectors       SelectorsConfig `yaml:"selectors" json:"selectors"`
}

// SelectorsConfig holds every selector the cleaner queries. They are coupled to
// Instagram's markup and are expected to need updating when it changes.
type SelectorsConfig struct {
	CookiesButton        string `yaml:"cookies_button" json:"cookies_button"`
	DirectInboxIcon      string `yaml:"direct_inbox_icon" json:"direct_inbox_icon"`
	NotificationsButton  string `yaml:"notifications_button" json:"notifications_button"`
	ConversationListItem string `yaml:"conversation_list_item" json:"conversation_list_item"`
	ConversationLink     string `yaml:"conversation_link" json:"conversation_link"`
	GroupChatHeader      string `yaml:"group_chat_header" json:"group_chat_header"`
	ConversationHeader   string `yaml:"conversation_header" json:"conversation_header"`
	UserAvatar           string `yaml:"user_avatar" json:"user_avatar"`
	MessageLikeButton    string `yaml:"message_like_button" json:"message_like_button"`
	MessageOptionsButton string `yaml:"message_options_button" json:"message_options_button"`
	UnsendButton         string `yaml:"unsend_button" json:"unsend_button"`
	ConfirmUnsendButton  string `yaml:"confirm_unsend_button" json:"confirm_unsend_button"`
	ClickableAncestor    string `yaml:"clickable_ancestor" json:"clickable_ancestor"`
	OutgoingStyleMarker  string `yaml:"outgoing_style_marker" json:"outgoing_style_marker"`
}

// BrowserConfig holds the persistent browser context settings
type BrowserConfig struct {
	UserDataDir    string        `yaml:"user_data_dir" json:"user_data_dir"`
	Channel        string        `yaml:"channel" json:"channel"`
	ExecutablePath string        `yaml:"executable_path" json:"executable_path"`
	SlowMo         time.Duration `yaml:"slow_mo" json:"slow_mo"`
	InstallDriver  bool          `yaml:"install_driver" json:"install_driver"`
}

// TimeoutConfig holds selector waits and fixed delays
type TimeoutConfig struct {
	Action       time.Duration `yaml:"action" json:"action"`
	Settle       time.Duration `yaml:"settle" json:"settle"`
	Conversation time.Duration `yaml:"conversation" json:"conversation"`
	Lookup       time.Duration `yaml:"lookup" json:"lookup"`
	Inbox        time.Duration `yaml:"inbox" json:"inbox"`
	Login        time.Duration `yaml:"login" json:"login"`
}

// CleanerConfig holds cleanup behaviour
type CleanerConfig struct {
	SkipFirst               int           `yaml:"skip_first" json:"skip_first"`
	MaxScrollPasses         int           `yaml:"max_scroll_passes" json:"max_scroll_passes"`
	MaxConversationDuration time.Duration `yaml:"max_conversation_duration" json:"max_conversation_duration"`
	MaxConversations        int           `yaml:"max_conversations" json:"max_conversations"`
	Include                 []string      `yaml:"include" json:"include"`
	Exclude                 []string      `yaml:"exclude" json:"exclude"`
	DryRun                  bool          `yaml:"dry_run" json:"dry_run"`
	UnsendsPerMinute        int           `yaml:"unsends_per_minute" json:"unsends_per_minute"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level       string `yaml:"level" json:"level"`
	Dir         string `yaml:"dir" json:"dir"`
	FilePattern string `yaml:"file_pattern" json:"file_pattern"`
	Console     bool   `yaml:"console" json:"console"`
	NoColor     bool   `yaml:"no_color" json:"no_color"`
}

// ReportConfig holds run report configuration
type ReportConfig struct {
	Enabled bool   `yaml:"enabled" json:"enabled"`
	Dir     string `yaml:"dir" json:"dir"`
	Render  bool   `yaml:"render" json:"render"`
}

// NotificationConfig holds notification preferences
type NotificationConfig struct {
	Enabled bool `yaml:"enabled" json:"enabled"`
}

// DefaultSelectors returns the selectors known to match Instagram's web markup
func DefaultSelectors() SelectorsConfig {
	return SelectorsConfig{
		CookiesButton:        "button:has-text('Allow all cookies')",
		DirectInboxIcon:      "[aria-label='Direct']",
		NotificationsButton:  "button:has-text('Not now')",
		ConversationListItem: "[role='presentation']",
		ConversationLink:     `[role="link"][href][aria-label^="Open the profile page of "]`,
		GroupChatHeader:      `[role="button"][aria-label="Open the details pane of the chat"]`,
		ConversationHeader:   `[aria-label^="Conversation with"]`,
		UserAvatar:           "[alt='User avatar']",
		MessageLikeButton:    "[aria-label='Double tap to like']",
		MessageOptionsButton: `[aria-label^="See more options "]`,
		UnsendButton:         "[aria-label='Unsend']",
		ConfirmUnsendButton:  `button:has-text("Unsend")`,
		ClickableAncestor:    "xpath=ancestor-or-self::div[@role='button']",
		OutgoingStyleMarker:  "--paddingInlineStart",
	}
}

// DefaultConfig returns a Config instance with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Instagram: InstagramConfig{
			BaseURL:         "https://www.instagram.com/",
			InboxURL:        "https://www.instagram.com/direct/inbox/",
			InboxPathMarker: "direct/inbox",
			Selectors:       DefaultSelectors(),
		},
		Browser: BrowserConfig{
			UserDataDir:   "./user_data",
			InstallDriver: false,
		},
		Timeouts: TimeoutConfig{
			Action:       1 * time.Second,
			Settle:       1 * time.Second,
			Conversation: 10 * time.Second,
			Lookup:       30 * time.Second,
			Inbox:        30 * time.Second,
			Login:        120 * time.Second,
		},
		Cleaner: CleanerConfig{
			SkipFirst:               1,
			MaxScrollPasses:         500,
			MaxConversationDuration: 30 * time.Minute,
			MaxConversations:        0, // 0 means all
			UnsendsPerMinute:        0, // 0 means unpaced
			DryRun:                  false,
		},
		Logging: LoggingConfig{
			Level:       "info",
			Dir:         ".",
			FilePattern: "igcleaner_2006-01-02_15-04-05.log",
			Console:     true,
		},
		Report: ReportConfig{
			Enabled: true,
			Dir:     ".",
			Render:  true,
		},
		Notifications: NotificationConfig{
			Enabled: true,
		},
	}
}

// LoadFromEnv loads configuration from environment variables
func (c *Config) LoadFromEnv() error {
	var errs []error

	if dir := os.Getenv("IGCLEANER_USER_DATA_DIR"); dir != "" {
		c.Browser.UserDataDir = dir
	}
	if channel := os.Getenv("IGCLEANER_BROWSER_CHANNEL"); channel != "" {
		c.Browser.Channel = channel
	}
	if exe := os.Getenv("IGCLEANER_BROWSER_EXECUTABLE"); exe != "" {
		c.Browser.ExecutablePath = exe
	}
	if install := os.Getenv("IGCLEANER_INSTALL_DRIVER"); install != "" {
		c.Browser.InstallDriver = strings.ToLower(install) == "true"
	}

	if inbox := os.Getenv("IGCLEANER_INBOX_URL"); inbox != "" {
		c.Instagram.InboxURL = inbox
	}

	if dryRun := os.Getenv("IGCLEANER_DRY_RUN"); dryRun != "" {
		c.Cleaner.DryRun = strings.ToLower(dryRun) == "true"
	}
	if passes := os.Getenv("IGCLEANER_MAX_SCROLL_PASSES"); passes != "" {
		val, err := strconv.Atoi(passes)
		if err != nil {
			errs = append(errs, fmt.Errorf("IGCLEANER_MAX_SCROLL_PASSES: %w", err))
		} else {
			c.Cleaner.MaxScrollPasses = val
		}
	}
	if rate := os.Getenv("IGCLEANER_UNSENDS_PER_MINUTE"); rate != "" {
		val, err := strconv.Atoi(rate)
		if err != nil {
			errs = append(errs, fmt.Errorf("IGCLEANER_UNSENDS_PER_MINUTE: %w", err))
		} else {
			c.Cleaner.UnsendsPerMinute = val
		}
	}
	if maxConv := os.Getenv("IGCLEANER_MAX_CONVERSATIONS"); maxConv != "" {
		val, err := strconv.Atoi(maxConv)
		if err != nil {
			errs = append(errs, fmt.Errorf("IGCLEANER_MAX_CONVERSATIONS: %w", err))
		} else {
			c.Cleaner.MaxConversations = val
		}
	}
	if login := os.Getenv("IGCLEANER_LOGIN_TIMEOUT"); login != "" {
		d, err := time.ParseDuration(login)
		if err != nil {
			errs = append(errs, fmt.Errorf("IGCLEANER_LOGIN_TIMEOUT: %w", err))
		} else {
			c.Timeouts.Login = d
		}
	}

	if logLevel := os.Getenv("IGCLEANER_LOG_LEVEL"); logLevel != "" {
		c.Logging.Level = logLevel
	}
	if logDir := os.Getenv("IGCLEANER_LOG_DIR"); logDir != "" {
		c.Logging.Dir = logDir
	}
	if reportDir := os.Getenv("IGCLEANER_REPORT_DIR"); reportDir != "" {
		c.Report.Dir = reportDir
	}
	if notifEnabled := os.Getenv("IGCLEANER_NOTIFICATIONS_ENABLED"); notifEnabled != "" {
		c.Notifications.Enabled = strings.ToLower(notifEnabled) == "true"
	}

	return errors.Join(errs...)
}

// LoadFromFile loads configuration from a YAML file
func (c *Config) LoadFromFile(path string) error {
	// If path is empty, try default locations
	if path == "" {
		path = c.findConfigFile()
		if path == "" {
			return nil // No config file found, not an error
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse config file: %w", err)
	}

	return nil
}

// findConfigFile searches for config file in standard locations
func (c *Config) findConfigFile() string {
	home, _ := homedir.Dir()

	locations := []string{
		".igcleaner.yaml",
		".igcleaner.yml",
	}
	if home != "" {
		locations = append(locations,
			filepath.Join(home, ".config", "igcleaner", "config.yaml"),
			filepath.Join(home, ".config", "igcleaner", "config.yml"),
			filepath.Join(home, ".igcleaner.yaml"),
			filepath.Join(home, ".igcleaner.yml"),
		)
	}

	for _, loc := range locations {
		if _, err := os.Stat(loc); err == nil {
			return loc
		}
	}

	return ""
}

// ExpandPaths resolves a leading ~ in every filesystem path of the configuration
func (c *Config) ExpandPaths() error {
	paths := []*string{
		&c.Browser.UserDataDir,
		&c.Browser.ExecutablePath,
		&c.Logging.Dir,
		&c.Report.Dir,
	}
	for _, p := range paths {
		if *p == "" {
			continue
		}
		expanded, err := homedir.Expand(*p)
		if err != nil {
			return fmt.Errorf("failed to expand path %q: %w", *p, err)
		}
		*p = expanded
	}
	return nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	var errs []error

	// Instagram
	if c.Instagram.InboxURL == "" {
		errs = append(errs, errors.New("inbox URL is required"))
	}
	if c.Instagram.InboxPathMarker == "" {
		errs = append(errs, errors.New("inbox path marker is required"))
	} else if !strings.Contains(c.Instagram.InboxURL, c.Instagram.InboxPathMarker) {
		errs = append(errs, errors.New("inbox URL must contain the inbox path marker"))
	}
	errs = append(errs, c.Instagram.Selectors.validate()...)

	// Browser
	if c.Browser.UserDataDir == "" {
		errs = append(errs, errors.New("browser user data directory is required"))
	}

	// Timeouts
	if c.Timeouts.Action <= 0 {
		errs = append(errs, errors.New("action timeout must be positive"))
	}
	if c.Timeouts.Settle < 0 {
		errs = append(errs, errors.New("settle delay cannot be negative"))
	}
	if c.Timeouts.Conversation <= 0 {
		errs = append(errs, errors.New("conversation timeout must be positive"))
	}
	if c.Timeouts.Lookup <= 0 {
		errs = append(errs, errors.New("lookup timeout must be positive"))
	}
	if c.Timeouts.Inbox <= 0 {
		errs = append(errs, errors.New("inbox timeout must be positive"))
	}
	if c.Timeouts.Login <= 0 {
		errs = append(errs, errors.New("login timeout must be positive"))
	}

	// Cleaner
	if c.Cleaner.SkipFirst < 1 {
		errs = append(errs, errors.New("skip first must be at least 1, the first inbox entry is the Notes tray"))
	}
	if c.Cleaner.MaxScrollPasses <= 0 {
		errs = append(errs, errors.New("max scroll passes must be positive"))
	}
	if c.Cleaner.MaxConversationDuration < 0 {
		errs = append(errs, errors.New("max conversation duration cannot be negative"))
	}
	if c.Cleaner.MaxConversations < 0 {
		errs = append(errs, errors.New("max conversations cannot be negative"))
	}
	if c.Cleaner.UnsendsPerMinute < 0 {
		errs = append(errs, errors.New("unsends per minute cannot be negative"))
	}

	// Logging
	validLogLevels := map[string]bool{
		"debug": true, "info": true, "warn": true, "error": true,
	}
	if !validLogLevels[strings.ToLower(c.Logging.Level)] {
		errs = append(errs, errors.New("invalid log level"))
	}
	if c.Logging.FilePattern == "" {
		errs = append(errs, errors.New("log file pattern is required"))
	}

	if c.Report.Enabled && c.Report.Dir == "" {
		errs = append(errs, errors.New("report directory is required when reports are enabled"))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}

	return nil
}

func (s SelectorsConfig) validate() []error {
	var errs []error
	required := map[string]string{
		"direct_inbox_icon":      s.DirectInboxIcon,
		"conversation_list_item": s.ConversationListItem,
		"conversation_header":    s.ConversationHeader,
		"user_avatar":            s.UserAvatar,
		"message_like_button":    s.MessageLikeButton,
		"message_options_button": s.MessageOptionsButton,
		"unsend_button":          s.UnsendButton,
		"confirm_unsend_button":  s.ConfirmUnsendButton,
		"clickable_ancestor":     s.ClickableAncestor,
		"outgoing_style_marker":  s.OutgoingStyleMarker,
	}
	for name, value := range required {
		if strings.TrimSpace(value) == "" {
			errs = append(errs, fmt.Errorf("selector %s is required", name))
		}
	}
	if s.ConversationLink == "" && s.GroupChatHeader == "" {
		errs = append(errs, errors.New("at least one of conversation_link and group_chat_header is required"))
	}
	return errs
}

// Save saves the configuration to a file
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	// Create directory if it doesn't exist
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// MergeCommandLineFlags merges command line flags into the configuration
func (c *Config) MergeCommandLineFlags(flags map[string]interface{}) {
	if dir, ok := flags["profile-dir"].(string); ok && dir != "" {
		c.Browser.UserDataDir = dir
	}
	if dryRun, ok := flags["dry-run"].(bool); ok {
		c.Cleaner.DryRun = dryRun
	}
	if maxConv, ok := flags["max-conversations"].(int); ok && maxConv >= 0 {
		c.Cleaner.MaxConversations = maxConv
	}
	if passes, ok := flags["max-scroll-passes"].(int); ok && passes > 0 {
		c.Cleaner.MaxScrollPasses = passes
	}
	if rate, ok := flags["unsends-per-minute"].(int); ok && rate >= 0 {
		c.Cleaner.UnsendsPerMinute = rate
	}
	if include, ok := flags["include"].([]string); ok && len(include) > 0 {
		c.Cleaner.Include = include
	}
	if exclude, ok := flags["exclude"].([]string); ok && len(exclude) > 0 {
		c.Cleaner.Exclude = exclude
	}
	if logLevel, ok := flags["log-level"].(string); ok && logLevel != "" {
		c.Logging.Level = logLevel
	}
	if noColor, ok := flags["no-color"].(bool); ok && noColor {
		c.Logging.NoColor = true
	}
	if quiet, ok := flags["quiet"].(bool); ok && quiet {
		c.Logging.Console = false
	}
	if notif, ok := flags["notifications"].(bool); ok {
		c.Notifications.Enabled = notif
	}
}

// Load loads configuration from all sources with proper precedence
// Precedence order: Command line flags > Environment variables > .env file > Config file > Defaults
func Load(configPath string, flags map[string]interface{}) (*Config, error) {
	// Try to load .env files (don't fail if they don't exist)
	_ = godotenv.Load(".env")
	if home, err := homedir.Dir(); err == nil {
		_ = godotenv.Load(filepath.Join(home, ".igcleaner.env"))
	}

	// Start with defaults
	config := DefaultConfig()

	// Load from config file
	if err := config.LoadFromFile(configPath); err != nil {
		return nil, fmt.Errorf("failed to load config file: %w", err)
	}

	// Override with environment variables (includes values from .env)
	if err := config.LoadFromEnv(); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	// Override with command line flags
	config.MergeCommandLineFlags(flags)

	if err := config.ExpandPaths(); err != nil {
		return nil, err
	}

	// Validate final configuration
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}
