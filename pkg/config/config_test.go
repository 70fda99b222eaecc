package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/mitchellh/go-homedir"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()

	assert.Equal(t, "https://www.instagram.com/direct/inbox/", config.Instagram.InboxURL)
	assert.Equal(t, "./user_data", config.Browser.UserDataDir)
	assert.Equal(t, time.Second, config.Timeouts.Action)
	assert.Equal(t, 10*time.Second, config.Timeouts.Conversation)
	assert.Equal(t, 120*time.Second, config.Timeouts.Login)
	assert.Equal(t, 1, config.Cleaner.SkipFirst)
	assert.Equal(t, 500, config.Cleaner.MaxScrollPasses)
	assert.Equal(t, "--paddingInlineStart", config.Instagram.Selectors.OutgoingStyleMarker)
	assert.NoError(t, config.Validate())
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("IGCLEANER_USER_DATA_DIR", "/tmp/profile")
	t.Setenv("IGCLEANER_DRY_RUN", "true")
	t.Setenv("IGCLEANER_MAX_SCROLL_PASSES", "42")
	t.Setenv("IGCLEANER_MAX_CONVERSATIONS", "5")
	t.Setenv("IGCLEANER_UNSENDS_PER_MINUTE", "30")
	t.Setenv("IGCLEANER_LOGIN_TIMEOUT", "3m")
	t.Setenv("IGCLEANER_LOG_LEVEL", "debug")
	t.Setenv("IGCLEANER_NOTIFICATIONS_ENABLED", "false")

	config := DefaultConfig()
	require.NoError(t, config.LoadFromEnv())

	assert.Equal(t, "/tmp/profile", config.Browser.UserDataDir)
	assert.True(t, config.Cleaner.DryRun)
	assert.Equal(t, 42, config.Cleaner.MaxScrollPasses)
	assert.Equal(t, 5, config.Cleaner.MaxConversations)
	assert.Equal(t, 30, config.Cleaner.UnsendsPerMinute)
	assert.Equal(t, 3*time.Minute, config.Timeouts.Login)
	assert.Equal(t, "debug", config.Logging.Level)
	assert.False(t, config.Notifications.Enabled)
}

func TestLoadFromEnvRejectsMalformedNumbers(t *testing.T) {
	t.Setenv("IGCLEANER_MAX_SCROLL_PASSES", "many")
	t.Setenv("IGCLEANER_LOGIN_TIMEOUT", "soon")

	config := DefaultConfig()
	err := config.LoadFromEnv()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "IGCLEANER_MAX_SCROLL_PASSES")
	assert.Contains(t, err.Error(), "IGCLEANER_LOGIN_TIMEOUT")
	assert.Equal(t, 500, config.Cleaner.MaxScrollPasses)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(c *Config)
		wantError bool
	}{
		{
			name:      "valid config",
			mutate:    func(c *Config) {},
			wantError: false,
		},
		{
			name:      "missing inbox URL",
			mutate:    func(c *Config) { c.Instagram.InboxURL = "" },
			wantError: true,
		},
		{
			name:      "inbox URL without marker",
			mutate:    func(c *Config) { c.Instagram.InboxURL = "https://www.instagram.com/" },
			wantError: true,
		},
		{
			name:      "missing unsend selector",
			mutate:    func(c *Config) { c.Instagram.Selectors.UnsendButton = " " },
			wantError: true,
		},
		{
			name: "no conversation title selectors",
			mutate: func(c *Config) {
				c.Instagram.Selectors.ConversationLink = ""
				c.Instagram.Selectors.GroupChatHeader = ""
			},
			wantError: true,
		},
		{
			name:      "zero scroll passes",
			mutate:    func(c *Config) { c.Cleaner.MaxScrollPasses = 0 },
			wantError: true,
		},
		{
			name:      "negative skip",
			mutate:    func(c *Config) { c.Cleaner.SkipFirst = -1 },
			wantError: true,
		},
		{
			name:      "zero skip processes the first inbox entry",
			mutate:    func(c *Config) { c.Cleaner.SkipFirst = 0 },
			wantError: true,
		},
		{
			name:      "skip more than one",
			mutate:    func(c *Config) { c.Cleaner.SkipFirst = 2 },
			wantError: false,
		},
		{
			name:      "negative unsend rate",
			mutate:    func(c *Config) { c.Cleaner.UnsendsPerMinute = -5 },
			wantError: true,
		},
		{
			name:      "zero action timeout",
			mutate:    func(c *Config) { c.Timeouts.Action = 0 },
			wantError: true,
		},
		{
			name:      "invalid log level",
			mutate:    func(c *Config) { c.Logging.Level = "invalid" },
			wantError: true,
		},
		{
			name: "report without dir",
			mutate: func(c *Config) {
				c.Report.Enabled = true
				c.Report.Dir = ""
			},
			wantError: true,
		},
		{
			name:      "missing profile dir",
			mutate:    func(c *Config) { c.Browser.UserDataDir = "" },
			wantError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := DefaultConfig()
			tt.mutate(config)
			err := config.Validate()
			if tt.wantError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestMergeCommandLineFlags(t *testing.T) {
	config := DefaultConfig()

	flags := map[string]interface{}{
		"profile-dir":        "/flag/profile",
		"dry-run":            true,
		"max-conversations":  7,
		"max-scroll-passes":  20,
		"unsends-per-minute": 12,
		"include":            []string{"Alice"},
		"exclude":            []string{"Bob", "Carol"},
		"log-level":          "error",
		"quiet":              true,
		"notifications":      false,
	}

	config.MergeCommandLineFlags(flags)

	assert.Equal(t, "/flag/profile", config.Browser.UserDataDir)
	assert.True(t, config.Cleaner.DryRun)
	assert.Equal(t, 7, config.Cleaner.MaxConversations)
	assert.Equal(t, 20, config.Cleaner.MaxScrollPasses)
	assert.Equal(t, 12, config.Cleaner.UnsendsPerMinute)
	assert.Equal(t, []string{"Alice"}, config.Cleaner.Include)
	assert.Equal(t, []string{"Bob", "Carol"}, config.Cleaner.Exclude)
	assert.Equal(t, "error", config.Logging.Level)
	assert.False(t, config.Logging.Console)
	assert.False(t, config.Notifications.Enabled)
}

func TestSaveAndLoadFromFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "nested", "config.yaml")

	config := DefaultConfig()
	config.Browser.UserDataDir = "/srv/profile"
	config.Timeouts.Lookup = 45 * time.Second
	config.Cleaner.Exclude = []string{"Family"}
	config.Instagram.Selectors.UnsendButton = "[aria-label='Retirer']"

	require.NoError(t, config.Save(configPath))

	info, err := os.Stat(configPath)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())

	loaded := DefaultConfig()
	require.NoError(t, loaded.LoadFromFile(configPath))

	assert.Equal(t, "/srv/profile", loaded.Browser.UserDataDir)
	assert.Equal(t, 45*time.Second, loaded.Timeouts.Lookup)
	assert.Equal(t, []string{"Family"}, loaded.Cleaner.Exclude)
	assert.Equal(t, "[aria-label='Retirer']", loaded.Instagram.Selectors.UnsendButton)
}

func TestLoadFromFilePartialKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "partial.yaml")
	content := "cleaner:\n  dry_run: true\ntimeouts:\n  action: 2s\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))

	config := DefaultConfig()
	require.NoError(t, config.LoadFromFile(path))

	assert.True(t, config.Cleaner.DryRun)
	assert.Equal(t, 2*time.Second, config.Timeouts.Action)
	assert.Equal(t, 10*time.Second, config.Timeouts.Conversation)
	assert.Equal(t, DefaultSelectors(), config.Instagram.Selectors)
}

func TestLoadFromFileInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.yaml")
	require.NoError(t, os.WriteFile(path, []byte("cleaner: [unclosed"), 0600))

	config := DefaultConfig()
	assert.Error(t, config.LoadFromFile(path))
}

func TestExpandPaths(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	homedir.DisableCache = true
	defer func() { homedir.DisableCache = false }()

	config := DefaultConfig()
	config.Browser.UserDataDir = "~/ig-profile"
	config.Logging.Dir = "~/logs"
	config.Report.Dir = "./reports"

	require.NoError(t, config.ExpandPaths())

	assert.Equal(t, filepath.Join(home, "ig-profile"), config.Browser.UserDataDir)
	assert.Equal(t, filepath.Join(home, "logs"), config.Logging.Dir)
	assert.Equal(t, "./reports", config.Report.Dir)
}

func TestLoadPrecedence(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := "cleaner:\n  max_scroll_passes: 10\n  max_conversations: 3\nlogging:\n  level: warn\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))

	t.Setenv("IGCLEANER_MAX_CONVERSATIONS", "4")

	config, err := Load(path, map[string]interface{}{"log-level": "debug"})
	require.NoError(t, err)

	assert.Equal(t, 10, config.Cleaner.MaxScrollPasses) // file
	assert.Equal(t, 4, config.Cleaner.MaxConversations) // env beats file
	assert.Equal(t, "debug", config.Logging.Level)      // flag beats file
}
