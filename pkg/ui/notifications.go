package ui

import (
	"fmt"
	"io"
	"os/exec"
	"runtime"
	"strings"
)

// AppName is the title used for desktop notifications
const AppName = "igcleaner"

// NotificationSender interface for platform-specific notification implementations
type NotificationSender interface {
	Send(title, message string) error
}

// LinuxNotificationSender sends notifications on Linux using notify-send
type LinuxNotificationSender struct{}

func (l *LinuxNotificationSender) Send(title, message string) error {
	return exec.Command("notify-send", "--app-name", AppName, title, message).Run()
}

// MacOSNotificationSender sends notifications on macOS using osascript
type MacOSNotificationSender struct{}

func (m *MacOSNotificationSender) Send(title, message string) error {
	script := fmt.Sprintf(`display notification "%s" with title "%s"`, escapeAppleScript(message), escapeAppleScript(title))
	return exec.Command("osascript", "-e", script).Run()
}

func escapeAppleScript(s string) string {
	return strings.NewReplacer(`\`, `\\`, `"`, `\"`).Replace(s)
}

// WindowsNotificationSender sends notifications on Windows using PowerShell
type WindowsNotificationSender struct{}

func (w *WindowsNotificationSender) Send(title, message string) error {
	script := fmt.Sprintf(`
		[Windows.UI.Notifications.ToastNotificationManager, Windows.UI.Notifications, ContentType = WindowsRuntime] | Out-Null
		$template = [Windows.UI.Notifications.ToastNotificationManager]::GetTemplateContent([Windows.UI.Notifications.ToastTemplateType]::ToastText02)
		$texts = $template.GetElementsByTagName("text")
		$texts.Item(0).AppendChild($template.CreateTextNode('%s')) | Out-Null
		$texts.Item(1).AppendChild($template.CreateTextNode('%s')) | Out-Null
		$toast = [Windows.UI.Notifications.ToastNotification]::new($template)
		[Windows.UI.Notifications.ToastNotificationManager]::CreateToastNotifier('%s').Show($toast)
	`, escapePowerShell(title), escapePowerShell(message), AppName)

	return exec.Command("powershell", "-NoProfile", "-NonInteractive", "-Command", script).Run()
}

func escapePowerShell(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}

// Notifier prints run events to the console and mirrors them as desktop notifications
type Notifier struct {
	sender NotificationSender
	out    io.Writer
}

// NewNotifier creates a Notifier for the current platform. When desktop is
// false only the console line is printed.
func NewNotifier(out io.Writer, desktop bool) *Notifier {
	if !desktop {
		return &Notifier{out: out}
	}
	return &Notifier{sender: platformSender(runtime.GOOS), out: out}
}

// NewNotifierWithSender creates a Notifier using sender
func NewNotifierWithSender(out io.Writer, sender NotificationSender) *Notifier {
	return &Notifier{sender: sender, out: out}
}

func platformSender(goos string) NotificationSender {
	switch goos {
	case "linux":
		return &LinuxNotificationSender{}
	case "darwin":
		return &MacOSNotificationSender{}
	case "windows":
		return &WindowsNotificationSender{}
	default:
		return nil
	}
}

// SendError sends an error notification
func (n *Notifier) SendError(title, message string) {
	n.send(Red(title), Red(message), title, message)
}

// SendSuccess sends a success notification
func (n *Notifier) SendSuccess(title, message string) {
	n.send(Green(title), Green(message), title, message)
}

func (n *Notifier) send(coloredTitle, coloredMessage, title, message string) {
	if n.out != nil {
		fmt.Fprintf(n.out, "\n%s: %s\n", coloredTitle, coloredMessage)
	}
	if n.sender != nil {
		// Desktop notifications are best effort
		_ = n.sender.Send(title, message)
	}
}
