package logger

import (
	"time"

	"github.com/rs/zerolog"
)

// NewNopLogger returns a Logger that discards everything
func NewNopLogger() Logger {
	nop := zerolog.Nop()
	return &zerologLogger{logger: &nop, fields: map[string]interface{}{}}
}

// LogComponentStart logs component startup
func LogComponentStart(log Logger, component string, config map[string]interface{}) {
	log.WithFields(map[string]interface{}{
		"component": component,
		"action":    "start",
	}).InfoWithFields("Component starting", config)
}

// LogComponentStop logs component shutdown
func LogComponentStop(log Logger, component string, reason string) {
	log.WithFields(map[string]interface{}{
		"component": component,
		"action":    "stop",
		"reason":    reason,
	}).Info("Component stopping")
}

// LogConversationStart logs the beginning of work on one conversation
func LogConversationStart(log Logger, label string, index, total int) {
	log.WithFields(map[string]interface{}{
		"conversation": label,
		"index":        index,
		"total":        total,
	}).Info("Processing conversation")
}

// LogConversationDone logs the outcome of one conversation
func LogConversationDone(log Logger, label string, deleted, failed, passes int, elapsed time.Duration, err error) {
	entry := log.WithFields(map[string]interface{}{
		"conversation":  label,
		"deleted":       deleted,
		"failed":        failed,
		"scroll_passes": passes,
		"duration":      elapsed,
	})

	if err != nil {
		entry.WithError(err).Error("Conversation failed")
		return
	}
	entry.Info("Conversation cleaned")
}

// LogUnsend logs the result of a single unsend attempt
func LogUnsend(log Logger, conversation string, ordinal int, err error) {
	entry := log.WithFields(map[string]interface{}{
		"conversation": conversation,
		"message":      ordinal,
	})

	if err != nil {
		entry.WithError(err).Error("Failed to delete message")
		return
	}
	entry.Info("Message unsent")
}
