// Package logger provides the structured logging interface used across igcleaner.
//
// It wraps zerolog and writes to up to two sinks at once:
//   - the console, as short coloured lines
//   - a per-run file, as "2006-01-02 15:04:05 - LEVEL - message key=value" lines
//
// There is no package-level logger. Build one in main and pass it down:
//
//	started := time.Now()
//	file, err := logger.OpenRunFile(&cfg.Logging, started)
//	if err != nil {
//	    return err
//	}
//	defer file.Close()
//
//	log, err := logger.New(&cfg.Logging, os.Stderr, file)
//	if err != nil {
//	    return err
//	}
//	log.WithField("conversation", "Alice").Info("Processing conversation")
//
// Tests use NewTestLogger to capture messages, or NewNopLogger to discard them.
package logger
