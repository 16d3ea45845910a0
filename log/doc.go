// Package log provides a concurrency-safe simplified logging interface
// based on [log/slog].
//
// The package adds a Trace level below Debug, configurable time layouts,
// optional caller information, and colorized "pretty" output. All
// configuration is applied at logger creation time using functional
// options:
//
//	logger := log.Make(os.Stderr,
//		log.WithLevel(log.LevelTrace),
//		log.WithFormat(log.FormatText),
//		log.WithCaller(true))
//
// The zero value of [Logger] is valid and discards all messages, so
// library code may hold a Logger field without checking whether one was
// provided.
//
// A package-level default logger writing to standard error is available
// through top-level functions such as [Info] and [Error]; it is
// reconfigured with [Config].
package log
