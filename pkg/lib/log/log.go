// Package log exposes the logger contract of the tasks SDK.
//
// Any [Logger] implementation can be set in lib.Config. When none is set the
// SDK is silent, same as using [Noop].
package log

import "github.com/slok/tasks/internal/log"

// Logger is the logger the SDK writes to. Besides the format methods it can
// carry structured [Kv] values, also through a context.
type Logger = log.Logger

// Kv are structured logging key-value pairs.
type Kv = log.Kv

// Noop discards all the logs.
var Noop = log.Noop
