// Package monitoring holds the process-wide diagnostic logger.
package monitoring

import "log"

// Logf is the diagnostic logger. It defaults to log.Printf; SetLogger
// replaces or mutes it.
var Logf func(format string, v ...interface{}) = log.Printf

// SetLogger replaces Logf. Passing nil installs a no-op logger.
func SetLogger(f func(format string, v ...interface{})) {
	if f == nil {
		Logf = func(string, ...interface{}) {}
		return
	}
	Logf = f
}
