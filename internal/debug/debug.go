package debug

import (
	"fmt"
	"log"
	"os"
	"time"
)

var logger = log.New(os.Stderr, "[debug] ", 0)

// DebugOutput prints debug output if debugging is enabled
func DebugOutput(enabled bool, format string, args ...interface{}) {
	if !enabled {
		return
	}
	logger.Printf("%s %s", time.Now().Format("15:04:05.000"), fmt.Sprintf(format, args...))
}

// DebugQuery logs a SQL statement and its arguments.
func DebugQuery(enabled bool, query string, args ...interface{}) {
	if !enabled {
		return
	}
	DebugOutput(enabled, "SQL: %s args=%v", query, args)
}

// DebugTiming measures and logs execution time if debugging is enabled.
// Use as: defer debug.DebugTiming(localDebug, "top drugs")()
func DebugTiming(enabled bool, operation string) func() {
	if !enabled {
		return func() {}
	}

	start := time.Now()
	DebugOutput(enabled, "Starting: %s", operation)

	return func() {
		DebugOutput(enabled, "Completed: %s (took %v)", operation, time.Since(start))
	}
}
