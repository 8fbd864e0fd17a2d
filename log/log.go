package log

import (
	"context"
	"fmt"
	"io"
	"log"
	"runtime"
	"strings"
	"time"

	"github.com/ovozlabs/ovoz-voice-service/interfaces"
)

var notifier interfaces.Notifier

// Init wires the standard logger to an optional mirror writer (console
// output is always kept) and registers the notifier used to alert the
// operator about errors. Both arguments may be nil.
func Init(n interfaces.Notifier, mirror io.Writer) {
	notifier = n
	if mirror != nil {
		log.SetOutput(io.MultiWriter(log.Writer(), mirror))
	}
}

// Error logs an error to the console and alerts the operator.
func Error(context string, err error) {
	log.Printf("[ERROR] in %s: %s\n%v\n", callerInfo(), context, err)
	postToOperator(fmt.Sprintf("[ERROR] %s: %v", context, err))
}

// Fatal logs an error and then exits the program.
func Fatal(context string, err error) {
	postToOperator(fmt.Sprintf("[FATAL] %s: %v", context, err))
	log.Fatalf("[FATAL] in %s: %s\n%v\n", callerInfo(), context, err)
}

// Info logs an informational message to the console.
func Info(format string, args ...interface{}) {
	log.Printf(format, args...)
}

func callerInfo() string {
	_, file, line, ok := runtime.Caller(2)
	if !ok {
		return "unknown"
	}
	parts := strings.Split(file, "/")
	if len(parts) > 2 {
		file = strings.Join(parts[len(parts)-2:], "/")
	}
	return fmt.Sprintf("%s:%d", file, line)
}

func postToOperator(msg string) {
	if notifier == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	// Errors here are swallowed: failing to deliver an alert must not
	// recurse into another error report.
	_ = notifier.NotifyOperator(ctx, msg)
}
