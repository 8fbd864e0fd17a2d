package cache

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"
)

const maxLogs = 100 // Max number of log entries to store in Redis

// LogWriter is an io.Writer that captures log output and sends it to Redis,
// so the most recent log lines survive a restart and can be inspected
// without shell access to the host.
type LogWriter struct {
	redisClient *RedisClient
}

// NewLogWriter creates a new LogWriter.
func NewLogWriter(client *RedisClient) *LogWriter {
	return &LogWriter{
		redisClient: client,
	}
}

// Write implements the io.Writer interface.
func (lw *LogWriter) Write(p []byte) (n int, err error) {
	// The input from the log package includes a newline, which we trim.
	logEntry := strings.TrimRight(string(p), "\n")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := lw.redisClient.AddToList(ctx, LogsKey, logEntry, maxLogs); err != nil {
		// Report to stderr directly to avoid an infinite loop through the
		// standard logger.
		_, _ = fmt.Fprintf(os.Stderr, "[ERROR] Failed to write log to Redis: %v\n", err)
	}

	return len(p), nil
}
