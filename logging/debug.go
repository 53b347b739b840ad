package logging

import (
	"fmt"
	"os"
	"strings"
	"sync"
	"time"
)

// DebugLogger provides verbose debug logging with hex dump capability.
// It writes to a dedicated log file and is intended for troubleshooting
// protocol-level issues: malformed replies, timeouts, dropped frames.
type DebugLogger struct {
	file   *os.File
	mu     sync.Mutex
	closed bool
}

var globalDebugLogger *DebugLogger
var globalDebugMu sync.RWMutex

// NewDebugLogger creates a new debug logger that writes to the specified
// path. The file is truncated if it already exists.
func NewDebugLogger(path string) (*DebugLogger, error) {
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open debug log file: %w", err)
	}

	logger := &DebugLogger{file: file}

	logger.Log("debug", "debug logging started - %s", time.Now().Format(time.RFC3339))

	return logger, nil
}

// SetGlobalDebugLogger sets the global debug logger instance.
func SetGlobalDebugLogger(logger *DebugLogger) {
	globalDebugMu.Lock()
	defer globalDebugMu.Unlock()
	globalDebugLogger = logger
}

// GetGlobalDebugLogger returns the global debug logger instance.
func GetGlobalDebugLogger() *DebugLogger {
	globalDebugMu.RLock()
	defer globalDebugMu.RUnlock()
	return globalDebugLogger
}

// Log writes a formatted message with timestamp and tag prefix.
func (l *DebugLogger) Log(tag, format string, args ...interface{}) {
	if l == nil {
		return
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if l.closed {
		return
	}

	timestamp := time.Now().Format("2006-01-02 15:04:05.000")
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintf(l.file, "%s [%s] %s\n", timestamp, tag, msg)
}

// LogTX logs a transmitted frame with hex dump.
func (l *DebugLogger) LogTX(tag string, frame []byte) {
	if l == nil {
		return
	}
	l.logFrame(tag, "TX", frame)
}

// LogRX logs a received frame with hex dump.
func (l *DebugLogger) LogRX(tag string, frame []byte) {
	if l == nil {
		return
	}
	l.logFrame(tag, "RX", frame)
}

func (l *DebugLogger) logFrame(tag, direction string, frame []byte) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.closed {
		return
	}

	timestamp := time.Now().Format("2006-01-02 15:04:05.000")
	fmt.Fprintf(l.file, "%s [%s] %s (%d bytes):\n%s\n", timestamp, tag, direction, len(frame), hexDump(frame))
}

// LogError logs an error with context.
func (l *DebugLogger) LogError(tag, context string, err error) {
	l.Log(tag, "ERROR in %s: %v", context, err)
}

// Close closes the debug log file.
func (l *DebugLogger) Close() error {
	if l == nil {
		return nil
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if l.closed {
		return nil
	}

	l.closed = true

	timestamp := time.Now().Format("2006-01-02 15:04:05.000")
	fmt.Fprintf(l.file, "%s [debug] debug logging ended\n", timestamp)

	return l.file.Close()
}

// hexDump renders a frame as a four-line, 16-byte-per-line hex dump:
//
//	   <offset>  <8 bytes>  <8 bytes>
//
// one line per 16 bytes of a 64-byte frame. This mirrors the format the
// controller's own command-line tools print, which is handy when
// comparing a logged frame against a packet capture byte for byte.
func hexDump(frame []byte) string {
	var sb strings.Builder

	for row := 0; row < 4; row++ {
		offset := row * 16
		fmt.Fprintf(&sb, "   %08x  ", offset)

		for i := 0; i < 8; i++ {
			writeHexByte(&sb, frame, offset+i)
		}
		sb.WriteString(" ")
		for i := 8; i < 16; i++ {
			writeHexByte(&sb, frame, offset+i)
		}

		if row < 3 {
			sb.WriteByte('\n')
		}
	}

	return sb.String()
}

func writeHexByte(sb *strings.Builder, frame []byte, i int) {
	if i < len(frame) {
		fmt.Fprintf(sb, "%02x ", frame[i])
	} else {
		sb.WriteString("   ")
	}
}

// DebugLog logs a message via the global logger, a no-op if none is set.
func DebugLog(tag, format string, args ...interface{}) {
	if logger := GetGlobalDebugLogger(); logger != nil {
		logger.Log(tag, format, args...)
	}
}

// DebugTX logs a transmitted frame via the global logger.
func DebugTX(tag string, frame []byte) {
	if logger := GetGlobalDebugLogger(); logger != nil {
		logger.LogTX(tag, frame)
	}
}

// DebugRX logs a received frame via the global logger.
func DebugRX(tag string, frame []byte) {
	if logger := GetGlobalDebugLogger(); logger != nil {
		logger.LogRX(tag, frame)
	}
}

// DebugError logs an error via the global logger.
func DebugError(tag, context string, err error) {
	if logger := GetGlobalDebugLogger(); logger != nil {
		logger.LogError(tag, context, err)
	}
}
