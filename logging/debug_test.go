package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNewDebugLogger(t *testing.T) {
	tmpDir := t.TempDir()

	t.Run("creates new file", func(t *testing.T) {
		path := filepath.Join(tmpDir, "debug.log")
		logger, err := NewDebugLogger(path)
		if err != nil {
			t.Fatalf("NewDebugLogger failed: %v", err)
		}
		defer logger.Close()

		if _, err := os.Stat(path); os.IsNotExist(err) {
			t.Error("log file was not created")
		}
	})

	t.Run("truncates existing file", func(t *testing.T) {
		path := filepath.Join(tmpDir, "truncate.log")
		if err := os.WriteFile(path, []byte("stale content\n"), 0644); err != nil {
			t.Fatalf("failed to seed file: %v", err)
		}

		logger, err := NewDebugLogger(path)
		if err != nil {
			t.Fatalf("NewDebugLogger failed: %v", err)
		}
		logger.Close()

		content, err := os.ReadFile(path)
		if err != nil {
			t.Fatalf("failed to read file: %v", err)
		}
		if strings.Contains(string(content), "stale content") {
			t.Error("old content survived truncation")
		}
	})

	t.Run("returns error for invalid path", func(t *testing.T) {
		_, err := NewDebugLogger("/nonexistent/directory/debug.log")
		if err == nil {
			t.Error("expected error for invalid path")
		}
	})
}

func TestDebugLoggerLog(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "debug.log")

	logger, err := NewDebugLogger(path)
	if err != nil {
		t.Fatalf("NewDebugLogger failed: %v", err)
	}
	defer logger.Close()

	logger.Log("udp", "sent request to %s", "192.168.1.100:60000")

	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read file: %v", err)
	}

	str := string(content)
	if !strings.Contains(str, "[udp] sent request to 192.168.1.100:60000") {
		t.Errorf("expected tagged message in output, got: %s", str)
	}
}

func TestDebugLoggerLogAfterClose(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "debug.log")

	logger, err := NewDebugLogger(path)
	if err != nil {
		t.Fatalf("NewDebugLogger failed: %v", err)
	}
	logger.Close()

	logger.Log("udp", "should not appear")

	content, _ := os.ReadFile(path)
	if strings.Contains(string(content), "should not appear") {
		t.Error("logged after close")
	}
}

func TestDebugLoggerFrameDump(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "debug.log")

	logger, err := NewDebugLogger(path)
	if err != nil {
		t.Fatalf("NewDebugLogger failed: %v", err)
	}
	defer logger.Close()

	frame := make([]byte, 64)
	frame[0] = 0x17
	frame[1] = 0x94

	logger.LogTX("udp", frame)

	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read file: %v", err)
	}

	str := string(content)
	if !strings.Contains(str, "TX (64 bytes)") {
		t.Errorf("expected TX header, got: %s", str)
	}
	if !strings.Contains(str, "   00000000  17 94") {
		t.Errorf("expected offset-prefixed hex dump of first row, got: %s", str)
	}
	if !strings.Contains(str, "   00000030  ") {
		t.Errorf("expected fourth row at offset 0x30, got: %s", str)
	}
}

func TestHexDumpLineCount(t *testing.T) {
	dump := hexDump(make([]byte, 64))
	lines := strings.Split(dump, "\n")
	if len(lines) != 4 {
		t.Fatalf("expected 4 lines, got %d", len(lines))
	}
	for i, line := range lines {
		offset := i * 16
		prefix := fmtOffset(offset)
		if !strings.HasPrefix(line, prefix) {
			t.Errorf("line %d: expected prefix %q, got %q", i, prefix, line)
		}
	}
}

func fmtOffset(offset int) string {
	return "   " + padHex(offset) + "  "
}

func padHex(n int) string {
	const hexDigits = "0123456789abcdef"
	b := make([]byte, 8)
	for i := 7; i >= 0; i-- {
		b[i] = hexDigits[n&0xf]
		n >>= 4
	}
	return string(b)
}

func TestGlobalDebugLogger(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "debug.log")

	logger, err := NewDebugLogger(path)
	if err != nil {
		t.Fatalf("NewDebugLogger failed: %v", err)
	}
	defer logger.Close()

	SetGlobalDebugLogger(logger)
	defer SetGlobalDebugLogger(nil)

	DebugLog("tcp", "dialing %s", "192.168.1.100:60000")
	DebugTX("tcp", make([]byte, 64))
	DebugRX("tcp", make([]byte, 64))

	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read file: %v", err)
	}

	str := string(content)
	for _, want := range []string{"dialing 192.168.1.100:60000", "TX (64 bytes)", "RX (64 bytes)"} {
		if !strings.Contains(str, want) {
			t.Errorf("expected %q in log output, got: %s", want, str)
		}
	}
}

func TestDebugHelpersNoGlobalLogger(t *testing.T) {
	SetGlobalDebugLogger(nil)

	// None of these should panic when no global logger is installed.
	DebugLog("udp", "no logger")
	DebugTX("udp", make([]byte, 64))
	DebugRX("udp", make([]byte, 64))
	DebugError("udp", "context", os.ErrClosed)
}
