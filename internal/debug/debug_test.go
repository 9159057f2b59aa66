package debug

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// useTempLog points the logger at a temp file and restores state on cleanup.
func useTempLog(t *testing.T) string {
	t.Helper()
	resetForTest()
	logPath := filepath.Join(t.TempDir(), LogDirName, LogFileName)
	orig := getLogPath
	getLogPath = func() (string, error) { return logPath, nil }
	t.Cleanup(func() {
		getLogPath = orig
		Close()
		resetForTest()
	})
	return logPath
}

func readLog(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	return string(content)
}

func TestInitDisabledIsNoop(t *testing.T) {
	resetForTest()

	if err := Init(false); err != nil {
		t.Fatalf("Init(false) failed: %v", err)
	}
	if Enabled() {
		t.Fatal("Enabled() should be false")
	}
	Log("ignored")
	Logf("ignored %d", 1)
	Span("ignored")()
}

func TestInitEnabledWritesMessages(t *testing.T) {
	logPath := useTempLog(t)

	if err := Init(true); err != nil {
		t.Fatalf("Init(true) failed: %v", err)
	}
	Log("palette ready")
	Logf("scales=%d", 8)
	Span("resolve")()

	content := readLog(t, logPath)
	for _, want := range []string{"dainty debug log started", "palette ready", "scales=8", "resolve: start", "resolve: done in"} {
		if !strings.Contains(content, want) {
			t.Errorf("log missing %q:\n%s", want, content)
		}
	}
}

func TestInitTruncatesExistingLog(t *testing.T) {
	logPath := useTempLog(t)

	if err := os.MkdirAll(filepath.Dir(logPath), 0755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(logPath, []byte("stale run\n"), 0600); err != nil {
		t.Fatalf("write stale log: %v", err)
	}
	if err := Init(true); err != nil {
		t.Fatalf("Init(true) failed: %v", err)
	}

	if content := readLog(t, logPath); strings.Contains(content, "stale run") {
		t.Fatalf("expected log to be truncated:\n%s", content)
	}
}

func TestCloseIsIdempotent(t *testing.T) {
	useTempLog(t)
	if err := Init(true); err != nil {
		t.Fatalf("Init(true) failed: %v", err)
	}
	Close()
	Close()
}

func TestGetLogPath(t *testing.T) {
	path, err := GetLogPath()
	if err != nil {
		t.Fatalf("GetLogPath() failed: %v", err)
	}
	if !strings.HasSuffix(path, filepath.Join(LogDirName, LogFileName)) {
		t.Errorf("GetLogPath() = %q, want suffix %q", path, filepath.Join(LogDirName, LogFileName))
	}
}

func resetForTest() {
	mu.Lock()
	defer mu.Unlock()

	if logFile != nil {
		_ = logFile.Close()
		logFile = nil
	}
	enabled = false
	logger = nil
}
