package app

import (
	"bytes"
	"os"
	"sync"
	"testing"
)

// SafeBuffer is a thread-safe buffer for capturing output in tests.
type SafeBuffer struct {
	b  bytes.Buffer
	mu sync.Mutex
}

func (b *SafeBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.Write(p)
}

func (b *SafeBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.String()
}

// SetupAppTest creates an app for modelPath that logs at debug level. It
// returns the app with its report and log buffers.
func SetupAppTest(t *testing.T, modelPath, reportFormat string) (*App, *SafeBuffer, *SafeBuffer) {
	t.Helper()

	cfg, err := NewConfig(Config{ModelPath: modelPath, LogLevel: "debug", ReportFormat: reportFormat})
	if err != nil {
		t.Fatalf("invalid test configuration: %v", err)
	}
	out, logs := &SafeBuffer{}, &SafeBuffer{}
	testApp := NewApp(out, logs, cfg)

	t.Cleanup(func() {
		if os.Getenv("THREEMF_TEST_LOGS") == "true" {
			t.Logf("--- Full Log Output for %s ---\n%s", t.Name(), logs.String())
		}
	})

	return testApp, out, logs
}
