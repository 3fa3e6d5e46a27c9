// Package testutil provides shared helpers for system tests: a fake
// scheduler submitter, an output-capturing buffer and an end-to-end driver
// for the application pipeline.
package testutil

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vk/slurmchain/internal/app"
)

// SafeBuffer is a thread-safe buffer for capturing app output in tests.
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

// WriteFile writes content into a fresh temp dir under the given name and
// returns the file path.
func WriteFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

// RunApp drives the application end to end with the given configuration and
// returns the captured output plus the run error. Options are forwarded to
// app.NewApp, so tests typically pass app.WithSubmitter with a FakeSubmitter.
// Log settings and the run directory get test-friendly defaults when unset.
func RunApp(t *testing.T, cfg app.Config, opts ...app.Option) (*SafeBuffer, error) {
	t.Helper()

	if cfg.LogLevel == "" {
		cfg.LogLevel = "debug"
	}
	if cfg.LogFormat == "" {
		cfg.LogFormat = "json"
	}
	if cfg.RunDir == "" {
		cfg.RunDir = t.TempDir()
	}

	resolved, err := app.NewConfig(cfg)
	require.NoError(t, err, "test config must pass boundary validation")

	out := &SafeBuffer{}
	testApp := app.NewApp(out, resolved, opts...)

	t.Cleanup(func() {
		if os.Getenv("SLURMCHAIN_TEST_LOGS") == "true" {
			t.Logf("--- Full Output for %s ---\n%s", t.Name(), out.String())
		}
	})

	return out, testApp.Run(context.Background(), resolved)
}
