package configwatcher

import (
	"mindcare_backend/internal/config"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeMode(t *testing.T, path, mode string) {
	t.Helper()
	content := []byte("server:\n  mode: " + mode + "\njwt:\n  secret: watcher-test-secret-0123456789abcdef\n")
	require.NoError(t, os.WriteFile(path, content, 0o644))
}

func TestWatchConfigReloadsOnWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	writeMode(t, path, "debug")

	reloaded := make(chan *config.Config, 1)
	stop := make(chan struct{})
	done := make(chan error, 1)
	go func() {
		done <- WatchConfig(path, stop, func(cfg *config.Config) {
			select {
			case reloaded <- cfg:
			default:
			}
		})
	}()

	// 等待 watcher 注册完成
	time.Sleep(200 * time.Millisecond)
	writeMode(t, path, "release")

	select {
	case cfg := <-reloaded:
		assert.Equal(t, "release", cfg.Server.Mode)
	case <-time.After(5 * time.Second):
		t.Fatal("config was not reloaded")
	}

	close(stop)
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("watcher did not stop")
	}
}

func TestWatchConfigMissingFile(t *testing.T) {
	stop := make(chan struct{})
	defer close(stop)

	err := WatchConfig(filepath.Join(t.TempDir(), "missing.yaml"), stop, func(*config.Config) {})
	assert.Error(t, err)
}
