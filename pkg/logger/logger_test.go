package logger

import (
	"mindcare_backend/internal/config"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func initForTest(t *testing.T, mode string) string {
	t.Helper()
	prevLog, prevAudit := Log, Audit
	t.Cleanup(func() {
		Log, Audit = prevLog, prevAudit
		ApplyMode("release")
	})

	dir := t.TempDir()
	InitLogger(&config.Config{
		Server: config.ServerConfig{Mode: mode},
		Log:    config.LogConfig{Dir: dir, MaxSizeMB: 1, MaxBackups: 1, MaxAgeDays: 1, AuditMaxAgeDays: 1},
	})
	return dir
}

func TestApplyModeSwitchesLevel(t *testing.T) {
	initForTest(t, "release")
	assert.False(t, Log.Core().Enabled(zap.DebugLevel))

	ApplyMode("debug")
	assert.True(t, Log.Core().Enabled(zap.DebugLevel))

	ApplyMode("release")
	assert.False(t, Log.Core().Enabled(zap.DebugLevel))
	assert.True(t, Log.Core().Enabled(zap.InfoLevel))
}

func TestAuditWritesSeparateFile(t *testing.T) {
	dir := initForTest(t, "release")

	Audit.Info("Mood entry force-created", zap.Uint("admin_user_id", 7))
	Log.Info("regular line")
	_ = Audit.Sync()
	_ = Log.Sync()

	audit, err := os.ReadFile(filepath.Join(dir, "audit.log"))
	require.NoError(t, err)
	assert.Contains(t, string(audit), "Mood entry force-created")
	assert.Contains(t, string(audit), `"admin_user_id":7`)
	assert.NotContains(t, string(audit), "regular line")

	app, err := os.ReadFile(filepath.Join(dir, "app.log"))
	require.NoError(t, err)
	assert.Contains(t, string(app), "regular line")
	assert.Contains(t, string(app), "Mood entry force-created")
}
