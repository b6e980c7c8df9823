package services

import (
	"os"
	"testing"

	"go.uber.org/zap/zapcore"

	"finfacil/internal/logger"
)

func TestMain(m *testing.M) {
	logger.Init("test")
	os.Exit(m.Run())
}

func TestLoggerSilencedForTests(t *testing.T) {
	if logger.Get().Desugar().Core().Enabled(zapcore.InfoLevel) {
		t.Error("expected info logs to be disabled in tests")
	}
}
