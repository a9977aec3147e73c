package utils

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// LogxManager writes mesh traffic lines (RX, FWD, INJECT, drops) through a
// zap logger teeing info, error and debug cores into separate files under
// the configured log directory.
type LogxManager struct {
	basePath string
	logger   *zap.Logger
}

func NewManager(base string) *LogxManager {
	m := &LogxManager{basePath: base}

	if err := os.MkdirAll(m.basePath, 0744); err != nil {
		log.Printf("failed to create base log dir %s: %v", m.basePath, err)
	}

	encCfg := zapcore.EncoderConfig{MessageKey: "msg", LineEnding: zapcore.DefaultLineEnding}
	encoder := zapcore.NewConsoleEncoder(encCfg)

	infoOut := zapcore.AddSync(m.openLogFile(filepath.Join(m.basePath, "info.log")))
	errorOut := zapcore.AddSync(m.openLogFile(filepath.Join(m.basePath, "error.log")))
	dbgOut := zapcore.AddSync(m.openLogFile(filepath.Join(m.basePath, "debug.log")))

	infoLv := zap.LevelEnablerFunc(func(l zapcore.Level) bool { return l == zapcore.InfoLevel })
	errLv := zap.LevelEnablerFunc(func(l zapcore.Level) bool { return l >= zapcore.ErrorLevel })
	dbgLv := zap.LevelEnablerFunc(func(l zapcore.Level) bool { return l == zapcore.DebugLevel })

	tee := zapcore.NewTee(
		zapcore.NewCore(encoder, infoOut, infoLv),
		zapcore.NewCore(encoder, errorOut, errLv),
		zapcore.NewCore(encoder, dbgOut, dbgLv),
	)
	m.logger = zap.New(tee)
	return m
}

// NewNop returns a manager that discards everything. Used by tests.
func NewNop() *LogxManager {
	return &LogxManager{logger: zap.NewNop()}
}

func (m *LogxManager) openLogFile(path string) *os.File {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		log.Printf("failed to open log file %s: %v", path, err)
		return os.Stdout
	}
	return f
}

func (m *LogxManager) line(tag, msg string) string {
	return fmt.Sprintf("[%s] %s: %s",
		time.Now().Format("02/Jan/2006:15:04:05 -0700"),
		tag,
		msg,
	)
}

func (m *LogxManager) LogInfo(tag, msg string) {
	m.logger.Info(m.line(tag, msg))
}

func (m *LogxManager) LogError(tag, msg string) {
	m.logger.Error(m.line(tag, msg))
}

func (m *LogxManager) LogDebug(tag, msg string) {
	m.logger.Debug(m.line(tag, msg))
}
