// Package logger implements the area-tagged, level-filtered singleton
// logger used throughout the ambient stack, trimmed from the teacher's
// pkg/logger (same atomic enabled/level/area-enabled gating and
// [timestamp] LEVEL [file:line] [AREA] message line shape) but
// retargeted from the teacher's websocket/terminal/chess areas to this
// language core's own pipeline stages.
package logger

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/antibyte/endbasic-core/pkg/configuration"
)

type Level int32

const (
	Debug Level = iota
	Info
	Warn
	Error
	Fatal
)

var levelNames = map[Level]string{
	Debug: "DEBUG",
	Info:  "INFO",
	Warn:  "WARN",
	Error: "ERROR",
	Fatal: "FATAL",
}

// Area tags a log line with the pipeline stage that produced it.
type Area string

const (
	AreaLexer   Area = "lexer"
	AreaParser  Area = "parser"
	AreaEval    Area = "eval"
	AreaBuiltin Area = "builtin"
	AreaStore   Area = "store"
	AreaConfig  Area = "config"
	AreaGeneral Area = "general"
)

var allAreas = []Area{AreaLexer, AreaParser, AreaEval, AreaBuiltin, AreaStore, AreaConfig, AreaGeneral}

// Logger is the logging sink: a level plus a set of per-area on/off
// switches, optionally mirrored to a file.
type Logger struct {
	enabled     int32
	level       int32
	areaEnabled map[Area]*int32
	mu          sync.Mutex
	file        *os.File
}

var (
	global     *Logger
	globalOnce sync.Once
)

// Initialize sets up the global Logger from configuration section
// [Logging]. Safe to call more than once; only the first call takes
// effect.
func Initialize() error {
	var err error
	globalOnce.Do(func() {
		global, err = newLogger()
	})
	return err
}

func newLogger() (*Logger, error) {
	l := &Logger{areaEnabled: make(map[Area]*int32)}
	for _, a := range allAreas {
		l.areaEnabled[a] = new(int32)
	}
	l.loadConfig()

	path := configuration.GetString("Logging", "log_file", "")
	if path == "" {
		return l, nil
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, err
	}
	l.file = f
	return l, nil
}

func (l *Logger) loadConfig() {
	atomic.StoreInt32(&l.enabled, boolToInt32(configuration.GetBool("Logging", "enabled", true)))
	atomic.StoreInt32(&l.level, int32(parseLevel(configuration.GetString("Logging", "level", "INFO"))))
	for area, flag := range l.areaEnabled {
		key := "log_" + string(area)
		atomic.StoreInt32(flag, boolToInt32(configuration.GetBool("Logging", key, true)))
	}
}

func parseLevel(s string) Level {
	switch strings.ToUpper(s) {
	case "DEBUG":
		return Debug
	case "WARN":
		return Warn
	case "ERROR":
		return Error
	case "FATAL":
		return Fatal
	default:
		return Info
	}
}

func boolToInt32(b bool) int32 {
	if b {
		return 1
	}
	return 0
}

func (l *Logger) shouldLog(level Level, area Area) bool {
	if atomic.LoadInt32(&l.enabled) == 0 {
		return false
	}
	if Level(atomic.LoadInt32(&l.level)) > level {
		return false
	}
	flag, ok := l.areaEnabled[area]
	return ok && atomic.LoadInt32(flag) != 0
}

func (l *Logger) write(level Level, area Area, format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	_, file, line, _ := runtime.Caller(2)
	entry := fmt.Sprintf("[%s] %-5s [%s:%d] [%s] %s\n",
		time.Now().Format("2006-01-02 15:04:05.000"),
		levelNames[level], filepath.Base(file), line, strings.ToUpper(string(area)), msg)

	l.mu.Lock()
	if l.file != nil {
		l.file.WriteString(entry)
	}
	l.mu.Unlock()

	if level >= Warn {
		log.Print(entry)
	}
}

func logf(level Level, area Area, format string, args ...interface{}) {
	if global != nil && global.shouldLog(level, area) {
		global.write(level, area, format, args...)
	}
}

func DebugLog(area Area, format string, args ...interface{}) { logf(Debug, area, format, args...) }
func InfoLog(area Area, format string, args ...interface{})  { logf(Info, area, format, args...) }
func WarnLog(area Area, format string, args ...interface{})  { logf(Warn, area, format, args...) }
func ErrorLog(area Area, format string, args ...interface{}) { logf(Error, area, format, args...) }

// FatalLog logs and terminates the process, matching the teacher's
// Fatal, which is likewise used only at startup for unrecoverable
// configuration/wiring failures, never from inside a running program.
func FatalLog(area Area, format string, args ...interface{}) {
	if global != nil {
		global.write(Fatal, area, format, args...)
	}
	log.Fatalf("[FATAL] [%s] %s", strings.ToUpper(string(area)), fmt.Sprintf(format, args...))
}
