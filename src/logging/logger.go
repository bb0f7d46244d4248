// Package logging is the leveled logger shared by the timings engine and its binaries.
package logging

import (
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"
	"sync/atomic"
	"time"
)

// Level is a message severity; messages below the current level are dropped.
type Level int32

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

var levelTags = [...]string{"DEBUG", "INFO", "WARN", "ERROR"}

func (l Level) String() string {
	if l >= LevelDebug && int(l) < len(levelTags) {
		return levelTags[l]
	}
	return "Level(" + strconv.Itoa(int(l)) + ")"
}

// ParseLevel accepts debug, info, warn (or warning) and error in any case.
func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return LevelDebug, nil
	case "info":
		return LevelInfo, nil
	case "warn", "warning":
		return LevelWarn, nil
	case "error":
		return LevelError, nil
	}
	return LevelInfo, fmt.Errorf("unknown log level %q (want debug|info|warn|error)", s)
}

var (
	current atomic.Int32
	output  = log.New(os.Stderr, "", log.Ldate|log.Ltime|log.Lmicroseconds)
)

func init() { current.Store(int32(LevelInfo)) }

func SetLevel(l Level)     { current.Store(int32(l)) }
func CurrentLevel() Level  { return Level(current.Load()) }
func Enabled(l Level) bool { return l >= CurrentLevel() }

// Configure parses s and makes it the current level. On error the level is unchanged.
func Configure(s string) error {
	l, err := ParseLevel(s)
	if err != nil {
		return err
	}
	SetLevel(l)
	return nil
}

// SetOutput redirects log lines.
func SetOutput(w io.Writer) { output.SetOutput(w) }

func logf(l Level, format string, args []interface{}) {
	if !Enabled(l) {
		return
	}
	msg := format
	// Unit names may carry a literal %; only format when there is something to format.
	if len(args) > 0 {
		msg = fmt.Sprintf(format, args...)
	}
	output.Printf("[%s] %s", l, msg)
}

func Debugf(format string, a ...interface{}) { logf(LevelDebug, format, a) }
func Infof(format string, a ...interface{})  { logf(LevelInfo, format, a) }
func Warnf(format string, a ...interface{})  { logf(LevelWarn, format, a) }
func Errorf(format string, a ...interface{}) { logf(LevelError, format, a) }

// TimeTrack logs at debug level how long the phase begun at start took.
//
//	defer logging.TimeTrack(time.Now(), "pipeline render")
func TimeTrack(start time.Time, label string) {
	if !Enabled(LevelDebug) {
		return
	}
	Debugf("%s took %s", label, time.Since(start).Round(time.Microsecond))
}
