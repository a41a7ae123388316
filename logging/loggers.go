package logging

import (
	"bytes"
	"io"
	"io/ioutil"
	"os"
	"runtime"
	"strconv"
	"sync"

	"github.com/sirupsen/logrus"
)

// const
const (
	PanicLevel = "panic"
	FatalLevel = "fatal"
	ErrorLevel = "error"
	WarnLevel  = "warn"
	InfoLevel  = "info"
	DebugLevel = "debug"
	TraceLevel = "trace"
)
const (
	//PANIC log level
	PANIC uint32 = iota
	//FATAL has list msg
	FATAL
	//ERROR has list msg
	ERROR
	//WARN only log
	WARN
	//INFO only log
	INFO
	//DEBUG only log
	DEBUG
	//TRACE only log
	TRACE
)
const (
	//MsgFormatSingle use info
	MsgFormatSingle uint32 = iota
	//MsgFormatMulti use show all func call relation
	MsgFormatMulti
)

// LogFormat is to log format
type LogFormat = map[string]interface{}

var levelNames = map[string]logrus.Level{
	PanicLevel: logrus.PanicLevel,
	FatalLevel: logrus.FatalLevel,
	ErrorLevel: logrus.ErrorLevel,
	WarnLevel:  logrus.WarnLevel,
	InfoLevel:  logrus.InfoLevel,
	DebugLevel: logrus.DebugLevel,
	TraceLevel: logrus.TraceLevel,
}

type Logger struct {
	*logrus.Logger
	//CallRelation to show stack list
	CallRelation uint32
	mu           sync.Mutex
}

func NewLogger() *Logger {
	return &Logger{
		Logger: logrus.New(),
	}
}

// SetCallRelation to set CallList
func (logger *Logger) SetCallRelation(button uint32) {
	logger.CallRelation = button
}

func (logger *Logger) print(level uint32, msg string, data LogFormat) {
	logger.mu.Lock()
	defer logger.mu.Unlock()

	relation := MsgFormatSingle
	if level <= ERROR || level > TRACE {
		relation = MsgFormatMulti
	}
	logger.SetCallRelation(relation)

	entry := logger.WithFields(logrus.Fields(data))
	switch level {
	case PANIC:
		entry.Panic(msg)
	case FATAL:
		entry.Fatal(msg)
	case WARN:
		entry.Warn(msg)
	case INFO:
		entry.Info(msg)
	case DEBUG:
		entry.Debug(msg)
	case TRACE:
		entry.Trace(msg)
	default:
		entry.Error(msg)
	}
}

var (
	lmu  sync.RWMutex
	clog *Logger
	vlog *Logger
)

// IsValidLevel reports whether level names a log level.
func IsValidLevel(level string) bool {
	_, ok := levelNames[level]
	return ok
}

func convertLevel(level string) logrus.Level {
	if l, ok := levelNames[level]; ok {
		return l
	}
	return logrus.InfoLevel
}

func newLogger(out io.Writer, level string, hooks ...logrus.Hook) *Logger {
	logger := NewLogger()
	LoadFunctionHooker(logger)
	for _, hook := range hooks {
		logger.Hooks.Add(hook)
	}
	logger.Out = out
	logger.Formatter = &logrus.TextFormatter{FullTimestamp: true}
	logger.Level = convertLevel(level)
	return logger
}

// Init loggers. VPrint goes to the rotated files under path only, CPrint
// goes to the files and stderr unless disableCPrint is set.
func Init(path, filename string, level string, age uint32, disableCPrint bool) error {
	fileHooker, err := NewFileRotateHooker(path, filename, age, nil)
	if err != nil {
		return err
	}

	v := newLogger(ioutil.Discard, level, fileHooker)
	c := v
	if !disableCPrint {
		c = newLogger(os.Stderr, level, fileHooker)
	}

	lmu.Lock()
	vlog, clog = v, c
	lmu.Unlock()

	VPrint(INFO, "Logger Configuration.", LogFormat{
		"path":  path,
		"level": level,
	})
	return nil
}

// InitConsole sets up stderr-only logging, VPrint is dropped.
func InitConsole(level string) {
	lmu.Lock()
	defer lmu.Unlock()
	clog = newLogger(os.Stderr, level)
	vlog = newLogger(ioutil.Discard, level)
}

func loggers() (*Logger, *Logger) {
	lmu.RLock()
	c, v := clog, vlog
	lmu.RUnlock()
	if c != nil && v != nil {
		return c, v
	}
	InitConsole(WarnLevel)
	return loggers()
}

// GetGID return gid
func GetGID() uint64 {
	b := make([]byte, 64)
	b = b[:runtime.Stack(b, false)]
	b = bytes.TrimPrefix(b, []byte("goroutine "))
	b = b[:bytes.IndexByte(b, ' ')]
	n, _ := strconv.ParseUint(string(b), 10, 64)
	return n
}

// CPrint into stderr + log
func CPrint(level uint32, msg string, formats ...LogFormat) {
	c, _ := loggers()
	c.print(level, msg, mergeLogFormats(formats...))
}

// VPrint into log
func VPrint(level uint32, msg string, formats ...LogFormat) {
	_, v := loggers()
	v.print(level, msg, mergeLogFormats(formats...))
}

// mergeLogFormats merges LogFormats.
// Same key would be covered by later-presented values.
func mergeLogFormats(formats ...LogFormat) LogFormat {
	format := LogFormat{}
	for _, data := range formats {
		for k, v := range data {
			format[k] = v
		}
	}
	format["tid"] = GetGID()
	return format
}
