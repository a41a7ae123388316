package logging

import (
	"fmt"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"
)

const maxCallerDepth = 32

// frames outside these packages belong to the caller
var skippedPackages = []string{"github.com/sirupsen/logrus", "massnet.org/shasum/logging."}

type functionHooker struct {
	innerLogger *Logger
}

func callerFrames(limit int) []runtime.Frame {
	pcs := make([]uintptr, maxCallerDepth)
	n := runtime.Callers(3, pcs)
	frames := runtime.CallersFrames(pcs[:n])

	var out []runtime.Frame
	for {
		frame, more := frames.Next()
		if !skipFrame(frame.Function) {
			out = append(out, frame)
			if len(out) == limit {
				break
			}
		}
		if !more {
			break
		}
	}
	return out
}

func skipFrame(function string) bool {
	for _, pkg := range skippedPackages {
		if strings.HasPrefix(function, pkg) {
			return true
		}
	}
	return false
}

func shortFuncName(fname string) string {
	if index := strings.LastIndex(fname, "/"); index >= 0 {
		return fname[index+1:]
	}
	return fname
}

func (h *functionHooker) fire(entry *logrus.Entry) {
	frames := callerFrames(1)
	if len(frames) == 0 {
		return
	}
	entry.Data["func"] = shortFuncName(frames[0].Function)
	entry.Data["line"] = frames[0].Line
	entry.Data["file"] = filepath.Base(frames[0].File)
}

func (h *functionHooker) fires(entry *logrus.Entry) {
	for i, frame := range callerFrames(3) {
		entry.Data["f"+strconv.Itoa(i)] = fmt.Sprintf("{%s,%s,%d}", filepath.Base(frame.File), shortFuncName(frame.Function), frame.Line)
	}
}

func (h *functionHooker) Fire(entry *logrus.Entry) error {
	switch h.innerLogger.CallRelation {
	case MsgFormatMulti:
		h.fires(entry)
	case MsgFormatSingle:
		h.fire(entry)
	}
	return nil
}

func (h *functionHooker) Levels() []logrus.Level {
	return logrus.AllLevels
}

// LoadFunctionHooker loads a function hooker to the logger
func LoadFunctionHooker(logger *Logger) {
	logger.Hooks.Add(&functionHooker{innerLogger: logger})
}
