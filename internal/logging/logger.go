package logging

import (
	"fmt"
	"io"
	"path"
	"runtime"
	"strings"

	"github.com/sirupsen/logrus"
)

// New builds a logger writing to out. format is "text" or "json".
func New(level, format string, out io.Writer) (*logrus.Logger, error) {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return nil, err
	}

	l := logrus.New()
	l.SetOutput(out)
	l.SetLevel(lvl)

	// caller info is only worth the cost when debugging
	l.SetReportCaller(lvl >= logrus.DebugLevel)

	switch strings.ToLower(format) {
	case "", "text":
		l.SetFormatter(&logrus.TextFormatter{
			FullTimestamp:    true,
			CallerPrettyfier: prettyCaller,
		})
	case "json":
		l.SetFormatter(&logrus.JSONFormatter{
			CallerPrettyfier: prettyCaller,
		})
	default:
		return nil, fmt.Errorf("unknown log format %q", format)
	}

	return l, nil
}

func prettyCaller(f *runtime.Frame) (string, string) {
	filename := path.Base(f.File)
	return fmt.Sprintf("%s()", f.Function), fmt.Sprintf("%s:%d", filename, f.Line)
}
