package formatter

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/fatih/color"
	"github.com/sirupsen/logrus"
)

var logLevelSymbol []byte

func init() {
	logLevelSymbol = make([]byte, len(logrus.AllLevels)+1)
	for _, level := range logrus.AllLevels {
		logLevelSymbol[level] = strings.ToUpper(level.String()[:1])[0]
	}
}

var logLevelColor = map[logrus.Level]*color.Color{
	logrus.PanicLevel: color.New(color.FgHiRed, color.Bold),
	logrus.FatalLevel: color.New(color.FgHiRed, color.Bold),
	logrus.ErrorLevel: color.New(color.FgRed),
	logrus.WarnLevel:  color.New(color.FgYellow),
	logrus.InfoLevel:  color.New(color.FgGreen),
	logrus.DebugLevel: color.New(color.FgCyan),
	logrus.TraceLevel: color.New(color.FgHiBlack),
}

// CompactText is a logrus formatter which prints laconic lines, like
// [12:34:56 W main.go:56] my message	tag=v1.0.0_board
type CompactText struct {
	// TimestampFormat is "15:04:05" if empty.
	TimestampFormat string

	// FieldAllowList, if not nil, is the list of the only fields to print.
	FieldAllowList []string

	// FieldDenyList is the list of fields to never print.
	FieldDenyList []string

	// Colors enables coloring of the level symbol.
	Colors bool
}

// Format implements logrus.Formatter.
func (f *CompactText) Format(entry *logrus.Entry) ([]byte, error) {
	var str, header strings.Builder
	timestamp := "15:04:05"
	if f.TimestampFormat != "" {
		timestamp = f.TimestampFormat
	}
	levelSymbol := string(logLevelSymbol[entry.Level])
	if c := logLevelColor[entry.Level]; f.Colors && c != nil {
		c.EnableColor()
		levelSymbol = c.Sprint(levelSymbol)
	}
	header.WriteString(fmt.Sprintf("%s %s",
		entry.Time.Format(timestamp),
		levelSymbol,
	))
	if entry.Caller != nil {
		header.WriteString(fmt.Sprintf(" %s:%d", filepath.Base(entry.Caller.File), entry.Caller.Line))
	}
	str.WriteString(fmt.Sprintf("[%s] %s",
		header.String(),
		entry.Message,
	))

	keys := make([]string, 0, len(entry.Data))
	for key := range entry.Data {
		if !f.isAllowed(key) {
			continue
		}
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		str.WriteString(fmt.Sprintf("\t%s=%v", key, entry.Data[key]))
	}

	str.WriteByte('\n')
	return []byte(str.String()), nil
}

func (f *CompactText) isAllowed(key string) bool {
	for _, denied := range f.FieldDenyList {
		if key == denied {
			return false
		}
	}
	if f.FieldAllowList == nil {
		return true
	}
	for _, allowed := range f.FieldAllowList {
		if key == allowed {
			return true
		}
	}
	return false
}
