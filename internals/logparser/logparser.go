package logparser

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

const timeFormat = "15:04:05"

var lineRegexp = regexp.MustCompile(`^\[(\d+:\d+:\d+)\] \[([^\]]+)\/(\w+)\](?: \[(.+?)\])?: (.*)$`)

// LogLine is a parsed minecraft log line
type LogLine struct {
	Time    time.Time
	Thread  string
	Level   string
	Tag     string
	Message string
	Garbage bool
}

func (l LogLine) String() string {
	if l.Garbage {
		return l.Message
	}
	tag := ""
	if l.Tag != "" {
		tag = fmt.Sprintf(" [%s]", l.Tag)
	}
	return fmt.Sprintf(
		"[%s] [%s/%s]%s: %s",
		l.Time.Format(timeFormat),
		l.Thread,
		l.Level,
		tag,
		l.Message,
	)
}

// IsWarning returns true for WARN lines
func (l LogLine) IsWarning() bool {
	return strings.EqualFold(l.Level, "WARN") || strings.EqualFold(l.Level, "WARNING")
}

// IsError returns true for ERROR and FATAL lines
func (l LogLine) IsError() bool {
	return strings.EqualFold(l.Level, "ERROR") || strings.EqualFold(l.Level, "FATAL")
}

// ParseLine parses a string into a `LogLine`. Lines that are not in the
// minecraft log format are returned with `Garbage` set
func ParseLine(input string) *LogLine {
	found := lineRegexp.FindStringSubmatch(input)
	if len(found) == 0 {
		return &LogLine{Garbage: true, Message: input}
	}
	parsedTime, err := time.Parse(timeFormat, found[1])
	if err != nil {
		return &LogLine{Garbage: true, Message: input}
	}

	return &LogLine{
		Time:    parsedTime,
		Thread:  found[2],
		Level:   found[3],
		Tag:     found[4],
		Message: found[5],
	}
}
