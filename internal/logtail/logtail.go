package logtail

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const maxLineBytes = 1024 * 1024

// Read returns the last n lines of the file at path. A missing file yields no
// lines. n <= 0 returns every line.
func Read(path string, n int) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("open log: %w", err)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)

	if n <= 0 {
		var lines []string
		for scanner.Scan() {
			lines = append(lines, scanner.Text())
		}
		if err := scanner.Err(); err != nil {
			return nil, fmt.Errorf("read log: %w", err)
		}
		return lines, nil
	}

	ring := make([]string, n)
	count, idx := 0, 0
	for scanner.Scan() {
		ring[idx] = scanner.Text()
		idx = (idx + 1) % n
		if count < n {
			count++
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read log: %w", err)
	}

	lines := make([]string, count)
	if count == n {
		for i := range count {
			lines[i] = ring[(idx+i)%n]
		}
	} else {
		copy(lines, ring[:count])
	}
	return lines, nil
}

// Entry is one decoded JSON log record.
type Entry struct {
	Time    string
	Level   string
	Logger  string
	Message string
	Fields  map[string]any
}

// Parse decodes a zap JSON line. Lines that are not JSON objects come back
// with ok false.
func Parse(line string) (Entry, bool) {
	var raw map[string]any
	if err := json.Unmarshal([]byte(line), &raw); err != nil {
		return Entry{}, false
	}
	e := Entry{
		Time:    take(raw, "ts"),
		Level:   strings.ToUpper(take(raw, "level")),
		Logger:  take(raw, "logger"),
		Message: take(raw, "msg"),
	}
	delete(raw, "caller")
	delete(raw, "stacktrace")
	if len(raw) > 0 {
		e.Fields = raw
	}
	return e, true
}

func take(raw map[string]any, key string) string {
	v, ok := raw[key]
	if !ok {
		return ""
	}
	delete(raw, key)
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}

var (
	timeStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	loggerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("111"))
	fieldStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("246"))
	levelStyles = map[string]lipgloss.Style{
		"DEBUG": lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
		"INFO":  lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
		"WARN":  lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Bold(true),
		"ERROR": lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true),
	}
)

// Format renders a log line for a terminal. Non-JSON lines pass through.
func Format(line string) string {
	e, ok := Parse(line)
	if !ok {
		return line
	}

	var b strings.Builder
	if e.Time != "" {
		b.WriteString(timeStyle.Render(e.Time))
		b.WriteByte(' ')
	}
	level := fmt.Sprintf("%-5s", e.Level)
	if style, ok := levelStyles[e.Level]; ok {
		level = style.Render(level)
	}
	b.WriteString(level)
	if e.Logger != "" {
		b.WriteByte(' ')
		b.WriteString(loggerStyle.Render(e.Logger))
	}
	b.WriteByte(' ')
	b.WriteString(e.Message)

	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		b.WriteByte(' ')
		b.WriteString(fieldStyle.Render(fmt.Sprintf("%s=%v", k, e.Fields[k])))
	}
	return b.String()
}
