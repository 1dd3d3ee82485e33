// Package prompt loads the voice agent's system prompt and fills in its time placeholders.
package prompt

import (
	"context"
	"fmt"
	"os"
	"regexp"
	"strings"
	"sync"
	"time"

	"livekit-henryk/internal/observability"
)

const (
	PlaceholderCurrentTime = "{{current_time}}"
	PlaceholderTimezone    = "{{timezone}}"

	// TimeLayout renders e.g. "Monday, January 15, 2026 at 10:30 AM".
	TimeLayout = "Monday, January 02, 2006 at 03:04 PM"
)

const fallbackTemplate = `You are a helpful voice assistant on a phone call.
Keep responses conversational and concise.
The current time is {{current_time}} ({{timezone}}).`

var systemPromptSection = regexp.MustCompile("(?s)## System Prompt\\s*\\n+```\\n?(.*?)\\n?```")

// Render substitutes the recognised placeholders. Anything else in double braces is left as-is.
func Render(template string, now time.Time, loc *time.Location) string {
	if loc == nil {
		loc = time.UTC
	}
	r := strings.NewReplacer(
		PlaceholderCurrentTime, now.In(loc).Format(TimeLayout),
		PlaceholderTimezone, loc.String(),
	)
	return r.Replace(template)
}

// Extract returns the fenced block under "## System Prompt", or the whole document when there is none.
func Extract(markdown string) (string, bool) {
	m := systemPromptSection.FindStringSubmatch(markdown)
	if m == nil {
		return markdown, false
	}
	return strings.TrimSpace(m[1]), true
}

// Loader reads the prompt file once and serves rendered prompts from the cached copy.
type Loader struct {
	path   string
	logger *observability.Logger

	mu       sync.Mutex
	loaded   bool
	template string
}

func NewLoader(path string, logger *observability.Logger) *Loader {
	return &Loader{path: path, logger: logger}
}

// Template returns the system prompt template, falling back to a built-in prompt
// when the file is missing or unreadable.
func (l *Loader) Template(ctx context.Context) string {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.loaded {
		return l.template
	}

	ctx = observability.WithFields(ctx, observability.Field{Key: "prompt_path", Value: l.path})

	content, err := os.ReadFile(l.path)
	if err != nil || len(content) == 0 {
		if err == nil {
			err = fmt.Errorf("prompt file is empty")
		}
		// Fallback is not cached so a file dropped in later is picked up.
		l.logger.Error(ctx, "failed to read prompt file, using fallback prompt", err)
		return fallbackTemplate
	}

	tmpl, found := Extract(string(content))
	if !found {
		l.logger.Warn(ctx, "could not find '## System Prompt' section, using full content")
	}
	l.logger.Info(ctx, fmt.Sprintf("loaded prompt file (%d chars)", len(tmpl)))

	l.template = tmpl
	l.loaded = true
	return tmpl
}

// Reload drops the cached template so the next call re-reads the file.
func (l *Loader) Reload() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.loaded = false
	l.template = ""
}

// SystemPrompt renders the template for now in the named IANA timezone. An
// unknown timezone falls back to UTC.
func (l *Loader) SystemPrompt(ctx context.Context, now time.Time, timezone string) string {
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		l.logger.Warn(ctx, fmt.Sprintf("invalid timezone %q, falling back to UTC", timezone))
		loc = time.UTC
	}
	return Render(l.Template(ctx), now, loc)
}
