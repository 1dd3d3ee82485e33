// Package transcript holds the speaker-tagged utterance model and the merge of
// the two per-channel transcripts of a call into one conversation.
package transcript

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// ErrTranscription is returned by Transcriber implementations when a provider
// call fails, times out or returns an unusable result.
var ErrTranscription = errors.New("transcription failed")

// Speaker identifies which side of the call an utterance came from.
type Speaker string

const (
	SpeakerAgent Speaker = "agent"
	SpeakerHuman Speaker = "human"
)

// Label is the upper-case form used in rendered transcripts.
func (s Speaker) Label() string {
	return strings.ToUpper(string(s))
}

// Utterance is one timed segment of speech. Times are seconds from the start of the recording.
type Utterance struct {
	Speaker   Speaker `json:"speaker"`
	StartTime float64 `json:"start_time"`
	EndTime   float64 `json:"end_time"`
	Text      string  `json:"text"`
}

// Segment is a provider result before a speaker is assigned.
type Segment struct {
	Start float64
	End   float64
	Text  string
}

// Transcriber turns one mono audio file into ordered segments.
type Transcriber interface {
	Transcribe(ctx context.Context, audioPath string) ([]Segment, error)
	Name() string
}

// Tag assigns speaker to every segment, dropping empty ones. Whitespace runs,
// including line breaks, collapse to one space so each utterance renders on one line.
func Tag(speaker Speaker, segments []Segment) []Utterance {
	out := make([]Utterance, 0, len(segments))
	for _, s := range segments {
		text := singleLine(s.Text)
		if text == "" {
			continue
		}
		out = append(out, Utterance{Speaker: speaker, StartTime: s.Start, EndTime: s.End, Text: text})
	}
	return out
}

// Merge interleaves the agent and human channels by start time. Both inputs must
// already be ascending by StartTime. On equal start times the agent goes first.
func Merge(agent, human []Utterance) []Utterance {
	out := make([]Utterance, 0, len(agent)+len(human))
	i, j := 0, 0
	for i < len(agent) && j < len(human) {
		if agent[i].StartTime <= human[j].StartTime {
			out = append(out, agent[i])
			i++
		} else {
			out = append(out, human[j])
			j++
		}
	}
	out = append(out, agent[i:]...)
	out = append(out, human[j:]...)
	return out
}

// Render formats the transcript as "SPEAKER: text" lines.
func Render(utterances []Utterance) string {
	lines := make([]string, len(utterances))
	for i, u := range utterances {
		lines[i] = u.Speaker.Label() + ": " + singleLine(u.Text)
	}
	return strings.Join(lines, "\n")
}

func singleLine(text string) string {
	return strings.Join(strings.Fields(text), " ")
}

// Line is a parsed rendering line.
type Line struct {
	Speaker Speaker
	Text    string
}

// Parse reverses Render. Blank lines are skipped.
func Parse(rendered string) ([]Line, error) {
	var lines []Line
	for n, raw := range strings.Split(rendered, "\n") {
		if strings.TrimSpace(raw) == "" {
			continue
		}
		label, text, ok := strings.Cut(raw, ": ")
		if !ok {
			return nil, fmt.Errorf("line %d: missing speaker separator", n+1)
		}
		var speaker Speaker
		switch label {
		case SpeakerAgent.Label():
			speaker = SpeakerAgent
		case SpeakerHuman.Label():
			speaker = SpeakerHuman
		default:
			return nil, fmt.Errorf("line %d: unknown speaker %q", n+1, label)
		}
		lines = append(lines, Line{Speaker: speaker, Text: text})
	}
	return lines, nil
}
