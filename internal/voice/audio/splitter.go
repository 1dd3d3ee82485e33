// Package audio splits dual-channel call recordings into per-speaker files
package audio

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"

	"livekit-henryk/internal/observability"
)

// ErrSplit is returned when a recording cannot be split into its channels.
var ErrSplit = errors.New("failed to split recording")

const (
	AgentFile = "agent.ogg"
	HumanFile = "human.ogg"
)

// Channels holds the mono files produced from one stereo recording
type Channels struct {
	Agent string
	Human string
}

// Splitter runs ffmpeg to split a stereo recording: left is the agent, right the caller.
type Splitter struct {
	ffmpegPath string
	logger     *observability.Logger
}

func NewSplitter(ffmpegPath string, logger *observability.Logger) *Splitter {
	if ffmpegPath == "" {
		ffmpegPath = "ffmpeg"
	}
	return &Splitter{ffmpegPath: ffmpegPath, logger: logger}
}

// Split writes agent.ogg and human.ogg next to the input file.
func (s *Splitter) Split(ctx context.Context, stereoPath string) (Channels, error) {
	dir := filepath.Dir(stereoPath)
	out := Channels{
		Agent: filepath.Join(dir, AgentFile),
		Human: filepath.Join(dir, HumanFile),
	}

	var stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, s.ffmpegPath, splitArgs(stereoPath, out)...)
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		s.logger.Error(ctx, "ffmpeg channel split failed: "+strings.TrimSpace(stderr.String()), err)
		return Channels{}, fmt.Errorf("%w: %s: %v", ErrSplit, filepath.Base(stereoPath), err)
	}

	s.logger.Debug(ctx, "recording split into agent and human channels")
	return out, nil
}

func splitArgs(in string, out Channels) []string {
	return []string{
		"-hide_banner", "-loglevel", "error", "-nostdin", "-y",
		"-i", in,
		"-filter_complex", "[0:a]channelsplit=channel_layout=stereo[FL][FR]",
		"-map", "[FL]", "-c:a", "libopus", out.Agent,
		"-map", "[FR]", "-c:a", "libopus", out.Human,
	}
}
