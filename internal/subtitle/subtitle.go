package subtitle

import (
	"fmt"
	"sort"
)

// represents single time-coded transcript unit
type Cue struct {
	ID        string  `json:"id"`
	StartTime float64 `json:"startTime"`
	EndTime   float64 `json:"endTime"`
	Text      string  `json:"text"`
	Speaker   string  `json:"speaker,omitempty"`
}

// Transcript is the result of parsing a WebVTT document or transforming
// free text. Cues are sorted by StartTime.
type Transcript struct {
	Cues     []Cue    `json:"cues"`
	Language string   `json:"language,omitempty"`
	Duration float64  `json:"duration"`
	Warnings []string `json:"warnings,omitempty"`
}

// represents supported output formats
type Format string

const (
	FormatSRT  Format = "srt"
	FormatVTT  Format = "vtt"
	FormatASS  Format = "ass"
	FormatJSON Format = "json"
)

// how timestamps are presented to callers; does not change parsing
type TimestampFormat string

const (
	TimestampSeconds  TimestampFormat = "seconds"
	TimestampTimecode TimestampFormat = "timecode"
)

const DefaultSegmentDuration = 5.0

// controls text to cue conversion
type TransformOptions struct {
	SegmentDuration  float64         `json:"segmentDuration" yaml:"segment_duration"`
	SpeakerDetection bool            `json:"speakerDetection" yaml:"speaker_detection"`
	TimestampFormat  TimestampFormat `json:"timestampFormat" yaml:"timestamp_format"`
}

func DefaultTransformOptions() TransformOptions {
	return TransformOptions{
		SegmentDuration:  DefaultSegmentDuration,
		SpeakerDetection: true,
		TimestampFormat:  TimestampSeconds,
	}
}

// pre-computed time range for one text segment
type Timing struct {
	Start float64 `json:"start" yaml:"start"`
	End   float64 `json:"end" yaml:"end"`
}

// interface for writing transcripts to files
type Writer interface {
	Write(t *Transcript, path string) error
}

// positional identifier assigned when a cue has none
func defaultCueID(index int) string {
	return fmt.Sprintf("cue-%d", index)
}

// returns cue ids that occur more than once, in first-seen order.
// Uniqueness is a caller contract; parsing never enforces it.
func DuplicateIDs(cues []Cue) []string {
	seen := make(map[string]int, len(cues))
	var dups []string
	for _, c := range cues {
		seen[c.ID]++
		if seen[c.ID] == 2 {
			dups = append(dups, c.ID)
		}
	}
	return dups
}

// NewTranscript sorts cues by start time (stable) and derives the duration.
func NewTranscript(cues []Cue, language string) *Transcript {
	sorted := make([]Cue, len(cues))
	copy(sorted, cues)
	sortCues(sorted)

	return &Transcript{
		Cues:     sorted,
		Language: language,
		Duration: duration(sorted),
	}
}

func sortCues(cues []Cue) {
	sort.SliceStable(cues, func(a, b int) bool {
		return cues[a].StartTime < cues[b].StartTime
	})
}

// latest end time; for non-overlapping cues this is the last cue's end
func duration(cues []Cue) float64 {
	var d float64
	for _, c := range cues {
		if c.EndTime > d {
			d = c.EndTime
		}
	}
	return d
}
