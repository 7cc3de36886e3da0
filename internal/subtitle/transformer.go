package subtitle

import (
	"fmt"
	"math"
	"regexp"
	"strings"
	"unicode"
)

// assumed speaking rate used to turn a segment duration into a word budget
const wordsPerMinute = 150

var paragraphBreakRegex = regexp.MustCompile(`\n[ \t]*\n`)

// TransformText splits free text into contiguous, time-coded cues. A nil
// opts uses DefaultTransformOptions. A non-nil opts is used as given: zero
// fields are not filled from the defaults (only an empty TimestampFormat is),
// so &TransformOptions{SegmentDuration: 3} runs without speaker detection.
// Start from DefaultTransformOptions to change a single field.
func TransformText(text string, opts *TransformOptions) (*Transcript, error) {
	o, err := resolveOptions(opts)
	if err != nil {
		return nil, err
	}

	text = strings.ReplaceAll(text, "\r\n", "\n")
	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyInput
	}

	budget := wordBudget(o.SegmentDuration)

	var segments []string
	for _, paragraph := range paragraphBreakRegex.Split(text, -1) {
		segments = append(segments, segmentParagraph(paragraph, budget)...)
	}

	if end := float64(len(segments)) * o.SegmentDuration; end > MaxTimestamp {
		return nil, &OptionError{
			Field: "segmentDuration",
			Reason: fmt.Sprintf(
				"%d cues of %gs end past %s",
				len(segments),
				o.SegmentDuration,
				FormatTimestamp(MaxTimestamp),
			),
		}
	}

	cues := make([]Cue, 0, len(segments))
	for i, seg := range segments {
		cue := Cue{
			ID:        defaultCueID(i),
			StartTime: float64(i) * o.SegmentDuration,
			EndTime:   float64(i+1) * o.SegmentDuration,
			Text:      seg,
		}
		if o.SpeakerDetection {
			cue.Speaker, cue.Text = extractSpeaker(seg, textSpeakerRules)
		}
		cues = append(cues, cue)
	}

	return &Transcript{
		Cues:     cues,
		Language: detectLanguage(text),
		Duration: duration(cues),
	}, nil
}

// TransformTextWithTimings builds one cue per segment using caller supplied
// time ranges instead of automatic segmentation.
func TransformTextWithTimings(
	segments []string,
	timings []Timing,
	opts *TransformOptions,
) ([]Cue, error) {
	if len(segments) != len(timings) {
		return nil, &LengthMismatchError{
			Segments: len(segments),
			Timings:  len(timings),
		}
	}

	o, err := resolveOptions(opts)
	if err != nil {
		return nil, err
	}

	cues := make([]Cue, 0, len(segments))
	for i, seg := range segments {
		timing := timings[i]
		if timing.Start < 0 || !(timing.Start < timing.End) || timing.End > MaxTimestamp {
			return nil, &TimingError{Index: i, Timing: timing}
		}

		cue := Cue{
			ID:        defaultCueID(i),
			StartTime: timing.Start,
			EndTime:   timing.End,
			Text:      strings.TrimSpace(seg),
		}
		if o.SpeakerDetection {
			cue.Speaker, cue.Text = extractSpeaker(cue.Text, textSpeakerRules)
		}
		cues = append(cues, cue)
	}

	return cues, nil
}

func resolveOptions(opts *TransformOptions) (TransformOptions, error) {
	if opts == nil {
		return DefaultTransformOptions(), nil
	}

	o := *opts
	if o.TimestampFormat == "" {
		o.TimestampFormat = TimestampSeconds
	}
	if err := o.Validate(); err != nil {
		return TransformOptions{}, err
	}
	return o, nil
}

// Validate reports the first invalid field.
func (o TransformOptions) Validate() error {
	if math.IsNaN(o.SegmentDuration) || math.IsInf(o.SegmentDuration, 0) ||
		o.SegmentDuration <= 0 {
		return &OptionError{
			Field:  "segmentDuration",
			Reason: fmt.Sprintf("must be a positive number of seconds, got %v", o.SegmentDuration),
		}
	}

	switch o.TimestampFormat {
	case TimestampSeconds, TimestampTimecode, "":
	default:
		return &OptionError{
			Field:  "timestampFormat",
			Reason: fmt.Sprintf("unsupported value %q (use seconds or timecode)", o.TimestampFormat),
		}
	}

	return nil
}

func wordBudget(segmentDuration float64) int {
	words := int(math.Round(segmentDuration / 60 * wordsPerMinute))
	if words < 1 {
		return 1
	}
	return words
}

// greedily packs sentences into segments of at most budget words; a sentence
// longer than the budget becomes a segment of its own
func segmentParagraph(paragraph string, budget int) []string {
	var segments []string
	var current []string
	currentWords := 0

	for _, sentence := range splitSentences(paragraph) {
		n := len(strings.Fields(sentence))
		if len(current) > 0 && currentWords+n > budget {
			segments = append(segments, strings.Join(current, " "))
			current = nil
			currentWords = 0
		}
		current = append(current, strings.Join(strings.Fields(sentence), " "))
		currentWords += n
	}

	if len(current) > 0 {
		segments = append(segments, strings.Join(current, " "))
	}
	return segments
}

// splits after '.', '!' or '?' followed by whitespace. Abbreviations are not
// recognized.
func splitSentences(paragraph string) []string {
	runes := []rune(strings.TrimSpace(paragraph))

	var sentences []string
	start := 0
	for i := 0; i < len(runes)-1; i++ {
		switch runes[i] {
		case '.', '!', '?':
			if unicode.IsSpace(runes[i+1]) {
				if s := strings.TrimSpace(string(runes[start : i+1])); s != "" {
					sentences = append(sentences, s)
				}
				start = i + 1
			}
		}
	}

	if start < len(runes) {
		if s := strings.TrimSpace(string(runes[start:])); s != "" {
			sentences = append(sentences, s)
		}
	}
	return sentences
}
