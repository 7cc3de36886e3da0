package subtitle

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	// <start> --> <end> [settings...]; timestamps are validated separately
	timingLineRegex = regexp.MustCompile(`^(\S+)[ \t]+-->[ \t]+(\S+)(?:[ \t]+(.*))?$`)

	// attempted timing directives: an arrow of any length or a leading mm:ss
	malformedTimingRegex = regexp.MustCompile(`->|^\d+:\d`)

	nonCueBlockRegex = regexp.MustCompile(`^(NOTE|STYLE|REGION)(\s|$)`)

	headerLanguageRegex   = regexp.MustCompile(`\blang[:=]\s*([A-Za-z0-9_-]+)`)
	metadataLanguageRegex = regexp.MustCompile(`^Language:\s*([A-Za-z0-9_-]+)\s*$`)
)

// cue as scanned, before settings are dropped
type cueBlock struct {
	cue      Cue
	settings CueSettings
	line     int
}

type vttParser struct {
	lines    []string
	cues     []Cue
	warnings []string
}

// Parse parses a complete WebVTT document. Structural problems are returned
// as *ParseError; recoverable ones (empty cue text) are reported in
// Transcript.Warnings.
func Parse(document string) (*Transcript, error) {
	document = strings.TrimPrefix(document, "\ufeff")
	document = strings.ReplaceAll(document, "\r\n", "\n")
	document = strings.ReplaceAll(document, "\r", "\n")

	p := &vttParser{lines: strings.Split(document, "\n")}
	return p.parse()
}

func (p *vttParser) parse() (*Transcript, error) {
	if !hasSignature(p.lines[0]) {
		return nil, &ParseError{
			Line: 1,
			Msg:  "missing WEBVTT signature",
		}
	}

	language := ""
	if m := headerLanguageRegex.FindStringSubmatch(p.lines[0]); m != nil {
		language = m[1]
	}

	// header metadata runs up to the first blank line
	i := 1
	for ; i < len(p.lines) && !isBlank(p.lines[i]); i++ {
		if language != "" {
			continue
		}
		if m := metadataLanguageRegex.FindStringSubmatch(strings.TrimSpace(p.lines[i])); m != nil {
			language = m[1]
		}
	}

	p.cues = []Cue{}
	for {
		for i < len(p.lines) && isBlank(p.lines[i]) {
			i++
		}
		if i >= len(p.lines) {
			break
		}

		line := strings.TrimSpace(p.lines[i])
		var next string
		if i+1 < len(p.lines) {
			next = strings.TrimSpace(p.lines[i+1])
		}

		var err error
		switch {
		case nonCueBlockRegex.MatchString(line):
			i = p.skipBlock(i)
		case timingLineRegex.MatchString(line):
			i, err = p.parseCue(i, "")
		case timingLineRegex.MatchString(next):
			i, err = p.parseCue(i+1, line)
		case malformedTimingRegex.MatchString(line):
			return nil, &ParseError{
				Line: i + 1,
				Msg:  fmt.Sprintf("malformed timing line %q", line),
			}
		case next != "" && malformedTimingRegex.MatchString(next):
			return nil, &ParseError{
				Line: i + 2,
				Msg:  fmt.Sprintf("malformed timing line %q", next),
			}
		default:
			i = p.skipBlock(i)
		}
		if err != nil {
			return nil, err
		}
	}

	sortCues(p.cues)

	return &Transcript{
		Cues:     p.cues,
		Language: language,
		Duration: duration(p.cues),
		Warnings: p.warnings,
	}, nil
}

// parses the cue whose timing line is at index t and returns the index of
// the first line after the cue body
func (p *vttParser) parseCue(t int, id string) (int, error) {
	block, err := p.scanTiming(t)
	if err != nil {
		return t, err
	}

	var textLines []string
	i := t + 1
	for ; i < len(p.lines) && !isBlank(p.lines[i]); i++ {
		textLines = append(textLines, p.lines[i])
	}

	if len(textLines) == 0 {
		p.warnings = append(p.warnings, fmt.Sprintf(
			"line %d: empty cue text",
			block.line,
		))
	}

	if id == "" {
		id = defaultCueID(len(p.cues))
	}
	block.cue.ID = id
	block.cue.Speaker, block.cue.Text = extractSpeaker(
		strings.Join(textLines, "\n"),
		cueSpeakerRules,
	)

	// settings are positioning metadata for renderers and are not kept
	p.cues = append(p.cues, block.cue)
	return i, nil
}

func (p *vttParser) scanTiming(t int) (cueBlock, error) {
	lineNum := t + 1
	matches := timingLineRegex.FindStringSubmatch(strings.TrimSpace(p.lines[t]))

	startTime, err := ParseTimestamp(matches[1])
	if err != nil {
		return cueBlock{}, &ParseError{
			Line: lineNum,
			Msg:  "invalid start timestamp",
			Err:  err,
		}
	}
	endTime, err := ParseTimestamp(matches[2])
	if err != nil {
		return cueBlock{}, &ParseError{
			Line: lineNum,
			Msg:  "invalid end timestamp",
			Err:  err,
		}
	}
	if startTime >= endTime {
		return cueBlock{}, &ParseError{
			Line: lineNum,
			Msg: fmt.Sprintf(
				"cue start %s is not before end %s",
				matches[1],
				matches[2],
			),
		}
	}

	return cueBlock{
		cue: Cue{
			StartTime: startTime,
			EndTime:   endTime,
		},
		settings: ParseSettings(matches[3]),
		line:     lineNum,
	}, nil
}

// skips a block that is not a cue, returning the index of the blank line
// that ends it
func (p *vttParser) skipBlock(i int) int {
	for i < len(p.lines) && !isBlank(p.lines[i]) {
		i++
	}
	return i
}

// WEBVTT alone or followed by a space or tab and free text
func hasSignature(line string) bool {
	rest, ok := strings.CutPrefix(line, "WEBVTT")
	return ok && (rest == "" || rest[0] == ' ' || rest[0] == '\t')
}

func isBlank(line string) bool {
	return strings.TrimSpace(line) == ""
}
