package subtitle

import (
	"bufio"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// SRT timestamps use a comma before the milliseconds; a dot is tolerated
var srtTimingRegex = regexp.MustCompile(
	`^(\d{1,2}:\d{2}:\d{2})[,.](\d{3})\s*-->\s*(\d{1,2}:\d{2}:\d{2})[,.](\d{3})`,
)

// ParseSRT parses a SubRip document into a transcript. Counter lines are
// optional and not kept; cues get positional ids like WebVTT cues without an
// identifier. A leading "Name: " becomes the speaker, matching SRTWriter.
func ParseSRT(document string) (*Transcript, error) {
	document = strings.TrimPrefix(document, "\ufeff")
	document = strings.ReplaceAll(document, "\r\n", "\n")
	document = strings.ReplaceAll(document, "\r", "\n")

	var cues []Cue
	var warnings []string

	var currentEntry *Cue
	var textLines []string
	timingLine := 0

	flush := func() {
		if currentEntry == nil {
			return
		}
		if len(textLines) == 0 {
			warnings = append(warnings, fmt.Sprintf("line %d: empty cue text", timingLine))
		}
		currentEntry.ID = defaultCueID(len(cues))
		currentEntry.Speaker, currentEntry.Text = extractSpeaker(
			strings.Join(textLines, "\n"),
			cueSpeakerRules,
		)
		cues = append(cues, *currentEntry)
		currentEntry = nil
		textLines = nil
	}

	scanner := bufio.NewScanner(strings.NewReader(document))
	lineNum := 0

	for scanner.Scan() {
		line := scanner.Text()
		lineNum++

		if isBlank(line) {
			flush()
			continue
		}

		if currentEntry != nil {
			textLines = append(textLines, line)
			continue
		}

		trimmed := strings.TrimSpace(line)
		if _, err := strconv.Atoi(trimmed); err == nil {
			continue
		}

		matches := srtTimingRegex.FindStringSubmatch(trimmed)
		if matches == nil {
			return nil, &ParseError{
				Line: lineNum,
				Msg:  fmt.Sprintf("expected SRT timing line, got %q", trimmed),
			}
		}

		entry, err := parseSRTTiming(matches, lineNum)
		if err != nil {
			return nil, err
		}
		currentEntry = &entry
		timingLine = lineNum
	}
	flush()

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading SRT document: %w", err)
	}

	if cues == nil {
		cues = []Cue{}
	}
	sortCues(cues)

	return &Transcript{
		Cues:     cues,
		Duration: duration(cues),
		Warnings: warnings,
	}, nil
}

func parseSRTTiming(matches []string, lineNum int) (Cue, error) {
	startTime, err := ParseTimestamp(matches[1] + "." + matches[2])
	if err != nil {
		return Cue{}, &ParseError{
			Line: lineNum,
			Msg:  "invalid start timestamp",
			Err:  err,
		}
	}
	endTime, err := ParseTimestamp(matches[3] + "." + matches[4])
	if err != nil {
		return Cue{}, &ParseError{
			Line: lineNum,
			Msg:  "invalid end timestamp",
			Err:  err,
		}
	}
	if startTime >= endTime {
		return Cue{}, &ParseError{
			Line: lineNum,
			Msg:  "cue start is not before end",
		}
	}

	return Cue{StartTime: startTime, EndTime: endTime}, nil
}
