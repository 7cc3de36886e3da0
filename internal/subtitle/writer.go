package subtitle

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// SubRip format
type SRTWriter struct{}

// WebVTT format
type VTTWriter struct{}

// Advanced SubStation Alpha format
type ASSWriter struct {
	Title    string
	FontName string
	FontSize int
}

// transcript as indented JSON
type JSONWriter struct{}

func NewWriter(format Format) (Writer, error) {
	switch format {
	case FormatSRT:
		return &SRTWriter{}, nil
	case FormatVTT:
		return &VTTWriter{}, nil
	case FormatASS:
		return &ASSWriter{
			Title:    "Interactive Transcript",
			FontName: "Arial",
			FontSize: 20,
		}, nil
	case FormatJSON:
		return &JSONWriter{}, nil
	default:
		return nil, fmt.Errorf("unsupported format: %s", format)
	}
}

// Serialize renders cues as a WebVTT document. Positional ids (cue-<index>)
// are omitted, speakers become voice tags and cue settings are not emitted.
// Blank lines inside cue text are dropped. Times past MaxTimestamp are
// written with three hour digits and do not parse back.
func Serialize(cues []Cue, language string) string {
	var sb strings.Builder

	// VTT header
	sb.WriteString("WEBVTT")
	if language != "" {
		sb.WriteString(" lang:" + language)
	}
	sb.WriteString("\n\n")

	for i, cue := range cues {
		if i > 0 {
			sb.WriteString("\n")
		}

		// optional cue identifier
		if cue.ID != "" && cue.ID != defaultCueID(i) {
			sb.WriteString(cue.ID + "\n")
		}

		// timestamps: 00:00:00.000 --> 00:00:00.000
		sb.WriteString(fmt.Sprintf("%s --> %s\n",
			FormatTimestamp(cue.StartTime),
			FormatTimestamp(cue.EndTime)))

		// text
		if cue.Speaker != "" {
			sb.WriteString("<v " + cue.Speaker + ">")
		}
		sb.WriteString(cueBody(cue.Text))
		sb.WriteString("\n")
	}

	return sb.String()
}

// drops blank lines from cue text; a blank line would end the cue body
func cueBody(text string) string {
	if !strings.Contains(text, "\n") {
		return text
	}
	lines := strings.Split(text, "\n")
	kept := lines[:0]
	for _, line := range lines {
		if !isBlank(line) {
			kept = append(kept, line)
		}
	}
	return strings.Join(kept, "\n")
}

// writes the transcript to a VTT file
func (w *VTTWriter) Write(t *Transcript, path string) error {
	if err := ensureDir(path); err != nil {
		return err
	}
	return os.WriteFile(path, []byte(Serialize(t.Cues, t.Language)), 0644)
}

// writes the transcript to an SRT file
func (w *SRTWriter) Write(t *Transcript, path string) error {
	if err := ensureDir(path); err != nil {
		return err
	}

	var sb strings.Builder
	for i, cue := range t.Cues {
		// index (1-based)
		sb.WriteString(fmt.Sprintf("%d\n", i+1))

		// timestamps: 00:00:00,000 --> 00:00:00,000
		sb.WriteString(fmt.Sprintf("%s --> %s\n",
			formatSRTTime(cue.StartTime),
			formatSRTTime(cue.EndTime)))

		// text
		sb.WriteString(speakerPrefix(cue) + cue.Text)
		sb.WriteString("\n\n")
	}

	return os.WriteFile(path, []byte(sb.String()), 0644)
}

// writes the transcript to an ASS file
func (w *ASSWriter) Write(t *Transcript, path string) error {
	if err := ensureDir(path); err != nil {
		return err
	}

	var sb strings.Builder

	// script info section
	sb.WriteString("[Script Info]\n")
	sb.WriteString(fmt.Sprintf("Title: %s\n", w.Title))
	sb.WriteString("ScriptType: v4.00+\n")
	sb.WriteString("Collisions: Normal\n")
	sb.WriteString("PlayDepth: 0\n\n")

	// v4+ styles section
	sb.WriteString("[V4+ Styles]\n")
	sb.WriteString("Format: Name, Fontname, Fontsize, PrimaryColour, SecondaryColour, OutlineColour, BackColour, Bold, Italic, Underline, StrikeOut, ScaleX, ScaleY, Spacing, Angle, BorderStyle, Outline, Shadow, Alignment, MarginL, MarginR, MarginV, Encoding\n")
	sb.WriteString(fmt.Sprintf("Style: Default,%s,%d,&H00FFFFFF,&H000000FF,&H00000000,&H00000000,0,0,0,0,100,100,0,0,1,2,2,2,10,10,10,1\n\n",
		w.FontName, w.FontSize))

	// events section; the Name field carries the speaker
	sb.WriteString("[Events]\n")
	sb.WriteString("Format: Layer, Start, End, Style, Name, MarginL, MarginR, MarginV, Effect, Text\n")

	for _, cue := range t.Cues {
		sb.WriteString(fmt.Sprintf("Dialogue: 0,%s,%s,Default,%s,0,0,0,,%s\n",
			formatASSTime(cue.StartTime),
			formatASSTime(cue.EndTime),
			strings.ReplaceAll(cue.Speaker, ",", " "),
			escapeASSText(cue.Text)))
	}

	return os.WriteFile(path, []byte(sb.String()), 0644)
}

// writes the transcript as JSON
func (w *JSONWriter) Write(t *Transcript, path string) error {
	if err := ensureDir(path); err != nil {
		return err
	}

	data, err := json.MarshalIndent(t, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode transcript: %w", err)
	}
	return os.WriteFile(path, append(data, '\n'), 0644)
}

func speakerPrefix(cue Cue) string {
	if cue.Speaker == "" {
		return ""
	}
	return cue.Speaker + ": "
}

func formatSRTTime(seconds float64) string {
	hours, minutes, secs, millis := timestampParts(seconds)
	return fmt.Sprintf("%02d:%02d:%02d,%03d", hours, minutes, secs, millis)
}

func formatASSTime(seconds float64) string {
	hours, minutes, secs, millis := timestampParts(seconds)
	return fmt.Sprintf("%d:%02d:%02d.%02d", hours, minutes, secs, millis/10)
}

func escapeASSText(text string) string {
	text = strings.ReplaceAll(text, "\n", "\\N")
	return text
}

func ensureDir(path string) error {
	dir := filepath.Dir(path)
	return os.MkdirAll(dir, 0755)
}

// output format based on file extension
func GetFormatFromExtension(path string) Format {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".srt":
		return FormatSRT
	case ".vtt":
		return FormatVTT
	case ".ass", ".ssa":
		return FormatASS
	case ".json":
		return FormatJSON
	default:
		return FormatVTT
	}
}

// file extension for a format
func GetExtensionForFormat(format Format) string {
	switch format {
	case FormatSRT:
		return ".srt"
	case FormatVTT:
		return ".vtt"
	case FormatASS:
		return ".ass"
	case FormatJSON:
		return ".json"
	default:
		return ".vtt"
	}
}

// ParseFormat maps a user supplied format name to a Format.
func ParseFormat(name string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(name))); f {
	case FormatSRT, FormatVTT, FormatASS, FormatJSON:
		return f, nil
	default:
		return "", fmt.Errorf("unsupported format %q: use vtt, srt, ass, or json", name)
	}
}
