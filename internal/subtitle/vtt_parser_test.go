package subtitle

import (
	"errors"
	"strings"
	"testing"
)

func TestParse(t *testing.T) {
	content := `WEBVTT lang:en
Kind: captions

1
00:00:01.000 --> 00:00:04.000
Hello, world!

intro
00:05.500 --> 00:08.200 align:start line:0
This is a test.
With multiple lines.

00:00:10.000 --> 00:00:12.500
No cue identifier.
`
	result, err := Parse(content)
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}

	if result.Language != "en" {
		t.Errorf("expected language en, got %q", result.Language)
	}
	if len(result.Warnings) != 0 {
		t.Errorf("expected no warnings, got %v", result.Warnings)
	}
	if len(result.Cues) != 3 {
		t.Fatalf("expected 3 cues, got %d", len(result.Cues))
	}

	want := []Cue{
		{ID: "1", StartTime: 1, EndTime: 4, Text: "Hello, world!"},
		{ID: "intro", StartTime: 5.5, EndTime: 8.2, Text: "This is a test.\nWith multiple lines."},
		{ID: "cue-2", StartTime: 10, EndTime: 12.5, Text: "No cue identifier."},
	}
	for i, w := range want {
		if result.Cues[i] != w {
			t.Errorf("cue %d: expected %+v, got %+v", i, w, result.Cues[i])
		}
	}

	if result.Duration != 12.5 {
		t.Errorf("expected duration 12.5, got %v", result.Duration)
	}
}

func TestParseStructuralErrors(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantLine int
		wantTS   bool
	}{
		{
			name:     "missing header",
			input:    "no header",
			wantLine: 1,
		},
		{
			name:     "empty document",
			input:    "",
			wantLine: 1,
		},
		{
			name:     "signature run together with text",
			input:    "WEBVTTX\n\n00:00:01.000 --> 00:00:02.000\nX",
			wantLine: 1,
		},
		{
			name:     "signature followed by punctuation",
			input:    "WEBVTT-captions\n",
			wantLine: 1,
		},
		{
			name:     "header not on first line",
			input:    "\nWEBVTT\n",
			wantLine: 1,
		},
		{
			name:     "start after end",
			input:    "WEBVTT\n\n00:00:05.000 --> 00:00:03.000\nX",
			wantLine: 3,
		},
		{
			name:     "start equals end",
			input:    "WEBVTT\n\n00:00:05.000 --> 00:00:05.000\nX",
			wantLine: 3,
		},
		{
			name:     "single dash arrow",
			input:    "WEBVTT\n\n00:00:01.000 -> 00:00:02.000\nX",
			wantLine: 3,
		},
		{
			name:     "single dash arrow after identifier",
			input:    "WEBVTT\n\nintro\n00:00:01.000 -> 00:00:02.000\nX",
			wantLine: 4,
		},
		{
			name:     "missing arrow",
			input:    "WEBVTT\n\n00:00:01.000 00:00:02.000\nX",
			wantLine: 3,
		},
		{
			name:     "bad start timestamp",
			input:    "WEBVTT\n\n00:00:1.000 --> 00:00:02.000\nX",
			wantLine: 3,
			wantTS:   true,
		},
		{
			name:     "bad end timestamp after identifier",
			input:    "WEBVTT\n\n1\n00:00:01.000 --> 00:00:02.00\nX",
			wantLine: 4,
			wantTS:   true,
		},
		{
			name:     "seconds out of range",
			input:    "WEBVTT\n\n00:00:01.000 --> 00:00:61.000\nX",
			wantLine: 3,
			wantTS:   true,
		},
		{
			name: "error in later cue",
			input: "WEBVTT\n\n00:00:01.000 --> 00:00:02.000\nfine\n\n" +
				"00:00:03.000 --> 00:00:02.000\nbroken",
			wantLine: 6,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := Parse(tt.input)
			if err == nil {
				t.Fatalf("expected error, got result %+v", result)
			}
			if result != nil {
				t.Errorf("expected nil result on error, got %+v", result)
			}

			var parseErr *ParseError
			if !errors.As(err, &parseErr) {
				t.Fatalf("expected *ParseError, got %T: %v", err, err)
			}
			if parseErr.Line != tt.wantLine {
				t.Errorf("expected line %d, got %d (%v)", tt.wantLine, parseErr.Line, err)
			}

			var tsErr *TimestampFormatError
			if got := errors.As(err, &tsErr); got != tt.wantTS {
				t.Errorf("wraps TimestampFormatError = %v, want %v", got, tt.wantTS)
			}
		})
	}
}

func TestParseSortsCuesAndKeepsParseOrderIDs(t *testing.T) {
	content := "WEBVTT\n\n" +
		"00:00:10.000 --> 00:00:11.000\nthird\n\n" +
		"00:00:01.000 --> 00:00:02.000\nfirst\n\n" +
		"00:00:05.000 --> 00:00:06.000\nsecond\n"

	result, err := Parse(content)
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}

	wantText := []string{"first", "second", "third"}
	wantID := []string{"cue-1", "cue-2", "cue-0"}
	for i := range wantText {
		if result.Cues[i].Text != wantText[i] {
			t.Errorf("cue %d: expected text %q, got %q", i, wantText[i], result.Cues[i].Text)
		}
		if result.Cues[i].ID != wantID[i] {
			t.Errorf("cue %d: expected id %q, got %q", i, wantID[i], result.Cues[i].ID)
		}
	}
	for i := 1; i < len(result.Cues); i++ {
		if result.Cues[i].StartTime < result.Cues[i-1].StartTime {
			t.Errorf("cues not sorted at %d", i)
		}
	}
	if result.Duration != 11 {
		t.Errorf("expected duration 11, got %v", result.Duration)
	}
}

func TestParseSortIsStable(t *testing.T) {
	content := "WEBVTT\n\n" +
		"00:00:01.000 --> 00:00:03.000\na\n\n" +
		"00:00:01.000 --> 00:00:02.000\nb\n\n" +
		"00:00:00.500 --> 00:00:01.000\nc\n\n" +
		"00:00:01.000 --> 00:00:04.000\nd\n"

	result, err := Parse(content)
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}

	var got []string
	for _, c := range result.Cues {
		got = append(got, c.Text)
	}
	if strings.Join(got, "") != "cabd" {
		t.Errorf("expected order cabd, got %v", got)
	}
	if result.Duration != 4 {
		t.Errorf("expected duration 4, got %v", result.Duration)
	}
}

func TestParseEmptyCueWarning(t *testing.T) {
	content := "WEBVTT\n\n" +
		"00:00:01.000 --> 00:00:02.000\n\n" +
		"00:00:03.000 --> 00:00:04.000\nHello\n"

	result, err := Parse(content)
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}

	if len(result.Warnings) != 1 {
		t.Fatalf("expected 1 warning, got %v", result.Warnings)
	}
	if !strings.Contains(result.Warnings[0], "line 3") {
		t.Errorf("expected warning to cite line 3, got %q", result.Warnings[0])
	}
	if len(result.Cues) != 2 {
		t.Fatalf("expected 2 cues, got %d", len(result.Cues))
	}
	if result.Cues[0].Text != "" || result.Cues[0].Speaker != "" {
		t.Errorf("expected empty cue, got %+v", result.Cues[0])
	}
	if result.Cues[1].Text != "Hello" {
		t.Errorf("expected Hello, got %q", result.Cues[1].Text)
	}
}

func TestParseEmptyCueAtEOF(t *testing.T) {
	result, err := Parse("WEBVTT\n\nlast\n00:00:01.000 --> 00:00:02.000")
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if len(result.Warnings) != 1 || !strings.Contains(result.Warnings[0], "line 4") {
		t.Errorf("expected warning citing line 4, got %v", result.Warnings)
	}
	if len(result.Cues) != 1 || result.Cues[0].ID != "last" {
		t.Errorf("unexpected cues %+v", result.Cues)
	}
}

func TestParseWhitespaceOnlyLineEndsCueBody(t *testing.T) {
	content := "WEBVTT\n\n" +
		"00:00:01.000 --> 00:00:02.000\nfirst\n   \t\nstray text\n"

	result, err := Parse(content)
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if len(result.Cues) != 1 {
		t.Fatalf("expected 1 cue, got %d", len(result.Cues))
	}
	if result.Cues[0].Text != "first" {
		t.Errorf("expected body to stop at whitespace-only line, got %q", result.Cues[0].Text)
	}
}

func TestParseKeepsCueTextVerbatim(t *testing.T) {
	content := "WEBVTT\n\n00:00:01.000 --> 00:00:02.000\n  indented\n<i>styled</i>  \n"

	result, err := Parse(content)
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if want := "  indented\n<i>styled</i>  "; result.Cues[0].Text != want {
		t.Errorf("expected %q, got %q", want, result.Cues[0].Text)
	}
}

func TestParseSkipsNonCueBlocks(t *testing.T) {
	content := `WEBVTT

NOTE written at 10:30 by the editor
-> arrows inside notes are fine

STYLE
::cue {
  color: yellow;
}

REGION
id:fred width:40%

Some stray paragraph
without any timing

00:00:01.000 --> 00:00:02.000
kept
`
	result, err := Parse(content)
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if len(result.Cues) != 1 || result.Cues[0].Text != "kept" {
		t.Fatalf("expected a single kept cue, got %+v", result.Cues)
	}
	if result.Cues[0].ID != "cue-0" {
		t.Errorf("expected id cue-0, got %q", result.Cues[0].ID)
	}
	if len(result.Warnings) != 0 {
		t.Errorf("skipped blocks must not warn, got %v", result.Warnings)
	}
}

func TestParseHeaderMetadata(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantLang string
		wantCues int
	}{
		{"lang colon", "WEBVTT lang:fr\n", "fr", 0},
		{"lang equals", "WEBVTT - lang=en-US\n", "en-US", 0},
		{"no language", "WEBVTT\n", "", 0},
		{"tab after signature", "WEBVTT\tlang:it\n", "it", 0},
		{"metadata language", "WEBVTT\nKind: captions\nLanguage: de\n\n00:01.000 --> 00:02.000\nHallo\n", "de", 1},
		{"header line wins", "WEBVTT lang:es\nLanguage: de\n", "es", 0},
		{"metadata is not a cue", "WEBVTT\nX-TIMESTAMP-MAP=LOCAL:00:00:00.000,MPEGTS:0\n\n", "", 0},
		{"byte order mark", "\ufeffWEBVTT lang:ja\n", "ja", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := Parse(tt.input)
			if err != nil {
				t.Fatalf("Parse returned error: %v", err)
			}
			if result.Language != tt.wantLang {
				t.Errorf("expected language %q, got %q", tt.wantLang, result.Language)
			}
			if len(result.Cues) != tt.wantCues {
				t.Errorf("expected %d cues, got %d", tt.wantCues, len(result.Cues))
			}
		})
	}
}

func TestParseEmptyDocument(t *testing.T) {
	result, err := Parse("WEBVTT")
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if result.Cues == nil || len(result.Cues) != 0 {
		t.Errorf("expected empty non-nil cues, got %#v", result.Cues)
	}
	if result.Duration != 0 {
		t.Errorf("expected duration 0, got %v", result.Duration)
	}
	if result.Warnings != nil {
		t.Errorf("expected nil warnings, got %v", result.Warnings)
	}
}

func TestParseLineEndings(t *testing.T) {
	unix := "WEBVTT\n\n1\n00:00:01.000 --> 00:00:02.000\nline one\nline two\n"
	windows := strings.ReplaceAll(unix, "\n", "\r\n")
	classicMac := strings.ReplaceAll(unix, "\n", "\r")

	want, err := Parse(unix)
	if err != nil {
		t.Fatalf("Parse(unix) error: %v", err)
	}
	for name, doc := range map[string]string{"crlf": windows, "cr": classicMac} {
		got, err := Parse(doc)
		if err != nil {
			t.Fatalf("Parse(%s) error: %v", name, err)
		}
		if len(got.Cues) != 1 || got.Cues[0] != want.Cues[0] {
			t.Errorf("%s: expected %+v, got %+v", name, want.Cues, got.Cues)
		}
	}
}

func TestParseSpeakers(t *testing.T) {
	tests := []struct {
		name        string
		text        string
		wantSpeaker string
		wantText    string
	}{
		{"voice tag wins over colon", "<v Alice>Hi Bob: hello", "Alice", "Hi Bob: hello"},
		{"voice tag with class and close", "<v.loud Bob Smith>Hey there</v>", "Bob Smith", "Hey there"},
		{"multi-line voice tag", "<v Carol>first\nsecond", "Carol", "first\nsecond"},
		{"colon speaker", "Dave: good morning", "Dave", "good morning"},
		{"colon speaker multi-line", "Eve: one\ntwo", "Eve", "one\ntwo"},
		{"colon prefix too long", strings.Repeat("x", 50) + ": not a name", "", strings.Repeat("x", 50) + ": not a name"},
		{"colon prefix just under limit", strings.Repeat("y", 49) + ": ok", strings.Repeat("y", 49), "ok"},
		{"no speaker", "plain text", "", "plain text"},
		{"colon on second line only", "plain\nFrank: later", "", "plain\nFrank: later"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := "WEBVTT\n\n00:00:01.000 --> 00:00:02.000\n" + tt.text + "\n"
			result, err := Parse(doc)
			if err != nil {
				t.Fatalf("Parse returned error: %v", err)
			}
			cue := result.Cues[0]
			if cue.Speaker != tt.wantSpeaker {
				t.Errorf("speaker = %q, want %q", cue.Speaker, tt.wantSpeaker)
			}
			if cue.Text != tt.wantText {
				t.Errorf("text = %q, want %q", cue.Text, tt.wantText)
			}
		})
	}
}

func TestParseIsReentrant(t *testing.T) {
	doc := "WEBVTT\n\n00:00:01.000 --> 00:00:02.000\nA: hi\n"

	done := make(chan error, 8)
	for i := 0; i < 8; i++ {
		go func() {
			result, err := Parse(doc)
			if err == nil && (len(result.Cues) != 1 || result.Cues[0].Speaker != "A") {
				err = errors.New("unexpected result")
			}
			done <- err
		}()
	}
	for i := 0; i < 8; i++ {
		if err := <-done; err != nil {
			t.Error(err)
		}
	}
}
