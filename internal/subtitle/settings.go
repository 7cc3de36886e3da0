package subtitle

import (
	"strconv"
	"strings"
)

type Vertical string

const (
	VerticalRL Vertical = "rl"
	VerticalLR Vertical = "lr"
)

type Align string

const (
	AlignStart  Align = "start"
	AlignCenter Align = "center"
	AlignEnd    Align = "end"
	AlignLeft   Align = "left"
	AlignRight  Align = "right"
)

// number or percentage, as used by line and position
type Measure struct {
	Value   float64
	Percent bool
}

func (m Measure) String() string {
	s := strconv.FormatFloat(m.Value, 'f', -1, 64)
	if m.Percent {
		return s + "%"
	}
	return s
}

// CueSettings holds the positioning directives that may follow a timing line.
// Every field is optional: a zero enum or nil pointer means the setting was
// absent or invalid.
type CueSettings struct {
	Vertical Vertical
	Line     *Measure
	Position *Measure
	Size     *float64
	Align    Align
}

// parses whitespace separated key:value cue settings. Unknown keys, invalid
// values and tokens without a colon are ignored.
func ParseSettings(tokens string) CueSettings {
	var settings CueSettings

	for _, token := range strings.Fields(tokens) {
		key, value, ok := strings.Cut(token, ":")
		if !ok || key == "" || value == "" {
			continue
		}

		switch key {
		case "vertical":
			switch v := Vertical(value); v {
			case VerticalRL, VerticalLR:
				settings.Vertical = v
			}
		case "line":
			if m, ok := parseMeasure(value); ok {
				settings.Line = &m
			}
		case "position":
			if m, ok := parseMeasure(value); ok {
				settings.Position = &m
			}
		case "size":
			if n, err := strconv.ParseFloat(strings.TrimSuffix(value, "%"), 64); err == nil {
				settings.Size = &n
			}
		case "align":
			switch a := Align(value); a {
			case AlignStart, AlignCenter, AlignEnd, AlignLeft, AlignRight:
				settings.Align = a
			}
		}
	}

	return settings
}

// line and position may carry a trailing alignment (e.g. "10%,start")
func parseMeasure(value string) (Measure, bool) {
	value, _, _ = strings.Cut(value, ",")

	if strings.Contains(value, "%") {
		n, err := strconv.ParseFloat(strings.TrimSuffix(value, "%"), 64)
		if err != nil {
			return Measure{}, false
		}
		return Measure{Value: n, Percent: true}, true
	}

	n, err := strconv.Atoi(value)
	if err != nil {
		return Measure{}, false
	}
	return Measure{Value: float64(n)}, true
}
