package checkbox

import (
	"errors"
	"regexp"
	"strings"
	"unicode"
)

const (
	CheckedBoxNormalized = `- [x]`
	// Regex patterns, anchored at the start of a line:
	// "  - [ x ]  buy milk" → marker "- [ x ]"
	CheckedPattern = `^\s*(-?\s*\[\s*x\s*\])\s*`
	// "-[   ] buy milk" → marker "-[   ]", spaces "   "; "- buy milk" → marker "-"
	UncheckedPattern = `^\s*(-?\s*\[(\s*)\]|-)\s*`

	minUncheckedSpaces = 1
	maxUncheckedSpaces = 3
)

var (
	// SuggestedCheckedBoxes are offered as per-user defaults.
	SuggestedCheckedBoxes = []string{"✅", "☑️", "✔️"}
	// SuggestedUncheckedBoxes are offered as per-user defaults.
	SuggestedUncheckedBoxes = []string{"- [ ]", "- [  ]", "- [   ]"}
	// checkedGlyphs are literal markers recognised as checked, longest variants first.
	checkedGlyphs = []string{"✅", "☑️", "✔️", CheckedBoxNormalized, "☑", "✔"}

	DefaultCheckedBox   = SuggestedCheckedBoxes[0]
	DefaultUncheckedBox = SuggestedUncheckedBoxes[0]
)

var ErrInvalidIndex = errors.New("invalid checkbox index")

type Service interface {
	// Parse extracts checkbox lines and normalizes the document-wide styles.
	Parse(text string, defaults Defaults) Data

	// ParseInlineQuery parses the relaxed inline-mode syntax.
	ParseInlineQuery(query string, defaults Defaults) Data

	// Toggle flips the checkbox on line idx in place.
	Toggle(data *Data, idx int) error

	// Stats calculates checklist progress.
	Stats(data Data) Stats

	// RenderRich formats data as Telegram HTML with a toggle link on every box.
	RenderRich(data Data, toggleURL ToggleURLFunc) string

	// RenderPlain formats data without markup.
	RenderPlain(data Data) string
}

type service struct {
	checked   *regexp.Regexp
	unchecked *regexp.Regexp
}

func New() Service {
	return &service{
		checked:   regexp.MustCompile(CheckedPattern),
		unchecked: regexp.MustCompile(UncheckedPattern),
	}
}

// marker is a recognised box: its length in the line and its canonical style.
type marker struct {
	prefixLen int
	style     string
}

// matchChecked tests the regex first, then the literal glyphs.
func (s *service) matchChecked(line string) (marker, bool) {
	if loc := s.checked.FindStringIndex(line); loc != nil {
		return marker{prefixLen: loc[1], style: CheckedBoxNormalized}, true
	}

	trimmed := strings.TrimLeftFunc(line, unicode.IsSpace)
	for _, glyph := range checkedGlyphs {
		if strings.HasPrefix(trimmed, glyph) {
			rest := strings.TrimLeftFunc(trimmed[len(glyph):], unicode.IsSpace)
			return marker{prefixLen: len(line) - len(rest), style: glyph}, true
		}
	}
	return marker{}, false
}

// matchUnchecked clamps the interior spaces of the box into [1,3].
func (s *service) matchUnchecked(line string) (marker, bool) {
	m := s.unchecked.FindStringSubmatchIndex(line)
	if m == nil {
		return marker{}, false
	}
	spaces := 0
	if m[4] >= 0 {
		spaces = m[5] - m[4]
	}
	spaces = max(minUncheckedSpaces, min(maxUncheckedSpaces, spaces))
	return marker{prefixLen: m[1], style: "- [" + strings.Repeat(" ", spaces) + "]"}, true
}

// Parse extracts checkboxes. The first box of each kind fixes that kind's
// style for the whole document.
func (s *service) Parse(text string, defaults Defaults) Data {
	rawLines := strings.Split(text, "\n")
	data := Data{Lines: make([]Line, 0, len(rawLines))}

	for _, raw := range rawLines {
		if m, ok := s.matchChecked(raw); ok {
			data.HasCheckBoxes = true
			if data.CheckedBoxStyle == "" {
				data.CheckedBoxStyle = m.style
			}
			data.Lines = append(data.Lines, Line{HasCheckBox: true, IsChecked: true, Text: raw[m.prefixLen:]})
			continue
		}
		if m, ok := s.matchUnchecked(raw); ok {
			data.HasCheckBoxes = true
			if data.UncheckedBoxStyle == "" {
				data.UncheckedBoxStyle = m.style
			}
			data.Lines = append(data.Lines, Line{HasCheckBox: true, Text: raw[m.prefixLen:]})
			continue
		}
		data.Lines = append(data.Lines, Line{Text: raw})
	}

	if data.CheckedBoxStyle == "" {
		data.CheckedBoxStyle = firstNonEmpty(defaults.CheckedBox, DefaultCheckedBox)
	}
	if data.UncheckedBoxStyle == "" {
		data.UncheckedBoxStyle = firstNonEmpty(defaults.UncheckedBox, DefaultUncheckedBox)
	}
	return data
}

// ParseInlineQuery accepts a single line of items separated by '.' or ','.
// Items without a box get an unchecked one.
func (s *service) ParseInlineQuery(query string, defaults Defaults) Data {
	items := strings.Split(query, "\n")
	if len(items) == 1 {
		items = strings.FieldsFunc(query, func(r rune) bool { return r == '.' || r == ',' })
	}

	lines := make([]string, 0, len(items))
	for _, item := range items {
		if strings.TrimSpace(item) == "" {
			continue
		}
		_, checked := s.matchChecked(item)
		_, unchecked := s.matchUnchecked(item)
		if !checked && !unchecked {
			item = DefaultUncheckedBox + " " + item
		}
		lines = append(lines, item)
	}
	return s.Parse(strings.Join(lines, "\n"), defaults)
}

// Toggle flips line idx; it must exist and carry a box.
func (s *service) Toggle(data *Data, idx int) error {
	if idx < 0 || idx >= len(data.Lines) || !data.Lines[idx].HasCheckBox {
		return ErrInvalidIndex
	}
	data.Lines[idx].IsChecked = !data.Lines[idx].IsChecked
	return nil
}

// Stats calculates checklist statistics
func (s *service) Stats(data Data) Stats {
	var st Stats
	for _, l := range data.Lines {
		if !l.HasCheckBox {
			continue
		}
		st.Total++
		if l.IsChecked {
			st.Completed++
		}
	}
	if st.Total == 0 {
		return st
	}
	st.Pending = st.Total - st.Completed
	st.Progress = float64(st.Completed) / float64(st.Total) * 100
	return st
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
