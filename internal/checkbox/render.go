package checkbox

import "strings"

var (
	htmlEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")
	attrEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;", `"`, "&quot;")
)

// EscapeHTML escapes the characters Telegram's HTML parse mode reserves.
func EscapeHTML(s string) string {
	return htmlEscaper.Replace(s)
}

func (d Data) styleOf(l Line) string {
	if l.IsChecked {
		return d.CheckedBoxStyle
	}
	return d.UncheckedBoxStyle
}

// RenderRich wraps each box and its trailing space in a link, so the whole
// box is the tap target. Checked items are struck through.
func (s *service) RenderRich(data Data, toggleURL ToggleURLFunc) string {
	out := make([]string, len(data.Lines))
	for i, l := range data.Lines {
		if !l.HasCheckBox {
			out[i] = EscapeHTML(l.Text)
			continue
		}
		text := EscapeHTML(l.Text)
		if l.IsChecked {
			text = "<s>" + text + "</s>"
		}
		out[i] = `<a href="` + attrEscaper.Replace(toggleURL(i)) + `">` + EscapeHTML(data.styleOf(l)) + " </a>" + text
	}
	return strings.Join(out, "\n")
}

// RenderPlain is used where markup is unavailable: inline result
// descriptions and recreation captions.
func (s *service) RenderPlain(data Data) string {
	out := make([]string, len(data.Lines))
	for i, l := range data.Lines {
		if !l.HasCheckBox {
			out[i] = l.Text
			continue
		}
		out[i] = data.styleOf(l) + " " + l.Text
	}
	return strings.Join(out, "\n")
}

// NoURL is the placeholder toggle URL used before message ids exist.
func NoURL(int) string { return "" }
