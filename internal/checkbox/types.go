package checkbox

// Line is one line of a checklist message.
type Line struct {
	HasCheckBox bool   `json:"hasCheckBox"`
	IsChecked   bool   `json:"isChecked"` // always false when HasCheckBox is false
	Text        string `json:"text"`
}

// Data is a parsed checklist together with its document-wide box styles.
type Data struct {
	HasCheckBoxes     bool   `json:"hasCheckBoxes"`
	Lines             []Line `json:"lines"`
	CheckedBoxStyle   string `json:"checkedBoxStyle"`
	UncheckedBoxStyle string `json:"uncheckedBoxStyle"`
}

// Defaults are the styles used when the text has no box of a kind.
// Empty fields fall back to DefaultCheckedBox / DefaultUncheckedBox.
type Defaults struct {
	CheckedBox   string
	UncheckedBox string
}

// Stats represents checklist progress.
type Stats struct {
	Total     int
	Completed int
	Pending   int
	Progress  float64 // 0-100
}

// ToggleURLFunc returns the link placed on the box of line idx.
type ToggleURLFunc func(idx int) string
