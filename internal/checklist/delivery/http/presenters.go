package http

import (
	"checkbot/internal/checkbox"
	"checkbot/internal/checklist"
)

// --- Request DTOs ---

type lineDTO struct {
	HasCheckBox bool   `json:"hasCheckBox"`
	IsChecked   bool   `json:"isChecked"`
	Text        string `json:"text"`
}

type messageReq struct {
	InitData string `json:"initData"`
	Location string `json:"location" binding:"required"`
}

func (r messageReq) toInput() checklist.ReadInput {
	return checklist.ReadInput{Location: r.Location}
}

// ---

type linesReq struct {
	InitData       string    `json:"initData"`
	Location       string    `json:"location"       binding:"required"`
	ChecklistLines []lineDTO `json:"checklistLines" binding:"required,min=1"`
}

func (r linesReq) toInput() checklist.UpdateInput {
	lines := make([]checkbox.Line, len(r.ChecklistLines))
	for i, l := range r.ChecklistLines {
		lines[i] = checkbox.Line{HasCheckBox: l.HasCheckBox, IsChecked: l.IsChecked, Text: l.Text}
	}
	return checklist.UpdateInput{Location: r.Location, Lines: lines}
}

// --- Response DTOs ---

func newMessageResp(out checklist.ReadOutput) []lineDTO {
	lines := make([]lineDTO, len(out.Data.Lines))
	for i, l := range out.Data.Lines {
		lines[i] = lineDTO{HasCheckBox: l.HasCheckBox, IsChecked: l.IsChecked, Text: l.Text}
	}
	return lines
}
