package location

// Location identifies up to three copies of one checklist.
//
// The canonical copy (SourceChatID, SourceMessageID) is always readable by
// the bot through a forward. The foreign mirror exists when the canonical
// chat blocks forwarding; the inline copy lives in an inline-mode result
// the bot can edit but never read.
type Location struct {
	SourceChatID     int64
	SourceMessageID  int64
	ForeignChatID    int64  // 0 when absent
	ForeignMessageID int64  // 0 when absent
	InlineMessageID  string // "" when absent
	IsPersonal       bool   // inline copy editable by its creator only
	Salt             string // 3 chars
}

// HasForeign reports whether a foreign mirror has been sent.
func (l Location) HasForeign() bool {
	return l.ForeignChatID != 0 && l.ForeignMessageID != 0
}

// HasInline reports whether an inline copy exists.
func (l Location) HasInline() bool {
	return l.InlineMessageID != ""
}

// TargetChatID is the chat whose membership governs edits.
func (l Location) TargetChatID() int64 {
	if l.ForeignChatID != 0 {
		return l.ForeignChatID
	}
	return l.SourceChatID
}

// IsPrivate reports whether the checklist only lives in the chat of userID.
func (l Location) IsPrivate(userID int64) bool {
	return l.SourceChatID == userID && !l.HasInline() && l.ForeignChatID == 0
}
