package location

import (
	"strconv"

	"checkbot/pkg/base62"
	"checkbot/pkg/inlineid"
)

const (
	// Prefix marks every checklist deep-link payload.
	Prefix = "t"

	TagChat             = "c"
	TagInline           = "i"
	TagInlinePersonal   = "j"
	TagInline64         = "I"
	TagInline64Personal = "J"
	TagForeign          = "f"
)

// Variant is one arm of the token sum type. Each arm carries exactly the
// location fields its wire shape can express.
type Variant interface {
	Tag() string
	// fields are the variant-specific wire fields, between the tag and the signature.
	fields() []string
	// location rebuilds the location the variant describes, without salt.
	location() Location
}

// ChatVariant is a checklist living only in SourceChatID.
type ChatVariant struct {
	SourceChatID    int64
	SourceMessageID int64
}

// InlineVariant carries the inline message id verbatim.
type InlineVariant struct {
	SourceChatID    int64
	SourceMessageID int64
	InlineMessageID string
	Personal        bool
}

// Inline64Variant carries the unpacked 64-bit inline id. The owner id is not
// transmitted: it always equals SourceChatID.
type Inline64Variant struct {
	SourceChatID    int64
	SourceMessageID int64
	DCID            int32
	ID              int32
	AccessHash      int64
	Personal        bool
}

// ForeignVariant is a checklist mirrored into a chat that blocks forwards.
type ForeignVariant struct {
	SourceChatID     int64
	SourceMessageID  int64
	ForeignChatID    int64
	ForeignMessageID int64
}

func (ChatVariant) Tag() string { return TagChat }

func (v ChatVariant) fields() []string {
	return []string{b36(v.SourceChatID), b36(v.SourceMessageID)}
}

func (v ChatVariant) location() Location {
	return Location{SourceChatID: v.SourceChatID, SourceMessageID: v.SourceMessageID}
}

func (v InlineVariant) Tag() string {
	if v.Personal {
		return TagInlinePersonal
	}
	return TagInline
}

func (v InlineVariant) fields() []string {
	return []string{b36(v.SourceChatID), b36(v.SourceMessageID), v.InlineMessageID}
}

func (v InlineVariant) location() Location {
	return Location{
		SourceChatID:    v.SourceChatID,
		SourceMessageID: v.SourceMessageID,
		InlineMessageID: v.InlineMessageID,
		IsPersonal:      v.Personal,
	}
}

func (v Inline64Variant) Tag() string {
	if v.Personal {
		return TagInline64Personal
	}
	return TagInline64
}

func (v Inline64Variant) fields() []string {
	return []string{
		b36(v.SourceChatID),
		b36(v.SourceMessageID),
		b36(int64(v.DCID)),
		b36(int64(v.ID)),
		base62.EncodeUint64(uint64(v.AccessHash)),
	}
}

func (v Inline64Variant) location() Location {
	id := inlineid.ID64{
		DCID:       v.DCID,
		OwnerID:    v.SourceChatID,
		ID:         v.ID,
		AccessHash: v.AccessHash,
	}
	return Location{
		SourceChatID:    v.SourceChatID,
		SourceMessageID: v.SourceMessageID,
		InlineMessageID: id.Pack(),
		IsPersonal:      v.Personal,
	}
}

func (ForeignVariant) Tag() string { return TagForeign }

func (v ForeignVariant) fields() []string {
	return []string{
		b36(v.SourceChatID),
		b36(v.SourceMessageID),
		b36(v.ForeignChatID),
		b36(v.ForeignMessageID),
	}
}

func (v ForeignVariant) location() Location {
	return Location{
		SourceChatID:     v.SourceChatID,
		SourceMessageID:  v.SourceMessageID,
		ForeignChatID:    v.ForeignChatID,
		ForeignMessageID: v.ForeignMessageID,
	}
}

// Token is a signed variant, the durable form of a Location.
type Token struct {
	Variant   Variant
	Signature string
}

// Parts is the token as deep-link fields: prefix, tag, fields, signature.
func (t Token) Parts() []string {
	f := t.Variant.fields()
	parts := make([]string, 0, len(f)+3)
	parts = append(parts, Prefix, t.Variant.Tag())
	parts = append(parts, f...)
	return append(parts, t.Signature)
}

// ToggleParts is Parts followed by the base-36 line index.
func (t Token) ToggleParts(lineIndex int) []string {
	return append(t.Parts(), strconv.FormatInt(int64(lineIndex), 36))
}

func b36(n int64) string {
	return strconv.FormatInt(n, 36)
}
