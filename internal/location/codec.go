package location

import (
	"fmt"
	"strconv"

	"checkbot/pkg/base62"
	"checkbot/pkg/inlineid"
)

// NoLine is returned by Decode when the token carries no line index.
const NoLine = -1

// Codec mints and verifies tokens.
type Codec struct {
	signer *Signer
}

func NewCodec(signer *Signer) *Codec {
	return &Codec{signer: signer}
}

// Encode picks the most compact variant for loc and signs it. The signature
// covers what the variant can express, so Decode(Encode(loc)) == loc for
// every consistent location.
func (c *Codec) Encode(loc Location) (Token, error) {
	if !validSalt(loc.Salt) {
		return Token{}, ErrInvalidSalt
	}
	v := variantOf(loc)
	signed := v.location()
	signed.Salt = loc.Salt
	return Token{Variant: v, Signature: c.signer.Sign(signed)}, nil
}

func variantOf(loc Location) Variant {
	if loc.HasInline() {
		if unpacked, err := inlineid.Unpack(loc.InlineMessageID); err == nil {
			if id, ok := unpacked.(inlineid.ID64); ok && id.OwnerID == loc.SourceChatID &&
				id.Pack() == loc.InlineMessageID {
				return Inline64Variant{
					SourceChatID:    loc.SourceChatID,
					SourceMessageID: loc.SourceMessageID,
					DCID:            id.DCID,
					ID:              id.ID,
					AccessHash:      id.AccessHash,
					Personal:        loc.IsPersonal,
				}
			}
		}
		return InlineVariant{
			SourceChatID:    loc.SourceChatID,
			SourceMessageID: loc.SourceMessageID,
			InlineMessageID: loc.InlineMessageID,
			Personal:        loc.IsPersonal,
		}
	}
	if loc.HasForeign() {
		return ForeignVariant{
			SourceChatID:     loc.SourceChatID,
			SourceMessageID:  loc.SourceMessageID,
			ForeignChatID:    loc.ForeignChatID,
			ForeignMessageID: loc.ForeignMessageID,
		}
	}
	return ChatVariant{SourceChatID: loc.SourceChatID, SourceMessageID: loc.SourceMessageID}
}

type decodeFunc func(fields []string) (Variant, error)

type arm struct {
	arity  int
	decode decodeFunc
}

var arms = map[string]arm{
	TagChat:             {2, decodeChat},
	TagInline:           {3, decodeInline(false)},
	TagInlinePersonal:   {3, decodeInline(true)},
	TagInline64:         {5, decodeInline64(false)},
	TagInline64Personal: {5, decodeInline64(true)},
	TagForeign:          {4, decodeForeign},
}

// Decode verifies parts and returns the location plus the line index, or
// NoLine when the token has none. Every failure is ErrParse.
func (c *Codec) Decode(parts []string) (Location, int, error) {
	if len(parts) < 2 || parts[0] != Prefix {
		return Location{}, NoLine, ErrParse
	}
	a, ok := arms[parts[1]]
	if !ok {
		return Location{}, NoLine, ErrParse
	}

	rest := parts[2:]
	line := NoLine
	switch len(rest) {
	case a.arity + 1:
	case a.arity + 2:
		idx, err := parseCanonical(rest[a.arity+1], 36, 32)
		if err != nil || idx < 0 {
			return Location{}, NoLine, ErrParse
		}
		line = int(idx)
	default:
		return Location{}, NoLine, ErrParse
	}

	v, err := a.decode(rest[:a.arity])
	if err != nil {
		return Location{}, NoLine, ErrParse
	}

	signature := rest[a.arity]
	if len(signature) != SignatureLength {
		return Location{}, NoLine, ErrParse
	}
	loc := v.location()
	loc.Salt = signature[:SaltLength]
	if !c.signer.Verify(loc, signature) {
		return Location{}, NoLine, ErrParse
	}
	return loc, line, nil
}

func decodeChat(f []string) (Variant, error) {
	src, msg, err := parseSource(f)
	if err != nil {
		return nil, err
	}
	return ChatVariant{SourceChatID: src, SourceMessageID: msg}, nil
}

func decodeInline(personal bool) decodeFunc {
	return func(f []string) (Variant, error) {
		src, msg, err := parseSource(f)
		if err != nil {
			return nil, err
		}
		if f[2] == "" {
			return nil, ErrParse
		}
		return InlineVariant{
			SourceChatID:    src,
			SourceMessageID: msg,
			InlineMessageID: f[2],
			Personal:        personal,
		}, nil
	}
}

func decodeInline64(personal bool) decodeFunc {
	return func(f []string) (Variant, error) {
		src, msg, err := parseSource(f)
		if err != nil {
			return nil, err
		}
		dc, err := parseCanonical(f[2], 36, 32)
		if err != nil {
			return nil, err
		}
		id, err := parseCanonical(f[3], 36, 32)
		if err != nil {
			return nil, err
		}
		hash, err := base62.DecodeUint64(f[4])
		if err != nil || base62.EncodeUint64(hash) != f[4] {
			return nil, ErrParse
		}
		return Inline64Variant{
			SourceChatID:    src,
			SourceMessageID: msg,
			DCID:            int32(dc),
			ID:              int32(id),
			AccessHash:      int64(hash),
			Personal:        personal,
		}, nil
	}
}

func decodeForeign(f []string) (Variant, error) {
	src, msg, err := parseSource(f)
	if err != nil {
		return nil, err
	}
	chat, err := parseCanonical(f[2], 36, 64)
	if err != nil {
		return nil, err
	}
	fmsg, err := parseCanonical(f[3], 36, 64)
	if err != nil {
		return nil, err
	}
	if chat == 0 || fmsg == 0 {
		return nil, ErrParse
	}
	return ForeignVariant{
		SourceChatID:     src,
		SourceMessageID:  msg,
		ForeignChatID:    chat,
		ForeignMessageID: fmsg,
	}, nil
}

func parseSource(f []string) (int64, int64, error) {
	src, err := parseCanonical(f[0], 36, 64)
	if err != nil {
		return 0, 0, err
	}
	msg, err := parseCanonical(f[1], 36, 64)
	if err != nil {
		return 0, 0, err
	}
	return src, msg, nil
}

// parseCanonical only accepts the exact form strconv.FormatInt would
// produce, so a case flip or a leading zero cannot alias a valid token.
func parseCanonical(s string, base, bits int) (int64, error) {
	n, err := strconv.ParseInt(s, base, bits)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrParse, err)
	}
	if strconv.FormatInt(n, base) != s {
		return 0, ErrParse
	}
	return n, nil
}
