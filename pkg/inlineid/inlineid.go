// Package inlineid unpacks and repacks the opaque inline_message_id strings
// Telegram hands out for messages sent via inline mode. The id is a
// url-safe base64 of a little-endian TL object without its constructor.
package inlineid

import (
	"encoding/base64"
	"encoding/binary"
	"errors"
	"strings"
)

const (
	shortLen = 20 // inputBotInlineMessageID
	longLen  = 24 // inputBotInlineMessageID64
)

var ErrMalformed = errors.New("inlineid: malformed inline message id")

// ID is the short form: dc_id:int, id:long, access_hash:long.
type ID struct {
	DCID       int32
	ID         int64
	AccessHash int64
}

// ID64 is the form used for users with 64-bit ids:
// dc_id:int, owner_id:long, id:int, access_hash:long.
type ID64 struct {
	DCID       int32
	OwnerID    int64
	ID         int32
	AccessHash int64
}

// Unpack decodes s into either an ID or an ID64.
func Unpack(s string) (any, error) {
	raw, err := base64.RawURLEncoding.DecodeString(strings.TrimRight(s, "="))
	if err != nil {
		return nil, ErrMalformed
	}
	le := binary.LittleEndian
	switch len(raw) {
	case shortLen:
		return ID{
			DCID:       int32(le.Uint32(raw[0:4])),
			ID:         int64(le.Uint64(raw[4:12])),
			AccessHash: int64(le.Uint64(raw[12:20])),
		}, nil
	case longLen:
		return ID64{
			DCID:       int32(le.Uint32(raw[0:4])),
			OwnerID:    int64(le.Uint64(raw[4:12])),
			ID:         int32(le.Uint32(raw[12:16])),
			AccessHash: int64(le.Uint64(raw[16:24])),
		}, nil
	default:
		return nil, ErrMalformed
	}
}

// Pack encodes the short form.
func (id ID) Pack() string {
	buf := make([]byte, shortLen)
	le := binary.LittleEndian
	le.PutUint32(buf[0:4], uint32(id.DCID))
	le.PutUint64(buf[4:12], uint64(id.ID))
	le.PutUint64(buf[12:20], uint64(id.AccessHash))
	return base64.RawURLEncoding.EncodeToString(buf)
}

// Pack encodes the 64-bit form.
func (id ID64) Pack() string {
	buf := make([]byte, longLen)
	le := binary.LittleEndian
	le.PutUint32(buf[0:4], uint32(id.DCID))
	le.PutUint64(buf[4:12], uint64(id.OwnerID))
	le.PutUint32(buf[12:16], uint32(id.ID))
	le.PutUint64(buf[16:24], uint64(id.AccessHash))
	return base64.RawURLEncoding.EncodeToString(buf)
}
