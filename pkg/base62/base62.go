// Package base62 encodes byte strings and unsigned integers with the
// 0-9a-zA-Z alphabet. Byte strings follow base-x semantics: every leading
// zero byte becomes a leading '0' and the rest is encoded as one big-endian
// number.
package base62

import (
	"errors"
	"math/big"
	"strings"
)

const Alphabet = "0123456789abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"

var (
	ErrInvalidCharacter = errors.New("base62: invalid character")
	ErrEmpty            = errors.New("base62: empty input")
	ErrOverflow         = errors.New("base62: value overflows uint64")
)

var radix = big.NewInt(int64(len(Alphabet)))

// EncodeBytes encodes b.
func EncodeBytes(b []byte) string {
	zeros := 0
	for zeros < len(b) && b[zeros] == 0 {
		zeros++
	}

	n := new(big.Int).SetBytes(b[zeros:])
	var digits []byte
	mod := new(big.Int)
	for n.Sign() > 0 {
		n.DivMod(n, radix, mod)
		digits = append(digits, Alphabet[mod.Int64()])
	}

	var sb strings.Builder
	sb.Grow(zeros + len(digits))
	for i := 0; i < zeros; i++ {
		sb.WriteByte(Alphabet[0])
	}
	for i := len(digits) - 1; i >= 0; i-- {
		sb.WriteByte(digits[i])
	}
	return sb.String()
}

// EncodeUint64 encodes n without padding; zero encodes as "0".
func EncodeUint64(n uint64) string {
	if n == 0 {
		return Alphabet[:1]
	}
	var buf [11]byte
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = Alphabet[n%62]
		n /= 62
	}
	return string(buf[i:])
}

// DecodeUint64 is the inverse of EncodeUint64.
func DecodeUint64(s string) (uint64, error) {
	if s == "" {
		return 0, ErrEmpty
	}
	var n uint64
	for i := 0; i < len(s); i++ {
		d := strings.IndexByte(Alphabet, s[i])
		if d < 0 {
			return 0, ErrInvalidCharacter
		}
		hi, lo := mulAdd(n, uint64(d))
		if hi {
			return 0, ErrOverflow
		}
		n = lo
	}
	return n, nil
}

// mulAdd computes n*62+d, reporting overflow.
func mulAdd(n, d uint64) (bool, uint64) {
	const max = ^uint64(0)
	if n > (max-d)/62 {
		return true, 0
	}
	return false, n*62 + d
}
