// Package idcodec obfuscates numeric identifiers for external exposure.
// Encode is injective; Decode fails on malformed or tampered tokens.
package idcodec

import (
	"encoding/base32"
	"encoding/binary"
	"errors"
	"strings"
)

var ErrMalformedToken = errors.New("malformed_token")

var encoding = base32.HexEncoding.WithPadding(base32.NoPadding)

type Codec struct {
	key uint64
}

func New(key uint64) *Codec {
	return &Codec{key: key}
}

// Encode maps an internal id to an opaque token.
func (c *Codec) Encode(id int64) string {
	var buf [9]byte
	binary.BigEndian.PutUint64(buf[1:], uint64(id)^c.key)
	buf[0] = checksum(buf[1:])
	return strings.ToLower(encoding.EncodeToString(buf[:]))
}

// Decode reverses Encode. Any token not produced by Encode fails with
// ErrMalformedToken.
func (c *Codec) Decode(token string) (int64, error) {
	raw, err := encoding.DecodeString(strings.ToUpper(strings.TrimSpace(token)))
	if err != nil || len(raw) != 9 {
		return 0, ErrMalformedToken
	}
	if checksum(raw[1:]) != raw[0] {
		return 0, ErrMalformedToken
	}
	id := int64(binary.BigEndian.Uint64(raw[1:]) ^ c.key)
	if id <= 0 {
		return 0, ErrMalformedToken
	}
	return id, nil
}

func checksum(b []byte) byte {
	var sum byte = 0x5b
	for _, v := range b {
		sum = sum<<1 | sum>>7
		sum ^= v
	}
	return sum
}
