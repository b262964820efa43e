// Package textenc converts between file bytes and document text.
//
// UTF-8 is strict: undecodable input is an error rather than being
// replaced with U+FFFD. Every other encoding is looked up in the
// WHATWG index and handled by golang.org/x/text.
package textenc

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
)

// DefaultEncoding is the encoding used when none is configured.
const DefaultEncoding = "utf-8"

// DecodeError is returned when file bytes aren't valid in the
// configured encoding.
type DecodeError struct {
	Encoding string
	// Offset is the byte offset of the first invalid sequence, or
	// -1 if the decoder didn't say.
	Offset int
	Err    error
}

func (e *DecodeError) Error() string {
	if e.Offset >= 0 {
		return fmt.Sprintf("can't decode byte at offset %d as %s", e.Offset, e.Encoding)
	}
	return fmt.Sprintf("can't decode as %s: %v", e.Encoding, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// EncodeError is returned when text can't be represented in the
// configured encoding.
type EncodeError struct {
	Encoding string
	Err      error
}

func (e *EncodeError) Error() string {
	return fmt.Sprintf("can't encode text as %s: %v", e.Encoding, e.Err)
}

func (e *EncodeError) Unwrap() error {
	return e.Err
}

// Codec converts between raw bytes and text.
type Codec interface {
	// Name is the canonical encoding name.
	Name() string
	Decode(data []byte) (string, error)
	Encode(text string) ([]byte, error)
}

type utf8Codec struct{}

func (utf8Codec) Name() string { return DefaultEncoding }

func (c utf8Codec) Decode(data []byte) (string, error) {
	if utf8.Valid(data) {
		return string(data), nil
	}
	return "", &DecodeError{Encoding: c.Name(), Offset: invalidUTF8Offset(data)}
}

func (c utf8Codec) Encode(text string) ([]byte, error) {
	if !utf8.ValidString(text) {
		return nil, &EncodeError{
			Encoding: c.Name(),
			Err:      fmt.Errorf("invalid UTF-8 at offset %d", invalidUTF8Offset([]byte(text))),
		}
	}
	return []byte(text), nil
}

func invalidUTF8Offset(data []byte) int {
	for i := 0; i < len(data); {
		r, size := utf8.DecodeRune(data[i:])
		if r == utf8.RuneError && size <= 1 {
			return i
		}
		i += size
	}
	return -1
}

type xtextCodec struct {
	name string
	enc  encoding.Encoding
}

func (c xtextCodec) Name() string { return c.name }

func (c xtextCodec) Decode(data []byte) (string, error) {
	decoded, err := c.enc.NewDecoder().Bytes(data)
	if err != nil {
		return "", &DecodeError{Encoding: c.name, Offset: -1, Err: err}
	}
	return string(decoded), nil
}

func (c xtextCodec) Encode(text string) ([]byte, error) {
	encoded, err := c.enc.NewEncoder().Bytes([]byte(text))
	if err != nil {
		return nil, &EncodeError{Encoding: c.name, Err: err}
	}
	return encoded, nil
}

// UTF8 returns the strict UTF-8 codec.
func UTF8() Codec {
	return utf8Codec{}
}

// Lookup returns the codec for the given encoding name. Names are
// case-insensitive; "" means DefaultEncoding.
func Lookup(name string) (Codec, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	switch name {
	case "", "utf-8", "utf8":
		return utf8Codec{}, nil
	}
	enc, err := htmlindex.Get(name)
	if err != nil {
		return nil, fmt.Errorf("unknown encoding %q: %w", name, err)
	}
	canonical, err := htmlindex.Name(enc)
	if err != nil {
		canonical = name
	}
	if canonical == DefaultEncoding {
		// Aliases such as "unicode-1-1-utf-8" still get the strict
		// codec.
		return utf8Codec{}, nil
	}
	return xtextCodec{canonical, enc}, nil
}

// NormalizeNewlines converts "\r\n" and lone "\r" to "\n", the way
// reading in universal-newlines text mode does.
func NormalizeNewlines(text string) string {
	if !strings.ContainsRune(text, '\r') {
		return text
	}
	text = strings.ReplaceAll(text, "\r\n", "\n")
	return strings.ReplaceAll(text, "\r", "\n")
}
