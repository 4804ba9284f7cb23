// Package encoding provides the candidate-encoding service used to decode
// script source bytes into text.
//
// Scripts are written in whatever encoding the user's tooling produced, so
// decoding tries an ordered list of candidates and takes the first one that
// decodes cleanly. The order is user-configurable by IANA name.
package encoding

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/ianaindex"
	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/encoding/unicode"
)

// ErrUndecodable is returned when no candidate encoding decodes the data.
var ErrUndecodable = errors.New("text is not decodable with any candidate encoding")

// Provider supplies the ordered candidate encodings to try.
type Provider interface {
	CandidateEncodings() []encoding.Encoding
}

// DefaultProvider returns the built-in candidate order: UTF-8 first, the
// BOM-marked UTF-16 variants, the common Japanese encodings, then Latin-1
// as the catch-all single-byte fallback.
type DefaultProvider struct{}

// CandidateEncodings returns the default candidate list.
func (DefaultProvider) CandidateEncodings() []encoding.Encoding {
	return []encoding.Encoding{
		unicode.UTF8,
		unicode.UTF16(unicode.LittleEndian, unicode.ExpectBOM),
		unicode.UTF16(unicode.BigEndian, unicode.ExpectBOM),
		japanese.ShiftJIS,
		japanese.EUCJP,
		japanese.ISO2022JP,
		charmap.ISO8859_1,
	}
}

// ListProvider serves a fixed candidate list, normally built by ByNames
// from configuration.
type ListProvider struct {
	encodings []encoding.Encoding
}

// NewListProvider creates a provider over the given encodings.
func NewListProvider(encs []encoding.Encoding) *ListProvider {
	return &ListProvider{encodings: encs}
}

// CandidateEncodings returns the configured list.
func (p *ListProvider) CandidateEncodings() []encoding.Encoding {
	return p.encodings
}

// ByNames resolves IANA encoding names (e.g. "UTF-8", "Shift_JIS") into
// encodings, preserving order.
func ByNames(names []string) ([]encoding.Encoding, error) {
	encs := make([]encoding.Encoding, 0, len(names))
	for _, name := range names {
		enc, err := ianaindex.IANA.Encoding(strings.TrimSpace(name))
		if err != nil || enc == nil {
			return nil, fmt.Errorf("unknown encoding %q", name)
		}
		encs = append(encs, enc)
	}
	return encs, nil
}

// Decode converts data to a string using the first candidate that decodes
// without error and without substituting replacement characters. Returns
// ErrUndecodable when every candidate fails.
func Decode(data []byte, candidates []encoding.Encoding) (string, error) {
	for _, enc := range candidates {
		if enc == unicode.UTF8 {
			if utf8.Valid(data) {
				return string(data), nil
			}
			continue
		}

		decoded, err := enc.NewDecoder().Bytes(data)
		if err != nil {
			continue
		}
		// Decoders map unsupported bytes to U+FFFD rather than failing;
		// treat that as a failed candidate unless the input really
		// carried a replacement character.
		if strings.ContainsRune(string(decoded), utf8.RuneError) {
			continue
		}
		return string(decoded), nil
	}
	return "", ErrUndecodable
}
