package font

import (
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/tsawler/regmap/core"
)

// CMap maps character codes to Unicode strings, as read from a font's
// /ToUnicode stream.
type CMap struct {
	chars   map[uint32]string
	ranges  []cmapRange
	codeLen int // bytes per code from the codespace range, 0 if unknown
}

type cmapRange struct {
	lo, hi uint32
	base   []rune
}

// NewCMap returns an empty CMap.
func NewCMap() *CMap {
	return &CMap{chars: make(map[uint32]string)}
}

// ParseToUnicodeCMap decodes and parses a ToUnicode stream.
func ParseToUnicodeCMap(stream *core.Stream) (*CMap, error) {
	if stream == nil {
		return nil, fmt.Errorf("nil ToUnicode stream")
	}
	data, err := stream.Decode()
	if err != nil {
		return nil, fmt.Errorf("failed to decode ToUnicode stream: %w", err)
	}
	return ParseCMap(data), nil
}

// ParseCMap parses the bfchar, bfrange and codespacerange sections of a
// CMap program. Malformed entries are skipped.
func ParseCMap(data []byte) *CMap {
	cm := NewCMap()
	tokens := cmapTokens(string(data))

	for i := 0; i < len(tokens); i++ {
		switch tokens[i] {
		case "begincodespacerange":
			for i+2 < len(tokens) && tokens[i+1] != "endcodespacerange" {
				if lo := hexBytes(tokens[i+1]); lo != nil && cm.codeLen == 0 {
					cm.codeLen = len(lo)
				}
				i += 2
			}
		case "beginbfchar":
			for i+2 < len(tokens) && tokens[i+1] != "endbfchar" {
				src, dst := hexBytes(tokens[i+1]), hexBytes(tokens[i+2])
				if src != nil && dst != nil {
					cm.chars[codeOf(src)] = utf16Text(dst)
				}
				i += 2
			}
		case "beginbfrange":
			i = cm.parseRanges(tokens, i)
		}
	}
	return cm
}

func (cm *CMap) parseRanges(tokens []string, i int) int {
	for i+3 < len(tokens) && tokens[i+1] != "endbfrange" {
		lo, hi := hexBytes(tokens[i+1]), hexBytes(tokens[i+2])
		if lo == nil || hi == nil {
			i++
			continue
		}
		start, end := codeOf(lo), codeOf(hi)

		if tokens[i+3] == "[" {
			j := i + 4
			code := start
			for ; j < len(tokens) && tokens[j] != "]"; j++ {
				if dst := hexBytes(tokens[j]); dst != nil && code <= end {
					cm.chars[code] = utf16Text(dst)
				}
				code++
			}
			i = j
			continue
		}

		if dst := hexBytes(tokens[i+3]); dst != nil {
			cm.ranges = append(cm.ranges, cmapRange{lo: start, hi: end, base: []rune(utf16Text(dst))})
		}
		i += 3
	}
	return i + 1
}

// cmapTokens splits CMap source into hex strings, brackets and bare words.
func cmapTokens(s string) []string {
	var out []string
	for i := 0; i < len(s); {
		c := s[i]
		switch {
		case c == '<':
			j := strings.IndexByte(s[i:], '>')
			if j < 0 {
				return out
			}
			out = append(out, s[i:i+j+1])
			i += j + 1
		case c == '[' || c == ']':
			out = append(out, string(c))
			i++
		case c == '%':
			for i < len(s) && s[i] != '\n' && s[i] != '\r' {
				i++
			}
		case c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\f':
			i++
		default:
			j := i
			for j < len(s) && !strings.ContainsRune(" \t\r\n\f<>[]%", rune(s[j])) {
				j++
			}
			out = append(out, s[i:j])
			i = j
		}
	}
	return out
}

func hexBytes(tok string) []byte {
	if len(tok) < 2 || tok[0] != '<' || tok[len(tok)-1] != '>' {
		return nil
	}
	h := strings.Join(strings.Fields(tok[1:len(tok)-1]), "")
	if len(h)%2 == 1 {
		h += "0"
	}
	b, err := hex.DecodeString(h)
	if err != nil || len(b) == 0 {
		return nil
	}
	return b
}

func codeOf(b []byte) uint32 {
	var v uint32
	for _, c := range b {
		v = v<<8 | uint32(c)
	}
	return v
}

func utf16Text(b []byte) string {
	if len(b) == 1 {
		return string(rune(b[0]))
	}
	return DecodeUTF16BE(b)
}

// Lookup returns the Unicode text for a character code.
func (cm *CMap) Lookup(code uint32) (string, bool) {
	if s, ok := cm.chars[code]; ok {
		return s, true
	}
	for _, r := range cm.ranges {
		if code < r.lo || code > r.hi || len(r.base) == 0 {
			continue
		}
		out := append([]rune(nil), r.base...)
		out[len(out)-1] += rune(code - r.lo)
		return string(out), true
	}
	return "", false
}

// LookupString decodes data as a sequence of codes of width codeLen bytes.
// With an unknown width it tries two-byte codes first.
func (cm *CMap) LookupString(data []byte, codeLen int) string {
	if codeLen == 0 {
		codeLen = cm.codeLen
	}
	var sb strings.Builder
	for i := 0; i < len(data); {
		n := codeLen
		if n == 0 {
			n = 2
			if i+1 >= len(data) {
				n = 1
			} else if _, ok := cm.Lookup(codeOf(data[i : i+2])); !ok {
				n = 1
			}
		}
		if i+n > len(data) {
			n = len(data) - i
		}
		code := codeOf(data[i : i+n])
		if s, ok := cm.Lookup(code); ok {
			sb.WriteString(s)
		} else if n == 1 {
			sb.WriteByte(data[i])
		}
		i += n
	}
	return sb.String()
}
