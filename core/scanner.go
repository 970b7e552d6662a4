package core

import (
	"bytes"
	"fmt"
	"strconv"
)

// LengthResolver returns the value of an indirect /Length entry.
type LengthResolver func(ref IndirectRef) (int, bool)

// Scanner parses PDF objects out of a byte slice.
type Scanner struct {
	data          []byte
	pos           int
	resolveLength LengthResolver
}

// NewScanner returns a scanner positioned at the start of data.
func NewScanner(data []byte) *Scanner {
	return &Scanner{data: data}
}

// SetLengthResolver installs the callback used for indirect stream lengths.
func (s *Scanner) SetLengthResolver(fn LengthResolver) {
	s.resolveLength = fn
}

// Seek moves the scanner to an absolute offset.
func (s *Scanner) Seek(pos int) {
	if pos < 0 {
		pos = 0
	}
	if pos > len(s.data) {
		pos = len(s.data)
	}
	s.pos = pos
}

// Pos returns the current offset.
func (s *Scanner) Pos() int { return s.pos }

// ParseIndirectObject parses "n g obj <object> [stream ... endstream] endobj".
// A missing endobj is tolerated.
func (s *Scanner) ParseIndirectObject() (*IndirectObject, error) {
	s.skipSpace()
	start := s.pos
	num, ok1 := s.unsigned()
	s.skipSpace()
	gen, ok2 := s.unsigned()
	s.skipSpace()
	if !ok1 || !ok2 || !s.keyword("obj") {
		return nil, fmt.Errorf("no object header at offset %d", start)
	}

	obj, err := s.ParseObject()
	if err != nil {
		return nil, fmt.Errorf("object %d %d: %w", num, gen, err)
	}

	s.skipSpace()
	if dict, ok := obj.(Dict); ok && s.keyword("stream") {
		data, err := s.streamData(dict)
		if err != nil {
			return nil, fmt.Errorf("object %d %d: %w", num, gen, err)
		}
		obj = &Stream{Dict: dict, Data: data}
		s.skipSpace()
	}
	s.keyword("endobj")

	return &IndirectObject{Ref: IndirectRef{Number: num, Generation: gen}, Object: obj}, nil
}

// streamData reads the bytes after a "stream" keyword. /Length is trusted
// when "endstream" follows it; otherwise the data runs to the next endstream.
func (s *Scanner) streamData(dict Dict) ([]byte, error) {
	if s.peek(0) == '\r' {
		s.pos++
	}
	if s.peek(0) == '\n' {
		s.pos++
	}
	start := s.pos

	length := -1
	switch v := dict.Get("Length").(type) {
	case Int:
		length = int(v)
	case IndirectRef:
		if s.resolveLength != nil {
			if n, ok := s.resolveLength(v); ok {
				length = n
			}
		}
	}

	if length >= 0 && start+length <= len(s.data) {
		end := start + length
		probe := end
		for probe < len(s.data) && isSpace(s.data[probe]) {
			probe++
		}
		if bytes.HasPrefix(s.data[probe:], []byte("endstream")) {
			s.pos = probe + len("endstream")
			return s.data[start:end], nil
		}
	}

	idx := bytes.Index(s.data[start:], []byte("endstream"))
	if idx < 0 {
		return nil, fmt.Errorf("stream at offset %d has no endstream", start)
	}
	end := start + idx
	s.pos = end + len("endstream")
	if end > start && s.data[end-1] == '\n' {
		end--
	}
	if end > start && s.data[end-1] == '\r' {
		end--
	}
	return s.data[start:end], nil
}

// ParseObject parses one direct object or indirect reference.
func (s *Scanner) ParseObject() (Object, error) {
	s.skipSpace()
	if s.pos >= len(s.data) {
		return nil, fmt.Errorf("unexpected end of data")
	}

	c := s.data[s.pos]
	switch {
	case c == '/':
		return s.name(), nil
	case c == '(':
		return s.literalString()
	case c == '<' && s.peek(1) == '<':
		return s.dict()
	case c == '<':
		return s.hexString()
	case c == '[':
		return s.array()
	case c == '+' || c == '-' || c == '.' || isDigit(c):
		return s.numberOrRef()
	}

	start := s.pos
	word := s.word()
	switch word {
	case "true":
		return Bool(true), nil
	case "false":
		return Bool(false), nil
	case "null":
		return Null{}, nil
	}
	s.pos = start
	return nil, fmt.Errorf("unexpected %q at offset %d", word, start)
}

func (s *Scanner) numberOrRef() (Object, error) {
	start := s.pos
	if c := s.data[s.pos]; c == '+' || c == '-' {
		s.pos++
	}
	isReal := false
	for s.pos < len(s.data) {
		c := s.data[s.pos]
		if c == '.' && !isReal {
			isReal = true
		} else if !isDigit(c) {
			break
		}
		s.pos++
	}
	text := string(s.data[start:s.pos])

	if isReal {
		v, err := strconv.ParseFloat(text, 64)
		if err != nil {
			if text == "." || text == "-." || text == "+." {
				return Real(0), nil
			}
			return nil, fmt.Errorf("invalid real %q", text)
		}
		return Real(v), nil
	}
	v, err := strconv.ParseInt(text, 10, 64)
	if err != nil {
		if text == "-" || text == "+" {
			return Int(0), nil
		}
		return nil, fmt.Errorf("invalid integer %q", text)
	}

	// "n g R"
	if v >= 0 && isDigit(s.data[start]) {
		save := s.pos
		s.skipSpace()
		if gen, ok := s.unsigned(); ok {
			s.skipSpace()
			if s.peek(0) == 'R' && (s.pos+1 >= len(s.data) || !isRegular(s.data[s.pos+1])) {
				s.pos++
				return IndirectRef{Number: int(v), Generation: gen}, nil
			}
		}
		s.pos = save
	}
	return Int(v), nil
}

func (s *Scanner) name() Object {
	s.pos++
	var buf bytes.Buffer
	for s.pos < len(s.data) && isRegular(s.data[s.pos]) {
		c := s.data[s.pos]
		if c == '#' && isHex(s.peek(1)) && isHex(s.peek(2)) {
			buf.WriteByte(unhex(s.peek(1))<<4 | unhex(s.peek(2)))
			s.pos += 3
			continue
		}
		buf.WriteByte(c)
		s.pos++
	}
	return Name(buf.String())
}

var stringEscapes = map[byte]byte{
	'n': '\n', 'r': '\r', 't': '\t', 'b': '\b', 'f': '\f',
	'(': '(', ')': ')', '\\': '\\',
}

func (s *Scanner) literalString() (Object, error) {
	start := s.pos
	s.pos++
	var buf bytes.Buffer
	depth := 1
	for s.pos < len(s.data) {
		c := s.data[s.pos]
		s.pos++
		switch c {
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				return String(buf.String()), nil
			}
		case '\\':
			if s.pos >= len(s.data) {
				continue
			}
			n := s.data[s.pos]
			s.pos++
			if b, ok := stringEscapes[n]; ok {
				buf.WriteByte(b)
				continue
			}
			switch {
			case n == '\r':
				if s.peek(0) == '\n' {
					s.pos++
				}
			case n == '\n':
			case n >= '0' && n <= '7':
				v := int(n - '0')
				for i := 0; i < 2 && s.pos < len(s.data) && s.data[s.pos] >= '0' && s.data[s.pos] <= '7'; i++ {
					v = v*8 + int(s.data[s.pos]-'0')
					s.pos++
				}
				buf.WriteByte(byte(v))
			default:
				buf.WriteByte(n)
			}
			continue
		}
		buf.WriteByte(c)
	}
	return nil, fmt.Errorf("unterminated string at offset %d", start)
}

func (s *Scanner) hexString() (Object, error) {
	start := s.pos
	s.pos++
	var out []byte
	var hi byte
	odd := false
	for s.pos < len(s.data) {
		c := s.data[s.pos]
		s.pos++
		switch {
		case c == '>':
			if odd {
				out = append(out, hi<<4)
			}
			return String(out), nil
		case isHex(c):
			if odd {
				out = append(out, hi<<4|unhex(c))
			} else {
				hi = unhex(c)
			}
			odd = !odd
		case isSpace(c):
		default:
			return nil, fmt.Errorf("invalid hex digit %q at offset %d", c, s.pos-1)
		}
	}
	return nil, fmt.Errorf("unterminated hex string at offset %d", start)
}

func (s *Scanner) array() (Object, error) {
	s.pos++
	arr := Array{}
	for {
		s.skipSpace()
		if s.pos >= len(s.data) {
			return nil, fmt.Errorf("unterminated array")
		}
		if s.data[s.pos] == ']' {
			s.pos++
			return arr, nil
		}
		obj, err := s.ParseObject()
		if err != nil {
			return nil, err
		}
		arr = append(arr, obj)
	}
}

func (s *Scanner) dict() (Object, error) {
	s.pos += 2
	d := Dict{}
	for {
		s.skipSpace()
		if s.pos >= len(s.data) {
			return nil, fmt.Errorf("unterminated dictionary")
		}
		if s.data[s.pos] == '>' && s.peek(1) == '>' {
			s.pos += 2
			return d, nil
		}
		if s.data[s.pos] != '/' {
			return nil, fmt.Errorf("dictionary key at offset %d is not a name", s.pos)
		}
		key := s.name().(Name)
		val, err := s.ParseObject()
		if err != nil {
			return nil, fmt.Errorf("/%s: %w", key, err)
		}
		// A null value is the same as an absent key.
		if _, isNull := val.(Null); !isNull {
			d[string(key)] = val
		}
	}
}

func (s *Scanner) unsigned() (int, bool) {
	start := s.pos
	for s.pos < len(s.data) && isDigit(s.data[s.pos]) {
		s.pos++
	}
	if s.pos == start {
		return 0, false
	}
	v, err := strconv.Atoi(string(s.data[start:s.pos]))
	return v, err == nil
}

// keyword consumes kw if it is next and stands alone.
func (s *Scanner) keyword(kw string) bool {
	end := s.pos + len(kw)
	if end > len(s.data) || string(s.data[s.pos:end]) != kw {
		return false
	}
	if end < len(s.data) && isRegular(s.data[end]) {
		return false
	}
	s.pos = end
	return true
}

func (s *Scanner) word() string {
	start := s.pos
	for s.pos < len(s.data) && isRegular(s.data[s.pos]) {
		s.pos++
	}
	return string(s.data[start:s.pos])
}

func (s *Scanner) skipSpace() {
	for s.pos < len(s.data) {
		c := s.data[s.pos]
		if c == '%' {
			for s.pos < len(s.data) && s.data[s.pos] != '\n' && s.data[s.pos] != '\r' {
				s.pos++
			}
			continue
		}
		if !isSpace(c) {
			return
		}
		s.pos++
	}
}

func (s *Scanner) peek(n int) byte {
	if s.pos+n < len(s.data) {
		return s.data[s.pos+n]
	}
	return 0
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\r' || c == '\n' || c == '\f' || c == 0
}

func isDelimiter(c byte) bool {
	switch c {
	case '(', ')', '<', '>', '[', ']', '{', '}', '/', '%':
		return true
	}
	return false
}

func isRegular(c byte) bool { return !isSpace(c) && !isDelimiter(c) }

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func isHex(c byte) bool {
	return isDigit(c) || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}

func unhex(c byte) byte {
	switch {
	case isDigit(c):
		return c - '0'
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10
	}
	return 0
}
