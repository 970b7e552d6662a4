package contentstream

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/tsawler/regmap/core"
)

// Operation is one content stream operator with the operands preceding it.
type Operation struct {
	Operator string        // The operator (e.g., "Tj", "Tm", "q")
	Operands []core.Object // The operands
}

// Parser turns content stream bytes into a sequence of operations.
type Parser struct {
	data     []byte
	pos      int
	operands []core.Object
	ops      []Operation
}

// NewParser creates a parser over data.
func NewParser(data []byte) *Parser {
	return &Parser{data: data}
}

// Parse reads the whole stream. Inline image data (BI ... ID ... EI) is
// skipped and reported as a single "BI" operation without operands.
func (p *Parser) Parse() ([]Operation, error) {
	for {
		p.skipSpaceAndComments()
		if p.pos >= len(p.data) {
			return p.ops, nil
		}

		c := p.data[p.pos]
		if isRegular(c) && !isNumberStart(c) {
			p.word()
			continue
		}

		start := p.pos
		obj, err := p.operand()
		if err != nil {
			return nil, fmt.Errorf("at position %d: %w", start, err)
		}
		p.operands = append(p.operands, obj)
	}
}

// word reads a bare token: a keyword operand or an operator.
func (p *Parser) word() {
	start := p.pos
	for p.pos < len(p.data) && isRegular(p.data[p.pos]) {
		p.pos++
	}
	tok := string(p.data[start:p.pos])

	switch tok {
	case "true":
		p.operands = append(p.operands, core.Bool(true))
		return
	case "false":
		p.operands = append(p.operands, core.Bool(false))
		return
	case "null":
		p.operands = append(p.operands, core.Null{})
		return
	case "BI":
		p.skipInlineImage()
	}

	p.ops = append(p.ops, Operation{Operator: tok, Operands: p.operands})
	p.operands = nil
}

// skipInlineImage moves past the image dictionary and binary data up to
// and including the EI keyword.
func (p *Parser) skipInlineImage() {
	id := bytes.Index(p.data[p.pos:], []byte("ID"))
	if id < 0 {
		p.pos = len(p.data)
		return
	}
	p.pos += id + 3
	for p.pos < len(p.data) {
		i := bytes.Index(p.data[p.pos:], []byte("EI"))
		if i < 0 {
			p.pos = len(p.data)
			return
		}
		at := p.pos + i
		p.pos = at + 2
		before := at == 0 || isWhitespace(p.data[at-1])
		after := p.pos >= len(p.data) || isWhitespace(p.data[p.pos]) || isDelimiter(p.data[p.pos])
		if before && after {
			return
		}
	}
}

func (p *Parser) operand() (core.Object, error) {
	c := p.data[p.pos]
	switch {
	case isNumberStart(c):
		return p.number()
	case c == '(':
		return p.literalString()
	case c == '<' && p.peek(1) == '<':
		return p.dict()
	case c == '<':
		return p.hexString()
	case c == '/':
		return p.name(), nil
	case c == '[':
		return p.array()
	case isRegular(c):
		start := p.pos
		for p.pos < len(p.data) && isRegular(p.data[p.pos]) {
			p.pos++
		}
		switch tok := string(p.data[start:p.pos]); tok {
		case "true":
			return core.Bool(true), nil
		case "false":
			return core.Bool(false), nil
		case "null":
			return core.Null{}, nil
		default:
			return nil, fmt.Errorf("unexpected keyword %q in operand", tok)
		}
	}
	return nil, fmt.Errorf("unexpected character %q", c)
}

func (p *Parser) peek(n int) byte {
	if p.pos+n < len(p.data) {
		return p.data[p.pos+n]
	}
	return 0
}

func (p *Parser) number() (core.Object, error) {
	start := p.pos
	if c := p.data[p.pos]; c == '+' || c == '-' {
		p.pos++
	}
	isReal := false
	for p.pos < len(p.data) {
		c := p.data[p.pos]
		if c == '.' && !isReal {
			isReal = true
		} else if c < '0' || c > '9' {
			break
		}
		p.pos++
	}
	s := string(p.data[start:p.pos])
	// Some producers write "--5" or a lone "-"; treat them as zero.
	if s == "+" || s == "-" || s == "." || s == "-." {
		return core.Int(0), nil
	}
	if isReal {
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid real %q: %w", s, err)
		}
		return core.Real(v), nil
	}
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid integer %q: %w", s, err)
	}
	return core.Int(v), nil
}

var escapes = map[byte]byte{
	'n': '\n', 'r': '\r', 't': '\t', 'b': '\b', 'f': '\f',
	'(': '(', ')': ')', '\\': '\\',
}

func (p *Parser) literalString() (core.Object, error) {
	p.pos++
	var buf bytes.Buffer
	depth := 1
	for p.pos < len(p.data) {
		c := p.data[p.pos]
		p.pos++
		switch c {
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				return core.String(buf.String()), nil
			}
		case '\\':
			if p.pos >= len(p.data) {
				continue
			}
			next := p.data[p.pos]
			p.pos++
			if b, ok := escapes[next]; ok {
				buf.WriteByte(b)
				continue
			}
			switch {
			case next == '\r':
				if p.peek(0) == '\n' {
					p.pos++
				}
			case next == '\n':
			case next >= '0' && next <= '7':
				v := int(next - '0')
				for i := 0; i < 2 && p.pos < len(p.data); i++ {
					d := p.data[p.pos]
					if d < '0' || d > '7' {
						break
					}
					v = v*8 + int(d-'0')
					p.pos++
				}
				buf.WriteByte(byte(v))
			default:
				buf.WriteByte(next)
			}
			continue
		}
		buf.WriteByte(c)
	}
	return nil, fmt.Errorf("unclosed string")
}

func (p *Parser) hexString() (core.Object, error) {
	p.pos++
	var digits []byte
	for p.pos < len(p.data) {
		c := p.data[p.pos]
		p.pos++
		switch {
		case c == '>':
			if len(digits)%2 == 1 {
				digits = append(digits, '0')
			}
			out := make([]byte, len(digits)/2)
			for i := range out {
				out[i] = hexValue(digits[2*i])<<4 | hexValue(digits[2*i+1])
			}
			return core.String(out), nil
		case isWhitespace(c):
		case isHexDigit(c):
			digits = append(digits, c)
		default:
			return nil, fmt.Errorf("invalid hex digit %q", c)
		}
	}
	return nil, fmt.Errorf("unclosed hex string")
}

func (p *Parser) name() core.Object {
	p.pos++
	var buf bytes.Buffer
	for p.pos < len(p.data) && isRegular(p.data[p.pos]) {
		c := p.data[p.pos]
		if c == '#' && isHexDigit(p.peek(1)) && isHexDigit(p.peek(2)) {
			buf.WriteByte(hexValue(p.peek(1))<<4 | hexValue(p.peek(2)))
			p.pos += 3
			continue
		}
		buf.WriteByte(c)
		p.pos++
	}
	return core.Name(buf.String())
}

func (p *Parser) array() (core.Object, error) {
	p.pos++
	var arr core.Array
	for {
		p.skipSpaceAndComments()
		if p.pos >= len(p.data) {
			return nil, fmt.Errorf("unclosed array")
		}
		if p.data[p.pos] == ']' {
			p.pos++
			return arr, nil
		}
		obj, err := p.operand()
		if err != nil {
			return nil, err
		}
		arr = append(arr, obj)
	}
}

func (p *Parser) dict() (core.Object, error) {
	p.pos += 2
	d := make(core.Dict)
	for {
		p.skipSpaceAndComments()
		if p.pos >= len(p.data) {
			return nil, fmt.Errorf("unclosed dictionary")
		}
		if p.data[p.pos] == '>' && p.peek(1) == '>' {
			p.pos += 2
			return d, nil
		}
		if p.data[p.pos] != '/' {
			return nil, fmt.Errorf("dictionary key must be a name")
		}
		key := p.name().(core.Name)
		p.skipSpaceAndComments()
		if p.pos >= len(p.data) {
			return nil, fmt.Errorf("unclosed dictionary")
		}
		val, err := p.operand()
		if err != nil {
			return nil, err
		}
		d[string(key)] = val
	}
}

func (p *Parser) skipSpaceAndComments() {
	for p.pos < len(p.data) {
		c := p.data[p.pos]
		if c == '%' {
			for p.pos < len(p.data) && p.data[p.pos] != '\n' && p.data[p.pos] != '\r' {
				p.pos++
			}
			continue
		}
		if !isWhitespace(c) {
			return
		}
		p.pos++
	}
}

func isWhitespace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\r' || c == '\n' || c == '\f' || c == 0
}

func isDelimiter(c byte) bool {
	return c == '(' || c == ')' || c == '<' || c == '>' ||
		c == '[' || c == ']' || c == '{' || c == '}' ||
		c == '/' || c == '%'
}

// isRegular reports whether c can appear in a bare token.
func isRegular(c byte) bool {
	return !isWhitespace(c) && !isDelimiter(c)
}

func isNumberStart(c byte) bool {
	return c == '-' || c == '+' || c == '.' || (c >= '0' && c <= '9')
}

func isHexDigit(c byte) bool {
	return (c >= '0' && c <= '9') || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}

func hexValue(c byte) byte {
	switch {
	case c >= '0' && c <= '9':
		return c - '0'
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10
	}
	return 0
}
