package metatag

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"
)

// parsePyLiteral parses a Python literal expression (dict, list, tuple,
// string, number, True/False/None) into the same value shapes
// encoding/json produces: map[string]any, []any, string, float64, bool,
// nil. Models sometimes emit dict-literal syntax with single quotes
// instead of JSON; this is the fallback for that case.
func parsePyLiteral(input string) (any, error) {
	p := &pyParser{src: input}
	p.skipSpace()
	v, err := p.parseValue()
	if err != nil {
		return nil, err
	}
	p.skipSpace()
	if p.pos != len(p.src) {
		return nil, p.errorf("trailing characters after literal")
	}
	return v, nil
}

type pyParser struct {
	src string
	pos int
}

func (p *pyParser) errorf(format string, args ...any) error {
	return fmt.Errorf("python literal at offset %d: %s", p.pos, fmt.Sprintf(format, args...))
}

func (p *pyParser) skipSpace() {
	for p.pos < len(p.src) {
		switch p.src[p.pos] {
		case ' ', '\t', '\n', '\r':
			p.pos++
		default:
			return
		}
	}
}

func (p *pyParser) peek() byte {
	if p.pos >= len(p.src) {
		return 0
	}
	return p.src[p.pos]
}

func (p *pyParser) parseValue() (any, error) {
	p.skipSpace()
	switch c := p.peek(); {
	case c == '{':
		return p.parseDict()
	case c == '[':
		return p.parseList(']')
	case c == '(':
		return p.parseList(')')
	case c == '\'' || c == '"':
		return p.parseString()
	case c == '-' || c == '+' || (c >= '0' && c <= '9') || c == '.':
		return p.parseNumber()
	default:
		return p.parseKeyword()
	}
}

func (p *pyParser) parseDict() (map[string]any, error) {
	p.pos++ // consume '{'
	out := make(map[string]any)
	p.skipSpace()
	if p.peek() == '}' {
		p.pos++
		return out, nil
	}
	for {
		p.skipSpace()
		key, err := p.parseValue()
		if err != nil {
			return nil, err
		}
		keyStr, ok := key.(string)
		if !ok {
			// Non-string keys (numbers, booleans) are stringified so the
			// result fits the record's string-key shape.
			keyStr = fmt.Sprintf("%v", key)
		}

		p.skipSpace()
		if p.peek() != ':' {
			return nil, p.errorf("expected ':' after dict key")
		}
		p.pos++

		val, err := p.parseValue()
		if err != nil {
			return nil, err
		}
		out[keyStr] = val

		p.skipSpace()
		switch p.peek() {
		case ',':
			p.pos++
			p.skipSpace()
			// Trailing comma before the closing brace is valid Python.
			if p.peek() == '}' {
				p.pos++
				return out, nil
			}
		case '}':
			p.pos++
			return out, nil
		default:
			return nil, p.errorf("expected ',' or '}' in dict")
		}
	}
}

func (p *pyParser) parseList(closer byte) ([]any, error) {
	p.pos++ // consume opener
	out := []any{}
	p.skipSpace()
	if p.peek() == closer {
		p.pos++
		return out, nil
	}
	for {
		v, err := p.parseValue()
		if err != nil {
			return nil, err
		}
		out = append(out, v)

		p.skipSpace()
		switch p.peek() {
		case ',':
			p.pos++
			p.skipSpace()
			if p.peek() == closer {
				p.pos++
				return out, nil
			}
		case closer:
			p.pos++
			return out, nil
		default:
			return nil, p.errorf("expected ',' or %q in sequence", string(closer))
		}
	}
}

func (p *pyParser) parseString() (string, error) {
	quote := p.src[p.pos]
	p.pos++

	var sb strings.Builder
	for p.pos < len(p.src) {
		c := p.src[p.pos]
		switch c {
		case quote:
			p.pos++
			return sb.String(), nil
		case '\\':
			p.pos++
			if p.pos >= len(p.src) {
				return "", p.errorf("unterminated escape")
			}
			esc := p.src[p.pos]
			p.pos++
			switch esc {
			case 'n':
				sb.WriteByte('\n')
			case 't':
				sb.WriteByte('\t')
			case 'r':
				sb.WriteByte('\r')
			case '\\', '\'', '"':
				sb.WriteByte(esc)
			case 'u':
				if p.pos+4 > len(p.src) {
					return "", p.errorf("short \\u escape")
				}
				code, err := strconv.ParseUint(p.src[p.pos:p.pos+4], 16, 32)
				if err != nil {
					return "", p.errorf("bad \\u escape: %v", err)
				}
				p.pos += 4
				sb.WriteRune(rune(code))
			default:
				// Python leaves unknown escapes intact.
				sb.WriteByte('\\')
				sb.WriteByte(esc)
			}
		default:
			r, size := utf8.DecodeRuneInString(p.src[p.pos:])
			sb.WriteRune(r)
			p.pos += size
		}
	}
	return "", p.errorf("unterminated string")
}

func (p *pyParser) parseNumber() (float64, error) {
	start := p.pos
	if c := p.peek(); c == '-' || c == '+' {
		p.pos++
	}
	for p.pos < len(p.src) {
		c := p.src[p.pos]
		if (c >= '0' && c <= '9') || c == '.' || c == 'e' || c == 'E' ||
			((c == '-' || c == '+') && (p.src[p.pos-1] == 'e' || p.src[p.pos-1] == 'E')) {
			p.pos++
			continue
		}
		break
	}
	n, err := strconv.ParseFloat(p.src[start:p.pos], 64)
	if err != nil {
		return 0, p.errorf("bad number %q", p.src[start:p.pos])
	}
	return n, nil
}

func (p *pyParser) parseKeyword() (any, error) {
	rest := p.src[p.pos:]
	switch {
	case strings.HasPrefix(rest, "True"):
		p.pos += 4
		return true, nil
	case strings.HasPrefix(rest, "False"):
		p.pos += 5
		return false, nil
	case strings.HasPrefix(rest, "None"):
		p.pos += 4
		return nil, nil
	}
	return nil, p.errorf("unexpected character %q", string(p.peek()))
}
