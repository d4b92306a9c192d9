package syntax

import (
	"math"

	"github.com/coregx/posixre/internal/ctype"
)

// Parser compiles a BRE pattern into a token tree. A Parser is
// single-use: Parse consumes its input.
type Parser struct {
	input   []byte
	classes map[string]func(byte) bool
	groupID int
}

// NewParser returns a parser over pattern with the default POSIX class
// table ([:alnum:] through [:xdigit:]) preloaded.
func NewParser(pattern []byte) *Parser {
	p := &Parser{
		input:   pattern,
		classes: make(map[string]func(byte) bool, 12),
		groupID: 1,
	}
	p.classes["alnum"] = ctype.IsAlnum
	p.classes["alpha"] = ctype.IsAlpha
	p.classes["blank"] = ctype.IsBlank
	p.classes["cntrl"] = ctype.IsCntrl
	p.classes["digit"] = ctype.IsDigit
	p.classes["graph"] = ctype.IsGraph
	p.classes["lower"] = ctype.IsLower
	p.classes["print"] = ctype.IsPrint
	p.classes["punct"] = ctype.IsPunct
	p.classes["space"] = ctype.IsSpace
	p.classes["upper"] = ctype.IsUpper
	p.classes["xdigit"] = ctype.IsXdigit
	return p
}

// WithClass registers a custom bracket class usable as [[:name:]],
// overriding any default of the same name. Returns p for chaining.
func (p *Parser) WithClass(name string, fn func(byte) bool) *Parser {
	p.classes[name] = fn
	return p
}

// Parse compiles the pattern into its top-level alternatives.
func Parse(pattern string) ([][]Node, error) {
	return NewParser([]byte(pattern)).Parse()
}

// Parse compiles the parser's input into its top-level alternatives.
func (p *Parser) Parse() ([][]Node, error) {
	return p.parseAlternatives()
}

func (p *Parser) peek() int {
	if len(p.input) == 0 {
		return -1
	}
	return int(p.input[0])
}

func (p *Parser) peekAt(i int) int {
	if i >= len(p.input) {
		return -1
	}
	return int(p.input[i])
}

func (p *Parser) consume(n int) {
	p.input = p.input[n:]
}

func (p *Parser) next() (byte, error) {
	if len(p.input) == 0 {
		return 0, &ParseError{Kind: KindUnexpectedEOF}
	}
	c := p.input[0]
	p.consume(1)
	return c, nil
}

func (p *Parser) expect(c byte) error {
	if p.peek() != int(c) {
		return &ParseError{Kind: KindExpected, Want: c, Got: p.peek()}
	}
	p.consume(1)
	return nil
}

// takeInt reads a decimal count for `\{m,n\}`. The bool result is
// false when no digits were present.
func (p *Parser) takeInt() (int, bool, error) {
	out := -1
	for p.peek() >= '0' && p.peek() <= '9' {
		c := p.input[0]
		p.consume(1)
		if out < 0 {
			out = 0
		}
		out = out*10 + int(c-'0')
		if out > math.MaxUint32 {
			return 0, false, &ParseError{Kind: KindIntegerOverflow}
		}
	}
	if out < 0 {
		return 0, false, nil
	}
	return out, true, nil
}

// parseAlternatives compiles a `\|`-separated token chain until end of
// input or a closing `\)`. Groups recurse into it.
func (p *Parser) parseAlternatives() ([][]Node, error) {
	var alternatives [][]Node
	var chain []Node

	for len(p.input) > 0 {
		c := p.input[0]
		p.consume(1)

		var token Token
		switch c {
		case '^':
			token = Token{Op: OpStart}
		case '$':
			token = Token{Op: OpEnd}
		case '.':
			token = Token{Op: OpAny}
		case '*':
			if len(chain) == 0 {
				return nil, &ParseError{Kind: KindLeadingRepetition}
			}
			chain[len(chain)-1].Range = Range{Min: 0, Max: Unbounded}
			continue
		case '[':
			tok, err := p.parseBracket()
			if err != nil {
				return nil, err
			}
			token = tok
		case '\\':
			e, err := p.next()
			if err != nil {
				return nil, err
			}
			switch e {
			case '(':
				id := p.groupID
				p.groupID++
				alts, err := p.parseAlternatives()
				if err != nil {
					return nil, err
				}
				token = Token{Op: OpGroup, GroupID: id, Alternatives: alts}
			case ')':
				alternatives = append(alternatives, chain)
				return alternatives, nil
			case '|':
				alternatives = append(alternatives, chain)
				chain = nil
				continue
			case '<':
				token = Token{Op: OpWordStart}
			case '>':
				token = Token{Op: OpWordEnd}
			case '?', '+':
				if len(chain) == 0 {
					return nil, &ParseError{Kind: KindLeadingRepetition}
				}
				if e == '?' {
					chain[len(chain)-1].Range = Range{Min: 0, Max: 1}
				} else {
					chain[len(chain)-1].Range = Range{Min: 1, Max: Unbounded}
				}
				continue
			case '{':
				if len(chain) == 0 {
					return nil, &ParseError{Kind: KindLeadingRepetition}
				}
				r, err := p.parseRepetition()
				if err != nil {
					return nil, err
				}
				chain[len(chain)-1].Range = r
				continue
			case 'a':
				token = Token{Op: OpOneOf, Items: []ClassItem{{Class: ctype.IsAlnum, Name: "alnum"}}}
			case 'd':
				token = Token{Op: OpOneOf, Items: []ClassItem{{Class: ctype.IsDigit, Name: "digit"}}}
			case 's':
				token = Token{Op: OpOneOf, Items: []ClassItem{{Class: ctype.IsSpace, Name: "space"}}}
			case 'S':
				token = Token{Op: OpOneOf, Invert: true, Items: []ClassItem{{Class: ctype.IsSpace, Name: "space"}}}
			case 'n':
				token = Token{Op: OpChar, Ch: '\n'}
			case 'r':
				token = Token{Op: OpChar, Ch: '\r'}
			case 't':
				token = Token{Op: OpChar, Ch: '\t'}
			default:
				token = Token{Op: OpChar, Ch: e}
			}
		default:
			token = Token{Op: OpChar, Ch: c}
		}

		chain = append(chain, Node{Token: token, Range: Once})
	}

	alternatives = append(alternatives, chain)
	return alternatives, nil
}

// parseRepetition reads the body of `\{m\}`, `\{m,\}` or `\{m,n\}`,
// after the opening brace. Both `}` and `\}` close it.
func (p *Parser) parseRepetition() (Range, error) {
	first, ok, err := p.takeInt()
	if err != nil {
		return Range{}, err
	}
	if !ok {
		return Range{}, &ParseError{Kind: KindEmptyRepetition}
	}
	second := first
	if p.peek() == ',' {
		p.consume(1)
		n, ok, err := p.takeInt()
		if err != nil {
			return Range{}, err
		}
		if ok {
			second = n
		} else {
			second = Unbounded
		}
	}
	switch {
	case p.peek() == '}':
		p.consume(1)
	case p.peek() == '\\' && p.peekAt(1) == '}':
		p.consume(2)
	default:
		return Range{}, &ParseError{Kind: KindUnclosedRepetition}
	}
	if second != Unbounded && first > second {
		return Range{}, &ParseError{Kind: KindIllegalRange}
	}
	return Range{Min: first, Max: second}, nil
}

// parseBracket reads a bracket expression after the opening '['. A ']'
// directly after '[' (or '[^') is a literal member, and a trailing '-'
// is a literal, per POSIX.
func (p *Parser) parseBracket() (Token, error) {
	var items []ClassItem
	invert := p.peek() == '^'
	if invert {
		p.consume(1)
	}

	for {
		c, err := p.next()
		if err != nil {
			return Token{}, err
		}

		push := true
		if c == '[' {
			// Collation forms. [.x.] and [=x=] degrade to the byte
			// itself; [:name:] looks up the class table.
			d, err := p.next()
			if err != nil {
				return Token{}, err
			}
			switch d {
			case '.':
				c, err = p.next()
				if err != nil {
					return Token{}, err
				}
				if err := p.expect('.'); err != nil {
					return Token{}, err
				}
				if err := p.expect(']'); err != nil {
					return Token{}, err
				}
			case '=':
				c, err = p.next()
				if err != nil {
					return Token{}, err
				}
				if err := p.expect('='); err != nil {
					return Token{}, err
				}
				if err := p.expect(']'); err != nil {
					return Token{}, err
				}
			case ':':
				end := -1
				for i := range p.input {
					if p.input[i] == ':' {
						end = i
						break
					}
				}
				if end < 0 {
					return Token{}, &ParseError{Kind: KindUnexpectedEOF}
				}
				name := string(p.input[:end])
				class, ok := p.classes[name]
				if !ok {
					return Token{}, &ParseError{Kind: KindUnknownClass, Class: name}
				}
				p.consume(end + 1)
				if err := p.expect(']'); err != nil {
					return Token{}, err
				}
				items = append(items, ClassItem{Class: class, Name: name})
				push = false
			default:
				return Token{}, &ParseError{Kind: KindUnknownCollation}
			}
		}

		if push {
			items = append(items, ClassItem{Ch: c})

			if p.peek() == '-' && p.peekAt(1) != int(']') {
				p.consume(1)
				dest, err := p.next()
				if err != nil {
					return Token{}, err
				}
				for b := int(c) + 1; b <= int(dest); b++ {
					items = append(items, ClassItem{Ch: byte(b)})
				}
			}
		}

		if p.peek() == int(']') {
			p.consume(1)
			break
		}
	}

	return Token{Op: OpOneOf, Invert: invert, Items: items}, nil
}
