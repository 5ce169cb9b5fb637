package javamap

import (
	"fmt"
	"sync"

	"github.com/alecthomas/participle/v2"
)

// Parser turns Java map/collection text into a Value tree.
type Parser struct {
	parser *participle.Parser[Value]
}

// NewParser creates a new parser instance.
func NewParser() (*Parser, error) {
	parser, err := participle.Build[Value](
		participle.Lexer(JavaMapLexer),
		participle.Elide("Whitespace"),
		participle.UseLookahead(2),
	)
	if err != nil {
		return nil, fmt.Errorf("javamap: failed to build parser: %w", err)
	}

	return &Parser{parser: parser}, nil
}

// ParseString parses a single value from a string.
func (p *Parser) ParseString(input string) (*Value, error) {
	v, err := p.parser.ParseString("", input)
	if err != nil {
		return nil, fmt.Errorf("javamap: parse error: %w", err)
	}
	return v, nil
}

var defaultParser = sync.OnceValues(NewParser)

// ParseString parses input with a shared parser.
func ParseString(input string) (*Value, error) {
	p, err := defaultParser()
	if err != nil {
		return nil, err
	}
	return p.ParseString(input)
}
