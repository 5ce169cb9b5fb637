package javamap

import (
	"github.com/alecthomas/participle/v2/lexer"
)

// JavaMapLexer tokenizes the text produced by java.util.AbstractMap.toString
// and AbstractCollection.toString, e.g. "{0={E=12480, N=9200}}".
var JavaMapLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Whitespace", Pattern: `[ \t\r\n]+`},

	// Punctuation
	{Name: "LBrace", Pattern: `\{`},
	{Name: "RBrace", Pattern: `\}`},
	{Name: "LBracket", Pattern: `\[`},
	{Name: "RBracket", Pattern: `\]`},
	{Name: "Equals", Pattern: `=`},
	{Name: "Comma", Pattern: `,`},

	// Anything else up to the next delimiter. Inner spaces are kept so enum
	// descriptions such as "CLB LUTs" survive as a single key. A Word must
	// hold a non-digit, so it comes before Int to take keys like "7 Series".
	{Name: "Word", Pattern: `-?[0-9]*[ \t]*[^\s{}\[\]=,0-9-](?:[^\n{}\[\]=,]*[^\s{}\[\]=,])?`},

	{Name: "Int", Pattern: `-?[0-9]+`},
})
