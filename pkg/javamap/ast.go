package javamap

// Value is one node of a parsed Java value rendering. Exactly one field is
// set; "null" is lexed as a Word and reported by Kind as KindNull.
type Value struct {
	Map  *Map   `parser:"  @@"`
	List *List  `parser:"| @@"`
	Int  string `parser:"| @Int"`
	Word string `parser:"| @Word"`
}

// Map is a rendered java.util.Map: {k=v, k=v}.
type Map struct {
	Entries []*Entry `parser:"LBrace ( @@ ( Comma @@ )* )? RBrace"`
}

// Entry is a single key=value pair of a Map.
type Entry struct {
	Key   *Value `parser:"@@ Equals"`
	Value *Value `parser:"@@"`
}

// List is a rendered java.util.Collection: [a, b].
type List struct {
	Items []*Value `parser:"LBracket ( @@ ( Comma @@ )* )? RBracket"`
}
