package javamap

import (
	"fmt"
	"strconv"
	"strings"
)

// Kind classifies a Value.
type Kind int

const (
	KindInvalid Kind = iota
	KindMap
	KindList
	KindInt
	KindWord
	KindNull
)

func (k Kind) String() string {
	switch k {
	case KindMap:
		return "map"
	case KindList:
		return "list"
	case KindInt:
		return "int"
	case KindWord:
		return "word"
	case KindNull:
		return "null"
	default:
		return "invalid"
	}
}

// Kind reports which alternative of the value is populated.
func (v *Value) Kind() Kind {
	switch {
	case v == nil:
		return KindInvalid
	case v.Map != nil:
		return KindMap
	case v.List != nil:
		return KindList
	case v.Int != "":
		return KindInt
	case v.Word == "null":
		return KindNull
	case v.Word != "":
		return KindWord
	default:
		return KindInvalid
	}
}

// Int64 returns the integer payload of an Int value.
func (v *Value) Int64() (int64, error) {
	if v.Kind() != KindInt {
		return 0, fmt.Errorf("javamap: expected int, got %s", v.Kind())
	}
	n, err := strconv.ParseInt(v.Int, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("javamap: invalid int %q: %w", v.Int, err)
	}
	return n, nil
}

// Scalar returns the textual payload of an Int or Word value.
func (v *Value) Scalar() (string, bool) {
	switch v.Kind() {
	case KindInt:
		return v.Int, true
	case KindWord:
		return v.Word, true
	}
	return "", false
}

// Lookup returns the value stored under key in a Map value.
func (v *Value) Lookup(key string) (*Value, bool) {
	if v.Kind() != KindMap {
		return nil, false
	}
	for _, e := range v.Map.Entries {
		if k, ok := e.Key.Scalar(); ok && k == key {
			return e.Value, true
		}
	}
	return nil, false
}

// String renders the value the way Java's toString would.
func (v *Value) String() string {
	var b strings.Builder
	v.write(&b)
	return b.String()
}

func (v *Value) write(b *strings.Builder) {
	switch v.Kind() {
	case KindMap:
		b.WriteByte('{')
		for i, e := range v.Map.Entries {
			if i > 0 {
				b.WriteString(", ")
			}
			e.Key.write(b)
			b.WriteByte('=')
			e.Value.write(b)
		}
		b.WriteByte('}')
	case KindList:
		b.WriteByte('[')
		for i, item := range v.List.Items {
			if i > 0 {
				b.WriteString(", ")
			}
			item.write(b)
		}
		b.WriteByte(']')
	case KindInt:
		b.WriteString(v.Int)
	case KindWord, KindNull:
		b.WriteString(v.Word)
	}
}

// MapOf builds a Map value from entries.
func MapOf(entries ...*Entry) *Value {
	return &Value{Map: &Map{Entries: entries}}
}

// ListOf builds a List value from items.
func ListOf(items ...*Value) *Value {
	return &Value{List: &List{Items: items}}
}

// Pair builds a map entry.
func Pair(key, value *Value) *Entry {
	return &Entry{Key: key, Value: value}
}

// IntOf builds an Int value.
func IntOf(n int64) *Value {
	return &Value{Int: strconv.FormatInt(n, 10)}
}

// WordOf builds a Word value.
func WordOf(s string) *Value {
	return &Value{Word: s}
}

// Null is the rendering of a Java null reference.
func Null() *Value {
	return &Value{Word: "null"}
}
