package javamap

import (
	"errors"
	"fmt"
	"strings"
)

// Tree is a native copy of a nested foreign mapping. Inner levels are Tree
// values; leaves are int64, or nil where the foreign map held null.
type Tree map[string]any

// ErrDepth reports a foreign value whose nesting does not match the depth
// the caller asked for.
var ErrDepth = errors.New("javamap: unexpected nesting depth")

// Copy copies a mapping exactly depth levels deep. Depth 1 is a flat
// key→int mapping, depth 3 is key→key→key→int. Every key at every level is
// carried over and nothing is added; any level that is not a mapping where
// one is expected, or a mapping where a leaf is expected, fails with
// ErrDepth.
func Copy(v *Value, depth int) (Tree, error) {
	if depth < 1 {
		return nil, fmt.Errorf("javamap: copy depth must be positive, got %d", depth)
	}
	return copyLevel(v, depth, nil)
}

func copyLevel(v *Value, depth int, path []string) (Tree, error) {
	if v.Kind() != KindMap {
		return nil, fmt.Errorf("%w: expected map at %s, got %s", ErrDepth, pathString(path), v.Kind())
	}

	out := make(Tree, len(v.Map.Entries))
	for _, e := range v.Map.Entries {
		key, ok := e.Key.Scalar()
		if !ok {
			return nil, fmt.Errorf("javamap: non-scalar key (%s) at %s", e.Key.Kind(), pathString(path))
		}
		if _, dup := out[key]; dup {
			return nil, fmt.Errorf("javamap: duplicate key %q at %s", key, pathString(path))
		}
		child := append(path[:len(path):len(path)], key)

		if depth == 1 {
			leaf, err := copyLeaf(e.Value, child)
			if err != nil {
				return nil, err
			}
			out[key] = leaf
			continue
		}

		sub, err := copyLevel(e.Value, depth-1, child)
		if err != nil {
			return nil, err
		}
		out[key] = sub
	}
	return out, nil
}

func copyLeaf(v *Value, path []string) (any, error) {
	switch v.Kind() {
	case KindInt:
		return v.Int64()
	case KindNull:
		return nil, nil
	default:
		return nil, fmt.Errorf("%w: expected int at %s, got %s", ErrDepth, pathString(path), v.Kind())
	}
}

func pathString(path []string) string {
	if len(path) == 0 {
		return "root"
	}
	return "[" + strings.Join(path, "][") + "]"
}
