//go:build unit || e2e

// Package testutil builds JSON request bodies for table tests: start from a valid DTO and
// apply one mutation per case.
package testutil

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

type Mutation func(body map[string]any)

// Payload round-trips v through JSON so cases can edit it by field name.
func Payload(t *testing.T, v any, muts ...Mutation) map[string]any {
	t.Helper()
	raw, err := json.Marshal(v)
	require.NoError(t, err)

	var body map[string]any
	require.NoError(t, json.Unmarshal(raw, &body))
	for _, mut := range muts {
		mut(body)
	}
	return body
}

// Set replaces the value at a dotted path such as "shipping.phone". Missing intermediate
// objects are created.
func Set(path string, value any) Mutation {
	return func(body map[string]any) {
		parent, key := walk(body, path)
		parent[key] = value
	}
}

// Drop removes the value at a dotted path.
func Drop(path string) Mutation {
	return func(body map[string]any) {
		parent, key := walk(body, path)
		delete(parent, key)
	}
}

func walk(body map[string]any, path string) (map[string]any, string) {
	keys := strings.Split(path, ".")
	node := body
	for _, k := range keys[:len(keys)-1] {
		next, ok := node[k].(map[string]any)
		if !ok {
			next = map[string]any{}
			node[k] = next
		}
		node = next
	}
	return node, keys[len(keys)-1]
}
