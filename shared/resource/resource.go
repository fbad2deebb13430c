// Package resource extracts human readable resource identifiers from
// normalized listing payloads.
package resource

import (
	"fmt"
	"sort"
	"strings"
)

// identifierSuffixes are tried in order against the keys of a listed item.
var identifierSuffixes = []string{"Arn", "ARN", "Id", "ID", "Name", "Url", "URL"}

// foreignPrefixes mark keys that reference some other resource.
var foreignPrefixes = []string{"Owner", "Account", "Requester", "Kms"}

// Counts returns the number of items per list in the payload. Lists nested
// in objects are reported with a dotted path.
func Counts(payload map[string]any) map[string]int {
	out := map[string]int{}
	walk(payload, "", func(path string, items []any) {
		out[path] = len(items)
	})
	return out
}

// Identifiers returns one identifier per listed item, sorted.
func Identifiers(payload map[string]any) []string {
	var ids []string
	walk(payload, "", func(_ string, items []any) {
		for _, item := range items {
			if id := Identifier(item); id != "" {
				ids = append(ids, id)
			}
		}
	})
	sort.Strings(ids)
	return ids
}

// Identifier picks the most specific identifier of one item: a scalar item
// is its own identifier, an object uses its first Arn, Id, Name or Url field.
func Identifier(item any) string {
	switch v := item.(type) {
	case string:
		return v
	case float64, bool:
		return fmt.Sprint(v)
	case map[string]any:
		keys := make([]string, 0, len(v))
		for k := range v {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, suffix := range identifierSuffixes {
			for _, k := range keys {
				if !strings.HasSuffix(k, suffix) || foreign(k) {
					continue
				}
				if s, ok := v[k].(string); ok && s != "" {
					return s
				}
			}
		}
	}
	return ""
}

func foreign(key string) bool {
	for _, p := range foreignPrefixes {
		if strings.HasPrefix(key, p) {
			return true
		}
	}
	return false
}

func walk(doc map[string]any, prefix string, fn func(path string, items []any)) {
	keys := make([]string, 0, len(doc))
	for k := range doc {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		path := k
		if prefix != "" {
			path = prefix + "." + k
		}
		switch v := doc[k].(type) {
		case []any:
			fn(path, v)
		case map[string]any:
			walk(v, path, fn)
		}
	}
}
