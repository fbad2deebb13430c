package awsapi

import (
	"encoding/json"
	"reflect"

	"github.com/thirukguru/aws-list-all/service/registry"
)

// tokenPairs maps output continuation fields to the input fields that
// request the next page. Earlier pairs win.
var tokenPairs = []struct {
	out string
	in  string
}{
	{"NextToken", "NextToken"},
	{"NextMarker", "Marker"},
	{"NextPageToken", "PageToken"},
	{"NextContinuationToken", "ContinuationToken"},
	{"LastEvaluatedTableName", "ExclusiveStartTableName"},
	{"Position", "Position"},
	// iam, rds, elasticache and redshift return the next marker as Marker.
	{"Marker", "Marker"},
}

// truncationFlags report whether more pages exist. When an output carries
// one and it is false, no token is followed.
var truncationFlags = []string{"IsTruncated", "Truncated"}

// bookkeepingKeys are dropped from normalized pages.
var bookkeepingKeys = map[string]bool{
	"ResultMetadata": true,
	"IsTruncated":    true,
	"Truncated":      true,
	"MaxItems":       true,
	"MaxResults":     true,
	"MaxRecords":     true,
}

func init() {
	for _, p := range tokenPairs {
		bookkeepingKeys[p.out] = true
	}
}

// nextToken returns the input field to set and the token for the next page,
// or an empty token when the output carries none.
func nextToken(out reflect.Value, input reflect.Value) (string, string) {
	if !truncated(out) {
		return "", ""
	}
	for _, p := range tokenPairs {
		if !input.Elem().FieldByName(p.in).IsValid() {
			continue
		}
		if tok, ok := registry.StringField(out, p.out); ok && tok != "" {
			return p.in, tok
		}
	}
	return "", ""
}

// truncated is false only when the output has a truncation flag set to
// false.
func truncated(out reflect.Value) bool {
	if !out.IsValid() {
		return false
	}
	if out.Kind() == reflect.Ptr {
		if out.IsNil() {
			return false
		}
		out = out.Elem()
	}
	if out.Kind() != reflect.Struct {
		return true
	}
	for _, name := range truncationFlags {
		f := out.FieldByName(name)
		if !f.IsValid() {
			continue
		}
		if f.Kind() == reflect.Ptr {
			if f.IsNil() {
				return false
			}
			f = f.Elem()
		}
		if f.Kind() == reflect.Bool {
			return f.Bool()
		}
	}
	return true
}

// normalize converts an SDK output struct into plain JSON values without
// response metadata or pagination fields.
func normalize(out any) (map[string]any, error) {
	if out == nil {
		return map[string]any{}, nil
	}
	b, err := json.Marshal(out)
	if err != nil {
		return nil, err
	}
	doc := map[string]any{}
	if err := json.Unmarshal(b, &doc); err != nil {
		return nil, err
	}
	for k, v := range doc {
		if bookkeepingKeys[k] || v == nil {
			delete(doc, k)
		}
	}
	return doc, nil
}

// mergePage folds a page into the accumulated payload: lists are
// concatenated, other values keep the latest page's value.
func mergePage(acc, page map[string]any) map[string]any {
	if acc == nil {
		return page
	}
	for k, v := range page {
		prev, ok := acc[k].([]any)
		next, isList := v.([]any)
		if ok && isList {
			acc[k] = append(prev, next...)
			continue
		}
		acc[k] = v
	}
	return acc
}

// HasItems reports whether a payload holds at least one resource, that is
// a non-empty list at the top level or inside a nested object.
func HasItems(payload map[string]any) bool {
	for _, v := range payload {
		switch x := v.(type) {
		case []any:
			if len(x) > 0 {
				return true
			}
		case map[string]any:
			if HasItems(x) {
				return true
			}
		}
	}
	return false
}
