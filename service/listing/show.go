package listing

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/fatih/color"
	"github.com/itchyny/gojq"
	"github.com/thirukguru/aws-list-all/model"
	"github.com/thirukguru/aws-list-all/shared/resource"
)

var markerColors = map[model.Status]*color.Color{
	model.StatusFound:        color.New(color.FgGreen, color.Bold),
	model.StatusNotFound:     color.New(color.Faint),
	model.StatusAccessDenied: color.New(color.FgBlue),
	model.StatusError:        color.New(color.FgRed, color.Bold),
}

// NewPrinter creates a printer. At verbose 0 only found resources and
// failures are shown; 1 adds resource identifiers and diagnostics; 2 adds
// empty listings. A non-empty query replaces identifiers with jq output.
func NewPrinter(verbose int, query string) Printer {
	return &printer{verbose: verbose, query: query}
}

// Marker returns the colored marker of a status.
func Marker(st model.Status) string {
	c, ok := markerColors[st]
	if !ok {
		return st.Marker()
	}
	return c.Sprint(st.Marker())
}

func (p *printer) Print(w io.Writer, l Listing) error {
	head := fmt.Sprintf("%s %s %s %s", Marker(l.Status), l.Service, l.Region, l.Operation)

	switch l.Status {
	case model.StatusNotFound:
		if p.verbose >= 2 {
			fmt.Fprintln(w, head)
		}
		return nil
	case model.StatusAccessDenied, model.StatusError:
		if l.ErrorCode != "" {
			head += " " + l.ErrorCode
		}
		fmt.Fprintln(w, head)
		if p.verbose >= 1 && l.Diagnostic != "" {
			fmt.Fprintf(w, "    %s\n", l.Diagnostic)
		}
		return nil
	}

	fmt.Fprintf(w, "%s %s\n", head, describeCounts(l.Response))
	if p.query != "" {
		values, err := Query(p.query, l.Response)
		if err != nil {
			return err
		}
		for _, v := range values {
			b, err := json.Marshal(v)
			if err != nil {
				return fmt.Errorf("failed to encode query result: %w", err)
			}
			fmt.Fprintf(w, "    %s\n", b)
		}
		return nil
	}
	if p.verbose >= 1 {
		for _, id := range resource.Identifiers(l.Response) {
			fmt.Fprintf(w, "    %s\n", id)
		}
	}
	return nil
}

func describeCounts(payload map[string]any) string {
	counts := resource.Counts(payload)
	keys := make([]string, 0, len(counts))
	for k, n := range counts {
		if n > 0 {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = fmt.Sprintf("%s(%d)", k, counts[k])
	}
	return strings.Join(parts, ", ")
}

// Query runs a jq expression against a payload and returns every value it
// emits.
func Query(expr string, payload map[string]any) ([]any, error) {
	q, err := gojq.Parse(expr)
	if err != nil {
		return nil, fmt.Errorf("invalid jq query %q: %w", expr, err)
	}
	var input any = map[string]any{}
	if payload != nil {
		input = payload
	}

	var out []any
	iter := q.Run(input)
	for {
		v, ok := iter.Next()
		if !ok {
			break
		}
		if err, ok := v.(error); ok {
			if herr, ok := err.(*gojq.HaltError); ok && herr.Value() == nil {
				break
			}
			return nil, fmt.Errorf("jq query failed: %w", err)
		}
		out = append(out, v)
	}
	return out, nil
}
