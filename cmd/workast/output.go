package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/workast/workast-sdk-go/pkg/workast"
)

// printResponse writes resp in the configured output format. In text mode an
// array is tabulated using columns; an object is printed as key/value lines.
func (a *app) printResponse(resp *workast.Response, columns ...string) error {
	if resp.NoContent() {
		fmt.Fprintln(a.out, "(no content)")
		return nil
	}
	if a.cfg.Output == "json" {
		return printJSON(a.out, resp.Body)
	}

	var v any
	if err := json.Unmarshal(resp.Body, &v); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	switch val := v.(type) {
	case []any:
		return printTable(a.out, val, columns)
	case map[string]any:
		return printObject(a.out, val)
	default:
		fmt.Fprintln(a.out, cell(val))
		return nil
	}
}

func printJSON(w io.Writer, raw json.RawMessage) error {
	var buf bytes.Buffer
	if err := json.Indent(&buf, raw, "", "  "); err != nil {
		return fmt.Errorf("format response: %w", err)
	}
	buf.WriteByte('\n')
	_, err := buf.WriteTo(w)
	return err
}

func printTable(w io.Writer, rows []any, columns []string) error {
	if len(rows) == 0 {
		fmt.Fprintln(w, "(empty)")
		return nil
	}
	if len(columns) == 0 {
		columns = []string{"_id"}
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	header := make([]string, len(columns))
	for i, c := range columns {
		header[i] = strings.ToUpper(strings.TrimPrefix(c, "_"))
	}
	fmt.Fprintln(tw, strings.Join(header, "\t"))
	for _, r := range rows {
		obj, _ := r.(map[string]any)
		vals := make([]string, len(columns))
		for i, c := range columns {
			vals[i] = cell(obj[c])
		}
		fmt.Fprintln(tw, strings.Join(vals, "\t"))
	}
	return tw.Flush()
}

func printObject(w io.Writer, obj map[string]any) error {
	keys := make([]string, 0, len(obj))
	for k := range obj {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for _, k := range keys {
		fmt.Fprintf(tw, "%s:\t%s\n", k, cell(obj[k]))
	}
	return tw.Flush()
}

// cell renders one value on a single line; nested values stay compact JSON.
func cell(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case bool, float64:
		return fmt.Sprint(val)
	default:
		b, err := json.Marshal(val)
		if err != nil {
			return fmt.Sprint(val)
		}
		return string(b)
	}
}
