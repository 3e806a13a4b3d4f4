package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/workast/workast-sdk-go/pkg/workast"
)

// ── call ─────────────────────────────────────────────────────────────────────

func newCallCmd(a *app) *cobra.Command {
	var (
		method   string
		path     string
		query    []string
		data     string
		file     string
		progress bool
	)

	cmd := &cobra.Command{
		Use:   "call",
		Short: "Make a raw API call",
		Long: `Make a raw API call against any endpoint.

Examples:
  workast call --path /user/me
  workast call --method POST --path /task/search --data '{"text":"invoice"}'
  workast call --method GET --path /list --query limit=10 --query archived=false
  workast call --method POST --path /task/5c1a/attachment --file ./report.pdf --progress`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := a.client()
			if err != nil {
				return err
			}

			q, err := parseQuery(query)
			if err != nil {
				return err
			}
			body, err := parseData(data)
			if err != nil {
				return err
			}
			if file != "" {
				f, err := workast.FileFromPath(file)
				if err != nil {
					return err
				}
				if body == nil {
					body = workast.Params{}
				}
				body["file"] = f
			}

			opts := workast.RequestOptions{
				Method: strings.ToUpper(method),
				Path:   path,
				Query:  q,
				Body:   body,
				Impersonate: workast.Impersonate{
					Team: a.cfg.Team,
					User: a.cfg.User,
				},
			}
			if progress {
				opts.OnProgress = func(ev workast.ProgressEvent) {
					if ev.LengthComputable {
						fmt.Fprintf(a.errOut, "%s %d/%d (%.0f%%)\n", ev.Direction, ev.Loaded, ev.Total, ev.Percent)
					} else {
						fmt.Fprintf(a.errOut, "%s %d bytes\n", ev.Direction, ev.Loaded)
					}
				}
			}

			resp, err := client.APICall(cmd.Context(), opts)
			if err != nil {
				return err
			}
			return a.printResponse(resp)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&method, "method", "X", "GET", "HTTP method")
	f.StringVarP(&path, "path", "p", "/", "Request path relative to the API base URL")
	f.StringArrayVarP(&query, "query", "q", nil, "Query parameter as key=value (repeatable)")
	f.StringVarP(&data, "data", "d", "", "JSON object request body")
	f.StringVarP(&file, "file", "f", "", "Upload this file as multipart/form-data")
	f.BoolVar(&progress, "progress", false, "Report transfer progress on stderr")
	return cmd
}

// parseQuery turns repeated key=value flags into query params. A repeated
// key becomes a list.
func parseQuery(pairs []string) (workast.Params, error) {
	if len(pairs) == 0 {
		return nil, nil
	}
	q := workast.Params{}
	for _, p := range pairs {
		k, v, ok := strings.Cut(p, "=")
		if !ok || k == "" {
			return nil, fmt.Errorf("query %q: expected key=value", p)
		}
		switch prev := q[k].(type) {
		case nil:
			q[k] = v
		case string:
			q[k] = []string{prev, v}
		case []string:
			q[k] = append(prev, v)
		}
	}
	return q, nil
}

func parseData(data string) (workast.Params, error) {
	if data == "" {
		return nil, nil
	}
	var body workast.Params
	if err := json.Unmarshal([]byte(data), &body); err != nil {
		return nil, fmt.Errorf("--data must be a JSON object: %w", err)
	}
	return body, nil
}
