package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/workast/workast-sdk-go/pkg/workast"
)

// runner adapts a single SDK call to a cobra RunE, printing the response
// with the given table columns.
func (a *app) runner(columns []string, call func(ctx context.Context, c *workast.Client, args []string, opts []workast.CallOption) (*workast.Response, error)) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		client, err := a.client()
		if err != nil {
			return err
		}
		resp, err := call(cmd.Context(), client, args, a.cfg.CallOptions())
		if err != nil {
			return err
		}
		return a.printResponse(resp, columns...)
	}
}

var (
	taskColumns         = []string{"_id", "text", "status", "listId", "dueDate"}
	listColumns         = []string{"_id", "name", "type", "archived"}
	tagColumns          = []string{"_id", "name", "color"}
	userColumns         = []string{"_id", "name", "email", "active"}
	notificationColumns = []string{"_id", "type", "read", "createdAt"}
)

// ── tasks ────────────────────────────────────────────────────────────────────

func newTasksCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{Use: "tasks", Short: "Work with tasks"}

	get := &cobra.Command{
		Use:   "get <task-id> [task-id...]",
		Short: "Fetch one or more tasks concurrently",
		Args:  cobra.MinimumNArgs(1),
		RunE: a.runner(taskColumns, func(ctx context.Context, c *workast.Client, args []string, opts []workast.CallOption) (*workast.Response, error) {
			if len(args) == 1 {
				return c.Tasks.Retrieve(ctx, args[0], nil, opts...)
			}
			resps, err := c.Tasks.RetrieveMany(ctx, args, nil, opts...)
			if err != nil {
				return nil, err
			}
			return joinResponses(resps), nil
		}),
	}

	var searchText, searchList string
	search := &cobra.Command{
		Use:   "search",
		Short: "Search tasks",
		Args:  cobra.NoArgs,
		RunE: a.runner(taskColumns, func(ctx context.Context, c *workast.Client, args []string, opts []workast.CallOption) (*workast.Response, error) {
			body := workast.Params{}
			if searchText != "" {
				body["text"] = searchText
			}
			if searchList != "" {
				body["listId"] = searchList
			}
			return c.Tasks.Search(ctx, body, opts...)
		}),
	}
	search.Flags().StringVar(&searchText, "text", "", "Match task text")
	search.Flags().StringVar(&searchList, "list", "", "Restrict to this list ID")

	done := &cobra.Command{
		Use:   "done <task-id>",
		Short: "Mark a task as completed",
		Args:  cobra.ExactArgs(1),
		RunE: a.runner(taskColumns, func(ctx context.Context, c *workast.Client, args []string, opts []workast.CallOption) (*workast.Response, error) {
			return c.Tasks.Complete(ctx, args[0], nil, opts...)
		}),
	}

	var createText, createDue string
	create := &cobra.Command{
		Use:   "create <list-id>",
		Short: "Create a task in a list",
		Args:  cobra.ExactArgs(1),
		RunE: a.runner(taskColumns, func(ctx context.Context, c *workast.Client, args []string, opts []workast.CallOption) (*workast.Response, error) {
			body := workast.Params{"text": createText}
			if createDue != "" {
				body["dueDate"] = createDue
			}
			return c.Tasks.Create(ctx, args[0], body, opts...)
		}),
	}
	create.Flags().StringVar(&createText, "text", "", "Task text")
	create.Flags().StringVar(&createDue, "due", "", "Due date (ISO 8601)")
	_ = create.MarkFlagRequired("text")

	var attachProgress bool
	attach := &cobra.Command{
		Use:   "attach <task-id> <file>",
		Short: "Upload a file as a task attachment",
		Args:  cobra.ExactArgs(2),
		RunE: a.runner(nil, func(ctx context.Context, c *workast.Client, args []string, opts []workast.CallOption) (*workast.Response, error) {
			f, err := workast.FileFromPath(args[1])
			if err != nil {
				return nil, err
			}
			if attachProgress {
				opts = append(opts, workast.WithProgress(func(ev workast.ProgressEvent) {
					if ev.LengthComputable {
						fmt.Fprintf(a.errOut, "%s %.0f%%\n", ev.Direction, ev.Percent)
					}
				}))
			}
			return c.Tasks.CreateAttachment(ctx, args[0], workast.Params{"file": f}, opts...)
		}),
	}
	attach.Flags().BoolVar(&attachProgress, "progress", false, "Report upload progress on stderr")

	cmd.AddCommand(get, search, done, create, attach)
	return cmd
}

// joinResponses merges several bodies into one JSON array response.
func joinResponses(resps []*workast.Response) *workast.Response {
	var buf bytes.Buffer
	buf.WriteByte('[')
	for i, r := range resps {
		if i > 0 {
			buf.WriteByte(',')
		}
		if r.NoContent() {
			buf.WriteString("null")
			continue
		}
		buf.Write(r.Body)
	}
	buf.WriteByte(']')
	return &workast.Response{StatusCode: 200, Body: json.RawMessage(buf.Bytes())}
}

// ── lists ────────────────────────────────────────────────────────────────────

func newListsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{Use: "lists", Short: "Work with lists"}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "ls",
			Short: "List the team's lists",
			Args:  cobra.NoArgs,
			RunE: a.runner(listColumns, func(ctx context.Context, c *workast.Client, args []string, opts []workast.CallOption) (*workast.Response, error) {
				return c.Lists.List(ctx, nil, opts...)
			}),
		},
		&cobra.Command{
			Use:   "personal",
			Short: "Show the personal list of the current user",
			Args:  cobra.NoArgs,
			RunE: a.runner(listColumns, func(ctx context.Context, c *workast.Client, args []string, opts []workast.CallOption) (*workast.Response, error) {
				return c.Lists.Personal(ctx, nil, opts...)
			}),
		},
		&cobra.Command{
			Use:   "get <list-id>",
			Short: "Show one list",
			Args:  cobra.ExactArgs(1),
			RunE: a.runner(listColumns, func(ctx context.Context, c *workast.Client, args []string, opts []workast.CallOption) (*workast.Response, error) {
				return c.Lists.Retrieve(ctx, args[0], nil, opts...)
			}),
		},
	)
	return cmd
}

// ── tags ─────────────────────────────────────────────────────────────────────

func newTagsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{Use: "tags", Short: "Work with tags"}
	cmd.AddCommand(&cobra.Command{
		Use:   "ls",
		Short: "List tags",
		Args:  cobra.NoArgs,
		RunE: a.runner(tagColumns, func(ctx context.Context, c *workast.Client, args []string, opts []workast.CallOption) (*workast.Response, error) {
			return c.Tags.List(ctx, nil, opts...)
		}),
	})
	return cmd
}

// ── users ────────────────────────────────────────────────────────────────────

func newUsersCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{Use: "users", Short: "Work with users"}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "me",
			Short: "Show the authenticated user",
			Args:  cobra.NoArgs,
			RunE: a.runner(userColumns, func(ctx context.Context, c *workast.Client, args []string, opts []workast.CallOption) (*workast.Response, error) {
				return c.Users.Me(ctx, nil, opts...)
			}),
		},
		&cobra.Command{
			Use:   "ls",
			Short: "List team members",
			Args:  cobra.NoArgs,
			RunE: a.runner(userColumns, func(ctx context.Context, c *workast.Client, args []string, opts []workast.CallOption) (*workast.Response, error) {
				return c.Users.List(ctx, nil, opts...)
			}),
		},
	)
	return cmd
}

// ── notifications ────────────────────────────────────────────────────────────

func newNotificationsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{Use: "notifications", Short: "Work with notifications"}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "ls",
			Short: "List notifications",
			Args:  cobra.NoArgs,
			RunE: a.runner(notificationColumns, func(ctx context.Context, c *workast.Client, args []string, opts []workast.CallOption) (*workast.Response, error) {
				return c.Notifications.List(ctx, nil, opts...)
			}),
		},
		&cobra.Command{
			Use:   "read-all",
			Short: "Mark every notification as read",
			Args:  cobra.NoArgs,
			RunE: a.runner(nil, func(ctx context.Context, c *workast.Client, args []string, opts []workast.CallOption) (*workast.Response, error) {
				return c.Notifications.MarkAllAsRead(ctx, nil, opts...)
			}),
		},
	)
	return cmd
}
