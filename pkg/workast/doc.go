// Package workast is the Go SDK for the Workast task-management API.
//
// A Client turns method calls into authenticated HTTP requests against the
// Workast REST API and decodes the replies. Everything is built on a single
// primitive, APICall, which validates a request description, dispatches it
// and normalizes the response or failure. Resource services (Tasks, Lists,
// Tags, Notifications, Users) are thin bindings generated from MethodSpecs.
//
// # Creating a client
//
//	c, err := workast.New(os.Getenv("WORKAST_TOKEN"),
//	    workast.WithTimeout(30*time.Second),
//	    workast.WithMaxRetries(2),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// # Calling a resource method
//
// Path parameters come first, then the query (GET/HEAD) or body (other
// verbs), then per-call options:
//
//	resp, err := c.Tasks.ListActivity(ctx, "abc123", workast.Params{"limit": 10})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	var activity []map[string]any
//	err = resp.Decode(&activity)
//
// # Raw calls
//
// APICall accepts a full request description. Unset fields default to the
// client configuration:
//
//	resp, err := c.APICall(ctx, workast.RequestOptions{
//	    Method:      http.MethodPost,
//	    Path:        "/task/search",
//	    Body:        workast.Params{"text": "invoice"},
//	    Impersonate: workast.Impersonate{Team: "T123"},
//	})
//
// A 2xx reply without a body yields a Response whose NoContent method
// reports true.
//
// # Uploading files
//
// A body carrying a "file" entry is sent as multipart/form-data. The other
// body fields become form fields, nested values in bracket notation:
//
//	f, _ := workast.FileFromPath("./report.pdf")
//	resp, err := c.Tasks.CreateAttachment(ctx, "abc123",
//	    workast.Params{"file": f, "meta": map[string]any{"source": "cli"}},
//	    workast.WithProgress(func(ev workast.ProgressEvent) {
//	        fmt.Printf("%s %.0f%%\n", ev.Direction, ev.Percent)
//	    }),
//	)
//
// # Errors
//
// Local contract violations return *InvalidParameterError and never reach the
// network. Anything that happens after dispatch returns *HTTPError, whose
// Type is the API error name, ResponseError, RequestTimeoutError or
// RequestError.
package workast
