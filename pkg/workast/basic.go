package workast

import "net/http"

// Resource base paths.
const (
	ListPath         = "/list"
	TaskPath         = "/task"
	TagPath          = "/tag"
	NotificationPath = "/notification"
	UserPath         = "/user"
)

// Names of the basic REST methods.
const (
	BasicCreate   = "create"
	BasicList     = "list"
	BasicRetrieve = "retrieve"
	BasicUpdate   = "update"
	BasicDelete   = "del"
)

// GenerateBasicMethods returns the create/list/retrieve/update/del specs for
// resourcePath. When include is non-empty only the named methods are kept.
func GenerateBasicMethods(resourcePath string, include ...string) map[string]MethodSpec {
	all := map[string]MethodSpec{
		BasicCreate:   {Method: http.MethodPost, Path: resourcePath},
		BasicList:     {Method: http.MethodGet, Path: resourcePath},
		BasicRetrieve: {Method: http.MethodGet, Path: resourcePath + "/{id}"},
		BasicUpdate:   {Method: http.MethodPatch, Path: resourcePath + "/{id}"},
		BasicDelete:   {Method: http.MethodDelete, Path: resourcePath + "/{id}"},
	}
	if len(include) == 0 {
		return all
	}
	out := make(map[string]MethodSpec, len(include))
	for _, name := range include {
		if spec, ok := all[name]; ok {
			out[name] = spec
		}
	}
	return out
}

// basicMethods holds the generated basic methods of one resource. Methods
// not requested stay nil.
type basicMethods struct {
	create, list, retrieve, update, del *Method
}

func (c *Client) generateBasic(resourcePath string, include ...string) basicMethods {
	var b basicMethods
	for name, spec := range GenerateBasicMethods(resourcePath, include...) {
		m := c.Generate(spec)
		switch name {
		case BasicCreate:
			b.create = m
		case BasicList:
			b.list = m
		case BasicRetrieve:
			b.retrieve = m
		case BasicUpdate:
			b.update = m
		case BasicDelete:
			b.del = m
		}
	}
	return b
}
