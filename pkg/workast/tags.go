package workast

import "context"

// TagsService binds the /tag endpoints.
type TagsService struct {
	basic basicMethods
}

func newTagsService(c *Client) *TagsService {
	return &TagsService{basic: c.generateBasic(TagPath, BasicCreate, BasicDelete, BasicList, BasicUpdate)}
}

func (s *TagsService) Create(ctx context.Context, body Params, opts ...CallOption) (*Response, error) {
	return s.basic.create.Call(ctx, nil, body, opts...)
}

func (s *TagsService) List(ctx context.Context, query Params, opts ...CallOption) (*Response, error) {
	return s.basic.list.Call(ctx, nil, query, opts...)
}

func (s *TagsService) Update(ctx context.Context, id string, body Params, opts ...CallOption) (*Response, error) {
	return s.basic.update.Call(ctx, []string{id}, body, opts...)
}

func (s *TagsService) Delete(ctx context.Context, id string, body Params, opts ...CallOption) (*Response, error) {
	return s.basic.del.Call(ctx, []string{id}, body, opts...)
}
