package workast

import (
	"context"
	"net/http"
)

// UsersService binds the /user endpoints.
type UsersService struct {
	basic basicMethods

	me, invite, activate, deactivate *Method
}

func newUsersService(c *Client) *UsersService {
	return &UsersService{
		basic:      c.generateBasic(UserPath, BasicList, BasicRetrieve, BasicUpdate),
		me:         c.Generate(MethodSpec{Method: http.MethodGet, Path: UserPath + "/me"}),
		invite:     c.Generate(MethodSpec{Method: http.MethodPost, Path: UserPath + "/invite"}),
		activate:   c.Generate(MethodSpec{Method: http.MethodPost, Path: UserPath + "/{userId}/activate"}),
		deactivate: c.Generate(MethodSpec{Method: http.MethodPost, Path: UserPath + "/{userId}/deactivate"}),
	}
}

func (s *UsersService) List(ctx context.Context, query Params, opts ...CallOption) (*Response, error) {
	return s.basic.list.Call(ctx, nil, query, opts...)
}

func (s *UsersService) Retrieve(ctx context.Context, userID string, query Params, opts ...CallOption) (*Response, error) {
	return s.basic.retrieve.Call(ctx, []string{userID}, query, opts...)
}

func (s *UsersService) Update(ctx context.Context, userID string, body Params, opts ...CallOption) (*Response, error) {
	return s.basic.update.Call(ctx, []string{userID}, body, opts...)
}

// Me fetches the authenticated user.
func (s *UsersService) Me(ctx context.Context, query Params, opts ...CallOption) (*Response, error) {
	return s.me.Call(ctx, nil, query, opts...)
}

func (s *UsersService) Invite(ctx context.Context, body Params, opts ...CallOption) (*Response, error) {
	return s.invite.Call(ctx, nil, body, opts...)
}

func (s *UsersService) Activate(ctx context.Context, userID string, body Params, opts ...CallOption) (*Response, error) {
	return s.activate.Call(ctx, []string{userID}, body, opts...)
}

func (s *UsersService) Deactivate(ctx context.Context, userID string, body Params, opts ...CallOption) (*Response, error) {
	return s.deactivate.Call(ctx, []string{userID}, body, opts...)
}
