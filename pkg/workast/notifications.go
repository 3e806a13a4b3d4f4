package workast

import (
	"context"
	"net/http"
)

// NotificationsService binds the /notification endpoints.
type NotificationsService struct {
	basic basicMethods

	markAllAsRead, markAsRead, markAsUnread *Method

	retrieveSettings, updateSettings *Method

	subscribe, unsubscribe *Method
}

func newNotificationsService(c *Client) *NotificationsService {
	gen := func(method, path string) *Method {
		return c.Generate(MethodSpec{Method: method, Path: NotificationPath + path})
	}
	return &NotificationsService{
		basic:            c.generateBasic(NotificationPath, BasicList),
		markAllAsRead:    gen(http.MethodPost, "/read"),
		markAsRead:       gen(http.MethodPost, "/{notificationId}/read"),
		markAsUnread:     gen(http.MethodPost, "/{notificationId}/unread"),
		retrieveSettings: gen(http.MethodGet, "/settings"),
		updateSettings:   gen(http.MethodPatch, "/settings"),
		subscribe:        gen(http.MethodPost, "/subscribe"),
		unsubscribe:      gen(http.MethodPost, "/unsubscribe"),
	}
}

func (s *NotificationsService) List(ctx context.Context, query Params, opts ...CallOption) (*Response, error) {
	return s.basic.list.Call(ctx, nil, query, opts...)
}

func (s *NotificationsService) MarkAllAsRead(ctx context.Context, body Params, opts ...CallOption) (*Response, error) {
	return s.markAllAsRead.Call(ctx, nil, body, opts...)
}

func (s *NotificationsService) MarkAsRead(ctx context.Context, notificationID string, body Params, opts ...CallOption) (*Response, error) {
	return s.markAsRead.Call(ctx, []string{notificationID}, body, opts...)
}

func (s *NotificationsService) MarkAsUnread(ctx context.Context, notificationID string, body Params, opts ...CallOption) (*Response, error) {
	return s.markAsUnread.Call(ctx, []string{notificationID}, body, opts...)
}

func (s *NotificationsService) RetrieveSettings(ctx context.Context, query Params, opts ...CallOption) (*Response, error) {
	return s.retrieveSettings.Call(ctx, nil, query, opts...)
}

func (s *NotificationsService) UpdateSettings(ctx context.Context, body Params, opts ...CallOption) (*Response, error) {
	return s.updateSettings.Call(ctx, nil, body, opts...)
}

// Subscribe registers the caller for push notifications.
func (s *NotificationsService) Subscribe(ctx context.Context, body Params, opts ...CallOption) (*Response, error) {
	return s.subscribe.Call(ctx, nil, body, opts...)
}

func (s *NotificationsService) Unsubscribe(ctx context.Context, body Params, opts ...CallOption) (*Response, error) {
	return s.unsubscribe.Call(ctx, nil, body, opts...)
}
