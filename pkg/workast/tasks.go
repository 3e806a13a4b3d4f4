package workast

import (
	"context"
	"net/http"

	"golang.org/x/sync/errgroup"
)

// TasksService binds the /task endpoints.
type TasksService struct {
	basic basicMethods

	create, subscribe, unsubscribe, restore, complete, reopen *Method

	assign, exempt, clone, search, addTags, removeTags *Method

	createAttachment, deleteAttachment, updateAttachment *Method

	createSubtask *Method

	listActivity, addComment, deleteComment, updateComment *Method
}

func newTasksService(c *Client) *TasksService {
	post := func(path string) *Method { return c.Generate(MethodSpec{Method: http.MethodPost, Path: path}) }
	return &TasksService{
		basic: c.generateBasic(TaskPath, BasicRetrieve, BasicUpdate, BasicDelete),

		create:           post(ListPath + "/{listId}/task"),
		subscribe:        post(TaskPath + "/{id}/follow"),
		unsubscribe:      post(TaskPath + "/{id}/unfollow"),
		restore:          post(TaskPath + "/{id}/restore"),
		complete:         post(TaskPath + "/{id}/done"),
		reopen:           post(TaskPath + "/{id}/undone"),
		assign:           post(TaskPath + "/{id}/assigned"),
		exempt:           c.Generate(MethodSpec{Method: http.MethodDelete, Path: TaskPath + "/{id}/assigned"}),
		clone:            post(TaskPath + "/{id}/clone"),
		search:           post(TaskPath + "/search"),
		addTags:          post(TaskPath + "/{id}/tag"),
		removeTags:       c.Generate(MethodSpec{Method: http.MethodDelete, Path: TaskPath + "/{id}/tag"}),
		createAttachment: post(TaskPath + "/{id}/attachment"),
		deleteAttachment: c.Generate(MethodSpec{Method: http.MethodDelete, Path: TaskPath + "/{id}/attachment/{attachmentId}"}),
		updateAttachment: c.Generate(MethodSpec{Method: http.MethodPatch, Path: TaskPath + "/{id}/attachment/{attachmentId}"}),
		createSubtask:    post(TaskPath + "/{id}/subtask"),
		listActivity:     c.Generate(MethodSpec{Method: http.MethodGet, Path: TaskPath + "/{id}/activity"}),
		addComment:       post(TaskPath + "/{id}/activity"),
		deleteComment:    c.Generate(MethodSpec{Method: http.MethodDelete, Path: TaskPath + "/{id}/activity/{activityId}"}),
		updateComment:    c.Generate(MethodSpec{Method: http.MethodPatch, Path: TaskPath + "/{id}/activity/{activityId}"}),
	}
}

// Retrieve fetches task id.
func (s *TasksService) Retrieve(ctx context.Context, id string, query Params, opts ...CallOption) (*Response, error) {
	return s.basic.retrieve.Call(ctx, []string{id}, query, opts...)
}

// RetrieveMany fetches several tasks concurrently. Results keep the order of
// ids; the first failure cancels the remaining calls.
func (s *TasksService) RetrieveMany(ctx context.Context, ids []string, query Params, opts ...CallOption) ([]*Response, error) {
	out := make([]*Response, len(ids))
	g, gctx := errgroup.WithContext(ctx)
	for i, id := range ids {
		g.Go(func() error {
			resp, err := s.Retrieve(gctx, id, query, opts...)
			if err != nil {
				return err
			}
			out[i] = resp
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *TasksService) Update(ctx context.Context, id string, body Params, opts ...CallOption) (*Response, error) {
	return s.basic.update.Call(ctx, []string{id}, body, opts...)
}

func (s *TasksService) Delete(ctx context.Context, id string, body Params, opts ...CallOption) (*Response, error) {
	return s.basic.del.Call(ctx, []string{id}, body, opts...)
}

// Create adds a task to list listID.
func (s *TasksService) Create(ctx context.Context, listID string, body Params, opts ...CallOption) (*Response, error) {
	return s.create.Call(ctx, []string{listID}, body, opts...)
}

// Subscribe follows task id.
func (s *TasksService) Subscribe(ctx context.Context, id string, body Params, opts ...CallOption) (*Response, error) {
	return s.subscribe.Call(ctx, []string{id}, body, opts...)
}

// Unsubscribe stops following task id.
func (s *TasksService) Unsubscribe(ctx context.Context, id string, body Params, opts ...CallOption) (*Response, error) {
	return s.unsubscribe.Call(ctx, []string{id}, body, opts...)
}

func (s *TasksService) Restore(ctx context.Context, id string, body Params, opts ...CallOption) (*Response, error) {
	return s.restore.Call(ctx, []string{id}, body, opts...)
}

// Complete marks task id as done.
func (s *TasksService) Complete(ctx context.Context, id string, body Params, opts ...CallOption) (*Response, error) {
	return s.complete.Call(ctx, []string{id}, body, opts...)
}

// Reopen marks task id as not done.
func (s *TasksService) Reopen(ctx context.Context, id string, body Params, opts ...CallOption) (*Response, error) {
	return s.reopen.Call(ctx, []string{id}, body, opts...)
}

// Assign adds assignees to task id.
func (s *TasksService) Assign(ctx context.Context, id string, body Params, opts ...CallOption) (*Response, error) {
	return s.assign.Call(ctx, []string{id}, body, opts...)
}

// Exempt removes assignees from task id.
func (s *TasksService) Exempt(ctx context.Context, id string, body Params, opts ...CallOption) (*Response, error) {
	return s.exempt.Call(ctx, []string{id}, body, opts...)
}

func (s *TasksService) Clone(ctx context.Context, id string, body Params, opts ...CallOption) (*Response, error) {
	return s.clone.Call(ctx, []string{id}, body, opts...)
}

// Search runs a task search; the criteria travel in the body.
func (s *TasksService) Search(ctx context.Context, body Params, opts ...CallOption) (*Response, error) {
	return s.search.Call(ctx, nil, body, opts...)
}

func (s *TasksService) AddTags(ctx context.Context, id string, body Params, opts ...CallOption) (*Response, error) {
	return s.addTags.Call(ctx, []string{id}, body, opts...)
}

func (s *TasksService) RemoveTags(ctx context.Context, id string, body Params, opts ...CallOption) (*Response, error) {
	return s.removeTags.Call(ctx, []string{id}, body, opts...)
}

// CreateAttachment uploads to task id. Put the upload under the "file" key
// to send a multipart body.
func (s *TasksService) CreateAttachment(ctx context.Context, id string, body Params, opts ...CallOption) (*Response, error) {
	return s.createAttachment.Call(ctx, []string{id}, body, opts...)
}

func (s *TasksService) DeleteAttachment(ctx context.Context, id, attachmentID string, body Params, opts ...CallOption) (*Response, error) {
	return s.deleteAttachment.Call(ctx, []string{id, attachmentID}, body, opts...)
}

func (s *TasksService) UpdateAttachment(ctx context.Context, id, attachmentID string, body Params, opts ...CallOption) (*Response, error) {
	return s.updateAttachment.Call(ctx, []string{id, attachmentID}, body, opts...)
}

func (s *TasksService) CreateSubtask(ctx context.Context, id string, body Params, opts ...CallOption) (*Response, error) {
	return s.createSubtask.Call(ctx, []string{id}, body, opts...)
}

func (s *TasksService) ListActivity(ctx context.Context, id string, query Params, opts ...CallOption) (*Response, error) {
	return s.listActivity.Call(ctx, []string{id}, query, opts...)
}

func (s *TasksService) AddComment(ctx context.Context, id string, body Params, opts ...CallOption) (*Response, error) {
	return s.addComment.Call(ctx, []string{id}, body, opts...)
}

func (s *TasksService) DeleteComment(ctx context.Context, id, activityID string, body Params, opts ...CallOption) (*Response, error) {
	return s.deleteComment.Call(ctx, []string{id, activityID}, body, opts...)
}

func (s *TasksService) UpdateComment(ctx context.Context, id, activityID string, body Params, opts ...CallOption) (*Response, error) {
	return s.updateComment.Call(ctx, []string{id, activityID}, body, opts...)
}
