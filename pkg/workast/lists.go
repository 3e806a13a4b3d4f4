package workast

import (
	"context"
	"net/http"
)

// ListsService binds the /list endpoints.
type ListsService struct {
	basic basicMethods

	personal, archive, unarchive, join, moveTasks, importTemplate *Method

	listParticipants, addParticipants, removeParticipants *Method

	listActivity, addComment, updateComment, deleteComment *Method

	listAttachments, createAttachment, updateAttachment, deleteAttachment *Method

	listNotes, createNote, retrieveNote, updateNote *Method

	createSublist, updateSublist, deleteSublist *Method
}

func newListsService(c *Client) *ListsService {
	gen := func(method, path string) *Method {
		return c.Generate(MethodSpec{Method: method, Path: ListPath + path})
	}
	return &ListsService{
		basic: c.generateBasic(ListPath, BasicCreate, BasicList, BasicRetrieve, BasicUpdate),

		personal:       gen(http.MethodGet, "/personal"),
		archive:        gen(http.MethodPost, "/{listId}/archive"),
		unarchive:      gen(http.MethodPost, "/{listId}/unarchive"),
		join:           gen(http.MethodPost, "/{listId}/participant/join"),
		moveTasks:      gen(http.MethodPost, "/{listId}/move"),
		importTemplate: gen(http.MethodPost, "/{listId}/import/{templateId}"),

		listParticipants:   gen(http.MethodGet, "/{listId}/participant"),
		addParticipants:    gen(http.MethodPost, "/{listId}/participant"),
		removeParticipants: gen(http.MethodDelete, "/{listId}/participant"),

		listActivity:  gen(http.MethodGet, "/{listId}/activity"),
		addComment:    gen(http.MethodPost, "/{listId}/activity"),
		updateComment: gen(http.MethodPatch, "/{listId}/activity/{activityId}"),
		deleteComment: gen(http.MethodDelete, "/{listId}/activity/{activityId}"),

		listAttachments:  gen(http.MethodGet, "/{listId}/attachment"),
		createAttachment: gen(http.MethodPost, "/{listId}/attachment"),
		updateAttachment: gen(http.MethodPatch, "/{listId}/attachment/{attachmentId}"),
		deleteAttachment: gen(http.MethodDelete, "/{listId}/attachment/{attachmentId}"),

		listNotes:    gen(http.MethodGet, "/{listId}/note"),
		createNote:   gen(http.MethodPost, "/{listId}/note"),
		retrieveNote: gen(http.MethodGet, "/{listId}/note/{noteId}"),
		updateNote:   gen(http.MethodPatch, "/{listId}/note/{noteId}"),

		createSublist: gen(http.MethodPost, "/{listId}/sublist"),
		updateSublist: gen(http.MethodPatch, "/{listId}/sublist/{sublistId}"),
		deleteSublist: gen(http.MethodDelete, "/{listId}/sublist/{sublistId}"),
	}
}

func (s *ListsService) Create(ctx context.Context, body Params, opts ...CallOption) (*Response, error) {
	return s.basic.create.Call(ctx, nil, body, opts...)
}

func (s *ListsService) List(ctx context.Context, query Params, opts ...CallOption) (*Response, error) {
	return s.basic.list.Call(ctx, nil, query, opts...)
}

func (s *ListsService) Retrieve(ctx context.Context, listID string, query Params, opts ...CallOption) (*Response, error) {
	return s.basic.retrieve.Call(ctx, []string{listID}, query, opts...)
}

func (s *ListsService) Update(ctx context.Context, listID string, body Params, opts ...CallOption) (*Response, error) {
	return s.basic.update.Call(ctx, []string{listID}, body, opts...)
}

// Personal fetches the caller's personal list.
func (s *ListsService) Personal(ctx context.Context, query Params, opts ...CallOption) (*Response, error) {
	return s.personal.Call(ctx, nil, query, opts...)
}

func (s *ListsService) Archive(ctx context.Context, listID string, body Params, opts ...CallOption) (*Response, error) {
	return s.archive.Call(ctx, []string{listID}, body, opts...)
}

func (s *ListsService) Unarchive(ctx context.Context, listID string, body Params, opts ...CallOption) (*Response, error) {
	return s.unarchive.Call(ctx, []string{listID}, body, opts...)
}

// Join adds the caller to the participants of listID.
func (s *ListsService) Join(ctx context.Context, listID string, body Params, opts ...CallOption) (*Response, error) {
	return s.join.Call(ctx, []string{listID}, body, opts...)
}

// MoveTasks moves tasks into listID.
func (s *ListsService) MoveTasks(ctx context.Context, listID string, body Params, opts ...CallOption) (*Response, error) {
	return s.moveTasks.Call(ctx, []string{listID}, body, opts...)
}

// ImportTemplate copies template templateID into listID.
func (s *ListsService) ImportTemplate(ctx context.Context, listID, templateID string, body Params, opts ...CallOption) (*Response, error) {
	return s.importTemplate.Call(ctx, []string{listID, templateID}, body, opts...)
}

func (s *ListsService) ListParticipants(ctx context.Context, listID string, query Params, opts ...CallOption) (*Response, error) {
	return s.listParticipants.Call(ctx, []string{listID}, query, opts...)
}

func (s *ListsService) AddParticipants(ctx context.Context, listID string, body Params, opts ...CallOption) (*Response, error) {
	return s.addParticipants.Call(ctx, []string{listID}, body, opts...)
}

func (s *ListsService) RemoveParticipants(ctx context.Context, listID string, body Params, opts ...CallOption) (*Response, error) {
	return s.removeParticipants.Call(ctx, []string{listID}, body, opts...)
}

func (s *ListsService) ListActivity(ctx context.Context, listID string, query Params, opts ...CallOption) (*Response, error) {
	return s.listActivity.Call(ctx, []string{listID}, query, opts...)
}

func (s *ListsService) AddComment(ctx context.Context, listID string, body Params, opts ...CallOption) (*Response, error) {
	return s.addComment.Call(ctx, []string{listID}, body, opts...)
}

func (s *ListsService) UpdateComment(ctx context.Context, listID, activityID string, body Params, opts ...CallOption) (*Response, error) {
	return s.updateComment.Call(ctx, []string{listID, activityID}, body, opts...)
}

func (s *ListsService) DeleteComment(ctx context.Context, listID, activityID string, body Params, opts ...CallOption) (*Response, error) {
	return s.deleteComment.Call(ctx, []string{listID, activityID}, body, opts...)
}

func (s *ListsService) ListAttachments(ctx context.Context, listID string, query Params, opts ...CallOption) (*Response, error) {
	return s.listAttachments.Call(ctx, []string{listID}, query, opts...)
}

func (s *ListsService) CreateAttachment(ctx context.Context, listID string, body Params, opts ...CallOption) (*Response, error) {
	return s.createAttachment.Call(ctx, []string{listID}, body, opts...)
}

func (s *ListsService) UpdateAttachment(ctx context.Context, listID, attachmentID string, body Params, opts ...CallOption) (*Response, error) {
	return s.updateAttachment.Call(ctx, []string{listID, attachmentID}, body, opts...)
}

func (s *ListsService) DeleteAttachment(ctx context.Context, listID, attachmentID string, body Params, opts ...CallOption) (*Response, error) {
	return s.deleteAttachment.Call(ctx, []string{listID, attachmentID}, body, opts...)
}

func (s *ListsService) ListNotes(ctx context.Context, listID string, query Params, opts ...CallOption) (*Response, error) {
	return s.listNotes.Call(ctx, []string{listID}, query, opts...)
}

func (s *ListsService) CreateNote(ctx context.Context, listID string, body Params, opts ...CallOption) (*Response, error) {
	return s.createNote.Call(ctx, []string{listID}, body, opts...)
}

func (s *ListsService) RetrieveNote(ctx context.Context, listID, noteID string, query Params, opts ...CallOption) (*Response, error) {
	return s.retrieveNote.Call(ctx, []string{listID, noteID}, query, opts...)
}

func (s *ListsService) UpdateNote(ctx context.Context, listID, noteID string, body Params, opts ...CallOption) (*Response, error) {
	return s.updateNote.Call(ctx, []string{listID, noteID}, body, opts...)
}

func (s *ListsService) CreateSublist(ctx context.Context, listID string, body Params, opts ...CallOption) (*Response, error) {
	return s.createSublist.Call(ctx, []string{listID}, body, opts...)
}

func (s *ListsService) UpdateSublist(ctx context.Context, listID, sublistID string, body Params, opts ...CallOption) (*Response, error) {
	return s.updateSublist.Call(ctx, []string{listID, sublistID}, body, opts...)
}

func (s *ListsService) DeleteSublist(ctx context.Context, listID, sublistID string, body Params, opts ...CallOption) (*Response, error) {
	return s.deleteSublist.Call(ctx, []string{listID, sublistID}, body, opts...)
}
