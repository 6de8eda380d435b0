package service

import "github.com/momentglow/diary-service/internal/model"

type DiaryAction int

const (
	ActionRead DiaryAction = iota
	ActionWrite
	ActionDelete
	ActionComment
	ActionUploadImage
)

// VisibilityPolicy is the single authority on diary access. Every read,
// mutation, comment and image upload goes through Check; every listing goes
// through Scope. Handlers and repositories never re-derive these rules.
//
// Rules: the author may do anything with their own diary. A public diary may
// be read and commented on by anyone; a private diary is invisible to
// everyone but the author. Nothing but ownership grants write, delete or
// image upload.
type VisibilityPolicy struct{}

// Check returns nil when the actor may perform the action on the diary,
// ErrForbidden otherwise. A nil actorID means the request is anonymous.
func (VisibilityPolicy) Check(actorID *int64, diary *model.Diary, action DiaryAction) error {
	owner := actorID != nil && *actorID == diary.AuthorID

	switch action {
	case ActionRead, ActionComment:
		if owner || diary.IsPublic {
			return nil
		}
	case ActionWrite, ActionDelete, ActionUploadImage:
		if owner {
			return nil
		}
	}

	return ErrForbidden
}

// ListScope describes the set of diaries visible to a listing request:
// either everything public (anonymous viewers, the public feed) or the
// viewer's own entries united with everything public.
type ListScope struct {
	ViewerID   *int64
	PublicOnly bool
}

// Scope resolves the listing scope for an actor. The public feed is
// public-only regardless of who asks; outside of it an authenticated actor
// sees their own entries plus public ones.
func (VisibilityPolicy) Scope(actorID *int64, publicFeed bool) ListScope {
	if publicFeed || actorID == nil {
		return ListScope{PublicOnly: true}
	}
	return ListScope{ViewerID: actorID}
}
