// Package audit emits structured audit events for state-changing actions.
// Events ride the normal log stream tagged with log_type=audit so they can
// be split off downstream.
package audit

import (
	"context"

	"inkwell/pkg/log"
)

// Action names a state-changing operation.
type Action string

const (
	ActionSignup        Action = "user.signup"
	ActionLogin         Action = "user.login"
	ActionBlogCreate    Action = "blog.create"
	ActionBlogUpdate    Action = "blog.update"
	ActionBlogPublish   Action = "blog.publish"
	ActionBlogDelist    Action = "blog.delist"
	ActionBlogDelete    Action = "blog.delete"
	ActionTagsAdd       Action = "blog.tags.add"
	ActionTagsRemove    Action = "blog.tags.remove"
	ActionCommentCreate Action = "comment.create"
	ActionCommentUpdate Action = "comment.update"
	ActionCommentDelete Action = "comment.delete"
	ActionFollow        Action = "follow.create"
	ActionUnfollow      Action = "follow.delete"
)

// Event is one audit record in progress. Optional fields are attached with
// the With* methods before Log.
type Event struct {
	action   Action
	username string
	blogID   uint
	comment  uint
	target   string
}

// Record starts an audit event for the acting user.
func Record(action Action, username string) *Event {
	return &Event{action: action, username: username}
}

// WithBlog attaches the affected blog.
func (e *Event) WithBlog(id uint) *Event {
	e.blogID = id
	return e
}

// WithComment attaches the affected comment.
func (e *Event) WithComment(id uint) *Event {
	e.comment = id
	return e
}

// WithTarget attaches a target username, e.g. the followed user.
func (e *Event) WithTarget(username string) *Event {
	e.target = username
	return e
}

// Log emits the event on the context logger.
func (e *Event) Log(ctx context.Context) {
	l := log.Ctx(ctx)
	ev := l.Info().
		Str(log.FieldLogType, log.LogTypeAudit).
		Str("action", string(e.action)).
		Str(log.FieldUsername, e.username)
	if e.blogID != 0 {
		ev = ev.Uint(log.FieldBlogID, e.blogID)
	}
	if e.comment != 0 {
		ev = ev.Uint(log.FieldCommentID, e.comment)
	}
	if e.target != "" {
		ev = ev.Str("target_username", e.target)
	}
	ev.Msg("audit event")
}
