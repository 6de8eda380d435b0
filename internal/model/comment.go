package model

import "time"

type Comment struct {
	ID        int64     `json:"id"`
	DiaryID   int64     `json:"diary_id"`
	AuthorID  int64     `json:"author_id"`
	ParentID  *int64    `json:"parent_id"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// IsRoot reports whether the comment is attached directly to a diary.
// Replies always reference a root comment; deeper chains are rejected on
// creation, so a thread is never more than two levels.
func (c *Comment) IsRoot() bool {
	return c.ParentID == nil
}

type FullComment struct {
	Comment Comment        `json:"comment"`
	Author  UserAuthor     `json:"author"`
	Replies []*FullComment `json:"replies"`
}
