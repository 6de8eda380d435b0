package model

import "time"

type Diary struct {
	ID        int64     `json:"id"`
	AuthorID  int64     `json:"author_id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Mood      string    `json:"mood"`
	Weather   string    `json:"weather"`
	Location  string    `json:"location"`
	IsPublic  bool      `json:"is_public"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type DiaryImage struct {
	ID        int64     `json:"id"`
	DiaryID   int64     `json:"diary_id"`
	Image     string    `json:"image"`
	CreatedAt time.Time `json:"created_at"`
}

// FullDiary is a single-fetch payload: the entry with its author, tags,
// images and comment threads attached.
type FullDiary struct {
	Diary    Diary          `json:"diary"`
	Author   UserAuthor     `json:"author"`
	Tags     []Tag          `json:"tags"`
	Images   []*DiaryImage  `json:"images"`
	Comments []*FullComment `json:"comments"`
}

// ListedDiary is a list-item payload: no comment threads.
type ListedDiary struct {
	Diary  Diary         `json:"diary"`
	Author UserAuthor    `json:"author"`
	Tags   []Tag         `json:"tags"`
	Images []*DiaryImage `json:"images"`
}
