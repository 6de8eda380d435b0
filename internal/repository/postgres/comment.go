package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/momentglow/diary-service/internal/model"
)

type commentRepo struct {
	db *pgxpool.Pool
}

func newCommentRepo(db *pgxpool.Pool) Comment {
	return &commentRepo{
		db: db,
	}
}

func (r *commentRepo) Create(ctx context.Context, comment model.Comment) (*model.Comment, error) {
	comment.CreatedAt = time.Now()
	if err := r.db.QueryRow(
		ctx,
		"INSERT INTO comments(diary_id, author_id, parent_id, content, created_at) VALUES($1, $2, $3, $4, $5) RETURNING id",
		comment.DiaryID,
		comment.AuthorID,
		comment.ParentID,
		comment.Content,
		comment.CreatedAt,
	).Scan(&comment.ID); err != nil {
		return nil, err
	}

	return &comment, nil
}

func (r *commentRepo) FindByID(ctx context.Context, id int64) (*model.Comment, error) {
	var c model.Comment
	if err := r.db.QueryRow(
		ctx,
		"SELECT id, diary_id, author_id, parent_id, content, created_at FROM comments WHERE id = $1",
		id,
	).Scan(
		&c.ID,
		&c.DiaryID,
		&c.AuthorID,
		&c.ParentID,
		&c.Content,
		&c.CreatedAt,
	); err != nil {
		return nil, err
	}

	return &c, nil
}

func (r *commentRepo) FindDiaryThreads(ctx context.Context, diaryID int64) ([]*model.FullComment, error) {
	return findDiaryThreads(ctx, r.db, diaryID)
}

// findDiaryThreads loads every comment on the diary in creation order and
// assembles the two-level threads.
func findDiaryThreads(ctx context.Context, db *pgxpool.Pool, diaryID int64) ([]*model.FullComment, error) {
	rows, err := db.Query(
		ctx,
		`SELECT c.id, c.diary_id, c.author_id, c.parent_id, c.content, c.created_at, u.username, u.email
		FROM comments c
		JOIN users u ON c.author_id = u.id
		WHERE c.diary_id = $1
		ORDER BY c.created_at ASC`,
		diaryID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ordered []*model.FullComment
	for rows.Next() {
		var fc model.FullComment
		if err := rows.Scan(
			&fc.Comment.ID,
			&fc.Comment.DiaryID,
			&fc.Comment.AuthorID,
			&fc.Comment.ParentID,
			&fc.Comment.Content,
			&fc.Comment.CreatedAt,
			&fc.Author.Username,
			&fc.Author.Email,
		); err != nil {
			return nil, err
		}
		fc.Author.ID = fc.Comment.AuthorID

		ordered = append(ordered, &fc)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return assembleThreads(ordered), nil
}

// assembleThreads turns a creation-ordered comment list into two-level
// threads: root comments in creation order, replies nested under their root
// in creation order. A reply hanging off another reply (possible only in
// pre-migration rows) is folded up to the chain's root so clients never see
// a third level; replies whose chain is broken or cyclic are dropped.
func assembleThreads(ordered []*model.FullComment) []*model.FullComment {
	byID := make(map[int64]*model.FullComment, len(ordered))
	for _, fc := range ordered {
		fc.Replies = []*model.FullComment{}
		byID[fc.Comment.ID] = fc
	}

	threads := []*model.FullComment{}
	for _, fc := range ordered {
		if fc.Comment.IsRoot() {
			threads = append(threads, fc)
			continue
		}
		if root := rootOf(byID, fc); root != nil {
			root.Replies = append(root.Replies, fc)
		}
	}

	return threads
}

func rootOf(byID map[int64]*model.FullComment, fc *model.FullComment) *model.FullComment {
	visited := make(map[int64]struct{})
	for !fc.Comment.IsRoot() {
		if _, seen := visited[fc.Comment.ID]; seen {
			return nil
		}
		visited[fc.Comment.ID] = struct{}{}

		parent, ok := byID[*fc.Comment.ParentID]
		if !ok {
			return nil
		}
		fc = parent
	}
	return fc
}
