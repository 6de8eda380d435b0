package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/momentglow/diary-service/internal/model"
)

type tagRepo struct {
	db *pgxpool.Pool
}

func newTagRepo(db *pgxpool.Pool) Tag {
	return &tagRepo{
		db: db,
	}
}

func (r *tagRepo) FindAll(ctx context.Context) ([]model.Tag, error) {
	rows, err := r.db.Query(ctx, "SELECT id, name, created_at FROM tags ORDER BY name")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tags []model.Tag
	for rows.Next() {
		var tag model.Tag
		if err := rows.Scan(&tag.ID, &tag.Name, &tag.CreatedAt); err != nil {
			return nil, err
		}
		tags = append(tags, tag)
	}

	return tags, rows.Err()
}

func (r *tagRepo) FindByID(ctx context.Context, id int64) (*model.Tag, error) {
	var tag model.Tag
	if err := r.db.QueryRow(
		ctx,
		"SELECT id, name, created_at FROM tags WHERE id = $1",
		id,
	).Scan(&tag.ID, &tag.Name, &tag.CreatedAt); err != nil {
		return nil, err
	}

	return &tag, nil
}
