package postgres

import (
	"context"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/momentglow/diary-service/internal/dto"
	"github.com/momentglow/diary-service/internal/model"
)

type diaryRepo struct {
	db *pgxpool.Pool
}

func newDiaryRepo(db *pgxpool.Pool) Diary {
	return &diaryRepo{
		db: db,
	}
}

const diaryColumns = "d.id, d.author_id, d.title, d.content, d.mood, d.weather, d.location, d.is_public, d.created_at, d.updated_at"

func (r *diaryRepo) Create(ctx context.Context, diary model.Diary, tags []string) (*model.Diary, error) {
	now := time.Now()
	diary.CreatedAt = now
	diary.UpdatedAt = now

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	if err := tx.QueryRow(
		ctx,
		"INSERT INTO diaries(author_id, title, content, mood, weather, location, is_public, created_at, updated_at) VALUES($1, $2, $3, $4, $5, $6, $7, $8, $9) RETURNING id",
		diary.AuthorID,
		diary.Title,
		diary.Content,
		diary.Mood,
		diary.Weather,
		diary.Location,
		diary.IsPublic,
		diary.CreatedAt,
		diary.UpdatedAt,
	).Scan(&diary.ID); err != nil {
		return nil, err
	}

	if err := setDiaryTags(ctx, tx, diary.ID, tags); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	return &diary, nil
}

func (r *diaryRepo) Update(ctx context.Context, id int64, updates map[string]interface{}, tags *[]string) error {
	allowedFields := []string{"title", "content", "mood", "weather", "location", "is_public"}
	allowedFieldsSet := make(map[string]struct{}, len(allowedFields))
	for _, field := range allowedFields {
		allowedFieldsSet[field] = struct{}{}
	}

	for field := range updates {
		if _, ok := allowedFieldsSet[field]; !ok {
			return ErrFieldsNotAllowedToUpdate
		}
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	query := "UPDATE diaries SET updated_at = $1, "
	args := []interface{}{time.Now()}
	i := 2

	for column, value := range updates {
		query += (column + " = $" + strconv.Itoa(i) + ", ")
		args = append(args, value)
		i++
	}

	query = query[:len(query)-2] + " WHERE id = $" + strconv.Itoa(i)
	args = append(args, id)

	tag, err := tx.Exec(ctx, query, args...)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}

	// a non-nil tag list fully replaces the current set
	if tags != nil {
		if _, err := tx.Exec(ctx, "DELETE FROM diary_tags WHERE diary_id = $1", id); err != nil {
			return err
		}
		if err := setDiaryTags(ctx, tx, id, *tags); err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

// setDiaryTags links the diary to each named tag, creating missing tags by
// name inside the caller's transaction.
func setDiaryTags(ctx context.Context, tx pgx.Tx, diaryID int64, tags []string) error {
	for _, name := range tags {
		var tagID int64
		if err := tx.QueryRow(
			ctx,
			"INSERT INTO tags(name, created_at) VALUES($1, $2) ON CONFLICT (name) DO UPDATE SET name = EXCLUDED.name RETURNING id",
			name,
			time.Now(),
		).Scan(&tagID); err != nil {
			return err
		}

		if _, err := tx.Exec(
			ctx,
			"INSERT INTO diary_tags(diary_id, tag_id) VALUES($1, $2) ON CONFLICT DO NOTHING",
			diaryID,
			tagID,
		); err != nil {
			return err
		}
	}

	return nil
}

func (r *diaryRepo) Delete(ctx context.Context, id int64) error {
	// images, comments and tag links go with the diary via FK cascades
	tag, err := r.db.Exec(ctx, "DELETE FROM diaries WHERE id = $1", id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}

	return nil
}

func (r *diaryRepo) FindRow(ctx context.Context, id int64) (*model.Diary, error) {
	var d model.Diary
	if err := r.db.QueryRow(
		ctx,
		"SELECT "+diaryColumns+" FROM diaries d WHERE d.id = $1",
		id,
	).Scan(
		&d.ID,
		&d.AuthorID,
		&d.Title,
		&d.Content,
		&d.Mood,
		&d.Weather,
		&d.Location,
		&d.IsPublic,
		&d.CreatedAt,
		&d.UpdatedAt,
	); err != nil {
		return nil, err
	}

	return &d, nil
}

func (r *diaryRepo) FindByID(ctx context.Context, id int64) (*model.FullDiary, error) {
	var full model.FullDiary
	if err := r.db.QueryRow(
		ctx,
		"SELECT "+diaryColumns+", u.username, u.email FROM diaries d JOIN users u ON d.author_id = u.id WHERE d.id = $1",
		id,
	).Scan(
		&full.Diary.ID,
		&full.Diary.AuthorID,
		&full.Diary.Title,
		&full.Diary.Content,
		&full.Diary.Mood,
		&full.Diary.Weather,
		&full.Diary.Location,
		&full.Diary.IsPublic,
		&full.Diary.CreatedAt,
		&full.Diary.UpdatedAt,
		&full.Author.Username,
		&full.Author.Email,
	); err != nil {
		return nil, err
	}
	full.Author.ID = full.Diary.AuthorID

	tags, err := r.findTags(ctx, []int64{id})
	if err != nil {
		return nil, err
	}
	full.Tags = tags[id]
	if full.Tags == nil {
		full.Tags = []model.Tag{}
	}

	images, err := r.findImages(ctx, []int64{id})
	if err != nil {
		return nil, err
	}
	full.Images = images[id]
	if full.Images == nil {
		full.Images = []*model.DiaryImage{}
	}

	comments, err := findDiaryThreads(ctx, r.db, id)
	if err != nil {
		return nil, err
	}
	full.Comments = comments

	return &full, nil
}

func (r *diaryRepo) Find(ctx context.Context, viewerID *int64, publicOnly bool, filter dto.DiaryFilter) ([]*model.ListedDiary, error) {
	normalizeLimit(&filter.Limit)

	query := "SELECT " + diaryColumns + ", u.username, u.email FROM diaries d JOIN users u ON d.author_id = u.id WHERE "
	args := []interface{}{}
	i := 1

	arg := func(value interface{}) string {
		args = append(args, value)
		placeholder := "$" + strconv.Itoa(i)
		i++
		return placeholder
	}

	// an anonymous viewer never sees beyond the public scope
	if publicOnly || viewerID == nil {
		query += "d.is_public = TRUE"
		if filter.AuthorID != nil {
			query += " AND d.author_id = " + arg(*filter.AuthorID)
		}
	} else {
		query += "(d.author_id = " + arg(*viewerID) + " OR d.is_public = TRUE)"
	}

	if filter.Mood != "" {
		query += " AND d.mood ILIKE " + arg("%"+filter.Mood+"%")
	}
	if filter.Weather != "" {
		query += " AND d.weather ILIKE " + arg("%"+filter.Weather+"%")
	}
	if filter.Location != "" {
		query += " AND d.location ILIKE " + arg("%"+filter.Location+"%")
	}
	if filter.IsPublic != nil {
		query += " AND d.is_public = " + arg(*filter.IsPublic)
	}
	if filter.CreatedAfter != nil {
		query += " AND d.created_at >= " + arg(*filter.CreatedAfter)
	}
	if filter.CreatedBefore != nil {
		query += " AND d.created_at <= " + arg(*filter.CreatedBefore)
	}
	if len(filter.Tags) > 0 {
		query += " AND EXISTS (SELECT 1 FROM diary_tags dt JOIN tags t ON t.id = dt.tag_id WHERE dt.diary_id = d.id AND t.name = ANY(" + arg(filter.Tags) + "))"
	}

	query += " ORDER BY d." + filter.OrderBy()
	query += " LIMIT " + arg(filter.Limit)
	query += " OFFSET " + arg(filter.Offset)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var diaries []*model.ListedDiary
	var ids []int64
	for rows.Next() {
		var listed model.ListedDiary
		if err := rows.Scan(
			&listed.Diary.ID,
			&listed.Diary.AuthorID,
			&listed.Diary.Title,
			&listed.Diary.Content,
			&listed.Diary.Mood,
			&listed.Diary.Weather,
			&listed.Diary.Location,
			&listed.Diary.IsPublic,
			&listed.Diary.CreatedAt,
			&listed.Diary.UpdatedAt,
			&listed.Author.Username,
			&listed.Author.Email,
		); err != nil {
			return nil, err
		}
		listed.Author.ID = listed.Diary.AuthorID
		listed.Tags = []model.Tag{}
		listed.Images = []*model.DiaryImage{}

		diaries = append(diaries, &listed)
		ids = append(ids, listed.Diary.ID)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	if len(ids) == 0 {
		return diaries, nil
	}

	tags, err := r.findTags(ctx, ids)
	if err != nil {
		return nil, err
	}
	images, err := r.findImages(ctx, ids)
	if err != nil {
		return nil, err
	}
	for _, listed := range diaries {
		if t := tags[listed.Diary.ID]; t != nil {
			listed.Tags = t
		}
		if imgs := images[listed.Diary.ID]; imgs != nil {
			listed.Images = imgs
		}
	}

	return diaries, nil
}

func (r *diaryRepo) findTags(ctx context.Context, diaryIDs []int64) (map[int64][]model.Tag, error) {
	rows, err := r.db.Query(
		ctx,
		`SELECT dt.diary_id, t.id, t.name, t.created_at
		FROM diary_tags dt
		JOIN tags t ON t.id = dt.tag_id
		WHERE dt.diary_id = ANY($1)
		ORDER BY t.name`,
		diaryIDs,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tags := make(map[int64][]model.Tag)
	for rows.Next() {
		var diaryID int64
		var tag model.Tag
		if err := rows.Scan(&diaryID, &tag.ID, &tag.Name, &tag.CreatedAt); err != nil {
			return nil, err
		}
		tags[diaryID] = append(tags[diaryID], tag)
	}

	return tags, rows.Err()
}

func (r *diaryRepo) findImages(ctx context.Context, diaryIDs []int64) (map[int64][]*model.DiaryImage, error) {
	rows, err := r.db.Query(
		ctx,
		"SELECT id, diary_id, image, created_at FROM diary_images WHERE diary_id = ANY($1) ORDER BY created_at",
		diaryIDs,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	images := make(map[int64][]*model.DiaryImage)
	for rows.Next() {
		var img model.DiaryImage
		if err := rows.Scan(&img.ID, &img.DiaryID, &img.Image, &img.CreatedAt); err != nil {
			return nil, err
		}
		images[img.DiaryID] = append(images[img.DiaryID], &img)
	}

	return images, rows.Err()
}

func (r *diaryRepo) AddImage(ctx context.Context, image model.DiaryImage) (*model.DiaryImage, error) {
	image.CreatedAt = time.Now()
	if err := r.db.QueryRow(
		ctx,
		"INSERT INTO diary_images(diary_id, image, created_at) VALUES($1, $2, $3) RETURNING id",
		image.DiaryID,
		image.Image,
		image.CreatedAt,
	).Scan(&image.ID); err != nil {
		return nil, err
	}

	return &image, nil
}
