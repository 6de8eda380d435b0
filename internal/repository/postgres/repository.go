package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/momentglow/diary-service/internal/dto"
	"github.com/momentglow/diary-service/internal/model"
)

const (
	MAX_LIMIT     = 50
	DEFAULT_LIMIT = 20
)

func normalizeLimit(limit *int) {
	if *limit <= 0 {
		*limit = DEFAULT_LIMIT
	}
	if *limit > MAX_LIMIT {
		*limit = MAX_LIMIT
	}
}

type User interface {
	Create(ctx context.Context, user model.User) (*model.User, error)
	FindByID(ctx context.Context, id int64) (*model.User, error)
	FindByUsername(ctx context.Context, username string) (*model.User, error)
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	Update(ctx context.Context, id int64, updates map[string]interface{}) error
	SetLastLogin(ctx context.Context, id int64, at time.Time) error
}

type Diary interface {
	Create(ctx context.Context, diary model.Diary, tags []string) (*model.Diary, error)
	Update(ctx context.Context, id int64, updates map[string]interface{}, tags *[]string) error
	Delete(ctx context.Context, id int64) error
	FindRow(ctx context.Context, id int64) (*model.Diary, error)
	FindByID(ctx context.Context, id int64) (*model.FullDiary, error)
	Find(ctx context.Context, viewerID *int64, publicOnly bool, filter dto.DiaryFilter) ([]*model.ListedDiary, error)
	AddImage(ctx context.Context, image model.DiaryImage) (*model.DiaryImage, error)
}

type Comment interface {
	Create(ctx context.Context, comment model.Comment) (*model.Comment, error)
	FindByID(ctx context.Context, id int64) (*model.Comment, error)
	FindDiaryThreads(ctx context.Context, diaryID int64) ([]*model.FullComment, error)
}

type Tag interface {
	FindAll(ctx context.Context) ([]model.Tag, error)
	FindByID(ctx context.Context, id int64) (*model.Tag, error)
}

type PostgresRepository struct {
	User
	Diary
	Comment
	Tag
}

func New(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{
		User:    newUserRepo(db),
		Diary:   newDiaryRepo(db),
		Comment: newCommentRepo(db),
		Tag:     newTagRepo(db),
	}
}
