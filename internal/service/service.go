package service

import (
	"context"
	"mime/multipart"

	"github.com/momentglow/diary-service/internal/dto"
	"github.com/momentglow/diary-service/internal/model"
	"github.com/momentglow/diary-service/internal/repository"
	"github.com/momentglow/diary-service/internal/storage"
	"go.uber.org/zap"
)

type User interface {
	Register(ctx context.Context, input dto.RegisterRequest, avatar *multipart.FileHeader) (*model.User, error)
	Login(ctx context.Context, input dto.LoginRequest) (*dto.LoginResponse, error)
	Refresh(ctx context.Context, refreshToken string) (string, error)
	FindByID(ctx context.Context, id int64) (*model.User, error)
	UpdateProfile(ctx context.Context, actorID int64, userID int64, input dto.UpdateProfileRequest) (*model.User, error)
	UploadAvatar(ctx context.Context, actorID int64, file *multipart.FileHeader) (*dto.UploadAvatarResponse, error)
	Avatar(ctx context.Context, userID int64) (*dto.AvatarResponse, error)
}

type Diary interface {
	Create(ctx context.Context, authorID int64, input dto.CreateDiaryRequest) (*model.FullDiary, error)
	Update(ctx context.Context, actorID int64, diaryID int64, input dto.UpdateDiaryRequest) (*model.FullDiary, error)
	Delete(ctx context.Context, actorID int64, diaryID int64) error
	FindByID(ctx context.Context, viewerID *int64, diaryID int64) (*model.FullDiary, error)
	Find(ctx context.Context, viewerID int64, filter dto.DiaryFilter) ([]*model.ListedDiary, error)
	FindPublic(ctx context.Context, filter dto.DiaryFilter) ([]*model.ListedDiary, error)
	AddImage(ctx context.Context, actorID int64, diaryID int64, file *multipart.FileHeader) (*model.DiaryImage, error)
}

type Comment interface {
	Create(ctx context.Context, authorID int64, diaryID int64, input dto.CreateCommentRequest) (*model.Comment, error)
	FindDiaryThreads(ctx context.Context, viewerID *int64, diaryID int64) ([]*model.FullComment, error)
}

type Tag interface {
	FindAll(ctx context.Context) ([]model.Tag, error)
	FindDiaries(ctx context.Context, tagID int64, filter dto.DiaryFilter) ([]*model.ListedDiary, error)
}

type Service struct {
	User
	Diary
	Comment
	Tag
}

func New(logger *zap.Logger, repo *repository.Repository, store storage.Storage) *Service {
	policy := VisibilityPolicy{}

	return &Service{
		User:    newUserService(logger, repo, store),
		Diary:   newDiaryService(logger, repo, store, policy),
		Comment: newCommentService(logger, repo, policy),
		Tag:     newTagService(logger, repo, store, policy),
	}
}
