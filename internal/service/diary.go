package service

import (
	"context"
	"mime/multipart"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/momentglow/diary-service/internal/dto"
	"github.com/momentglow/diary-service/internal/model"
	"github.com/momentglow/diary-service/internal/repository"
	"github.com/momentglow/diary-service/internal/repository/redisrepo"
	"github.com/momentglow/diary-service/internal/storage"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const imagesDir = "diary_images"

type diaryService struct {
	logger *zap.Logger
	repo   *repository.Repository
	store  storage.Storage
	policy VisibilityPolicy
}

func newDiaryService(logger *zap.Logger, repo *repository.Repository, store storage.Storage, policy VisibilityPolicy) Diary {
	return &diaryService{
		logger: logger,
		repo:   repo,
		store:  store,
		policy: policy,
	}
}

func (s *diaryService) Create(ctx context.Context, authorID int64, input dto.CreateDiaryRequest) (*model.FullDiary, error) {
	diary, err := s.repo.Postgres.Diary.Create(ctx, model.Diary{
		AuthorID: authorID,
		Title:    input.Title,
		Content:  input.Content,
		Mood:     input.Mood,
		Weather:  input.Weather,
		Location: input.Location,
		IsPublic: input.IsPublic,
	}, input.Tags)
	if err != nil {
		s.logger.Sugar().Errorf("failed to create user(%d) diary: %s", authorID, err.Error())
		return nil, ErrInternal
	}

	return s.findFull(ctx, diary.ID)
}

func (s *diaryService) Update(ctx context.Context, actorID int64, diaryID int64, input dto.UpdateDiaryRequest) (*model.FullDiary, error) {
	diary, err := s.resolve(ctx, diaryID)
	if err != nil {
		return nil, err
	}
	if err := s.policy.Check(&actorID, diary, ActionWrite); err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})
	if input.Title != nil {
		updates["title"] = *input.Title
	}
	if input.Content != nil {
		updates["content"] = *input.Content
	}
	if input.Mood != nil {
		updates["mood"] = *input.Mood
	}
	if input.Weather != nil {
		updates["weather"] = *input.Weather
	}
	if input.Location != nil {
		updates["location"] = *input.Location
	}
	if input.IsPublic != nil {
		updates["is_public"] = *input.IsPublic
	}

	if err := s.repo.Postgres.Diary.Update(ctx, diaryID, updates, input.Tags); err != nil {
		if err == pgx.ErrNoRows {
			return nil, ErrNotFound
		}
		s.logger.Sugar().Errorf("failed to update diary(%d): %s", diaryID, err.Error())
		return nil, ErrInternal
	}
	s.invalidate(ctx, diaryID)

	return s.findFull(ctx, diaryID)
}

func (s *diaryService) Delete(ctx context.Context, actorID int64, diaryID int64) error {
	diary, err := s.resolve(ctx, diaryID)
	if err != nil {
		return err
	}
	if err := s.policy.Check(&actorID, diary, ActionDelete); err != nil {
		return err
	}

	if err := s.repo.Postgres.Diary.Delete(ctx, diaryID); err != nil {
		if err == pgx.ErrNoRows {
			return ErrNotFound
		}
		s.logger.Sugar().Errorf("failed to delete diary(%d): %s", diaryID, err.Error())
		return ErrInternal
	}
	s.invalidate(ctx, diaryID)

	return nil
}

func (s *diaryService) FindByID(ctx context.Context, viewerID *int64, diaryID int64) (*model.FullDiary, error) {
	cached, err := redisrepo.Get[model.FullDiary](s.repo.Redis.Default, ctx, redisrepo.DiaryKey(diaryID))
	if err == nil && cached != nil {
		if err := s.policy.Check(viewerID, &cached.Diary, ActionRead); err != nil {
			return nil, err
		}
		return cached, nil
	}
	if err != nil && err != redis.Nil {
		s.logger.Sugar().Errorf("failed to get diary(%d) from redis: %s", diaryID, err.Error())
		return nil, ErrInternal
	}

	full, err := s.repo.Postgres.Diary.FindByID(ctx, diaryID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, ErrNotFound
		}
		s.logger.Sugar().Errorf("failed to find diary(%d): %s", diaryID, err.Error())
		return nil, ErrInternal
	}

	if err := s.policy.Check(viewerID, &full.Diary, ActionRead); err != nil {
		return nil, err
	}

	s.absolutizeImages(full.Images)

	if err := s.repo.Redis.Default.SetJSON(ctx, redisrepo.DiaryKey(diaryID), full, time.Hour); err != nil {
		s.logger.Sugar().Errorf("failed to set diary(%d) in redis: %s", diaryID, err.Error())
		return nil, ErrInternal
	}

	return full, nil
}

func (s *diaryService) Find(ctx context.Context, viewerID int64, filter dto.DiaryFilter) ([]*model.ListedDiary, error) {
	scope := s.policy.Scope(&viewerID, false)
	// user_id narrowing belongs to the public feed only
	filter.AuthorID = nil

	return s.find(ctx, scope, filter)
}

func (s *diaryService) FindPublic(ctx context.Context, filter dto.DiaryFilter) ([]*model.ListedDiary, error) {
	scope := s.policy.Scope(nil, true)
	filter.IsPublic = nil

	return s.find(ctx, scope, filter)
}

func (s *diaryService) find(ctx context.Context, scope ListScope, filter dto.DiaryFilter) ([]*model.ListedDiary, error) {
	diaries, err := s.repo.Postgres.Diary.Find(ctx, scope.ViewerID, scope.PublicOnly, filter)
	if err != nil {
		s.logger.Sugar().Errorf("failed to find diaries: %s", err.Error())
		return nil, ErrInternal
	}

	for _, listed := range diaries {
		s.absolutizeImages(listed.Images)
	}
	if diaries == nil {
		diaries = []*model.ListedDiary{}
	}

	return diaries, nil
}

func (s *diaryService) AddImage(ctx context.Context, actorID int64, diaryID int64, fileHeader *multipart.FileHeader) (*model.DiaryImage, error) {
	diary, err := s.resolve(ctx, diaryID)
	if err != nil {
		return nil, err
	}
	if err := s.policy.Check(&actorID, diary, ActionUploadImage); err != nil {
		return nil, err
	}

	ext, err := validateImage(fileHeader)
	if err != nil {
		return nil, err
	}

	file, err := fileHeader.Open()
	if err != nil {
		s.logger.Sugar().Errorf("failed to open image upload for diary(%d): %s", diaryID, err.Error())
		return nil, ErrInternal
	}
	defer file.Close()

	filename := mediaFilename(ext)
	if _, err := s.store.Save(imagesDir, filename, file); err != nil {
		s.logger.Sugar().Errorf("failed to store image for diary(%d): %s", diaryID, err.Error())
		return nil, ErrInternal
	}

	image, err := s.repo.Postgres.Diary.AddImage(ctx, model.DiaryImage{
		DiaryID: diaryID,
		Image:   imagesDir + "/" + filename,
	})
	if err != nil {
		s.logger.Sugar().Errorf("failed to add image to diary(%d): %s", diaryID, err.Error())
		return nil, ErrInternal
	}
	s.invalidate(ctx, diaryID)

	image.Image = s.store.URL(image.Image)

	return image, nil
}

// resolve fetches the bare diary row for policy checks, mapping a missing
// row to ErrNotFound before any authorization decision is made.
func (s *diaryService) resolve(ctx context.Context, diaryID int64) (*model.Diary, error) {
	diary, err := s.repo.Postgres.Diary.FindRow(ctx, diaryID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, ErrNotFound
		}
		s.logger.Sugar().Errorf("failed to find diary(%d): %s", diaryID, err.Error())
		return nil, ErrInternal
	}

	return diary, nil
}

// findFull loads the full payload bypassing the policy read check; callers
// use it right after a mutation the actor was already authorized for.
func (s *diaryService) findFull(ctx context.Context, diaryID int64) (*model.FullDiary, error) {
	full, err := s.repo.Postgres.Diary.FindByID(ctx, diaryID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, ErrNotFound
		}
		s.logger.Sugar().Errorf("failed to find diary(%d): %s", diaryID, err.Error())
		return nil, ErrInternal
	}

	s.absolutizeImages(full.Images)

	return full, nil
}

func (s *diaryService) absolutizeImages(images []*model.DiaryImage) {
	for _, image := range images {
		image.Image = s.store.URL(image.Image)
	}
}

func (s *diaryService) invalidate(ctx context.Context, diaryID int64) {
	if err := s.repo.Redis.Default.Del(ctx, redisrepo.DiaryKey(diaryID)).Err(); err != nil {
		s.logger.Sugar().Errorf("failed to delete diary(%d) from redis: %s", diaryID, err.Error())
	}
}
