package service

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/momentglow/diary-service/internal/dto"
	"github.com/momentglow/diary-service/internal/model"
	"github.com/momentglow/diary-service/internal/repository"
	"github.com/momentglow/diary-service/internal/storage"
	"go.uber.org/zap"
)

type tagService struct {
	logger *zap.Logger
	repo   *repository.Repository
	store  storage.Storage
	policy VisibilityPolicy
}

func newTagService(logger *zap.Logger, repo *repository.Repository, store storage.Storage, policy VisibilityPolicy) Tag {
	return &tagService{
		logger: logger,
		repo:   repo,
		store:  store,
		policy: policy,
	}
}

func (s *tagService) FindAll(ctx context.Context) ([]model.Tag, error) {
	tags, err := s.repo.Postgres.Tag.FindAll(ctx)
	if err != nil {
		s.logger.Sugar().Errorf("failed to find tags: %s", err.Error())
		return nil, ErrInternal
	}
	if tags == nil {
		tags = []model.Tag{}
	}

	return tags, nil
}

// FindDiaries lists the public diaries carrying the tag. The scope is
// public-only no matter who asks, same as the public feed.
func (s *tagService) FindDiaries(ctx context.Context, tagID int64, filter dto.DiaryFilter) ([]*model.ListedDiary, error) {
	tag, err := s.repo.Postgres.Tag.FindByID(ctx, tagID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, ErrNotFound
		}
		s.logger.Sugar().Errorf("failed to find tag(%d): %s", tagID, err.Error())
		return nil, ErrInternal
	}

	scope := s.policy.Scope(nil, true)
	filter.Tags = []string{tag.Name}
	filter.IsPublic = nil
	filter.AuthorID = nil

	diaries, err := s.repo.Postgres.Diary.Find(ctx, scope.ViewerID, scope.PublicOnly, filter)
	if err != nil {
		s.logger.Sugar().Errorf("failed to find diaries for tag(%d): %s", tagID, err.Error())
		return nil, ErrInternal
	}

	for _, listed := range diaries {
		for _, image := range listed.Images {
			image.Image = s.store.URL(image.Image)
		}
	}
	if diaries == nil {
		diaries = []*model.ListedDiary{}
	}

	return diaries, nil
}
