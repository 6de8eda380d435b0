package service

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/momentglow/diary-service/internal/dto"
	"github.com/momentglow/diary-service/internal/model"
	"github.com/momentglow/diary-service/internal/repository"
	"github.com/momentglow/diary-service/internal/repository/redisrepo"
	"go.uber.org/zap"
)

type commentService struct {
	logger *zap.Logger
	repo   *repository.Repository
	policy VisibilityPolicy
}

func newCommentService(logger *zap.Logger, repo *repository.Repository, policy VisibilityPolicy) Comment {
	return &commentService{
		logger: logger,
		repo:   repo,
		policy: policy,
	}
}

// Create posts a comment on the diary. Commenting requires an authenticated
// author; the diary must be public or the author's own. A reply must target
// a root comment on the same diary, so threads never nest past two levels.
func (s *commentService) Create(ctx context.Context, authorID int64, diaryID int64, input dto.CreateCommentRequest) (*model.Comment, error) {
	diary, err := s.repo.Postgres.Diary.FindRow(ctx, diaryID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, ErrNotFound
		}
		s.logger.Sugar().Errorf("failed to find diary(%d): %s", diaryID, err.Error())
		return nil, ErrInternal
	}

	if err := s.policy.Check(&authorID, diary, ActionComment); err != nil {
		return nil, err
	}

	if input.Parent != nil {
		parent, err := s.repo.Postgres.Comment.FindByID(ctx, *input.Parent)
		if err != nil {
			if err == pgx.ErrNoRows {
				return nil, ErrParentCommentNotFound
			}
			s.logger.Sugar().Errorf("failed to find comment(%d): %s", *input.Parent, err.Error())
			return nil, ErrInternal
		}
		if parent.DiaryID != diaryID {
			return nil, ErrParentCommentOtherDiary
		}
		if !parent.IsRoot() {
			return nil, ErrParentCommentNotRoot
		}
	}

	comment, err := s.repo.Postgres.Comment.Create(ctx, model.Comment{
		DiaryID:  diaryID,
		AuthorID: authorID,
		ParentID: input.Parent,
		Content:  input.Content,
	})
	if err != nil {
		s.logger.Sugar().Errorf("failed to create user(%d) comment on diary(%d): %s", authorID, diaryID, err.Error())
		return nil, ErrInternal
	}

	// the cached diary payload embeds its comment threads
	if err := s.repo.Redis.Default.Del(ctx, redisrepo.DiaryKey(diaryID)).Err(); err != nil {
		s.logger.Sugar().Errorf("failed to delete diary(%d) from redis: %s", diaryID, err.Error())
	}

	return comment, nil
}

func (s *commentService) FindDiaryThreads(ctx context.Context, viewerID *int64, diaryID int64) ([]*model.FullComment, error) {
	diary, err := s.repo.Postgres.Diary.FindRow(ctx, diaryID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, ErrNotFound
		}
		s.logger.Sugar().Errorf("failed to find diary(%d): %s", diaryID, err.Error())
		return nil, ErrInternal
	}

	if err := s.policy.Check(viewerID, diary, ActionRead); err != nil {
		return nil, err
	}

	threads, err := s.repo.Postgres.Comment.FindDiaryThreads(ctx, diaryID)
	if err != nil {
		s.logger.Sugar().Errorf("failed to find diary(%d) comments: %s", diaryID, err.Error())
		return nil, ErrInternal
	}

	return threads, nil
}
