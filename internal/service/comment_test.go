package service

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/momentglow/diary-service/internal/dto"
	"github.com/momentglow/diary-service/internal/model"
	"github.com/momentglow/diary-service/internal/repository"
	"github.com/momentglow/diary-service/internal/repository/postgres"
	"github.com/momentglow/diary-service/internal/repository/redisrepo"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newCommentServiceForTest(diaries *diaryRepoMock, comments *commentRepoMock, cache *redisMock) Comment {
	repo := &repository.Repository{
		Postgres: &postgres.PostgresRepository{
			Diary:   diaries,
			Comment: comments,
		},
		Redis: &redisrepo.RedisRepository{Default: cache},
	}
	return newCommentService(zap.NewNop(), repo, VisibilityPolicy{})
}

func TestCommentCreate_RootComment(t *testing.T) {
	diaries := new(diaryRepoMock)
	comments := new(commentRepoMock)
	cache := new(redisMock)
	svc := newCommentServiceForTest(diaries, comments, cache)

	diaries.On("FindRow", mock.Anything, int64(1)).
		Return(&model.Diary{ID: 1, AuthorID: 10, IsPublic: true}, nil)
	comments.On("Create", mock.Anything, model.Comment{DiaryID: 1, AuthorID: 20, Content: "nice entry"}).
		Return(&model.Comment{ID: 7, DiaryID: 1, AuthorID: 20, Content: "nice entry"}, nil)
	cache.On("Del", mock.Anything, redisrepo.DiaryKey(1)).
		Return(redis.NewIntResult(1, nil))

	comment, err := svc.Create(context.Background(), 20, 1, dto.CreateCommentRequest{Content: "nice entry"})

	require.NoError(t, err)
	assert.Equal(t, int64(7), comment.ID)
	assert.True(t, comment.IsRoot())
	cache.AssertExpectations(t)
}

func TestCommentCreate_Reply(t *testing.T) {
	diaries := new(diaryRepoMock)
	comments := new(commentRepoMock)
	cache := new(redisMock)
	svc := newCommentServiceForTest(diaries, comments, cache)

	parentID := int64(7)
	diaries.On("FindRow", mock.Anything, int64(1)).
		Return(&model.Diary{ID: 1, AuthorID: 10, IsPublic: true}, nil)
	comments.On("FindByID", mock.Anything, parentID).
		Return(&model.Comment{ID: parentID, DiaryID: 1, AuthorID: 20}, nil)
	comments.On("Create", mock.Anything, model.Comment{DiaryID: 1, AuthorID: 30, ParentID: &parentID, Content: "agreed"}).
		Return(&model.Comment{ID: 8, DiaryID: 1, AuthorID: 30, ParentID: &parentID, Content: "agreed"}, nil)
	cache.On("Del", mock.Anything, redisrepo.DiaryKey(1)).
		Return(redis.NewIntResult(1, nil))

	comment, err := svc.Create(context.Background(), 30, 1, dto.CreateCommentRequest{Content: "agreed", Parent: &parentID})

	require.NoError(t, err)
	assert.False(t, comment.IsRoot())
}

func TestCommentCreate_DiaryNotFound(t *testing.T) {
	diaries := new(diaryRepoMock)
	svc := newCommentServiceForTest(diaries, new(commentRepoMock), new(redisMock))

	diaries.On("FindRow", mock.Anything, int64(99)).Return(nil, pgx.ErrNoRows)

	_, err := svc.Create(context.Background(), 20, 99, dto.CreateCommentRequest{Content: "hi"})

	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCommentCreate_PrivateDiaryForbidden(t *testing.T) {
	diaries := new(diaryRepoMock)
	svc := newCommentServiceForTest(diaries, new(commentRepoMock), new(redisMock))

	diaries.On("FindRow", mock.Anything, int64(1)).
		Return(&model.Diary{ID: 1, AuthorID: 10}, nil)

	_, err := svc.Create(context.Background(), 20, 1, dto.CreateCommentRequest{Content: "hi"})

	assert.ErrorIs(t, err, ErrForbidden)
}

func TestCommentCreate_PrivateDiaryOwnerAllowed(t *testing.T) {
	diaries := new(diaryRepoMock)
	comments := new(commentRepoMock)
	cache := new(redisMock)
	svc := newCommentServiceForTest(diaries, comments, cache)

	diaries.On("FindRow", mock.Anything, int64(1)).
		Return(&model.Diary{ID: 1, AuthorID: 10}, nil)
	comments.On("Create", mock.Anything, mock.Anything).
		Return(&model.Comment{ID: 7, DiaryID: 1, AuthorID: 10, Content: "note to self"}, nil)
	cache.On("Del", mock.Anything, redisrepo.DiaryKey(1)).
		Return(redis.NewIntResult(1, nil))

	_, err := svc.Create(context.Background(), 10, 1, dto.CreateCommentRequest{Content: "note to self"})

	assert.NoError(t, err)
}

func TestCommentCreate_ParentNotFound(t *testing.T) {
	diaries := new(diaryRepoMock)
	comments := new(commentRepoMock)
	svc := newCommentServiceForTest(diaries, comments, new(redisMock))

	parentID := int64(404)
	diaries.On("FindRow", mock.Anything, int64(1)).
		Return(&model.Diary{ID: 1, AuthorID: 10, IsPublic: true}, nil)
	comments.On("FindByID", mock.Anything, parentID).Return(nil, pgx.ErrNoRows)

	_, err := svc.Create(context.Background(), 20, 1, dto.CreateCommentRequest{Content: "hi", Parent: &parentID})

	assert.ErrorIs(t, err, ErrParentCommentNotFound)
}

func TestCommentCreate_ParentOnOtherDiary(t *testing.T) {
	diaries := new(diaryRepoMock)
	comments := new(commentRepoMock)
	svc := newCommentServiceForTest(diaries, comments, new(redisMock))

	parentID := int64(7)
	diaries.On("FindRow", mock.Anything, int64(1)).
		Return(&model.Diary{ID: 1, AuthorID: 10, IsPublic: true}, nil)
	comments.On("FindByID", mock.Anything, parentID).
		Return(&model.Comment{ID: parentID, DiaryID: 2}, nil)

	_, err := svc.Create(context.Background(), 20, 1, dto.CreateCommentRequest{Content: "hi", Parent: &parentID})

	assert.ErrorIs(t, err, ErrParentCommentOtherDiary)
}

func TestCommentCreate_ParentIsReply(t *testing.T) {
	diaries := new(diaryRepoMock)
	comments := new(commentRepoMock)
	svc := newCommentServiceForTest(diaries, comments, new(redisMock))

	rootID := int64(5)
	parentID := int64(7)
	diaries.On("FindRow", mock.Anything, int64(1)).
		Return(&model.Diary{ID: 1, AuthorID: 10, IsPublic: true}, nil)
	comments.On("FindByID", mock.Anything, parentID).
		Return(&model.Comment{ID: parentID, DiaryID: 1, ParentID: &rootID}, nil)

	_, err := svc.Create(context.Background(), 20, 1, dto.CreateCommentRequest{Content: "hi", Parent: &parentID})

	assert.ErrorIs(t, err, ErrParentCommentNotRoot)
}

func TestCommentFindDiaryThreads_AnonymousOnPrivateDiary(t *testing.T) {
	diaries := new(diaryRepoMock)
	svc := newCommentServiceForTest(diaries, new(commentRepoMock), new(redisMock))

	diaries.On("FindRow", mock.Anything, int64(1)).
		Return(&model.Diary{ID: 1, AuthorID: 10}, nil)

	_, err := svc.FindDiaryThreads(context.Background(), nil, 1)

	assert.ErrorIs(t, err, ErrForbidden)
}

func TestCommentFindDiaryThreads(t *testing.T) {
	diaries := new(diaryRepoMock)
	comments := new(commentRepoMock)
	svc := newCommentServiceForTest(diaries, comments, new(redisMock))

	diaries.On("FindRow", mock.Anything, int64(1)).
		Return(&model.Diary{ID: 1, AuthorID: 10, IsPublic: true}, nil)
	comments.On("FindDiaryThreads", mock.Anything, int64(1)).
		Return([]*model.FullComment{{Comment: model.Comment{ID: 7, DiaryID: 1}}}, nil)

	threads, err := svc.FindDiaryThreads(context.Background(), nil, 1)

	require.NoError(t, err)
	require.Len(t, threads, 1)
	assert.Equal(t, int64(7), threads[0].Comment.ID)
}
