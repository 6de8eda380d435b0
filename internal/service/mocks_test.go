package service

import (
	"context"
	"io"
	"time"

	"github.com/momentglow/diary-service/internal/dto"
	"github.com/momentglow/diary-service/internal/model"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/mock"
)

type diaryRepoMock struct {
	mock.Mock
}

func (m *diaryRepoMock) Create(ctx context.Context, diary model.Diary, tags []string) (*model.Diary, error) {
	args := m.Called(ctx, diary, tags)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Diary), args.Error(1)
}

func (m *diaryRepoMock) Update(ctx context.Context, id int64, updates map[string]interface{}, tags *[]string) error {
	args := m.Called(ctx, id, updates, tags)
	return args.Error(0)
}

func (m *diaryRepoMock) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *diaryRepoMock) FindRow(ctx context.Context, id int64) (*model.Diary, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Diary), args.Error(1)
}

func (m *diaryRepoMock) FindByID(ctx context.Context, id int64) (*model.FullDiary, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.FullDiary), args.Error(1)
}

func (m *diaryRepoMock) Find(ctx context.Context, viewerID *int64, publicOnly bool, filter dto.DiaryFilter) ([]*model.ListedDiary, error) {
	args := m.Called(ctx, viewerID, publicOnly, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.ListedDiary), args.Error(1)
}

func (m *diaryRepoMock) AddImage(ctx context.Context, image model.DiaryImage) (*model.DiaryImage, error) {
	args := m.Called(ctx, image)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.DiaryImage), args.Error(1)
}

type userRepoMock struct {
	mock.Mock
}

func (m *userRepoMock) Create(ctx context.Context, user model.User) (*model.User, error) {
	args := m.Called(ctx, user)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *userRepoMock) FindByID(ctx context.Context, id int64) (*model.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *userRepoMock) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *userRepoMock) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *userRepoMock) Update(ctx context.Context, id int64, updates map[string]interface{}) error {
	args := m.Called(ctx, id, updates)
	return args.Error(0)
}

func (m *userRepoMock) SetLastLogin(ctx context.Context, id int64, at time.Time) error {
	args := m.Called(ctx, id, at)
	return args.Error(0)
}

type commentRepoMock struct {
	mock.Mock
}

func (m *commentRepoMock) Create(ctx context.Context, comment model.Comment) (*model.Comment, error) {
	args := m.Called(ctx, comment)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Comment), args.Error(1)
}

func (m *commentRepoMock) FindByID(ctx context.Context, id int64) (*model.Comment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Comment), args.Error(1)
}

func (m *commentRepoMock) FindDiaryThreads(ctx context.Context, diaryID int64) ([]*model.FullComment, error) {
	args := m.Called(ctx, diaryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.FullComment), args.Error(1)
}

type tagRepoMock struct {
	mock.Mock
}

func (m *tagRepoMock) FindAll(ctx context.Context) ([]model.Tag, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Tag), args.Error(1)
}

func (m *tagRepoMock) FindByID(ctx context.Context, id int64) (*model.Tag, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Tag), args.Error(1)
}

// redisMock stands in for the cache. The zero value misses every Get and
// accepts every SetJSON and Del.
type redisMock struct {
	mock.Mock
}

func (m *redisMock) SetJSON(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	args := m.Called(ctx, key, value, ttl)
	return args.Error(0)
}

func (m *redisMock) Get(ctx context.Context, key string) *redis.StringCmd {
	args := m.Called(ctx, key)
	return args.Get(0).(*redis.StringCmd)
}

func (m *redisMock) Del(ctx context.Context, keys ...string) *redis.IntCmd {
	callArgs := make([]interface{}, 0, len(keys)+1)
	callArgs = append(callArgs, ctx)
	for _, key := range keys {
		callArgs = append(callArgs, key)
	}
	args := m.Called(callArgs...)
	return args.Get(0).(*redis.IntCmd)
}

type storageMock struct {
	mock.Mock
}

func (m *storageMock) Save(dir string, filename string, r io.Reader) (string, error) {
	args := m.Called(dir, filename, r)
	return args.String(0), args.Error(1)
}

func (m *storageMock) URL(relativePath string) string {
	args := m.Called(relativePath)
	return args.String(0)
}
