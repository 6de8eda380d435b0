package service

import (
	"context"
	"mime/multipart"
	"net/textproto"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/momentglow/diary-service/internal/dto"
	"github.com/momentglow/diary-service/internal/model"
	"github.com/momentglow/diary-service/internal/repository"
	"github.com/momentglow/diary-service/internal/repository/postgres"
	"github.com/momentglow/diary-service/internal/repository/redisrepo"
	"github.com/momentglow/diary-service/pkg/utils"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

func newUserServiceForTest(users *userRepoMock, cache *redisMock, store *storageMock) User {
	repo := &repository.Repository{
		Postgres: &postgres.PostgresRepository{User: users},
		Redis:    &redisrepo.RedisRepository{Default: cache},
	}
	return newUserService(zap.NewNop(), repo, store)
}

func TestRegister_PasswordsDoNotMatch(t *testing.T) {
	svc := newUserServiceForTest(new(userRepoMock), new(redisMock), new(storageMock))

	_, err := svc.Register(context.Background(), dto.RegisterRequest{
		Username:  "alice",
		Email:     "alice@example.com",
		Password:  "sturdy-pass",
		Password2: "other-pass",
	}, nil)

	assert.ErrorIs(t, err, ErrPasswordsDoNotMatch)
}

func TestRegister_WeakPassword(t *testing.T) {
	svc := newUserServiceForTest(new(userRepoMock), new(redisMock), new(storageMock))

	for _, password := range []string{"short", "12345678901"} {
		_, err := svc.Register(context.Background(), dto.RegisterRequest{
			Username:  "alice",
			Email:     "alice@example.com",
			Password:  password,
			Password2: password,
		}, nil)

		assert.ErrorIs(t, err, ErrPasswordTooWeak, password)
	}
}

func TestRegister_InvalidAvatarRejectedBeforeCreate(t *testing.T) {
	users := new(userRepoMock)
	svc := newUserServiceForTest(users, new(redisMock), new(storageMock))

	avatar := &multipart.FileHeader{
		Filename: "archive.zip",
		Header:   textproto.MIMEHeader{"Content-Type": []string{"application/zip"}},
		Size:     1024,
	}

	_, err := svc.Register(context.Background(), dto.RegisterRequest{
		Username:  "alice",
		Email:     "alice@example.com",
		Password:  "sturdy-pass",
		Password2: "sturdy-pass",
	}, avatar)

	assert.ErrorIs(t, err, ErrFileMustBeImage)
	users.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestRegister_OversizedAvatarRejectedBeforeCreate(t *testing.T) {
	users := new(userRepoMock)
	svc := newUserServiceForTest(users, new(redisMock), new(storageMock))

	avatar := &multipart.FileHeader{
		Filename: "selfie.png",
		Header:   textproto.MIMEHeader{"Content-Type": []string{"image/png"}},
		Size:     (MAX_IMAGE_SIZE_MB + 1) * 1024 * 1024,
	}

	_, err := svc.Register(context.Background(), dto.RegisterRequest{
		Username:  "alice",
		Email:     "alice@example.com",
		Password:  "sturdy-pass",
		Password2: "sturdy-pass",
	}, avatar)

	assert.ErrorIs(t, err, ErrFileTooLarge)
	users.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestRegister_UsernameTaken(t *testing.T) {
	users := new(userRepoMock)
	svc := newUserServiceForTest(users, new(redisMock), new(storageMock))

	users.On("FindByUsername", mock.Anything, "alice").
		Return(&model.User{ID: 1, Username: "alice"}, nil)

	_, err := svc.Register(context.Background(), dto.RegisterRequest{
		Username:  "alice",
		Email:     "alice@example.com",
		Password:  "sturdy-pass",
		Password2: "sturdy-pass",
	}, nil)

	assert.ErrorIs(t, err, ErrUsernameTaken)
}

func TestRegister_EmailTaken(t *testing.T) {
	users := new(userRepoMock)
	svc := newUserServiceForTest(users, new(redisMock), new(storageMock))

	users.On("FindByUsername", mock.Anything, "alice").Return(nil, pgx.ErrNoRows)
	users.On("FindByEmail", mock.Anything, "alice@example.com").
		Return(&model.User{ID: 2, Email: "alice@example.com"}, nil)

	_, err := svc.Register(context.Background(), dto.RegisterRequest{
		Username:  "alice",
		Email:     "alice@example.com",
		Password:  "sturdy-pass",
		Password2: "sturdy-pass",
	}, nil)

	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestRegister_StoresHashedPassword(t *testing.T) {
	users := new(userRepoMock)
	svc := newUserServiceForTest(users, new(redisMock), new(storageMock))

	users.On("FindByUsername", mock.Anything, "alice").Return(nil, pgx.ErrNoRows)
	users.On("FindByEmail", mock.Anything, "alice@example.com").Return(nil, pgx.ErrNoRows)
	users.On("Create", mock.Anything, mock.MatchedBy(func(user model.User) bool {
		return user.Username == "alice" &&
			bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("sturdy-pass")) == nil
	})).Return(&model.User{ID: 1, Username: "alice", Email: "alice@example.com"}, nil)

	user, err := svc.Register(context.Background(), dto.RegisterRequest{
		Username:  "alice",
		Email:     "alice@example.com",
		Password:  "sturdy-pass",
		Password2: "sturdy-pass",
	}, nil)

	require.NoError(t, err)
	assert.Equal(t, int64(1), user.ID)
	users.AssertExpectations(t)
}

func TestLogin_UnknownUser(t *testing.T) {
	users := new(userRepoMock)
	svc := newUserServiceForTest(users, new(redisMock), new(storageMock))

	users.On("FindByUsername", mock.Anything, "ghost").Return(nil, pgx.ErrNoRows)

	_, err := svc.Login(context.Background(), dto.LoginRequest{Username: "ghost", Password: "whatever"})

	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogin_WrongPassword(t *testing.T) {
	users := new(userRepoMock)
	svc := newUserServiceForTest(users, new(redisMock), new(storageMock))

	hash, err := bcrypt.GenerateFromPassword([]byte("sturdy-pass"), bcrypt.MinCost)
	require.NoError(t, err)
	users.On("FindByUsername", mock.Anything, "alice").
		Return(&model.User{ID: 1, Username: "alice", PasswordHash: string(hash), IsActive: true}, nil)

	_, err = svc.Login(context.Background(), dto.LoginRequest{Username: "alice", Password: "wrong"})

	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogin_DisabledAccount(t *testing.T) {
	users := new(userRepoMock)
	svc := newUserServiceForTest(users, new(redisMock), new(storageMock))

	hash, err := bcrypt.GenerateFromPassword([]byte("sturdy-pass"), bcrypt.MinCost)
	require.NoError(t, err)
	users.On("FindByUsername", mock.Anything, "alice").
		Return(&model.User{ID: 1, Username: "alice", PasswordHash: string(hash)}, nil)

	_, err = svc.Login(context.Background(), dto.LoginRequest{Username: "alice", Password: "sturdy-pass"})

	assert.ErrorIs(t, err, ErrAccountDisabled)
}

func TestLogin_IssuesTokenPair(t *testing.T) {
	t.Setenv("ACCESS_SECRET", "access-secret")
	t.Setenv("REFRESH_SECRET", "refresh-secret")

	users := new(userRepoMock)
	cache := new(redisMock)
	svc := newUserServiceForTest(users, cache, new(storageMock))

	hash, err := bcrypt.GenerateFromPassword([]byte("sturdy-pass"), bcrypt.MinCost)
	require.NoError(t, err)
	users.On("FindByUsername", mock.Anything, "alice").
		Return(&model.User{ID: 1, Username: "alice", Email: "alice@example.com", PasswordHash: string(hash), IsActive: true}, nil)
	users.On("SetLastLogin", mock.Anything, int64(1), mock.Anything).Return(nil)
	cache.On("Del", mock.Anything, redisrepo.UserKey(1)).Return(redis.NewIntResult(1, nil))

	resp, err := svc.Login(context.Background(), dto.LoginRequest{Username: "alice", Password: "sturdy-pass"})

	require.NoError(t, err)
	assert.Equal(t, "alice", resp.User.Username)
	assert.NotEmpty(t, resp.Token)
	assert.NotEmpty(t, resp.Refresh)
	assert.NotEqual(t, resp.Token, resp.Refresh)

	claims, err := utils.DecodeJWT(resp.Token, []byte("access-secret"))
	require.NoError(t, err)
	assert.Equal(t, float64(1), claims["id"])
	users.AssertExpectations(t)
}

func TestRefresh_InvalidToken(t *testing.T) {
	t.Setenv("REFRESH_SECRET", "refresh-secret")
	svc := newUserServiceForTest(new(userRepoMock), new(redisMock), new(storageMock))

	_, err := svc.Refresh(context.Background(), "not-a-token")

	assert.ErrorIs(t, err, ErrInvalidRefreshToken)
}

func TestRefresh_IssuesNewAccessToken(t *testing.T) {
	t.Setenv("ACCESS_SECRET", "access-secret")
	t.Setenv("REFRESH_SECRET", "refresh-secret")

	users := new(userRepoMock)
	svc := newUserServiceForTest(users, new(redisMock), new(storageMock))

	refresh, err := utils.GenerateJWT(map[string]interface{}{"id": int64(1)}, REFRESH_TOKEN_TTL, []byte("refresh-secret"))
	require.NoError(t, err)
	users.On("FindByID", mock.Anything, int64(1)).
		Return(&model.User{ID: 1, Username: "alice", IsActive: true}, nil)

	access, err := svc.Refresh(context.Background(), refresh)

	require.NoError(t, err)
	claims, err := utils.DecodeJWT(access, []byte("access-secret"))
	require.NoError(t, err)
	assert.Equal(t, float64(1), claims["id"])
}

func TestUpdateProfile_OtherUserForbidden(t *testing.T) {
	svc := newUserServiceForTest(new(userRepoMock), new(redisMock), new(storageMock))

	_, err := svc.UpdateProfile(context.Background(), 1, 2, dto.UpdateProfileRequest{})

	assert.ErrorIs(t, err, ErrForbidden)
}

func TestAvatar_DefaultPlaceholder(t *testing.T) {
	users := new(userRepoMock)
	cache := new(redisMock)
	store := new(storageMock)
	svc := newUserServiceForTest(users, cache, store)

	cache.On("Get", mock.Anything, redisrepo.UserKey(1)).
		Return(redis.NewStringResult("", redis.Nil))
	users.On("FindByID", mock.Anything, int64(1)).
		Return(&model.User{ID: 1, Username: "alice", IsActive: true}, nil)
	cache.On("SetJSON", mock.Anything, redisrepo.UserKey(1), mock.Anything, mock.Anything).Return(nil)
	store.On("URL", "avatars/default.png").
		Return("http://localhost:8000/media/avatars/default.png")

	resp, err := svc.Avatar(context.Background(), 1)

	require.NoError(t, err)
	assert.False(t, resp.HasAvatar)
	assert.Equal(t, "http://localhost:8000/media/avatars/default.png", resp.AvatarURL)
}
