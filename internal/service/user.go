package service

import (
	"context"
	"mime/multipart"
	"os"
	"path"
	"time"
	"unicode"

	"github.com/golang-jwt/jwt/v5"
	"github.com/jackc/pgx/v5"
	"github.com/momentglow/diary-service/internal/dto"
	"github.com/momentglow/diary-service/internal/model"
	"github.com/momentglow/diary-service/internal/repository"
	"github.com/momentglow/diary-service/internal/repository/redisrepo"
	"github.com/momentglow/diary-service/internal/storage"
	"github.com/momentglow/diary-service/pkg/utils"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const (
	ACCESS_TOKEN_TTL  = time.Minute * 15
	REFRESH_TOKEN_TTL = time.Hour * 24 * 7

	avatarsDir        = "avatars"
	defaultAvatarPath = "avatars/default.png"
)

type userService struct {
	logger *zap.Logger
	repo   *repository.Repository
	store  storage.Storage
}

func newUserService(logger *zap.Logger, repo *repository.Repository, store storage.Storage) User {
	return &userService{
		logger: logger,
		repo:   repo,
		store:  store,
	}
}

func (s *userService) Register(ctx context.Context, input dto.RegisterRequest, avatar *multipart.FileHeader) (*model.User, error) {
	if input.Password != input.Password2 {
		return nil, ErrPasswordsDoNotMatch
	}
	if !passwordIsStrong(input.Password) {
		return nil, ErrPasswordTooWeak
	}
	// the avatar is validated up front so a bad upload never leaves a user
	// row behind a validation error
	if avatar != nil {
		if _, err := validateImage(avatar); err != nil {
			return nil, err
		}
	}

	if err := s.ensureUsernameFree(ctx, input.Username); err != nil {
		return nil, err
	}
	if err := s.ensureEmailFree(ctx, input.Email); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		s.logger.Sugar().Errorf("failed to hash password for user(%s): %s", input.Username, err.Error())
		return nil, ErrInternal
	}

	user, err := s.repo.Postgres.User.Create(ctx, model.User{
		Username:     input.Username,
		Email:        input.Email,
		PasswordHash: string(hash),
	})
	if err != nil {
		s.logger.Sugar().Errorf("failed to create user(%s): %s", input.Username, err.Error())
		return nil, ErrInternal
	}

	if avatar != nil {
		if err := s.saveAvatar(ctx, user, avatar); err != nil {
			return nil, err
		}
	}

	return user, nil
}

func (s *userService) Login(ctx context.Context, input dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := s.repo.Postgres.User.FindByUsername(ctx, input.Username)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, ErrInvalidCredentials
		}
		s.logger.Sugar().Errorf("failed to find user(%s): %s", input.Username, err.Error())
		return nil, ErrInternal
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	if !user.IsActive {
		return nil, ErrAccountDisabled
	}

	pair, err := utils.GenerateJWTPair(
		jwt.MapClaims{"id": user.ID},
		ACCESS_TOKEN_TTL,
		REFRESH_TOKEN_TTL,
		[]byte(os.Getenv("ACCESS_SECRET")),
		[]byte(os.Getenv("REFRESH_SECRET")),
	)
	if err != nil {
		s.logger.Sugar().Errorf("failed to generate token pair for user(%d): %s", user.ID, err.Error())
		return nil, ErrInternal
	}

	if err := s.repo.Postgres.User.SetLastLogin(ctx, user.ID, time.Now()); err != nil {
		s.logger.Sugar().Errorf("failed to set last_login for user(%d): %s", user.ID, err.Error())
		return nil, ErrInternal
	}
	s.invalidate(ctx, user.ID)

	return &dto.LoginResponse{
		Token:   pair.AccessToken,
		Refresh: pair.RefreshToken,
		User:    user.Author(),
	}, nil
}

func (s *userService) Refresh(ctx context.Context, refreshToken string) (string, error) {
	claims, err := utils.DecodeJWT(refreshToken, []byte(os.Getenv("REFRESH_SECRET")))
	if err != nil {
		return "", ErrInvalidRefreshToken
	}

	id, ok := claims["id"].(float64)
	if !ok {
		return "", ErrInvalidRefreshToken
	}

	user, err := s.repo.Postgres.User.FindByID(ctx, int64(id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return "", ErrInvalidRefreshToken
		}
		s.logger.Sugar().Errorf("failed to find user(%d): %s", int64(id), err.Error())
		return "", ErrInternal
	}
	if !user.IsActive {
		return "", ErrAccountDisabled
	}

	access, err := utils.GenerateJWT(jwt.MapClaims{"id": user.ID}, ACCESS_TOKEN_TTL, []byte(os.Getenv("ACCESS_SECRET")))
	if err != nil {
		s.logger.Sugar().Errorf("failed to generate access token for user(%d): %s", user.ID, err.Error())
		return "", ErrInternal
	}

	return access, nil
}

func (s *userService) FindByID(ctx context.Context, id int64) (*model.User, error) {
	cached, err := redisrepo.Get[model.User](s.repo.Redis.Default, ctx, redisrepo.UserKey(id))
	if err == nil && cached != nil {
		return cached, nil
	}
	if err != nil && err != redis.Nil {
		s.logger.Sugar().Errorf("failed to get user(%d) from redis: %s", id, err.Error())
		return nil, ErrInternal
	}

	user, err := s.repo.Postgres.User.FindByID(ctx, id)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, ErrNotFound
		}
		s.logger.Sugar().Errorf("failed to find user(%d): %s", id, err.Error())
		return nil, ErrInternal
	}

	if user.Avatar != nil {
		url := s.store.URL(*user.Avatar)
		user.Avatar = &url
	}

	if err := s.repo.Redis.Default.SetJSON(ctx, redisrepo.UserKey(id), user, time.Hour); err != nil {
		s.logger.Sugar().Errorf("failed to set user(%d) in redis: %s", id, err.Error())
		return nil, ErrInternal
	}

	return user, nil
}

func (s *userService) UpdateProfile(ctx context.Context, actorID int64, userID int64, input dto.UpdateProfileRequest) (*model.User, error) {
	if actorID != userID {
		return nil, ErrForbidden
	}

	updates := make(map[string]interface{})
	if input.Username != nil {
		if err := s.ensureUsernameFree(ctx, *input.Username); err != nil {
			return nil, err
		}
		updates["username"] = *input.Username
	}
	if input.Email != nil {
		if err := s.ensureEmailFree(ctx, *input.Email); err != nil {
			return nil, err
		}
		updates["email"] = *input.Email
	}
	if input.Bio != nil {
		updates["bio"] = *input.Bio
	}

	if err := s.repo.Postgres.User.Update(ctx, userID, updates); err != nil {
		if err == pgx.ErrNoRows {
			return nil, ErrNotFound
		}
		s.logger.Sugar().Errorf("failed to update user(%d): %s", userID, err.Error())
		return nil, ErrInternal
	}
	s.invalidate(ctx, userID)

	return s.FindByID(ctx, userID)
}

func (s *userService) UploadAvatar(ctx context.Context, actorID int64, fileHeader *multipart.FileHeader) (*dto.UploadAvatarResponse, error) {
	user, err := s.repo.Postgres.User.FindByID(ctx, actorID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, ErrNotFound
		}
		s.logger.Sugar().Errorf("failed to find user(%d): %s", actorID, err.Error())
		return nil, ErrInternal
	}

	if err := s.saveAvatar(ctx, user, fileHeader); err != nil {
		return nil, err
	}

	return &dto.UploadAvatarResponse{
		AvatarURL: s.store.URL(*user.Avatar),
		Filename:  path.Base(*user.Avatar),
	}, nil
}

func (s *userService) Avatar(ctx context.Context, userID int64) (*dto.AvatarResponse, error) {
	user, err := s.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if user.Avatar == nil {
		return &dto.AvatarResponse{
			AvatarURL: s.store.URL(defaultAvatarPath),
			HasAvatar: false,
		}, nil
	}

	return &dto.AvatarResponse{AvatarURL: *user.Avatar, HasAvatar: true}, nil
}

// saveAvatar validates the upload, stores it under a generated name and
// points the user record at the new file. The stored relative path is
// written back into user.Avatar.
func (s *userService) saveAvatar(ctx context.Context, user *model.User, fileHeader *multipart.FileHeader) error {
	ext, err := validateImage(fileHeader)
	if err != nil {
		return err
	}

	file, err := fileHeader.Open()
	if err != nil {
		s.logger.Sugar().Errorf("failed to open avatar upload for user(%d): %s", user.ID, err.Error())
		return ErrInternal
	}
	defer file.Close()

	filename := mediaFilename(ext)
	if _, err := s.store.Save(avatarsDir, filename, file); err != nil {
		s.logger.Sugar().Errorf("failed to store avatar for user(%d): %s", user.ID, err.Error())
		return ErrInternal
	}

	relative := avatarsDir + "/" + filename
	if err := s.repo.Postgres.User.Update(ctx, user.ID, map[string]interface{}{"avatar": relative}); err != nil {
		s.logger.Sugar().Errorf("failed to update avatar for user(%d): %s", user.ID, err.Error())
		return ErrInternal
	}
	user.Avatar = &relative

	s.invalidate(ctx, user.ID)

	return nil
}

func (s *userService) ensureUsernameFree(ctx context.Context, username string) error {
	_, err := s.repo.Postgres.User.FindByUsername(ctx, username)
	if err == nil {
		return ErrUsernameTaken
	}
	if err != pgx.ErrNoRows {
		s.logger.Sugar().Errorf("failed to check username(%s): %s", username, err.Error())
		return ErrInternal
	}
	return nil
}

func (s *userService) ensureEmailFree(ctx context.Context, email string) error {
	_, err := s.repo.Postgres.User.FindByEmail(ctx, email)
	if err == nil {
		return ErrEmailTaken
	}
	if err != pgx.ErrNoRows {
		s.logger.Sugar().Errorf("failed to check email(%s): %s", email, err.Error())
		return ErrInternal
	}
	return nil
}

func (s *userService) invalidate(ctx context.Context, userID int64) {
	if err := s.repo.Redis.Default.Del(ctx, redisrepo.UserKey(userID)).Err(); err != nil {
		s.logger.Sugar().Errorf("failed to delete user(%d) from redis: %s", userID, err.Error())
	}
}

func passwordIsStrong(password string) bool {
	if len(password) < 8 {
		return false
	}
	for _, r := range password {
		if !unicode.IsDigit(r) {
			return true
		}
	}
	return false
}
