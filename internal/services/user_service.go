package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/DiasNurdicanov/63990-six-cities-5/internal/models"
	"github.com/DiasNurdicanov/63990-six-cities-5/utils"
)

const defaultTokenTTL = 48 * time.Hour

const MaxAvatarSize = 5 << 20

var avatarExtensions = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
}

type UserService struct {
	UserRepo     UserStore
	TokenManager *utils.Manager
	TokenTTL     time.Duration
	Avatars      AvatarStorage
	Logger       *slog.Logger
}

func (s *UserService) Create(ctx context.Context, dto models.CreateUserDto) (models.User, error) {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(dto.Password), bcrypt.DefaultCost)
	if err != nil {
		return models.User{}, fmt.Errorf("hash password: %w", err)
	}

	user, err := s.UserRepo.CreateUser(ctx, models.User{
		Email:    dto.Email,
		Avatar:   dto.Avatar,
		Name:     dto.Name,
		Password: string(hashedPassword),
		Type:     dto.Type,
	})
	if err != nil {
		return models.User{}, err
	}
	loggerOr(s.Logger).Info("new user created", "user_id", user.ID, "email", user.Email)
	return user, nil
}

func (s *UserService) FindByID(ctx context.Context, id string) (*models.User, error) {
	return s.UserRepo.GetUserByID(ctx, id)
}

func (s *UserService) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.UserRepo.GetUserByEmail(ctx, email)
}

func (s *UserService) UpdateByID(ctx context.Context, id string, dto models.UpdateUserDto) (*models.User, error) {
	if dto.Password != nil {
		hashedPassword, err := bcrypt.GenerateFromPassword([]byte(*dto.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("hash password: %w", err)
		}
		hashed := string(hashedPassword)
		dto.Password = &hashed
	}
	return s.UserRepo.UpdateUser(ctx, id, dto)
}

func (s *UserService) DeleteByID(ctx context.Context, id string) (*models.User, error) {
	return s.UserRepo.DeleteUser(ctx, id)
}

func (s *UserService) Exists(ctx context.Context, id string) (bool, error) {
	return s.UserRepo.Exists(ctx, id)
}

// VerifyCredentials returns the user when email and password match, and
// models.ErrInvalidCredentials otherwise.
func (s *UserService) VerifyCredentials(ctx context.Context, dto models.LoginUserDto) (*models.User, error) {
	user, err := s.UserRepo.GetUserByEmail(ctx, dto.Email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, models.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(dto.Password)); err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return nil, models.ErrInvalidCredentials
		}
		return nil, err
	}
	return user, nil
}

func (s *UserService) Login(ctx context.Context, dto models.LoginUserDto) (models.Tokens, error) {
	user, err := s.VerifyCredentials(ctx, dto)
	if err != nil {
		return models.Tokens{}, err
	}

	ttl := s.TokenTTL
	if ttl <= 0 {
		ttl = defaultTokenTTL
	}
	token, err := s.TokenManager.NewJWT(user.ID, ttl)
	if err != nil {
		return models.Tokens{}, fmt.Errorf("sign token: %w", err)
	}
	return models.Tokens{AccessToken: token}, nil
}

// UploadAvatar stores a jpeg or png image and points the user's avatar at it.
// It returns nil when the user does not exist.
func (s *UserService) UploadAvatar(ctx context.Context, userID string, data []byte, contentType string) (*models.User, error) {
	if s.Avatars == nil {
		return nil, models.ErrStorageDisabled
	}
	ext, ok := avatarExtensions[contentType]
	if !ok || len(data) == 0 || len(data) > MaxAvatarSize {
		return nil, models.ErrUnsupportedImage
	}

	exists, err := s.UserRepo.Exists(ctx, userID)
	if err != nil || !exists {
		return nil, err
	}

	url, err := s.Avatars.Upload(ctx, data, userID+"-"+models.NewID()+ext, contentType)
	if err != nil {
		return nil, err
	}
	return s.UserRepo.UpdateUser(ctx, userID, models.UpdateUserDto{Avatar: &url})
}
