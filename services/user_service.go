package services

import (
	"context"
	"errors"

	"cemaat.app/configs/configslog"
	"cemaat.app/models"
	"cemaat.app/repositories"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// UserServiceError özel servis hataları
type UserServiceError string

func (e UserServiceError) Error() string { return string(e) }

const (
	ErrUserNotFound       UserServiceError = "kullanıcı bulunamadı"
	ErrUserCreationFailed UserServiceError = "kullanıcı oluşturulamadı"
	ErrUserUpdateFailed   UserServiceError = "kullanıcı güncellenemedi"
	ErrUserEmailRequired  UserServiceError = "e-posta zorunludur"
	ErrUserEmailTaken     UserServiceError = "bu e-posta zaten kayıtlı"
)

// IUserService kullanıcı hesabı işlemleri için arayüz.
type IUserService interface {
	CreateUser(ctx context.Context, actorID uint, user models.User, password string) (*models.User, error)
	GetUserByID(ctx context.Context, id uint) (*models.User, error)
	SetUserActive(ctx context.Context, actorID, id uint, active bool) error
}

// UserService IUserService arayüzünü uygular.
type UserService struct {
	repo repositories.IUserRepository
}

// NewUserService yeni bir UserService örneği oluşturur.
func NewUserService() IUserService {
	return &UserService{repo: repositories.NewUserRepository()}
}

func (s *UserService) CreateUser(ctx context.Context, actorID uint, user models.User, password string) (*models.User, error) {
	if user.Email == "" {
		return nil, ErrUserEmailRequired
	}
	if len(password) < 6 {
		return nil, ErrAuthPasswordTooShort
	}
	if _, err := s.repo.FindByEmail(ctx, user.Email); err == nil {
		return nil, ErrUserEmailTaken
	} else if !errors.Is(err, repositories.ErrNotFound) {
		return nil, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		configslog.Log.Error("Şifre hashlenemedi", zap.Error(err))
		return nil, ErrUserCreationFailed
	}
	user.PasswordHash = string(hashed)

	if err := s.repo.Create(models.ContextWithUserID(ctx, actorID), &user); err != nil {
		configslog.Log.Error("Kullanıcı oluşturulamadı", zap.String("email", user.Email), zap.Error(err))
		return nil, ErrUserCreationFailed
	}
	return &user, nil
}

func (s *UserService) GetUserByID(ctx context.Context, id uint) (*models.User, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

func (s *UserService) SetUserActive(ctx context.Context, actorID, id uint, active bool) error {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrUserNotFound
		}
		return err
	}
	user.IsActive = active
	if err := s.repo.Update(models.ContextWithUserID(ctx, actorID), user); err != nil {
		configslog.Log.Error("Kullanıcı durumu güncellenemedi", zap.Uint("id", id), zap.Error(err))
		return ErrUserUpdateFailed
	}
	return nil
}

var _ IUserService = (*UserService)(nil)
