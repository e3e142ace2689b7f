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

// AuthServiceError özel servis hataları
type AuthServiceError string

func (e AuthServiceError) Error() string { return string(e) }

const (
	ErrAuthInvalidCredentials AuthServiceError = "e-posta veya şifre hatalı"
	ErrAuthUserInactive       AuthServiceError = "hesap pasif durumda"
	ErrAuthPasswordTooShort   AuthServiceError = "şifre en az 6 karakter olmalıdır"
	ErrAuthUpdateFailed       AuthServiceError = "hesap güncellenemedi"
)

// IAuthService kimlik doğrulama işlemleri için arayüz.
type IAuthService interface {
	Login(ctx context.Context, email, password string) (*models.User, error)
	ChangePassword(ctx context.Context, userID uint, currentPassword, newPassword string) error
}

// AuthService IAuthService arayüzünü uygular.
type AuthService struct {
	userRepo repositories.IUserRepository
}

// NewAuthService yeni bir AuthService örneği oluşturur.
func NewAuthService() IAuthService {
	return &AuthService{userRepo: repositories.NewUserRepository()}
}

// Login e-posta ve şifreyle kullanıcıyı doğrular. Bulunamayan kullanıcı ile
// yanlış şifre aynı hatayı döndürür; hangi e-postaların kayıtlı olduğu dışarı
// sızdırılmaz.
func (s *AuthService) Login(ctx context.Context, email, password string) (*models.User, error) {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrAuthInvalidCredentials
		}
		return nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, ErrAuthInvalidCredentials
	}
	if !user.IsActive {
		return nil, ErrAuthUserInactive
	}
	configslog.SLog.Infof("Giriş başarılı: %s (ID %d)", user.Email, user.ID)
	return user, nil
}

// ChangePassword mevcut şifreyi doğrulayıp yenisini yazar.
func (s *AuthService) ChangePassword(ctx context.Context, userID uint, currentPassword, newPassword string) error {
	if len(newPassword) < 6 {
		return ErrAuthPasswordTooShort
	}
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return ErrAuthInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(currentPassword)) != nil {
		return ErrAuthInvalidCredentials
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		configslog.Log.Error("Şifre hashlenemedi", zap.Uint("userID", userID), zap.Error(err))
		return ErrAuthUpdateFailed
	}
	user.PasswordHash = string(hashed)
	if err := s.userRepo.Update(models.ContextWithUserID(ctx, userID), user); err != nil {
		return ErrAuthUpdateFailed
	}
	return nil
}

var _ IAuthService = (*AuthService)(nil)
