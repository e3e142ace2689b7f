package services

import (
	"context"
	"errors"

	"cemaat.app/configs/configslog"
	"cemaat.app/models"
	"cemaat.app/repositories"

	"go.uber.org/zap"
)

// OrganizationServiceError özel servis hataları
type OrganizationServiceError string

func (e OrganizationServiceError) Error() string { return string(e) }

const (
	ErrOrgNotFound       OrganizationServiceError = "organizasyon bulunamadı"
	ErrOrgCreationFailed OrganizationServiceError = "organizasyon oluşturulamadı"
	ErrOrgUpdateFailed   OrganizationServiceError = "organizasyon güncellenemedi"
	ErrOrgNameRequired   OrganizationServiceError = "organizasyon adı zorunludur"
	ErrOrgNameTaken      OrganizationServiceError = "bu isimde bir organizasyon zaten var"
)

// IOrganizationService organizasyon işlemleri için arayüz.
type IOrganizationService interface {
	CreateOrganization(ctx context.Context, actorID uint, org models.Organization) (*models.Organization, error)
	GetOrganizationByID(ctx context.Context, id uint) (*models.Organization, error)
	GetAllOrganizations(ctx context.Context) ([]models.Organization, error)
	UpdateOrganization(ctx context.Context, actorID, id uint, changes models.Organization) error
}

// OrganizationService IOrganizationService arayüzünü uygular.
type OrganizationService struct {
	repo repositories.IOrganizationRepository
}

// NewOrganizationService yeni bir OrganizationService örneği oluşturur.
func NewOrganizationService() IOrganizationService {
	return &OrganizationService{repo: repositories.NewOrganizationRepository()}
}

func (s *OrganizationService) CreateOrganization(ctx context.Context, actorID uint, org models.Organization) (*models.Organization, error) {
	if org.Name == "" {
		return nil, ErrOrgNameRequired
	}
	if _, err := s.repo.FindByName(ctx, org.Name); err == nil {
		return nil, ErrOrgNameTaken
	} else if !errors.Is(err, repositories.ErrNotFound) {
		return nil, err
	}

	if err := s.repo.Create(models.ContextWithUserID(ctx, actorID), &org); err != nil {
		configslog.Log.Error("Organizasyon oluşturulamadı", zap.String("name", org.Name), zap.Error(err))
		return nil, ErrOrgCreationFailed
	}
	configslog.SLog.Infof("Organizasyon oluşturuldu: %s (ID %d)", org.Name, org.ID)
	return &org, nil
}

func (s *OrganizationService) GetOrganizationByID(ctx context.Context, id uint) (*models.Organization, error) {
	org, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrOrgNotFound
		}
		return nil, err
	}
	return org, nil
}

func (s *OrganizationService) GetAllOrganizations(ctx context.Context) ([]models.Organization, error) {
	return s.repo.FindAll(ctx)
}

func (s *OrganizationService) UpdateOrganization(ctx context.Context, actorID, id uint, changes models.Organization) error {
	if changes.Name == "" {
		return ErrOrgNameRequired
	}
	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrOrgNotFound
		}
		return err
	}

	existing.Name = changes.Name
	existing.City = changes.City
	existing.Address = changes.Address
	existing.Phone = changes.Phone
	existing.Email = changes.Email
	existing.IsActive = changes.IsActive

	if err := s.repo.Update(models.ContextWithUserID(ctx, actorID), existing); err != nil {
		configslog.Log.Error("Organizasyon güncellenemedi", zap.Uint("id", id), zap.Error(err))
		return ErrOrgUpdateFailed
	}
	return nil
}

var _ IOrganizationService = (*OrganizationService)(nil)
