package repositories

import (
	"context"
	"errors"

	"cemaat.app/configs"
	"cemaat.app/configs/configslog"
	"cemaat.app/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// IOrganizationRepository organizasyon veritabanı işlemleri için arayüz.
type IOrganizationRepository interface {
	Create(ctx context.Context, org *models.Organization) error
	FindByID(ctx context.Context, id uint) (*models.Organization, error)
	FindByName(ctx context.Context, name string) (*models.Organization, error)
	FindAll(ctx context.Context) ([]models.Organization, error)
	Update(ctx context.Context, org *models.Organization) error
}

// OrganizationRepository IOrganizationRepository arayüzünü uygular.
type OrganizationRepository struct {
	db *gorm.DB
}

// NewOrganizationRepository yeni bir OrganizationRepository örneği oluşturur.
func NewOrganizationRepository() IOrganizationRepository {
	return &OrganizationRepository{db: configs.GetDB()}
}

// NewOrganizationRepositoryTx transaction'a bağlı repository oluşturur.
func NewOrganizationRepositoryTx(tx *gorm.DB) IOrganizationRepository {
	return &OrganizationRepository{db: tx}
}

func (r *OrganizationRepository) Create(ctx context.Context, org *models.Organization) error {
	if org == nil || org.Name == "" {
		return errors.New("geçersiz organizasyon kaydı")
	}
	return getDB(ctx, r.db).Create(org).Error
}

func (r *OrganizationRepository) FindByID(ctx context.Context, id uint) (*models.Organization, error) {
	if id == 0 {
		return nil, ErrNotFound
	}
	var org models.Organization
	err := getDB(ctx, r.db).First(&org, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		configslog.Log.Error("OrganizationRepository.FindByID: DB hatası", zap.Uint("id", id), zap.Error(err))
		return nil, err
	}
	return &org, nil
}

func (r *OrganizationRepository) FindByName(ctx context.Context, name string) (*models.Organization, error) {
	if name == "" {
		return nil, ErrNotFound
	}
	var org models.Organization
	err := getDB(ctx, r.db).Where("name = ?", name).First(&org).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &org, nil
}

func (r *OrganizationRepository) FindAll(ctx context.Context) ([]models.Organization, error) {
	var orgs []models.Organization
	err := getDB(ctx, r.db).Order("name asc").Find(&orgs).Error
	if err != nil {
		configslog.Log.Error("OrganizationRepository.FindAll: DB hatası", zap.Error(err))
		return nil, err
	}
	return orgs, nil
}

func (r *OrganizationRepository) Update(ctx context.Context, org *models.Organization) error {
	if org == nil || org.ID == 0 {
		return errors.New("güncellenecek organizasyon geçerli değil")
	}
	return getDB(ctx, r.db).Save(org).Error
}

var _ IOrganizationRepository = (*OrganizationRepository)(nil)
