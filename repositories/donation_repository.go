package repositories

import (
	"context"
	"errors"
	"time"

	"cemaat.app/configs"
	"cemaat.app/configs/configslog"
	"cemaat.app/models"
	"cemaat.app/pkg/queryparams"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// IDonationRepository bağış veritabanı işlemleri için arayüz.
type IDonationRepository interface {
	Create(ctx context.Context, donation *models.Donation) error
	FindByID(ctx context.Context, organizationID, id uint) (*models.Donation, error)
	FindAllPaginated(ctx context.Context, organizationID uint, params queryparams.ListParams) ([]models.Donation, int64, error)
	Update(ctx context.Context, donation *models.Donation) error
	Delete(ctx context.Context, donation *models.Donation, deletedByUserID uint) error
	SumByOrganization(ctx context.Context, organizationID uint, from, to time.Time) (float64, error)
}

// DonationRepository IDonationRepository arayüzünü uygular.
type DonationRepository struct {
	db *gorm.DB
}

// NewDonationRepository yeni bir DonationRepository örneği oluşturur.
func NewDonationRepository() IDonationRepository {
	return &DonationRepository{db: configs.GetDB()}
}

// NewDonationRepositoryTx transaction'a bağlı repository oluşturur.
func NewDonationRepositoryTx(tx *gorm.DB) IDonationRepository {
	return &DonationRepository{db: tx}
}

func (r *DonationRepository) Create(ctx context.Context, donation *models.Donation) error {
	if donation == nil || donation.OrganizationID == 0 {
		return errors.New("geçersiz bağış kaydı (organizasyon eksik)")
	}
	return getDB(ctx, r.db).Create(donation).Error
}

func (r *DonationRepository) FindByID(ctx context.Context, organizationID, id uint) (*models.Donation, error) {
	if id == 0 {
		return nil, ErrNotFound
	}
	var donation models.Donation
	err := getDB(ctx, r.db).
		Preload("Member").
		Where("organization_id = ? AND id = ?", organizationID, id).
		First(&donation).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		configslog.Log.Error("DonationRepository.FindByID: DB hatası", zap.Uint("id", id), zap.Error(err))
		return nil, err
	}
	return &donation, nil
}

func (r *DonationRepository) FindAllPaginated(ctx context.Context, organizationID uint, params queryparams.ListParams) ([]models.Donation, int64, error) {
	var donations []models.Donation
	var totalCount int64

	query := getDB(ctx, r.db).Model(&models.Donation{}).
		Where("organization_id = ?", organizationID)

	// Status alanı bağışlarda fon filtresi olarak kullanılır.
	if params.Status != "" {
		query = query.Where("fund = ?", params.Status)
	}

	if err := query.Count(&totalCount).Error; err != nil {
		configslog.Log.Error("DonationRepository.FindAllPaginated: sayım hatası", zap.Error(err))
		return nil, 0, err
	}
	if totalCount == 0 {
		return donations, 0, nil
	}

	allowedSortColumns := map[string]string{
		"id":         "id",
		"amount":     "amount",
		"donated_at": "donated_at",
		"created_at": "created_at",
	}
	orderColumn, ok := allowedSortColumns[params.SortBy]
	if !ok {
		orderColumn = "donated_at"
	}

	err := query.
		Preload("Member").
		Order(orderColumn + " " + params.OrderBy).
		Limit(params.PerPage).
		Offset(params.CalculateOffset()).
		Find(&donations).Error
	if err != nil {
		configslog.Log.Error("DonationRepository.FindAllPaginated: DB hatası", zap.Error(err))
		return nil, totalCount, err
	}
	return donations, totalCount, nil
}

func (r *DonationRepository) Update(ctx context.Context, donation *models.Donation) error {
	if donation == nil || donation.ID == 0 {
		return errors.New("güncellenecek bağış geçerli değil")
	}
	return getDB(ctx, r.db).Save(donation).Error
}

func (r *DonationRepository) Delete(ctx context.Context, donation *models.Donation, deletedByUserID uint) error {
	if donation == nil || donation.ID == 0 {
		return errors.New("silinecek bağış geçerli değil")
	}
	err := softDelete(getDB(ctx, r.db), &models.Donation{}, donation.ID, deletedByUserID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}

// SumByOrganization [from, to) aralığındaki bağış toplamı (dashboard için).
func (r *DonationRepository) SumByOrganization(ctx context.Context, organizationID uint, from, to time.Time) (float64, error) {
	var total float64
	err := getDB(ctx, r.db).Model(&models.Donation{}).
		Where("organization_id = ? AND donated_at >= ? AND donated_at < ?", organizationID, from, to).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&total).Error
	if err != nil {
		configslog.Log.Error("DonationRepository.SumByOrganization: DB hatası",
			zap.Uint("organizationID", organizationID), zap.Error(err))
		return 0, err
	}
	return total, nil
}

var _ IDonationRepository = (*DonationRepository)(nil)
