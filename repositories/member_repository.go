package repositories

import (
	"context"
	"errors"

	"cemaat.app/configs"
	"cemaat.app/configs/configslog"
	"cemaat.app/models"
	"cemaat.app/pkg/queryparams"
	"cemaat.app/pkg/turkishsearch"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// IMemberRepository üye veritabanı işlemleri için arayüz.
type IMemberRepository interface {
	Create(ctx context.Context, member *models.Member) error
	FindByID(ctx context.Context, organizationID, id uint) (*models.Member, error)
	FindAllPaginated(ctx context.Context, organizationID uint, params queryparams.ListParams) ([]models.Member, int64, error)
	Update(ctx context.Context, member *models.Member) error
	Delete(ctx context.Context, member *models.Member, deletedByUserID uint) error
	CountByOrganization(ctx context.Context, organizationID uint) (int64, error)
}

// MemberRepository IMemberRepository arayüzünü uygular.
type MemberRepository struct {
	db *gorm.DB
}

// NewMemberRepository yeni bir MemberRepository örneği oluşturur.
func NewMemberRepository() IMemberRepository {
	return &MemberRepository{db: configs.GetDB()}
}

// NewMemberRepositoryTx transaction'a bağlı repository oluşturur.
func NewMemberRepositoryTx(tx *gorm.DB) IMemberRepository {
	return &MemberRepository{db: tx}
}

func (r *MemberRepository) Create(ctx context.Context, member *models.Member) error {
	if member == nil || member.OrganizationID == 0 {
		return errors.New("geçersiz üye kaydı (organizasyon eksik)")
	}
	return getDB(ctx, r.db).Create(member).Error
}

func (r *MemberRepository) FindByID(ctx context.Context, organizationID, id uint) (*models.Member, error) {
	if id == 0 {
		return nil, ErrNotFound
	}
	var member models.Member
	err := getDB(ctx, r.db).
		Where("organization_id = ? AND id = ?", organizationID, id).
		First(&member).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		configslog.Log.Error("MemberRepository.FindByID: DB hatası", zap.Uint("id", id), zap.Error(err))
		return nil, err
	}
	return &member, nil
}

// FindAllPaginated üyeleri sayfalayarak listeler; isim filtresi Türkçe
// karakterlere duyarsız çalışır.
func (r *MemberRepository) FindAllPaginated(ctx context.Context, organizationID uint, params queryparams.ListParams) ([]models.Member, int64, error) {
	var members []models.Member
	var totalCount int64

	query := getDB(ctx, r.db).Model(&models.Member{}).
		Where("organization_id = ?", organizationID)

	if params.Name != "" {
		fragment, args := turkishsearch.SQLFilter("first_name || ' ' || last_name", params.Name)
		query = query.Where(fragment, args...)
	}
	if params.Status != "" {
		query = query.Where("is_active = ?", params.Status == "true")
	}

	if err := query.Count(&totalCount).Error; err != nil {
		configslog.Log.Error("MemberRepository.FindAllPaginated: sayım hatası", zap.Error(err))
		return nil, 0, err
	}
	if totalCount == 0 {
		return members, 0, nil
	}

	allowedSortColumns := map[string]string{
		"id":         "id",
		"first_name": "first_name",
		"last_name":  "last_name",
		"joined_at":  "joined_at",
		"created_at": "created_at",
	}
	orderColumn, ok := allowedSortColumns[params.SortBy]
	if !ok {
		orderColumn = "last_name"
	}

	err := query.
		Order(orderColumn + " " + params.OrderBy).
		Limit(params.PerPage).
		Offset(params.CalculateOffset()).
		Find(&members).Error
	if err != nil {
		configslog.Log.Error("MemberRepository.FindAllPaginated: DB hatası", zap.Error(err))
		return nil, totalCount, err
	}
	return members, totalCount, nil
}

func (r *MemberRepository) Update(ctx context.Context, member *models.Member) error {
	if member == nil || member.ID == 0 {
		return errors.New("güncellenecek üye geçerli değil")
	}
	return getDB(ctx, r.db).Save(member).Error
}

func (r *MemberRepository) Delete(ctx context.Context, member *models.Member, deletedByUserID uint) error {
	if member == nil || member.ID == 0 {
		return errors.New("silinecek üye geçerli değil")
	}
	err := softDelete(getDB(ctx, r.db), &models.Member{}, member.ID, deletedByUserID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}

func (r *MemberRepository) CountByOrganization(ctx context.Context, organizationID uint) (int64, error) {
	var count int64
	err := getDB(ctx, r.db).Model(&models.Member{}).
		Where("organization_id = ? AND is_active = ?", organizationID, true).
		Count(&count).Error
	return count, err
}

var _ IMemberRepository = (*MemberRepository)(nil)
