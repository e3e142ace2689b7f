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

// IAttendanceRepository yoklama/check-in veritabanı işlemleri için arayüz.
type IAttendanceRepository interface {
	CreateOrUpdate(ctx context.Context, record *models.AttendanceRecord) error
	FindByEventID(ctx context.Context, eventID uint) ([]models.AttendanceRecord, error)
	CountByEventID(ctx context.Context, eventID uint) (int64, error)
	CountByOrganization(ctx context.Context, organizationID uint) (int64, error)
	Delete(ctx context.Context, record *models.AttendanceRecord, deletedByUserID uint) error
}

// AttendanceRepository IAttendanceRepository arayüzünü uygular.
type AttendanceRepository struct {
	db *gorm.DB
}

// NewAttendanceRepository yeni bir AttendanceRepository örneği oluşturur.
func NewAttendanceRepository() IAttendanceRepository {
	return &AttendanceRepository{db: configs.GetDB()}
}

// NewAttendanceRepositoryTx transaction'a bağlı repository oluşturur.
func NewAttendanceRepositoryTx(tx *gorm.DB) IAttendanceRepository {
	return &AttendanceRepository{db: tx}
}

// CreateOrUpdate aynı (event, member) ikilisi için kaydı bulur ve günceller,
// yoksa oluşturur. Tekrarlanan check-in denemeleri kopya üretmez.
func (r *AttendanceRepository) CreateOrUpdate(ctx context.Context, record *models.AttendanceRecord) error {
	if record == nil || record.EventID == 0 || record.MemberID == 0 {
		return errors.New("geçersiz yoklama verisi (EventID veya MemberID eksik)")
	}
	return getDB(ctx, r.db).
		Where(models.AttendanceRecord{EventID: record.EventID, MemberID: record.MemberID}).
		Assign(models.AttendanceRecord{
			OrganizationID: record.OrganizationID,
			CheckedInAt:    record.CheckedInAt,
			Notes:          record.Notes,
		}).
		FirstOrCreate(record).Error
}

func (r *AttendanceRepository) FindByEventID(ctx context.Context, eventID uint) ([]models.AttendanceRecord, error) {
	if eventID == 0 {
		return nil, errors.New("geçersiz etkinlik ID")
	}
	var records []models.AttendanceRecord
	err := getDB(ctx, r.db).
		Where("event_id = ?", eventID).
		Preload("Member").
		Order("checked_in_at asc").
		Find(&records).Error
	if err != nil {
		configslog.Log.Error("AttendanceRepository.FindByEventID: DB hatası",
			zap.Uint("eventID", eventID), zap.Error(err))
		return nil, err
	}
	return records, nil
}

func (r *AttendanceRepository) CountByEventID(ctx context.Context, eventID uint) (int64, error) {
	var count int64
	err := getDB(ctx, r.db).Model(&models.AttendanceRecord{}).
		Where("event_id = ?", eventID).
		Count(&count).Error
	return count, err
}

func (r *AttendanceRepository) CountByOrganization(ctx context.Context, organizationID uint) (int64, error) {
	var count int64
	err := getDB(ctx, r.db).Model(&models.AttendanceRecord{}).
		Where("organization_id = ?", organizationID).
		Count(&count).Error
	return count, err
}

func (r *AttendanceRepository) Delete(ctx context.Context, record *models.AttendanceRecord, deletedByUserID uint) error {
	if record == nil || record.ID == 0 {
		return errors.New("silinecek yoklama kaydı geçerli değil")
	}
	err := softDelete(getDB(ctx, r.db), &models.AttendanceRecord{}, record.ID, deletedByUserID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}

var _ IAttendanceRepository = (*AttendanceRepository)(nil)
