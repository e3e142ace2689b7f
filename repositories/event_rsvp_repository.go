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

// IEventRSVPRepository LCV veritabanı işlemleri için arayüz.
type IEventRSVPRepository interface {
	CreateOrUpdate(ctx context.Context, rsvp *models.EventRSVP) error
	FindByEventAndMember(ctx context.Context, eventID, memberID uint) (*models.EventRSVP, error)
	FindByEventID(ctx context.Context, eventID uint) ([]models.EventRSVP, error)
}

// EventRSVPRepository IEventRSVPRepository arayüzünü uygular.
type EventRSVPRepository struct {
	db *gorm.DB
}

// NewEventRSVPRepository yeni bir EventRSVPRepository örneği oluşturur.
func NewEventRSVPRepository() IEventRSVPRepository {
	return &EventRSVPRepository{db: configs.GetDB()}
}

// NewEventRSVPRepositoryTx transaction'a bağlı repository oluşturur.
func NewEventRSVPRepositoryTx(tx *gorm.DB) IEventRSVPRepository {
	return &EventRSVPRepository{db: tx}
}

// CreateOrUpdate aynı (event, member) ikilisi varsa günceller, yoksa oluşturur.
func (r *EventRSVPRepository) CreateOrUpdate(ctx context.Context, rsvp *models.EventRSVP) error {
	if rsvp == nil || rsvp.EventID == 0 || rsvp.MemberID == 0 {
		return errors.New("geçersiz LCV verisi (EventID veya MemberID eksik)")
	}
	return getDB(ctx, r.db).
		Where(models.EventRSVP{EventID: rsvp.EventID, MemberID: rsvp.MemberID}).
		Assign(models.EventRSVP{
			OrganizationID: rsvp.OrganizationID,
			Status:         rsvp.Status,
			GuestCount:     rsvp.GuestCount,
			Notes:          rsvp.Notes,
			RespondedAt:    rsvp.RespondedAt,
		}).
		FirstOrCreate(rsvp).Error
}

func (r *EventRSVPRepository) FindByEventAndMember(ctx context.Context, eventID, memberID uint) (*models.EventRSVP, error) {
	if eventID == 0 || memberID == 0 {
		return nil, ErrNotFound
	}
	var rsvp models.EventRSVP
	err := getDB(ctx, r.db).
		Where("event_id = ? AND member_id = ?", eventID, memberID).
		First(&rsvp).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		configslog.Log.Error("EventRSVPRepository.FindByEventAndMember: DB hatası", zap.Error(err))
		return nil, err
	}
	return &rsvp, nil
}

func (r *EventRSVPRepository) FindByEventID(ctx context.Context, eventID uint) ([]models.EventRSVP, error) {
	if eventID == 0 {
		return nil, errors.New("geçersiz etkinlik ID")
	}
	var rsvps []models.EventRSVP
	err := getDB(ctx, r.db).
		Where("event_id = ?", eventID).
		Preload("Member").
		Order("created_at asc").
		Find(&rsvps).Error
	if err != nil {
		configslog.Log.Error("EventRSVPRepository.FindByEventID: DB hatası",
			zap.Uint("eventID", eventID), zap.Error(err))
		return nil, err
	}
	return rsvps, nil
}

var _ IEventRSVPRepository = (*EventRSVPRepository)(nil)
