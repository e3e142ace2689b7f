package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"cemaat.app/configs"
	"cemaat.app/configs/configslog"
	"cemaat.app/models"
	"cemaat.app/repositories"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// AttendanceServiceError özel servis hataları
type AttendanceServiceError string

func (e AttendanceServiceError) Error() string { return string(e) }

const (
	ErrAttendanceInvalidInput    AttendanceServiceError = "geçersiz yoklama verisi"
	ErrAttendanceEventNotFound   AttendanceServiceError = "yoklama için etkinlik bulunamadı"
	ErrAttendanceDisabled        AttendanceServiceError = "bu etkinlikte yoklama kapalı"
	ErrAttendanceCheckInFailed   AttendanceServiceError = "check-in kaydedilemedi"
	ErrRSVPDisabled              AttendanceServiceError = "bu etkinlikte LCV kapalı"
	ErrRSVPSubmitFailed          AttendanceServiceError = "LCV kaydedilemedi"
	ErrRSVPInvalidStatus         AttendanceServiceError = "geçersiz LCV durumu"
	ErrAttendanceMemberRequired  AttendanceServiceError = "üye seçimi zorunludur"
	ErrAttendanceOrgScopeInvalid AttendanceServiceError = "etkinlik bu organizasyona ait değil"
)

// IAttendanceService yoklama/check-in ve LCV işlemleri için arayüz.
type IAttendanceService interface {
	CheckIn(ctx context.Context, organizationID, userID uint, eventKey string, memberID uint, now time.Time) (*models.AttendanceRecord, error)
	GetAttendanceForEvent(ctx context.Context, organizationID uint, eventKey string) ([]models.AttendanceRecord, error)
	GetAttendanceCount(ctx context.Context, organizationID uint) (int64, error)
	SubmitRSVP(ctx context.Context, organizationID, userID uint, eventKey string, memberID uint, status string, guestCount int, now time.Time) (*models.EventRSVP, error)
	GetRSVPsForEvent(ctx context.Context, organizationID uint, eventKey string) ([]models.EventRSVP, error)
}

// AttendanceService IAttendanceService arayüzünü uygular.
type AttendanceService struct {
	repo      repositories.IAttendanceRepository
	rsvpRepo  repositories.IEventRSVPRepository
	eventRepo repositories.IEventRepository
	db        *gorm.DB
}

// NewAttendanceService yeni bir AttendanceService örneği oluşturur.
func NewAttendanceService() IAttendanceService {
	return &AttendanceService{
		repo:      repositories.NewAttendanceRepository(),
		rsvpRepo:  repositories.NewEventRSVPRepository(),
		eventRepo: repositories.NewEventRepository(),
		db:        configs.GetDB(),
	}
}

// NewAttendanceServiceWithDB verilen bağlantıyla servis oluşturur (testler için).
func NewAttendanceServiceWithDB(db *gorm.DB) IAttendanceService {
	return &AttendanceService{
		repo:      repositories.NewAttendanceRepositoryTx(db),
		rsvpRepo:  repositories.NewEventRSVPRepositoryTx(db),
		eventRepo: repositories.NewEventRepositoryTx(db),
		db:        db,
	}
}

// findScopedEvent etkinliği anahtarla bulur ve organizasyon kapsamını doğrular.
func (s *AttendanceService) findScopedEvent(ctx context.Context, organizationID uint, eventKey string) (*models.Event, error) {
	event, err := s.eventRepo.FindByKey(ctx, organizationID, eventKey)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrAttendanceEventNotFound
		}
		return nil, err
	}
	if event.OrganizationID != organizationID {
		return nil, ErrAttendanceOrgScopeInvalid
	}
	return event, nil
}

// CheckIn üyeyi etkinlik satırına işler. Aynı (etkinlik, üye) ikilisi için
// tekrarlanan çağrılar mevcut kaydı günceller, kopya üretmez.
func (s *AttendanceService) CheckIn(ctx context.Context, organizationID, userID uint, eventKey string, memberID uint, now time.Time) (*models.AttendanceRecord, error) {
	if memberID == 0 {
		return nil, ErrAttendanceMemberRequired
	}
	event, err := s.findScopedEvent(ctx, organizationID, eventKey)
	if err != nil {
		return nil, err
	}
	if !event.AttendanceEnabled {
		return nil, ErrAttendanceDisabled
	}

	record := &models.AttendanceRecord{
		OrganizationID: organizationID,
		EventID:        event.ID,
		MemberID:       memberID,
		CheckedInAt:    now,
	}
	if err := s.repo.CreateOrUpdate(models.ContextWithUserID(ctx, userID), record); err != nil {
		configslog.Log.Error("Check-in kaydedilemedi",
			zap.String("eventKey", eventKey), zap.Uint("memberID", memberID), zap.Error(err))
		return nil, ErrAttendanceCheckInFailed
	}
	configslog.SLog.Infof("Check-in: üye %d, etkinlik %s", memberID, eventKey)
	return record, nil
}

func (s *AttendanceService) GetAttendanceForEvent(ctx context.Context, organizationID uint, eventKey string) ([]models.AttendanceRecord, error) {
	event, err := s.findScopedEvent(ctx, organizationID, eventKey)
	if err != nil {
		return nil, err
	}
	return s.repo.FindByEventID(ctx, event.ID)
}

func (s *AttendanceService) GetAttendanceCount(ctx context.Context, organizationID uint) (int64, error) {
	return s.repo.CountByOrganization(ctx, organizationID)
}

// SubmitRSVP üyenin LCV yanıtını kaydeder; etkinlikte RSVPEnabled kapalıysa
// reddedilir.
func (s *AttendanceService) SubmitRSVP(ctx context.Context, organizationID, userID uint, eventKey string, memberID uint, status string, guestCount int, now time.Time) (*models.EventRSVP, error) {
	if memberID == 0 {
		return nil, ErrAttendanceMemberRequired
	}
	switch status {
	case models.RSVPStatusAttending, models.RSVPStatusNotAttending, models.RSVPStatusMaybe:
	default:
		return nil, ErrRSVPInvalidStatus
	}
	if guestCount < 0 {
		return nil, fmt.Errorf("%w: misafir sayısı negatif olamaz", ErrAttendanceInvalidInput)
	}

	event, err := s.findScopedEvent(ctx, organizationID, eventKey)
	if err != nil {
		return nil, err
	}
	if !event.RSVPEnabled {
		return nil, ErrRSVPDisabled
	}

	rsvp := &models.EventRSVP{
		OrganizationID: organizationID,
		EventID:        event.ID,
		MemberID:       memberID,
		Status:         status,
		GuestCount:     guestCount,
		RespondedAt:    &now,
	}
	if err := s.rsvpRepo.CreateOrUpdate(models.ContextWithUserID(ctx, userID), rsvp); err != nil {
		configslog.Log.Error("LCV kaydedilemedi",
			zap.String("eventKey", eventKey), zap.Uint("memberID", memberID), zap.Error(err))
		return nil, ErrRSVPSubmitFailed
	}
	return rsvp, nil
}

func (s *AttendanceService) GetRSVPsForEvent(ctx context.Context, organizationID uint, eventKey string) ([]models.EventRSVP, error) {
	event, err := s.findScopedEvent(ctx, organizationID, eventKey)
	if err != nil {
		return nil, err
	}
	return s.rsvpRepo.FindByEventID(ctx, event.ID)
}

var _ IAttendanceService = (*AttendanceService)(nil)
