package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"cemaat.app/configs"
	"cemaat.app/configs/configslog"
	"cemaat.app/models"
	"cemaat.app/pkg/queryparams"
	"cemaat.app/pkg/recurrence"
	"cemaat.app/repositories"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// EventServiceError özel servis hataları
type EventServiceError string

func (e EventServiceError) Error() string { return string(e) }

const (
	ErrEventNotFound             EventServiceError = "etkinlik bulunamadı"
	ErrEventCreationFailed       EventServiceError = "etkinlik oluşturulamadı"
	ErrEventUpdateFailed         EventServiceError = "etkinlik güncellenemedi"
	ErrEventDeletionFailed       EventServiceError = "etkinlik silinemedi"
	ErrEventInvalidInput         EventServiceError = "geçersiz etkinlik verisi"
	ErrEventTitleRequired        EventServiceError = "etkinlik başlığı zorunludur"
	ErrEventTimeRequired         EventServiceError = "etkinlik başlangıç ve bitiş zamanı zorunludur"
	ErrEventOrganizationRequired EventServiceError = "organizasyon kapsamı zorunludur"
	ErrEventPatternInvalid       EventServiceError = "bilinmeyen tekrar deseni"
	ErrEventWeekdayRequired      EventServiceError = "aylık gün deseni için hafta ve gün değerleri zorunludur"
	ErrEventNotASeries           EventServiceError = "kayıt bir tekrar serisi değil"
)

// IEventService etkinlik ve tekrar serisi işlemleri için arayüz.
//
// Tüm çağrılar "şimdi" ve organizasyon kapsamını açık parametre olarak alır;
// hiçbir şey global saat veya oturum durumundan okunmaz.
type IEventService interface {
	CreateEvent(ctx context.Context, organizationID, userID uint, input models.Event, now time.Time) (*models.Event, error)
	GetEventByKey(ctx context.Context, organizationID uint, key string) (*models.Event, error)
	GetEventsPaginated(ctx context.Context, organizationID uint, params queryparams.ListParams) (*queryparams.PaginatedResult, error)
	GetUpcomingEvents(ctx context.Context, organizationID uint, now time.Time) ([]models.Event, error)
	GetAllEventsForStats(ctx context.Context, organizationID uint) ([]models.Event, error)
	UpdateEvent(ctx context.Context, organizationID, userID uint, keyOrTitle string, changes models.Event, now time.Time) (*models.Event, error)
	DeleteEvent(ctx context.Context, organizationID, userID uint, keyOrTitle string) error
	EnsureHorizon(ctx context.Context, organizationID uint, seriesKey string, now time.Time) (int, error)
}

// EventService IEventService arayüzünü uygular.
type EventService struct {
	repo repositories.IEventRepository
	db   *gorm.DB // Transaction için
}

// NewEventService yeni bir EventService örneği oluşturur.
func NewEventService() IEventService {
	return &EventService{
		repo: repositories.NewEventRepository(),
		db:   configs.GetDB(),
	}
}

// NewEventServiceWithDB verilen bağlantıyla servis oluşturur (testler ve
// migration aracı için).
func NewEventServiceWithDB(db *gorm.DB) IEventService {
	return &EventService{
		repo: repositories.NewEventRepositoryTx(db),
		db:   db,
	}
}

// --- Yardımcı Metodlar ---

// ValidateEventInput temel validasyonları yapar. Bilinmeyen tekrar desenleri
// oluşturma anında reddedilir; üretim tarafı (NextOccurrence) eski kayıtlarla
// uyumluluk için bilinmeyen desenlere haftalık davranır.
func ValidateEventInput(organizationID uint, input models.Event) error {
	if organizationID == 0 {
		return ErrEventOrganizationRequired
	}
	if input.Title == "" {
		return ErrEventTitleRequired
	}
	if input.StartTime.IsZero() || input.EndTime.IsZero() {
		return ErrEventTimeRequired
	}
	if !input.EndTime.After(input.StartTime) {
		return fmt.Errorf("%w: bitiş zamanı başlangıçtan sonra olmalı", ErrEventInvalidInput)
	}
	if !input.RecurrencePattern.IsValid() {
		return ErrEventPatternInvalid
	}
	if input.RecurrencePattern == recurrence.PatternMonthlyWeekday {
		if input.RecurrenceWeekday < 0 || input.RecurrenceWeekday > 6 {
			return ErrEventWeekdayRequired
		}
		if input.RecurrenceWeekOrdinal < 1 || input.RecurrenceWeekOrdinal > 5 {
			return ErrEventWeekdayRequired
		}
	}
	return nil
}

// buildInstances üretici çıktısını instance satırlarına çevirir. Gösterim
// alanları üretim anında master'dan kopyalanır; liste ekranları join'siz okur.
func buildInstances(master models.Event, occurrences []recurrence.Occurrence) []models.Event {
	instances := make([]models.Event, 0, len(occurrences))
	for _, occ := range occurrences {
		instances = append(instances, models.Event{
			EventKey:              occ.Key,
			OrganizationID:        master.OrganizationID,
			Title:                 master.Title,
			Description:           master.Description,
			Location:              master.Location,
			StartTime:             occ.Start,
			EndTime:               occ.End,
			RecurrencePattern:     master.RecurrencePattern,
			RecurrenceWeekday:     master.RecurrenceWeekday,
			RecurrenceWeekOrdinal: master.RecurrenceWeekOrdinal,
			IsMaster:              false,
			SeriesKey:             master.SeriesKey,
			RSVPEnabled:           master.RSVPEnabled,
			AttendanceEnabled:     master.AttendanceEnabled,
		})
	}
	return instances
}

// resolveTarget verilen anahtarı master veya tekil satıra çözümler.
// Instance anahtarı gelirse serinin master'ına yönlendirilir. Anahtar hiç
// çözülemezse (başlık, organizasyon, is_master) ile geri dönüş araması yapılır;
// aynı başlığı taşıyan iki seri bu yolda çakışabilir (bilinen kısıt).
func (s *EventService) resolveTarget(ctx context.Context, organizationID uint, keyOrTitle string) (*models.Event, error) {
	event, err := s.repo.FindByKey(ctx, organizationID, keyOrTitle)
	if err == nil {
		if event.IsSeriesInstance() {
			master, masterErr := s.repo.FindByKey(ctx, organizationID, event.SeriesKey)
			if masterErr == nil {
				return master, nil
			}
			if !errors.Is(masterErr, repositories.ErrNotFound) {
				return nil, masterErr
			}
			// Master kayıp (yarım kalmış silme olabilir); başlıkla devam edilir.
		} else {
			return event, nil
		}
	} else if !errors.Is(err, repositories.ErrNotFound) {
		return nil, err
	}

	master, err := s.repo.FindMasterByTitle(ctx, organizationID, keyOrTitle)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, err
	}
	return master, nil
}

// --- Servis Metodları ---

// CreateEvent yeni bir etkinlik oluşturur. Tekrar deseni varsa master satır
// ve ilk üretim penceresinin instance'ları tek transaction içinde yazılır.
// Tekrar etmeyen etkinliklerde (başlık, başlangıç, organizasyon) ile kopya
// kontrolü yapılır; tekrarlanan istek mevcut kaydı döndürür.
func (s *EventService) CreateEvent(ctx context.Context, organizationID, userID uint, input models.Event, now time.Time) (*models.Event, error) {
	if err := ValidateEventInput(organizationID, input); err != nil {
		return nil, err
	}

	if !input.RecurrencePattern.IsRecurring() {
		existing, err := s.repo.FindStandalone(ctx, organizationID, input.Title, input.StartTime)
		if err == nil {
			configslog.SLog.Infof("Tekil etkinlik zaten mevcut, mevcut kayıt döndürülüyor: %s", existing.EventKey)
			return existing, nil
		}
		if !errors.Is(err, repositories.ErrNotFound) {
			return nil, err
		}

		event := input
		event.OrganizationID = organizationID
		event.EventKey = uuid.NewString()
		event.IsMaster = false
		event.SeriesKey = ""
		if err := s.repo.Create(models.ContextWithUserID(ctx, userID), &event); err != nil {
			configslog.Log.Error("Tekil etkinlik oluşturulamadı", zap.Error(err))
			return nil, ErrEventCreationFailed
		}
		configslog.SLog.Infof("Tekil etkinlik oluşturuldu: %s (%s)", event.Title, event.EventKey)
		return &event, nil
	}

	var created *models.Event
	txErr := s.db.Transaction(func(tx *gorm.DB) error {
		txCtx := models.ContextWithUserID(ctx, userID)
		eventRepoTx := repositories.NewEventRepositoryTx(tx)

		master := input
		master.OrganizationID = organizationID
		master.EventKey = uuid.NewString()
		master.IsMaster = true
		master.SeriesKey = master.EventKey

		if err := eventRepoTx.Create(txCtx, &master); err != nil {
			configslog.Log.Error("Seri master satırı oluşturulamadı", zap.Error(err))
			return ErrEventCreationFailed
		}

		windowEnd := master.StartTime.AddDate(0, recurrence.DefaultWindowMonths, 0)
		occurrences, truncated := recurrence.GenerateOccurrences(
			master.RecurrenceSeries(), windowEnd, recurrence.DefaultMaxInstances)
		if truncated {
			// Emniyet tavanı kullanıcıya hata değildir; işletme görünürlüğü için loglanır.
			configslog.Log.Warn("Seri üretimi emniyet tavanında kesildi",
				zap.String("seriesKey", master.SeriesKey),
				zap.Int("tavan", recurrence.DefaultMaxInstances))
		}

		if _, err := eventRepoTx.BulkInsertInstances(txCtx, buildInstances(master, occurrences)); err != nil {
			return ErrEventCreationFailed
		}

		created = &master
		return nil
	})
	if txErr != nil {
		configslog.Log.Error("CreateEvent transaction başarısız", zap.Error(txErr))
		return nil, txErr
	}

	configslog.SLog.Infof("Tekrarlı etkinlik serisi oluşturuldu: %s (%s, desen: %s)",
		created.Title, created.SeriesKey, created.RecurrencePattern)
	return created, nil
}

// GetEventByKey anahtar ile tek satırı getirir.
func (s *EventService) GetEventByKey(ctx context.Context, organizationID uint, key string) (*models.Event, error) {
	event, err := s.repo.FindByKey(ctx, organizationID, key)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, err
	}
	return event, nil
}

// GetEventsPaginated panel liste ekranı için master + tekil satırları getirir.
func (s *EventService) GetEventsPaginated(ctx context.Context, organizationID uint, params queryparams.ListParams) (*queryparams.PaginatedResult, error) {
	if organizationID == 0 {
		return nil, ErrEventOrganizationRequired
	}
	params.Validate()

	events, totalCount, err := s.repo.FindAllPaginated(ctx, organizationID, params)
	if err != nil {
		configslog.Log.Error("Etkinlikler listelenirken hata",
			zap.Uint("organizationID", organizationID), zap.Error(err))
		return nil, err
	}

	return &queryparams.PaginatedResult{
		Data: events,
		Meta: queryparams.PaginationMeta{
			CurrentPage: params.Page, PerPage: params.PerPage,
			TotalItems: totalCount, TotalPages: queryparams.CalculateTotalPages(totalCount, params.PerPage),
		},
	}, nil
}

// GetUpcomingEvents yaklaşan etkinlikler görünümünü üretir: önce dokunulan
// her seri için fırsatçı ufuk bakımı yapılır, sonra aralık sorgusu seri
// başına tek "sıradaki tekrar"a indirgenir. Ufuk bakımındaki bir hata okumayı
// düşürmez; liste eldeki instance'larla çizilir.
func (s *EventService) GetUpcomingEvents(ctx context.Context, organizationID uint, now time.Time) ([]models.Event, error) {
	if organizationID == 0 {
		return nil, ErrEventOrganizationRequired
	}

	masters, err := s.repo.FindRecurringMasters(ctx, organizationID)
	if err != nil {
		return nil, err
	}
	for _, master := range masters {
		if _, hErr := s.EnsureHorizon(ctx, organizationID, master.SeriesKey, now); hErr != nil {
			configslog.Log.Warn("Fırsatçı ufuk bakımı başarısız, okuma devam ediyor",
				zap.String("seriesKey", master.SeriesKey), zap.Error(hErr))
		}
	}

	rows, err := s.repo.FindRowsInRange(ctx, organizationID, now,
		now.AddDate(0, recurrence.DefaultWindowMonths, 0))
	if err != nil {
		return nil, err
	}
	return ProjectNextOccurrences(rows, now), nil
}

// GetAllEventsForStats organizasyonun tüm etkinlik satırlarını projeksiyon
// uygulamadan döndürür (sayım/istatistik için).
func (s *EventService) GetAllEventsForStats(ctx context.Context, organizationID uint) ([]models.Event, error) {
	if organizationID == 0 {
		return nil, ErrEventOrganizationRequired
	}
	return s.repo.FindAllByOrganization(ctx, organizationID)
}

// UpdateEvent hedefi çözümleyip değişiklikleri uygular. Seri düzenlemesinde
// gösterim alanları tüm instance'lara kopyalanır; tekrar tanımlayan alanlar
// yalnızca master'da değişir ve instance'lar yeniden tarihlenmez. Transaction
// içinde master en son yazılır; ACID garantisi olmayan bir depoda yarım kalan
// kademe "master instance'larından ileride" olarak tespit edilebilir kalsın.
func (s *EventService) UpdateEvent(ctx context.Context, organizationID, userID uint, keyOrTitle string, changes models.Event, now time.Time) (*models.Event, error) {
	if organizationID == 0 {
		return nil, ErrEventOrganizationRequired
	}
	if changes.Title == "" {
		return nil, ErrEventTitleRequired
	}

	target, err := s.resolveTarget(ctx, organizationID, keyOrTitle)
	if err != nil {
		return nil, err
	}

	applyDisplayChanges := func(event *models.Event) {
		event.Title = changes.Title
		event.Description = changes.Description
		event.Location = changes.Location
		event.RSVPEnabled = changes.RSVPEnabled
		event.AttendanceEnabled = changes.AttendanceEnabled
	}

	if !target.IsMaster {
		// Tekil etkinlik: satır doğrudan güncellenir.
		applyDisplayChanges(target)
		if !changes.StartTime.IsZero() {
			target.StartTime = changes.StartTime
		}
		if !changes.EndTime.IsZero() {
			target.EndTime = changes.EndTime
		}
		if err := s.repo.Update(models.ContextWithUserID(ctx, userID), target); err != nil {
			configslog.Log.Error("Tekil etkinlik güncellenemedi", zap.String("key", target.EventKey), zap.Error(err))
			return nil, ErrEventUpdateFailed
		}
		return target, nil
	}

	txErr := s.db.Transaction(func(tx *gorm.DB) error {
		txCtx := models.ContextWithUserID(ctx, userID)
		eventRepoTx := repositories.NewEventRepositoryTx(tx)

		// 1. Instance'lara yalnızca gösterim alanları yansıtılır.
		displayPatch := map[string]interface{}{
			"title":              changes.Title,
			"description":        changes.Description,
			"location":           changes.Location,
			"rsvp_enabled":       changes.RSVPEnabled,
			"attendance_enabled": changes.AttendanceEnabled,
		}
		if err := eventRepoTx.UpdateInstanceDisplayFields(txCtx, target.SeriesKey, displayPatch); err != nil {
			configslog.Log.Error("Seri instance'ları güncellenemedi",
				zap.String("seriesKey", target.SeriesKey), zap.Error(err))
			return ErrEventUpdateFailed
		}

		// 2. Master tüm değişiklikleri alır (tekrar tanımı dahil) ve en son yazılır.
		applyDisplayChanges(target)
		if !changes.StartTime.IsZero() {
			target.StartTime = changes.StartTime
		}
		if !changes.EndTime.IsZero() {
			target.EndTime = changes.EndTime
		}
		if changes.RecurrencePattern.IsRecurring() && changes.RecurrencePattern.IsValid() {
			target.RecurrencePattern = changes.RecurrencePattern
			target.RecurrenceWeekday = changes.RecurrenceWeekday
			target.RecurrenceWeekOrdinal = changes.RecurrenceWeekOrdinal
		}
		if err := eventRepoTx.Update(txCtx, target); err != nil {
			configslog.Log.Error("Seri master'ı güncellenemedi", zap.String("seriesKey", target.SeriesKey), zap.Error(err))
			return ErrEventUpdateFailed
		}
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	configslog.SLog.Infof("Etkinlik güncellendi: %s (güncelleyen: %d)", target.EventKey, userID)
	return target, nil
}

// DeleteEvent hedefi çözümleyip siler. Serilerde master önce, instance'lar
// sonra silinir; transaction'sız bir depoda yarım kalan silme "sahipsiz
// instance" olarak görünür ve sonraki çözümlemede başlık yoluyla toparlanır.
// Etkinliğe bağlı yoklama/LCV kayıtlarının temizliği çağıranın sorumluluğudur.
func (s *EventService) DeleteEvent(ctx context.Context, organizationID, userID uint, keyOrTitle string) error {
	if organizationID == 0 {
		return ErrEventOrganizationRequired
	}

	target, err := s.resolveTarget(ctx, organizationID, keyOrTitle)
	if err != nil {
		return err
	}

	if !target.IsMaster {
		if err := s.repo.Delete(models.ContextWithUserID(ctx, userID), target, userID); err != nil {
			if errors.Is(err, repositories.ErrNotFound) {
				return ErrEventNotFound
			}
			configslog.Log.Error("Tekil etkinlik silinemedi", zap.String("key", target.EventKey), zap.Error(err))
			return ErrEventDeletionFailed
		}
		configslog.SLog.Infof("Tekil etkinlik silindi: %s (silen: %d)", target.EventKey, userID)
		return nil
	}

	txErr := s.db.Transaction(func(tx *gorm.DB) error {
		txCtx := models.ContextWithUserID(ctx, userID)
		eventRepoTx := repositories.NewEventRepositoryTx(tx)

		if err := eventRepoTx.Delete(txCtx, target, userID); err != nil {
			if errors.Is(err, repositories.ErrNotFound) {
				return ErrEventNotFound
			}
			return ErrEventDeletionFailed
		}
		if err := eventRepoTx.DeleteSeriesInstances(txCtx, target.SeriesKey, userID); err != nil {
			configslog.Log.Error("Seri instance'ları silinemedi",
				zap.String("seriesKey", target.SeriesKey), zap.Error(err))
			return ErrEventDeletionFailed
		}
		return nil
	})
	if txErr != nil {
		configslog.Log.Error("DeleteEvent transaction başarısız",
			zap.String("seriesKey", target.SeriesKey), zap.Error(txErr))
		return txErr
	}

	configslog.SLog.Infof("Tekrarlı seri silindi: %s (silen: %d)", target.SeriesKey, userID)
	return nil
}

var _ IEventService = (*EventService)(nil)
