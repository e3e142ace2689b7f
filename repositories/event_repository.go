package repositories

import (
	"context"
	"errors"
	"time"

	"cemaat.app/configs"
	"cemaat.app/configs/configslog"
	"cemaat.app/models"
	"cemaat.app/pkg/queryparams"
	"cemaat.app/pkg/turkishsearch"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// IEventRepository etkinlik tablosu işlemleri için arayüz.
// Tekil etkinlikler, seri master'ları ve instance'lar aynı tabloda tutulur;
// seri işlemleri series_key üzerinden yürür.
type IEventRepository interface {
	Create(ctx context.Context, event *models.Event) error
	BulkInsertInstances(ctx context.Context, instances []models.Event) (int64, error)
	FindByKey(ctx context.Context, organizationID uint, key string) (*models.Event, error)
	FindMasterByTitle(ctx context.Context, organizationID uint, title string) (*models.Event, error)
	FindStandalone(ctx context.Context, organizationID uint, title string, start time.Time) (*models.Event, error)
	FindInstancesBySeries(ctx context.Context, organizationID uint, seriesKey string) ([]models.Event, error)
	FindRecurringMasters(ctx context.Context, organizationID uint) ([]models.Event, error)
	FindRowsInRange(ctx context.Context, organizationID uint, from, to time.Time) ([]models.Event, error)
	FindAllByOrganization(ctx context.Context, organizationID uint) ([]models.Event, error)
	FindAllPaginated(ctx context.Context, organizationID uint, params queryparams.ListParams) ([]models.Event, int64, error)
	Update(ctx context.Context, event *models.Event) error
	UpdateInstanceDisplayFields(ctx context.Context, seriesKey string, patch map[string]interface{}) error
	Delete(ctx context.Context, event *models.Event, deletedByUserID uint) error
	DeleteSeriesInstances(ctx context.Context, seriesKey string, deletedByUserID uint) error
	CountByOrganization(ctx context.Context, organizationID uint) (int64, error)
}

// EventRepository IEventRepository arayüzünü uygular.
type EventRepository struct {
	db *gorm.DB
}

// NewEventRepository yeni bir EventRepository örneği oluşturur.
func NewEventRepository() IEventRepository {
	return &EventRepository{db: configs.GetDB()}
}

// NewEventRepositoryTx transaction'a bağlı repository oluşturur.
func NewEventRepositoryTx(tx *gorm.DB) IEventRepository {
	return &EventRepository{db: tx}
}

// Create tek bir etkinlik satırı (tekil, master veya instance) ekler.
func (r *EventRepository) Create(ctx context.Context, event *models.Event) error {
	if event == nil || event.EventKey == "" || event.OrganizationID == 0 {
		return errors.New("geçersiz etkinlik kaydı (anahtar veya organizasyon eksik)")
	}
	return getDB(ctx, r.db).Create(event).Error
}

// BulkInsertInstances instance satırlarını toplu ekler. event_key üzerindeki
// unique index ile çakışan satırlar sessizce atlanır; böylece aynı ufku aynı
// anda genişletmeye çalışan iki okuyucu aynı satırlarda birleşir, hata veya
// kopya üretmez. Gerçekten eklenen satır sayısı döner.
func (r *EventRepository) BulkInsertInstances(ctx context.Context, instances []models.Event) (int64, error) {
	if len(instances) == 0 {
		return 0, nil
	}
	result := getDB(ctx, r.db).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "event_key"}},
			DoNothing: true,
		}).
		Create(&instances)
	if result.Error != nil {
		configslog.Log.Error("EventRepository.BulkInsertInstances: DB hatası",
			zap.Int("adet", len(instances)), zap.Error(result.Error))
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

// FindByKey event_key ile satırı bulur.
func (r *EventRepository) FindByKey(ctx context.Context, organizationID uint, key string) (*models.Event, error) {
	if key == "" {
		return nil, ErrNotFound
	}
	var event models.Event
	err := getDB(ctx, r.db).
		Where("organization_id = ? AND event_key = ?", organizationID, key).
		First(&event).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		configslog.Log.Error("EventRepository.FindByKey: DB hatası", zap.String("key", key), zap.Error(err))
		return nil, err
	}
	return &event, nil
}

// FindMasterByTitle (başlık, organizasyon, is_master) ile master satırı bulur.
// Anahtar çözümlemesi başarısız olduğunda kullanılan geri dönüş yoludur;
// aynı başlığı taşıyan iki seri bu yolda çakışır (bilinen kısıt).
func (r *EventRepository) FindMasterByTitle(ctx context.Context, organizationID uint, title string) (*models.Event, error) {
	if title == "" {
		return nil, ErrNotFound
	}
	var event models.Event
	err := getDB(ctx, r.db).
		Where("organization_id = ? AND title = ? AND is_master = ?", organizationID, title, true).
		First(&event).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		configslog.Log.Error("EventRepository.FindMasterByTitle: DB hatası", zap.String("title", title), zap.Error(err))
		return nil, err
	}
	return &event, nil
}

// FindStandalone tekrar etmeyen bir etkinliği (başlık, başlangıç, organizasyon)
// ile arar. Tekrarlanan create isteklerinde kopya oluşumunu engeller.
func (r *EventRepository) FindStandalone(ctx context.Context, organizationID uint, title string, start time.Time) (*models.Event, error) {
	var event models.Event
	err := getDB(ctx, r.db).
		Where("organization_id = ? AND title = ? AND start_time = ? AND is_master = ? AND series_key = ''",
			organizationID, title, start, false).
		First(&event).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &event, nil
}

// FindInstancesBySeries serinin instance satırlarını başlangıca göre artan
// sırada döndürür (master hariç).
func (r *EventRepository) FindInstancesBySeries(ctx context.Context, organizationID uint, seriesKey string) ([]models.Event, error) {
	if seriesKey == "" {
		return nil, errors.New("geçersiz seri anahtarı")
	}
	var instances []models.Event
	err := getDB(ctx, r.db).
		Where("organization_id = ? AND series_key = ? AND is_master = ?", organizationID, seriesKey, false).
		Order("start_time asc").
		Find(&instances).Error
	if err != nil {
		configslog.Log.Error("EventRepository.FindInstancesBySeries: DB hatası",
			zap.String("seriesKey", seriesKey), zap.Error(err))
		return nil, err
	}
	return instances, nil
}

// FindRecurringMasters organizasyondaki tüm seri master'larını döndürür.
func (r *EventRepository) FindRecurringMasters(ctx context.Context, organizationID uint) ([]models.Event, error) {
	var masters []models.Event
	err := getDB(ctx, r.db).
		Where("organization_id = ? AND is_master = ?", organizationID, true).
		Order("start_time asc").
		Find(&masters).Error
	if err != nil {
		configslog.Log.Error("EventRepository.FindRecurringMasters: DB hatası",
			zap.Uint("organizationID", organizationID), zap.Error(err))
		return nil, err
	}
	return masters, nil
}

// FindRowsInRange [from, to) aralığındaki instance ve tekil satırları döndürür.
// Master satırlar liste görünümlerine girmez; onları projeksiyon temsil eder.
func (r *EventRepository) FindRowsInRange(ctx context.Context, organizationID uint, from, to time.Time) ([]models.Event, error) {
	var rows []models.Event
	err := getDB(ctx, r.db).
		Where("organization_id = ? AND is_master = ? AND start_time >= ? AND start_time < ?",
			organizationID, false, from, to).
		Order("start_time asc").
		Find(&rows).Error
	if err != nil {
		configslog.Log.Error("EventRepository.FindRowsInRange: DB hatası",
			zap.Uint("organizationID", organizationID), zap.Error(err))
		return nil, err
	}
	return rows, nil
}

// FindAllByOrganization organizasyonun tüm etkinlik satırlarını ham haliyle
// döndürür (istatistik sayımları için, projeksiyon uygulanmaz).
func (r *EventRepository) FindAllByOrganization(ctx context.Context, organizationID uint) ([]models.Event, error) {
	var rows []models.Event
	err := getDB(ctx, r.db).
		Where("organization_id = ?", organizationID).
		Order("start_time asc").
		Find(&rows).Error
	if err != nil {
		configslog.Log.Error("EventRepository.FindAllByOrganization: DB hatası",
			zap.Uint("organizationID", organizationID), zap.Error(err))
		return nil, err
	}
	return rows, nil
}

// FindAllPaginated panel liste ekranı için sayfalı sorgu. Yalnızca master ve
// tekil satırlar listelenir; instance'lar seri düzenleme ekranında görünür.
func (r *EventRepository) FindAllPaginated(ctx context.Context, organizationID uint, params queryparams.ListParams) ([]models.Event, int64, error) {
	var events []models.Event
	var totalCount int64

	query := getDB(ctx, r.db).Model(&models.Event{}).
		Where("organization_id = ?", organizationID).
		Where("is_master = ? OR series_key = ''", true)

	if params.Name != "" {
		fragment, args := turkishsearch.SQLFilter("title", params.Name)
		query = query.Where(fragment, args...)
	}

	if err := query.Count(&totalCount).Error; err != nil {
		configslog.Log.Error("EventRepository.FindAllPaginated: sayım hatası", zap.Error(err))
		return nil, 0, err
	}
	if totalCount == 0 {
		return events, 0, nil
	}

	allowedSortColumns := map[string]string{
		"id":         "id",
		"title":      "title",
		"start_time": "start_time",
		"created_at": "created_at",
	}
	orderColumn, ok := allowedSortColumns[params.SortBy]
	if !ok {
		orderColumn = "start_time"
	}

	err := query.
		Order(orderColumn + " " + params.OrderBy).
		Limit(params.PerPage).
		Offset(params.CalculateOffset()).
		Find(&events).Error
	if err != nil {
		configslog.Log.Error("EventRepository.FindAllPaginated: DB hatası", zap.Error(err))
		return nil, totalCount, err
	}
	return events, totalCount, nil
}

// Update satırı Save ile günceller.
func (r *EventRepository) Update(ctx context.Context, event *models.Event) error {
	if event == nil || event.ID == 0 {
		return errors.New("güncellenecek etkinlik geçerli değil")
	}
	return getDB(ctx, r.db).Save(event).Error
}

// UpdateInstanceDisplayFields serinin tüm instance'larına aynı gösterim
// alanlarını uygular. Tekrar tanımlayan alanlar (desen/gün/hafta) buradan
// geçmez; onlar yalnızca master'da değişir.
func (r *EventRepository) UpdateInstanceDisplayFields(ctx context.Context, seriesKey string, patch map[string]interface{}) error {
	if seriesKey == "" {
		return errors.New("geçersiz seri anahtarı")
	}
	if len(patch) == 0 {
		return nil
	}
	return getDB(ctx, r.db).Model(&models.Event{}).
		Where("series_key = ? AND is_master = ?", seriesKey, false).
		Updates(patch).Error
}

// Delete tek satırı soft delete yapar.
func (r *EventRepository) Delete(ctx context.Context, event *models.Event, deletedByUserID uint) error {
	if event == nil || event.ID == 0 {
		return errors.New("silinecek etkinlik geçerli değil")
	}
	err := softDelete(getDB(ctx, r.db), &models.Event{}, event.ID, deletedByUserID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}

// DeleteSeriesInstances serinin tüm instance satırlarını topluca soft delete yapar.
func (r *EventRepository) DeleteSeriesInstances(ctx context.Context, seriesKey string, deletedByUserID uint) error {
	if seriesKey == "" {
		return errors.New("geçersiz seri anahtarı")
	}
	now := time.Now().UTC()
	return getDB(ctx, r.db).Model(&models.Event{}).
		Where("series_key = ? AND is_master = ? AND deleted_at IS NULL", seriesKey, false).
		Updates(map[string]interface{}{"deleted_at": now, "deleted_by": &deletedByUserID}).Error
}

// CountByOrganization organizasyondaki etkinlik satırı sayısı.
func (r *EventRepository) CountByOrganization(ctx context.Context, organizationID uint) (int64, error) {
	var count int64
	err := getDB(ctx, r.db).Model(&models.Event{}).
		Where("organization_id = ?", organizationID).
		Count(&count).Error
	return count, err
}

var _ IEventRepository = (*EventRepository)(nil)
