package services

import (
	"context"
	"errors"
	"time"

	"cemaat.app/configs/configslog"
	"cemaat.app/models"
	"cemaat.app/pkg/recurrence"
	"cemaat.app/repositories"

	"go.uber.org/zap"
)

// EnsureHorizon serinin üretilmiş ufkunu kontrol eder ve gerekiyorsa ileri
// doğru genişletir. Yeni oluşturulan instance sayısı döner.
//
// Kural: serinin hiç instance'ı yoksa veya son instance'ın başlangıcı
// now + 3 ay'dan önceyse, çapa = max(son instance başlangıcı, master
// başlangıcı) alınır ve çapadan 6 ay ileriye, 52 kayıt tavanıyla üretim
// yapılır. Çapaya eşit tarih atlanır ki mevcut son instance kopyalanmasın.
//
// Zamanlayıcı yoktur; bu fonksiyon okuma yollarından fırsatçı çağrılır.
// Tazelik trafiğe bağlıdır: kimsenin okumadığı bir serinin ufku uzamaz,
// bu kabul edilmiş bir ödünleşimdir. Aynı seriyi aynı anda genişletmeye
// çalışan iki okuyucu, deterministik anahtarlar + çakışmaya toleranslı
// toplu ekleme sayesinde aynı satırlarda birleşir; kilit gerekmez.
func (s *EventService) EnsureHorizon(ctx context.Context, organizationID uint, seriesKey string, now time.Time) (int, error) {
	if organizationID == 0 {
		return 0, ErrEventOrganizationRequired
	}

	master, err := s.repo.FindByKey(ctx, organizationID, seriesKey)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return 0, ErrEventNotFound
		}
		return 0, err
	}
	if !master.IsMaster || !master.IsRecurring() {
		return 0, ErrEventNotASeries
	}

	instances, err := s.repo.FindInstancesBySeries(ctx, organizationID, seriesKey)
	if err != nil {
		return 0, err
	}

	lookahead := now.AddDate(0, recurrence.DefaultLookaheadMonths, 0)
	if len(instances) > 0 {
		latest := instances[len(instances)-1].StartTime
		if !latest.Before(lookahead) {
			return 0, nil // Ufuk yeterince dolu.
		}
	}

	anchor := master.StartTime
	if len(instances) > 0 {
		if latest := instances[len(instances)-1].StartTime; latest.After(anchor) {
			anchor = latest
		}
	}

	series := master.RecurrenceSeries()
	series.Start = anchor
	series.End = anchor.Add(master.Duration())
	windowEnd := anchor.AddDate(0, recurrence.DefaultWindowMonths, 0)

	occurrences, truncated := recurrence.GenerateOccurrences(series, windowEnd, recurrence.DefaultMaxInstances)
	if truncated {
		configslog.Log.Warn("Ufuk genişletme emniyet tavanında kesildi",
			zap.String("seriesKey", seriesKey),
			zap.Int("tavan", recurrence.DefaultMaxInstances))
	}

	fresh := make([]recurrence.Occurrence, 0, len(occurrences))
	for _, occ := range occurrences {
		if len(instances) > 0 && occ.Start.Equal(anchor) {
			continue // Mevcut son instance'ın birebir kopyası.
		}
		fresh = append(fresh, occ)
	}
	if len(fresh) == 0 {
		return 0, nil
	}

	created, err := s.repo.BulkInsertInstances(models.ContextWithUserID(ctx, 0), buildInstances(*master, fresh))
	if err != nil {
		return 0, err
	}
	if created > 0 {
		configslog.SLog.Infof("Seri ufku genişletildi: %s (+%d instance)", seriesKey, created)
	}
	return int(created), nil
}
