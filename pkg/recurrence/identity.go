package recurrence

import "time"

// instanceKeyTimeFormat anahtar son ekindeki UTC zaman damgası biçimi.
const instanceKeyTimeFormat = "20060102T150405Z"

// DeriveInstanceKey bir serinin anahtarı ile tekrar tarihinden deterministik
// instance anahtarı türetir. Aynı seri + aynı tarih her zaman aynı anahtarı
// üretir; events.event_key üzerindeki unique index sayesinde aynı instance'ın
// ikinci kez üretilmesi yeni satır yerine çakışmaya dönüşür.
func DeriveInstanceKey(seriesKey string, occurrenceStart time.Time) string {
	return seriesKey + "-" + occurrenceStart.UTC().Format(instanceKeyTimeFormat)
}
