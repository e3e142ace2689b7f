package recurrence

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDeriveInstanceKey(t *testing.T) {
	start := time.Date(2025, 1, 5, 10, 30, 0, 0, time.UTC)
	key := DeriveInstanceKey("abc123", start)
	assert.Equal(t, "abc123-20250105T103000Z", key)
}

func TestDeriveInstanceKeyIsDeterministic(t *testing.T) {
	start := time.Date(2025, 3, 14, 9, 0, 0, 0, time.UTC)
	assert.Equal(t, DeriveInstanceKey("series", start), DeriveInstanceKey("series", start))
}

func TestDeriveInstanceKeyNormalizesToUTC(t *testing.T) {
	loc := time.FixedZone("TRT", 3*60*60)
	local := time.Date(2025, 1, 5, 13, 30, 0, 0, loc) // 10:30 UTC
	utc := time.Date(2025, 1, 5, 10, 30, 0, 0, time.UTC)

	assert.Equal(t, DeriveInstanceKey("s", utc), DeriveInstanceKey("s", local))
}

func TestDeriveInstanceKeyDiffersByStart(t *testing.T) {
	a := time.Date(2025, 1, 5, 10, 30, 0, 0, time.UTC)
	b := a.AddDate(0, 0, 7)
	assert.NotEqual(t, DeriveInstanceKey("s", a), DeriveInstanceKey("s", b))
}
