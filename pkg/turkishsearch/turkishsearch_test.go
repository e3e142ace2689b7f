package turkishsearch

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFold(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Şükrü", "sukru"},
		{"ÇAĞRI", "cagri"},
		{"İstanbul", "istanbul"},
		{"ibadet", "ibadet"},
		{"Gençlik Toplantısı", "genclik toplantisi"},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Fold(tt.in), "girdi: %q", tt.in)
	}
}

func TestSQLFilter(t *testing.T) {
	fragment, args := SQLFilter("title", "Şükran")

	assert.Contains(t, fragment, "translate(title")
	assert.Contains(t, fragment, "LIKE ?")
	assert.Equal(t, []interface{}{"%sukran%"}, args)
}
