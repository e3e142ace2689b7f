package turkishsearch

import (
	"fmt"
	"strings"
)

// Türkçe karakterlerin ASCII karşılıkları. Hem sütun hem arama terimi aynı
// tabloyla katlandığı için "şükrü" araması "SUKRU" kaydını da bulur.
var foldPairs = [...][2]string{
	{"ç", "c"}, {"Ç", "c"},
	{"ğ", "g"}, {"Ğ", "g"},
	{"ı", "i"}, {"I", "i"},
	{"i", "i"}, {"İ", "i"},
	{"ö", "o"}, {"Ö", "o"},
	{"ş", "s"}, {"Ş", "s"},
	{"ü", "u"}, {"Ü", "u"},
}

// Fold terimi küçük harfe çevirip Türkçe karakterleri ASCII'ye katlar.
func Fold(s string) string {
	for _, p := range foldPairs {
		s = strings.ReplaceAll(s, p[0], p[1])
	}
	return strings.ToLower(s)
}

// SQLFilter verilen sütun için Türkçe karakterlere duyarsız LIKE koşulu üretir.
// Dönen fragment WHERE içine, args sorgu argümanlarına eklenir.
func SQLFilter(column, term string) (string, []interface{}) {
	fragment := fmt.Sprintf(
		"lower(translate(%s, 'çÇğĞıİöÖşŞüÜ', 'ccggiioossuu')) LIKE ?", column)
	return fragment, []interface{}{"%" + Fold(term) + "%"}
}
