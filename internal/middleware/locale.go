package middleware

import (
	"net/http"

	"golang.org/x/text/language"

	"appforge/internal/httputil"
)

var localeMatcher = language.NewMatcher([]language.Tag{
	language.English,
	language.Chinese,
})

// Locale negotiates the response language from Accept-Language. Requests
// without a usable header fall back to English.
func Locale() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tags, _, err := language.ParseAcceptLanguage(r.Header.Get("Accept-Language"))
			lang := "en"
			if err == nil && len(tags) > 0 {
				tag, _, _ := localeMatcher.Match(tags...)
				base, _ := tag.Base()
				lang = base.String()
			}

			next.ServeHTTP(w, httputil.WithLang(r, lang))
		})
	}
}
