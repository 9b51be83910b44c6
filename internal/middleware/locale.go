package middleware

import (
	"github.com/gin-gonic/gin"
	"golang.org/x/text/language"

	"github.com/simp-lee/sitecms/internal/domain"
)

const localeContextKey = "locale"

// Locale returns a gin middleware that resolves the response locale of each request.
//
// An explicit ?locale= query parameter wins. Otherwise the primary subtag of
// the most preferred Accept-Language tag is used. Anything outside the
// recognized set falls back to domain.DefaultLocale.
func Locale() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(localeContextKey, negotiateLocale(c.Query("locale"), c.GetHeader("Accept-Language")))
		c.Next()
	}
}

func negotiateLocale(query, acceptLanguage string) domain.Locale {
	if query != "" {
		return domain.ResolveLocale(query)
	}
	if acceptLanguage == "" {
		return domain.DefaultLocale
	}

	tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(tags) == 0 {
		return domain.DefaultLocale
	}
	base, _ := tags[0].Base()
	return domain.ResolveLocale(base.String())
}

// GetLocale returns the locale resolved by the Locale middleware, or the
// default locale when the middleware did not run.
func GetLocale(c *gin.Context) domain.Locale {
	if v, exists := c.Get(localeContextKey); exists {
		if l, ok := v.(domain.Locale); ok {
			return l
		}
	}
	return domain.DefaultLocale
}
