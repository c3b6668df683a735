// internal/middleware/i18n.go
package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
)

// I18nMiddleware resolves the response language from the Accept-Language
// header and stores it in the request context.
func I18nMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		lang := "en"

		header := c.GetHeader("Accept-Language")
		if header != "" {
			// Handle cases like "de,de-DE;q=0.9,en;q=0.8"
			parts := strings.Split(header, ",")
			if len(parts) > 0 {
				first := strings.TrimSpace(strings.Split(parts[0], ";")[0])
				switch {
				case first == "de" || strings.HasPrefix(first, "de-"):
					lang = "de"
				default:
					lang = "en"
				}
			}
		}

		c.Set("lang", lang)
		c.Next()
	}
}
