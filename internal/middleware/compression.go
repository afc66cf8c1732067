package middleware

import (
	"compress/gzip"
	"io"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
)

// Compression gzips JSON responses. Ranking pages carry dozens of
// sub-score objects, so the payloads compress well.
func Compression() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !strings.Contains(c.GetHeader("Accept-Encoding"), "gzip") {
			c.Next()
			return
		}

		if shouldSkipCompression(c) {
			c.Next()
			return
		}

		gz := gzip.NewWriter(c.Writer)
		defer gz.Close()

		c.Header("Content-Encoding", "gzip")
		c.Header("Vary", "Accept-Encoding")

		c.Writer = &gzipWriter{
			ResponseWriter: c.Writer,
			Writer:         gz,
		}

		c.Next()
	}
}

func shouldSkipCompression(c *gin.Context) bool {
	// Prometheus scrapes and health probes stay uncompressed.
	path := c.Request.URL.Path
	if path == "/metrics" || strings.HasPrefix(path, "/health") {
		return true
	}

	if length := c.GetHeader("Content-Length"); length != "" {
		if size, err := strconv.Atoi(length); err == nil && size < 1024 {
			return true
		}
	}

	return false
}

type gzipWriter struct {
	gin.ResponseWriter
	Writer io.Writer
}

func (g *gzipWriter) Write(data []byte) (int, error) {
	return g.Writer.Write(data)
}

func (g *gzipWriter) WriteString(s string) (int, error) {
	return g.Writer.Write([]byte(s))
}
