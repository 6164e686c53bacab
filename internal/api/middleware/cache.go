package middleware

import (
	"bytes"
	"crypto/sha1"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/redis/go-redis/v9"
)

// Logger интерфейс для логирования
type Logger interface {
	Warn(format string, v ...interface{})
}

// captureWriter перехватывает тело и статус ответа, пробрасывая их клиенту
type captureWriter struct {
	http.ResponseWriter
	status int
	buf    bytes.Buffer
}

func (w *captureWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

func (w *captureWriter) Write(b []byte) (int, error) {
	w.buf.Write(b)
	return w.ResponseWriter.Write(b)
}

// cacheKey строит стабильный ключ из пути и query строки запроса
func cacheKey(prefix string, r *http.Request) string {
	sum := sha1.Sum([]byte(r.URL.Path + "?" + r.URL.RawQuery))
	return fmt.Sprintf("%s:%x", prefix, sum[:])
}

// ResponseCache кэширует успешные GET ответы в Redis.
// Вешается только на публичные роуты каталога: их ответы одинаковы для всех
// пользователей. Ошибки Redis деградируют в прямой вызов обработчика.
func ResponseCache(rdb *redis.Client, prefix string, ttl time.Duration, logger Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodGet {
				next.ServeHTTP(w, r)
				return
			}

			key := cacheKey(prefix, r)

			if body, err := rdb.Get(r.Context(), key).Bytes(); err == nil && len(body) > 0 {
				w.Header().Set("Content-Type", "application/json")
				w.Header().Set("X-Cache", "HIT")
				w.WriteHeader(http.StatusOK)
				_, _ = w.Write(body)
				return
			}

			cw := &captureWriter{ResponseWriter: w, status: http.StatusOK}
			cw.Header().Set("X-Cache", "MISS")
			next.ServeHTTP(cw, r)

			// Кэшируем только успешные ответы
			if cw.status == http.StatusOK && cw.buf.Len() > 0 {
				if err := rdb.SetEx(r.Context(), key, cw.buf.Bytes(), ttl).Err(); err != nil {
					logger.Warn("ResponseCache: failed to store %s: %v", key, err)
				}
			}
		})
	}
}
