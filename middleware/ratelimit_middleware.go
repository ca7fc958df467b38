package middleware

import (
	"log"
	"net"
	"net/http"

	"petconnect_server_go/cache"
)

// RateLimit ограничивает частоту запросов по IP клиента.
// Применяется к маршрутам входа и регистрации.
func RateLimit(limiter *cache.Limiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if limiter != nil {
				ip := clientIP(r)
				if !limiter.Allow(r.Context(), ip) {
					log.Printf("RateLimit: превышен лимит запросов для %s на %s %s", ip, r.Method, r.URL.Path)
					http.Error(w, "Слишком много запросов, попробуйте позже", http.StatusTooManyRequests)
					return
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}

func clientIP(r *http.Request) string {
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		return forwarded
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
