package api

import (
	"net/http"
	"time"

	"github.com/samber/lo"
	log "github.com/sirupsen/logrus"
)

func requestLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		log.Debugf("%v %v handled in %v", r.Method, r.URL.Path, time.Since(start))
	})
}

// requireAPIKey checks the X-API-Key header against the configured key
// list. With no keys configured the API is open.
func (s *Server) requireAPIKey(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if len(s.apiKeys) == 0 {
			next.ServeHTTP(w, r)
			return
		}

		key := r.Header.Get("X-API-Key")
		if key == "" || !lo.Contains(s.apiKeys, key) {
			writeError(w, http.StatusUnauthorized, "invalid or missing api key")
			return
		}
		next.ServeHTTP(w, r)
	})
}
