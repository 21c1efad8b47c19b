package middleware

import (
	"log"
	"net/http"
	"runtime/debug"

	"forge-backend/pkg/utils"
)

// PanicRecovery turns a handler panic into a 500 response so one bad
// request cannot take the server down
func PanicRecovery(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if v := recover(); v != nil {
				log.Printf("[Recover] %s %s panicked: %v\n%s", r.Method, sanitizePath(r.URL.Path), v, debug.Stack())
				utils.Error(w, http.StatusInternalServerError, "internal server error")
			}
		}()

		next.ServeHTTP(w, r)
	})
}
