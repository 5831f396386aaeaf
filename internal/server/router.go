package server

import (
	"net/http"

	"github.com/borbabeats/sistema-comandas/internal/config"
	"github.com/borbabeats/sistema-comandas/internal/handlers"
	"github.com/borbabeats/sistema-comandas/internal/httpx"
	"github.com/borbabeats/sistema-comandas/internal/logger"
	"github.com/borbabeats/sistema-comandas/internal/middleware"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// New constructs the root http.Handler with all routes and middlewares applied.
func New(db *gorm.DB, cfg config.Config) http.Handler {
	mux := http.NewServeMux()

	// --- Health endpoints ---
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, _ *http.Request) {
		httpx.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, _ *http.Request) {
		if err := db.Exec("SELECT 1").Error; err != nil {
			httpx.JSON(w, http.StatusServiceUnavailable, map[string]string{"status": "degraded"})
			return
		}
		httpx.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	// Catalog endpoints: the same CRUD shape three times.
	ph := handlers.NewPlateHandler(db)
	mux.HandleFunc("POST /plates", ph.Create)
	mux.HandleFunc("GET /plates", ph.List)
	mux.HandleFunc("GET /plates/{id}", ph.Get)
	mux.HandleFunc("PATCH /plates/{id}", ph.Update)
	mux.HandleFunc("PUT /plates/{id}", ph.Update)
	mux.HandleFunc("DELETE /plates/{id}", ph.Delete)

	bh := handlers.NewBeverageHandler(db)
	mux.HandleFunc("POST /beverages", bh.Create)
	mux.HandleFunc("GET /beverages", bh.List)
	mux.HandleFunc("GET /beverages/{id}", bh.Get)
	mux.HandleFunc("PATCH /beverages/{id}", bh.Update)
	mux.HandleFunc("PUT /beverages/{id}", bh.Update)
	mux.HandleFunc("DELETE /beverages/{id}", bh.Delete)

	dh := handlers.NewDessertHandler(db)
	mux.HandleFunc("POST /desserts", dh.Create)
	mux.HandleFunc("GET /desserts", dh.List)
	mux.HandleFunc("GET /desserts/{id}", dh.Get)
	mux.HandleFunc("PATCH /desserts/{id}", dh.Update)
	mux.HandleFunc("PUT /desserts/{id}", dh.Update)
	mux.HandleFunc("DELETE /desserts/{id}", dh.Delete)

	// Order endpoints
	oh := handlers.NewOrderHandler(db)
	mux.HandleFunc("POST /orders", oh.Create)
	mux.HandleFunc("GET /orders", oh.List)
	mux.HandleFunc("GET /orders/{id}", oh.Get)
	mux.HandleFunc("PATCH /orders/{id}", oh.Update)
	mux.HandleFunc("PATCH /orders/{id}/status", oh.UpdateStatus)
	mux.HandleFunc("DELETE /orders/{id}", oh.Delete)

	var h http.Handler = mux
	h = withRecover(h)
	h = withCORS(cfg.AllowedOrigins, h)
	h = middleware.Logging(h)
	h = middleware.RateLimit(cfg.RateLimit, cfg.RateBurst)(h)
	h = middleware.RequestID(h)
	return h
}

// withCORS answers preflights and stamps the allow headers for whitelisted
// origins. Requests without an Origin header pass through untouched.
func withCORS(origins []string, next http.Handler) http.Handler {
	allowed := make(map[string]bool, len(origins))
	for _, o := range origins {
		allowed[o] = true
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		if origin != "" && allowed[origin] {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Request-ID")
			w.Header().Set("Access-Control-Allow-Credentials", "true")
		}
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func withRecover(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				logger.Error("panic recovered", zap.Any("panic", rec), zap.String("path", r.URL.Path))
				httpx.JSONError(w, http.StatusInternalServerError, "internal_error", nil)
			}
		}()
		next.ServeHTTP(w, r)
	})
}
