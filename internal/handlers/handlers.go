package handlers

import (
	"net/http"
	"strconv"

	"github.com/borbabeats/sistema-comandas/internal/httpx"
	"github.com/borbabeats/sistema-comandas/internal/logger"
	"go.uber.org/zap"
)

// pathID extracts the {id} segment as a positive integer. Malformed ids are
// reported the same as missing records, so callers answer 404 on !ok.
func pathID(r *http.Request) (uint, bool) {
	raw := r.PathValue("id")
	n, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || n == 0 {
		return 0, false
	}
	return uint(n), true
}

// storeError logs the query failure with full detail and answers with a
// generic body; the caller never sees driver internals.
func storeError(w http.ResponseWriter, code string, err error) {
	logger.Error("store failure", zap.String("code", code), zap.Error(err))
	httpx.JSONError(w, http.StatusInternalServerError, code, nil)
}
