package handlers

import (
	"context"
	"net/http"
	"time"

	"newsadmin/internal/logger"
	helpers "newsadmin/internal/utils/helpres"

	"go.uber.org/zap"
)

type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthHandler struct {
	db Pinger
}

func NewHealthHandler(db Pinger) *HealthHandler {
	return &HealthHandler{db: db}
}

// Healthz godoc
// @Summary Проверка живости (пинг БД)
// @Tags system
// @Produce json
// @Success 200 {string} string "ok"
// @Failure 503 {string} string "БД недоступна"
// @Router /healthz [get]
func (h *HealthHandler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := h.db.Ping(ctx); err != nil {
		logger.WithCtx(r.Context()).Error("healthz: БД недоступна", zap.Error(err))
		helpers.Error(w, http.StatusServiceUnavailable, "БД недоступна")
		return
	}
	helpers.JSON(w, http.StatusOK, "ok")
}
