package handlers

import (
	"context"
	"net/http"
	"time"

	"blogfeed/internal/logger"
	helpers "blogfeed/internal/utils/helpres"

	"go.uber.org/zap"
)

// Pinger: всё, что умеет проверить доступность хранилища (pgxpool.Pool подходит).
type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthHandler struct {
	db Pinger
}

func NewHealthHandler(db Pinger) *HealthHandler {
	return &HealthHandler{db: db}
}

// Healthz
// @Summary      Проверка живости
// @Tags         service
// @Produce      json
// @Success      200  {object}  map[string]string
// @Failure      503  {object}  map[string]string
// @Router       /healthz [get]
func (h *HealthHandler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := h.db.Ping(ctx); err != nil {
		logger.WithCtx(r.Context()).Error("БД недоступна", zap.Error(err))
		helpers.JSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
		return
	}
	helpers.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
