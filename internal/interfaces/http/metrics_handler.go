package http

import (
	"runtime"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/pricewatch-api/internal/application/dto"
	"github.com/jhoicas/pricewatch-api/pkg/logger"
	"github.com/jhoicas/pricewatch-api/pkg/metrics"
)

// MetricsHandler resumen JSON de memoria, goroutines y peticiones atendidas.
type MetricsHandler struct {
	rec *metrics.Recorder
	log *logger.Logger
	now func() time.Time
}

// NewMetricsHandler construye el handler.
func NewMetricsHandler(rec *metrics.Recorder, log *logger.Logger) *MetricsHandler {
	return &MetricsHandler{rec: rec, log: log, now: time.Now}
}

// Snapshot godoc
// @Summary      Métricas del proceso
// @Description  JSON plano (sin envelope) y sin caché.
// @Tags         ops
// @Produce      json
// @Success      200  {object}  dto.MetricsResponse
// @Router       /api/metrics [get]
func (h *MetricsHandler) Snapshot(c *fiber.Ctx) error {
	snap, err := h.rec.Snapshot()
	if err != nil {
		h.log.Error().Err(err).Msg("leer métricas")
		return InternalError(c)
	}

	var mem runtime.MemStats
	runtime.ReadMemStats(&mem)

	c.Set(fiber.HeaderCacheControl, "no-cache, no-store, must-revalidate")
	return c.JSON(dto.MetricsResponse{
		MemoryHeapUsed:  mem.HeapAlloc,
		MemoryHeapTotal: mem.HeapSys,
		MemorySys:       mem.Sys,
		Goroutines:      runtime.NumGoroutine(),
		UptimeSeconds:   snap.UptimeSeconds,
		GoVersion:       runtime.Version(),
		RequestsTotal:   snap.RequestsTotal,
		Requests2xx:     snap.ByClass["2xx"],
		Requests3xx:     snap.ByClass["3xx"],
		Requests4xx:     snap.ByClass["4xx"],
		Requests5xx:     snap.ByClass["5xx"],
		Timestamp:       h.now().UnixMilli(),
	})
}
