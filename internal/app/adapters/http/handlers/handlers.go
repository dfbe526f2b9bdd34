package handlers

import (
	"fmt"
	"net/http"
	"runtime"
	"time"
	"twitchrelay/internal/app/infrastructure/config"
	"twitchrelay/internal/app/ports"
	"twitchrelay/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/shirou/gopsutil/cpu"
)

type Handlers struct {
	log     logger.Logger
	manager *config.Manager
	status  ports.StatusSource
	started time.Time
}

func New(log logger.Logger, manager *config.Manager, status ports.StatusSource) *Handlers {
	return &Handlers{
		log:     log,
		manager: manager,
		status:  status,
		started: time.Now(),
	}
}

func (h *Handlers) HealthHandler(c *gin.Context) {
	c.String(http.StatusOK, "ok")
}

func (h *Handlers) StatusHandler(c *gin.Context) {
	cfg := h.manager.Get()

	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	var cpuPercent float64
	if percent, err := cpu.Percent(0, false); err == nil && len(percent) > 0 {
		cpuPercent = percent[0]
	}

	c.JSON(http.StatusOK, gin.H{
		"username":         cfg.App.Username,
		"channels":         cfg.App.Channels,
		"connection_state": h.status.ConnectionState().String(),
		"supervisor_state": h.status.SupervisorState(),
		"uptime":           time.Since(h.started).Truncate(time.Second).String(),
		"cpu_percent":      fmt.Sprintf("%.2f", cpuPercent),
		"memory_sys_mb":    m.Sys / 1024 / 1024,
	})
}
