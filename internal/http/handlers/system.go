package handlers

import (
	"context"
	"net/http"
	"time"

	"agencylms/internal/config"
	intdb "agencylms/internal/db"

	"github.com/gin-gonic/gin"
)

type HealthResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

type DBCheckResponse struct {
	Message       string   `json:"message"`
	UsersInDB     int      `json:"users_in_db"`
	MissingTables []string `json:"missing_tables,omitempty"`
}

type RouteInfo struct {
	Method  string `json:"method"`
	Path    string `json:"path"`
	Handler string `json:"handler"`
}

func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{Status: "ok", Message: "agency lms backend is running"})
}

func (h *Handler) DBCheck(c *gin.Context) {
	if h.DB == nil {
		respondError(c, http.StatusInternalServerError, "db_unavailable", "database is not connected", nil)
		return
	}
	ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
	defer cancel()
	if err := config.PingDB(ctx, h.DB); err != nil {
		respondError(c, http.StatusInternalServerError, "db_unavailable", "database ping failed", nil)
		return
	}

	var missing []string
	for _, t := range intdb.RequiredTables {
		if !intdb.HasTable(ctx, h.DB, t) {
			missing = append(missing, t)
		}
	}
	var count int
	if len(missing) == 0 {
		if err := h.DB.QueryRowContext(ctx, "SELECT COUNT(*) FROM users").Scan(&count); err != nil {
			respondError(c, http.StatusInternalServerError, "db_query_failed", "database query failed", nil)
			return
		}
	}
	status := http.StatusOK
	msg := "database connection OK"
	if len(missing) > 0 {
		status = http.StatusServiceUnavailable
		msg = "database schema is incomplete"
	}
	c.JSON(status, DBCheckResponse{Message: msg, UsersInDB: count, MissingTables: missing})
}

func (h *Handler) Routes(c *gin.Context) {
	if h.engine == nil {
		respondError(c, http.StatusServiceUnavailable, "not_ready", "router is not ready", nil)
		return
	}
	routes := h.engine.Routes()
	out := make([]RouteInfo, 0, len(routes))
	for _, rt := range routes {
		out = append(out, RouteInfo{Method: rt.Method, Path: rt.Path, Handler: rt.Handler})
	}
	c.JSON(http.StatusOK, gin.H{"routes": out})
}
