package router

import (
	"errors"
	"io"
	"net/http"
	"strings"

	"commander/internal/app"
	"commander/internal/domain"
	"commander/internal/inventory"
	"commander/internal/jamf"
	"commander/internal/logging"
	"commander/internal/matching"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ConsoleHandler 负责导入、匹配、视图与选择相关的 HTTP 请求。
type ConsoleHandler struct {
	svc    *app.Service
	logger *zap.Logger
}

// NewConsoleHandler 构建一个新的 ConsoleHandler。
func NewConsoleHandler(svc *app.Service, logger *zap.Logger) *ConsoleHandler {
	return &ConsoleHandler{svc: svc, logger: logging.OrNop(logger)}
}

// RegisterRoutes 将控制台路由注册到给定的路由组。
func (h *ConsoleHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/inventory/:source", h.handleImport)
	rg.POST("/restore", h.handleRestore)
	rg.POST("/matching/run", h.handleRunMatching)
	rg.GET("/matching/results", h.handleResults)

	rg.GET("/view", h.handleView)
	rg.PUT("/view/mode", h.handleMode)
	rg.PUT("/view/filter", h.handleFilter)

	rg.POST("/selection/toggle", h.handleToggle)
	rg.POST("/selection/group", h.handleToggleGroup)
	rg.DELETE("/selection", h.handleClearSelection)
}

type importRequest struct {
	Content string `json:"content"`
}

func (h *ConsoleHandler) handleImport(c *gin.Context) {
	source, err := inventory.ParseSource(c.Param("source"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	var content string
	if strings.HasPrefix(c.ContentType(), "application/json") {
		var req importRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request payload"})
			return
		}
		content = req.Content
	} else {
		data, err := io.ReadAll(c.Request.Body)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "read body failed"})
			return
		}
		content = string(data)
	}
	res, err := h.svc.Import(c.Request.Context(), source, content)
	if err != nil {
		h.fail(c, "import failed", err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *ConsoleHandler) handleRestore(c *gin.Context) {
	res, err := h.svc.Restore(c.Request.Context())
	if err != nil {
		h.fail(c, "restore failed", err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *ConsoleHandler) handleRunMatching(c *gin.Context) {
	results, err := h.svc.RunMatching(c.Request.Context())
	if err != nil {
		h.fail(c, "matching failed", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": len(results), "results": results})
}

func (h *ConsoleHandler) handleResults(c *gin.Context) {
	results := h.svc.Matcher().Matches()
	c.JSON(http.StatusOK, gin.H{"count": len(results), "results": results})
}

func (h *ConsoleHandler) handleView(c *gin.Context) {
	c.JSON(http.StatusOK, h.svc.View())
}

type modeRequest struct {
	Mode string `json:"mode"`
}

func (h *ConsoleHandler) handleMode(c *gin.Context) {
	var req modeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request payload"})
		return
	}
	mode, err := domain.ParseViewMode(req.Mode)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	h.svc.SetMode(mode)
	c.JSON(http.StatusOK, h.svc.View())
}

func (h *ConsoleHandler) handleFilter(c *gin.Context) {
	var f matching.Filter
	if err := c.ShouldBindJSON(&f); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request payload"})
		return
	}
	h.svc.SetFilter(f)
	c.JSON(http.StatusOK, h.svc.View())
}

type toggleRequest struct {
	ID     string `json:"id"`
	Extend bool   `json:"extend"`
}

func (h *ConsoleHandler) handleToggle(c *gin.Context) {
	var req toggleRequest
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.ID) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "id is required"})
		return
	}
	if err := h.svc.ToggleRange(req.ID, req.Extend); err != nil {
		h.fail(c, "toggle failed", err)
		return
	}
	c.JSON(http.StatusOK, h.svc.View())
}

type groupRequest struct {
	Key string `json:"key"`
}

func (h *ConsoleHandler) handleToggleGroup(c *gin.Context) {
	var req groupRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Key == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "key is required"})
		return
	}
	if err := h.svc.ToggleGroup(req.Key); err != nil {
		h.fail(c, "toggle group failed", err)
		return
	}
	c.JSON(http.StatusOK, h.svc.View())
}

func (h *ConsoleHandler) handleClearSelection(c *gin.Context) {
	h.svc.ClearSelection()
	c.JSON(http.StatusOK, h.svc.View())
}

func (h *ConsoleHandler) fail(c *gin.Context, msg string, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		h.logger.Error(msg, zap.Error(err))
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

func statusFor(err error) int {
	var apiErr *jamf.APIError
	switch {
	case errors.Is(err, matching.ErrInputsMissing), errors.Is(err, app.ErrBusy):
		return http.StatusConflict
	case errors.Is(err, app.ErrNothingSelected):
		return http.StatusBadRequest
	case errors.Is(err, app.ErrUnknownItem), errors.Is(err, jamf.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, jamf.ErrNotAuthenticated):
		return http.StatusUnauthorized
	case errors.As(err, &apiErr):
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}
