package router

import (
	"net/http"
	"strconv"
	"strings"

	"commander/internal/app"
	"commander/internal/bulk"
	"commander/internal/domain"
	"commander/internal/logging"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RecordHandler 负责部署、记录管理与概览相关的 HTTP 请求。
type RecordHandler struct {
	svc    *app.Service
	logger *zap.Logger
}

// NewRecordHandler 构建一个新的 RecordHandler。
func NewRecordHandler(svc *app.Service, logger *zap.Logger) *RecordHandler {
	return &RecordHandler{svc: svc, logger: logging.OrNop(logger)}
}

// RegisterRoutes 将记录路由注册到给定的路由组。
func (h *RecordHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/deployments", h.handleDeploy)

	rg.GET("/dashboard", h.handleDashboard)
	rg.GET("/policies", h.handlePolicies)
	rg.GET("/profiles", h.handleProfiles)
	rg.GET("/scripts", h.handleScripts)

	rg.POST("/records/:kind/move", h.handleMove)
	rg.POST("/records/:kind/delete", h.handleDelete)

	rg.GET("/categories", h.handleCategories)
	rg.POST("/categories", h.handleCreateCategory)
	rg.PUT("/categories/:id", h.handleUpdateCategory)
	rg.DELETE("/categories/:id", h.handleDeleteCategory)
}

type reportResponse struct {
	bulk.Report
	Status string `json:"status"`
}

func (h *RecordHandler) handleDeploy(c *gin.Context) {
	var opts bulk.DeployOptions
	if err := c.ShouldBindJSON(&opts); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request payload"})
		return
	}
	if err := opts.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	report, err := h.svc.Deploy(c.Request.Context(), opts)
	if err != nil {
		h.fail(c, "deploy failed", err)
		return
	}
	c.JSON(http.StatusOK, reportResponse{Report: report, Status: report.Summary()})
}

func (h *RecordHandler) handleDashboard(c *gin.Context) {
	d, err := h.svc.Dashboard(c.Request.Context())
	if err != nil {
		h.logger.Warn("dashboard partially loaded", zap.Error(err))
		c.JSON(http.StatusOK, gin.H{"counts": d, "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"counts": d})
}

func (h *RecordHandler) handlePolicies(c *gin.Context) {
	policies, err := h.svc.Policies(c.Request.Context())
	if err != nil {
		h.fail(c, "list policies failed", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"policies": policies})
}

func (h *RecordHandler) handleProfiles(c *gin.Context) {
	profiles, err := h.svc.Profiles(c.Request.Context())
	if err != nil {
		h.fail(c, "list profiles failed", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"profiles": profiles})
}

func (h *RecordHandler) handleScripts(c *gin.Context) {
	scripts, err := h.svc.Scripts(c.Request.Context())
	if err != nil {
		h.fail(c, "list scripts failed", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"scripts": scripts})
}

type moveRequest struct {
	IDs        []int `json:"ids"`
	CategoryID int   `json:"category_id"`
}

func (h *RecordHandler) handleMove(c *gin.Context) {
	kind, err := domain.ParseRecordKind(c.Param("kind"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	var req moveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request payload"})
		return
	}
	report, err := h.svc.MoveRecords(c.Request.Context(), kind, req.IDs, req.CategoryID)
	if err != nil {
		h.fail(c, "move failed", err)
		return
	}
	c.JSON(http.StatusOK, reportResponse{Report: report, Status: report.Summary()})
}

type deleteRequest struct {
	IDs []int `json:"ids"`
}

func (h *RecordHandler) handleDelete(c *gin.Context) {
	kind, err := domain.ParseRecordKind(c.Param("kind"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	var req deleteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request payload"})
		return
	}
	report, err := h.svc.DeleteRecords(c.Request.Context(), kind, req.IDs)
	if err != nil {
		h.fail(c, "delete failed", err)
		return
	}
	c.JSON(http.StatusOK, reportResponse{Report: report, Status: report.Summary()})
}

func (h *RecordHandler) handleCategories(c *gin.Context) {
	cats, err := h.svc.Categories(c.Request.Context())
	if err != nil {
		h.fail(c, "list categories failed", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"categories": cats})
}

type categoryRequest struct {
	Name string `json:"name"`
}

func (h *RecordHandler) handleCreateCategory(c *gin.Context) {
	var req categoryRequest
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Name) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name is required"})
		return
	}
	cat, err := h.svc.Client().CreateCategory(c.Request.Context(), strings.TrimSpace(req.Name))
	if err != nil {
		h.fail(c, "create category failed", err)
		return
	}
	c.JSON(http.StatusCreated, cat)
}

func (h *RecordHandler) handleUpdateCategory(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	var req categoryRequest
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Name) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name is required"})
		return
	}
	if err := h.svc.Client().UpdateCategory(c.Request.Context(), id, strings.TrimSpace(req.Name)); err != nil {
		h.fail(c, "update category failed", err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *RecordHandler) handleDeleteCategory(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	if err := h.svc.Client().DeleteCategory(c.Request.Context(), id); err != nil {
		h.fail(c, "delete category failed", err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *RecordHandler) fail(c *gin.Context, msg string, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		h.logger.Error(msg, zap.Error(err))
	}
	c.JSON(status, gin.H{"error": err.Error()})
}
