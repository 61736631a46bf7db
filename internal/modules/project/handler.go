package project

import (
	"errors"
	"io"
	"net/http"

	"github.com/auto-explainer/core/internal/pkg/apperrors"
	"github.com/auto-explainer/core/internal/pkg/pagination"
	"github.com/auto-explainer/core/internal/pkg/response"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler struct {
	svc    *Service
	logger *zap.Logger
}

func NewHandler(svc *Service, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{svc: svc, logger: logger}
}

// RegisterRoutes mounts the ingestion and project routes on rg. ingestMW runs
// only on the /process endpoints.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, ingestMW ...gin.HandlerFunc) {
	p := rg.Group("/process", ingestMW...)
	p.POST("/url", h.processURL)
	p.POST("/upload", h.processUpload)

	g := rg.Group("/projects")
	g.GET("", h.list)
	g.GET("/:id", h.get)
	g.POST("/:id/update_outputs", h.updateOutputs)
	g.POST("/:id/regenerate", h.regenerate)
	g.POST("/:id/export", h.export)
}

func (h *Handler) processURL(c *gin.Context) {
	var req processURLRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	p, err := h.svc.ProcessURL(c.Request.Context(), req.URL, req.Tone, req.Languages)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.OK(c, createdResponse{ID: p.ID, Project: p})
}

func (h *Handler) processUpload(c *gin.Context) {
	fh, err := c.FormFile("file")
	if err != nil {
		response.BadRequest(c, "file is required")
		return
	}
	src, err := fh.Open()
	if err != nil {
		response.BadRequest(c, "cannot read uploaded file")
		return
	}
	defer src.Close()
	payload, err := io.ReadAll(src)
	if err != nil {
		response.BadRequest(c, "cannot read uploaded file")
		return
	}

	p, err := h.svc.ProcessUpload(c.Request.Context(), fh.Filename, payload, c.DefaultPostForm("tone", "premium"))
	if err != nil {
		h.fail(c, err)
		return
	}
	response.OK(c, createdResponse{ID: p.ID, Project: p})
}

func (h *Handler) list(c *gin.Context) {
	limit, err := pagination.LimitFromContext(c, pagination.DefaultLimit)
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	items, err := h.svc.List(c.Request.Context(), limit)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.OK(c, gin.H{"projects": items})
}

func (h *Handler) get(c *gin.Context) {
	p, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	response.OK(c, gin.H{"project": p})
}

func (h *Handler) updateOutputs(c *gin.Context) {
	var req updateOutputsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	if err := h.svc.UpdateOutputs(c.Request.Context(), c.Param("id"), req.Outputs); err != nil {
		h.fail(c, err)
		return
	}
	response.Status(c)
}

func (h *Handler) regenerate(c *gin.Context) {
	var req regenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	if err := h.svc.Regenerate(c.Request.Context(), c.Param("id"), *req.Tone, req.Languages); err != nil {
		h.fail(c, err)
		return
	}
	response.Status(c)
}

func (h *Handler) export(c *gin.Context) {
	var req exportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	exp, err := h.svc.Export(c.Request.Context(), c.Param("id"), req.Format)
	if err != nil {
		h.fail(c, err)
		return
	}
	if exp.Project != nil {
		c.JSON(http.StatusOK, exp.Project)
		return
	}
	response.Attachment(c, exp.Filename, exp.ContentType, exp.Body)
}

func (h *Handler) fail(c *gin.Context, err error) {
	var ce *apperrors.ClientError
	switch {
	case errors.As(err, &ce):
		response.BadRequest(c, ce.Error())
	case errors.Is(err, apperrors.ErrNotFound):
		response.NotFound(c)
	default:
		h.logger.Error("project request failed",
			zap.String("path", c.FullPath()),
			zap.Error(err),
		)
		response.InternalError(c, err)
	}
}
