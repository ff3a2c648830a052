package handlers

import (
	"github.com/a-h/templ"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/FACorreiaa/go-trip-planner/internal/app/models"
	"github.com/FACorreiaa/go-trip-planner/internal/app/views"
)

type BaseHandler struct {
	Logger *zap.Logger
}

func NewBaseHandler(logger *zap.Logger) *BaseHandler {
	return &BaseHandler{Logger: logger}
}

func isHTMX(c *gin.Context) bool {
	return c.GetHeader("HX-Request") == "true"
}

func (h *BaseHandler) Render(c *gin.Context, status int, component templ.Component) {
	c.Status(status)
	c.Header("Content-Type", "text/html; charset=utf-8")
	if err := component.Render(c.Request.Context(), c.Writer); err != nil {
		h.Logger.Error("Failed to render component", zap.Error(err), zap.String("path", c.FullPath()))
	}
}

// RenderPage renders just the content for htmx requests and the full document
// otherwise.
func (h *BaseHandler) RenderPage(c *gin.Context, status int, title string, content templ.Component) {
	if isHTMX(c) {
		h.Render(c, status, content)
		return
	}
	h.Render(c, status, views.Layout(models.Layout{Title: title, Content: content}))
}
