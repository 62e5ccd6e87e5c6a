package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/ByLCY/tm2label/binding"
	"github.com/ByLCY/tm2label/fonts"
	"github.com/ByLCY/tm2label/label"
	"github.com/ByLCY/tm2label/layout"
	"github.com/ByLCY/tm2label/renderer"
)

// Handler represents the API handlers.
type Handler struct {
	Builder     *layout.Builder
	Renderer    renderer.Renderer // nil disables /labels/preview
	Log         *zap.Logger
	DefaultTape string
	Now         func() time.Time
}

// NewHandler creates a new Handler.
func NewHandler(b *layout.Builder, r renderer.Renderer, log *zap.Logger, defaultTape string) *Handler {
	if b == nil {
		b = layout.NewBuilder(nil)
	}
	if log == nil {
		log = zap.NewNop()
	}
	if defaultTape == "" {
		defaultTape = label.DefaultTape
	}
	return &Handler{
		Builder:     b,
		Renderer:    r,
		Log:         log,
		DefaultTape: defaultTape,
		Now:         time.Now,
	}
}

// LabelRequest is the body of every /labels endpoint. Fields left out keep
// the values of label.DefaultSpec.
type LabelRequest struct {
	label.Spec
	Data map[string]any `json:"data,omitempty"`
}

func (h *Handler) bindLabel(c *gin.Context) (LabelRequest, bool) {
	req := LabelRequest{Spec: label.DefaultSpec()}
	req.Tape = h.DefaultTape
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return req, false
	}
	// 显式传入 "tape": "" 时同样使用服务端配置的默认纸带
	req.Spec = req.WithTape(h.DefaultTape)
	return req, true
}

// data returns nil for an absent map so plain text is kept verbatim.
func (r LabelRequest) data() any {
	if r.Data == nil {
		return nil
	}
	return r.Data
}

// abort maps domain errors to HTTP status codes.
func (h *Handler) abort(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, layout.ErrUnknownTapeProfile),
		errors.Is(err, layout.ErrInvalidGeometry),
		errors.Is(err, label.ErrInvalidParam),
		errors.Is(err, binding.ErrUnresolved):
		status = http.StatusBadRequest
	case errors.Is(err, fonts.ErrNotFound):
		status = http.StatusServiceUnavailable
	}
	_ = c.Error(err)
	c.AbortWithStatusJSON(status, gin.H{"error": err.Error()})
}
