package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/ByLCY/tm2label/layout"
)

// GetTapes returns the known tape profiles.
func (h *Handler) GetTapes(c *gin.Context) {
	names := layout.TapeNames()
	tapes := make([]layout.TapeProfile, 0, len(names))
	for _, name := range names {
		tape, err := layout.LookupTape(name)
		if err != nil {
			h.abort(c, err)
			return
		}
		tapes = append(tapes, tape)
	}
	c.JSON(http.StatusOK, tapes)
}

// PreviewText returns the body text the label would carry.
func (h *Handler) PreviewText(c *gin.Context) {
	req, ok := h.bindLabel(c)
	if !ok {
		return
	}
	body, err := req.Body(req.data())
	if err != nil {
		h.abort(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"text": body})
}

// CreateLabel builds the label and returns it as a .tm2 download.
func (h *Handler) CreateLabel(c *gin.Context) {
	req, ok := h.bindLabel(c)
	if !ok {
		return
	}
	coll, err := req.Build(h.Builder, req.data())
	if err != nil {
		h.abort(c, err)
		return
	}
	data, err := layout.Marshal(coll)
	if err != nil {
		h.abort(c, err)
		return
	}

	name := layout.FileName(h.Now())
	if req.Name != "" {
		name = layout.SafeName(req.Name)
	}
	h.Log.Debug("label built",
		zap.String("name", name),
		zap.String("tape", req.Tape),
		zap.String("document", coll.Documents[0].Identifier),
	)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	c.Data(http.StatusOK, "application/json", data)
}

// PreviewPDF renders the label with the configured renderer.
func (h *Handler) PreviewPDF(c *gin.Context) {
	if h.Renderer == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "preview renderer is not configured"})
		return
	}
	req, ok := h.bindLabel(c)
	if !ok {
		return
	}
	coll, err := req.Build(h.Builder, req.data())
	if err != nil {
		h.abort(c, err)
		return
	}
	pdf, err := h.Renderer.Render(coll)
	if err != nil {
		h.abort(c, err)
		return
	}
	c.Data(http.StatusOK, "application/pdf", pdf)
}
