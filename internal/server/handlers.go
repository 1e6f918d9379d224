package server

import (
	"net/http"

	"CoinCompare/internal/model"
	"CoinCompare/internal/search"

	"github.com/gin-gonic/gin"
)

type inputRequest struct {
	Text string `json:"text"`
}

type colorRequest struct {
	Color string `json:"color" binding:"required"`
}

// controller resolves the slot path param to its search controller.
func (s *Server) controller(c *gin.Context) (model.Slot, *search.Controller, bool) {
	slot := model.Slot(c.Param("slot"))
	ctrl, ok := s.Controllers[slot]
	if !slot.Valid() || !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown slot"})
		return "", nil, false
	}
	return slot, ctrl, true
}

// Health reports liveness.
func (s *Server) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// SlotInput feeds a raw text change into the slot's debounced controller.
// Fire-and-forget: the candidate list updates asynchronously.
func (s *Server) SlotInput(c *gin.Context) {
	_, ctrl, ok := s.controller(c)
	if !ok {
		return
	}
	var req inputRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	ctrl.OnInput(req.Text)
	c.Status(http.StatusAccepted)
}

// Candidates returns the slot's current candidate list.
func (s *Server) Candidates(c *gin.Context) {
	_, ctrl, ok := s.controller(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{"candidates": ctrl.Candidates()})
}

// Select commits a picked candidate as the slot's selection.
func (s *Server) Select(c *gin.Context) {
	_, ctrl, ok := s.controller(c)
	if !ok {
		return
	}
	var cand model.SearchCandidate
	if err := c.ShouldBindJSON(&cand); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if cand.ID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "candidate id is required"})
		return
	}
	if err := ctrl.Pick(cand); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}

// ClearSelection empties the slot.
func (s *Server) ClearSelection(c *gin.Context) {
	slot, _, ok := s.controller(c)
	if !ok {
		return
	}
	if err := s.Store.Clear(slot); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}

// SetColor updates the slot's line color.
func (s *Server) SetColor(c *gin.Context) {
	slot, _, ok := s.controller(c)
	if !ok {
		return
	}
	var req colorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := s.Store.SetColor(slot, req.Color); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}

// View returns the current comparison view.
func (s *Server) View(c *gin.Context) {
	c.JSON(http.StatusOK, s.Store.View())
}
