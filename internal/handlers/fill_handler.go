package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/formpilot/autofill-backend/internal/dtos"
	"github.com/formpilot/autofill-backend/internal/services"
)

type FillHandler struct {
	Autofill *services.AutofillService
}

func NewFillHandler(autofill *services.AutofillService) *FillHandler {
	return &FillHandler{Autofill: autofill}
}

// Fill is the POST /fill endpoint. The three structured pipeline failures
// come back as 200 with an "error" key; the extension branches on the key,
// not the status code. Store and provider faults are 500.
func (h *FillHandler) Fill(c *gin.Context) {
	var req dtos.FillRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON format: " + err.Error()})
		return
	}

	values, err := h.Autofill.Fill(c.Request.Context(), &req.User, req.Fields, req.Variant)
	if err != nil {
		var parseErr *services.ParseError
		switch {
		case errors.Is(err, services.ErrUserNotFound):
			c.JSON(http.StatusOK, gin.H{"error": "User not found"})
		case errors.Is(err, services.ErrProfileNotFound):
			c.JSON(http.StatusOK, gin.H{"error": "Profile not found"})
		case errors.As(err, &parseErr):
			c.JSON(http.StatusOK, gin.H{
				"error":     "Gemini parse failed",
				"raw":       parseErr.Raw,
				"exception": parseErr.Err.Error(),
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Autofill failed: " + err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"values": values})
}
