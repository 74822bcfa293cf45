package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/barber-payments/internal/middleware"
	"github.com/BruksfildServices01/barber-payments/internal/models"
)

type MeHandler struct {
	db *gorm.DB
}

func NewMeHandler(db *gorm.DB) *MeHandler {
	return &MeHandler{db: db}
}

func (h *MeHandler) GetMe(c *gin.Context) {
	barberIDVal, exists := c.Get(middleware.ContextBarberID)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "barber_not_in_context"})
		return
	}

	barberID, ok := barberIDVal.(uint)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid_barber_id_type"})
		return
	}

	var barber models.Barber
	if err := h.db.Preload("Branch").First(&barber, barberID).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "barber_not_found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"barber": gin.H{
			"id":                   barber.ID,
			"name":                 barber.Name,
			"email":                barber.Email,
			"phone":                barber.Phone,
			"role":                 barber.Role,
			"branch_id":            barber.BranchID,
			"connected_account_id": barber.ConnectedAccountID,
		},
		"branch": gin.H{
			"id":      barber.Branch.ID,
			"name":    barber.Branch.Name,
			"slug":    barber.Branch.Slug,
			"phone":   barber.Branch.Phone,
			"address": barber.Branch.Address,
		},
	})
}
