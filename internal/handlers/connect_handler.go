package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/barber-payments/internal/httperr"
	"github.com/BruksfildServices01/barber-payments/internal/middleware"
	"github.com/BruksfildServices01/barber-payments/internal/models"
	"github.com/BruksfildServices01/barber-payments/internal/provider"
)

// ======================================================
// HANDLER
// ======================================================

// ConnectHandler cuida do onboarding do barbeiro na conta conectada do
// provedor. Os flags de prontidão vêm sempre de consulta ao vivo.
type ConnectHandler struct {
	db      *gorm.DB
	gateway provider.Gateway
}

func NewConnectHandler(db *gorm.DB, gateway provider.Gateway) *ConnectHandler {
	return &ConnectHandler{
		db:      db,
		gateway: gateway,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type OnboardingLinkRequest struct {
	RefreshURL string `json:"refresh_url" binding:"required,url"`
	ReturnURL  string `json:"return_url" binding:"required,url"`
}

// ======================================================
// HANDLERS
// ======================================================

func (h *ConnectHandler) CreateAccount(c *gin.Context) {
	if h.gateway == nil {
		httperr.ServiceUnavailable(c, "provider_not_configured", "Provedor de pagamento não configurado.")
		return
	}

	barberID := c.MustGet(middleware.ContextBarberID).(uint)

	var barber models.Barber
	if err := h.db.First(&barber, barberID).Error; err != nil {
		httperr.NotFound(c, "barber_not_found", "Barbeiro não encontrado.")
		return
	}

	if barber.HasConnectedAccount() {
		httperr.BadRequest(c, "account_already_exists", "Conta conectada já existe.")
		return
	}

	acct, err := h.gateway.CreateAccount(c.Request.Context(), barber.Email)
	if err != nil {
		httperr.Internal(c, "create_account_failed", "Erro ao criar conta conectada.")
		return
	}

	barber.ConnectedAccountID = acct.ID
	if err := h.db.Save(&barber).Error; err != nil {
		httperr.Internal(c, "save_account_failed", "Erro ao salvar conta conectada.")
		return
	}

	c.JSON(http.StatusCreated, gin.H{"connected_account_id": acct.ID})
}

func (h *ConnectHandler) OnboardingLink(c *gin.Context) {
	if h.gateway == nil {
		httperr.ServiceUnavailable(c, "provider_not_configured", "Provedor de pagamento não configurado.")
		return
	}

	barberID := c.MustGet(middleware.ContextBarberID).(uint)

	var req OnboardingLinkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	var barber models.Barber
	if err := h.db.First(&barber, barberID).Error; err != nil {
		httperr.NotFound(c, "barber_not_found", "Barbeiro não encontrado.")
		return
	}

	if !barber.HasConnectedAccount() {
		httperr.BadRequest(c, "no_connected_account", "Crie a conta conectada antes do onboarding.")
		return
	}

	url, err := h.gateway.CreateOnboardingLink(
		c.Request.Context(),
		barber.ConnectedAccountID,
		req.RefreshURL,
		req.ReturnURL,
	)
	if err != nil {
		httperr.Internal(c, "onboarding_link_failed", "Erro ao gerar link de onboarding.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"url": url})
}

func (h *ConnectHandler) Status(c *gin.Context) {
	if h.gateway == nil {
		httperr.ServiceUnavailable(c, "provider_not_configured", "Provedor de pagamento não configurado.")
		return
	}

	barberID := c.MustGet(middleware.ContextBarberID).(uint)

	var barber models.Barber
	if err := h.db.First(&barber, barberID).Error; err != nil {
		httperr.NotFound(c, "barber_not_found", "Barbeiro não encontrado.")
		return
	}

	if !barber.HasConnectedAccount() {
		c.JSON(http.StatusOK, gin.H{
			"onboarded": false,
			"ready":     false,
		})
		return
	}

	acct, err := h.gateway.RetrieveAccount(c.Request.Context(), barber.ConnectedAccountID)
	if err != nil {
		httperr.Internal(c, "account_status_failed", "Erro ao consultar conta conectada.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"onboarded":         true,
		"ready":             acct.Ready(),
		"charges_enabled":   acct.ChargesEnabled,
		"payouts_enabled":   acct.PayoutsEnabled,
		"details_submitted": acct.DetailsSubmitted,
	})
}
