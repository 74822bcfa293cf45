package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/barber-payments/internal/httperr"
	"github.com/BruksfildServices01/barber-payments/internal/middleware"
	"github.com/BruksfildServices01/barber-payments/internal/models"
	ucPayment "github.com/BruksfildServices01/barber-payments/internal/usecase/payment"
)

// ======================================================
// HANDLER
// ======================================================

type PaymentHandler struct {
	db    *gorm.DB
	retry *ucPayment.RetryTransfer
}

func NewPaymentHandler(db *gorm.DB, retry *ucPayment.RetryTransfer) *PaymentHandler {
	return &PaymentHandler{
		db:    db,
		retry: retry,
	}
}

// ======================================================
// RETRY TRANSFER (operador)
// ======================================================

func (h *PaymentHandler) RetryTransfer(c *gin.Context) {
	operatorID := c.MustGet(middleware.ContextBarberID).(uint)

	paymentID, err := strconv.ParseUint(c.Param("paymentId"), 10, 32)
	if err != nil {
		httperr.BadRequest(c, "invalid_payment_id", "ID de pagamento inválido.")
		return
	}

	p, err := h.retry.Execute(c.Request.Context(), uint(paymentID), operatorID)
	if err != nil {
		switch {
		case httperr.IsBusiness(err, "payment_not_found"):
			httperr.NotFound(c, "payment_not_found", "Pagamento não encontrado.")
		case httperr.IsBusiness(err, "already_transferred"):
			httperr.BadRequest(c, "already_transferred", "Transferência já concluída.")
		case httperr.IsBusiness(err, "transfer_in_progress"):
			httperr.BadRequest(c, "transfer_in_progress", "Transferência em andamento.")
		case httperr.IsBusiness(err, "no_connected_account"):
			httperr.BadRequest(c, "no_connected_account", "Barbeiro sem conta conectada.")
		case httperr.IsBusiness(err, "barber_not_found"):
			httperr.NotFound(c, "barber_not_found", "Barbeiro não encontrado.")
		default:
			httperr.Internal(c, "retry_failed", "Erro ao retentar transferência.")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":         true,
		"message":         "Retentativa de transferência executada.",
		"transfer_status": p.TransferStatus,
	})
}

// ======================================================
// LIST (visibilidade do ledger para a equipe)
// ======================================================

func (h *PaymentHandler) List(c *gin.Context) {
	barberID := c.MustGet(middleware.ContextBarberID).(uint)

	var payments []models.Payment
	q := h.db.
		Preload("Appointment").
		Where("barber_id = ?", barberID).
		Order("id DESC").
		Limit(100)

	if status := c.Query("transfer_status"); status != "" {
		q = q.Where("transfer_status = ?", status)
	}

	if err := q.Find(&payments).Error; err != nil {
		httperr.Internal(c, "list_payments_failed", "Erro ao listar pagamentos.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data":  payments,
		"total": len(payments),
	})
}
