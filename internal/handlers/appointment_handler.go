package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/barber-payments/internal/domain/payment"
	"github.com/BruksfildServices01/barber-payments/internal/httperr"
	"github.com/BruksfildServices01/barber-payments/internal/middleware"
	"github.com/BruksfildServices01/barber-payments/internal/models"
	"github.com/BruksfildServices01/barber-payments/internal/provider"
	"github.com/BruksfildServices01/barber-payments/internal/timezone"
	"github.com/BruksfildServices01/barber-payments/internal/validators"
)

// ======================================================
// HANDLER
// ======================================================

// AppointmentHandler é a cola de reserva na frente do pipeline de pagamento:
// cria o agendamento e, quando o cliente paga online, inicia a cobrança no
// provedor e grava o intent id. Todo o resto do ciclo (confirmação, rejeição,
// repasse) acontece via webhook.
type AppointmentHandler struct {
	db      *gorm.DB
	gateway provider.Gateway
}

func NewAppointmentHandler(db *gorm.DB, gateway provider.Gateway) *AppointmentHandler {
	return &AppointmentHandler{
		db:      db,
		gateway: gateway,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateAppointmentRequest struct {
	BarberID uint `json:"barber_id" binding:"required"`

	CustomerName  string `json:"customer_name" binding:"required"`
	CustomerPhone string `json:"customer_phone" binding:"required"`
	CustomerEmail string `json:"customer_email"`

	ServiceIDs []uint `json:"service_ids" binding:"required,min=1"`

	Date string `json:"date" binding:"required"`
	Time string `json:"time" binding:"required"`

	PayOnline bool `json:"pay_online"`
}

// ======================================================
// CREATE (público)
// ======================================================

func (h *AppointmentHandler) Create(c *gin.Context) {
	slug := c.Param("slug")

	var branch models.Branch
	if err := h.db.Where("slug = ?", slug).First(&branch).Error; err != nil {
		httperr.NotFound(c, "branch_not_found", "Barbearia não encontrada.")
		return
	}

	var req CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	if req.PayOnline && h.gateway == nil {
		httperr.ServiceUnavailable(c, "provider_not_configured", "Pagamento online indisponível.")
		return
	}

	if req.CustomerEmail != "" && !validators.IsEmailDomainValid(req.CustomerEmail) {
		httperr.BadRequest(c, "invalid_email_domain", "O domínio do e-mail informado não parece ser válido.")
		return
	}

	var barber models.Barber
	if err := h.db.
		Where("id = ? AND branch_id = ?", req.BarberID, branch.ID).
		First(&barber).Error; err != nil {
		httperr.BadRequest(c, "barber_not_found", "Barbeiro não encontrado.")
		return
	}

	var services []models.Service
	if err := h.db.
		Where("id IN ? AND branch_id = ? AND active = ?", req.ServiceIDs, branch.ID, true).
		Find(&services).Error; err != nil || len(services) != len(req.ServiceIDs) {
		httperr.BadRequest(c, "service_not_found", "Serviço não encontrado.")
		return
	}

	start, err := time.ParseInLocation(
		"2006-01-02 15:04",
		req.Date+" "+req.Time,
		timezone.Location(branch.Timezone),
	)
	if err != nil {
		httperr.BadRequest(c, "invalid_date_or_time", "Data ou hora inválida.")
		return
	}

	// Snapshot dos serviços na ordem pedida + totais
	byID := make(map[uint]models.Service, len(services))
	for _, s := range services {
		byID[s.ID] = s
	}

	var (
		snapshots   []models.AppointmentService
		totalPrice  float64
		durationMin int
	)
	for i, id := range req.ServiceIDs {
		s := byID[id]
		snapshots = append(snapshots, models.AppointmentService{
			ServiceID:   s.ID,
			Position:    i,
			Name:        s.Name,
			Price:       s.Price,
			DurationMin: s.DurationMin,
		})
		totalPrice += s.Price
		durationMin += s.DurationMin
	}

	ap := models.Appointment{
		BookingCode: uuid.NewString(),

		BranchID: branch.ID,
		BarberID: barber.ID,

		CustomerName:  req.CustomerName,
		CustomerPhone: req.CustomerPhone,
		CustomerEmail: req.CustomerEmail,

		StartTime: start,
		EndTime:   start.Add(time.Duration(durationMin) * time.Minute),

		Services:         snapshots,
		TotalPrice:       totalPrice,
		TotalAmountCents: int64(totalPrice * 100),

		Status:        string(domain.AppointmentPending),
		PaymentStatus: string(domain.PaymentStatusPending),
		PayOnline:     req.PayOnline,
	}

	if err := h.db.Create(&ap).Error; err != nil {
		httperr.Internal(c, "create_appointment_failed", "Erro ao criar agendamento.")
		return
	}

	clientSecret := ""

	// intent id só é gravado quando pay_online=true e a cobrança foi de fato
	// iniciada no provedor
	if req.PayOnline {
		pi, err := h.gateway.CreatePaymentIntent(c.Request.Context(), provider.IntentInput{
			AmountCents:  ap.TotalAmountCents,
			Currency:     "brl",
			ReceiptEmail: req.CustomerEmail,
			Description:  "Agendamento " + ap.BookingCode,
			Metadata: map[string]string{
				"appointment_id": uintToStr(ap.ID),
				"booking_code":   ap.BookingCode,
			},
		})
		if err != nil {
			httperr.Internal(c, "create_intent_failed", "Erro ao iniciar pagamento.")
			return
		}

		ap.PaymentIntentID = &pi.ID
		if err := h.db.Omit("Services").Save(&ap).Error; err != nil {
			httperr.Internal(c, "save_intent_failed", "Erro ao salvar pagamento.")
			return
		}
		clientSecret = pi.ClientSecret
	}

	c.JSON(http.StatusCreated, gin.H{
		"appointment_id": ap.ID,
		"booking_code":   ap.BookingCode,
		"total_price":    ap.TotalPrice,
		"status":         ap.Status,
		"payment_status": ap.PaymentStatus,
		"client_secret":  clientSecret,
	})
}

// ======================================================
// LIST (equipe)
// ======================================================

func (h *AppointmentHandler) ListByDate(c *gin.Context) {
	barberID := c.MustGet(middleware.ContextBarberID).(uint)

	dateStr := c.Query("date")
	if dateStr == "" {
		dateStr = timezone.Now().Format("2006-01-02")
	}

	day, err := time.ParseInLocation("2006-01-02", dateStr, timezone.Location(""))
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "Data inválida.")
		return
	}

	var appointments []models.Appointment
	if err := h.db.
		Preload("Services").
		Where(
			"barber_id = ? AND start_time >= ? AND start_time < ?",
			barberID,
			day,
			day.AddDate(0, 0, 1),
		).
		Order("start_time ASC").
		Find(&appointments).Error; err != nil {
		httperr.Internal(c, "list_appointments_failed", "Erro ao listar agendamentos.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data":  appointments,
		"total": len(appointments),
	})
}
