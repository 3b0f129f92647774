package handlers

import (
	stderrors "errors"
	"log/slog"
	"net/http"
	"strconv"

	"ticketchain/internal/cache"
	"ticketchain/internal/errors"
	"ticketchain/internal/models"
	"ticketchain/internal/service"

	"github.com/gin-gonic/gin"
)

type Handlers struct {
	services    *service.Services
	cacheClient *cache.Client
}

func NewHandlers(services *service.Services, cacheClient *cache.Client) *Handlers {
	return &Handlers{
		services:    services,
		cacheClient: cacheClient,
	}
}

// statusFromError переводит ошибки леджера в HTTP статусы
func statusFromError(err error) int {
	switch {
	case stderrors.Is(err, errors.ErrUnauthorized):
		return http.StatusForbidden
	case stderrors.Is(err, errors.ErrNotFound):
		return http.StatusNotFound
	case stderrors.Is(err, errors.ErrSoldOut):
		return http.StatusConflict
	case stderrors.Is(err, errors.ErrIncorrectPayment):
		return http.StatusPaymentRequired
	case stderrors.Is(err, errors.ErrSeatTaken):
		return http.StatusConflict
	case stderrors.Is(err, errors.ErrTransferFailed):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func caller(c *gin.Context) string {
	if v, exists := c.Get("caller_id"); exists {
		if id, ok := v.(string); ok {
			return id
		}
	}
	return ""
}

func occasionID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "occasion id must be an integer"})
		return 0, false
	}
	return id, true
}

// Info - GET /api/info
// Метаданные леджера
func (h *Handlers) Info(c *gin.Context) {
	c.JSON(http.StatusOK, h.services.Occasions.Info(c.Request.Context()))
}

// Occasions handlers

// CreateOccasion - POST /api/occasions
// Создать событие (только администратор)
func (h *Handlers) CreateOccasion(c *gin.Context) {
	var req models.CreateOccasionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.MaxTickets < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "max_tickets must not be negative"})
		return
	}
	if req.Cost < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "cost must not be negative"})
		return
	}

	response, err := h.services.Occasions.Create(c.Request.Context(), caller(c), &req)
	if err != nil {
		slog.Error("Failed to create occasion", "error", err)
		c.JSON(statusFromError(err), gin.H{"error": "Failed to create occasion"})
		return
	}

	c.JSON(http.StatusCreated, response)
}

// ListOccasions - GET /api/occasions
// Получить список событий
func (h *Handlers) ListOccasions(c *gin.Context) {
	query := c.Query("query")

	// Plain listings are served from cache when possible.
	shouldCache := query == "" && h.cacheClient != nil

	if shouldCache {
		rawJSON, err := h.cacheClient.GetOccasionsListRaw(c.Request.Context())
		if err == nil {
			c.Data(http.StatusOK, "application/json", rawJSON)
			return
		}
		slog.Debug("Cache miss for occasions list", "error", err)
	}

	response, err := h.services.Occasions.List(c.Request.Context(), query)
	if err != nil {
		slog.Error("Failed to list occasions", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list occasions"})
		return
	}

	if shouldCache {
		if err := h.cacheClient.SetOccasionsList(c.Request.Context(), response); err != nil {
			slog.Debug("Failed to cache occasions list", "error", err)
		}
	}

	c.JSON(http.StatusOK, response)
}

// GetOccasion - GET /api/occasions/:id
// Получить событие по идентификатору
func (h *Handlers) GetOccasion(c *gin.Context) {
	id, ok := occasionID(c)
	if !ok {
		return
	}

	occ, err := h.services.Occasions.Get(c.Request.Context(), id)
	if err != nil {
		c.JSON(statusFromError(err), gin.H{"error": "Occasion not found"})
		return
	}

	c.JSON(http.StatusOK, occ)
}

// Tickets handlers

// Mint - POST /api/occasions/:id/mint
// Купить место: вызывающий и вложенный платеж приходят от внешнего
// коллаборатора, леджер решает судьбу покупки
func (h *Handlers) Mint(c *gin.Context) {
	id, ok := occasionID(c)
	if !ok {
		return
	}

	var req models.MintRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	response, err := h.services.Tickets.Mint(c.Request.Context(), caller(c), id, &req)
	if err != nil {
		slog.Error("Failed to mint ticket", "error", err, "occasion_id", id)
		c.JSON(statusFromError(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, response)
}

// SeatsTaken - GET /api/occasions/:id/seats
// Проданные места события в порядке покупки
func (h *Handlers) SeatsTaken(c *gin.Context) {
	id, ok := occasionID(c)
	if !ok {
		return
	}

	response, err := h.services.Tickets.SeatsTaken(c.Request.Context(), id)
	if err != nil {
		c.JSON(statusFromError(err), gin.H{"error": "Occasion not found"})
		return
	}

	c.JSON(http.StatusOK, response)
}

// SeatTaken - GET /api/occasions/:id/seats/:seat
// Владелец конкретного места
func (h *Handlers) SeatTaken(c *gin.Context) {
	id, ok := occasionID(c)
	if !ok {
		return
	}

	seat, err := strconv.ParseInt(c.Param("seat"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "seat number must be an integer"})
		return
	}

	response, err := h.services.Tickets.SeatTaken(c.Request.Context(), id, seat)
	if err != nil {
		c.JSON(statusFromError(err), gin.H{"error": "Occasion not found"})
		return
	}

	c.JSON(http.StatusOK, response)
}

// HasBought - GET /api/occasions/:id/buyers/:identity
// Покупал ли идентификатор билет на событие
func (h *Handlers) HasBought(c *gin.Context) {
	id, ok := occasionID(c)
	if !ok {
		return
	}

	response, err := h.services.Tickets.HasBought(c.Request.Context(), id, c.Param("identity"))
	if err != nil {
		c.JSON(statusFromError(err), gin.H{"error": "Occasion not found"})
		return
	}

	c.JSON(http.StatusOK, response)
}

// Withdrawals handlers

// Withdraw - POST /api/withdraw
// Вывести накопленный баланс администратору
func (h *Handlers) Withdraw(c *gin.Context) {
	response, err := h.services.Withdrawals.Withdraw(c.Request.Context(), caller(c))
	if err != nil {
		slog.Error("Failed to withdraw", "error", err)
		c.JSON(statusFromError(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, response)
}

// Balance - GET /api/balance
// Текущий накопленный баланс (только администратор)
func (h *Handlers) Balance(c *gin.Context) {
	response, err := h.services.Withdrawals.Balance(c.Request.Context(), caller(c))
	if err != nil {
		c.JSON(statusFromError(err), gin.H{"error": "Forbidden"})
		return
	}

	c.JSON(http.StatusOK, response)
}
