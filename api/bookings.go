package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Domenick1991/fanzone/internal/domain"
	"github.com/Domenick1991/fanzone/internal/service/booking"
)

type BookingHandler struct {
	service booking.BookingUseCase
}

type updateBookingRequest struct {
	Status domain.BookingStatus `json:"status" binding:"required"`
}

func NewBookingHandler(service booking.BookingUseCase) *BookingHandler {
	return &BookingHandler{service: service}
}

// Register mounts the routes. Every route needs an authenticated caller.
func (h *BookingHandler) Register(router *gin.RouterGroup, auth *Auth) {
	router.Use(auth.Required())
	router.GET("", h.list)
	router.POST("", h.create)
	router.GET("/:id", h.get)
	router.PATCH("/:id", h.update)
	router.DELETE("/:id", h.cancel)
}

func (h *BookingHandler) create(c *gin.Context) {
	actor, ok := mustPrincipal(c)
	if !ok {
		return
	}
	var req booking.CreateBookingInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	created, err := h.service.CreateBooking(c.Request.Context(), actor, req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (h *BookingHandler) list(c *gin.Context) {
	actor, ok := mustPrincipal(c)
	if !ok {
		return
	}
	bookings, err := h.service.List(c.Request.Context(), actor)
	if err != nil {
		writeError(c, err)
		return
	}
	if bookings == nil {
		bookings = []domain.Booking{}
	}
	c.JSON(http.StatusOK, bookings)
}

func (h *BookingHandler) get(c *gin.Context) {
	actor, ok := mustPrincipal(c)
	if !ok {
		return
	}
	id, ok := parseID(c)
	if !ok {
		return
	}
	found, err := h.service.Get(c.Request.Context(), actor, id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, found)
}

// update changes the status. A cancellation answers 204 with no body.
func (h *BookingHandler) update(c *gin.Context) {
	actor, ok := mustPrincipal(c)
	if !ok {
		return
	}
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req updateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	updated, err := h.service.UpdateStatus(c.Request.Context(), actor, id, req.Status)
	if err != nil {
		writeError(c, err)
		return
	}
	if req.Status == domain.BookingStatusCancelled {
		c.Status(http.StatusNoContent)
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (h *BookingHandler) cancel(c *gin.Context) {
	actor, ok := mustPrincipal(c)
	if !ok {
		return
	}
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.service.Cancel(c.Request.Context(), actor, id); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
