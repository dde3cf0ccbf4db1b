package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Domenick1991/fanzone/internal/domain"
	"github.com/Domenick1991/fanzone/internal/service/booking"
	"github.com/Domenick1991/fanzone/internal/service/packages"
)

type PackageHandler struct {
	service  packages.UseCase
	bookings booking.BookingUseCase
}

type updatePackageRequest struct {
	Status domain.PackageStatus `json:"status" binding:"required"`
}

func NewPackageHandler(service packages.UseCase, bookings booking.BookingUseCase) *PackageHandler {
	return &PackageHandler{service: service, bookings: bookings}
}

func (h *PackageHandler) Register(router *gin.RouterGroup, auth *Auth) {
	router.Use(auth.Required())
	router.GET("", h.list)
	router.POST("", h.create)
	router.POST("/compose", h.compose)
	router.GET("/:id", h.get)
	router.PATCH("/:id", auth.Admin(), h.updateStatus)
	router.DELETE("/:id", h.delete)
	router.POST("/:id/book", h.book)
}

func (h *PackageHandler) list(c *gin.Context) {
	pkgs, err := h.service.List(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	if pkgs == nil {
		pkgs = []domain.Package{}
	}
	c.JSON(http.StatusOK, pkgs)
}

func (h *PackageHandler) get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	pkg, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, pkg)
}

func (h *PackageHandler) create(c *gin.Context) {
	var req packages.CreateInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	pkg, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, pkg)
}

func (h *PackageHandler) compose(c *gin.Context) {
	var req packages.ComposeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	pkg, err := h.service.Compose(c.Request.Context(), req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, pkg)
}

func (h *PackageHandler) updateStatus(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req updatePackageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	pkg, err := h.service.UpdateStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, pkg)
}

func (h *PackageHandler) delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *PackageHandler) book(c *gin.Context) {
	actor, ok := mustPrincipal(c)
	if !ok {
		return
	}
	id, ok := parseID(c)
	if !ok {
		return
	}
	created, err := h.bookings.BookPackage(c.Request.Context(), actor, id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}
