package api

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Domenick1991/fanzone/internal/domain"
	"github.com/Domenick1991/fanzone/internal/service/catalog"
)

// CatalogHandler serves one catalog variant. Reads are public, writes are authenticated.
type CatalogHandler[T domain.CatalogItem] struct {
	service catalog.UseCase[T]
	setID   func(item *T, id int64)
}

func NewCatalogHandler[T domain.CatalogItem](service catalog.UseCase[T], setID func(item *T, id int64)) *CatalogHandler[T] {
	return &CatalogHandler[T]{service: service, setID: setID}
}

func (h *CatalogHandler[T]) Register(router *gin.RouterGroup, auth *Auth) {
	router.GET("", h.list)
	router.GET("/:id", h.get)
	router.POST("", auth.Required(), h.create)
	router.PUT("/:id", auth.Required(), h.update)
	router.DELETE("/:id", auth.Required(), h.delete)
}

func parseFilter(c *gin.Context) (domain.CatalogFilter, bool) {
	filter := domain.CatalogFilter{
		Location:     c.Query("q"),
		MatchType:    domain.MatchType(c.Query("match_type")),
		ActivityType: domain.ActivityType(c.Query("activity_type")),
	}
	if raw := c.Query("ai_suggested"); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "ai_suggested must be a boolean"})
			return filter, false
		}
		filter.AISuggested = &v
	}
	return filter, true
}

func (h *CatalogHandler[T]) list(c *gin.Context) {
	filter, ok := parseFilter(c)
	if !ok {
		return
	}
	items, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		writeError(c, err)
		return
	}
	if items == nil {
		items = []T{}
	}
	c.JSON(http.StatusOK, items)
}

func (h *CatalogHandler[T]) get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	item, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

func (h *CatalogHandler[T]) create(c *gin.Context) {
	var item T
	if err := c.ShouldBindJSON(&item); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	h.setID(&item, 0)
	if err := h.service.Create(c.Request.Context(), &item); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, item)
}

func (h *CatalogHandler[T]) update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var item T
	if err := c.ShouldBindJSON(&item); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	h.setID(&item, id)
	if err := h.service.Update(c.Request.Context(), &item); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

func (h *CatalogHandler[T]) delete(c *gin.Context) {
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

type SuggestedHotelLister interface {
	ListSuggested(ctx context.Context) ([]domain.SuggestedHotel, error)
}

// RegisterSuggestedHotels serves the read-only projection of AI-suggested hotels.
func RegisterSuggestedHotels(router *gin.RouterGroup, lister SuggestedHotelLister) {
	router.GET("/suggested", func(c *gin.Context) {
		hotels, err := lister.ListSuggested(c.Request.Context())
		if err != nil {
			writeError(c, err)
			return
		}
		if hotels == nil {
			hotels = []domain.SuggestedHotel{}
		}
		c.JSON(http.StatusOK, hotels)
	})
}
