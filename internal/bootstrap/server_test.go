package bootstrap

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"github.com/Domenick1991/fanzone/api"
	"github.com/Domenick1991/fanzone/config"
	"github.com/Domenick1991/fanzone/internal/domain"
)

func newTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	cfg := config.Default()
	cfg.HTTP.SwaggerDir = ""
	setFlightID := func(f *domain.Flight, id int64) { f.ID = id }
	return NewRouter(cfg, Handlers{
		Auth:         api.NewAuth(nil),
		Flights:      api.NewCatalogHandler[domain.Flight](nil, setFlightID),
		Hotels:       api.NewCatalogHandler[domain.Hotel](nil, func(h *domain.Hotel, id int64) { h.ID = id }),
		MatchTickets: api.NewCatalogHandler[domain.MatchTicket](nil, func(m *domain.MatchTicket, id int64) { m.ID = id }),
		Activities:   api.NewCatalogHandler[domain.Activity](nil, func(a *domain.Activity, id int64) { a.ID = id }),
		Packages:     api.NewPackageHandler(nil, nil),
		Bookings:     api.NewBookingHandler(nil),
		Users:        api.NewUserHandler(nil),
		Chat:         api.NewChatHandler(nil),
	}, zap.NewNop())
}

func TestRouter(t *testing.T) {
	r := newTestRouter()

	cases := []struct {
		name   string
		method string
		path   string
		want   int
	}{
		{"health", "GET", "/healthz", http.StatusOK},
		{"metrics", "GET", "/metrics", http.StatusOK},
		{"catalog invalid id", "GET", "/api/flights/abc", http.StatusBadRequest},
		{"catalog write needs token", "POST", "/api/activities", http.StatusUnauthorized},
		{"bookings need token", "GET", "/api/bookings", http.StatusUnauthorized},
		{"packages need token", "POST", "/api/packages/compose", http.StatusUnauthorized},
		{"users list needs token", "GET", "/api/users", http.StatusUnauthorized},
		{"unknown route", "GET", "/api/unknown", http.StatusNotFound},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(tc.method, tc.path, nil))
			assert.Equal(t, tc.want, w.Code)
		})
	}
}
