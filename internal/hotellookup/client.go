// Package hotellookup queries the RapidAPI hotels4 search and normalizes its
// results into catalog hotels.
package hotellookup

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/Domenick1991/fanzone/config"
	"github.com/Domenick1991/fanzone/internal/domain"
	"github.com/Domenick1991/fanzone/internal/observability"
)

const (
	siteID         = 300000001
	defaultRooms   = 10
	minRating      = 1
	maxRating      = 5
	serviceName    = "hotels_api"
	searchPath     = "/locations/v3/search"
	propertiesPath = "/properties/v2/list"
)

const defaultImageURL = "https://images.unsplash.com/photo-1582719478250-c89cae4dc85b?auto=format&fit=crop&w=2070&q=80"

// Hotel is one normalized search result.
type Hotel struct {
	Name               string
	Location           string
	Rating             float64
	PricePerNightCents int64
	Description        string
	ImageURL           string
}

// Catalog converts the result into an AI-suggested catalog hotel. The
// description doubles as the address, which the lookup does not return.
func (h Hotel) Catalog() domain.Hotel {
	rating := h.Rating
	if rating < minRating {
		rating = minRating
	}
	if rating > maxRating {
		rating = maxRating
	}
	image := h.ImageURL
	if image == "" {
		image = defaultImageURL
	}
	return domain.Hotel{
		Name:               h.Name,
		City:               h.Location,
		Address:            h.Description,
		Description:        h.Description,
		PricePerNightCents: h.PricePerNightCents,
		AvailableRooms:     defaultRooms,
		Rating:             rating,
		ImageURL:           image,
		IsAISuggested:      true,
	}
}

type Client struct {
	http    *http.Client
	cfg     config.HotelsAPIConfig
	logger  *zap.Logger
	metrics *observability.Metrics
	now     func() time.Time
}

func New(cfg config.HotelsAPIConfig, logger *zap.Logger, metrics *observability.Metrics) *Client {
	return &Client{
		http:    &http.Client{Timeout: time.Duration(cfg.TimeoutSeconds) * time.Second},
		cfg:     cfg,
		logger:  logger,
		metrics: metrics,
		now:     time.Now,
	}
}

// Search returns up to ResultsSize hotels for location. A missing API key is
// reported as domain.ErrExternalService; every other failure is logged and
// yields an empty result.
func (c *Client) Search(ctx context.Context, location string) ([]Hotel, error) {
	if c.cfg.APIKey == "" {
		return nil, fmt.Errorf("%w: hotels api key not configured", domain.ErrExternalService)
	}

	ctx, span := otel.Tracer("HotelLookup").Start(ctx, "Search", trace.WithAttributes(
		attribute.String("location", location),
	))
	defer span.End()

	hotels, err := c.search(ctx, location)
	c.metrics.ExternalCall(ctx, serviceName, err)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "hotel search failed")
		c.logger.Error("external hotel search failed", zap.String("location", location), zap.Error(err))
		return nil, nil
	}
	span.SetAttributes(attribute.Int("results", len(hotels)))
	return hotels, nil
}

func (c *Client) search(ctx context.Context, location string) ([]Hotel, error) {
	destID, err := c.destination(ctx, location)
	if err != nil {
		return nil, err
	}

	checkIn := c.now().AddDate(0, 0, c.cfg.CheckInOffsetDays)
	checkOut := checkIn.AddDate(0, 0, c.cfg.Nights)
	body, err := json.Marshal(propertiesRequest{
		Currency:      "USD",
		EAPID:         1,
		Locale:        "en_US",
		SiteID:        siteID,
		Destination:   destination{RegionID: destID},
		CheckInDate:   newDate(checkIn),
		CheckOutDate:  newDate(checkOut),
		Rooms:         []room{{Adults: 2}},
		ResultsSize:   c.cfg.ResultsSize,
		Sort:          "PRICE_LOW_TO_HIGH",
		StartingIndex: 0,
	})
	if err != nil {
		return nil, fmt.Errorf("encode properties request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL+propertiesPath, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	var resp propertiesResponse
	if err := c.do(req, &resp); err != nil {
		return nil, fmt.Errorf("list properties: %w", err)
	}

	props := resp.Data.PropertySearch.Properties
	if len(props) == 0 {
		c.logger.Info("no external hotels found", zap.String("location", location))
		return nil, nil
	}

	hotels := make([]Hotel, 0, len(props))
	for _, p := range props {
		if strings.TrimSpace(p.Name) == "" {
			continue
		}
		hotels = append(hotels, Hotel{
			Name:               p.Name,
			Location:           location,
			Rating:             p.Reviews.Score / 2,
			PricePerNightCents: domain.CentsFromFloat(p.Price.Lead.Amount),
			Description:        p.Summary.locationText(),
			ImageURL:           p.Gallery.firstURL(),
		})
	}
	return hotels, nil
}

func (c *Client) destination(ctx context.Context, location string) (string, error) {
	q := url.Values{}
	q.Set("q", location)
	q.Set("locale", "en_US")
	q.Set("langid", "1033")
	q.Set("siteid", fmt.Sprint(siteID))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.cfg.BaseURL+searchPath+"?"+q.Encode(), nil)
	if err != nil {
		return "", err
	}

	var resp searchResponse
	if err := c.do(req, &resp); err != nil {
		return "", fmt.Errorf("search destination: %w", err)
	}
	if len(resp.SR) == 0 || resp.SR[0].GaiaID == "" {
		return "", fmt.Errorf("no destination found for %q", location)
	}
	return resp.SR[0].GaiaID, nil
}

func (c *Client) do(req *http.Request, out any) error {
	req.Header.Set("X-RapidAPI-Key", c.cfg.APIKey)
	req.Header.Set("X-RapidAPI-Host", c.cfg.Host)

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
