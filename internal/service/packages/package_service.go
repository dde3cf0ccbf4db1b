package packages

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/Domenick1991/fanzone/internal/domain"
	"github.com/Domenick1991/fanzone/internal/repository"
	"github.com/Domenick1991/fanzone/internal/service/catalog"
)

const (
	// DefaultDiscountRate is the package discount as a fraction of the total.
	DefaultDiscountRate = 0.15
	// gatherLimit caps how many rows of each variant a location package collects.
	gatherLimit = 3

	customPackageName = "Custom Sports Tourism Package"
)

type UseCase interface {
	Compose(ctx context.Context, req ComposeRequest) (*domain.Package, error)
	List(ctx context.Context) ([]domain.Package, error)
	Get(ctx context.Context, id int64) (*domain.Package, error)
	Create(ctx context.Context, input CreateInput) (*domain.Package, error)
	UpdateStatus(ctx context.Context, id int64, status domain.PackageStatus) (*domain.Package, error)
	Delete(ctx context.Context, id int64) error
}

// ComposeRequest selects items either by location or by explicit ids.
// Location takes precedence when set.
type ComposeRequest struct {
	Location      string  `json:"location"`
	HotelID       *int64  `json:"hotel_id"`
	FlightID      *int64  `json:"flight_id"`
	MatchTicketID *int64  `json:"match_ticket_id"`
	ActivityIDs   []int64 `json:"activity_ids"`
}

func (r ComposeRequest) selection() domain.Selection {
	var sel domain.Selection
	if r.HotelID != nil {
		sel.HotelIDs = []int64{*r.HotelID}
	}
	if r.FlightID != nil {
		sel.FlightIDs = []int64{*r.FlightID}
	}
	if r.MatchTicketID != nil {
		sel.MatchTicketIDs = []int64{*r.MatchTicketID}
	}
	sel.ActivityIDs = r.ActivityIDs
	return sel.Normalize()
}

// CreateInput is a curated package. Prices are always recomputed from the items.
type CreateInput struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	domain.Selection
	DiscountPercent float64              `json:"discount_percent"`
	Status          domain.PackageStatus `json:"status"`
	ImageURL        string               `json:"image_url"`
}

type PackageServiceOption func(*PackageService)

func WithDiscountRate(rate float64) PackageServiceOption {
	return func(s *PackageService) {
		s.discountRate = rate
	}
}

type PackageService struct {
	packages     repository.PackageRepository
	catalog      catalog.Repositories
	discountRate float64
	logger       *zap.Logger
}

func NewPackageService(
	packages repository.PackageRepository,
	repos catalog.Repositories,
	logger *zap.Logger,
	opts ...PackageServiceOption,
) *PackageService {
	service := &PackageService{
		packages:     packages,
		catalog:      repos,
		discountRate: DefaultDiscountRate,
		logger:       logger,
	}
	for _, opt := range opts {
		opt(service)
	}
	return service
}

// Compose gathers items, prices them with the package discount and stores the
// result as a suggested package. Every call creates a new package.
func (s *PackageService) Compose(ctx context.Context, req ComposeRequest) (*domain.Package, error) {
	location := strings.TrimSpace(req.Location)

	var (
		items *catalog.Items
		err   error
		name  string
	)
	if location != "" {
		items, err = s.catalog.Near(ctx, location, gatherLimit)
		if err != nil {
			return nil, err
		}
		if items.IsEmpty() {
			return nil, fmt.Errorf("no catalog items near %q: %w", location, domain.ErrNotFound)
		}
		name = "Sports Tourism Package - " + location
	} else {
		sel := req.selection()
		if sel.IsEmpty() {
			return nil, domain.NewValidationError("a location or at least one item is required")
		}
		items, err = s.catalog.Load(ctx, sel)
		if err != nil {
			return nil, err
		}
		name = customPackageName
	}

	pkg := &domain.Package{
		Name:            name,
		Description:     describe(items, location),
		Selection:       items.Selection(),
		TotalPriceCents: items.Total(),
		DiscountPercent: s.discountRate * 100,
		Status:          domain.PackageStatusSuggested,
		IsAISuggested:   true,
	}
	pkg.Reprice()

	if err := s.packages.Create(ctx, pkg); err != nil {
		return nil, err
	}
	s.logger.Info("package composed",
		zap.Int64("package_id", pkg.ID),
		zap.String("location", location),
		zap.Int64("final_price_cents", pkg.FinalPriceCents),
	)
	return pkg, nil
}

func describe(items *catalog.Items, location string) string {
	desc := fmt.Sprintf("%d hotel(s), %d flight(s), %d match ticket(s) and %d activity(ies)",
		len(items.Hotels), len(items.Flights), len(items.MatchTickets), len(items.Activities))
	if location != "" {
		desc += " in " + location
	}
	return desc
}

func (s *PackageService) List(ctx context.Context) ([]domain.Package, error) {
	return s.packages.List(ctx)
}

func (s *PackageService) Get(ctx context.Context, id int64) (*domain.Package, error) {
	return s.packages.GetByID(ctx, id)
}

func (s *PackageService) Create(ctx context.Context, input CreateInput) (*domain.Package, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, domain.NewValidationError("name is required")
	}
	if input.DiscountPercent < 0 || input.DiscountPercent > 100 {
		return nil, domain.NewValidationError("discount_percent must be between 0 and 100")
	}
	status := input.Status
	if status == "" {
		status = domain.PackageStatusSuggested
	}
	if !status.Valid() {
		return nil, domain.NewValidationError("unknown package status " + string(status))
	}

	sel := input.Selection.Normalize()
	if sel.IsEmpty() {
		return nil, domain.NewValidationError("at least one item required")
	}
	items, err := s.catalog.Load(ctx, sel)
	if err != nil {
		return nil, err
	}

	pkg := &domain.Package{
		Name:            input.Name,
		Description:     input.Description,
		Selection:       items.Selection(),
		TotalPriceCents: items.Total(),
		DiscountPercent: input.DiscountPercent,
		Status:          status,
		ImageURL:        input.ImageURL,
	}
	pkg.Reprice()

	if err := s.packages.Create(ctx, pkg); err != nil {
		return nil, err
	}
	return pkg, nil
}

func (s *PackageService) UpdateStatus(ctx context.Context, id int64, status domain.PackageStatus) (*domain.Package, error) {
	if !status.Valid() {
		return nil, domain.NewValidationError("unknown package status " + string(status))
	}
	return s.packages.UpdateStatus(ctx, id, status)
}

func (s *PackageService) Delete(ctx context.Context, id int64) error {
	return s.packages.Delete(ctx, id)
}

var _ UseCase = (*PackageService)(nil)
