package chat

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/Domenick1991/fanzone/internal/domain"
	"github.com/Domenick1991/fanzone/internal/hotellookup"
	"github.com/Domenick1991/fanzone/internal/observability"
	"github.com/Domenick1991/fanzone/internal/service/catalog"
	"github.com/Domenick1991/fanzone/internal/service/packages"
)

// TextCompleter generates free text. It returns domain.ErrCompleterUnavailable
// when no model is configured.
type TextCompleter interface {
	Complete(ctx context.Context, systemPrompt string, history []domain.Turn, prompt string) (string, error)
}

type HotelSearcher interface {
	Search(ctx context.Context, location string) ([]hotellookup.Hotel, error)
}

type HotelUpserter interface {
	GetOrCreateByName(ctx context.Context, hotel domain.Hotel) (*domain.Hotel, bool, error)
}

// CacheInvalidator drops cached catalog listings after the dispatcher stores rows.
type CacheInvalidator interface {
	Invalidate(ctx context.Context, kinds ...domain.ItemKind)
}

type PackageComposer interface {
	Compose(ctx context.Context, req packages.ComposeRequest) (*domain.Package, error)
}

type handlerFunc func(ctx context.Context, session *domain.Session, message string) (string, error)

// rule routes a message to handle when the lowercased message contains any
// keyword. A rule without keywords matches everything.
type rule struct {
	name     string
	keywords []string
	handle   handlerFunc
}

func (r rule) matches(lower string) bool {
	if len(r.keywords) == 0 {
		return true
	}
	for _, kw := range r.keywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

type Dispatcher struct {
	completer   TextCompleter
	catalog     catalog.Repositories
	hotels      HotelUpserter
	hotelSearch HotelSearcher
	composer    PackageComposer
	invalidator CacheInvalidator
	listLimit   int
	metrics     *observability.Metrics
	logger      *zap.Logger
	rules       []rule
}

type DispatcherConfig struct {
	Completer   TextCompleter
	Catalog     catalog.Repositories
	Hotels      HotelUpserter
	HotelSearch HotelSearcher
	Composer    PackageComposer
	Invalidator CacheInvalidator
	ListLimit   int
	Metrics     *observability.Metrics
	Logger      *zap.Logger
}

func NewDispatcher(cfg DispatcherConfig) *Dispatcher {
	d := &Dispatcher{
		completer:   cfg.Completer,
		catalog:     cfg.Catalog,
		hotels:      cfg.Hotels,
		hotelSearch: cfg.HotelSearch,
		composer:    cfg.Composer,
		invalidator: cfg.Invalidator,
		listLimit:   cfg.ListLimit,
		metrics:     cfg.Metrics,
		logger:      cfg.Logger,
	}
	if d.listLimit <= 0 {
		d.listLimit = 5
	}
	d.rules = []rule{
		{name: "more_options", keywords: []string{"search for other options", "more options", "other options", "show more"}, handle: d.moreOptions},
		{name: "hotel", keywords: []string{"hotel", "accommodation", "stay"}, handle: d.hotelInquiry},
		{name: "package", keywords: []string{"package", "deal", "offer"}, handle: d.packageInquiry},
		{name: "flight", keywords: []string{"flight", "fly", "plane"}, handle: d.listFlights},
		{name: "match", keywords: []string{"match", "game", "ticket"}, handle: d.listMatches},
		{name: "activity", keywords: []string{"activity", "tour", "visit"}, handle: d.listActivities},
		{name: "greeting", keywords: []string{"hello", "hi", "hey"}, handle: canned(greetingReply)},
		{name: "help", keywords: []string{"help", "support"}, handle: canned(helpReply)},
		{name: "fallback", handle: d.fallback},
	}
	return d
}

func canned(reply string) handlerFunc {
	return func(context.Context, *domain.Session, string) (string, error) {
		return reply, nil
	}
}

// Intent returns the name of the first rule matching message.
func (d *Dispatcher) Intent(message string) string {
	r, _ := d.route(message)
	return r.name
}

// Handle answers one message. Handler failures, panics included, are logged
// and answered with an apology.
func (d *Dispatcher) Handle(ctx context.Context, session *domain.Session, message string) (reply string) {
	r, ok := d.route(message)
	if !ok {
		return fallbackReply
	}
	d.metrics.ChatIntent(ctx, r.name)

	defer func() {
		if p := recover(); p != nil {
			d.logger.Error("chat handler panicked", zap.String("intent", r.name), zap.Any("panic", p))
			reply = apologyReply
		}
	}()

	out, err := r.handle(ctx, session, message)
	if err != nil {
		d.logger.Error("chat handler failed", zap.String("intent", r.name), zap.Error(err))
		return apologyReply
	}
	return out
}

func (d *Dispatcher) route(message string) (rule, bool) {
	lower := strings.ToLower(message)
	for _, r := range d.rules {
		if r.matches(lower) {
			return r, true
		}
	}
	return rule{}, false
}

// extractLocation asks the completer for the location named in message and
// remembers it on the session. It returns "" when none could be found.
func (d *Dispatcher) extractLocation(ctx context.Context, session *domain.Session, message string) string {
	if d.completer == nil {
		return ""
	}
	out, err := d.completer.Complete(ctx, "", nil, extractLocationPrompt+message)
	if err != nil {
		if !errors.Is(err, domain.ErrCompleterUnavailable) {
			d.logger.Warn("location extraction failed", zap.Error(err))
		}
		return ""
	}
	location := strings.TrimSpace(out)
	if location != "" {
		session.LastLocation = location
	}
	return location
}

func (d *Dispatcher) fallback(ctx context.Context, session *domain.Session, message string) (string, error) {
	if d.completer == nil {
		return fallbackReply, nil
	}
	out, err := d.completer.Complete(ctx, systemPrompt, session.History, message)
	if err != nil {
		if errors.Is(err, domain.ErrCompleterUnavailable) {
			return fallbackReply, nil
		}
		return "", fmt.Errorf("complete fallback: %w", err)
	}
	if out == "" {
		return fallbackReply, nil
	}
	return out, nil
}
