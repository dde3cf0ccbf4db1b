package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/Domenick1991/fanzone/api"
	"github.com/Domenick1991/fanzone/config"
	"github.com/Domenick1991/fanzone/internal/bootstrap"
	"github.com/Domenick1991/fanzone/internal/cache"
	"github.com/Domenick1991/fanzone/internal/database"
	"github.com/Domenick1991/fanzone/internal/domain"
	"github.com/Domenick1991/fanzone/internal/hotellookup"
	"github.com/Domenick1991/fanzone/internal/kafka"
	"github.com/Domenick1991/fanzone/internal/llm"
	"github.com/Domenick1991/fanzone/internal/logger"
	"github.com/Domenick1991/fanzone/internal/observability"
	"github.com/Domenick1991/fanzone/internal/repository"
	"github.com/Domenick1991/fanzone/internal/service/booking"
	"github.com/Domenick1991/fanzone/internal/service/catalog"
	"github.com/Domenick1991/fanzone/internal/service/chat"
	"github.com/Domenick1991/fanzone/internal/service/packages"
	"github.com/Domenick1991/fanzone/internal/service/users"
)

func main() {
	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config.yaml"
	}

	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	lg, err := logger.New(cfg.Log.Level, zap.String("service", cfg.Tracing.ServiceName))
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer lg.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, lg); err != nil {
		lg.Fatal("server error", zap.Error(err))
	}
}

func run(ctx context.Context, cfg *config.Config, lg *zap.Logger) error {
	shutdownTracing, err := observability.InitTracing(ctx, cfg.Tracing, lg)
	if err != nil {
		return err
	}
	defer shutdownTracing(context.Background())

	metrics, shutdownMetrics, err := observability.InitMetrics(cfg.Tracing.ServiceName)
	if err != nil {
		return err
	}
	defer shutdownMetrics(context.Background())

	pool, err := database.Init(ctx, cfg.Database, lg)
	if err != nil {
		return err
	}
	defer pool.Close()
	if err := database.WaitForDB(ctx, pool, lg); err != nil {
		return err
	}
	if err := database.RunMigrations(cfg.Database.URL(), lg); err != nil {
		return err
	}

	flightRepo := repository.NewFlightRepository(pool)
	hotelRepo := repository.NewHotelRepository(pool)
	matchRepo := repository.NewMatchTicketRepository(pool)
	activityRepo := repository.NewActivityRepository(pool)
	repos := catalog.Repositories{
		Flights:      flightRepo,
		Hotels:       hotelRepo,
		MatchTickets: matchRepo,
		Activities:   activityRepo,
	}

	cacheTTL := time.Duration(cfg.Booking.CatalogCacheTTL) * time.Second
	sessionTTL := time.Duration(cfg.Chat.SessionTTLMinutes) * time.Minute

	var (
		flightCache   catalog.Cache[domain.Flight]
		hotelCache    catalog.Cache[domain.Hotel]
		matchCache    catalog.Cache[domain.MatchTicket]
		activityCache catalog.Cache[domain.Activity]
		sessions      chat.SessionStore
		invalidators  *catalog.Invalidators
	)
	if cfg.Redis.Addr != "" {
		client := cache.NewRedisClient(cfg.Redis)
		defer client.Close()
		flightCache = cache.NewListCache[domain.Flight](client, domain.KindFlight, cacheTTL)
		hotelCache = cache.NewListCache[domain.Hotel](client, domain.KindHotel, cacheTTL)
		matchCache = cache.NewListCache[domain.MatchTicket](client, domain.KindMatchTicket, cacheTTL)
		activityCache = cache.NewListCache[domain.Activity](client, domain.KindActivity, cacheTTL)
		sessions = cache.NewRedisSessionStore(client, sessionTTL)
		invalidators = catalog.NewInvalidators(map[domain.ItemKind]catalog.ListInvalidator{
			domain.KindFlight:      flightCache,
			domain.KindHotel:       hotelCache,
			domain.KindMatchTicket: matchCache,
			domain.KindActivity:    activityCache,
		}, lg)
	} else {
		lg.Warn("redis not configured, using in-process session store and no catalog cache")
		sessions = cache.NewMemorySessionStore(sessionTTL)
	}

	var producer booking.Producer
	if len(cfg.Kafka.Brokers) > 0 {
		p := kafka.NewProducer(cfg.Kafka.Brokers, lg)
		defer p.Close()
		producer = p
	}

	completer, err := llm.New(ctx, cfg.Chat)
	if err != nil {
		return err
	}
	if !completer.Available() {
		lg.Warn("chat completion disabled, GEMINI_API_KEY not set")
	}
	hotelLookup := hotellookup.New(cfg.HotelsAPI, lg, metrics)

	packageService := packages.NewPackageService(repository.NewPackageRepository(pool), repos, lg)
	bookingService := booking.NewBookingService(
		repository.NewBookingRepository(pool),
		repository.NewPackageRepository(pool),
		repos,
		producer,
		cfg.Kafka.BookingTopic,
		lg,
		booking.WithNotificationsTopic(cfg.Kafka.NotificationsTopic),
		booking.WithMetrics(metrics),
		booking.WithInventoryReservation(cfg.Booking.ReserveInventory),
		booking.WithCacheInvalidator(invalidators),
	)
	userService := users.NewUserService(
		repository.NewUserRepository(pool),
		users.NewTokenIssuer(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL()),
		lg,
	)
	dispatcher := chat.NewDispatcher(chat.DispatcherConfig{
		Completer:   completer,
		Catalog:     repos,
		Hotels:      hotelRepo,
		HotelSearch: hotelLookup,
		Composer:    packageService,
		Invalidator: invalidators,
		ListLimit:   cfg.Chat.ListLimit,
		Metrics:     metrics,
		Logger:      lg,
	})
	chatService := chat.NewService(dispatcher, sessions, repository.NewConversationRepository(pool), cfg.Chat.HistoryLimit, lg)

	handlers := bootstrap.Handlers{
		Auth: api.NewAuth(userService),
		Flights: api.NewCatalogHandler[domain.Flight](
			catalog.NewService[domain.Flight](flightRepo, flightCache, lg),
			func(f *domain.Flight, id int64) { f.ID = id },
		),
		Hotels: api.NewCatalogHandler[domain.Hotel](
			catalog.NewService[domain.Hotel](hotelRepo, hotelCache, lg),
			func(h *domain.Hotel, id int64) { h.ID = id },
		),
		SuggestedHotels: hotelRepo,
		MatchTickets: api.NewCatalogHandler[domain.MatchTicket](
			catalog.NewService[domain.MatchTicket](matchRepo, matchCache, lg),
			func(m *domain.MatchTicket, id int64) { m.ID = id },
		),
		Activities: api.NewCatalogHandler[domain.Activity](
			catalog.NewService[domain.Activity](activityRepo, activityCache, lg),
			func(a *domain.Activity, id int64) { a.ID = id },
		),
		Packages: api.NewPackageHandler(packageService, bookingService),
		Bookings: api.NewBookingHandler(bookingService),
		Users:    api.NewUserHandler(userService),
		Chat:     api.NewChatHandler(chatService),
	}

	return bootstrap.Run(ctx, cfg, handlers, lg)
}
