package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	"google.golang.org/grpc/health/grpc_health_v1"

	_ "github.com/MikeMC777/swadishta/docs"
	"github.com/MikeMC777/swadishta/internal/cart"
	"github.com/MikeMC777/swadishta/internal/config"
	"github.com/MikeMC777/swadishta/internal/docstore"
	"github.com/MikeMC777/swadishta/internal/httpx"
	"github.com/MikeMC777/swadishta/internal/logging"
	"github.com/MikeMC777/swadishta/internal/menu"
	"github.com/MikeMC777/swadishta/internal/order"
)

// @title        Swadishta Ordering API
// @version      1.0
// @description  Menu catalog, table carts, orders and sales reporting.
// @BasePath     /
func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}
	logger, err := logging.New(cfg.LogLevel, cfg.Development())
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("config loaded",
		zap.String("http_addr", cfg.HTTPAddr),
		zap.String("grpc_addr", cfg.GRPCAddr),
		zap.String("store", cfg.Store.Driver),
		zap.String("events", cfg.Events.Driver),
		zap.String("timezone", cfg.Timezone))

	if err := run(cfg, logger); err != nil {
		logger.Fatal("service stopped", zap.Error(err))
	}
}

func run(cfg config.Config, logger *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	loc, err := cfg.Location()
	if err != nil {
		return err
	}

	store, err := openStore(ctx, cfg.Store)
	if err != nil {
		return err
	}
	defer store.Close()

	pub, err := openPublisher(cfg.Events, logger)
	if err != nil {
		return err
	}
	defer pub.Close()

	carts := cart.NewSessions()
	engine := order.NewEngine(order.NewDocRepo(store), logger, order.WithPublisher(pub))
	router := newRouter(deps{
		log:    logger,
		menu:   menu.NewDocRepo(store),
		carts:  carts,
		engine: engine,
		loc:    loc,
		qrSize: cfg.QRSize,
		now:    time.Now,
	})

	srv := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      httpx.CORS(router, cfg.CORSOrigins),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	lis, err := net.Listen("tcp", cfg.GRPCAddr)
	if err != nil {
		return fmt.Errorf("grpc listen: %w", err)
	}
	gs := grpc.NewServer()
	healthServer := health.NewServer()
	grpc_health_v1.RegisterHealthServer(gs, healthServer)
	healthServer.SetServingStatus("", grpc_health_v1.HealthCheckResponse_SERVING)

	errCh := make(chan error, 2)
	go func() {
		logger.Info("http server listening", zap.String("addr", cfg.HTTPAddr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("http: %w", err)
		}
	}()
	go func() {
		logger.Info("grpc health listening", zap.String("addr", cfg.GRPCAddr))
		if err := gs.Serve(lis); err != nil {
			errCh <- fmt.Errorf("grpc: %w", err)
		}
	}()
	go sweepCarts(ctx, carts, cfg.CartIdleTTL, logger)

	select {
	case <-ctx.Done():
		logger.Info("shutting down")
	case err = <-errCh:
		logger.Error("server failed", zap.Error(err))
	}

	healthServer.Shutdown()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if serr := srv.Shutdown(shutdownCtx); serr != nil {
		logger.Error("http shutdown", zap.Error(serr))
	}
	gs.GracefulStop()
	return err
}

func openStore(ctx context.Context, cfg config.StoreConfig) (docstore.Store, error) {
	switch cfg.Driver {
	case "postgres":
		s, err := docstore.OpenPostgres(ctx, cfg.PostgresDSN)
		if err != nil {
			return nil, err
		}
		if err := s.EnsureSchema(ctx); err != nil {
			_ = s.Close()
			return nil, fmt.Errorf("ensure schema: %w", err)
		}
		return s, nil
	case "redis":
		return docstore.OpenRedis(ctx, &redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
	default:
		return docstore.NewMemoryStore(), nil
	}
}

func openPublisher(cfg config.EventsConfig, logger *zap.Logger) (order.Publisher, error) {
	switch cfg.Driver {
	case "kafka":
		return order.NewKafkaPublisher(cfg.KafkaBrokers, cfg.Topic), nil
	case "amqp":
		return order.DialAMQP(cfg.AMQPURL, cfg.Exchange)
	case "none":
		return order.NopPublisher{}, nil
	default:
		return order.NewLogPublisher(logger), nil
	}
}

// sweepCarts expires idle carts until ctx is done.
func sweepCarts(ctx context.Context, carts *cart.Sessions, ttl time.Duration, logger *zap.Logger) {
	interval := ttl / 4
	if interval < time.Minute {
		interval = time.Minute
	}
	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			if n := carts.ExpireIdle(ttl); n > 0 {
				logger.Debug("expired idle carts", zap.Int("count", n), zap.Int("open", carts.Count()))
			}
		}
	}
}
