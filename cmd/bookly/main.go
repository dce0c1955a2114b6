package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Skotchmaster/bookly/internal/blocklist"
	"github.com/Skotchmaster/bookly/internal/config"
	"github.com/Skotchmaster/bookly/internal/db"
	"github.com/Skotchmaster/bookly/internal/es"
	"github.com/Skotchmaster/bookly/internal/hash"
	"github.com/Skotchmaster/bookly/internal/httpserver"
	"github.com/Skotchmaster/bookly/internal/logging"
	"github.com/Skotchmaster/bookly/internal/mail"
	"github.com/Skotchmaster/bookly/internal/middleware/auth"
	"github.com/Skotchmaster/bookly/internal/mykafka"
	"github.com/Skotchmaster/bookly/internal/repo"
	"github.com/Skotchmaster/bookly/internal/service"
	"github.com/Skotchmaster/bookly/internal/tokens"
)

func main() {
	cfg := config.Load()
	cfg.MustRequired()

	logger := logging.New(cfg.LogLevel).With("service", "bookly")
	slog.SetDefault(logger)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	gdb, err := db.Open(ctx, cfg.DatabaseURL)
	cancel()
	if err != nil {
		log.Fatalf("db open: %v", err)
	}
	if err := db.Migrate(gdb); err != nil {
		log.Fatalf("db migrate: %v", err)
	}

	ctx, cancel = context.WithTimeout(context.Background(), 10*time.Second)
	rdb, err := blocklist.NewRedisClient(ctx, blocklist.RedisConfig{
		Addr:     cfg.RedisAddr(),
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	cancel()
	if err != nil {
		log.Fatalf("redis: %v", err)
	}

	codec, err := tokens.NewCodec(tokens.Config{
		Secret:    cfg.JWTSecret,
		Algorithm: cfg.JWTAlgorithm,
		AccessTTL: cfg.AccessTokenExpiry,
	})
	if err != nil {
		log.Fatalf("token codec: %v", err)
	}
	store := blocklist.NewRedisStore(rdb, codec.AccessTTL())

	var mailer mail.Sender = mail.LogSender{}
	if cfg.MailServer != "" {
		mailer = mail.NewSMTPSender(mail.Config{
			Server:   cfg.MailServer,
			Port:     cfg.MailPort,
			Username: cfg.MailUsername,
			Password: cfg.MailPassword,
			From:     cfg.MailFrom,
			FromName: cfg.MailFromName,
		})
	} else {
		logger.Warn("mail_disabled", "reason", "MAIL_SERVER is not set, messages are only logged")
	}

	var events mykafka.Publisher = mykafka.Nop{}
	var producer *mykafka.Producer
	if len(cfg.KafkaBrokers) > 0 {
		producer, err = mykafka.NewProducer(cfg.KafkaBrokers)
		if err != nil {
			log.Fatalf("kafka producer: %v", err)
		}
		events = producer
	}

	r := repo.New(gdb)
	hasher := hash.New(0)
	users := &service.UserService{Repo: r, Hasher: hasher}
	books := &service.BookService{Repo: r, Events: events}

	if cfg.ESURL != "" {
		ctx, cancel = context.WithTimeout(context.Background(), 10*time.Second)
		esClient, err := es.NewClient(ctx, es.Config{URL: cfg.ESURL, Username: cfg.ESUser, Password: cfg.ESPassword}, logger)
		cancel()
		if err != nil {
			logger.Error("es_disabled", "reason", "cannot reach elasticsearch", "error", err)
		} else {
			books.Index = es.NewBookIndex(esClient, cfg.ESBookIndex)
		}
	}

	authSvc := &service.AuthService{
		Users:      users,
		Hasher:     hasher,
		Codec:      codec,
		URLTokens:  tokens.NewURLSerializer(cfg.JWTSecret, cfg.URLTokenMaxAge),
		Blocklist:  store,
		Mailer:     mailer,
		Events:     events,
		Domain:     cfg.Domain,
		RefreshTTL: cfg.RefreshTokenExpiry,
	}

	e := httpserver.New(logger)
	httpserver.Register(e, &httpserver.Deps{
		AuthHandler:   &httpserver.AuthHTTP{Svc: authSvc, Users: users},
		BookHandler:   &httpserver.BookHTTP{Svc: books},
		ReviewHandler: &httpserver.ReviewHTTP{Svc: &service.ReviewService{Repo: r}},
		TagHandler:    &httpserver.TagHTTP{Svc: &service.TagService{Repo: r}},
		Guard:         auth.NewGuard(codec, store),
		Users:         users,
		Ready: []func(ctx context.Context) error{
			func(ctx context.Context) error {
				sqlDB, err := gdb.DB()
				if err != nil {
					return err
				}
				return sqlDB.PingContext(ctx)
			},
			store.Ping,
		},
	})

	srv := &http.Server{
		Addr:              cfg.ServerAddr,
		Handler:           e,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      15 * time.Second,
		ReadHeaderTimeout: 3 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		logger.Info("bookly listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("listen: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown", "error", err)
	}

	db.Close(gdb)
	if err := rdb.Close(); err != nil {
		logger.Error("redis close", "error", err)
	}
	if producer != nil {
		if err := producer.Close(); err != nil {
			logger.Error("kafka close", "error", err)
		}
	}

	logger.Info("bookly stopped")
}
