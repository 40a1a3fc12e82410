package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/yuvi55/unigrow/auth"
	"github.com/yuvi55/unigrow/handler"
	"github.com/yuvi55/unigrow/onboarding"
	"github.com/yuvi55/unigrow/pkg/config"
	"github.com/yuvi55/unigrow/pkg/httpserver"
	"github.com/yuvi55/unigrow/pkg/logger"
	"github.com/yuvi55/unigrow/pkg/mongo"
	"github.com/yuvi55/unigrow/pkg/redis"
	"github.com/yuvi55/unigrow/pkg/secrets"
	"github.com/yuvi55/unigrow/tokenstore"
	"github.com/yuvi55/unigrow/userstore"
)

func main() {
	var (
		logCfg     logger.Config
		mongoCfg   mongo.Config
		redisCfg   redis.Config
		secretsCfg secrets.Config
		googleCfg  auth.GoogleConfig
		policy     auth.DomainPolicy
		canvasCfg  onboarding.CanvasConfig
		tokenCfg   tokenstore.Config
		httpCfg    httpserver.Config
		webCfg     handler.Config
	)
	config.MustLoad(&logCfg)
	config.MustLoad(&mongoCfg)
	config.MustLoad(&redisCfg)
	config.MustLoad(&secretsCfg)
	config.MustLoad(&googleCfg)
	config.MustLoad(&policy)
	config.MustLoad(&canvasCfg)
	config.MustLoad(&tokenCfg)
	config.MustLoad(&httpCfg)
	config.MustLoad(&webCfg)

	log := logger.New(logCfg, logger.WithService("unigrow"))

	if err := run(context.Background(), log, deps{
		mongoCfg:   mongoCfg,
		redisCfg:   redisCfg,
		secretsCfg: secretsCfg,
		googleCfg:  googleCfg,
		policy:     policy,
		canvasCfg:  canvasCfg,
		tokenCfg:   tokenCfg,
		httpCfg:    httpCfg,
		webCfg:     webCfg,
	}); err != nil {
		log.Error("server exited", logger.Error(err))
		os.Exit(1)
	}
}

type deps struct {
	mongoCfg   mongo.Config
	redisCfg   redis.Config
	secretsCfg secrets.Config
	googleCfg  auth.GoogleConfig
	policy     auth.DomainPolicy
	canvasCfg  onboarding.CanvasConfig
	tokenCfg   tokenstore.Config
	httpCfg    httpserver.Config
	webCfg     handler.Config
}

func run(ctx context.Context, log *slog.Logger, d deps) error {
	db, err := mongo.NewDatabase(ctx, d.mongoCfg)
	if err != nil {
		return err
	}
	defer func() { _ = db.Client().Disconnect(context.Background()) }()

	rdb, err := redis.Connect(ctx, d.redisCfg)
	if err != nil {
		return err
	}
	defer func() { _ = rdb.Close() }()

	users := userstore.New(db)
	if err := users.EnsureIndexes(ctx); err != nil {
		return err
	}
	tokens := tokenstore.New(rdb, d.tokenCfg)

	enc, err := secrets.New(d.secretsCfg)
	if err != nil {
		return err
	}

	oauthSvc := auth.NewOAuthService(
		auth.NewGoogleAdapter(d.googleCfg),
		tokens,
		auth.NewNormalizer(users, auth.WithNormalizerLogger(log)),
		auth.NewProvisioner(users, d.policy, auth.WithProvisionerLogger(log)),
		auth.WithOAuthLogger(log),
		auth.WithStateTTL(d.googleCfg.StateTTL),
	)

	onboardingSvc := onboarding.NewService(
		users,
		onboarding.NewCanvasClient(d.canvasCfg),
		enc,
		onboarding.WithLogger(log),
	)

	h := handler.New(oauthSvc, onboardingSvc, tokens, d.webCfg, handler.WithLogger(log))

	r := h.Routes()
	r.Get("/health", httpserver.HealthCheckHandler(log,
		mongo.Healthcheck(db.Client()),
		redis.Healthcheck(rdb),
	))

	log.Info("starting server", slog.String("addr", d.httpCfg.Addr))
	return httpserver.NewFromConfig(d.httpCfg, httpserver.WithLogger(log)).Run(ctx, r)
}
