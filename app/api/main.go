package main

import (
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/spf13/viper"

	"github.com/go-playground/validator/v10"
	"github.com/agritrade/goapi/base/ctx"
	"github.com/agritrade/goapi/base/database/mongoclient"
	"github.com/agritrade/goapi/base/database/redisclient"
	"github.com/agritrade/goapi/base/log"
	"github.com/agritrade/goapi/base/metrics"
	bValidator "github.com/agritrade/goapi/base/validator"
	mmiddleware "github.com/agritrade/goapi/middleware"
	"github.com/agritrade/goapi/service/broadcast"
	"github.com/agritrade/goapi/service/momo"
	"github.com/agritrade/goapi/service/query"
	"github.com/agritrade/goapi/service/redis"
	auth_delivery "github.com/agritrade/goapi/stores/auth/delivery/http"
	auth_middleware "github.com/agritrade/goapi/stores/auth/delivery/http/middleware"
	auth_usecase "github.com/agritrade/goapi/stores/auth/usecase"
	bid_delivery "github.com/agritrade/goapi/stores/bid/delivery/http"
	bid_ws_delivery "github.com/agritrade/goapi/stores/bid/delivery/ws"
	bid_repository "github.com/agritrade/goapi/stores/bid/repository"
	bid_usecase "github.com/agritrade/goapi/stores/bid/usecase"
	hc_delivery "github.com/agritrade/goapi/stores/healthcheck/delivery/http"
	hc_repo "github.com/agritrade/goapi/stores/healthcheck/repository"
	hc_usecase "github.com/agritrade/goapi/stores/healthcheck/usecase"
	payment_delivery "github.com/agritrade/goapi/stores/payment/delivery/http"
	payment_repository "github.com/agritrade/goapi/stores/payment/repository"
	payment_usecase "github.com/agritrade/goapi/stores/payment/usecase"
	product_delivery "github.com/agritrade/goapi/stores/product/delivery/http"
	product_repository "github.com/agritrade/goapi/stores/product/repository"
	product_usecase "github.com/agritrade/goapi/stores/product/usecase"
)

func init() {
	viper.SetConfigType("yaml")
	viper.SetConfigFile(`infra/configs/config.yaml`)
	err := viper.ReadInConfig()
	if err != nil {
		panic(err)
	}

	if viper.GetBool(`debug`) {
		log.Log().Info("Service RUN on DEBUG mode")
	}
}

func main() {
	// init echo
	e := echo.New()
	e.Use(middleware.Recover())
	e.Use(middleware.GzipWithConfig(middleware.GzipConfig{}))
	e.Use(middleware.RequestID())
	middL := mmiddleware.InitMiddleware()
	e.Use(middL.ResponseLogger())
	e.Use(middL.AddContext())
	e.Use(middleware.CORS())
	e.Validator = bValidator.NewCustomValidator(validator.New())

	context := ctx.Background()

	// init mongo client
	context.Info("init mongo")
	uri := viper.GetString("mongo.uri")
	authDBName := viper.GetString("mongo.authDBName")
	dbName := viper.GetString("mongo.dbName")
	enableSSL := viper.GetBool("mongo.enableSSL")
	checkIndex := viper.GetBool("mongo.checkIndex")
	mongoClient := mongoclient.MustConnectMongoClient(uri, authDBName, dbName, enableSSL, true, 2)
	q := query.New(mongoClient, checkIndex)

	// init Redis service
	context.Info("init redis cache")
	redisCacheName := viper.GetString("redis_cache.name")
	redisCacheURI := viper.GetString("redis_cache.uri")
	redisCachePwd := viper.GetString("redis_cache.password")
	redisCachePoolMultiplier := viper.GetFloat64("redis_cache.poolMultiplier")
	redisCachePool := redisclient.MustConnectRedis(redisCacheURI, redisCachePwd, redisclient.RedisParam{
		PoolMultiplier: redisCachePoolMultiplier,
		Retry:          true,
	})
	redisCache := redis.New(redisCacheName, metrics.New(redisCacheName), &redis.Pools{
		Src: redisCachePool,
	})

	mmiddleware.SetupCache(redisCache)

	// init momo gateway
	momoClient := momo.NewClient(&momo.ClientCfg{
		HttpClient:        http.Client{},
		Timeout:           viper.GetDuration("momo.timeout"),
		BaseURL:           viper.GetString("momo.baseUrl"),
		CollectionKey:     viper.GetString("momo.collectionKey"),
		DisbursementKey:   viper.GetString("momo.disbursementKey"),
		ApiUser:           viper.GetString("momo.apiUser"),
		ApiKey:            viper.GetString("momo.apiKey"),
		TargetEnvironment: viper.GetString("momo.targetEnvironment"),
		Currency:          viper.GetString("momo.currency"),
	})

	// init broadcast hub
	hub := broadcast.New(metrics.New("broadcast"))

	// construct repository, usecase and delivery
	hcRepo := hc_repo.New(mongoClient, redisCache)
	productRepo := product_repository.New(q)
	bidRepo := bid_repository.New(q)
	winnerRepo := bid_repository.NewWinner(q)
	if err := bid_repository.EnsureIndexes(context, q); err != nil {
		log.Log().WithField("err", err).Panic("ensure winner index failed")
	}
	paymentRepo := payment_repository.New(q)

	hc := hc_usecase.New(hcRepo)
	auth := auth_usecase.New(viper.GetString("auth.jwtSecret"), viper.GetDuration("auth.tokenTtl"))
	paymentUsecase := payment_usecase.New(
		paymentRepo,
		momoClient,
		viper.GetInt64("payment.feeAmount"),
		viper.GetDuration("payment.pollInterval"),
		viper.GetInt("payment.pollAttempts"),
	)
	productUsecase := product_usecase.New(productRepo, winnerRepo)
	bidUsecase := bid_usecase.New(bidRepo, winnerRepo, productRepo, paymentUsecase, hub, q)

	authMiddleware := auth_middleware.New(auth)

	hc_delivery.New(e, hc)
	auth_delivery.New(e, auth)
	product_delivery.New(e, authMiddleware, productUsecase)
	bid_delivery.New(e, authMiddleware, bidUsecase)
	bid_ws_delivery.New(e, hub)
	payment_delivery.New(e, authMiddleware, paymentUsecase)

	go func() {
		if err := e.Start(viper.GetString("server.address")); err != nil && err != http.ErrServerClosed {
			log.Log().WithField("err", err).Error("shutting down the server")
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server with a timeout of 10 seconds.
	// Use a buffered channel to avoid missing signals as recommended for signal.Notify
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)
	sig := <-quit
	log.Log().WithField("signal", sig).Info("received signal")
	ctx, cancel := ctx.WithTimeout(context, 10*time.Second)
	defer cancel()
	hub.Shutdown(ctx)
	if err := e.Shutdown(ctx); err != nil {
		log.Log().WithField("err", err).Error("shutting down the server")
	} else {
		log.Log().Info("shutdown server successfully")
	}
}
