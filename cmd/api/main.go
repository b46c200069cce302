package main

import (
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/sirupsen/logrus"

	httpadp "farmtally-backend/internal/adapter/http"
	"farmtally-backend/internal/adapter/middleware"
	"farmtally-backend/internal/adapter/repository/mysql"
	"farmtally-backend/internal/config"
	advdom "farmtally-backend/internal/domain/advance"
	deldom "farmtally-backend/internal/domain/delivery"
	farmdom "farmtally-backend/internal/domain/farmer"
	lorrydom "farmtally-backend/internal/domain/lorry"
	"farmtally-backend/internal/infrastructure/cache"
	"farmtally-backend/internal/infrastructure/db"
	advuc "farmtally-backend/internal/usecase/advance"
	deluc "farmtally-backend/internal/usecase/delivery"
	farmuc "farmtally-backend/internal/usecase/farmer"
	lorryuc "farmtally-backend/internal/usecase/lorry"
)

func main() {
	logrus.SetFormatter(&logrus.JSONFormatter{})

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logrus.WithError(err).Fatal("config validation failed")
	}

	gdb, err := db.OpenGorm(cfg.MySQLDSN())
	if err != nil {
		logrus.WithError(err).Fatal("open mysql")
	}
	if err := gdb.AutoMigrate(
		&farmdom.Farmer{},
		&lorrydom.Lorry{},
		&deldom.Delivery{},
		&advdom.AdvancePayment{},
	); err != nil {
		logrus.WithError(err).Fatal("migrate schema")
	}

	rdb, err := cache.OpenRedis(cfg.RedisAddr, cfg.RedisDB)
	if err != nil {
		logrus.WithError(err).Fatal("open redis")
	}

	txm := mysql.NewGormUoW(gdb)

	dupPolicy := deluc.DuplicateReplace
	if cfg.RejectDuplicateFarmer {
		dupPolicy = deluc.DuplicateReject
	}
	deliveries := deluc.NewUsecase(txm, deluc.Config{
		InterestRate: cfg.InterestRate,
		OnDuplicate:  dupPolicy,
	})
	lorries := lorryuc.NewUsecase(txm)
	farmers := farmuc.NewUsecase(txm)
	advances := advuc.NewUsecase(txm, advuc.Config{ManagerCanCreate: cfg.ManagerCanCreateAdvance})

	h := httpadp.NewHandler()
	dh := httpadp.NewDeliveryHandler(deliveries)
	lh := httpadp.NewLorryHandler(lorries)
	fh := httpadp.NewFarmerHandler(farmers)
	ah := httpadp.NewAdvanceHandler(advances)

	e := echo.New()
	e.HideBanner = true
	e.Validator = httpadp.NewValidator()
	e.Use(echomw.Logger(), echomw.Recover())

	e.GET("/health", h.Health)

	api := e.Group("",
		middleware.JWT([]byte(cfg.JWTSecret)),
		middleware.Idempotency(rdb, time.Duration(cfg.IdempTTLSecs)*time.Second),
	)

	api.POST("/lorries", lh.Create)
	api.GET("/lorries", lh.List)
	api.GET("/lorries/:lorry_id", lh.Get)
	api.DELETE("/lorries/:lorry_id", lh.Delete)
	api.POST("/lorries/:lorry_id/assign", lh.Assign)
	api.POST("/lorries/:lorry_id/unassign", lh.Unassign)
	api.POST("/lorries/:lorry_id/submit", lh.Submit)
	api.POST("/lorries/:lorry_id/send-to-dealer", lh.SendToDealer)

	api.POST("/lorries/:lorry_id/deliveries", dh.AddFarmer)
	api.GET("/lorries/:lorry_id/deliveries", dh.ListByLorry)
	api.GET("/deliveries/:delivery_id", dh.Get)
	api.PUT("/deliveries/:delivery_id", dh.Update)
	api.PUT("/deliveries/:delivery_id/quality", dh.SetQuality)
	api.PUT("/lorries/:lorry_id/deliveries/:delivery_id/pricing", dh.SetPricing)
	api.DELETE("/lorries/:lorry_id/deliveries/:delivery_id", dh.Delete)

	api.POST("/farmers", fh.Create)
	api.GET("/farmers", fh.List)
	api.GET("/farmers/:farmer_id", fh.Get)
	api.POST("/farmers/:farmer_id/deactivate", fh.Deactivate)

	api.POST("/advances", ah.Create)
	api.POST("/advances/:advance_id/reverse", ah.Reverse)
	api.GET("/farmers/:farmer_id/advances", ah.ListByFarmer)
	api.GET("/farmers/:farmer_id/advances/balance", ah.Balance)

	addr := ":" + cfg.AppPort
	logrus.WithField("addr", addr).Info("listening")
	if err := e.Start(addr); err != nil {
		logrus.Fatal(err)
	}
}
