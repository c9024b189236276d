package main

import (
	"garage/internal/config"
	"garage/internal/domain/model"
	"garage/internal/handler"
	"garage/internal/infra/db"
	infraRepo "garage/internal/infra/repository"
	"garage/internal/logging"
	"garage/internal/server"
	"garage/internal/usecase"
	"garage/internal/validator"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

func main() {
	//ローカル開発用。.envが無くてもエラーにしない
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("config load failed")
	}

	logg := logging.New(cfg.GoEnv)

	//DB接続
	gormDB, err := db.Connect()
	if err != nil {
		logg.WithError(err).Fatal("db connect failed")
	}

	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.Warehouse{},
		&model.Part{},
		&model.WarehouseStock{},
		&model.StockMovement{},
		&model.AuditLog{},
	); err != nil {
		logg.WithError(err).Fatal("migrate failed")
	}

	//Repository（GORM実装）生成
	userRepo := infraRepo.NewUserGormRepository(gormDB)
	partRepo := infraRepo.NewPartGormRepository(gormDB)
	warehouseRepo := infraRepo.NewWarehouseGormRepository(gormDB)
	stockRepo := infraRepo.NewWarehouseStockGormRepository(gormDB)
	movementRepo := infraRepo.NewStockMovementGormRepository(gormDB)
	auditRepo := infraRepo.NewAuditLogGormRepository(gormDB)
	txManager := infraRepo.NewTxManagerGorm(gormDB)

	//Usecase生成
	authUC := usecase.NewAuthUsecase(cfg, userRepo, validator.NewAuthValidator(userRepo))
	stockUC := usecase.NewStockUsecase(txManager)
	queryUC := usecase.NewStockQueryUsecase(warehouseRepo, stockRepo, movementRepo)
	warehouseUC := usecase.NewWarehouseUsecase(warehouseRepo, auditRepo)
	partUC := usecase.NewPartUsecase(partRepo, auditRepo)
	auditUC := usecase.NewAuditLogUsecase(auditRepo)

	//Handler生成
	authH := handler.NewAuthHandler(authUC)
	stockH := handler.NewStockHandler(stockUC, queryUC)
	warehouseH := handler.NewWarehouseHandler(warehouseUC, queryUC)
	partH := handler.NewPartHandler(partUC)
	auditH := handler.NewAuditLogHandler(auditUC)

	//Server起動
	e := server.New(cfg, logg, authH, stockH, warehouseH, partH, auditH)

	addr := ":" + cfg.Port
	logg.WithFields(logrus.Fields{"addr": addr, "env": cfg.GoEnv}).Info("server starting")

	if err := server.Start(e, addr); err != nil {
		logg.WithError(err).Fatal("server stopped")
	}
}
