package server

import (
	"net/http"
	"time"

	"garage/internal/config"
	"garage/internal/handler"
	mw "garage/internal/middleware"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/sirupsen/logrus"
)

// ルートとミドルウェアを組み立てたechoを返す
func New(
	cfg config.Config,
	logg *logrus.Logger,
	authH *handler.AuthHandler,
	stockH *handler.StockHandler,
	warehouseH *handler.WarehouseHandler,
	partH *handler.PartHandler,
	auditH *handler.AuditLogHandler,
) *echo.Echo {
	e := echo.New()
	e.HideBanner = true

	e.Use(echomw.Recover())
	e.Use(requestLogger(logg))

	e.GET("/healthz", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	//公開ルート（JWT不要）
	public := e.Group("")
	authH.RegisterRoutes(public)

	//認証必須ルート。claimsのtenant_idで全アクセスを絞る
	api := e.Group("", mw.AuthJWT(cfg))
	managerOnly := mw.ManagerRoleGuard()

	stockH.RegisterRoutes(api)
	warehouseH.RegisterRoutes(api, managerOnly)
	partH.RegisterRoutes(api, managerOnly)
	auditH.RegisterRoutes(api, managerOnly)

	return e
}

func Start(e *echo.Echo, addr string) error {
	return e.Start(addr)
}

// 1リクエスト1行のアクセスログ
func requestLogger(logg *logrus.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			if err != nil {
				c.Error(err)
			}

			logg.WithFields(logrus.Fields{
				"method":  c.Request().Method,
				"path":    c.Request().URL.Path,
				"status":  c.Response().Status,
				"latency": time.Since(start).String(),
			}).Info("request")

			return nil
		}
	}
}
