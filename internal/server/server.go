package server

import (
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"listing-checkout/internal/handler"
	authmw "listing-checkout/internal/middleware"
)

type Server struct {
	echo                *echo.Echo
	catalogHandler      *handler.CatalogHandler
	checkoutHandler     *handler.CheckoutHandler
	paymentHandler      *handler.PaymentHandler
	verificationHandler *handler.VerificationHandler
}

func NewServer(
	jwtSecret string,
	log *zap.Logger,
	catalogHandler *handler.CatalogHandler,
	checkoutHandler *handler.CheckoutHandler,
	paymentHandler *handler.PaymentHandler,
	verificationHandler *handler.VerificationHandler,
) *Server {
	e := echo.New()
	e.HideBanner = true

	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogStatus: true,
		LogURI:    true,
		LogMethod: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			log.Info("request",
				zap.String("method", v.Method),
				zap.String("uri", v.URI),
				zap.Int("status", v.Status),
			)
			return nil
		},
	}))
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	s := &Server{
		echo:                e,
		catalogHandler:      catalogHandler,
		checkoutHandler:     checkoutHandler,
		paymentHandler:      paymentHandler,
		verificationHandler: verificationHandler,
	}

	s.setupRoutes(jwtSecret)
	return s
}

func (s *Server) setupRoutes(jwtSecret string) {
	api := s.echo.Group("/api")

	api.GET("/health", func(c echo.Context) error {
		return c.JSON(200, map[string]string{"status": "ok"})
	})

	api.GET("/plans", s.catalogHandler.GetPlans)

	authed := api.Group("", authmw.Auth(jwtSecret))

	// -------- checkout --------
	chk := authed.Group("/checkout")
	chk.GET("", s.checkoutHandler.GetSelection)
	chk.POST("/plan", s.checkoutHandler.ChoosePlan)
	chk.POST("/duration", s.checkoutHandler.ChooseDuration)
	chk.POST("/continue", s.checkoutHandler.Continue)
	chk.DELETE("", s.checkoutHandler.Abandon)

	authed.POST("/payment", s.paymentHandler.Pay)

	// -------- identity verification --------
	ver := authed.Group("/verification")
	ver.GET("/documents", s.verificationHandler.GetSlots)
	ver.POST("/documents/:slot", s.verificationHandler.BindDocument)
	ver.POST("/submit", s.verificationHandler.Submit)
}

func (s *Server) Start(address string) error {
	return s.echo.Start(address)
}

func (s *Server) Shutdown() error {
	return s.echo.Close()
}
