package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/fx"
	"gorm.io/gorm"

	"github.com/attestra/attestra/internal/config"
	"github.com/attestra/attestra/internal/observability"
	obsmiddleware "github.com/attestra/attestra/internal/observability/logger"
	obsmetrics "github.com/attestra/attestra/internal/observability/metrics"
	obstracing "github.com/attestra/attestra/internal/observability/tracing"
	"github.com/attestra/attestra/internal/quote"
	quotedomain "github.com/attestra/attestra/internal/quote/domain"
	"github.com/attestra/attestra/internal/reference"
	referencedomain "github.com/attestra/attestra/internal/reference/domain"
)

var Module = fx.Module("http.server",
	fx.Provide(registerGin),
	reference.Module,
	quote.Module,
	fx.Invoke(NewServer),
	fx.Invoke(run),
)

func NewEngine(obsCfg observability.Config, httpMetrics *obsmetrics.HTTPMetrics) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(obsmiddleware.GinMiddleware(obsmiddleware.MiddlewareConfig{
		Debug:           obsCfg.Debug(),
		ErrorClassifier: classifyErrorForLog,
	}))
	r.Use(obstracing.GinMiddleware())
	r.Use(obsmetrics.GinMiddleware(httpMetrics))
	r.Use(ErrorHandlingMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return r
}

func registerGin(obsCfg observability.Config, httpMetrics *obsmetrics.HTTPMetrics) *gin.Engine {
	return NewEngine(obsCfg, httpMetrics)
}

func run(lc fx.Lifecycle, cfg config.Config, r *gin.Engine) {
	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: r,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					panic(err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	})
}

type Server struct {
	engine   *gin.Engine
	cfg      config.Config
	db       *gorm.DB
	quoteSvc quotedomain.Service
	refrepo  referencedomain.Repository
	pricing  *config.PricingConfigHolder
}

type ServerParams struct {
	fx.In

	Gin      *gin.Engine
	Cfg      config.Config
	DB       *gorm.DB
	QuoteSvc quotedomain.Service
	Refrepo  referencedomain.Repository
	Pricing  *config.PricingConfigHolder
}

func NewServer(p ServerParams) *Server {
	s := &Server{
		engine:   p.Gin,
		cfg:      p.Cfg,
		db:       p.DB,
		quoteSvc: p.QuoteSvc,
		refrepo:  p.Refrepo,
		pricing:  p.Pricing,
	}
	s.registerRoutes()
	return s
}

func (s *Server) registerRoutes() {
	v1 := s.engine.Group("/v1")

	ref := v1.Group("/reference")
	ref.GET("/languages", s.ListLanguages)
	ref.GET("/certification-types", s.ListCertificationTypes)
	ref.GET("/delivery-options", s.ListDeliveryOptions)
	ref.GET("/tax-rates", s.ListTaxRates)

	v1.GET("/pricing/config", s.GetPricingConfig)
	v1.POST("/pricing/preview", s.PreviewQuote)

	quotes := v1.Group("/quotes")
	quotes.POST("", s.CreateQuote)
	quotes.GET("", s.ListQuotes)
	quotes.GET("/:id", s.GetQuote)
	quotes.POST("/:id/recalculate", s.RecalculateQuote)
	quotes.POST("/:id/documents", s.AddDocument)
	quotes.PUT("/:id/documents/:document_id", s.UpdateDocument)
	quotes.DELETE("/:id/documents/:document_id", s.RemoveDocument)
	quotes.PUT("/:id/turnaround", s.SetTurnaround)
	quotes.PUT("/:id/rush-override", s.SetRushOverride)
	quotes.DELETE("/:id/rush-override", s.ClearRushOverride)
	quotes.PUT("/:id/delivery-option", s.SetDeliveryOption)
	quotes.PUT("/:id/overrides", s.SetOverrides)
	quotes.POST("/:id/adjustments", s.AddAdjustment)
	quotes.DELETE("/:id/adjustments/:adjustment_id", s.RemoveAdjustment)
}
