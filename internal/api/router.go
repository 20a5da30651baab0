package api

import (
	"log/slog"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/simonhull/audioinfo/internal/config"
	"github.com/simonhull/audioinfo/internal/metrics"
	"github.com/simonhull/audioinfo/internal/validate"
)

// SetupRouter configures and returns the router with all routes and
// middleware. Metrics are registered on reg and served from it.
func SetupRouter(cfg *config.Config, log *slog.Logger, reg *prometheus.Registry) *gin.Engine {
	switch {
	case cfg.IsProduction():
		gin.SetMode(gin.ReleaseMode)
	case cfg.Environment == "test":
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.DebugMode)
	}

	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m := metrics.New(reg)
	audio := NewAudioHandler(validate.New(cfg.MaxUploadSize), m, log)

	r := gin.New()
	r.Use(RequestID())
	r.Use(Recovery(log))
	r.Use(AccessLog(log))
	r.Use(CORS(cfg.Origins()))

	r.GET("/alive/", Alive)
	r.POST("/analyze-audio/", audio.AnalyzeAudio)
	r.POST("/analyze-binary-audio/", audio.AnalyzeBinaryAudio)
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg})))

	return r
}
