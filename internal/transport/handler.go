package transport

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"time"

	"go-mood-analyzer/internal/config"
	apperrors "go-mood-analyzer/internal/errors"
	"go-mood-analyzer/internal/logger"
	"go-mood-analyzer/internal/repository"
	"go-mood-analyzer/internal/service"
	"go-mood-analyzer/internal/version"
	"go-mood-analyzer/pkg/models"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

//go:embed static
var staticFiles embed.FS

// NewHandler builds the HTTP router. metrics may be nil to disable /metrics.
func NewHandler(svc service.MoodAnalysisService, results repository.ResultRepository, metrics http.Handler, cfg *config.Config) http.Handler {
	r := gin.New()

	// Add middleware
	r.Use(
		requestLogger(),
		recovery(),
	)
	if origins := corsMiddleware(cfg.CORSAllowedOrigins); origins != nil {
		r.Use(origins)
	}

	// Configure routes
	static, err := fs.Sub(staticFiles, "static")
	if err != nil {
		panic(fmt.Sprintf("embedded static files: %v", err))
	}
	r.GET("/", index(static))
	r.StaticFS("/static", http.FS(static))
	r.GET("/health", healthCheck(results, cfg))
	if metrics != nil {
		r.GET("/metrics", gin.WrapH(metrics))
	}

	analyze := []gin.HandlerFunc{requestSizeLimiter(cfg.MaxRequestBodySize)}
	if cfg.RateLimitEnabled() {
		analyze = append(analyze, rateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst))
	}
	analyze = append(analyze, analyzeText(svc, cfg))
	r.POST("/analyze_text", analyze...)

	return r
}

func analyzeText(svc service.MoodAnalysisService, cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), cfg.RequestTimeout)
		defer cancel()

		var req models.AnalysisRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				respondError(c, apperrors.NewTooLargeError(err))
				return
			}
			respondError(c, apperrors.NewMissingInputError(err))
			return
		}

		result, err := svc.Analyze(ctx, req)
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, result)
	}
}

func index(static fs.FS) gin.HandlerFunc {
	page, err := fs.ReadFile(static, "index.html")
	if err != nil {
		panic(fmt.Sprintf("embedded index.html: %v", err))
	}
	return func(c *gin.Context) {
		c.Data(http.StatusOK, "text/html; charset=utf-8", page)
	}
}

func healthCheck(results repository.ResultRepository, cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		resp := models.HealthResponse{
			Status:  "available",
			Version: version.Version,
			Time:    time.Now().UTC().Format(time.RFC3339),
		}
		if cfg.CacheEnabled() {
			ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
			defer cancel()
			resp.Cache = "ok"
			if err := results.Ping(ctx); err != nil {
				logger.WithError(err).Warn("Cache health check failed")
				resp.Cache = "unavailable"
			}
		}
		c.JSON(http.StatusOK, resp)
	}
}

func respondError(c *gin.Context, err error) {
	code := apperrors.GetStatusCode(err)
	message := apperrors.PublicMessage(err)

	entry := logger.WithError(err).WithFields(logrus.Fields{
		"status_code": code,
		"path":        c.Request.URL.Path,
		"method":      c.Request.Method,
		"ip":          c.ClientIP(),
	})
	if code >= http.StatusInternalServerError {
		entry.Error("Request failed")
	} else {
		entry.Warn("Request rejected")
	}

	c.AbortWithStatusJSON(code, models.ErrorResponse{Error: message})
}
