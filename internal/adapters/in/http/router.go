package http

import (
	"fmt"
	"log/slog"
	"net/http"
	"sync"

	"lastmile/internal/generated/servers"
	"lastmile/internal/metrics"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	echoSwagger "github.com/swaggo/echo-swagger"
	"github.com/swaggo/swag"
)

const (
	BasePath = "/api/v1"

	// bodyLimit leaves room for a base64 encoded photo at the store's size cap.
	bodyLimit = "16M"
)

type RouterConfig struct {
	Server   *Server
	Logger   *slog.Logger
	Metrics  *metrics.Registry
	Gatherer prometheus.Gatherer

	// UploadDir is served read-only under UploadPrefix when both are set.
	UploadDir    string
	UploadPrefix string
}

// NewRouter builds the echo instance with the API under BasePath and the
// operational endpoints next to it.
func NewRouter(cfg RouterConfig) (*echo.Echo, error) {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = NewErrorHandler(cfg.Logger)

	e.Use(RequestMetrics(cfg.Metrics.HTTPRequestsTotal, cfg.Metrics.HTTPRequestDuration))
	e.Use(RequestLogger(cfg.Logger))
	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(middleware.BodyLimit(bodyLimit))

	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})
	e.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(cfg.Gatherer, promhttp.HandlerOpts{})))

	swagger, err := servers.GetSwagger()
	if err != nil {
		return nil, err
	}
	if err := registerSwaggerDoc(swagger); err != nil {
		return nil, err
	}
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	if cfg.UploadDir != "" && cfg.UploadPrefix != "" {
		e.Static(cfg.UploadPrefix, cfg.UploadDir)
	}

	validationDoc, err := servers.GetSwagger()
	if err != nil {
		return nil, err
	}
	validator, err := OpenAPIValidator(validationDoc, BasePath)
	if err != nil {
		return nil, fmt.Errorf("build request validator: %w", err)
	}

	api := e.Group(BasePath, validator)
	servers.RegisterHandlers(api, cfg.Server)

	return e, nil
}

type swaggerDoc string

func (d swaggerDoc) ReadDoc() string { return string(d) }

var swaggerOnce sync.Once

// registerSwaggerDoc publishes doc to the swag registry read by echo-swagger.
// swag panics on double registration, so only the first call counts.
func registerSwaggerDoc(doc *openapi3.T) error {
	raw, err := doc.MarshalJSON()
	if err != nil {
		return fmt.Errorf("marshal openapi document: %w", err)
	}
	swaggerOnce.Do(func() {
		swag.Register(swag.Name, swaggerDoc(raw))
	})
	return nil
}
