package openapifx

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"github.com/swaggo/swag"
	"go.uber.org/zap"
)

type Config struct {
	Enabled    bool
	PublicHost string
	PublicPath string
}

// Handler serves the generated OpenAPI document and the Swagger UI.
type Handler struct {
	config Config
	spec   *swag.Spec
	logger *zap.Logger
}

func New(config Config, spec *swag.Spec, logger *zap.Logger) *Handler {
	return &Handler{
		config: config,
		spec:   spec,
		logger: logger,
	}
}

func (h *Handler) Register(r fiber.Router) {
	if !h.config.Enabled {
		h.logger.Debug("openapi docs disabled")
		return
	}

	if h.config.PublicHost != "" {
		h.spec.Host = h.config.PublicHost
	}
	if h.config.PublicPath != "" {
		h.spec.BasePath = h.config.PublicPath
	}

	r.Get("/*", swagger.HandlerDefault)
}
