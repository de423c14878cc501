package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// LocalsUserID is the fiber locals key under which the verified caller's
// id is stored.
const LocalsUserID = "user_id"

// Middleware guards the API with bearer-token verification. When the
// service is not configured with a secret the middleware passes every
// request through untouched.
type Middleware struct {
	service *Service
	logger  *zap.Logger
}

func NewMiddleware(service *Service, logger *zap.Logger) *Middleware {
	return &Middleware{
		service: service,
		logger:  logger,
	}
}

func (m *Middleware) Handle(c *fiber.Ctx) error {
	if !m.service.Enabled() {
		return c.Next()
	}

	header := c.Get(fiber.HeaderAuthorization)
	token, found := strings.CutPrefix(header, "Bearer ")
	if !found || token == "" {
		return fiber.NewError(fiber.StatusUnauthorized, ErrTokenMissing.Error())
	}

	identity, err := m.service.Verify(token)
	if err != nil {
		m.logger.Debug("token verification failed", zap.Error(err))
		return fiber.NewError(fiber.StatusUnauthorized, ErrTokenInvalid.Error())
	}

	c.Locals(LocalsUserID, identity.UserID)

	return c.Next()
}

// UserID extracts the verified caller id set by the middleware, or ""
// when authentication is disabled.
func UserID(c *fiber.Ctx) string {
	id, _ := c.Locals(LocalsUserID).(string)
	return id
}
