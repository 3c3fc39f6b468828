package middleware

import (
	"strings"
	"time"

	"bloodbank/domain"
	"bloodbank/internal/api/presenters"
	"bloodbank/pkg/jwt"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/limiter"
)

const (
	CtxUserIDKey = "user_id"
	CtxRoleKey   = "role"
)

type (
	Middleware interface {
		CORSMiddleware() fiber.Handler
		AuthMiddleware(jwtService jwt.JWTService) fiber.Handler
		RateLimiter(max int, expiration time.Duration) fiber.Handler
	}

	middleware struct {
		allowOrigins string
		storage      fiber.Storage
	}
)

// NewMiddleware builds the shared middleware set. A nil storage keeps limiter
// counters in process memory.
func NewMiddleware(allowOrigins string, storage fiber.Storage) Middleware {
	if allowOrigins == "" {
		allowOrigins = "*"
	}
	return &middleware{allowOrigins: allowOrigins, storage: storage}
}

func (m *middleware) CORSMiddleware() fiber.Handler {
	origins := strings.Split(m.allowOrigins, ",")
	for i := range origins {
		origins[i] = strings.TrimSpace(origins[i])
	}
	return cors.New(cors.Config{
		AllowOrigins: strings.Join(origins, ","),
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET,POST,PUT,PATCH,DELETE,OPTIONS",
	})
}

func (m *middleware) AuthMiddleware(jwtService jwt.JWTService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get(fiber.HeaderAuthorization)
		if header == "" {
			return presenters.ErrorResponse(c, fiber.StatusUnauthorized, domain.MessageFailedGetToken, domain.ErrTokenNotFound)
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
			return presenters.ErrorResponse(c, fiber.StatusUnauthorized, domain.MessageFailedTokenInvalid, domain.ErrTokenInvalid)
		}

		principal, err := jwtService.GetPrincipalByToken(strings.TrimSpace(parts[1]))
		if err != nil {
			return presenters.ErrorResponse(c, fiber.StatusUnauthorized, domain.MessageFailedTokenInvalid, err)
		}

		c.Locals(CtxUserIDKey, principal.UserID)
		c.Locals(CtxRoleKey, principal.Role)
		return c.Next()
	}
}

func (m *middleware) RateLimiter(max int, expiration time.Duration) fiber.Handler {
	return limiter.New(limiter.Config{
		Max:        max,
		Expiration: expiration,
		Storage:    m.storage,
		LimitReached: func(c *fiber.Ctx) error {
			return presenters.ErrorResponse(c, fiber.StatusTooManyRequests, domain.MessageFailedProcessRequest, fiber.ErrTooManyRequests)
		},
	})
}

// Principal reads the caller placed in the context by AuthMiddleware. Routes
// without the middleware yield the anonymous principal.
func Principal(c *fiber.Ctx) domain.Principal {
	userID, _ := c.Locals(CtxUserIDKey).(string)
	role, _ := c.Locals(CtxRoleKey).(string)
	return domain.Principal{UserID: userID, Role: role}
}
