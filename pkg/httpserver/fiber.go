package httpserver

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/healthcheck"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"

	"weather-voice/pkg/logger"
)

const (
	bodyLimit   = 64 * 1024
	msgInternal = "Internal server error"
)

func InitFiberServer(appName string, l *logger.Logger) *fiber.App {
	s := fiber.New(fiber.Config{
		AppName:               appName,
		JSONEncoder:           json.Marshal,
		JSONDecoder:           json.Unmarshal,
		BodyLimit:             bodyLimit,
		DisableStartupMessage: true,
		ErrorHandler:          errorHandler(l),
	})

	s.Use(requestid.New(requestid.Config{
		Generator: uuid.NewString,
	}))
	s.Use(recover.New(recover.Config{
		EnableStackTrace: true,
	}))
	s.Use(cors.New())
	s.Use(healthcheck.New(healthcheck.Config{
		LivenessEndpoint:  "/manage/health",
		ReadinessEndpoint: "/manage/ready",
	}))
	s.Use(accessLog(l))

	return s
}

// errorHandler renders every unhandled error as {"error": "..."}. Server
// errors get a fixed message; the detail only goes to the log.
func errorHandler(l *logger.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError
		var fe *fiber.Error
		if errors.As(err, &fe) {
			code = fe.Code
		}
		if code >= fiber.StatusInternalServerError {
			l.Error(err, map[string]any{
				"path":      c.Path(),
				"requestId": c.Locals(requestid.ConfigDefault.ContextKey),
			})
			return c.Status(code).JSON(fiber.Map{"error": msgInternal})
		}
		return c.Status(code).JSON(fiber.Map{"error": err.Error()})
	}
}

func accessLog(l *logger.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		l.Debug("http request", map[string]any{
			"method":    c.Method(),
			"path":      c.Path(),
			"status":    c.Response().StatusCode(),
			"latency":   time.Since(start).String(),
			"requestId": c.Locals(requestid.ConfigDefault.ContextKey),
		})
		return err
	}
}
