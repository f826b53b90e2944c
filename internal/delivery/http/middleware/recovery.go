package middleware

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"
)

// Recovery перехватывает панику обработчика и пишет её в лог с request_id.
// Ответ формирует ErrorHandler сервера (500 INTERNAL_ERROR).
func Recovery(logger *zap.Logger, enableStackTrace bool) fiber.Handler {
	return recover.New(recover.Config{
		EnableStackTrace: enableStackTrace,
		StackTraceHandler: func(c *fiber.Ctx, e interface{}) {
			requestID, _ := c.Locals("request_id").(string)
			logger.Error("Panic recovered",
				zap.String("request_id", requestID),
				zap.String("method", c.Method()),
				zap.String("path", c.Path()),
				zap.String("panic", fmt.Sprint(e)),
				zap.Stack("stack"),
			)
		},
	})
}
