package middleware

import (
	"coursework/backend/utils"
	"log"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
)

// LoggingMiddleware пишет строку лога на каждый запрос. colors включает ANSI-раскраску.
func LoggingMiddleware(logger *log.Logger, colors bool) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()

		// Передаем управление следующему обработчику
		err := c.Next()
		if err != nil {
			// статус выставит ErrorHandler, но в лог он нужен сейчас
			if e, ok := err.(*fiber.Error); ok {
				c.Status(e.Code)
			}
		}

		status := c.Response().StatusCode()
		method := c.Method()
		if colors {
			logger.Printf("%s %s %s %s %v",
				c.IP(),
				utils.Colorize(method, utils.MethodColor(method)),
				c.Path(),
				utils.Colorize(strconv.Itoa(status), utils.StatusColor(status)),
				time.Since(start),
			)
		} else {
			logger.Printf("%s %s %s %d %v", c.IP(), method, c.Path(), status, time.Since(start))
		}

		return err
	}
}
