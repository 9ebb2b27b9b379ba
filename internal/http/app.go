package http

import (
	"errors"
	nethttp "net/http"

	"github.com/estate-agency/frontend/internal/http/handlers"
	"github.com/estate-agency/frontend/internal/http/views"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/template/html/v2"
	"go.uber.org/zap"
)

// NotFoundView is shared by the 404 and 500 pages.
const NotFoundView = "404"

// NewApp creates the Fiber app with embedded views and the fallback error page.
func NewApp(log *zap.Logger) *fiber.App {
	engine := html.NewFileSystem(nethttp.FS(views.FS), ".html")

	return fiber.New(fiber.Config{
		Views:                 engine,
		DisableStartupMessage: true,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			var e *fiber.Error
			if errors.As(err, &e) {
				code = e.Code
			}
			if code >= fiber.StatusInternalServerError {
				log.Error("unhandled error", zap.String("path", c.Path()), zap.Error(err))
			}

			c.Status(code)
			if rerr := c.Render(NotFoundView, fiber.Map{"Status": code}, handlers.Layout); rerr != nil {
				log.Error("failed to render error page", zap.Error(rerr))
				return c.Status(code).SendString(nethttp.StatusText(code))
			}
			return nil
		},
	})
}
