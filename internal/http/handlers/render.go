package handlers

import (
	"context"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/gofiber/fiber/v2"
)

// Layout wraps every page.
const Layout = "layouts/main"

func render(c *fiber.Ctx, view string, data fiber.Map) error {
	return c.Render(view, data, Layout)
}

// renderFailure shows the error text on the same page, with HTTP 200 like a
// regular form round-trip.
func renderFailure(c *fiber.Ctx, view string, data fiber.Map, err error) error {
	data["Success"] = false
	data["Error"] = true
	data["ErrorMessage"] = err.Error()
	return render(c, view, data)
}

func renderTx(c *fiber.Ctx, view string, data fiber.Map, hash common.Hash) error {
	data["Success"] = true
	data["TxHash"] = hash.Hex()
	return render(c, view, data)
}

func isSubmit(c *fiber.Ctx) bool {
	return c.Method() == fiber.MethodPost
}

// requestContext bounds the outbound node call; timeout <= 0 means no bound.
func requestContext(c *fiber.Ctx, timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout <= 0 {
		return context.WithCancel(c.UserContext())
	}
	return context.WithTimeout(c.UserContext(), timeout)
}
