package middleware

import (
	"strings"
	"time"

	"github.com/estate-agency/frontend/internal/auth"
	"github.com/estate-agency/frontend/internal/config"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

const (
	SessionCookie = "session"
	CtxAccount    = "account"
)

// SetSession выдаёт cookie сессии после успешной разблокировки аккаунта.
func SetSession(c *fiber.Ctx, cfg *config.Config, account string) error {
	token, err := auth.GenerateSessionToken(cfg.SessionSecret, account, cfg.SessionTTL)
	if err != nil {
		return err
	}
	c.Cookie(&fiber.Cookie{
		Name:     SessionCookie,
		Value:    token,
		Path:     "/",
		Expires:  time.Now().Add(cfg.SessionTTL),
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
	return nil
}

// SessionMiddleware records the session account, if any. With RequireSession
// it also guards routes with an :account param: the session must belong to it.
func SessionMiddleware(cfg *config.Config, log *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenStr := c.Cookies(SessionCookie)

		var account string
		if tokenStr != "" {
			claims, err := auth.ParseSessionToken(cfg.SessionSecret, tokenStr)
			if err != nil {
				log.Debug("session parse error", zap.Error(err))
			} else {
				account = claims.Account
			}
		}

		if target := c.Params("account"); cfg.RequireSession && target != "" && !strings.EqualFold(account, target) {
			return c.Redirect("/")
		}

		if account != "" {
			c.Locals(CtxAccount, account)
		}
		return c.Next()
	}
}

func GetSessionAccount(c *fiber.Ctx) string {
	account, _ := c.Locals(CtxAccount).(string)
	return account
}
