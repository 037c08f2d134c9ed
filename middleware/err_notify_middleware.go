package middleware

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"
	log "github.com/sirupsen/logrus"
)

// ErrNotify posts a short report of every 5xx response to addr.
func ErrNotify(addr string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		err := c.Next()
		statusCode := c.Response().StatusCode()
		if addr == "" || statusCode < http.StatusInternalServerError {
			return err
		}
		body := string(c.Response().Body())

		var data struct {
			Status  string `json:"status"`
			Message string `json:"message"`
		}
		if unmErr := json.Unmarshal(c.Response().Body(), &data); unmErr != nil {
			log.WithError(unmErr).Warn("error unmarshalling response body in middleware")
		}

		method := c.Method()
		path := c.OriginalURL()
		if r := c.Route(); r != nil {
			path = r.Path
		}
		msg := data.Message
		if msg == "" {
			msg = body
		}

		go func() {
			payload := fmt.Sprintf(
				`{"code":%d,"method":%q,"path":%q,"error":%q}`,
				statusCode, method, path, msg)
			resp, reqErr := http.Post(addr, "application/json", strings.NewReader(payload))
			if reqErr != nil {
				log.WithError(reqErr).Warn("error sending error notification")
				return
			}
			_ = resp.Body.Close()
		}()
		return err
	}
}
