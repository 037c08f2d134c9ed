package fiberlog

import (
	"time"

	"github.com/gofiber/fiber/v2"
)

const (
	TagPid      = "pid"
	TagLatency  = "latency"
	TagStatus   = "status"
	TagMethod   = "method"
	TagPath     = "path"
	TagURL      = "url"
	TagIP       = "ip"
	TagBody     = "body"
	TagResBody  = "resBody"
	RequestID   = "request_id"
	bodyMaxSize = 4096
)

// FuncTag produces the value logged under a tag.
type FuncTag func(c *fiber.Ctx, d *data) interface{}

type data struct {
	pid   int
	start time.Time
	end   time.Time
}

func getFuncTagMap(cfg Config) map[string]FuncTag {
	all := map[string]FuncTag{
		TagPid: func(c *fiber.Ctx, d *data) interface{} {
			return d.pid
		},
		TagLatency: func(c *fiber.Ctx, d *data) interface{} {
			return d.end.Sub(d.start).String()
		},
		TagStatus: func(c *fiber.Ctx, d *data) interface{} {
			return c.Response().StatusCode()
		},
		TagMethod: func(c *fiber.Ctx, d *data) interface{} {
			return c.Method()
		},
		TagPath: func(c *fiber.Ctx, d *data) interface{} {
			return c.Path()
		},
		TagURL: func(c *fiber.Ctx, d *data) interface{} {
			return c.OriginalURL()
		},
		TagIP: func(c *fiber.Ctx, d *data) interface{} {
			return c.IP()
		},
		TagBody: func(c *fiber.Ctx, d *data) interface{} {
			return truncate(c.Body())
		},
		TagResBody: func(c *fiber.Ctx, d *data) interface{} {
			return truncate(c.Response().Body())
		},
		RequestID: func(c *fiber.Ctx, d *data) interface{} {
			return c.GetRespHeader(fiber.HeaderXRequestID, c.Get(fiber.HeaderXRequestID))
		},
	}
	result := make(map[string]FuncTag, len(cfg.Tags))
	for _, tag := range cfg.Tags {
		if ft, ok := all[tag]; ok {
			result[tag] = ft
		}
	}
	return result
}

func truncate(body []byte) string {
	if len(body) > bodyMaxSize {
		return string(body[:bodyMaxSize]) + "..."
	}
	return string(body)
}
