package apiv1

import (
	"fmt"
	"recruit-backend/controllers"
	"recruit-backend/lib/analytics"
	"recruit-backend/lib/candidate"
	"recruit-backend/lib/jobmodule"
	"recruit-backend/middleware"
	"recruit-backend/models"
	apimodels "recruit-backend/models/api"
	"time"

	"github.com/gofiber/fiber/v2"
)

type analyticsApiController struct {
	controllers.BaseAPIController
}

func InitAnalyticsApiRouters(app fiber.Router) {
	controller := analyticsApiController{}
	app.Route("analytics", func(router fiber.Router) {
		router.Use(middleware.RoleRequired(models.AdminRole, models.EmployerRole, models.RecruiterRole))
		router.Get("summary", controller.summary)
		router.Get("summary/xls", controller.summaryExport)
	})
}

// @Summary Marketplace summary
// @Tags Analytics
// @Param   Authorization		header	string	true	"Authorization token"
// @Success 200 {object} apimodels.Response{data=analyticsapimodels.SummaryResult}
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/analytics/summary [get]
func (c *analyticsApiController) summary(ctx *fiber.Ctx) error {
	data, err := jobmodule.Instance.Summarise(ctx.UserContext(), candidate.Resolver(candidate.Instance))
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Could not load analytics summary.")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(data))
}

// @Summary Marketplace summary. Excel export
// @Tags Analytics
// @Param   Authorization		header	string	true	"Authorization token"
// @Success 200
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/analytics/summary/xls [get]
func (c *analyticsApiController) summaryExport(ctx *fiber.Ctx) error {
	data, err := jobmodule.Instance.Summarise(ctx.UserContext(), candidate.Resolver(candidate.Instance))
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Could not load analytics summary.")
	}
	buf, err := analytics.Instance.SummaryExportToXls(data.Summary)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Could not export analytics summary.")
	}
	fileName := fmt.Sprintf("summary_%s.xlsx", time.Now().Format("2006_01_02"))
	ctx.Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	ctx.Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", fileName))
	return ctx.SendStream(buf)
}
