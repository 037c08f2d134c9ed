package apiv1

import (
	"recruit-backend/controllers"
	"recruit-backend/lib/candidate"
	"recruit-backend/lib/jobmodule"
	"recruit-backend/middleware"
	"recruit-backend/models"
	apimodels "recruit-backend/models/api"
	applicationapimodels "recruit-backend/models/api/application"

	"github.com/gofiber/fiber/v2"
)

type applicationApiController struct {
	controllers.BaseAPIController
}

func InitApplicationApiRouters(app fiber.Router) {
	controller := applicationApiController{}
	app.Route("applications", func(router fiber.Router) {
		router.Post("list", controller.list)
		router.Get(":id", controller.get)
		router.Put(":id/withdraw", middleware.RoleRequired(models.CandidateRole), controller.withdraw)
		router.Put(":id/status", middleware.RoleRequired(models.EmployerRole, models.RecruiterRole, models.AdminRole), controller.changeStatus)
	})
}

// @Summary Application list
// @Tags Applications
// @Param   Authorization		header	string	true	"Authorization token"
// @Param	body body	 applicationapimodels.ApplicationFilter	true	"request body"
// @Success 200 {object} apimodels.Response{data=applicationapimodels.ApplicationList}
// @Failure 400 {object} apimodels.Response
// @Failure 403 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/applications/list [post]
func (c *applicationApiController) list(ctx *fiber.Ctx) error {
	var payload applicationapimodels.ApplicationFilter
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	list, err := jobmodule.Instance.ListApplicationsAs(ctx.UserContext(), payload, middleware.GetUserRole(ctx), middleware.GetUserID(ctx))
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Could not load applications.")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(list))
}

// @Summary Application
// @Tags Applications
// @Param   Authorization		header	string	true	"Authorization token"
// @Param   id          		path    int64  	true		"application ID"
// @Success 200 {object} apimodels.Response{data=applicationapimodels.ApplicationDetail}
// @Failure 400 {object} apimodels.Response
// @Failure 403 {object} apimodels.Response
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/applications/{id} [get]
func (c *applicationApiController) get(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	detail, err := jobmodule.Instance.ShowApplicationAs(ctx.UserContext(), id, middleware.GetUserRole(ctx), middleware.GetUserID(ctx), candidate.Resolver(candidate.Instance))
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx).WithField("application_id", id), err, "Could not load application.")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(detail))
}

// @Summary Withdraw application
// @Tags Applications
// @Param   Authorization		header	string	true	"Authorization token"
// @Param   id          		path    int64  	true		"application ID"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @router /api/v1/applications/{id}/withdraw [put]
func (c *applicationApiController) withdraw(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	errs := jobmodule.Instance.WithdrawApplication(ctx.UserContext(), id, middleware.GetUserID(ctx))
	if errs.HasErrors() {
		return c.SendFieldErrors(ctx, fiber.StatusBadRequest, errs)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Change application status
// @Tags Applications
// @Param   Authorization		header	string	true	"Authorization token"
// @Param   id          		path    int64  	true		"application ID"
// @Param	body body	 applicationapimodels.StatusChange	true	"request body"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @router /api/v1/applications/{id}/status [put]
func (c *applicationApiController) changeStatus(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	var payload applicationapimodels.StatusChange
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	errs := jobmodule.Instance.ChangeApplicationStatus(ctx.UserContext(), id, middleware.GetUserRole(ctx), middleware.GetUserID(ctx), payload.Status)
	if errs.HasErrors() {
		return c.SendFieldErrors(ctx, fiber.StatusBadRequest, errs)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}
