package apiv1

import (
	"recruit-backend/controllers"
	"recruit-backend/lib/jobmodule"
	"recruit-backend/middleware"
	"recruit-backend/models"
	apimodels "recruit-backend/models/api"
	applicationapimodels "recruit-backend/models/api/application"
	jobapimodels "recruit-backend/models/api/job"

	"github.com/gofiber/fiber/v2"
)

type jobApiController struct {
	controllers.BaseAPIController
}

func InitJobApiRouters(app fiber.Router) {
	controller := jobApiController{}
	app.Route("jobs", func(router fiber.Router) {
		router.Post("list", controller.list)
		router.Get(":id", controller.get)
		router.Post("", middleware.RoleRequired(models.EmployerRole, models.RecruiterRole, models.AdminRole), controller.create)
		router.Put(":id", middleware.RoleRequired(models.EmployerRole, models.RecruiterRole, models.AdminRole), controller.update)
		router.Post(":id/apply", middleware.RoleRequired(models.CandidateRole), controller.apply)
	})
}

// @Summary Publish job
// @Tags Jobs
// @Param   Authorization		header	string	true	"Authorization token"
// @Param	body body	 jobapimodels.JobInput	true	"request body"
// @Success 200 {object} apimodels.Response{data=int64}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/jobs [post]
func (c *jobApiController) create(ctx *fiber.Ctx) error {
	var payload jobapimodels.JobInput
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	id, errs := jobmodule.Instance.PublishJob(ctx.UserContext(), middleware.GetUserRole(ctx), middleware.GetUserID(ctx), payload)
	if errs.HasErrors() {
		return c.SendFieldErrors(ctx, fiber.StatusBadRequest, errs)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(id))
}

// @Summary Update job
// @Tags Jobs
// @Param   Authorization		header	string	true	"Authorization token"
// @Param   id          		path    int64  	true		"job ID"
// @Param	body body	 jobapimodels.JobInput	true	"request body"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/jobs/{id} [put]
func (c *jobApiController) update(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	var payload jobapimodels.JobInput
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	_, errs := jobmodule.Instance.UpdateJob(ctx.UserContext(), id, middleware.GetUserRole(ctx), middleware.GetUserID(ctx), payload, nil)
	if errs.HasErrors() {
		return c.SendFieldErrors(ctx, fiber.StatusBadRequest, errs)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Job list
// @Tags Jobs
// @Param   Authorization		header	string	true	"Authorization token"
// @Param	body body	 jobapimodels.JobFilter	true	"request body"
// @Success 200 {object} apimodels.Response{data=jobapimodels.JobList}
// @Failure 400 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/jobs/list [post]
func (c *jobApiController) list(ctx *fiber.Ctx) error {
	var payload jobapimodels.JobFilter
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	list, err := jobmodule.Instance.ListJobs(ctx.UserContext(), payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Could not load jobs.")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewScrollerResponse(list, list.Count))
}

// @Summary Job
// @Tags Jobs
// @Param   Authorization		header	string	true	"Authorization token"
// @Param   id          		path    int64  	true		"job ID"
// @Success 200 {object} apimodels.Response{data=jobapimodels.JobDetail}
// @Failure 400 {object} apimodels.Response
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/jobs/{id} [get]
func (c *jobApiController) get(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	detail, err := jobmodule.Instance.ShowJob(ctx.UserContext(), id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx).WithField("job_id", id), err, "Could not load job.")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(detail))
}

// @Summary Apply to job
// @Tags Jobs
// @Param   Authorization		header	string	true	"Authorization token"
// @Param   id          		path    int64  	true		"job ID"
// @Param	body body	 applicationapimodels.ApplyInput	true	"request body"
// @Success 200 {object} apimodels.Response{data=applicationapimodels.ApplyResult}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 409 {object} apimodels.Response
// @router /api/v1/jobs/{id}/apply [post]
func (c *jobApiController) apply(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	var payload applicationapimodels.ApplyInput
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	result := jobmodule.Instance.ApplyToJob(ctx.UserContext(), id, middleware.GetUserID(ctx), payload)
	if result.Errors.HasErrors() {
		status := fiber.StatusBadRequest
		if applicationapimodels.IsDuplicate(result.Errors) {
			status = fiber.StatusConflict
		}
		return ctx.Status(status).JSON(apimodels.Response{
			Status:  "fail",
			Message: result.Errors.General(),
			Data:    result,
		})
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(result))
}
