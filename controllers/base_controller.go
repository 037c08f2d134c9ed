package controllers

import (
	"recruit-backend/middleware"
	"recruit-backend/models"
	apimodels "recruit-backend/models/api"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

type BaseAPIController struct{}

func (c *BaseAPIController) BodyParser(ctx *fiber.Ctx, out interface{}) error {
	if err := ctx.BodyParser(out); err != nil {
		log.WithError(err).Error("request parse error")
		return errors.New("could not read request data")
	}
	return nil
}

func (c *BaseAPIController) GetID(ctx *fiber.Ctx) (int64, error) {
	id, err := strconv.ParseInt(ctx.Params("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, errors.New("invalid id")
	}
	return id, nil
}

func (c *BaseAPIController) GetLogger(ctx *fiber.Ctx) *log.Entry {
	return log.
		WithField("path", ctx.Path()).
		WithField("method", ctx.Method()).
		WithField("user_id", middleware.GetUserID(ctx)).
		WithField("role", middleware.GetUserRole(ctx))
}

// SendError logs err and answers with msg, 404 for missing records and 403 for denied access.
func (c *BaseAPIController) SendError(ctx *fiber.Ctx, logger *log.Entry, err error, msg string) error {
	if errors.Is(err, models.ErrNotFound) {
		return ctx.Status(fiber.StatusNotFound).JSON(apimodels.NewError(err.Error()))
	}
	var authErr *models.AuthorizationError
	if errors.As(err, &authErr) {
		return ctx.Status(fiber.StatusForbidden).JSON(apimodels.NewError(authErr.Message))
	}
	logger.WithError(err).Error(msg)
	return ctx.Status(fiber.StatusInternalServerError).JSON(apimodels.NewError(msg))
}

func (c *BaseAPIController) SendFieldErrors(ctx *fiber.Ctx, status int, errs apimodels.FieldErrors) error {
	return ctx.Status(status).JSON(apimodels.NewFieldErrorResponse(errs))
}
