package controllers

import (
	"github.com/classpad/classpad-server/pkg/errcode"
	"github.com/gofiber/fiber/v2"
)

type apiResponse struct {
	Status  string       `json:"status"`
	Code    errcode.Code `json:"code,omitempty"`
	Message string       `json:"message,omitempty"`
	Data    interface{}  `json:"data,omitempty"`
}

func sendData(c *fiber.Ctx, data interface{}) error {
	return c.JSON(&apiResponse{
		Status: "success",
		Data:   data,
	})
}

// sendError maps any model error to its wire code. Errors without a code
// surface as CurrentProcessFailed.
func sendError(c *fiber.Ctx, err error) error {
	code := errcode.CodeOf(err)
	return c.JSON(&apiResponse{
		Status:  "failed",
		Code:    code,
		Message: errcode.New(code).Error(),
	})
}

func sendParamsError(c *fiber.Ctx) error {
	return sendError(c, errcode.New(errcode.ParamsCheckFailed))
}
