package controllers

import (
	filemodel "github.com/classpad/classpad-server/pkg/models/file"
	"github.com/gofiber/fiber/v2"
)

// FileController holds dependencies for cloud-storage file handlers.
type FileController struct {
	FileModel *filemodel.FileModel
}

// NewFileController creates a new FileController.
func NewFileController(m *filemodel.FileModel) *FileController {
	return &FileController{
		FileModel: m,
	}
}

type fileUUIDReq struct {
	FileUUID string `json:"fileUUID"`
}

// HandleFileConvertStart submits a file to the remote converter.
func (fc *FileController) HandleFileConvertStart(c *fiber.Ctx) error {
	req := new(fileUUIDReq)
	if err := c.BodyParser(req); err != nil || req.FileUUID == "" {
		return sendParamsError(c)
	}

	res, err := fc.FileModel.ConvertStart(c.UserContext(), c.Locals("userUUID").(string), req.FileUUID)
	if err != nil {
		return sendError(c, err)
	}
	return sendData(c, res)
}

// HandleFileConvertFinish polls the remote task and settles the file state.
func (fc *FileController) HandleFileConvertFinish(c *fiber.Ctx) error {
	req := new(fileUUIDReq)
	if err := c.BodyParser(req); err != nil || req.FileUUID == "" {
		return sendParamsError(c)
	}

	res, err := fc.FileModel.ConvertFinish(c.UserContext(), c.Locals("userUUID").(string), req.FileUUID)
	if err != nil {
		return sendError(c, err)
	}
	return sendData(c, res)
}
