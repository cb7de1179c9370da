package controllers

import (
	recordingmodel "github.com/classpad/classpad-server/pkg/models/recording"
	"github.com/gofiber/fiber/v2"
)

// RecordingController holds dependencies for recording-related handlers.
type RecordingController struct {
	RecordingModel *recordingmodel.RecordingModel
}

// NewRecordingController creates a new RecordingController.
func NewRecordingController(m *recordingmodel.RecordingModel) *RecordingController {
	return &RecordingController{
		RecordingModel: m,
	}
}

// HandleRecordAcquire hands the owner a credential for the recorder.
func (rc *RecordingController) HandleRecordAcquire(c *fiber.Ctx) error {
	req := new(roomUUIDReq)
	if err := c.BodyParser(req); err != nil || req.RoomUUID == "" {
		return sendParamsError(c)
	}

	res, err := rc.RecordingModel.AcquireRecord(c.UserContext(), c.Locals("userUUID").(string), req.RoomUUID)
	if err != nil {
		return sendError(c, err)
	}
	return sendData(c, res)
}

type recordStartedReq struct {
	RoomUUID    string `json:"roomUUID"`
	ProviderSID string `json:"providerSID"`
}

// HandleRecordStarted opens a recording session for a running room.
func (rc *RecordingController) HandleRecordStarted(c *fiber.Ctx) error {
	req := new(recordStartedReq)
	if err := c.BodyParser(req); err != nil || req.RoomUUID == "" {
		return sendParamsError(c)
	}

	res, err := rc.RecordingModel.RecordStarted(c.UserContext(), c.Locals("userUUID").(string), req.RoomUUID, req.ProviderSID)
	if err != nil {
		return sendError(c, err)
	}
	return sendData(c, res)
}

type recordStoppedReq struct {
	RoomUUID   string `json:"roomUUID"`
	RecordUUID string `json:"recordUUID"`
}

// HandleRecordStopped closes an open recording session.
func (rc *RecordingController) HandleRecordStopped(c *fiber.Ctx) error {
	req := new(recordStoppedReq)
	if err := c.BodyParser(req); err != nil || req.RoomUUID == "" || req.RecordUUID == "" {
		return sendParamsError(c)
	}

	if err := rc.RecordingModel.RecordStopped(c.UserContext(), c.Locals("userUUID").(string), req.RoomUUID, req.RecordUUID); err != nil {
		return sendError(c, err)
	}
	return sendData(c, nil)
}

// HandleRecordInfo lists the playable recordings of an ended room.
func (rc *RecordingController) HandleRecordInfo(c *fiber.Ctx) error {
	req := new(roomUUIDReq)
	if err := c.BodyParser(req); err != nil || req.RoomUUID == "" {
		return sendParamsError(c)
	}

	res, err := rc.RecordingModel.RecordInfo(c.UserContext(), c.Locals("userUUID").(string), req.RoomUUID)
	if err != nil {
		return sendError(c, err)
	}
	return sendData(c, res)
}
