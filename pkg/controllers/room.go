package controllers

import (
	"time"

	"github.com/classpad/classpad-server/pkg/dbmodels"
	roommodel "github.com/classpad/classpad-server/pkg/models/room"
	"github.com/gofiber/fiber/v2"
)

// RoomController holds dependencies for room-related handlers.
type RoomController struct {
	RoomModel *roommodel.RoomModel
}

// NewRoomController creates a new RoomController.
func NewRoomController(m *roommodel.RoomModel) *RoomController {
	return &RoomController{
		RoomModel: m,
	}
}

type createRoomReq struct {
	Title     string `json:"title"`
	RoomType  string `json:"type"`
	BeginTime int64  `json:"beginTime"`
	EndTime   int64  `json:"endTime"`
}

// HandleRoomCreate books a single non-recurring room.
func (rc *RoomController) HandleRoomCreate(c *fiber.Ctx) error {
	req := new(createRoomReq)
	if err := c.BodyParser(req); err != nil {
		return sendParamsError(c)
	}

	res, err := rc.RoomModel.CreateOrdinary(c.UserContext(), c.Locals("userUUID").(string), &roommodel.CreateRoomReq{
		Title:     req.Title,
		RoomType:  dbmodels.RoomType(req.RoomType),
		BeginTime: time.UnixMilli(req.BeginTime),
		EndTime:   time.UnixMilli(req.EndTime),
	})
	if err != nil {
		return sendError(c, err)
	}
	return sendData(c, res)
}

type roomUUIDReq struct {
	RoomUUID string `json:"roomUUID"`
}

// HandleRoomJoin hands a member the credentials to enter a room.
func (rc *RoomController) HandleRoomJoin(c *fiber.Ctx) error {
	req := new(roomUUIDReq)
	if err := c.BodyParser(req); err != nil || req.RoomUUID == "" {
		return sendParamsError(c)
	}

	res, err := rc.RoomModel.JoinRoom(c.UserContext(), c.Locals("userUUID").(string), req.RoomUUID)
	if err != nil {
		return sendError(c, err)
	}
	return sendData(c, res)
}

// HandleRoomInfo returns the booking details of a room the caller is a
// member of.
func (rc *RoomController) HandleRoomInfo(c *fiber.Ctx) error {
	req := new(roomUUIDReq)
	if err := c.BodyParser(req); err != nil || req.RoomUUID == "" {
		return sendParamsError(c)
	}

	res, err := rc.RoomModel.OrdinaryInfo(c.UserContext(), c.Locals("userUUID").(string), req.RoomUUID)
	if err != nil {
		return sendError(c, err)
	}
	return sendData(c, res)
}

// HandleRoomList returns every booking of the caller, soonest first.
func (rc *RoomController) HandleRoomList(c *fiber.Ctx) error {
	res, err := rc.RoomModel.ListRooms(c.UserContext(), c.Locals("userUUID").(string))
	if err != nil {
		return sendError(c, err)
	}
	return sendData(c, res)
}

// HandleRoomUsers lists the members of a room the caller belongs to.
func (rc *RoomController) HandleRoomUsers(c *fiber.Ctx) error {
	req := new(roomUUIDReq)
	if err := c.BodyParser(req); err != nil || req.RoomUUID == "" {
		return sendParamsError(c)
	}

	res, err := rc.RoomModel.RoomUsers(c.UserContext(), c.Locals("userUUID").(string), req.RoomUUID)
	if err != nil {
		return sendError(c, err)
	}
	return sendData(c, res)
}

// HandleRoomStarted moves a room into the running state.
func (rc *RoomController) HandleRoomStarted(c *fiber.Ctx) error {
	req := new(roomUUIDReq)
	if err := c.BodyParser(req); err != nil || req.RoomUUID == "" {
		return sendParamsError(c)
	}

	if err := rc.RoomModel.StartRoom(c.UserContext(), c.Locals("userUUID").(string), req.RoomUUID); err != nil {
		return sendError(c, err)
	}
	return sendData(c, nil)
}

// HandleRoomPaused suspends a running room.
func (rc *RoomController) HandleRoomPaused(c *fiber.Ctx) error {
	req := new(roomUUIDReq)
	if err := c.BodyParser(req); err != nil || req.RoomUUID == "" {
		return sendParamsError(c)
	}

	if err := rc.RoomModel.PauseRoom(c.UserContext(), c.Locals("userUUID").(string), req.RoomUUID); err != nil {
		return sendError(c, err)
	}
	return sendData(c, nil)
}

// HandleRoomStopped ends a room for good.
func (rc *RoomController) HandleRoomStopped(c *fiber.Ctx) error {
	req := new(roomUUIDReq)
	if err := c.BodyParser(req); err != nil || req.RoomUUID == "" {
		return sendParamsError(c)
	}

	if err := rc.RoomModel.StopRoom(c.UserContext(), c.Locals("userUUID").(string), req.RoomUUID); err != nil {
		return sendError(c, err)
	}
	return sendData(c, nil)
}

// HandleRoomCancel withdraws an unstarted non-recurring booking.
func (rc *RoomController) HandleRoomCancel(c *fiber.Ctx) error {
	req := new(roomUUIDReq)
	if err := c.BodyParser(req); err != nil || req.RoomUUID == "" {
		return sendParamsError(c)
	}

	if err := rc.RoomModel.CancelOrdinary(c.UserContext(), c.Locals("userUUID").(string), req.RoomUUID); err != nil {
		return sendError(c, err)
	}
	return sendData(c, nil)
}
