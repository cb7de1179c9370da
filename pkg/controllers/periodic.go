package controllers

import (
	"time"

	"github.com/classpad/classpad-server/pkg/dbmodels"
	periodicmodel "github.com/classpad/classpad-server/pkg/models/periodic"
	"github.com/gofiber/fiber/v2"
)

// PeriodicController holds dependencies for recurring-series handlers.
type PeriodicController struct {
	PeriodicModel *periodicmodel.PeriodicModel
}

// NewPeriodicController creates a new PeriodicController.
func NewPeriodicController(m *periodicmodel.PeriodicModel) *PeriodicController {
	return &PeriodicController{
		PeriodicModel: m,
	}
}

type periodicRuleReq struct {
	Weeks   []int  `json:"weeks"`
	Rate    int    `json:"rate,omitempty"`
	EndTime *int64 `json:"endTime,omitempty"`
}

type createPeriodicReq struct {
	Title     string          `json:"title"`
	RoomType  string          `json:"type"`
	BeginTime int64           `json:"beginTime"`
	EndTime   int64           `json:"endTime"`
	Periodic  periodicRuleReq `json:"periodic"`
}

// HandlePeriodicCreate books a recurring series.
func (pc *PeriodicController) HandlePeriodicCreate(c *fiber.Ctx) error {
	req := new(createPeriodicReq)
	if err := c.BodyParser(req); err != nil {
		return sendParamsError(c)
	}

	rule := periodicmodel.PeriodicRule{
		Rate: req.Periodic.Rate,
	}
	for _, w := range req.Periodic.Weeks {
		rule.Weeks = append(rule.Weeks, time.Weekday(w))
	}
	if req.Periodic.EndTime != nil {
		t := time.UnixMilli(*req.Periodic.EndTime)
		rule.EndTime = &t
	}

	res, err := pc.PeriodicModel.CreatePeriodic(c.UserContext(), c.Locals("userUUID").(string), &periodicmodel.CreatePeriodicReq{
		Title:     req.Title,
		RoomType:  dbmodels.RoomType(req.RoomType),
		BeginTime: time.UnixMilli(req.BeginTime),
		EndTime:   time.UnixMilli(req.EndTime),
		Periodic:  rule,
	})
	if err != nil {
		return sendError(c, err)
	}
	return sendData(c, res)
}

type periodicUUIDReq struct {
	PeriodicUUID string `json:"periodicUUID"`
}

// HandlePeriodicInfo returns the series config plus every occurrence in
// begin-time order.
func (pc *PeriodicController) HandlePeriodicInfo(c *fiber.Ctx) error {
	req := new(periodicUUIDReq)
	if err := c.BodyParser(req); err != nil || req.PeriodicUUID == "" {
		return sendParamsError(c)
	}

	res, err := pc.PeriodicModel.PeriodicInfo(c.UserContext(), c.Locals("userUUID").(string), req.PeriodicUUID)
	if err != nil {
		return sendError(c, err)
	}
	return sendData(c, res)
}

type periodicSubRoomReq struct {
	PeriodicUUID string `json:"periodicUUID"`
	RoomUUID     string `json:"roomUUID"`
}

// HandlePeriodicSubRoomInfo returns a single occurrence of a series.
func (pc *PeriodicController) HandlePeriodicSubRoomInfo(c *fiber.Ctx) error {
	req := new(periodicSubRoomReq)
	if err := c.BodyParser(req); err != nil || req.PeriodicUUID == "" || req.RoomUUID == "" {
		return sendParamsError(c)
	}

	res, err := pc.PeriodicModel.PeriodicSubRoomInfo(c.UserContext(), c.Locals("userUUID").(string), req.PeriodicUUID, req.RoomUUID)
	if err != nil {
		return sendError(c, err)
	}
	return sendData(c, res)
}

// HandlePeriodicCancel withdraws a whole series together with every
// occurrence that has not run yet.
func (pc *PeriodicController) HandlePeriodicCancel(c *fiber.Ctx) error {
	req := new(periodicUUIDReq)
	if err := c.BodyParser(req); err != nil || req.PeriodicUUID == "" {
		return sendParamsError(c)
	}

	if err := pc.PeriodicModel.CancelPeriodic(c.UserContext(), c.Locals("userUUID").(string), req.PeriodicUUID); err != nil {
		return sendError(c, err)
	}
	return sendData(c, nil)
}

// HandlePeriodicSubRoomCancel withdraws one occurrence, leaving the rest of
// the series alone.
func (pc *PeriodicController) HandlePeriodicSubRoomCancel(c *fiber.Ctx) error {
	req := new(periodicSubRoomReq)
	if err := c.BodyParser(req); err != nil || req.PeriodicUUID == "" || req.RoomUUID == "" {
		return sendParamsError(c)
	}

	if err := pc.PeriodicModel.CancelPeriodicSubRoom(c.UserContext(), c.Locals("userUUID").(string), req.PeriodicUUID, req.RoomUUID); err != nil {
		return sendError(c, err)
	}
	return sendData(c, nil)
}
