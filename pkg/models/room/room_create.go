package roommodel

import (
	"context"
	"fmt"
	"time"

	"github.com/classpad/classpad-server/pkg/config"
	"github.com/classpad/classpad-server/pkg/dbmodels"
	"github.com/classpad/classpad-server/pkg/errcode"
	"github.com/classpad/classpad-server/pkg/helpers"
	"github.com/classpad/classpad-server/pkg/services/dbservice"
	"github.com/google/uuid"
)

type CreateRoomReq struct {
	Title     string
	RoomType  dbmodels.RoomType
	BeginTime time.Time
	EndTime   time.Time
}

type CreateRoomRes struct {
	RoomUUID string
}

// CreateOrdinary books a single non-recurring room: the room row and the
// owner's membership commit together, then the remote whiteboard room is
// attached. Like series creation, a post-commit remote failure leaves the
// booking persisted and reports CurrentProcessFailed.
func (m *RoomModel) CreateOrdinary(ctx context.Context, ownerUUID string, req *CreateRoomReq) (*CreateRoomRes, error) {
	if req.Title == "" || len(req.Title) > config.MaxRoomTitleLen || !req.RoomType.Valid() {
		return nil, errcode.New(errcode.ParamsCheckFailed)
	}
	if !req.BeginTime.Before(req.EndTime) {
		return nil, errcode.New(errcode.ParamsCheckFailed)
	}

	lockKey := fmt.Sprintf("room:%s:%d", ownerUUID, req.BeginTime.UnixMilli())
	inProgress, err := m.rs.IsCreationInProgress(ctx, lockKey)
	if err != nil {
		m.logger.Errorln(err)
		return nil, errcode.New(errcode.CurrentProcessFailed)
	}
	if inProgress {
		// give the in-flight twin a moment to release the lock
		time.Sleep(config.WaitIfCreationInProgress)
	}
	ok, err := m.rs.LockCreationProgress(ctx, lockKey)
	if err != nil {
		m.logger.Errorln(err)
		return nil, errcode.New(errcode.CurrentProcessFailed)
	}
	if !ok {
		return nil, errcode.New(errcode.CurrentProcessFailed)
	}
	defer func() {
		_ = m.rs.UnlockCreationProgress(ctx, lockKey)
	}()

	roomUUID := uuid.NewString()
	rtcUID, err := helpers.RandomNumericString(config.RtcUidLength)
	if err != nil {
		m.logger.Errorln(err)
		return nil, errcode.New(errcode.CurrentProcessFailed)
	}

	err = m.ds.Transaction(func(tx *dbservice.DatabaseService) error {
		if err := tx.InsertRoomInfo(&dbmodels.RoomInfo{
			RoomUUID:   roomUUID,
			OwnerUUID:  ownerUUID,
			Title:      req.Title,
			RoomType:   req.RoomType,
			RoomStatus: dbmodels.RoomStatusIdle,
			BeginTime:  req.BeginTime,
			EndTime:    req.EndTime,
		}); err != nil {
			return err
		}
		return tx.InsertRoomUser(&dbmodels.RoomUser{
			RoomUUID: roomUUID,
			UserUUID: ownerUUID,
			RtcUID:   rtcUID,
		})
	})
	if err != nil {
		m.logger.Errorln("room creation failed:", err)
		return nil, errcode.New(errcode.CurrentProcessFailed)
	}

	wbRoomUUID, err := m.wb.CreateRoom(ctx)
	if err != nil {
		m.logger.Errorln("whiteboard room creation failed after commit:", err)
		return nil, errcode.New(errcode.CurrentProcessFailed)
	}
	if err = m.ds.UpdateRoomWhiteboardUUID(roomUUID, wbRoomUUID); err != nil {
		m.logger.Errorln("whiteboard room attach failed after commit:", err)
		return nil, errcode.New(errcode.CurrentProcessFailed)
	}

	return &CreateRoomRes{RoomUUID: roomUUID}, nil
}
