package periodicmodel

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

type CreatePeriodicReq struct {
	Title     string
	RoomType  dbmodels.RoomType
	BeginTime time.Time
	EndTime   time.Time
	Periodic  PeriodicRule
}

type CreatePeriodicRes struct {
	PeriodicUUID  string
	FirstRoomUUID string
}

// CreatePeriodic builds a recurring series: the config row, one occurrence
// row per generated date, the owner's series membership, plus the first
// occurrence's room and the owner's membership in it — all committed in one
// transaction. The remote whiteboard room for the first occurrence is
// attached after commit; a failure there leaves the series persisted with
// the remote reference unset and reports CurrentProcessFailed, so callers
// must re-read instead of blindly re-creating.
func (m *PeriodicModel) CreatePeriodic(ctx context.Context, ownerUUID string, req *CreatePeriodicReq) (*CreatePeriodicRes, error) {
	if req.Title == "" || len(req.Title) > config.MaxRoomTitleLen || !req.RoomType.Valid() {
		return nil, errcode.New(errcode.ParamsCheckFailed)
	}

	dates, err := CalculatePeriodicDates(req.BeginTime, req.EndTime, &req.Periodic)
	if err != nil {
		return nil, err
	}

	// guard against the same owner double submitting the same series
	lockKey := fmt.Sprintf("periodic:%s:%d", ownerUUID, req.BeginTime.UnixMilli())
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

	periodicUUID := uuid.NewString()

	occurrences := make([]dbmodels.PeriodicRoom, len(dates))
	for i, d := range dates {
		occurrences[i] = dbmodels.PeriodicRoom{
			PeriodicUUID: periodicUUID,
			RoomUUID:     uuid.NewString(),
			BeginTime:    d.Begin,
			EndTime:      d.End,
			RoomStatus:   dbmodels.PeriodicRoomStatusIdle,
		}
	}

	// byDate stores the supplied ceiling, byCount the last generated begin
	seriesEnd := dates[len(dates)-1].Begin
	if req.Periodic.EndTime != nil {
		seriesEnd = *req.Periodic.EndTime
	}

	rtcUID, err := helpers.RandomNumericString(config.RtcUidLength)
	if err != nil {
		m.logger.Errorln(err)
		return nil, errcode.New(errcode.CurrentProcessFailed)
	}

	err = m.ds.Transaction(func(tx *dbservice.DatabaseService) error {
		if err := tx.InsertPeriodicConfig(&dbmodels.PeriodicConfig{
			PeriodicUUID:    periodicUUID,
			OwnerUUID:       ownerUUID,
			Title:           req.Title,
			RoomType:        req.RoomType,
			OriginBeginTime: req.BeginTime,
			OriginEndTime:   req.EndTime,
			Weeks:           dbmodels.JoinWeekdays(req.Periodic.Weeks),
			Rate:            req.Periodic.Rate,
			EndTime:         seriesEnd,
			PeriodicStatus:  dbmodels.PeriodicStatusIdle,
		}); err != nil {
			return err
		}

		if err := tx.InsertPeriodicRooms(occurrences); err != nil {
			return err
		}

		if err := tx.InsertPeriodicUser(&dbmodels.PeriodicUser{
			PeriodicUUID: periodicUUID,
			UserUUID:     ownerUUID,
		}); err != nil {
			return err
		}

		// materialize the first occurrence's room right away
		if err := tx.InsertRoomInfo(&dbmodels.RoomInfo{
			RoomUUID:     occurrences[0].RoomUUID,
			OwnerUUID:    ownerUUID,
			Title:        req.Title,
			RoomType:     req.RoomType,
			RoomStatus:   dbmodels.RoomStatusIdle,
			BeginTime:    occurrences[0].BeginTime,
			EndTime:      occurrences[0].EndTime,
			PeriodicUUID: periodicUUID,
		}); err != nil {
			return err
		}

		return tx.InsertRoomUser(&dbmodels.RoomUser{
			RoomUUID: occurrences[0].RoomUUID,
			UserUUID: ownerUUID,
			RtcUID:   rtcUID,
		})
	})
	if err != nil {
		m.logger.Errorln("periodic creation failed:", err)
		return nil, errcode.New(errcode.CurrentProcessFailed)
	}

	// the remote attachment is outside the atomicity boundary: the series
	// is committed at this point whatever happens below
	wbRoomUUID, err := m.wb.CreateRoom(ctx)
	if err != nil {
		m.logger.Errorln("whiteboard room creation failed after commit:", err)
		return nil, errcode.New(errcode.CurrentProcessFailed)
	}
	if err = m.ds.UpdateRoomWhiteboardUUID(occurrences[0].RoomUUID, wbRoomUUID); err != nil {
		m.logger.Errorln("whiteboard room attach failed after commit:", err)
		return nil, errcode.New(errcode.CurrentProcessFailed)
	}

	return &CreatePeriodicRes{
		PeriodicUUID:  periodicUUID,
		FirstRoomUUID: occurrences[0].RoomUUID,
	}, nil
}
