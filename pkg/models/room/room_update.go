package roommodel

import (
	"context"

	"github.com/classpad/classpad-server/pkg/config"
	"github.com/classpad/classpad-server/pkg/dbmodels"
	"github.com/classpad/classpad-server/pkg/errcode"
	"github.com/classpad/classpad-server/pkg/helpers"
	"github.com/classpad/classpad-server/pkg/services/dbservice"
)

// StartRoom moves an Idle room to Started. For a periodic occurrence the
// occurrence row and, when this is the series' first activity, the series
// config move with it. A room without a remote whiteboard reference gets
// one here: the remote call happens before the transaction so its result is
// embedded in the committed row, and a remote failure mutates nothing.
func (m *RoomModel) StartRoom(ctx context.Context, userUUID, roomUUID string) error {
	room, err := m.ds.GetRoomInfoByRoomUUID(roomUUID)
	if err != nil {
		m.logger.Errorln(err)
		return errcode.New(errcode.CurrentProcessFailed)
	}
	if room == nil {
		return errcode.New(errcode.RoomNotFound)
	}
	if room.OwnerUUID != userUUID {
		return errcode.New(errcode.NotPermission)
	}
	if !room.RoomStatus.CanTransition(dbmodels.RoomStatusStarted) {
		return transitionError(room.RoomStatus, dbmodels.RoomStatusStarted)
	}

	wbRoomUUID := room.WhiteboardRoomUUID
	if wbRoomUUID == "" {
		// lazy materialization of the remote room
		wbRoomUUID, err = m.wb.CreateRoom(ctx)
		if err != nil {
			m.logger.Errorln("whiteboard room creation failed:", err)
			return errcode.New(errcode.CurrentProcessFailed)
		}
	}

	err = m.ds.Transaction(func(tx *dbservice.DatabaseService) error {
		// re-read inside the transaction; a concurrent cancel wins or
		// loses here, never both
		cur, err := tx.GetRoomInfoByRoomUUID(roomUUID)
		if err != nil {
			return err
		}
		if cur == nil {
			return errcode.New(errcode.RoomNotFound)
		}
		if !cur.RoomStatus.CanTransition(dbmodels.RoomStatusStarted) {
			return transitionError(cur.RoomStatus, dbmodels.RoomStatusStarted)
		}

		if cur.PeriodicUUID != "" {
			occ, err := tx.GetPeriodicRoomByRoomUUID(roomUUID)
			if err != nil {
				return err
			}
			if occ == nil {
				return errcode.New(errcode.PeriodicSubRoomFound)
			}
			if !occ.RoomStatus.CanTransition(dbmodels.PeriodicRoomStatusStarted) {
				return errcode.New(errcode.RoomNotIsIdle)
			}
			if err = tx.UpdatePeriodicRoomStatus(roomUUID, dbmodels.PeriodicRoomStatusStarted); err != nil {
				return err
			}

			cnf, err := tx.GetPeriodicConfig(cur.PeriodicUUID)
			if err != nil {
				return err
			}
			if cnf == nil {
				return errcode.New(errcode.PeriodicNotFound)
			}
			if cnf.PeriodicStatus == dbmodels.PeriodicStatusCancelled {
				return errcode.New(errcode.PeriodicIsEnded)
			}
			if cnf.PeriodicStatus.CanTransition(dbmodels.PeriodicStatusStarted) {
				if err = tx.UpdatePeriodicStatus(cur.PeriodicUUID, dbmodels.PeriodicStatusStarted); err != nil {
					return err
				}
			}
		}

		if err = tx.UpdateRoomWhiteboardUUID(roomUUID, wbRoomUUID); err != nil {
			return err
		}
		return tx.UpdateRoomStatus(roomUUID, dbmodels.RoomStatusStarted)
	})
	if err != nil {
		if e, ok := err.(*errcode.Error); ok {
			return e
		}
		m.logger.Errorln("room start failed:", err)
		return errcode.New(errcode.CurrentProcessFailed)
	}

	m.notifier.Notify(helpers.WebhookEvent{
		Event:        "room.started",
		RoomUUID:     roomUUID,
		PeriodicUUID: room.PeriodicUUID,
		OwnerUUID:    room.OwnerUUID,
	})
	return nil
}

// PauseRoom moves a Started room to Paused. The series config, if any,
// stays Started; pausing is a room level affair.
func (m *RoomModel) PauseRoom(ctx context.Context, userUUID, roomUUID string) error {
	err := m.ds.Transaction(func(tx *dbservice.DatabaseService) error {
		cur, err := tx.GetRoomInfoByRoomUUID(roomUUID)
		if err != nil {
			return err
		}
		if cur == nil {
			return errcode.New(errcode.RoomNotFound)
		}
		if cur.OwnerUUID != userUUID {
			return errcode.New(errcode.NotPermission)
		}
		if !cur.RoomStatus.CanTransition(dbmodels.RoomStatusPaused) {
			return transitionError(cur.RoomStatus, dbmodels.RoomStatusPaused)
		}

		if cur.PeriodicUUID != "" {
			if err = tx.UpdatePeriodicRoomStatus(roomUUID, dbmodels.PeriodicRoomStatusPaused); err != nil {
				return err
			}
		}
		return tx.UpdateRoomStatus(roomUUID, dbmodels.RoomStatusPaused)
	})
	if err != nil {
		if e, ok := err.(*errcode.Error); ok {
			return e
		}
		m.logger.Errorln("room pause failed:", err)
		return errcode.New(errcode.CurrentProcessFailed)
	}
	return nil
}

// StopRoom ends a Started or Paused room. For a periodic occurrence the
// next still-Idle occurrence's room is materialized in the same
// transaction (its remote reference arrives lazily on its own start); when
// no occurrence remains the series is Stopped.
func (m *RoomModel) StopRoom(ctx context.Context, userUUID, roomUUID string) error {
	var periodicUUID string

	err := m.ds.Transaction(func(tx *dbservice.DatabaseService) error {
		cur, err := tx.GetRoomInfoByRoomUUID(roomUUID)
		if err != nil {
			return err
		}
		if cur == nil {
			return errcode.New(errcode.RoomNotFound)
		}
		if cur.OwnerUUID != userUUID {
			return errcode.New(errcode.NotPermission)
		}
		if !cur.RoomStatus.CanTransition(dbmodels.RoomStatusStopped) {
			return transitionError(cur.RoomStatus, dbmodels.RoomStatusStopped)
		}

		if err = tx.UpdateRoomStatus(roomUUID, dbmodels.RoomStatusStopped); err != nil {
			return err
		}
		if cur.PeriodicUUID == "" {
			return nil
		}
		periodicUUID = cur.PeriodicUUID

		if err = tx.UpdatePeriodicRoomStatus(roomUUID, dbmodels.PeriodicRoomStatusStopped); err != nil {
			return err
		}

		next, err := tx.GetNextIdlePeriodicRoom(cur.PeriodicUUID)
		if err != nil {
			return err
		}
		if next == nil {
			cnf, err := tx.GetPeriodicConfig(cur.PeriodicUUID)
			if err != nil {
				return err
			}
			if cnf != nil && cnf.PeriodicStatus.CanTransition(dbmodels.PeriodicStatusStopped) {
				return tx.UpdatePeriodicStatus(cur.PeriodicUUID, dbmodels.PeriodicStatusStopped)
			}
			return nil
		}

		rtcUID, err := helpers.RandomNumericString(config.RtcUidLength)
		if err != nil {
			return err
		}
		if err = tx.InsertRoomInfo(&dbmodels.RoomInfo{
			RoomUUID:     next.RoomUUID,
			OwnerUUID:    cur.OwnerUUID,
			Title:        cur.Title,
			RoomType:     cur.RoomType,
			RoomStatus:   dbmodels.RoomStatusIdle,
			BeginTime:    next.BeginTime,
			EndTime:      next.EndTime,
			PeriodicUUID: cur.PeriodicUUID,
		}); err != nil {
			return err
		}
		return tx.InsertRoomUser(&dbmodels.RoomUser{
			RoomUUID: next.RoomUUID,
			UserUUID: cur.OwnerUUID,
			RtcUID:   rtcUID,
		})
	})
	if err != nil {
		if e, ok := err.(*errcode.Error); ok {
			return e
		}
		m.logger.Errorln("room stop failed:", err)
		return errcode.New(errcode.CurrentProcessFailed)
	}

	m.notifier.Notify(helpers.WebhookEvent{
		Event:        "room.ended",
		RoomUUID:     roomUUID,
		PeriodicUUID: periodicUUID,
		OwnerUUID:    userUUID,
	})
	return nil
}
