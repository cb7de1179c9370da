package roommodel

import (
	"context"

	"github.com/classpad/classpad-server/pkg/dbmodels"
	"github.com/classpad/classpad-server/pkg/errcode"
	"github.com/classpad/classpad-server/pkg/services/dbservice"
)

// CancelOrdinary cancels a non-periodic room. Legal only while the room is
// still Idle; a second attempt fails the same precondition the first
// success removed. Occurrences of a series are cancelled through the
// periodic model, never here.
func (m *RoomModel) CancelOrdinary(ctx context.Context, userUUID, roomUUID string) error {
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
		if cur.PeriodicUUID != "" {
			return errcode.New(errcode.ParamsCheckFailed)
		}
		if !cur.RoomStatus.CanTransition(dbmodels.RoomStatusCancelled) {
			if cur.RoomStatus == dbmodels.RoomStatusStopped {
				return errcode.New(errcode.RoomIsEnded)
			}
			return errcode.New(errcode.RoomNotIsIdle)
		}
		return tx.UpdateRoomStatus(roomUUID, dbmodels.RoomStatusCancelled)
	})
	if err != nil {
		if e, ok := err.(*errcode.Error); ok {
			return e
		}
		m.logger.Errorln("room cancel failed:", err)
		return errcode.New(errcode.CurrentProcessFailed)
	}
	return nil
}
