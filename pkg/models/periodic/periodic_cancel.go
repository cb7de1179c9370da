package periodicmodel

import (
	"context"

	"github.com/classpad/classpad-server/pkg/dbmodels"
	"github.com/classpad/classpad-server/pkg/errcode"
	"github.com/classpad/classpad-server/pkg/services/dbservice"
)

// CancelPeriodic cancels a whole series: the config and every occurrence
// still Idle flip to Cancelled in one transaction. Occurrences that already
// ran (Started/Stopped) keep their history. Only the owner may cancel, and
// only while the series is Idle or Started.
func (m *PeriodicModel) CancelPeriodic(ctx context.Context, userUUID, periodicUUID string) error {
	err := m.ds.Transaction(func(tx *dbservice.DatabaseService) error {
		info, err := tx.GetPeriodicConfig(periodicUUID)
		if err != nil {
			return err
		}
		if info == nil {
			return errcode.New(errcode.PeriodicNotFound)
		}
		if info.OwnerUUID != userUUID {
			return errcode.New(errcode.NotPermission)
		}
		if !info.PeriodicStatus.CanTransition(dbmodels.PeriodicStatusCancelled) {
			return errcode.New(errcode.PeriodicIsEnded)
		}

		if err = tx.UpdatePeriodicStatus(periodicUUID, dbmodels.PeriodicStatusCancelled); err != nil {
			return err
		}
		if err = tx.CancelIdlePeriodicRooms(periodicUUID); err != nil {
			return err
		}
		// any materialized but not yet started room goes with its occurrence
		return tx.CancelIdleRoomsOfPeriodic(periodicUUID)
	})
	if err != nil {
		if e, ok := err.(*errcode.Error); ok {
			return e
		}
		m.logger.Errorln("periodic cancel failed:", err)
		return errcode.New(errcode.CurrentProcessFailed)
	}
	return nil
}

// CancelPeriodicSubRoom cancels a single occurrence of a series. Legal only
// while the occurrence is Idle; siblings and the series config are left
// untouched.
func (m *PeriodicModel) CancelPeriodicSubRoom(ctx context.Context, userUUID, periodicUUID, roomUUID string) error {
	err := m.ds.Transaction(func(tx *dbservice.DatabaseService) error {
		info, err := tx.GetPeriodicConfig(periodicUUID)
		if err != nil {
			return err
		}
		if info == nil {
			return errcode.New(errcode.PeriodicNotFound)
		}
		if info.OwnerUUID != userUUID {
			return errcode.New(errcode.NotPermission)
		}

		room, err := tx.GetPeriodicRoomByRoomUUID(roomUUID)
		if err != nil {
			return err
		}
		if room == nil || room.PeriodicUUID != periodicUUID {
			return errcode.New(errcode.PeriodicSubRoomFound)
		}
		if !room.RoomStatus.CanTransition(dbmodels.PeriodicRoomStatusCancelled) {
			return errcode.New(errcode.RoomNotIsIdle)
		}

		if err = tx.UpdatePeriodicRoomStatus(roomUUID, dbmodels.PeriodicRoomStatusCancelled); err != nil {
			return err
		}

		// the first occurrence has a materialized room row already
		materialized, err := tx.GetRoomInfoByRoomUUID(roomUUID)
		if err != nil {
			return err
		}
		if materialized != nil && materialized.RoomStatus == dbmodels.RoomStatusIdle {
			return tx.UpdateRoomStatus(roomUUID, dbmodels.RoomStatusCancelled)
		}
		return nil
	})
	if err != nil {
		if e, ok := err.(*errcode.Error); ok {
			return e
		}
		m.logger.Errorln("periodic sub room cancel failed:", err)
		return errcode.New(errcode.CurrentProcessFailed)
	}
	return nil
}
