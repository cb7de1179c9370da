package dbservice

import (
	"errors"

	"github.com/classpad/classpad-server/pkg/dbmodels"
	"gorm.io/gorm"
)

func (s *DatabaseService) GetRoomInfoByRoomUUID(roomUUID string) (*dbmodels.RoomInfo, error) {
	info := new(dbmodels.RoomInfo)
	cond := &dbmodels.RoomInfo{
		RoomUUID: roomUUID,
	}

	result := s.db.Where(cond).Take(info)
	switch {
	case errors.Is(result.Error, gorm.ErrRecordNotFound):
		return nil, nil
	case result.Error != nil:
		return nil, result.Error
	}

	return info, nil
}

func (s *DatabaseService) InsertRoomInfo(info *dbmodels.RoomInfo) error {
	return s.db.Create(info).Error
}

func (s *DatabaseService) UpdateRoomStatus(roomUUID string, status dbmodels.RoomStatus) error {
	return s.db.Model(&dbmodels.RoomInfo{}).
		Where(&dbmodels.RoomInfo{RoomUUID: roomUUID}).
		Update("room_status", status).Error
}

func (s *DatabaseService) UpdateRoomWhiteboardUUID(roomUUID, whiteboardRoomUUID string) error {
	return s.db.Model(&dbmodels.RoomInfo{}).
		Where(&dbmodels.RoomInfo{RoomUUID: roomUUID}).
		Update("whiteboard_room_uuid", whiteboardRoomUUID).Error
}

// CancelIdleRoomsOfPeriodic flips every still-Idle materialized room of a
// series to Cancelled. Rooms past Idle keep their history.
func (s *DatabaseService) CancelIdleRoomsOfPeriodic(periodicUUID string) error {
	return s.db.Model(&dbmodels.RoomInfo{}).
		Where(&dbmodels.RoomInfo{PeriodicUUID: periodicUUID, RoomStatus: dbmodels.RoomStatusIdle}).
		Update("room_status", dbmodels.RoomStatusCancelled).Error
}

// GetRoomsOfUser lists every room the user is a member of, soonest first.
func (s *DatabaseService) GetRoomsOfUser(userUUID string) ([]dbmodels.RoomInfo, error) {
	var roomUUIDs []string
	if err := s.db.Model(&dbmodels.RoomUser{}).
		Where(&dbmodels.RoomUser{UserUUID: userUUID}).
		Pluck("room_uuid", &roomUUIDs).Error; err != nil {
		return nil, err
	}
	if len(roomUUIDs) == 0 {
		return nil, nil
	}

	var rooms []dbmodels.RoomInfo
	result := s.db.Where("room_uuid IN ?", roomUUIDs).
		Order("begin_time").Find(&rooms)
	if result.Error != nil {
		return nil, result.Error
	}
	return rooms, nil
}

func (s *DatabaseService) GetRoomUser(roomUUID, userUUID string) (*dbmodels.RoomUser, error) {
	user := new(dbmodels.RoomUser)
	cond := &dbmodels.RoomUser{
		RoomUUID: roomUUID,
		UserUUID: userUUID,
	}

	result := s.db.Where(cond).Take(user)
	switch {
	case errors.Is(result.Error, gorm.ErrRecordNotFound):
		return nil, nil
	case result.Error != nil:
		return nil, result.Error
	}

	return user, nil
}

func (s *DatabaseService) GetRoomUsers(roomUUID string) ([]dbmodels.RoomUser, error) {
	var users []dbmodels.RoomUser
	result := s.db.Where(&dbmodels.RoomUser{RoomUUID: roomUUID}).Find(&users)
	if result.Error != nil {
		return nil, result.Error
	}
	return users, nil
}

func (s *DatabaseService) InsertRoomUser(user *dbmodels.RoomUser) error {
	return s.db.Create(user).Error
}
