package dbservice

import (
	"errors"

	"github.com/classpad/classpad-server/pkg/dbmodels"
	"gorm.io/gorm"
)

func (s *DatabaseService) GetPeriodicConfig(periodicUUID string) (*dbmodels.PeriodicConfig, error) {
	info := new(dbmodels.PeriodicConfig)
	cond := &dbmodels.PeriodicConfig{
		PeriodicUUID: periodicUUID,
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

func (s *DatabaseService) InsertPeriodicConfig(info *dbmodels.PeriodicConfig) error {
	return s.db.Create(info).Error
}

func (s *DatabaseService) UpdatePeriodicStatus(periodicUUID string, status dbmodels.PeriodicStatus) error {
	return s.db.Model(&dbmodels.PeriodicConfig{}).
		Where(&dbmodels.PeriodicConfig{PeriodicUUID: periodicUUID}).
		Update("periodic_status", status).Error
}

// GetPeriodicRooms returns every occurrence of a series ordered by begin
// time ascending.
func (s *DatabaseService) GetPeriodicRooms(periodicUUID string) ([]dbmodels.PeriodicRoom, error) {
	var rooms []dbmodels.PeriodicRoom
	result := s.db.Where(&dbmodels.PeriodicRoom{PeriodicUUID: periodicUUID}).
		Order("begin_time asc").Find(&rooms)
	if result.Error != nil {
		return nil, result.Error
	}
	return rooms, nil
}

func (s *DatabaseService) GetPeriodicRoomByRoomUUID(roomUUID string) (*dbmodels.PeriodicRoom, error) {
	room := new(dbmodels.PeriodicRoom)
	cond := &dbmodels.PeriodicRoom{
		RoomUUID: roomUUID,
	}

	result := s.db.Where(cond).Take(room)
	switch {
	case errors.Is(result.Error, gorm.ErrRecordNotFound):
		return nil, nil
	case result.Error != nil:
		return nil, result.Error
	}

	return room, nil
}

// GetNextIdlePeriodicRoom finds the earliest occurrence of the series that
// is still Idle. Cancelled occurrences are never candidates.
func (s *DatabaseService) GetNextIdlePeriodicRoom(periodicUUID string) (*dbmodels.PeriodicRoom, error) {
	room := new(dbmodels.PeriodicRoom)
	cond := &dbmodels.PeriodicRoom{
		PeriodicUUID: periodicUUID,
		RoomStatus:   dbmodels.PeriodicRoomStatusIdle,
	}

	result := s.db.Where(cond).Order("begin_time asc").Take(room)
	switch {
	case errors.Is(result.Error, gorm.ErrRecordNotFound):
		return nil, nil
	case result.Error != nil:
		return nil, result.Error
	}

	return room, nil
}

func (s *DatabaseService) InsertPeriodicRooms(rooms []dbmodels.PeriodicRoom) error {
	return s.db.Create(&rooms).Error
}

func (s *DatabaseService) UpdatePeriodicRoomStatus(roomUUID string, status dbmodels.PeriodicRoomStatus) error {
	return s.db.Model(&dbmodels.PeriodicRoom{}).
		Where(&dbmodels.PeriodicRoom{RoomUUID: roomUUID}).
		Update("room_status", status).Error
}

// CancelIdlePeriodicRooms flips every still-Idle occurrence of a series to
// Cancelled in one statement.
func (s *DatabaseService) CancelIdlePeriodicRooms(periodicUUID string) error {
	return s.db.Model(&dbmodels.PeriodicRoom{}).
		Where(&dbmodels.PeriodicRoom{PeriodicUUID: periodicUUID, RoomStatus: dbmodels.PeriodicRoomStatusIdle}).
		Update("room_status", dbmodels.PeriodicRoomStatusCancelled).Error
}

func (s *DatabaseService) GetPeriodicUser(periodicUUID, userUUID string) (*dbmodels.PeriodicUser, error) {
	user := new(dbmodels.PeriodicUser)
	cond := &dbmodels.PeriodicUser{
		PeriodicUUID: periodicUUID,
		UserUUID:     userUUID,
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

func (s *DatabaseService) InsertPeriodicUser(user *dbmodels.PeriodicUser) error {
	return s.db.Create(user).Error
}
