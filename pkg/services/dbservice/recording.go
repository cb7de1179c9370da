package dbservice

import (
	"errors"
	"time"

	"github.com/classpad/classpad-server/pkg/dbmodels"
	"gorm.io/gorm"
)

func (s *DatabaseService) InsertRoomRecord(record *dbmodels.RoomRecord) error {
	return s.db.Create(record).Error
}

func (s *DatabaseService) GetRoomRecord(recordUUID string) (*dbmodels.RoomRecord, error) {
	record := new(dbmodels.RoomRecord)
	cond := &dbmodels.RoomRecord{
		RecordUUID: recordUUID,
	}

	result := s.db.Where(cond).Take(record)
	switch {
	case errors.Is(result.Error, gorm.ErrRecordNotFound):
		return nil, nil
	case result.Error != nil:
		return nil, result.Error
	}

	return record, nil
}

func (s *DatabaseService) GetRoomRecords(roomUUID string) ([]dbmodels.RoomRecord, error) {
	var records []dbmodels.RoomRecord
	result := s.db.Where(&dbmodels.RoomRecord{RoomUUID: roomUUID}).
		Order("begin_time asc").Find(&records)
	if result.Error != nil {
		return nil, result.Error
	}
	return records, nil
}

func (s *DatabaseService) CloseRoomRecord(recordUUID string, endTime time.Time) error {
	return s.db.Model(&dbmodels.RoomRecord{}).
		Where(&dbmodels.RoomRecord{RecordUUID: recordUUID}).
		Update("end_time", endTime).Error
}
