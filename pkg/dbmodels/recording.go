package dbmodels

import (
	"time"
)

// RoomRecord is one recording session of a room. A room may accumulate any
// number of them while Started; once the room is Stopped they become the
// queryable video artifacts.
type RoomRecord struct {
	ID          uint64    `gorm:"column:id;primaryKey;AUTO_INCREMENT"`
	RecordUUID  string    `gorm:"column:record_uuid;size:40;uniqueIndex;NOT NULL"`
	RoomUUID    string    `gorm:"column:room_uuid;size:40;index;NOT NULL"`
	BeginTime   time.Time `gorm:"column:begin_time;NOT NULL"`
	EndTime     time.Time `gorm:"column:end_time"`
	ProviderSID string    `gorm:"column:provider_sid;size:128;NOT NULL"`
	Created     time.Time `gorm:"column:created;autoCreateTime;NOT NULL"`
	Modified    time.Time `gorm:"column:modified;autoUpdateTime;NOT NULL"`
}

func (m *RoomRecord) TableName() string {
	return "cp_room_record"
}
