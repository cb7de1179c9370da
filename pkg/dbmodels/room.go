package dbmodels

import (
	"time"
)

type RoomInfo struct {
	ID         uint64     `gorm:"column:id;primaryKey;AUTO_INCREMENT"`
	RoomUUID   string     `gorm:"column:room_uuid;size:40;uniqueIndex;NOT NULL"`
	OwnerUUID  string     `gorm:"column:owner_uuid;size:40;index;NOT NULL"`
	Title      string     `gorm:"column:title;size:150;NOT NULL"`
	RoomType   RoomType   `gorm:"column:room_type;size:32;NOT NULL"`
	RoomStatus RoomStatus `gorm:"column:room_status;size:32;NOT NULL"`
	BeginTime  time.Time  `gorm:"column:begin_time;NOT NULL"`
	EndTime    time.Time  `gorm:"column:end_time;NOT NULL"`
	// WhiteboardRoomUUID stays empty until the remote room is attached;
	// later occurrences of a series get theirs lazily.
	WhiteboardRoomUUID string `gorm:"column:whiteboard_room_uuid;size:40;NOT NULL"`
	// PeriodicUUID is empty for an ordinary room. A periodic occurrence's
	// room carries a weak back-reference to its series; the series never
	// owns the room row.
	PeriodicUUID string    `gorm:"column:periodic_uuid;size:40;index;NOT NULL"`
	Created      time.Time `gorm:"column:created;autoCreateTime;NOT NULL"`
	Modified     time.Time `gorm:"column:modified;autoUpdateTime;NOT NULL"`
}

func (m *RoomInfo) TableName() string {
	return "cp_room_info"
}

type RoomUser struct {
	ID       uint64    `gorm:"column:id;primaryKey;AUTO_INCREMENT"`
	RoomUUID string    `gorm:"column:room_uuid;size:40;uniqueIndex:idx_room_user,priority:1;NOT NULL"`
	UserUUID string    `gorm:"column:user_uuid;size:40;uniqueIndex:idx_room_user,priority:2;NOT NULL"`
	RtcUID   string    `gorm:"column:rtc_uid;size:10;NOT NULL"`
	Created  time.Time `gorm:"column:created;autoCreateTime;NOT NULL"`
}

func (m *RoomUser) TableName() string {
	return "cp_room_user"
}
