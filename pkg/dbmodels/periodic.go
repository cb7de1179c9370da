package dbmodels

import (
	"strconv"
	"strings"
	"time"
)

type PeriodicConfig struct {
	ID           uint64   `gorm:"column:id;primaryKey;AUTO_INCREMENT"`
	PeriodicUUID string   `gorm:"column:periodic_uuid;size:40;uniqueIndex;NOT NULL"`
	OwnerUUID    string   `gorm:"column:owner_uuid;size:40;index;NOT NULL"`
	Title        string   `gorm:"column:title;size:150;NOT NULL"`
	RoomType     RoomType `gorm:"column:room_type;size:32;NOT NULL"`
	// OriginBeginTime/OriginEndTime hold the template session applied to
	// every generated day.
	OriginBeginTime time.Time      `gorm:"column:room_origin_begin_time;NOT NULL"`
	OriginEndTime   time.Time      `gorm:"column:room_origin_end_time;NOT NULL"`
	Weeks           string         `gorm:"column:weeks;size:20;NOT NULL"`
	Rate            int            `gorm:"column:rate;default:0;NOT NULL"`
	EndTime         time.Time      `gorm:"column:end_time;NOT NULL"`
	PeriodicStatus  PeriodicStatus `gorm:"column:periodic_status;size:32;NOT NULL"`
	Created         time.Time      `gorm:"column:created;autoCreateTime;NOT NULL"`
	Modified        time.Time      `gorm:"column:modified;autoUpdateTime;NOT NULL"`
}

func (m *PeriodicConfig) TableName() string {
	return "cp_room_periodic_config"
}

// WeekdaySet decodes the comma joined weeks column.
func (m *PeriodicConfig) WeekdaySet() []time.Weekday {
	if m.Weeks == "" {
		return nil
	}
	parts := strings.Split(m.Weeks, ",")
	out := make([]time.Weekday, 0, len(parts))
	for _, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil || n < 0 || n > 6 {
			continue
		}
		out = append(out, time.Weekday(n))
	}
	return out
}

// JoinWeekdays encodes a weekday set for the weeks column.
func JoinWeekdays(weeks []time.Weekday) string {
	parts := make([]string, len(weeks))
	for i, w := range weeks {
		parts[i] = strconv.Itoa(int(w))
	}
	return strings.Join(parts, ",")
}

// PeriodicRoom is one generated occurrence. The room row for an occurrence
// is materialized separately; RoomUUID here is the identifier the room row
// will take once it exists.
type PeriodicRoom struct {
	ID           uint64             `gorm:"column:id;primaryKey;AUTO_INCREMENT"`
	PeriodicUUID string             `gorm:"column:periodic_uuid;size:40;index;NOT NULL"`
	RoomUUID     string             `gorm:"column:room_uuid;size:40;uniqueIndex;NOT NULL"`
	BeginTime    time.Time          `gorm:"column:begin_time;NOT NULL"`
	EndTime      time.Time          `gorm:"column:end_time;NOT NULL"`
	RoomStatus   PeriodicRoomStatus `gorm:"column:room_status;size:32;NOT NULL"`
	Created      time.Time          `gorm:"column:created;autoCreateTime;NOT NULL"`
	Modified     time.Time          `gorm:"column:modified;autoUpdateTime;NOT NULL"`
}

func (m *PeriodicRoom) TableName() string {
	return "cp_room_periodic"
}

type PeriodicUser struct {
	ID           uint64    `gorm:"column:id;primaryKey;AUTO_INCREMENT"`
	PeriodicUUID string    `gorm:"column:periodic_uuid;size:40;uniqueIndex:idx_periodic_user,priority:1;NOT NULL"`
	UserUUID     string    `gorm:"column:user_uuid;size:40;uniqueIndex:idx_periodic_user,priority:2;NOT NULL"`
	Created      time.Time `gorm:"column:created;autoCreateTime;NOT NULL"`
}

func (m *PeriodicUser) TableName() string {
	return "cp_room_periodic_user"
}
