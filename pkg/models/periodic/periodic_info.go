package periodicmodel

import (
	"context"

	"github.com/classpad/classpad-server/pkg/dbmodels"
	"github.com/classpad/classpad-server/pkg/errcode"
)

type PeriodicInfoRes struct {
	Periodic PeriodicInfoData   `json:"periodic"`
	Rooms    []PeriodicRoomData `json:"rooms"`
}

type PeriodicInfoData struct {
	PeriodicUUID string                  `json:"periodicUUID"`
	OwnerUUID    string                  `json:"ownerUUID"`
	Title        string                  `json:"title"`
	RoomType     dbmodels.RoomType       `json:"roomType"`
	Weeks        []int                   `json:"weeks"`
	Rate         int                     `json:"rate,omitempty"`
	EndTime      int64                   `json:"endTime"`
	Status       dbmodels.PeriodicStatus `json:"periodicStatus"`
}

type PeriodicRoomData struct {
	RoomUUID   string                      `json:"roomUUID"`
	BeginTime  int64                       `json:"beginTime"`
	EndTime    int64                       `json:"endTime"`
	RoomStatus dbmodels.PeriodicRoomStatus `json:"roomStatus"`
}

// PeriodicInfo returns the series config and its ordered occurrence list.
// Callers without a series membership get PeriodicNotFound, never a hint
// that the series exists.
func (m *PeriodicModel) PeriodicInfo(ctx context.Context, userUUID, periodicUUID string) (*PeriodicInfoRes, error) {
	member, err := m.ds.GetPeriodicUser(periodicUUID, userUUID)
	if err != nil {
		m.logger.Errorln(err)
		return nil, errcode.New(errcode.CurrentProcessFailed)
	}
	if member == nil {
		return nil, errcode.New(errcode.PeriodicNotFound)
	}

	info, err := m.ds.GetPeriodicConfig(periodicUUID)
	if err != nil {
		m.logger.Errorln(err)
		return nil, errcode.New(errcode.CurrentProcessFailed)
	}
	if info == nil {
		return nil, errcode.New(errcode.PeriodicNotFound)
	}

	rooms, err := m.ds.GetPeriodicRooms(periodicUUID)
	if err != nil {
		m.logger.Errorln(err)
		return nil, errcode.New(errcode.CurrentProcessFailed)
	}

	weeks := make([]int, 0, 7)
	for _, w := range info.WeekdaySet() {
		weeks = append(weeks, int(w))
	}

	res := &PeriodicInfoRes{
		Periodic: PeriodicInfoData{
			PeriodicUUID: info.PeriodicUUID,
			OwnerUUID:    info.OwnerUUID,
			Title:        info.Title,
			RoomType:     info.RoomType,
			Weeks:        weeks,
			Rate:         info.Rate,
			EndTime:      info.EndTime.UnixMilli(),
			Status:       info.PeriodicStatus,
		},
		Rooms: make([]PeriodicRoomData, 0, len(rooms)),
	}
	for _, r := range rooms {
		res.Rooms = append(res.Rooms, PeriodicRoomData{
			RoomUUID:   r.RoomUUID,
			BeginTime:  r.BeginTime.UnixMilli(),
			EndTime:    r.EndTime.UnixMilli(),
			RoomStatus: r.RoomStatus,
		})
	}
	return res, nil
}

// PeriodicSubRoomInfo returns one occurrence of a series.
func (m *PeriodicModel) PeriodicSubRoomInfo(ctx context.Context, userUUID, periodicUUID, roomUUID string) (*PeriodicRoomData, error) {
	member, err := m.ds.GetPeriodicUser(periodicUUID, userUUID)
	if err != nil {
		m.logger.Errorln(err)
		return nil, errcode.New(errcode.CurrentProcessFailed)
	}
	if member == nil {
		return nil, errcode.New(errcode.PeriodicNotFound)
	}

	room, err := m.ds.GetPeriodicRoomByRoomUUID(roomUUID)
	if err != nil {
		m.logger.Errorln(err)
		return nil, errcode.New(errcode.CurrentProcessFailed)
	}
	if room == nil || room.PeriodicUUID != periodicUUID {
		return nil, errcode.New(errcode.PeriodicSubRoomFound)
	}

	return &PeriodicRoomData{
		RoomUUID:   room.RoomUUID,
		BeginTime:  room.BeginTime.UnixMilli(),
		EndTime:    room.EndTime.UnixMilli(),
		RoomStatus: room.RoomStatus,
	}, nil
}
