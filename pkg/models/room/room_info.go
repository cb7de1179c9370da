package roommodel

import (
	"context"

	"github.com/classpad/classpad-server/pkg/dbmodels"
	"github.com/classpad/classpad-server/pkg/errcode"
)

type OrdinaryInfoRes struct {
	RoomUUID   string              `json:"roomUUID"`
	OwnerUUID  string              `json:"ownerUUID"`
	Title      string              `json:"title"`
	RoomType   dbmodels.RoomType   `json:"roomType"`
	RoomStatus dbmodels.RoomStatus `json:"roomStatus"`
	BeginTime  int64               `json:"beginTime"`
	EndTime    int64               `json:"endTime"`
}

// OrdinaryInfo returns a room's booking data. Non-members get
// RoomNotFound, the same answer as for an absent room.
func (m *RoomModel) OrdinaryInfo(ctx context.Context, userUUID, roomUUID string) (*OrdinaryInfoRes, error) {
	member, err := m.ds.GetRoomUser(roomUUID, userUUID)
	if err != nil {
		m.logger.Errorln(err)
		return nil, errcode.New(errcode.CurrentProcessFailed)
	}
	if member == nil {
		return nil, errcode.New(errcode.RoomNotFound)
	}

	room, err := m.ds.GetRoomInfoByRoomUUID(roomUUID)
	if err != nil {
		m.logger.Errorln(err)
		return nil, errcode.New(errcode.CurrentProcessFailed)
	}
	if room == nil {
		return nil, errcode.New(errcode.RoomNotFound)
	}

	return &OrdinaryInfoRes{
		RoomUUID:   room.RoomUUID,
		OwnerUUID:  room.OwnerUUID,
		Title:      room.Title,
		RoomType:   room.RoomType,
		RoomStatus: room.RoomStatus,
		BeginTime:  room.BeginTime.UnixMilli(),
		EndTime:    room.EndTime.UnixMilli(),
	}, nil
}
