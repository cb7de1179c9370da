package roommodel

import (
	"context"

	"github.com/classpad/classpad-server/pkg/config"
	"github.com/classpad/classpad-server/pkg/dbmodels"
	"github.com/classpad/classpad-server/pkg/errcode"
	"github.com/classpad/classpad-server/pkg/helpers"
)

type JoinRoomRes struct {
	RoomUUID            string            `json:"roomUUID"`
	OwnerUUID           string            `json:"ownerUUID"`
	RoomType            dbmodels.RoomType `json:"roomType"`
	RtcUID              string            `json:"rtcUID"`
	WhiteboardRoomUUID  string            `json:"whiteboardRoomUUID"`
	WhiteboardRoomToken string            `json:"whiteboardRoomToken"`
	RtmToken            string            `json:"rtmToken"`
}

// JoinRoom registers the caller as a room member (idempotent for repeat
// joins) and hands out the signed credentials for the whiteboard room and
// the rtm channel. Ended or cancelled rooms cannot be joined.
func (m *RoomModel) JoinRoom(ctx context.Context, userUUID, roomUUID string) (*JoinRoomRes, error) {
	room, err := m.ds.GetRoomInfoByRoomUUID(roomUUID)
	if err != nil {
		m.logger.Errorln(err)
		return nil, errcode.New(errcode.CurrentProcessFailed)
	}
	if room == nil {
		return nil, errcode.New(errcode.RoomNotFound)
	}
	if room.RoomStatus == dbmodels.RoomStatusStopped || room.RoomStatus == dbmodels.RoomStatusCancelled {
		return nil, errcode.New(errcode.RoomIsEnded)
	}

	member, err := m.ds.GetRoomUser(roomUUID, userUUID)
	if err != nil {
		m.logger.Errorln(err)
		return nil, errcode.New(errcode.CurrentProcessFailed)
	}
	if member == nil {
		rtcUID, err := helpers.RandomNumericString(config.RtcUidLength)
		if err != nil {
			m.logger.Errorln(err)
			return nil, errcode.New(errcode.CurrentProcessFailed)
		}
		member = &dbmodels.RoomUser{
			RoomUUID: roomUUID,
			UserUUID: userUUID,
			RtcUID:   rtcUID,
		}
		if err = m.ds.InsertRoomUser(member); err != nil {
			m.logger.Errorln(err)
			return nil, errcode.New(errcode.CurrentProcessFailed)
		}
	}

	wbToken, err := m.wb.RoomToken(room.WhiteboardRoomUUID, false)
	if err != nil {
		m.logger.Errorln(err)
		return nil, errcode.New(errcode.CurrentProcessFailed)
	}
	rtmToken, err := m.wb.RtmToken(userUUID)
	if err != nil {
		m.logger.Errorln(err)
		return nil, errcode.New(errcode.CurrentProcessFailed)
	}

	return &JoinRoomRes{
		RoomUUID:            room.RoomUUID,
		OwnerUUID:           room.OwnerUUID,
		RoomType:            room.RoomType,
		RtcUID:              member.RtcUID,
		WhiteboardRoomUUID:  room.WhiteboardRoomUUID,
		WhiteboardRoomToken: wbToken,
		RtmToken:            rtmToken,
	}, nil
}
