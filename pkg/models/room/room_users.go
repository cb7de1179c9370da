package roommodel

import (
	"context"

	"github.com/classpad/classpad-server/pkg/errcode"
)

type RoomUserData struct {
	UserUUID string `json:"userUUID"`
	RtcUID   string `json:"rtcUID"`
}

type RoomUsersRes struct {
	Users []RoomUserData `json:"users"`
}

// RoomUsers lists the members of a room. Non-members get RoomNotFound,
// the same answer as for an absent room.
func (m *RoomModel) RoomUsers(ctx context.Context, userUUID, roomUUID string) (*RoomUsersRes, error) {
	member, err := m.ds.GetRoomUser(roomUUID, userUUID)
	if err != nil {
		m.logger.Errorln(err)
		return nil, errcode.New(errcode.CurrentProcessFailed)
	}
	if member == nil {
		return nil, errcode.New(errcode.RoomNotFound)
	}

	users, err := m.ds.GetRoomUsers(roomUUID)
	if err != nil {
		m.logger.Errorln(err)
		return nil, errcode.New(errcode.CurrentProcessFailed)
	}

	res := &RoomUsersRes{Users: make([]RoomUserData, 0, len(users))}
	for _, u := range users {
		res.Users = append(res.Users, RoomUserData{
			UserUUID: u.UserUUID,
			RtcUID:   u.RtcUID,
		})
	}
	return res, nil
}
