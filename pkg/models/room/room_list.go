package roommodel

import (
	"context"

	"github.com/classpad/classpad-server/pkg/dbmodels"
	"github.com/classpad/classpad-server/pkg/errcode"
)

type RoomListData struct {
	RoomUUID     string              `json:"roomUUID"`
	PeriodicUUID string              `json:"periodicUUID,omitempty"`
	OwnerUUID    string              `json:"ownerUUID"`
	Title        string              `json:"title"`
	RoomType     dbmodels.RoomType   `json:"roomType"`
	RoomStatus   dbmodels.RoomStatus `json:"roomStatus"`
	BeginTime    int64               `json:"beginTime"`
	EndTime      int64               `json:"endTime"`
}

type ListRoomsRes struct {
	Rooms []RoomListData `json:"rooms"`
}

// ListRooms returns every booking the caller is a member of, soonest first.
func (m *RoomModel) ListRooms(ctx context.Context, userUUID string) (*ListRoomsRes, error) {
	rooms, err := m.ds.GetRoomsOfUser(userUUID)
	if err != nil {
		m.logger.Errorln(err)
		return nil, errcode.New(errcode.CurrentProcessFailed)
	}

	res := &ListRoomsRes{Rooms: make([]RoomListData, 0, len(rooms))}
	for _, r := range rooms {
		res.Rooms = append(res.Rooms, RoomListData{
			RoomUUID:     r.RoomUUID,
			PeriodicUUID: r.PeriodicUUID,
			OwnerUUID:    r.OwnerUUID,
			Title:        r.Title,
			RoomType:     r.RoomType,
			RoomStatus:   r.RoomStatus,
			BeginTime:    r.BeginTime.UnixMilli(),
			EndTime:      r.EndTime.UnixMilli(),
		})
	}
	return res, nil
}
