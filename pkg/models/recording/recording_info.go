package recordingmodel

import (
	"context"
	"fmt"
	"strings"

	"github.com/classpad/classpad-server/pkg/dbmodels"
	"github.com/classpad/classpad-server/pkg/errcode"
)

type RecordInfoRes struct {
	Title               string            `json:"title"`
	OwnerUUID           string            `json:"ownerUUID"`
	RoomType            dbmodels.RoomType `json:"roomType"`
	WhiteboardRoomUUID  string            `json:"whiteboardRoomUUID"`
	WhiteboardRoomToken string            `json:"whiteboardRoomToken"`
	RtmToken            string            `json:"rtmToken"`
	Records             []RecordData      `json:"recordInfo"`
}

type RecordData struct {
	BeginTime int64  `json:"beginTime"`
	EndTime   int64  `json:"endTime"`
	VideoURL  string `json:"videoURL"`
}

// RecordInfo lists the finished recording sessions of a Stopped room as
// playable artifacts, together with a readonly whiteboard credential for
// replay. Members only; a room still running reports RoomNotIsEnded.
func (m *RecordingModel) RecordInfo(ctx context.Context, userUUID, roomUUID string) (*RecordInfoRes, error) {
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
	if room.RoomStatus != dbmodels.RoomStatusStopped {
		return nil, errcode.New(errcode.RoomNotIsEnded)
	}

	records, err := m.ds.GetRoomRecords(roomUUID)
	if err != nil {
		m.logger.Errorln(err)
		return nil, errcode.New(errcode.CurrentProcessFailed)
	}
	if len(records) == 0 {
		return nil, errcode.New(errcode.RecordNotFound)
	}

	wbToken, err := m.wb.RoomToken(room.WhiteboardRoomUUID, true)
	if err != nil {
		m.logger.Errorln(err)
		return nil, errcode.New(errcode.CurrentProcessFailed)
	}
	rtmToken, err := m.wb.RtmToken(userUUID)
	if err != nil {
		m.logger.Errorln(err)
		return nil, errcode.New(errcode.CurrentProcessFailed)
	}

	res := &RecordInfoRes{
		Title:               room.Title,
		OwnerUUID:           room.OwnerUUID,
		RoomType:            room.RoomType,
		WhiteboardRoomUUID:  room.WhiteboardRoomUUID,
		WhiteboardRoomToken: wbToken,
		RtmToken:            rtmToken,
		Records:             make([]RecordData, 0, len(records)),
	}
	for _, r := range records {
		res.Records = append(res.Records, RecordData{
			BeginTime: r.BeginTime.UnixMilli(),
			EndTime:   r.EndTime.UnixMilli(),
			VideoURL:  m.videoURL(roomUUID, r.ProviderSID),
		})
	}
	return res, nil
}

func (m *RecordingModel) videoURL(roomUUID, providerSID string) string {
	if providerSID == "" {
		return ""
	}
	return fmt.Sprintf("%s/%s/%s/%s_%s.m3u8",
		m.app.RecordingInfo.PlaybackPrefix,
		m.app.RecordingInfo.PlaybackFolder,
		strings.ReplaceAll(roomUUID, "-", ""),
		providerSID, roomUUID)
}
