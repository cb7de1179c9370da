package recordingmodel

import (
	"context"
	"time"

	"github.com/classpad/classpad-server/pkg/dbmodels"
	"github.com/classpad/classpad-server/pkg/errcode"
	"github.com/google/uuid"
)

type AcquireRecordRes struct {
	RecordToken string `json:"recordToken"`
}

// AcquireRecord hands the owner a signed credential for the recording
// provider. Recording is only meaningful while the room is Started.
func (m *RecordingModel) AcquireRecord(ctx context.Context, userUUID, roomUUID string) (*AcquireRecordRes, error) {
	room, err := m.ownedStartedRoom(userUUID, roomUUID)
	if err != nil {
		return nil, err
	}

	token, err := m.wb.RtmToken(room.OwnerUUID)
	if err != nil {
		m.logger.Errorln(err)
		return nil, errcode.New(errcode.CurrentProcessFailed)
	}
	return &AcquireRecordRes{RecordToken: token}, nil
}

type RecordStartedRes struct {
	RecordUUID string `json:"recordUUID"`
}

// RecordStarted opens a recording session row. The provider session id is
// what the remote recorder reported back on start.
func (m *RecordingModel) RecordStarted(ctx context.Context, userUUID, roomUUID, providerSID string) (*RecordStartedRes, error) {
	if _, err := m.ownedStartedRoom(userUUID, roomUUID); err != nil {
		return nil, err
	}

	record := &dbmodels.RoomRecord{
		RecordUUID:  uuid.NewString(),
		RoomUUID:    roomUUID,
		BeginTime:   time.Now().UTC(),
		ProviderSID: providerSID,
	}
	if err := m.ds.InsertRoomRecord(record); err != nil {
		m.logger.Errorln(err)
		return nil, errcode.New(errcode.CurrentProcessFailed)
	}
	return &RecordStartedRes{RecordUUID: record.RecordUUID}, nil
}

// RecordStopped closes an open recording session.
func (m *RecordingModel) RecordStopped(ctx context.Context, userUUID, roomUUID, recordUUID string) error {
	room, err := m.ds.GetRoomInfoByRoomUUID(roomUUID)
	if err != nil {
		m.logger.Errorln(err)
		return errcode.New(errcode.CurrentProcessFailed)
	}
	if room == nil {
		return errcode.New(errcode.RoomNotFound)
	}
	if room.OwnerUUID != userUUID {
		return errcode.New(errcode.NotPermission)
	}

	record, err := m.ds.GetRoomRecord(recordUUID)
	if err != nil {
		m.logger.Errorln(err)
		return errcode.New(errcode.CurrentProcessFailed)
	}
	if record == nil || record.RoomUUID != roomUUID {
		return errcode.New(errcode.RecordNotFound)
	}

	if err = m.ds.CloseRoomRecord(recordUUID, time.Now().UTC()); err != nil {
		m.logger.Errorln(err)
		return errcode.New(errcode.CurrentProcessFailed)
	}
	return nil
}

func (m *RecordingModel) ownedStartedRoom(userUUID, roomUUID string) (*dbmodels.RoomInfo, error) {
	room, err := m.ds.GetRoomInfoByRoomUUID(roomUUID)
	if err != nil {
		m.logger.Errorln(err)
		return nil, errcode.New(errcode.CurrentProcessFailed)
	}
	if room == nil {
		return nil, errcode.New(errcode.RoomNotFound)
	}
	if room.OwnerUUID != userUUID {
		return nil, errcode.New(errcode.NotPermission)
	}
	if room.RoomStatus != dbmodels.RoomStatusStarted {
		return nil, errcode.New(errcode.RoomNotRunning)
	}
	return room, nil
}
