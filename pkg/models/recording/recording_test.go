package recordingmodel

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/classpad/classpad-server/pkg/config"
	"github.com/classpad/classpad-server/pkg/dbmodels"
	"github.com/classpad/classpad-server/pkg/errcode"
	"github.com/classpad/classpad-server/pkg/services/dbservice"
	"github.com/glebarez/sqlite"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func newTestApp(t *testing.T) *config.AppConfig {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatal(err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatal(err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err = db.AutoMigrate(&dbmodels.RoomInfo{}, &dbmodels.RoomUser{}, &dbmodels.RoomRecord{}); err != nil {
		t.Fatal(err)
	}

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	validity := 10 * time.Minute
	app := &config.AppConfig{
		ORM:    db,
		Logger: logger,
	}
	app.WhiteboardInfo.AccessKey = "wb-access"
	app.WhiteboardInfo.SecretKey = "wb-secret-wb-secret-wb-secret-wb"
	app.WhiteboardInfo.TokenValidity = &validity
	app.RecordingInfo.PlaybackPrefix = "https://recordings.example.com"
	app.RecordingInfo.PlaybackFolder = "replays"
	return app
}

func seedRoom(t *testing.T, app *config.AppConfig, roomUUID string, status dbmodels.RoomStatus) {
	t.Helper()
	begin := time.Date(2024, 3, 4, 10, 0, 0, 0, time.UTC)
	if err := app.ORM.Create(&dbmodels.RoomInfo{
		RoomUUID:           roomUUID,
		OwnerUUID:          "owner-1",
		Title:              "algebra",
		RoomType:           dbmodels.RoomTypeSmallClass,
		RoomStatus:         status,
		BeginTime:          begin,
		EndTime:            begin.Add(time.Hour),
		WhiteboardRoomUUID: "wb-room-1",
	}).Error; err != nil {
		t.Fatal(err)
	}
	if err := app.ORM.Create(&dbmodels.RoomUser{
		RoomUUID: roomUUID,
		UserUUID: "owner-1",
		RtcUID:   "123456",
	}).Error; err != nil {
		t.Fatal(err)
	}
}

func TestAcquireRecordRequiresRunningRoom(t *testing.T) {
	app := newTestApp(t)
	m := New(app, nil, nil)

	seedRoom(t, app, "running-room", dbmodels.RoomStatusStarted)
	seedRoom(t, app, "idle-room", dbmodels.RoomStatusIdle)

	res, err := m.AcquireRecord(context.Background(), "owner-1", "running-room")
	if err != nil {
		t.Fatalf("acquire failed: %v", err)
	}
	if res.RecordToken == "" {
		t.Error("acquire returned empty credential")
	}

	_, err = m.AcquireRecord(context.Background(), "owner-1", "idle-room")
	if !errors.Is(err, errcode.New(errcode.RoomNotRunning)) {
		t.Errorf("got %v, want RoomNotRunning", err)
	}
	_, err = m.AcquireRecord(context.Background(), "intruder", "running-room")
	if !errors.Is(err, errcode.New(errcode.NotPermission)) {
		t.Errorf("got %v, want NotPermission", err)
	}
	_, err = m.AcquireRecord(context.Background(), "owner-1", "missing")
	if !errors.Is(err, errcode.New(errcode.RoomNotFound)) {
		t.Errorf("got %v, want RoomNotFound", err)
	}
}

func TestRecordSessionRoundTrip(t *testing.T) {
	app := newTestApp(t)
	m := New(app, nil, nil)
	ds := dbservice.New(app.ORM)

	seedRoom(t, app, "room-1", dbmodels.RoomStatusStarted)

	res, err := m.RecordStarted(context.Background(), "owner-1", "room-1", "sid-abc")
	if err != nil {
		t.Fatalf("record start failed: %v", err)
	}

	record, err := ds.GetRoomRecord(res.RecordUUID)
	if err != nil || record == nil {
		t.Fatalf("record not persisted: %v", err)
	}
	if record.ProviderSID != "sid-abc" || !record.EndTime.IsZero() {
		t.Errorf("unexpected record: %+v", record)
	}

	if err = m.RecordStopped(context.Background(), "owner-1", "room-1", res.RecordUUID); err != nil {
		t.Fatalf("record stop failed: %v", err)
	}
	record, _ = ds.GetRoomRecord(res.RecordUUID)
	if record.EndTime.IsZero() {
		t.Error("record end time not set")
	}

	// a record of another room is invisible
	seedRoom(t, app, "room-2", dbmodels.RoomStatusStarted)
	err = m.RecordStopped(context.Background(), "owner-1", "room-2", res.RecordUUID)
	if !errors.Is(err, errcode.New(errcode.RecordNotFound)) {
		t.Errorf("got %v, want RecordNotFound", err)
	}
}

func TestRecordInfo(t *testing.T) {
	app := newTestApp(t)
	m := New(app, nil, nil)

	seedRoom(t, app, "room-1", dbmodels.RoomStatusStopped)
	begin := time.Date(2024, 3, 4, 10, 0, 0, 0, time.UTC)
	if err := app.ORM.Create(&dbmodels.RoomRecord{
		RecordUUID:  "rec-1",
		RoomUUID:    "room-1",
		BeginTime:   begin,
		EndTime:     begin.Add(30 * time.Minute),
		ProviderSID: "sid-abc",
	}).Error; err != nil {
		t.Fatal(err)
	}

	res, err := m.RecordInfo(context.Background(), "owner-1", "room-1")
	if err != nil {
		t.Fatalf("record info failed: %v", err)
	}
	if len(res.Records) != 1 {
		t.Fatalf("got %d records, want 1", len(res.Records))
	}
	if res.WhiteboardRoomToken == "" || res.RtmToken == "" {
		t.Error("replay credentials missing")
	}

	r := res.Records[0]
	if r.BeginTime != begin.UnixMilli() {
		t.Errorf("begin time %d, want %d", r.BeginTime, begin.UnixMilli())
	}
	wantURL := fmt.Sprintf("https://recordings.example.com/replays/%s/sid-abc_room-1.m3u8",
		strings.ReplaceAll("room-1", "-", ""))
	if r.VideoURL != wantURL {
		t.Errorf("video url %q, want %q", r.VideoURL, wantURL)
	}
}

func TestRecordInfoGuards(t *testing.T) {
	app := newTestApp(t)
	m := New(app, nil, nil)

	seedRoom(t, app, "running-room", dbmodels.RoomStatusStarted)
	seedRoom(t, app, "bare-room", dbmodels.RoomStatusStopped)

	// still running
	_, err := m.RecordInfo(context.Background(), "owner-1", "running-room")
	if !errors.Is(err, errcode.New(errcode.RoomNotIsEnded)) {
		t.Errorf("got %v, want RoomNotIsEnded", err)
	}
	// ended but never recorded
	_, err = m.RecordInfo(context.Background(), "owner-1", "bare-room")
	if !errors.Is(err, errcode.New(errcode.RecordNotFound)) {
		t.Errorf("got %v, want RecordNotFound", err)
	}
	// non-member
	_, err = m.RecordInfo(context.Background(), "stranger", "bare-room")
	if !errors.Is(err, errcode.New(errcode.RoomNotFound)) {
		t.Errorf("got %v, want RoomNotFound", err)
	}
}
