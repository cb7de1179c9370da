package periodicmodel

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/classpad/classpad-server/pkg/dbmodels"
	"github.com/classpad/classpad-server/pkg/errcode"
	"github.com/classpad/classpad-server/pkg/services/dbservice"
)

// seedSeries creates a three occurrence series through the model, then
// returns the generated identifiers.
func seedSeries(t *testing.T, m *PeriodicModel) (periodicUUID string, roomUUIDs []string) {
	t.Helper()

	res, err := m.CreatePeriodic(context.Background(), "owner-1", &CreatePeriodicReq{
		Title:     "algebra",
		RoomType:  dbmodels.RoomTypeSmallClass,
		BeginTime: time.Date(2024, 3, 4, 10, 0, 0, 0, time.UTC),
		EndTime:   time.Date(2024, 3, 4, 11, 0, 0, 0, time.UTC),
		Periodic: PeriodicRule{
			Weeks: []time.Weekday{time.Monday, time.Wednesday},
			Rate:  3,
		},
	})
	if err != nil {
		t.Fatalf("seed create failed: %v", err)
	}

	ds := dbservice.New(m.app.ORM)
	rooms, err := ds.GetPeriodicRooms(res.PeriodicUUID)
	if err != nil {
		t.Fatal(err)
	}
	for _, r := range rooms {
		roomUUIDs = append(roomUUIDs, r.RoomUUID)
	}
	return res.PeriodicUUID, roomUUIDs
}

func TestCancelPeriodicFlipsOnlyIdle(t *testing.T) {
	srv, _ := newWhiteboardStub(t)
	app := newTestApp(t, srv.URL)
	m := New(app, nil, nil, nil)
	ds := dbservice.New(app.ORM)

	periodicUUID, roomUUIDs := seedSeries(t, m)

	// first occurrence already ran
	if err := ds.UpdatePeriodicRoomStatus(roomUUIDs[0], dbmodels.PeriodicRoomStatusStarted); err != nil {
		t.Fatal(err)
	}
	if err := ds.UpdatePeriodicRoomStatus(roomUUIDs[0], dbmodels.PeriodicRoomStatusStopped); err != nil {
		t.Fatal(err)
	}
	if err := ds.UpdateRoomStatus(roomUUIDs[0], dbmodels.RoomStatusStopped); err != nil {
		t.Fatal(err)
	}

	if err := m.CancelPeriodic(context.Background(), "owner-1", periodicUUID); err != nil {
		t.Fatalf("cancel failed: %v", err)
	}

	cnf, err := ds.GetPeriodicConfig(periodicUUID)
	if err != nil {
		t.Fatal(err)
	}
	if cnf.PeriodicStatus != dbmodels.PeriodicStatusCancelled {
		t.Errorf("config status %s, want Cancelled", cnf.PeriodicStatus)
	}

	rooms, err := ds.GetPeriodicRooms(periodicUUID)
	if err != nil {
		t.Fatal(err)
	}
	if rooms[0].RoomStatus != dbmodels.PeriodicRoomStatusStopped {
		t.Errorf("stopped occurrence was touched: %s", rooms[0].RoomStatus)
	}
	for _, r := range rooms[1:] {
		if r.RoomStatus != dbmodels.PeriodicRoomStatusCancelled {
			t.Errorf("occurrence %s status %s, want Cancelled", r.RoomUUID, r.RoomStatus)
		}
	}
}

func TestCancelPeriodicCancelsMaterializedIdleRoom(t *testing.T) {
	srv, _ := newWhiteboardStub(t)
	app := newTestApp(t, srv.URL)
	m := New(app, nil, nil, nil)
	ds := dbservice.New(app.ORM)

	periodicUUID, roomUUIDs := seedSeries(t, m)

	if err := m.CancelPeriodic(context.Background(), "owner-1", periodicUUID); err != nil {
		t.Fatalf("cancel failed: %v", err)
	}

	first, err := ds.GetRoomInfoByRoomUUID(roomUUIDs[0])
	if err != nil || first == nil {
		t.Fatalf("first room missing: %v", err)
	}
	if first.RoomStatus != dbmodels.RoomStatusCancelled {
		t.Errorf("materialized room status %s, want Cancelled", first.RoomStatus)
	}
}

func TestCancelPeriodicChecksOwnerAndState(t *testing.T) {
	srv, _ := newWhiteboardStub(t)
	app := newTestApp(t, srv.URL)
	m := New(app, nil, nil, nil)

	periodicUUID, _ := seedSeries(t, m)

	err := m.CancelPeriodic(context.Background(), "intruder", periodicUUID)
	if !errors.Is(err, errcode.New(errcode.NotPermission)) {
		t.Errorf("got %v, want NotPermission", err)
	}

	err = m.CancelPeriodic(context.Background(), "owner-1", "no-such-series")
	if !errors.Is(err, errcode.New(errcode.PeriodicNotFound)) {
		t.Errorf("got %v, want PeriodicNotFound", err)
	}

	// cancelling twice: the second call finds a terminal config
	if err = m.CancelPeriodic(context.Background(), "owner-1", periodicUUID); err != nil {
		t.Fatal(err)
	}
	err = m.CancelPeriodic(context.Background(), "owner-1", periodicUUID)
	if !errors.Is(err, errcode.New(errcode.PeriodicIsEnded)) {
		t.Errorf("got %v, want PeriodicIsEnded", err)
	}
}

func TestCancelPeriodicSubRoom(t *testing.T) {
	srv, _ := newWhiteboardStub(t)
	app := newTestApp(t, srv.URL)
	m := New(app, nil, nil, nil)
	ds := dbservice.New(app.ORM)

	periodicUUID, roomUUIDs := seedSeries(t, m)

	if err := m.CancelPeriodicSubRoom(context.Background(), "owner-1", periodicUUID, roomUUIDs[1]); err != nil {
		t.Fatalf("sub room cancel failed: %v", err)
	}

	rooms, err := ds.GetPeriodicRooms(periodicUUID)
	if err != nil {
		t.Fatal(err)
	}
	if rooms[1].RoomStatus != dbmodels.PeriodicRoomStatusCancelled {
		t.Errorf("target occurrence status %s, want Cancelled", rooms[1].RoomStatus)
	}
	if rooms[0].RoomStatus != dbmodels.PeriodicRoomStatusIdle || rooms[2].RoomStatus != dbmodels.PeriodicRoomStatusIdle {
		t.Error("sibling occurrences were touched")
	}
	cnf, err := ds.GetPeriodicConfig(periodicUUID)
	if err != nil {
		t.Fatal(err)
	}
	if cnf.PeriodicStatus != dbmodels.PeriodicStatusIdle {
		t.Errorf("series config was touched: %s", cnf.PeriodicStatus)
	}
}

func TestCancelPeriodicSubRoomRejectsNonIdle(t *testing.T) {
	srv, _ := newWhiteboardStub(t)
	app := newTestApp(t, srv.URL)
	m := New(app, nil, nil, nil)
	ds := dbservice.New(app.ORM)

	periodicUUID, roomUUIDs := seedSeries(t, m)
	if err := ds.UpdatePeriodicRoomStatus(roomUUIDs[0], dbmodels.PeriodicRoomStatusStarted); err != nil {
		t.Fatal(err)
	}

	err := m.CancelPeriodicSubRoom(context.Background(), "owner-1", periodicUUID, roomUUIDs[0])
	if !errors.Is(err, errcode.New(errcode.RoomNotIsIdle)) {
		t.Errorf("got %v, want RoomNotIsIdle", err)
	}

	err = m.CancelPeriodicSubRoom(context.Background(), "owner-1", periodicUUID, "no-such-room")
	if !errors.Is(err, errcode.New(errcode.PeriodicSubRoomFound)) {
		t.Errorf("got %v, want PeriodicSubRoomFound", err)
	}
}

func TestCancelPeriodicMidTransactionFailureLeavesSeriesUntouched(t *testing.T) {
	srv, _ := newWhiteboardStub(t)
	app := newTestApp(t, srv.URL)
	m := New(app, nil, nil, nil)
	ds := dbservice.New(app.ORM)

	periodicUUID, _ := seedSeries(t, m)

	// the final room flip of the transaction has no table to land in
	if err := app.ORM.Migrator().DropTable(&dbmodels.RoomInfo{}); err != nil {
		t.Fatal(err)
	}

	err := m.CancelPeriodic(context.Background(), "owner-1", periodicUUID)
	if !errors.Is(err, errcode.New(errcode.CurrentProcessFailed)) {
		t.Fatalf("got %v, want CurrentProcessFailed", err)
	}

	// the earlier status flips of the transaction must be rolled back
	cnf, err := ds.GetPeriodicConfig(periodicUUID)
	if err != nil || cnf == nil {
		t.Fatalf("config lost: %v", err)
	}
	if cnf.PeriodicStatus != dbmodels.PeriodicStatusIdle {
		t.Errorf("series status %s, want Idle", cnf.PeriodicStatus)
	}
	rooms, err := ds.GetPeriodicRooms(periodicUUID)
	if err != nil {
		t.Fatal(err)
	}
	for i, r := range rooms {
		if r.RoomStatus != dbmodels.PeriodicRoomStatusIdle {
			t.Errorf("occurrence %d status %s, want Idle", i, r.RoomStatus)
		}
	}
}
