package filemodel

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
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

func newTestApp(t *testing.T, wbHost string) *config.AppConfig {
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

	if err = db.AutoMigrate(&dbmodels.CloudStorageFile{}, &dbmodels.CloudStorageUserFile{}); err != nil {
		t.Fatal(err)
	}

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	validity := 10 * time.Minute
	app := &config.AppConfig{
		ORM:    db,
		Logger: logger,
	}
	app.WhiteboardInfo.Host = wbHost
	app.WhiteboardInfo.AccessKey = "wb-access"
	app.WhiteboardInfo.SecretKey = "wb-secret-wb-secret-wb-secret-wb"
	app.WhiteboardInfo.Region = "us-sv"
	app.WhiteboardInfo.TokenValidity = &validity
	return app
}

// converterStub answers task submissions and polls with the given status,
// counting requests.
func converterStub(t *testing.T, status string) (*httptest.Server, *int64) {
	t.Helper()

	var hits int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(&hits, 1)
		w.Header().Set("Content-Type", "application/json")
		if r.Method == http.MethodPost {
			_, _ = w.Write([]byte(`{"uuid":"wb-task-1"}`))
			return
		}
		_, _ = w.Write([]byte(`{"status":"` + status + `"}`))
	}))
	t.Cleanup(srv.Close)
	return srv, &hits
}

func seedFile(t *testing.T, app *config.AppConfig, step dbmodels.FileConvertStep, fileURL string) {
	t.Helper()
	file := &dbmodels.CloudStorageFile{
		FileUUID:    "file-1",
		FileName:    "slides",
		FileURL:     fileURL,
		ConvertStep: step,
	}
	if step == dbmodels.ConvertStepConverting {
		file.TaskUUID = "wb-task-1"
	}
	if err := app.ORM.Create(file).Error; err != nil {
		t.Fatal(err)
	}
	link := &dbmodels.CloudStorageUserFile{
		FileUUID: "file-1",
		UserUUID: "owner-1",
	}
	if err := app.ORM.Create(link).Error; err != nil {
		t.Fatal(err)
	}
}

func TestConvertStart(t *testing.T) {
	srv, _ := converterStub(t, "Waiting")
	app := newTestApp(t, srv.URL)
	m := New(app, nil, nil)
	ds := dbservice.New(app.ORM)

	seedFile(t, app, dbmodels.ConvertStepNone, "https://files.example.com/deck.pptx")

	res, err := m.ConvertStart(context.Background(), "owner-1", "file-1")
	if err != nil {
		t.Fatalf("convert start failed: %v", err)
	}
	if res.TaskUUID != "wb-task-1" || res.TaskToken == "" {
		t.Errorf("unexpected response: %+v", res)
	}

	file, err := ds.GetCloudStorageFile("file-1")
	if err != nil {
		t.Fatal(err)
	}
	if file.ConvertStep != dbmodels.ConvertStepConverting {
		t.Errorf("step %s, want Converting", file.ConvertStep)
	}
	if file.TaskUUID != "wb-task-1" || file.TaskToken != res.TaskToken {
		t.Errorf("task reference not stored: %+v", file)
	}
}

func TestConvertStartRejectsBusyFileWithoutRemoteCall(t *testing.T) {
	srv, hits := converterStub(t, "Waiting")
	app := newTestApp(t, srv.URL)
	m := New(app, nil, nil)

	seedFile(t, app, dbmodels.ConvertStepConverting, "https://files.example.com/deck.pptx")

	_, err := m.ConvertStart(context.Background(), "owner-1", "file-1")
	if !errors.Is(err, errcode.New(errcode.FileConvertFailed)) {
		t.Fatalf("got %v, want FileConvertFailed", err)
	}
	if *hits != 0 {
		t.Errorf("busy file reached the converter %d times", *hits)
	}
}

func TestConvertStartRejectsSettledFiles(t *testing.T) {
	srv, hits := converterStub(t, "Waiting")
	app := newTestApp(t, srv.URL)
	m := New(app, nil, nil)

	seedFile(t, app, dbmodels.ConvertStepDone, "https://files.example.com/deck.pptx")
	_, err := m.ConvertStart(context.Background(), "owner-1", "file-1")
	if !errors.Is(err, errcode.New(errcode.FileIsConverted)) {
		t.Errorf("got %v, want FileIsConverted", err)
	}

	if err := app.ORM.Model(&dbmodels.CloudStorageFile{}).
		Where("file_uuid = ?", "file-1").
		Update("convert_step", dbmodels.ConvertStepFailed).Error; err != nil {
		t.Fatal(err)
	}
	_, err = m.ConvertStart(context.Background(), "owner-1", "file-1")
	if !errors.Is(err, errcode.New(errcode.FileConvertFailed)) {
		t.Errorf("got %v, want FileConvertFailed", err)
	}
	if *hits != 0 {
		t.Errorf("settled files reached the converter %d times", *hits)
	}
}

func TestConvertStartChecksOwnership(t *testing.T) {
	srv, _ := converterStub(t, "Waiting")
	app := newTestApp(t, srv.URL)
	m := New(app, nil, nil)

	seedFile(t, app, dbmodels.ConvertStepNone, "https://files.example.com/deck.pptx")

	_, err := m.ConvertStart(context.Background(), "someone-else", "file-1")
	if !errors.Is(err, errcode.New(errcode.FileNotFound)) {
		t.Errorf("got %v, want FileNotFound", err)
	}
	_, err = m.ConvertStart(context.Background(), "owner-1", "no-such-file")
	if !errors.Is(err, errcode.New(errcode.FileNotFound)) {
		t.Errorf("got %v, want FileNotFound", err)
	}
}

func TestConvertFinishSettlesTerminalStates(t *testing.T) {
	srv, _ := converterStub(t, "Finished")
	app := newTestApp(t, srv.URL)
	m := New(app, nil, nil)
	ds := dbservice.New(app.ORM)

	seedFile(t, app, dbmodels.ConvertStepConverting, "https://files.example.com/deck.pptx")

	res, err := m.ConvertFinish(context.Background(), "owner-1", "file-1")
	if err != nil {
		t.Fatalf("convert finish failed: %v", err)
	}
	if res.ConvertStep != dbmodels.ConvertStepDone {
		t.Errorf("step %s, want Done", res.ConvertStep)
	}
	file, _ := ds.GetCloudStorageFile("file-1")
	if file.ConvertStep != dbmodels.ConvertStepDone {
		t.Errorf("persisted step %s, want Done", file.ConvertStep)
	}

	// done is terminal; a second settle rejects
	_, err = m.ConvertFinish(context.Background(), "owner-1", "file-1")
	if !errors.Is(err, errcode.New(errcode.FileIsConverted)) {
		t.Errorf("got %v, want FileIsConverted", err)
	}
}

func TestConvertFinishRemoteFailureMarksFailed(t *testing.T) {
	srv, _ := converterStub(t, "Fail")
	app := newTestApp(t, srv.URL)
	m := New(app, nil, nil)
	ds := dbservice.New(app.ORM)

	seedFile(t, app, dbmodels.ConvertStepConverting, "https://files.example.com/deck.pptx")

	res, err := m.ConvertFinish(context.Background(), "owner-1", "file-1")
	if err != nil {
		t.Fatalf("convert finish failed: %v", err)
	}
	if res.ConvertStep != dbmodels.ConvertStepFailed {
		t.Errorf("step %s, want Failed", res.ConvertStep)
	}
	file, _ := ds.GetCloudStorageFile("file-1")
	if file.ConvertStep != dbmodels.ConvertStepFailed {
		t.Errorf("persisted step %s, want Failed", file.ConvertStep)
	}
}

func TestConvertFinishStillRunningMutatesNothing(t *testing.T) {
	srv, _ := converterStub(t, "Converting")
	app := newTestApp(t, srv.URL)
	m := New(app, nil, nil)
	ds := dbservice.New(app.ORM)

	seedFile(t, app, dbmodels.ConvertStepConverting, "https://files.example.com/deck.pptx")

	res, err := m.ConvertFinish(context.Background(), "owner-1", "file-1")
	if err != nil {
		t.Fatalf("convert finish failed: %v", err)
	}
	if res.ConvertStep != dbmodels.ConvertStepConverting {
		t.Errorf("step %s, want Converting", res.ConvertStep)
	}
	file, _ := ds.GetCloudStorageFile("file-1")
	if file.ConvertStep != dbmodels.ConvertStepConverting {
		t.Errorf("persisted step %s, want Converting", file.ConvertStep)
	}
}

func TestDetermineTaskKind(t *testing.T) {
	cases := map[string]string{
		"https://x/deck.pptx": "dynamic",
		"https://x/deck.PPT":  "dynamic",
		"https://x/notes.pdf": "static",
		"https://x/image.png": "static",
	}
	for url, want := range cases {
		if got := string(determineTaskKind(url)); got != want {
			t.Errorf("%s: got %s, want %s", url, got, want)
		}
	}
}
