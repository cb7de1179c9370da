package roommodel

import (
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/classpad/classpad-server/pkg/config"
	"github.com/classpad/classpad-server/pkg/dbmodels"
	"github.com/glebarez/sqlite"
	"github.com/redis/go-redis/v9"
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

	err = db.AutoMigrate(
		&dbmodels.RoomInfo{}, &dbmodels.RoomUser{},
		&dbmodels.PeriodicConfig{}, &dbmodels.PeriodicRoom{}, &dbmodels.PeriodicUser{},
		&dbmodels.RoomRecord{},
		&dbmodels.CloudStorageFile{}, &dbmodels.CloudStorageUserFile{},
	)
	if err != nil {
		t.Fatal(err)
	}

	mr := miniredis.RunT(t)

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	validity := 10 * time.Minute
	app := &config.AppConfig{
		ORM:    db,
		RDS:    redis.NewClient(&redis.Options{Addr: mr.Addr()}),
		Logger: logger,
	}
	app.Client.ApiKey = "testkey"
	app.Client.Secret = "test-secret-test-secret-test-secret"
	app.WhiteboardInfo.Host = wbHost
	app.WhiteboardInfo.AccessKey = "wb-access"
	app.WhiteboardInfo.SecretKey = "wb-secret-wb-secret-wb-secret-wb"
	app.WhiteboardInfo.Region = "us-sv"
	app.WhiteboardInfo.TokenValidity = &validity
	return app
}

func newWhiteboardStub(t *testing.T) (*httptest.Server, *int64) {
	t.Helper()

	var hits int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(&hits, 1)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"uuid":"wb-room-1"}`))
	}))
	t.Cleanup(srv.Close)
	return srv, &hits
}

func newFailingWhiteboardStub(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"boom"}`, http.StatusInternalServerError)
	}))
	t.Cleanup(srv.Close)
	return srv
}

// seedRoom inserts a room row directly, bypassing the creation flow.
func seedRoom(t *testing.T, app *config.AppConfig, room *dbmodels.RoomInfo) {
	t.Helper()
	if room.Title == "" {
		room.Title = "algebra"
	}
	if room.RoomType == "" {
		room.RoomType = dbmodels.RoomTypeSmallClass
	}
	if room.BeginTime.IsZero() {
		room.BeginTime = time.Date(2024, 3, 4, 10, 0, 0, 0, time.UTC)
		room.EndTime = room.BeginTime.Add(time.Hour)
	}
	if err := app.ORM.Create(room).Error; err != nil {
		t.Fatal(err)
	}
}
