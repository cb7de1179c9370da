package periodicmodel

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

// newTestApp wires an in-memory database and redis so the model runs the
// same transactions it runs in production.
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

// newWhiteboardStub answers room and conversion task calls and counts the
// requests it served.
func newWhiteboardStub(t *testing.T) (*httptest.Server, *int64) {
	t.Helper()

	var hits int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(&hits, 1)
		w.Header().Set("Content-Type", "application/json")
		switch {
		case r.URL.Path == "/v5/rooms":
			_, _ = w.Write([]byte(`{"uuid":"wb-room-1"}`))
		case r.URL.Path == "/v5/services/conversion/tasks" && r.Method == http.MethodPost:
			_, _ = w.Write([]byte(`{"uuid":"wb-task-1"}`))
		default:
			_, _ = w.Write([]byte(`{"status":"Finished"}`))
		}
	}))
	t.Cleanup(srv.Close)
	return srv, &hits
}

// newFailingWhiteboardStub rejects everything.
func newFailingWhiteboardStub(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"boom"}`, http.StatusInternalServerError)
	}))
	t.Cleanup(srv.Close)
	return srv
}
