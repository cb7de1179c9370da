package redisservice

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newTestService(t *testing.T) *RedisService {
	t.Helper()
	mr := miniredis.RunT(t)
	return New(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
}

func TestCreationProgressLock(t *testing.T) {
	s := newTestService(t)
	ctx := context.Background()

	inProgress, err := s.IsCreationInProgress(ctx, "periodic:owner-1:1")
	if err != nil {
		t.Fatal(err)
	}
	if inProgress {
		t.Error("fresh key reported as in progress")
	}

	ok, err := s.LockCreationProgress(ctx, "periodic:owner-1:1")
	if err != nil || !ok {
		t.Fatalf("first lock: ok=%v err=%v", ok, err)
	}

	inProgress, err = s.IsCreationInProgress(ctx, "periodic:owner-1:1")
	if err != nil {
		t.Fatal(err)
	}
	if !inProgress {
		t.Error("held key not reported as in progress")
	}

	ok, err = s.LockCreationProgress(ctx, "periodic:owner-1:1")
	if err != nil {
		t.Fatal(err)
	}
	if ok {
		t.Error("second lock on a held key succeeded")
	}

	// an unrelated key is independent
	ok, err = s.LockCreationProgress(ctx, "room:owner-1:1")
	if err != nil || !ok {
		t.Fatalf("unrelated lock: ok=%v err=%v", ok, err)
	}

	if err = s.UnlockCreationProgress(ctx, "periodic:owner-1:1"); err != nil {
		t.Fatal(err)
	}
	ok, err = s.LockCreationProgress(ctx, "periodic:owner-1:1")
	if err != nil || !ok {
		t.Fatalf("relock after unlock: ok=%v err=%v", ok, err)
	}
}
