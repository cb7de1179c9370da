package factory

import (
	"context"
	"crypto/tls"

	"github.com/classpad/classpad-server/pkg/config"
	"github.com/redis/go-redis/v9"
)

func NewRedisConnection(ctx context.Context, appCnf *config.AppConfig) error {
	rf := appCnf.RedisInfo
	var rdb *redis.Client
	var tlsConfig *tls.Config

	if rf.UseTLS {
		tlsConfig = &tls.Config{
			MinVersion: tls.VersionTLS12,
		}
	}
	if rf.SentinelAddresses != nil {
		rdb = redis.NewFailoverClient(&redis.FailoverOptions{
			SentinelAddrs: rf.SentinelAddresses,
			MasterName:    rf.MasterName,
			Username:      rf.Username,
			Password:      rf.Password,
			DB:            rf.DBName,
			TLSConfig:     tlsConfig,
		})
	} else {
		rdb = redis.NewClient(&redis.Options{
			Addr:      rf.Host,
			Username:  rf.Username,
			Password:  rf.Password,
			DB:        rf.DBName,
			TLSConfig: tlsConfig,
		})
	}

	if _, err := rdb.Ping(ctx).Result(); err != nil {
		return err
	}

	appCnf.RDS = rdb
	return nil
}
