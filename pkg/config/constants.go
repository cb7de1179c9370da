package config

import "time"

const (
	// MaxPeriodicRate caps the occurrence count of a recurring series.
	MaxPeriodicRate = 50
	MaxRoomTitleLen = 50

	// RtcUidLength is the digit count of the per-user rtc identifier.
	RtcUidLength = 6

	DefaultTokenValidity     = 10 * time.Minute
	DefaultWhiteboardTimeout = 15 * time.Second

	DefaultWebhookQueueSize = 200
	DefaultWebhookWorkers   = 5

	WaitIfCreationInProgress = 500 * time.Millisecond
)
