package dbmodels

// The four lifecycle machines share vocabulary but never a type. Each status
// column gets its own enum and its own transition table; a transition absent
// from the table is illegal and must not touch the row.

type RoomStatus string

const (
	RoomStatusIdle      RoomStatus = "Idle"
	RoomStatusStarted   RoomStatus = "Started"
	RoomStatusPaused    RoomStatus = "Paused"
	RoomStatusStopped   RoomStatus = "Stopped"
	RoomStatusCancelled RoomStatus = "Cancelled"
)

var roomTransitions = map[RoomStatus]map[RoomStatus]bool{
	RoomStatusIdle:    {RoomStatusStarted: true, RoomStatusCancelled: true},
	RoomStatusStarted: {RoomStatusPaused: true, RoomStatusStopped: true},
	RoomStatusPaused:  {RoomStatusStarted: true, RoomStatusStopped: true},
	// Stopped and Cancelled are absorbing
}

func (s RoomStatus) CanTransition(to RoomStatus) bool {
	return roomTransitions[s][to]
}

type PeriodicStatus string

const (
	PeriodicStatusIdle      PeriodicStatus = "Idle"
	PeriodicStatusStarted   PeriodicStatus = "Started"
	PeriodicStatusStopped   PeriodicStatus = "Stopped"
	PeriodicStatusCancelled PeriodicStatus = "Cancelled"
)

var periodicTransitions = map[PeriodicStatus]map[PeriodicStatus]bool{
	PeriodicStatusIdle:    {PeriodicStatusStarted: true, PeriodicStatusCancelled: true},
	PeriodicStatusStarted: {PeriodicStatusStopped: true, PeriodicStatusCancelled: true},
}

func (s PeriodicStatus) CanTransition(to PeriodicStatus) bool {
	return periodicTransitions[s][to]
}

// PeriodicRoomStatus tracks one occurrence of a series. Unlike an ordinary
// room an occurrence may be cancelled only while it is still Idle.
type PeriodicRoomStatus string

const (
	PeriodicRoomStatusIdle      PeriodicRoomStatus = "Idle"
	PeriodicRoomStatusStarted   PeriodicRoomStatus = "Started"
	PeriodicRoomStatusPaused    PeriodicRoomStatus = "Paused"
	PeriodicRoomStatusStopped   PeriodicRoomStatus = "Stopped"
	PeriodicRoomStatusCancelled PeriodicRoomStatus = "Cancelled"
)

var periodicRoomTransitions = map[PeriodicRoomStatus]map[PeriodicRoomStatus]bool{
	PeriodicRoomStatusIdle:    {PeriodicRoomStatusStarted: true, PeriodicRoomStatusCancelled: true},
	PeriodicRoomStatusStarted: {PeriodicRoomStatusPaused: true, PeriodicRoomStatusStopped: true},
	PeriodicRoomStatusPaused:  {PeriodicRoomStatusStarted: true, PeriodicRoomStatusStopped: true},
}

func (s PeriodicRoomStatus) CanTransition(to PeriodicRoomStatus) bool {
	return periodicRoomTransitions[s][to]
}

type FileConvertStep string

const (
	ConvertStepNone       FileConvertStep = "None"
	ConvertStepConverting FileConvertStep = "Converting"
	ConvertStepDone       FileConvertStep = "Done"
	ConvertStepFailed     FileConvertStep = "Failed"
)

var convertTransitions = map[FileConvertStep]map[FileConvertStep]bool{
	ConvertStepNone:       {ConvertStepConverting: true},
	ConvertStepConverting: {ConvertStepDone: true, ConvertStepFailed: true},
}

func (s FileConvertStep) CanTransition(to FileConvertStep) bool {
	return convertTransitions[s][to]
}

type RoomType string

const (
	RoomTypeOneToOne   RoomType = "OneToOne"
	RoomTypeSmallClass RoomType = "SmallClass"
	RoomTypeBigClass   RoomType = "BigClass"
)

func (t RoomType) Valid() bool {
	switch t {
	case RoomTypeOneToOne, RoomTypeSmallClass, RoomTypeBigClass:
		return true
	}
	return false
}
