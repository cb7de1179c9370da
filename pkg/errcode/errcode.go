package errcode

import "fmt"

// Code identifies a request failure. Codes are grouped by domain, the same
// grouping the client relies on: 1xxxxx request/process, 2xxxxx room,
// 3xxxxx periodic, 5xxxxx record, 7xxxxx cloud storage.
type Code int

const (
	ParamsCheckFailed    Code = 100000
	CurrentProcessFailed Code = 100001
	NotPermission        Code = 100002
	JWTVerifyFailed      Code = 100003

	RoomNotFound   Code = 200000
	RoomIsEnded    Code = 200001
	RoomNotIsEnded Code = 200002
	RoomNotIsIdle  Code = 200003
	RoomNotRunning Code = 200004

	PeriodicNotFound     Code = 300000
	PeriodicIsEnded      Code = 300001
	PeriodicSubRoomFound Code = 300002

	RecordNotFound Code = 500000

	FileNotFound      Code = 700000
	FileIsConverted   Code = 700001
	FileConvertFailed Code = 700002
)

var messages = map[Code]string{
	ParamsCheckFailed:    "request params check failed",
	CurrentProcessFailed: "current process failed",
	NotPermission:        "not permitted to send this request",
	JWTVerifyFailed:      "verification of token failed",
	RoomNotFound:         "room not found",
	RoomIsEnded:          "room has been ended",
	RoomNotIsEnded:       "room has not been ended yet",
	RoomNotIsIdle:        "room is not in idle status",
	RoomNotRunning:       "room is not running",
	PeriodicNotFound:     "periodic room not found",
	PeriodicIsEnded:      "periodic room has been ended",
	PeriodicSubRoomFound: "periodic sub room not found",
	RecordNotFound:       "record not found",
	FileNotFound:         "file not found",
	FileIsConverted:      "file has been converted already",
	FileConvertFailed:    "file convert failed",
}

// Error carries a Code through the model layer up to the controller, which
// renders it as the response envelope. The message never contains internal
// cause detail; that goes to the log at the failure site.
type Error struct {
	Code Code
}

func New(code Code) *Error {
	return &Error{Code: code}
}

func (e *Error) Error() string {
	if msg, ok := messages[e.Code]; ok {
		return msg
	}
	return fmt.Sprintf("error code: %d", e.Code)
}

// Is makes errors.Is(err, errcode.New(code)) compare by code.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// CodeOf extracts the Code from err, falling back to CurrentProcessFailed
// for anything that is not an *Error. nil input returns 0.
func CodeOf(err error) Code {
	if err == nil {
		return 0
	}
	if e, ok := err.(*Error); ok {
		return e.Code
	}
	return CurrentProcessFailed
}
