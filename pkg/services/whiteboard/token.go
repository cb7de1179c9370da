package whiteboard

import (
	"time"

	"github.com/go-jose/go-jose/v4"
	"github.com/go-jose/go-jose/v4/jwt"
)

// Credentials issued to clients. Scope flags travel as private claims; the
// provider and the clients both verify them against the shared secret.
type TokenClaims struct {
	Scope    string `json:"scope"`
	Readonly bool   `json:"readonly,omitempty"`
}

const (
	ScopeSdk  = "sdk"
	ScopeRoom = "room"
	ScopeTask = "task"
	ScopeRtm  = "rtm"
)

func (s *WhiteboardService) signToken(subject string, claims *TokenClaims) (string, error) {
	sig, err := jose.NewSigner(jose.SigningKey{Algorithm: jose.HS256, Key: []byte(s.app.WhiteboardInfo.SecretKey)},
		(&jose.SignerOptions{}).WithType("JWT"))
	if err != nil {
		return "", err
	}

	cl := &jwt.Claims{
		Issuer:    s.app.WhiteboardInfo.AccessKey,
		NotBefore: jwt.NewNumericDate(time.Now()),
		Expiry:    jwt.NewNumericDate(time.Now().Add(s.tokenValidity())),
		Subject:   subject,
	}
	return jwt.Signed(sig).Claims(cl).Claims(claims).Serialize()
}

// RoomToken signs an access credential for a whiteboard room. Readonly
// tokens are handed out for replay/record views.
func (s *WhiteboardService) RoomToken(whiteboardRoomUUID string, readonly bool) (string, error) {
	return s.signToken(whiteboardRoomUUID, &TokenClaims{
		Scope:    ScopeRoom,
		Readonly: readonly,
	})
}

// TaskToken signs the credential a client uses to poll a conversion task.
func (s *WhiteboardService) TaskToken(taskUUID string) (string, error) {
	return s.signToken(taskUUID, &TokenClaims{
		Scope: ScopeTask,
	})
}

// RtmToken signs the real-time-messaging credential for a user.
func (s *WhiteboardService) RtmToken(userUUID string) (string, error) {
	return s.signToken(userUUID, &TokenClaims{
		Scope: ScopeRtm,
	})
}

// sdkToken signs the server-to-server credential carried on every
// whiteboard api request.
func (s *WhiteboardService) sdkToken() (string, error) {
	return s.signToken(s.app.WhiteboardInfo.AccessKey, &TokenClaims{
		Scope: ScopeSdk,
	})
}
