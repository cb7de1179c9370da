package authmodel

import (
	"errors"
	"time"

	"github.com/classpad/classpad-server/pkg/config"
	"github.com/go-jose/go-jose/v4"
	"github.com/go-jose/go-jose/v4/jwt"
	"github.com/sirupsen/logrus"
)

type AuthModel struct {
	app    *config.AppConfig
	logger *logrus.Entry
}

func New(app *config.AppConfig) *AuthModel {
	if app == nil {
		app = config.GetConfig()
	}

	return &AuthModel{
		app:    app,
		logger: app.Logger.WithField("model", "auth"),
	}
}

// GenerateToken signs an access token for a user. The token carries the
// user reference as subject and is verified on every API request.
func (a *AuthModel) GenerateToken(userUUID string) (string, error) {
	sig, err := jose.NewSigner(jose.SigningKey{Algorithm: jose.HS256, Key: []byte(a.app.Client.Secret)},
		(&jose.SignerOptions{}).WithType("JWT"))
	if err != nil {
		return "", err
	}

	validity := config.DefaultTokenValidity
	if a.app.Client.TokenValidity != nil {
		validity = *a.app.Client.TokenValidity
	}

	cl := &jwt.Claims{
		Issuer:    a.app.Client.ApiKey,
		NotBefore: jwt.NewNumericDate(time.Now()),
		Expiry:    jwt.NewNumericDate(time.Now().Add(validity)),
		Subject:   userUUID,
	}
	return jwt.Signed(sig).Claims(cl).Serialize()
}

// VerifyToken checks the signature, issuer and expiry of an access token
// and returns the user it was issued to.
func (a *AuthModel) VerifyToken(token string) (string, error) {
	tok, err := jwt.ParseSigned(token, []jose.SignatureAlgorithm{jose.HS256})
	if err != nil {
		return "", err
	}

	cl := new(jwt.Claims)
	if err = tok.Claims([]byte(a.app.Client.Secret), cl); err != nil {
		return "", err
	}
	if err = cl.Validate(jwt.Expected{
		Issuer: a.app.Client.ApiKey,
		Time:   time.Now(),
	}); err != nil {
		return "", err
	}
	if cl.Subject == "" {
		return "", errors.New("token missing subject")
	}

	return cl.Subject, nil
}
