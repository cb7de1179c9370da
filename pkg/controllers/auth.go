package controllers

import (
	"crypto/hmac"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"strings"

	"github.com/classpad/classpad-server/pkg/config"
	"github.com/classpad/classpad-server/pkg/errcode"
	authmodel "github.com/classpad/classpad-server/pkg/models/auth"
	"github.com/gofiber/fiber/v2"
)

// AuthController holds dependencies for auth-related handlers.
type AuthController struct {
	AppConfig *config.AppConfig
	AuthModel *authmodel.AuthModel
}

// NewAuthController creates a new AuthController.
func NewAuthController(appConfig *config.AppConfig, authModel *authmodel.AuthModel) *AuthController {
	return &AuthController{
		AppConfig: appConfig,
		AuthModel: authModel,
	}
}

// HandleAuthHeaderCheck is a middleware to check API-KEY & HASH-SIGNATURE.
// It guards the server-to-server endpoints.
func (ac *AuthController) HandleAuthHeaderCheck(c *fiber.Ctx) error {
	apiKey := c.Get("API-KEY", "")
	signature := c.Get("HASH-SIGNATURE", "")
	body := c.Body()

	if apiKey != ac.AppConfig.Client.ApiKey {
		c.Status(fiber.StatusUnauthorized)
		return sendError(c, errcode.New(errcode.NotPermission))
	}
	if signature == "" {
		c.Status(fiber.StatusUnauthorized)
		return sendError(c, errcode.New(errcode.NotPermission))
	}

	mac := hmac.New(sha256.New, []byte(ac.AppConfig.Client.Secret))
	mac.Write(body)
	expectedSignature := hex.EncodeToString(mac.Sum(nil))
	if subtle.ConstantTimeCompare([]byte(expectedSignature), []byte(signature)) != 1 {
		c.Status(fiber.StatusUnauthorized)
		return sendError(c, errcode.New(errcode.NotPermission))
	}

	return c.Next()
}

type generateTokenReq struct {
	UserUUID string `json:"userUUID"`
}

type generateTokenRes struct {
	Token string `json:"token"`
}

// HandleGenerateToken issues an access token for a user. Only reachable
// behind HandleAuthHeaderCheck.
func (ac *AuthController) HandleGenerateToken(c *fiber.Ctx) error {
	req := new(generateTokenReq)
	if err := c.BodyParser(req); err != nil || req.UserUUID == "" {
		return sendParamsError(c)
	}

	token, err := ac.AuthModel.GenerateToken(req.UserUUID)
	if err != nil {
		return sendError(c, err)
	}
	return sendData(c, &generateTokenRes{Token: token})
}

// HandleVerifyHeaderToken is a middleware to verify the Authorization
// header token. The authenticated user lands in locals for the handlers.
func (ac *AuthController) HandleVerifyHeaderToken(c *fiber.Ctx) error {
	authToken := strings.TrimPrefix(c.Get("Authorization"), "Bearer ")
	if authToken == "" {
		c.Status(fiber.StatusUnauthorized)
		return sendError(c, errcode.New(errcode.JWTVerifyFailed))
	}

	userUUID, err := ac.AuthModel.VerifyToken(authToken)
	if err != nil {
		c.Status(fiber.StatusUnauthorized)
		return sendError(c, errcode.New(errcode.JWTVerifyFailed))
	}

	c.Locals("userUUID", userUUID)
	return c.Next()
}
