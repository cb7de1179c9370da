package whiteboard

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/classpad/classpad-server/pkg/config"
	"github.com/goccy/go-json"
	"github.com/sirupsen/logrus"
)

// WhiteboardService talks to the remote whiteboard provider: room creation,
// document conversion tasks and signed access credentials. Every call takes
// a context; callers own the timeout.
type WhiteboardService struct {
	app    *config.AppConfig
	client *http.Client
	logger *logrus.Entry
}

type TaskKind string

const (
	// TaskKindDynamic produces paginated, previewable output.
	TaskKindDynamic TaskKind = "dynamic"
	// TaskKindStatic produces a packaged artifact.
	TaskKindStatic TaskKind = "static"
)

func New(app *config.AppConfig) *WhiteboardService {
	if app == nil {
		app = config.GetConfig()
	}
	timeout := config.DefaultWhiteboardTimeout
	if app.WhiteboardInfo.RequestTimeout != nil {
		timeout = *app.WhiteboardInfo.RequestTimeout
	}
	return &WhiteboardService{
		app:    app,
		client: &http.Client{Timeout: timeout},
		logger: app.Logger.WithField("service", "whiteboard"),
	}
}

type createRoomRes struct {
	UUID string `json:"uuid"`
}

// CreateRoom allocates a remote whiteboard room and returns its reference.
func (s *WhiteboardService) CreateRoom(ctx context.Context) (string, error) {
	body, err := s.post(ctx, "/v5/rooms", map[string]interface{}{
		"isRecord": true,
	})
	if err != nil {
		return "", err
	}

	res := new(createRoomRes)
	if err = json.Unmarshal(body, res); err != nil {
		return "", err
	}
	return res.UUID, nil
}

type conversionTaskReq struct {
	Resource string   `json:"resource"`
	Type     TaskKind `json:"type"`
	Preview  bool     `json:"preview,omitempty"`
	Pack     bool     `json:"pack,omitempty"`
}

type conversionTaskRes struct {
	UUID string `json:"uuid"`
}

// CreateConversionTask submits a document for remote conversion. Dynamic
// conversion requests page previews; static requests a packed artifact.
func (s *WhiteboardService) CreateConversionTask(ctx context.Context, resource string, kind TaskKind) (string, error) {
	req := &conversionTaskReq{
		Resource: resource,
		Type:     kind,
	}
	if kind == TaskKindDynamic {
		req.Preview = true
	} else {
		req.Pack = true
	}

	body, err := s.post(ctx, "/v5/services/conversion/tasks", req)
	if err != nil {
		return "", err
	}

	res := new(conversionTaskRes)
	if err = json.Unmarshal(body, res); err != nil {
		return "", err
	}
	return res.UUID, nil
}

type conversionTaskStatusRes struct {
	Status string `json:"status"`
}

// QueryConversionTask reports the remote task status: Waiting, Converting,
// Finished or Fail.
func (s *WhiteboardService) QueryConversionTask(ctx context.Context, taskUUID string, kind TaskKind) (string, error) {
	url := fmt.Sprintf("%s/v5/services/conversion/tasks/%s?type=%s", s.app.WhiteboardInfo.Host, taskUUID, kind)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", err
	}
	body, err := s.do(req)
	if err != nil {
		return "", err
	}

	res := new(conversionTaskStatusRes)
	if err = json.Unmarshal(body, res); err != nil {
		return "", err
	}
	return res.Status, nil
}

func (s *WhiteboardService) post(ctx context.Context, path string, payload interface{}) ([]byte, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.app.WhiteboardInfo.Host+path, bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	return s.do(req)
}

func (s *WhiteboardService) do(req *http.Request) ([]byte, error) {
	sdkToken, err := s.sdkToken()
	if err != nil {
		return nil, err
	}
	req.Header.Set("token", sdkToken)
	req.Header.Set("region", s.app.WhiteboardInfo.Region)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		s.logger.Errorln("whiteboard request failed:", req.URL.Path, resp.StatusCode, string(body))
		return nil, fmt.Errorf("whiteboard api returned status %d", resp.StatusCode)
	}
	return body, nil
}

func (s *WhiteboardService) tokenValidity() time.Duration {
	if s.app.WhiteboardInfo.TokenValidity != nil {
		return *s.app.WhiteboardInfo.TokenValidity
	}
	return config.DefaultTokenValidity
}
