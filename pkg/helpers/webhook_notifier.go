package helpers

import (
	"bytes"
	"net/http"
	"time"

	"github.com/classpad/classpad-server/pkg/config"
	"github.com/gammazero/workerpool"
	"github.com/goccy/go-json"
	"github.com/sirupsen/logrus"
)

// WebhookNotifier delivers lifecycle events (room started/ended, series
// cancelled) to the configured endpoint. Delivery is best effort and never
// blocks the request path; events are pushed onto a bounded worker pool.
type WebhookNotifier struct {
	isEnabled  bool
	defaultUrl string
	wp         *workerpool.WorkerPool
	client     *http.Client
	logger     *logrus.Entry
}

type WebhookEvent struct {
	Event        string `json:"event"`
	RoomUUID     string `json:"roomUUID,omitempty"`
	PeriodicUUID string `json:"periodicUUID,omitempty"`
	OwnerUUID    string `json:"ownerUUID,omitempty"`
	Time         int64  `json:"time"`
}

func NewWebhookNotifier(app *config.AppConfig) *WebhookNotifier {
	return &WebhookNotifier{
		isEnabled:  app.Client.WebhookConf.Enable,
		defaultUrl: app.Client.WebhookConf.Url,
		wp:         workerpool.New(config.DefaultWebhookWorkers),
		client:     &http.Client{Timeout: 10 * time.Second},
		logger:     app.Logger.WithField("helper", "webhookNotifier"),
	}
}

func (w *WebhookNotifier) Notify(event WebhookEvent) {
	if !w.isEnabled || w.defaultUrl == "" {
		return
	}
	if w.wp.WaitingQueueSize() > config.DefaultWebhookQueueSize {
		w.logger.Warnln("webhook queue full, dropping event:", event.Event)
		return
	}
	event.Time = time.Now().UnixMilli()
	w.wp.Submit(func() {
		w.send(event)
	})
}

func (w *WebhookNotifier) send(event WebhookEvent) {
	body, err := json.Marshal(event)
	if err != nil {
		w.logger.Errorln(err)
		return
	}
	resp, err := w.client.Post(w.defaultUrl, "application/json", bytes.NewReader(body))
	if err != nil {
		w.logger.Errorln("webhook delivery failed:", err)
		return
	}
	_ = resp.Body.Close()
	if resp.StatusCode >= 400 {
		w.logger.Errorln("webhook endpoint returned:", resp.StatusCode)
	}
}

// StopWait drains the queue, used during shutdown.
func (w *WebhookNotifier) StopWait() {
	w.wp.StopWait()
}
