package handlers

import (
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/tverano/solarscout/internal/contracts"
	"github.com/tverano/solarscout/internal/service"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  4096,
	WriteBufferSize: 4096,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// progressMessage is one websocket frame during a batch run.
type progressMessage struct {
	Type      string          `json:"type"` // progress, complete, error
	Done      int             `json:"done,omitempty"`
	Total     int             `json:"total,omitempty"`
	Report    *service.Report `json:"report,omitempty"`
	Batch     interface{}     `json:"batch,omitempty"`
	ErrorText string          `json:"error,omitempty"`
}

// BatchWS scores a batch of leads sent as the first websocket message
// and streams per-lead progress back, finishing with the full batch
// report.
// GET /ws/batch
func (h *LeadHandler) BatchWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.WithError(err).Error("Websocket upgrade failed")
		return
	}
	defer conn.Close()

	var leads []*contracts.LeadRecord
	if err := conn.ReadJSON(&leads); err != nil {
		conn.WriteJSON(progressMessage{Type: "error", ErrorText: "invalid batch payload"})
		return
	}
	if len(leads) == 0 {
		conn.WriteJSON(progressMessage{Type: "error", ErrorText: "at least one lead is required"})
		return
	}

	h.logger.WithField("count", len(leads)).Info("Websocket batch scoring started")

	report := h.scorer.BatchScoreWithProgress(leads, func(done, total int, r *service.Report) {
		msg := progressMessage{Type: "progress", Done: done, Total: total, Report: r}
		if err := conn.WriteJSON(msg); err != nil {
			h.logger.WithError(err).Warn("Websocket write failed")
		}
	})

	if err := conn.WriteJSON(progressMessage{Type: "complete", Batch: report}); err != nil {
		h.logger.WithError(err).Warn("Websocket final write failed")
	}
}
