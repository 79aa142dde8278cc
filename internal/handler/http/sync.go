package http

import (
	"net/http"
	"time"

	"github.com/MKhiriev/go-product-sync/internal/utils"
)

type heartbeatResponse struct {
	Status string    `json:"status"`
	Time   time.Time `json:"time"`
}

// heartbeat answers the client's periodic sync ping.
func (h *Handler) heartbeat(w http.ResponseWriter, r *http.Request) {
	utils.WriteJSON(w, heartbeatResponse{Status: "ok", Time: time.Now().UTC()}, http.StatusOK)
}
