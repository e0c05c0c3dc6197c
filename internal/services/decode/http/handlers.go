// Package http provides http transport for VIN decoding
package http

import (
	stdhttp "net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"vindex/internal/modkit/httpkit"
	perr "vindex/internal/platform/errors"
	auditdom "vindex/internal/services/audit/domain"
	"vindex/internal/services/decode/domain"
)

// Register mounts decode endpoints on the given router
// audit may be nil when event storage is disabled; the endpoint then 404s
func Register(r httpkit.Router, svc domain.ServicePort, audit auditdom.QueryPort) {
	h := &handlers{svc: svc, audit: audit}
	httpkit.PostJSON[domain.DecodeInput](r, "/decode", h.decode)
	httpkit.Get(r, "/decode/{vin}", h.decodePath)
	if audit != nil {
		httpkit.Get(r, "/audit/recent", h.auditRecent)
	}
}

type handlers struct {
	svc   domain.ServicePort
	audit auditdom.QueryPort
}

// swagger:route POST /vin/decode Decode vinDecode
// @Summary Decode a VIN
// @Tags Decode
// @Accept json
// @Produce json
// @Param payload body domain.DecodeInput true "VIN to decode"
// @Success 200 {object} domain.Result "ok"
// @Router /vin/decode [post]
func (h *handlers) decode(r *stdhttp.Request, in domain.DecodeInput) (any, error) {
	return h.svc.Decode(r.Context(), in.VIN)
}

// swagger:route GET /vin/decode/{vin} Decode vinDecodeByPath
// @Summary Decode a VIN given in the path
// @Tags Decode
// @Produce json
// @Param vin path string true "VIN"
// @Success 200 {object} domain.Result "ok"
// @Router /vin/decode/{vin} [get]
func (h *handlers) decodePath(r *stdhttp.Request) (any, error) {
	return h.svc.Decode(r.Context(), chi.URLParam(r, "vin"))
}

// swagger:route GET /vin/audit/recent Decode vinAuditRecent
// @Summary Recent decode events
// @Tags Decode
// @Produce json
// @Param limit query int false "max rows, default 100"
// @Success 200 {array} auditdom.Event "ok"
// @Router /vin/audit/recent [get]
func (h *handlers) auditRecent(r *stdhttp.Request) (any, error) {
	limit := 100
	if s := r.URL.Query().Get("limit"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n <= 0 {
			return nil, perr.WithField(perr.InvalidArgf("limit must be a positive integer"), "limit")
		}
		limit = n
	}
	return h.audit.Recent(r.Context(), limit)
}
