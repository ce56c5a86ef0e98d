package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"clubadmin/internal/config/connections/mongo"
	"clubadmin/internal/config/connections/postgres"
	"clubadmin/internal/config/connections/s3"
	"clubadmin/internal/payments"
	"clubadmin/internal/repository/audit"
	"clubadmin/internal/repository/database"
	"clubadmin/internal/services/lifecycle"
	"clubadmin/internal/services/receipts"
)

type Handlers struct {
	Postgres *postgres.Postgres
	Mongo    *mongo.Mongo
	S3       *s3.S3

	Svc   *lifecycle.Service
	Trail *audit.Trail

	Logger *log.Logger
}

func New(pg *postgres.Postgres, mg *mongo.Mongo, s3c *s3.S3) *Handlers {
	trail := audit.NewTrail(mg)
	svc := lifecycle.NewService(
		database.NewPaymentRepo(pg),
		database.NewMemberRepo(pg),
		receipts.NewStore(s3c),
		trail,
	)

	return &Handlers{
		Postgres: pg,
		Mongo:    mg,
		S3:       s3c,
		Svc:      svc,
		Trail:    trail,
		Logger:   log.Default(),
	}
}

func (h *Handlers) JSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

// Error maps the engine's error kinds onto status codes. Validation and
// upload messages go to the client verbatim; the console displays them
// as-is.
func (h *Handlers) Error(w http.ResponseWriter, err error) {
	var verr *payments.ValidationError
	if errors.As(err, &verr) {
		h.JSON(w, http.StatusBadRequest, map[string]any{"error": verr.Msg})
		return
	}

	var nf *payments.NotFoundError
	if errors.As(err, &nf) {
		h.JSON(w, http.StatusNotFound, map[string]any{"error": nf.Error()})
		return
	}

	var uerr *payments.UploadError
	if errors.As(err, &uerr) {
		h.Logger.Printf("[HTTP][ERR] upload: %v", err)
		h.JSON(w, http.StatusBadGateway, map[string]any{"error": uerr.Error()})
		return
	}

	h.Logger.Printf("[HTTP][ERR] %v", err)
	h.JSON(w, http.StatusInternalServerError, map[string]any{"error": "internal error"})
}
