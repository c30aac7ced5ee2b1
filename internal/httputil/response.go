package httputil

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"appforge/internal/domain"
	"appforge/internal/i18n"
)

// Envelope is the uniform response body. Code doubles as the business result
// code; Data is null on failure.
type Envelope struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data"`
}

// Responder renders envelopes with localized messages. One instance is shared
// by all handlers.
type Responder struct {
	translator *i18n.Translator
	logger     *slog.Logger
}

func NewResponder(translator *i18n.Translator, logger *slog.Logger) *Responder {
	return &Responder{translator: translator, logger: logger}
}

// OK writes a success envelope carrying data.
func (rp *Responder) OK(w http.ResponseWriter, r *http.Request, data interface{}) {
	rp.write(w, r, domain.CodeOK, rp.translator.Code(Lang(r), domain.CodeOK, nil), data)
}

// Void writes a success envelope with no data.
func (rp *Responder) Void(w http.ResponseWriter, r *http.Request) {
	rp.OK(w, r, nil)
}

// Err translates err into a non-success envelope. Business errors keep their
// code; validation failures map to the illegal-param code; anything else is
// reported as an internal error and logged here, at the boundary.
func (rp *Responder) Err(w http.ResponseWriter, r *http.Request, err error) {
	lang := Lang(r)

	var be *domain.Error
	if errors.As(err, &be) {
		rp.write(w, r, be.Code, rp.translator.Code(lang, be.Code, be.Args), nil)
		return
	}

	var ve validation.Errors
	if errors.As(err, &ve) {
		msg := rp.translator.Code(lang, domain.CodeIllegalParam, map[string]string{"field": ve.Error()})
		rp.write(w, r, domain.CodeIllegalParam, msg, nil)
		return
	}

	rp.logger.Error("request failed",
		"error", err,
		"path", r.URL.Path,
		"method", r.Method,
		"request_id", RequestID(r),
	)
	rp.write(w, r, domain.CodeInternalServerError,
		rp.translator.Code(lang, domain.CodeInternalServerError, nil), nil)
}

// Code writes an envelope for a bare business code without an error value.
func (rp *Responder) Code(w http.ResponseWriter, r *http.Request, code domain.Code) {
	rp.write(w, r, code, rp.translator.Code(Lang(r), code, nil), nil)
}

func (rp *Responder) write(w http.ResponseWriter, r *http.Request, code domain.Code, message string, data interface{}) {
	payload, err := json.Marshal(Envelope{Code: code.Int(), Message: message, Data: data})
	if err != nil {
		rp.logger.Error("encode response", "error", err, "path", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"code":500,"message":"internal server error","data":null}`))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code.HTTPStatus())
	w.Write(payload)
}
