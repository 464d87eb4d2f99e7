package http

import (
	"bytes"
	"errors"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"

	"github.com/couchcryptid/unit-converter/internal/converter"
	"github.com/couchcryptid/unit-converter/internal/domain"
	"github.com/couchcryptid/unit-converter/internal/domain/length"
	"github.com/couchcryptid/unit-converter/internal/domain/temperature"
	"github.com/couchcryptid/unit-converter/internal/render"
)

var (
	celsius    = temperature.Celsius.String()
	fahrenheit = temperature.Fahrenheit.String()
	kelvin     = temperature.Kelvin.String()
	meter      = length.Meter.String()
	foot       = length.Foot.String()
)

func (s *Server) routes(r chi.Router) {
	r.Get("/", s.handleIndex)

	r.Route("/temperature", func(r chi.Router) {
		r.Get("/", s.handleQuantity(temperature.Quantity, celsius, fahrenheit))
		r.Get("/convert", s.handleConvertQuery(temperature.Quantity, celsius, fahrenheit, true))
		r.Get("/celsius/{value}", s.handleFixed(temperature.Quantity, celsius, fahrenheit))
		r.Get("/celsius-kelvin/{value}", s.handleFixed(temperature.Quantity, celsius, kelvin))
		r.Get("/fahrenheit/{value}", s.handleFixed(temperature.Quantity, fahrenheit, celsius))
		r.Get("/{from}/{to}/{value}", s.handlePair(temperature.Quantity))
	})

	r.Route("/length", func(r chi.Router) {
		r.Get("/", s.handleQuantity(length.Quantity, meter, foot))
		r.Get("/convert", s.handleConvertQuery(length.Quantity, meter, foot, false))
		r.Get("/meter/{value}", s.handleFixed(length.Quantity, meter, foot))
		r.Get("/{from}/{to}/{value}", s.handlePair(length.Quantity))
	})

	r.Route("/api/v1/{quantity}", func(r chi.Router) {
		r.Get("/convert", s.handleAPIConvert)
		r.Get("/units", s.handleAPIUnits)
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		s.renderError(w, r, http.StatusNotFound, "no page lives at "+r.URL.Path)
	})
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	s.renderPage(w, r, http.StatusOK, render.PageIndex, render.Context{
		"quantities": converter.Quantities(),
	})
}

// handleQuantity renders the empty conversion form for a quantity.
func (s *Server) handleQuantity(quantity, from, to string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.renderPage(w, r, http.StatusOK, render.PageQuantity, render.Context{
			"quantity": quantity,
			"units":    s.units[quantity],
			"from":     from,
			"to":       to,
		})
	}
}

// handleFixed serves the short routes whose units are implied by the path,
// e.g. /temperature/celsius/{value}.
func (s *Server) handleFixed(quantity, from, to string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.convertPage(w, r, quantity, chi.URLParam(r, "value"), from, to, http.StatusNotFound)
	}
}

// handlePair serves /{quantity}/{from}/{to}/{value}.
func (s *Server) handlePair(quantity string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.convertPage(w, r, quantity,
			chi.URLParam(r, "value"), chi.URLParam(r, "from"), chi.URLParam(r, "to"),
			http.StatusNotFound)
	}
}

// handleConvertQuery serves the form target /{quantity}/convert?value=&from=&to=.
// With redirectBare set, a request carrying only a value is redirected to the
// default short route, as the first version of the site did.
func (s *Server) handleConvertQuery(quantity, defFrom, defTo string, redirectBare bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		raw, from, to := q.Get("value"), q.Get("from"), q.Get("to")

		if redirectBare && from == "" && to == "" {
			v, err := domain.ParseValue(raw)
			if err != nil {
				s.renderError(w, r, http.StatusBadRequest, err.Error())
				return
			}
			target := "/" + quantity + "/" + defFrom + "/" + url.PathEscape(domain.FormatValue(v))
			http.Redirect(w, r, target, http.StatusSeeOther)
			return
		}

		if from == "" {
			from = defFrom
		}
		if to == "" {
			to = defTo
		}
		s.convertPage(w, r, quantity, raw, from, to, http.StatusBadRequest)
	}
}

// convertPage parses raw, converts it, and renders the result page.
// unitStatus is the status for unknown unit labels: 404 when they came from
// the path, 400 when they came from the query string.
func (s *Server) convertPage(w http.ResponseWriter, r *http.Request, quantity, raw, from, to string, unitStatus int) {
	value, err := domain.ParseValue(raw)
	if err != nil {
		s.renderError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	res, err := s.converter.Convert(converter.Request{Quantity: quantity, Value: value, From: from, To: to})
	if err != nil {
		s.renderError(w, r, statusFor(err, unitStatus), err.Error())
		return
	}

	data := render.Context{
		"quantity":    res.Quantity,
		"from":        res.From,
		"to":          res.To,
		"from_symbol": res.FromSymbol,
		"to_symbol":   res.ToSymbol,
		"value":       domain.FormatValue(res.Value),
		"result":      domain.FormatValue(res.Result),
		"units":       s.units[res.Quantity],
	}
	if res.Factor != 0 {
		data["factor"] = domain.FormatValue(res.Factor)
	}
	s.renderPage(w, r, http.StatusOK, render.PageResult, data)
}

func (s *Server) handleAPIConvert(w http.ResponseWriter, r *http.Request) {
	quantity := chi.URLParam(r, "quantity")
	q := r.URL.Query()

	if _, err := converter.Units(quantity); err != nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": err.Error()})
		return
	}
	if q.Get("from") == "" || q.Get("to") == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "from and to are required"})
		return
	}
	value, err := domain.ParseValue(q.Get("value"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	res, err := s.converter.Convert(converter.Request{Quantity: quantity, Value: value, From: q.Get("from"), To: q.Get("to")})
	if err != nil {
		writeJSON(w, statusFor(err, http.StatusBadRequest), map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleAPIUnits(w http.ResponseWriter, r *http.Request) {
	quantity := chi.URLParam(r, "quantity")
	units, err := converter.Units(quantity)
	if err != nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"quantity": quantity, "units": units})
}

func statusFor(err error, unitStatus int) int {
	switch {
	case errors.Is(err, domain.ErrInvalidValue):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrUnknownUnit):
		return unitStatus
	case errors.Is(err, domain.ErrOutOfRange):
		return http.StatusUnprocessableEntity
	case errors.Is(err, converter.ErrUnknownQuantity):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) renderError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	s.renderPage(w, r, status, render.PageError, render.Context{
		"status":      status,
		"status_text": http.StatusText(status),
		"message":     msg,
	})
}

// renderPage renders into a buffer first so a template failure can still
// produce a clean 500.
func (s *Server) renderPage(w http.ResponseWriter, r *http.Request, status int, page string, data render.Context) {
	var buf bytes.Buffer
	if err := s.renderer.Render(&buf, page, data); err != nil {
		s.logger.Error("render page", "page", page, "error", err, "request_id", RequestIDFromContext(r.Context()))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	buf.WriteTo(w) //nolint:errcheck // client may have gone away
}
