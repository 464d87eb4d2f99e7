// Package converter maps user supplied labels onto the typed conversion
// libraries. It is the seam between the input boundaries (HTTP, CLI) and the
// pure domain packages.
package converter

import (
	"errors"
	"fmt"
	"log/slog"
	"math"

	"github.com/couchcryptid/unit-converter/internal/domain"
	"github.com/couchcryptid/unit-converter/internal/domain/length"
	"github.com/couchcryptid/unit-converter/internal/domain/temperature"
	"github.com/couchcryptid/unit-converter/internal/observability"
)

// ErrUnknownQuantity is returned for quantities other than temperature and length.
var ErrUnknownQuantity = errors.New("unknown quantity")

// Request is a conversion as it arrives from a user: a value and two labels.
type Request struct {
	Quantity string
	Value    float64
	From     string
	To       string
}

// Result is a completed conversion ready for presentation. Labels are the
// canonical unit names, not what the user typed.
type Result struct {
	Quantity   string  `json:"quantity"`
	From       string  `json:"from"`
	To         string  `json:"to"`
	FromSymbol string  `json:"from_symbol"`
	ToSymbol   string  `json:"to_symbol"`
	Value      float64 `json:"value"`
	Result     float64 `json:"result"`
	// Factor is the multiplier for one From in To; zero for affine quantities.
	Factor float64 `json:"factor,omitempty"`
}

// Unit describes one selectable unit for forms and listings.
type Unit struct {
	Label  string `json:"label"`
	Symbol string `json:"symbol"`
}

// Service performs label-based conversions and records metrics.
type Service struct {
	formula temperature.Formula
	metrics *observability.Metrics
	logger  *slog.Logger
}

// NewService creates a Service using the given Fahrenheit-to-Celsius formula.
func NewService(formula temperature.Formula, metrics *observability.Metrics, logger *slog.Logger) *Service {
	return &Service{formula: formula, metrics: metrics, logger: logger}
}

// Formula returns the temperature formula in use.
func (s *Service) Formula() temperature.Formula { return s.formula }

// Quantities lists the supported quantity names.
func Quantities() []string {
	return []string{temperature.Quantity, length.Quantity}
}

// Catalog returns the units of every quantity, keyed by quantity name.
func Catalog() map[string][]Unit {
	return map[string][]Unit{
		temperature.Quantity: describe(temperature.Units()),
		length.Quantity:      describe(length.Units()),
	}
}

// Units lists the units of a quantity in declaration order.
func Units(quantity string) ([]Unit, error) {
	if units, ok := Catalog()[quantity]; ok {
		return units, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownQuantity, quantity)
}

type labeled interface {
	String() string
	Symbol() string
}

func describe[U labeled](units []U) []Unit {
	out := make([]Unit, len(units))
	for i, u := range units {
		out[i] = Unit{Label: u.String(), Symbol: u.Symbol()}
	}
	return out
}

// Convert resolves the request's labels and converts its value.
func (s *Service) Convert(req Request) (Result, error) {
	res, err := s.convert(req)
	if err != nil {
		s.metrics.ConversionErrors.WithLabelValues(quantityLabel(req.Quantity), reason(err)).Inc()
		s.logger.Debug("conversion rejected", "quantity", req.Quantity, "from", req.From, "to", req.To, "error", err)
		return Result{}, err
	}
	s.metrics.Conversions.WithLabelValues(res.Quantity, res.From, res.To).Inc()
	return res, nil
}

func (s *Service) convert(req Request) (Result, error) {
	res, err := s.lookup(req)
	if err != nil {
		return Result{}, err
	}
	if math.IsInf(res.Result, 0) || math.IsNaN(res.Result) {
		return Result{}, fmt.Errorf("%w: %s %s in %s", domain.ErrOutOfRange,
			domain.FormatValue(res.Value), res.From, res.To)
	}
	return res, nil
}

func (s *Service) lookup(req Request) (Result, error) {
	switch req.Quantity {
	case temperature.Quantity:
		from, to, err := parsePair(req, temperature.ParseUnit)
		if err != nil {
			return Result{}, err
		}
		return Result{
			Quantity:   temperature.Quantity,
			From:       from.String(),
			To:         to.String(),
			FromSymbol: from.Symbol(),
			ToSymbol:   to.Symbol(),
			Value:      req.Value,
			Result:     temperature.ConvertWith(req.Value, from, to, s.formula),
		}, nil

	case length.Quantity:
		from, to, err := parsePair(req, length.ParseUnit)
		if err != nil {
			return Result{}, err
		}
		return Result{
			Quantity:   length.Quantity,
			From:       from.String(),
			To:         to.String(),
			FromSymbol: from.Symbol(),
			ToSymbol:   to.Symbol(),
			Value:      req.Value,
			Result:     length.Convert(req.Value, from, to),
			Factor:     length.Factor(from, to),
		}, nil
	}
	return Result{}, fmt.Errorf("%w: %q", ErrUnknownQuantity, req.Quantity)
}

func parsePair[U any](req Request, parse func(string) (U, error)) (from, to U, err error) {
	if from, err = parse(req.From); err != nil {
		return from, to, err
	}
	to, err = parse(req.To)
	return from, to, err
}

// quantityLabel keeps user input out of metric labels.
func quantityLabel(q string) string {
	if q == temperature.Quantity || q == length.Quantity {
		return q
	}
	return "unknown"
}

func reason(err error) string {
	switch {
	case errors.Is(err, ErrUnknownQuantity):
		return "unknown_quantity"
	case errors.Is(err, domain.ErrUnknownUnit):
		return "unknown_unit"
	case errors.Is(err, domain.ErrOutOfRange):
		return "out_of_range"
	default:
		return "invalid_value"
	}
}
