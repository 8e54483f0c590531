package scoring

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
)

// Signal is a scalar detector output that remembers whether it was measured.
// A failed signal scores as 0, so a broken sensor and a quiet one look the
// same to the decision formula; Failed() tells them apart.
type Signal struct {
	Value float64
	Err   error
}

func Ok(v float64) Signal { return Signal{Value: v} }

func Failed(err error) Signal {
	if err == nil {
		err = ErrInvalidScalarInput
	}
	return Signal{Err: err}
}

func (s Signal) Failed() bool { return s.Err != nil }

// Score is the value fed to the decision formula.
func (s Signal) Score() float64 {
	if s.Err != nil || math.IsNaN(s.Value) || math.IsInf(s.Value, 0) {
		return 0
	}
	return s.Value
}

// CoerceSignal converts an untyped input into a Signal. Anything that is not
// a finite number becomes Failed(ErrInvalidScalarInput).
func CoerceSignal(v any) Signal {
	var f float64
	switch n := v.(type) {
	case Signal:
		return n
	case float64:
		f = n
	case float32:
		f = float64(n)
	case int:
		f = float64(n)
	case int8:
		f = float64(n)
	case int16:
		f = float64(n)
	case int32:
		f = float64(n)
	case int64:
		f = float64(n)
	case uint:
		f = float64(n)
	case uint8:
		f = float64(n)
	case uint16:
		f = float64(n)
	case uint32:
		f = float64(n)
	case uint64:
		f = float64(n)
	case json.Number:
		x, err := n.Float64()
		if err != nil {
			return Failed(fmt.Errorf("%w: %q", ErrInvalidScalarInput, n.String()))
		}
		f = x
	default:
		return Failed(fmt.Errorf("%w: %T", ErrInvalidScalarInput, v))
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return Failed(fmt.Errorf("%w: %v", ErrInvalidScalarInput, f))
	}
	return Ok(f)
}

// ParseSignal parses a command-line value. Unparseable text is a failed signal,
// not an error.
func ParseSignal(s string) Signal {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return Failed(fmt.Errorf("%w: %q", ErrInvalidScalarInput, s))
	}
	return CoerceSignal(f)
}
