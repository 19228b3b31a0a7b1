package trader

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// ErrBasisMismatch is returned when two discrete amounts with different bases
// are combined. There is no silent coercion: cross-basis aggregation must go
// through Decimal() explicitly.
var ErrBasisMismatch = errors.New("basis mismatch")

// amountPrecision is the number of digits kept by every division in the
// package. All derived decimal values (average fill price, basis
// conversions) share this single policy.
const amountPrecision int32 = 16

// Amount is an exact quantity of price or volume. The two implementations
// are DiscreteAmount (an integer count of a basis unit) and DecimalAmount
// (arbitrary-precision decimal, used for cross-basis aggregation).
type Amount interface {
	// Decimal returns the exact decimal value of the amount.
	Decimal() decimal.Decimal
	// IsUndefined reports whether the amount is the result of an undefined
	// operation, such as a division by zero.
	IsUndefined() bool
	String() string
}

// newDecimal is a convenient factory for decimal.Decimal.
func newDecimal[T float32 | float64 | int | int32 | int64 | uint | uint32 | uint64 | decimal.Decimal](value T) decimal.Decimal {
	switch v := any(value).(type) {
	case decimal.Decimal:
		return v
	case float32:
		return decimal.NewFromFloat32(v)
	case float64:
		return decimal.NewFromFloat(v)
	case int:
		return decimal.NewFromInt(int64(v))
	case int32:
		return decimal.NewFromInt32(v)
	case int64:
		return decimal.NewFromInt(v)
	case uint:
		return decimal.NewFromUint64(uint64(v))
	case uint32:
		return decimal.NewFromUint64(uint64(v))
	case uint64:
		return decimal.NewFromUint64(v)
	default:
		panic("unsupported type")
	}
}

// DiscreteAmount is an integer count of a basis unit, the smallest tradeable
// increment of a market or asset (e.g. one satoshi). Representing prices and
// volumes as counts avoids binary floating-point drift entirely.
//
// Two discrete amounts can only be combined when their bases are equal.
type DiscreteAmount struct {
	count int64
	basis decimal.Decimal
}

// NewDiscreteAmount creates a discrete amount of count basis units.
func NewDiscreteAmount(count int64, basis decimal.Decimal) DiscreteAmount {
	return DiscreteAmount{count: count, basis: basis}
}

func (a DiscreteAmount) Count() int64           { return a.count }
func (a DiscreteAmount) Basis() decimal.Decimal { return a.basis }
func (a DiscreteAmount) IsUndefined() bool      { return false }
func (a DiscreteAmount) IsZero() bool           { return a.count == 0 }
func (a DiscreteAmount) IsNegative() bool       { return a.count < 0 }
func (a DiscreteAmount) Neg() DiscreteAmount    { return DiscreteAmount{count: -a.count, basis: a.basis} }

// Decimal returns the exact decimal value count×basis.
func (a DiscreteAmount) Decimal() decimal.Decimal { return a.basis.Mul(decimal.NewFromInt(a.count)) }

func (a DiscreteAmount) String() string { return a.Decimal().String() }

// AssertBasis returns ErrBasisMismatch unless the amount's basis equals basis.
func (a DiscreteAmount) AssertBasis(basis decimal.Decimal) error {
	if !a.basis.Equal(basis) {
		return fmt.Errorf("%w: got basis %s, want %s", ErrBasisMismatch, a.basis, basis)
	}
	return nil
}

// Add returns a+b. Both amounts must share the same basis.
func (a DiscreteAmount) Add(b DiscreteAmount) (DiscreteAmount, error) {
	if err := b.AssertBasis(a.basis); err != nil {
		return DiscreteAmount{}, err
	}
	return DiscreteAmount{count: a.count + b.count, basis: a.basis}, nil
}

// Sub returns a-b. Both amounts must share the same basis.
func (a DiscreteAmount) Sub(b DiscreteAmount) (DiscreteAmount, error) {
	if err := b.AssertBasis(a.basis); err != nil {
		return DiscreteAmount{}, err
	}
	return DiscreteAmount{count: a.count - b.count, basis: a.basis}, nil
}

// MarshalJSON implements the json.Marshaler interface for DiscreteAmount.
// The amount is serialized as its exact decimal value.
func (a DiscreteAmount) MarshalJSON() ([]byte, error) {
	return a.Decimal().MarshalJSON()
}

// DecimalAmount is an exact decimal quantity. It carries an explicit
// undefined state so that operations without a result (a volume-weighted
// average over zero volume, a division by zero) never degrade to zero.
type DecimalAmount struct {
	value     decimal.Decimal
	undefined bool
}

// Undefined is the result of an operation that has no defined value.
var Undefined = DecimalAmount{undefined: true}

// D creates a DecimalAmount from any numeric type.
func D[T float32 | float64 | int | int32 | int64 | uint | uint32 | uint64 | decimal.Decimal](value T) DecimalAmount {
	return DecimalAmount{value: newDecimal(value)}
}

// ParseDecimalAmount parses the decimal representation of an amount.
func ParseDecimalAmount(s string) (DecimalAmount, error) {
	v, err := decimal.NewFromString(s)
	if err != nil {
		return Undefined, fmt.Errorf("invalid amount %q: %w", s, err)
	}
	return DecimalAmount{value: v}, nil
}

func (a DecimalAmount) Decimal() decimal.Decimal { return a.value }
func (a DecimalAmount) IsUndefined() bool        { return a.undefined }
func (a DecimalAmount) IsZero() bool             { return !a.undefined && a.value.IsZero() }
func (a DecimalAmount) IsNegative() bool         { return !a.undefined && a.value.IsNegative() }
func (a DecimalAmount) IsPositive() bool         { return !a.undefined && a.value.IsPositive() }
func (a DecimalAmount) Neg() DecimalAmount       { return lift(a, a, a.value.Neg()) }

func (a DecimalAmount) Equal(b DecimalAmount) bool {
	if a.undefined || b.undefined {
		return a.undefined == b.undefined
	}
	return a.value.Equal(b.value)
}

func (a DecimalAmount) Add(b DecimalAmount) DecimalAmount { return lift(a, b, a.value.Add(b.value)) }
func (a DecimalAmount) Sub(b DecimalAmount) DecimalAmount { return lift(a, b, a.value.Sub(b.value)) }
func (a DecimalAmount) Mul(b DecimalAmount) DecimalAmount { return lift(a, b, a.value.Mul(b.value)) }

// Div returns a/b under the package rounding policy. Division by zero
// returns Undefined.
func (a DecimalAmount) Div(b DecimalAmount) DecimalAmount {
	if a.undefined || b.undefined || b.value.IsZero() {
		return Undefined
	}
	return DecimalAmount{value: a.value.DivRound(b.value, amountPrecision)}
}

func (a DecimalAmount) String() string {
	if a.undefined {
		return "undefined"
	}
	return a.value.String()
}

// lift propagates the undefined state of the operands of a binary operation.
func lift(a, b DecimalAmount, value decimal.Decimal) DecimalAmount {
	if a.undefined || b.undefined {
		return Undefined
	}
	return DecimalAmount{value: value}
}

// MarshalJSON implements the json.Marshaler interface for DecimalAmount.
func (a DecimalAmount) MarshalJSON() ([]byte, error) {
	if a.undefined {
		return []byte("null"), nil
	}
	return a.value.MarshalJSON()
}

// UnmarshalJSON implements the json.Unmarshaler interface for DecimalAmount.
func (a *DecimalAmount) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*a = Undefined
		return nil
	}
	a.undefined = false
	return a.value.UnmarshalJSON(data)
}
