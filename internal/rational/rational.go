// Package rational implements the exact fraction kernel for expression
// evaluation. Intermediate numerators and denominators grow with every
// multiplication, so everything runs on math/big integers; converting to
// float anywhere would reintroduce the drift this package exists to avoid.
package rational

import (
	"errors"
	"math/big"
)

// ErrDivisionByZero is returned when a divisor fraction's numerator (or a
// constructed denominator) is zero.
var ErrDivisionByZero = errors.New("rational: division by zero")

// Fraction is an immutable rational number in canonical form:
// denominator > 0, gcd(|num|, den) == 1, and zero is always 0/1.
// The zero Fraction value is not canonical; construct via FromInt or New.
type Fraction struct {
	num *big.Int
	den *big.Int
}

// FromInt builds the fraction v/1.
func FromInt(v int) Fraction {
	return Fraction{num: big.NewInt(int64(v)), den: big.NewInt(1)}
}

// New builds the canonical fraction n/d. It fails when d == 0.
func New(n, d int64) (Fraction, error) {
	return normalize(big.NewInt(n), big.NewInt(d))
}

// normalize moves the sign onto the numerator and divides out the gcd.
// Inputs are owned by the caller and never aliased into the result.
func normalize(n, d *big.Int) (Fraction, error) {
	if d.Sign() == 0 {
		return Fraction{}, ErrDivisionByZero
	}
	if n.Sign() == 0 {
		return Fraction{num: new(big.Int), den: big.NewInt(1)}, nil
	}
	n = new(big.Int).Set(n)
	d = new(big.Int).Set(d)
	if d.Sign() < 0 {
		n.Neg(n)
		d.Neg(d)
	}
	g := new(big.Int).GCD(nil, nil, new(big.Int).Abs(n), d)
	n.Quo(n, g)
	d.Quo(d, g)
	return Fraction{num: n, den: d}, nil
}

// Add returns a + b.
func (a Fraction) Add(b Fraction) Fraction {
	n := new(big.Int).Mul(a.num, b.den)
	n.Add(n, new(big.Int).Mul(b.num, a.den))
	f, _ := normalize(n, new(big.Int).Mul(a.den, b.den))
	return f
}

// Sub returns a - b.
func (a Fraction) Sub(b Fraction) Fraction {
	n := new(big.Int).Mul(a.num, b.den)
	n.Sub(n, new(big.Int).Mul(b.num, a.den))
	f, _ := normalize(n, new(big.Int).Mul(a.den, b.den))
	return f
}

// Mul returns a * b.
func (a Fraction) Mul(b Fraction) Fraction {
	f, _ := normalize(new(big.Int).Mul(a.num, b.num), new(big.Int).Mul(a.den, b.den))
	return f
}

// Div returns a / b, or ErrDivisionByZero when b is zero.
func (a Fraction) Div(b Fraction) (Fraction, error) {
	if b.num.Sign() == 0 {
		return Fraction{}, ErrDivisionByZero
	}
	return normalize(new(big.Int).Mul(a.num, b.den), new(big.Int).Mul(a.den, b.num))
}

// EqualsInt reports whether a == target exactly: num == target*den,
// with no float conversion anywhere.
func (a Fraction) EqualsInt(target int) bool {
	want := new(big.Int).Mul(big.NewInt(int64(target)), a.den)
	return a.num.Cmp(want) == 0
}

// IsZero reports whether a is 0/1.
func (a Fraction) IsZero() bool { return a.num.Sign() == 0 }

// Num returns a copy of the numerator.
func (a Fraction) Num() *big.Int { return new(big.Int).Set(a.num) }

// Den returns a copy of the denominator.
func (a Fraction) Den() *big.Int { return new(big.Int).Set(a.den) }

// String renders "n" for integers and "n/d" otherwise.
func (a Fraction) String() string {
	if a.den.Cmp(big.NewInt(1)) == 0 {
		return a.num.String()
	}
	return a.num.String() + "/" + a.den.String()
}
