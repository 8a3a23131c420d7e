package rational

import (
	"errors"
	"math/big"
	"testing"
)

func TestNewNormalizes(t *testing.T) {
	cases := []struct {
		name string
		n, d int64
		want string
	}{
		{"already canonical", 2, 3, "2/3"},
		{"reduces gcd", 6, 8, "3/4"},
		{"sign moves to numerator", 1, -2, "-1/2"},
		{"double negative", -3, -9, "1/3"},
		{"zero collapses to 0/1", 0, 7, "0"},
		{"zero with negative denominator", 0, -7, "0"},
		{"integer", 12, 4, "3"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f, err := New(tc.n, tc.d)
			if err != nil {
				t.Fatalf("New(%d,%d): %v", tc.n, tc.d, err)
			}
			if got := f.String(); got != tc.want {
				t.Fatalf("New(%d,%d) = %s, want %s", tc.n, tc.d, got, tc.want)
			}
			if f.Den().Sign() <= 0 {
				t.Fatalf("denominator not positive: %s", f.Den())
			}
			g := new(big.Int).GCD(nil, nil, new(big.Int).Abs(f.Num()), f.Den())
			if f.Num().Sign() != 0 && g.Cmp(big.NewInt(1)) != 0 {
				t.Fatalf("not reduced: gcd=%s", g)
			}
		})
	}
}

func TestNewZeroDenominator(t *testing.T) {
	if _, err := New(1, 0); !errors.Is(err, ErrDivisionByZero) {
		t.Fatalf("New(1,0) err = %v, want ErrDivisionByZero", err)
	}
}

func TestArithmetic(t *testing.T) {
	half, _ := New(1, 2)
	third, _ := New(1, 3)

	if got := half.Add(third).String(); got != "5/6" {
		t.Fatalf("1/2 + 1/3 = %s, want 5/6", got)
	}
	if got := half.Sub(third).String(); got != "1/6" {
		t.Fatalf("1/2 - 1/3 = %s, want 1/6", got)
	}
	if got := half.Mul(third).String(); got != "1/6" {
		t.Fatalf("1/2 * 1/3 = %s, want 1/6", got)
	}
	q, err := half.Div(third)
	if err != nil {
		t.Fatalf("Div: %v", err)
	}
	if got := q.String(); got != "3/2" {
		t.Fatalf("1/2 / 1/3 = %s, want 3/2", got)
	}
}

func TestDivByZeroFraction(t *testing.T) {
	if _, err := FromInt(1).Div(FromInt(0)); !errors.Is(err, ErrDivisionByZero) {
		t.Fatalf("1/0 err = %v, want ErrDivisionByZero", err)
	}
}

func TestSubToZeroIsCanonical(t *testing.T) {
	half, _ := New(1, 2)
	z := half.Sub(half)
	if !z.IsZero() {
		t.Fatal("1/2 - 1/2 is not zero")
	}
	if z.String() != "0" || z.Den().Cmp(big.NewInt(1)) != 0 {
		t.Fatalf("zero not canonical: %s/%s", z.Num(), z.Den())
	}
}

func TestEqualsInt(t *testing.T) {
	if !FromInt(14).EqualsInt(14) {
		t.Fatal("14 != 14")
	}
	f, _ := New(28, 2)
	if !f.EqualsInt(14) {
		t.Fatal("28/2 != 14")
	}
	g, _ := New(29, 2)
	if g.EqualsInt(14) {
		t.Fatal("29/2 == 14")
	}
	n, _ := New(-6, 3)
	if !n.EqualsInt(-2) {
		t.Fatal("-6/3 != -2")
	}
}

func TestImmutability(t *testing.T) {
	a, _ := New(1, 2)
	b, _ := New(1, 3)
	_ = a.Add(b)
	_ = a.Mul(b)
	if a.String() != "1/2" || b.String() != "1/3" {
		t.Fatalf("operands mutated: a=%s b=%s", a, b)
	}
}
