// Package evaluator reduces flat left-to-right expressions under standard
// operator precedence. No parse tree: one pass collapses every
// multiplicative run as it appears, then a left fold applies the surviving
// additive operators.
package evaluator

import (
	"fmt"

	"svw.info/mathtiles/internal/domain"
	"svw.info/mathtiles/internal/rational"
)

// Evaluate computes a1 op1 a2 ... op(k-1) ak with × and ÷ binding tighter
// than + and −, equal precedence associating left-to-right, and no
// parenthesization ever considered. len(ops) must be len(nums)-1.
// A zero divisor anywhere aborts with rational.ErrDivisionByZero.
func Evaluate(nums []int, ops []domain.Op) (rational.Fraction, error) {
	if len(nums) == 0 {
		return rational.Fraction{}, fmt.Errorf("evaluate: no operands")
	}
	if len(ops) != len(nums)-1 {
		return rational.Fraction{}, fmt.Errorf("evaluate: %d operands need %d operators, got %d",
			len(nums), len(nums)-1, len(ops))
	}

	// terms only ever holds values already fully reduced within their
	// multiplicative run; additive holds the operators between them.
	terms := []rational.Fraction{rational.FromInt(nums[0])}
	additive := make([]domain.Op, 0, len(ops))

	for i, op := range ops {
		next := rational.FromInt(nums[i+1])
		switch op {
		case domain.OpMul:
			terms[len(terms)-1] = terms[len(terms)-1].Mul(next)
		case domain.OpDiv:
			q, err := terms[len(terms)-1].Div(next)
			if err != nil {
				return rational.Fraction{}, err
			}
			terms[len(terms)-1] = q
		case domain.OpAdd, domain.OpSub:
			additive = append(additive, op)
			terms = append(terms, next)
		default:
			return rational.Fraction{}, fmt.Errorf("evaluate: unknown operator %q", op)
		}
	}

	result := terms[0]
	for i, op := range additive {
		if op == domain.OpAdd {
			result = result.Add(terms[i+1])
		} else {
			result = result.Sub(terms[i+1])
		}
	}
	return result, nil
}

// Hits reports whether the expression evaluates exactly to target.
// Division by zero counts as a miss, never an error: a zero divisor
// simply cannot reach an integer target.
func Hits(nums []int, ops []domain.Op, target int) bool {
	v, err := Evaluate(nums, ops)
	if err != nil {
		return false
	}
	return v.EqualsInt(target)
}
