package evaluator

import (
	"errors"
	"fmt"
	"strconv"

	"svw.info/mathtiles/internal/domain"
)

// ErrMalformedSolution marks a corpus entry that does not tokenize into
// the expected alternation of literals and operators. This is a
// data-integrity fault, not a game condition.
var ErrMalformedSolution = errors.New("evaluator: malformed solution line")

// Literals extracts the maximal digit runs of a corpus line, in order.
// It fails with ErrMalformedSolution when the count differs from k.
func Literals(line string, k int) ([]int, error) {
	nums, _, err := Tokenize(line)
	if err != nil {
		return nil, err
	}
	if len(nums) != k {
		return nil, fmt.Errorf("%w: %q has %d literals, want %d", ErrMalformedSolution, line, len(nums), k)
	}
	return nums, nil
}

// Tokenize splits a flat expression string into its literals and
// operators, enforcing strict number/operator alternation: the line must
// start and end with a digit run and never carry two adjacent operators.
func Tokenize(line string) ([]int, []domain.Op, error) {
	var nums []int
	var ops []domain.Op
	i := 0
	for i < len(line) {
		start := i
		for i < len(line) && line[i] >= '0' && line[i] <= '9' {
			i++
		}
		if i == start {
			return nil, nil, fmt.Errorf("%w: %q: expected digit at offset %d", ErrMalformedSolution, line, i)
		}
		v, err := strconv.Atoi(line[start:i])
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %q: %v", ErrMalformedSolution, line, err)
		}
		nums = append(nums, v)
		if i == len(line) {
			break
		}
		if !domain.IsOpByte(line[i]) {
			return nil, nil, fmt.Errorf("%w: %q: bad operator %q at offset %d", ErrMalformedSolution, line, line[i], i)
		}
		ops = append(ops, domain.Op(line[i]))
		i++
		if i == len(line) {
			return nil, nil, fmt.Errorf("%w: %q: trailing operator", ErrMalformedSolution, line)
		}
	}
	return nums, ops, nil
}
