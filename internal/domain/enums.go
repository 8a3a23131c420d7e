package domain

import (
	"encoding/json"
	"fmt"
)

// Op is one of the four binary operators a tile can carry.
type Op byte

const (
	OpAdd Op = '+'
	OpSub Op = '-'
	OpMul Op = '*'
	OpDiv Op = '/'
)

// Ops lists the working set in display order.
var Ops = [4]Op{OpAdd, OpSub, OpMul, OpDiv}

// IsOpByte reports whether b is one of the four operator symbols.
func IsOpByte(b byte) bool {
	switch Op(b) {
	case OpAdd, OpSub, OpMul, OpDiv:
		return true
	}
	return false
}

func (o Op) String() string { return string(rune(o)) }

// Additive reports whether o is + or − (binds looser than × and ÷).
func (o Op) Additive() bool { return o == OpAdd || o == OpSub }

// ParseOp converts a single-character operator string.
func ParseOp(s string) (Op, error) {
	if len(s) == 1 && IsOpByte(s[0]) {
		return Op(s[0]), nil
	}
	return 0, fmt.Errorf("unknown operator %q", s)
}

// MarshalJSON encodes an operator as its symbol string.
func (o Op) MarshalJSON() ([]byte, error) { return json.Marshal(o.String()) }

// UnmarshalJSON accepts a single-character operator string.
func (o *Op) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	op, err := ParseOp(s)
	if err != nil {
		return err
	}
	*o = op
	return nil
}

// RoundState tracks the lifecycle of one puzzle round.
type RoundState int

const (
	Generating RoundState = iota
	Ready
	Solved
)

func (s RoundState) String() string {
	switch s {
	case Generating:
		return "generating"
	case Ready:
		return "ready"
	case Solved:
		return "solved"
	}
	return "unknown"
}
