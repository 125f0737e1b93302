package money

import (
	"encoding/json"
	"fmt"
	"math/big"
)

// BigInt is a wrapper around big.Int that supports JSON unmarshaling from string.
// Upstream amounts arrive either as JSON strings or as bare numbers.
type BigInt struct {
	*big.Int
}

// NewBigIntFromString creates a new BigInt from a string
func NewBigIntFromString(s string) (*BigInt, bool) {
	i := new(big.Int)
	if _, ok := i.SetString(s, 10); !ok {
		return nil, false
	}
	return &BigInt{Int: i}, true
}

// UnmarshalJSON implements json.Unmarshaler
// Supports: "123", 123, null
func (b *BigInt) UnmarshalJSON(data []byte) error {
	// Handle null
	if string(data) == "null" {
		b.Int = nil
		return nil
	}

	// Try to unmarshal as string first (most common case from our API)
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		i := new(big.Int)
		if _, ok := i.SetString(s, 10); !ok {
			return fmt.Errorf("invalid BigInt string: %s", s)
		}
		b.Int = i
		return nil
	}

	// Try to unmarshal as number
	var n json.Number
	if err := json.Unmarshal(data, &n); err == nil {
		i := new(big.Int)
		if _, ok := i.SetString(n.String(), 10); !ok {
			return fmt.Errorf("invalid BigInt number: %s", n.String())
		}
		b.Int = i
		return nil
	}

	return fmt.Errorf("cannot unmarshal %s into BigInt", string(data))
}

// MarshalJSON implements json.Marshaler
func (b *BigInt) MarshalJSON() ([]byte, error) {
	if b == nil || b.Int == nil {
		return []byte("null"), nil
	}
	return json.Marshal(b.Int.String())
}

// ToBigInt returns the underlying *big.Int
func (b *BigInt) ToBigInt() *big.Int {
	if b == nil {
		return nil
	}
	return b.Int
}

// IsNil returns true if the BigInt is nil
func (b *BigInt) IsNil() bool {
	return b == nil || b.Int == nil
}
