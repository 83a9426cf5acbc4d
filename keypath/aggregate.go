package keypath

import (
	"fmt"
	"math"
	"math/big"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Aggregate is a path segment that reduces fanned-out values to one value.
type Aggregate string

const (
	AggSum   Aggregate = "sum"
	AggAvg   Aggregate = "avg"
	AggCount Aggregate = "count"
	AggMin   Aggregate = "min"
	AggMax   Aggregate = "max"
)

// operatorPrefix forces a segment to be read as an aggregate even on a
// single result.
const operatorPrefix = "@"

// ResolveAggregate maps a segment to its operator. The second return value
// reports whether the segment carried the explicit prefix. Without the prefix
// an operator name only applies to fanned-out values whose objects declare no
// field of the same name.
func ResolveAggregate(segment string) (Aggregate, bool) {
	explicit := strings.HasPrefix(segment, operatorPrefix)
	switch strings.TrimPrefix(segment, operatorPrefix) {
	case "sum":
		return AggSum, explicit
	case "avg":
		return AggAvg, explicit
	case "count":
		return AggCount, explicit
	case "min":
		return AggMin, explicit
	case "max":
		return AggMax, explicit
	default:
		return "", explicit
	}
}

// reduce applies op to values. nil values are skipped by every operator
// except count.
func reduce(op Aggregate, values []interface{}) (interface{}, error) {
	if op == AggCount {
		return len(values), nil
	}

	leaves := make([]interface{}, 0, len(values))
	for _, v := range values {
		if v != nil {
			leaves = append(leaves, v)
		}
	}

	switch op {
	case AggSum, AggAvg:
		total := decimal.Zero
		for _, v := range leaves {
			d, ok := toDecimal(v)
			if !ok {
				return nil, fmt.Errorf("%s needs numeric values, got %T", op, v)
			}
			total = total.Add(d)
		}
		if op == AggAvg && len(leaves) > 0 {
			return total.Div(decimal.NewFromInt(int64(len(leaves)))), nil
		}
		return total, nil
	case AggMin, AggMax:
		return extreme(op, leaves)
	}
	return nil, fmt.Errorf("unknown aggregate %q", op)
}

// extreme returns the smallest or largest leaf. Leaves must be all numeric
// or all timestamps; an empty input yields nil.
func extreme(op Aggregate, leaves []interface{}) (interface{}, error) {
	if len(leaves) == 0 {
		return nil, nil
	}

	if _, ok := leaves[0].(time.Time); ok {
		best := leaves[0].(time.Time)
		for _, v := range leaves[1:] {
			t, ok := v.(time.Time)
			if !ok {
				return nil, fmt.Errorf("%s cannot compare time.Time with %T", op, v)
			}
			if (op == AggMin && t.Before(best)) || (op == AggMax && t.After(best)) {
				best = t
			}
		}
		return best, nil
	}

	best, ok := toDecimal(leaves[0])
	if !ok {
		return nil, fmt.Errorf("%s needs numeric or time values, got %T", op, leaves[0])
	}
	for _, v := range leaves[1:] {
		d, ok := toDecimal(v)
		if !ok {
			return nil, fmt.Errorf("%s needs numeric or time values, got %T", op, v)
		}
		if (op == AggMin && d.LessThan(best)) || (op == AggMax && d.GreaterThan(best)) {
			best = d
		}
	}
	return best, nil
}

// toDecimal converts the numeric leaf kinds the accessor understands.
func toDecimal(v interface{}) (decimal.Decimal, bool) {
	switch n := v.(type) {
	case decimal.Decimal:
		return n, true
	case *decimal.Decimal:
		if n == nil {
			return decimal.Zero, false
		}
		return *n, true
	case int:
		return decimal.NewFromInt(int64(n)), true
	case int8:
		return decimal.NewFromInt(int64(n)), true
	case int16:
		return decimal.NewFromInt(int64(n)), true
	case int32:
		return decimal.NewFromInt32(n), true
	case int64:
		return decimal.NewFromInt(n), true
	case uint:
		return fromUint64(uint64(n)), true
	case uint8:
		return fromUint64(uint64(n)), true
	case uint16:
		return fromUint64(uint64(n)), true
	case uint32:
		return fromUint64(uint64(n)), true
	case uint64:
		return fromUint64(n), true
	case float32:
		if math.IsNaN(float64(n)) || math.IsInf(float64(n), 0) {
			return decimal.Zero, false
		}
		return decimal.NewFromFloat32(n), true
	case float64:
		if math.IsNaN(n) || math.IsInf(n, 0) {
			return decimal.Zero, false
		}
		return decimal.NewFromFloat(n), true
	default:
		return decimal.Zero, false
	}
}

func fromUint64(n uint64) decimal.Decimal {
	return decimal.NewFromBigInt(new(big.Int).SetUint64(n), 0)
}
