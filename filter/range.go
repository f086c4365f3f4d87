package filter

import (
	"fmt"
	"math"

	"github.com/rushteam/filmrec/core"
)

// Range 是闭区间 [Min, Max]。
type Range struct {
	Min int `json:"min" yaml:"min"`
	Max int `json:"max" yaml:"max"`
}

// Between 返回 [min, max]
func Between(min, max int) *Range { return &Range{Min: min, Max: max} }

// AtLeast 返回 [min, +inf)
func AtLeast(min int) *Range { return &Range{Min: min, Max: math.MaxInt} }

// AtMost 返回 (-inf, max]
func AtMost(max int) *Range { return &Range{Min: math.MinInt, Max: max} }

// Contains 判断 v 是否在区间内（含端点）
func (r Range) Contains(v float64) bool {
	return v >= float64(r.Min) && v <= float64(r.Max)
}

// Validate Min > Max 时返回 INVALID_FILTER_RANGE，不做交换。
func (r Range) Validate(field string) error {
	if r.Min > r.Max {
		return core.WrapDomainError(core.ModuleFilter, core.ErrorCodeInvalidFilterRange,
			fmt.Sprintf("%s: min %d greater than max %d", field, r.Min, r.Max), core.ErrInvalidFilterRange)
	}
	return nil
}

func (r Range) String() string {
	switch {
	case r.Min == math.MinInt && r.Max == math.MaxInt:
		return "[*, *]"
	case r.Min == math.MinInt:
		return fmt.Sprintf("[*, %d]", r.Max)
	case r.Max == math.MaxInt:
		return fmt.Sprintf("[%d, *]", r.Min)
	}
	return fmt.Sprintf("[%d, %d]", r.Min, r.Max)
}
