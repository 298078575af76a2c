package scale

import (
	"sort"

	"github.com/npillmayer/vstyle/color"
)

// LinearScale maps a continuous numeric domain [d0…d1] to a continuous range
// [r0…r1]. The range may either be numeric or consist of colors, which are
// interpolated in RGB space.
type LinearScale struct {
	domain []any
	rng    []any
	clamp  bool
}

// NewLinear creates a linear scale. Only the first and last entries of
// domain and range are used.
func NewLinear(domain, rng []any) *LinearScale {
	return &LinearScale{domain: domain, rng: rng}
}

// Clamp sets clamping of output values to the range.
func (s *LinearScale) Clamp(clamp bool) *LinearScale {
	s.clamp = clamp
	return s
}

func (s *LinearScale) Type() Type { return Linear }

func (s *LinearScale) Scale(v any) any {
	x, ok := ToFloat(v)
	if !ok || len(s.domain) < 2 || len(s.rng) < 2 {
		return nil
	}
	d0, ok0 := ToFloat(s.domain[0])
	d1, ok1 := ToFloat(s.domain[len(s.domain)-1])
	if !ok0 || !ok1 {
		return nil
	}
	t := 0.5
	if d1 != d0 {
		t = (x - d0) / (d1 - d0)
	}
	if s.clamp {
		t = clamp01(t)
	}
	first, last := s.rng[0], s.rng[len(s.rng)-1]
	if r0, ok := ToFloat(first); ok {
		if r1, ok := ToFloat(last); ok {
			return r0 + t*(r1-r0)
		}
		return nil
	}
	c0, ok0 := first.(string)
	c1, ok1 := last.(string)
	if ok0 && ok1 {
		if c, ok := color.Lerp(c0, c1, t); ok {
			return c
		}
	}
	tracer().Debugf("linear scale cannot interpolate range %v", s.rng)
	return nil
}

func (s *LinearScale) Domain() []any { return s.domain }

func (s *LinearScale) Range() []any { return s.rng }

func (s *LinearScale) SetRange(r []any) { s.rng = r }

// --- Threshold -------------------------------------------------------------

// ThresholdScale maps a numeric domain to discrete range values, split by
// ascending thresholds. For n thresholds, the range should hold n+1 values.
type ThresholdScale struct {
	thresholds []float64
	domain     []any
	rng        []any
}

// NewThreshold creates a threshold scale. Non-numeric thresholds are dropped.
func NewThreshold(thresholds, rng []any) *ThresholdScale {
	s := &ThresholdScale{domain: thresholds, rng: rng}
	for _, th := range thresholds {
		if f, ok := ToFloat(th); ok {
			s.thresholds = append(s.thresholds, f)
		}
	}
	sort.Float64s(s.thresholds)
	return s
}

func (s *ThresholdScale) Type() Type { return Threshold }

func (s *ThresholdScale) Scale(v any) any {
	x, ok := ToFloat(v)
	if !ok || len(s.rng) == 0 {
		return nil
	}
	i := sort.Search(len(s.thresholds), func(i int) bool {
		return x < s.thresholds[i]
	})
	if i >= len(s.rng) {
		i = len(s.rng) - 1
	}
	return s.rng[i]
}

func (s *ThresholdScale) Domain() []any { return s.domain }

func (s *ThresholdScale) Range() []any { return s.rng }

func (s *ThresholdScale) SetRange(r []any) { s.rng = r }

var _ Scale = &LinearScale{}
var _ Scale = &ThresholdScale{}

// --- Numbers ---------------------------------------------------------------

// ToFloat converts numeric values of any Go number type to float64.
func ToFloat(v any) (float64, bool) {
	switch x := v.(type) {
	case float64:
		return x, true
	case float32:
		return float64(x), true
	case int:
		return float64(x), true
	case int8:
		return float64(x), true
	case int16:
		return float64(x), true
	case int32:
		return float64(x), true
	case int64:
		return float64(x), true
	case uint:
		return float64(x), true
	case uint8:
		return float64(x), true
	case uint16:
		return float64(x), true
	case uint32:
		return float64(x), true
	case uint64:
		return float64(x), true
	}
	return 0, false
}

func clamp01(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}
