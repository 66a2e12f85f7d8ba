package indicator

import (
	"math"
	"regexp"
	"strconv"
	"time"
)

// DefaultSpeed is how long the indeterminate curve takes to reach 50%.
const DefaultSpeed = 500 * time.Millisecond

// finishRate is the percent-per-second base rate of the finishing law.
const finishRate = 250

var speedPattern = regexp.MustCompile(`^\s*(\d+(?:\.\d+)?|\.\d+)\s*(ms|s)?\s*$`)

// halfwayIntegral is ∫₀^½ dx/(1-√x)², the time it takes the unit-rate
// indeterminate curve to go from 0 to 50%.
var halfwayIntegral = func() float64 {
	b := 1 - math.Sqrt(0.5)
	return 2/b + 2*math.Log(b) - 2
}()

// ParseSpeed converts a speed setting into the time to reach 50%.
//
// Numbers are milliseconds. Strings match `<number>(ms|s)?`, a bare number
// again meaning milliseconds. time.Duration is taken as is. Anything else,
// including zero and negative values, is rejected.
func ParseSpeed(v any) (time.Duration, bool) {
	var ms float64
	switch s := v.(type) {
	case time.Duration:
		return s, s > 0
	case int:
		ms = float64(s)
	case int64:
		ms = float64(s)
	case float32:
		ms = float64(s)
	case float64:
		ms = s
	case string:
		m := speedPattern.FindStringSubmatch(s)
		if m == nil {
			return 0, false
		}
		n, err := strconv.ParseFloat(m[1], 64)
		if err != nil {
			return 0, false
		}
		ms = n
		if m[2] == "s" {
			ms = n * 1000
		}
	default:
		return 0, false
	}

	if math.IsNaN(ms) || math.IsInf(ms, 0) || ms <= 0 {
		return 0, false
	}
	return time.Duration(ms * float64(time.Millisecond)), true
}

// speedFactor is the percent-per-second rate that makes the indeterminate
// curve cross 50% after halfway.
func speedFactor(halfway time.Duration) float64 {
	return 100 * halfwayIntegral / halfway.Seconds()
}

// normalizedSpeed is 1.0 at DefaultSpeed, higher for faster settings.
func normalizedSpeed(halfway time.Duration) float64 {
	return DefaultSpeed.Seconds() / halfway.Seconds()
}

// indeterminateStep is the growth while active: fast at first, slowing as the
// percentage approaches 100.
func indeterminateStep(percent, delta, factor float64) float64 {
	g := 1 - math.Sqrt(clampPercent(percent)/100)
	return delta * factor * g * g
}

// finishingStep is the growth once the cycle was completed while
// indeterminate. Slow settings still finish at the base rate.
func finishingStep(delta, speed float64) float64 {
	return finishRate * delta * (speed + math.Max(0, 1-speed))
}
