package pricing

import (
	"github.com/shopspring/decimal"

	"listing-checkout/internal/model"
)

// Duration is one of the fixed visibility periods a buyer can pick. The
// multiplier is applied to the plan's base price to get the payable amount.
type Duration struct {
	ID         string          `json:"id"`
	Label      string          `json:"label"`
	Multiplier decimal.Decimal `json:"multiplier"`
}

// Durations is the full static set, shortest first. Not fetched remotely.
var Durations = []Duration{
	{"1dia", "1 día", decimal.RequireFromString("1")},
	{"3dias", "3 días", decimal.RequireFromString("2.5")},
	{"1semana", "1 semana", decimal.RequireFromString("5")},
	{"1mes", "1 mes", decimal.RequireFromString("15")},
	{"3meses", "3 meses", decimal.RequireFromString("40")},
}

// ShortestDuration is the only duration a free plan may use.
func ShortestDuration() Duration {
	return Durations[0]
}

// DurationByID looks a duration up in the static set.
func DurationByID(id string) (Duration, bool) {
	for _, d := range Durations {
		if d.ID == id {
			return d, true
		}
	}
	return Duration{}, false
}

// Amount computes the payable amount for a base price and multiplier,
// rounding half-up. A free plan is unconditionally free.
func Amount(basePrice int64, multiplier decimal.Decimal) int64 {
	if basePrice == 0 {
		return 0
	}
	return decimal.NewFromInt(basePrice).Mul(multiplier).Round(0).IntPart()
}

// AvailableDurations returns the durations a plan may be bought for.
// Free plans are locked to the shortest duration. Callers must not cache
// the result across plan changes.
func AvailableDurations(plan *model.Plan) []Duration {
	if plan.BasePrice == 0 {
		return Durations[:1]
	}
	return Durations
}
