package rate

import (
	"countryfx/internal/domain"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Accumulator holds running sums of daily rates per currency.
// It is turned into Averages exactly once by Finalize.
type Accumulator struct {
	sums    map[string]decimal.Decimal
	samples int
}

func NewAccumulator(codes []string) *Accumulator {
	sums := make(map[string]decimal.Decimal, len(codes))
	for _, code := range codes {
		sums[code] = decimal.Zero
	}
	return &Accumulator{sums: sums}
}

// Add adds one day's snapshot. The snapshot must hold a rate for every tracked
// currency; nothing is added otherwise.
func (a *Accumulator) Add(date time.Time, rates map[string]float64) error {
	if a.sums == nil {
		return domain.ErrAlreadyFinalized
	}

	var missing []string
	for code := range a.sums {
		if _, ok := rates[code]; !ok {
			missing = append(missing, code)
		}
	}
	if len(missing) > 0 {
		slices.Sort(missing)
		return fmt.Errorf("%w: no rate for %s on %s", domain.ErrRateFetch, strings.Join(missing, ","), date.Format(time.DateOnly))
	}

	for code, sum := range a.sums {
		a.sums[code] = sum.Add(decimal.NewFromFloat(rates[code]))
	}
	a.samples++
	return nil
}

func (a *Accumulator) Samples() int { return a.samples }

// Finalize divides every sum by the number of samples and hands the result
// over as Averages. The accumulator is unusable afterwards.
func (a *Accumulator) Finalize() (*Averages, error) {
	if a.sums == nil {
		return nil, domain.ErrAlreadyFinalized
	}
	if a.samples == 0 {
		return nil, domain.ErrInvalidWindow
	}

	n := decimal.NewFromInt(int64(a.samples))
	means := make(map[string]decimal.Decimal, len(a.sums))
	for code, sum := range a.sums {
		means[code] = sum.Div(n)
	}
	a.sums = nil

	return &Averages{means: means, samples: a.samples}, nil
}

// Averages is the read-only result of a finalized Accumulator.
type Averages struct {
	means   map[string]decimal.Decimal
	samples int
}

func (a *Averages) Rate(code string) (decimal.Decimal, bool) {
	v, ok := a.means[code]
	return v, ok
}

func (a *Averages) Codes() []string {
	codes := make([]string, 0, len(a.means))
	for code := range a.means {
		codes = append(codes, code)
	}
	slices.Sort(codes)
	return codes
}

func (a *Averages) Samples() int { return a.samples }
