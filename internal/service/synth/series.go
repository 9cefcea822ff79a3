package synth

import (
	"math"
	"math/rand"
	"time"

	"InvestAgent/internal/domain/models"
	domrepo "InvestAgent/internal/domain/repository"
)

// Series generation constants. Returns follow N(0, 0.01) per step and the
// open/high/low envelope uses N(0, 0.005) draws.
const (
	returnStddev   = 0.01
	envelopeStddev = 0.005
	priceFloor     = 0.01
	volumeMin      = 1000
	volumeMax      = 1000000
)

// GenerateSeries produces an ordered OHLCV sequence via a random walk.
//
// The walk starts at basePrice and steps once per interval from
// now - count*interval up to now, inclusive of both ends, so the result holds
// count+1 bars, oldest first. Each close is floored at 0.01 to stay positive
// and high/low are reconciled so low <= min(open,close) <= max(open,close) <= high.
// Determinism is exactly as strong as the supplied random source.
func GenerateSeries(basePrice float64, interval domrepo.Interval, count int, now time.Time, rng *rand.Rand) []models.PriceBar {
	if basePrice <= 0 || count <= 0 {
		return nil
	}

	step := interval.Step()
	ts := now.Add(-time.Duration(count) * step)

	bars := make([]models.PriceBar, 0, count+1)
	price := basePrice

	for !ts.After(now) {
		bar, raw := nextBar(price, ts, rng)
		price = raw
		bars = append(bars, bar)
		ts = ts.Add(step)
	}

	return bars
}

// NextBar advances the walk one step from prevClose and stamps the bar at ts.
// Used by the live bar stream.
func NextBar(prevClose float64, ts time.Time, rng *rand.Rand) models.PriceBar {
	bar, _ := nextBar(prevClose, ts, rng)
	return bar
}

// nextBar returns the rounded bar plus the unrounded close the walk
// continues from.
func nextBar(prevClose float64, ts time.Time, rng *rand.Rand) (models.PriceBar, float64) {
	change := rng.NormFloat64() * returnStddev * prevClose
	price := math.Max(priceFloor, prevClose+change)

	high := price * (1 + math.Abs(rng.NormFloat64()*envelopeStddev))
	low := price * (1 - math.Abs(rng.NormFloat64()*envelopeStddev))
	open := price * (1 + rng.NormFloat64()*envelopeStddev)
	volume := int64(rng.Intn(volumeMax-volumeMin) + volumeMin)

	// Reconcile the envelope: the drawn open may fall outside [low, high].
	if open > high {
		high = open
	}
	if open < low {
		low = open
	}

	return models.PriceBar{
		Timestamp: ts,
		Open:      round2(open),
		High:      round2(high),
		Low:       round2(low),
		Close:     round2(price),
		Volume:    volume,
	}, price
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
