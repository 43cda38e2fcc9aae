package stubtracker

import (
	"crypto/rand"
	"math/big"
	"time"

	"github.com/bva/billabot/internal/domain/target"
)

// Constants for random number generation.
const (
	randomFloatDivisor = 1000000
	profileDivisor     = 4
)

// Constants for generated hour ranges, relative to the current target.
const (
	onTrackMargin     = 2.0
	behindMin         = 0.2
	behindRange       = 0.6
	aheadMax          = 1.4
	borderlineSpread  = 1.0
	overheadHoursMin  = 0.5
	overheadHoursMax  = 3.0
	minBillableFloor  = 0.0
)

// Performance profile cases.
const (
	caseOnTrack    = 0
	caseBehind     = 1
	caseAhead      = 2
	caseBorderline = 3
)

var sampleNames = []string{
	"Ada Lovelace",
	"Grace Hopper",
	"Alan Turing",
	"Edsger Dijkstra",
	"Barbara Liskov",
	"Donald Knuth",
	"Margaret Hamilton",
	"Tony Hoare",
	"Frances Allen",
	"Ken Thompson",
	"Radia Perlman",
	"Dennis Ritchie",
}

// getRandomFloat returns a random float64 between 0.0 and 1.0 using crypto/rand.
func getRandomFloat() float64 {
	n, _ := rand.Int(rand.Reader, big.NewInt(randomFloatDivisor))
	return float64(n.Int64()) / float64(randomFloatDivisor)
}

// getRandomInt returns a random int in [0, max) using crypto/rand.
func getRandomInt(max int64) int64 {
	n, _ := rand.Int(rand.Reader, big.NewInt(max))
	return n.Int64()
}

// generateTotals fabricates a weekly report for teamSize people. Hours
// are spread around the current target so some people come out behind,
// some ahead, and some right on the line.
func generateTotals(now time.Time, teamSize int) []personTotal {
	targetHours := target.Hours(now)
	if targetHours < 1 {
		targetHours = 1
	}

	totals := make([]personTotal, 0, teamSize)
	for i := 0; i < teamSize; i++ {
		name := sampleNames[i%len(sampleNames)]

		var billable float64
		switch getRandomInt(profileDivisor) {
		case caseOnTrack:
			billable = targetHours + getRandomFloat()*onTrackMargin
		case caseBehind:
			billable = targetHours * (behindMin + getRandomFloat()*behindRange)
		case caseAhead:
			billable = targetHours * (1 + getRandomFloat()*(aheadMax-1))
		case caseBorderline:
			billable = targetHours - borderlineSpread/2 + getRandomFloat()*borderlineSpread
		}
		if billable < minBillableFloor {
			billable = minBillableFloor
		}

		overhead := overheadHoursMin + getRandomFloat()*(overheadHoursMax-overheadHoursMin)
		totals = append(totals, personTotal{
			Name:          name,
			BillableHours: round2(billable),
			TotalHours:    round2(billable + overhead),
		})
	}
	return totals
}

// round2 rounds to two decimal places, matching the upstream's format.
func round2(v float64) float64 {
	return float64(int64(v*100+0.5)) / 100
}
