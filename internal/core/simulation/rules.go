// Package simulation holds the perturbation rules that keep the mock dashboard panels moving,
// plus the seed lists each session starts from.
package simulation

import (
	"errors"
	"math"
	"math/rand/v2"
	"strconv"
	"strings"

	"github.com/lifeline/response-dashboard/internal/core/domain"
)

// Rand is the source of uniform draws used by every rule. *rand.Rand from math/rand/v2
// satisfies it.
type Rand interface {
	Float64() float64
	IntN(n int) int
}

// NewRand returns a Rand seeded from the runtime's random source.
func NewRand() Rand {
	return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
}

const (
	coordJitter   = 0.001
	speedJitter   = 10
	headingJitter = 20
)

// WrapHeading maps any integer heading into [0, 360).
func WrapHeading(h int) int {
	return ((h % domain.FullCircle) + domain.FullCircle) % domain.FullCircle
}

// ClampSpeed bounds s to the vehicle speed range.
func ClampSpeed(s int) int {
	return max(domain.MinSpeedKmh, min(domain.MaxSpeedKmh, s))
}

// delta draws floor((u-0.5)*scale), an integer step centred on zero.
func delta(r Rand, scale float64) int {
	return int(math.Floor((r.Float64() - 0.5) * scale))
}

// JitterLocation perturbs a moving unit's fix. Units that are not moving are returned unchanged.
func JitterLocation(loc domain.AmbulanceLocation, r Rand) domain.AmbulanceLocation {
	if loc.Status != domain.MovementMoving {
		return loc
	}
	loc.Lat += (r.Float64() - 0.5) * coordJitter
	loc.Lng += (r.Float64() - 0.5) * coordJitter
	loc.Speed = ClampSpeed(loc.Speed + delta(r, speedJitter))
	loc.Heading = WrapHeading(loc.Heading + delta(r, headingJitter))
	return loc
}

// ParseMinutes reads the leading integer of an ETA such as "4 min". Anything non-numeric is 0;
// a digit run too large for an int saturates at math.MaxInt.
func ParseMinutes(eta string) int {
	s := strings.TrimSpace(eta)
	end := 0
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	n, err := strconv.Atoi(s[:end])
	if errors.Is(err, strconv.ErrRange) {
		return math.MaxInt
	}
	if err != nil {
		return 0
	}
	return n
}

// FormatMinutes renders n as "<n> min".
func FormatMinutes(n int) string {
	return strconv.Itoa(n) + " min"
}

// Decrement lowers n by one, never below zero.
func Decrement(n int) int {
	return max(0, n-1)
}

// CountdownETA takes one minute off an ETA string.
func CountdownETA(eta string) string {
	return FormatMinutes(Decrement(ParseMinutes(eta)))
}
