package simulation

import (
	"math"
	"math/rand/v2"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lifeline/response-dashboard/internal/core/domain"
)

// scriptedRand replays fixed draws, cycling when exhausted.
type scriptedRand struct {
	floats []float64
	ints   []int
	fi, ii int
}

func (r *scriptedRand) Float64() float64 {
	v := r.floats[r.fi%len(r.floats)]
	r.fi++
	return v
}

func (r *scriptedRand) IntN(n int) int {
	v := r.ints[r.ii%len(r.ints)] % n
	r.ii++
	return v
}

func TestWrapHeading(t *testing.T) {
	cases := map[int]int{
		350 + 15: 5,
		0:        0,
		359:      359,
		360:      0,
		-5:       355,
		-725:     355,
	}
	for in, want := range cases {
		assert.Equal(t, want, WrapHeading(in), "WrapHeading(%d)", in)
	}
}

func TestClampSpeed(t *testing.T) {
	assert.Equal(t, 0, ClampSpeed(-3))
	assert.Equal(t, 80, ClampSpeed(85))
	assert.Equal(t, 42, ClampSpeed(42))
}

func TestParseMinutes(t *testing.T) {
	cases := []struct {
		eta  string
		want int
	}{
		{eta: "4 min", want: 4},
		{eta: "12 min", want: 12},
		{eta: " 7 min", want: 7},
		{eta: "soon", want: 0},
		{eta: "", want: 0},
		{eta: "99999999999999999999999 min", want: math.MaxInt},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, ParseMinutes(tc.eta), "eta %q", tc.eta)
	}
	assert.Equal(t, strconv.Itoa(math.MaxInt-1)+" min", CountdownETA("99999999999999999999999 min"))
}

func TestCountdownETA_FloorsAtZero(t *testing.T) {
	eta := "2 min"
	eta = CountdownETA(eta)
	assert.Equal(t, "1 min", eta)
	eta = CountdownETA(eta)
	assert.Equal(t, "0 min", eta)
	eta = CountdownETA(eta)
	assert.Equal(t, "0 min", eta)
	assert.Equal(t, "0 min", CountdownETA("arriving"))
	assert.Equal(t, 0, Decrement(0))
}

func TestJitterLocation_MovingStaysInRange(t *testing.T) {
	loc := domain.AmbulanceLocation{Lat: 40.0, Lng: -73.0, Speed: 78, Heading: 350, Status: domain.MovementMoving}
	r := &scriptedRand{floats: []float64{0.999, 0.0, 0.999, 0.999}}

	got := JitterLocation(loc, r)

	assert.InDelta(t, 40.0, got.Lat, 0.0006)
	assert.InDelta(t, -73.0, got.Lng, 0.0006)
	assert.Equal(t, 80, got.Speed, "78 + 4 clamps to the maximum")
	assert.Equal(t, 359, got.Heading, "350 + 9 stays below a full circle")
}

func TestJitterLocation_HeadingWraps(t *testing.T) {
	loc := domain.AmbulanceLocation{Heading: 5, Speed: 2, Status: domain.MovementMoving}
	r := &scriptedRand{floats: []float64{0.5, 0.5, 0.0, 0.0}}

	got := JitterLocation(loc, r)

	assert.Equal(t, 0, got.Speed, "2 - 5 clamps to the minimum")
	assert.Equal(t, 355, got.Heading, "5 - 10 wraps around")
}

func TestJitterLocation_NotMovingUnchanged(t *testing.T) {
	for _, st := range []domain.MovementStatus{domain.MovementStopped, domain.MovementArrived} {
		loc := domain.AmbulanceLocation{Lat: 1, Lng: 2, Speed: 0, Heading: 10, Status: st}
		got := JitterLocation(loc, &scriptedRand{floats: []float64{0.9}})
		assert.Equal(t, loc, got)
	}
}

func TestTrackerETAThreshold_FiresOnAboutThirtyPercent(t *testing.T) {
	r := rand.New(rand.NewPCG(1, 2))
	const draws = 10000
	fired := 0
	for i := 0; i < draws; i++ {
		if r.Float64() > trackerETAThreshold {
			fired++
		}
	}
	assert.InDelta(t, 0.3, float64(fired)/draws, 0.02)
}

func TestStepTracker_OnlyEnRouteAboveThreshold(t *testing.T) {
	units := SeedAmbulances()
	// AMB-101 fires, AMB-205 does not, AMB-312 is skipped without a draw, AMB-418 fires.
	r := &scriptedRand{floats: []float64{0.71, 0.7, 0.95}}

	got := StepTracker(units, r)

	assert.Equal(t, "3 min", got[0].ETA)
	assert.Equal(t, "7 min", got[1].ETA)
	assert.Equal(t, "0 min", got[2].ETA)
	assert.Equal(t, "11 min", got[3].ETA)
	assert.Equal(t, 3, r.fi)
}

func TestStepPatients_CountsDownEveryone(t *testing.T) {
	got := StepPatients(SeedPatients())
	assert.Equal(t, []string{"1 min", "4 min", "0 min", "9 min"},
		[]string{got[0].ArrivalTime, got[1].ArrivalTime, got[2].ArrivalTime, got[3].ArrivalTime})
}

func TestStepNotifications_BelowThresholdKeepsFeed(t *testing.T) {
	feed := SeedNotifications(time.Now())
	got := StepNotifications(feed, &scriptedRand{floats: []float64{0.6}}, time.Now())
	assert.Equal(t, feed, got)
}

func TestStepNotifications_PrependsAndCaps(t *testing.T) {
	now := time.Now()
	feed := SeedNotifications(now)
	r := &scriptedRand{floats: []float64{0.9}, ints: []int{2, 3}}

	for i := 0; i < 10; i++ {
		feed = StepNotifications(feed, r, now)
		require.LessOrEqual(t, len(feed), MaxNotifications)
	}

	require.Len(t, feed, MaxNotifications)
	head := feed[0]
	assert.Contains(t, domain.NotificationTypes, head.Type)
	assert.Contains(t, NotificationMessages, head.Message)
	assert.Equal(t, "Just now", head.Timestamp)

	ids := map[string]bool{}
	for _, n := range feed {
		assert.False(t, ids[n.ID], "duplicate id %s", n.ID)
		ids[n.ID] = true
	}
}

func TestStepNotifications_NewestFirst(t *testing.T) {
	now := time.Now()
	feed := SeedNotifications(now)
	r := &scriptedRand{floats: []float64{0.61}, ints: []int{0, 0}}

	got := StepNotifications(feed, r, now)

	require.Len(t, got, 4)
	assert.Equal(t, domain.NotificationInfo, got[0].Type)
	assert.Equal(t, NotificationMessages[0], got[0].Message)
	assert.Equal(t, feed[0].ID, got[1].ID)
}

func TestSeeds_AreIndependentCopies(t *testing.T) {
	a := SeedLocations()
	a[0].Lat = 0
	assert.Equal(t, 40.7589, SeedLocations()[0].Lat)
}

func TestNewRand_DrawsInRange(t *testing.T) {
	r := NewRand()
	for i := 0; i < 100; i++ {
		u := r.Float64()
		require.GreaterOrEqual(t, u, 0.0)
		require.Less(t, u, 1.0)
		require.Less(t, r.IntN(3), 3)
	}
}

func TestCountdownETA_FromFourMinutes(t *testing.T) {
	eta := CountdownETA("4 min")
	assert.Equal(t, "3 min", eta)
	for i := 0; i < 4; i++ {
		eta = CountdownETA(eta)
	}
	assert.Equal(t, "0 min", eta)
	assert.Equal(t, "0 min", CountdownETA(eta))
}

func TestStepGPS_RangesHoldOverManyTicks(t *testing.T) {
	r := NewRand()
	locs := SeedLocations()
	for i := 0; i < 1000; i++ {
		locs = StepGPS(locs, r)
		for _, l := range locs {
			require.GreaterOrEqual(t, l.Speed, domain.MinSpeedKmh)
			require.LessOrEqual(t, l.Speed, domain.MaxSpeedKmh)
			require.GreaterOrEqual(t, l.Heading, 0)
			require.Less(t, l.Heading, domain.FullCircle)
		}
	}
	assert.Equal(t, 40.7489, locs[2].Lat, "arrived units never move")
}
