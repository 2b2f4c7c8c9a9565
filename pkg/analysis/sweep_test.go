package analysis

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edp1096/toy-transport/pkg/models"
	"github.com/edp1096/toy-transport/pkg/term"
	"github.com/edp1096/toy-transport/pkg/util"
)

func TestPoint(t *testing.T) {
	sys := wire(t)
	op := NewPoint(1, nil)
	require.NoError(t, op.Setup(sys))
	require.NoError(t, op.Execute())

	res := op.GetResults()
	assert.Equal(t, []float64{1}, res["ENERGY"])
	assert.InDelta(t, 1, res[TransmissionKey(1, 0)][0], tol)
	assert.InDelta(t, 1, res[ChannelKey(0)][0], tol)
	assert.Equal(t, "ENERGY", op.Columns()[0])
	require.NotNil(t, op.Result)
}

func TestEnergySweepSteps(t *testing.T) {
	sys := wire(t)
	es := NewEnergySweep(0.3, 3.8, 3, nil)
	require.NoError(t, es.Setup(sys))
	require.NoError(t, es.Execute())

	res := es.GetResults()
	assert.InDeltaSlice(t, []float64{0.3, 2.05, 3.8}, res["ENERGY"], 1e-12)
	assert.InDeltaSlice(t, []float64{0, 2, 3}, res[TransmissionKey(1, 0)], tol)

	assert.Error(t, NewEnergySweep(0, 1, 0, nil).Setup(sys))
}

func TestParamSweep(t *testing.T) {
	sys := wire(t)
	ps := NewParamSweep([]string{models.ParamBarrier}, []float64{0}, []float64{2}, []int{3}, 1, nil)
	require.NoError(t, ps.Setup(sys))
	require.NoError(t, ps.Execute())

	res := ps.GetResults()
	require.Len(t, res[models.ParamBarrier], 3)
	tr := res[TransmissionKey(1, 0)]
	assert.InDelta(t, 1, tr[0], tol)
	assert.Less(t, tr[2], tr[0])
	for i := range tr {
		assert.InDelta(t, res[ChannelKey(0)][i], tr[i]+res[TransmissionKey(0, 0)][i], tol)
	}
}

func TestNestedParamSweep(t *testing.T) {
	sys, err := models.SpinValve(4, 1)
	require.NoError(t, err)
	defer sys.Destroy()

	ps := NewParamSweep([]string{models.ParamJ, models.ParamTheta},
		[]float64{0, 0}, []float64{0.5, math.Pi}, []int{2, 3}, 0.3, nil)
	require.NoError(t, ps.Setup(sys))
	require.NoError(t, ps.Execute())

	res := ps.GetResults()
	assert.Equal(t, []float64{0, 0, 0, 0.5, 0.5, 0.5}, res[models.ParamJ])
	require.Len(t, res[models.ParamTheta], 6)
	// without exchange the angle does not matter
	for i := 0; i < 3; i++ {
		assert.InDelta(t, 2, res[TransmissionKey(1, 0)][i], tol)
	}

	bad := NewParamSweep([]string{"a", "b", "c"}, nil, nil, nil, 0, nil)
	assert.Error(t, bad.Setup(sys))
}

func TestResistanceSweepHallVanishesWithoutExchange(t *testing.T) {
	sys, err := models.SkyrmionCross(3, 3, 1)
	require.NoError(t, err)
	defer sys.Destroy()

	rs := NewResistanceSweep(EnergyParam, 1.2, 1.6, 2, 0, CrossTerminals(),
		term.Params{models.ParamJ: 0, models.ParamRadius: 2})
	require.NoError(t, rs.Setup(sys))
	require.NoError(t, rs.Execute())

	res := rs.GetResults()
	require.Len(t, res["R_H"], 2)
	for i := range res["R_H"] {
		assert.InDelta(t, 0, res["R_H"][i], tol)
		assert.Greater(t, res["R_XX"][i], 0.0)
		assert.InDelta(t, 0, res["ASYM"][i], tol)
	}
}

func TestResistanceSweepTerminalCheck(t *testing.T) {
	sys := wire(t)
	rs := NewResistanceSweep(models.ParamBarrier, 0, 1, 2, 1, CrossTerminals(), nil)
	assert.Error(t, rs.Setup(sys))
}

func TestThermalSweepFlatTransmission(t *testing.T) {
	sys := wire(t)
	ts := NewThermalSweep(1.2, 1.4, 2, 300, 1, 0, nil)
	ts.Points = 11
	require.NoError(t, ts.Setup(sys))
	require.NoError(t, ts.Execute())

	res := ts.GetResults()
	assert.Equal(t, []float64{1.2, 1.4}, res["MU"])
	// kT at 300 K keeps the window inside the one-channel plateau
	assert.InDeltaSlice(t, []float64{1, 1}, res["G_T"], tol)
	assert.InDeltaSlice(t, []float64{1, 1}, res["T0"], tol)
}

func TestThermalSweepSmoothsStep(t *testing.T) {
	sys := wire(t)

	cold := NewThermalSweep(1, 1, 1, 0, 1, 0, nil)
	require.NoError(t, cold.Setup(sys))
	require.NoError(t, cold.Execute())
	assert.InDelta(t, 1, cold.GetResults()["G_T"][0], tol)

	// the second channel opens at E = 2

	hot := NewThermalSweep(2.05, 2.05, 1, 1000, 1, 0, nil)
	require.NoError(t, hot.Setup(sys))
	require.NoError(t, hot.Execute())

	g := hot.GetResults()["G_T"][0]
	assert.Greater(t, g, 1.0)
	assert.Less(t, g, 2.0)

	assert.Error(t, NewThermalSweep(0, 1, 2, -1, 1, 0, nil).Setup(sys))
	assert.Error(t, NewThermalSweep(0, 1, 2, 300, 5, 0, nil).Setup(sys))
}

func TestThermalSweepQuadraturePoints(t *testing.T) {
	sys := wire(t)

	for _, tc := range []struct {
		method util.QuadratureMethod
		points int
		ok     bool
	}{
		{util.SimpsonMethod, 0, false},
		{util.SimpsonMethod, 1, false},
		{util.SimpsonMethod, 10, false},
		{util.SimpsonMethod, 11, true},
		{util.TrapezoidalMethod, 1, false},
		{util.TrapezoidalMethod, 2, true},
	} {
		ts := NewThermalSweep(1.2, 1.2, 1, 300, 1, 0, nil)
		ts.Method = tc.method
		ts.Points = tc.points
		err := ts.Setup(sys)
		if !tc.ok {
			assert.Error(t, err, "method=%v points=%d", tc.method, tc.points)
			continue
		}
		require.NoError(t, err)
		require.NoError(t, ts.Execute())
		assert.InDelta(t, 1, ts.GetResults()["G_T"][0], tol)
	}
}
