package solver_test

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/parniayzdin/Fuelio/internal/adapters/solver"
	"github.com/parniayzdin/Fuelio/internal/domain/strategy"
)

func TestWriteLP_EmitsEveryConstraintFamily(t *testing.T) {
	// Arrange: deficit 25, capacity limit 70
	m := model(10, 30, []float64{1.6, 1.5}, []float64{1.4, 1.45})
	var buf bytes.Buffer

	// Act
	err := solver.WriteLP(&buf, m)

	// Assert
	require.NoError(t, err)
	lp := buf.String()
	assert.Contains(t, lp, " cost: 1.6 l_0_0 + 1.5 l_0_1 + 1.4 l_1_0 + 1.45 l_1_1\n")
	assert.Contains(t, lp, " sufficiency: l_0_0 + l_0_1 + l_1_0 + l_1_1 >= 25\n")
	assert.Contains(t, lp, " capacity: l_0_0 + l_0_1 + l_1_0 + l_1_1 <= 70\n")
	assert.Contains(t, lp, " link_1_1: l_1_1 - 50 x_1_1 <= 0\n")
	assert.Contains(t, lp, " one_day_0: x_0_0 + x_0_1 <= 1\n")
	assert.Contains(t, lp, " max_fills: x_0_0 + x_0_1 + x_1_0 + x_1_1 <= 2\n")
	assert.Contains(t, lp, " 0 <= l_0_1 <= 50\n")
	assert.Contains(t, lp, "Binaries\n x_0_0\n")
	assert.True(t, strings.HasSuffix(lp, "End\n"))
}

func TestParseSolution_Optimal(t *testing.T) {
	// Arrange
	m := model(10, 30, []float64{1.6, 1.5}, []float64{1.4, 1.45})
	out := `Optimal - objective value 35.00000000
      2 l_1_0                       25                     1.4
      6 x_1_0                        1                       0
`

	// Act
	sol, err := solver.ParseSolution(strings.NewReader(out), m)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, strategy.SolutionOptimal, sol.Status)
	assert.Equal(t, 25.0, sol.Liters[1][0])
	assert.Zero(t, sol.Liters[0][0])
	assert.InDelta(t, 35.0, sol.Objective, 1e-9)
}

func TestParseSolution_Statuses(t *testing.T) {
	tests := []struct {
		header string
		want   strategy.SolutionStatus
	}{
		{"Optimal - objective value 1.0", strategy.SolutionOptimal},
		{"Infeasible - objective value 0", strategy.SolutionInfeasible},
		{"Integer infeasible - objective value 0", strategy.SolutionInfeasible},
		{"Unbounded - objective value 0", strategy.SolutionUnbounded},
		{"Stopped on time - objective value 40.5", strategy.SolutionFeasible},
		{"garbage", strategy.SolutionError},
	}

	for _, tt := range tests {
		t.Run(tt.header, func(t *testing.T) {
			sol, err := solver.ParseSolution(strings.NewReader(tt.header+"\n"), model(10, 30, []float64{1.5}))
			require.NoError(t, err)
			assert.Equal(t, tt.want, sol.Status)
		})
	}
}

func TestParseSolution_RejectsVariablesOutsideModel(t *testing.T) {
	out := "Optimal - objective value 1\n 0 l_4_0 1 0\n"

	_, err := solver.ParseSolution(strings.NewReader(out), model(10, 30, []float64{1.5}))

	assert.Error(t, err)
}

func TestParseSolution_EmptyInput(t *testing.T) {
	_, err := solver.ParseSolution(strings.NewReader(""), model(10, 30, []float64{1.5}))

	assert.Error(t, err)
}

func TestCBCSolver_MissingBinaryIsUnavailable(t *testing.T) {
	// Arrange
	cbc := solver.NewCBCSolver("fuelio-no-such-cbc-binary")

	// Act
	_, err := cbc.Solve(context.Background(), model(10, 30, []float64{1.5}))

	// Assert
	require.Error(t, err)
	assert.ErrorIs(t, err, strategy.ErrSolverUnavailable)
	assert.Equal(t, "cbc", cbc.Name())
}
