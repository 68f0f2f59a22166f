package solver

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"math"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/parniayzdin/Fuelio/internal/domain/strategy"
)

// CBCSolver solves the fuel stop model with the COIN-OR CBC binary.
// The model is written in CPLEX LP format to a scratch directory and the
// solution file is parsed back.
type CBCSolver struct {
	binary string
}

// NewCBCSolver creates a CBC backend. binary may be a name on PATH or a path.
func NewCBCSolver(binary string) *CBCSolver {
	if binary == "" {
		binary = "cbc"
	}
	return &CBCSolver{binary: binary}
}

// Name returns the backend name
func (c *CBCSolver) Name() string {
	return "cbc"
}

// Solve runs CBC under the context deadline
func (c *CBCSolver) Solve(ctx context.Context, model *strategy.FuelStopModel) (*strategy.Solution, error) {
	path, err := exec.LookPath(c.binary)
	if err != nil {
		return nil, fmt.Errorf("cbc binary %q: %v: %w", c.binary, err, strategy.ErrSolverUnavailable)
	}

	dir, err := os.MkdirTemp("", "fuelio-cbc-")
	if err != nil {
		return nil, fmt.Errorf("failed to create scratch dir: %w", err)
	}
	defer os.RemoveAll(dir)

	lpPath := filepath.Join(dir, "model.lp")
	solPath := filepath.Join(dir, "solution.txt")

	f, err := os.Create(lpPath)
	if err != nil {
		return nil, fmt.Errorf("failed to create model file: %w", err)
	}
	if err := WriteLP(f, model); err != nil {
		f.Close()
		return nil, err
	}
	if err := f.Close(); err != nil {
		return nil, fmt.Errorf("failed to write model file: %w", err)
	}

	args := []string{lpPath}
	if deadline, ok := ctx.Deadline(); ok {
		seconds := math.Max(1, math.Floor(time.Until(deadline).Seconds()))
		args = append(args, "sec", strconv.FormatFloat(seconds, 'f', 0, 64))
	}
	args = append(args, "solve", "solu", solPath)

	out, err := exec.CommandContext(ctx, path, args...).CombinedOutput()
	if ctxErr := ctx.Err(); ctxErr != nil {
		return nil, fmt.Errorf("cbc interrupted: %w", ctxErr)
	}
	if err != nil {
		return nil, fmt.Errorf("cbc failed: %v: %s", err, strings.TrimSpace(string(out)))
	}

	solFile, err := os.Open(solPath)
	if err != nil {
		return nil, fmt.Errorf("cbc produced no solution file: %w", err)
	}
	defer solFile.Close()

	return ParseSolution(solFile, model)
}

func litersVar(s, d int) string { return fmt.Sprintf("l_%d_%d", s, d) }
func fillVar(s, d int) string   { return fmt.Sprintf("x_%d_%d", s, d) }

// WriteLP writes the model in CPLEX LP format
func WriteLP(w io.Writer, m *strategy.FuelStopModel) error {
	bw := bufio.NewWriter(w)
	n, days := m.StationCount(), m.HorizonDays

	allLiters := make([]string, 0, n*days)
	allFills := make([]string, 0, n*days)
	objective := make([]string, 0, n*days)
	for s := 0; s < n; s++ {
		for d := 0; d < days; d++ {
			allLiters = append(allLiters, litersVar(s, d))
			allFills = append(allFills, fillVar(s, d))
			objective = append(objective, fmt.Sprintf("%s %s", formatNumber(m.Prices[s][d]), litersVar(s, d)))
		}
	}

	fmt.Fprintln(bw, `\ fuel stop model`)
	fmt.Fprintln(bw, "Minimize")
	fmt.Fprintf(bw, " cost: %s\n", strings.Join(objective, " + "))

	fmt.Fprintln(bw, "Subject To")
	fmt.Fprintf(bw, " sufficiency: %s >= %s\n", strings.Join(allLiters, " + "), formatNumber(m.Deficit()))
	fmt.Fprintf(bw, " capacity: %s <= %s\n", strings.Join(allLiters, " + "), formatNumber(m.CapacityLimit()))
	for s := 0; s < n; s++ {
		dayFills := make([]string, 0, days)
		for d := 0; d < days; d++ {
			fmt.Fprintf(bw, " link_%d_%d: %s - %s %s <= 0\n", s, d, litersVar(s, d), formatNumber(m.TankLiters), fillVar(s, d))
			dayFills = append(dayFills, fillVar(s, d))
		}
		fmt.Fprintf(bw, " one_day_%d: %s <= 1\n", s, strings.Join(dayFills, " + "))
	}
	fmt.Fprintf(bw, " max_fills: %s <= %d\n", strings.Join(allFills, " + "), m.MaxFills)

	fmt.Fprintln(bw, "Bounds")
	for _, v := range allLiters {
		fmt.Fprintf(bw, " 0 <= %s <= %s\n", v, formatNumber(m.TankLiters))
	}

	fmt.Fprintln(bw, "Binaries")
	for _, v := range allFills {
		fmt.Fprintf(bw, " %s\n", v)
	}
	fmt.Fprintln(bw, "End")

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("failed to write LP model: %w", err)
	}
	return nil
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// ParseSolution reads a CBC solution file. Variables not listed are zero.
//
//	Optimal - objective value 35.00000000
//	      0 l_1_0                       25                     1.4
func ParseSolution(r io.Reader, m *strategy.FuelStopModel) (*strategy.Solution, error) {
	scanner := bufio.NewScanner(r)
	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return nil, fmt.Errorf("failed to read cbc solution: %w", err)
		}
		return nil, fmt.Errorf("empty cbc solution")
	}

	header := strings.TrimSpace(scanner.Text())
	sol := strategy.NewEmptySolution(m, cbcStatus(header))
	if !sol.Accepted() {
		return sol, nil
	}

	for scanner.Scan() {
		fields := strings.Fields(strings.TrimPrefix(strings.TrimSpace(scanner.Text()), "**"))
		if len(fields) < 3 || !strings.HasPrefix(fields[1], "l_") {
			continue
		}
		var s, d int
		if _, err := fmt.Sscanf(fields[1], "l_%d_%d", &s, &d); err != nil {
			return nil, fmt.Errorf("unexpected variable %q", fields[1])
		}
		if s < 0 || s >= m.StationCount() || d < 0 || d >= m.HorizonDays {
			return nil, fmt.Errorf("variable %q outside the model", fields[1])
		}
		value, err := strconv.ParseFloat(fields[2], 64)
		if err != nil {
			return nil, fmt.Errorf("invalid value for %s: %w", fields[1], err)
		}
		sol.Liters[s][d] = value
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read cbc solution: %w", err)
	}

	sol.Objective = m.Cost(sol)
	return sol, nil
}

func cbcStatus(header string) strategy.SolutionStatus {
	lower := strings.ToLower(header)
	switch {
	case strings.HasPrefix(lower, "optimal"):
		return strategy.SolutionOptimal
	case strings.Contains(lower, "infeasible"):
		return strategy.SolutionInfeasible
	case strings.Contains(lower, "unbounded"):
		return strategy.SolutionUnbounded
	case strings.HasPrefix(lower, "stopped") && strings.Contains(lower, "objective value"):
		return strategy.SolutionFeasible
	default:
		return strategy.SolutionError
	}
}
