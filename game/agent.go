package game

import (
	"errors"
	"fmt"
	"io"
	"log"
	"slices"

	"github.com/beka-birhanu/vinom-mdp/config"
	"github.com/beka-birhanu/vinom-mdp/game/maze"
	"github.com/beka-birhanu/vinom-mdp/game/mdp"
)

// Agent-related errors.
var (
	ErrInvalidConfig = errors.New("invalid agent config")
	ErrIllegalMove   = errors.New("chosen move is not legal")
)

// Default solver constants.
const (
	defaultCollectibleValue      = 10.0
	defaultPowerPickupValue      = 50.0
	defaultVulnerableHazardValue = 400.0
	defaultHazardValue           = -500.0
	defaultSafetyDistance        = 4
	defaultDecayRate             = 50.0
	defaultDiscount              = 0.6
	defaultTolerance             = 0.0001
	defaultBudget                = 100
	defaultSparseBudget          = 200
	defaultSparseThreshold       = 10
)

// Config holds the constants an Agent is built with. They do not change for the agent's lifetime.
type Config struct {
	CollectibleValue      float64     // Reward of an ordinary collectible.
	PowerPickupValue      float64     // Reward of a power pickup (offensive mode).
	VulnerableHazardValue float64     // Reward of a vulnerable hazard (defensive and offensive modes).
	HazardValue           float64     // Penalty at a dangerous hazard's cell.
	SafetyDistance        int         // Rings around a hazard, its own cell included, that carry a penalty.
	DecayRate             float64     // Penalty recovered per step away from a hazard.
	Discount              float64     // Discount factor in (0, 1].
	Tolerance             float64     // Convergence tolerance of a cell's utility.
	DefaultBudget         int         // Bellman passes for dense target sets.
	SparseBudget          int         // Bellman passes for sparse target sets.
	SparseThreshold       int         // Collectible count below which the sparse budget applies.
	Mode                  mdp.Mode    // Which targets the agent goes for.
	Verbose               bool        // Log per-step diagnostics.
	Logger                *log.Logger // Destination of diagnostics; discarded when nil.
}

// DefaultConfig returns the tuned defaults in inactive mode.
func DefaultConfig() Config {
	return Config{
		CollectibleValue:      defaultCollectibleValue,
		PowerPickupValue:      defaultPowerPickupValue,
		VulnerableHazardValue: defaultVulnerableHazardValue,
		HazardValue:           defaultHazardValue,
		SafetyDistance:        defaultSafetyDistance,
		DecayRate:             defaultDecayRate,
		Discount:              defaultDiscount,
		Tolerance:             defaultTolerance,
		DefaultBudget:         defaultBudget,
		SparseBudget:          defaultSparseBudget,
		SparseThreshold:       defaultSparseThreshold,
		Mode:                  mdp.ModeInactive,
	}
}

// SafetyFloor is the penalty of the outermost ring around a hazard.
func (c Config) SafetyFloor() float64 {
	return c.HazardValue + float64(c.SafetyDistance-1)*c.DecayRate
}

func (c Config) validate() error {
	switch {
	case c.Discount <= 0 || c.Discount > 1:
		return fmt.Errorf("%w: discount %v not in (0, 1]", ErrInvalidConfig, c.Discount)
	case c.Tolerance <= 0:
		return fmt.Errorf("%w: tolerance must be positive", ErrInvalidConfig)
	case c.DefaultBudget <= 0 || c.SparseBudget <= 0:
		return fmt.Errorf("%w: iteration budgets must be positive", ErrInvalidConfig)
	case c.SafetyDistance < 1:
		return fmt.Errorf("%w: safety distance must be at least 1", ErrInvalidConfig)
	case c.DecayRate <= 0:
		return fmt.Errorf("%w: decay rate must be positive", ErrInvalidConfig)
	case c.HazardValue >= 0:
		return fmt.Errorf("%w: hazard value must be negative", ErrInvalidConfig)
	}
	if _, err := mdp.ParseMode(string(c.Mode)); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return nil
}

// Agent turns host states into moves. It holds no per-round memory of its own; that lives in the
// Session passed to Decide.
type Agent struct {
	cfg     Config
	planner mdp.Planner
	logger  *log.Logger
}

// NewAgent validates cfg and returns an Agent.
func NewAgent(cfg Config) (*Agent, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	logger := cfg.Logger
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}

	return &Agent{
		cfg: cfg,
		planner: mdp.Planner{
			CollectibleValue:      cfg.CollectibleValue,
			PowerPickupValue:      cfg.PowerPickupValue,
			VulnerableHazardValue: cfg.VulnerableHazardValue,
			DefaultBudget:         cfg.DefaultBudget,
			SparseBudget:          cfg.SparseBudget,
			SparseThreshold:       cfg.SparseThreshold,
		},
		logger: logger,
	}, nil
}

// Config returns the constants the agent was built with.
func (a *Agent) Config() Config {
	return a.cfg
}

// Decide runs one decision step: build the round's grid if needed, seed a reward map from the
// current targets and hazards, iterate it to convergence or budget, and pick the best legal move.
func (a *Agent) Decide(s *Session, st State) (Decision, error) {
	grid, err := s.Grid(st.Walls)
	if err != nil {
		return Decision{}, err
	}
	if !grid.IsFloor(st.Agent) {
		return Decision{}, fmt.Errorf("agent position: %w: %s", maze.ErrUnknownCell, st.Agent)
	}

	plan := a.planner.Plan(a.cfg.Mode, st.Collectibles, st.PowerPickups, st.Hazards)
	if a.cfg.Verbose {
		a.debugf("round=%d step=%d agent=%s vulnerable=%v dangerous=%v", s.Round(), s.Steps()+1, st.Agent, plan.Vulnerable, plan.Dangerous)
	}

	seed := mdp.BuildRewardMap(grid, mdp.RewardParams{
		Targets:        plan.Targets,
		TargetValue:    plan.TargetValue,
		Hazards:        plan.Dangerous,
		HazardValue:    a.cfg.HazardValue,
		SafetyDistance: a.cfg.SafetyDistance,
		DecayRate:      a.cfg.DecayRate,
	})

	values, report, err := mdp.Solve(grid, seed, mdp.IterationParams{
		Discount:  a.cfg.Discount,
		Tolerance: a.cfg.Tolerance,
		MaxSteps:  plan.Budget,
		Objective: mdp.Maximize,
	})
	if err != nil {
		return Decision{}, err
	}

	choice, err := mdp.SelectAction(st.Legal, values, grid, st.Agent)
	if err != nil {
		return Decision{}, err
	}
	if !slices.Contains(st.Legal, choice.Direction) {
		return Decision{}, fmt.Errorf("%w: %s", ErrIllegalMove, choice.Direction)
	}

	if a.cfg.Verbose {
		for _, o := range choice.Considered {
			a.debugf("direction=%s expected_utility=%.4f", o.Direction, o.Utility)
		}
		a.debugf("source=%s passes=%d converged=%t action=%s", plan.Source, report.Passes, report.Converged, choice.Direction)
		a.logger.Print("\n" + mdp.Render(values, grid.Bounds(), true))
	}

	return Decision{
		Direction: choice.Direction,
		Source:    plan.Source,
		Passes:    report.Passes,
		Converged: report.Converged,
		Options:   choice.Considered,
		Round:     s.Round(),
		Step:      s.step(),
	}, nil
}

func (a *Agent) debugf(format string, args ...any) {
	a.logger.Printf("%s[DEBUG]%s "+format, append([]any{config.LogDebugColor, config.LogColorReset}, args...)...)
}
