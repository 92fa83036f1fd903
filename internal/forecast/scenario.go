package forecast

import (
	"fmt"
	"sort"

	"github.com/copperfin/runway/internal/model"
)

// Resolver maps scenario ids to multiplier pairs. The table is injected
// at construction so new scenarios can be added from configuration
// without touching engine logic.
type Resolver struct {
	scenarios map[string]model.Scenario
}

// DefaultScenarios returns the built-in multiplier table.
func DefaultScenarios() []model.Scenario {
	return []model.Scenario{
		{ID: "base", RevenueMultiplier: 1.00, ExpenseMultiplier: 1.00},
		{ID: "best", RevenueMultiplier: 1.15, ExpenseMultiplier: 0.90},
		{ID: "worst", RevenueMultiplier: 0.85, ExpenseMultiplier: 1.10},
	}
}

// NewResolver builds a resolver from the given scenario table.
// Multipliers must be strictly positive.
func NewResolver(scenarios []model.Scenario) (*Resolver, error) {
	table := make(map[string]model.Scenario, len(scenarios))
	for _, s := range scenarios {
		if s.ID == "" {
			return nil, fmt.Errorf("scenario with empty id")
		}
		if s.RevenueMultiplier <= 0 || s.ExpenseMultiplier <= 0 {
			return nil, fmt.Errorf("scenario %q: multipliers must be strictly positive", s.ID)
		}
		table[s.ID] = s
	}
	return &Resolver{scenarios: table}, nil
}

// Resolve returns the scenario for id, or an UnknownScenarioError. This
// is the one hard failure in the pipeline: forecasting cannot proceed
// with an undefined multiplier pair.
func (r *Resolver) Resolve(id string) (model.Scenario, error) {
	s, ok := r.scenarios[id]
	if !ok {
		return model.Scenario{}, &UnknownScenarioError{ScenarioID: id, Known: r.IDs()}
	}
	return s, nil
}

// IDs returns the known scenario ids in sorted order.
func (r *Resolver) IDs() []string {
	ids := make([]string, 0, len(r.scenarios))
	for id := range r.scenarios {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
