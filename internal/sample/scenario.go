package sample

import "fmt"

// Scenario defines one named emotional state by its three baseline levels.
// All derived metrics are computed from these plus bounded noise.
type Scenario struct {
	Name       string
	Stress     float64
	Engagement float64
	Excitement float64
}

// The four demo scenarios. Baselines are unit values; the generator
// perturbs them per sample.
var scenarios = []Scenario{
	{Name: "neutral", Stress: 0.30, Engagement: 0.50, Excitement: 0.40},
	{Name: "stressed", Stress: 0.80, Engagement: 0.60, Excitement: 0.70},
	{Name: "relaxed", Stress: 0.10, Engagement: 0.40, Excitement: 0.20},
	{Name: "excited", Stress: 0.40, Engagement: 0.85, Excitement: 0.90},
}

// Scenarios returns the scenario table in a fixed order.
func Scenarios() []Scenario {
	out := make([]Scenario, len(scenarios))
	copy(out, scenarios)
	return out
}

// ScenarioByName looks up a scenario by its user-facing name.
func ScenarioByName(name string) (Scenario, error) {
	for _, sc := range scenarios {
		if sc.Name == name {
			return sc, nil
		}
	}
	return Scenario{}, fmt.Errorf("unknown scenario %q (expected neutral, stressed, relaxed, or excited)", name)
}
