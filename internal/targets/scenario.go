package targets

import "github.com/oortis/tempscore/internal/contracts"

// ApplyScenario rewrites the selected targets according to the scenario.
// A nil scenario returns the dataset unchanged. Scenario adjustment runs
// after validation so it can never change which targets were selected.
func ApplyScenario(scenario *contracts.Scenario, ds contracts.Dataset) contracts.Dataset {
	if scenario == nil {
		return ds
	}

	out := ds.Clone()
	for i := range out.Companies {
		for j, t := range out.Companies[i].Targets {
			out.Companies[i].Targets[j] = scenario.Adjust(t)
		}
	}
	return out
}
