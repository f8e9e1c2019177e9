package dashboard_web

import (
	"tarediiran-industries.com/rail-dss/internal/dashboard"
)

const simulationPrompt = "Build a scenario and click 'Run Simulation' to see the predicted impact here."

func BuildScenarioVM(scenario dashboard.Scenario) ScenarioVM {
	types := make([]OptionVM, 0, len(dashboard.ScenarioTypes()))
	for _, kind := range dashboard.ScenarioTypes() {
		types = append(types, OptionVM{Value: string(kind), Label: kind.Label(), Selected: kind == scenario.Type})
	}

	return ScenarioVM{
		Type:            string(scenario.Type),
		Types:           types,
		ShowDelay:       scenario.Type == dashboard.ScenarioTrainDelay,
		ShowUnscheduled: scenario.Type == dashboard.ScenarioUnscheduledTrain,
		ShowMaintenance: scenario.Type == dashboard.ScenarioMaintenanceBlock,

		TrainID:      scenario.TrainID,
		DelayMinutes: scenario.DelayMinutes,
		DelayMin:     dashboard.DelayMinutesMin,
		DelayMax:     dashboard.DelayMinutesMax,

		TrainTypes:     buildOptions(dashboard.ScenarioTrainTypes, scenario.TrainType),
		DepartureTime:  scenario.DepartureTime,
		StartingPoints: buildOptions(dashboard.ScenarioStartingPoints, scenario.StartingPoint),

		TrackSections: buildOptions(dashboard.ScenarioTrackSections, scenario.TrackSection),
		BlockHours:    scenario.BlockHours,
		BlockMin:      dashboard.BlockHoursMin,
		BlockMax:      dashboard.BlockHoursMax,
	}
}

// BuildSimulationPageVM shows the static impact only once this session has run a simulation.
func BuildSimulationPageVM(options Options, scenario dashboard.Scenario, simulationRun bool) SimulationPageVM {
	vm := SimulationPageVM{
		Layout:        buildLayout(`"What-If" Simulation Studio`, pageSimulation, nil),
		Scenario:      BuildScenarioVM(scenario),
		SimulationRun: simulationRun,
	}

	if !simulationRun {
		vm.Prompt = simulationPrompt
		return vm
	}

	impact := dashboard.PredictedImpact()
	vm.Impact = buildMetricVMs(impact.Metrics)
	vm.Warning = impact.Warning
	vm.MapURL = options.SimulationMapURL
	vm.MapCaption = "Visual forecast of train movements based on the selected scenario."
	return vm
}
