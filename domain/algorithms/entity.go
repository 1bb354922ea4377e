package algorithms

import (
	"strings"

	"github.com/emergent-company/atlas/domain/catalog"
	"github.com/emergent-company/atlas/pkg/apperror"
)

// AlgorithmRequest is the body for creating or updating an algorithm.
// The quantum fields are ignored for CLASSIC algorithms.
type AlgorithmRequest struct {
	Name             string                   `json:"name"`
	Acronym          string                   `json:"acronym,omitempty"`
	Intent           string                   `json:"intent,omitempty"`
	Problem          string                   `json:"problem,omitempty"`
	InputFormat      string                   `json:"inputFormat,omitempty"`
	AlgoParameter    string                   `json:"algoParameter,omitempty"`
	OutputFormat     string                   `json:"outputFormat,omitempty"`
	Solution         string                   `json:"solution,omitempty"`
	Assumptions      string                   `json:"assumptions,omitempty"`
	ComputationModel catalog.ComputationModel `json:"computationModel"`

	NisqReady               *bool                           `json:"nisqReady,omitempty"`
	QuantumComputationModel catalog.QuantumComputationModel `json:"quantumComputationModel,omitempty"`
	SpeedUp                 string                          `json:"speedUp,omitempty"`
}

func (req AlgorithmRequest) apply(a *catalog.Algorithm) error {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return apperror.NewValidation("name", "name is required")
	}
	if !req.ComputationModel.Valid() {
		return apperror.NewValidation("computationModel",
			"computationModel must be one of CLASSIC, QUANTUM, HYBRID")
	}

	a.Name = name
	a.Acronym = strings.TrimSpace(req.Acronym)
	a.Intent = req.Intent
	a.Problem = req.Problem
	a.InputFormat = req.InputFormat
	a.AlgoParameter = req.AlgoParameter
	a.OutputFormat = req.OutputFormat
	a.Solution = req.Solution
	a.Assumptions = req.Assumptions
	a.ComputationModel = req.ComputationModel

	if !req.ComputationModel.IsQuantum() {
		a.NisqReady = nil
		a.QuantumComputationModel = ""
		a.SpeedUp = ""
		return nil
	}
	if !req.QuantumComputationModel.Valid() {
		return apperror.NewValidation("quantumComputationModel",
			"quantumComputationModel must be one of GATE_BASED, MEASUREMENT_BASED, QUANTUM_ANNEALING")
	}
	a.NisqReady = req.NisqReady
	a.QuantumComputationModel = req.QuantumComputationModel
	a.SpeedUp = req.SpeedUp
	return nil
}
