package catalog

// ArtifactKind is the concrete type behind a knowledge artifact.
type ArtifactKind string

const (
	ArtifactAlgorithm      ArtifactKind = "algorithm"
	ArtifactImplementation ArtifactKind = "implementation"
	ArtifactPublication    ArtifactKind = "publication"
)

// ComputationModel says whether an algorithm runs on classical or quantum hardware.
type ComputationModel string

const (
	ComputationClassic ComputationModel = "CLASSIC"
	ComputationQuantum ComputationModel = "QUANTUM"
	ComputationHybrid  ComputationModel = "HYBRID"
)

// Valid reports whether m is a known model.
func (m ComputationModel) Valid() bool {
	switch m {
	case ComputationClassic, ComputationQuantum, ComputationHybrid:
		return true
	}
	return false
}

// IsQuantum is true for models that carry the quantum-only algorithm fields.
func (m ComputationModel) IsQuantum() bool {
	return m == ComputationQuantum || m == ComputationHybrid
}

// QuantumComputationModel is the quantum programming paradigm.
type QuantumComputationModel string

const (
	GateBased        QuantumComputationModel = "GATE_BASED"
	MeasurementBased QuantumComputationModel = "MEASUREMENT_BASED"
	QuantumAnnealing QuantumComputationModel = "QUANTUM_ANNEALING"
)

// Valid reports whether m is empty or a known paradigm.
func (m QuantumComputationModel) Valid() bool {
	switch m {
	case "", GateBased, MeasurementBased, QuantumAnnealing:
		return true
	}
	return false
}

// DataType constrains compute resource property values.
type DataType string

const (
	DataTypeInteger DataType = "INTEGER"
	DataTypeFloat   DataType = "FLOAT"
	DataTypeString  DataType = "STRING"
	DataTypeBoolean DataType = "BOOLEAN"
)

// Valid reports whether t is a known datatype.
func (t DataType) Valid() bool {
	switch t {
	case DataTypeInteger, DataTypeFloat, DataTypeString, DataTypeBoolean:
		return true
	}
	return false
}

// TopicStatus is the state of a discussion topic.
type TopicStatus string

const (
	TopicOpen   TopicStatus = "OPEN"
	TopicClosed TopicStatus = "CLOSED"
)

// Valid reports whether s is a known status.
func (s TopicStatus) Valid() bool {
	return s == TopicOpen || s == TopicClosed
}
