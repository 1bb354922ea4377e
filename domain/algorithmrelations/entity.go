package algorithmrelations

// RelationTypeRequest is the body for creating or updating an algorithm relation type
type RelationTypeRequest struct {
	Name            string `json:"name"`
	InverseTypeName string `json:"inverseTypeName,omitempty"`
}

// RelationTypeRef names the type of a relation, either by id or by name.
// An unknown name creates the type.
type RelationTypeRef struct {
	ID              *string `json:"id,omitempty"`
	Name            string  `json:"name,omitempty"`
	InverseTypeName string  `json:"inverseTypeName,omitempty"`
}

// RelationRequest is the body for creating or updating an algorithm relation
type RelationRequest struct {
	SourceAlgorithmID string           `json:"sourceAlgorithmId"`
	TargetAlgorithmID string           `json:"targetAlgorithmId"`
	AlgoRelationType  *RelationTypeRef `json:"algoRelationType"`
	Description       string           `json:"description,omitempty"`
}
