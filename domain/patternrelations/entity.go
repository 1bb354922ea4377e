package patternrelations

// PatternRelationTypeRequest is the body for creating or updating a pattern relation type
type PatternRelationTypeRequest struct {
	Name string `json:"name"`
}

// TypeRef references a pattern relation type by id, or by name when no id is given.
type TypeRef struct {
	ID   *string `json:"id,omitempty"`
	Name string  `json:"name,omitempty"`
}

// PatternRelationRequest is the body for creating or updating a pattern relation
type PatternRelationRequest struct {
	AlgorithmID         string   `json:"algorithmId"`
	Pattern             string   `json:"pattern"`
	PatternRelationType *TypeRef `json:"patternRelationType"`
	Description         string   `json:"description,omitempty"`
}
