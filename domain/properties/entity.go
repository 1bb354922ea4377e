package properties

import "github.com/emergent-company/atlas/domain/catalog"

// PropertyTypeRequest is the body for creating or updating a property type
type PropertyTypeRequest struct {
	Name        string           `json:"name"`
	Datatype    catalog.DataType `json:"datatype"`
	Description string           `json:"description,omitempty"`
}

// TypeRef points at an existing property type by ID, or describes a new one
// to be created along with the property.
type TypeRef struct {
	ID          *string          `json:"id,omitempty"`
	Name        string           `json:"name,omitempty"`
	Datatype    catalog.DataType `json:"datatype,omitempty"`
	Description string           `json:"description,omitempty"`
}

// PropertyRequest is the body for creating or updating a compute resource property
type PropertyRequest struct {
	ID    *string  `json:"id,omitempty"`
	Value string   `json:"value"`
	Type  *TypeRef `json:"type"`
}

// Owner identifies what a property is attached to.
type Owner struct {
	Column string
	Label  string
	ID     string
}

// Owners of compute resource properties.
func AlgorithmOwner(id string) Owner {
	return Owner{Column: "algorithm_id", Label: "Algorithm", ID: id}
}

func ImplementationOwner(id string) Owner {
	return Owner{Column: "implementation_id", Label: "Implementation", ID: id}
}

func ComputeResourceOwner(id string) Owner {
	return Owner{Column: "compute_resource_id", Label: "ComputeResource", ID: id}
}

// owns reports whether p is attached to o.
func (o Owner) owns(p *catalog.ComputeResourceProperty) bool {
	var got *string
	switch o.Column {
	case "algorithm_id":
		got = p.AlgorithmID
	case "implementation_id":
		got = p.ImplementationID
	case "compute_resource_id":
		got = p.ComputeResourceID
	}
	return got != nil && *got == o.ID
}

// attach points p at o, detaching it from any other owner.
func (o Owner) attach(p *catalog.ComputeResourceProperty) {
	id := o.ID
	p.AlgorithmID, p.ImplementationID, p.ComputeResourceID = nil, nil, nil
	switch o.Column {
	case "algorithm_id":
		p.AlgorithmID = &id
	case "implementation_id":
		p.ImplementationID = &id
	case "compute_resource_id":
		p.ComputeResourceID = &id
	}
}
