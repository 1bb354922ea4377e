package catalog

import (
	"strings"

	"github.com/emergent-company/atlas/pkg/paging"
)

// Sort fields accepted by the list endpoints, by entity.
var (
	timestamps = paging.Sortable{"createdAt": "created_at", "updatedAt": "updated_at"}

	AlgorithmSort        = with(timestamps, "name", "acronym", "computationModel:computation_model")
	ImplementationSort   = with(timestamps, "name", "version", "technology")
	PublicationSort      = with(timestamps, "title", "doi")
	ProblemTypeSort      = with(timestamps, "name")
	ApplicationAreaSort  = with(timestamps, "name")
	TagSort              = with(timestamps, "value", "category")
	SoftwarePlatformSort = with(timestamps, "name", "version", "licence")
	CloudServiceSort     = with(timestamps, "name", "provider")
	ComputeResourceSort  = with(timestamps, "name", "vendor", "technology", "numberOfQubits:number_of_qubits")
	SdkSort              = with(timestamps, "name")
	PropertyTypeSort     = with(timestamps, "name", "datatype")
	PropertySort         = with(timestamps, "value")
	RelationTypeSort     = with(timestamps, "name")
	AlgorithmRelSort     = with(timestamps, "description")
	PatternRelationSort  = with(timestamps, "pattern")
	TopicSort            = with(timestamps, "title", "status", "date")
	CommentSort          = with(timestamps, "date")
	FileSort             = with(timestamps, "name", "size")
)

// with extends base with fields. A field is either a column name or "json:column".
func with(base paging.Sortable, fields ...string) paging.Sortable {
	out := make(paging.Sortable, len(base)+len(fields))
	for k, v := range base {
		out[k] = v
	}
	for _, f := range fields {
		key, col, ok := strings.Cut(f, ":")
		if !ok {
			col = key
		}
		out[key] = col
	}
	return out
}
