// Package catalog holds the persistent models shared by every catalog domain,
// the many-to-many link tables between them and the existence guards the
// services use before touching an association.
package catalog

import (
	"time"

	"github.com/lib/pq"
	"github.com/uptrace/bun"
)

// KnowledgeArtifact is the common identity of algorithms, implementations and
// publications. Discussion topics hang off artifacts.
type KnowledgeArtifact struct {
	bun.BaseModel `bun:"table:atlas.knowledge_artifacts,alias:ka"`

	ID        string       `bun:"id,pk,type:uuid,default:gen_random_uuid()" json:"id"`
	Kind      ArtifactKind `bun:"kind,notnull" json:"kind"`
	CreatedAt time.Time    `bun:"created_at,notnull,default:now()" json:"createdAt"`
	UpdatedAt time.Time    `bun:"updated_at,notnull,default:now()" json:"updatedAt"`
}

// Algorithm is a classical, quantum or hybrid algorithm.
type Algorithm struct {
	bun.BaseModel `bun:"table:atlas.algorithms,alias:alg"`

	ID               string           `bun:"id,pk,type:uuid" json:"id"`
	Name             string           `bun:"name,notnull" json:"name"`
	Acronym          string           `bun:"acronym,nullzero" json:"acronym,omitempty"`
	Intent           string           `bun:"intent,nullzero" json:"intent,omitempty"`
	Problem          string           `bun:"problem,nullzero" json:"problem,omitempty"`
	InputFormat      string           `bun:"input_format,nullzero" json:"inputFormat,omitempty"`
	AlgoParameter    string           `bun:"algo_parameter,nullzero" json:"algoParameter,omitempty"`
	OutputFormat     string           `bun:"output_format,nullzero" json:"outputFormat,omitempty"`
	Solution         string           `bun:"solution,nullzero" json:"solution,omitempty"`
	Assumptions      string           `bun:"assumptions,nullzero" json:"assumptions,omitempty"`
	ComputationModel ComputationModel `bun:"computation_model,notnull" json:"computationModel"`

	// Only meaningful for QUANTUM and HYBRID algorithms
	NisqReady               *bool                   `bun:"nisq_ready" json:"nisqReady,omitempty"`
	QuantumComputationModel QuantumComputationModel `bun:"quantum_computation_model,nullzero" json:"quantumComputationModel,omitempty"`
	SpeedUp                 string                  `bun:"speed_up,nullzero" json:"speedUp,omitempty"`

	CreatedAt time.Time `bun:"created_at,notnull,default:now()" json:"createdAt"`
	UpdatedAt time.Time `bun:"updated_at,notnull,default:now()" json:"updatedAt"`
}

// Implementation is a concrete implementation of an algorithm.
type Implementation struct {
	bun.BaseModel `bun:"table:atlas.implementations,alias:impl"`

	ID                     string    `bun:"id,pk,type:uuid" json:"id"`
	ImplementedAlgorithmID string    `bun:"implemented_algorithm_id,notnull,type:uuid" json:"implementedAlgorithmId"`
	Name                   string    `bun:"name,notnull" json:"name"`
	Description            string    `bun:"description,nullzero" json:"description,omitempty"`
	Contributors           string    `bun:"contributors,nullzero" json:"contributors,omitempty"`
	Assumptions            string    `bun:"assumptions,nullzero" json:"assumptions,omitempty"`
	Parameter              string    `bun:"parameter,nullzero" json:"parameter,omitempty"`
	InputFormat            string    `bun:"input_format,nullzero" json:"inputFormat,omitempty"`
	OutputFormat           string    `bun:"output_format,nullzero" json:"outputFormat,omitempty"`
	Dependencies           string    `bun:"dependencies,nullzero" json:"dependencies,omitempty"`
	Version                string    `bun:"version,nullzero" json:"version,omitempty"`
	License                string    `bun:"license,nullzero" json:"license,omitempty"`
	Technology             string    `bun:"technology,nullzero" json:"technology,omitempty"`
	ProblemStatement       string    `bun:"problem_statement,nullzero" json:"problemStatement,omitempty"`
	SdkID                  *string   `bun:"sdk_id,type:uuid" json:"sdkId,omitempty"`
	ProgrammingLanguage    string    `bun:"programming_language,nullzero" json:"programmingLanguage,omitempty"`
	SelectionRule          string    `bun:"selection_rule,nullzero" json:"selectionRule,omitempty"`
	CreatedAt              time.Time `bun:"created_at,notnull,default:now()" json:"createdAt"`
	UpdatedAt              time.Time `bun:"updated_at,notnull,default:now()" json:"updatedAt"`
}

// Publication is a paper or article referenced by algorithms and implementations.
type Publication struct {
	bun.BaseModel `bun:"table:atlas.publications,alias:pub"`

	ID        string         `bun:"id,pk,type:uuid" json:"id"`
	Title     string         `bun:"title,notnull" json:"title"`
	URL       string         `bun:"url,nullzero" json:"url,omitempty"`
	DOI       string         `bun:"doi,nullzero" json:"doi,omitempty"`
	Authors   pq.StringArray `bun:"authors,type:text[],notnull" json:"authors"`
	CreatedAt time.Time      `bun:"created_at,notnull,default:now()" json:"createdAt"`
	UpdatedAt time.Time      `bun:"updated_at,notnull,default:now()" json:"updatedAt"`
}

// ProblemType classifies the problem an algorithm solves. Problem types form a tree.
type ProblemType struct {
	bun.BaseModel `bun:"table:atlas.problem_types,alias:pt"`

	ID                  string    `bun:"id,pk,type:uuid,default:gen_random_uuid()" json:"id"`
	Name                string    `bun:"name,notnull" json:"name"`
	ParentProblemTypeID *string   `bun:"parent_problem_type_id,type:uuid" json:"parentProblemTypeId,omitempty"`
	CreatedAt           time.Time `bun:"created_at,notnull,default:now()" json:"createdAt"`
	UpdatedAt           time.Time `bun:"updated_at,notnull,default:now()" json:"updatedAt"`
}

// ApplicationArea is a field an algorithm is applied in.
type ApplicationArea struct {
	bun.BaseModel `bun:"table:atlas.application_areas,alias:aa"`

	ID        string    `bun:"id,pk,type:uuid,default:gen_random_uuid()" json:"id"`
	Name      string    `bun:"name,notnull" json:"name"`
	CreatedAt time.Time `bun:"created_at,notnull,default:now()" json:"createdAt"`
	UpdatedAt time.Time `bun:"updated_at,notnull,default:now()" json:"updatedAt"`
}

// Tag is a free-form label keyed by its value.
type Tag struct {
	bun.BaseModel `bun:"table:atlas.tags,alias:tag"`

	Value     string    `bun:"value,pk" json:"value"`
	Category  string    `bun:"category,nullzero" json:"category,omitempty"`
	CreatedAt time.Time `bun:"created_at,notnull,default:now()" json:"createdAt"`
	UpdatedAt time.Time `bun:"updated_at,notnull,default:now()" json:"updatedAt"`
}

// SoftwarePlatform is an SDK or framework implementations run on.
type SoftwarePlatform struct {
	bun.BaseModel `bun:"table:atlas.software_platforms,alias:sp"`

	ID        string    `bun:"id,pk,type:uuid,default:gen_random_uuid()" json:"id"`
	Name      string    `bun:"name,notnull" json:"name"`
	Link      string    `bun:"link,nullzero" json:"link,omitempty"`
	Licence   string    `bun:"licence,nullzero" json:"licence,omitempty"`
	Version   string    `bun:"version,nullzero" json:"version,omitempty"`
	CreatedAt time.Time `bun:"created_at,notnull,default:now()" json:"createdAt"`
	UpdatedAt time.Time `bun:"updated_at,notnull,default:now()" json:"updatedAt"`
}

// Sdk is a quantum programming kit. It names the compute resources it can
// target and implementations may declare the one they are written against.
type Sdk struct {
	bun.BaseModel `bun:"table:atlas.sdks,alias:sdk"`

	ID        string    `bun:"id,pk,type:uuid,default:gen_random_uuid()" json:"id"`
	Name      string    `bun:"name,notnull" json:"name"`
	CreatedAt time.Time `bun:"created_at,notnull,default:now()" json:"createdAt"`
	UpdatedAt time.Time `bun:"updated_at,notnull,default:now()" json:"updatedAt"`
}

// CloudService offers access to compute resources.
type CloudService struct {
	bun.BaseModel `bun:"table:atlas.cloud_services,alias:cs"`

	ID          string    `bun:"id,pk,type:uuid,default:gen_random_uuid()" json:"id"`
	Name        string    `bun:"name,notnull" json:"name"`
	Provider    string    `bun:"provider,nullzero" json:"provider,omitempty"`
	URL         string    `bun:"url,nullzero" json:"url,omitempty"`
	Description string    `bun:"description,nullzero" json:"description,omitempty"`
	CostModel   string    `bun:"cost_model,nullzero" json:"costModel,omitempty"`
	CreatedAt   time.Time `bun:"created_at,notnull,default:now()" json:"createdAt"`
	UpdatedAt   time.Time `bun:"updated_at,notnull,default:now()" json:"updatedAt"`
}

// ComputeResource is a quantum or classical device or simulator.
type ComputeResource struct {
	bun.BaseModel `bun:"table:atlas.compute_resources,alias:cr"`

	ID                      string                  `bun:"id,pk,type:uuid,default:gen_random_uuid()" json:"id"`
	Name                    string                  `bun:"name,notnull" json:"name"`
	Vendor                  string                  `bun:"vendor,nullzero" json:"vendor,omitempty"`
	Technology              string                  `bun:"technology,nullzero" json:"technology,omitempty"`
	QuantumComputationModel QuantumComputationModel `bun:"quantum_computation_model,nullzero" json:"quantumComputationModel,omitempty"`
	NumberOfQubits          *int                    `bun:"number_of_qubits" json:"numberOfQubits,omitempty"`
	CreatedAt               time.Time               `bun:"created_at,notnull,default:now()" json:"createdAt"`
	UpdatedAt               time.Time               `bun:"updated_at,notnull,default:now()" json:"updatedAt"`
}

// ComputeResourcePropertyType names a property and fixes the datatype of its values.
type ComputeResourcePropertyType struct {
	bun.BaseModel `bun:"table:atlas.compute_resource_property_types,alias:crpt"`

	ID          string    `bun:"id,pk,type:uuid,default:gen_random_uuid()" json:"id"`
	Name        string    `bun:"name,notnull" json:"name"`
	Datatype    DataType  `bun:"datatype,notnull" json:"datatype"`
	Description string    `bun:"description,nullzero" json:"description,omitempty"`
	CreatedAt   time.Time `bun:"created_at,notnull,default:now()" json:"createdAt"`
	UpdatedAt   time.Time `bun:"updated_at,notnull,default:now()" json:"updatedAt"`
}

// ComputeResourceProperty is a typed value attached to at most one of an
// algorithm, an implementation or a compute resource.
type ComputeResourceProperty struct {
	bun.BaseModel `bun:"table:atlas.compute_resource_properties,alias:crp"`

	ID                string    `bun:"id,pk,type:uuid,default:gen_random_uuid()" json:"id"`
	TypeID            string    `bun:"type_id,notnull,type:uuid" json:"-"`
	Value             string    `bun:"value,nullzero" json:"value,omitempty"`
	AlgorithmID       *string   `bun:"algorithm_id,type:uuid" json:"algorithmId,omitempty"`
	ImplementationID  *string   `bun:"implementation_id,type:uuid" json:"implementationId,omitempty"`
	ComputeResourceID *string   `bun:"compute_resource_id,type:uuid" json:"computeResourceId,omitempty"`
	CreatedAt         time.Time `bun:"created_at,notnull,default:now()" json:"createdAt"`
	UpdatedAt         time.Time `bun:"updated_at,notnull,default:now()" json:"updatedAt"`

	Type *ComputeResourcePropertyType `bun:"rel:belongs-to,join:type_id=id" json:"type,omitempty"`
}

// AlgorithmRelationType names a directed relation between algorithms.
type AlgorithmRelationType struct {
	bun.BaseModel `bun:"table:atlas.algorithm_relation_types,alias:art"`

	ID              string    `bun:"id,pk,type:uuid,default:gen_random_uuid()" json:"id"`
	Name            string    `bun:"name,notnull,unique" json:"name"`
	InverseTypeName string    `bun:"inverse_type_name,nullzero" json:"inverseTypeName,omitempty"`
	CreatedAt       time.Time `bun:"created_at,notnull,default:now()" json:"createdAt"`
	UpdatedAt       time.Time `bun:"updated_at,notnull,default:now()" json:"updatedAt"`
}

// AlgorithmRelation links a source algorithm to a target algorithm.
type AlgorithmRelation struct {
	bun.BaseModel `bun:"table:atlas.algorithm_relations,alias:ar"`

	ID                      string    `bun:"id,pk,type:uuid,default:gen_random_uuid()" json:"id"`
	SourceAlgorithmID       string    `bun:"source_algorithm_id,notnull,type:uuid" json:"sourceAlgorithmId"`
	TargetAlgorithmID       string    `bun:"target_algorithm_id,notnull,type:uuid" json:"targetAlgorithmId"`
	AlgorithmRelationTypeID string    `bun:"algorithm_relation_type_id,notnull,type:uuid" json:"-"`
	Description             string    `bun:"description,nullzero" json:"description,omitempty"`
	CreatedAt               time.Time `bun:"created_at,notnull,default:now()" json:"createdAt"`
	UpdatedAt               time.Time `bun:"updated_at,notnull,default:now()" json:"updatedAt"`

	AlgorithmRelationType *AlgorithmRelationType `bun:"rel:belongs-to,join:algorithm_relation_type_id=id" json:"algoRelationType,omitempty"`
}

// PatternRelationType names how an algorithm relates to a pattern.
type PatternRelationType struct {
	bun.BaseModel `bun:"table:atlas.pattern_relation_types,alias:prt"`

	ID        string    `bun:"id,pk,type:uuid,default:gen_random_uuid()" json:"id"`
	Name      string    `bun:"name,notnull,unique" json:"name"`
	CreatedAt time.Time `bun:"created_at,notnull,default:now()" json:"createdAt"`
	UpdatedAt time.Time `bun:"updated_at,notnull,default:now()" json:"updatedAt"`
}

// PatternRelation links an algorithm to an external pattern URI.
type PatternRelation struct {
	bun.BaseModel `bun:"table:atlas.pattern_relations,alias:pr"`

	ID                    string    `bun:"id,pk,type:uuid,default:gen_random_uuid()" json:"id"`
	AlgorithmID           string    `bun:"algorithm_id,notnull,type:uuid" json:"algorithmId"`
	Pattern               string    `bun:"pattern,notnull" json:"pattern"`
	PatternRelationTypeID string    `bun:"pattern_relation_type_id,notnull,type:uuid" json:"-"`
	Description           string    `bun:"description,nullzero" json:"description,omitempty"`
	CreatedAt             time.Time `bun:"created_at,notnull,default:now()" json:"createdAt"`
	UpdatedAt             time.Time `bun:"updated_at,notnull,default:now()" json:"updatedAt"`

	PatternRelationType *PatternRelationType `bun:"rel:belongs-to,join:pattern_relation_type_id=id" json:"patternRelationType,omitempty"`
}

// DiscussionTopic is a thread attached to a knowledge artifact.
type DiscussionTopic struct {
	bun.BaseModel `bun:"table:atlas.discussion_topics,alias:dt"`

	ID                  string      `bun:"id,pk,type:uuid,default:gen_random_uuid()" json:"id"`
	KnowledgeArtifactID string      `bun:"knowledge_artifact_id,notnull,type:uuid" json:"knowledgeArtifactId"`
	Title               string      `bun:"title,notnull" json:"title"`
	Description         string      `bun:"description,nullzero" json:"description,omitempty"`
	Status              TopicStatus `bun:"status,notnull" json:"status"`
	Date                time.Time   `bun:"date,notnull" json:"date"`
	CreatedAt           time.Time   `bun:"created_at,notnull,default:now()" json:"createdAt"`
	UpdatedAt           time.Time   `bun:"updated_at,notnull,default:now()" json:"updatedAt"`
}

// DiscussionComment is a message in a topic, optionally replying to another comment.
type DiscussionComment struct {
	bun.BaseModel `bun:"table:atlas.discussion_comments,alias:dc"`

	ID                string    `bun:"id,pk,type:uuid,default:gen_random_uuid()" json:"id"`
	DiscussionTopicID string    `bun:"discussion_topic_id,notnull,type:uuid" json:"discussionTopicId"`
	ReplyToID         *string   `bun:"reply_to_id,type:uuid" json:"replyTo,omitempty"`
	Text              string    `bun:"text,notnull" json:"text"`
	Date              time.Time `bun:"date,notnull" json:"date"`
	CreatedAt         time.Time `bun:"created_at,notnull,default:now()" json:"createdAt"`
	UpdatedAt         time.Time `bun:"updated_at,notnull,default:now()" json:"updatedAt"`
}

// ImplementationFile is a blob stored for an implementation.
type ImplementationFile struct {
	bun.BaseModel `bun:"table:atlas.implementation_files,alias:f"`

	ID               string    `bun:"id,pk,type:uuid,default:gen_random_uuid()" json:"id"`
	ImplementationID string    `bun:"implementation_id,notnull,type:uuid" json:"implementationId"`
	Name             string    `bun:"name,notnull" json:"name"`
	MimeType         string    `bun:"mime_type,nullzero" json:"mimeType,omitempty"`
	FileURL          string    `bun:"file_url,notnull,unique" json:"fileURL"`
	Size             int64     `bun:"size,notnull" json:"size"`
	CreatedAt        time.Time `bun:"created_at,notnull,default:now()" json:"createdAt"`
	UpdatedAt        time.Time `bun:"updated_at,notnull,default:now()" json:"updatedAt"`
}
