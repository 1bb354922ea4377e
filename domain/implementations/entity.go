package implementations

import (
	"strings"

	"github.com/emergent-company/atlas/domain/catalog"
	"github.com/emergent-company/atlas/pkg/apperror"
)

// ImplementationRequest is the body for creating or updating an implementation.
// The implemented algorithm comes from the path.
type ImplementationRequest struct {
	Name             string `json:"name"`
	Description      string `json:"description,omitempty"`
	Contributors     string `json:"contributors,omitempty"`
	Assumptions      string `json:"assumptions,omitempty"`
	Parameter        string `json:"parameter,omitempty"`
	InputFormat      string `json:"inputFormat,omitempty"`
	OutputFormat     string `json:"outputFormat,omitempty"`
	Dependencies     string `json:"dependencies,omitempty"`
	Version          string `json:"version,omitempty"`
	License          string `json:"license,omitempty"`
	Technology       string `json:"technology,omitempty"`
	ProblemStatement string `json:"problemStatement,omitempty"`

	// SdkID names the SDK the implementation is written against.
	SdkID               *string `json:"sdkId,omitempty"`
	ProgrammingLanguage string  `json:"programmingLanguage,omitempty"`
	SelectionRule       string  `json:"selectionRule,omitempty"`
}

func (req ImplementationRequest) apply(impl *catalog.Implementation) error {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return apperror.NewValidation("name", "name is required")
	}
	if req.SdkID != nil {
		if err := catalog.ValidateID("sdkId", *req.SdkID); err != nil {
			return err
		}
	}
	impl.Name = name
	impl.Description = req.Description
	impl.Contributors = req.Contributors
	impl.Assumptions = req.Assumptions
	impl.Parameter = req.Parameter
	impl.InputFormat = req.InputFormat
	impl.OutputFormat = req.OutputFormat
	impl.Dependencies = req.Dependencies
	impl.Version = strings.TrimSpace(req.Version)
	impl.License = strings.TrimSpace(req.License)
	impl.Technology = strings.TrimSpace(req.Technology)
	impl.ProblemStatement = req.ProblemStatement
	impl.SdkID = req.SdkID
	impl.ProgrammingLanguage = strings.TrimSpace(req.ProgrammingLanguage)
	impl.SelectionRule = req.SelectionRule
	return nil
}
