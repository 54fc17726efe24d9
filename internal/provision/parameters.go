package provision

import (
	"context"
	"fmt"
	"strings"

	"github.com/temirov/repoenv/internal/githubcli"
)

const (
	projectNameMinimumLengthConstant       = 4
	projectNameMaximumLengthConstant       = 17
	organizationFieldNameConstant          = "organization"
	repositoryFieldNameConstant            = "repository"
	projectNameFieldNameConstant           = "project_name"
	projectNameLengthErrorTemplateConstant = "project name %q must be between %d and %d characters"
	repositoryIdentifierTemplateConstant   = "%s/%s"
	missingFieldsErrorTemplateConstant     = "required parameters could not be resolved: %s"
	missingFieldsListSeparatorConstant     = ", "
)

// ParameterInputs carries the explicitly supplied provisioning parameters.
type ParameterInputs struct {
	Organization string
	Repository   string
	ProjectName  string
}

// ProjectParameters holds the fully resolved provisioning parameters.
type ProjectParameters struct {
	OrganizationName string
	RepositoryName   string
	ProjectName      string
}

// RepositoryIdentifier returns the owner/name slug for the resolved repository.
func (parameters ProjectParameters) RepositoryIdentifier() string {
	return fmt.Sprintf(repositoryIdentifierTemplateConstant, parameters.OrganizationName, parameters.RepositoryName)
}

// ProjectNameLengthError reports a project name outside the accepted length range.
type ProjectNameLengthError struct {
	ProjectName string
}

// Error describes the length violation.
func (lengthError ProjectNameLengthError) Error() string {
	return fmt.Sprintf(projectNameLengthErrorTemplateConstant, lengthError.ProjectName, projectNameMinimumLengthConstant, projectNameMaximumLengthConstant)
}

// MissingParametersError reports required fields that resolution could not fill.
type MissingParametersError struct {
	FieldNames []string
}

// Error lists the unresolved fields.
func (missingError MissingParametersError) Error() string {
	return fmt.Sprintf(missingFieldsErrorTemplateConstant, strings.Join(missingError.FieldNames, missingFieldsListSeparatorConstant))
}

// RepositoryContextResolver supplies the owner and name of the ambient repository.
type RepositoryContextResolver interface {
	ResolveContext(executionContext context.Context) (githubcli.RepositoryContext, error)
}

// ValidateProjectName checks the resolved project name against the accepted length range.
func ValidateProjectName(projectName string) error {
	projectNameLength := len(projectName)
	if projectNameLength < projectNameMinimumLengthConstant || projectNameLength > projectNameMaximumLengthConstant {
		return ProjectNameLengthError{ProjectName: projectName}
	}
	return nil
}

// ResolveParameters fills the provisioning parameters from explicit inputs and the repository context.
//
// Explicit inputs always win over queried values. Fields that cannot be
// resolved are returned in the missing list rather than as an error; the
// caller decides when the absence becomes fatal.
func ResolveParameters(executionContext context.Context, inputs ParameterInputs, contextResolver RepositoryContextResolver) (ProjectParameters, []string) {
	parameters := ProjectParameters{
		OrganizationName: strings.TrimSpace(inputs.Organization),
		RepositoryName:   strings.TrimSpace(inputs.Repository),
		ProjectName:      strings.TrimSpace(inputs.ProjectName),
	}

	var repositoryContext githubcli.RepositoryContext
	contextQueried := false
	queryContext := func() githubcli.RepositoryContext {
		if contextQueried {
			return repositoryContext
		}
		contextQueried = true
		if contextResolver == nil {
			return repositoryContext
		}
		resolvedContext, resolutionError := contextResolver.ResolveContext(executionContext)
		if resolutionError != nil {
			return repositoryContext
		}
		repositoryContext = resolvedContext
		return repositoryContext
	}

	if len(parameters.OrganizationName) == 0 {
		parameters.OrganizationName = strings.TrimSpace(queryContext().OwnerLogin)
	}
	if len(parameters.RepositoryName) == 0 {
		parameters.RepositoryName = strings.TrimSpace(queryContext().Name)
	}
	if len(parameters.ProjectName) == 0 {
		parameters.ProjectName = parameters.RepositoryName
	}

	missingFields := make([]string, 0, 3)
	if len(parameters.OrganizationName) == 0 {
		missingFields = append(missingFields, organizationFieldNameConstant)
	}
	if len(parameters.RepositoryName) == 0 {
		missingFields = append(missingFields, repositoryFieldNameConstant)
	}
	if len(parameters.ProjectName) == 0 {
		missingFields = append(missingFields, projectNameFieldNameConstant)
	}

	return parameters, missingFields
}
