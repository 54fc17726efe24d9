package githubcli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/temirov/repoenv/internal/execshell"
)

const (
	repoSubcommandConstant                    = "repo"
	viewSubcommandConstant                    = "view"
	authSubcommandConstant                    = "auth"
	statusSubcommandConstant                  = "status"
	apiSubcommandConstant                     = "api"
	variableSubcommandConstant                = "variable"
	setSubcommandConstant                     = "set"
	jsonFlagConstant                          = "--json"
	repoFlagConstant                          = "--repo"
	bodyFlagConstant                          = "--body"
	environmentFlagConstant                   = "--env"
	methodFlagConstant                        = "-X"
	acceptHeaderFlagConstant                  = "-H"
	acceptHeaderValueConstant                 = "Accept: application/vnd.github+json"
	httpMethodPutConstant                     = "PUT"
	repositoryFieldNameConstant               = "repository"
	environmentNameFieldNameConstant          = "environment_name"
	variableNameFieldNameConstant             = "variable_name"
	requiredValueMessageConstant              = "value required"
	executorNotConfiguredMessageConstant      = "github cli executor not configured"
	repoViewJSONFieldsConstant                = "name,owner"
	operationErrorMessageTemplateConstant     = "%s operation failed"
	operationErrorWithCauseTemplateConstant   = "%s operation failed: %s"
	responseDecodingErrorTemplateConstant     = "%s response decoding failed: %s"
	invalidInputErrorTemplateConstant         = "%s: %s"
	environmentsEndpointTemplateConstant      = "repos/%s/environments/%s"
	resolveRepositoryOperationNameConstant    = OperationName("ResolveCurrentRepository")
	authenticationStatusOperationNameConstant = OperationName("CheckAuthenticationStatus")
	upsertEnvironmentOperationNameConstant    = OperationName("UpsertEnvironment")
	setRepositoryVariableOperationName        = OperationName("SetRepositoryVariable")
	setEnvironmentVariableOperationName       = OperationName("SetEnvironmentVariable")
)

// OperationName describes a named GitHub CLI workflow supported by the client.
type OperationName string

// RepositoryContext contains the repository details resolved from the working directory.
type RepositoryContext struct {
	Name       string
	OwnerLogin string
}

// VariableAssignment describes an Actions variable update.
type VariableAssignment struct {
	Repository      string
	EnvironmentName string
	VariableName    string
	VariableValue   string
}

// GitHubCommandExecutor is the minimal interface required from execshell.ShellExecutor.
type GitHubCommandExecutor interface {
	ExecuteGitHubCLI(executionContext context.Context, details execshell.CommandDetails) (execshell.ExecutionResult, error)
}

// Client coordinates GitHub CLI invocations through execshell.
type Client struct {
	executor GitHubCommandExecutor
}

var (
	// ErrExecutorNotConfigured indicates the client was constructed without an executor.
	ErrExecutorNotConfigured = errors.New(executorNotConfiguredMessageConstant)
)

// InvalidInputError surfaces validation issues for operation inputs.
type InvalidInputError struct {
	FieldName string
	Message   string
}

// Error describes the invalid input.
func (inputError InvalidInputError) Error() string {
	return fmt.Sprintf(invalidInputErrorTemplateConstant, inputError.FieldName, inputError.Message)
}

// OperationError wraps execution issues for GitHub CLI operations.
type OperationError struct {
	Operation OperationName
	Cause     error
}

// Error describes the operation failure.
func (operationError OperationError) Error() string {
	if operationError.Cause == nil {
		return fmt.Sprintf(operationErrorMessageTemplateConstant, operationError.Operation)
	}
	return fmt.Sprintf(operationErrorWithCauseTemplateConstant, operationError.Operation, operationError.Cause)
}

// Unwrap exposes the underlying cause.
func (operationError OperationError) Unwrap() error {
	return operationError.Cause
}

// ResponseDecodingError indicates JSON decoding failures.
type ResponseDecodingError struct {
	Operation OperationName
	Cause     error
}

// Error describes the decoding failure.
func (decodingError ResponseDecodingError) Error() string {
	return fmt.Sprintf(responseDecodingErrorTemplateConstant, decodingError.Operation, decodingError.Cause)
}

// Unwrap exposes the underlying JSON error.
func (decodingError ResponseDecodingError) Unwrap() error {
	return decodingError.Cause
}

// NewClient constructs a GitHub CLI client.
func NewClient(executor GitHubCommandExecutor) (*Client, error) {
	if executor == nil {
		return nil, ErrExecutorNotConfigured
	}
	return &Client{executor: executor}, nil
}

// CheckAuthenticationStatus verifies the GitHub CLI holds valid credentials.
func (client *Client) CheckAuthenticationStatus(executionContext context.Context) error {
	commandDetails := execshell.CommandDetails{
		Arguments: []string{
			authSubcommandConstant,
			statusSubcommandConstant,
		},
	}

	_, executionError := client.executor.ExecuteGitHubCLI(executionContext, commandDetails)
	if executionError != nil {
		return OperationError{Operation: authenticationStatusOperationNameConstant, Cause: executionError}
	}

	return nil
}

// ResolveCurrentRepository retrieves the repository backing the working directory using gh repo view.
func (client *Client) ResolveCurrentRepository(executionContext context.Context) (RepositoryContext, error) {
	commandDetails := execshell.CommandDetails{
		Arguments: []string{
			repoSubcommandConstant,
			viewSubcommandConstant,
			jsonFlagConstant,
			repoViewJSONFieldsConstant,
		},
	}

	executionResult, executionError := client.executor.ExecuteGitHubCLI(executionContext, commandDetails)
	if executionError != nil {
		return RepositoryContext{}, OperationError{Operation: resolveRepositoryOperationNameConstant, Cause: executionError}
	}

	var response struct {
		Name  string `json:"name"`
		Owner struct {
			Login string `json:"login"`
		} `json:"owner"`
	}

	decodingError := json.Unmarshal([]byte(executionResult.StandardOutput), &response)
	if decodingError != nil {
		return RepositoryContext{}, ResponseDecodingError{Operation: resolveRepositoryOperationNameConstant, Cause: decodingError}
	}

	return RepositoryContext{
		Name:       response.Name,
		OwnerLogin: response.Owner.Login,
	}, nil
}

// UpsertEnvironment creates or updates a deployment environment using gh api.
//
// The underlying endpoint is idempotent, so repeated calls for an existing
// environment succeed without modifying it.
func (client *Client) UpsertEnvironment(executionContext context.Context, repository string, environmentName string) error {
	repositoryIdentifier := strings.TrimSpace(repository)
	if len(repositoryIdentifier) == 0 {
		return InvalidInputError{FieldName: repositoryFieldNameConstant, Message: requiredValueMessageConstant}
	}

	trimmedEnvironmentName := strings.TrimSpace(environmentName)
	if len(trimmedEnvironmentName) == 0 {
		return InvalidInputError{FieldName: environmentNameFieldNameConstant, Message: requiredValueMessageConstant}
	}

	commandDetails := execshell.CommandDetails{
		Arguments: []string{
			apiSubcommandConstant,
			fmt.Sprintf(environmentsEndpointTemplateConstant, repositoryIdentifier, url.PathEscape(trimmedEnvironmentName)),
			methodFlagConstant,
			httpMethodPutConstant,
			acceptHeaderFlagConstant,
			acceptHeaderValueConstant,
		},
	}

	_, executionError := client.executor.ExecuteGitHubCLI(executionContext, commandDetails)
	if executionError != nil {
		return OperationError{Operation: upsertEnvironmentOperationNameConstant, Cause: executionError}
	}

	return nil
}

// SetRepositoryVariable creates or updates a repository-scoped Actions variable.
func (client *Client) SetRepositoryVariable(executionContext context.Context, assignment VariableAssignment) error {
	validationError := validateVariableAssignment(assignment)
	if validationError != nil {
		return validationError
	}

	commandDetails := execshell.CommandDetails{
		Arguments: []string{
			variableSubcommandConstant,
			setSubcommandConstant,
			strings.TrimSpace(assignment.VariableName),
			repoFlagConstant,
			strings.TrimSpace(assignment.Repository),
			bodyFlagConstant,
			assignment.VariableValue,
		},
	}

	_, executionError := client.executor.ExecuteGitHubCLI(executionContext, commandDetails)
	if executionError != nil {
		return OperationError{Operation: setRepositoryVariableOperationName, Cause: executionError}
	}

	return nil
}

// SetEnvironmentVariable creates or updates an environment-scoped Actions variable.
func (client *Client) SetEnvironmentVariable(executionContext context.Context, assignment VariableAssignment) error {
	validationError := validateVariableAssignment(assignment)
	if validationError != nil {
		return validationError
	}

	trimmedEnvironmentName := strings.TrimSpace(assignment.EnvironmentName)
	if len(trimmedEnvironmentName) == 0 {
		return InvalidInputError{FieldName: environmentNameFieldNameConstant, Message: requiredValueMessageConstant}
	}

	commandDetails := execshell.CommandDetails{
		Arguments: []string{
			variableSubcommandConstant,
			setSubcommandConstant,
			strings.TrimSpace(assignment.VariableName),
			repoFlagConstant,
			strings.TrimSpace(assignment.Repository),
			environmentFlagConstant,
			trimmedEnvironmentName,
			bodyFlagConstant,
			assignment.VariableValue,
		},
	}

	_, executionError := client.executor.ExecuteGitHubCLI(executionContext, commandDetails)
	if executionError != nil {
		return OperationError{Operation: setEnvironmentVariableOperationName, Cause: executionError}
	}

	return nil
}

func validateVariableAssignment(assignment VariableAssignment) error {
	if len(strings.TrimSpace(assignment.Repository)) == 0 {
		return InvalidInputError{FieldName: repositoryFieldNameConstant, Message: requiredValueMessageConstant}
	}
	if len(strings.TrimSpace(assignment.VariableName)) == 0 {
		return InvalidInputError{FieldName: variableNameFieldNameConstant, Message: requiredValueMessageConstant}
	}
	return nil
}
