package provision

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"

	"github.com/temirov/repoenv/internal/githubcli"
	"github.com/temirov/repoenv/internal/ui"
)

const (
	loggerRequiredMessageConstant        = "provision service logger is required"
	clientRequiredMessageConstant        = "provision service github client is required"
	prompterRequiredMessageConstant      = "provision service prompter is required"
	outputWriterRequiredMessageConstant  = "provision service output writer is required"
	preflightErrorTemplateConstant       = "pre-flight check failed: %w"
	catalogLoadErrorTemplateConstant     = "environment catalog unavailable: %w"
	repositoryVariableErrorTemplate      = "repository variable update failed: %w"
	environmentUpsertErrorTemplate       = "environment %q could not be provisioned: %w"
	environmentVariableErrorTemplate     = "variable update for environment %q failed: %w"
	organizationLogFieldNameConstant     = "organization"
	repositoryLogFieldNameConstant       = "repository"
	projectNameLogFieldNameConstant      = "project_name"
	environmentLogFieldNameConstant      = "environment"
	provisioningStartedLogMessage        = "provisioning confirmed"
	provisioningDeclinedLogMessage       = "provisioning declined by user"
	environmentProvisionedLogMessage     = "environment provisioned"
	provisioningCompletedLogMessage      = "provisioning completed"
)

// Sentinel construction errors.
var (
	// ErrLoggerRequired indicates the service was constructed without a logger.
	ErrLoggerRequired = errors.New(loggerRequiredMessageConstant)
	// ErrClientRequired indicates the service was constructed without a GitHub client.
	ErrClientRequired = errors.New(clientRequiredMessageConstant)
	// ErrPrompterRequired indicates the service was constructed without a prompter.
	ErrPrompterRequired = errors.New(prompterRequiredMessageConstant)
	// ErrOutputWriterRequired indicates the service was constructed without an output writer.
	ErrOutputWriterRequired = errors.New(outputWriterRequiredMessageConstant)
)

// GitHubClient captures the GitHub CLI operations the workflow depends on.
type GitHubClient interface {
	CheckAuthenticationStatus(executionContext context.Context) error
	UpsertEnvironment(executionContext context.Context, repository string, environmentName string) error
	SetRepositoryVariable(executionContext context.Context, assignment githubcli.VariableAssignment) error
	SetEnvironmentVariable(executionContext context.Context, assignment githubcli.VariableAssignment) error
}

// Dependencies carries the collaborators required by the provisioning service.
type Dependencies struct {
	GitHubClient    GitHubClient
	ContextResolver RepositoryContextResolver
	Prompter        ConfirmationPrompter
	Output          io.Writer
	Errors          io.Writer
}

// ProvisionOptions configures a single provisioning run.
type ProvisionOptions struct {
	Inputs       ParameterInputs
	VariableName string
	CatalogPath  string
}

// Service orchestrates parameter resolution, confirmation, and provisioning.
type Service struct {
	logger       *zap.Logger
	dependencies Dependencies
}

// NewService validates collaborators and constructs the provisioning service.
func NewService(logger *zap.Logger, dependencies Dependencies) (*Service, error) {
	if logger == nil {
		return nil, ErrLoggerRequired
	}
	if dependencies.GitHubClient == nil {
		return nil, ErrClientRequired
	}
	if dependencies.Prompter == nil {
		return nil, ErrPrompterRequired
	}
	if dependencies.Output == nil {
		return nil, ErrOutputWriterRequired
	}
	if dependencies.Errors == nil {
		dependencies.Errors = dependencies.Output
	}

	return &Service{logger: logger, dependencies: dependencies}, nil
}

// Provision runs the full workflow: pre-flight, resolution, confirmation, and
// the provisioning loop. User cancellation returns nil; every other early
// exit returns an error before any mutation has happened.
func (service *Service) Provision(executionContext context.Context, options ProvisionOptions) error {
	preflightError := service.dependencies.GitHubClient.CheckAuthenticationStatus(executionContext)
	if preflightError != nil {
		return fmt.Errorf(preflightErrorTemplateConstant, preflightError)
	}

	catalog, catalogError := LoadCatalog(options.CatalogPath)
	if catalogError != nil {
		return fmt.Errorf(catalogLoadErrorTemplateConstant, catalogError)
	}

	parameters, missingFields := ResolveParameters(executionContext, options.Inputs, service.dependencies.ContextResolver)

	summaryRenderer := NewSummaryRenderer(service.dependencies.Output)
	renderError := summaryRenderer.RenderSummary(parameters, missingFields, catalog)
	if renderError != nil {
		return renderError
	}

	if len(missingFields) > 0 {
		missingError := MissingParametersError{FieldNames: missingFields}
		service.writeErrorNotice(missingError.Error())
		return missingError
	}

	validationError := ValidateProjectName(parameters.ProjectName)
	if validationError != nil {
		service.writeErrorNotice(validationError.Error())
		return validationError
	}

	confirmed, confirmationError := service.dependencies.Prompter.Confirm(confirmationPromptMessageConstant)
	if confirmationError != nil {
		return confirmationError
	}
	if !confirmed {
		service.logger.Info(provisioningDeclinedLogMessage)
		service.writeNotice(ui.WarningStyle.Render(cancellationNoticeMessageConstant))
		return nil
	}

	variableName := strings.TrimSpace(options.VariableName)
	if len(variableName) == 0 {
		variableName = defaultVariableNameConstant
	}

	repositoryIdentifier := parameters.RepositoryIdentifier()
	service.logger.Info(provisioningStartedLogMessage,
		zap.String(organizationLogFieldNameConstant, parameters.OrganizationName),
		zap.String(repositoryLogFieldNameConstant, parameters.RepositoryName),
		zap.String(projectNameLogFieldNameConstant, parameters.ProjectName),
	)

	repositoryAssignment := githubcli.VariableAssignment{
		Repository:    repositoryIdentifier,
		VariableName:  variableName,
		VariableValue: parameters.ProjectName,
	}
	repositoryVariableError := service.dependencies.GitHubClient.SetRepositoryVariable(executionContext, repositoryAssignment)
	if repositoryVariableError != nil {
		return fmt.Errorf(repositoryVariableErrorTemplate, repositoryVariableError)
	}

	for _, catalogEntry := range catalog {
		upsertError := service.dependencies.GitHubClient.UpsertEnvironment(executionContext, repositoryIdentifier, catalogEntry.DisplayName)
		if upsertError != nil {
			return fmt.Errorf(environmentUpsertErrorTemplate, catalogEntry.DisplayName, upsertError)
		}

		environmentAssignment := githubcli.VariableAssignment{
			Repository:      repositoryIdentifier,
			EnvironmentName: catalogEntry.DisplayName,
			VariableName:    variableName,
			VariableValue:   parameters.ProjectName,
		}
		environmentVariableError := service.dependencies.GitHubClient.SetEnvironmentVariable(executionContext, environmentAssignment)
		if environmentVariableError != nil {
			return fmt.Errorf(environmentVariableErrorTemplate, catalogEntry.DisplayName, environmentVariableError)
		}

		service.logger.Info(environmentProvisionedLogMessage, zap.String(environmentLogFieldNameConstant, catalogEntry.DisplayName))
	}

	service.logger.Info(provisioningCompletedLogMessage)
	service.writeNotice(ui.SuccessStyle.Render(completionNoticeMessageConstant))
	return nil
}

func (service *Service) writeNotice(notice string) {
	fmt.Fprintln(service.dependencies.Output, notice)
}

func (service *Service) writeErrorNotice(notice string) {
	fmt.Fprintln(service.dependencies.Errors, ui.ErrorStyle.Render(notice))
}
