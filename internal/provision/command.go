package provision

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/temirov/repoenv/internal/execshell"
	"github.com/temirov/repoenv/internal/githubcli"
	"github.com/temirov/repoenv/internal/gitrepo"
	"github.com/temirov/repoenv/internal/ui"
	"github.com/temirov/repoenv/internal/utils"
)

const (
	commandUseConstant                    = "provision [organization] [repository] [project-name]"
	commandShortDescriptionConstant       = "Provision repository environments and seed the project variable"
	commandLongDescriptionConstant        = "provision creates the cataloged deployment environments in the target repository and sets the project-name variable at repository and environment scope."
	commandExecutionErrorTemplateConstant = "provisioning failed: %w"
	flagOrganizationNameConstant          = "organization"
	flagOrganizationDescriptionConstant   = "GitHub organization or user owning the repository"
	flagRepositoryNameConstant            = "repository"
	flagRepositoryDescriptionConstant     = "Repository name inside the organization"
	flagProjectNameConstant               = "project-name"
	flagProjectNameDescriptionConstant    = "Project name seeded into the variable (4-17 characters)"
	flagCatalogNameConstant               = "catalog"
	flagCatalogDescriptionConstant        = "Path to the YAML environment catalog"
	organizationArgumentIndexConstant     = 0
	repositoryArgumentIndexConstant       = 1
	projectNameArgumentIndexConstant      = 2
)

// LoggerProvider supplies a zap logger instance.
type LoggerProvider func() *zap.Logger

// ConfigurationProvider supplies the configured command defaults.
type ConfigurationProvider func() CommandConfiguration

// HumanReadableLoggingProvider reports whether console-oriented logging is active.
type HumanReadableLoggingProvider func() bool

// CommandExecutor captures the shell operations the command wires together.
type CommandExecutor interface {
	ExecuteGit(executionContext context.Context, details execshell.CommandDetails) (execshell.ExecutionResult, error)
	ExecuteGitHubCLI(executionContext context.Context, details execshell.CommandDetails) (execshell.ExecutionResult, error)
}

// CommandBuilder assembles the Cobra command for environment provisioning.
type CommandBuilder struct {
	LoggerProvider               LoggerProvider
	ConfigurationProvider        ConfigurationProvider
	HumanReadableLoggingProvider HumanReadableLoggingProvider
	Executor                     CommandExecutor
	Input                        io.Reader
	Output                       io.Writer
	Errors                       io.Writer
}

// Build constructs the provision command.
func (builder *CommandBuilder) Build() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:   commandUseConstant,
		Short: commandShortDescriptionConstant,
		Long:  commandLongDescriptionConstant,
		Args:  cobra.MaximumNArgs(3),
		RunE:  builder.run,
	}

	command.Flags().String(flagOrganizationNameConstant, "", flagOrganizationDescriptionConstant)
	command.Flags().String(flagRepositoryNameConstant, "", flagRepositoryDescriptionConstant)
	command.Flags().String(flagProjectNameConstant, "", flagProjectNameDescriptionConstant)
	command.Flags().String(flagCatalogNameConstant, "", flagCatalogDescriptionConstant)

	return command, nil
}

func (builder *CommandBuilder) run(command *cobra.Command, arguments []string) error {
	options, optionsError := builder.parseOptions(command, arguments)
	if optionsError != nil {
		return optionsError
	}

	logger := builder.resolveLogger()
	executor, executorError := builder.resolveExecutor(logger)
	if executorError != nil {
		return executorError
	}

	client, clientError := githubcli.NewClient(executor)
	if clientError != nil {
		return clientError
	}

	remoteResolver, remoteResolverError := gitrepo.NewRemoteResolver(executor)
	if remoteResolverError != nil {
		return remoteResolverError
	}

	outputWriter := builder.Output
	if outputWriter == nil {
		outputWriter = command.OutOrStdout()
	}
	errorWriter := builder.Errors
	if errorWriter == nil {
		errorWriter = command.ErrOrStderr()
	}
	inputReader := builder.Input
	if inputReader == nil {
		inputReader = command.InOrStdin()
	}

	prompter := NewIOConfirmationPrompter(inputReader, utils.NewFlushingWriter(outputWriter))

	service, serviceError := NewService(logger, Dependencies{
		GitHubClient:    client,
		ContextResolver: &CompositeContextResolver{GitHubSource: client, GitSource: remoteResolver},
		Prompter:        prompter,
		Output:          outputWriter,
		Errors:          errorWriter,
	})
	if serviceError != nil {
		return serviceError
	}

	provisionError := service.Provision(command.Context(), options)
	if provisionError != nil {
		return fmt.Errorf(commandExecutionErrorTemplateConstant, provisionError)
	}

	return nil
}

func (builder *CommandBuilder) parseOptions(command *cobra.Command, arguments []string) (ProvisionOptions, error) {
	configuration := builder.resolveConfiguration()

	organizationValue := builder.resolveParameterValue(command, flagOrganizationNameConstant, arguments, organizationArgumentIndexConstant, configuration.Organization)
	repositoryValue := builder.resolveParameterValue(command, flagRepositoryNameConstant, arguments, repositoryArgumentIndexConstant, configuration.Repository)
	projectNameValue := builder.resolveParameterValue(command, flagProjectNameConstant, arguments, projectNameArgumentIndexConstant, configuration.ProjectName)

	// An explicitly supplied project name violating the length contract is
	// rejected before any collaborator is constructed.
	if len(projectNameValue) > 0 {
		if validationError := ValidateProjectName(projectNameValue); validationError != nil {
			return ProvisionOptions{}, validationError
		}
	}

	catalogPathValue, _ := command.Flags().GetString(flagCatalogNameConstant)
	trimmedCatalogPath := strings.TrimSpace(catalogPathValue)
	if len(trimmedCatalogPath) == 0 {
		trimmedCatalogPath = strings.TrimSpace(configuration.CatalogPath)
	}

	provisionOptions := ProvisionOptions{
		Inputs: ParameterInputs{
			Organization: organizationValue,
			Repository:   repositoryValue,
			ProjectName:  projectNameValue,
		},
		VariableName: strings.TrimSpace(configuration.VariableName),
		CatalogPath:  trimmedCatalogPath,
	}

	return provisionOptions, nil
}

func (builder *CommandBuilder) resolveParameterValue(command *cobra.Command, flagName string, arguments []string, argumentIndex int, configuredValue string) string {
	if command.Flags().Changed(flagName) {
		flagValue, _ := command.Flags().GetString(flagName)
		return strings.TrimSpace(flagValue)
	}
	if argumentIndex < len(arguments) {
		argumentValue := strings.TrimSpace(arguments[argumentIndex])
		if len(argumentValue) > 0 {
			return argumentValue
		}
	}
	return strings.TrimSpace(configuredValue)
}

func (builder *CommandBuilder) resolveConfiguration() CommandConfiguration {
	if builder.ConfigurationProvider == nil {
		return CommandConfiguration{}
	}
	return builder.ConfigurationProvider()
}

func (builder *CommandBuilder) resolveLogger() *zap.Logger {
	if builder.LoggerProvider == nil {
		return zap.NewNop()
	}

	logger := builder.LoggerProvider()
	if logger == nil {
		return zap.NewNop()
	}

	return logger
}

func (builder *CommandBuilder) resolveExecutor(logger *zap.Logger) (CommandExecutor, error) {
	if builder.Executor != nil {
		return builder.Executor, nil
	}

	commandRunner := execshell.NewOSCommandRunner()

	var observers []execshell.CommandEventObserver
	if builder.HumanReadableLoggingProvider != nil && builder.HumanReadableLoggingProvider() {
		observers = append(observers, ui.NewConsoleCommandEventLogger(logger))
	}

	shellExecutor, creationError := execshell.NewShellExecutor(logger, commandRunner, observers...)
	if creationError != nil {
		return nil, creationError
	}

	return shellExecutor, nil
}
