package execshell

import (
	"fmt"
	"strings"
)

type messageStage int

const (
	messageStageStart messageStage = iota
	messageStageSuccess
	messageStageFailure
	messageStageExecutionFailure
)

const (
	genericStartTemplateConstant            = "Running %s"
	genericSuccessTemplateConstant          = "Completed %s"
	genericFailureTemplateConstant          = "%s failed with exit code %d%s"
	genericExecutionFailureTemplateConstant = "%s failed: %s"
	commandLabelTemplateConstant            = "%s%s"
	workingDirectorySuffixTemplateConstant  = " (in %s)"
	commandArgumentsJoinSeparatorConstant   = " "
	standardErrorSuffixTemplateConstant     = ": %s"
	unknownFailureMessageConstant           = "unknown error"
	emptyStringConstant                     = ""
	fallbackUnknownValueLabelConstant       = "unknown"
)

const (
	gitRemoteSubcommandNameConstant       = "remote"
	gitRemoteGetURLSubcommandNameConstant = "get-url"
)

const (
	gitRemoteLookupStartTemplateConstant            = "Checking %s remote URL"
	gitRemoteLookupSuccessTemplateConstant          = "%s remote points to %s"
	gitRemoteLookupFailureTemplateConstant          = "Failed to read %s remote (exit code %d%s)"
	gitRemoteLookupExecutionFailureTemplateConstant = "Unable to read %s remote: %s"
)

const (
	githubRepoSubcommandNameConstant        = "repo"
	githubRepoViewSubcommandNameConstant    = "view"
	githubAuthSubcommandNameConstant        = "auth"
	githubAuthStatusSubcommandNameConstant  = "status"
	githubAPISubcommandNameConstant         = "api"
	githubVariableSubcommandNameConstant    = "variable"
	githubVariableSetSubcommandNameConstant = "set"
	githubRepoFlagConstant                  = "--repo"
	githubEnvironmentFlagConstant           = "--env"
	githubMethodFlagConstant                = "-X"
	githubEnvironmentsEndpointSegment       = "/environments/"
	githubEndpointRepositoryPrefixConstant  = "repos/"
	githubCurrentRepositoryLabelConstant    = "current repository"
)

const (
	githubRepoViewStartTemplateConstant                       = "Resolving repository context"
	githubRepoViewSuccessTemplateConstant                     = "Resolved repository context"
	githubRepoViewFailureTemplateConstant                     = "Failed to resolve repository context (exit code %d%s)"
	githubRepoViewExecutionFailureTemplateConstant            = "Unable to resolve repository context: %s"
	githubAuthStatusStartTemplateConstant                     = "Checking GitHub CLI authentication"
	githubAuthStatusSuccessTemplateConstant                   = "GitHub CLI authentication confirmed"
	githubAuthStatusFailureTemplateConstant                   = "GitHub CLI authentication check failed (exit code %d%s)"
	githubAuthStatusExecutionFailureTemplateConstant          = "Unable to check GitHub CLI authentication: %s"
	githubEnvironmentUpsertStartTemplateConstant              = "Ensuring environment %s exists in %s"
	githubEnvironmentUpsertSuccessTemplateConstant            = "Environment %s exists in %s"
	githubEnvironmentUpsertFailureTemplateConstant            = "Failed to ensure environment %s in %s (exit code %d%s)"
	githubEnvironmentUpsertExecutionFailureTemplateConstant   = "Unable to ensure environment %s in %s: %s"
	githubRepositoryVariableStartTemplateConstant             = "Setting repository variable %s in %s"
	githubRepositoryVariableSuccessTemplateConstant           = "Set repository variable %s in %s"
	githubRepositoryVariableFailureTemplateConstant           = "Failed to set repository variable %s in %s (exit code %d%s)"
	githubRepositoryVariableExecutionFailureTemplateConstant  = "Unable to set repository variable %s in %s: %s"
	githubEnvironmentVariableStartTemplateConstant            = "Setting variable %s for environment %s in %s"
	githubEnvironmentVariableSuccessTemplateConstant          = "Set variable %s for environment %s in %s"
	githubEnvironmentVariableFailureTemplateConstant          = "Failed to set variable %s for environment %s in %s (exit code %d%s)"
	githubEnvironmentVariableExecutionFailureTemplateConstant = "Unable to set variable %s for environment %s in %s: %s"
)

// CommandMessageFormatter builds human-readable messages for command lifecycle events.
type CommandMessageFormatter struct{}

// BuildStartedMessage formats the message describing a command about to run.
func (formatter CommandMessageFormatter) BuildStartedMessage(command ShellCommand) string {
	return formatter.buildMessage(command, ExecutionResult{}, nil, messageStageStart)
}

// BuildSuccessMessage formats the message describing a completed command with a zero exit code.
func (formatter CommandMessageFormatter) BuildSuccessMessage(command ShellCommand) string {
	return formatter.buildMessage(command, ExecutionResult{}, nil, messageStageSuccess)
}

// BuildFailureMessage formats the message describing a command that returned a non-zero exit code.
func (formatter CommandMessageFormatter) BuildFailureMessage(command ShellCommand, result ExecutionResult) string {
	return formatter.buildMessage(command, result, nil, messageStageFailure)
}

// BuildExecutionFailureMessage formats the message describing an unexpected execution failure.
func (formatter CommandMessageFormatter) BuildExecutionFailureMessage(command ShellCommand, failure error) string {
	return formatter.buildMessage(command, ExecutionResult{}, failure, messageStageExecutionFailure)
}

func (formatter CommandMessageFormatter) buildMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	switch command.Name {
	case CommandGit:
		return formatter.describeGitMessage(command, result, failure, stage)
	case CommandGitHub:
		return formatter.describeGitHubMessage(command, result, failure, stage)
	default:
		return formatter.buildGenericMessage(command, result, failure, stage)
	}
}

func (formatter CommandMessageFormatter) describeGitMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	arguments := command.Details.Arguments
	if len(arguments) < 2 {
		return formatter.buildGenericMessage(command, result, failure, stage)
	}

	if strings.TrimSpace(arguments[0]) != gitRemoteSubcommandNameConstant || strings.TrimSpace(arguments[1]) != gitRemoteGetURLSubcommandNameConstant {
		return formatter.buildGenericMessage(command, result, failure, stage)
	}

	remoteName := formatter.ensureValue(formatter.argumentAtIndex(arguments, 2))
	switch stage {
	case messageStageStart:
		return fmt.Sprintf(gitRemoteLookupStartTemplateConstant, remoteName)
	case messageStageSuccess:
		return fmt.Sprintf(gitRemoteLookupSuccessTemplateConstant, remoteName, formatter.ensureValue(result.StandardOutput))
	case messageStageFailure:
		return fmt.Sprintf(gitRemoteLookupFailureTemplateConstant, remoteName, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
	case messageStageExecutionFailure:
		return fmt.Sprintf(gitRemoteLookupExecutionFailureTemplateConstant, remoteName, formatter.describeFailure(failure))
	default:
		return formatter.buildGenericMessage(command, result, failure, stage)
	}
}

func (formatter CommandMessageFormatter) describeGitHubMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	arguments := command.Details.Arguments
	if len(arguments) == 0 {
		return formatter.buildGenericMessage(command, result, failure, stage)
	}

	primary := strings.TrimSpace(arguments[0])
	switch primary {
	case githubRepoSubcommandNameConstant:
		return formatter.describeGitHubRepoView(command, result, failure, stage)
	case githubAuthSubcommandNameConstant:
		return formatter.describeGitHubAuthStatus(command, result, failure, stage)
	case githubAPISubcommandNameConstant:
		return formatter.describeGitHubAPICommand(command, result, failure, stage)
	case githubVariableSubcommandNameConstant:
		return formatter.describeGitHubVariableSet(command, result, failure, stage)
	default:
		return formatter.buildGenericMessage(command, result, failure, stage)
	}
}

func (formatter CommandMessageFormatter) describeGitHubRepoView(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	arguments := command.Details.Arguments
	if len(arguments) < 2 || strings.TrimSpace(arguments[1]) != githubRepoViewSubcommandNameConstant {
		return formatter.buildGenericMessage(command, result, failure, stage)
	}

	switch stage {
	case messageStageStart:
		return githubRepoViewStartTemplateConstant
	case messageStageSuccess:
		return githubRepoViewSuccessTemplateConstant
	case messageStageFailure:
		return fmt.Sprintf(githubRepoViewFailureTemplateConstant, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
	case messageStageExecutionFailure:
		return fmt.Sprintf(githubRepoViewExecutionFailureTemplateConstant, formatter.describeFailure(failure))
	default:
		return formatter.buildGenericMessage(command, result, failure, stage)
	}
}

func (formatter CommandMessageFormatter) describeGitHubAuthStatus(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	arguments := command.Details.Arguments
	if len(arguments) < 2 || strings.TrimSpace(arguments[1]) != githubAuthStatusSubcommandNameConstant {
		return formatter.buildGenericMessage(command, result, failure, stage)
	}

	switch stage {
	case messageStageStart:
		return githubAuthStatusStartTemplateConstant
	case messageStageSuccess:
		return githubAuthStatusSuccessTemplateConstant
	case messageStageFailure:
		return fmt.Sprintf(githubAuthStatusFailureTemplateConstant, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
	case messageStageExecutionFailure:
		return fmt.Sprintf(githubAuthStatusExecutionFailureTemplateConstant, formatter.describeFailure(failure))
	default:
		return formatter.buildGenericMessage(command, result, failure, stage)
	}
}

func (formatter CommandMessageFormatter) describeGitHubAPICommand(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	arguments := command.Details.Arguments
	if len(arguments) < 2 {
		return formatter.buildGenericMessage(command, result, failure, stage)
	}

	endpoint := strings.TrimSpace(arguments[1])
	if !strings.Contains(endpoint, githubEnvironmentsEndpointSegment) {
		return formatter.buildGenericMessage(command, result, failure, stage)
	}

	repository, environmentName := formatter.extractRepositoryAndEnvironmentFromEndpoint(endpoint)
	switch stage {
	case messageStageStart:
		return fmt.Sprintf(githubEnvironmentUpsertStartTemplateConstant, environmentName, repository)
	case messageStageSuccess:
		return fmt.Sprintf(githubEnvironmentUpsertSuccessTemplateConstant, environmentName, repository)
	case messageStageFailure:
		return fmt.Sprintf(githubEnvironmentUpsertFailureTemplateConstant, environmentName, repository, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
	case messageStageExecutionFailure:
		return fmt.Sprintf(githubEnvironmentUpsertExecutionFailureTemplateConstant, environmentName, repository, formatter.describeFailure(failure))
	default:
		return formatter.buildGenericMessage(command, result, failure, stage)
	}
}

func (formatter CommandMessageFormatter) describeGitHubVariableSet(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	arguments := command.Details.Arguments
	if len(arguments) < 3 || strings.TrimSpace(arguments[1]) != githubVariableSetSubcommandNameConstant {
		return formatter.buildGenericMessage(command, result, failure, stage)
	}

	variableName := formatter.ensureValue(arguments[2])
	repository := strings.TrimSpace(findFlagValue(arguments, githubRepoFlagConstant))
	if len(repository) == 0 {
		repository = githubCurrentRepositoryLabelConstant
	}
	environmentName := strings.TrimSpace(findFlagValue(arguments, githubEnvironmentFlagConstant))

	if len(environmentName) > 0 {
		switch stage {
		case messageStageStart:
			return fmt.Sprintf(githubEnvironmentVariableStartTemplateConstant, variableName, environmentName, repository)
		case messageStageSuccess:
			return fmt.Sprintf(githubEnvironmentVariableSuccessTemplateConstant, variableName, environmentName, repository)
		case messageStageFailure:
			return fmt.Sprintf(githubEnvironmentVariableFailureTemplateConstant, variableName, environmentName, repository, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
		case messageStageExecutionFailure:
			return fmt.Sprintf(githubEnvironmentVariableExecutionFailureTemplateConstant, variableName, environmentName, repository, formatter.describeFailure(failure))
		}
	}

	switch stage {
	case messageStageStart:
		return fmt.Sprintf(githubRepositoryVariableStartTemplateConstant, variableName, repository)
	case messageStageSuccess:
		return fmt.Sprintf(githubRepositoryVariableSuccessTemplateConstant, variableName, repository)
	case messageStageFailure:
		return fmt.Sprintf(githubRepositoryVariableFailureTemplateConstant, variableName, repository, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
	case messageStageExecutionFailure:
		return fmt.Sprintf(githubRepositoryVariableExecutionFailureTemplateConstant, variableName, repository, formatter.describeFailure(failure))
	default:
		return formatter.buildGenericMessage(command, result, failure, stage)
	}
}

func (formatter CommandMessageFormatter) buildGenericMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	commandLabel := formatter.formatCommandLabel(command)
	switch stage {
	case messageStageStart:
		return fmt.Sprintf(genericStartTemplateConstant, commandLabel)
	case messageStageSuccess:
		return fmt.Sprintf(genericSuccessTemplateConstant, commandLabel)
	case messageStageFailure:
		return fmt.Sprintf(genericFailureTemplateConstant, commandLabel, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
	case messageStageExecutionFailure:
		return fmt.Sprintf(genericExecutionFailureTemplateConstant, commandLabel, formatter.describeFailure(failure))
	default:
		return emptyStringConstant
	}
}

func (formatter CommandMessageFormatter) formatCommandLabel(command ShellCommand) string {
	commandLabel := string(command.Name)
	if len(command.Details.Arguments) > 0 {
		commandLabel = fmt.Sprintf("%s %s", commandLabel, strings.Join(command.Details.Arguments, commandArgumentsJoinSeparatorConstant))
	}
	workingDirectorySuffix := formatter.formatWorkingDirectorySuffix(command)
	return fmt.Sprintf(commandLabelTemplateConstant, commandLabel, workingDirectorySuffix)
}

func (formatter CommandMessageFormatter) formatWorkingDirectorySuffix(command ShellCommand) string {
	trimmedWorkingDirectory := strings.TrimSpace(command.Details.WorkingDirectory)
	if len(trimmedWorkingDirectory) == 0 {
		return emptyStringConstant
	}
	return fmt.Sprintf(workingDirectorySuffixTemplateConstant, trimmedWorkingDirectory)
}

func (formatter CommandMessageFormatter) formatStandardErrorSuffix(standardError string) string {
	trimmedStandardError := strings.TrimSpace(standardError)
	if len(trimmedStandardError) == 0 {
		return emptyStringConstant
	}
	return fmt.Sprintf(standardErrorSuffixTemplateConstant, trimmedStandardError)
}

func (formatter CommandMessageFormatter) describeFailure(failure error) string {
	if failure == nil {
		return unknownFailureMessageConstant
	}
	return failure.Error()
}

func (formatter CommandMessageFormatter) argumentAtIndex(arguments []string, index int) string {
	if index >= 0 && index < len(arguments) {
		return arguments[index]
	}
	return emptyStringConstant
}

func (formatter CommandMessageFormatter) ensureValue(value string) string {
	trimmed := strings.TrimSpace(value)
	if len(trimmed) == 0 {
		return fallbackUnknownValueLabelConstant
	}
	return trimmed
}

func (formatter CommandMessageFormatter) extractRepositoryAndEnvironmentFromEndpoint(endpoint string) (string, string) {
	trimmed := strings.TrimPrefix(strings.TrimSpace(endpoint), githubEndpointRepositoryPrefixConstant)
	segmentIndex := strings.Index(trimmed, githubEnvironmentsEndpointSegment)
	if segmentIndex == -1 {
		return formatter.ensureValue(trimmed), fallbackUnknownValueLabelConstant
	}

	repository := trimmed[:segmentIndex]
	environmentName := strings.TrimSuffix(trimmed[segmentIndex+len(githubEnvironmentsEndpointSegment):], "/")
	return formatter.ensureValue(repository), formatter.ensureValue(environmentName)
}

func findFlagValue(arguments []string, flag string) string {
	for index := 0; index < len(arguments); index++ {
		if strings.TrimSpace(arguments[index]) == flag && index+1 < len(arguments) {
			return strings.TrimSpace(arguments[index+1])
		}
	}
	return emptyStringConstant
}
