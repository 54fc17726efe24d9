package execshell

import (
	"context"
	"errors"

	"go.uber.org/zap"
)

const (
	gitToolNameConstant                       = "git"
	githubCLIToolNameConstant                 = "gh"
	loggerNotConfiguredMessageConstant        = "shell executor logger not configured"
	commandRunnerNotConfiguredMessageConstant = "shell executor command runner not configured"
)

// CommandName identifies a supported executable.
type CommandName string

// Supported executables.
const (
	CommandGit    CommandName = CommandName(gitToolNameConstant)
	CommandGitHub CommandName = CommandName(githubCLIToolNameConstant)
)

// CommandDetails describes the invocation parameters for a shell command.
type CommandDetails struct {
	Arguments            []string
	WorkingDirectory     string
	EnvironmentVariables map[string]string
	StandardInput        []byte
}

// ShellCommand combines a CommandName with specific invocation details.
type ShellCommand struct {
	Name    CommandName
	Details CommandDetails
}

// ExecutionResult captures the observable results of executing a command.
type ExecutionResult struct {
	StandardOutput string
	StandardError  string
	ExitCode       int
}

// CommandRunner represents the ability to run shell commands.
type CommandRunner interface {
	Run(executionContext context.Context, command ShellCommand) (ExecutionResult, error)
}

// Sentinel construction errors.
var (
	// ErrLoggerNotConfigured indicates the executor was constructed without a logger.
	ErrLoggerNotConfigured = errors.New(loggerNotConfiguredMessageConstant)
	// ErrCommandRunnerNotConfigured indicates the executor was constructed without a runner.
	ErrCommandRunnerNotConfigured = errors.New(commandRunnerNotConfiguredMessageConstant)
)

// CommandFailedError reports a command completing with a non-zero exit code.
type CommandFailedError struct {
	Command ShellCommand
	Result  ExecutionResult
}

// Error describes the failed command including exit code and standard error output.
func (failedError CommandFailedError) Error() string {
	return CommandMessageFormatter{}.BuildFailureMessage(failedError.Command, failedError.Result)
}

// CommandExecutionError reports a command that could not be executed at all.
type CommandExecutionError struct {
	Command ShellCommand
	Cause   error
}

// Error describes the execution failure.
func (executionError CommandExecutionError) Error() string {
	return CommandMessageFormatter{}.BuildExecutionFailureMessage(executionError.Command, executionError.Cause)
}

// Unwrap exposes the underlying cause.
func (executionError CommandExecutionError) Unwrap() error {
	return executionError.Cause
}

// ShellExecutor coordinates command execution, logging, and observer notifications.
type ShellExecutor struct {
	logger           *zap.Logger
	commandRunner    CommandRunner
	eventObserver    CommandEventObserver
	messageFormatter CommandMessageFormatter
}

// NewShellExecutor constructs a ShellExecutor with the provided logger, runner, and optional observers.
func NewShellExecutor(logger *zap.Logger, commandRunner CommandRunner, observers ...CommandEventObserver) (*ShellExecutor, error) {
	if logger == nil {
		return nil, ErrLoggerNotConfigured
	}
	if commandRunner == nil {
		return nil, ErrCommandRunnerNotConfigured
	}

	var eventObserver CommandEventObserver = noopCommandEventObserver{}
	for _, observerCandidate := range observers {
		if observerCandidate != nil {
			eventObserver = observerCandidate
		}
	}

	return &ShellExecutor{
		logger:           logger,
		commandRunner:    commandRunner,
		eventObserver:    eventObserver,
		messageFormatter: CommandMessageFormatter{},
	}, nil
}

// ExecuteGit runs git with the provided details.
func (executor *ShellExecutor) ExecuteGit(executionContext context.Context, details CommandDetails) (ExecutionResult, error) {
	return executor.execute(executionContext, ShellCommand{Name: CommandGit, Details: details})
}

// ExecuteGitHubCLI runs the GitHub CLI with the provided details.
func (executor *ShellExecutor) ExecuteGitHubCLI(executionContext context.Context, details CommandDetails) (ExecutionResult, error) {
	return executor.execute(executionContext, ShellCommand{Name: CommandGitHub, Details: details})
}

func (executor *ShellExecutor) execute(executionContext context.Context, command ShellCommand) (ExecutionResult, error) {
	executor.logger.Info(executor.messageFormatter.BuildStartedMessage(command))
	executor.eventObserver.CommandStarted(command)

	executionResult, executionError := executor.commandRunner.Run(executionContext, command)
	if executionError != nil {
		executor.logger.Error(executor.messageFormatter.BuildExecutionFailureMessage(command, executionError))
		executor.eventObserver.CommandExecutionFailed(command, executionError)
		return ExecutionResult{}, CommandExecutionError{Command: command, Cause: executionError}
	}

	executor.eventObserver.CommandCompleted(command, executionResult)

	if executionResult.ExitCode != 0 {
		executor.logger.Warn(executor.messageFormatter.BuildFailureMessage(command, executionResult))
		return ExecutionResult{}, CommandFailedError{Command: command, Result: executionResult}
	}

	executor.logger.Info(executor.messageFormatter.BuildSuccessMessage(command))
	return executionResult, nil
}
