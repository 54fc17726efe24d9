package provision_test

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/repoenv/internal/execshell"
	"github.com/temirov/repoenv/internal/provision"
)

const (
	testCommandOrganizationConstant = "acme"
	testCommandRepositoryConstant   = "widgets"
	testCommandShortProjectName     = "abc"
	testAffirmativeInputConstant    = "y\n"
)

type scriptedShellExecutor struct {
	recordedGitHubCommands []execshell.CommandDetails
	recordedGitCommands    []execshell.CommandDetails
}

func (executor *scriptedShellExecutor) ExecuteGit(executionContext context.Context, details execshell.CommandDetails) (execshell.ExecutionResult, error) {
	executor.recordedGitCommands = append(executor.recordedGitCommands, details)
	return execshell.ExecutionResult{StandardOutput: "git@github.com:acme/widgets.git\n"}, nil
}

func (executor *scriptedShellExecutor) ExecuteGitHubCLI(executionContext context.Context, details execshell.CommandDetails) (execshell.ExecutionResult, error) {
	executor.recordedGitHubCommands = append(executor.recordedGitHubCommands, details)
	if len(details.Arguments) > 1 && details.Arguments[0] == "repo" && details.Arguments[1] == "view" {
		return execshell.ExecutionResult{StandardOutput: `{"name":"widgets","owner":{"login":"acme"}}`}, nil
	}
	return execshell.ExecutionResult{}, nil
}

func buildCommandForTest(executor *scriptedShellExecutor, input string, output *bytes.Buffer) (*provision.CommandBuilder, error) {
	builder := &provision.CommandBuilder{
		Executor: executor,
		Input:    strings.NewReader(input),
		Output:   output,
		Errors:   output,
	}
	return builder, nil
}

func TestCommandProvisionsWithExplicitArguments(testInstance *testing.T) {
	executor := &scriptedShellExecutor{}
	output := &bytes.Buffer{}
	builder, builderError := buildCommandForTest(executor, testAffirmativeInputConstant, output)
	require.NoError(testInstance, builderError)

	command, buildError := builder.Build()
	require.NoError(testInstance, buildError)

	command.SetArgs([]string{testCommandOrganizationConstant, testCommandRepositoryConstant})
	executionError := command.Execute()
	require.NoError(testInstance, executionError)

	var variableSetCount int
	var upsertCount int
	for _, details := range executor.recordedGitHubCommands {
		if len(details.Arguments) == 0 {
			continue
		}
		switch details.Arguments[0] {
		case "variable":
			variableSetCount++
		case "api":
			upsertCount++
		}
	}

	// Default catalog carries three environments: one repository-scoped
	// variable set plus one upsert and one variable set per environment.
	require.Equal(testInstance, 4, variableSetCount)
	require.Equal(testInstance, 3, upsertCount)
	require.Contains(testInstance, output.String(), "Done")
}

func TestCommandRejectsExplicitShortProjectName(testInstance *testing.T) {
	executor := &scriptedShellExecutor{}
	output := &bytes.Buffer{}
	builder, builderError := buildCommandForTest(executor, testAffirmativeInputConstant, output)
	require.NoError(testInstance, builderError)

	command, buildError := builder.Build()
	require.NoError(testInstance, buildError)
	command.SilenceUsage = true
	command.SilenceErrors = true

	command.SetArgs([]string{"--project-name", testCommandShortProjectName})
	executionError := command.Execute()
	require.Error(testInstance, executionError)
	require.IsType(testInstance, provision.ProjectNameLengthError{}, executionError)
	require.Empty(testInstance, executor.recordedGitHubCommands)
}

func TestCommandFlagsOverridePositionalArguments(testInstance *testing.T) {
	executor := &scriptedShellExecutor{}
	output := &bytes.Buffer{}
	builder, builderError := buildCommandForTest(executor, testAffirmativeInputConstant, output)
	require.NoError(testInstance, builderError)

	command, buildError := builder.Build()
	require.NoError(testInstance, buildError)

	command.SetArgs([]string{"positional-org", "--organization", testCommandOrganizationConstant, "--repository", testCommandRepositoryConstant})
	executionError := command.Execute()
	require.NoError(testInstance, executionError)

	var sawRepositoryVariableSet bool
	for _, details := range executor.recordedGitHubCommands {
		if len(details.Arguments) > 0 && details.Arguments[0] == "variable" {
			require.Contains(testInstance, details.Arguments, "acme/widgets")
			sawRepositoryVariableSet = true
			break
		}
	}
	require.True(testInstance, sawRepositoryVariableSet)
}
