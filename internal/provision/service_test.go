package provision_test

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/temirov/repoenv/internal/githubcli"
	"github.com/temirov/repoenv/internal/provision"
)

const (
	testServiceOrganizationConstant       = "acme"
	testServiceRepositoryConstant         = "widgets"
	testServiceRepositorySlugConstant     = "acme/widgets"
	testServiceProjectNameConstant        = "widgets"
	testDefaultVariableNameConstant       = "PROJECT_NAME"
	testTwoEntryCatalogContentConstant    = "environments:\n  dev: development\n  prod: production\n"
	testAuthenticationCallNameConstant    = "check_authentication"
	testRepositoryVariableCallName        = "set_repository_variable"
	testUpsertEnvironmentCallNameConstant = "upsert_environment"
	testEnvironmentVariableCallName       = "set_environment_variable"
	testDevelopmentEnvironmentConstant    = "development"
	testProductionEnvironmentConstant     = "production"
)

type recordedClientCall struct {
	operation       string
	repository      string
	environmentName string
	variableName    string
	variableValue   string
}

type recordingGitHubClient struct {
	authenticationError      error
	repositoryVariableError  error
	environmentUpsertErrors  map[string]error
	environmentVariableError error
	calls                    []recordedClientCall
}

func (client *recordingGitHubClient) CheckAuthenticationStatus(executionContext context.Context) error {
	client.calls = append(client.calls, recordedClientCall{operation: testAuthenticationCallNameConstant})
	return client.authenticationError
}

func (client *recordingGitHubClient) UpsertEnvironment(executionContext context.Context, repository string, environmentName string) error {
	client.calls = append(client.calls, recordedClientCall{
		operation:       testUpsertEnvironmentCallNameConstant,
		repository:      repository,
		environmentName: environmentName,
	})
	if client.environmentUpsertErrors != nil {
		return client.environmentUpsertErrors[environmentName]
	}
	return nil
}

func (client *recordingGitHubClient) SetRepositoryVariable(executionContext context.Context, assignment githubcli.VariableAssignment) error {
	client.calls = append(client.calls, recordedClientCall{
		operation:     testRepositoryVariableCallName,
		repository:    assignment.Repository,
		variableName:  assignment.VariableName,
		variableValue: assignment.VariableValue,
	})
	return client.repositoryVariableError
}

func (client *recordingGitHubClient) SetEnvironmentVariable(executionContext context.Context, assignment githubcli.VariableAssignment) error {
	client.calls = append(client.calls, recordedClientCall{
		operation:       testEnvironmentVariableCallName,
		repository:      assignment.Repository,
		environmentName: assignment.EnvironmentName,
		variableName:    assignment.VariableName,
		variableValue:   assignment.VariableValue,
	})
	return client.environmentVariableError
}

func (client *recordingGitHubClient) mutationCalls() []recordedClientCall {
	mutations := make([]recordedClientCall, 0, len(client.calls))
	for _, call := range client.calls {
		if call.operation != testAuthenticationCallNameConstant {
			mutations = append(mutations, call)
		}
	}
	return mutations
}

type stubConfirmationPrompter struct {
	confirmed         bool
	confirmationError error
	receivedPrompts   []string
}

func (prompter *stubConfirmationPrompter) Confirm(prompt string) (bool, error) {
	prompter.receivedPrompts = append(prompter.receivedPrompts, prompt)
	return prompter.confirmed, prompter.confirmationError
}

func explicitParameterInputs() provision.ParameterInputs {
	return provision.ParameterInputs{
		Organization: testServiceOrganizationConstant,
		Repository:   testServiceRepositoryConstant,
		ProjectName:  testServiceProjectNameConstant,
	}
}

func newServiceForTest(testInstance *testing.T, client *recordingGitHubClient, prompter *stubConfirmationPrompter, contextResolver provision.RepositoryContextResolver, output *bytes.Buffer) *provision.Service {
	service, creationError := provision.NewService(zap.NewNop(), provision.Dependencies{
		GitHubClient:    client,
		ContextResolver: contextResolver,
		Prompter:        prompter,
		Output:          output,
	})
	require.NoError(testInstance, creationError)
	return service
}

func TestServiceConstructionValidation(testInstance *testing.T) {
	output := &bytes.Buffer{}
	client := &recordingGitHubClient{}
	prompter := &stubConfirmationPrompter{}

	testCases := []struct {
		name          string
		logger        *zap.Logger
		dependencies  provision.Dependencies
		expectedError error
	}{
		{
			name:          "missing_logger",
			logger:        nil,
			dependencies:  provision.Dependencies{GitHubClient: client, Prompter: prompter, Output: output},
			expectedError: provision.ErrLoggerRequired,
		},
		{
			name:          "missing_client",
			logger:        zap.NewNop(),
			dependencies:  provision.Dependencies{Prompter: prompter, Output: output},
			expectedError: provision.ErrClientRequired,
		},
		{
			name:          "missing_prompter",
			logger:        zap.NewNop(),
			dependencies:  provision.Dependencies{GitHubClient: client, Output: output},
			expectedError: provision.ErrPrompterRequired,
		},
		{
			name:          "missing_output",
			logger:        zap.NewNop(),
			dependencies:  provision.Dependencies{GitHubClient: client, Prompter: prompter},
			expectedError: provision.ErrOutputWriterRequired,
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			service, creationError := provision.NewService(testCase.logger, testCase.dependencies)
			require.ErrorIs(testInstance, creationError, testCase.expectedError)
			require.Nil(testInstance, service)
		})
	}
}

func TestServiceProvisionCallOrder(testInstance *testing.T) {
	catalogPath := writeCatalogFile(testInstance, testTwoEntryCatalogContentConstant)
	output := &bytes.Buffer{}
	client := &recordingGitHubClient{}
	prompter := &stubConfirmationPrompter{confirmed: true}
	service := newServiceForTest(testInstance, client, prompter, nil, output)

	provisionError := service.Provision(context.Background(), provision.ProvisionOptions{
		Inputs:      explicitParameterInputs(),
		CatalogPath: catalogPath,
	})
	require.NoError(testInstance, provisionError)

	expectedCalls := []recordedClientCall{
		{operation: testAuthenticationCallNameConstant},
		{
			operation:     testRepositoryVariableCallName,
			repository:    testServiceRepositorySlugConstant,
			variableName:  testDefaultVariableNameConstant,
			variableValue: testServiceProjectNameConstant,
		},
		{
			operation:       testUpsertEnvironmentCallNameConstant,
			repository:      testServiceRepositorySlugConstant,
			environmentName: testDevelopmentEnvironmentConstant,
		},
		{
			operation:       testEnvironmentVariableCallName,
			repository:      testServiceRepositorySlugConstant,
			environmentName: testDevelopmentEnvironmentConstant,
			variableName:    testDefaultVariableNameConstant,
			variableValue:   testServiceProjectNameConstant,
		},
		{
			operation:       testUpsertEnvironmentCallNameConstant,
			repository:      testServiceRepositorySlugConstant,
			environmentName: testProductionEnvironmentConstant,
		},
		{
			operation:       testEnvironmentVariableCallName,
			repository:      testServiceRepositorySlugConstant,
			environmentName: testProductionEnvironmentConstant,
			variableName:    testDefaultVariableNameConstant,
			variableValue:   testServiceProjectNameConstant,
		},
	}
	require.Equal(testInstance, expectedCalls, client.calls)
	require.Contains(testInstance, output.String(), "Done")
}

func TestServiceProvisionDeclinedConfirmation(testInstance *testing.T) {
	catalogPath := writeCatalogFile(testInstance, testTwoEntryCatalogContentConstant)
	output := &bytes.Buffer{}
	client := &recordingGitHubClient{}
	prompter := &stubConfirmationPrompter{confirmed: false}
	service := newServiceForTest(testInstance, client, prompter, nil, output)

	provisionError := service.Provision(context.Background(), provision.ProvisionOptions{
		Inputs:      explicitParameterInputs(),
		CatalogPath: catalogPath,
	})
	require.NoError(testInstance, provisionError)
	require.Empty(testInstance, client.mutationCalls())
	require.Contains(testInstance, output.String(), "cancelled")
}

func TestServiceProvisionPreflightFailure(testInstance *testing.T) {
	output := &bytes.Buffer{}
	client := &recordingGitHubClient{authenticationError: errors.New("not logged in")}
	prompter := &stubConfirmationPrompter{confirmed: true}
	service := newServiceForTest(testInstance, client, prompter, nil, output)

	provisionError := service.Provision(context.Background(), provision.ProvisionOptions{Inputs: explicitParameterInputs()})
	require.Error(testInstance, provisionError)
	require.Empty(testInstance, client.mutationCalls())
	require.Empty(testInstance, prompter.receivedPrompts)
}

func TestServiceProvisionCatalogFailure(testInstance *testing.T) {
	output := &bytes.Buffer{}
	client := &recordingGitHubClient{}
	prompter := &stubConfirmationPrompter{confirmed: true}
	service := newServiceForTest(testInstance, client, prompter, nil, output)

	provisionError := service.Provision(context.Background(), provision.ProvisionOptions{
		Inputs:      explicitParameterInputs(),
		CatalogPath: "/nonexistent/catalog.yaml",
	})
	require.Error(testInstance, provisionError)
	require.ErrorAs(testInstance, provisionError, &provision.CatalogError{})
	require.Empty(testInstance, client.mutationCalls())
	require.Empty(testInstance, prompter.receivedPrompts)
}

func TestServiceProvisionMissingParameters(testInstance *testing.T) {
	catalogPath := writeCatalogFile(testInstance, testTwoEntryCatalogContentConstant)
	output := &bytes.Buffer{}
	client := &recordingGitHubClient{}
	prompter := &stubConfirmationPrompter{confirmed: true}
	contextResolver := &stubContextResolver{resolutionError: errors.New(testResolverUnavailableTextConstant)}
	service := newServiceForTest(testInstance, client, prompter, contextResolver, output)

	provisionError := service.Provision(context.Background(), provision.ProvisionOptions{CatalogPath: catalogPath})
	require.Error(testInstance, provisionError)
	require.IsType(testInstance, provision.MissingParametersError{}, provisionError)
	require.Empty(testInstance, client.mutationCalls())
	require.Empty(testInstance, prompter.receivedPrompts)
	require.NotEmpty(testInstance, output.String())
}

func TestServiceProvisionRejectsDefaultedShortProjectName(testInstance *testing.T) {
	catalogPath := writeCatalogFile(testInstance, testTwoEntryCatalogContentConstant)
	output := &bytes.Buffer{}
	client := &recordingGitHubClient{}
	prompter := &stubConfirmationPrompter{confirmed: true}
	service := newServiceForTest(testInstance, client, prompter, nil, output)

	provisionError := service.Provision(context.Background(), provision.ProvisionOptions{
		Inputs: provision.ParameterInputs{
			Organization: testServiceOrganizationConstant,
			Repository:   "ab",
		},
		CatalogPath: catalogPath,
	})
	require.Error(testInstance, provisionError)
	require.IsType(testInstance, provision.ProjectNameLengthError{}, provisionError)
	require.Empty(testInstance, client.mutationCalls())
	require.Empty(testInstance, prompter.receivedPrompts)
}

func TestServiceProvisionHaltsOnUpsertFailure(testInstance *testing.T) {
	catalogPath := writeCatalogFile(testInstance, testTwoEntryCatalogContentConstant)
	output := &bytes.Buffer{}
	client := &recordingGitHubClient{
		environmentUpsertErrors: map[string]error{
			testProductionEnvironmentConstant: errors.New("forbidden"),
		},
	}
	prompter := &stubConfirmationPrompter{confirmed: true}
	service := newServiceForTest(testInstance, client, prompter, nil, output)

	provisionError := service.Provision(context.Background(), provision.ProvisionOptions{
		Inputs:      explicitParameterInputs(),
		CatalogPath: catalogPath,
	})
	require.Error(testInstance, provisionError)

	mutations := client.mutationCalls()
	require.Len(testInstance, mutations, 4)
	require.Equal(testInstance, testRepositoryVariableCallName, mutations[0].operation)
	require.Equal(testInstance, testUpsertEnvironmentCallNameConstant, mutations[1].operation)
	require.Equal(testInstance, testDevelopmentEnvironmentConstant, mutations[1].environmentName)
	require.Equal(testInstance, testEnvironmentVariableCallName, mutations[2].operation)
	require.Equal(testInstance, testUpsertEnvironmentCallNameConstant, mutations[3].operation)
	require.Equal(testInstance, testProductionEnvironmentConstant, mutations[3].environmentName)
}

func TestServiceProvisionUsesConfiguredVariableName(testInstance *testing.T) {
	catalogPath := writeCatalogFile(testInstance, testTwoEntryCatalogContentConstant)
	output := &bytes.Buffer{}
	client := &recordingGitHubClient{}
	prompter := &stubConfirmationPrompter{confirmed: true}
	service := newServiceForTest(testInstance, client, prompter, nil, output)

	provisionError := service.Provision(context.Background(), provision.ProvisionOptions{
		Inputs:       explicitParameterInputs(),
		VariableName: "SERVICE_NAME",
		CatalogPath:  catalogPath,
	})
	require.NoError(testInstance, provisionError)

	for _, call := range client.mutationCalls() {
		if call.operation == testUpsertEnvironmentCallNameConstant {
			continue
		}
		require.Equal(testInstance, "SERVICE_NAME", call.variableName)
	}
}
