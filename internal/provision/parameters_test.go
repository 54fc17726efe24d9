package provision_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/repoenv/internal/githubcli"
	"github.com/temirov/repoenv/internal/provision"
)

const (
	testExplicitOrganizationConstant    = "explicit-org"
	testExplicitRepositoryConstant      = "explicit-repo"
	testExplicitProjectNameConstant     = "explicit-name"
	testContextOwnerLoginConstant       = "context-org"
	testContextRepositoryNameConstant   = "context-repo"
	testResolverUnavailableTextConstant = "context unavailable"
)

type stubContextResolver struct {
	repositoryContext githubcli.RepositoryContext
	resolutionError   error
	callCount         int
}

func (resolver *stubContextResolver) ResolveContext(executionContext context.Context) (githubcli.RepositoryContext, error) {
	resolver.callCount++
	return resolver.repositoryContext, resolver.resolutionError
}

func TestResolveParameters(testInstance *testing.T) {
	availableContextResolver := func() *stubContextResolver {
		return &stubContextResolver{
			repositoryContext: githubcli.RepositoryContext{
				Name:       testContextRepositoryNameConstant,
				OwnerLogin: testContextOwnerLoginConstant,
			},
		}
	}
	unavailableContextResolver := func() *stubContextResolver {
		return &stubContextResolver{resolutionError: errors.New(testResolverUnavailableTextConstant)}
	}

	testCases := []struct {
		name                  string
		inputs                provision.ParameterInputs
		resolver              *stubContextResolver
		expectedParameters    provision.ProjectParameters
		expectedMissingFields []string
	}{
		{
			name: "explicit_inputs_take_precedence",
			inputs: provision.ParameterInputs{
				Organization: testExplicitOrganizationConstant,
				Repository:   testExplicitRepositoryConstant,
				ProjectName:  testExplicitProjectNameConstant,
			},
			resolver: availableContextResolver(),
			expectedParameters: provision.ProjectParameters{
				OrganizationName: testExplicitOrganizationConstant,
				RepositoryName:   testExplicitRepositoryConstant,
				ProjectName:      testExplicitProjectNameConstant,
			},
		},
		{
			name:     "context_fills_absent_fields",
			inputs:   provision.ParameterInputs{},
			resolver: availableContextResolver(),
			expectedParameters: provision.ProjectParameters{
				OrganizationName: testContextOwnerLoginConstant,
				RepositoryName:   testContextRepositoryNameConstant,
				ProjectName:      testContextRepositoryNameConstant,
			},
		},
		{
			name:   "project_name_defaults_to_repository",
			inputs: provision.ParameterInputs{Organization: testExplicitOrganizationConstant, Repository: testExplicitRepositoryConstant},
			resolver: &stubContextResolver{
				resolutionError: errors.New(testResolverUnavailableTextConstant),
			},
			expectedParameters: provision.ProjectParameters{
				OrganizationName: testExplicitOrganizationConstant,
				RepositoryName:   testExplicitRepositoryConstant,
				ProjectName:      testExplicitRepositoryConstant,
			},
		},
		{
			name:     "unavailable_context_marks_missing",
			inputs:   provision.ParameterInputs{},
			resolver: unavailableContextResolver(),
			expectedParameters: provision.ProjectParameters{
				OrganizationName: "",
				RepositoryName:   "",
				ProjectName:      "",
			},
			expectedMissingFields: []string{"organization", "repository", "project_name"},
		},
		{
			name:     "explicit_project_name_survives_missing_context",
			inputs:   provision.ParameterInputs{ProjectName: testExplicitProjectNameConstant},
			resolver: unavailableContextResolver(),
			expectedParameters: provision.ProjectParameters{
				ProjectName: testExplicitProjectNameConstant,
			},
			expectedMissingFields: []string{"organization", "repository"},
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			parameters, missingFields := provision.ResolveParameters(context.Background(), testCase.inputs, testCase.resolver)
			require.Equal(testInstance, testCase.expectedParameters, parameters)
			if len(testCase.expectedMissingFields) == 0 {
				require.Empty(testInstance, missingFields)
			} else {
				require.Equal(testInstance, testCase.expectedMissingFields, missingFields)
			}
		})
	}
}

func TestResolveParametersQueriesContextAtMostOnce(testInstance *testing.T) {
	resolver := &stubContextResolver{
		repositoryContext: githubcli.RepositoryContext{
			Name:       testContextRepositoryNameConstant,
			OwnerLogin: testContextOwnerLoginConstant,
		},
	}

	_, missingFields := provision.ResolveParameters(context.Background(), provision.ParameterInputs{}, resolver)
	require.Empty(testInstance, missingFields)
	require.Equal(testInstance, 1, resolver.callCount)
}

func TestResolveParametersSkipsContextWhenInputsComplete(testInstance *testing.T) {
	resolver := availableResolverWithCounter()

	inputs := provision.ParameterInputs{
		Organization: testExplicitOrganizationConstant,
		Repository:   testExplicitRepositoryConstant,
		ProjectName:  testExplicitProjectNameConstant,
	}

	_, missingFields := provision.ResolveParameters(context.Background(), inputs, resolver)
	require.Empty(testInstance, missingFields)
	require.Zero(testInstance, resolver.callCount)
}

func availableResolverWithCounter() *stubContextResolver {
	return &stubContextResolver{
		repositoryContext: githubcli.RepositoryContext{
			Name:       testContextRepositoryNameConstant,
			OwnerLogin: testContextOwnerLoginConstant,
		},
	}
}

func TestValidateProjectName(testInstance *testing.T) {
	testCases := []struct {
		name        string
		projectName string
		expectError bool
	}{
		{name: "below_minimum", projectName: "abc", expectError: true},
		{name: "at_minimum", projectName: "abcd"},
		{name: "at_maximum", projectName: "abcdefghijklmnopq"},
		{name: "above_maximum", projectName: "abcdefghijklmnopqr", expectError: true},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			validationError := provision.ValidateProjectName(testCase.projectName)
			if testCase.expectError {
				require.Error(testInstance, validationError)
				require.IsType(testInstance, provision.ProjectNameLengthError{}, validationError)
			} else {
				require.NoError(testInstance, validationError)
			}
		})
	}
}
