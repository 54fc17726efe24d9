package provision_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/repoenv/internal/provision"
)

const (
	testSummaryParametersTitleConstant  = "Resolved parameters"
	testSummaryCatalogTitleConstant     = "Environments to provision"
	testSummaryMissingPlaceholder       = "(missing)"
	testSummaryWarningFragmentConstant  = "overwrite variables"
	testSummaryCancellationDisclaimer   = "not rolled back"
	testSummaryFirstEnvironmentConstant = "development"
	testSummaryLastEnvironmentConstant  = "production"
)

func renderSummaryForTest(testInstance *testing.T, parameters provision.ProjectParameters, missingFields []string, catalog provision.EnvironmentCatalog) string {
	output := &bytes.Buffer{}
	renderer := provision.NewSummaryRenderer(output)

	renderError := renderer.RenderSummary(parameters, missingFields, catalog)
	require.NoError(testInstance, renderError)
	return output.String()
}

func TestRenderSummaryListsParametersAndCatalog(testInstance *testing.T) {
	catalog := provision.EnvironmentCatalog{
		{Abbreviation: "dev", DisplayName: testSummaryFirstEnvironmentConstant},
		{Abbreviation: "prod", DisplayName: testSummaryLastEnvironmentConstant},
	}
	parameters := provision.ProjectParameters{
		OrganizationName: testServiceOrganizationConstant,
		RepositoryName:   testServiceRepositoryConstant,
		ProjectName:      testServiceProjectNameConstant,
	}

	renderedSummary := renderSummaryForTest(testInstance, parameters, nil, catalog)

	require.Contains(testInstance, renderedSummary, testSummaryParametersTitleConstant)
	require.Contains(testInstance, renderedSummary, testServiceOrganizationConstant)
	require.Contains(testInstance, renderedSummary, testSummaryCatalogTitleConstant)
	require.Contains(testInstance, renderedSummary, testSummaryWarningFragmentConstant)
	require.Contains(testInstance, renderedSummary, testSummaryCancellationDisclaimer)
	require.NotContains(testInstance, renderedSummary, testSummaryMissingPlaceholder)

	firstEnvironmentIndex := strings.Index(renderedSummary, testSummaryFirstEnvironmentConstant)
	lastEnvironmentIndex := strings.Index(renderedSummary, testSummaryLastEnvironmentConstant)
	require.GreaterOrEqual(testInstance, firstEnvironmentIndex, 0)
	require.Greater(testInstance, lastEnvironmentIndex, firstEnvironmentIndex)
}

func TestRenderSummaryMarksMissingParameters(testInstance *testing.T) {
	catalog := provision.EnvironmentCatalog{
		{Abbreviation: "dev", DisplayName: testSummaryFirstEnvironmentConstant},
	}
	parameters := provision.ProjectParameters{RepositoryName: testServiceRepositoryConstant}
	missingFields := []string{"organization", "project_name"}

	renderedSummary := renderSummaryForTest(testInstance, parameters, missingFields, catalog)

	require.Contains(testInstance, renderedSummary, testServiceRepositoryConstant)
	require.Equal(testInstance, 2, strings.Count(renderedSummary, testSummaryMissingPlaceholder))
}
