package provision

import (
	"fmt"
	"io"
	"strings"

	"github.com/temirov/repoenv/internal/ui"
)

const (
	parametersSummaryTitleConstant     = "Resolved parameters"
	catalogSummaryTitleConstant        = "Environments to provision"
	organizationSummaryLabelConstant   = "Organization"
	repositorySummaryLabelConstant     = "Repository"
	projectNameSummaryLabelConstant    = "Project name"
	missingValuePlaceholderConstant    = "(missing)"
	summaryRowTemplateConstant         = "  %s  %s\n"
	catalogRowTemplateConstant         = "  %s  %s\n"
	summaryLabelWidthConstant          = 14
	catalogAbbreviationWidthConstant   = 6
	provisioningWarningMessageConstant = "This will create environments and overwrite variables in the target repository."
	provisioningDisclaimerConstant     = "Partial results are not rolled back if a later step fails."
	confirmationPromptMessageConstant  = "Type 'y' to continue: "
	cancellationNoticeMessageConstant  = "Provisioning cancelled. No changes were made."
	completionNoticeMessageConstant    = "Done"
	newlineConstant                    = "\n"
)

// SummaryRenderer writes the pre-confirmation summary to the configured writer.
type SummaryRenderer struct {
	output io.Writer
}

// NewSummaryRenderer constructs a renderer targeting the provided writer.
func NewSummaryRenderer(output io.Writer) *SummaryRenderer {
	return &SummaryRenderer{output: output}
}

// RenderSummary prints the resolved parameters and catalog as styled tables
// followed by the fixed warning and disclaimer.
func (renderer *SummaryRenderer) RenderSummary(parameters ProjectParameters, missingFields []string, catalog EnvironmentCatalog) error {
	missingFieldSet := make(map[string]struct{}, len(missingFields))
	for _, missingField := range missingFields {
		missingFieldSet[missingField] = struct{}{}
	}

	summaryBuilder := &strings.Builder{}
	summaryBuilder.WriteString(ui.TitleStyle.Render(parametersSummaryTitleConstant))
	summaryBuilder.WriteString(newlineConstant)
	renderer.writeParameterRow(summaryBuilder, organizationSummaryLabelConstant, parameters.OrganizationName, missingFieldSet, organizationFieldNameConstant)
	renderer.writeParameterRow(summaryBuilder, repositorySummaryLabelConstant, parameters.RepositoryName, missingFieldSet, repositoryFieldNameConstant)
	renderer.writeParameterRow(summaryBuilder, projectNameSummaryLabelConstant, parameters.ProjectName, missingFieldSet, projectNameFieldNameConstant)
	summaryBuilder.WriteString(newlineConstant)

	summaryBuilder.WriteString(ui.TitleStyle.Render(catalogSummaryTitleConstant))
	summaryBuilder.WriteString(newlineConstant)
	for _, catalogEntry := range catalog {
		paddedAbbreviation := padValue(catalogEntry.Abbreviation, catalogAbbreviationWidthConstant)
		summaryBuilder.WriteString(fmt.Sprintf(catalogRowTemplateConstant, ui.MutedStyle.Render(paddedAbbreviation), catalogEntry.DisplayName))
	}
	summaryBuilder.WriteString(newlineConstant)

	summaryBuilder.WriteString(ui.WarningStyle.Render(provisioningWarningMessageConstant))
	summaryBuilder.WriteString(newlineConstant)
	summaryBuilder.WriteString(ui.WarningStyle.Render(provisioningDisclaimerConstant))
	summaryBuilder.WriteString(newlineConstant)

	_, writeError := io.WriteString(renderer.output, summaryBuilder.String())
	return writeError
}

func (renderer *SummaryRenderer) writeParameterRow(summaryBuilder *strings.Builder, label string, value string, missingFieldSet map[string]struct{}, fieldName string) {
	renderedValue := ui.SuccessStyle.Render(value)
	if _, fieldMissing := missingFieldSet[fieldName]; fieldMissing {
		renderedValue = ui.WarningStyle.Render(missingValuePlaceholderConstant)
	}
	summaryBuilder.WriteString(fmt.Sprintf(summaryRowTemplateConstant, ui.LabelStyle.Render(padValue(label, summaryLabelWidthConstant)), renderedValue))
}

func padValue(value string, width int) string {
	if len(value) >= width {
		return value
	}
	return value + strings.Repeat(" ", width-len(value))
}
