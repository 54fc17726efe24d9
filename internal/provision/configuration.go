package provision

const (
	organizationConfigurationKeyConstant = "organization"
	repositoryConfigurationKeyConstant   = "repository"
	projectNameConfigurationKeyConstant  = "project_name"
	variableNameConfigurationKeyConstant = "variable_name"
	catalogPathConfigurationKeyConstant  = "catalog_path"
	configurationKeySeparatorConstant    = "."
	defaultVariableNameConstant          = "PROJECT_NAME"
)

// CommandConfiguration captures configurable defaults for the provisioning command.
type CommandConfiguration struct {
	Organization string `mapstructure:"organization"`
	Repository   string `mapstructure:"repository"`
	ProjectName  string `mapstructure:"project_name"`
	VariableName string `mapstructure:"variable_name"`
	CatalogPath  string `mapstructure:"catalog_path"`
}

// DefaultConfigurationValues returns default configuration entries scoped under the provided prefix.
func DefaultConfigurationValues(configurationPrefix string) map[string]any {
	return map[string]any{
		configurationPrefix + configurationKeySeparatorConstant + variableNameConfigurationKeyConstant: defaultVariableNameConstant,
	}
}
