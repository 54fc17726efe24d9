package provision

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	environmentsDocumentKeyConstant       = "environments"
	embeddedCatalogPathLabelConstant      = "embedded default catalog"
	catalogReadErrorMessageConstant       = "catalog could not be read"
	catalogParseErrorMessageConstant      = "catalog could not be parsed"
	catalogEmptyErrorMessageConstant      = "catalog defines no environments"
	catalogMissingKeyErrorMessageConstant = "catalog is missing the environments mapping"
	catalogShapeErrorMessageConstant      = "environments must be a mapping of abbreviation to display name"
	catalogErrorTemplateConstant          = "%s: %s"
	catalogErrorWithCauseTemplateConstant = "%s: %s: %s"
)

//go:embed default_environments.yaml
var embeddedDefaultCatalog []byte

// CatalogEntry pairs an environment abbreviation with its remote display name.
type CatalogEntry struct {
	Abbreviation string
	DisplayName  string
}

// EnvironmentCatalog is an ordered list of catalog entries preserving document order.
type EnvironmentCatalog []CatalogEntry

// CatalogError reports a catalog that could not be loaded or parsed.
type CatalogError struct {
	Path    string
	Message string
	Cause   error
}

// Error describes the catalog failure including its source path.
func (catalogError CatalogError) Error() string {
	if catalogError.Cause == nil {
		return fmt.Sprintf(catalogErrorTemplateConstant, catalogError.Path, catalogError.Message)
	}
	return fmt.Sprintf(catalogErrorWithCauseTemplateConstant, catalogError.Path, catalogError.Message, catalogError.Cause)
}

// Unwrap exposes the underlying cause.
func (catalogError CatalogError) Unwrap() error {
	return catalogError.Cause
}

// LoadCatalog reads the environment catalog from the provided path.
//
// An empty path selects the embedded default catalog. A configured path that
// cannot be read or parsed is fatal to the run, so the error carries enough
// detail for diagnostics.
func LoadCatalog(catalogPath string) (EnvironmentCatalog, error) {
	trimmedCatalogPath := strings.TrimSpace(catalogPath)
	if len(trimmedCatalogPath) == 0 {
		return parseCatalog(embeddedCatalogPathLabelConstant, embeddedDefaultCatalog)
	}

	catalogData, readError := os.ReadFile(trimmedCatalogPath)
	if readError != nil {
		return nil, CatalogError{Path: trimmedCatalogPath, Message: catalogReadErrorMessageConstant, Cause: readError}
	}

	return parseCatalog(trimmedCatalogPath, catalogData)
}

func parseCatalog(catalogPath string, catalogData []byte) (EnvironmentCatalog, error) {
	var documentNode yaml.Node
	unmarshalError := yaml.Unmarshal(catalogData, &documentNode)
	if unmarshalError != nil {
		return nil, CatalogError{Path: catalogPath, Message: catalogParseErrorMessageConstant, Cause: unmarshalError}
	}

	if len(documentNode.Content) == 0 || documentNode.Content[0].Kind != yaml.MappingNode {
		return nil, CatalogError{Path: catalogPath, Message: catalogMissingKeyErrorMessageConstant}
	}

	environmentsNode := findMappingValue(documentNode.Content[0], environmentsDocumentKeyConstant)
	if environmentsNode == nil {
		return nil, CatalogError{Path: catalogPath, Message: catalogMissingKeyErrorMessageConstant}
	}
	if environmentsNode.Kind != yaml.MappingNode {
		return nil, CatalogError{Path: catalogPath, Message: catalogShapeErrorMessageConstant}
	}

	catalog := make(EnvironmentCatalog, 0, len(environmentsNode.Content)/2)
	for contentIndex := 0; contentIndex+1 < len(environmentsNode.Content); contentIndex += 2 {
		keyNode := environmentsNode.Content[contentIndex]
		valueNode := environmentsNode.Content[contentIndex+1]
		if keyNode.Kind != yaml.ScalarNode || valueNode.Kind != yaml.ScalarNode {
			return nil, CatalogError{Path: catalogPath, Message: catalogShapeErrorMessageConstant}
		}

		abbreviation := strings.TrimSpace(keyNode.Value)
		displayName := strings.TrimSpace(valueNode.Value)
		if len(abbreviation) == 0 || len(displayName) == 0 {
			return nil, CatalogError{Path: catalogPath, Message: catalogShapeErrorMessageConstant}
		}

		catalog = append(catalog, CatalogEntry{Abbreviation: abbreviation, DisplayName: displayName})
	}

	if len(catalog) == 0 {
		return nil, CatalogError{Path: catalogPath, Message: catalogEmptyErrorMessageConstant}
	}

	return catalog, nil
}

func findMappingValue(mappingNode *yaml.Node, mappingKey string) *yaml.Node {
	for contentIndex := 0; contentIndex+1 < len(mappingNode.Content); contentIndex += 2 {
		if mappingNode.Content[contentIndex].Value == mappingKey {
			return mappingNode.Content[contentIndex+1]
		}
	}
	return nil
}
