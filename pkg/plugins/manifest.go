package plugins

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	"gopkg.in/yaml.v3"
)

// ManifestFileName is the file discovery looks for inside each plugin directory.
const ManifestFileName = "plugin.yaml"

var semverRegex = regexp.MustCompile(`^v?(\d+)\.(\d+)\.(\d+)(-[a-zA-Z0-9.-]+)?(\+[a-zA-Z0-9.-]+)?$`)

// Manifest describes one plugin definition as declared in its plugin.yaml.
type Manifest struct {
	Name        string            `yaml:"name"`        // Type-name, e.g. "ValidateMeshNaming"
	Version     string            `yaml:"version"`     // Semver
	APIVersion  string            `yaml:"api_version"` // Engine API version
	Stage       Stage             `yaml:"stage"`       // Pipeline stage tag (open set)
	Runtime     string            `yaml:"runtime"`     // Factory name; defaults to Name
	Hosts       []string          `yaml:"hosts"`       // Supported authoring applications; empty means unrestricted
	Families    []string          `yaml:"families"`    // Anchored family patterns; empty means unrestricted
	Description string            `yaml:"description"` // Short description
	Author      string            `yaml:"author"`      // Author name
	Metadata    map[string]string `yaml:"metadata"`    // Additional metadata
}

// SupportsHost reports whether the manifest declares support for the host.
// An empty host list means no restriction.
func (m *Manifest) SupportsHost(host string) bool {
	if len(m.Hosts) == 0 {
		return true
	}
	for _, h := range m.Hosts {
		if h == host {
			return true
		}
	}
	return false
}

// runtimeName resolves the factory name the manifest binds to.
func (m *Manifest) runtimeName() string {
	if m.Runtime != "" {
		return m.Runtime
	}
	return m.Name
}

// LoadManifest loads and parses a plugin manifest from a file.
func LoadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest: %w", err)
	}

	var manifest Manifest
	if err := yaml.Unmarshal(data, &manifest); err != nil {
		return nil, fmt.Errorf("failed to parse manifest: %w", err)
	}

	return &manifest, nil
}

// LoadManifestFromDir loads a plugin manifest from a directory (looks for plugin.yaml).
func LoadManifestFromDir(dir string) (*Manifest, error) {
	return LoadManifest(filepath.Join(dir, ManifestFileName))
}

// SaveManifest saves a plugin manifest to a file.
func SaveManifest(manifest *Manifest, path string) error {
	data, err := yaml.Marshal(manifest)
	if err != nil {
		return fmt.Errorf("failed to marshal manifest: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write manifest: %w", err)
	}

	return nil
}

// ValidateManifest performs basic validation on a plugin manifest.
func ValidateManifest(manifest *Manifest) []ValidationError {
	var errors []ValidationError

	if manifest.Name == "" {
		errors = append(errors, ValidationError{
			Field:   "name",
			Message: "Plugin name is required",
		})
	}

	if manifest.Version == "" {
		errors = append(errors, ValidationError{
			Field:   "version",
			Message: "Version is required",
		})
	}

	if manifest.Stage == "" {
		errors = append(errors, ValidationError{
			Field:   "stage",
			Message: "Pipeline stage is required",
		})
	}

	if manifest.Version != "" && !isValidSemver(manifest.Version) {
		errors = append(errors, ValidationError{
			Field:   "version",
			Message: fmt.Sprintf("Invalid semver format: %s", manifest.Version),
		})
	}

	if manifest.APIVersion != "" && !isValidSemver(manifest.APIVersion) {
		errors = append(errors, ValidationError{
			Field:   "api_version",
			Message: fmt.Sprintf("Invalid semver format: %s", manifest.APIVersion),
		})
	}

	for _, pattern := range manifest.Families {
		if _, err := regexp.Compile(pattern); err != nil {
			errors = append(errors, ValidationError{
				Field:   "families",
				Message: fmt.Sprintf("Invalid family pattern %q: %v", pattern, err),
			})
		}
	}

	return errors
}

// isValidSemver checks if a version string follows semantic versioning.
func isValidSemver(version string) bool {
	return semverRegex.MatchString(version)
}
