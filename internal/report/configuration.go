package report

import "strings"

const (
	outputConfigurationKeySuffixConstant = ".output"
	defaultOutputPathConstant            = "report.xlsx"
)

// CommandConfiguration captures persistent settings for the report command.
type CommandConfiguration struct {
	Output string `mapstructure:"output"`
}

// DefaultConfigurationValues returns baseline configuration values keyed under the supplied prefix.
func DefaultConfigurationValues(configurationKeyPrefix string) map[string]any {
	return map[string]any{
		configurationKeyPrefix + outputConfigurationKeySuffixConstant: defaultOutputPathConstant,
	}
}

// ResolvedOutputPath returns the configured output path falling back to the default workbook name.
func (configuration CommandConfiguration) ResolvedOutputPath() string {
	return configuration.sanitize().Output
}

func (configuration CommandConfiguration) sanitize() CommandConfiguration {
	sanitized := configuration
	sanitized.Output = strings.TrimSpace(configuration.Output)
	if len(sanitized.Output) == 0 {
		sanitized.Output = defaultOutputPathConstant
	}
	return sanitized
}
