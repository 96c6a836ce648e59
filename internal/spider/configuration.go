package spider

import (
	"runtime"
	"strings"

	pathutils "github.com/temirov/sfreport/internal/utils/path"
)

const (
	binaryConfigurationKeySuffixConstant      = ".binary"
	configPathConfigurationKeySuffixConstant  = ".config_path"
	exportsRootConfigurationKeySuffixConstant = ".exports_root"
	defaultExportsRootConstant                = "exports"
	darwinOperatingSystemConstant             = "darwin"
	darwinLauncherPathConstant                = "/Applications/Screaming Frog SEO Spider.app/Contents/MacOS/ScreamingFrogSEOSpiderLauncher"
	defaultLauncherNameConstant               = "screamingfrogseospider"
)

// CommandConfiguration captures persistent settings shared by the spider-facing commands.
type CommandConfiguration struct {
	Binary      string `mapstructure:"binary"`
	ConfigPath  string `mapstructure:"config_path"`
	ExportsRoot string `mapstructure:"exports_root"`
}

// DefaultConfigurationValues returns baseline configuration values keyed under the supplied prefix.
func DefaultConfigurationValues(configurationKeyPrefix string) map[string]any {
	return map[string]any{
		configurationKeyPrefix + binaryConfigurationKeySuffixConstant:      DefaultBinaryPath(),
		configurationKeyPrefix + configPathConfigurationKeySuffixConstant:  "",
		configurationKeyPrefix + exportsRootConfigurationKeySuffixConstant: defaultExportsRootConstant,
	}
}

// DefaultBinaryPath returns the platform default launcher location.
func DefaultBinaryPath() string {
	if runtime.GOOS == darwinOperatingSystemConstant {
		return darwinLauncherPathConstant
	}
	return defaultLauncherNameConstant
}

func (configuration CommandConfiguration) sanitize() CommandConfiguration {
	homeExpander := pathutils.NewHomeExpander()

	sanitized := configuration
	sanitized.Binary = strings.TrimSpace(configuration.Binary)
	if len(sanitized.Binary) == 0 {
		sanitized.Binary = DefaultBinaryPath()
	}
	sanitized.Binary = homeExpander.Expand(sanitized.Binary)

	sanitized.ConfigPath = homeExpander.Expand(strings.TrimSpace(configuration.ConfigPath))

	sanitized.ExportsRoot = strings.TrimSpace(configuration.ExportsRoot)
	if len(sanitized.ExportsRoot) == 0 {
		sanitized.ExportsRoot = defaultExportsRootConstant
	}
	sanitized.ExportsRoot = homeExpander.Expand(sanitized.ExportsRoot)

	return sanitized
}
