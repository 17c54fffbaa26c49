package cli

import _ "embed"

//go:embed default_config.yaml
var defaultSettingsContent []byte

// EmbeddedDefaultConfiguration returns a copy of the built-in settings and their encoding.
func EmbeddedDefaultConfiguration() ([]byte, string) {
	return append([]byte(nil), defaultSettingsContent...), configurationTypeConstant
}
