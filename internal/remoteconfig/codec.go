package remoteconfig

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Format identifies a document encoding.
type Format string

const (
	// FormatTOML is the default .gemote encoding.
	FormatTOML Format = "toml"
	// FormatYAML is selected for .yaml and .yml files.
	FormatYAML Format = "yaml"
)

const (
	tomlDocumentHeaderConstant         = "# Gemote configuration file\n# See: https://github.com/twangodev/gemote\n#\n# -*- mode: toml -*-\n# vim: set ft=toml:\n\n"
	yamlFileExtensionConstant          = ".yaml"
	ymlFileExtensionConstant           = ".yml"
	yamlIndentWidthConstant            = 2
	undecodedKeysErrorTemplateConstant = "unknown keys: %s"
	undecodedKeysSeparatorConstant     = ", "
	unsupportedFormatErrorTemplate     = "unsupported configuration format %q"
	encodeErrorTemplateConstant        = "unable to encode configuration: %w"
)

// FormatForPath selects YAML for .yaml and .yml files and TOML otherwise.
func FormatForPath(documentPath string) Format {
	switch strings.ToLower(filepath.Ext(documentPath)) {
	case yamlFileExtensionConstant, ymlFileExtensionConstant:
		return FormatYAML
	default:
		return FormatTOML
	}
}

// Parse decodes and validates a document. Syntax errors are reported as *ParseError and
// semantic errors as *ValidationError.
func Parse(content []byte, format Format) (*Node, error) {
	node := &Node{}
	switch format {
	case FormatTOML, "":
		metadata, decodeError := toml.Decode(string(content), node)
		if decodeError != nil {
			return nil, &ParseError{Err: decodeError}
		}
		if undecoded := metadata.Undecoded(); len(undecoded) > 0 {
			undecodedKeys := make([]string, 0, len(undecoded))
			for _, key := range undecoded {
				undecodedKeys = append(undecodedKeys, key.String())
			}
			return nil, &ParseError{Err: fmt.Errorf(undecodedKeysErrorTemplateConstant, strings.Join(undecodedKeys, undecodedKeysSeparatorConstant))}
		}
	case FormatYAML:
		decoder := yaml.NewDecoder(bytes.NewReader(content))
		decoder.KnownFields(true)
		if decodeError := decoder.Decode(node); decodeError != nil && !errors.Is(decodeError, io.EOF) {
			return nil, &ParseError{Err: decodeError}
		}
	default:
		return nil, &ParseError{Err: fmt.Errorf(unsupportedFormatErrorTemplate, format)}
	}

	normalizedNode, validationError := Normalize(node)
	if validationError != nil {
		return nil, validationError
	}
	return normalizedNode, nil
}

// Serialize encodes a node. TOML output starts with the standard header comment.
func Serialize(node *Node, format Format) ([]byte, error) {
	normalizedNode, validationError := Normalize(node)
	if validationError != nil {
		return nil, validationError
	}

	var buffer bytes.Buffer
	switch format {
	case FormatTOML, "":
		buffer.WriteString(tomlDocumentHeaderConstant)
		encoder := toml.NewEncoder(&buffer)
		encoder.Indent = ""
		if encodeError := encoder.Encode(normalizedNode); encodeError != nil {
			return nil, fmt.Errorf(encodeErrorTemplateConstant, encodeError)
		}
	case FormatYAML:
		encoder := yaml.NewEncoder(&buffer)
		encoder.SetIndent(yamlIndentWidthConstant)
		if encodeError := encoder.Encode(normalizedNode); encodeError != nil {
			return nil, fmt.Errorf(encodeErrorTemplateConstant, encodeError)
		}
		if closeError := encoder.Close(); closeError != nil {
			return nil, fmt.Errorf(encodeErrorTemplateConstant, closeError)
		}
	default:
		return nil, fmt.Errorf(unsupportedFormatErrorTemplate, format)
	}
	return buffer.Bytes(), nil
}
