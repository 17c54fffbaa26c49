package shared

import (
	"fmt"
	"strings"
)

// ExtraRemotePolicy governs remotes that exist locally but are not declared.
type ExtraRemotePolicy string

const (
	// ExtraRemotePolicyIgnore leaves undeclared remotes untouched.
	ExtraRemotePolicyIgnore ExtraRemotePolicy = "ignore"

	// ExtraRemotePolicyWarn reports undeclared remotes without touching them.
	ExtraRemotePolicyWarn ExtraRemotePolicy = "warn"

	// ExtraRemotePolicyRemove deletes undeclared remotes.
	ExtraRemotePolicyRemove ExtraRemotePolicy = "remove"
)

const unsupportedExtraRemotePolicyTemplateConstant = "unsupported extra remote policy %q (expected ignore, warn, or remove)"

// ParseExtraRemotePolicy converts textual input into a policy, defaulting empty input to ignore.
func ParseExtraRemotePolicy(raw string) (ExtraRemotePolicy, error) {
	normalized := strings.ToLower(strings.TrimSpace(raw))
	switch ExtraRemotePolicy(normalized) {
	case "", ExtraRemotePolicyIgnore:
		return ExtraRemotePolicyIgnore, nil
	case ExtraRemotePolicyWarn:
		return ExtraRemotePolicyWarn, nil
	case ExtraRemotePolicyRemove:
		return ExtraRemotePolicyRemove, nil
	default:
		return "", fmt.Errorf(unsupportedExtraRemotePolicyTemplateConstant, raw)
	}
}

// Normalized returns the policy with the empty value resolved to ignore.
func (policy ExtraRemotePolicy) Normalized() ExtraRemotePolicy {
	if len(policy) == 0 {
		return ExtraRemotePolicyIgnore
	}
	return policy
}

// String returns the lowercase textual form.
func (policy ExtraRemotePolicy) String() string {
	return string(policy.Normalized())
}

// MarshalText implements encoding.TextMarshaler.
func (policy ExtraRemotePolicy) MarshalText() ([]byte, error) {
	return []byte(policy.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (policy *ExtraRemotePolicy) UnmarshalText(text []byte) error {
	parsedPolicy, parseError := ParseExtraRemotePolicy(string(text))
	if parseError != nil {
		return parseError
	}
	*policy = parsedPolicy
	return nil
}
