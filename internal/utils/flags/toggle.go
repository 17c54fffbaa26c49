package flags

import (
	"fmt"
	"strings"
	"sync"

	"github.com/spf13/pflag"
)

const (
	toggleTrueCanonicalValue       = "true"
	toggleFalseCanonicalValue      = "false"
	toggleTypeNameConstant         = "bool"
	toggleParseErrorTemplate       = "invalid toggle value %q (expected yes/no, true/false, on/off, 1/0)"
	toggleUsageTemplate            = "`%s` %s"
	toggleUsagePlaceholderTemplate = "`%s`"
	toggleTruePlaceholderConstant  = "<YES|no>"
	toggleFalsePlaceholderConstant = "<yes|NO>"
	longFlagPrefixConstant         = "--"
	shortFlagPrefixConstant        = "-"
	flagValueSeparatorConstant     = "="
	argumentTerminatorConstant     = "--"
)

var (
	toggleLiterals = map[string]bool{
		"true":  true,
		"yes":   true,
		"on":    true,
		"1":     true,
		"t":     true,
		"y":     true,
		"false": false,
		"no":    false,
		"off":   false,
		"0":     false,
		"f":     false,
		"n":     false,
	}

	toggleRegistry = &registeredToggles{names: map[string]struct{}{}, shorthands: map[string]struct{}{}}
)

type registeredToggles struct {
	mutex      sync.RWMutex
	names      map[string]struct{}
	shorthands map[string]struct{}
}

func (registry *registeredToggles) register(name string, shorthand string) {
	registry.mutex.Lock()
	defer registry.mutex.Unlock()
	registry.names[name] = struct{}{}
	if len(shorthand) > 0 {
		registry.shorthands[shorthand] = struct{}{}
	}
}

func (registry *registeredToggles) hasName(name string) bool {
	registry.mutex.RLock()
	defer registry.mutex.RUnlock()
	_, exists := registry.names[name]
	return exists
}

func (registry *registeredToggles) hasShorthand(shorthand string) bool {
	registry.mutex.RLock()
	defer registry.mutex.RUnlock()
	_, exists := registry.shorthands[shorthand]
	return exists
}

// AddToggleFlag registers a boolean flag that also accepts yes/no style values, so both "--dry-run" and
// "--dry-run no" work.
func AddToggleFlag(flagSet *pflag.FlagSet, target *bool, name string, shorthand string, defaultValue bool, usage string) {
	if flagSet == nil || len(name) == 0 {
		return
	}

	value := &toggleValue{target: target}
	value.assign(defaultValue)
	flagSet.VarP(value, name, shorthand, formatToggleUsage(usage, defaultValue))

	if registeredFlag := flagSet.Lookup(name); registeredFlag != nil {
		registeredFlag.NoOptDefVal = toggleTrueCanonicalValue
	}
	toggleRegistry.register(name, shorthand)
}

func formatToggleUsage(description string, defaultValue bool) string {
	placeholder := toggleFalsePlaceholderConstant
	if defaultValue {
		placeholder = toggleTruePlaceholderConstant
	}
	trimmedDescription := strings.TrimSpace(description)
	if len(trimmedDescription) == 0 {
		return fmt.Sprintf(toggleUsagePlaceholderTemplate, placeholder)
	}
	return fmt.Sprintf(toggleUsageTemplate, placeholder, trimmedDescription)
}

// NormalizeToggleArguments joins a registered toggle and its separate value ("--force yes") into the single
// "--force=yes" form pflag expects. Everything after "--" is left untouched.
func NormalizeToggleArguments(arguments []string) []string {
	if len(arguments) == 0 {
		return nil
	}

	normalized := make([]string, 0, len(arguments))
	for index := 0; index < len(arguments); index++ {
		current := arguments[index]
		if current == argumentTerminatorConstant {
			normalized = append(normalized, arguments[index:]...)
			break
		}
		if acceptsSeparateValue(current) && index+1 < len(arguments) && isToggleLiteral(arguments[index+1]) {
			normalized = append(normalized, current+flagValueSeparatorConstant+arguments[index+1])
			index++
			continue
		}
		normalized = append(normalized, current)
	}
	return normalized
}

func acceptsSeparateValue(argument string) bool {
	if strings.Contains(argument, flagValueSeparatorConstant) {
		return false
	}
	if strings.HasPrefix(argument, longFlagPrefixConstant) {
		return toggleRegistry.hasName(strings.TrimPrefix(argument, longFlagPrefixConstant))
	}
	if strings.HasPrefix(argument, shortFlagPrefixConstant) {
		shorthand := strings.TrimPrefix(argument, shortFlagPrefixConstant)
		return len(shorthand) == 1 && toggleRegistry.hasShorthand(shorthand)
	}
	return false
}

func isToggleLiteral(candidate string) bool {
	_, known := toggleLiterals[strings.ToLower(strings.TrimSpace(candidate))]
	return known
}

type toggleValue struct {
	current bool
	target  *bool
}

func (value *toggleValue) assign(parsed bool) {
	value.current = parsed
	if value.target != nil {
		*value.target = parsed
	}
}

func (value *toggleValue) Set(rawValue string) error {
	normalizedValue := strings.ToLower(strings.TrimSpace(rawValue))
	if len(normalizedValue) == 0 {
		normalizedValue = toggleTrueCanonicalValue
	}
	parsed, known := toggleLiterals[normalizedValue]
	if !known {
		return fmt.Errorf(toggleParseErrorTemplate, rawValue)
	}
	value.assign(parsed)
	return nil
}

func (value *toggleValue) String() string {
	if value != nil && value.current {
		return toggleTrueCanonicalValue
	}
	return toggleFalseCanonicalValue
}

func (value *toggleValue) Type() string {
	return toggleTypeNameConstant
}
