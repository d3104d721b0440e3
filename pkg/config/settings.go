package config

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
)

// ErrInvalidSetting is wrapped by every settings decoding failure.
var ErrInvalidSetting = errors.New("invalid rule setting")

// HeadingStyle selects the heading style enforced by MD003.
type HeadingStyle string

const (
	HeadingStyleAny       HeadingStyle = "any"
	HeadingStyleATX       HeadingStyle = "atx"
	HeadingStyleATXClosed HeadingStyle = "atx_closed"
	HeadingStyleSetext    HeadingStyle = "setext"
)

// ParseHeadingStyle converts a configured value to a HeadingStyle.
func ParseHeadingStyle(raw any) (HeadingStyle, error) {
	str, err := DecodeString(raw)
	if err != nil {
		return "", err
	}
	switch style := HeadingStyle(strings.ToLower(str)); style {
	case HeadingStyleAny, HeadingStyleATX, HeadingStyleATXClosed, HeadingStyleSetext:
		return style, nil
	}
	return "", fmt.Errorf("%w: unknown heading style %q (want any, atx, atx_closed or setext)", ErrInvalidSetting, str)
}

// ListStyle selects the unordered list marker policy enforced by MD004.
type ListStyle string

const (
	ListStyleAsterisk ListStyle = "asterisk"
	ListStylePlus     ListStyle = "plus"
	ListStyleDash     ListStyle = "dash"
	ListStyleSingle   ListStyle = "single"
	ListStyleCyclic   ListStyle = "cyclic"
	ListStyleAny      ListStyle = "any"
)

// Marker returns the fixed marker of a fixed style, or 0.
func (s ListStyle) Marker() byte {
	switch s {
	case ListStyleAsterisk:
		return '*'
	case ListStylePlus:
		return '+'
	case ListStyleDash:
		return '-'
	case ListStyleSingle, ListStyleCyclic, ListStyleAny:
		return 0
	}
	return 0
}

// ParseListStyle converts a configured value to a ListStyle.
func ParseListStyle(raw any) (ListStyle, error) {
	str, err := DecodeString(raw)
	if err != nil {
		return "", err
	}
	switch style := ListStyle(strings.ToLower(str)); style {
	case ListStyleAsterisk, ListStylePlus, ListStyleDash, ListStyleSingle, ListStyleCyclic, ListStyleAny:
		return style, nil
	}
	return "", fmt.Errorf("%w: unknown list style %q", ErrInvalidSetting, str)
}

// OrderedStyle selects the ordered list numbering enforced by MD029.
type OrderedStyle string

const (
	OrderedStyleAny     OrderedStyle = "any"
	OrderedStyleOne     OrderedStyle = "one"
	OrderedStyleOrdered OrderedStyle = "ordered"
)

// ParseOrderedStyle converts a configured value to an OrderedStyle.
func ParseOrderedStyle(raw any) (OrderedStyle, error) {
	str, err := DecodeString(raw)
	if err != nil {
		return "", err
	}
	switch style := OrderedStyle(strings.ToLower(str)); style {
	case OrderedStyleAny, OrderedStyleOne, OrderedStyleOrdered:
		return style, nil
	}
	return "", fmt.Errorf("%w: unknown ordered list style %q (want any, one or ordered)", ErrInvalidSetting, str)
}

// MarkerSpacing holds the spaces required after a list marker by MD030.
type MarkerSpacing struct {
	ULSingle int `yaml:"ul_single" toml:"ul_single"`
	OLSingle int `yaml:"ol_single" toml:"ol_single"`
	ULMulti  int `yaml:"ul_multi" toml:"ul_multi"`
	OLMulti  int `yaml:"ol_multi" toml:"ol_multi"`
}

// DefaultMarkerSpacing requires a single space everywhere.
func DefaultMarkerSpacing() MarkerSpacing {
	return MarkerSpacing{ULSingle: 1, OLSingle: 1, ULMulti: 1, OLMulti: 1}
}

// DecodeMarkerSpacing decodes a mapping of spacing values. Absent keys keep
// their default; unknown keys are rejected.
func DecodeMarkerSpacing(raw any) (MarkerSpacing, error) {
	out := DefaultMarkerSpacing()

	switch val := raw.(type) {
	case MarkerSpacing:
		return val, val.validate()
	case *MarkerSpacing:
		if val == nil {
			return out, nil
		}
		return *val, val.validate()
	}

	fields, ok := raw.(map[string]any)
	if !ok {
		return out, fmt.Errorf("%w: expected a mapping with ul_single, ol_single, ul_multi, ol_multi; got %T", ErrInvalidSetting, raw)
	}

	targets := map[string]*int{
		"ul_single": &out.ULSingle,
		"ol_single": &out.OLSingle,
		"ul_multi":  &out.ULMulti,
		"ol_multi":  &out.OLMulti,
	}

	keys := make([]string, 0, len(fields))
	for key := range fields {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		target, known := targets[strings.ToLower(key)]
		if !known {
			return out, fmt.Errorf("%w: unknown spacing key %q", ErrInvalidSetting, key)
		}
		n, err := DecodeInt(fields[key])
		if err != nil {
			return out, fmt.Errorf("%s: %w", key, err)
		}
		if n < 0 {
			return out, fmt.Errorf("%w: %s must not be negative", ErrInvalidSetting, key)
		}
		*target = n
	}

	return out, nil
}

func (m MarkerSpacing) validate() error {
	for key, n := range map[string]int{
		"ul_single": m.ULSingle,
		"ol_single": m.OLSingle,
		"ul_multi":  m.ULMulti,
		"ol_multi":  m.OLMulti,
	} {
		if n < 0 {
			return fmt.Errorf("%w: %s must not be negative", ErrInvalidSetting, key)
		}
	}
	return nil
}

// DecodeInt accepts the integer shapes produced by the YAML and TOML
// decoders, plus numeric strings.
func DecodeInt(raw any) (int, error) {
	switch val := raw.(type) {
	case int:
		return val, nil
	case int64:
		return int(val), nil
	case uint64:
		if val > math.MaxInt {
			return 0, fmt.Errorf("%w: %d is out of range", ErrInvalidSetting, val)
		}
		return int(val), nil
	case float64:
		if val != math.Trunc(val) {
			return 0, fmt.Errorf("%w: expected an integer, got %v", ErrInvalidSetting, val)
		}
		return int(val), nil
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(val))
		if err != nil {
			return 0, fmt.Errorf("%w: expected an integer, got %q", ErrInvalidSetting, val)
		}
		return n, nil
	}
	return 0, fmt.Errorf("%w: expected an integer, got %T", ErrInvalidSetting, raw)
}

// DecodeString accepts a scalar string or one of the typed style values.
func DecodeString(raw any) (string, error) {
	switch val := raw.(type) {
	case string:
		return val, nil
	case HeadingStyle:
		return string(val), nil
	case ListStyle:
		return string(val), nil
	case OrderedStyle:
		return string(val), nil
	}
	return "", fmt.Errorf("%w: expected a string, got %T", ErrInvalidSetting, raw)
}
