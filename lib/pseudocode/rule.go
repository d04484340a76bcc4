// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package pseudocode

import (
	"fmt"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

// namePlaceholder marks where the target function's name is substituted
// into the anchor pattern. The name is regexp-quoted before
// substitution, so names containing metacharacters match literally.
const namePlaceholder = "{name}"

// labelPlaceholder marks where a block label is substituted when
// rendering a marker line.
const labelPlaceholder = "{label}"

// RuleConfig is the serialized form of a marker rule. It is what a
// rule override file contains. Zero-valued fields fall back to the
// defaults, so a file may override just the marker syntax while
// keeping the default anchor.
type RuleConfig struct {
	// AnchorPattern matches the function's declaration line. It must
	// contain the {name} placeholder and at least one capture group;
	// AnchorGroup selects the group holding the start label (the
	// declared parameter text).
	AnchorPattern string `yaml:"anchor_pattern"`
	AnchorGroup   int    `yaml:"anchor_group"`

	// MarkerPattern matches a dedicated section-marker line.
	// MarkerGroup selects the capture group holding the label text.
	MarkerPattern string `yaml:"marker_pattern"`
	MarkerGroup   int    `yaml:"marker_group"`

	// MarkerFormat renders the canonical marker line for a label. It
	// must contain the {label} placeholder.
	MarkerFormat string `yaml:"marker_format"`
}

// defaultConfig is the built-in rule: Python-style declarations and
// "###" comment markers, the syntax the original annotations use.
var defaultConfig = RuleConfig{
	AnchorPattern: `\s*def\s*` + namePlaceholder + `\((.*)\):`,
	AnchorGroup:   1,
	MarkerPattern: `\s*###\s*(.*?)\s*`,
	MarkerGroup:   1,
	MarkerFormat:  "### " + labelPlaceholder,
}

// Rule is a compiled, immutable marker rule. Both patterns match whole
// lines only: a line that merely contains the pattern as a substring
// is not a marker.
type Rule struct {
	anchorPattern string
	anchorGroup   int
	marker        *regexp.Regexp
	markerGroup   int
	markerFormat  string
}

// defaultRule is compiled once at package initialization. The built-in
// config is a constant of this package, so compilation cannot fail
// outside of a programming error.
var defaultRule = func() *Rule {
	rule, err := NewRule(defaultConfig)
	if err != nil {
		panic("pseudocode: built-in rule failed to compile: " + err.Error())
	}
	return rule
}()

// DefaultRule returns the built-in marker rule: declaration lines of
// the form "def name(args):" with the parameter text as start label,
// and "### label" section markers.
func DefaultRule() *Rule {
	return defaultRule
}

// NewRule compiles a rule from its configuration. Zero-valued config
// fields inherit the built-in defaults. Returns an error when a
// pattern does not compile, a placeholder is missing, or a capture
// group index is out of range.
func NewRule(config RuleConfig) (*Rule, error) {
	if config.AnchorPattern == "" {
		config.AnchorPattern = defaultConfig.AnchorPattern
		if config.AnchorGroup == 0 {
			config.AnchorGroup = defaultConfig.AnchorGroup
		}
	}
	if config.MarkerPattern == "" {
		config.MarkerPattern = defaultConfig.MarkerPattern
		if config.MarkerGroup == 0 {
			config.MarkerGroup = defaultConfig.MarkerGroup
		}
	}
	if config.MarkerFormat == "" {
		config.MarkerFormat = defaultConfig.MarkerFormat
	}

	if !strings.Contains(config.AnchorPattern, namePlaceholder) {
		return nil, fmt.Errorf("anchor pattern %q does not contain the %s placeholder",
			config.AnchorPattern, namePlaceholder)
	}
	if !strings.Contains(config.MarkerFormat, labelPlaceholder) {
		return nil, fmt.Errorf("marker format %q does not contain the %s placeholder",
			config.MarkerFormat, labelPlaceholder)
	}

	// Probe-compile the anchor with a harmless name to validate the
	// pattern and the capture group index up front. QuoteMeta output
	// never adds capture groups, so the group count is independent of
	// the actual function name.
	probe, err := compileFullLine(strings.ReplaceAll(config.AnchorPattern, namePlaceholder, "probe"))
	if err != nil {
		return nil, fmt.Errorf("anchor pattern: %w", err)
	}
	if config.AnchorGroup < 1 || config.AnchorGroup > probe.NumSubexp() {
		return nil, fmt.Errorf("anchor group %d out of range: pattern has %d capture groups",
			config.AnchorGroup, probe.NumSubexp())
	}

	marker, err := compileFullLine(config.MarkerPattern)
	if err != nil {
		return nil, fmt.Errorf("marker pattern: %w", err)
	}
	if config.MarkerGroup < 1 || config.MarkerGroup > marker.NumSubexp() {
		return nil, fmt.Errorf("marker group %d out of range: pattern has %d capture groups",
			config.MarkerGroup, marker.NumSubexp())
	}

	return &Rule{
		anchorPattern: config.AnchorPattern,
		anchorGroup:   config.AnchorGroup,
		marker:        marker,
		markerGroup:   config.MarkerGroup,
		markerFormat:  config.MarkerFormat,
	}, nil
}

// ParseRule compiles a rule from YAML rule-override data. File
// loading is the caller's concern; this package never touches the
// filesystem.
func ParseRule(data []byte) (*Rule, error) {
	var config RuleConfig
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("parsing rule file: %w", err)
	}
	return NewRule(config)
}

// MarkerLine renders the canonical marker line for a label, e.g.
// "### setup" under the default rule. Used when re-rendering decoded
// blocks as annotated text.
func (r *Rule) MarkerLine(label string) string {
	return strings.ReplaceAll(r.markerFormat, labelPlaceholder, label)
}

// anchorFor compiles the declaration-line matcher for a specific
// function name. The name is regexp-quoted, so it must appear in the
// source literally, exactly as given.
func (r *Rule) anchorFor(functionName string) (*regexp.Regexp, error) {
	pattern := strings.ReplaceAll(r.anchorPattern, namePlaceholder, regexp.QuoteMeta(functionName))
	anchor, err := compileFullLine(pattern)
	if err != nil {
		return nil, fmt.Errorf("anchor pattern for %q: %w", functionName, err)
	}
	return anchor, nil
}

// matchMarker reports whether line is a section marker and, if so,
// returns the trimmed label text.
func (r *Rule) matchMarker(line string) (string, bool) {
	match := r.marker.FindStringSubmatch(line)
	if match == nil {
		return "", false
	}
	return strings.TrimSpace(match[r.markerGroup]), true
}

// compileFullLine anchors pattern so it must consume the entire line.
func compileFullLine(pattern string) (*regexp.Regexp, error) {
	return regexp.Compile(`\A(?:` + pattern + `)\z`)
}
