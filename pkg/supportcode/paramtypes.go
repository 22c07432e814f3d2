package supportcode

import (
	"fmt"
	"regexp"

	cucumberexpressions "github.com/cucumber/cucumber-expressions/go/v16"

	"github.com/fjglira/go-supportcode/pkg/domain"
)

// ParameterType describes a custom placeholder, e.g. {color}, usable in
// step patterns.
type ParameterType struct {
	Name    string
	Regexps []string

	// Type names the Go type the transformer produces; defaults to Name.
	Type string

	// Transformer receives the capture groups of a match. When nil the
	// whole match of the first group is returned as a string.
	Transformer func(groups ...*string) interface{}

	UseForSnippets                 bool
	PreferForRegexpMatch           bool
	UseRegexpMatchAsStrongTypeHint bool
}

// build converts pt into the expression library's parameter type.
func (pt ParameterType) build() (*cucumberexpressions.ParameterType, error) {
	if len(pt.Regexps) == 0 {
		return nil, fmt.Errorf("parameter type %q has no regular expressions", pt.Name)
	}
	regexps := make([]*regexp.Regexp, 0, len(pt.Regexps))
	for _, expr := range pt.Regexps {
		re, err := regexp.Compile(expr)
		if err != nil {
			return nil, fmt.Errorf("parameter type %q has an invalid regular expression: %w", pt.Name, err)
		}
		regexps = append(regexps, re)
	}

	typeName := pt.Type
	if typeName == "" {
		typeName = pt.Name
	}
	transform := pt.Transformer
	if transform == nil {
		transform = firstGroup
	}

	return cucumberexpressions.NewParameterType(
		pt.Name,
		regexps,
		typeName,
		transform,
		pt.UseForSnippets,
		pt.PreferForRegexpMatch,
		pt.UseRegexpMatchAsStrongTypeHint,
	)
}

func firstGroup(groups ...*string) interface{} {
	if len(groups) == 0 || groups[0] == nil {
		return nil
	}
	return *groups[0]
}

// DefineParameterType adds a custom parameter type to the current registry.
func (b *Builder) DefineParameterType(pt ParameterType) error {
	loc := b.callSite()

	parameterType, err := pt.build()
	if err != nil {
		return domain.NewInvalidArgument("DefineParameterType", loc, err.Error())
	}
	if err := b.parameterTypeRegistry.DefineParameterType(parameterType); err != nil {
		e := domain.NewInvalidArgument("DefineParameterType", loc, "failed to define parameter type: "+err.Error())
		e.Suggestion = "parameter type names must be unique"
		return e
	}

	b.log.WithField("name", pt.Name).Debug("Registered parameter type")
	return nil
}

// SetParameterTypeRegistry replaces the registry wholesale.
func (b *Builder) SetParameterTypeRegistry(r *cucumberexpressions.ParameterTypeRegistry) error {
	if r == nil {
		return domain.NewInvalidArgument("SetParameterTypeRegistry", b.callSite(), "registry must not be nil")
	}
	b.parameterTypeRegistry = r
	b.log.Debug("Parameter type registry replaced")
	return nil
}
