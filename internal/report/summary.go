// Package report renders a finalized support code library for humans.
package report

import (
	"time"

	cucumberexpressions "github.com/cucumber/cucumber-expressions/go/v16"

	"github.com/fjglira/go-supportcode/pkg/domain"
	"github.com/fjglira/go-supportcode/pkg/supportcode"
)

// Summary is the serializable view of a Library.
type Summary struct {
	ProjectPath    string          `yaml:"project_path"`
	RunID          string          `yaml:"run_id"`
	DefaultTimeout string          `yaml:"default_timeout"`
	Steps          []StepSummary   `yaml:"steps"`
	Hooks          []HookGroup     `yaml:"hooks"`
	ParameterTypes []ParameterType `yaml:"parameter_types"`
}

type StepSummary struct {
	ID       string `yaml:"id"`
	Pattern  string `yaml:"pattern"`
	Location string `yaml:"location"`
	Timeout  string `yaml:"timeout"`
	Wrapped  bool   `yaml:"wrapped"`
}

// HookGroup lists the hooks of one kind in execution order.
type HookGroup struct {
	Kind  string        `yaml:"kind"`
	Hooks []HookSummary `yaml:"hooks"`
}

type HookSummary struct {
	ID       string `yaml:"id"`
	Name     string `yaml:"name,omitempty"`
	Tags     string `yaml:"tags,omitempty"`
	Location string `yaml:"location"`
	Timeout  string `yaml:"timeout"`
	Wrapped  bool   `yaml:"wrapped"`
}

type ParameterType struct {
	Name    string   `yaml:"name"`
	Regexps []string `yaml:"regexps"`
	Builtin bool     `yaml:"builtin"`
}

var hookKinds = []domain.HookKind{
	domain.BeforeTestRunHook,
	domain.BeforeTestCaseHook,
	domain.AfterTestCaseHook,
	domain.AfterTestRunHook,
}

// Summarize builds a Summary from lib.
func Summarize(lib *supportcode.Library) Summary {
	s := Summary{
		ProjectPath:    lib.ProjectPath,
		RunID:          lib.RunID,
		DefaultTimeout: lib.DefaultTimeout.String(),
	}

	for _, step := range lib.StepDefinitions {
		s.Steps = append(s.Steps, StepSummary{
			ID:       step.ID,
			Pattern:  step.PatternString(),
			Location: step.Location.String(),
			Timeout:  formatTimeout(lib.EffectiveTimeout(step.Definition)),
			Wrapped:  !supportcode.SameFunc(step.Code, step.UnwrappedCode),
		})
	}

	for _, kind := range hookKinds {
		group := HookGroup{Kind: kind.String()}
		for _, hook := range lib.Hooks(kind) {
			group.Hooks = append(group.Hooks, HookSummary{
				ID:       hook.ID,
				Name:     hook.Options.Name,
				Tags:     hook.Options.Tags,
				Location: hook.Location.String(),
				Timeout:  formatTimeout(lib.EffectiveTimeout(hook.Definition)),
				Wrapped:  !supportcode.SameFunc(hook.Code, hook.UnwrappedCode),
			})
		}
		s.Hooks = append(s.Hooks, group)
	}

	if lib.ParameterTypeRegistry != nil {
		builtin := builtinParameterTypes()
		for _, pt := range lib.ParameterTypeRegistry.ParameterTypes() {
			regexps := make([]string, 0, len(pt.Regexps()))
			for _, re := range pt.Regexps() {
				regexps = append(regexps, re.String())
			}
			s.ParameterTypes = append(s.ParameterTypes, ParameterType{
				Name:    pt.Name(),
				Regexps: regexps,
				Builtin: builtin[pt.Name()],
			})
		}
	}

	return s
}

// builtinParameterTypes names the types every fresh registry starts with.
func builtinParameterTypes() map[string]bool {
	names := map[string]bool{}
	for _, pt := range cucumberexpressions.NewParameterTypeRegistry().ParameterTypes() {
		names[pt.Name()] = true
	}
	return names
}

func formatTimeout(d time.Duration) string {
	if d == 0 {
		return "none"
	}
	return d.String()
}
