package supportcode

import (
	"time"

	cucumberexpressions "github.com/cucumber/cucumber-expressions/go/v16"

	"github.com/fjglira/go-supportcode/pkg/domain"
	"github.com/fjglira/go-supportcode/pkg/world"
)

// Library is the snapshot produced by Builder.Finalize and handed to the
// executor. Hook slices are already in execution order.
type Library struct {
	ProjectPath string
	RunID       string

	BeforeTestRunHookDefinitions  []domain.HookDefinition
	AfterTestRunHookDefinitions   []domain.HookDefinition
	BeforeTestCaseHookDefinitions []domain.HookDefinition
	AfterTestCaseHookDefinitions  []domain.HookDefinition
	StepDefinitions               []domain.StepDefinition

	DefaultTimeout        time.Duration
	ParameterTypeRegistry *cucumberexpressions.ParameterTypeRegistry
	World                 world.Constructor
}

// Hooks returns the hook definitions of the given kind.
func (l *Library) Hooks(kind domain.HookKind) []domain.HookDefinition {
	switch kind {
	case domain.BeforeTestRunHook:
		return l.BeforeTestRunHookDefinitions
	case domain.AfterTestRunHook:
		return l.AfterTestRunHookDefinitions
	case domain.BeforeTestCaseHook:
		return l.BeforeTestCaseHookDefinitions
	case domain.AfterTestCaseHook:
		return l.AfterTestCaseHookDefinitions
	}
	return nil
}

// EffectiveTimeout is the timeout the executor should apply to def.
func (l *Library) EffectiveTimeout(def domain.Definition) time.Duration {
	if def.Options.Timeout > 0 {
		return def.Options.Timeout
	}
	return l.DefaultTimeout
}
