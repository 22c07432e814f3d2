// Package supportcode collects step definitions, hooks and world
// configuration declared by test support code, and freezes them into a
// Library for the executor.
//
// A Builder is not safe for concurrent use. Callers run a full
// Reset, register, Finalize cycle on one goroutine, or use one Builder per
// session.
package supportcode

import (
	"io"
	"time"

	cucumberexpressions "github.com/cucumber/cucumber-expressions/go/v16"
	"github.com/sirupsen/logrus"

	"github.com/fjglira/go-supportcode/internal/idgen"
	"github.com/fjglira/go-supportcode/pkg/domain"
	"github.com/fjglira/go-supportcode/pkg/world"
)

// DefaultTimeout applies to steps and hooks that do not set their own.
const DefaultTimeout = 5 * time.Second

// Options is re-exported so support code does not need to import domain.
type Options = domain.Options

// DefinitionFunctionWrapper transforms every step and hook function before
// it is stored as the definition's Code. It must return a function.
type DefinitionFunctionWrapper func(fn any) any

// Option configures a Builder.
type Option func(*Builder)

// WithDefaultTimeout changes the timeout Reset restores.
func WithDefaultTimeout(d time.Duration) Option {
	return func(b *Builder) {
		b.baseTimeout = d
	}
}

// WithStrictTags makes hook registration reject tag expressions that are
// not made of @tags, not, and, or and parentheses.
func WithStrictTags(strict bool) Option {
	return func(b *Builder) {
		b.strictTags = strict
	}
}

// Builder accumulates support code between Reset and Finalize.
type Builder struct {
	log         *logrus.Logger
	baseTimeout time.Duration
	strictTags  bool

	projectPath string
	runID       string
	ids         idgen.Generator

	stepDefinitions []domain.StepDefinition
	hookDefinitions [4][]domain.HookDefinition // indexed by domain.HookKind, declaration order

	defaultTimeout        time.Duration
	wrapper               DefinitionFunctionWrapper
	worldConstructor      world.Constructor
	parameterTypeRegistry *cucumberexpressions.ParameterTypeRegistry
}

// New creates a Builder that is already reset with an empty project path
// and a fresh run id. A nil logger discards output.
func New(log *logrus.Logger, opts ...Option) *Builder {
	if log == nil {
		log = logrus.New()
		log.SetOutput(io.Discard)
	}
	b := &Builder{
		log:         log,
		baseTimeout: DefaultTimeout,
	}
	for _, opt := range opts {
		opt(b)
	}
	b.Reset("", idgen.NewRunID())
	return b
}

// Reset discards everything registered so far and starts a new build cycle.
// Definition ids are derived from runID; an empty runID gets a generated one.
func (b *Builder) Reset(projectPath, runID string) {
	if runID == "" {
		runID = idgen.NewRunID()
	}
	b.projectPath = projectPath
	b.runID = runID
	b.ids = idgen.NewIncrementing(runID)

	b.stepDefinitions = nil
	b.hookDefinitions = [4][]domain.HookDefinition{}

	b.defaultTimeout = b.baseTimeout
	b.wrapper = nil
	b.worldConstructor = world.Default
	b.parameterTypeRegistry = cucumberexpressions.NewParameterTypeRegistry()

	b.log.WithFields(logrus.Fields{
		"project": projectPath,
		"run_id":  runID,
	}).Debug("Reset support code library")
}

// SetDefaultTimeout replaces the timeout used by definitions without their own.
func (b *Builder) SetDefaultTimeout(d time.Duration) error {
	if d < 0 {
		return domain.NewInvalidArgument("SetDefaultTimeout", b.callSite(), "timeout must not be negative")
	}
	b.defaultTimeout = d
	b.log.Debugf("Default timeout set to %s", d)
	return nil
}

// SetDefinitionFunctionWrapper installs w for definitions registered after
// this call. Already registered definitions keep their current Code.
func (b *Builder) SetDefinitionFunctionWrapper(w DefinitionFunctionWrapper) error {
	if w == nil {
		return domain.NewInvalidArgument("SetDefinitionFunctionWrapper", b.callSite(), "wrapper must be a function")
	}
	b.wrapper = w
	b.log.Debug("Definition function wrapper installed")
	return nil
}

// SetWorldConstructor replaces the constructor the executor uses to build
// a world per test case.
func (b *Builder) SetWorldConstructor(ctor world.Constructor) error {
	if ctor == nil {
		return domain.NewInvalidArgument("SetWorldConstructor", b.callSite(), "world constructor must be a function")
	}
	b.worldConstructor = ctor
	b.log.Debug("World constructor replaced")
	return nil
}

// Finalize returns a snapshot of the registered support code. It does not
// change the Builder; calling it again without registrations in between
// yields an equivalent Library.
func (b *Builder) Finalize() *Library {
	lib := &Library{
		ProjectPath: b.projectPath,
		RunID:       b.runID,

		BeforeTestRunHookDefinitions:  inOrder(b.hookDefinitions[domain.BeforeTestRunHook]),
		AfterTestRunHookDefinitions:   reversed(b.hookDefinitions[domain.AfterTestRunHook]),
		BeforeTestCaseHookDefinitions: inOrder(b.hookDefinitions[domain.BeforeTestCaseHook]),
		AfterTestCaseHookDefinitions:  reversed(b.hookDefinitions[domain.AfterTestCaseHook]),
		StepDefinitions:               append(make([]domain.StepDefinition, 0, len(b.stepDefinitions)), b.stepDefinitions...),

		DefaultTimeout:        b.defaultTimeout,
		ParameterTypeRegistry: b.parameterTypeRegistry,
		World:                 b.worldConstructor,
	}

	b.log.WithFields(logrus.Fields{
		"run_id": b.runID,
		"steps":  len(lib.StepDefinitions),
		"hooks": len(lib.BeforeTestRunHookDefinitions) + len(lib.AfterTestRunHookDefinitions) +
			len(lib.BeforeTestCaseHookDefinitions) + len(lib.AfterTestCaseHookDefinitions),
	}).Info("Support code library finalized")

	return lib
}

func inOrder(defs []domain.HookDefinition) []domain.HookDefinition {
	return append(make([]domain.HookDefinition, 0, len(defs)), defs...)
}

// reversed returns a copy of defs, last declared first.
func reversed(defs []domain.HookDefinition) []domain.HookDefinition {
	out := make([]domain.HookDefinition, len(defs))
	for i, d := range defs {
		out[len(defs)-1-i] = d
	}
	return out
}
