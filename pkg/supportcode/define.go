package supportcode

import (
	"fmt"
	"reflect"
	"regexp"

	"github.com/sirupsen/logrus"

	"github.com/fjglira/go-supportcode/pkg/domain"
)

// DefineStep registers a step definition. args is either (fn) or
// (Options, fn), where fn is any function.
func (b *Builder) DefineStep(pattern any, args ...any) error {
	return b.defineStep("DefineStep", b.callSite(), pattern, args)
}

// Given is an alias of DefineStep.
func (b *Builder) Given(pattern any, args ...any) error {
	return b.defineStep("Given", b.callSite(), pattern, args)
}

// When is an alias of DefineStep.
func (b *Builder) When(pattern any, args ...any) error {
	return b.defineStep("When", b.callSite(), pattern, args)
}

// Then is an alias of DefineStep.
func (b *Builder) Then(pattern any, args ...any) error {
	return b.defineStep("Then", b.callSite(), pattern, args)
}

// Before registers a hook run before each test case, in declaration order.
// args is (fn), (tagExpression, fn) or (Options, fn).
func (b *Builder) Before(args ...any) error {
	return b.defineHook("Before", domain.BeforeTestCaseHook, b.callSite(), args)
}

// After registers a hook run after each test case. After hooks run last
// declared first.
func (b *Builder) After(args ...any) error {
	return b.defineHook("After", domain.AfterTestCaseHook, b.callSite(), args)
}

// BeforeAll registers a hook run once before the test run.
func (b *Builder) BeforeAll(args ...any) error {
	return b.defineHook("BeforeAll", domain.BeforeTestRunHook, b.callSite(), args)
}

// AfterAll registers a hook run once after the test run, last declared first.
func (b *Builder) AfterAll(args ...any) error {
	return b.defineHook("AfterAll", domain.AfterTestRunHook, b.callSite(), args)
}

func (b *Builder) defineStep(method string, loc domain.Location, pattern any, args []any) error {
	switch p := pattern.(type) {
	case string:
		if p == "" {
			return domain.NewInvalidArgument(method, loc, "step pattern must not be empty")
		}
	case *regexp.Regexp:
		if p == nil {
			return domain.NewInvalidArgument(method, loc, "step pattern must not be a nil regexp")
		}
	default:
		return domain.NewInvalidArgument(method, loc,
			fmt.Sprintf("step pattern must be a string or *regexp.Regexp, got %T", pattern))
	}

	var opts domain.Options
	var fn any
	switch len(args) {
	case 1:
		fn = args[0]
	case 2:
		o, ok := optionsArg(args[0])
		if !ok {
			return domain.NewInvalidArgument(method, loc,
				fmt.Sprintf("step options must be supportcode.Options, got %T", args[0]))
		}
		opts, fn = o, args[1]
	default:
		return domain.NewInvalidArgument(method, loc,
			fmt.Sprintf("expected (pattern, fn) or (pattern, options, fn), got %d arguments after the pattern", len(args)))
	}

	def, err := b.newDefinition(method, loc, opts, fn)
	if err != nil {
		return err
	}
	step := domain.StepDefinition{Definition: def, Pattern: pattern}
	b.stepDefinitions = append(b.stepDefinitions, step)

	b.log.WithFields(logrus.Fields{
		"id":      def.ID,
		"pattern": step.PatternString(),
		"uri":     loc.URI,
		"line":    loc.Line,
	}).Debug("Registered step definition")
	return nil
}

func (b *Builder) defineHook(method string, kind domain.HookKind, loc domain.Location, args []any) error {
	opts, fn, err := normalizeHookArgs(method, loc, args)
	if err != nil {
		return err
	}
	if b.strictTags && opts.Tags != "" {
		if _, err := parseTagExpression(opts.Tags); err != nil {
			return domain.NewInvalidArgument(method, loc, fmt.Sprintf("malformed tag expression %q: %v", opts.Tags, err))
		}
	}

	def, err := b.newDefinition(method, loc, opts, fn)
	if err != nil {
		return err
	}
	// After hooks are stored in declaration order and reversed by Finalize.
	b.hookDefinitions[kind] = append(b.hookDefinitions[kind], domain.HookDefinition{Definition: def, Kind: kind})

	b.log.WithFields(logrus.Fields{
		"id":   def.ID,
		"kind": kind.String(),
		"tags": opts.Tags,
		"uri":  loc.URI,
		"line": loc.Line,
	}).Debug("Registered hook definition")
	return nil
}

// normalizeHookArgs turns the three accepted call shapes into one
// (options, fn) pair.
func normalizeHookArgs(method string, loc domain.Location, args []any) (domain.Options, any, error) {
	switch len(args) {
	case 1:
		return domain.Options{}, args[0], nil
	case 2:
		if tags, ok := args[0].(string); ok {
			return domain.Options{Tags: tags}, args[1], nil
		}
		if opts, ok := optionsArg(args[0]); ok {
			return opts, args[1], nil
		}
		return domain.Options{}, nil, domain.NewInvalidArgument(method, loc,
			fmt.Sprintf("hook options must be a tag expression or supportcode.Options, got %T", args[0]))
	}
	return domain.Options{}, nil, domain.NewInvalidArgument(method, loc,
		fmt.Sprintf("expected (fn), (tags, fn) or (options, fn), got %d arguments", len(args)))
}

func optionsArg(arg any) (domain.Options, bool) {
	switch o := arg.(type) {
	case domain.Options:
		return o, true
	case *domain.Options:
		if o != nil {
			return *o, true
		}
	}
	return domain.Options{}, false
}

// newDefinition validates fn, applies the current wrapper and stamps an id.
func (b *Builder) newDefinition(method string, loc domain.Location, opts domain.Options, fn any) (domain.Definition, error) {
	if !isFunc(fn) {
		return domain.Definition{}, domain.NewInvalidArgument(method, loc,
			fmt.Sprintf("last argument must be a function, got %T", fn))
	}
	if opts.Timeout < 0 {
		return domain.Definition{}, domain.NewInvalidArgument(method, loc, "timeout must not be negative")
	}

	code := fn
	if b.wrapper != nil {
		code = b.wrapper(fn)
		if !isFunc(code) {
			return domain.Definition{}, domain.NewInvalidArgument(method, loc,
				fmt.Sprintf("definition function wrapper returned %T, not a function", code))
		}
	}

	return domain.Definition{
		ID:            b.ids.Generate(),
		Code:          code,
		UnwrappedCode: fn,
		Location:      loc,
		Options:       opts,
	}, nil
}

func isFunc(v any) bool {
	if v == nil {
		return false
	}
	rv := reflect.ValueOf(v)
	return rv.Kind() == reflect.Func && !rv.IsNil()
}

// SameFunc reports whether a and b are the same function value. Closures
// created from the same function literal compare equal.
func SameFunc(a, b any) bool {
	if !isFunc(a) || !isFunc(b) {
		return false
	}
	return reflect.ValueOf(a).Pointer() == reflect.ValueOf(b).Pointer()
}
