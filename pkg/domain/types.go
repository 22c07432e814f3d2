package domain

import (
	"fmt"
	"regexp"
	"time"
)

// HookKind identifies the lifecycle point a hook is bound to.
type HookKind int

const (
	BeforeTestRunHook HookKind = iota
	AfterTestRunHook
	BeforeTestCaseHook
	AfterTestCaseHook
)

func (k HookKind) String() string {
	switch k {
	case BeforeTestRunHook:
		return "beforeTestRunHook"
	case AfterTestRunHook:
		return "afterTestRunHook"
	case BeforeTestCaseHook:
		return "beforeTestCaseHook"
	case AfterTestCaseHook:
		return "afterTestCaseHook"
	}
	return fmt.Sprintf("HookKind(%d)", int(k))
}

// Location is the source position a definition was registered from.
type Location struct {
	URI  string
	Line int
}

func (l Location) String() string {
	if l.URI == "" {
		return "<unknown>"
	}
	return fmt.Sprintf("%s:%d", l.URI, l.Line)
}

// Options are the normalized per-definition options.
type Options struct {
	Tags    string        // Tag expression filter, empty means "applies to all"
	Name    string        // Optional human-readable hook name
	Timeout time.Duration // Zero means "use the library default"
}

// Definition is the shape shared by step and hook definitions.
type Definition struct {
	ID string

	// Code is what the executor invokes. It is UnwrappedCode passed through
	// the wrapper that was installed when the definition was registered.
	Code any

	// UnwrappedCode is the function the user registered.
	UnwrappedCode any

	Location Location
	Options  Options
}

// StepDefinition pairs a step pattern with its implementation.
type StepDefinition struct {
	Definition

	// Pattern is either a string expression or a *regexp.Regexp.
	Pattern any
}

// PatternString returns the textual form of the step pattern.
func (s StepDefinition) PatternString() string {
	switch p := s.Pattern.(type) {
	case string:
		return p
	case *regexp.Regexp:
		return "/" + p.String() + "/"
	}
	return fmt.Sprint(s.Pattern)
}

// HookDefinition binds a function to a lifecycle point.
type HookDefinition struct {
	Definition
	Kind HookKind
}
