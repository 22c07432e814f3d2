package supportcode_test

import (
	"context"
	"os"
	"regexp"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/fjglira/go-supportcode/pkg/domain"
	"github.com/fjglira/go-supportcode/pkg/supportcode"
)

// passThrough wraps a func(context.Context) error the way a user would when
// binding extra context around every definition.
func passThrough(fn any) any {
	inner := fn.(func(context.Context) error)
	return func(ctx context.Context) error {
		return inner(ctx)
	}
}

var _ = Describe("Definitions", func() {
	var builder *supportcode.Builder

	BeforeEach(func() {
		builder = supportcode.New(nil)
		builder.Reset("path/to/project", "run")
	})

	Describe("DefineStep", func() {
		Context("without definition function wrapper", func() {
			It("should add a step definition and make the original code available", func() {
				step := func(ctx context.Context) error { return nil }
				Expect(builder.DefineStep("I do a thing", step)).To(Succeed())

				lib := builder.Finalize()
				Expect(lib.StepDefinitions).To(HaveLen(1))
				def := lib.StepDefinitions[0]
				Expect(supportcode.SameFunc(def.Code, step)).To(BeTrue())
				Expect(supportcode.SameFunc(def.UnwrappedCode, step)).To(BeTrue())
				Expect(def.Pattern).To(Equal("I do a thing"))
				Expect(def.ID).To(Equal("run-1"))
			})
		})

		Context("with definition function wrapper", func() {
			It("should store the wrapped code and keep the original", func() {
				step := func(ctx context.Context) error { return nil }
				Expect(builder.SetDefinitionFunctionWrapper(passThrough)).To(Succeed())
				Expect(builder.DefineStep("I do a thing", step)).To(Succeed())

				lib := builder.Finalize()
				Expect(lib.StepDefinitions).To(HaveLen(1))
				def := lib.StepDefinitions[0]
				Expect(supportcode.SameFunc(def.Code, step)).To(BeFalse())
				Expect(supportcode.SameFunc(def.UnwrappedCode, step)).To(BeTrue())

				wrapped, ok := def.Code.(func(context.Context) error)
				Expect(ok).To(BeTrue())
				Expect(wrapped(context.Background())).To(Succeed())
			})

			It("should not rewrap definitions registered before the wrapper", func() {
				early := func(ctx context.Context) error { return nil }
				late := func(ctx context.Context) error { return nil }
				Expect(builder.DefineStep("early", early)).To(Succeed())
				Expect(builder.SetDefinitionFunctionWrapper(passThrough)).To(Succeed())
				Expect(builder.DefineStep("late", late)).To(Succeed())

				lib := builder.Finalize()
				Expect(supportcode.SameFunc(lib.StepDefinitions[0].Code, early)).To(BeTrue())
				Expect(supportcode.SameFunc(lib.StepDefinitions[1].Code, late)).To(BeFalse())
			})

			It("should use the last installed wrapper", func() {
				calls := []string{}
				Expect(builder.SetDefinitionFunctionWrapper(func(fn any) any {
					calls = append(calls, "first")
					return fn
				})).To(Succeed())
				Expect(builder.SetDefinitionFunctionWrapper(func(fn any) any {
					calls = append(calls, "second")
					return fn
				})).To(Succeed())
				Expect(builder.DefineStep("a step", func() {})).To(Succeed())
				Expect(calls).To(Equal([]string{"second"}))
			})

			It("should reject a wrapper result that is not a function", func() {
				Expect(builder.SetDefinitionFunctionWrapper(func(fn any) any { return 42 })).To(Succeed())
				err := builder.DefineStep("a step", func() {})
				Expect(err).To(MatchError(domain.ErrInvalidArgument))
				Expect(builder.Finalize().StepDefinitions).To(BeEmpty())
			})

			It("should reject a nil wrapper", func() {
				Expect(builder.SetDefinitionFunctionWrapper(nil)).To(MatchError(domain.ErrInvalidArgument))
			})
		})

		It("should accept options and regular expressions", func() {
			pattern := regexp.MustCompile(`^I have (\d+) cukes$`)
			Expect(builder.DefineStep(pattern, supportcode.Options{Timeout: time.Second}, func(n int) {})).To(Succeed())
			Expect(builder.DefineStep("pointer options", &supportcode.Options{Timeout: 2 * time.Second}, func() {})).To(Succeed())

			lib := builder.Finalize()
			Expect(lib.StepDefinitions[0].Pattern).To(BeIdenticalTo(pattern))
			Expect(lib.StepDefinitions[0].PatternString()).To(Equal(`/^I have (\d+) cukes$/`))
			Expect(lib.StepDefinitions[0].Options.Timeout).To(Equal(time.Second))
			Expect(lib.StepDefinitions[1].Options.Timeout).To(Equal(2 * time.Second))
		})

		It("should keep declaration order and allow duplicate patterns", func() {
			first := func() {}
			second := func(string) {}
			Expect(builder.Given("same", first)).To(Succeed())
			Expect(builder.Then("same", second)).To(Succeed())

			lib := builder.Finalize()
			Expect(lib.StepDefinitions).To(HaveLen(2))
			Expect(supportcode.SameFunc(lib.StepDefinitions[0].Code, first)).To(BeTrue())
			Expect(supportcode.SameFunc(lib.StepDefinitions[1].Code, second)).To(BeTrue())
			Expect(lib.StepDefinitions[0].ID).To(Equal("run-1"))
			Expect(lib.StepDefinitions[1].ID).To(Equal("run-2"))
		})

		It("should register through every alias", func() {
			Expect(builder.Given("given", func() {})).To(Succeed())
			Expect(builder.When("when", func() {})).To(Succeed())
			Expect(builder.Then("then", func() {})).To(Succeed())
			Expect(builder.Finalize().StepDefinitions).To(HaveLen(3))
		})

		DescribeTable("should reject invalid registrations",
			func(pattern any, args ...any) {
				err := builder.DefineStep(pattern, args...)
				Expect(err).To(MatchError(domain.ErrInvalidArgument))
				Expect(builder.Finalize().StepDefinitions).To(BeEmpty())
			},
			Entry("non-function code", "a step", "not a function"),
			Entry("nil code", "a step", nil),
			Entry("missing code", "a step"),
			Entry("too many arguments", "a step", supportcode.Options{}, func() {}, func() {}),
			Entry("string options", "a step", "@tag", func() {}),
			Entry("empty pattern", "", func() {}),
			Entry("non-string pattern", 42, func() {}),
			Entry("negative timeout", "a step", supportcode.Options{Timeout: -time.Second}, func() {}),
		)

		It("should record the registering call site", func() {
			wd, err := os.Getwd()
			Expect(err).ToNot(HaveOccurred())
			builder.Reset(wd, "run")

			Expect(builder.DefineStep("located", func() {})).To(Succeed())
			loc := builder.Finalize().StepDefinitions[0].Location
			Expect(loc.URI).To(Equal("define_test.go"))
			Expect(loc.Line).To(BeNumerically(">", 0))
		})

		It("should report the call site of a rejected registration", func() {
			err := builder.DefineStep("broken", 1)
			var scErr *domain.SupportCodeError
			Expect(err).To(BeAssignableToTypeOf(scErr))
			scErr = err.(*domain.SupportCodeError)
			Expect(scErr.Method).To(Equal("DefineStep"))
			Expect(scErr.File).To(HaveSuffix("define_test.go"))
			Expect(scErr.Error()).To(ContainSubstring("last argument must be a function"))
		})
	})

	type hookMethod func(b *supportcode.Builder, args ...any) error

	hookCases := []struct {
		name     string
		register hookMethod
		defs     func(*supportcode.Library) []domain.HookDefinition
		kind     domain.HookKind
		reverse  bool
	}{
		{"Before", (*supportcode.Builder).Before,
			func(l *supportcode.Library) []domain.HookDefinition { return l.BeforeTestCaseHookDefinitions },
			domain.BeforeTestCaseHook, false},
		{"After", (*supportcode.Builder).After,
			func(l *supportcode.Library) []domain.HookDefinition { return l.AfterTestCaseHookDefinitions },
			domain.AfterTestCaseHook, true},
		{"BeforeAll", (*supportcode.Builder).BeforeAll,
			func(l *supportcode.Library) []domain.HookDefinition { return l.BeforeTestRunHookDefinitions },
			domain.BeforeTestRunHook, false},
		{"AfterAll", (*supportcode.Builder).AfterAll,
			func(l *supportcode.Library) []domain.HookDefinition { return l.AfterTestRunHookDefinitions },
			domain.AfterTestRunHook, true},
	}

	for _, hc := range hookCases {
		hc := hc

		Describe(hc.name, func() {
			It("should add a hook definition from a function only", func() {
				hook := func() {}
				Expect(hc.register(builder, hook)).To(Succeed())

				defs := hc.defs(builder.Finalize())
				Expect(defs).To(HaveLen(1))
				Expect(supportcode.SameFunc(defs[0].Code, hook)).To(BeTrue())
				Expect(supportcode.SameFunc(defs[0].UnwrappedCode, hook)).To(BeTrue())
				Expect(defs[0].Options.Tags).To(BeEmpty())
				Expect(defs[0].Kind).To(Equal(hc.kind))
			})

			It("should add a hook definition from a tag and function", func() {
				hook := func() {}
				Expect(hc.register(builder, "@tagA", hook)).To(Succeed())

				defs := hc.defs(builder.Finalize())
				Expect(defs).To(HaveLen(1))
				Expect(defs[0].Options.Tags).To(Equal("@tagA"))
				Expect(supportcode.SameFunc(defs[0].Code, hook)).To(BeTrue())
			})

			It("should add a hook definition from options and function", func() {
				hook := func() {}
				Expect(hc.register(builder, supportcode.Options{Tags: "@tagA", Name: "cleanup"}, hook)).To(Succeed())

				defs := hc.defs(builder.Finalize())
				Expect(defs).To(HaveLen(1))
				Expect(defs[0].Options.Tags).To(Equal("@tagA"))
				Expect(defs[0].Options.Name).To(Equal("cleanup"))
				Expect(supportcode.SameFunc(defs[0].Code, hook)).To(BeTrue())
			})

			It("should order multiple hook definitions", func() {
				hook1 := func() {}
				hook2 := func(context.Context) {}
				Expect(hc.register(builder, hook1)).To(Succeed())
				Expect(hc.register(builder, hook2)).To(Succeed())

				defs := hc.defs(builder.Finalize())
				Expect(defs).To(HaveLen(2))
				first, second := any(hook1), any(hook2)
				if hc.reverse {
					first, second = second, first
				}
				Expect(supportcode.SameFunc(defs[0].Code, first)).To(BeTrue())
				Expect(supportcode.SameFunc(defs[1].Code, second)).To(BeTrue())
			})

			It("should wrap the hook with the installed wrapper", func() {
				hook := func(ctx context.Context) error { return nil }
				Expect(builder.SetDefinitionFunctionWrapper(passThrough)).To(Succeed())
				Expect(hc.register(builder, hook)).To(Succeed())

				defs := hc.defs(builder.Finalize())
				Expect(supportcode.SameFunc(defs[0].Code, hook)).To(BeFalse())
				Expect(supportcode.SameFunc(defs[0].UnwrappedCode, hook)).To(BeTrue())
			})

			DescribeTable("should reject invalid call shapes",
				func(args ...any) {
					Expect(hc.register(builder, args...)).To(MatchError(domain.ErrInvalidArgument))
					Expect(hc.defs(builder.Finalize())).To(BeEmpty())
				},
				Entry("no arguments"),
				Entry("non-function", "@tagA"),
				Entry("tag and non-function", "@tagA", 1),
				Entry("unsupported options", 42, func() {}),
				Entry("nil options pointer", (*supportcode.Options)(nil), func() {}),
				Entry("too many arguments", "@a", supportcode.Options{}, func() {}),
			)
		})
	}

	Describe("strict tags", func() {
		BeforeEach(func() {
			builder = supportcode.New(nil, supportcode.WithStrictTags(true))
		})

		It("should accept well-formed tag expressions", func() {
			Expect(builder.Before("@a and not (@b or @c)", func() {})).To(Succeed())
		})

		DescribeTable("should reject malformed tag expressions",
			func(tags string) {
				Expect(builder.After(tags, func() {})).To(MatchError(domain.ErrInvalidArgument))
			},
			Entry("dangling operator", "@a and"),
			Entry("missing operator", "@a @b"),
			Entry("bare operator", "and"),
			Entry("empty parentheses", "()"),
			Entry("unbalanced parentheses", "(@a or @b"),
			Entry("stray closing parenthesis", "@a)"),
		)

		It("should name the expression in the error", func() {
			err := builder.Before("@a and", func() {})
			Expect(err).To(MatchError(ContainSubstring(`malformed tag expression "@a and"`)))
		})

		It("should not parse tags when strict checking is off", func() {
			lenient := supportcode.New(nil)
			Expect(lenient.After("@a and", func() {})).To(Succeed())
		})
	})

	It("should share one id sequence across steps and hooks", func() {
		Expect(builder.Before(func() {})).To(Succeed())
		Expect(builder.DefineStep("a step", func() {})).To(Succeed())
		Expect(builder.AfterAll(func() {})).To(Succeed())

		lib := builder.Finalize()
		Expect(lib.BeforeTestCaseHookDefinitions[0].ID).To(Equal("run-1"))
		Expect(lib.StepDefinitions[0].ID).To(Equal("run-2"))
		Expect(lib.AfterTestRunHookDefinitions[0].ID).To(Equal("run-3"))
	})
})
