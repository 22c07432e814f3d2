package supportcode

import (
	"fmt"

	tagexpressions "github.com/cucumber/tag-expressions/go/v6"

	"github.com/fjglira/go-supportcode/pkg/domain"
)

// parseTagExpression parses expr, turning a parser panic on dangling
// operators into an error.
func parseTagExpression(expr string) (evaluatable tagexpressions.Evaluatable, err error) {
	defer func() {
		if r := recover(); r != nil {
			evaluatable, err = nil, fmt.Errorf("%v", r)
		}
	}()
	return tagexpressions.Parse(expr)
}

// AppliesTo reports whether hook should run for a test case carrying tags.
// A hook without a tag expression applies to every test case.
func AppliesTo(hook domain.HookDefinition, tags []string) (bool, error) {
	if hook.Options.Tags == "" {
		return true, nil
	}
	expr, err := parseTagExpression(hook.Options.Tags)
	if err != nil {
		return false, domain.NewError("evaluate", hook.Location.URI, hook.Location.Line,
			fmt.Sprintf("malformed tag expression %q", hook.Options.Tags), err)
	}
	return expr.Evaluate(tags), nil
}
