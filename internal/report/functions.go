package report

import (
	"strings"
	"text/template"
)

// CustomFuncMap returns the custom template functions available in templates.
func CustomFuncMap() template.FuncMap {
	return template.FuncMap{
		"add": func(a, b int) int {
			return a + b
		},
		"toLower": strings.ToLower,
		"toUpper": strings.ToUpper,
		"join":    strings.Join,
		// cell escapes text for a Markdown table cell.
		"cell": func(s string) string {
			if s == "" {
				return "-"
			}
			s = strings.ReplaceAll(s, "|", `\|`)
			return strings.ReplaceAll(s, "\n", " ")
		},
		"code": func(s string) string {
			if s == "" {
				return "-"
			}
			return "`" + strings.ReplaceAll(s, "`", "'") + "`"
		},
		"yesNo": func(b bool) string {
			if b {
				return "yes"
			}
			return "no"
		},
	}
}
