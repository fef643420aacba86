package gen

import (
	"text/template"

	"errenum-generator/internal/analyze"
)

// fileData is the data of one generated file.
type fileData struct {
	Package string
	Imports []analyze.Import
	Units   []unitData
}

// unitData holds the rendered pieces of one union.
type unitData struct {
	Union  string
	Rules  []ruleData
	Wrap   ruleData
	Unwrap *unwrapData
}

// ruleData renders one conversion function.
type ruleData struct {
	Func     string
	Union    string
	Inner    string // parameter type
	CatchAll string // outer catch-all type name
	NilCheck bool
	Wrapped  string // value returned for an ordinary inner value
	// Assert and Flattened are set for unwrap-through-catch-all conversions.
	Assert    string
	Flattened string
}

type unwrapData struct {
	Type   string
	Recv   string
	Result string
	Field  string
}

var fileTemplate = template.Must(template.New("errenum").Parse(`
{{- define "file"}}` + Header + `

package {{.Package}}
{{if .Imports}}
import (
{{range .Imports}}	{{if ne .Alias .Name}}{{.Alias}} {{end}}"{{.Path}}"
{{end}})
{{end}}
{{- range .Units}}{{template "unit" .}}{{end}}
{{- end}}

{{- define "unit"}}
{{- range .Rules}}
// {{.Func}} converts {{.Inner}} to {{.Union}}.
{{- if .Assert}}
// The catch-all variant of {{.Inner}} is flattened into {{.CatchAll}}.
{{- end}}
func {{.Func}}(v {{.Inner}}) {{.Union}} {
{{- if .NilCheck}}
	if v == nil {
		return nil
	}
{{- end}}
{{- if .Assert}}
	if c, ok := v.({{.Assert}}); ok {
		return {{.Flattened}}
	}
{{- end}}
	return {{.Wrapped}}
}
{{end}}
// {{.Wrap.Func}} wraps err into {{.Wrap.CatchAll}}.
func {{.Wrap.Func}}(err {{.Wrap.Inner}}) {{.Union}} {
{{- if .Wrap.NilCheck}}
	if err == nil {
		return nil
	}
{{- end}}
	return {{.Wrap.Wrapped}}
}
{{- if .Unwrap}}

// Unwrap returns the error wrapped by {{.Unwrap.Type}}.
func (e {{.Unwrap.Recv}}) Unwrap() {{.Unwrap.Result}} {
	return e.{{.Unwrap.Field}}
}
{{- end}}
{{end}}
`))
