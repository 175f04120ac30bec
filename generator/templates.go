package generator

import (
	"bytes"
	"embed"
	"strings"
	"text/template"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

var templates = template.Must(template.New("").
	Funcs(templateFuncs).
	ParseFS(templateFS, "templates/*.tmpl"))

// templateFuncs provides custom functions for templates
var templateFuncs = template.FuncMap{
	"comment": renderComment,
	"join":    strings.Join,
}

// renderComment renders lines as a // comment block with the given indent. Empty lines
// become a bare "//".
func renderComment(indent string, lines []string) string {
	var b strings.Builder
	for _, line := range lines {
		b.WriteString(indent)
		if line == "" {
			b.WriteString("//\n")
			continue
		}
		b.WriteString("// ")
		b.WriteString(line)
		b.WriteByte('\n')
	}
	return b.String()
}

// executeTemplate renders the named template for a file of the given item count. When
// the output cannot be formatted, the unformatted source is returned with fmtErr set.
func executeTemplate(name, fileName string, data any, items int) (content []byte, fmtErr, err error) {
	buf := getTemplateBuffer(items)
	defer putTemplateBuffer(buf, items)

	if err := templates.ExecuteTemplate(buf, name, data); err != nil {
		return nil, nil, err
	}
	src := bytes.Clone(buf.Bytes())

	formatted, fmtErr := formatAndFixImports(fileName, src)
	if fmtErr != nil {
		return src, fmtErr, nil
	}
	return formatted, nil, nil
}
