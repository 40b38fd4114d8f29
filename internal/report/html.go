package report

import (
	"bytes"
	"fmt"

	"titanic/internal/analysis"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
	"github.com/microcosm-cc/bluemonday"
)

const htmlTitle = "Titanic passenger statistics"

// Markdown renders the report as a markdown table, a port legend and the
// chart images, which are expected next to the HTML file.
func Markdown(s analysis.Summary, charts []string) []byte {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "# %s\n\n", htmlTitle)
	buf.WriteString("| Statistic | Value |\n|---|---|\n")
	for _, sec := range Sections(s) {
		fmt.Fprintf(&buf, "| %s | `%s` |\n", sec.Label, sec.Value)
	}
	if len(s.PassengersByPort) > 0 {
		buf.WriteString("\n## Ports\n\n| Code | Port | Passengers |\n|---|---|---|\n")
		for _, pc := range s.PassengersByPort {
			fmt.Fprintf(&buf, "| %s | %s | %d |\n", pc.Port, pc.Port.Name(), pc.Count)
		}
	}
	if len(charts) > 0 {
		buf.WriteString("\n## Charts\n\n")
		for _, chart := range charts {
			fmt.Fprintf(&buf, "![%s](%s)\n\n", chart, chart)
		}
	}
	return buf.Bytes()
}

const pageTemplate = `<!DOCTYPE html>
<html>
<head>
  <meta charset="utf-8">
  <title>%s</title>
</head>
<body>
%s</body>
</html>
`

// HTML converts the markdown report into a complete HTML page. The body goes
// through the bluemonday UGC policy before it is wrapped.
func HTML(s analysis.Summary, charts []string) []byte {
	p := parser.NewWithExtensions(parser.CommonExtensions)
	renderer := html.NewRenderer(html.RendererOptions{Flags: html.CommonFlags})
	body := bluemonday.UGCPolicy().SanitizeBytes(markdown.ToHTML(Markdown(s, charts), p, renderer))
	return []byte(fmt.Sprintf(pageTemplate, htmlTitle, body))
}

// WriteHTML overwrites path with the HTML report.
func WriteHTML(path string, s analysis.Summary, charts []string) error {
	return writeFile(path, HTML(s, charts))
}
