// Command generate_index renders README.md plus the release artifacts in a
// dist directory into a single index.html for the download page.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
)

func main() {
	if len(os.Args) != 2 {
		fmt.Fprintf(os.Stderr, "Usage: %s <dist-dir>\n", os.Args[0])
		os.Exit(1)
	}
	distDir := os.Args[1]

	readme, err := os.ReadFile("README.md")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading README.md: %v\n", err)
		os.Exit(1)
	}

	extensions := parser.CommonExtensions | parser.AutoHeadingIDs
	doc := parser.NewWithExtensions(extensions).Parse(readme)
	renderer := html.NewRenderer(html.RendererOptions{Flags: html.CommonFlags | html.HrefTargetBlank})
	body := markdown.Render(doc, renderer)

	indexPath := filepath.Join(distDir, "index.html")
	f, err := os.Create(indexPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating %s: %v\n", indexPath, err)
		os.Exit(1)
	}
	defer f.Close()

	fmt.Fprint(f, pageHeader)
	fmt.Fprint(f, downloadsHTML(distDir))
	if _, err := f.Write(body); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing README content: %v\n", err)
		os.Exit(1)
	}
	fmt.Fprint(f, pageFooter)

	fmt.Fprintf(os.Stderr, "Generated %s\n", indexPath)
}

// artifactRe matches goreleaser output like
// jsonpane_0.3.0_Linux_x86_64.tar.gz.
var artifactRe = regexp.MustCompile(`^jsonpane_([^_]+(?:-[^_]+)*)_([A-Za-z]+)_([A-Za-z0-9_]+)\.(tar\.gz|zip)$`)

// downloadsHTML builds a download table from the archives in distDir.
func downloadsHTML(distDir string) string {
	entries, err := os.ReadDir(distDir)
	if err != nil {
		return ""
	}

	type artifact struct {
		name, version, platform string
	}
	var artifacts []artifact
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		m := artifactRe.FindStringSubmatch(e.Name())
		if m == nil {
			continue
		}
		artifacts = append(artifacts, artifact{
			name:     e.Name(),
			version:  m[1],
			platform: m[2] + " " + m[3],
		})
	}
	if len(artifacts) == 0 {
		return ""
	}
	sort.Slice(artifacts, func(i, j int) bool { return artifacts[i].platform < artifacts[j].platform })

	var sb strings.Builder
	sb.WriteString(`<div class="downloads"><h2>Downloads</h2>`)
	sb.WriteString(fmt.Sprintf("<h3>%s</h3><table>", artifacts[0].version))
	for _, a := range artifacts {
		sb.WriteString(fmt.Sprintf(`<tr><td>%s</td><td><a href="%s">%s</a></td></tr>`, a.platform, a.name, a.name))
	}
	sb.WriteString("</table></div>\n")
	return sb.String()
}

const pageHeader = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>jsonpane</title>
<style>
body { max-width: 56rem; margin: 2rem auto; padding: 0 1rem; font-family: system-ui, sans-serif; line-height: 1.6; }
pre { background: #f4f4f4; padding: 1rem; overflow-x: auto; }
code { background: #f4f4f4; padding: 0.1rem 0.3rem; }
table { border-collapse: collapse; }
td { border: 1px solid #ddd; padding: 0.4rem 0.8rem; }
</style>
</head>
<body>
`

const pageFooter = `</body>
</html>
`
