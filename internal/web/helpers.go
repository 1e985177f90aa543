package web

import (
	"encoding/json"
	"html"
	"strconv"
	"strings"
)

// jsString renders a Go string as a quoted JS string literal.
func jsString(value string) string {
	data, err := json.Marshal(value)
	if err != nil {
		return `""`
	}
	return string(data)
}

func itoa(value int) string {
	return strconv.Itoa(value)
}

func esc(text string) string {
	return html.EscapeString(text)
}

func pageURL(base string, page, perPage int) string {
	if strings.Contains(base, "?") {
		return base + "&page=" + itoa(page) + "&per_page=" + itoa(perPage)
	}
	return base + "?page=" + itoa(page) + "&per_page=" + itoa(perPage)
}

func layoutTop(title string) string {
	return `<!doctype html>
<html lang="en">
  <head>
    <meta charset="utf-8"/>
    <meta name="viewport" content="width=device-width, initial-scale=1"/>
    <title>` + esc(title) + `</title>
    <link rel="stylesheet" href="/static/styles.css"/>
  </head>
  <body>
    <nav class="topbar">
      <a href="/" class="brand">Tablescore</a>
      <a href="/history">History</a>
      <a href="/catalog">Games</a>
    </nav>
    <main class="shell">
`
}

const layoutBottom = `
    </main>
  </body>
</html>
`
