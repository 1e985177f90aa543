package web

import (
	"context"
	"io"
	"strings"

	"github.com/a-h/templ"
)

func Catalog(items []GameItem) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var b strings.Builder
		b.WriteString(layoutTop("Games · Tablescore"))
		b.WriteString(`
      <section class="panel">
        <h1>Game catalog</h1>
        <ul class="catalog">
`)
		for _, item := range items {
			label := item.Name
			if item.Emoji != "" {
				label = item.Emoji + " " + label
			}
			tag := item.CalculationMode
			if item.PointsPerRound == "multiple" {
				tag += ", multiple scores"
			}
			b.WriteString(`          <li><strong>` + esc(label) + `</strong> <span class="tag">` + esc(tag) + `</span></li>
`)
		}
		b.WriteString(`        </ul>
      </section>
`)
		b.WriteString(layoutBottom)
		_, err := io.WriteString(w, b.String())
		return err
	})
}
