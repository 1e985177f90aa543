package web

import (
	"context"
	"io"
	"strings"

	"github.com/a-h/templ"
)

func History(items []SessionItem, pagination PaginationData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var b strings.Builder
		b.WriteString(layoutTop("History · Tablescore"))
		b.WriteString(`
      <section class="panel">
        <h1>Played sessions</h1>
`)
		if len(items) == 0 {
			b.WriteString(`        <p>No sessions yet. Start one from the home page.</p>
`)
		} else {
			b.WriteString(`        <table class="history">
          <thead><tr><th>Game</th><th>Mode</th><th>Rounds</th><th>Players</th><th>Played</th></tr></thead>
          <tbody>
`)
			for _, item := range items {
				b.WriteString(`            <tr>
              <td><a href="/sessions/` + esc(item.ID) + `">` + esc(item.Game) + `</a></td>
              <td>` + esc(item.Gameplay) + `</td>
              <td>` + itoa(item.Rounds) + `</td>
              <td>` + itoa(item.Players) + `</td>
              <td>` + esc(item.PlayedAt) + `</td>
            </tr>
`)
			}
			b.WriteString(`          </tbody>
        </table>
`)
		}
		b.WriteString(paginationNav(pagination))
		b.WriteString(`      </section>
`)
		b.WriteString(layoutBottom)
		_, err := io.WriteString(w, b.String())
		return err
	})
}

func paginationNav(p PaginationData) string {
	if p.TotalPages <= 1 {
		return ""
	}
	nav := `        <nav class="pagination">
`
	if p.HasPrev {
		nav += `          <a href="` + pageURL(p.BasePath, p.PrevPage, p.PerPage) + `">&laquo; Newer</a>
`
	}
	nav += `          <span>Page ` + itoa(p.Page) + ` of ` + itoa(p.TotalPages) + `</span>
`
	if p.HasNext {
		nav += `          <a href="` + pageURL(p.BasePath, p.NextPage, p.PerPage) + `">Older &raquo;</a>
`
	}
	return nav + `        </nav>
`
}
