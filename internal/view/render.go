package view

import (
	"fmt"

	g "maragu.dev/gomponents"
	"maragu.dev/gomponents/html"

	"github.com/b0ase/path402/apps/baguette/internal/market"
)

// Title is the page heading.
const Title = "The Battle for the Sacred Baguette"

// Page wraps body in the HTML document. When src is non-empty the page
// script replaces body with the fragment served at src.
func Page(body g.Node, src string) g.Node {
	return html.Doctype(
		html.HTML(
			html.Lang("en"),
			html.Head(
				html.Meta(html.Charset("utf-8")),
				html.Meta(html.Name("viewport"), html.Content("width=device-width, initial-scale=1.0")),
				html.TitleEl(g.Text(Title)),
				html.StyleEl(g.Raw(stylesheet)),
			),
			html.Body(
				html.Div(
					html.ID("app"),
					html.Class("container"),
					g.If(src != "", g.Attr("data-src", src)),
					body,
				),
				html.Script(g.Raw(script)),
			),
		),
	)
}

// Render draws the branch for the current state. voting is the voting
// panel shown on the voting tab; nil shows a placeholder.
func (d *Dashboard) Render(voting g.Node) g.Node {
	switch d.state {
	case Ready:
		return d.ready(voting)
	case Failed:
		return errorBranch(d.err)
	default:
		return loadingBranch()
	}
}

func loadingBranch() g.Node {
	return html.Div(
		html.Class("center"),
		g.Attr("data-branch", "loading"),
		html.Div(
			html.Div(html.Class("spinner")),
			html.P(g.Text("Loading dashboard data...")),
		),
	)
}

func errorBranch(msg string) g.Node {
	return html.Div(
		html.Class("center"),
		g.Attr("data-branch", "error"),
		html.Div(
			html.Class("card error-card"),
			html.Div(html.Class("error-title"), g.Text("Error")),
			html.P(g.Text(msg)),
			html.Button(
				html.Class("btn btn-primary"),
				g.Attr("onclick", "window.location.reload()"),
				g.Text("Retry"),
			),
		),
	)
}

func (d *Dashboard) ready(voting g.Node) g.Node {
	data := d.data
	return html.Div(
		g.Attr("data-branch", "ready"),
		html.H1(g.Text(Title)),
		dominanceCard(d.Dominance()),
		html.Div(
			html.Class("stats-grid"),
			tokenCard(market.Catguette, data.Catguette),
			tokenCard(market.Doguette, data.Doguette),
		),
		html.Div(
			html.Class("card"),
			tabBar(d.tab),
			panel(TabPrice, d.tab, priceChart(data.Catguette.PriceHistory, data.Doguette.PriceHistory)),
			panel(TabHolders, d.tab, html.Div(
				html.Class("holders"),
				holdersList(market.Catguette+" Top Holders", data.Catguette.TopHolders),
				holdersList(market.Doguette+" Top Holders", data.Doguette.TopHolders),
			)),
			panel(TabVoting, d.tab, votingPanel(voting)),
		),
	)
}

func dominanceCard(dom market.Dominance) g.Node {
	cat, dog := FormatDominance(dom)
	return html.Div(
		html.Class("card"),
		g.Attr("data-defined", fmt.Sprint(dom.Defined)),
		html.H2(g.Text("Faction Dominance")),
		html.Div(
			html.Class("dominance-bar"),
			html.Div(
				html.Class("dominance-fill"),
				html.Style(fmt.Sprintf("width: %.2f%%", dom.Catguette)),
			),
		),
		html.Div(
			html.Class("dominance-labels"),
			html.Span(g.Textf("%s: %s", market.Catguette, cat)),
			html.Span(g.Textf("%s: %s", market.Doguette, dog)),
		),
	)
}

func tokenCard(name string, s market.TokenStats) g.Node {
	return html.Div(
		html.Class("stat-card"),
		g.Attr("data-token", name),
		html.H2(g.Text(name)),
		statRow("Price", FormatPrice(s.Price)),
		statRow("Volume", FormatVolume(s.Volume)),
		statRow("Holders", FormatCount(s.Holders)),
		statRow("Market Cap", FormatVolume(s.MarketCap)),
	)
}

func statRow(label, value string) g.Node {
	return html.Div(
		html.Class("stat-row"),
		html.Span(html.Class("stat-label"), g.Text(label)),
		html.Span(html.Class("stat-value"), g.Text(value)),
	)
}

func tabBar(active Tab) g.Node {
	buttons := make([]g.Node, 0, len(Tabs))
	for _, t := range Tabs {
		class := "tab"
		if t == active {
			class += " active"
		}
		buttons = append(buttons, html.Button(
			html.Class(class),
			g.Attr("data-tab", string(t)),
			g.Text(t.Label()),
		))
	}
	return html.Div(html.Class("tabs"), g.Group(buttons))
}

// panel renders every tab's content; inactive ones start hidden so the
// client can switch tabs without a fetch.
func panel(t, active Tab, content g.Node) g.Node {
	return html.Div(
		g.Attr("data-panel", string(t)),
		g.If(t != active, g.Attr("hidden")),
		content,
	)
}

func holdersList(title string, holders []market.Holder) g.Node {
	rows := make([]g.Node, 0, len(holders))
	for _, h := range holders {
		rows = append(rows, html.Div(
			html.Class("holder"),
			html.Span(html.Class("muted"), g.Text(h.Address)),
			html.Span(g.Text(FormatAmount(h.Amount))),
		))
	}
	return html.Div(
		html.H3(g.Text(title)),
		g.If(len(holders) == 0, html.P(html.Class("empty"), g.Text("No holders yet"))),
		g.Group(rows),
	)
}

func votingPanel(voting g.Node) g.Node {
	if voting != nil {
		return voting
	}
	return html.Div(
		html.Class("empty"),
		html.H3(g.Text("Next Charity Vote Coming Soon")),
		html.P(g.Text("Connect your wallet to participate in community voting")),
	)
}
