package voting

import (
	"strconv"

	"github.com/dustin/go-humanize"
	g "maragu.dev/gomponents"
	"maragu.dev/gomponents/html"
)

const (
	iconWallet = `<svg class="icon" fill="none" stroke="currentColor" viewBox="0 0 24 24"><path stroke-linecap="round" stroke-linejoin="round" stroke-width="2" d="M4 16l4.586-4.586a2 2 0 012.828 0L16 16m-2-2l1.586-1.586a2 2 0 012.828 0L20 14m-6-6h.01M6 20h12a2 2 0 002-2V6a2 2 0 00-2-2H6a2 2 0 00-2 2v12a2 2 0 002 2z"/></svg>`
	iconInfo   = `<svg class="icon" fill="none" stroke="currentColor" viewBox="0 0 24 24"><path stroke-linecap="round" stroke-linejoin="round" stroke-width="2" d="M13 16h-1v-4h-1m1-4h.01M21 12a9 9 0 11-18 0 9 9 0 0118 0z"/></svg>`
	iconCheck  = `<svg class="icon" fill="none" stroke="currentColor" viewBox="0 0 24 24"><path stroke-linecap="round" stroke-linejoin="round" stroke-width="2" d="M5 13l4 4L19 7"/></svg>`
)

// Render draws the voting panel for st.
func Render(st Status, list []Charity, period Period) g.Node {
	total := TotalVotes(list)

	cards := make([]g.Node, 0, len(list))
	for _, c := range list {
		cards = append(cards, charityCard(c, total, st))
	}

	return html.Div(
		html.ID("voting-panel"),
		html.Class("card voting"),
		g.Attr("data-state", st.State.String()),
		html.Div(
			html.Class("row between"),
			html.H2(g.Text("Charity Voting")),
			connectControl(st),
		),
		banner(st),
		html.Div(html.Class("charities"), g.Group(cards)),
		periodSummary(period, total),
	)
}

func connectControl(st Status) g.Node {
	if st.Connected() {
		return html.Div(
			html.Class("muted small"),
			g.Textf("Connected: %s", st.Short),
		)
	}
	return html.Button(
		html.Class("btn btn-primary"),
		g.Attr("data-action", "connect"),
		g.If(st.Busy, html.Disabled()),
		g.Raw(iconWallet),
		g.If(st.State == Connecting, g.Text("Connecting...")),
		g.If(st.State != Connecting, g.Text("Connect Wallet")),
	)
}

func banner(st Status) g.Node {
	if st.Connected() {
		return html.Div(
			html.Class("banner banner-success"),
			g.Raw(iconCheck),
			html.P(g.Text("Your wallet is connected. You can now vote for your preferred charity.")),
		)
	}
	return html.Div(
		html.Class("banner banner-info"),
		g.Raw(iconInfo),
		html.P(g.Text("Connect your wallet and hold CATGUETTE or DOGUETTE tokens to participate in voting.")),
	)
}

func charityCard(c Charity, total int, st Status) g.Node {
	pct := FormatPercentage(Percentage(c.Votes, total))
	voted := st.Selected == c.ID
	disabled := !st.Connected() || voted || st.Busy

	label := "Vote"
	if voted {
		label = "Voted"
	}
	class := "btn btn-block"
	if !disabled {
		class += " btn-primary"
	}

	return html.Div(
		html.Class("charity"),
		g.Attr("data-charity", strconv.Itoa(c.ID)),
		html.Div(
			html.Class("row between"),
			html.Div(
				html.H3(g.Text(c.Name)),
				html.P(html.Class("muted"), g.Text(c.Description)),
				html.Span(html.Class("tag"), g.Text(c.Category)),
			),
			g.If(c.ImageURL != "", html.Img(html.Src(c.ImageURL), html.Alt(c.Name), html.Class("thumb"))),
		),
		html.Div(
			html.Class("row between small muted"),
			html.Span(g.Textf("Votes: %s", humanize.Comma(int64(c.Votes)))),
			html.Span(g.Text(pct+"%")),
		),
		html.Div(
			html.Class("bar"),
			html.Div(html.Class("bar-fill"), html.Style("width: "+pct+"%")),
		),
		html.Button(
			html.Class(class),
			g.Attr("data-action", "vote"),
			g.Attr("data-charity", strconv.Itoa(c.ID)),
			g.If(disabled, html.Disabled()),
			g.Text(label),
		),
	)
}

func periodSummary(p Period, total int) g.Node {
	return html.Div(
		html.Class("period"),
		html.H4(g.Text("Current Voting Period")),
		html.Div(
			html.Class("grid-2 small"),
			periodItem("Total Votes", humanize.Comma(int64(total))),
			periodItem("Pool Amount", p.PoolAmount),
			periodItem("Voting Ends", p.EndsAt),
			periodItem("Quarter", p.Quarter),
		),
	)
}

func periodItem(label, value string) g.Node {
	return html.Div(
		html.P(html.Class("muted"), g.Text(label)),
		html.P(html.Class("strong"), g.Text(value)),
	)
}
