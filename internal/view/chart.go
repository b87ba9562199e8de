package view

import (
	"strconv"
	"strings"

	g "maragu.dev/gomponents"
	"maragu.dev/gomponents/html"

	"github.com/b0ase/path402/apps/baguette/internal/market"
)

// Chart geometry, in SVG user units.
const (
	chartWidth  = 800
	chartHeight = 400
	padLeft     = 80
	padRight    = 20
	padTop      = 20
	padBottom   = 40
	yTicks      = 4
)

const (
	colorCat = "#f97316"
	colorDog = "#10B981"
)

type series struct {
	name   string
	color  string
	points []market.PricePoint
}

// scale maps prices onto the plot area. Both series share one scale.
type scale struct {
	min, max float64
	n        int
}

func newScale(ss ...series) scale {
	sc := scale{}
	first := true
	for _, s := range ss {
		if len(s.points) > sc.n {
			sc.n = len(s.points)
		}
		for _, p := range s.points {
			if first || p.Price < sc.min {
				sc.min = p.Price
			}
			if first || p.Price > sc.max {
				sc.max = p.Price
			}
			first = false
		}
	}
	if sc.max == sc.min {
		// Flat series: open a band around the value.
		pad := sc.max * 0.1
		if pad == 0 {
			pad = 1
		}
		sc.min -= pad
		sc.max += pad
	}
	return sc
}

func (sc scale) x(i int) float64 {
	w := float64(chartWidth - padLeft - padRight)
	if sc.n <= 1 {
		return padLeft + w/2
	}
	return padLeft + w*float64(i)/float64(sc.n-1)
}

func (sc scale) y(price float64) float64 {
	h := float64(chartHeight - padTop - padBottom)
	return padTop + h*(1-(price-sc.min)/(sc.max-sc.min))
}

func num(f float64) string {
	return strconv.FormatFloat(f, 'f', 2, 64)
}

// priceChart draws both price histories as polylines.
func priceChart(cat, dog []market.PricePoint) g.Node {
	ss := []series{
		{name: market.Catguette, color: colorCat, points: cat},
		{name: market.Doguette, color: colorDog, points: dog},
	}
	if len(cat) == 0 && len(dog) == 0 {
		return html.P(html.Class("empty"), g.Text("No price history available"))
	}
	sc := newScale(ss...)

	var nodes []g.Node
	for i := 0; i <= yTicks; i++ {
		v := sc.min + (sc.max-sc.min)*float64(i)/yTicks
		y := num(sc.y(v))
		nodes = append(nodes,
			g.El("line",
				g.Attr("x1", num(padLeft)), g.Attr("x2", num(chartWidth-padRight)),
				g.Attr("y1", y), g.Attr("y2", y),
				g.Attr("class", "grid"),
			),
			g.El("text",
				g.Attr("x", num(padLeft-8)), g.Attr("y", y),
				g.Attr("text-anchor", "end"), g.Attr("class", "axis"),
				g.Text(strconv.FormatFloat(v, 'f', 5, 64)),
			),
		)
	}

	dates := cat
	if len(dog) > len(dates) {
		dates = dog
	}
	for i, p := range dates {
		nodes = append(nodes, g.El("text",
			g.Attr("x", num(sc.x(i))), g.Attr("y", num(chartHeight-padBottom+24)),
			g.Attr("text-anchor", "middle"), g.Attr("class", "axis"),
			g.Text(p.Date),
		))
	}

	for _, s := range ss {
		if len(s.points) == 0 {
			continue
		}
		pts := make([]string, 0, len(s.points))
		for i, p := range s.points {
			pts = append(pts, num(sc.x(i))+","+num(sc.y(p.Price)))
		}
		nodes = append(nodes, g.El("polyline",
			g.Attr("points", strings.Join(pts, " ")),
			g.Attr("fill", "none"),
			g.Attr("stroke", s.color),
			g.Attr("stroke-width", "2"),
			g.Attr("data-series", s.name),
		))
	}

	legend := make([]g.Node, 0, len(ss))
	for _, s := range ss {
		legend = append(legend, html.Span(
			html.Class("legend-item"),
			html.Span(html.Class("swatch"), html.Style("background: "+s.color)),
			g.Text(s.name),
		))
	}

	return html.Div(
		html.Class("chart"),
		g.El("svg",
			g.Attr("viewBox", "0 0 "+strconv.Itoa(chartWidth)+" "+strconv.Itoa(chartHeight)),
			g.Attr("preserveAspectRatio", "none"),
			g.Attr("role", "img"),
			g.Attr("aria-label", "Price history"),
			g.Group(nodes),
		),
		html.Div(html.Class("legend"), g.Group(legend)),
	)
}
