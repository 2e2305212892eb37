package chart

import (
	"html/template"
	"strconv"
)

var templateFuncs = template.FuncMap{
	"fx": func(v float64) string { return strconv.FormatFloat(v, 'f', 1, 64) },
}

var pageTemplate = template.Must(template.New("chart").Funcs(templateFuncs).Parse(pageHTML))

const pageHTML = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
body { font-family: sans-serif; margin: 0; color: #333; }
h1 { font-size: 18px; font-weight: normal; margin: 12px 16px 0; }
.axis text { fill: #777; font-size: 11px; }
.axis line { stroke: #777; }
.grid line { stroke: #eee; }
.zero { stroke: #bbb; }
.line { fill: none; stroke-width: 2; }
.band .hit { fill: transparent; }
.band .marker, .band .tip { visibility: hidden; }
.band:hover .marker, .band:hover .tip { visibility: visible; }
.tip div { background: #fff; border: 1px solid #ccc; padding: 4px 8px; font-size: 12px; }
.tip p { margin: 2px 0; }
.tip img { height: 18px; vertical-align: middle; }
.legend text { font-size: 11px; fill: #333; }
</style>
</head>
<body>
<h1>{{.Title}}</h1>
<svg xmlns="http://www.w3.org/2000/svg" width="{{.Layout.Width}}" height="{{.Layout.Height}}" viewBox="0 0 {{.Layout.Width}} {{.Layout.Height}}" data-variant="{{.Variant}}">
<g transform="translate({{.Layout.Margin.Left}},{{.Layout.Margin.Top}})">
<g class="timeframes">
{{- range .Timeframes}}
<rect class="timeframe" x="{{fx .X}}" y="0" width="{{fx .Width}}" height="{{$.PlotHeight}}" fill="{{.Colour}}"><title>{{.Label}}</title></rect>
{{- end}}
</g>
<g class="grid">
{{- range .YTicks}}
<line x1="0" x2="{{$.PlotWidth}}" y1="{{fx .Pos}}" y2="{{fx .Pos}}"></line>
{{- end}}
</g>
<line class="zero" x1="0" x2="{{.PlotWidth}}" y1="{{fx .ZeroY}}" y2="{{fx .ZeroY}}"></line>
<g class="axis x" transform="translate(0,{{.PlotHeight}})">
<line x1="0" x2="{{.PlotWidth}}"></line>
{{- range .XTicks}}
<g transform="translate({{fx .Pos}},0)"><line y2="6"></line><text y="18" text-anchor="middle">{{.Label}}</text></g>
{{- end}}
</g>
<g class="axis y">
<line y1="0" y2="{{.PlotHeight}}"></line>
{{- range .YTicks}}
<g transform="translate(0,{{fx .Pos}})"><line x2="-6"></line><text x="-9" dy="0.32em" text-anchor="end">{{.Label}}</text></g>
{{- end}}
</g>
<g class="lines">
{{- range .Segments}}
<path class="line" d="{{.D}}" stroke="{{.Colour}}" stroke-dasharray="{{or .Dash "none"}}"><title>{{.Label}}</title></path>
{{- end}}
</g>
{{- if .Legend}}
<g class="legend" transform="translate(10,10)">
{{- range .Legend}}
<g transform="translate(0,{{fx .Y}})"><line x1="0" x2="18" stroke="{{.Colour}}" stroke-width="2" stroke-dasharray="{{or .Dash "none"}}"></line><text x="24" dy="0.32em">{{.Label}}</text></g>
{{- end}}
</g>
{{- end}}
<g class="bands">
{{- range .Bands}}
<g class="band">
<rect class="hit" x="{{fx .X}}" y="0" width="{{fx .Width}}" height="{{$.PlotHeight}}"><title>{{.Tooltip.Text}}</title></rect>
<circle class="marker" cx="{{fx .MarkerX}}" cy="{{fx .MarkerY}}" r="4" fill="{{.Colour}}"></circle>
<foreignObject class="tip" x="{{fx .TipX}}" y="{{fx .TipY}}" width="{{$.TipWidth}}" height="{{$.TipHeight}}">
{{- with .Tooltip}}
<div xmlns="http://www.w3.org/1999/xhtml">
<p><strong>{{.Opponent}}</strong>{{if .Venue}} ({{.Venue}}){{end}}</p>
{{- if .ShowScore}}
<p>{{if .UnitedFirst}}<b>{{.HomeGoals}}</b> - {{.AwayGoals}}{{else}}{{.HomeGoals}} - <b>{{.AwayGoals}}</b>{{end}}</p>
{{- end}}
<p>{{if .Logo}}<img src="{{.Logo}}" alt="{{.Competition}}"> {{end}}{{.Competition}}</p>
<p>{{.Date}}</p>
<p>Cumulative GD: {{.Cumulative}}</p>
{{- if .ShowManager}}
<p>{{.Manager}} ({{.ManagerType}})</p>
<p>Manager GD: {{.ManagerGD}}</p>
{{- end}}
</div>
{{- end}}
</foreignObject>
</g>
{{- end}}
</g>
</g>
</svg>
</body>
</html>
`
