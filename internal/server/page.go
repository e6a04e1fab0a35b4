package server

import (
	"html/template"
	"net/http"
	"net/url"
	"strconv"

	"github.com/KaramelBytes/unirank-cli/internal/view"
)

type pageData struct {
	Source    string
	Size      int
	ByCountry bool
	Pie       bool
	Ascending bool
	Params    view.Params
	MinLow    int
	MinHigh   int
	TopNMax   int
	Spec      view.ChartSpec
	ImageURL  string
}

var page = template.Must(template.New("index").Parse(`<!doctype html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>Top Universities</title>
<style>
body { margin: 0; font-family: sans-serif; display: flex; min-height: 100vh; }
aside { width: 18rem; padding: 1rem 1.5rem; background: #f0f2f6; }
main { flex: 1; padding: 1rem 2rem; }
fieldset { border: 0; padding: 0; margin: 0 0 1.2rem; }
legend, label.title { font-weight: 600; display: block; margin-bottom: .4rem; }
img { max-width: 100%; }
.message { padding: 1rem; background: #fff4e5; border-left: 4px solid #f0a030; }
footer { color: #666; font-size: .85rem; margin-top: 2rem; }
</style>
</head>
<body>
<aside>
<h2>Controls</h2>
<form method="get" action="/" onchange="this.submit()">
<fieldset>
<legend>Select Mode</legend>
<label><input type="radio" name="mode" value="by-country"{{if .ByCountry}} checked{{end}}> Top Universities by Country</label><br>
<label><input type="radio" name="mode" value="by-score"{{if not .ByCountry}} checked{{end}}> Top Universities Based on Score</label>
</fieldset>
{{if .ByCountry}}
<fieldset>
<label class="title" for="min_count">Minimum Number of Universities: {{.Params.MinCount}}</label>
<input id="min_count" type="range" name="min_count" min="{{.MinLow}}" max="{{.MinHigh}}" value="{{.Params.MinCount}}">
</fieldset>
<fieldset>
<legend>Select Chart Type</legend>
<label><input type="radio" name="chart_type" value="bar"{{if not .Pie}} checked{{end}}> Bar Chart</label><br>
<label><input type="radio" name="chart_type" value="pie"{{if .Pie}} checked{{end}}> Pie Chart</label>
</fieldset>
{{else}}
<fieldset>
<label class="title" for="top_n">Number of Top Universities: {{.Params.TopN}}</label>
<input id="top_n" type="range" name="top_n" min="1" max="{{.TopNMax}}" value="{{.Params.TopN}}"{{if lt .Size 1}} disabled{{end}}>
</fieldset>
<fieldset>
<legend>Select Order</legend>
<select name="order">
<option value="descending"{{if not .Ascending}} selected{{end}}>Descending</option>
<option value="ascending"{{if .Ascending}} selected{{end}}>Ascending</option>
</select>
</fieldset>
{{end}}
<noscript><button type="submit">Update</button></noscript>
</form>
</aside>
<main>
<h1>Top Universities Analysis</h1>
{{if .Spec.Drawable}}
<h3>{{.Spec.Title}}</h3>
<img src="{{.ImageURL}}" alt="{{.Spec.Title}}">
{{else if .Spec.Message}}
<p class="message">{{.Spec.Message}}</p>
{{else}}
<p class="message">Nothing to show for these settings.</p>
{{end}}
<footer>{{.Source}} · {{.Size}} universities</footer>
</main>
</body>
</html>
`))

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	sess, mode, p, spec := s.spec(r)
	q := url.Values{}
	q.Set("mode", string(mode))
	q.Set("min_count", strconv.Itoa(p.MinCount))
	q.Set("chart_type", string(p.ChartType))
	q.Set("top_n", strconv.Itoa(p.TopN))
	q.Set("order", string(p.Order))

	data := pageData{
		Source:    sess.Source,
		Size:      sess.Size(),
		ByCountry: mode == view.ByCountry,
		Pie:       p.ChartType == view.Pie,
		Ascending: p.Order.Ascending(),
		Params:    p,
		MinLow:    view.MinCountLow,
		MinHigh:   view.MinCountHigh,
		TopNMax:   max(sess.Size(), 1),
		Spec:      spec,
		ImageURL:  "/api/chart.svg?" + q.Encode(),
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := page.Execute(w, data); err != nil {
		s.log.Error("render page", "error", err)
	}
}
