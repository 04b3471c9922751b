// Package gallery writes the static HTML page that shows a country's charts.
package gallery

import (
	"bytes"
	"fmt"
	"html/template"
	"os"
	"path/filepath"

	"berkotech.co/covid/internal/chart"
	"berkotech.co/covid/internal/trend"
)

// Summary is printed above the charts when present.
type Summary struct {
	AveragePerDay float64
	Trend         *trend.Trend
}

type image struct {
	File  string
	Title string
}

type page struct {
	Country string
	Summary *Summary
	Images  []image
}

var pageTmpl = template.Must(template.New("gallery").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>COVID-19 in {{.Country}}</title>
</head>
<body>
<h1>COVID-19 in {{.Country}}</h1>
{{- with .Summary}}
<p>Average infected per day: {{printf "%.2f" .AveragePerDay}}</p>
{{- with .Trend}}
<p>New cases over the last {{.Window}} days change by {{printf "%.2f" .Slope}} per day (R&sup2; {{printf "%.2f" .R2}})</p>
{{- end}}
{{- end}}
{{- range .Images}}
<figure>
<img src="{{.File}}" alt="{{.Title}}">
<figcaption>{{.Title}}</figcaption>
</figure>
{{- end}}
</body>
</html>
`))

// FileName is "<country>.html".
func FileName(country string) string {
	return country + ".html"
}

// Write renders the gallery for country into dir, replacing any existing
// page. The referenced images are not checked. It returns the page path.
func Write(dir, country, ext string, summary *Summary) (string, error) {
	p := page{Country: country, Summary: summary}
	for _, k := range chart.Kinds {
		p.Images = append(p.Images, image{File: k.FileName(country, ext), Title: k.Title(country)})
	}

	var b bytes.Buffer
	if err := pageTmpl.Execute(&b, p); err != nil {
		return "", fmt.Errorf("failed to render gallery: %w", err)
	}
	path := filepath.Join(dir, FileName(country))
	if err := os.WriteFile(path, b.Bytes(), 0644); err != nil {
		return "", fmt.Errorf("failed to write gallery: %w", err)
	}
	return path, nil
}
