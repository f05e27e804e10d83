// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package seo

import (
	"bytes"
	"html/template"
)

// previewTemplate is the minimal HTML document served to crawlers. It
// exists only to carry meta tags, so there is no styling or script.
var previewTemplate = template.Must(template.New("preview").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<meta name="description" content="{{.Description}}">
<meta property="og:title" content="{{.Title}}">
<meta property="og:description" content="{{.Description}}">
{{if .Image}}<meta property="og:image" content="{{.Image}}">
{{end}}<meta property="og:url" content="{{.URL}}">
<meta property="og:type" content="{{.OGType}}">
<meta property="og:site_name" content="{{.SiteName}}">
<meta name="twitter:card" content="{{.TwitterCard}}">
<meta name="twitter:title" content="{{.Title}}">
<meta name="twitter:description" content="{{.Description}}">
{{if .Image}}<meta name="twitter:image" content="{{.Image}}">
{{end}}</head>
<body>
<h1>{{.Title}}</h1>
<p>{{.Description}}</p>
{{if .Image}}<img src="{{.Image}}" alt="{{.Title}}">
{{end}}</body>
</html>
`))

// RenderPreview renders the crawler-facing HTML document for the given
// metadata.
func RenderPreview(meta *Meta) ([]byte, error) {
	var buf bytes.Buffer
	if err := previewTemplate.Execute(&buf, meta); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
