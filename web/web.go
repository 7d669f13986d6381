// Package web embeds the HTML templates for the form and result pages.
package web

import "embed"

//go:embed templates/*.html
var Templates embed.FS
