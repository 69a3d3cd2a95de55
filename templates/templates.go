// Package templates embeds the HTML bodies of outgoing mail.
package templates

import "embed"

//go:embed *.html
var FS embed.FS
