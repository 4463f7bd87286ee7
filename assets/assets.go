// Package assets holds the files shipped inside the binaries.
package assets

import "embed"

// EmailTemplates holds the text & html email templates under templates/email.
//
//go:embed templates/email/*
var EmailTemplates embed.FS
