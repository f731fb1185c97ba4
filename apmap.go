// Package apmap holds the assets shared by the apmap binaries.
package apmap

import "embed"

// EmailFS contains the email templates, one directory per template with an
// html.tmpl and a plaintext.tmpl.
//
//go:embed templates/emails
var EmailFS embed.FS

// MigrationsFS contains the ordered SQL schema migrations.
//
//go:embed migrations/*.sql
var MigrationsFS embed.FS
