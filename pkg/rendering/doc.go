// Package rendering turns one settings section into one generated file.
//
// The template syntax is pluggable: an Engine looks a template up by its
// path relative to the templates root and renders it against a flat map of
// string variables. Two engines ship with configme:
//
//   - "gotemplate": Go's text/template, unknown variables are errors
//   - "pongo2" (alias "jinja2"): Django/Jinja2 syntax via pongo2
//
// TemplateRenderer owns the rest: path validation, collision checks,
// parent folder creation and writing the result.
package rendering
