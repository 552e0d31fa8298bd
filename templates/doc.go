// Package templates holds the server-rendered HTML views. The *_templ.go
// files are generated from the .templ sources with `templ generate`.
package templates
