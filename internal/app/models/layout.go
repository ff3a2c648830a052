package models

import "github.com/a-h/templ"

// Layout is the data handed to the page shell.
type Layout struct {
	Title   string
	Content templ.Component
}
