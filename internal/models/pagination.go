package models

import "strconv"

const (
	DefaultPage  = 1
	DefaultLimit = 10
)

// Page is a normalised page/limit pair taken from the query string.
type Page struct {
	Number int
	Limit  int
}

// NewPage parses the page and limit query parameters. Unparsable or
// non-positive values fall back to the defaults and limit is capped at maxLimit.
func NewPage(page, limit string, maxLimit int) Page {
	p := Page{Number: DefaultPage, Limit: DefaultLimit}
	if n, err := strconv.Atoi(page); err == nil && n > 0 {
		p.Number = n
	}
	if n, err := strconv.Atoi(limit); err == nil && n > 0 {
		p.Limit = n
	}
	if maxLimit > 0 && p.Limit > maxLimit {
		p.Limit = maxLimit
	}
	return p
}

// Offset is the number of records skipped before this page.
func (p Page) Offset() int {
	return (p.Number - 1) * p.Limit
}
