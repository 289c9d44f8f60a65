package nepfolio

import "github.com/nepfolio/nepfolio/date"

// Date is re-exported so callers rarely need to import the date package directly.
type Date = date.Date

// Today returns the current date.
func Today() Date { return date.Today() }

// ParseDate parses a Date from a string in ISO-8601 format.
func ParseDate(str string) (Date, error) { return date.Parse(str) }
