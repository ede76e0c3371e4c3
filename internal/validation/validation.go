// Package validation provides field-keyed request validators. Each validator
// returns a map of field name to message plus a validity flag; the services
// only run when the flag is true.
package validation

import (
	"net/mail"
	"net/url"
	"strings"
	"unicode/utf8"
)

func isEmpty(s string) bool {
	return strings.TrimSpace(s) == ""
}

func lengthBetween(s string, min, max int) bool {
	n := utf8.RuneCountInString(s)
	return n >= min && n <= max
}

func isEmail(s string) bool {
	_, err := mail.ParseAddress(s)
	return err == nil
}

func isURL(s string) bool {
	u, err := url.Parse(s)
	return err == nil && (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}
