package services

import (
	"errors"
	"strings"
)

var errNoFirstName = errors.New("must contain a first and last name separated by a space")

// splitDisplayName splits name at its first space. The part before it is
// the first name and must be non-empty; the remainder, possibly empty, is
// the last name. A name without a space has no separable first name and is
// rejected.
func splitDisplayName(name string) (first, last string, err error) {
	first, last, ok := strings.Cut(name, " ")
	if !ok || first == "" {
		return "", "", errNoFirstName
	}
	return first, last, nil
}
