package customer

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/jhoicas/Invoicing-api/internal/domain"
)

// Group is an alphabetic customer bucket such as "A-E". Start and End are uppercased single characters.
type Group struct {
	Start string
	End   string
}

// DefaultGroups are the tabs offered by the customer listing.
var DefaultGroups = []Group{
	{Start: "A", End: "E"},
	{Start: "F", End: "K"},
	{Start: "L", End: "R"},
	{Start: "S", End: "Z"},
}

// ParseGroup parses a "<start>-<end>" token. It fails with domain.ErrInvalidGroup when the token
// does not split into exactly two single-character parts or when start sorts after end.
func ParseGroup(token string) (Group, error) {
	parts := strings.Split(token, "-")
	if len(parts) != 2 || utf8.RuneCountInString(parts[0]) != 1 || utf8.RuneCountInString(parts[1]) != 1 {
		return Group{}, fmt.Errorf("%w: %q", domain.ErrInvalidGroup, token)
	}
	start := strings.ToUpper(parts[0])
	end := strings.ToUpper(parts[1])
	if start > end {
		return Group{}, fmt.Errorf("%w: start %q cannot be greater than end %q", domain.ErrInvalidGroup, start, end)
	}
	return Group{Start: start, End: end}, nil
}

// String renders the group token, e.g. "A-E".
func (g Group) String() string {
	return g.Start + "-" + g.End
}

// Contains reports whether name's uppercased first character falls in [Start, End].
// Empty names belong to no group.
func (g Group) Contains(name string) bool {
	initial, ok := Initial(name)
	if !ok {
		return false
	}
	return initial >= g.Start && initial <= g.End
}

// Initial returns the uppercased first character of name.
func Initial(name string) (string, bool) {
	r, size := utf8.DecodeRuneInString(name)
	if size == 0 || r == utf8.RuneError {
		return "", false
	}
	return strings.ToUpper(string(r)), true
}
