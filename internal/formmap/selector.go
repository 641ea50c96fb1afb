package formmap

import (
	"regexp"
	"strings"
)

var bareIdentifier = regexp.MustCompile(`^[a-zA-Z][\w-]*$`)

var attrValueEscaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`)

// BuildSelector returns "#id" when the id is a bare identifier, otherwise a
// tag[name="..."] attribute selector. It reports false when neither can be built.
func BuildSelector(c Candidate) (string, bool) {
	id := strings.TrimSpace(c.ID)
	if id != "" && bareIdentifier.MatchString(id) {
		return "#" + id, true
	}

	name := strings.TrimSpace(c.Name)
	if name != "" {
		return c.Tag + `[name="` + attrValueEscaper.Replace(name) + `"]`, true
	}

	return "", false
}
