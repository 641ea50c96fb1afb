package profile

import (
	"strings"

	"github.com/hyperfill/formfill/internal/parsing"
	"github.com/hyperfill/formfill/internal/types"
)

// FromRow maps one raw row onto a canonical profile. Unknown headers are dropped and
// missing columns leave their fields empty; it never fails.
//
// Derivation order:
//  1. fullname falls back to company when blank;
//  2. email2 and password2 mirror email and password when absent;
//  3. fullname still blank is derived from first + last name, then username.
func FromRow(row types.Row) *types.Profile {
	tags := resolveTags(row)

	if isBlank(tags[types.RoleFullName]) && !isBlank(tags[types.RoleCompany]) {
		tags[types.RoleFullName] = tags[types.RoleCompany]
	}

	if tags[types.RoleEmail2] == "" {
		tags[types.RoleEmail2] = tags[types.RoleEmail]
	}
	if tags[types.RolePassword2] == "" {
		tags[types.RolePassword2] = tags[types.RolePassword]
	}

	p := &types.Profile{}
	for role, value := range tags {
		if isSecret(role) {
			p.Set(role, value)
			continue
		}
		p.Set(role, strings.TrimSpace(value))
	}

	if p.BusinessEmail == "" {
		p.BusinessEmail = p.WorkEmail
	}

	if p.FullName == "" {
		p.FullName = deriveFullName(p)
	}

	return p
}

// resolveTags folds the row into a tag->value map in column order, so a later
// column resolving to an already-seen tag overwrites it.
func resolveTags(row types.Row) map[types.Role]string {
	tags := make(map[types.Role]string, len(row))
	for _, cell := range row {
		role, ok := parsing.ResolveHeader(cell.Header)
		if !ok {
			continue
		}
		tags[role] = cell.Value
	}
	return tags
}

func deriveFullName(p *types.Profile) string {
	parts := make([]string, 0, 2)
	for _, part := range []string{p.FirstName, p.LastName} {
		if part = strings.TrimSpace(part); part != "" {
			parts = append(parts, part)
		}
	}
	if joined := strings.Join(parts, " "); joined != "" {
		return joined
	}
	return p.Username
}

// FirstNonBlank returns the first row holding at least one non-blank value.
func FirstNonBlank(rows []types.Row) (types.Row, bool) {
	for _, row := range rows {
		if !row.IsBlank() {
			return row, true
		}
	}
	return nil, false
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}

// isSecret marks fields whose surrounding whitespace is significant.
func isSecret(role types.Role) bool {
	return role == types.RolePassword || role == types.RolePassword2
}
