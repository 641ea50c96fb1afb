package formmap

import (
	"regexp"
	"strings"

	"github.com/hyperfill/formfill/internal/types"
)

// RolePattern recognizes one role in the identifying text of a form control.
type RolePattern struct {
	Role    types.Role
	Pattern *regexp.Regexp
}

// separator is what a space in a pattern source stands for: any run of
// whitespace, underscores, dots or hyphens, including none.
const separator = `[\s_.\-]*`

func rolePattern(role types.Role, source string) RolePattern {
	return RolePattern{
		Role:    role,
		Pattern: regexp.MustCompile(`(?i)` + strings.ReplaceAll(source, " ", separator)),
	}
}

// RolePatterns is tried in order and the first match wins, so every role whose cue
// overlaps a broader one sits above it (confirm email above email, business email
// above email, first/last name above full name, socials above website, sub category
// above category).
var RolePatterns = []RolePattern{
	rolePattern(types.RoleEmail2, `confirm e mail|e mail confirm|re enter e mail|re type e mail|email2`),
	rolePattern(types.RolePassword2, `confirm pass|pass confirm|re type pass|re enter pass|password2`),
	rolePattern(types.RolePassword, `^(password|passwd|pwd|pass)$`),
	rolePattern(types.RoleBusinessEmail, `business e mail|office e mail`),
	rolePattern(types.RoleWorkEmail, `work e mail`),
	rolePattern(types.RoleEmail, `e mail|mail address`),
	rolePattern(types.RoleFirstName, `first name|fname|given name`),
	rolePattern(types.RoleLastName, `last name|lname|surname|family name`),
	rolePattern(types.RoleFullName, `full name|display name|your name\b`),
	rolePattern(types.RoleUsername, `user name|login id|user id|login name`),
	rolePattern(types.RolePhone, `phone|mobile|tel|whatsapp|contact no`),
	rolePattern(types.RoleAddress, `address|street|addr`),
	rolePattern(types.RoleCity, `city|town`),
	rolePattern(types.RoleState, `state|province|region`),
	rolePattern(types.RolePostcode, `post code|postal|zip|pin code`),
	rolePattern(types.RoleCountry, `country`),
	rolePattern(types.RoleLocation, `location|area|place`),
	rolePattern(types.RoleFacebook, `facebook|fb url`),
	rolePattern(types.RoleInstagram, `instagram|insta`),
	rolePattern(types.RoleTwitter, `twitter|x \.com`),
	rolePattern(types.RoleLinkedIn, `linked in`),
	rolePattern(types.RoleYouTube, `you tube|yt channel`),
	rolePattern(types.RoleWebsite, `web site|url|home page`),
	rolePattern(types.RoleTitle, `title|headline`),
	rolePattern(types.RoleCompany, `company|business|organi[sz]ation|org name`),
	rolePattern(types.RoleSubcategory, `sub categ|subcat`),
	rolePattern(types.RoleCategory, `category|cat\b`),
	rolePattern(types.RoleDescription, `description|about|bio|summary|intro`),
}

// confirmCue marks a password control as the confirmation field.
var confirmCue = regexp.MustCompile(`(?i)confirm|retype|re` + separator + `enter|password2`)

// MatchRole returns the first role in RolePatterns whose pattern matches text.
func MatchRole(text string) (types.Role, bool) {
	for _, rp := range RolePatterns {
		if rp.Pattern.MatchString(text) {
			return rp.Role, true
		}
	}
	return "", false
}

// InferRole classifies a candidate. Password-typed controls are decided before the
// pattern table and only ever become password or password2.
func InferRole(c Candidate) (types.Role, bool) {
	text := c.IdentifyingText()

	if strings.EqualFold(strings.TrimSpace(c.Type), "password") {
		if confirmCue.MatchString(text) {
			return types.RolePassword2, true
		}
		return types.RolePassword, true
	}

	return MatchRole(text)
}
