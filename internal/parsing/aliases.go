package parsing

import "github.com/hyperfill/formfill/internal/types"

// Alias pairs a normalized header spelling with the role tag it resolves to.
type Alias struct {
	Header string
	Role   types.Role
}

// Aliases is the header alias table. Keys are already normalized; lookups are exact.
var Aliases = []Alias{
	{"website url", types.RoleWebsite},
	{"website", types.RoleWebsite},
	{"url", types.RoleWebsite},
	{"site", types.RoleWebsite},
	{"domain", types.RoleWebsite},

	{"full name", types.RoleFullName},
	{"fullname", types.RoleFullName},
	{"name", types.RoleFullName},
	{"first name", types.RoleFirstName},
	{"firstname", types.RoleFirstName},
	{"given name", types.RoleFirstName},
	{"fname", types.RoleFirstName},
	{"last name", types.RoleLastName},
	{"lastname", types.RoleLastName},
	{"surname", types.RoleLastName},
	{"lname", types.RoleLastName},
	{"username", types.RoleUsername},
	{"user name", types.RoleUsername},
	{"login", types.RoleUsername},
	{"user id", types.RoleUsername},
	{"userid", types.RoleUsername},

	{"email", types.RoleEmail},
	{"e mail", types.RoleEmail},
	{"primary email", types.RoleEmail},
	{"submission email", types.RoleEmail},
	{"submission email id", types.RoleEmail},
	{"email id", types.RoleEmail},
	{"confirm email", types.RoleEmail2},
	{"email confirm", types.RoleEmail2},
	{"email confirmation", types.RoleEmail2},

	{"business email", types.RoleBusinessEmail},
	{"businessemail", types.RoleBusinessEmail},
	{"business e mail", types.RoleBusinessEmail},
	{"work email", types.RoleWorkEmail},
	{"workemail", types.RoleWorkEmail},
	{"office email", types.RoleWorkEmail},
	{"officeemail", types.RoleWorkEmail},

	{"password", types.RolePassword},
	{"pass", types.RolePassword},
	{"submission password", types.RolePassword},
	{"email id password", types.RolePassword},
	{"confirm password", types.RolePassword2},
	{"password confirm", types.RolePassword2},
	{"retype password", types.RolePassword2},

	{"phone", types.RolePhone},
	{"phone no", types.RolePhone},
	{"phone number", types.RolePhone},
	{"mobile", types.RolePhone},
	{"mobile phone", types.RolePhone},
	{"whatsapp", types.RolePhone},
	{"tel", types.RolePhone},

	{"address", types.RoleAddress},
	{"street address", types.RoleAddress},
	{"city", types.RoleCity},
	{"town", types.RoleCity},
	{"state", types.RoleState},
	{"state province", types.RoleState},
	{"province", types.RoleState},
	{"region", types.RoleState},
	{"postcode", types.RolePostcode},
	{"post code", types.RolePostcode},
	{"postal code", types.RolePostcode},
	{"zip", types.RolePostcode},
	{"zip code", types.RolePostcode},
	{"pin", types.RolePostcode},
	{"pin code", types.RolePostcode},
	{"country", types.RoleCountry},
	{"target country", types.RoleCountry},
	{"location", types.RoleLocation},

	{"facebook", types.RoleFacebook},
	{"facebook url", types.RoleFacebook},
	{"instagram", types.RoleInstagram},
	{"instagram url", types.RoleInstagram},
	{"twitter", types.RoleTwitter},
	{"x", types.RoleTwitter},
	{"twitter url", types.RoleTwitter},
	{"linkedin", types.RoleLinkedIn},
	{"linked in", types.RoleLinkedIn},
	{"linkedin url", types.RoleLinkedIn},
	{"youtube", types.RoleYouTube},
	{"youtube channel", types.RoleYouTube},
	{"youtube url", types.RoleYouTube},

	{"bio", types.RoleDescription},
	{"about", types.RoleDescription},
	{"description", types.RoleDescription},
	{"summary", types.RoleDescription},

	{"company", types.RoleCompany},
	{"company name", types.RoleCompany},
	{"business name", types.RoleCompany},
	{"firm", types.RoleCompany},

	{"title", types.RoleTitle},
	{"resume headline", types.RoleTitle},
	{"headline", types.RoleTitle},
	{"category", types.RoleCategory},
	{"job category", types.RoleCategory},
	{"select category", types.RoleCategory},
	{"subcategory", types.RoleSubcategory},
	{"sub category", types.RoleSubcategory},
	{"job subcategory", types.RoleSubcategory},
	{"job sub category", types.RoleSubcategory},
}

var aliasIndex = buildAliasIndex(Aliases)

// buildAliasIndex indexes the table; the first entry for a header wins.
func buildAliasIndex(aliases []Alias) map[string]types.Role {
	index := make(map[string]types.Role, len(aliases))
	for _, a := range aliases {
		if _, exists := index[a.Header]; exists {
			continue
		}
		index[a.Header] = a.Role
	}
	return index
}

// LookupAlias resolves a normalized header to its role tag. Unknown headers report false.
func LookupAlias(normalized string) (types.Role, bool) {
	role, ok := aliasIndex[normalized]
	return role, ok
}

// ResolveHeader normalizes a raw header and resolves it in one step.
func ResolveHeader(header string) (types.Role, bool) {
	return LookupAlias(NormalizeHeader(header))
}
