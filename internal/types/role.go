// Package types provides type definitions for structured data used throughout the form-autofill system.
//
//nolint:revive // types is a standard Go package name pattern
package types

// Role names a canonical profile field and the purpose of a form control that should receive it.
type Role string

// Role tags shared by the profile schema, the header alias table and the form role classifier.
const (
	RoleWebsite       Role = "website"
	RoleFirstName     Role = "firstname"
	RoleLastName      Role = "lastname"
	RoleFullName      Role = "fullname"
	RoleUsername      Role = "username"
	RoleEmail         Role = "email"
	RoleEmail2        Role = "email2"
	RoleBusinessEmail Role = "businessEmail"
	RoleWorkEmail     Role = "workEmail"
	RolePassword      Role = "password"
	RolePassword2     Role = "password2"
	RolePhone         Role = "phone"
	RoleAddress       Role = "address"
	RoleCity          Role = "city"
	RoleState         Role = "state"
	RolePostcode      Role = "postcode"
	RoleCountry       Role = "country"
	RoleLocation      Role = "location"
	RoleFacebook      Role = "facebook"
	RoleInstagram     Role = "instagram"
	RoleTwitter       Role = "twitter"
	RoleLinkedIn      Role = "linkedin"
	RoleYouTube       Role = "youtube"
	RoleTitle         Role = "title"
	RoleCompany       Role = "company"
	RoleCategory      Role = "category"
	RoleSubcategory   Role = "subcategory"
	RoleDescription   Role = "description"
)

// AllRoles lists every role tag in profile key order.
var AllRoles = []Role{
	RoleWebsite,
	RoleFirstName,
	RoleLastName,
	RoleFullName,
	RoleUsername,
	RoleEmail,
	RoleEmail2,
	RoleBusinessEmail,
	RoleWorkEmail,
	RolePassword,
	RolePassword2,
	RolePhone,
	RoleAddress,
	RoleCity,
	RoleState,
	RolePostcode,
	RoleCountry,
	RoleLocation,
	RoleFacebook,
	RoleInstagram,
	RoleTwitter,
	RoleLinkedIn,
	RoleYouTube,
	RoleTitle,
	RoleCompany,
	RoleCategory,
	RoleSubcategory,
	RoleDescription,
}

// IsKnown reports whether r is one of the fixed role tags.
func (r Role) IsKnown() bool {
	for _, known := range AllRoles {
		if r == known {
			return true
		}
	}
	return false
}

// String returns the tag text.
func (r Role) String() string {
	return string(r)
}
