package types

// Profile is the canonical, flat business/contact profile every import path is normalized into.
// All fields are always serialized; absent data is the empty string.
type Profile struct {
	Website       string `json:"website"`
	FirstName     string `json:"firstname"`
	LastName      string `json:"lastname"`
	FullName      string `json:"fullname"`
	Username      string `json:"username"`
	Email         string `json:"email"`
	Email2        string `json:"email2"`
	BusinessEmail string `json:"businessEmail"`
	WorkEmail     string `json:"workEmail"`
	Password      string `json:"password"`
	Password2     string `json:"password2"`
	Phone         string `json:"phone"`
	Address       string `json:"address"`
	City          string `json:"city"`
	State         string `json:"state"`
	Postcode      string `json:"postcode"`
	Country       string `json:"country"`
	Location      string `json:"location"`
	Facebook      string `json:"facebook"`
	Instagram     string `json:"instagram"`
	Twitter       string `json:"twitter"`
	LinkedIn      string `json:"linkedin"`
	YouTube       string `json:"youtube"`
	Title         string `json:"title"`
	Company       string `json:"company"`
	Category      string `json:"category"`
	Subcategory   string `json:"subcategory"`
	Description   string `json:"description"`
}

// field returns a pointer to the profile field bound to role, or nil for an unknown role.
func (p *Profile) field(role Role) *string {
	switch role {
	case RoleWebsite:
		return &p.Website
	case RoleFirstName:
		return &p.FirstName
	case RoleLastName:
		return &p.LastName
	case RoleFullName:
		return &p.FullName
	case RoleUsername:
		return &p.Username
	case RoleEmail:
		return &p.Email
	case RoleEmail2:
		return &p.Email2
	case RoleBusinessEmail:
		return &p.BusinessEmail
	case RoleWorkEmail:
		return &p.WorkEmail
	case RolePassword:
		return &p.Password
	case RolePassword2:
		return &p.Password2
	case RolePhone:
		return &p.Phone
	case RoleAddress:
		return &p.Address
	case RoleCity:
		return &p.City
	case RoleState:
		return &p.State
	case RolePostcode:
		return &p.Postcode
	case RoleCountry:
		return &p.Country
	case RoleLocation:
		return &p.Location
	case RoleFacebook:
		return &p.Facebook
	case RoleInstagram:
		return &p.Instagram
	case RoleTwitter:
		return &p.Twitter
	case RoleLinkedIn:
		return &p.LinkedIn
	case RoleYouTube:
		return &p.YouTube
	case RoleTitle:
		return &p.Title
	case RoleCompany:
		return &p.Company
	case RoleCategory:
		return &p.Category
	case RoleSubcategory:
		return &p.Subcategory
	case RoleDescription:
		return &p.Description
	}
	return nil
}

// Get returns the value stored for role, or "" for an unknown role.
func (p *Profile) Get(role Role) string {
	if f := p.field(role); f != nil {
		return *f
	}
	return ""
}

// Set stores value under role. It reports false for an unknown role.
func (p *Profile) Set(role Role, value string) bool {
	f := p.field(role)
	if f == nil {
		return false
	}
	*f = value
	return true
}

// Values returns the profile as a role-keyed map containing every role tag.
func (p *Profile) Values() map[Role]string {
	out := make(map[Role]string, len(AllRoles))
	for _, role := range AllRoles {
		out[role] = p.Get(role)
	}
	return out
}
