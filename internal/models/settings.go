package models

// BrandingSettings is a singleton overwritten wholesale on every admin save.
type BrandingSettings struct {
	BrandName        string `json:"brandName"`
	HeroImageURL     string `json:"heroImageUrl"`
	InstructorSlogan string `json:"instructorSlogan"`
	CopyrightText    string `json:"copyrightText"`
}

// InstructorInfo is a singleton describing the academy's head instructor.
// Achievements is an ordered list; order is preserved through save/load.
type InstructorInfo struct {
	Name            string   `json:"name"`
	Role            string   `json:"role"`
	ProfileImageURL string   `json:"profileImageUrl"`
	Bio             string   `json:"bio"`
	Achievements    []string `json:"achievements"`
}

// Setting names under which singletons are stored.
const (
	SettingBranding        = "branding"
	SettingInstructor      = "instructor"
	SettingAdminCredential = "admin_credential"
)

// AdminCredential holds the bcrypt hash of the shared admin secret. The
// row's absence signals first-time setup.
type AdminCredential struct {
	PasswordHash string `json:"passwordHash"`
}
