// Package cv models a CV profile and renders it as a styled HTML
// document. Rendering is deterministic: the same profile always produces
// the same markup.
package cv

// Profile is the data record behind a CV document. It is persisted as
// JSON in the key-value store and edited freely by callers.
type Profile struct {
	FullName string `json:"fullName"`
	Title    string `json:"title,omitempty"`
	Email    string `json:"email,omitempty"`
	Phone    string `json:"phone,omitempty"`
	City     string `json:"city,omitempty"`
	Summary  string `json:"summary,omitempty"`

	Education  []Education  `json:"education,omitempty"`
	Experience []Experience `json:"experience,omitempty"`
	Skills     []string     `json:"skills,omitempty"`
	Languages  []string     `json:"languages,omitempty"`
}

// Education is one study entry. GPA and Scale are display strings taken
// from the calculator, e.g. "4.33" on scale "5".
type Education struct {
	Institution string `json:"institution"`
	Degree      string `json:"degree,omitempty"`
	GPA         string `json:"gpa,omitempty"`
	Scale       string `json:"scale,omitempty"`
	Years       string `json:"years,omitempty"`
}

// Experience is one work entry.
type Experience struct {
	Company     string `json:"company"`
	Role        string `json:"role,omitempty"`
	Period      string `json:"period,omitempty"`
	Description string `json:"description,omitempty"`
}

// Empty reports whether the profile has no content worth rendering.
func (p Profile) Empty() bool {
	return p.FullName == "" &&
		len(p.Education) == 0 &&
		len(p.Experience) == 0 &&
		len(p.Skills) == 0
}
