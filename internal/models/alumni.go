package models

// Alumni is a potential mentor. Mentees holds student ids.
type Alumni struct {
	ID             string   `json:"id"`
	Name           string   `json:"name"`
	Email          string   `json:"email"`
	GraduationYear int      `json:"graduationYear"`
	Department     string   `json:"department"`
	Company        string   `json:"company,omitempty"`
	Position       string   `json:"position,omitempty"`
	Achievements   []string `json:"achievements,omitempty"`
	IsNotable      bool     `json:"isNotable,omitempty"`
	Mentees        []string `json:"mentees"`
}

// Clone returns a copy that shares no slices with a
func (a Alumni) Clone() Alumni {
	a.Achievements = cloneStrings(a.Achievements)
	a.Mentees = cloneStrings(a.Mentees)
	return a
}

// HasMentee reports whether studentID is in the mentee list
func (a Alumni) HasMentee(studentID string) bool {
	return containsString(a.Mentees, studentID)
}

// AlumniUpdate is a partial profile update. Nil fields are left untouched.
// SECURITY: Max length validation to prevent resource exhaustion attacks
type AlumniUpdate struct {
	Name           *string   `json:"name" binding:"omitempty,min=1,max=100"`
	Email          *string   `json:"email" binding:"omitempty,email,max=200"`
	GraduationYear *int      `json:"graduationYear" binding:"omitempty,min=1900,max=2100"`
	Department     *string   `json:"department" binding:"omitempty,min=1,max=100"`
	Company        *string   `json:"company" binding:"omitempty,max=200"`
	Position       *string   `json:"position" binding:"omitempty,max=200"`
	Achievements   *[]string `json:"achievements" binding:"omitempty,max=20,dive,max=300"`
	IsNotable      *bool     `json:"isNotable"`
}

// IsEmpty reports whether the update sets no field
func (u AlumniUpdate) IsEmpty() bool {
	return u.Name == nil && u.Email == nil && u.GraduationYear == nil && u.Department == nil &&
		u.Company == nil && u.Position == nil && u.Achievements == nil && u.IsNotable == nil
}

// Apply merges the set fields into a and returns the result
func (u AlumniUpdate) Apply(a Alumni) Alumni {
	if u.Name != nil {
		a.Name = *u.Name
	}
	if u.Email != nil {
		a.Email = *u.Email
	}
	if u.GraduationYear != nil {
		a.GraduationYear = *u.GraduationYear
	}
	if u.Department != nil {
		a.Department = *u.Department
	}
	if u.Company != nil {
		a.Company = *u.Company
	}
	if u.Position != nil {
		a.Position = *u.Position
	}
	if u.Achievements != nil {
		a.Achievements = cloneStrings(*u.Achievements)
	}
	if u.IsNotable != nil {
		a.IsNotable = *u.IsNotable
	}
	return a
}
