package models

// Student is a mentee seeker. Mentors holds alumni ids and is appended to
// whenever a mentorship is requested.
type Student struct {
	ID             string   `json:"id"`
	Name           string   `json:"name"`
	Email          string   `json:"email"`
	GraduationYear int      `json:"graduationYear"`
	Department     string   `json:"department"`
	Mentors        []string `json:"mentors"`
}

// Clone returns a copy that shares no slices with s
func (s Student) Clone() Student {
	s.Mentors = cloneStrings(s.Mentors)
	return s
}

// HasMentor reports whether alumniID is in the mentor list
func (s Student) HasMentor(alumniID string) bool {
	return containsString(s.Mentors, alumniID)
}

func cloneStrings(in []string) []string {
	if in == nil {
		return nil
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}

func containsString(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}
