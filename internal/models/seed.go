package models

// SeedStudents returns the sample students written on first start
func SeedStudents() []Student {
	return []Student{
		{ID: "student_1", Name: "John Smith", Email: "john.smith@university.edu", GraduationYear: 2025, Department: "Computer Science", Mentors: []string{}},
		{ID: "student_2", Name: "Emily Johnson", Email: "emily.johnson@university.edu", GraduationYear: 2024, Department: "Engineering", Mentors: []string{}},
		{ID: "student_3", Name: "Michael Brown", Email: "michael.brown@university.edu", GraduationYear: 2026, Department: "Business", Mentors: []string{}},
	}
}

// SeedAlumni returns the sample alumni written on first start
func SeedAlumni() []Alumni {
	return []Alumni{
		{
			ID:             "alumni_1",
			Name:           "Sarah Wilson",
			Email:          "sarah.wilson@gmail.com",
			GraduationYear: 2020,
			Department:     "Computer Science",
			Company:        "Google",
			Position:       "Software Engineer",
			Achievements:   []string{"Published research paper", "Led major project"},
			IsNotable:      true,
			Mentees:        []string{},
		},
		{
			ID:             "alumni_2",
			Name:           "David Martinez",
			Email:          "david.martinez@outlook.com",
			GraduationYear: 2018,
			Department:     "Engineering",
			Company:        "Tesla",
			Position:       "Product Manager",
			IsNotable:      false,
			Mentees:        []string{},
		},
		{
			ID:             "alumni_3",
			Name:           "Jennifer Lee",
			Email:          "jennifer.lee@yahoo.com",
			GraduationYear: 2015,
			Department:     "Business",
			Company:        "Amazon",
			Position:       "Marketing Director",
			Achievements:   []string{"MBA from Harvard", "Founded startup"},
			IsNotable:      true,
			Mentees:        []string{},
		},
	}
}

// SeedEvents returns the sample events written on first start
func SeedEvents() []Event {
	return []Event{
		{
			ID:          "event_1",
			Title:       "Annual Alumni Reunion",
			Description: "Join us for the annual alumni reunion and networking event.",
			Date:        "2025-06-15",
			Location:    "University Main Campus",
		},
		{
			ID:          "event_2",
			Title:       "Career Workshop",
			Description: "Workshop on career opportunities in tech industry.",
			Date:        "2025-04-20",
			Location:    "Virtual Event",
		},
	}
}

// SeedMentorships returns the initial, empty mentorship list
func SeedMentorships() []Mentorship {
	return []Mentorship{}
}
