package application

import (
	"strings"
	"time"
)

// Contact is how the employer reaches the applicant
type Contact struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	AltPhone string `json:"alt_phone,omitempty"`
}

// WithFallback fills empty name, email and phone from fb
func (c Contact) WithFallback(fb Contact) Contact {
	if strings.TrimSpace(c.Name) == "" {
		c.Name = fb.Name
	}
	if strings.TrimSpace(c.Email) == "" {
		c.Email = fb.Email
	}
	if strings.TrimSpace(c.Phone) == "" {
		c.Phone = fb.Phone
	}
	return c
}

// Validate requires name, email and phone
func (c Contact) Validate() error {
	var missing []string
	if strings.TrimSpace(c.Name) == "" {
		missing = append(missing, "name")
	}
	if strings.TrimSpace(c.Email) == "" {
		missing = append(missing, "email")
	}
	if strings.TrimSpace(c.Phone) == "" {
		missing = append(missing, "phone")
	}
	if len(missing) > 0 {
		return ErrContactIncomplete().WithDetail("missing", missing)
	}
	return nil
}

type ExperienceEntry struct {
	CompanyName      string     `json:"company_name"`
	JobTitle         string     `json:"job_title"`
	StartDate        *time.Time `json:"start_date"`
	EndDate          *time.Time `json:"end_date"`
	CurrentlyWorking bool       `json:"currently_working"`
	Description      string     `json:"description"`
}

type Experience struct {
	IsFresher bool              `json:"is_fresher"`
	Years     float64           `json:"years"`
	History   []ExperienceEntry `json:"history"`
}

type Education struct {
	Institution  string     `json:"institution"`
	Degree       string     `json:"degree"`
	FieldOfStudy string     `json:"field_of_study,omitempty"`
	StartDate    *time.Time `json:"start_date"`
	EndDate      *time.Time `json:"end_date"`
	Grade        string     `json:"grade,omitempty"`
}

type Project struct {
	Title        string   `json:"title"`
	Description  string   `json:"description,omitempty"`
	Link         string   `json:"link,omitempty"`
	Technologies []string `json:"technologies,omitempty"`
}
