package application

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// LooseJSON is a form field that arrives either as structured JSON or as
// text holding JSON. It is normalized once, before the apply flow sees it.
type LooseJSON []byte

// UnmarshalJSON keeps the raw bytes so that both encodings survive decoding
func (l *LooseJSON) UnmarshalJSON(data []byte) error {
	*l = append((*l)[:0], data...)
	return nil
}

// MarshalJSON writes the raw value back, or null when empty
func (l LooseJSON) MarshalJSON() ([]byte, error) {
	if l.IsEmpty() {
		return []byte("null"), nil
	}
	return l, nil
}

// IsEmpty reports whether the field was omitted, null or a blank string
func (l LooseJSON) IsEmpty() bool {
	t := bytes.TrimSpace(l)
	if len(t) == 0 || bytes.Equal(t, []byte("null")) {
		return true
	}
	if t[0] == '"' {
		var inner string
		if err := json.Unmarshal(t, &inner); err == nil {
			return strings.TrimSpace(inner) == ""
		}
	}
	return false
}

// Decode unwraps a JSON string literal if present and decodes the inner value into v
func (l LooseJSON) Decode(v any) error {
	data := bytes.TrimSpace(l)
	for len(data) > 0 && data[0] == '"' {
		var inner string
		if err := json.Unmarshal(data, &inner); err != nil {
			return err
		}
		data = bytes.TrimSpace([]byte(inner))
	}
	if len(data) == 0 {
		return fmt.Errorf("empty value")
	}
	return json.Unmarshal(data, v)
}

// ============================================================================
// Field parsers
// ============================================================================

// ParseContact decodes the contact field. Malformed input is a validation error.
func ParseContact(raw LooseJSON) (Contact, error) {
	if raw.IsEmpty() {
		return Contact{}, nil
	}

	var m map[string]any
	if err := raw.Decode(&m); err != nil {
		return Contact{}, ErrInvalidContact().WithDetail("reason", err.Error())
	}

	return Contact{
		Name:     lookupString(m, "name", "fullName", "full_name"),
		Email:    lookupString(m, "email"),
		Phone:    lookupString(m, "phone", "phoneNumber", "phone_number"),
		AltPhone: lookupString(m, "altPhone", "alt_phone", "alternatePhone"),
	}, nil
}

// ParseExperience decodes the experience field, coercing loosely typed values.
// Malformed input is a validation error.
func ParseExperience(raw LooseJSON) (Experience, error) {
	exp := Experience{History: []ExperienceEntry{}}
	if raw.IsEmpty() {
		return exp, nil
	}

	var m map[string]any
	if err := raw.Decode(&m); err != nil {
		return exp, ErrInvalidExperience().WithDetail("reason", err.Error())
	}

	exp.IsFresher = coerceBool(lookup(m, "isFresher", "is_fresher"))
	if exp.IsFresher {
		return exp, nil
	}

	exp.Years = coerceFloat(lookup(m, "years", "yearsOfExperience", "years_of_experience"))

	if list, ok := lookup(m, "history", "experiences").([]any); ok {
		for _, item := range list {
			entry, ok := item.(map[string]any)
			if !ok {
				continue
			}
			exp.History = append(exp.History, ExperienceEntry{
				CompanyName:      lookupString(entry, "companyName", "company_name", "company"),
				JobTitle:         lookupString(entry, "jobTitle", "job_title", "title"),
				StartDate:        parseDate(lookupString(entry, "startDate", "start_date")),
				EndDate:          parseDate(lookupString(entry, "endDate", "end_date")),
				CurrentlyWorking: coerceBool(lookup(entry, "currentlyWorking", "currently_working")),
				Description:      lookupString(entry, "description"),
			})
		}
	}

	return exp, nil
}

// ParseEducation decodes the education list. On malformed input it returns an
// empty list together with the decode error so that callers can log it.
func ParseEducation(raw LooseJSON) ([]Education, error) {
	items, err := decodeList(raw)
	out := make([]Education, 0, len(items))
	for _, m := range items {
		out = append(out, Education{
			Institution:  lookupString(m, "institution", "school", "university"),
			Degree:       lookupString(m, "degree"),
			FieldOfStudy: lookupString(m, "fieldOfStudy", "field_of_study", "field"),
			StartDate:    parseDate(lookupString(m, "startDate", "start_date")),
			EndDate:      parseDate(lookupString(m, "endDate", "end_date")),
			Grade:        lookupString(m, "grade", "gpa"),
		})
	}
	return out, err
}

// ParseProjects decodes the project list with the same lenient policy as ParseEducation
func ParseProjects(raw LooseJSON) ([]Project, error) {
	items, err := decodeList(raw)
	out := make([]Project, 0, len(items))
	for _, m := range items {
		p := Project{
			Title:       lookupString(m, "title", "name"),
			Description: lookupString(m, "description"),
			Link:        lookupString(m, "link", "url"),
		}
		switch tech := lookup(m, "technologies", "techStack", "tech_stack").(type) {
		case []any:
			for _, t := range tech {
				if s := stringify(t); s != "" {
					p.Technologies = append(p.Technologies, s)
				}
			}
		case string:
			for _, t := range strings.Split(tech, ",") {
				if s := strings.TrimSpace(t); s != "" {
					p.Technologies = append(p.Technologies, s)
				}
			}
		}
		out = append(out, p)
	}
	return out, err
}

// decodeList accepts a list of objects or a single object
func decodeList(raw LooseJSON) ([]map[string]any, error) {
	if raw.IsEmpty() {
		return nil, nil
	}

	var v any
	if err := raw.Decode(&v); err != nil {
		return nil, err
	}

	switch t := v.(type) {
	case []any:
		out := make([]map[string]any, 0, len(t))
		for _, item := range t {
			if m, ok := item.(map[string]any); ok {
				out = append(out, m)
			}
		}
		return out, nil
	case map[string]any:
		return []map[string]any{t}, nil
	default:
		return nil, fmt.Errorf("expected a list, got %T", v)
	}
}

// ============================================================================
// Coercion helpers
// ============================================================================

var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
	"2006-01",
}

// parseDate returns nil for empty or unparseable input
func parseDate(s string) *time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return &t
		}
	}
	return nil
}

func lookup(m map[string]any, keys ...string) any {
	for _, k := range keys {
		if v, ok := m[k]; ok && v != nil {
			return v
		}
	}
	return nil
}

func lookupString(m map[string]any, keys ...string) string {
	return stringify(lookup(m, keys...))
}

func stringify(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(t)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	default:
		return ""
	}
}

func coerceBool(v any) bool {
	switch t := v.(type) {
	case bool:
		return t
	case string:
		return strings.EqualFold(strings.TrimSpace(t), "true")
	default:
		return false
	}
}

func coerceFloat(v any) float64 {
	switch t := v.(type) {
	case float64:
		return t
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		if err != nil {
			return 0
		}
		return f
	default:
		return 0
	}
}
