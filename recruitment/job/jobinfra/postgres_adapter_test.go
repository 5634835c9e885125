package jobinfra

import (
	"errors"
	"testing"

	"github.com/Abraxas-365/jobboard/pkg/errx"
	"github.com/Abraxas-365/jobboard/recruitment/job"
	"github.com/lib/pq"
)

func TestContainsPattern(t *testing.T) {
	tests := map[string]string{
		"golang":     "%golang%",
		"100%":       `%100\%%`,
		"snake_case": `%snake\_case%`,
		`C:\jobs`:    `%C:\\jobs%`,
	}
	for in, want := range tests {
		if got := containsPattern(in); got != want {
			t.Errorf("containsPattern(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestMapCreateError(t *testing.T) {
	if err := mapCreateError(&pq.Error{Code: "23505", Constraint: "jobs_pkey"}); !errx.IsCode(err, job.CodeJobAlreadyExists) {
		t.Errorf("expected already exists, got %v", err)
	}
	if err := mapCreateError(&pq.Error{Code: "23503", Constraint: "jobs_company_id_fkey"}); !errx.IsCode(err, job.CodeInvalidJob) {
		t.Errorf("expected invalid job, got %v", err)
	}
	if err := mapCreateError(errors.New("timeout")); !errx.IsType(err, errx.TypeInternal) {
		t.Errorf("expected internal error, got %v", err)
	}
}
