package application

import "testing"

func TestStatusSet(t *testing.T) {
	for _, s := range AllStatuses() {
		if !s.IsValid() {
			t.Errorf("expected %s to be valid", s)
		}
	}

	for _, s := range []ApplicationStatus{"", "APPLIED", "withdrawn", "archived"} {
		if s.IsValid() {
			t.Errorf("expected %q to be invalid", s)
		}
	}
}

func TestStatusNotifies(t *testing.T) {
	if ApplicationStatusApplied.Notifies() {
		t.Error("applied must not notify")
	}
	for _, s := range []ApplicationStatus{
		ApplicationStatusReviewed,
		ApplicationStatusInterview,
		ApplicationStatusOffer,
		ApplicationStatusHired,
		ApplicationStatusRejected,
	} {
		if !s.Notifies() {
			t.Errorf("expected %s to notify", s)
		}
	}
	if ApplicationStatus("bogus").Notifies() {
		t.Error("unknown status must not notify")
	}
}
