package model

import "testing"

func TestPatientDisplayName(t *testing.T) {
	p := Patient{FirstName: "Maya", LastName: "Okafor"}
	if got := p.DisplayName(); got != "Maya Okafor" {
		t.Errorf("DisplayName() = %q", got)
	}
	solo := Patient{FirstName: "Cher"}
	if got := solo.DisplayName(); got != "Cher" {
		t.Errorf("DisplayName() with single name = %q", got)
	}
}

func TestPatientAdmittable(t *testing.T) {
	if !(&Patient{Status: PatientActive}).Admittable() {
		t.Error("active patient not admittable")
	}
	if (&Patient{Status: "Discharged"}).Admittable() {
		t.Error("discharged patient admittable")
	}
}
