package user

import "testing"

func TestParseRole(t *testing.T) {
	cases := []struct {
		in   string
		want Role
		ok   bool
	}{
		{"candidate", RoleCandidate, true},
		{"hiring_manager", RoleHiringManager, true},
		{"admin", RoleAdmin, true},
		{"Candidate", "", false},
		{"manager", "", false},
		{"", "", false},
	}

	for _, tc := range cases {
		got, ok := ParseRole(tc.in)
		if ok != tc.ok || got != tc.want {
			t.Fatalf("ParseRole(%q) = (%q, %v), want (%q, %v)", tc.in, got, ok, tc.want, tc.ok)
		}
	}
}

func TestRoleOneOf(t *testing.T) {
	if !RoleAdmin.OneOf(RoleHiringManager, RoleAdmin) {
		t.Fatalf("admin should match the manager-or-admin set")
	}
	if RoleCandidate.OneOf(RoleHiringManager, RoleAdmin) {
		t.Fatalf("candidate must not match the manager-or-admin set")
	}
	if RoleCandidate.OneOf() {
		t.Fatalf("empty allowed set must match nothing")
	}
}
