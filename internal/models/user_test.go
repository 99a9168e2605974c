package models

import "testing"

func TestParseRole(t *testing.T) {
	cases := []struct {
		in      string
		want    Role
		wantErr bool
	}{
		{"admin", RoleAdmin, false},
		{"user", RoleUser, false},
		{"Admin", "", true}, // roles are case-sensitive
		{"superuser", "", true},
		{"", "", true},
	}
	for _, tc := range cases {
		got, err := ParseRole(tc.in)
		if tc.wantErr {
			if err == nil {
				t.Fatalf("ParseRole(%q): expected error", tc.in)
			}
			continue
		}
		if err != nil {
			t.Fatalf("ParseRole(%q): %v", tc.in, err)
		}
		if got != tc.want {
			t.Fatalf("ParseRole(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestRoleIsAdmin(t *testing.T) {
	if !RoleAdmin.IsAdmin() {
		t.Fatal("admin role must pass the admin check")
	}
	if RoleUser.IsAdmin() {
		t.Fatal("user role must not pass the admin check")
	}
	// Arbitrary strings never gain admin rights.
	if Role("administrator").IsAdmin() {
		t.Fatal("unknown role must not pass the admin check")
	}
}
