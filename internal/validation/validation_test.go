package validation

import "testing"

func TestRulesValidate(t *testing.T) {
	rules := Rules{
		{Field: "name", Message: "Name is required", Check: Required},
		{Field: "email", Message: "Please include a valid email", Check: Email},
		{Field: "password", Message: "Please enter a password with 8 or more characters", Check: MinLen(8)},
	}

	cases := []struct {
		name   string
		fields map[string]string
		want   []string
	}{
		{
			name:   "all valid",
			fields: map[string]string{"name": "Alice", "email": "alice@example.com", "password": "longenough"},
			want:   nil,
		},
		{
			name:   "everything missing",
			fields: map[string]string{},
			want:   []string{"name", "email", "password"},
		},
		{
			name:   "whitespace is not a name",
			fields: map[string]string{"name": "   ", "email": "alice@example.com", "password": "longenough"},
			want:   []string{"name"},
		},
		{
			name:   "malformed email",
			fields: map[string]string{"name": "Alice", "email": "not-an-email", "password": "longenough"},
			want:   []string{"email"},
		},
		{
			name:   "short password",
			fields: map[string]string{"name": "Alice", "email": "alice@example.com", "password": "short"},
			want:   []string{"password"},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			errs := rules.Validate(tc.fields)
			if len(errs) != len(tc.want) {
				t.Fatalf("got %d errors (%v), want %d", len(errs), errs, len(tc.want))
			}
			for i, field := range tc.want {
				if errs[i].Field != field {
					t.Fatalf("error %d is for %q, want %q", i, errs[i].Field, field)
				}
			}
		})
	}
}

func TestErrorsMessage(t *testing.T) {
	errs := Errors{
		{Field: "status", Message: "Status is required"},
		{Field: "skills", Message: "Skills is required"},
	}
	want := "status: Status is required; skills: Skills is required"
	if got := errs.Error(); got != want {
		t.Fatalf("Error() = %q, want %q", got, want)
	}
}
