package validate

import (
	"errors"
	"testing"

	"github.com/go-playground/validator/v10"

	"stockcast-api/internal/shared"
)

func TestValidateSendEmailRequest(t *testing.T) {
	v := New()

	tests := []struct {
		name    string
		req     shared.SendEmailRequest
		wantTag string
	}{
		{
			name:    "valid",
			req:     shared.SendEmailRequest{To: "ops@example.com", Subject: "Restock alert"},
			wantTag: "",
		},
		{
			name:    "valid with bodies",
			req:     shared.SendEmailRequest{To: "ops@example.com", Subject: "Restock alert", HTML: "<b>hi</b>", Text: "hi"},
			wantTag: "",
		},
		{
			name:    "missing to",
			req:     shared.SendEmailRequest{Subject: "Restock alert"},
			wantTag: "required",
		},
		{
			name:    "missing subject",
			req:     shared.SendEmailRequest{To: "ops@example.com"},
			wantTag: "required",
		},
		{
			name:    "malformed address",
			req:     shared.SendEmailRequest{To: "not-an-address", Subject: "Restock alert"},
			wantTag: "email",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := v.Validate(&tc.req)
			if tc.wantTag == "" {
				if err != nil {
					t.Fatalf("Validate() = %v, want nil", err)
				}
				return
			}
			var verrs validator.ValidationErrors
			if !errors.As(err, &verrs) || len(verrs) == 0 {
				t.Fatalf("Validate() = %v, want validator.ValidationErrors", err)
			}
			if got := verrs[0].Tag(); got != tc.wantTag {
				t.Errorf("failing tag = %q, want %q", got, tc.wantTag)
			}
		})
	}
}
