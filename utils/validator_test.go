package utils

import (
	"strings"
	"testing"
)

type registerForm struct {
	Name                 string `validate:"required,nameok"`
	Email                string `validate:"required,email"`
	Phone                string `validate:"required,phone"`
	Password             string `validate:"required,pwdmin"`
	PasswordConfirmation string `validate:"required,eqfield=Password"`
}

func validForm() registerForm {
	return registerForm{
		Name:                 "Asha Kumar",
		Email:                "asha@example.com",
		Phone:                "+919876543210",
		Password:             "secret123",
		PasswordConfirmation: "secret123",
	}
}

func TestValidateStructAcceptsValidForm(t *testing.T) {
	form := validForm()
	if err := ValidateStruct(&form); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
}

func TestValidateStructRejections(t *testing.T) {
	cases := []struct {
		name    string
		mutate  func(*registerForm)
		wantSub string
	}{
		{"MissingName", func(f *registerForm) { f.Name = "" }, "Name is required"},
		{"BadEmail", func(f *registerForm) { f.Email = "not-an-email" }, "valid email"},
		{"BadPhone", func(f *registerForm) { f.Phone = "12ab34" }, "valid phone"},
		{"ShortPassword", func(f *registerForm) { f.Password = "abc"; f.PasswordConfirmation = "abc" }, "at least 6"},
		{"ConfirmationMismatch", func(f *registerForm) { f.PasswordConfirmation = "different" }, "must equal Password"},
		{"NameWithSymbols", func(f *registerForm) { f.Name = "<script>" }, "invalid characters"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			form := validForm()
			tc.mutate(&form)
			err := ValidateStruct(&form)
			if err == nil {
				t.Fatal("expected an error, got nil")
			}
			if !strings.Contains(err.Error(), tc.wantSub) {
				t.Fatalf("error %q does not mention %q", err.Error(), tc.wantSub)
			}
		})
	}
}

func TestRound2(t *testing.T) {
	cases := map[float64]float64{
		10.004:  10.0,
		10.016:  10.02,
		-1.014:  -1.01,
		25:      25,
		99.9999: 100,
	}
	for in, want := range cases {
		if got := Round2(in); got != want {
			t.Errorf("Round2(%v) = %v, want %v", in, got, want)
		}
	}
}

func TestGenerateReferenceID(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 200; i++ {
		ref := GenerateReferenceID(uint(i%5 + 1))
		if !strings.HasPrefix(ref, "CBK-") {
			t.Fatalf("reference %q lacks the CBK- prefix", ref)
		}
		if seen[ref] {
			t.Fatalf("duplicate reference id %q", ref)
		}
		seen[ref] = true
	}
}
