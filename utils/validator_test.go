package utils

import "testing"

type joinForm struct {
	Name         string `json:"name" validate:"required,nameok"`
	MobileNumber string `json:"mobile_number" validate:"phone8"`
}

type passwordForm struct {
	Password             string `validate:"required,pwdmin"`
	PasswordConfirmation string `validate:"required,eqfield=Password"`
}

func TestValidateStructRequired(t *testing.T) {
	if err := ValidateStruct(&joinForm{}); err == nil {
		t.Fatal("expected error for empty required field")
	}
	if err := ValidateStruct(&joinForm{Name: "Budi Santoso"}); err != nil {
		t.Fatalf("valid form rejected: %v", err)
	}
}

func TestValidateStructPhone8(t *testing.T) {
	bad := []string{"08123456789", "7123456789", "8123", "812345678901234"}
	for _, number := range bad {
		if err := ValidateStruct(&joinForm{Name: "Budi", MobileNumber: number}); err == nil {
			t.Errorf("number %q should be rejected", number)
		}
	}
	if err := ValidateStruct(&joinForm{Name: "Budi", MobileNumber: "8123456789"}); err != nil {
		t.Fatalf("valid number rejected: %v", err)
	}
}

func TestValidateStructNameOK(t *testing.T) {
	if err := ValidateStruct(&joinForm{Name: "Budi <script>"}); err == nil {
		t.Fatal("name with markup should be rejected")
	}
	if err := ValidateStruct(&joinForm{Name: "Ni Luh D'Ayu-Sari"}); err != nil {
		t.Fatalf("valid name rejected: %v", err)
	}
}

func TestValidateStructPasswordRules(t *testing.T) {
	if err := ValidateStruct(&passwordForm{Password: "12345", PasswordConfirmation: "12345"}); err == nil {
		t.Fatal("short password should be rejected")
	}
	if err := ValidateStruct(&passwordForm{Password: "rahasia1", PasswordConfirmation: "rahasia2"}); err == nil {
		t.Fatal("mismatched confirmation should be rejected")
	}
	if err := ValidateStruct(&passwordForm{Password: "rahasia1", PasswordConfirmation: "rahasia1"}); err != nil {
		t.Fatalf("valid passwords rejected: %v", err)
	}
}
