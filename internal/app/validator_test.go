package app

import (
	"testing"
	"time"
)

func TestValidateField_PurchaseID(t *testing.T) {
	tests := []struct {
		name  string
		input string
		ok    bool
	}{
		{"six digits accepted", "500000", true},
		{"seven digits rejected", "5000001", false},
		{"single digit accepted", "7", true},
		{"leading zeros count toward length", "0000001", false},
		{"not a number", "12a4", false},
		{"empty", "", false},
		{"negative", "-5", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateField(FieldPurchaseID, tt.input)
			if (err == nil) != tt.ok {
				t.Errorf("ValidateField(FieldPurchaseID, %q) = %v, want ok=%v", tt.input, err, tt.ok)
			}
		})
	}
}

func TestValidateField_Discount(t *testing.T) {
	tests := []struct {
		input string
		ok    bool
	}{
		{"0", true},
		{"100", true},
		{"150", false},
		{"-1", false},
		{"50", true},
		{"abc", false},
		{"12.5", false},
	}
	for _, tt := range tests {
		if err := ValidateField(FieldDiscount, tt.input); (err == nil) != tt.ok {
			t.Errorf("ValidateField(FieldDiscount, %q) = %v, want ok=%v", tt.input, err, tt.ok)
		}
	}
}

func TestValidateField_Price(t *testing.T) {
	tests := []struct {
		input string
		ok    bool
	}{
		{"0", true},
		{"19.99", true},
		{"99999.99", true},
		{"100000", false},
		{"-0.01", false},
		{"free", false},
	}
	for _, tt := range tests {
		if err := ValidateField(FieldPrice, tt.input); (err == nil) != tt.ok {
			t.Errorf("ValidateField(FieldPrice, %q) = %v, want ok=%v", tt.input, err, tt.ok)
		}
	}
}

func TestValidateField_Credentials(t *testing.T) {
	tests := []struct {
		name  string
		input string
		ok    bool
	}{
		{"plain word", "alice", true},
		{"underscore and digits", "alice_42", true},
		{"embedded space", "al ice", false},
		{"punctuation", "alice!", false},
		{"empty", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := ValidateField(FieldUsername, tt.input); (err == nil) != tt.ok {
				t.Errorf("username %q: got %v, want ok=%v", tt.input, err, tt.ok)
			}
			if err := ValidateField(FieldPassword, tt.input); (err == nil) != tt.ok {
				t.Errorf("password %q: got %v, want ok=%v", tt.input, err, tt.ok)
			}
		})
	}
}

func TestValidateField_PaymentMethod(t *testing.T) {
	tests := []struct {
		input string
		ok    bool
	}{
		{"Credit Card", true},
		{"Debit Card", true},
		{"Cash", true},
		{"credit card", false},
		{"CASH", false},
		{"Venmo", false},
	}
	for _, tt := range tests {
		if err := ValidateField(FieldPaymentMethod, tt.input); (err == nil) != tt.ok {
			t.Errorf("ValidateField(FieldPaymentMethod, %q) = %v, want ok=%v", tt.input, err, tt.ok)
		}
	}
}

func TestValidateField_Date(t *testing.T) {
	past := "2020-06-15"
	todayStr := time.Now().Format(DateLayout)
	future := time.Now().AddDate(1, 0, 0).Format(DateLayout)

	if err := ValidateField(FieldDate, past); err != nil {
		t.Errorf("past date rejected: %v", err)
	}
	if err := ValidateField(FieldDate, todayStr); err != nil {
		t.Errorf("today rejected: %v", err)
	}
	if err := ValidateField(FieldDate, future); err == nil {
		t.Error("future date accepted")
	}
	if err := ValidateField(FieldDate, "15/06/2020"); err == nil {
		t.Error("wrong format accepted")
	}
	if err := ValidateField(FieldDate, "2020-13-40"); err == nil {
		t.Error("impossible date accepted")
	}
}
