package model

import "testing"

func TestOrderStatusValues(t *testing.T) {
	cases := []struct {
		name  string
		got   OrderStatus
		value string
	}{
		{"open", OrderStatusOpen, "OPEN"},
		{"completed", OrderStatusCompleted, "COMPLETED"},
		{"cancelled", OrderStatusCancelled, "CANCELLED"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if string(tc.got) != tc.value {
				t.Fatalf("expected %s, got %s", tc.value, tc.got)
			}
		})
	}
}

func TestDiscountTypeValues(t *testing.T) {
	cases := []struct {
		got   DiscountType
		value string
	}{
		{DiscountNone, "NONE"},
		{DiscountPercent, "PERCENT"},
		{DiscountFixed, "FIXED"},
	}

	for _, tc := range cases {
		if string(tc.got) != tc.value {
			t.Fatalf("expected %s, got %s", tc.value, tc.got)
		}
	}
}

func TestPaymentMethodValues(t *testing.T) {
	cases := []struct {
		got   PaymentMethod
		value string
	}{
		{PaymentCash, "CASH"},
		{PaymentCard, "CARD"},
		{PaymentTransfer, "TRANSFER"},
	}

	for _, tc := range cases {
		if string(tc.got) != tc.value {
			t.Fatalf("expected %s, got %s", tc.value, tc.got)
		}
	}
}
