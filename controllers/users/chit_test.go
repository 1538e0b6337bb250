package users

import (
	"encoding/json"
	"testing"
)

func TestPayChitRequestCarriesMonthAndAmount(t *testing.T) {
	body := []byte(`{"scheme_id":1,"amount":500,"month_index":3}`)

	var req PayChitRequest
	if err := json.Unmarshal(body, &req); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if req.SchemeID != 1 {
		t.Errorf("scheme_id = %d, want 1", req.SchemeID)
	}
	if req.MonthIndex != 3 {
		t.Errorf("month_index = %d, want 3", req.MonthIndex)
	}
	if req.Amount == nil || *req.Amount != 500 {
		t.Errorf("amount = %v, want 500", req.Amount)
	}
}

func TestPayChitRequestAmountOptional(t *testing.T) {
	var req PayChitRequest
	if err := json.Unmarshal([]byte(`{"scheme_id":2,"month_index":1}`), &req); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if req.Amount != nil {
		t.Errorf("amount = %v, want nil so the scheme price applies", *req.Amount)
	}
}
