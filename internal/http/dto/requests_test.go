package dto

import (
	"testing"
	"time"
)

func strPtr(s string) *string { return &s }

func TestRegisterRequestValidate(t *testing.T) {
	valid := RegisterRequest{
		Email:     "jane@example.com",
		Password:  "Passw0rd",
		Role:      "INFLUENCER",
		FirstName: strPtr("Jane"),
		LastName:  strPtr("Doe"),
	}

	tests := []struct {
		name     string
		mutate   func(r *RegisterRequest)
		badField string
	}{
		{"valid influencer", func(r *RegisterRequest) {}, ""},
		{"valid brand", func(r *RegisterRequest) {
			r.Role = "BRAND"
			r.CompanyName = strPtr("Acme")
		}, ""},
		{"bad email", func(r *RegisterRequest) { r.Email = "not-an-email" }, "email"},
		{"short password", func(r *RegisterRequest) { r.Password = "Ab1" }, "password"},
		{"no uppercase", func(r *RegisterRequest) { r.Password = "passw0rd" }, "password"},
		{"no digit", func(r *RegisterRequest) { r.Password = "Password" }, "password"},
		{"admin not self-registerable", func(r *RegisterRequest) { r.Role = "ADMIN" }, "role"},
		{"brand without company", func(r *RegisterRequest) {
			r.Role = "BRAND"
			r.CompanyName = nil
		}, "company_name"},
		{"influencer without last name", func(r *RegisterRequest) { r.LastName = nil }, "first_name"},
		{"bad instagram handle", func(r *RegisterRequest) {
			r.InstagramHandle = strPtr("way.too.long.handle.that.is.over.thirty.chars")
		}, "instagram_handle"},
		{"bad phone", func(r *RegisterRequest) { r.Phone = strPtr("abc") }, "phone"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := valid
			tt.mutate(&req)
			errs := req.Validate()
			if tt.badField == "" {
				if errs != nil {
					t.Fatalf("expected no errors, got %v", errs)
				}
				return
			}
			if len(errs[tt.badField]) == 0 {
				t.Errorf("expected error on %q, got %v", tt.badField, errs)
			}
		})
	}
}

func TestCreateCampaignRequestValidate(t *testing.T) {
	valid := CreateCampaignRequest{
		Title:       "Spring launch",
		Description: "Product seeding for the spring line",
		Budget:      5000,
		Category:    "fashion",
		StartDate:   time.Date(2025, 1, 5, 0, 0, 0, 0, time.UTC),
		EndDate:     time.Date(2025, 2, 5, 0, 0, 0, 0, time.UTC),
	}

	if errs := valid.Validate(); errs != nil {
		t.Fatalf("expected valid request, got %v", errs)
	}

	t.Run("end before start", func(t *testing.T) {
		req := valid
		req.StartDate = time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC)
		req.EndDate = time.Date(2025, 1, 5, 0, 0, 0, 0, time.UTC)
		if errs := req.Validate(); len(errs["end_date"]) == 0 {
			t.Errorf("expected end_date error, got %v", errs)
		}
	})

	t.Run("end equals start", func(t *testing.T) {
		req := valid
		req.EndDate = req.StartDate
		if errs := req.Validate(); len(errs["end_date"]) == 0 {
			t.Errorf("expected end_date error, got %v", errs)
		}
	})

	t.Run("zero budget", func(t *testing.T) {
		req := valid
		req.Budget = 0
		if errs := req.Validate(); len(errs["budget"]) == 0 {
			t.Errorf("expected budget error, got %v", errs)
		}
	})

	t.Run("negative budget", func(t *testing.T) {
		req := valid
		req.Budget = -10
		if errs := req.Validate(); len(errs["budget"]) == 0 {
			t.Errorf("expected budget error, got %v", errs)
		}
	})
}

func TestUpdateCampaignRequestValidate(t *testing.T) {
	t.Run("date order checked only when both present", func(t *testing.T) {
		start := time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC)
		req := UpdateCampaignRequest{StartDate: &start}
		if errs := req.Validate(); errs != nil {
			t.Errorf("expected no errors with start only, got %v", errs)
		}

		end := time.Date(2025, 1, 5, 0, 0, 0, 0, time.UTC)
		req.EndDate = &end
		if errs := req.Validate(); len(errs["end_date"]) == 0 {
			t.Errorf("expected end_date error, got %v", errs)
		}
	})

	t.Run("bad status", func(t *testing.T) {
		bad := "RUNNING"
		req := UpdateCampaignRequest{Status: &bad}
		if errs := req.Validate(); len(errs["status"]) == 0 {
			t.Errorf("expected status error, got %v", errs)
		}
	})
}

func TestUpdateProfileRequestFields(t *testing.T) {
	req := UpdateProfileRequest{
		Bio:             strPtr("travel creator"),
		InstagramHandle: strPtr("jane_doe"),
	}

	fields := req.Fields()
	if len(fields) != 2 {
		t.Fatalf("expected 2 fields, got %d: %v", len(fields), fields)
	}
	if fields["bio"] != "travel creator" {
		t.Errorf("bio = %v", fields["bio"])
	}
	if fields["instagram_handle"] != "jane_doe" {
		t.Errorf("instagram_handle = %v", fields["instagram_handle"])
	}
	if _, ok := fields["first_name"]; ok {
		t.Error("absent field leaked into the update")
	}
}

func TestDecideApplicationRequestValidate(t *testing.T) {
	for _, status := range []string{"ACCEPTED", "REJECTED"} {
		req := DecideApplicationRequest{Status: status}
		if errs := req.Validate(); errs != nil {
			t.Errorf("Validate(%s) = %v, want nil", status, errs)
		}
	}

	req := DecideApplicationRequest{Status: "INVITED"}
	if errs := req.Validate(); len(errs["status"]) == 0 {
		t.Errorf("expected status error for INVITED, got %v", errs)
	}

	neg := -5.0
	req = DecideApplicationRequest{Status: "ACCEPTED", AgreedRate: &neg}
	if errs := req.Validate(); len(errs["agreed_rate"]) == 0 {
		t.Errorf("expected agreed_rate error, got %v", errs)
	}
}

func TestSendMessageRequestValidate(t *testing.T) {
	req := SendMessageRequest{Body: "hi", RecipientID: strPtr("id")}
	if errs := req.Validate(); errs != nil {
		t.Errorf("expected valid, got %v", errs)
	}

	req = SendMessageRequest{Body: "   "}
	errs := req.Validate()
	if len(errs["body"]) == 0 {
		t.Errorf("expected body error, got %v", errs)
	}
	if len(errs["thread_id"]) == 0 {
		t.Errorf("expected thread_id error, got %v", errs)
	}
}
