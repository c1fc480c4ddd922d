package repositories

import "testing"

func TestCampaignUpdateColumns(t *testing.T) {
	for _, col := range []string{"id", "brand_id", "budget", "created_at", "updated_at"} {
		if campaignUpdateColumns[col] {
			t.Errorf("column %q must not be updatable", col)
		}
	}
	for _, col := range []string{"title", "description", "status", "start_date", "end_date"} {
		if !campaignUpdateColumns[col] {
			t.Errorf("column %q must be updatable", col)
		}
	}
}
