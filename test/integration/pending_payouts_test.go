package integration

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type PendingPayoutsResponse struct {
	PendingPayouts []struct {
		ID           string  `json:"id"`
		InvestmentID string  `json:"investment_id"`
		Type         string  `json:"type"`
		Status       string  `json:"status"`
		Amount       float64 `json:"amount"`
	} `json:"pending_payouts"`
	Count int `json:"count"`
}

func TestPendingPayouts(t *testing.T) {
	resp, err := http.Get(BaseURL + "/admin/pending-payouts")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body PendingPayoutsResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, len(body.PendingPayouts), body.Count)

	// Only monthly distributions awaiting approval belong in the queue.
	for _, payout := range body.PendingPayouts {
		assert.Equal(t, "distribution", payout.Type)
		assert.Contains(t, []string{"pending", "approved"}, payout.Status)
	}
}

func TestManagePayoutValidation(t *testing.T) {
	resp := postJSON(t, "/admin/pending-payouts", map[string]interface{}{
		"action":         "retry",
		"transaction_id": "TXN-0",
	})
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
