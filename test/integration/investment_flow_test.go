package integration

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type User struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

type Investment struct {
	ID               string  `json:"id"`
	UserID           string  `json:"user_id"`
	Amount           float64 `json:"amount"`
	PaymentFrequency string  `json:"payment_frequency"`
	LockupPeriod     string  `json:"lockup_period"`
	AnnualRate       float64 `json:"annual_rate"`
	Status           string  `json:"status"`
	ConfirmedAt      *string `json:"confirmed_at"`
	LockupEndDate    *string `json:"lockup_end_date"`
}

type ScheduleResponse struct {
	InvestmentID string `json:"investment_id"`
	Schedule     []struct {
		PeriodIndex int     `json:"period_index"`
		GrossAmount float64 `json:"gross_amount"`
	} `json:"schedule"`
	FinalPayout struct {
		PrincipalAmount float64 `json:"principal_amount"`
		TotalEarnings   float64 `json:"total_earnings"`
		FinalValue      float64 `json:"final_value"`
	} `json:"final_payout"`
}

func postJSON(t *testing.T, path string, body interface{}) *http.Response {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)
	resp, err := http.Post(BaseURL+path, "application/json", bytes.NewBuffer(payload))
	require.NoError(t, err)
	return resp
}

func decode(t *testing.T, resp *http.Response, out interface{}) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
}

func TestInvestmentLifecycle(t *testing.T) {
	var user User
	var inv Investment

	email := fmt.Sprintf("lifecycle-%d@example.com", time.Now().UnixNano())

	t.Run("Create User", func(t *testing.T) {
		resp := postJSON(t, "/users", map[string]interface{}{
			"email":      email,
			"first_name": "Flow",
			"last_name":  "Tester",
		})
		assert.Equal(t, http.StatusCreated, resp.StatusCode)
		decode(t, resp, &user)
		assert.NotEmpty(t, user.ID)
		assert.Contains(t, user.ID, "USR-")
	})

	t.Run("Create Draft Investment", func(t *testing.T) {
		resp := postJSON(t, "/investments", map[string]interface{}{
			"user_id":           user.ID,
			"amount":            10000.0,
			"lockup_period":     "1-year",
			"payment_frequency": "monthly",
		})
		assert.Equal(t, http.StatusCreated, resp.StatusCode)
		decode(t, resp, &inv)
		assert.Contains(t, inv.ID, "INV-")
		assert.Equal(t, "draft", inv.Status)
		assert.Equal(t, 0.08, inv.AnnualRate)
	})

	t.Run("Reject Bad Amounts", func(t *testing.T) {
		resp := postJSON(t, "/investments", map[string]interface{}{
			"user_id":           user.ID,
			"amount":            500.0,
			"lockup_period":     "1-year",
			"payment_frequency": "monthly",
		})
		resp.Body.Close()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

		resp = postJSON(t, "/investments", map[string]interface{}{
			"user_id":           user.ID,
			"amount":            1005.0,
			"lockup_period":     "1-year",
			"payment_frequency": "monthly",
		})
		resp.Body.Close()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("Submit", func(t *testing.T) {
		resp := postJSON(t, "/investments/"+inv.ID+"/submit", map[string]interface{}{})
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		resp.Body.Close()
	})

	t.Run("Submit Twice Fails", func(t *testing.T) {
		resp := postJSON(t, "/investments/"+inv.ID+"/submit", map[string]interface{}{})
		resp.Body.Close()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("Confirm", func(t *testing.T) {
		resp := postJSON(t, "/investments/"+inv.ID+"/confirm", map[string]interface{}{
			"admin_user_id": "USR-1001",
		})
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		resp.Body.Close()

		getResp, err := http.Get(BaseURL + "/investments/" + inv.ID)
		require.NoError(t, err)
		decode(t, getResp, &inv)
		assert.Equal(t, "active", inv.Status)
		require.NotNil(t, inv.ConfirmedAt)
		require.NotNil(t, inv.LockupEndDate)
	})

	t.Run("Schedule Projection", func(t *testing.T) {
		confirmed, err := time.Parse(time.RFC3339, *inv.ConfirmedAt)
		require.NoError(t, err)

		asOf := confirmed.AddDate(0, 3, 0).Format(time.RFC3339)
		resp, err := http.Get(BaseURL + "/investments/" + inv.ID + "/schedule?as_of=" + asOf)
		require.NoError(t, err)

		var schedule ScheduleResponse
		decode(t, resp, &schedule)
		require.Len(t, schedule.Schedule, 3)
		// 8% APY on $10,000: $66.67 per period.
		assert.Equal(t, 66.67, schedule.Schedule[0].GrossAmount)
		assert.Equal(t, 10000.0, schedule.FinalPayout.PrincipalAmount)
		assert.Equal(t, 200.01, schedule.FinalPayout.TotalEarnings)
	})

	t.Run("Withdrawal Blocked By Lockup", func(t *testing.T) {
		resp := postJSON(t, "/withdrawals", map[string]interface{}{
			"investment_id": inv.ID,
			"user_id":       user.ID,
		})
		defer resp.Body.Close()
		assert.Equal(t, http.StatusConflict, resp.StatusCode)

		var body map[string]interface{}
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.Equal(t, "lockup_violation", body["code"])
	})
}

func TestTimeMachine(t *testing.T) {
	t.Run("Status", func(t *testing.T) {
		resp, err := http.Get(BaseURL + "/admin/time-machine")
		require.NoError(t, err)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var body map[string]interface{}
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.Contains(t, body, "app_time")
		assert.Contains(t, body, "is_overridden")
	})

	t.Run("Set And Reset", func(t *testing.T) {
		future := time.Now().UTC().AddDate(0, 2, 0).Format(time.RFC3339)
		resp := postJSON(t, "/admin/time-machine", map[string]interface{}{
			"timestamp":     future,
			"admin_user_id": "USR-1001",
		})
		defer resp.Body.Close()
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var body map[string]interface{}
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.Equal(t, true, body["is_overridden"])

		req, err := http.NewRequest(http.MethodDelete, BaseURL+"/admin/time-machine?admin_user_id=USR-1001", nil)
		require.NoError(t, err)
		delResp, err := http.DefaultClient.Do(req)
		require.NoError(t, err)
		defer delResp.Body.Close()
		assert.Equal(t, http.StatusOK, delResp.StatusCode)
	})
}
