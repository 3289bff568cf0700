package api_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yourname/shammah/internal"
	"github.com/yourname/shammah/internal/api"
	"github.com/yourname/shammah/internal/auth"
	"github.com/yourname/shammah/internal/storage"
)

func setupRouter(t *testing.T) *gin.Engine {
	gin.SetMode(gin.TestMode)
	dir := t.TempDir()
	usersFile := filepath.Join(dir, "users.json")
	require.NoError(t, os.WriteFile(usersFile, []byte(`[
		{"id":"u1","token":"MOCK-TOKEN","name":"Test User"},
		{"id":"admin","token":"ADMIN-TOKEN","name":"Admin","role":"admin"}
	]`), 0o644))
	logger := internal.NopLogger()
	repos, err := storage.NewFileRepositories(usersFile, filepath.Join(dir, "profiles.json"), filepath.Join(dir, "resources.json"), logger)
	require.NoError(t, err)
	t.Cleanup(func() { _ = repos.Closer.Close() })
	provider := auth.NewLocalAuthProvider("", repos.Users, logger)
	return api.NewRouter(api.NewServer(logger, repos), provider)
}

type envelope struct {
	Data  json.RawMessage    `json:"data"`
	Meta  map[string]any     `json:"meta"`
	Error *internal.AppError `json:"error"`
}

func do(t *testing.T, r *gin.Engine, token, method, path, body string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	var req *http.Request
	if body != "" {
		req, _ = http.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req, _ = http.NewRequest(method, path, nil)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	var env envelope
	_ = json.Unmarshal(w.Body.Bytes(), &env)
	return w, env
}

const userToken = "MOCK-TOKEN"

func createProfile(t *testing.T, r *gin.Engine) {
	w, _ := do(t, r, userToken, "POST", "/api/profile", `{"email":"test@example.com","username":"tester"}`)
	require.Equal(t, http.StatusCreated, w.Code)
}

func TestHealthAndAuth(t *testing.T) {
	r := setupRouter(t)
	w, _ := do(t, r, "", "GET", "/healthz", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get(api.RequestIDHeader))

	w, _ = do(t, r, "", "GET", "/api/profile", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w, _ = do(t, r, "WRONG", "GET", "/api/profile", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestProfileLifecycle(t *testing.T) {
	r := setupRouter(t)

	w, env := do(t, r, userToken, "GET", "/api/profile", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	require.NotNil(t, env.Error)

	w, _ = do(t, r, userToken, "GET", "/api/profile/onboarding", "")
	assert.Equal(t, http.StatusOK, w.Code)

	w, _ = do(t, r, userToken, "POST", "/api/profile", `{"email":"not-an-email","username":"tester"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	createProfile(t, r)
	w, _ = do(t, r, userToken, "POST", "/api/profile", `{"email":"test@example.com","username":"tester"}`)
	assert.Equal(t, http.StatusConflict, w.Code)

	w, _ = do(t, r, userToken, "POST", "/api/profile/onboarding/complete", "")
	assert.Equal(t, http.StatusOK, w.Code)
	_, env = do(t, r, userToken, "GET", "/api/profile/onboarding", "")
	assert.Equal(t, "true", string(env.Data))

	w, _ = do(t, r, userToken, "PUT", "/api/profile/usage-duration", `{"months":6}`)
	assert.Equal(t, http.StatusOK, w.Code)
	_, env = do(t, r, userToken, "GET", "/api/profile/usage-duration", "")
	assert.Equal(t, "6", string(env.Data))

	w, _ = do(t, r, userToken, "POST", "/api/quiz", `{"question_id":"goals","answer":"rest"}`)
	assert.Equal(t, http.StatusCreated, w.Code)

	w, env = do(t, r, userToken, "GET", "/api/overview", "")
	assert.Equal(t, http.StatusOK, w.Code)
	var o struct {
		Pillars []internal.WellnessPillar `json:"pillars"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &o))
	assert.Len(t, o.Pillars, 7)
}

func TestDebtEndpoints(t *testing.T) {
	r := setupRouter(t)
	createProfile(t, r)

	w, _ := do(t, r, userToken, "POST", "/api/debts", `{"creditor_name":"","amount":500000}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, env := do(t, r, userToken, "POST", "/api/debts", `{"creditor_name":"Bank","amount":500000,"interest_rate":525,"status":{"kind":"active"}}`)
	require.Equal(t, http.StatusCreated, w.Code)
	var debt internal.DebtRecord
	require.NoError(t, json.Unmarshal(env.Data, &debt))
	assert.Equal(t, int64(1), debt.ID)

	w, env = do(t, r, userToken, "POST", "/api/debts/1/payments", `{"amount_paid":100000}`)
	require.Equal(t, http.StatusCreated, w.Code)
	var pay internal.DebtPayment
	require.NoError(t, json.Unmarshal(env.Data, &pay))
	assert.Equal(t, internal.Cents(400000), pay.RemainingBalance)

	w, _ = do(t, r, userToken, "POST", "/api/debts/1/payments", `{"amount_paid":450000}`)
	require.Equal(t, http.StatusCreated, w.Code)

	w, env = do(t, r, userToken, "GET", "/api/debts/1/history", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 100.0, env.Meta["progress"])
	assert.Equal(t, 0.0, env.Meta["current_balance"])

	w, env = do(t, r, userToken, "GET", "/api/debts", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 500000.0, env.Meta["paid"])

	w, _ = do(t, r, userToken, "PUT", "/api/debts/1/status", `{"status":{"kind":"paidOff"}}`)
	assert.Equal(t, http.StatusOK, w.Code)

	w, _ = do(t, r, userToken, "POST", "/api/debts/9/payments", `{"amount_paid":1}`)
	assert.Equal(t, http.StatusNotFound, w.Code)
	w, _ = do(t, r, userToken, "DELETE", "/api/debts/abc", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	w, _ = do(t, r, userToken, "DELETE", "/api/debts/1", "")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestMedicationAdherenceEndpoint(t *testing.T) {
	r := setupRouter(t)
	createProfile(t, r)

	w, _ := do(t, r, userToken, "POST", "/api/medications", `{"name":"Metformin","dosage":"500mg"}`)
	require.Equal(t, http.StatusCreated, w.Code)
	w, _ = do(t, r, userToken, "POST", "/api/medications/1/adherence", `{"taken":true,"notes":"ok"}`)
	require.Equal(t, http.StatusCreated, w.Code)
	w, _ = do(t, r, userToken, "POST", "/api/medications/1/adherence", `{"taken":false,"notes":"skipped"}`)
	require.Equal(t, http.StatusCreated, w.Code)

	_, env := do(t, r, userToken, "GET", "/api/medications", "")
	var meds []internal.MedicationRecord
	require.NoError(t, json.Unmarshal(env.Data, &meds))
	require.Len(t, meds, 1)
	require.Len(t, meds[0].AdherenceLogs, 2)
	assert.Equal(t, "skipped", meds[0].AdherenceLogs[1].Notes)
	assert.False(t, meds[0].AdherenceLogs[1].Taken)
}

func TestRewardsAndPillars(t *testing.T) {
	r := setupRouter(t)
	createProfile(t, r)

	w, env := do(t, r, userToken, "POST", "/api/rewards/activity", `{"category":"physical","description":"walk","reflection":"felt good"}`)
	require.Equal(t, http.StatusCreated, w.Code)
	var reward internal.Reward
	require.NoError(t, json.Unmarshal(env.Data, &reward))
	assert.Equal(t, int64(15), reward.Points)

	w, _ = do(t, r, userToken, "POST", "/api/rewards", `{"category":"physical","activity_score":10,"reflection_score":0,"category_score":99}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	_, env = do(t, r, userToken, "GET", "/api/profile/points", "")
	assert.Equal(t, "15", string(env.Data))

	_, env = do(t, r, userToken, "GET", "/api/rewards", "")
	var rewards []internal.Reward
	require.NoError(t, json.Unmarshal(env.Data, &rewards))
	assert.Len(t, rewards, 1)

	w, _ = do(t, r, userToken, "PUT", "/api/pillars/physical", `{"progress":70}`)
	assert.Equal(t, http.StatusOK, w.Code)
	w, _ = do(t, r, userToken, "PUT", "/api/pillars/cardio", `{"progress":70}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	_, env = do(t, r, userToken, "GET", "/api/pillars", "")
	assert.Equal(t, 10.0, env.Meta["overall"])
}

func TestResourcesRequireAdmin(t *testing.T) {
	r := setupRouter(t)
	body := `{"title":"Sleep hygiene","description":"Better rest","resource_type":"article","link":"https://example.com/sleep"}`

	w, _ := do(t, r, userToken, "POST", "/api/resources", body)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w, _ = do(t, r, "ADMIN-TOKEN", "POST", "/api/resources", body)
	require.Equal(t, http.StatusCreated, w.Code)

	_, env := do(t, r, userToken, "GET", "/api/resources?q=rest&type=ARTICLE", "")
	var list []internal.Resource
	require.NoError(t, json.Unmarshal(env.Data, &list))
	assert.Len(t, list, 1)

	w, _ = do(t, r, userToken, "GET", "/api/resources/99", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestPhotoEndpoints(t *testing.T) {
	r := setupRouter(t)
	createProfile(t, r)

	w, env := do(t, r, userToken, "GET", "/api/photos/baseline", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, len(env.Data) == 0 || string(env.Data) == "null")

	w, _ = do(t, r, userToken, "POST", "/api/photos", `{"photo":{"url":"https://img.example/1.jpg"},"description":"start","is_baseline":true}`)
	require.Equal(t, http.StatusCreated, w.Code)
	w, _ = do(t, r, userToken, "POST", "/api/photos", `{"photo":{},"description":"nothing"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	_, env = do(t, r, userToken, "GET", "/api/photos/baseline", "")
	var ph internal.ProgressPhoto
	require.NoError(t, json.Unmarshal(env.Data, &ph))
	assert.Equal(t, "start", ph.Description)
}
