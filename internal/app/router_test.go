package app

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"livestock-invest-go/internal/auth"
	"livestock-invest-go/internal/config"
	riskdomain "livestock-invest-go/internal/domain/risk"
	"livestock-invest-go/internal/metrics"
	"livestock-invest-go/internal/reports"
	"livestock-invest-go/internal/repository/inmemory"
	"livestock-invest-go/pkg/logger"

	"github.com/shopspring/decimal"
)

type testServer struct {
	t      *testing.T
	router http.Handler
}

type errorBody struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

type cycleBody struct {
	ID             string          `json:"id"`
	Status         string          `json:"status"`
	CurrentFunding decimal.Decimal `json:"current_funding"`
	Remaining      decimal.Decimal `json:"remaining"`
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	store := inmemory.NewStore()
	store.SeedDemo(time.Now().UTC())

	log := logger.Nop()
	risk := riskdomain.NewService(nil, inmemory.NewRiskSummaryCache(), riskdomain.Config{}, log)
	t.Cleanup(risk.Wait)

	tokens, err := auth.NewTokens("router-test-secret", time.Hour)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	m := metrics.New()
	risk.SetObserver(m)

	cfg := config.Config{CORSOrigins: []string{"http://localhost:5173"}, MetricsEnabled: true}
	router := buildRouter(cfg, newServices(memoryRepositories(store), risk), tokens, m, log)
	return &testServer{t: t, router: router}
}

func (s *testServer) do(method, path, token string, body interface{}) *httptest.ResponseRecorder {
	s.t.Helper()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			s.t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(payload)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func (s *testServer) login(phone string) string {
	s.t.Helper()

	rec := s.do(http.MethodPost, "/api/auth/login", "", map[string]string{"phone": phone})
	if rec.Code != http.StatusOK {
		s.t.Fatalf("login %s: expected 200, got %d: %s", phone, rec.Code, rec.Body.String())
	}
	var resp struct {
		Token string `json:"token"`
	}
	decode(s.t, rec, &resp)
	if resp.Token == "" {
		s.t.Fatalf("login %s: empty token", phone)
	}
	return resp.Token
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, dst interface{}) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), dst); err != nil {
		t.Fatalf("decode %q: %v", rec.Body.String(), err)
	}
}

func expectError(t *testing.T, rec *httptest.ResponseRecorder, status int, code string) {
	t.Helper()
	if rec.Code != status {
		t.Fatalf("expected %d, got %d: %s", status, rec.Code, rec.Body.String())
	}
	var body errorBody
	decode(t, rec, &body)
	if body.Error.Code != code {
		t.Fatalf("expected error code %q, got %q", code, body.Error.Code)
	}
}

func TestHealthIsPublic(t *testing.T) {
	srv := newTestServer(t)
	if rec := srv.do(http.MethodGet, "/api/health", "", nil); rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if rec := srv.do(http.MethodGet, "/api/dashboard", "", nil); rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d", rec.Code)
	}
}

func TestRegisterAndPendingLogin(t *testing.T) {
	srv := newTestServer(t)

	rec := srv.do(http.MethodPost, "/api/auth/register", "", map[string]string{
		"name":  "أحمد محمد",
		"phone": "01012345678",
		"role":  "investor",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	var user struct {
		ID     string `json:"id"`
		Status string `json:"status"`
	}
	decode(t, rec, &user)
	if user.Status != "PENDING" {
		t.Fatalf("expected PENDING, got %s", user.Status)
	}

	rec = srv.do(http.MethodPost, "/api/auth/register", "", map[string]string{
		"name":  "أحمد محمد",
		"phone": "01012345678",
		"role":  "INVESTOR",
	})
	expectError(t, rec, http.StatusConflict, "phone_taken")

	rec = srv.do(http.MethodPost, "/api/auth/login", "", map[string]string{"phone": "01012345678"})
	expectError(t, rec, http.StatusForbidden, "account_pending")

	admin := srv.login(inmemory.DemoAdminPhone)
	rec = srv.do(http.MethodPost, "/api/admin/users/"+user.ID+"/approve", admin, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("approve: expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	rec = srv.do(http.MethodPost, "/api/admin/users/"+user.ID+"/approve", admin, nil)
	expectError(t, rec, http.StatusConflict, "invalid_transition")

	srv.login("01012345678")
}

func TestInvestSellSettle(t *testing.T) {
	srv := newTestServer(t)
	admin := srv.login(inmemory.DemoAdminPhone)
	investor := srv.login(inmemory.DemoInvestorPhone)
	investPath := "/api/cycles/" + inmemory.DemoActiveCycleID + "/investments"

	rec := srv.do(http.MethodPost, investPath, investor, map[string]interface{}{"amount": "36000.01"})
	expectError(t, rec, http.StatusConflict, "exceeds_remaining")

	rec = srv.do(http.MethodPost, investPath, investor, map[string]interface{}{"amount": "abc"})
	expectError(t, rec, http.StatusBadRequest, "invalid_amount")

	rec = srv.do(http.MethodPost, investPath, investor, map[string]interface{}{"amount": 4000, "receipt_ref": "TRX-1"})
	if rec.Code != http.StatusCreated {
		t.Fatalf("invest: expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	var invested struct {
		Cycle cycleBody `json:"cycle"`
	}
	decode(t, rec, &invested)
	if !invested.Cycle.CurrentFunding.Equal(decimal.NewFromInt(24000)) {
		t.Fatalf("expected funding 24000, got %s", invested.Cycle.CurrentFunding)
	}

	rec = srv.do(http.MethodPost, investPath, admin, map[string]interface{}{"amount": 10})
	expectError(t, rec, http.StatusForbidden, "forbidden")

	sellPath := "/api/admin/cycles/" + inmemory.DemoActiveCycleID + "/sell"
	rec = srv.do(http.MethodPost, sellPath, investor, map[string]interface{}{"final_sale_price": 90000})
	expectError(t, rec, http.StatusForbidden, "forbidden")

	rec = srv.do(http.MethodPost, sellPath, admin, map[string]interface{}{"final_sale_price": "90000"})
	if rec.Code != http.StatusOK {
		t.Fatalf("sell: expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var sold cycleBody
	decode(t, rec, &sold)
	if sold.Status != "COMPLETED" || !sold.CurrentFunding.Equal(decimal.NewFromInt(24000)) {
		t.Fatalf("expected COMPLETED with funding 24000, got %s/%s", sold.Status, sold.CurrentFunding)
	}

	rec = srv.do(http.MethodPost, sellPath, admin, map[string]interface{}{"final_sale_price": "90000"})
	expectError(t, rec, http.StatusConflict, "invalid_transition")

	rec = srv.do(http.MethodGet, "/api/admin/cycles/"+inmemory.DemoActiveCycleID+"/settlement", admin, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("settlement: expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var settlement struct {
		Payouts        []json.RawMessage `json:"payouts"`
		TotalInvested  decimal.Decimal   `json:"total_invested"`
		TotalValue     decimal.Decimal   `json:"total_value"`
		TotalProfit    decimal.Decimal   `json:"total_profit"`
		InvestorsCount int               `json:"investors_count"`
	}
	decode(t, rec, &settlement)
	if len(settlement.Payouts) != 2 || settlement.InvestorsCount != 1 {
		t.Fatalf("expected 2 payouts for 1 investor, got %d/%d", len(settlement.Payouts), settlement.InvestorsCount)
	}
	if !settlement.TotalValue.Equal(decimal.NewFromInt(36000)) || !settlement.TotalProfit.Equal(decimal.NewFromInt(12000)) {
		t.Fatalf("expected value 36000 profit 12000, got %s/%s", settlement.TotalValue, settlement.TotalProfit)
	}

	rec = srv.do(http.MethodGet, "/api/admin/cycles/"+inmemory.DemoActiveCycleID+"/settlement.xlsx", admin, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("xlsx: expected 200, got %d", rec.Code)
	}
	if got := rec.Header().Get("Content-Type"); got != reports.ContentTypeXLSX {
		t.Fatalf("unexpected content type %q", got)
	}
	if rec.Body.Len() == 0 {
		t.Fatalf("expected workbook body")
	}

	rec = srv.do(http.MethodGet, "/api/admin/cycles/"+inmemory.DemoPendingCycleID+"/settlement", admin, nil)
	expectError(t, rec, http.StatusConflict, "cycle_not_completed")

	rec = srv.do(http.MethodGet, "/api/investor/portfolio", investor, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("portfolio: expected 200, got %d", rec.Code)
	}
	var portfolio struct {
		Holdings       []json.RawMessage `json:"holdings"`
		RealizedProfit decimal.Decimal   `json:"realized_profit"`
	}
	decode(t, rec, &portfolio)
	if len(portfolio.Holdings) != 3 {
		t.Fatalf("expected 3 holdings, got %d", len(portfolio.Holdings))
	}
	// 12000 from this sale plus 15000 from the seeded completed cycle.
	if !portfolio.RealizedProfit.Equal(decimal.NewFromInt(27000)) {
		t.Fatalf("expected realized profit 27000, got %s", portfolio.RealizedProfit)
	}
}

func TestBreederCycleLifecycle(t *testing.T) {
	srv := newTestServer(t)
	admin := srv.login(inmemory.DemoAdminPhone)
	breeder := srv.login(inmemory.DemoBreederPhone)
	investor := srv.login(inmemory.DemoInvestorPhone)

	rec := srv.do(http.MethodPost, "/api/cycles", investor, map[string]interface{}{"animal_type": "x"})
	expectError(t, rec, http.StatusForbidden, "forbidden")

	rec = srv.do(http.MethodPost, "/api/cycles", breeder, map[string]interface{}{
		"animal_type":       "عجول",
		"initial_weight":    200,
		"target_weight":     400,
		"funding_goal":      "6000",
		"total_heads":       1,
		"start_date":        "2026-01-10",
		"expected_duration": 120,
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create: expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	var created cycleBody
	decode(t, rec, &created)
	if created.Status != "PENDING" {
		t.Fatalf("expected PENDING, got %s", created.Status)
	}

	rec = srv.do(http.MethodPost, "/api/cycles", breeder, map[string]interface{}{
		"animal_type":       "عجول",
		"initial_weight":    200,
		"target_weight":     400,
		"funding_goal":      0,
		"total_heads":       1,
		"expected_duration": 120,
	})
	expectError(t, rec, http.StatusBadRequest, "invalid_request")

	if rec := srv.do(http.MethodGet, "/api/cycles/"+created.ID, investor, nil); rec.Code != http.StatusNotFound {
		t.Fatalf("expected pending cycle hidden from investor, got %d", rec.Code)
	}
	if rec := srv.do(http.MethodGet, "/api/cycles/"+created.ID, breeder, nil); rec.Code != http.StatusOK {
		t.Fatalf("expected owner to see pending cycle, got %d", rec.Code)
	}

	rec = srv.do(http.MethodPost, "/api/cycles/"+created.ID+"/logs", breeder, map[string]interface{}{"food_details": "علف"})
	expectError(t, rec, http.StatusConflict, "cycle_not_active")

	rec = srv.do(http.MethodPost, "/api/admin/cycles/"+created.ID+"/approve", admin, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("approve: expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	weight := 215.5
	rec = srv.do(http.MethodPost, "/api/cycles/"+created.ID+"/logs", breeder, map[string]interface{}{"food_details": "علف", "weight": weight})
	if rec.Code != http.StatusCreated {
		t.Fatalf("add log: expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	rec = srv.do(http.MethodGet, "/api/cycles/"+created.ID+"/logs", investor, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("list logs: expected 200, got %d", rec.Code)
	}
	var logs struct {
		Total         int     `json:"total"`
		CurrentWeight float64 `json:"current_weight"`
	}
	decode(t, rec, &logs)
	if logs.Total != 1 || logs.CurrentWeight != weight {
		t.Fatalf("expected 1 log with weight %v, got %d/%v", weight, logs.Total, logs.CurrentWeight)
	}

	rec = srv.do(http.MethodGet, "/api/cycles", investor, nil)
	var list struct {
		Items []cycleBody `json:"items"`
	}
	decode(t, rec, &list)
	found := false
	for _, item := range list.Items {
		if item.Status != "ACTIVE" {
			t.Fatalf("expected only ACTIVE opportunities, got %s", item.Status)
		}
		found = found || item.ID == created.ID
	}
	if !found {
		t.Fatalf("expected approved cycle among opportunities")
	}

	rec = srv.do(http.MethodGet, "/api/cycles/"+created.ID+"/preview?amount=3000&projected_price=9000", investor, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("preview: expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var preview struct {
		Allowed        bool            `json:"allowed"`
		ExpectedProfit decimal.Decimal `json:"expected_profit"`
	}
	decode(t, rec, &preview)
	if !preview.Allowed || !preview.ExpectedProfit.Equal(decimal.NewFromInt(1500)) {
		t.Fatalf("expected allowed preview with profit 1500, got %v/%s", preview.Allowed, preview.ExpectedProfit)
	}

	rec = srv.do(http.MethodDelete, "/api/admin/cycles/"+created.ID, admin, nil)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("delete: expected 204, got %d: %s", rec.Code, rec.Body.String())
	}
	if rec := srv.do(http.MethodGet, "/api/cycles/"+created.ID, admin, nil); rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 after delete, got %d", rec.Code)
	}

	rec = srv.do(http.MethodDelete, "/api/admin/cycles/"+inmemory.DemoActiveCycleID, admin, nil)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("delete funded cycle: expected 204, got %d: %s", rec.Code, rec.Body.String())
	}
	rec = srv.do(http.MethodGet, "/api/admin/cycles/"+inmemory.DemoActiveCycleID+"/investments", admin, nil)
	expectError(t, rec, http.StatusNotFound, "cycle_not_found")
}

func TestMoneyInputIsBounded(t *testing.T) {
	srv := newTestServer(t)
	admin := srv.login(inmemory.DemoAdminPhone)
	breeder := srv.login(inmemory.DemoBreederPhone)
	investor := srv.login(inmemory.DemoInvestorPhone)
	active := "/api/cycles/" + inmemory.DemoActiveCycleID

	for _, amount := range []string{"1e50000000", "1e-400", strings.Repeat("1", 40)} {
		rec := srv.do(http.MethodGet, active+"/preview?amount="+amount+"&projected_price=9000", investor, nil)
		expectError(t, rec, http.StatusBadRequest, "invalid_amount")

		rec = srv.do(http.MethodPost, active+"/investments", investor, map[string]string{"amount": amount})
		expectError(t, rec, http.StatusBadRequest, "invalid_amount")
	}

	rec := srv.do(http.MethodGet, active+"/preview?amount=1000&projected_price=1e400", investor, nil)
	expectError(t, rec, http.StatusBadRequest, "invalid_request")

	rec = srv.do(http.MethodPost, "/api/cycles", breeder, map[string]interface{}{
		"animal_type":       "عجول",
		"initial_weight":    200,
		"target_weight":     400,
		"funding_goal":      "1000000000000",
		"total_heads":       1,
		"expected_duration": 120,
	})
	expectError(t, rec, http.StatusBadRequest, "invalid_request")

	rec = srv.do(http.MethodPost, "/api/admin/cycles/"+inmemory.DemoActiveCycleID+"/sell", admin, map[string]string{"final_sale_price": "1e-400"})
	expectError(t, rec, http.StatusBadRequest, "invalid_request")

	rec = srv.do(http.MethodPost, "/api/admin/cycles/"+inmemory.DemoActiveCycleID+"/sell", admin, map[string]string{"final_sale_price": "999999999999.99"})
	if rec.Code != http.StatusOK {
		t.Fatalf("sell at the largest price: expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestMalformedPathIDsAreNotFound(t *testing.T) {
	srv := newTestServer(t)
	admin := srv.login(inmemory.DemoAdminPhone)
	investor := srv.login(inmemory.DemoInvestorPhone)

	for _, path := range []string{
		"/api/cycles/abc",
		"/api/cycles/abc/logs",
		"/api/cycles/abc/risk-summary",
		"/api/cycles/abc/preview?amount=10&projected_price=20",
		"/api/admin/cycles/abc/investments",
		"/api/admin/cycles/abc/settlement",
	} {
		rec := srv.do(http.MethodGet, path, admin, nil)
		expectError(t, rec, http.StatusNotFound, "cycle_not_found")
	}

	rec := srv.do(http.MethodPost, "/api/cycles/abc/investments", investor, map[string]string{"amount": "10"})
	expectError(t, rec, http.StatusNotFound, "cycle_not_found")

	rec = srv.do(http.MethodPost, "/api/admin/users/abc/approve", admin, nil)
	expectError(t, rec, http.StatusNotFound, "user_not_found")
}

func TestPreviewFollowsCycleVisibility(t *testing.T) {
	srv := newTestServer(t)
	breeder := srv.login(inmemory.DemoBreederPhone)
	investor := srv.login(inmemory.DemoInvestorPhone)
	path := "/api/cycles/" + inmemory.DemoPendingCycleID + "/preview?amount=1000&projected_price=9000"

	rec := srv.do(http.MethodGet, path, investor, nil)
	expectError(t, rec, http.StatusNotFound, "cycle_not_found")

	if rec := srv.do(http.MethodGet, path, breeder, nil); rec.Code != http.StatusOK {
		t.Fatalf("expected owner preview of pending cycle, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestRiskSummaryFallsBack(t *testing.T) {
	srv := newTestServer(t)
	investor := srv.login(inmemory.DemoInvestorPhone)

	rec := srv.do(http.MethodGet, "/api/cycles/"+inmemory.DemoActiveCycleID+"/risk-summary", investor, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var body struct {
		Summary  string `json:"summary"`
		Fallback bool   `json:"fallback"`
	}
	decode(t, rec, &body)
	if !body.Fallback || body.Summary != riskdomain.FallbackText {
		t.Fatalf("expected fallback summary, got %+v", body)
	}
}

func TestDashboardsAndMetrics(t *testing.T) {
	srv := newTestServer(t)

	for phone, role := range map[string]string{
		inmemory.DemoAdminPhone:    "ADMIN",
		inmemory.DemoBreederPhone:  "BREEDER",
		inmemory.DemoInvestorPhone: "INVESTOR",
	} {
		rec := srv.do(http.MethodGet, "/api/dashboard", srv.login(phone), nil)
		if rec.Code != http.StatusOK {
			t.Fatalf("dashboard %s: expected 200, got %d", role, rec.Code)
		}
		var body struct {
			Role string `json:"role"`
		}
		decode(t, rec, &body)
		if body.Role != role {
			t.Fatalf("expected role %s, got %s", role, body.Role)
		}
	}

	rec := srv.do(http.MethodGet, "/metrics", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("metrics: expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "livestock_logins_total") {
		t.Fatalf("expected login counter in metrics output")
	}
}
