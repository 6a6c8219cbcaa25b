package main

import (
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"strings"
	"sync"

	"github.com/rs/zerolog"
)

// WebServer exposes the simulator over a JSON API. The last simulation and
// solve are retained so the export endpoints can render them.
type WebServer struct {
	config *Config
	rates  *RateProvider
	addr   string
	log    zerolog.Logger

	mu             sync.Mutex
	lastProjection *projectionContext
	lastSolved     *solvedContext
}

type projectionContext struct {
	Scenario   ForwardScenario
	Modality   Modality
	Projection Projection
	Snapshot   RateSnapshot
}

type solvedContext struct {
	Scenario ReverseScenario
	Modality Modality
	Result   SolvedResult
	Snapshot RateSnapshot
}

func NewWebServer(config *Config, rates *RateProvider, addr string, log zerolog.Logger) *WebServer {
	return &WebServer{
		config: config,
		rates:  rates,
		addr:   addr,
		log:    log.With().Str("component", "web").Logger(),
	}
}

// API request/response types

type APISimulateRequest struct {
	Modality            string  `json:"modality"`
	CDIPercent          float64 `json:"cdi_percent,omitempty"`
	InitialCapital      float64 `json:"initial_capital"`
	MonthlyContribution float64 `json:"monthly_contribution"`
	TargetBalance       float64 `json:"target_balance"`
	ApplyTax            bool    `json:"apply_tax"`
	ApplyInflation      bool    `json:"apply_inflation"`
}

type APISimulateResponse struct {
	Success         bool           `json:"success"`
	Error           string         `json:"error,omitempty"`
	Months          int            `json:"months,omitempty"`
	TargetReached   bool           `json:"target_reached,omitempty"`
	FinalBalance    float64        `json:"final_balance,omitempty"`
	TotalInvested   float64        `json:"total_invested,omitempty"`
	TotalGrossYield float64        `json:"total_gross_yield,omitempty"`
	TotalTax        float64        `json:"total_tax,omitempty"`
	NetYield        float64        `json:"net_yield,omitempty"`
	RentabilityPct  float64        `json:"rentability_pct,omitempty"`
	Multiplier      float64        `json:"multiplier,omitempty"`
	MonthsToDouble  float64        `json:"months_to_double,omitempty"`
	Records         []PeriodRecord `json:"records,omitempty"`
}

type APISolveRequest struct {
	Modality            string  `json:"modality"`
	CDIPercent          float64 `json:"cdi_percent,omitempty"`
	DesiredMonthlyYield float64 `json:"desired_monthly_yield"`
	HorizonMonths       int     `json:"horizon_months"`
	MonthlyContribution float64 `json:"monthly_contribution"`
	ApplyTax            bool    `json:"apply_tax"`
	ApplyInflation      bool    `json:"apply_inflation"`
}

type APISolveResponse struct {
	Success bool          `json:"success"`
	Error   string        `json:"error,omitempty"`
	Result  *SolvedResult `json:"result,omitempty"`
}

type APICompareRequest struct {
	Modalities          []string `json:"modalities,omitempty"` // empty means the whole catalog
	InitialCapital      float64  `json:"initial_capital"`
	MonthlyContribution float64  `json:"monthly_contribution"`
	TargetBalance       float64  `json:"target_balance"`
	ApplyTax            bool     `json:"apply_tax"`
}

type APIComparisonEntry struct {
	Modality      string  `json:"modality"`
	CDIPercent    float64 `json:"cdi_percent"`
	Risk          string  `json:"risk"`
	Months        int     `json:"months"`
	FinalBalance  float64 `json:"final_balance"`
	TotalTax      float64 `json:"total_tax"`
	TargetReached bool    `json:"target_reached"`
}

type APICompareResponse struct {
	Success bool                 `json:"success"`
	Error   string               `json:"error,omitempty"`
	Entries []APIComparisonEntry `json:"entries,omitempty"`
}

type APIModality struct {
	Name        string  `json:"name"`
	CDIPercent  float64 `json:"cdi_percent"`
	Taxable     bool    `json:"taxable"`
	LockupDays  int     `json:"lockup_days"`
	Risk        string  `json:"risk"`
	Description string  `json:"description"`
}

type APIRatesResponse struct {
	AnnualRate    float64 `json:"annual_rate"`
	MonthlyRate   float64 `json:"monthly_rate"`
	ReferenceDate string  `json:"reference_date"`
	FromAPI       bool    `json:"from_api"`
	Freshness     string  `json:"freshness"`
}

// Handler builds the route table. Split from Start so tests can drive the
// mux directly.
func (ws *WebServer) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/api/rates", ws.handleRates)
	mux.HandleFunc("/api/rates/refresh", ws.handleRatesRefresh)
	mux.HandleFunc("/api/modalities", ws.handleModalities)
	mux.HandleFunc("/api/simulate", ws.handleSimulate)
	mux.HandleFunc("/api/solve", ws.handleSolve)
	mux.HandleFunc("/api/compare", ws.handleCompare)
	mux.HandleFunc("/api/export-txt", ws.handleExportTXT)
	mux.HandleFunc("/api/export-pdf", ws.handleExportPDF)

	return mux
}

// Start listens on the configured address and serves until the listener
// closes. Use :0 for an auto-assigned port.
func (ws *WebServer) Start() error {
	listener, err := net.Listen("tcp", ws.addr)
	if err != nil {
		return err
	}

	actualAddr := listener.Addr().String()
	url := fmt.Sprintf("http://%s", actualAddr)
	if strings.HasPrefix(actualAddr, ":") || strings.HasPrefix(actualAddr, "0.0.0.0:") {
		port := actualAddr[strings.LastIndex(actualAddr, ":")+1:]
		url = fmt.Sprintf("http://localhost:%s", port)
	}

	ws.log.Info().Str("addr", actualAddr).Str("url", url).Msg("web API listening")
	return http.Serve(listener, ws.Handler())
}

// resolveModality looks up the named catalog entry, applying the rate
// percentage override when the request carries one.
func resolveModality(name string, cdiPercent float64) (Modality, error) {
	m, err := ModalityByName(name)
	if err != nil {
		return Modality{}, err
	}
	if cdiPercent > 0 {
		m = m.WithCDIPercent(cdiPercent)
	}
	return m, nil
}

func (ws *WebServer) handleRates(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	snap := ws.rates.Snapshot(r.Context())
	sendJSON(w, APIRatesResponse{
		AnnualRate:    snap.AnnualRate,
		MonthlyRate:   snap.MonthlyRate,
		ReferenceDate: snap.ReferenceDate,
		FromAPI:       snap.FromAPI,
		Freshness:     ws.rates.FreshnessLabel(),
	})
}

func (ws *WebServer) handleRatesRefresh(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	if err := ws.rates.Refresh(r.Context()); err != nil {
		sendJSONError(w, "Rate refresh failed: "+err.Error())
		return
	}
	ws.handleRatesResponse(w, r)
}

func (ws *WebServer) handleRatesResponse(w http.ResponseWriter, r *http.Request) {
	snap := ws.rates.Snapshot(r.Context())
	sendJSON(w, APIRatesResponse{
		AnnualRate:    snap.AnnualRate,
		MonthlyRate:   snap.MonthlyRate,
		ReferenceDate: snap.ReferenceDate,
		FromAPI:       snap.FromAPI,
		Freshness:     ws.rates.FreshnessLabel(),
	})
}

func (ws *WebServer) handleModalities(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	out := make([]APIModality, len(Modalities))
	for i, m := range Modalities {
		out[i] = APIModality{
			Name:        m.Name,
			CDIPercent:  m.CDIPercent,
			Taxable:     m.Taxable,
			LockupDays:  m.LockupDays,
			Risk:        m.Risk.String(),
			Description: m.Description,
		}
	}
	sendJSON(w, out)
}

func (ws *WebServer) handleSimulate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req APISimulateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		sendJSONError(w, "Invalid request body: "+err.Error())
		return
	}

	m, err := resolveModality(req.Modality, req.CDIPercent)
	if err != nil {
		sendJSONError(w, err.Error())
		return
	}

	snap := ws.rates.Snapshot(r.Context())
	s, err := NewForwardScenario(req.InitialCapital, req.MonthlyContribution, req.TargetBalance,
		m.CDIPercent, snap.MonthlyRate, req.ApplyTax, req.ApplyInflation)
	if err != nil {
		sendJSONError(w, err.Error())
		return
	}

	proj := BuildProjection(s, Simulate(s, m))

	ws.mu.Lock()
	ws.lastProjection = &projectionContext{Scenario: s, Modality: m, Projection: proj, Snapshot: snap}
	ws.mu.Unlock()

	ws.log.Debug().Str("modality", m.Name).Int("months", proj.Months).Msg("simulation served")
	sendJSON(w, APISimulateResponse{
		Success:         true,
		Months:          proj.Months,
		TargetReached:   proj.TargetReached,
		FinalBalance:    proj.FinalBalance,
		TotalInvested:   proj.TotalInvested,
		TotalGrossYield: proj.TotalGrossYield,
		TotalTax:        proj.TotalTax,
		NetYield:        proj.NetYield,
		RentabilityPct:  proj.Rentability,
		Multiplier:      proj.Multiplier,
		MonthsToDouble:  proj.MonthsToDouble,
		Records:         proj.Records,
	})
}

func (ws *WebServer) handleSolve(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req APISolveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		sendJSONError(w, "Invalid request body: "+err.Error())
		return
	}

	m, err := resolveModality(req.Modality, req.CDIPercent)
	if err != nil {
		sendJSONError(w, err.Error())
		return
	}

	snap := ws.rates.Snapshot(r.Context())
	s, err := NewReverseScenario(req.DesiredMonthlyYield, req.HorizonMonths, req.MonthlyContribution,
		m.CDIPercent, snap.MonthlyRate, req.ApplyTax, req.ApplyInflation)
	if err != nil {
		sendJSONError(w, err.Error())
		return
	}

	res, err := SolveRequiredCapital(s, m)
	if err != nil {
		sendJSONError(w, err.Error())
		return
	}

	ws.mu.Lock()
	ws.lastSolved = &solvedContext{Scenario: s, Modality: m, Result: res, Snapshot: snap}
	ws.mu.Unlock()

	ws.log.Debug().Str("modality", m.Name).Float64("capital", res.RequiredInitialCapital).Msg("solve served")
	sendJSON(w, APISolveResponse{Success: true, Result: &res})
}

func (ws *WebServer) handleCompare(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req APICompareRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		sendJSONError(w, "Invalid request body: "+err.Error())
		return
	}

	names := req.Modalities
	if len(names) == 0 {
		names = ModalityNames()
	}

	snap := ws.rates.Snapshot(r.Context())
	entries, err := CompareModalities(req.InitialCapital, req.MonthlyContribution, req.TargetBalance,
		snap.MonthlyRate, req.ApplyTax, names)
	if err != nil {
		sendJSONError(w, err.Error())
		return
	}

	out := make([]APIComparisonEntry, len(entries))
	for i, e := range entries {
		out[i] = APIComparisonEntry{
			Modality:      e.Modality.Name,
			CDIPercent:    e.Modality.CDIPercent,
			Risk:          e.Modality.Risk.String(),
			Months:        e.Months,
			FinalBalance:  e.FinalBalance,
			TotalTax:      e.TotalTax,
			TargetReached: e.TargetReached,
		}
	}
	sendJSON(w, APICompareResponse{Success: true, Entries: out})
}

func (ws *WebServer) handleExportTXT(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	ws.mu.Lock()
	proj := ws.lastProjection
	solved := ws.lastSolved
	ws.mu.Unlock()

	var report string
	switch {
	case proj != nil:
		report = ForwardReport(proj.Scenario, proj.Modality, proj.Projection, proj.Snapshot, ws.rates.FreshnessLabel())
	case solved != nil:
		report = ReverseReport(solved.Scenario, solved.Modality, solved.Result, solved.Snapshot, ws.rates.FreshnessLabel())
	default:
		sendJSONError(w, "No simulation to export yet")
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="simulation-report.txt"`)
	fmt.Fprint(w, report)
}

func (ws *WebServer) handleExportPDF(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	ws.mu.Lock()
	proj := ws.lastProjection
	solved := ws.lastSolved
	ws.mu.Unlock()

	var (
		data []byte
		err  error
	)
	switch {
	case proj != nil:
		data, err = GenerateProjectionPDF(proj.Scenario, proj.Modality, proj.Projection, proj.Snapshot)
	case solved != nil:
		data, err = GenerateSolvedPDF(solved.Scenario, solved.Modality, solved.Result, solved.Snapshot)
	default:
		sendJSONError(w, "No simulation to export yet")
		return
	}
	if err != nil {
		sendJSONError(w, "PDF generation failed: "+err.Error())
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="simulation-report.pdf"`)
	w.Write(data)
}

func sendJSON(w http.ResponseWriter, payload any) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(payload)
}

func sendJSONError(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusBadRequest)
	json.NewEncoder(w).Encode(APISimulateResponse{
		Success: false,
		Error:   message,
	})
}
