package server

import (
    "compress/gzip"
    "encoding/json"
    "fmt"
    "io"
    "log"
    "net/http"
    "strconv"
    "strings"
    "sync/atomic"
    "time"

    cache "github.com/patrickmn/go-cache"
    "golang.org/x/time/rate"

    "github.com/PhucNguyen204/proteofilter/internal/store"
    "github.com/PhucNguyen204/proteofilter/pkg/filter"
    "github.com/PhucNguyen204/proteofilter/pkg/report"
)

// Server evaluates filter requests against a descriptor registry and,
// when a store is configured, records each run for later inspection.
type Server struct {
    reg     *filter.Registry
    st      *store.Store // nil khi chạy không có database
    sets    *cache.Cache // compiled filter sets, keyed by request spec
    limiter *rate.Limiter
    started time.Time

    evaluated atomic.Int64
    passed    atomic.Int64
    skipped   atomic.Int64
    limited   atomic.Int64
}

type Config struct {
    Registry  *filter.Registry
    Store     *store.Store
    CacheTTL  time.Duration
    RateLimit rate.Limit
    Burst     int
}

func New(cfg Config) *Server {
    ttl := cfg.CacheTTL
    if ttl <= 0 { ttl = 5 * time.Minute }
    rl := cfg.RateLimit
    if rl <= 0 { rl = 50 }
    burst := cfg.Burst
    if burst <= 0 { burst = 25 }
    return &Server{
        reg:     cfg.Registry,
        st:      cfg.Store,
        sets:    cache.New(ttl, 2*ttl),
        limiter: rate.NewLimiter(rl, burst),
        started: time.Now().UTC(),
    }
}

// RegisterRoutes wires HTTP handlers.
func (s *Server) RegisterRoutes(mux *http.ServeMux) {
    mux.HandleFunc("/healthz", s.handleHealth)
    mux.HandleFunc("/api/v1/descriptors", s.handleDescriptors)
    mux.HandleFunc("/api/v1/filter", s.handleFilter)
    mux.HandleFunc("/api/v1/runs", s.handleListRuns)
    mux.HandleFunc("/api/v1/runs/", s.handleGetRun)
}

// setFor compiles (or fetches from cache) the filter set for a request.
func (s *Server) setFor(lv report.Level, exprs []string, prefilter bool) (*filter.Set, error) {
    key := lv.String() + "|" + strconv.FormatBool(prefilter) + "|" + strings.Join(exprs, "\n")
    if v, ok := s.sets.Get(key); ok {
        return v.(*filter.Set), nil
    }
    filters := make([]*filter.Filter, 0, len(exprs))
    for _, e := range exprs {
        f, err := filter.Parse(s.reg, e)
        if err != nil { return nil, err }
        filters = append(filters, f)
    }
    set := filter.NewSet(filters...)
    if prefilter {
        set.EnablePrefilter()
    }
    s.sets.Set(key, set, cache.DefaultExpiration)
    return set, nil
}

// ---- Handlers ----

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
    writeJSON(w, http.StatusOK, map[string]any{
        "status":            "ok",
        "uptime_seconds":    int64(time.Since(s.started).Seconds()),
        "sets_cached":       s.sets.ItemCount(),
        "records_evaluated": s.evaluated.Load(),
        "records_passed":    s.passed.Load(),
        "prefilter_skipped": s.skipped.Load(),
        "rate_limited":      s.limited.Load(),
    })
}

func (s *Server) handleDescriptors(w http.ResponseWriter, r *http.Request) {
    if r.Method != http.MethodGet { w.WriteHeader(http.StatusMethodNotAllowed); return }
    type desc struct {
        Short       string   `json:"short"`
        Long        string   `json:"long"`
        List        string   `json:"list"`
        Type        string   `json:"type"`
        Comparators []string `json:"comparators"`
    }
    var ds []filter.Descriptor
    if lv := r.URL.Query().Get("level"); lv != "" {
        parsed, err := report.ParseLevel(lv)
        if err != nil { writeErr(w, http.StatusBadRequest, err); return }
        ds = s.reg.ForLevel(parsed)
    } else {
        ds = s.reg.Descriptors()
    }
    out := make([]desc, 0, len(ds))
    for _, d := range ds {
        cmps := d.Type().Comparators()
        names := make([]string, 0, len(cmps))
        for _, c := range cmps { names = append(names, c.String()) }
        out = append(out, desc{
            Short: d.ShortName(), Long: d.LongName(), List: d.ListName(),
            Type: d.Type().String(), Comparators: names,
        })
    }
    writeJSON(w, http.StatusOK, out)
}

type filterRequest struct {
    Level     string          `json:"level"`
    SourceID  int64           `json:"source_id"`
    Filters   []string        `json:"filters"`
    Records   json.RawMessage `json:"records"`
    Prefilter bool            `json:"prefilter"`
    Persist   bool            `json:"persist"`
}

type decisionResp struct {
    Key    string `json:"key"`
    Passed bool   `json:"passed"`
    // FailedFilter names the first filter that rejected the record. Empty
    // on a pass, and also when the prefilter ruled the record out before
    // any filter ran.
    FailedFilter string `json:"failed_filter,omitempty"`
    Error        string `json:"error,omitempty"`
}

type filterResponse struct {
    RunID            string         `json:"run_id,omitempty"`
    Level            string         `json:"level"`
    Evaluated        int            `json:"evaluated"`
    Passed           int            `json:"passed"`
    PrefilterSkipped int            `json:"prefilter_skipped"`
    Decisions        []decisionResp `json:"decisions"`
}

// handleFilter runs a filter list against a batch of records. Accepts a
// plain or gzip-compressed JSON body.
func (s *Server) handleFilter(w http.ResponseWriter, r *http.Request) {
    if r.Method != http.MethodPost { w.WriteHeader(http.StatusMethodNotAllowed); return }
    if !s.limiter.Allow() {
        s.limited.Add(1)
        writeErr(w, http.StatusTooManyRequests, fmt.Errorf("rate limit exceeded, retry later"))
        return
    }

    body := io.Reader(r.Body)
    if strings.EqualFold(r.Header.Get("Content-Encoding"), "gzip") {
        gz, err := gzip.NewReader(r.Body)
        if err != nil { writeErr(w, http.StatusBadRequest, fmt.Errorf("bad gzip body: %w", err)); return }
        defer gz.Close()
        body = gz
    }
    var req filterRequest
    if err := json.NewDecoder(body).Decode(&req); err != nil {
        writeErr(w, http.StatusBadRequest, fmt.Errorf("invalid JSON: %w", err))
        return
    }

    lv, err := report.ParseLevel(req.Level)
    if err != nil { writeErr(w, http.StatusBadRequest, err); return }
    if len(req.Filters) == 0 { writeErr(w, http.StatusBadRequest, fmt.Errorf("no filters given")); return }
    if req.Persist && s.st == nil {
        writeErr(w, http.StatusBadRequest, fmt.Errorf("persist requested but no database configured"))
        return
    }

    set, err := s.setFor(lv, req.Filters, req.Prefilter)
    if err != nil { writeErr(w, http.StatusBadRequest, err); return }

    recs, err := report.DecodeRecords(lv, req.Records)
    if err != nil { writeErr(w, http.StatusBadRequest, err); return }

    src := report.SourceID(req.SourceID)
    pre := set.Prefilter()
    out := filterResponse{Level: lv.String(), Evaluated: len(recs)}
    out.Decisions = make([]decisionResp, 0, len(recs))
    stored := make([]store.Decision, 0)
    for _, rec := range recs {
        var d decisionResp
        d.Key = rec.Key()
        if pre != nil && !pre.Candidate(rec) {
            out.PrefilterSkipped++
        } else {
            dec := set.Decide(rec, src)
            d.Passed = dec.Passed
            d.FailedFilter = dec.FailedFilter
            if dec.Err != nil { d.Error = dec.Err.Error() }
        }
        if d.Passed { out.Passed++ }
        out.Decisions = append(out.Decisions, d)
        if req.Persist {
            stored = append(stored, store.Decision{
                RecordKey: d.Key, Passed: d.Passed,
                FailedFilter: d.FailedFilter, EvalError: d.Error,
            })
        }
    }
    s.evaluated.Add(int64(len(recs)))
    s.passed.Add(int64(out.Passed))
    s.skipped.Add(int64(out.PrefilterSkipped))

    if req.Persist {
        run := &store.Run{
            Level:       lv.String(),
            SourceID:    req.SourceID,
            Filters:     set.Strings(),
            RecordCount: len(recs),
            PassedCount: out.Passed,
        }
        if err := s.st.SaveRun(r.Context(), run, stored); err != nil {
            writeErr(w, http.StatusInternalServerError, err)
            return
        }
        out.RunID = run.ID
        log.Printf("run %s stored: level=%s filters=%d records=%d passed=%d", run.ID, run.Level, len(req.Filters), len(recs), out.Passed)
    }
    writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleListRuns(w http.ResponseWriter, r *http.Request) {
    if r.Method != http.MethodGet { w.WriteHeader(http.StatusMethodNotAllowed); return }
    if s.st == nil { writeErr(w, http.StatusNotFound, fmt.Errorf("no database configured")); return }
    limit := 50
    if v := r.URL.Query().Get("limit"); v != "" {
        if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= 500 { limit = n }
    }
    runs, err := s.st.ListRuns(r.Context(), limit)
    if err != nil { writeErr(w, http.StatusInternalServerError, err); return }
    writeJSON(w, http.StatusOK, runs)
}

func (s *Server) handleGetRun(w http.ResponseWriter, r *http.Request) {
    if r.Method != http.MethodGet { w.WriteHeader(http.StatusMethodNotAllowed); return }
    if s.st == nil { writeErr(w, http.StatusNotFound, fmt.Errorf("no database configured")); return }
    id := strings.TrimPrefix(r.URL.Path, "/api/v1/runs/")
    if id == "" || strings.Contains(id, "/") {
        writeErr(w, http.StatusBadRequest, fmt.Errorf("bad run id"))
        return
    }
    run, decisions, err := s.st.GetRun(r.Context(), id)
    if err == store.ErrNotFound { writeErr(w, http.StatusNotFound, err); return }
    if err != nil { writeErr(w, http.StatusInternalServerError, err); return }
    writeJSON(w, http.StatusOK, map[string]any{"run": run, "decisions": decisions})
}

// ---- Helpers ----

func writeJSON(w http.ResponseWriter, code int, v any) {
    w.Header().Set("Content-Type", "application/json")
    w.WriteHeader(code)
    if err := json.NewEncoder(w).Encode(v); err != nil {
        log.Printf("writeJSON error: %v", err)
    }
}

func writeErr(w http.ResponseWriter, code int, err error) {
    writeJSON(w, code, map[string]any{"error": err.Error()})
}
