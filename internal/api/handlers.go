package api

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/cloudwego/eino/schema"
	"github.com/google/uuid"

	"github.com/vitalstats/natalityd/internal/chart"
	"github.com/vitalstats/natalityd/internal/dataset"
	"github.com/vitalstats/natalityd/internal/query"
	logx "github.com/vitalstats/natalityd/pkg/logger"
)

// emptyResultWarning matches the original dashboard's non-fatal banner.
const emptyResultWarning = "No data matches selected filters."

const sessionCookie = "natality_session"

// filtersResponse lists the observed values for each filter control.
type filtersResponse struct {
	States  []string `json:"states"`
	Genders []string `json:"genders"`
	Months  []string `json:"months"`
}

type dashboardRequest struct {
	Selection query.Selection `json:"selection"`
}

type dashboardResponse struct {
	Empty       bool          `json:"empty"`
	Warning     string        `json:"warning,omitempty"`
	Chart       *chart.Config `json:"chart,omitempty"`
	Columns     []string      `json:"columns,omitempty"`
	Rows        [][]string    `json:"rows,omitempty"`
	MatchedRows int           `json:"matchedRows"`
	TotalBirths float64       `json:"totalBirths"`
}

type chatRequest struct {
	Selection query.Selection `json:"selection"`
	Question  string          `json:"question"`
}

type turn struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Empty      bool   `json:"empty,omitempty"`
	Warning    string `json:"warning,omitempty"`
	Reply      string `json:"reply,omitempty"`
	Transcript []turn `json:"transcript"`
}

func (s *Server) handleFilters(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, filtersResponse{
		States:  query.DistinctSorted(s.table, dataset.ColState),
		Genders: query.DistinctSorted(s.table, dataset.ColGender),
		Months:  query.DistinctSorted(s.table, dataset.ColMonth),
	})
}

// handleDashboard filters the dataset and returns the chart plus the
// filtered rows. An empty match is not an error: the client gets a warning
// and keeps its controls live.
func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	var req dashboardRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	view := query.Apply(s.table.All(), req.Selection)
	if view.Len() == 0 {
		writeJSON(w, http.StatusOK, dashboardResponse{Empty: true, Warning: emptyResultWarning})
		return
	}

	agg := query.GroupSumPair(view, dataset.ColState, dataset.ColGender)
	writeJSON(w, http.StatusOK, dashboardResponse{
		Chart:       chart.BuildBirthsByStateGender(agg),
		Columns:     view.Columns(),
		Rows:        view.Rows(),
		MatchedRows: view.Len(),
		TotalBirths: query.Total(view),
	})
}

// handleChat runs one chat interaction: append the user turn, ask the
// analyst against the freshly filtered view, append the assistant turn.
// The transcript always grows by exactly two messages, fallback included.
func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	question := strings.TrimSpace(req.Question)
	if question == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "question is required"})
		return
	}

	ctx := r.Context()
	sessionID := s.sessionID(w, r)

	view := query.Apply(s.table.All(), req.Selection)
	if view.Len() == 0 {
		transcript, _ := s.transcript(r)
		writeJSON(w, http.StatusOK, chatResponse{Empty: true, Warning: emptyResultWarning, Transcript: transcript})
		return
	}

	if err := s.sessions.Append(ctx, sessionID, schema.UserMessage(question)); err != nil {
		writeStoreError(w, err)
		return
	}

	reply := s.analyst.Ask(ctx, view, req.Selection, question)

	if err := s.sessions.Append(ctx, sessionID, schema.AssistantMessage(reply, nil)); err != nil {
		writeStoreError(w, err)
		return
	}

	messages, err := s.sessions.History(ctx, sessionID)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, chatResponse{Reply: reply, Transcript: toTurns(messages)})
}

func (s *Server) handleChatHistory(w http.ResponseWriter, r *http.Request) {
	transcript, err := s.transcript(r)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, chatResponse{Transcript: transcript})
}

// sessionID returns the caller's session cookie, minting one when absent.
func (s *Server) sessionID(w http.ResponseWriter, r *http.Request) string {
	if c, err := r.Cookie(sessionCookie); err == nil && c.Value != "" {
		return c.Value
	}
	id := uuid.NewString()
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return id
}

func (s *Server) transcript(r *http.Request) ([]turn, error) {
	c, err := r.Cookie(sessionCookie)
	if err != nil || c.Value == "" {
		return []turn{}, nil
	}
	messages, err := s.sessions.History(r.Context(), c.Value)
	if err != nil {
		return nil, err
	}
	return toTurns(messages), nil
}

func toTurns(messages []*schema.Message) []turn {
	out := make([]turn, 0, len(messages))
	for _, m := range messages {
		if m == nil {
			continue
		}
		out = append(out, turn{Role: string(m.Role), Content: m.Content})
	}
	return out
}

func writeStoreError(w http.ResponseWriter, err error) {
	logx.Error().Err(err).Msg("conversation store failure")
	writeJSON(w, http.StatusBadGateway, map[string]string{"error": "session store unavailable"})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logx.Error().Err(err).Msg("failed to encode response")
	}
}
