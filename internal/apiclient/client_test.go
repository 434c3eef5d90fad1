package apiclient

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/suite"

	dErrors "tenantnotes/pkg/domain-errors"
	"tenantnotes/pkg/platform/circuit"
)

type ClientSuite struct {
	suite.Suite
	mux     *http.ServeMux
	server  *httptest.Server
	metrics *Metrics
	client  *Client
}

func TestClientSuite(t *testing.T) {
	suite.Run(t, new(ClientSuite))
}

func (s *ClientSuite) SetupTest() {
	s.mux = http.NewServeMux()
	s.server = httptest.NewServer(s.mux)
	s.metrics = NewMetrics(prometheus.NewRegistry())
	s.client = New(s.server.URL+"/",
		WithMetrics(s.metrics),
		WithBreaker(circuit.New("test", circuit.WithFailureThreshold(2), circuit.WithCooldown(time.Hour))),
	)
}

func (s *ClientSuite) TearDownTest() {
	s.server.Close()
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func (s *ClientSuite) TestLogin() {
	s.mux.HandleFunc("POST /auth/login", func(w http.ResponseWriter, r *http.Request) {
		var req LoginRequest
		s.Require().NoError(json.NewDecoder(r.Body).Decode(&req))
		s.Equal("admin@acme.test", req.Email)
		writeJSON(w, http.StatusOK, LoginResponse{Token: "tok", User: User{Email: req.Email}})
	})

	resp, err := s.client.Login(context.Background(), "admin@acme.test", "password")
	s.Require().NoError(err)
	s.Equal("tok", resp.Token)
	s.Equal("admin@acme.test", resp.User.Email)
}

func (s *ClientSuite) TestLoginFailureKeepsServerMessage() {
	s.mux.HandleFunc("POST /auth/login", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"message": "Invalid credentials."})
	})

	_, err := s.client.Login(context.Background(), "a@b.co", "wrong")
	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeUnauthorized))

	var apiErr *APIError
	s.Require().ErrorAs(err, &apiErr)
	s.Equal("Invalid credentials.", apiErr.Message)
	s.Equal(http.StatusUnauthorized, apiErr.Status)
}

func (s *ClientSuite) TestBearerTokenIsForwarded() {
	s.mux.HandleFunc("GET /notes", func(w http.ResponseWriter, r *http.Request) {
		s.Equal("Bearer tok", r.Header.Get("Authorization"))
		writeJSON(w, http.StatusOK, []Note{{ID: "n1", Title: "First"}})
	})

	notes, err := s.client.ListNotes(context.Background(), "tok")
	s.Require().NoError(err)
	s.Require().Len(notes, 1)
	s.Equal("n1", notes[0].ID)
}

func (s *ClientSuite) TestNoteLimitReachedSurfacesVerbatim() {
	s.mux.HandleFunc("POST /notes", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusForbidden, map[string]string{
			"message":   "Note limit reached for your plan. Upgrade to create more notes.",
			"errorCode": ErrorCodeNoteLimitReached,
		})
	})

	_, err := s.client.CreateNote(context.Background(), "tok", NoteInput{Title: "x"})
	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeLimitReached))
	de, ok := dErrors.As(err)
	s.Require().True(ok)
	s.Equal("Note limit reached for your plan. Upgrade to create more notes.", de.Message)
}

func (s *ClientSuite) TestDeleteNoteEscapesID() {
	var gotPath atomic.Value
	s.mux.HandleFunc("DELETE /notes/{id}", func(w http.ResponseWriter, r *http.Request) {
		gotPath.Store(r.PathValue("id"))
		w.WriteHeader(http.StatusNoContent)
	})

	s.Require().NoError(s.client.DeleteNote(context.Background(), "tok", "a b"))
	s.Equal("a b", gotPath.Load())
}

func (s *ClientSuite) TestCircuitOpensAfterServerErrors() {
	var hits atomic.Int32
	s.mux.HandleFunc("GET /subscription", func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusBadGateway)
	})

	for range 2 {
		_, err := s.client.GetSubscription(context.Background(), "tok")
		s.True(dErrors.HasCode(err, dErrors.CodeUnavailable))
	}
	s.Equal(float64(1), testutil.ToFloat64(s.metrics.BreakerOpen))

	_, err := s.client.GetSubscription(context.Background(), "tok")
	s.ErrorIs(err, ErrCircuitOpen)
	s.Equal(int32(2), hits.Load(), "open circuit does not reach the server")
}

func (s *ClientSuite) TestClientErrorsDoNotTripBreaker() {
	s.mux.HandleFunc("PUT /notes/{id}", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, map[string]string{"message": "Note not found"})
	})

	for range 3 {
		_, err := s.client.UpdateNote(context.Background(), "tok", "missing", NoteInput{})
		s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
	}
	s.Equal(float64(0), testutil.ToFloat64(s.metrics.BreakerOpen))
}

func (s *ClientSuite) TestTransportFailure() {
	s.server.Close()
	err := s.client.RegisterTenant(context.Background(), map[string]string{"domain": "acme.com"})
	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeUnavailable))
}

func (s *ClientSuite) TestInvoices() {
	s.mux.HandleFunc("GET /billing/history", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, []Invoice{{InvoiceNumber: "INV-1", Amount: 49}})
	})

	invoices, err := s.client.ListInvoices(context.Background(), "tok")
	s.Require().NoError(err)
	s.Require().Len(invoices, 1)
	s.Equal("INV-1", invoices[0].InvoiceNumber)
}
