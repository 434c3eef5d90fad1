package notes_test

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"tenantnotes/internal/apiclient"
	"tenantnotes/internal/notes"
	"tenantnotes/internal/notes/mocks"
	"tenantnotes/internal/session"
	dErrors "tenantnotes/pkg/domain-errors"
	"tenantnotes/pkg/testutil"
)

//go:generate mockgen -source=handler.go -destination=mocks/handler_mocks.go -package=mocks Workspaces

type HandlerSuite struct {
	suite.Suite
}

func TestHandlerSuite(t *testing.T) {
	suite.Run(t, new(HandlerSuite))
}

func (s *HandlerSuite) newHandler(t *testing.T) (*mocks.MockWorkspaces, chi.Router) {
	ctrl := gomock.NewController(t)
	ws := mocks.NewMockWorkspaces(ctrl)
	r := chi.NewRouter()
	notes.NewHandler(ws, slog.New(slog.NewTextHandler(io.Discard, nil))).Register(r)
	return ws, r
}

func signedIn(req *http.Request) *http.Request {
	return testutil.WithSession(req, &session.Session{
		BrowserID: "c0a80101-0000-4000-8000-000000000001",
		Token:     token,
		UserData:  `{"email":"admin@acme.test"}`,
	})
}

func (s *HandlerSuite) TestList() {
	s.T().Run("returns the workspace with the header email", func(t *testing.T) {
		ws, router := s.newHandler(t)
		ws.EXPECT().List(gomock.Any(), token, notes.ListQuery{Search: "plan", Sort: notes.SortTitle}).
			Return([]apiclient.Note{{ID: "n1", Title: "Plan"}}, nil)

		rr := testutil.DoRequest(router, signedIn(testutil.NewRequest(t, http.MethodGet, "/?search=plan&sort=title")))

		testutil.AssertStatusOK(t, rr)
		got := testutil.UnmarshalResponse[notes.Workspace](t, rr)
		assert.Equal(t, 1, got.Total)
		assert.Equal(t, email, got.UserEmail)
		assert.Equal(t, notes.SortTitle, got.Sort)
	})

	s.T().Run("fetch failure", func(t *testing.T) {
		ws, router := s.newHandler(t)
		ws.EXPECT().List(gomock.Any(), token, gomock.Any()).
			Return(nil, dErrors.Wrap(errors.New("bad gateway"), dErrors.CodeUnavailable, notes.MsgFetchFailed))

		rr := testutil.DoRequest(router, signedIn(testutil.NewRequest(t, http.MethodGet, "/")))

		testutil.AssertStatus(t, rr, http.StatusServiceUnavailable)
		testutil.AssertErrorDescription(t, rr, notes.MsgFetchFailed)
	})

	s.T().Run("rejected token points at login", func(t *testing.T) {
		ws, router := s.newHandler(t)
		ws.EXPECT().List(gomock.Any(), token, gomock.Any()).
			Return(nil, dErrors.New(dErrors.CodeUnauthorized, "Token expired"))

		rr := testutil.DoRequest(router, signedIn(testutil.NewRequest(t, http.MethodGet, "/")))

		testutil.AssertSignInRequired(t, rr)
	})
}

func (s *HandlerSuite) TestCreate() {
	s.T().Run("created", func(t *testing.T) {
		ws, router := s.newHandler(t)
		ws.EXPECT().Create(gomock.Any(), token, email, notes.NoteRequest{Title: "Hello", Content: "World"}).
			Return(&apiclient.Note{ID: "n1", Title: "Hello"}, nil)

		req := testutil.NewJSONRequest(t, http.MethodPost, "/notes", map[string]any{"title": "Hello", "content": "World"})
		rr := testutil.DoRequest(router, signedIn(req))

		testutil.AssertStatus(t, rr, http.StatusCreated)
		got := testutil.UnmarshalResponse[notes.NoteResponse](t, rr)
		require.NotNil(t, got.Note)
		assert.Equal(t, "n1", got.Note.ID)
	})

	s.T().Run("limit reached message is shown as sent", func(t *testing.T) {
		ws, router := s.newHandler(t)
		msg := "Note limit reached. Upgrade your plan to add more notes."
		ws.EXPECT().Create(gomock.Any(), token, email, gomock.Any()).
			Return(nil, dErrors.New(dErrors.CodeLimitReached, msg))

		req := testutil.NewJSONRequest(t, http.MethodPost, "/notes", map[string]any{"title": "Extra"})
		rr := testutil.DoRequest(router, signedIn(req))

		testutil.AssertStatusAndError(t, rr, http.StatusForbidden, string(dErrors.CodeLimitReached))
	})
}

func (s *HandlerSuite) TestUpdateAndDelete() {
	s.T().Run("update uses the path id", func(t *testing.T) {
		ws, router := s.newHandler(t)
		ws.EXPECT().Update(gomock.Any(), token, email, "n7", gomock.Any()).Return(&apiclient.Note{ID: "n7"}, nil)

		req := testutil.NewJSONRequest(t, http.MethodPut, "/notes/n7", map[string]any{"title": "t"})
		rr := testutil.DoRequest(router, signedIn(req))

		testutil.AssertStatusOK(t, rr)
	})

	s.T().Run("delete", func(t *testing.T) {
		ws, router := s.newHandler(t)
		ws.EXPECT().Delete(gomock.Any(), token, email, "n7").Return(nil)

		rr := testutil.DoRequest(router, signedIn(testutil.NewRequest(t, http.MethodDelete, "/notes/n7")))

		testutil.AssertStatus(t, rr, http.StatusNoContent)
	})
}

func (s *HandlerSuite) TestBulkDelete() {
	s.T().Run("all deleted", func(t *testing.T) {
		ws, router := s.newHandler(t)
		ws.EXPECT().BulkDelete(gomock.Any(), token, email, notes.BulkDeleteRequest{IDs: []string{"n1", "n2"}}).
			Return(&notes.BulkDeleteResult{Deleted: []string{"n1", "n2"}}, nil)

		req := testutil.NewJSONRequest(t, http.MethodPost, "/notes/bulk-delete", map[string]any{"ids": []string{"n1", "n2"}})
		rr := testutil.DoRequest(router, signedIn(req))

		testutil.AssertStatusOK(t, rr)
		got := testutil.UnmarshalResponse[notes.BulkDeleteResponse](t, rr)
		assert.Equal(t, []string{"n1", "n2"}, got.Deleted)
	})

	s.T().Run("partial failure keeps both lists", func(t *testing.T) {
		ws, router := s.newHandler(t)
		ws.EXPECT().BulkDelete(gomock.Any(), token, email, gomock.Any()).Return(
			&notes.BulkDeleteResult{Deleted: []string{"n1"}, Failed: []string{"n2"}},
			dErrors.Wrap(errors.New("timeout"), dErrors.CodeUnavailable, notes.MsgBulkDeleteFailed),
		)

		req := testutil.NewJSONRequest(t, http.MethodPost, "/notes/bulk-delete", map[string]any{"ids": []string{"n1", "n2"}})
		rr := testutil.DoRequest(router, signedIn(req))

		testutil.AssertStatus(t, rr, http.StatusServiceUnavailable)
		got := testutil.UnmarshalResponse[notes.BulkDeleteResponse](t, rr)
		assert.Equal(t, notes.MsgBulkDeleteFailed, got.ErrorDescription)
		assert.Equal(t, []string{"n2"}, got.Failed)
	})

	s.T().Run("empty selection is rejected before the service", func(t *testing.T) {
		_, router := s.newHandler(t)

		req := testutil.NewJSONRequest(t, http.MethodPost, "/notes/bulk-delete", map[string]any{"ids": []string{}})
		rr := testutil.DoRequest(router, signedIn(req))

		testutil.AssertStatusAndError(t, rr, http.StatusUnprocessableEntity, string(dErrors.CodeValidation))
	})
}
