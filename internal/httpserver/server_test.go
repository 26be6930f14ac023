package httpserver

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/robalobadob/wordle/apps/go-solver/internal/results"
	"github.com/robalobadob/wordle/apps/go-solver/internal/score"
	"github.com/robalobadob/wordle/apps/go-solver/internal/stats"
	"github.com/robalobadob/wordle/apps/go-solver/internal/store"
	"github.com/robalobadob/wordle/apps/go-solver/internal/words"
)

func testServer(t *testing.T, solutions, guessable []string, rs *results.Store) *Server {
	t.Helper()
	lists, err := words.New(solutions, guessable)
	require.NoError(t, err)
	return New(store.NewMemoryStore(), lists, rs)
}

func postJSON(t *testing.T, s *Server, path, token string, body, out any) *httptest.ResponseRecorder {
	t.Helper()
	buf, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(buf))
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)
	if out != nil && rec.Code == http.StatusOK {
		require.NoError(t, json.NewDecoder(rec.Body).Decode(out))
	}
	return rec
}

func TestHealth(t *testing.T) {
	s := testServer(t, []string{"crane"}, nil, nil)
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"ok":true}`, rec.Body.String())
}

func TestDebugWords(t *testing.T) {
	s := testServer(t, []string{"crane", "slate"}, []string{"adieu"}, nil)
	req := httptest.NewRequest(http.MethodGet, "/debug/words", nil)
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"solutions":2,"guessable":1}`, rec.Body.String())
}

func TestNewSessionReturnsOpeningGuess(t *testing.T) {
	s := testServer(t, []string{"crane", "slate", "maker"}, nil, nil)

	var res newSessionRes
	rec := postJSON(t, s, "/session/new", "", newSessionReq{Strategy: "groupcount"}, &res)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, res.Token)
	assert.Len(t, res.Guess, score.WordLen)
	assert.Equal(t, 3, res.Possibilities)
}

func TestNewSessionRejectsBadStrategy(t *testing.T) {
	s := testServer(t, []string{"crane"}, nil, nil)
	rec := postJSON(t, s, "/session/new", "", newSessionReq{Strategy: "clairvoyant"}, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestPasswordGate(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("open sesame"), bcrypt.MinCost)
	require.NoError(t, err)
	t.Setenv("SOLVER_PASSWORD_HASH", string(hash))

	s := testServer(t, []string{"crane"}, nil, nil)

	rec := postJSON(t, s, "/session/new", "", newSessionReq{}, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = postJSON(t, s, "/session/new", "", newSessionReq{Password: "open sesame"}, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestGuessRequiresToken(t *testing.T) {
	s := testServer(t, []string{"crane"}, nil, nil)

	rec := postJSON(t, s, "/session/guess", "", guessReq{Guess: "crane", Score: "ccccc"}, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = postJSON(t, s, "/session/guess", "not-a-jwt", guessReq{Guess: "crane", Score: "ccccc"}, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestFullGameOverHTTP(t *testing.T) {
	answer := "maker"
	s := testServer(t, []string{"crane", "slate", "maker", "grape"}, nil, nil)

	var opened newSessionRes
	rec := postJSON(t, s, "/session/new", "", newSessionReq{}, &opened)
	require.Equal(t, http.StatusOK, rec.Code)

	guess := opened.Guess
	for turn := 0; turn < 6; turn++ {
		sc := score.Compute(guess, answer)
		var res guessRes
		rec := postJSON(t, s, "/session/guess", opened.Token,
			guessReq{Guess: guess, Score: sc.String()}, &res)
		require.Equal(t, http.StatusOK, rec.Code)
		if res.Done {
			assert.Equal(t, guess, answer)
			// The session is gone; the token no longer resolves.
			rec := postJSON(t, s, "/session/guess", opened.Token,
				guessReq{Guess: guess, Score: "aaaaa"}, nil)
			assert.Equal(t, http.StatusNotFound, rec.Code)
			return
		}
		guess = res.Guess
	}
	t.Fatalf("answer %q not reached", answer)
}

func TestGuessRejectsMalformedScore(t *testing.T) {
	s := testServer(t, []string{"crane", "slate"}, nil, nil)
	var opened newSessionRes
	postJSON(t, s, "/session/new", "", newSessionReq{}, &opened)

	for _, bad := range []string{"", "ap", "apxpc", "APACC"} {
		rec := postJSON(t, s, "/session/guess", opened.Token,
			guessReq{Guess: "crane", Score: bad}, nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code, "score %q", bad)
	}
}

func TestGuessRejectsMalformedGuess(t *testing.T) {
	s := testServer(t, []string{"crane", "slate"}, nil, nil)
	var opened newSessionRes
	postJSON(t, s, "/session/new", "", newSessionReq{}, &opened)

	// Anything other than five lowercase ASCII letters must 400 before it
	// reaches the scorer; "HELLO" and "cr4ne" would index its letter tables
	// out of range.
	for _, bad := range []string{"", "cran", "cranes", "HELLO", "cr4ne", "cr-ne", "crän"} {
		rec := postJSON(t, s, "/session/guess", opened.Token,
			guessReq{Guess: bad, Score: "aaaaa"}, nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code, "guess %q", bad)
	}

	// The session survives rejected input and still answers a clean request.
	var res guessRes
	rec := postJSON(t, s, "/session/guess", opened.Token,
		guessReq{Guess: "crane", Score: "ccccc"}, &res)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, res.Done)
}

func TestNewSessionRejectsBadJSON(t *testing.T) {
	s := testServer(t, []string{"crane"}, nil, nil)
	req := httptest.NewRequest(http.MethodPost, "/session/new", strings.NewReader("{not json"))
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGuessConflictWhenNothingRemains(t *testing.T) {
	s := testServer(t, []string{"abcde"}, nil, nil)
	var opened newSessionRes
	postJSON(t, s, "/session/new", "", newSessionReq{}, &opened)

	// All-absent feedback for the only possibility empties the set.
	rec := postJSON(t, s, "/session/guess", opened.Token,
		guessReq{Guess: "abcde", Score: "aaaaa"}, nil)
	assert.Equal(t, http.StatusConflict, rec.Code)

	// And the broken session was discarded.
	rec = postJSON(t, s, "/session/guess", opened.Token,
		guessReq{Guess: "abcde", Score: "aaaaa"}, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRecentRunsEndpoint(t *testing.T) {
	rs, err := results.Open(filepath.Join(t.TempDir(), "runs.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = rs.Close() })

	sum := &stats.Summary{}
	sum.GroupSize[2] = 1
	sum.GroupCount[3] = 1
	sum.Record = [3]int{1, 0, 0}
	sum.Answers = []stats.AnswerResult{{Answer: "crane", GroupSize: 2, GroupCount: 3}}
	_, err = rs.InsertRun(context.Background(), time.Now(), false, 2, sum)
	require.NoError(t, err)

	s := testServer(t, []string{"crane"}, nil, rs)
	req := httptest.NewRequest(http.MethodGet, "/runs/recent", nil)
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var rows []runRow
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&rows))
	require.Len(t, rows, 1)
	assert.Equal(t, 1, rows[0].Answers)
	assert.Equal(t, [3]int{1, 0, 0}, rows[0].Record)
}

func TestRecentRunsAbsentWithoutDB(t *testing.T) {
	s := testServer(t, []string{"crane"}, nil, nil)
	req := httptest.NewRequest(http.MethodGet, "/runs/recent", nil)
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
