package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/acadstack/qcatalog-backend/internal/config"
	"github.com/acadstack/qcatalog-backend/internal/handler"
	"github.com/acadstack/qcatalog-backend/internal/router"
	"github.com/acadstack/qcatalog-backend/internal/service"
	"github.com/acadstack/qcatalog-backend/internal/storage"
	"github.com/acadstack/qcatalog-backend/internal/validator"
)

func init() {
	// Set Gin to test mode to reduce noise in test output.
	gin.SetMode(gin.TestMode)
	validator.Setup()
}

// envelope mirrors the response package's JSON shape for assertions.
type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string            `json:"code"`
		Message string            `json:"message"`
		Fields  map[string]string `json:"fields"`
	} `json:"error"`
}

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()

	gateway := storage.NewFileGateway(filepath.Join(t.TempDir(), "data.json"), zerolog.Nop())
	catalog, err := service.NewCatalogService(context.Background(), gateway, zerolog.Nop())
	require.NoError(t, err)

	handlers := &router.Handlers{
		Branch:   handler.NewBranchHandler(catalog),
		Semester: handler.NewSemesterHandler(catalog),
		Subject:  handler.NewSubjectHandler(catalog),
		Question: handler.NewQuestionHandler(catalog),
	}

	return router.SetupRouter(handlers, &config.Config{
		GinMode:        gin.TestMode,
		WriteRateLimit: 0, // Throttling off for tests.
	})
}

func performRequest(r *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	var reqBody *bytes.Buffer
	if body != nil {
		payload, _ := json.Marshal(body)
		reqBody = bytes.NewBuffer(payload)
	} else {
		reqBody = bytes.NewBuffer(nil)
	}

	req, _ := http.NewRequest(method, path, reqBody)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return env
}

// decodeData unmarshals the envelope's data payload into out and returns
// the envelope.
func decodeData(t *testing.T, w *httptest.ResponseRecorder, out interface{}) envelope {
	t.Helper()
	env := decodeEnvelope(t, w)
	require.True(t, env.Success)
	require.NoError(t, json.Unmarshal(env.Data, out))
	return env
}

func TestListBranchesEmpty(t *testing.T) {
	r := newTestRouter(t)

	w := performRequest(r, http.MethodGet, "/api/branches", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var branches []json.RawMessage
	decodeData(t, w, &branches)
	assert.Empty(t, branches)
}

func TestCreateBranchMissingName(t *testing.T) {
	r := newTestRouter(t)

	w := performRequest(r, http.MethodPost, "/api/branches", gin.H{"description": "no name"})
	require.Equal(t, http.StatusBadRequest, w.Code)

	env := decodeEnvelope(t, w)
	assert.False(t, env.Success)
	require.NotNil(t, env.Error)
	assert.Equal(t, "VALIDATION_ERROR", env.Error.Code)
	assert.Contains(t, env.Error.Fields, "name")

	// The document is unchanged.
	w = performRequest(r, http.MethodGet, "/api/branches", nil)
	var branches []json.RawMessage
	decodeData(t, w, &branches)
	assert.Empty(t, branches)
}

func TestGetUnknownBranch(t *testing.T) {
	r := newTestRouter(t)

	w := performRequest(r, http.MethodGet, "/api/branches/nope", nil)
	require.Equal(t, http.StatusNotFound, w.Code)

	env := decodeEnvelope(t, w)
	require.NotNil(t, env.Error)
	assert.Equal(t, "NOT_FOUND", env.Error.Code)
	assert.Equal(t, "Branch not found", env.Error.Message)
}

func TestCreateSemesterInvalidNumber(t *testing.T) {
	r := newTestRouter(t)

	var branch struct {
		ID string `json:"id"`
	}
	w := performRequest(r, http.MethodPost, "/api/branches", gin.H{"name": "CS"})
	require.Equal(t, http.StatusCreated, w.Code)
	decodeData(t, w, &branch)

	w = performRequest(r, http.MethodPost, "/api/branches/"+branch.ID+"/semesters", gin.H{"number": 0})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = performRequest(r, http.MethodPost, "/api/branches/"+branch.ID+"/semesters", gin.H{"number": -1})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateSemesterUnderMissingBranch(t *testing.T) {
	r := newTestRouter(t)

	w := performRequest(r, http.MethodPost, "/api/branches/nope/semesters", gin.H{"number": 1})
	require.Equal(t, http.StatusNotFound, w.Code)

	env := decodeEnvelope(t, w)
	require.NotNil(t, env.Error)
	assert.Equal(t, "Branch not found", env.Error.Message)
}

func TestEndToEndScenario(t *testing.T) {
	r := newTestRouter(t)

	// Create branch.
	var branch struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	}
	w := performRequest(r, http.MethodPost, "/api/branches", gin.H{"name": "CS"})
	require.Equal(t, http.StatusCreated, w.Code)
	decodeData(t, w, &branch)
	require.NotEmpty(t, branch.ID)
	assert.Equal(t, "CS", branch.Name)

	// Create semester under the branch.
	var semester struct {
		ID     string `json:"id"`
		Number int    `json:"number"`
	}
	w = performRequest(r, http.MethodPost, "/api/branches/"+branch.ID+"/semesters", gin.H{"number": 1})
	require.Equal(t, http.StatusCreated, w.Code)
	decodeData(t, w, &semester)
	require.NotEmpty(t, semester.ID)

	// Create subject under the semester.
	var subject struct {
		ID string `json:"id"`
	}
	subjectsPath := "/api/branches/" + branch.ID + "/semesters/" + semester.ID + "/subjects"
	w = performRequest(r, http.MethodPost, subjectsPath, gin.H{"name": "Algorithms", "code": "CS201"})
	require.Equal(t, http.StatusCreated, w.Code)
	decodeData(t, w, &subject)

	// Create question under the subject.
	var question struct {
		QuestionID string  `json:"questionId"`
		Year       int     `json:"year"`
		Marks      float64 `json:"marks"`
	}
	questionsPath := subjectsPath + "/" + subject.ID + "/questions"
	w = performRequest(r, http.MethodPost, questionsPath, gin.H{
		"text": "What is Big-O?",
		"type": "Explanation",
		"year": 2023,
	})
	require.Equal(t, http.StatusCreated, w.Code)
	decodeData(t, w, &question)
	require.NotEmpty(t, question.QuestionID)
	assert.Equal(t, 2023, question.Year)
	assert.Equal(t, float64(1), question.Marks)

	// Delete the branch.
	w = performRequest(r, http.MethodDelete, "/api/branches/"+branch.ID, nil)
	require.Equal(t, http.StatusNoContent, w.Code)
	assert.Empty(t, w.Body.Bytes())

	// The branch is gone.
	w = performRequest(r, http.MethodGet, "/api/branches/"+branch.ID, nil)
	require.Equal(t, http.StatusNotFound, w.Code)

	// The question path now 404s at the Branch segment.
	w = performRequest(r, http.MethodGet, questionsPath+"/"+question.QuestionID, nil)
	require.Equal(t, http.StatusNotFound, w.Code)
	env := decodeEnvelope(t, w)
	require.NotNil(t, env.Error)
	assert.Equal(t, "Branch not found", env.Error.Message)
}

func TestMCQQuestionOptions(t *testing.T) {
	r := newTestRouter(t)

	var branch, semester, subject struct {
		ID string `json:"id"`
	}
	w := performRequest(r, http.MethodPost, "/api/branches", gin.H{"name": "CS"})
	decodeData(t, w, &branch)
	w = performRequest(r, http.MethodPost, "/api/branches/"+branch.ID+"/semesters", gin.H{"number": 2})
	decodeData(t, w, &semester)
	base := "/api/branches/" + branch.ID + "/semesters/" + semester.ID + "/subjects"
	w = performRequest(r, http.MethodPost, base, gin.H{"name": "Databases", "code": "CS301"})
	decodeData(t, w, &subject)

	var question struct {
		QuestionID string   `json:"questionId"`
		Options    []string `json:"options"`
	}
	w = performRequest(r, http.MethodPost, base+"/"+subject.ID+"/questions", gin.H{
		"text":    "Which is a B-tree property?",
		"type":    "MCQ",
		"options": "Balanced\nSorted keys\n\n  Fixed fanout  ",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	decodeData(t, w, &question)
	assert.Equal(t, []string{"Balanced", "Sorted keys", "Fixed fanout"}, question.Options)
}

func TestListQuestionsSorted(t *testing.T) {
	r := newTestRouter(t)

	var branch, semester, subject struct {
		ID string `json:"id"`
	}
	w := performRequest(r, http.MethodPost, "/api/branches", gin.H{"name": "CS"})
	decodeData(t, w, &branch)
	w = performRequest(r, http.MethodPost, "/api/branches/"+branch.ID+"/semesters", gin.H{"number": 1})
	decodeData(t, w, &semester)
	base := "/api/branches/" + branch.ID + "/semesters/" + semester.ID + "/subjects"
	w = performRequest(r, http.MethodPost, base, gin.H{"name": "Networks", "code": "CS401"})
	decodeData(t, w, &subject)

	questionsPath := base + "/" + subject.ID + "/questions"
	for _, year := range []int{2022, 2020, 2021} {
		w = performRequest(r, http.MethodPost, questionsPath, gin.H{
			"text": "Describe TCP handshake.",
			"type": "Explanation",
			"year": year,
		})
		require.Equal(t, http.StatusCreated, w.Code)
	}

	w = performRequest(r, http.MethodGet, questionsPath, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var questions []struct {
		Year int `json:"year"`
	}
	decodeData(t, w, &questions)
	require.Len(t, questions, 3)
	assert.Equal(t, 2020, questions[0].Year)
	assert.Equal(t, 2021, questions[1].Year)
	assert.Equal(t, 2022, questions[2].Year)
}

func TestDeleteMissingQuestionIs404(t *testing.T) {
	r := newTestRouter(t)

	var branch, semester, subject struct {
		ID string `json:"id"`
	}
	w := performRequest(r, http.MethodPost, "/api/branches", gin.H{"name": "CS"})
	decodeData(t, w, &branch)
	w = performRequest(r, http.MethodPost, "/api/branches/"+branch.ID+"/semesters", gin.H{"number": 1})
	decodeData(t, w, &semester)
	base := "/api/branches/" + branch.ID + "/semesters/" + semester.ID + "/subjects"
	w = performRequest(r, http.MethodPost, base, gin.H{"name": "OS", "code": "CS302"})
	decodeData(t, w, &subject)

	w = performRequest(r, http.MethodDelete, base+"/"+subject.ID+"/questions/missing", nil)
	require.Equal(t, http.StatusNotFound, w.Code)

	env := decodeEnvelope(t, w)
	require.NotNil(t, env.Error)
	assert.Equal(t, "Question not found", env.Error.Message)
}

func TestHealth(t *testing.T) {
	r := newTestRouter(t)

	w := performRequest(r, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}
