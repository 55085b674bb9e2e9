package controllers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/f-kazuma/smardy1210/config"
	"github.com/f-kazuma/smardy1210/controllers"
	"github.com/f-kazuma/smardy1210/models"
	"github.com/f-kazuma/smardy1210/routes"
	"github.com/f-kazuma/smardy1210/store"
	"github.com/f-kazuma/smardy1210/utils"
)

func setupApp() *fiber.App {
	return setupAppWithStore(store.NewMemoryStore())
}

func setupAppWithStore(st store.Store) *fiber.App {
	cfg := &config.Config{JWTSecret: "testsecret"}
	app := fiber.New()
	routes.SetupRoutes(app, st, cfg)
	return app
}

func doJSON(t *testing.T, app *fiber.App, method, path, token string, body interface{}) *http.Response {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", token)
	}

	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp
}

func decode(t *testing.T, resp *http.Response, out interface{}) {
	t.Helper()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
}

func registerUser(t *testing.T, app *fiber.App, email string) string {
	t.Helper()

	resp := doJSON(t, app, "POST", "/api/auth/register", "", map[string]string{
		"username": "testuser",
		"email":    email,
		"password": "password123",
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var result map[string]interface{}
	decode(t, resp, &result)
	token, _ := result["token"].(string)
	require.NotEmpty(t, token)
	return token
}

func createSubject(t *testing.T, app *fiber.App, token, name string) string {
	t.Helper()

	resp := doJSON(t, app, "POST", "/api/subjects", token, map[string]interface{}{"name": name})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var result struct {
		Data struct {
			ID string `json:"id"`
		} `json:"data"`
	}
	decode(t, resp, &result)
	require.NotEmpty(t, result.Data.ID)
	return result.Data.ID
}

func createGoal(t *testing.T, app *fiber.App, token, subjectID string) map[string]interface{} {
	t.Helper()

	resp := doJSON(t, app, "POST", "/api/goals", token, map[string]interface{}{
		"subjectId":   subjectID,
		"title":       "Vocabulary book",
		"baseAmount":  100,
		"repetitions": 2,
		"startDate":   "2024-01-01",
		"endDate":     "2024-01-11",
		"frequency":   2,
		"purpose":     "entrance exam prep",
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var result struct {
		Data map[string]interface{} `json:"data"`
	}
	decode(t, resp, &result)
	return result.Data
}

func TestRegisterAndLogin(t *testing.T) {
	app := setupApp()
	registerUser(t, app, "login@example.com")

	resp := doJSON(t, app, "POST", "/api/auth/login", "", map[string]string{
		"email":    "login@example.com",
		"password": "password123",
	})
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var result map[string]interface{}
	decode(t, resp, &result)
	assert.NotEmpty(t, result["token"])

	resp = doJSON(t, app, "POST", "/api/auth/login", "", map[string]string{
		"email":    "login@example.com",
		"password": "wrong",
	})
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestDuplicateRegistration(t *testing.T) {
	app := setupApp()
	registerUser(t, app, "dup@example.com")

	resp := doJSON(t, app, "POST", "/api/auth/register", "", map[string]string{
		"username": "other",
		"email":    "dup@example.com",
		"password": "password123",
	})
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
}

func TestRequiresAuth(t *testing.T) {
	app := setupApp()

	resp := doJSON(t, app, "GET", "/api/subjects", "", nil)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	resp = doJSON(t, app, "POST", "/api/goals", "not-a-token", nil)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestSubjectLifecycle(t *testing.T) {
	app := setupApp()
	token := registerUser(t, app, "subjects@example.com")

	id := createSubject(t, app, token, "Math")

	resp := doJSON(t, app, "PUT", "/api/subjects/"+id, token, map[string]interface{}{
		"name":        "Mathematics",
		"targetScore": 85,
	})
	assert.Equal(t, fiber.StatusNoContent, resp.StatusCode)

	resp = doJSON(t, app, "GET", "/api/subjects", token, nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var list struct {
		Subjects []map[string]interface{} `json:"subjects"`
	}
	decode(t, resp, &list)
	require.Len(t, list.Subjects, 1)
	assert.Equal(t, "Mathematics", list.Subjects[0]["name"])
	assert.Equal(t, 85.0, list.Subjects[0]["targetScore"])

	resp = doJSON(t, app, "DELETE", "/api/subjects/"+id, token, nil)
	assert.Equal(t, fiber.StatusNoContent, resp.StatusCode)

	resp = doJSON(t, app, "PUT", "/api/subjects/"+id, token, map[string]interface{}{"name": "x"})
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestSubjectTargetScoreValidation(t *testing.T) {
	app := setupApp()
	token := registerUser(t, app, "scores@example.com")

	resp := doJSON(t, app, "POST", "/api/subjects", token, map[string]interface{}{
		"name":        "Math",
		"targetScore": 150,
	})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestGoalCreationDerivesPacing(t *testing.T) {
	app := setupApp()
	token := registerUser(t, app, "goals@example.com")
	subjectID := createSubject(t, app, token, "English")

	// 100 units x 2 repetitions over 10 days every 2 days: 5 sessions of 40.
	goal := createGoal(t, app, token, subjectID)
	assert.Equal(t, 200.0, goal["targetAmount"])
	assert.Equal(t, 40.0, goal["dailyTarget"])
	assert.Equal(t, 0.0, goal["progress"])
}

func TestGoalCreationRejectsBadConfig(t *testing.T) {
	app := setupApp()
	token := registerUser(t, app, "badgoals@example.com")
	subjectID := createSubject(t, app, token, "English")

	base := map[string]interface{}{
		"subjectId":   subjectID,
		"title":       "t",
		"baseAmount":  100,
		"repetitions": 2,
		"startDate":   "2024-01-01",
		"endDate":     "2024-01-11",
		"frequency":   2,
	}

	for name, patch := range map[string]map[string]interface{}{
		"zero frequency":    {"frequency": 0},
		"zero baseAmount":   {"baseAmount": 0},
		"zero repetitions":  {"repetitions": 0},
		"inverted range":    {"startDate": "2024-02-01"},
		"unparseable date":  {"endDate": "tomorrow"},
		"missing subjectId": {"subjectId": ""},
	} {
		input := map[string]interface{}{}
		for k, v := range base {
			input[k] = v
		}
		for k, v := range patch {
			input[k] = v
		}

		resp := doJSON(t, app, "POST", "/api/goals", token, input)
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode, name)
	}

	// Unknown subject is a 404, not a validation error.
	input := map[string]interface{}{}
	for k, v := range base {
		input[k] = v
	}
	input["subjectId"] = "64f000000000000000000000"
	resp := doJSON(t, app, "POST", "/api/goals", token, input)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestGoalProgressAndPacingView(t *testing.T) {
	app := setupApp()
	token := registerUser(t, app, "pacing@example.com")
	subjectID := createSubject(t, app, token, "English")
	goal := createGoal(t, app, token, subjectID)
	goalID := goal["id"].(string)

	resp := doJSON(t, app, "POST", "/api/goals/"+goalID+"/progress", token, map[string]interface{}{"amount": 30})
	assert.Equal(t, fiber.StatusNoContent, resp.StatusCode)

	resp = doJSON(t, app, "GET", "/api/goals/"+goalID+"/pacing", token, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var pacing map[string]interface{}
	decode(t, resp, &pacing)

	assert.Equal(t, 30.0, pacing["progress"])
	assert.Equal(t, 15.0, pacing["progressPercentage"])
	// The goal's window is long past, so the full target is expected by now.
	assert.Equal(t, 200.0, pacing["expectedProgress"])
	assert.Equal(t, -170.0, pacing["progressDifference"])
	assert.Equal(t, "2024-01-09", pacing["estimatedCompletionDate"])

	resp = doJSON(t, app, "POST", "/api/goals/"+goalID+"/progress", token, map[string]interface{}{"amount": -5})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestGoalTitleEdit(t *testing.T) {
	app := setupApp()
	token := registerUser(t, app, "titles@example.com")
	subjectID := createSubject(t, app, token, "English")
	goal := createGoal(t, app, token, subjectID)
	goalID := goal["id"].(string)

	resp := doJSON(t, app, "PUT", "/api/goals/"+goalID, token, map[string]interface{}{"title": "Renamed"})
	assert.Equal(t, fiber.StatusNoContent, resp.StatusCode)

	resp = doJSON(t, app, "GET", "/api/goals", token, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var list struct {
		Goals []map[string]interface{} `json:"goals"`
	}
	decode(t, resp, &list)
	require.Len(t, list.Goals, 1)
	assert.Equal(t, "Renamed", list.Goals[0]["title"])
	// Derived pacing fields survive the edit untouched.
	assert.Equal(t, 40.0, list.Goals[0]["dailyTarget"])
}

func TestCascadeDeleteSubject(t *testing.T) {
	app := setupApp()
	token := registerUser(t, app, "cascade@example.com")
	subjectID := createSubject(t, app, token, "English")
	otherSubjectID := createSubject(t, app, token, "Math")

	createGoal(t, app, token, subjectID)
	createGoal(t, app, token, subjectID)
	kept := createGoal(t, app, token, otherSubjectID)

	resp := doJSON(t, app, "DELETE", "/api/subjects/"+subjectID, token, nil)
	assert.Equal(t, fiber.StatusNoContent, resp.StatusCode)

	resp = doJSON(t, app, "GET", "/api/goals", token, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var list struct {
		Goals []map[string]interface{} `json:"goals"`
	}
	decode(t, resp, &list)
	require.Len(t, list.Goals, 1)
	assert.Equal(t, kept["id"], list.Goals[0]["id"])
}

// brokenDeleteStore wraps a Store so that deleting one chosen goal fails,
// standing in for a backend that loses a write mid-cascade.
type brokenDeleteStore struct {
	store.Store
	failGoalID string
}

func (s *brokenDeleteStore) Goals() store.GoalStore {
	return &brokenDeleteGoals{GoalStore: s.Store.Goals(), parent: s}
}

type brokenDeleteGoals struct {
	store.GoalStore
	parent *brokenDeleteStore
}

func (g *brokenDeleteGoals) Delete(ctx context.Context, userID, id string) error {
	if id == g.parent.failGoalID {
		return errors.New("store unavailable")
	}
	return g.GoalStore.Delete(ctx, userID, id)
}

// A dependent goal that cannot be deleted must keep the subject alive and be
// reported back by id; nothing already deleted is rolled back.
func TestCascadeDeletePartialFailure(t *testing.T) {
	st := &brokenDeleteStore{Store: store.NewMemoryStore()}
	app := setupAppWithStore(st)
	token := registerUser(t, app, "partial@example.com")
	subjectID := createSubject(t, app, token, "English")

	createGoal(t, app, token, subjectID)
	stuck := createGoal(t, app, token, subjectID)["id"].(string)
	st.failGoalID = stuck

	resp := doJSON(t, app, "DELETE", "/api/subjects/"+subjectID, token, nil)
	require.Equal(t, fiber.StatusBadGateway, resp.StatusCode)

	var failure struct {
		FailedGoalIDs []string `json:"failedGoalIds"`
	}
	decode(t, resp, &failure)
	assert.Equal(t, []string{stuck}, failure.FailedGoalIDs)

	// The parent subject survives the failed cascade.
	resp = doJSON(t, app, "GET", "/api/subjects", token, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var subjects struct {
		Subjects []map[string]interface{} `json:"subjects"`
	}
	decode(t, resp, &subjects)
	require.Len(t, subjects.Subjects, 1)
	assert.Equal(t, subjectID, subjects.Subjects[0]["id"])

	// Only the undeletable goal is left behind.
	resp = doJSON(t, app, "GET", "/api/goals", token, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var goals struct {
		Goals []map[string]interface{} `json:"goals"`
	}
	decode(t, resp, &goals)
	require.Len(t, goals.Goals, 1)
	assert.Equal(t, stuck, goals.Goals[0]["id"])

	// Once the backend recovers, the retry completes the cascade.
	st.failGoalID = ""
	resp = doJSON(t, app, "DELETE", "/api/subjects/"+subjectID, token, nil)
	assert.Equal(t, fiber.StatusNoContent, resp.StatusCode)
}

// The pacing view reads its clock from the controller, so a fixed Now makes
// expectedProgress deterministic mid-window.
func TestPacingViewWithFixedClock(t *testing.T) {
	cfg := &config.Config{JWTSecret: "testsecret"}
	st := store.NewMemoryStore()

	gc := controllers.NewGoalsController(st, cfg)
	gc.Now = func() time.Time {
		// Three and a half days in: four days passed, 160 of 200 expected.
		return time.Date(2024, 1, 4, 12, 0, 0, 0, time.UTC)
	}

	app := fiber.New()
	app.Get("/api/goals/:id/pacing", gc.GetPacing)

	goal := models.Goal{
		UserID:       "u1",
		SubjectID:    "s1",
		Title:        "Vocabulary book",
		BaseAmount:   100,
		Repetitions:  2,
		TargetAmount: 200,
		StartDate:    time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		EndDate:      time.Date(2024, 1, 11, 0, 0, 0, 0, time.UTC),
		Frequency:    2,
		DailyTarget:  40,
		Progress:     100,
	}
	goalID, err := st.Goals().Create(context.Background(), &goal)
	require.NoError(t, err)

	token, err := utils.GenerateJWTToken("u1", cfg)
	require.NoError(t, err)

	resp := doJSON(t, app, "GET", "/api/goals/"+goalID+"/pacing", token, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var pacing map[string]interface{}
	decode(t, resp, &pacing)
	assert.Equal(t, 160.0, pacing["expectedProgress"])
	assert.Equal(t, -60.0, pacing["progressDifference"])
	assert.Equal(t, 50.0, pacing["progressPercentage"])
}

func TestSessionsAndStats(t *testing.T) {
	app := setupApp()
	token := registerUser(t, app, "stats@example.com")
	subjectID := createSubject(t, app, token, "English")
	goalA := createGoal(t, app, token, subjectID)["id"].(string)
	goalB := createGoal(t, app, token, subjectID)["id"].(string)

	now := time.Now()
	logSession := func(goalID string, start time.Time, minutes int) {
		resp := doJSON(t, app, "POST", "/api/sessions", token, map[string]interface{}{
			"goalId":    goalID,
			"startTime": start.Format(time.RFC3339),
			"duration":  minutes,
			"amount":    10,
		})
		require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	}

	logSession(goalA, now, 30)
	logSession(goalA, now.AddDate(0, 0, -6), 20)
	logSession(goalB, now, 15)

	resp := doJSON(t, app, "GET", "/api/stats/study", token, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var stats map[string]interface{}
	decode(t, resp, &stats)
	assert.Equal(t, 45.0, stats["today"])
	assert.Equal(t, 65.0, stats["total"])

	resp = doJSON(t, app, "GET", "/api/stats/subjects", token, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var dist struct {
		Distribution []struct {
			GoalID  string `json:"goalId"`
			Minutes int    `json:"minutes"`
		} `json:"distribution"`
	}
	decode(t, resp, &dist)

	totals := map[string]int{}
	for _, d := range dist.Distribution {
		totals[d.GoalID] = d.Minutes
	}
	assert.Equal(t, map[string]int{goalA: 50, goalB: 15}, totals)

	resp = doJSON(t, app, "GET", "/api/stats/daily", token, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var daily struct {
		Days []struct {
			Day     string `json:"day"`
			Minutes int    `json:"minutes"`
		} `json:"days"`
	}
	decode(t, resp, &daily)
	require.Len(t, daily.Days, 7)
	assert.Equal(t, "Sun", daily.Days[0].Day)

	// Today's 45 minutes land on today's weekday slot.
	assert.Equal(t, 45, daily.Days[int(now.Weekday())].Minutes)
}

func TestSessionNeedsExistingGoal(t *testing.T) {
	app := setupApp()
	token := registerUser(t, app, "sessiongoal@example.com")

	resp := doJSON(t, app, "POST", "/api/sessions", token, map[string]interface{}{
		"goalId":    "64f000000000000000000000",
		"startTime": time.Now().Format(time.RFC3339),
		"duration":  30,
	})
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestTestResults(t *testing.T) {
	app := setupApp()
	token := registerUser(t, app, "results@example.com")
	subjectID := createSubject(t, app, token, "English")

	deviation := 62.5
	resp := doJSON(t, app, "POST", "/api/results", token, map[string]interface{}{
		"date": "2024-06-01",
		"type": "mock",
		"subjects": []map[string]interface{}{
			{"subjectId": subjectID, "maxScore": 100, "score": 82},
		},
		"deviation":  deviation,
		"schoolRank": "A",
	})
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)

	// Deviation only applies to mock exams.
	resp = doJSON(t, app, "POST", "/api/results", token, map[string]interface{}{
		"date": "2024-06-01",
		"type": "regular",
		"subjects": []map[string]interface{}{
			{"subjectId": subjectID, "maxScore": 100, "score": 82},
		},
		"deviation": deviation,
	})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	resp = doJSON(t, app, "POST", "/api/results", token, map[string]interface{}{
		"date": "2024-06-01",
		"type": "final",
		"subjects": []map[string]interface{}{
			{"subjectId": subjectID, "maxScore": 100, "score": 82},
		},
	})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	resp = doJSON(t, app, "GET", "/api/results", token, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var list struct {
		Results []map[string]interface{} `json:"results"`
	}
	decode(t, resp, &list)
	require.Len(t, list.Results, 1)
	assert.Equal(t, "mock", list.Results[0]["type"])
	assert.Equal(t, 62.5, list.Results[0]["deviation"])
}

func TestEvents(t *testing.T) {
	app := setupApp()
	token := registerUser(t, app, "events@example.com")

	resp := doJSON(t, app, "POST", "/api/events", token, map[string]interface{}{
		"title": "Mock exam",
		"date":  "2024-07-15",
		"type":  "exam",
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var created struct {
		Data struct {
			ID string `json:"id"`
		} `json:"data"`
	}
	decode(t, resp, &created)

	resp = doJSON(t, app, "PUT", "/api/events/"+created.Data.ID, token, map[string]interface{}{
		"title": "Mock exam (rescheduled)",
		"date":  "2024-07-22",
		"type":  "exam",
	})
	assert.Equal(t, fiber.StatusNoContent, resp.StatusCode)

	resp = doJSON(t, app, "POST", "/api/events", token, map[string]interface{}{
		"title": "Bad",
		"date":  "2024-07-15",
		"type":  "birthday",
	})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	resp = doJSON(t, app, "GET", "/api/events", token, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var list struct {
		Events []map[string]interface{} `json:"events"`
	}
	decode(t, resp, &list)
	require.Len(t, list.Events, 1)
	assert.Equal(t, "Mock exam (rescheduled)", list.Events[0]["title"])

	resp = doJSON(t, app, "DELETE", "/api/events/"+created.Data.ID, token, nil)
	assert.Equal(t, fiber.StatusNoContent, resp.StatusCode)
}

func TestUsersAreIsolated(t *testing.T) {
	app := setupApp()
	tokenA := registerUser(t, app, "a@example.com")
	tokenB := registerUser(t, app, "b@example.com")

	subjectID := createSubject(t, app, tokenA, "Math")

	resp := doJSON(t, app, "GET", "/api/subjects", tokenB, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var list struct {
		Subjects []map[string]interface{} `json:"subjects"`
	}
	decode(t, resp, &list)
	assert.Empty(t, list.Subjects)

	resp = doJSON(t, app, "DELETE", fmt.Sprintf("/api/subjects/%s", subjectID), tokenB, nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}
