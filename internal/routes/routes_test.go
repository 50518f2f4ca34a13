package routes

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/Windi-Fikriyansyah/agency_be/internal/config"
	"github.com/Windi-Fikriyansyah/agency_be/internal/db"
	"github.com/Windi-Fikriyansyah/agency_be/internal/handlers"
	"github.com/Windi-Fikriyansyah/agency_be/internal/middleware"
	"github.com/Windi-Fikriyansyah/agency_be/internal/models"
	"github.com/Windi-Fikriyansyah/agency_be/internal/realtime"
	"github.com/Windi-Fikriyansyah/agency_be/internal/utils"
)

const testPassword = "secret123"

type testEnv struct {
	app    *fiber.App
	db     *gorm.DB
	tokens *utils.TokenService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	utils.PasswordCost = bcrypt.MinCost

	database, err := db.Open(sqlite.Open(filepath.Join(t.TempDir(), "agency.db")))
	if err != nil {
		t.Fatalf("open test database: %v", err)
	}

	log := logrus.New()
	log.SetOutput(io.Discard)

	hub := realtime.NewHub(log)
	tokens := utils.NewTokenService("access-secret", "refresh-secret", time.Hour, 24*time.Hour)
	app := NewApp(Deps{
		Config: config.Config{AppEnv: "development", CORSOrigins: "http://localhost:3000"},
		DB:     database,
		Tokens: tokens,
		Log:    log,
		Hub:    hub,
		Broker: realtime.NewBroker(nil, hub, log),
	})
	return &testEnv{app: app, db: database, tokens: tokens}
}

func (e *testEnv) seedAccount(t *testing.T, name, email string, role models.Role) models.Account {
	t.Helper()
	hash, err := utils.HashPassword(testPassword)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	a := models.Account{Name: name, Email: email, Password: hash, Role: role}
	if err := e.db.Create(&a).Error; err != nil {
		t.Fatalf("seed account %s: %v", email, err)
	}
	return a
}

func (e *testEnv) accessCookie(t *testing.T, a models.Account) *http.Cookie {
	t.Helper()
	token, err := e.tokens.IssueAccessToken(a.ID.String(), string(a.Role))
	if err != nil {
		t.Fatalf("issue access token: %v", err)
	}
	return &http.Cookie{Name: middleware.AccessCookie, Value: token}
}

func (e *testEnv) do(t *testing.T, method, path string, body any, cookies ...*http.Cookie) *http.Response {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for _, c := range cookies {
		req.AddCookie(c)
	}
	resp, err := e.app.Test(req, -1)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	return resp
}

func expectStatus(t *testing.T, resp *http.Response, want int) {
	t.Helper()
	if resp.StatusCode != want {
		raw, _ := io.ReadAll(resp.Body)
		t.Fatalf("expected status %d, got %d: %s", want, resp.StatusCode, raw)
	}
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	var out T
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	return out
}

func message(t *testing.T, resp *http.Response) string {
	t.Helper()
	return decode[struct {
		Message string `json:"message"`
	}](t, resp).Message
}

func responseCookie(resp *http.Response, name string) *http.Cookie {
	for _, c := range resp.Cookies() {
		if c.Name == name {
			return c
		}
	}
	return nil
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	env := newTestEnv(t)
	body := fiber.Map{"name": "Alice", "email": "alice@example.com", "password": testPassword}

	resp := env.do(t, http.MethodPost, "/api/auth/register", body)
	expectStatus(t, resp, fiber.StatusCreated)
	if responseCookie(resp, middleware.AccessCookie) == nil || responseCookie(resp, handlers.RefreshCookie) == nil {
		t.Fatal("expected both session cookies after register")
	}

	resp = env.do(t, http.MethodPost, "/api/auth/register", body)
	expectStatus(t, resp, fiber.StatusBadRequest)
	if msg := message(t, resp); msg != "User already exists" {
		t.Fatalf("unexpected message %q", msg)
	}
}

func TestRegisterValidationErrorsAreKeyedByField(t *testing.T) {
	env := newTestEnv(t)

	resp := env.do(t, http.MethodPost, "/api/auth/register", fiber.Map{"name": "Al", "email": "nope"})
	expectStatus(t, resp, fiber.StatusBadRequest)

	body := decode[struct {
		Message string              `json:"message"`
		Errors  map[string][]string `json:"errors"`
	}](t, resp)
	if body.Message != "Validation error" {
		t.Fatalf("unexpected message %q", body.Message)
	}
	for _, field := range []string{"name", "email", "password"} {
		if len(body.Errors[field]) == 0 {
			t.Fatalf("expected an error for %s, got %v", field, body.Errors)
		}
	}
}

func TestLoginDistinguishesUnknownEmailFromWrongPassword(t *testing.T) {
	env := newTestEnv(t)
	env.seedAccount(t, "Sam", "sam@example.com", models.RoleSenior)

	resp := env.do(t, http.MethodPost, "/api/auth/login", fiber.Map{"email": "ghost@example.com", "password": testPassword})
	expectStatus(t, resp, fiber.StatusUnauthorized)
	if msg := message(t, resp); msg != "Invalid credentials" {
		t.Fatalf("unknown email: unexpected message %q", msg)
	}

	resp = env.do(t, http.MethodPost, "/api/auth/login", fiber.Map{"email": "sam@example.com", "password": "wrong-password"})
	expectStatus(t, resp, fiber.StatusUnauthorized)
	if msg := message(t, resp); msg != "Password is incorrect" {
		t.Fatalf("wrong password: unexpected message %q", msg)
	}

	resp = env.do(t, http.MethodPost, "/api/auth/login", fiber.Map{"email": "SAM@example.com", "password": testPassword})
	expectStatus(t, resp, fiber.StatusOK)
	body := decode[struct {
		Role models.Role `json:"role"`
	}](t, resp)
	if body.Role != models.RoleSenior {
		t.Fatalf("expected role senior, got %q", body.Role)
	}
}

func TestOnlyLatestRefreshTokenIsAccepted(t *testing.T) {
	env := newTestEnv(t)
	env.seedAccount(t, "Jo", "jo@example.com", models.RoleJunior)
	creds := fiber.Map{"email": "jo@example.com", "password": testPassword}

	resp := env.do(t, http.MethodPost, "/api/auth/login", creds)
	expectStatus(t, resp, fiber.StatusOK)
	first := responseCookie(resp, handlers.RefreshCookie)

	resp = env.do(t, http.MethodPost, "/api/auth/login", creds)
	expectStatus(t, resp, fiber.StatusOK)
	second := responseCookie(resp, handlers.RefreshCookie)
	if first == nil || second == nil {
		t.Fatal("expected a refresh cookie on every login")
	}

	expectStatus(t, env.do(t, http.MethodPost, "/api/auth/refresh-token", nil, first), fiber.StatusUnauthorized)

	resp = env.do(t, http.MethodPost, "/auth/refresh-token", nil, second)
	expectStatus(t, resp, fiber.StatusOK)
	access := responseCookie(resp, middleware.AccessCookie)
	if access == nil || access.Value == "" {
		t.Fatal("expected a fresh access cookie")
	}
	expectStatus(t, env.do(t, http.MethodGet, "/api/auth/me", nil, access), fiber.StatusOK)

	expectStatus(t, env.do(t, http.MethodPost, "/api/auth/logout", nil, second), fiber.StatusOK)
	expectStatus(t, env.do(t, http.MethodPost, "/api/auth/refresh-token", nil, second), fiber.StatusUnauthorized)
}

func TestMeReturnsPublicProfile(t *testing.T) {
	env := newTestEnv(t)
	a := env.seedAccount(t, "Mia", "mia@example.com", models.RoleMiddle)

	resp := env.do(t, http.MethodGet, "/api/profile", nil, env.accessCookie(t, a))
	expectStatus(t, resp, fiber.StatusOK)
	body := decode[struct {
		User map[string]any `json:"user"`
	}](t, resp)
	if body.User["email"] != "mia@example.com" || body.User["role"] != "middle" {
		t.Fatalf("unexpected profile %v", body.User)
	}
	if _, leaked := body.User["password"]; leaked {
		t.Fatal("password must not be exposed")
	}
}

func TestRouteGates(t *testing.T) {
	env := newTestEnv(t)
	accounts := map[models.Role]models.Account{
		models.RoleClient: env.seedAccount(t, "Cli", "client@example.com", models.RoleClient),
		models.RoleJunior: env.seedAccount(t, "Jun", "junior@example.com", models.RoleJunior),
		models.RoleMiddle: env.seedAccount(t, "Mid", "middle@example.com", models.RoleMiddle),
		models.RoleSenior: env.seedAccount(t, "Sen", "senior@example.com", models.RoleSenior),
	}

	tests := []struct {
		method string
		path   string
		role   models.Role
		want   int
	}{
		{http.MethodGet, "/api/tasks", "", fiber.StatusUnauthorized},
		{http.MethodGet, "/api/tasks", models.RoleClient, fiber.StatusForbidden},
		{http.MethodGet, "/api/tasks", models.RoleJunior, fiber.StatusOK},
		{http.MethodGet, "/api/comment", models.RoleMiddle, fiber.StatusForbidden},
		{http.MethodGet, "/api/comment", models.RoleSenior, fiber.StatusOK},
		{http.MethodGet, "/api/contact", models.RoleJunior, fiber.StatusForbidden},
		{http.MethodGet, "/api/analytics/developers", models.RoleSenior, fiber.StatusOK},
		{http.MethodGet, "/api/leaderboard/full", models.RoleMiddle, fiber.StatusForbidden},
		{http.MethodGet, "/api/dashboard/client", models.RoleClient, fiber.StatusOK},
		{http.MethodGet, "/api/dashboard/client", models.RoleSenior, fiber.StatusForbidden},
		{http.MethodGet, "/api/dashboard/middle", models.RoleMiddle, fiber.StatusOK},
		{http.MethodGet, "/api/developers", models.RoleClient, fiber.StatusOK},
		{http.MethodGet, "/api/leaderboard", "", fiber.StatusOK},
		{http.MethodGet, "/api/blogs", "", fiber.StatusOK},
		{http.MethodGet, "/api/portfolio-categories", "", fiber.StatusOK},
	}

	for _, tt := range tests {
		var cookies []*http.Cookie
		if tt.role != "" {
			cookies = append(cookies, env.accessCookie(t, accounts[tt.role]))
		}
		resp := env.do(t, tt.method, tt.path, nil, cookies...)
		if resp.StatusCode != tt.want {
			t.Errorf("%s %s as %q: expected %d, got %d", tt.method, tt.path, tt.role, tt.want, resp.StatusCode)
		}
	}

	resp := env.do(t, http.MethodPost, "/api/blogs", fiber.Map{"title": "Hello"}, env.accessCookie(t, accounts[models.RoleJunior]))
	expectStatus(t, resp, fiber.StatusForbidden)
	if msg := message(t, resp); msg != "Forbidden: junior is not allowed to access this resource" {
		t.Fatalf("unexpected forbidden message %q", msg)
	}
}

type taskBody struct {
	Task struct {
		ID        string `json:"id"`
		Status    string `json:"status"`
		IsOverdue bool   `json:"isOverdue"`
		Subtasks  []struct {
			ID   string `json:"id"`
			Done bool   `json:"done"`
		} `json:"subtasks"`
		Feedback []struct {
			ID     string `json:"id"`
			Author string `json:"author"`
		} `json:"feedback"`
	} `json:"task"`
}

func createTask(t *testing.T, env *testEnv, senior models.Account, body fiber.Map) taskBody {
	t.Helper()
	resp := env.do(t, http.MethodPost, "/api/tasks", body, env.accessCookie(t, senior))
	expectStatus(t, resp, fiber.StatusCreated)
	return decode[taskBody](t, resp)
}

func TestTaskOverdueFlagFollowsDueDateAndStatus(t *testing.T) {
	env := newTestEnv(t)
	senior := env.seedAccount(t, "Sen", "senior@example.com", models.RoleSenior)
	junior := env.seedAccount(t, "Jun", "junior@example.com", models.RoleJunior)

	late := createTask(t, env, senior, fiber.Map{
		"title":       "Ship landing page",
		"description": "hero and pricing",
		"dueDate":     time.Now().Add(-24 * time.Hour).UTC().Format(time.RFC3339),
		"assignedTo":  junior.ID.String(),
	})
	if !late.Task.IsOverdue || late.Task.Status != "pending" {
		t.Fatalf("expected a pending overdue task, got %+v", late.Task)
	}
	onTime := createTask(t, env, senior, fiber.Map{
		"title":       "Write copy",
		"description": "about page",
		"dueDate":     time.Now().Add(24 * time.Hour).UTC().Format(time.RFC3339),
		"assignedTo":  junior.ID.String(),
	})
	if onTime.Task.IsOverdue {
		t.Fatal("a task due tomorrow is not overdue")
	}

	resp := env.do(t, http.MethodGet, "/api/tasks/mine", nil, env.accessCookie(t, junior))
	expectStatus(t, resp, fiber.StatusOK)
	mine := decode[struct {
		Tasks []struct {
			ID        string `json:"id"`
			IsOverdue bool   `json:"isOverdue"`
		} `json:"tasks"`
	}](t, resp)
	if len(mine.Tasks) != 2 {
		t.Fatalf("expected 2 assigned tasks, got %d", len(mine.Tasks))
	}
	for _, task := range mine.Tasks {
		if want := task.ID == late.Task.ID; task.IsOverdue != want {
			t.Fatalf("task %s: expected overdue=%v", task.ID, want)
		}
	}

	resp = env.do(t, http.MethodPut, "/api/tasks/"+late.Task.ID, fiber.Map{"status": "done"}, env.accessCookie(t, senior))
	expectStatus(t, resp, fiber.StatusOK)

	resp = env.do(t, http.MethodGet, "/api/tasks/"+late.Task.ID, nil, env.accessCookie(t, junior))
	expectStatus(t, resp, fiber.StatusOK)
	if got := decode[taskBody](t, resp); got.Task.IsOverdue {
		t.Fatal("a done task is never overdue")
	}
}

func TestTaskRejectsUnknownAssignee(t *testing.T) {
	env := newTestEnv(t)
	senior := env.seedAccount(t, "Sen", "senior@example.com", models.RoleSenior)

	resp := env.do(t, http.MethodPost, "/api/tasks", fiber.Map{
		"title":       "Orphan task",
		"description": "nobody",
		"dueDate":     time.Now().UTC().Format(time.RFC3339),
		"assignedTo":  uuid.NewString(),
	}, env.accessCookie(t, senior))
	expectStatus(t, resp, fiber.StatusBadRequest)
}

func TestTaskSubtasksAndFeedback(t *testing.T) {
	env := newTestEnv(t)
	senior := env.seedAccount(t, "Sen", "senior@example.com", models.RoleSenior)
	middle := env.seedAccount(t, "Mid", "middle@example.com", models.RoleMiddle)
	junior := env.seedAccount(t, "Jun", "junior@example.com", models.RoleJunior)

	task := createTask(t, env, senior, fiber.Map{
		"title":       "Build API",
		"description": "endpoints",
		"dueDate":     time.Now().Add(48 * time.Hour).UTC().Format(time.RFC3339),
		"assignedTo":  junior.ID.String(),
		"subtasks":    []fiber.Map{{"title": "schema"}, {"title": "handlers"}},
	})
	if len(task.Task.Subtasks) != 2 {
		t.Fatalf("expected 2 subtasks, got %d", len(task.Task.Subtasks))
	}
	base := "/api/tasks/" + task.Task.ID

	resp := env.do(t, http.MethodPatch, base+"/subtasks/"+task.Task.Subtasks[0].ID+"/toggle", nil, env.accessCookie(t, junior))
	expectStatus(t, resp, fiber.StatusOK)
	if got := decode[taskBody](t, resp); !got.Task.Subtasks[0].Done || got.Task.Subtasks[1].Done {
		t.Fatalf("expected only the first subtask done, got %+v", got.Task.Subtasks)
	}
	expectStatus(t, env.do(t, http.MethodPatch, base+"/subtasks/"+uuid.NewString()+"/toggle", nil, env.accessCookie(t, junior)), fiber.StatusNotFound)

	expectStatus(t, env.do(t, http.MethodPost, base+"/feedback", fiber.Map{"comment": "nice"}, env.accessCookie(t, junior)), fiber.StatusForbidden)

	resp = env.do(t, http.MethodPost, base+"/feedback", fiber.Map{"comment": "add tests", "author": senior.ID.String()}, env.accessCookie(t, middle))
	expectStatus(t, resp, fiber.StatusCreated)
	got := decode[taskBody](t, resp)
	if len(got.Task.Feedback) != 1 || got.Task.Feedback[0].Author != middle.ID.String() {
		t.Fatalf("expected feedback authored by the caller, got %+v", got.Task.Feedback)
	}
	fbID := got.Task.Feedback[0].ID

	expectStatus(t, env.do(t, http.MethodDelete, base+"/feedback/"+fbID, nil, env.accessCookie(t, senior)), fiber.StatusOK)
	expectStatus(t, env.do(t, http.MethodDelete, base+"/feedback/"+fbID, nil, env.accessCookie(t, senior)), fiber.StatusNotFound)

	expectStatus(t, env.do(t, http.MethodDelete, base, nil, env.accessCookie(t, senior)), fiber.StatusOK)
	expectStatus(t, env.do(t, http.MethodDelete, base, nil, env.accessCookie(t, senior)), fiber.StatusNotFound)
}

func TestReviewsMaintainCourseRating(t *testing.T) {
	env := newTestEnv(t)
	senior := env.seedAccount(t, "Sen", "senior@example.com", models.RoleSenior)
	alice := env.seedAccount(t, "Alice", "alice@example.com", models.RoleClient)
	bob := env.seedAccount(t, "Bob", "bob@example.com", models.RoleClient)

	resp := env.do(t, http.MethodPost, "/api/courses", fiber.Map{
		"title":       "Go for services",
		"description": "fiber and gorm",
		"duration":    "6 weeks",
		"level":       "beginner",
		"price":       49,
	}, env.accessCookie(t, senior))
	expectStatus(t, resp, fiber.StatusCreated)
	courseID := decode[struct {
		Data struct {
			ID string `json:"id"`
		} `json:"data"`
	}](t, resp).Data.ID

	resp = env.do(t, http.MethodPost, "/api/reviews", fiber.Map{"course": courseID, "rating": 4}, env.accessCookie(t, alice))
	expectStatus(t, resp, fiber.StatusCreated)
	aliceReview := decode[struct {
		Data struct {
			ID string `json:"id"`
		} `json:"data"`
	}](t, resp).Data.ID

	expectStatus(t, env.do(t, http.MethodPost, "/api/reviews", fiber.Map{"course": courseID, "rating": 5}, env.accessCookie(t, bob)), fiber.StatusCreated)

	resp = env.do(t, http.MethodPost, "/api/reviews", fiber.Map{"course": courseID, "rating": 1}, env.accessCookie(t, bob))
	expectStatus(t, resp, fiber.StatusBadRequest)
	if msg := message(t, resp); msg != "You have already reviewed this course" {
		t.Fatalf("unexpected message %q", msg)
	}

	type listing struct {
		Data []json.RawMessage `json:"data"`
		Meta struct {
			NumberOfReviews int     `json:"numberOfReviews"`
			AverageRating   float64 `json:"averageRating"`
		} `json:"meta"`
	}
	resp = env.do(t, http.MethodGet, "/api/reviews/"+courseID, nil)
	expectStatus(t, resp, fiber.StatusOK)
	got := decode[listing](t, resp)
	if len(got.Data) != 2 || got.Meta.NumberOfReviews != 2 || got.Meta.AverageRating != 4.5 {
		t.Fatalf("unexpected rating rollup %+v (%d reviews)", got.Meta, len(got.Data))
	}

	// someone else's review reads as missing
	expectStatus(t, env.do(t, http.MethodDelete, "/api/reviews/"+aliceReview, nil, env.accessCookie(t, bob)), fiber.StatusNotFound)
	expectStatus(t, env.do(t, http.MethodDelete, "/api/reviews/"+aliceReview, nil, env.accessCookie(t, alice)), fiber.StatusOK)

	resp = env.do(t, http.MethodGet, "/api/reviews/"+courseID, nil)
	expectStatus(t, resp, fiber.StatusOK)
	got = decode[listing](t, resp)
	if got.Meta.NumberOfReviews != 1 || got.Meta.AverageRating != 5 {
		t.Fatalf("unexpected rating rollup after delete %+v", got.Meta)
	}
}

func (e *testEnv) seedTask(t *testing.T, assignee models.Account, status models.TaskStatus) models.Task {
	t.Helper()
	task := models.Task{
		Title:       "work",
		Description: "work",
		Status:      status,
		Priority:    models.PriorityMedium,
		DueDate:     time.Now().UTC(),
		AssignedTo:  assignee.ID,
	}
	if err := e.db.Create(&task).Error; err != nil {
		t.Fatalf("seed task: %v", err)
	}
	return task
}

type leaderboardBody struct {
	Data []map[string]any `json:"data"`
}

func TestLeaderboardOrdersByCompletedTasks(t *testing.T) {
	env := newTestEnv(t)
	a := env.seedAccount(t, "A", "a@example.com", models.RoleJunior)
	b := env.seedAccount(t, "B", "b@example.com", models.RoleMiddle)
	c := env.seedAccount(t, "C", "c@example.com", models.RoleSenior)
	env.seedAccount(t, "Client", "client@example.com", models.RoleClient)

	env.seedTask(t, a, models.TaskDone)
	env.seedTask(t, a, models.TaskPending)
	env.seedTask(t, b, models.TaskDone)
	env.seedTask(t, b, models.TaskDone)
	env.seedTask(t, c, models.TaskInProgress)

	want := []struct {
		account models.Account
		count   float64
	}{{b, 2}, {a, 1}, {c, 0}}

	check := func(resp *http.Response, public bool) {
		t.Helper()
		expectStatus(t, resp, fiber.StatusOK)
		got := decode[leaderboardBody](t, resp)
		if len(got.Data) != len(want) {
			t.Fatalf("expected %d developers, got %d", len(want), len(got.Data))
		}
		for i, w := range want {
			row := got.Data[i]
			if row["name"] != w.account.Name || row["totalCompletedTasks"] != w.count || row["rank"] != string(w.account.Role) {
				t.Fatalf("position %d: expected %s with %v, got %v", i, w.account.Name, w.count, row)
			}
			id, hasID := row["id"]
			if public && hasID {
				t.Fatalf("public leaderboard leaks account id %v", id)
			}
			if !public && id != w.account.ID.String() {
				t.Fatalf("position %d: expected id %s, got %v", i, w.account.ID, id)
			}
		}
	}

	check(env.do(t, http.MethodGet, "/api/leaderboard", nil), true)
	check(env.do(t, http.MethodGet, "/api/leaderboard/full", nil, env.accessCookie(t, c)), false)
}

func TestLeaderboardTopIsCappedAtTen(t *testing.T) {
	env := newTestEnv(t)
	const developers = 12
	var senior models.Account
	for i := 0; i < developers; i++ {
		senior = env.seedAccount(t, fmt.Sprintf("Dev %02d", i), fmt.Sprintf("dev%02d@example.com", i), models.RoleSenior)
	}

	resp := env.do(t, http.MethodGet, "/api/leaderboard", nil)
	expectStatus(t, resp, fiber.StatusOK)
	if got := decode[leaderboardBody](t, resp); len(got.Data) != 10 {
		t.Fatalf("expected the public list capped at 10, got %d", len(got.Data))
	}

	resp = env.do(t, http.MethodGet, "/api/leaderboard/full", nil, env.accessCookie(t, senior))
	expectStatus(t, resp, fiber.StatusOK)
	if got := decode[leaderboardBody](t, resp); len(got.Data) != developers {
		t.Fatalf("expected all %d developers, got %d", developers, len(got.Data))
	}
}

func TestDeveloperAnalyticsRoleFilter(t *testing.T) {
	env := newTestEnv(t)
	senior := env.seedAccount(t, "Sen", "senior@example.com", models.RoleSenior)
	junior := env.seedAccount(t, "Jun", "junior@example.com", models.RoleJunior)
	client := env.seedAccount(t, "Cli", "client@example.com", models.RoleClient)

	env.seedTask(t, senior, models.TaskDone)
	env.seedTask(t, senior, models.TaskPending)
	env.seedTask(t, junior, models.TaskDone)
	env.seedTask(t, client, models.TaskDone)

	type stats struct {
		Analytics []struct {
			ID             string  `json:"id"`
			Name           string  `json:"name"`
			Rank           string  `json:"rank"`
			TotalAssigned  int     `json:"totalAssigned"`
			TotalCompleted int     `json:"totalCompleted"`
			PendingTasks   int     `json:"pendingTasks"`
			CompletionRate float64 `json:"completionRate"`
		} `json:"analytics"`
	}

	resp := env.do(t, http.MethodGet, "/api/analytics/developers", nil, env.accessCookie(t, senior))
	expectStatus(t, resp, fiber.StatusOK)
	got := decode[stats](t, resp)
	if len(got.Analytics) != 1 {
		t.Fatalf("expected only the senior by default, got %+v", got.Analytics)
	}
	row := got.Analytics[0]
	if row.ID != senior.ID.String() || row.Rank != "senior" || row.TotalAssigned != 2 ||
		row.TotalCompleted != 1 || row.PendingTasks != 1 || row.CompletionRate != 50 {
		t.Fatalf("unexpected senior stats %+v", row)
	}

	resp = env.do(t, http.MethodGet, "/api/analytics/developers?roles=junior,middle,senior", nil, env.accessCookie(t, senior))
	expectStatus(t, resp, fiber.StatusOK)
	got = decode[stats](t, resp)
	if len(got.Analytics) != 2 {
		t.Fatalf("expected junior and senior rows, got %+v", got.Analytics)
	}
	for _, r := range got.Analytics {
		if r.ID == client.ID.String() {
			t.Fatal("client tasks must not be analysed")
		}
	}

	expectStatus(t, env.do(t, http.MethodGet, "/api/analytics/developers?roles=client", nil, env.accessCookie(t, senior)), fiber.StatusBadRequest)
	expectStatus(t, env.do(t, http.MethodGet, "/api/analytics/developers", nil, env.accessCookie(t, junior)), fiber.StatusForbidden)
}

func TestAddBadgeRejectsDuplicateTitle(t *testing.T) {
	env := newTestEnv(t)
	senior := env.seedAccount(t, "Sen", "senior@example.com", models.RoleSenior)
	junior := env.seedAccount(t, "Jun", "junior@example.com", models.RoleJunior)
	path := "/api/users/" + junior.ID.String() + "/badges"
	badge := fiber.Map{"title": "First PR", "description": "merged a PR", "iconUrl": "https://cdn.example.com/pr.png"}

	expectStatus(t, env.do(t, http.MethodPatch, path, badge, env.accessCookie(t, senior)), fiber.StatusOK)

	resp := env.do(t, http.MethodPatch, path, badge, env.accessCookie(t, senior))
	expectStatus(t, resp, fiber.StatusBadRequest)
	if msg := message(t, resp); msg != "Badge already exists" {
		t.Fatalf("unexpected message %q", msg)
	}

	var stored models.Account
	if err := env.db.First(&stored, "id = ?", junior.ID).Error; err != nil {
		t.Fatalf("reload account: %v", err)
	}
	if len(stored.Badges) != 1 {
		t.Fatalf("expected 1 badge, got %d", len(stored.Badges))
	}
}

func TestUpdateSkillsMergesWithoutDuplicates(t *testing.T) {
	env := newTestEnv(t)
	senior := env.seedAccount(t, "Sen", "senior@example.com", models.RoleSenior)
	path := "/api/users/" + senior.ID.String() + "/skills"

	expectStatus(t, env.do(t, http.MethodPatch, path, fiber.Map{"skills": []string{"go", "sql"}}, env.accessCookie(t, senior)), fiber.StatusOK)
	resp := env.do(t, http.MethodPatch, path, fiber.Map{"skills": []string{"sql", "redis"}}, env.accessCookie(t, senior))
	expectStatus(t, resp, fiber.StatusOK)

	got := decode[struct {
		User struct {
			Skills []string `json:"skills"`
		} `json:"user"`
	}](t, resp)
	want := []string{"go", "sql", "redis"}
	if len(got.User.Skills) != len(want) {
		t.Fatalf("expected %v, got %v", want, got.User.Skills)
	}
	for i := range want {
		if got.User.Skills[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, got.User.Skills)
		}
	}
}

// Two writers read the same account, then each stores its merged set. The
// later write wins and the earlier skill disappears.
func TestConcurrentSkillUpdatesLastWriteWins(t *testing.T) {
	env := newTestEnv(t)
	senior := env.seedAccount(t, "Sen", "senior@example.com", models.RoleSenior)
	path := "/api/users/" + senior.ID.String() + "/skills"

	var stale models.Account
	if err := env.db.First(&stale, "id = ?", senior.ID).Error; err != nil {
		t.Fatalf("load account: %v", err)
	}

	expectStatus(t, env.do(t, http.MethodPatch, path, fiber.Map{"skills": []string{"go"}}, env.accessCookie(t, senior)), fiber.StatusOK)

	stale.MergeSkills([]string{"sql"})
	if err := env.db.Model(&stale).UpdateColumn("skills", stale.Skills).Error; err != nil {
		t.Fatalf("store stale skills: %v", err)
	}

	var stored models.Account
	if err := env.db.First(&stored, "id = ?", senior.ID).Error; err != nil {
		t.Fatalf("reload account: %v", err)
	}
	if len(stored.Skills) != 1 || stored.Skills[0] != "sql" {
		t.Fatalf("expected the later write %v to win, got %v", []string{"sql"}, stored.Skills)
	}
}

func TestCatalogResourceLifecycle(t *testing.T) {
	cases := []struct {
		name     string
		base     string
		list     string
		key      string
		create   fiber.Map
		update   fiber.Map
		field    string
		notFound string
	}{
		{
			name:     "testimonial",
			base:     "/api/testimonials",
			key:      "testimonial",
			create:   fiber.Map{"name": "Rina", "jobTitle": "CTO", "quote": "Shipped on time", "imageUrl": "https://img/rina.png"},
			update:   fiber.Map{"quote": "Shipped early"},
			field:    "quote",
			notFound: "Testimonial not found",
		},
		{
			name:     "pricing",
			base:     "/api/pricing",
			key:      "pricing",
			create:   fiber.Map{"title": "Starter", "description": "Landing page", "price": 150, "features": []string{"1 page"}},
			update:   fiber.Map{"title": "Starter Plus"},
			field:    "title",
			notFound: "Pricing not found",
		},
		{
			name:     "partner logo",
			base:     "/api/yourlogo",
			key:      "data",
			create:   fiber.Map{"name": "Acme", "image": "https://img/acme.png"},
			update:   fiber.Map{"name": "Acme Corp"},
			field:    "name",
			notFound: "Your logo not found",
		},
		{
			name:     "team member",
			base:     "/api/team",
			list:     "/api/team/1",
			key:      "data",
			create:   fiber.Map{"name": "Budi", "bio": "Backend", "rank": 1, "skills": []string{"go"}, "image": "https://img/budi.png"},
			update:   fiber.Map{"bio": "Platform"},
			field:    "bio",
			notFound: "Team not found",
		},
		{
			name:     "syllabus",
			base:     "/api/syllabus",
			key:      "data",
			create:   fiber.Map{"title": "HTTP basics", "description": "Routing and handlers", "week": "1"},
			update:   fiber.Map{"title": "HTTP in depth"},
			field:    "title",
			notFound: "Syllabus not found",
		},
		{
			name:     "developer",
			base:     "/api/developers",
			key:      "data",
			create:   fiber.Map{"name": "Sari", "rank": "middle", "bio": "Frontend", "profileImage": "https://img/sari.png", "skills": []string{"react"}},
			update:   fiber.Map{"bio": "Fullstack"},
			field:    "bio",
			notFound: "Developer not found",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			env := newTestEnv(t)
			senior := env.seedAccount(t, "Sen", "senior@example.com", models.RoleSenior)
			cookie := env.accessCookie(t, senior)

			item := func(resp *http.Response) map[string]any {
				t.Helper()
				body := decode[map[string]any](t, resp)
				out, ok := body[tc.key].(map[string]any)
				if !ok {
					t.Fatalf("expected an object under %q, got %v", tc.key, body)
				}
				return out
			}

			resp := env.do(t, http.MethodPost, tc.base, tc.create, cookie)
			expectStatus(t, resp, fiber.StatusCreated)
			created := item(resp)
			id, _ := created["id"].(string)
			if _, err := uuid.Parse(id); err != nil {
				t.Fatalf("expected a uuid id, got %v", created["id"])
			}

			resp = env.do(t, http.MethodGet, tc.base+"/"+id, nil, cookie)
			expectStatus(t, resp, fiber.StatusOK)
			fetched := item(resp)
			for k, v := range tc.create {
				if s, ok := v.(string); ok && fetched[k] != s {
					t.Fatalf("field %s: expected %q, got %v", k, s, fetched[k])
				}
			}

			list := tc.list
			if list == "" {
				list = tc.base
			}
			resp = env.do(t, http.MethodGet, list, nil, cookie)
			expectStatus(t, resp, fiber.StatusOK)
			var rows []map[string]any
			for _, v := range decode[map[string]any](t, resp) {
				if arr, ok := v.([]any); ok {
					for _, r := range arr {
						if m, ok := r.(map[string]any); ok {
							rows = append(rows, m)
						}
					}
				}
			}
			if len(rows) != 1 || rows[0]["id"] != id {
				t.Fatalf("expected the created item in %s, got %v", list, rows)
			}

			resp = env.do(t, http.MethodPut, tc.base+"/"+id, tc.update, cookie)
			expectStatus(t, resp, fiber.StatusOK)
			if got := item(resp)[tc.field]; got != tc.update[tc.field] {
				t.Fatalf("expected %s updated to %v, got %v", tc.field, tc.update[tc.field], got)
			}

			expectStatus(t, env.do(t, http.MethodDelete, tc.base+"/"+id, nil, cookie), fiber.StatusOK)
			resp = env.do(t, http.MethodDelete, tc.base+"/"+id, nil, cookie)
			expectStatus(t, resp, fiber.StatusNotFound)
			if msg := message(t, resp); msg != tc.notFound {
				t.Fatalf("unexpected message %q", msg)
			}
		})
	}
}

func TestDeveloperProfileResolvesTasks(t *testing.T) {
	env := newTestEnv(t)
	senior := env.seedAccount(t, "Sen", "senior@example.com", models.RoleSenior)
	task := env.seedTask(t, senior, models.TaskPending)

	resp := env.do(t, http.MethodPost, "/api/developers", fiber.Map{
		"name":         "Sari",
		"rank":         "middle",
		"bio":          "Frontend",
		"profileImage": "https://img/sari.png",
		"tasks":        []string{task.ID.String()},
	}, env.accessCookie(t, senior))
	expectStatus(t, resp, fiber.StatusCreated)

	type profile struct {
		Data struct {
			ID    string `json:"id"`
			Tasks []struct {
				ID    string `json:"id"`
				Title string `json:"title"`
			} `json:"tasks"`
		} `json:"data"`
	}
	created := decode[profile](t, resp)

	junior := env.seedAccount(t, "Jun", "junior@example.com", models.RoleJunior)
	resp = env.do(t, http.MethodGet, "/api/developers/"+created.Data.ID, nil, env.accessCookie(t, junior))
	expectStatus(t, resp, fiber.StatusOK)
	got := decode[profile](t, resp)
	if len(got.Data.Tasks) != 1 || got.Data.Tasks[0].ID != task.ID.String() || got.Data.Tasks[0].Title != task.Title {
		t.Fatalf("expected the resolved task %s, got %+v", task.ID, got.Data.Tasks)
	}
}

func TestBlogReadCountsViews(t *testing.T) {
	env := newTestEnv(t)
	middle := env.seedAccount(t, "Mid", "middle@example.com", models.RoleMiddle)

	resp := env.do(t, http.MethodPost, "/api/blogs", fiber.Map{
		"title":    "Launch notes",
		"content":  "we shipped",
		"category": "news",
		"tags":     []string{"go", "release"},
	}, env.accessCookie(t, middle))
	expectStatus(t, resp, fiber.StatusCreated)
	id := decode[struct {
		Data struct {
			ID string `json:"id"`
		} `json:"data"`
	}](t, resp).Data.ID

	var views int
	for i := 0; i < 2; i++ {
		resp = env.do(t, http.MethodGet, "/api/blogs/"+id, nil)
		expectStatus(t, resp, fiber.StatusOK)
		views = decode[struct {
			Data struct {
				Views int `json:"views"`
			} `json:"data"`
		}](t, resp).Data.Views
	}
	if views != 2 {
		t.Fatalf("expected 2 views, got %d", views)
	}

	resp = env.do(t, http.MethodGet, "/api/blogs?tags=release", nil)
	expectStatus(t, resp, fiber.StatusOK)
	listed := decode[struct {
		Blogs []json.RawMessage `json:"blogs"`
		Total int               `json:"total"`
	}](t, resp)
	if len(listed.Blogs) != 1 || listed.Total != 1 {
		t.Fatalf("expected the tagged blog, got %d (total %d)", len(listed.Blogs), listed.Total)
	}

	expectStatus(t, env.do(t, http.MethodGet, "/api/blogs/not-a-uuid", nil), fiber.StatusNotFound)
}

func TestCategorySlugMustBeUnique(t *testing.T) {
	env := newTestEnv(t)
	senior := env.seedAccount(t, "Sen", "senior@example.com", models.RoleSenior)

	resp := env.do(t, http.MethodPost, "/api/portfolio-categories", fiber.Map{"name": "Web Apps"}, env.accessCookie(t, senior))
	expectStatus(t, resp, fiber.StatusCreated)
	if got := decode[models.Category](t, resp); got.Slug != "web-apps" {
		t.Fatalf("expected slug web-apps, got %q", got.Slug)
	}

	resp = env.do(t, http.MethodPost, "/api/portfolio-categories", fiber.Map{"name": "Web apps!"}, env.accessCookie(t, senior))
	expectStatus(t, resp, fiber.StatusBadRequest)
	if msg := message(t, resp); msg != "Category slug already exists" {
		t.Fatalf("unexpected message %q", msg)
	}

	expectStatus(t, env.do(t, http.MethodGet, "/api/portfolio-categories/portfolios?category=web-apps", nil), fiber.StatusOK)
	expectStatus(t, env.do(t, http.MethodGet, "/api/portfolio-categories/portfolios?category=mobile", nil), fiber.StatusNotFound)
	expectStatus(t, env.do(t, http.MethodGet, "/api/portfolio-categories/portfolios", nil), fiber.StatusBadRequest)
}

func TestClientLeadEmailIsUnique(t *testing.T) {
	env := newTestEnv(t)
	lead := fiber.Map{
		"name":     "Acme",
		"email":    "ops@acme.test",
		"phone":    "+62 811 0000",
		"services": []string{"web"},
	}

	expectStatus(t, env.do(t, http.MethodPost, "/api/client", lead), fiber.StatusCreated)

	lead["email"] = "OPS@acme.test"
	resp := env.do(t, http.MethodPost, "/api/client", lead)
	expectStatus(t, resp, fiber.StatusBadRequest)
	if msg := message(t, resp); msg != "Client with this email already exists" {
		t.Fatalf("unexpected message %q", msg)
	}
}

func TestContactLifecycle(t *testing.T) {
	env := newTestEnv(t)
	senior := env.seedAccount(t, "Sen", "senior@example.com", models.RoleSenior)

	resp := env.do(t, http.MethodPost, "/api/contact", fiber.Map{
		"name":    "Dana",
		"email":   "dana@example.com",
		"subject": "Quote",
		"message": "How much for a shop?",
		"status":  "closed",
	})
	expectStatus(t, resp, fiber.StatusCreated)
	created := decode[struct {
		Contact models.Contact `json:"contact"`
	}](t, resp).Contact
	if created.Status != models.ContactNew {
		t.Fatalf("expected status new, got %q", created.Status)
	}
	path := "/api/contact/" + created.ID.String()

	expectStatus(t, env.do(t, http.MethodPatch, path+"/status", fiber.Map{"status": "archived"}, env.accessCookie(t, senior)), fiber.StatusBadRequest)
	expectStatus(t, env.do(t, http.MethodPatch, path+"/status", fiber.Map{"status": "responded"}, env.accessCookie(t, senior)), fiber.StatusOK)

	expectStatus(t, env.do(t, http.MethodDelete, path, nil, env.accessCookie(t, senior)), fiber.StatusOK)
	expectStatus(t, env.do(t, http.MethodDelete, path, nil, env.accessCookie(t, senior)), fiber.StatusNotFound)
	expectStatus(t, env.do(t, http.MethodDelete, "/api/contact/42", nil, env.accessCookie(t, senior)), fiber.StatusNotFound)
}

func TestImageKitAuthUnavailableWithoutKeys(t *testing.T) {
	env := newTestEnv(t)
	expectStatus(t, env.do(t, http.MethodGet, "/auth/imagekit", nil), fiber.StatusServiceUnavailable)
}
