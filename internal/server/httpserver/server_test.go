package httpserver

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.uber.org/zap"

	"github.com/smart-notes/backend/internal/ai"
	"github.com/smart-notes/backend/internal/errs"
	"github.com/smart-notes/backend/internal/model"
	"github.com/smart-notes/backend/internal/service"
)

var testKey = []byte("test-sign-key")

type fakeAuth struct {
	registerID  string
	registerErr error
	loginErr    error
}

var _ service.AuthService = (*fakeAuth)(nil)

func (f *fakeAuth) Register(context.Context, string, string) (string, error) {
	return f.registerID, f.registerErr
}
func (f *fakeAuth) LoginWithIP(context.Context, string, string, string) (model.Tokens, error) {
	if f.loginErr != nil {
		return model.Tokens{}, f.loginErr
	}
	return model.Tokens{AccessToken: "issued", ExpiresAt: time.Now().Add(time.Hour)}, nil
}

type fakeNotes struct {
	lastUser  bson.ObjectID
	lastQuery model.ListQuery
	lastPatch model.NotePatch
	updateErr error
	deleteErr error
}

var _ service.NoteService = (*fakeNotes)(nil)

func (f *fakeNotes) Create(_ context.Context, userID bson.ObjectID, draft model.NoteDraft) (*model.Note, error) {
	f.lastUser = userID
	return &model.Note{
		ID:      bson.NewObjectID(),
		UserID:  userID,
		Title:   draft.Title,
		Content: draft.Content,
		Tags:    draft.Tags,
		Color:   draft.Color,
	}, nil
}
func (f *fakeNotes) List(_ context.Context, userID bson.ObjectID, q model.ListQuery) ([]model.Note, error) {
	f.lastUser, f.lastQuery = userID, q
	return []model.Note{}, nil
}
func (f *fakeNotes) Update(_ context.Context, _, _ bson.ObjectID, p model.NotePatch) error {
	f.lastPatch = p
	return f.updateErr
}
func (f *fakeNotes) Versions(context.Context, bson.ObjectID, bson.ObjectID) ([]model.NoteVersion, error) {
	return []model.NoteVersion{{Version: 2}, {Version: 1}}, nil
}
func (f *fakeNotes) Search(_ context.Context, _ bson.ObjectID, q string) ([]model.Note, error) {
	return []model.Note{}, nil
}
func (f *fakeNotes) Delete(context.Context, bson.ObjectID, bson.ObjectID) error {
	return f.deleteErr
}

type fakeTasks struct {
	lastDraft model.TaskDraft
	lastQuery model.ListQuery

	getOut *model.Task
	getErr error

	deleteErrs []error

	completedIn *bool
}

var _ service.TaskService = (*fakeTasks)(nil)

func (f *fakeTasks) Create(_ context.Context, userID bson.ObjectID, draft model.TaskDraft) (*model.Task, error) {
	f.lastDraft = draft
	if draft.Priority < service.MinPriority || draft.Priority > service.MaxPriority {
		return nil, fmt.Errorf("%w: priority out of range", errs.ErrValidation)
	}
	return &model.Task{ID: bson.NewObjectID(), UserID: userID, Title: draft.Title, Priority: draft.Priority}, nil
}
func (f *fakeTasks) List(_ context.Context, _ bson.ObjectID, q model.ListQuery) ([]model.Task, error) {
	f.lastQuery = q
	return []model.Task{}, nil
}
func (f *fakeTasks) Get(context.Context, bson.ObjectID, bson.ObjectID) (*model.Task, error) {
	return f.getOut, f.getErr
}
func (f *fakeTasks) Update(context.Context, bson.ObjectID, bson.ObjectID, model.TaskPatch) error {
	return nil
}
func (f *fakeTasks) Delete(context.Context, bson.ObjectID, bson.ObjectID) error {
	if len(f.deleteErrs) == 0 {
		return nil
	}
	err := f.deleteErrs[0]
	f.deleteErrs = f.deleteErrs[1:]
	return err
}
func (f *fakeTasks) SetCompleted(_ context.Context, _, _ bson.ObjectID, completed bool) error {
	f.completedIn = &completed
	return nil
}

func newTestServer(auth *fakeAuth, notes *fakeNotes, tasks *fakeTasks) http.Handler {
	if auth == nil {
		auth = &fakeAuth{}
	}
	if notes == nil {
		notes = &fakeNotes{}
	}
	if tasks == nil {
		tasks = &fakeTasks{}
	}
	s := New(auth, notes, tasks, ai.NewMock(), testKey, zap.NewNop())
	return s.Router()
}

func signToken(t *testing.T, uid bson.ObjectID) string {
	t.Helper()
	claims := jwt.RegisteredClaims{
		Subject:   uid.Hex(),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Minute)),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(testKey)
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return signed
}

func doJSON(t *testing.T, h http.Handler, method, target, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, target, &buf)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestAuthMiddleware(t *testing.T) {
	t.Parallel()
	h := newTestServer(nil, nil, nil)

	rec := doJSON(t, h, http.MethodGet, "/notes", "", nil)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("no token: want 401, got %d", rec.Code)
	}

	rec = doJSON(t, h, http.MethodGet, "/notes", "garbage", nil)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("bad token: want 401, got %d", rec.Code)
	}

	rec = doJSON(t, h, http.MethodGet, "/notes", signToken(t, bson.NewObjectID()), nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("valid token: want 200, got %d", rec.Code)
	}
}

func TestRegisterAndLogin(t *testing.T) {
	t.Parallel()

	h := newTestServer(&fakeAuth{registerID: bson.NewObjectID().Hex()}, nil, nil)
	rec := doJSON(t, h, http.MethodPost, "/auth/register", "", map[string]string{
		"email": "a@b.c", "password": "pw",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("register: want 201, got %d (%s)", rec.Code, rec.Body.String())
	}

	rec = doJSON(t, h, http.MethodPost, "/auth/register", "", map[string]string{
		"email": "not-an-email", "password": "pw",
	})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("bad email: want 400, got %d", rec.Code)
	}

	rec = doJSON(t, h, http.MethodPost, "/auth/login", "", map[string]string{
		"email": "a@b.c", "password": "pw",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("login: want 200, got %d", rec.Code)
	}
	var lr loginResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &lr); err != nil || lr.AccessToken != "issued" {
		t.Fatalf("login body: %s (%v)", rec.Body.String(), err)
	}

	h = newTestServer(&fakeAuth{registerErr: errs.ErrAlreadyExists}, nil, nil)
	rec = doJSON(t, h, http.MethodPost, "/auth/register", "", map[string]string{
		"email": "a@b.c", "password": "pw",
	})
	if rec.Code != http.StatusConflict {
		t.Fatalf("duplicate: want 409, got %d", rec.Code)
	}

	h = newTestServer(&fakeAuth{loginErr: errs.ErrUnauthorized}, nil, nil)
	rec = doJSON(t, h, http.MethodPost, "/auth/login", "", map[string]string{
		"email": "a@b.c", "password": "bad",
	})
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("bad credentials: want 401, got %d", rec.Code)
	}

	h = newTestServer(&fakeAuth{loginErr: errs.ErrRateLimited}, nil, nil)
	rec = doJSON(t, h, http.MethodPost, "/auth/login", "", map[string]string{
		"email": "a@b.c", "password": "pw",
	})
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("rate limited: want 429, got %d", rec.Code)
	}
}

func TestCreateNote(t *testing.T) {
	t.Parallel()
	notes := &fakeNotes{}
	h := newTestServer(nil, notes, nil)
	uid := bson.NewObjectID()

	rec := doJSON(t, h, http.MethodPost, "/notes", signToken(t, uid), map[string]any{
		"title": "groceries", "content": "milk", "tags": []string{"home"},
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("want 201, got %d (%s)", rec.Code, rec.Body.String())
	}
	if notes.lastUser != uid {
		t.Fatalf("owner id from token not forwarded")
	}

	rec = doJSON(t, h, http.MethodPost, "/notes", signToken(t, uid), map[string]any{
		"content": "no title",
	})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("missing title: want 400, got %d", rec.Code)
	}
}

func TestListNotes_QueryParams(t *testing.T) {
	t.Parallel()
	notes := &fakeNotes{}
	h := newTestServer(nil, notes, nil)

	rec := doJSON(t, h, http.MethodGet, "/notes?search=milk&sort=az&locked=true", signToken(t, bson.NewObjectID()), nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("want 200, got %d", rec.Code)
	}
	if notes.lastQuery.Search != "milk" || notes.lastQuery.Sort != "az" || !notes.lastQuery.Locked {
		t.Fatalf("query params not forwarded: %+v", notes.lastQuery)
	}
}

func TestUpdateNote(t *testing.T) {
	t.Parallel()
	uid := bson.NewObjectID()

	notes := &fakeNotes{}
	h := newTestServer(nil, notes, nil)
	rec := doJSON(t, h, http.MethodPut, "/notes/"+bson.NewObjectID().Hex(), signToken(t, uid), map[string]any{
		"title": "renamed",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("want 200, got %d (%s)", rec.Code, rec.Body.String())
	}
	if notes.lastPatch.Title == nil || *notes.lastPatch.Title != "renamed" {
		t.Fatalf("sparse patch lost the title: %+v", notes.lastPatch)
	}
	if notes.lastPatch.Content != nil {
		t.Fatalf("absent fields must stay nil in the patch")
	}

	h = newTestServer(nil, &fakeNotes{updateErr: errs.ErrNotFound}, nil)
	rec = doJSON(t, h, http.MethodPut, "/notes/"+bson.NewObjectID().Hex(), signToken(t, uid), map[string]any{})
	if rec.Code != http.StatusNotFound {
		t.Fatalf("missing note: want 404, got %d", rec.Code)
	}

	rec = doJSON(t, h, http.MethodPut, "/notes/not-an-id", signToken(t, uid), map[string]any{})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("malformed id: want 400, got %d", rec.Code)
	}
}

func TestNoteVersionsAndSearch(t *testing.T) {
	t.Parallel()
	h := newTestServer(nil, &fakeNotes{}, nil)
	token := signToken(t, bson.NewObjectID())

	rec := doJSON(t, h, http.MethodGet, "/notes/"+bson.NewObjectID().Hex()+"/versions", token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("versions: want 200, got %d", rec.Code)
	}
	var versions []model.NoteVersion
	if err := json.Unmarshal(rec.Body.Bytes(), &versions); err != nil || len(versions) != 2 {
		t.Fatalf("versions body: %s (%v)", rec.Body.String(), err)
	}

	rec = doJSON(t, h, http.MethodGet, "/notes/search", token, nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("search without q: want 400, got %d", rec.Code)
	}
	rec = doJSON(t, h, http.MethodGet, "/notes/search?q=milk", token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("search: want 200, got %d", rec.Code)
	}
}

func TestCreateTask(t *testing.T) {
	t.Parallel()
	tasks := &fakeTasks{}
	h := newTestServer(nil, nil, tasks)
	token := signToken(t, bson.NewObjectID())

	rec := doJSON(t, h, http.MethodPost, "/tasks", token, map[string]any{"title": "ship it"})
	if rec.Code != http.StatusCreated {
		t.Fatalf("want 201, got %d (%s)", rec.Code, rec.Body.String())
	}
	if tasks.lastDraft.Priority != 2 {
		t.Fatalf("omitted priority must default to 2, got %d", tasks.lastDraft.Priority)
	}

	rec = doJSON(t, h, http.MethodPost, "/tasks", token, map[string]any{"title": "t", "priority": 4})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("priority 4: want 400, got %d", rec.Code)
	}
}

func TestGetTask_NotFound(t *testing.T) {
	t.Parallel()
	h := newTestServer(nil, nil, &fakeTasks{getErr: errs.ErrNotFound})
	rec := doJSON(t, h, http.MethodGet, "/tasks/"+bson.NewObjectID().Hex(), signToken(t, bson.NewObjectID()), nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("want 404, got %d", rec.Code)
	}
}

func TestDeleteTask_Idempotence(t *testing.T) {
	t.Parallel()
	tasks := &fakeTasks{deleteErrs: []error{nil, errs.ErrNotFound}}
	h := newTestServer(nil, nil, tasks)
	token := signToken(t, bson.NewObjectID())
	target := "/tasks/" + bson.NewObjectID().Hex()

	if rec := doJSON(t, h, http.MethodDelete, target, token, nil); rec.Code != http.StatusOK {
		t.Fatalf("first delete: want 200, got %d", rec.Code)
	}
	if rec := doJSON(t, h, http.MethodDelete, target, token, nil); rec.Code != http.StatusNotFound {
		t.Fatalf("second delete: want 404, got %d", rec.Code)
	}
}

func TestCompleteTask(t *testing.T) {
	t.Parallel()
	tasks := &fakeTasks{}
	h := newTestServer(nil, nil, tasks)
	token := signToken(t, bson.NewObjectID())
	target := "/tasks/" + bson.NewObjectID().Hex() + "/complete"

	rec := doJSON(t, h, http.MethodPatch, target+"?completed=true", token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("want 200, got %d", rec.Code)
	}
	if tasks.completedIn == nil || !*tasks.completedIn {
		t.Fatalf("completed=true not forwarded")
	}

	rec = doJSON(t, h, http.MethodPatch, target, token, nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("missing completed param: want 400, got %d", rec.Code)
	}
}

func TestListTasks_CompletedFilter(t *testing.T) {
	t.Parallel()
	tasks := &fakeTasks{}
	h := newTestServer(nil, nil, tasks)
	token := signToken(t, bson.NewObjectID())

	rec := doJSON(t, h, http.MethodGet, "/tasks?completed=false&sort=priority", token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("want 200, got %d", rec.Code)
	}
	if tasks.lastQuery.Completed == nil || *tasks.lastQuery.Completed {
		t.Fatalf("completed filter not forwarded: %+v", tasks.lastQuery)
	}
	if tasks.lastQuery.Sort != "priority" {
		t.Fatalf("sort not forwarded")
	}

	rec = doJSON(t, h, http.MethodGet, "/tasks?completed=maybe", token, nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("bad completed: want 400, got %d", rec.Code)
	}
}

func TestSummarize(t *testing.T) {
	t.Parallel()
	h := newTestServer(nil, nil, nil)
	token := signToken(t, bson.NewObjectID())

	rec := doJSON(t, h, http.MethodPost, "/ai/summarize", token, map[string]string{"text": "short note"})
	if rec.Code != http.StatusOK {
		t.Fatalf("want 200, got %d", rec.Code)
	}
	var sr summarizeResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &sr); err != nil || sr.Summary != "short note" {
		t.Fatalf("summary body: %s (%v)", rec.Body.String(), err)
	}

	rec = doJSON(t, h, http.MethodPost, "/ai/summarize", "", map[string]string{"text": "x"})
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("summarize requires auth: want 401, got %d", rec.Code)
	}
}
