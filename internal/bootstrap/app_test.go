package bootstrap

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"careers-backend/internal/shared/auth"
	"careers-backend/internal/shared/config"
)

func testApp(t *testing.T) *App {
	t.Helper()
	app, err := Build(config.Config{
		Env:            "dev",
		LocalStoreDir:  t.TempDir(),
		ResumeMaxBytes: 5 << 20,
		DefaultLocale:  "en",
	})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	return app
}

func adminToken(t *testing.T) string {
	t.Helper()
	token, err := auth.SignJWT(auth.Claims{Sub: "usr_admin", Email: "admin@example.com", Name: "Admin"})
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return token
}

func doJSON(t *testing.T, app *App, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	app.Router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode response %q: %v", w.Body.String(), err)
	}
	return out
}

// seedJob walks the admin API end to end: position, job, questions, options,
// publish. Returns the job slug and the two option ids.
func seedJob(t *testing.T, app *App, token string, requiresResume bool) (string, string, string) {
	t.Helper()

	w := doJSON(t, app, http.MethodPost, "/api/v1/admin/positions", token, map[string]any{
		"title": "Engineering",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("create position: %d %s", w.Code, w.Body.String())
	}
	positionID := decodeBody(t, w)["id"].(string)

	w = doJSON(t, app, http.MethodPost, "/api/v1/admin/jobs", token, map[string]any{
		"positionId":     positionID,
		"slug":           "backend-engineer",
		"title":          "Backend Engineer",
		"requiresResume": requiresResume,
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("create job: %d %s", w.Code, w.Body.String())
	}
	jobID := decodeBody(t, w)["id"].(string)

	w = doJSON(t, app, http.MethodPost, "/api/v1/admin/jobs/"+jobID+"/questions", token, map[string]any{
		"label":      "Full name",
		"type":       "SHORT_TEXT",
		"isRequired": true,
		"order":      0,
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("create question: %d %s", w.Code, w.Body.String())
	}

	w = doJSON(t, app, http.MethodPost, "/api/v1/admin/jobs/"+jobID+"/questions", token, map[string]any{
		"label": "Preferred stack",
		"type":  "MULTIPLE_CHOICE",
		"order": 1,
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("create choice question: %d %s", w.Code, w.Body.String())
	}
	choiceID := decodeBody(t, w)["id"].(string)

	var optionIDs []string
	for i, label := range []string{"Go", "Rust"} {
		w = doJSON(t, app, http.MethodPost, "/api/v1/admin/questions/"+choiceID+"/options", token, map[string]any{
			"label":      label,
			"orderIndex": i,
		})
		if w.Code != http.StatusCreated {
			t.Fatalf("create option %s: %d %s", label, w.Code, w.Body.String())
		}
		optionIDs = append(optionIDs, decodeBody(t, w)["id"].(string))
	}

	w = doJSON(t, app, http.MethodPatch, "/api/v1/admin/jobs/"+jobID+"/status", token, map[string]any{
		"isActive": true,
	})
	if w.Code != http.StatusNoContent {
		t.Fatalf("publish job: %d %s", w.Code, w.Body.String())
	}

	return "backend-engineer", optionIDs[0], optionIDs[1]
}

func TestAdminRoutesRequireAuth(t *testing.T) {
	app := testApp(t)
	w := doJSON(t, app, http.MethodGet, "/api/v1/admin/positions", "", nil)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", w.Code)
	}
}

func TestSubmitJSONEndToEnd(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	app := testApp(t)
	token := adminToken(t)
	slug, opt1, opt2 := seedJob(t, app, token, false)

	// The published job is publicly visible with its schema.
	w := doJSON(t, app, http.MethodGet, "/api/v1/jobs/"+slug, "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("public job: %d %s", w.Code, w.Body.String())
	}
	body := decodeBody(t, w)
	if body["success"] != true {
		t.Fatalf("public job envelope: %s", w.Body.String())
	}

	// Find the required question id from the public schema.
	data := body["data"].(map[string]any)
	questions := data["questions"].([]any)
	var nameQID, stackQID string
	for _, raw := range questions {
		q := raw.(map[string]any)
		switch q["label"] {
		case "Full name":
			nameQID = q["id"].(string)
		case "Preferred stack":
			stackQID = q["id"].(string)
		}
	}
	if nameQID == "" || stackQID == "" {
		t.Fatalf("question ids not found in %s", w.Body.String())
	}

	w = doJSON(t, app, http.MethodPost, "/api/v1/applications/submit/"+slug, "", map[string]any{
		"answers": map[string]any{
			nameQID:  "Jane Doe",
			stackQID: []string{opt1, opt2},
		},
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("submit: %d %s", w.Code, w.Body.String())
	}
	body = decodeBody(t, w)
	if body["success"] != true {
		t.Fatalf("submit envelope: %s", w.Body.String())
	}
	answers := body["data"].(map[string]any)["answers"].([]any)
	if len(answers) != 3 {
		t.Fatalf("answers = %d, want 3", len(answers))
	}
}

func TestSubmitMissingRequiredQuestionLocalized(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	app := testApp(t)
	token := adminToken(t)
	slug, opt1, _ := seedJob(t, app, token, false)

	w := doJSON(t, app, http.MethodGet, "/api/v1/jobs/"+slug, "", nil)
	data := decodeBody(t, w)["data"].(map[string]any)
	var stackQID string
	for _, raw := range data["questions"].([]any) {
		q := raw.(map[string]any)
		if q["label"] == "Preferred stack" {
			stackQID = q["id"].(string)
		}
	}

	payload, _ := json.Marshal(map[string]any{
		"answers": map[string]any{stackQID: []string{opt1}},
	})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/applications/submit/"+slug, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept-Language", "es")
	rec := httptest.NewRecorder()
	app.Router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400: %s", rec.Code, rec.Body.String())
	}
	body := decodeBody(t, rec)
	if body["success"] != false || body["error"] != "required_question_missing" {
		t.Fatalf("envelope: %s", rec.Body.String())
	}
	msg := body["message"].(string)
	if !strings.Contains(msg, "Full name") || !strings.Contains(msg, "obligatoria") {
		t.Fatalf("message = %q, want Spanish text citing the label", msg)
	}
}

func TestSubmitMultipartWithResume(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	app := testApp(t)
	token := adminToken(t)
	slug, _, _ := seedJob(t, app, token, true)

	w := doJSON(t, app, http.MethodGet, "/api/v1/jobs/"+slug, "", nil)
	data := decodeBody(t, w)["data"].(map[string]any)
	var nameQID string
	for _, raw := range data["questions"].([]any) {
		q := raw.(map[string]any)
		if q["label"] == "Full name" {
			nameQID = q["id"].(string)
		}
	}

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	answers, _ := json.Marshal(map[string]any{nameQID: "Jane Doe"})
	if err := mw.WriteField("answers", string(answers)); err != nil {
		t.Fatalf("write field: %v", err)
	}
	fw, err := mw.CreateFormFile("resume", "resume.pdf")
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	fmt.Fprint(fw, "%PDF-1.4 body")
	mw.Close()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/applications/submit/"+slug, &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rec := httptest.NewRecorder()
	app.Router.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}
	resumeURL, _ := decodeBody(t, rec)["data"].(map[string]any)["resumeUrl"].(string)
	if !strings.HasSuffix(resumeURL, ".pdf") {
		t.Fatalf("resumeUrl = %q, want .pdf suffix", resumeURL)
	}

	// Missing file on a resume-required job is rejected before anything
	// is stored.
	w = doJSON(t, app, http.MethodPost, "/api/v1/applications/submit/"+slug, "", map[string]any{
		"answers": map[string]any{nameQID: "Jane Doe"},
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("no-resume status = %d, want 400: %s", w.Code, w.Body.String())
	}
	if decodeBody(t, w)["error"] != "resume_required" {
		t.Fatalf("no-resume envelope: %s", w.Body.String())
	}
}

func TestSubmitUnknownAndUnpublishedJobLookAlike(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	app := testApp(t)
	token := adminToken(t)
	slug, _, _ := seedJob(t, app, token, false)

	// Unpublish the seeded job.
	w := doJSON(t, app, http.MethodGet, "/api/v1/admin/jobs", token, nil)
	var jobID string
	var listed []map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &listed); err != nil {
		t.Fatalf("decode job list: %v", err)
	}
	jobID = listed[0]["id"].(string)
	doJSON(t, app, http.MethodPatch, "/api/v1/admin/jobs/"+jobID+"/status", token, map[string]any{"isActive": false})

	inactive := doJSON(t, app, http.MethodPost, "/api/v1/applications/submit/"+slug, "", map[string]any{
		"answers": map[string]any{},
	})
	missing := doJSON(t, app, http.MethodPost, "/api/v1/applications/submit/no-such-job", "", map[string]any{
		"answers": map[string]any{},
	})

	if inactive.Code != http.StatusNotFound || missing.Code != http.StatusNotFound {
		t.Fatalf("statuses = %d/%d, want 404/404", inactive.Code, missing.Code)
	}
	if inactive.Body.String() != missing.Body.String() {
		t.Fatalf("inactive and missing jobs are distinguishable:\n%s\n%s",
			inactive.Body.String(), missing.Body.String())
	}
}

func TestAdminApplicationReview(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	app := testApp(t)
	token := adminToken(t)
	slug, opt1, _ := seedJob(t, app, token, false)

	w := doJSON(t, app, http.MethodGet, "/api/v1/jobs/"+slug, "", nil)
	data := decodeBody(t, w)["data"].(map[string]any)
	jobID := data["id"].(string)
	var nameQID, stackQID string
	for _, raw := range data["questions"].([]any) {
		q := raw.(map[string]any)
		switch q["label"] {
		case "Full name":
			nameQID = q["id"].(string)
		case "Preferred stack":
			stackQID = q["id"].(string)
		}
	}

	w = doJSON(t, app, http.MethodPost, "/api/v1/applications/submit/"+slug, "", map[string]any{
		"answers": map[string]any{nameQID: "Jane Doe", stackQID: []string{opt1}},
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("submit: %d %s", w.Code, w.Body.String())
	}
	appID := decodeBody(t, w)["data"].(map[string]any)["id"].(string)

	w = doJSON(t, app, http.MethodGet, "/api/v1/admin/jobs/"+jobID+"/applications", token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("list applications: %d %s", w.Code, w.Body.String())
	}
	var apps []map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &apps); err != nil {
		t.Fatalf("decode list: %v", err)
	}
	if len(apps) != 1 || apps[0]["id"] != appID {
		t.Fatalf("list = %s", w.Body.String())
	}

	w = doJSON(t, app, http.MethodGet, "/api/v1/admin/applications/"+appID, token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("get application: %d %s", w.Code, w.Body.String())
	}
	detail := decodeBody(t, w)
	answers := detail["answers"].([]any)
	if len(answers) != 2 {
		t.Fatalf("answers = %d, want 2", len(answers))
	}
	for _, raw := range answers {
		ans := raw.(map[string]any)
		if ans["questionLabel"] == "" {
			t.Errorf("answer missing question label: %v", ans)
		}
	}
}

func TestDeleteOptionRoute(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	app := testApp(t)
	token := adminToken(t)
	slug, opt1, opt2 := seedJob(t, app, token, false)

	w := doJSON(t, app, http.MethodGet, "/api/v1/jobs/"+slug, "", nil)
	data := decodeBody(t, w)["data"].(map[string]any)
	var nameQID, stackQID string
	for _, raw := range data["questions"].([]any) {
		q := raw.(map[string]any)
		switch q["label"] {
		case "Full name":
			nameQID = q["id"].(string)
		case "Preferred stack":
			stackQID = q["id"].(string)
		}
	}

	w = doJSON(t, app, http.MethodPost, "/api/v1/applications/submit/"+slug, "", map[string]any{
		"answers": map[string]any{nameQID: "Jane Doe", stackQID: []string{opt1}},
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("submit: %d %s", w.Code, w.Body.String())
	}

	// The chosen option is now referenced by a submitted answer.
	w = doJSON(t, app, http.MethodDelete, "/api/v1/admin/options/"+opt1, token, nil)
	if w.Code != http.StatusConflict {
		t.Fatalf("delete referenced option: %d, want 409: %s", w.Code, w.Body.String())
	}

	w = doJSON(t, app, http.MethodDelete, "/api/v1/admin/options/"+opt2, token, nil)
	if w.Code != http.StatusNoContent {
		t.Fatalf("delete unreferenced option: %d, want 204: %s", w.Code, w.Body.String())
	}
}
