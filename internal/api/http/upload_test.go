package http

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/gradeflow/gradeflow/internal/storage"
)

func multipartUpload(t *testing.T, kind, filename, body string) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	if err := mw.WriteField("kind", kind); err != nil {
		t.Fatal(err)
	}
	fw, err := mw.CreateFormFile("file", filename)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := io.WriteString(fw, body); err != nil {
		t.Fatal(err)
	}
	mw.Close()

	req := httptest.NewRequest("POST", "/sources", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func TestUploadRoster(t *testing.T) {
	dir := t.TempDir()
	bs, err := storage.NewFSStore(dir)
	if err != nil {
		t.Fatal(err)
	}
	h := UploadSourceHandler(bs)

	rr := httptest.NewRecorder()
	h(rr, multipartUpload(t, "roster", "anything.csv", "NetID,Email Address,Section\n"))
	if rr.Code != http.StatusOK {
		t.Fatalf("status %d: %s", rr.Code, rr.Body.String())
	}
	// Roster lands under its canonical name regardless of the upload name.
	b, err := os.ReadFile(filepath.Join(dir, "roster.csv"))
	if err != nil {
		t.Fatalf("roster not stored: %v", err)
	}
	if string(b) != "NetID,Email Address,Section\n" {
		t.Errorf("stored content: %q", b)
	}
}

func TestUploadQuizKeepsName(t *testing.T) {
	dir := t.TempDir()
	bs, _ := storage.NewFSStore(dir)
	h := UploadSourceHandler(bs)

	rr := httptest.NewRecorder()
	h(rr, multipartUpload(t, "quiz", "quiz_4_grades.csv", "Email,Grade\n"))
	if rr.Code != http.StatusOK {
		t.Fatalf("status %d: %s", rr.Code, rr.Body.String())
	}
	if _, err := os.Stat(filepath.Join(dir, "quiz_4_grades.csv")); err != nil {
		t.Errorf("quiz file not stored under its own name: %v", err)
	}

	// The name carries the quiz identity, so anything else is rejected.
	rr = httptest.NewRecorder()
	h(rr, multipartUpload(t, "quiz", "grades.csv", "Email,Grade\n"))
	if rr.Code != http.StatusBadRequest {
		t.Errorf("bad quiz name: status %d, want 400", rr.Code)
	}
}

func TestUploadUnknownKind(t *testing.T) {
	bs, _ := storage.NewFSStore(t.TempDir())
	rr := httptest.NewRecorder()
	UploadSourceHandler(bs)(rr, multipartUpload(t, "syllabus", "s.csv", "x\n"))
	if rr.Code != http.StatusBadRequest {
		t.Errorf("status %d, want 400", rr.Code)
	}
}

func TestListSources(t *testing.T) {
	bs, _ := storage.NewFSStore(t.TempDir())
	h := UploadSourceHandler(bs)

	rr := httptest.NewRecorder()
	h(rr, multipartUpload(t, "roster", "roster.csv", "NetID,Email Address,Section\n"))
	if rr.Code != http.StatusOK {
		t.Fatalf("upload: status %d", rr.Code)
	}
	rr = httptest.NewRecorder()
	h(rr, multipartUpload(t, "quiz", "quiz_1_grades.csv", "Email,Grade\n"))
	if rr.Code != http.StatusOK {
		t.Fatalf("upload: status %d", rr.Code)
	}

	rr = httptest.NewRecorder()
	ListSourcesHandler(bs)(rr, httptest.NewRequest("GET", "/sources", nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("list: status %d", rr.Code)
	}
	var resp map[string]any
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("bad json: %v", err)
	}
	if resp["roster.csv"] != true {
		t.Errorf("roster not reported: %v", resp)
	}
	if resp["hw_exam_grades.csv"] != false {
		t.Errorf("missing assessment should report false: %v", resp)
	}
	quizzes, _ := resp["quizzes"].([]any)
	if len(quizzes) != 1 || quizzes[0] != "quiz_1_grades.csv" {
		t.Errorf("quizzes = %v", resp["quizzes"])
	}
}
