package assets

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestCloudinaryUpload(t *testing.T) {
	var gotPath, gotPreset string
	var gotFile []byte
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Errorf("ParseMultipartForm: %v", err)
		}
		gotPreset = r.FormValue("upload_preset")
		if f, _, err := r.FormFile("file"); err == nil {
			gotFile, _ = io.ReadAll(f)
			f.Close()
		} else {
			t.Errorf("FormFile: %v", err)
		}
		w.Write([]byte(`{"secure_url":"https://res.cloudinary.com/demo/image/upload/oak.jpg"}`))
	}))
	defer srv.Close()

	up, err := NewCloudinary("demo", "unsigned-preset")
	if err != nil {
		t.Fatalf("NewCloudinary: %v", err)
	}
	up.BaseURL = srv.URL

	url, err := up.Upload(context.Background(), File{
		Name:        "oak.jpg",
		ContentType: "image/jpeg",
		Data:        []byte("jpeg-bytes"),
	})
	if err != nil {
		t.Fatalf("Upload: %v", err)
	}
	if url != "https://res.cloudinary.com/demo/image/upload/oak.jpg" {
		t.Errorf("url = %q", url)
	}
	if gotPath != "/demo/image/upload" {
		t.Errorf("path = %q, want kind-specific endpoint", gotPath)
	}
	if gotPreset != "unsigned-preset" {
		t.Errorf("upload_preset = %q", gotPreset)
	}
	if string(gotFile) != "jpeg-bytes" {
		t.Errorf("file body = %q", gotFile)
	}
}

func TestCloudinaryVideoEndpoint(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Write([]byte(`{"secure_url":"https://res.cloudinary.com/demo/video/upload/clip.mp4"}`))
	}))
	defer srv.Close()

	up, _ := NewCloudinary("demo", "preset")
	up.BaseURL = srv.URL
	if _, err := up.Upload(context.Background(), File{Name: "clip.mp4", ContentType: "video/mp4", Data: []byte("x")}); err != nil {
		t.Fatalf("Upload: %v", err)
	}
	if gotPath != "/demo/video/upload" {
		t.Errorf("path = %q, want video endpoint", gotPath)
	}
}

func TestCloudinaryErrorBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":{"message":"Upload preset not found"}}`))
	}))
	defer srv.Close()

	up, _ := NewCloudinary("demo", "preset")
	up.BaseURL = srv.URL
	_, err := up.Upload(context.Background(), File{Name: "oak.jpg", ContentType: "image/jpeg", Data: []byte("x")})
	if err == nil {
		t.Fatal("expected error for non-2xx response")
	}
	if !strings.Contains(err.Error(), "Upload preset not found") {
		t.Errorf("err = %v, want provider message surfaced", err)
	}
}

func TestCloudinaryMissingSecureURL(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	up, _ := NewCloudinary("demo", "preset")
	up.BaseURL = srv.URL
	if _, err := up.Upload(context.Background(), File{Name: "oak.jpg", ContentType: "image/jpeg", Data: []byte("x")}); err == nil {
		t.Fatal("expected error when response lacks secure_url")
	}
}

func TestNewCloudinaryValidation(t *testing.T) {
	if _, err := NewCloudinary("", "preset"); err == nil {
		t.Error("missing cloud name should be rejected")
	}
	if _, err := NewCloudinary("demo", ""); err == nil {
		t.Error("missing preset should be rejected")
	}
}

func TestFileKind(t *testing.T) {
	tests := []struct {
		contentType string
		want        string
	}{
		{contentType: "image/jpeg", want: KindImage},
		{contentType: "image/png", want: KindImage},
		{contentType: "video/mp4", want: KindVideo},
		{contentType: "video/webm", want: KindVideo},
		{contentType: "application/pdf", want: KindImage},
		{contentType: "", want: KindImage},
	}
	for _, tc := range tests {
		f := File{ContentType: tc.contentType}
		if got := f.Kind(); got != tc.want {
			t.Errorf("Kind(%q) = %q, want %q", tc.contentType, got, tc.want)
		}
	}
}
