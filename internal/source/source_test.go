package source

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"latentmap/internal/points"
)

const csvBody = "id,latentx1,latentx2,feasible\n1,0.5,0.5,true\n2,abc,1.0,false\n3,2.0,2.0,1\n"

func TestFetch(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "method", http.StatusMethodNotAllowed)
			return
		}
		switch r.URL.Path {
		case "/data/latent.csv":
			w.Header().Set("Content-Type", "text/csv")
			w.Write([]byte(csvBody))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	body, err := Fetch(context.Background(), srv.Client(), srv.URL+"/data/latent.csv")
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
	if body != csvBody {
		t.Fatalf("Fetch() body = %q", body)
	}

	missing := srv.URL + "/data/missing.csv"
	_, err = Fetch(context.Background(), srv.Client(), missing)
	var fe *FetchError
	if !errors.As(err, &fe) {
		t.Fatalf("Fetch() error = %v, want *FetchError", err)
	}
	if fe.StatusCode != http.StatusNotFound || !errors.Is(err, ErrFetch) {
		t.Fatalf("FetchError = %+v", fe)
	}
	if !strings.Contains(err.Error(), missing) {
		t.Fatalf("error %q should name %q", err, missing)
	}
}

func TestFetchTransportError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.NotFoundHandler())
	location := srv.URL + "/gone.csv"
	srv.Close()

	_, err := Fetch(context.Background(), nil, location)
	if !errors.Is(err, ErrFetch) {
		t.Fatalf("Fetch() error = %v, want ErrFetch", err)
	}
}

func TestLoaderRemote(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(csvBody))
	}))
	defer srv.Close()

	l := NewLoader(srv.URL+"/exports/latent_points.csv", time.Second)
	res, err := l.Load(context.Background())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(res.Data) != 2 || res.Name != "latent_points" {
		t.Fatalf("Load() = %d records, name %q", len(res.Data), res.Name)
	}
	if l.Loading() {
		t.Fatal("Loading() true after Load returned")
	}
}

func TestLoaderRejectsConcurrentLoad(t *testing.T) {
	t.Parallel()

	release := make(chan struct{})
	started := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		close(started)
		<-release
		w.Write([]byte(csvBody))
	}))
	defer srv.Close()

	l := NewLoader(srv.URL+"/latent.csv", 0)
	done := make(chan error, 1)
	go func() {
		_, err := l.Load(context.Background())
		done <- err
	}()
	<-started
	if !l.Loading() {
		t.Fatal("Loading() = false during fetch")
	}
	if _, err := l.Load(context.Background()); !errors.Is(err, ErrLoadInProgress) {
		t.Fatalf("second Load() error = %v, want ErrLoadInProgress", err)
	}
	if _, err := l.LoadText("paste", csvBody); !errors.Is(err, ErrLoadInProgress) {
		t.Fatalf("LoadText() during load error = %v, want ErrLoadInProgress", err)
	}
	close(release)
	if err := <-done; err != nil {
		t.Fatalf("first Load() error = %v", err)
	}
}

func TestLoaderLocalFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	good := filepath.Join(dir, "points.tsv")
	if err := os.WriteFile(good, []byte("latentx1\tlatentx2\n1\t2\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	bad := filepath.Join(dir, "bad.csv")
	if err := os.WriteFile(bad, []byte("a,b\n1,2\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	l := NewLoader(good, 0)
	res, err := l.Load(context.Background())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(res.Data) != 1 || res.Name != "points" {
		t.Fatalf("Load() = %+v", res)
	}

	if _, err := l.LoadFrom(context.Background(), bad); !errors.Is(err, points.ErrSchema) {
		t.Fatalf("LoadFrom(bad) error = %v, want ErrSchema", err)
	}
	_, err = l.LoadFrom(context.Background(), filepath.Join(dir, "nope.csv"))
	if !errors.Is(err, ErrFetch) || !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("LoadFrom(missing) error = %v, want ErrFetch wrapping ErrNotExist", err)
	}
	if _, err := NewLoader("", 0).Load(context.Background()); !errors.Is(err, ErrFetch) {
		t.Fatalf("Load() with no location error = %v, want ErrFetch", err)
	}
}

func TestLoadText(t *testing.T) {
	t.Parallel()

	l := NewLoader("", 0)
	res, err := l.LoadText("pasted", csvBody)
	if err != nil {
		t.Fatalf("LoadText() error = %v", err)
	}
	if res.Name != "pasted" || len(res.Data) != 2 {
		t.Fatalf("LoadText() = %+v", res)
	}
}

func TestDatasetName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want string
	}{
		{"http://localhost:8080/data/latent.csv", "latent"},
		{"https://example.test/latent_points.tsv?rev=2", "latent_points"},
		{"data/latent.csv", "latent"},
		{"/abs/path/run-7.txt", "run-7"},
		{"http://host/", "dataset"},
		{"", "dataset"},
	}
	for _, tt := range tests {
		if got := DatasetName(tt.in); got != tt.want {
			t.Errorf("DatasetName(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
