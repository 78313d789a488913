// Package source fetches the dataset text from a URL or a local file and
// parses it. One load runs at a time; a second trigger while loading is
// rejected.
package source

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"path"
	"path/filepath"
	"strings"
	"sync/atomic"
	"time"

	"latentmap/internal/points"
)

var (
	// ErrFetch indicates the dataset could not be retrieved.
	ErrFetch = errors.New("fetch failed")
	// ErrLoadInProgress is returned when a load is triggered while another
	// one is still running.
	ErrLoadInProgress = errors.New("load already in progress")
)

// FetchError names the location that could not be loaded.
type FetchError struct {
	Location   string
	StatusCode int
	Err        error
}

func (e *FetchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("could not load %s: HTTP %d", e.Location, e.StatusCode)
	}
	return fmt.Sprintf("could not load %s: %v", e.Location, e.Err)
}

func (e *FetchError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrFetch}
	}
	return []error{ErrFetch, e.Err}
}

// IsRemote reports whether location is an http(s) URL.
func IsRemote(location string) bool {
	u, err := url.Parse(location)
	return err == nil && (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

// Fetch performs a GET against location and returns the body text.
func Fetch(ctx context.Context, client *http.Client, location string) (string, error) {
	if client == nil {
		client = http.DefaultClient
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, location, nil)
	if err != nil {
		return "", &FetchError{Location: location, Err: err}
	}
	resp, err := client.Do(req)
	if err != nil {
		return "", &FetchError{Location: location, Err: err}
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		io.Copy(io.Discard, resp.Body)
		return "", &FetchError{Location: location, StatusCode: resp.StatusCode}
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &FetchError{Location: location, Err: err}
	}
	return string(body), nil
}

// DatasetName derives the export base name from a location:
// "http://host/data/latent.csv" and "data/latent.csv" both give "latent".
func DatasetName(location string) string {
	base := filepath.Base(location)
	if IsRemote(location) {
		if u, err := url.Parse(location); err == nil {
			base = path.Base(u.Path)
		}
	}
	base = strings.TrimSuffix(base, path.Ext(base))
	if base == "" || base == "." || base == "/" {
		return "dataset"
	}
	return base
}

// Result is the outcome of one successful load.
type Result struct {
	Location string
	Name     string
	Data     points.Dataset
}

// Loader loads one location, serializing loads through a loading flag.
type Loader struct {
	Location string
	Client   *http.Client
	Timeout  time.Duration

	loading atomic.Bool
}

func NewLoader(location string, timeout time.Duration) *Loader {
	return &Loader{
		Location: location,
		Client:   &http.Client{},
		Timeout:  timeout,
	}
}

// Loading reports whether a load is running.
func (l *Loader) Loading() bool { return l.loading.Load() }

// Load fetches and parses the configured location. It never retries.
func (l *Loader) Load(ctx context.Context) (Result, error) {
	return l.LoadFrom(ctx, l.Location)
}

// LoadFrom loads another location through the same loading flag.
func (l *Loader) LoadFrom(ctx context.Context, location string) (Result, error) {
	if !l.loading.CompareAndSwap(false, true) {
		return Result{}, ErrLoadInProgress
	}
	defer l.loading.Store(false)
	return l.load(ctx, location)
}

// LoadText parses text that did not come from the configured location,
// such as a pasted table. It shares the loading flag with Load.
func (l *Loader) LoadText(name, text string) (Result, error) {
	if !l.loading.CompareAndSwap(false, true) {
		return Result{}, ErrLoadInProgress
	}
	defer l.loading.Store(false)
	data, err := points.Parse(text)
	if err != nil {
		return Result{}, err
	}
	return Result{Location: name, Name: name, Data: data}, nil
}

func (l *Loader) load(ctx context.Context, location string) (Result, error) {
	if location == "" {
		return Result{}, &FetchError{Location: "<unset>", Err: errors.New("no source location configured")}
	}
	if l.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, l.Timeout)
		defer cancel()
	}
	start := time.Now()
	var (
		data points.Dataset
		err  error
	)
	if IsRemote(location) {
		var text string
		text, err = Fetch(ctx, l.Client, location)
		if err == nil {
			data, err = points.Parse(text)
		}
	} else {
		data, err = points.LoadFile(location)
		if err != nil && !errors.Is(err, points.ErrSchema) {
			err = &FetchError{Location: location, Err: err}
		}
	}
	if err != nil {
		log.Printf("source: load %s failed: %v", location, err)
		return Result{}, err
	}
	log.Printf("source: loaded %d records from %s in %s", len(data), location, time.Since(start))
	return Result{Location: location, Name: DatasetName(location), Data: data}, nil
}
