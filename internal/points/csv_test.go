package points

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestParseExample(t *testing.T) {
	t.Parallel()

	in := "id,latentx1,latentx2,feasible\n1,0.5,0.5,true\n2,abc,1.0,false\n3,2.0,2.0,1"
	got, err := Parse(in)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	want := Dataset{
		{ID: "1", X: 0.5, Y: 0.5, Feasible: true},
		{ID: "3", X: 2, Y: 2, Feasible: true},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Parse() = %+v, want %+v", got, want)
	}
}

func TestParseSchemaError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
	}{
		{name: "empty input", in: ""},
		{name: "blank lines only", in: "\n\r\n\n"},
		{name: "missing latentx2", in: "id,latentx1,feasible\n1,2,true"},
		{name: "missing both", in: "id,x,y\n1,2,3"},
		{name: "similar names", in: "latentx1_a,latentx2_b\n1,2"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.in)
			if !errors.Is(err, ErrSchema) {
				t.Fatalf("Parse() error = %v, want ErrSchema", err)
			}
			var se *SchemaError
			if !errors.As(err, &se) || len(se.Missing) == 0 {
				t.Fatalf("Parse() error = %#v, want *SchemaError listing missing columns", err)
			}
		})
	}
}

func TestParseHeaderCaseInsensitive(t *testing.T) {
	t.Parallel()

	got, err := Parse("LatentX1,LATENTX2,Design_Var_1\n1,2,a")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	want := Dataset{{ID: "0", X: 1, Y: 2, Attr1: "a"}}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Parse() = %+v, want %+v", got, want)
	}
}

func TestParseDelimiters(t *testing.T) {
	t.Parallel()

	want := Dataset{
		{ID: "a", X: 1, Y: 2, Attr1: "p", Attr2: "q", Feasible: true},
		{ID: "b", X: -3.5, Y: 4e2, Attr1: "r", Attr2: "s"},
	}
	tests := []struct {
		name string
		in   string
	}{
		{
			name: "comma",
			in:   "id,latentx1,latentx2,design_var_1,design_var_2,feasible\na,1,2,p,q,TRUE\nb,-3.5,4e2,r,s,false\n",
		},
		{
			name: "semicolon",
			in:   "id;latentx1;latentx2;design_var_1;design_var_2;feasible\na;1;2;p;q;True\nb;-3.5;4e2;r;s;0",
		},
		{
			name: "tab beats semicolon",
			in:   "id\tlatentx1\tlatentx2\tdesign_var_1\tdesign_var_2\tfeasible\na\t1\t2\tp\tq\t1\nb\t-3.5\t4e2\tr\ts\tno;thanks",
		},
		{
			name: "crlf and padding",
			in:   "id , latentx1 , latentx2 , design_var_1 , design_var_2 , feasible\r\n a , 1 , 2 , p , q , true \r\n\r\nb,-3.5,4e2,r,s,\r\n",
		},
		{
			name: "bare carriage returns",
			in:   "id,latentx1,latentx2,design_var_1,design_var_2,feasible\ra,1,2,p,q,true\rb,-3.5,4e2,r,s,false",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.in)
			if err != nil {
				t.Fatalf("Parse() error = %v", err)
			}
			if !reflect.DeepEqual(got, want) {
				t.Fatalf("Parse() = %+v, want %+v", got, want)
			}
		})
	}
}

func TestParseSkipsNonFiniteRows(t *testing.T) {
	t.Parallel()

	in := "latentx1,latentx2\n" +
		"1,1\n" +
		"NaN,2\n" +
		"3,Inf\n" +
		"-inf,4\n" +
		",5\n" +
		"6\n" +
		"1.5abc,7\n" +
		"8,8\n"
	got, err := Parse(in)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	want := Dataset{
		{ID: "0", X: 1, Y: 1},
		{ID: "7", X: 8, Y: 8},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Parse() = %+v, want %+v", got, want)
	}
}

func TestParseIDDefaults(t *testing.T) {
	t.Parallel()

	got, err := Parse("id,latentx1,latentx2\nfirst,0,0\n,1,1\n\nthird,2,2")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	ids := make([]string, len(got))
	for i, r := range got {
		ids[i] = r.ID
	}
	if want := []string{"first", "1", "third"}; !reflect.DeepEqual(ids, want) {
		t.Fatalf("ids = %v, want %v", ids, want)
	}
}

func TestParseIsPure(t *testing.T) {
	t.Parallel()

	in := "id;latentx1;latentx2;feasible\n1;0;0;true\n2;x;0;true\n3;1;1;false"
	a, errA := Parse(in)
	b, errB := Parse(in)
	if errA != nil || errB != nil {
		t.Fatalf("Parse() errors = %v, %v", errA, errB)
	}
	if !reflect.DeepEqual(a, b) {
		t.Fatalf("Parse() not repeatable: %+v vs %+v", a, b)
	}
}

func TestMatchFeasible(t *testing.T) {
	t.Parallel()

	tests := []struct {
		cell string
		want bool
	}{
		{"true", true},
		{"TRUE", true},
		{"trueish", true},
		{"1", true},
		{"21", true},
		{"10", false},
		{"1.0", false},
		{"false", false},
		{"yes", false},
		{"", false},
		{" true", false},
	}
	for _, tt := range tests {
		if got := MatchFeasible(tt.cell); got != tt.want {
			t.Errorf("MatchFeasible(%q) = %v, want %v", tt.cell, got, tt.want)
		}
	}
}

func TestWriteCSVRoundTrip(t *testing.T) {
	t.Parallel()

	data := Dataset{
		{ID: "p-1", X: 0.1 + 0.2, Y: -1e-12, Attr1: "a, with comma", Attr2: `say "hi"`, Feasible: true},
		{ID: "p-2", X: 12345.678, Y: 3, Attr1: "", Attr2: "z", Feasible: false},
		{ID: "p-3", X: 1, Y: 2, Attr1: "a;b", Attr2: "c\td", Feasible: true},
	}
	var buf bytes.Buffer
	if err := data.WriteCSV(&buf); err != nil {
		t.Fatalf("WriteCSV() error = %v", err)
	}
	got, err := Parse(buf.String())
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if !reflect.DeepEqual(got, data) {
		t.Fatalf("round trip = %+v, want %+v", got, data)
	}
}

func TestDetectDelimiterUsesHeader(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		text string
		want []string
	}{
		{"semicolon in data", "id,latentx1,latentx2,design_var_1\n1,0,0,a;b\n", []string{"a;b"}},
		{"tab in data", "id,latentx1,latentx2,design_var_1\n1,0,0,a\tb\n", []string{"a\tb"}},
		{"tab header wins", "id\tlatentx1\tlatentx2\tdesign_var_1\n1\t0\t0\ta;b,c\n", []string{"a;b,c"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.text)
			if err != nil {
				t.Fatalf("Parse() error = %v", err)
			}
			var attrs []string
			for _, r := range got {
				attrs = append(attrs, r.Attr1)
			}
			if !reflect.DeepEqual(attrs, tt.want) {
				t.Errorf("Attr1 = %q, want %q", attrs, tt.want)
			}
		})
	}
}

func TestLoadFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "latent.csv")
	if err := os.WriteFile(path, []byte("latentx1,latentx2\n1,2\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	got, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile() error = %v", err)
	}
	if len(got) != 1 || got[0].X != 1 || got[0].Y != 2 {
		t.Fatalf("LoadFile() = %+v", got)
	}
	if _, err := LoadFile(filepath.Join(t.TempDir(), "missing.csv")); err == nil {
		t.Fatal("LoadFile() on missing file: want error")
	}
}

func TestBoundsAndCounts(t *testing.T) {
	t.Parallel()

	if _, ok := (Dataset{}).Bounds(); ok {
		t.Fatal("Bounds() on empty dataset: want ok=false")
	}
	d := Dataset{{X: 1, Y: -2, Feasible: true}, {X: -4, Y: 5}, {X: 3, Y: 0, Feasible: true}}
	bb, ok := d.Bounds()
	if !ok {
		t.Fatal("Bounds() ok = false")
	}
	if want := (BBox{MinX: -4, MinY: -2, MaxX: 3, MaxY: 5}); bb != want {
		t.Fatalf("Bounds() = %+v, want %+v", bb, want)
	}
	if f, i := d.Counts(); f != 2 || i != 1 {
		t.Fatalf("Counts() = %d, %d, want 2, 1", f, i)
	}
}
