// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package cite

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pdiddy/citescholar/internal/scholar"
	"github.com/pdiddy/citescholar/internal/store"
	"github.com/pdiddy/citescholar/pkg/types"
)

// fakeProvider is a scripted Provider that records its calls.
type fakeProvider struct {
	pub        types.Publication
	lookupErr  error
	renderErr  error
	lookups    int
	renders    int
	lastStyle  types.Style
	lastLookup string
}

func (f *fakeProvider) Name() string { return "fake" }

func (f *fakeProvider) Lookup(ctx context.Context, title string, cfg types.LookupConfig) (types.Publication, error) {
	f.lookups++
	f.lastLookup = title
	if f.lookupErr != nil {
		return types.Publication{}, f.lookupErr
	}
	return f.pub, nil
}

func (f *fakeProvider) Render(ctx context.Context, pub types.Publication, style types.Style, cfg types.LookupConfig) (string, error) {
	f.renders++
	f.lastStyle = style
	if f.renderErr != nil {
		return "", f.renderErr
	}
	return pub.Renderings[style], nil
}

const testBibTeX = "@article{vaswani2017attention,\n title={Attention Is All You Need},\n year={2017}\n}"

func attentionProvider() *fakeProvider {
	return &fakeProvider{
		pub: types.Publication{
			Identifier: "1706.03762",
			Title:      "Attention Is All You Need",
			Authors:    []string{"Ashish Vaswani", "Noam Shazeer"},
			Venue:      "NeurIPS",
			Year:       2017,
			Source:     "fake",
			Renderings: map[types.Style]string{types.StyleBibTeX: testBibTeX},
		},
	}
}

func testDB(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "citations.db")
}

func rowCount(t *testing.T, dbPath string) int {
	t.Helper()
	s, err := store.Open(types.StoreConfig{Path: dbPath})
	if err != nil {
		t.Fatalf("opening store: %v", err)
	}
	defer s.Close()
	n, err := s.Count(context.Background())
	if err != nil {
		t.Fatalf("counting rows: %v", err)
	}
	return n
}

func TestRunPrintsProviderBibTeXExactly(t *testing.T) {
	p := attentionProvider()
	var out, msg bytes.Buffer

	opts := Options{Title: "Attention Is All You Need", DBPath: testDB(t)}
	if err := Run(context.Background(), p, opts, types.LookupConfig{}, &out, &msg); err != nil {
		t.Fatalf("Run: %v", err)
	}

	// The citation on stdout is the provider rendering plus a final newline.
	if got := out.String(); got != testBibTeX+"\n" {
		t.Errorf("stdout = %q, want provider bibtex", got)
	}
	if !strings.Contains(msg.String(), "Found: Attention Is All You Need") {
		t.Errorf("messages = %q, want record summary", msg.String())
	}
}

func TestRunDefaultsToBibTeX(t *testing.T) {
	p := attentionProvider()
	var out, msg bytes.Buffer

	opts := Options{Title: "attention", NoSave: true}
	if err := Run(context.Background(), p, opts, types.LookupConfig{}, &out, &msg); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if p.lastStyle != types.StyleBibTeX {
		t.Errorf("style = %q, want bibtex default", p.lastStyle)
	}
}

func TestRunSavesExactlyOneRow(t *testing.T) {
	p := attentionProvider()
	dbPath := testDB(t)
	var out, msg bytes.Buffer

	opts := Options{Title: "attention", DBPath: dbPath}
	if err := Run(context.Background(), p, opts, types.LookupConfig{}, &out, &msg); err != nil {
		t.Fatalf("Run: %v", err)
	}

	if n := rowCount(t, dbPath); n != 1 {
		t.Errorf("row count = %d, want 1", n)
	}
	if !strings.Contains(msg.String(), "Saved to "+dbPath) {
		t.Errorf("messages = %q, want save notice", msg.String())
	}
}

func TestRunDuplicateInvocationAddsNoRow(t *testing.T) {
	dbPath := testDB(t)

	for i := 0; i < 2; i++ {
		var out, msg bytes.Buffer
		opts := Options{Title: "attention", DBPath: dbPath}
		if err := Run(context.Background(), attentionProvider(), opts, types.LookupConfig{}, &out, &msg); err != nil {
			t.Fatalf("Run #%d: %v", i+1, err)
		}
		if i == 1 && !strings.Contains(msg.String(), "already saved") {
			t.Errorf("second run messages = %q, want already-saved notice", msg.String())
		}
	}

	if n := rowCount(t, dbPath); n != 1 {
		t.Errorf("row count = %d, want 1 after duplicate invocation", n)
	}
}

func TestRunNoSaveSkipsPersistence(t *testing.T) {
	p := attentionProvider()
	dbPath := testDB(t)
	var out, msg bytes.Buffer

	opts := Options{Title: "attention", NoSave: true, DBPath: dbPath}
	if err := Run(context.Background(), p, opts, types.LookupConfig{}, &out, &msg); err != nil {
		t.Fatalf("Run: %v", err)
	}

	if _, err := os.Stat(dbPath); !os.IsNotExist(err) {
		t.Error("database file should not be created under no-save")
	}
}

func TestRunEmptyTitleFailsBeforeLookup(t *testing.T) {
	p := attentionProvider()
	var out, msg bytes.Buffer

	for _, title := range []string{"", "   "} {
		err := Run(context.Background(), p, Options{Title: title}, types.LookupConfig{}, &out, &msg)
		if err == nil {
			t.Fatalf("expected error for title %q", title)
		}
		if !strings.Contains(err.Error(), "title is required") {
			t.Errorf("error = %q, want usage failure", err.Error())
		}
	}
	if p.lookups != 0 {
		t.Errorf("lookups = %d, want 0 for empty titles", p.lookups)
	}
}

func TestRunNotFoundNoPersistence(t *testing.T) {
	p := attentionProvider()
	p.lookupErr = scholar.ErrNotFound
	dbPath := testDB(t)
	var out, msg bytes.Buffer

	err := Run(context.Background(), p, Options{Title: "nothing", DBPath: dbPath}, types.LookupConfig{}, &out, &msg)
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "no publication matching") {
		t.Errorf("error = %q, want not-found message", err.Error())
	}
	if _, statErr := os.Stat(dbPath); !os.IsNotExist(statErr) {
		t.Error("database file should not be created on not-found")
	}
}

func TestRunUnsupportedStyleNoPersistence(t *testing.T) {
	p := attentionProvider()
	p.renderErr = &scholar.UnsupportedStyleError{
		Provider:  "fake",
		Style:     types.StyleAPA,
		Supported: []types.Style{types.StyleBibTeX},
	}
	dbPath := testDB(t)
	var out, msg bytes.Buffer

	err := Run(context.Background(), p, Options{Title: "attention", Style: types.StyleAPA, DBPath: dbPath}, types.LookupConfig{}, &out, &msg)

	var styleErr *scholar.UnsupportedStyleError
	if !errors.As(err, &styleErr) {
		t.Fatalf("err = %v, want *UnsupportedStyleError", err)
	}
	if _, statErr := os.Stat(dbPath); !os.IsNotExist(statErr) {
		t.Error("database file should not be created on unsupported style")
	}
}

func TestRunCSLStyleBypassesProviderRender(t *testing.T) {
	p := attentionProvider()
	var out, msg bytes.Buffer

	opts := Options{Title: "attention", Style: types.StyleCSL, NoSave: true}
	if err := Run(context.Background(), p, opts, types.LookupConfig{}, &out, &msg); err != nil {
		t.Fatalf("Run: %v", err)
	}

	if p.renders != 0 {
		t.Errorf("renders = %d, want 0 for csl output", p.renders)
	}
	if !strings.Contains(out.String(), "type: article") {
		t.Errorf("stdout = %q, want CSL-YAML", out.String())
	}
}

func TestSummary(t *testing.T) {
	tests := []struct {
		name string
		pub  types.Publication
		want string
	}{
		{
			"full record",
			types.Publication{Title: "T", Authors: []string{"A One", "B Two"}, Venue: "V", Year: 2020},
			"T - A One, B Two (V, 2020)",
		},
		{
			"many authors truncated",
			types.Publication{Title: "T", Authors: []string{"A", "B", "C", "D"}, Year: 2020},
			"T - A, B, C et al. (2020)",
		},
		{
			"title only",
			types.Publication{Title: "T"},
			"T",
		},
		{
			"venue without year",
			types.Publication{Title: "T", Venue: "V"},
			"T (V)",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Summary(tt.pub); got != tt.want {
				t.Errorf("Summary() = %q, want %q", got, tt.want)
			}
		})
	}
}
