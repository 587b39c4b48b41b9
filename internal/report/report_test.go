package report

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"photoconv/internal/pipeline"
)

func TestFromResult(t *testing.T) {
	res := pipeline.Result{
		Files: []pipeline.FileResult{
			{Source: "/in/a.png", Output: "/out/a.webp", Size: 1000, Hash: "abcd1234abcd1234"},
			{Source: "/in/bad.png", Err: errors.New("decode bad.png: boom")},
			{Source: "/in/c.png", Output: "/out/c.webp", Size: 500, Hash: "1111222233334444"},
		},
		Successes: 2,
		Failures:  1,
	}

	r := FromResult("webp", "/out", res)
	if r.Version != SupportedReportVersion {
		t.Errorf("version: got %d", r.Version)
	}
	if r.Totals.Succeeded != 2 || r.Totals.Failed != 1 {
		t.Errorf("totals: got %+v", r.Totals)
	}
	if r.Totals.OutputBytes != 1500 {
		t.Errorf("output bytes: got %d", r.Totals.OutputBytes)
	}
	if len(r.Files) != 3 {
		t.Fatalf("files: got %d", len(r.Files))
	}
	if r.Files[1].Error == "" || r.Files[1].Output != "" {
		t.Errorf("failed entry: got %+v", r.Files[1])
	}
	if r.Files[0].Hash != "abcd1234abcd1234" {
		t.Errorf("hash: got %q", r.Files[0].Hash)
	}
}

func TestWriteJSONRoundtrip(t *testing.T) {
	res := pipeline.Result{
		Files:     []pipeline.FileResult{{Source: "/in/a.png", Output: "/out/a.avif", Size: 42, Hash: "feedface00000000"}},
		Successes: 1,
	}
	r := FromResult("avif", "/out", res)

	path := filepath.Join(t.TempDir(), "run.json")
	if err := WriteJSON(r, path); err != nil {
		t.Fatalf("write: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	var got Report
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if got.Format != "avif" || got.Totals.Succeeded != 1 {
		t.Errorf("roundtrip: got %+v", got)
	}
	if len(got.Files) != 1 || got.Files[0].Size != 42 {
		t.Errorf("files: got %+v", got.Files)
	}
}
