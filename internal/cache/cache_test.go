package cache

import (
    "context"
    "encoding/json"
    "os"
    "path/filepath"
    "testing"
    "time"
)

func TestPageCache_SaveAndLoad(t *testing.T) {
    t.Parallel()
    c := &PageCache{Dir: t.TempDir()}
    url := "https://example.com/floorplans.aspx"
    if err := c.Save(context.Background(), url, "text/html", `"v1"`, "Mon, 02 Jan 2006 15:04:05 GMT", []byte("first")); err != nil {
        t.Fatalf("save: %v", err)
    }
    if err := c.Save(context.Background(), url, "text/html", `"v2"`, "", []byte("second")); err != nil {
        t.Fatalf("save again: %v", err)
    }
    meta, err := c.LoadMeta(context.Background(), url)
    if err != nil {
        t.Fatalf("load meta: %v", err)
    }
    if meta.ETag != `"v2"` || meta.URL != url {
        t.Fatalf("unexpected meta: %+v", meta)
    }
    body, err := c.LoadBody(context.Background(), url)
    if err != nil {
        t.Fatalf("load body: %v", err)
    }
    if string(body) != "second" {
        t.Fatalf("expected latest body only, got %q", body)
    }
}

func TestPageCache_NotConfigured(t *testing.T) {
    var c PageCache
    if _, err := c.LoadBody(context.Background(), "https://example.com"); err == nil {
        t.Fatalf("expected error for empty dir")
    }
}

func TestPageCache_StrictPerms(t *testing.T) {
    t.Parallel()
    dir := filepath.Join(t.TempDir(), "pages")
    c := &PageCache{Dir: dir, StrictPerms: true}
    url := "https://example.com/x"
    if err := c.Save(context.Background(), url, "text/html", "etag", "", []byte("hello")); err != nil {
        t.Fatalf("save: %v", err)
    }
    info, err := os.Stat(dir)
    if err != nil {
        t.Fatalf("stat dir: %v", err)
    }
    if got := info.Mode() & 0o777; got != 0o700 {
        t.Fatalf("dir mode = %o, want 0700", got)
    }
    key := c.key(url)
    for _, f := range []string{filepath.Join(dir, key+".body"), filepath.Join(dir, key+".meta.json")} {
        finfo, err := os.Stat(f)
        if err != nil {
            t.Fatalf("stat %s: %v", f, err)
        }
        if got := finfo.Mode() & 0o777; got != 0o600 {
            t.Fatalf("%s mode = %o, want 0600", f, got)
        }
    }
}

func TestPurgeByAge(t *testing.T) {
    t.Parallel()
    dir := t.TempDir()
    c := &PageCache{Dir: dir}
    ctx := context.Background()
    if err := c.Save(ctx, "https://a.example/old", "text/html", "", "", []byte("old")); err != nil {
        t.Fatalf("save old: %v", err)
    }
    if err := c.Save(ctx, "https://a.example/new", "text/html", "", "", []byte("new")); err != nil {
        t.Fatalf("save new: %v", err)
    }
    // Backdate the first entry.
    metaPath := c.metaPath(c.key("https://a.example/old"))
    stale := PageEntry{URL: "https://a.example/old", SavedAt: time.Now().UTC().Add(-48 * time.Hour)}
    b, _ := json.Marshal(stale)
    if err := os.WriteFile(metaPath, b, 0o644); err != nil {
        t.Fatalf("backdate: %v", err)
    }

    removed, err := PurgeByAge(dir, 24*time.Hour)
    if err != nil {
        t.Fatalf("purge: %v", err)
    }
    if removed != 1 {
        t.Fatalf("expected 1 removed, got %d", removed)
    }
    if _, err := c.LoadBody(ctx, "https://a.example/old"); err == nil {
        t.Fatalf("expected old body removed")
    }
    if _, err := c.LoadBody(ctx, "https://a.example/new"); err != nil {
        t.Fatalf("expected new body kept: %v", err)
    }
}

func TestClearDir(t *testing.T) {
    dir := filepath.Join(t.TempDir(), "c")
    if err := os.MkdirAll(dir, 0o755); err != nil {
        t.Fatal(err)
    }
    if err := os.WriteFile(filepath.Join(dir, "x.body"), []byte("x"), 0o644); err != nil {
        t.Fatal(err)
    }
    if err := ClearDir(dir, 0o755); err != nil {
        t.Fatalf("clear: %v", err)
    }
    entries, err := os.ReadDir(dir)
    if err != nil {
        t.Fatalf("read dir: %v", err)
    }
    if len(entries) != 0 {
        t.Fatalf("expected empty dir, got %d entries", len(entries))
    }
    if err := ClearDir("  ", 0o755); err == nil {
        t.Fatalf("expected error for blank dir")
    }
}

func TestPageCache_ClearKeepsStrictDirMode(t *testing.T) {
    dir := filepath.Join(t.TempDir(), "pages")
    c := &PageCache{Dir: dir, StrictPerms: true}
    if err := c.Save(context.Background(), "https://example.com/x", "text/html", "", "", []byte("x")); err != nil {
        t.Fatalf("save: %v", err)
    }
    if err := c.Clear(); err != nil {
        t.Fatalf("clear: %v", err)
    }
    info, err := os.Stat(dir)
    if err != nil {
        t.Fatalf("stat dir: %v", err)
    }
    if got := info.Mode() & 0o777; got != 0o700 {
        t.Fatalf("dir mode after clear = %o, want 0700", got)
    }
    entries, err := os.ReadDir(dir)
    if err != nil {
        t.Fatalf("read dir: %v", err)
    }
    if len(entries) != 0 {
        t.Fatalf("expected empty dir, got %d entries", len(entries))
    }
}
