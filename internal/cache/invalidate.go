package cache

import (
    "encoding/json"
    "errors"
    "io/fs"
    "os"
    "path/filepath"
    "strings"
    "time"
)

// ClearDir removes the directory and all contents, then recreates it empty
// with perm.
func ClearDir(dir string, perm os.FileMode) error {
    if strings.TrimSpace(dir) == "" {
        return errors.New("empty dir")
    }
    if err := os.RemoveAll(dir); err != nil {
        return err
    }
    return os.MkdirAll(dir, perm)
}

// Clear empties the cache directory, keeping the StrictPerms directory mode.
func (c *PageCache) Clear() error {
    if c == nil {
        return errors.New("cache dir not configured")
    }
    return ClearDir(c.Dir, c.dirMode())
}

// PurgeByAge removes page entries whose SavedAt is older than maxAge and
// returns how many were removed. Unreadable or malformed meta files are left
// alone.
func PurgeByAge(dir string, maxAge time.Duration) (int, error) {
    if maxAge <= 0 {
        return 0, nil
    }
    now := time.Now().UTC()
    removed := 0
    err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
        if err != nil {
            return err
        }
        if d.IsDir() || !strings.HasSuffix(d.Name(), ".meta.json") {
            return nil
        }
        b, err := os.ReadFile(path)
        if err != nil {
            return nil
        }
        var e PageEntry
        if err := json.Unmarshal(b, &e); err != nil {
            return nil
        }
        if now.Sub(e.SavedAt) <= maxAge {
            return nil
        }
        removed++
        _ = os.Remove(path)
        _ = os.Remove(strings.TrimSuffix(path, ".meta.json") + ".body")
        return nil
    })
    return removed, err
}
