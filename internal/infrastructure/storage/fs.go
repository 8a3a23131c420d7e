package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"svw.info/mathtiles/internal/domain"
)

// FS persists rounds as JSON files grouped by tile count: <dir>/k<k>/<id>.json.
type FS struct{ dir string }

func NewFS(dir string) *FS { return &FS{dir: dir} }

func kDir(k int) string { return "k" + strconv.Itoa(k) }

func (s *FS) pathFor(id string, k int) string {
	return filepath.Join(s.dir, kDir(k), strings.TrimSpace(id)+".json")
}

func (s *FS) Save(ctx context.Context, r *domain.Round) error {
	if r == nil || r.ID == "" {
		return errors.New("invalid round: missing ID")
	}
	if r.K < 2 {
		return fmt.Errorf("invalid round: k=%d", r.K)
	}
	target := s.pathFor(r.ID, r.K)
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return err
	}
	f, err := os.Create(target)
	if err != nil {
		return err
	}
	defer f.Close()
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}

func (s *FS) Load(ctx context.Context, id string) (*domain.Round, error) {
	ents, err := os.ReadDir(s.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, os.ErrNotExist
		}
		return nil, err
	}
	for _, e := range ents {
		if !e.IsDir() || !strings.HasPrefix(e.Name(), "k") {
			continue
		}
		path := filepath.Join(s.dir, e.Name(), id+".json")
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		var out domain.Round
		if err := json.Unmarshal(data, &out); err != nil {
			return nil, err
		}
		return &out, nil
	}
	return nil, os.ErrNotExist
}

func (s *FS) List(ctx context.Context) ([]domain.RoundMeta, error) {
	var out []domain.RoundMeta
	ents, err := os.ReadDir(s.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	for _, bucket := range ents {
		if !bucket.IsDir() || !strings.HasPrefix(bucket.Name(), "k") {
			continue
		}
		files, err := os.ReadDir(filepath.Join(s.dir, bucket.Name()))
		if err != nil {
			continue
		}
		for _, e := range files {
			if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
				continue
			}
			data, err := os.ReadFile(filepath.Join(s.dir, bucket.Name(), e.Name()))
			if err != nil {
				continue
			}
			var r domain.Round
			if err := json.Unmarshal(data, &r); err != nil || r.ID == "" {
				continue
			}
			out = append(out, domain.RoundMeta{
				ID:        r.ID,
				K:         r.K,
				Target:    r.Target,
				CreatedAt: r.CreatedAt,
			})
		}
	}
	return out, nil
}
