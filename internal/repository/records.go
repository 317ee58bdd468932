package repository

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"woodsim/internal/errors"
	gameuc "woodsim/internal/usecase/game"
)

// RecordStore keeps one SGF file per simulated game. Files are never removed:
// the engine writes the finished game back into the same file.
type RecordStore struct {
	dir string
	now func() time.Time
	log *zap.SugaredLogger
}

func NewRecordStore(dir string, log *zap.SugaredLogger) *RecordStore {
	return &RecordStore{
		dir: dir,
		now: time.Now,
		log: log,
	}
}

func (r *RecordStore) Dir() string {
	return r.dir
}

func (r *RecordStore) Path(index int) string {
	return filepath.Join(r.dir, fmt.Sprintf("game_%d.sgf", index))
}

// Write creates or truncates the record for game index with White's corner
// stone and returns its path. The games directory is created on first use.
func (r *RecordStore) Write(index int, whiteStone string) (string, error) {
	if err := r.ensureDir(); err != nil {
		return "", err
	}

	record := gameuc.PrepareRecord(whiteStone, r.now())
	path := r.Path(index)
	if err := os.WriteFile(path, []byte(gameuc.SerializeSGF(&record)), 0644); err != nil {
		return "", fmt.Errorf("%w: %v", errors.ErrRecordWrite, err)
	}
	r.log.Debugw("record written", "path", path, "white_stone", whiteStone)
	return path, nil
}

func (r *RecordStore) ensureDir() error {
	if _, err := os.Stat(r.dir); err == nil {
		return nil
	}
	if err := os.MkdirAll(r.dir, 0755); err != nil {
		return fmt.Errorf("%w: create %s: %v", errors.ErrRecordWrite, r.dir, err)
	}
	r.log.Infow("created games directory", "dir", r.dir)
	return nil
}
