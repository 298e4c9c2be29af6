package cellstore

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/datatrails/go-datatrails-common/logger"

	"github.com/forestrie/go-cellmap/boc"
)

const bocFileExt = ".boc"

// DirStoreConfig configures a directory-backed store. Log and Metrics are
// optional.
type DirStoreConfig struct {
	Dir     string
	Log     logger.Logger
	Metrics *Metrics
}

// DirStore persists each root as one bag-of-cells file in a flat
// directory, named by the hex of the root hash. Writes go through a
// temporary file and rename, so a crash never leaves a partial root under
// its final name.
type DirStore struct {
	cfg DirStoreConfig
}

// NewDirStore ensures the directory exists and returns a store over it.
func NewDirStore(cfg DirStoreConfig) (*DirStore, error) {
	if cfg.Dir == "" {
		return nil, fmt.Errorf("cellstore: directory not configured")
	}
	if err := os.MkdirAll(cfg.Dir, 0o755); err != nil {
		return nil, err
	}
	return &DirStore{cfg: cfg}, nil
}

func (s *DirStore) path(hash [boc.HashBytes]byte) string {
	return filepath.Join(s.cfg.Dir, hex.EncodeToString(hash[:])+bocFileExt)
}

func (s *DirStore) Put(_ context.Context, c *boc.Cell) ([boc.HashBytes]byte, error) {
	hash := c.Hash()
	data, err := boc.Serialize(c)
	if err != nil {
		return hash, err
	}

	final := s.path(hash)
	tmp, err := os.CreateTemp(s.cfg.Dir, "put-*"+bocFileExt)
	if err != nil {
		return hash, err
	}
	if _, err = tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return hash, err
	}
	if err = tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return hash, err
	}
	if err = os.Rename(tmp.Name(), final); err != nil {
		os.Remove(tmp.Name())
		return hash, err
	}
	s.cfg.Metrics.put()
	if s.cfg.Log != nil {
		s.cfg.Log.Debugf("cellstore: put %x (%d bytes)", hash[:4], len(data))
	}
	return hash, nil
}

func (s *DirStore) Get(_ context.Context, hash [boc.HashBytes]byte) (*boc.Cell, error) {
	s.cfg.Metrics.get()
	data, err := os.ReadFile(s.path(hash))
	if errors.Is(err, fs.ErrNotExist) {
		s.cfg.Metrics.miss()
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	c, err := boc.Deserialize(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrHashMismatch, err)
	}
	if c.Hash() != hash {
		return nil, ErrHashMismatch
	}
	return c, nil
}

func (s *DirStore) Has(_ context.Context, hash [boc.HashBytes]byte) (bool, error) {
	_, err := os.Stat(s.path(hash))
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
