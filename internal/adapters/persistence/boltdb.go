package persistence

import (
	"os"
	"path/filepath"
	"sort"

	boltdb "github.com/andrew-solarstorm/bolt-db"
	"github.com/bytedance/sonic"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"github.com/hxuan190/swap-router/internal/pool"
)

const (
	PoolsBucket    = "pools"
	SnapshotBucket = "snapshot"

	// activeKey holds the UIDs of the last saved snapshot. Pools outside it
	// are stale rows left by an earlier replace.
	activeKey = "active"

	DefaultDBPath = "./data/router.db"
)

type StoredSnapshot struct {
	Version uint64   `json:"version"`
	UIDs    []string `json:"uids"`
}

type Storage struct {
	db     *boltdb.BoltDatabase
	dbPath string
}

func NewStorage(dbPath string) (*Storage, error) {
	if dbPath == "" {
		dbPath = DefaultDBPath
	}
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, errors.Wrapf(err, "create db dir for %s", dbPath)
	}

	db := boltdb.NewBoltDatabase(dbPath)
	if db == nil {
		return nil, errors.Errorf("failed to open database at %s", dbPath)
	}

	log.Info().Str("path", dbPath).Msg("[routerStorage] opened database")

	return &Storage{
		db:     db,
		dbPath: dbPath,
	}, nil
}

func (s *Storage) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SavePoolBatch writes specs in one transaction and marks them as the active
// snapshot.
func (s *Storage) SavePoolBatch(specs []pool.Spec, version uint64) error {
	if len(specs) == 0 {
		return nil
	}

	batch := s.db.NewBatch()
	uids := make([]string, 0, len(specs))
	for _, spec := range specs {
		data, err := EncodeSpec(spec)
		if err != nil {
			return err
		}

		value := data
		op := &boltdb.WriteOperation{
			Bucket: []byte(PoolsBucket),
			Key:    []byte(spec.UID),
			Value:  &value,
			Op:     boltdb.OpSet,
		}
		if err := batch.Add(op); err != nil {
			return errors.Wrapf(err, "add pool %s to batch", spec.UID)
		}
		uids = append(uids, spec.UID)
	}

	sort.Strings(uids)
	snapshot, err := sonic.Marshal(StoredSnapshot{Version: version, UIDs: uids})
	if err != nil {
		return errors.Wrap(err, "marshal snapshot index")
	}
	if err := batch.Add(&boltdb.WriteOperation{
		Bucket: []byte(SnapshotBucket),
		Key:    []byte(activeKey),
		Value:  &snapshot,
		Op:     boltdb.OpSet,
	}); err != nil {
		return errors.Wrap(err, "add snapshot index to batch")
	}

	if err := batch.Execute(); err != nil {
		log.Error().Err(err).Int("count", len(specs)).Msg("[routerStorage] FAILED to execute batch")
		return errors.Wrap(err, "execute pool batch")
	}

	log.Info().Int("count", len(specs)).Uint64("version", version).Msg("[routerStorage] saved pool batch")
	return nil
}

// LoadAllPools returns the specs of the active snapshot, sorted by UID. When
// no snapshot index was written every stored pool is returned.
func (s *Storage) LoadAllPools() ([]pool.Spec, error) {
	data, err := s.db.List(PoolsBucket)
	if err != nil {
		return nil, errors.Wrap(err, "list pools")
	}

	active, err := s.activeSet()
	if err != nil {
		return nil, err
	}

	specs := make([]pool.Spec, 0, len(data))
	failed := 0
	for uid, value := range data {
		if active != nil {
			if _, ok := active[uid]; !ok {
				continue
			}
		}
		spec, err := DecodeSpec(value)
		if err != nil {
			log.Error().Str("uid", uid).Err(err).Msg("[routerStorage] failed to decode pool, skipping")
			failed++
			continue
		}
		specs = append(specs, spec)
	}
	sort.Slice(specs, func(i, j int) bool { return specs[i].UID < specs[j].UID })

	if failed > 0 {
		log.Error().
			Int("total_in_db", len(data)).
			Int("loaded", len(specs)).
			Int("decode_failed", failed).
			Msg("[routerStorage] pool loading completed with errors")
	} else {
		log.Info().
			Int("total_in_db", len(data)).
			Int("loaded", len(specs)).
			Msg("[routerStorage] pool loading completed successfully")
	}

	return specs, nil
}

func (s *Storage) activeSet() (map[string]struct{}, error) {
	rows, err := s.db.List(SnapshotBucket)
	if err != nil {
		return nil, errors.Wrap(err, "list snapshot index")
	}
	raw, ok := rows[activeKey]
	if !ok {
		return nil, nil
	}
	var snapshot StoredSnapshot
	if err := sonic.Unmarshal(raw, &snapshot); err != nil {
		return nil, errors.Wrap(err, "unmarshal snapshot index")
	}
	set := make(map[string]struct{}, len(snapshot.UIDs))
	for _, uid := range snapshot.UIDs {
		set[uid] = struct{}{}
	}
	return set, nil
}

// EncodeSpec validates spec by building its pool, then marshals it.
func EncodeSpec(spec pool.Spec) ([]byte, error) {
	if _, err := pool.FromSpec(spec); err != nil {
		return nil, errors.Wrapf(err, "invalid pool %s", spec.UID)
	}
	data, err := sonic.Marshal(spec)
	if err != nil {
		return nil, errors.Wrapf(err, "marshal pool %s", spec.UID)
	}
	return data, nil
}

func DecodeSpec(data []byte) (pool.Spec, error) {
	var spec pool.Spec
	if err := sonic.Unmarshal(data, &spec); err != nil {
		return pool.Spec{}, errors.Wrap(err, "unmarshal pool")
	}
	if _, err := pool.FromSpec(spec); err != nil {
		return pool.Spec{}, errors.Wrapf(err, "invalid stored pool %s", spec.UID)
	}
	return spec, nil
}
