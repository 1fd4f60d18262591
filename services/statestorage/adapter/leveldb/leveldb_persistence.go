// Copyright 2019 the contribchain-go authors
// This file is part of the contribchain-go library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.

package leveldb

import (
	"fmt"
	"github.com/orbs-network/contribchain-go/instrumentation/metric"
	"github.com/orbs-network/contribchain-go/services/statestorage/adapter"
	"github.com/orbs-network/orbs-spec/types/go/primitives"
	"github.com/pkg/errors"
	"github.com/syndtr/goleveldb/leveldb"
	"strconv"
	"time"
)

const (
	STATE_PREFIX       = "state/"
	META_HEIGHT        = "meta/height"
	META_TIMESTAMP     = "meta/timestamp"
	ROOTS_PREFIX       = "roots/"
	keySeparator       = "/"
	heightFormatLength = 16
)

type metrics struct {
	writeTime    *metric.Histogram
	writtenKeys  *metric.Rate
	deletedKeys  *metric.Rate
	sizeOnCommit *metric.Gauge
}

func newMetrics(m metric.Factory) *metrics {
	return &metrics{
		writeTime:    m.NewLatency("StateStoragePersistence.LevelDb.WriteTime", 10*time.Second),
		writtenKeys:  m.NewRate("StateStoragePersistence.LevelDb.WrittenKeys.PerSecond"),
		deletedKeys:  m.NewRate("StateStoragePersistence.LevelDb.DeletedKeys.PerSecond"),
		sizeOnCommit: m.NewGauge("StateStoragePersistence.LevelDb.LastBatchSize.Count"),
	}
}

type levelDbStatePersistence struct {
	db      *leveldb.DB
	metrics *metrics
}

func NewStatePersistence(dir string, metricFactory metric.Factory) (*levelDbStatePersistence, error) {
	db, err := leveldb.OpenFile(dir, nil)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open state database at %s", dir)
	}
	return &levelDbStatePersistence{
		db:      db,
		metrics: newMetrics(metricFactory),
	}, nil
}

func stateKey(contract primitives.ContractName, key string) []byte {
	return []byte(STATE_PREFIX + string(contract) + keySeparator + key)
}

func rootKey(height primitives.BlockHeight) []byte {
	return []byte(fmt.Sprintf("%s%0*x", ROOTS_PREFIX, heightFormatLength, uint64(height)))
}

// state, metadata and root of a block are written in one batch
func (sp *levelDbStatePersistence) Write(height primitives.BlockHeight, ts primitives.TimestampNano, stateHash []byte, diff adapter.ChainState) error {
	start := time.Now()
	defer sp.metrics.writeTime.RecordSince(start)

	batch := new(leveldb.Batch)
	for contract, records := range diff {
		for key, value := range records {
			if adapter.IsZeroValue(value) {
				batch.Delete(stateKey(contract, key))
				sp.metrics.deletedKeys.Measure(1)
			} else {
				batch.Put(stateKey(contract, key), value)
				sp.metrics.writtenKeys.Measure(1)
			}
		}
	}
	batch.Put([]byte(META_HEIGHT), []byte(strconv.FormatUint(uint64(height), 10)))
	batch.Put([]byte(META_TIMESTAMP), []byte(strconv.FormatUint(uint64(ts), 10)))
	batch.Put(rootKey(height), stateHash)
	sp.metrics.sizeOnCommit.Update(int64(batch.Len()))

	if err := sp.db.Write(batch, nil); err != nil {
		return errors.Wrapf(err, "failed to write state of block %d", height)
	}
	return nil
}

func (sp *levelDbStatePersistence) Read(contract primitives.ContractName, key string) ([]byte, bool, error) {
	return sp.get(stateKey(contract, key))
}

func (sp *levelDbStatePersistence) ReadMetadata() (primitives.BlockHeight, primitives.TimestampNano, error) {
	height, err := sp.getUint64(META_HEIGHT)
	if err != nil {
		return 0, 0, err
	}
	ts, err := sp.getUint64(META_TIMESTAMP)
	if err != nil {
		return 0, 0, err
	}
	return primitives.BlockHeight(height), primitives.TimestampNano(ts), nil
}

func (sp *levelDbStatePersistence) ReadStateHash(height primitives.BlockHeight) ([]byte, bool, error) {
	return sp.get(rootKey(height))
}

func (sp *levelDbStatePersistence) Close() error {
	return sp.db.Close()
}

func (sp *levelDbStatePersistence) get(key []byte) ([]byte, bool, error) {
	value, err := sp.db.Get(key, nil)
	if err == leveldb.ErrNotFound {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, errors.Wrapf(err, "failed to read key %s", key)
	}
	return value, true, nil
}

// missing metadata means nothing was committed yet
func (sp *levelDbStatePersistence) getUint64(key string) (uint64, error) {
	value, found, err := sp.get([]byte(key))
	if err != nil || !found {
		return 0, err
	}
	result, err := strconv.ParseUint(string(value), 10, 64)
	if err != nil {
		return 0, errors.Wrapf(err, "corrupt value under %s", key)
	}
	return result, nil
}
