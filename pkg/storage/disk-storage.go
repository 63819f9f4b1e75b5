package storage

import (
	"log"

	"github.com/Await-0x/RealmsWorld/pkg/types"
)

const collectionsFile = "collections.jz"

func (ds *DiskStorage) LoadCollections(store *Store) error {
	snapshots := make([]types.CollectionSnapshot, 0)
	if err := ds.LoadGzippedJson(&snapshots, collectionsFile); err != nil {
		return err
	}
	store.Upsert(snapshots...)
	store.MarkSaved(store.Version())
	log.Printf("loaded %d collections", len(snapshots))
	return nil
}

func (ds *DiskStorage) SaveCollections(store *Store) error {
	snapshots, version := store.Snapshot()
	if err := ds.SaveGzippedJson(snapshots, collectionsFile); err != nil {
		return err
	}
	store.MarkSaved(version)
	log.Printf("saved %d collections", len(snapshots))
	return nil
}
