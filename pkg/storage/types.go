package storage

import (
	"os"
	"path"
)

// DiskStorage keeps files under <root>/<chain>/.
type DiskStorage struct {
	Chain      string
	RootFolder string
}

func NewDiskStorage(chain, rootFolder string) *DiskStorage {
	return &DiskStorage{
		Chain:      chain,
		RootFolder: rootFolder,
	}
}

func (ds *DiskStorage) GetFileName(name string) string {
	return path.Join(ds.RootFolder, ds.Chain, name)
}

func (ds *DiskStorage) ensureFolder() error {
	return os.MkdirAll(path.Join(ds.RootFolder, ds.Chain), 0o755)
}
