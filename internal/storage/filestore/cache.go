package filestore

import (
	"io/fs"
	"time"

	"github.com/dgraph-io/ristretto/v2"

	"tabDB/internal/logging"
	"tabDB/internal/storage"
)

// cachedImage is a decoded table file plus the file attributes it was
// decoded from.
type cachedImage struct {
	size    int64
	modTime time.Time
	tf      *storage.TableFile
}

// imageCache maps a table file path to its decoded image. Entries are
// cost-weighted by file size.
//
// Validation by size and modification time only catches writers that
// change one of them. An UPDATE keeps the file size, and mtime has coarse
// granularity on some filesystems, so a rewrite by another FileEngine (or
// another process) on the same directory within one mtime tick can go
// unnoticed and a stale image is served. Only one engine may use a data
// directory while the cache is enabled; tools that share a directory pass
// a zero cache size.
type imageCache struct {
	c *ristretto.Cache[string, *cachedImage]
}

func newImageCache(maxBytes int64) (*imageCache, error) {
	c, err := ristretto.NewCache(&ristretto.Config[string, *cachedImage]{
		// about ten counters per expected entry
		NumCounters:        10 * 1024,
		MaxCost:            maxBytes,
		BufferItems:        64,
		Metrics:            true,
		IgnoreInternalCost: true,
	})
	if err != nil {
		return nil, err
	}
	return &imageCache{c: c}, nil
}

// get returns a private copy of the cached image if the file still has
// the size and modification time it had when cached.
func (ic *imageCache) get(path string, info fs.FileInfo) (*storage.TableFile, bool) {
	img, ok := ic.c.Get(path)
	if !ok {
		return nil, false
	}
	if img.size != info.Size() || !img.modTime.Equal(info.ModTime()) {
		ic.c.Del(path)
		return nil, false
	}
	return img.tf.Clone(), true
}

func (ic *imageCache) put(path string, info fs.FileInfo, tf *storage.TableFile) {
	img := &cachedImage{size: info.Size(), modTime: info.ModTime(), tf: tf.Clone()}
	if !ic.c.Set(path, img, info.Size()) {
		logging.WithComponent("filestore").Debug("image cache rejected entry", "path", path)
	}
	// Make the entry visible to the next Get.
	ic.c.Wait()
}

func (ic *imageCache) del(path string) {
	ic.c.Del(path)
}

func (ic *imageCache) close() {
	if m := ic.c.Metrics; m != nil {
		logging.WithComponent("filestore").Debug("image cache closed",
			"hits", m.Hits(), "misses", m.Misses(), "ratio", m.Ratio())
	}
	ic.c.Close()
}
