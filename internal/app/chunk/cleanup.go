package chunk

import (
	"log"
	"os"
	"path/filepath"
	"strings"
)

// chunkDirPattern names per-job temp directories; Cleanup refuses to touch
// directories that don't match it.
const chunkDirPattern = "m2t-chunks-"

// Cleanup removes every chunk artifact and, once empty, the job's chunk
// directory. It is best-effort: errors are logged and swallowed so resource
// release can never mask a transcription result.
func Cleanup(chunks []Materialized, dir string) {
	for _, c := range chunks {
		if c.Path == "" {
			continue
		}
		if err := os.Remove(c.Path); err != nil && !os.IsNotExist(err) {
			log.Printf("cleanup: failed to remove chunk %s: %v", c.Path, err)
		}
	}

	removeJobDir(dir)
}

func removeJobDir(dir string) {
	if dir == "" {
		return
	}
	if !strings.Contains(filepath.Base(dir), "chunks") {
		log.Printf("cleanup: refusing to remove unexpected directory %s", dir)
		return
	}
	// os.Remove only deletes empty directories, which is exactly the contract:
	// the directory goes away only once every artifact in it is gone.
	if err := os.Remove(dir); err != nil && !os.IsNotExist(err) {
		log.Printf("cleanup: could not remove chunk directory %s: %v", dir, err)
	}
}

// discardJobDir force-removes the job directory with its contents. Used on
// unrecoverable materialization errors where no leaf list exists yet.
func discardJobDir(dir string) {
	if dir == "" || !strings.Contains(filepath.Base(dir), "chunks") {
		return
	}
	if err := os.RemoveAll(dir); err != nil {
		log.Printf("cleanup: could not discard chunk directory %s: %v", dir, err)
	}
}
