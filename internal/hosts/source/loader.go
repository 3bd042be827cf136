// Package source reads the override file into table generations and
// decides when the file warrants a reload.
package source

import (
	"bufio"
	"os"
	"strings"

	"github.com/haukened/hostblock/internal/hosts/common/log"
	"github.com/haukened/hostblock/internal/hosts/common/utils"
	"github.com/haukened/hostblock/internal/hosts/domain"
	"github.com/haukened/hostblock/internal/hosts/intern"
	"github.com/haukened/hostblock/internal/hosts/table"
)

// Stat captures the source file's current metadata.
func Stat(path string) (domain.Snapshot, error) {
	fi, err := os.Stat(path)
	if err != nil {
		return domain.Snapshot{}, err
	}
	return domain.Snapshot{ModTime: fi.ModTime(), Size: fi.Size()}, nil
}

// Load reads the override file at path into a fresh generation.
//
// Format, one entry per line: `<address> <domain>`, exactly two
// whitespace-separated tokens after trimming trailing whitespace. Empty
// lines and lines whose first character is '#' are skipped. Anything else
// is logged at warn and skipped. A later duplicate of a domain overwrites
// the earlier one. Domains are canonicalized; addresses are interned so
// entries sharing an address share one handle.
//
// The returned generation carries the snapshot taken before the file was
// opened. Stat, open, and read failures are returned to the caller, which
// keeps its previous generation.
func Load(path string, logger log.Logger) (*table.Table, error) {
	snap, err := Stat(path)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	pool := intern.New()
	entries := make(map[string]*string, 256)

	scanner := bufio.NewScanner(f)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := scanner.Text()

		if line == "" || line[0] == '#' {
			continue
		}

		line = strings.TrimRight(line, " \t\r")
		fields := strings.Fields(line)
		if len(fields) != 2 {
			logger.Warn(map[string]any{"path": path, "line": lineNum, "text": line}, "invalid override entry")
			continue
		}

		address := fields[0]
		name := utils.CanonicalHostName(fields[1])
		entries[name] = pool.Intern(address)
		logger.Debug(map[string]any{"line": lineNum, "domain": name, "address": address}, "override entry")
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	logger.Info(map[string]any{
		"path":      path,
		"entries":   len(entries),
		"addresses": pool.Len(),
	}, "override table loaded")

	return table.Build(entries, pool.Len(), snap), nil
}
