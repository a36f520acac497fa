// Command boostmark converts a directory of legacy Boostnote .cson notes
// into markdown files suitable for Obsidian or any plain-markdown vault.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/alecthomas/kingpin/v2"
	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/spf13/afero"

	"github.com/boostmark/cson/convert"
)

func main() {
	app := kingpin.New("boostmark", "Convert legacy Boostnote CSON notes to markdown with YAML frontmatter.")
	inDir := app.Flag("in", "Directory containing the .cson note files.").Required().ExistingDir()
	outDir := app.Flag("out", "Directory to write markdown files into (defaults to <in>/output).").String()
	folderMap := app.Flag("boostnote-json", "Path to boostnote.json for folder name lookup.").ExistingFile()
	includeTrashed := app.Flag("include-trashed", "Also convert notes Boostnote moved to the trash.").Bool()
	verbose := app.Flag("verbose", "Log every converted note, not just problems.").Short('v').Bool()
	kingpin.MustParse(app.Parse(os.Args[1:]))

	logger := log.NewLogfmtLogger(log.NewSyncWriter(os.Stderr))
	if *verbose {
		logger = level.NewFilter(logger, level.AllowDebug())
	} else {
		logger = level.NewFilter(logger, level.AllowInfo())
	}

	if *outDir == "" {
		*outDir = filepath.Join(*inDir, "output")
	}

	c := convert.New(convert.Config{
		InputDir:       *inDir,
		OutputDir:      *outDir,
		FolderMapPath:  *folderMap,
		IncludeTrashed: *includeTrashed,
	}, afero.NewOsFs(), logger)

	summary, err := c.Run()
	if err != nil {
		level.Error(logger).Log("msg", "conversion failed", "err", err)
		os.Exit(1)
	}
	if summary.Failed > 0 {
		fmt.Fprintf(os.Stderr, "%d of %d notes could not be converted\n",
			summary.Failed, summary.Converted+summary.Skipped+summary.Failed)
		os.Exit(1)
	}
}
