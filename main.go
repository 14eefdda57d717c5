package main

import (
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"

	"github.com/urfave/cli/v2"

	"scworld/chunks"
)

func main() {
	// Mirror the shell convention for SIGINT so interrupted extractions
	// are distinguishable from failed ones.
	interrupted := make(chan os.Signal, 1)
	signal.Notify(interrupted, os.Interrupt)
	go func() {
		<-interrupted
		os.Exit(130)
	}()

	app := &cli.App{
		Name:  "scworld",
		Usage: "extract and visualise data from Survivalcraft world saves",
		Commands: []*cli.Command{
			blocksCommand(),
			surfaceCommand(),
			infoCommand(),
			blockCommand(),
			heatmapCommand(),
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func extractFlags(withPlane bool) []cli.Flag {
	flags := []cli.Flag{
		&cli.StringFlag{
			Name:    "file-version",
			Aliases: []string{"V"},
			Value:   "auto",
			Usage:   "game version that wrote the chunks file, or 'auto' to match the file's name",
		},
		&cli.StringFlag{
			Name:    "chunks-file",
			Aliases: []string{"f"},
			Usage:   "chunks file to read; '-' or absent reads standard input",
		},
		&cli.StringFlag{
			Name:    "output-file",
			Aliases: []string{"o"},
			Usage:   "file to write; defaults to standard output",
		},
	}
	if withPlane {
		flags = append(flags, &cli.StringFlag{
			Name:    "plane",
			Aliases: []string{"p"},
			Usage: "only extract blocks on one z plane: a bare integer selects absolute z, " +
				"+N/-N an offset from the terrain surface",
		})
	}
	return flags
}

// openReader opens the chunks file named by the context's flags and selects
// the format descriptor, honouring '-V auto'.
func openReader(c *cli.Context) (*chunks.Reader, error) {
	source, name, err := openChunksInput(c.String("chunks-file"))
	if err != nil {
		return nil, err
	}

	var format *chunks.Format
	if version := c.String("file-version"); version == "auto" {
		if name == "" {
			closeSource(source)
			return nil, cli.Exit("version auto-detection matches the chunks file's name; pass -f with a real path", 2)
		}
		var ok bool
		if format, ok = chunks.FormatForFileName(name); !ok {
			closeSource(source)
			return nil, cli.Exit("could not determine the chunks file version automatically", 2)
		}
	} else {
		if format, err = chunks.FormatForVersion(version); err != nil {
			closeSource(source)
			return nil, cli.Exit(fmt.Sprintf("game version %q is not supported", version), 1)
		}
	}

	reader, err := chunks.NewReader(source, format)
	if err != nil {
		closeSource(source)
		return nil, err
	}
	return reader, nil
}

func closeSource(source io.ReadSeeker) {
	if closer, ok := source.(io.Closer); ok {
		closer.Close()
	}
}

func blocksCommand() *cli.Command {
	return &cli.Command{
		Name:  "blocks",
		Usage: "extract block records to CSV",
		Flags: extractFlags(true),
		Action: func(c *cli.Context) error {
			reader, err := openReader(c)
			if err != nil {
				return err
			}
			defer reader.Close()

			var source chunks.BlockSource = reader.Blocks()
			if planeArg := c.String("plane"); planeArg != "" {
				plane, err := chunks.ParsePlane(planeArg)
				if err != nil {
					return err
				}
				var elevations map[chunks.Column]int
				if plane.Relative {
					// The surface pass must finish before the
					// first block can be judged.
					if elevations, err = chunks.ElevationMap(reader); err != nil {
						return err
					}
				}
				source = chunks.NewFilteredBlocks(reader.Blocks(), plane, elevations)
			}

			out, closeOut, err := openOutput(c.String("output-file"))
			if err != nil {
				return err
			}
			if err := writeBlocksCSV(out, source); err != nil {
				closeOut()
				return err
			}
			return closeOut()
		},
	}
}

func surfaceCommand() *cli.Command {
	return &cli.Command{
		Name:  "surface",
		Usage: "extract terrain surface records to CSV",
		Flags: extractFlags(false),
		Action: func(c *cli.Context) error {
			reader, err := openReader(c)
			if err != nil {
				return err
			}
			defer reader.Close()

			out, closeOut, err := openOutput(c.String("output-file"))
			if err != nil {
				return err
			}
			if err := writeSurfaceCSV(out, reader.Surface()); err != nil {
				closeOut()
				return err
			}
			return closeOut()
		},
	}
}

func infoCommand() *cli.Command {
	return &cli.Command{
		Name:  "info",
		Usage: "show chunk directory statistics",
		Flags: extractFlags(false),
		Action: func(c *cli.Context) error {
			reader, err := openReader(c)
			if err != nil {
				return err
			}
			defer reader.Close()

			out, closeOut, err := openOutput(c.String("output-file"))
			if err != nil {
				return err
			}

			directory := reader.Directory()
			format := reader.Format()
			fmt.Fprintf(out, "format: %s\n", format.Name)
			fmt.Fprintf(out, "chunk size: %d bytes\n", format.ChunkSize())
			fmt.Fprintf(out, "chunks stored: %d\n", directory.Populated())
			slots := directory.Slots()
			if first, ok := slots.NextSet(0); ok {
				fmt.Fprintf(out, "first populated slot: %d\n", first)
			}
			return closeOut()
		},
	}
}
