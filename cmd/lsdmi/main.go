// Copyright 2023-2024 hwinspect.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//   http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Command lsdmi inspects SMBIOS/DMI firmware tables, either live from the
// local machine or from a saved table dump.
package main

import (
	"bytes"
	"fmt"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/hwinspect/go-smbios/smbios"
)

var (
	flagTableFile string
	flagEPFile    string
	flagVerbose   bool
)

func main() {
	root := &cobra.Command{
		Use:           "lsdmi",
		Short:         "Inspect SMBIOS/DMI firmware tables",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			level := zerolog.WarnLevel
			if flagVerbose {
				level = zerolog.DebugLevel
			}
			log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
				Level(level).With().Timestamp().Logger()
		},
	}

	root.PersistentFlags().StringVarP(&flagTableFile, "file", "f", "",
		"decode a saved structure table dump instead of the live firmware table")
	root.PersistentFlags().StringVar(&flagEPFile, "entry-point", "",
		"saved entry point dump to parse alongside --file")
	root.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false,
		"enable debug logging")

	root.AddCommand(lsCmd(), entryPointCmd(), dimmsCmd())

	if err := root.Execute(); err != nil {
		log.Error().Err(err).Msg("lsdmi failed")
		os.Exit(1)
	}
}

// load produces the decoded table and, when available, the entry point.
// The entry point is nil when decoding a dump without --entry-point.
func load() (*smbios.Table, smbios.EntryPoint, error) {
	if flagTableFile != "" {
		b, err := os.ReadFile(flagTableFile)
		if err != nil {
			return nil, nil, errors.Wrap(err, "reading table dump")
		}

		var ep smbios.EntryPoint
		if flagEPFile != "" {
			eb, err := os.ReadFile(flagEPFile)
			if err != nil {
				return nil, nil, errors.Wrap(err, "reading entry point dump")
			}
			if ep, err = smbios.ParseEntryPoint(bytes.NewReader(eb)); err != nil {
				return nil, nil, err
			}
		}

		tbl, err := smbios.NewTableWithEntryPoint(bytes.NewReader(b), ep)
		if err != nil {
			return nil, nil, err
		}
		return tbl, ep, nil
	}

	rc, ep, err := smbios.Stream()
	if err != nil {
		return nil, nil, errors.Wrap(err, "opening SMBIOS stream")
	}
	defer rc.Close()

	tbl, err := smbios.NewTableWithEntryPoint(rc, ep)
	if err != nil {
		return nil, nil, err
	}
	return tbl, ep, nil
}

// report surfaces decode defects without failing the command; partial
// tables are still worth printing.
func report(tbl *smbios.Table) {
	for _, d := range tbl.Diagnostics() {
		log.Warn().
			Stringer("kind", d.Kind).
			Int("offset", d.Offset).
			Msg(d.Message)
	}
}

func lsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ls",
		Short: "List every structure in the table",
		RunE: func(_ *cobra.Command, _ []string) error {
			tbl, ep, err := load()
			if err != nil {
				return err
			}
			report(tbl)

			if ep != nil {
				major, minor, rev := ep.Version()
				fmt.Printf("SMBIOS %d.%d.%d\n", major, minor, rev)
			}

			w := table.NewWriter()
			w.SetOutputMirror(os.Stdout)
			w.AppendHeader(table.Row{"Handle", "Type", "Length", "Strings"})
			for s := range tbl.All() {
				w.AppendRow(table.Row{
					fmt.Sprintf("%#04x", uint16(s.Header.Handle)),
					s.Header.Type,
					s.Header.Length,
					len(s.Strings),
				})
			}
			w.Render()
			return nil
		},
	}
}

func entryPointCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "entrypoint",
		Short: "Show the parsed SMBIOS entry point",
		RunE: func(_ *cobra.Command, _ []string) error {
			_, ep, err := load()
			if err != nil {
				return err
			}
			if ep == nil {
				return errors.New("no entry point available; pass --entry-point with --file")
			}

			major, minor, rev := ep.Version()
			addr, size := ep.Table()

			if !ep.Valid() {
				log.Warn().Msg("entry point checksum mismatch; fields may be unreliable")
			}

			fmt.Printf("SMBIOS %d.%d.%d - table: address: %#x, size: %d, checksum valid: %t\n",
				major, minor, rev, addr, size, ep.Valid())
			return nil
		},
	}
}

// Memory Device (type 17) field offsets used by dimms.
const (
	typeMemoryDevice = 17

	offDeviceSize    = 0x0c
	offDeviceLocator = 0x10
	offExtendedSize  = 0x1c

	// 0x7fff in the size word defers to the extended size dword.
	sizeUsesExtended = 0x7fff
)

func dimmsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dimms",
		Short: "List memory device slots and sizes",
		RunE: func(_ *cobra.Command, _ []string) error {
			tbl, _, err := load()
			if err != nil {
				return err
			}
			report(tbl)

			w := table.NewWriter()
			w.SetOutputMirror(os.Stdout)
			w.AppendHeader(table.Row{"Locator", "Size"})

			for _, s := range tbl.ByType(typeMemoryDevice) {
				locator, ok := s.FieldString(offDeviceLocator)
				if !ok {
					locator = fmt.Sprintf("%#04x", uint16(s.Header.Handle))
				}

				size, ok := s.FieldWord(offDeviceSize)
				if !ok || size == 0 {
					w.AppendRow(table.Row{locator, "empty"})
					continue
				}

				if size == sizeUsesExtended {
					// Devices of 32 GB and up defer to the extended dword.
					ext, ok := s.FieldDWord(offExtendedSize)
					if !ok {
						log.Debug().
							Stringer("header", s.Header).
							Msg("size defers to an extended field the structure does not carry")
						w.AppendRow(table.Row{locator, "unknown"})
						continue
					}
					w.AppendRow(table.Row{locator, fmt.Sprintf("%d MB", ext)})
					continue
				}

				// Bit 15 selects kilobyte rather than megabyte units.
				unit := "MB"
				if size&0x8000 != 0 {
					unit = "KB"
					size &^= 0x8000
				}

				w.AppendRow(table.Row{locator, fmt.Sprintf("%d %s", size, unit)})
			}

			w.Render()
			return nil
		},
	}
}
