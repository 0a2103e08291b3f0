// rigctl is a command-line companion to the entity editor: it inspects
// .entdef files, audits definition directories for broken references and
// cycles, and emits the payload JSON schema for external validators.
package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/phanxgames/rigging"
)

var scanDirs []string

var rootCmd = &cobra.Command{
	Use:           "rigctl",
	Short:         "Inspect and audit entity definition files",
	SilenceUsage:  true,
	SilenceErrors: true,
}

var inspectCmd = &cobra.Command{
	Use:   "inspect <file.entdef>",
	Short: "Decode a definition file and print a summary",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		def, err := rigging.LoadDefinition(args[0])
		if err != nil {
			return err
		}
		fmt.Printf("name:     %s\n", def.Name)
		fmt.Printf("version:  %s\n", def.Version)
		fmt.Printf("pivot:    (%g, %g)\n", def.Pivot.X, def.Pivot.Y)
		fmt.Printf("parts:    %d\n", len(def.Parts))
		for _, p := range def.SortedParts() {
			switch p.Kind {
			case rigging.PartSprite:
				fmt.Printf("  [z=%3d] sprite    %-20s texture=%s size=%gx%g\n",
					p.ZOrder, p.Name, p.TextureID, p.Size.X, p.Size.Y)
			case rigging.PartReference:
				fmt.Printf("  [z=%3d] reference %-20s -> %s size=%gx%g\n",
					p.ZOrder, p.Name, p.EntityRef, p.Size.X, p.Size.Y)
			}
		}
		fmt.Printf("hitboxes: %d\n", len(def.Hitboxes))
		if len(def.Tags) > 0 {
			fmt.Printf("tags:     %v\n", def.Tags)
		}
		return nil
	},
}

var boundsCmd = &cobra.Command{
	Use:   "bounds <file.entdef>",
	Short: "Print the visible-content bounding box of a definition",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		def, err := rigging.LoadDefinition(args[0])
		if err != nil {
			return err
		}
		b := rigging.Bounds(def)
		fmt.Printf("%g %g %g %g\n", b.X, b.Y, b.Width, b.Height)
		return nil
	},
}

var depsCmd = &cobra.Command{
	Use:   "deps <name>",
	Short: "List every definition the named one transitively references",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cache := newCache()
		if _, ok := cache.Get(args[0]); !ok {
			return fmt.Errorf("cannot resolve %q in %v", args[0], scanDirs)
		}
		deps := cache.DependenciesOf(args[0], nil)
		names := make([]string, 0, len(deps))
		for name := range deps {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			fmt.Println(name)
		}
		return nil
	},
}

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Audit the scan directories for broken references and cycles",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cache := newCache()
		problems := 0
		for _, name := range cache.Index().Names() {
			def, ok := cache.Get(name)
			if !ok {
				log.Error("definition failed to load", "name", name)
				problems++
				continue
			}
			for _, p := range def.ReferenceParts() {
				if p.EntityRef == "" {
					continue
				}
				if _, ok := cache.Get(p.EntityRef); !ok {
					log.Error("broken reference", "in", name, "part", p.Name, "ref", p.EntityRef)
					problems++
				}
			}
			if cache.DependenciesOf(name, nil)[name] {
				log.Error("reference cycle", "name", name)
				problems++
			}
		}
		if problems > 0 {
			return fmt.Errorf("%d problem(s) found", problems)
		}
		log.Info("no problems found", "definitions", len(cache.Index().Names()))
		return nil
	},
}

var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Print the JSON schema of the .entdef payload",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := json.MarshalIndent(rigging.Schema(), "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(data))
		return nil
	},
}

func newCache() *rigging.Cache {
	dirs := scanDirs
	if len(dirs) == 0 {
		dirs = []string{"."}
	}
	return rigging.NewCache(rigging.NewIndex(dirs...), nil)
}

func main() {
	rootCmd.PersistentFlags().StringArrayVarP(&scanDirs, "dir", "d", nil,
		"definition directory to scan (repeatable, default .)")
	rootCmd.AddCommand(inspectCmd, boundsCmd, depsCmd, checkCmd, schemaCmd)

	if err := rootCmd.Execute(); err != nil {
		var ferr *rigging.FormatError
		if errors.As(err, &ferr) {
			log.Error("malformed definition", "path", ferr.Path, "reason", ferr.Reason)
		} else {
			log.Error(err.Error())
		}
		os.Exit(1)
	}
}
