package cmd

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
	"massnet.org/shasum/errors"
	"massnet.org/shasum/logging"
	"massnet.org/shasum/store"
)

var flagQuiet bool

// recordCmd represents the record command
var recordCmd = &cobra.Command{
	Use:   "record <manifest_dir> <file>...",
	Short: "Hash files and record their digests in a manifest",
	Args: func(cmd *cobra.Command, args []string) error {
		if err := cobra.MinimumNArgs(2)(cmd, args); err != nil {
			logging.CPrint(logging.ERROR, "wrong argument count", logging.LogFormat{"count": len(args)})
			return err
		}
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		dir, files := args[0], args[1:]
		logging.CPrint(logging.DEBUG, "record called", logging.LogFormat{"manifest": dir, "files": len(files)})

		paths := make([]string, len(files))
		for i, file := range files {
			abs, err := filepath.Abs(file)
			if err != nil {
				return errors.Wrapf(errors.ErrInvalidArgument, err, "resolve %s", file)
			}
			paths[i] = abs
		}

		m, err := store.Open(cfg.Store.DBType, dir, true)
		if err != nil {
			return err
		}
		defer m.Close()

		h, err := startHasher()
		if err != nil {
			return err
		}
		defer h.Stop()

		results, err := h.HashFiles(context.Background(), paths)
		if err != nil {
			return err
		}
		records := make(map[string]store.Record, len(results))
		for _, res := range results {
			if res.Err == nil {
				records[res.Path] = store.Record{Size: res.Size, ModTime: res.ModTime, Digest: res.Digest}
			}
		}
		if err = m.PutAll(records); err != nil {
			return err
		}

		failed, first := printResults(cmd.OutOrStdout(), cmd.OutOrStderr(), results)
		logging.CPrint(logging.INFO, "files recorded", logging.LogFormat{"manifest": dir, "recorded": len(records), "failed": failed})
		if failed > 0 {
			return errors.Errorf(errors.CodeOf(first), "%d of %d files could not be recorded", failed, len(results))
		}
		return nil
	},
}

// checkCmd represents the check command
var checkCmd = &cobra.Command{
	Use:   "check <manifest_dir>",
	Short: "Rehash every file recorded in a manifest and compare",
	Args: func(cmd *cobra.Command, args []string) error {
		if err := cobra.ExactArgs(1)(cmd, args); err != nil {
			logging.CPrint(logging.ERROR, "wrong argument count", logging.LogFormat{"count": len(args)})
			return err
		}
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		dir := args[0]
		logging.CPrint(logging.DEBUG, "check called", logging.LogFormat{"manifest": dir})

		m, err := store.Open(cfg.Store.DBType, dir, false)
		if err != nil {
			return err
		}
		defer m.Close()

		var paths []string
		recorded := make(map[string]store.Record)
		err = m.ForEach(func(path string, rec store.Record) error {
			paths = append(paths, path)
			recorded[path] = rec
			return nil
		})
		if err != nil {
			return err
		}

		h, err := startHasher()
		if err != nil {
			return err
		}
		defer h.Stop()

		results, err := h.HashFiles(context.Background(), paths)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		var mismatched, missing, unreadable int
		for _, res := range results {
			switch {
			case errors.Is(res.Err, errors.ErrFileNotFound):
				fmt.Fprintf(out, "%s: MISSING\n", res.Path)
				missing++
			case res.Err != nil:
				fmt.Fprintf(out, "%s: FAILED open or read\n", res.Path)
				unreadable++
			case res.Digest != recorded[res.Path].Digest:
				fmt.Fprintf(out, "%s: FAILED\n", res.Path)
				mismatched++
			default:
				if !flagQuiet {
					fmt.Fprintf(out, "%s: OK\n", res.Path)
				}
			}
		}

		logging.CPrint(logging.INFO, "manifest checked", logging.LogFormat{
			"manifest":   dir,
			"files":      len(results),
			"mismatched": mismatched,
			"missing":    missing,
			"unreadable": unreadable,
		})
		if missing > 0 {
			fmt.Fprintf(cmd.OutOrStderr(), "WARNING: %d listed files could not be found\n", missing)
		}
		if unreadable > 0 {
			fmt.Fprintf(cmd.OutOrStderr(), "WARNING: %d listed files could not be read\n", unreadable)
		}
		if mismatched > 0 {
			fmt.Fprintf(cmd.OutOrStderr(), "WARNING: %d computed checksums did NOT match\n", mismatched)
		}
		if n := mismatched + missing + unreadable; n > 0 {
			return errors.Errorf(errors.ErrDigestMismatch, "%d of %d files failed the check", n, len(results))
		}
		return nil
	},
}
