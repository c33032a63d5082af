package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"perch/internal/catalog"
	"perch/internal/config"
	"perch/internal/filter"
	"perch/internal/media"
)

func newCatalogCommand(cctx *commandContext) *cobra.Command {
	catalogCmd := &cobra.Command{
		Use:   "catalog",
		Short: "Catalog inspection utilities",
	}
	catalogCmd.AddCommand(newCatalogListCommand(cctx))
	return catalogCmd
}

func newCatalogListCommand(cctx *commandContext) *cobra.Command {
	var (
		tags           []string
		anyTag         bool
		includeDeleted bool
	)

	cmd := &cobra.Command{
		Use:   "list CATALOG",
		Short: "List the records in a catalog library",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root, err := config.ExpandPath(args[0])
			if err != nil {
				return err
			}
			f, err := filter.New(tags, anyTag, "")
			if err != nil {
				return err
			}

			reader := catalog.Reader{Root: root, IncludeDeleted: includeDeleted}
			var rows [][]string
			err = reader.Enumerate(cmd.Context(), func(record *catalog.Record) error {
				item := media.Item{Path: record.Path, Origin: media.OriginCatalog, Record: record}
				if !f.Accepts(item) {
					return nil
				}
				rows = append(rows, []string{
					record.ID,
					record.FileName(),
					strings.Join(record.Tags, ", "),
					strconv.Itoa(record.Star),
					strconv.FormatInt(record.Size, 10),
				})
				return nil
			})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(rows) == 0 {
				fmt.Fprintln(out, "No records found")
				return nil
			}
			fmt.Fprintln(out, renderTable(
				[]string{"ID", "Name", "Tags", "Rating", "Size"},
				rows,
				[]columnAlignment{alignLeft, alignLeft, alignLeft, alignRight, alignRight},
			))
			return nil
		},
	}

	cmd.Flags().StringArrayVar(&tags, "tag", nil, "Require this tag (repeatable; all tags must match)")
	cmd.Flags().BoolVar(&anyTag, "any-tag", false, "Match records carrying any of the required tags")
	cmd.Flags().BoolVar(&includeDeleted, "include-deleted", false, "Include records flagged as deleted")

	return cmd
}
