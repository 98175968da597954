package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"
	"github.com/spf13/cobra"

	"github.com/comitanigiacomo/kanso-lifesync/internal/core/services"
)

func newSyncCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sync",
		Short: "Reload every collection and report what was fetched",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadApp(cmd.Context())
			if err != nil {
				return err
			}
			defer a.Close()

			results := a.store.ReloadAll(cmd.Context())
			printReload(cmd, results)

			failed := 0
			for _, r := range results {
				if r.Err != nil {
					failed++
				}
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d kinds failed to reload", failed, len(results))
			}
			return nil
		},
	}
}

func printReload(cmd *cobra.Command, results []services.ReloadResult) {
	ok := color.New(color.FgGreen)
	bad := color.New(color.FgRed)

	tbl := uitable.New()
	tbl.MaxColWidth = 60
	tbl.AddRow("KIND", "COUNT", "STATUS")
	for _, r := range results {
		status := ok.Sprint("ok")
		if r.Err != nil {
			status = bad.Sprint(r.Error)
		}
		tbl.AddRow(string(r.Kind), r.Count, status)
	}
	fmt.Fprintln(cmd.OutOrStdout(), tbl)
}
