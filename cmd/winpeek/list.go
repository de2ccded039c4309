package main

import (
	"fmt"
	"os"
	"runtime"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"winpeek/procscan"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Scan every process and print one line per pid",
	Long: `Scan every visible process and print pid, parent, name and command line.
Targets that refused some queries are marked with an asterisk. --where
filters with an expression over pid, ppid, name, cmdline, args and env,
for example: --where 'name == "nginx" && "MODE" in env'.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		var filter *procscan.Filter
		if where := viper.GetString("where"); where != "" {
			var err error
			filter, err = procscan.CompileFilter(where)
			if err != nil {
				return err
			}
		}

		records, err := procscan.Scan(cmd.Context(), newSource(), viper.GetInt64("workers"))
		if err != nil {
			return err
		}
		if filter != nil {
			records, err = filter.Apply(records)
			if err != nil {
				return err
			}
		}
		log.Debug(fmt.Sprintf("scan returned %d records", len(records)))

		if viper.GetBool("json") {
			return printJSON(records)
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "PID\tPPID\tNAME\tCMDLINE")
		for _, rec := range records {
			name := rec.Name
			if rec.Partial {
				name += "*"
			}
			fmt.Fprintf(w, "%d\t%d\t%s\t%s\n", rec.PID, rec.ParentPID, name, truncate(rec.Cmdline, 120))
		}
		return w.Flush()
	},
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-3]) + "..."
}

func init() {
	listCmd.Flags().Int64("workers", int64(runtime.NumCPU()), "Parallel queries during the scan")
	listCmd.Flags().String("where", "", "Filter expression applied to each record")

	viper.BindPFlag("workers", listCmd.Flags().Lookup("workers"))
	viper.BindPFlag("where", listCmd.Flags().Lookup("where"))

	rootCmd.AddCommand(listCmd)
}
