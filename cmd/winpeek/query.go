package main

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"winpeek/hexview"
	"winpeek/procinfo"
	"winpeek/wstr"
)

func parsePid(arg string) (int, error) {
	pid, err := strconv.Atoi(arg)
	if err != nil {
		return 0, fmt.Errorf("invalid pid %q", arg)
	}
	return pid, nil
}

func printJSON(v interface{}) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}

var pidsCmd = &cobra.Command{
	Use:   "pids",
	Short: "List every visible process id",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		pids, err := newSource().ListPids()
		if err != nil {
			return err
		}
		if viper.GetBool("json") {
			return printJSON(pids)
		}
		for _, pid := range pids {
			fmt.Println(pid)
		}
		return nil
	},
}

var existsCmd = &cobra.Command{
	Use:   "exists <pid>",
	Short: "Report whether a pid refers to a running process",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		pid, err := parsePid(args[0])
		if err != nil {
			return err
		}
		running, err := newSource().PidExists(pid)
		if err != nil {
			return err
		}
		if viper.GetBool("json") {
			return printJSON(map[string]interface{}{"pid": pid, "running": running})
		}
		fmt.Println(running)
		return nil
	},
}

var cmdlineCmd = &cobra.Command{
	Use:   "cmdline <pid>",
	Short: "Print the target's command line",
	Long: `Print the target's command line. The default source is the live process
control block, which the target can rewrite; --at-creation asks the kernel
for the value recorded when the process started.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		pid, err := parsePid(args[0])
		if err != nil {
			return err
		}
		strategy := procinfo.CmdlineFromPeb
		if atCreation, _ := cmd.Flags().GetBool("at-creation"); atCreation {
			strategy = procinfo.CmdlineFromKernel
		}
		log.Debug(fmt.Sprintf("cmdline pid=%d strategy=%s", pid, strategy))

		argv, err := newSource().CommandLine(pid, strategy)
		if err != nil {
			return err
		}
		if viper.GetBool("json") {
			return printJSON(argv)
		}
		fmt.Println(strings.Join(argv, " "))
		return nil
	},
}

var cwdCmd = &cobra.Command{
	Use:   "cwd <pid>",
	Short: "Print the target's working directory",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		pid, err := parsePid(args[0])
		if err != nil {
			return err
		}
		cwd, err := newSource().Cwd(pid)
		if err != nil {
			return err
		}
		if viper.GetBool("json") {
			return printJSON(map[string]interface{}{"pid": pid, "cwd": cwd})
		}
		fmt.Println(cwd)
		return nil
	},
}

var envCmd = &cobra.Command{
	Use:   "env <pid>",
	Short: "Print the target's environment, or hex-dump the raw block",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		pid, err := parsePid(args[0])
		if err != nil {
			return err
		}
		src := newSource()

		if hex, _ := cmd.Flags().GetBool("hex"); hex {
			block, err := src.EnvironBlock(pid)
			if err != nil {
				return err
			}
			opts := hexview.DefaultOptions()
			opts.BaseAddr = block.Addr()
			fmt.Print(hexview.Dump(block.Data(), opts))
			return nil
		}

		env, err := src.Environ(pid)
		if err != nil {
			return err
		}
		if viper.GetBool("json") {
			return printJSON(wstr.ParseMap(env))
		}
		for _, entry := range env {
			fmt.Println(entry)
		}
		return nil
	},
}

func init() {
	cmdlineCmd.Flags().Bool("at-creation", false, "Read the creation-time command line instead of the live one")
	envCmd.Flags().Bool("hex", false, "Dump the raw environment block as hex")

	rootCmd.AddCommand(pidsCmd, existsCmd, cmdlineCmd, cwdCmd, envCmd)
}
