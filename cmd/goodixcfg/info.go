package main

import (
	"fmt"
	"os"

	"github.com/cupid-development/goodix-cfg-bin/internal/gtx8"
	"github.com/cupid-development/goodix-cfg-bin/internal/utils"
	"github.com/spf13/cobra"
)

var showRegs bool

var infoCmd = &cobra.Command{
	Use:   "info <cfg-bin-file>",
	Short: "Print a human-readable summary of a cfg group file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]

		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("reading cfg bin file: %w", err)
		}

		cfgBin, err := gtx8.Parse(data)
		if err != nil {
			return fmt.Errorf("decoding %s: %w", path, err)
		}

		fmt.Printf("File:     %s\n", path)
		fmt.Printf("Length:   %s bytes\n", utils.Number(int64(cfgBin.Head.BinLen)))
		fmt.Printf("Version:  %s\n", cfgBin.Head.Version())
		fmt.Printf("Checksum: 0x%02X\n", cfgBin.Head.Checksum)
		fmt.Printf("Packages: %d\n", cfgBin.Head.PkgNum)

		if len(cfgBin.Packages) == 0 {
			return nil
		}

		fmt.Println()
		fmt.Printf("%-4s %-15s %-9s %-10s %-9s %-9s\n",
			"#", "IC Type", "Cfg Type", "Sensor ID", "Pkg Len", "Cfg Len")
		for i := range cfgBin.Packages {
			p := &cfgBin.Packages[i]
			fmt.Printf("%-4d %-15s %-9d %-10d %-9d %-9d\n",
				i, p.ICType, p.CfgType, p.SensorID, p.Span, len(p.Config))
		}

		if !showRegs {
			return nil
		}

		for i := range cfgBin.Packages {
			p := &cfgBin.Packages[i]
			fmt.Printf("\nPackage %d registers:\n", i)
			for _, name := range gtx8.RegNames {
				fmt.Printf("  %-14s 0x%04X\n", name, p.Reg(name))
			}
		}

		return nil
	},
}

func init() {
	rootCmd.AddCommand(infoCmd)
	infoCmd.Flags().BoolVar(&showRegs, "regs", false, "also print per-package register addresses")
}
