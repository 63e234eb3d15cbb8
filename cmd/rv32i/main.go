// Command rv32i is a thin demonstration driver: it loads a flat instruction
// image, configures a processor, runs it to completion, and prints final
// state. It is an external collaborator on top of the vm package, not part
// of the emulator core itself.
package main

import (
	"fmt"
	"os"
	"time"

	"rv32i-emu/config"
	"rv32i-emu/hostimage"
	"rv32i-emu/vm"

	"github.com/spf13/cobra"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "rv32i",
		Short: "RV32I + Zicsr interpreting emulator",
	}

	var entryPoint uint32
	var memorySize uint32
	var maxTicks uint64
	var tickIntervalMicros uint64
	var configPath string
	var showRegs bool

	runCmd := &cobra.Command{
		Use:   "run [image]",
		Short: "Load a flat big-endian instruction image and run it to a trap",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(configPath)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("entry") {
				cfg.Execution.EntryPoint = entryPoint
			}
			if cmd.Flags().Changed("memory-size") {
				cfg.Execution.MemorySize = memorySize
			}
			if cmd.Flags().Changed("max-ticks") {
				cfg.Execution.MaxTicks = maxTicks
			}
			if cmd.Flags().Changed("tick-interval-micros") {
				cfg.Execution.TickIntervalMicros = tickIntervalMicros
			}

			words, err := hostimage.LoadFlatImage(args[0])
			if err != nil {
				return fmt.Errorf("rv32i: %w", err)
			}

			mem := vm.NewByteMemory(cfg.Execution.MemorySize)
			proc := vm.NewProcessor(mem)
			proc.SetTickInterval(time.Duration(cfg.Execution.TickIntervalMicros) * time.Microsecond)

			if err := proc.Load(0, words); err != nil {
				return fmt.Errorf("rv32i: loading image: %w", err)
			}
			proc.SetPC(cfg.Execution.EntryPoint)

			trap := proc.RunUpTo(cfg.Execution.MaxTicks)
			if trap != nil {
				fmt.Printf("trapped: %s\n", trap)
			} else {
				fmt.Printf("stopped after %d ticks without a trap\n", cfg.Execution.MaxTicks)
			}
			fmt.Printf("pc = 0x%08x\n", proc.PC)

			if showRegs || cfg.Display.ShowCSRs {
				printState(proc, cfg)
			}
			return nil
		},
	}
	runCmd.Flags().Uint32Var(&entryPoint, "entry", 0, "Initial program counter")
	runCmd.Flags().Uint32Var(&memorySize, "memory-size", 0, "Backing memory size in bytes")
	runCmd.Flags().Uint64Var(&maxTicks, "max-ticks", 0, "Stop after this many ticks without a trap")
	runCmd.Flags().Uint64Var(&tickIntervalMicros, "tick-interval-micros", 0, "Pause between ticks, in microseconds")
	runCmd.Flags().StringVar(&configPath, "config", "", "Path to a config.toml (default: platform config dir)")
	runCmd.Flags().BoolVarP(&showRegs, "registers", "r", false, "Print all 32 registers after running")

	rootCmd.AddCommand(runCmd)
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		return config.Load()
	}
	return config.LoadFrom(path)
}

func printState(proc *vm.Processor, cfg *config.Config) {
	format := "x%-2d = 0x%08x\n"
	if cfg.Display.NumberFormat == "dec" {
		format = "x%-2d = %d\n"
	}
	snapshot := proc.Regs.Snapshot()
	for i, v := range snapshot {
		fmt.Printf(format, i, v)
	}
}
