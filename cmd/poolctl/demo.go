package main

import (
	"github.com/spf13/cobra"

	"github.com/poolkit/poolkit/pool"
)

func init() {
	rootCmd.AddCommand(newDemoCmd())
}

func newDemoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "demo",
		Short: "Run the scripted allocation exercise",
		Long: `The demo command runs a fixed sequence of acquire and release calls
against a fresh pool: mixed-size allocations, a write through a returned
block, reuse of a freed gap, the whole-region allocation after everything
is freed, and an allocation that is expected to fail while the region is
taken.

Example:
  poolctl demo
  poolctl demo --verbose`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDemo()
		},
	}
}

func runDemo() error {
	p, err := pool.New()
	if err != nil {
		return err
	}
	defer p.Close() //nolint:errcheck

	printInfo("=== Memory Pool Exercise ===\n")

	// 1. Allocate blocks of different sizes.
	a, err := p.Acquire(128)
	printInfo("Acquiring 128 bytes... %s\n", outcome(err))

	b, err := p.Acquire(1024)
	printInfo("Acquiring 1024 bytes... %s\n", outcome(err))

	c, err := p.Acquire(4096)
	printInfo("Acquiring 4096 bytes... %s\n", outcome(err))

	// 2. Use acquired memory.
	if a != nil {
		a[0] = 42
		printInfo("First byte of 'a' set to %d\n", a[0])
	}

	// 3. Free one block and reallocate into the gap.
	printInfo("Releasing the 1024-byte block...\n")
	p.Release(b)

	b, err = p.Acquire(512)
	printInfo("Acquiring 512 bytes... %s\n", outcome(err))

	// 4. Free all remaining allocations.
	printInfo("Releasing all blocks...\n")
	p.Release(a)
	p.Release(b)
	p.Release(c)

	// 5. Take the whole region once nothing is live.
	printInfo("Acquiring the whole region (%d bytes)...\n", p.Capacity())
	big, err := p.Acquire(p.Capacity())
	printInfo("Whole-region acquire %s\n", outcome(err))

	// 6. A partitioned request must fail while the region is taken.
	failBlock, err := p.Acquire(512)
	printInfo("Acquiring 512 bytes while the region is taken... %s (expected: Failed)\n",
		outcome(err))
	printVerbose("  cause: %v\n", err)
	if failBlock != nil {
		p.Release(failBlock)
	}

	// 7. Release the region.
	if big != nil {
		p.Release(big)
		printInfo("Released the whole region.\n")
	}

	if err := p.Validate(); err != nil {
		return err
	}
	printInfo("=== Exercise Complete ===\n")

	if jsonOut {
		return printJSON(p.Stats())
	}
	return nil
}

func outcome(err error) string {
	if err != nil {
		return "Failed"
	}
	return "Success"
}
