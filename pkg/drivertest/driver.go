// Package drivertest implements the ProcessingTest driver: the central
// harness every processing test case runs through, mediating lifecycle
// transitions, logical-thread designation, and per-block setup.
package drivertest

import (
	"fmt"

	"github.com/clapval/clapval/pkg/clap"
	"github.com/clapval/clapval/pkg/plugin"
	"github.com/clapval/clapval/pkg/process"
	"github.com/clapval/clapval/pkg/result"
)

// Setup is invoked once before every block, the first included, to
// populate the input event queue and mutate input audio before process()
// is called.
// It must never be invoked concurrently with process().
type Setup func(data *process.Data, blockIndex int) error

// BlockResult captures what a single process() call produced, handed to
// the caller's inspection hook after every block.
type BlockResult struct {
	BlockIndex int
	Status     int32
}

// Inspect is an optional hook run after each block's process() call and
// before its output queue is cleared.
type Inspect func(data *process.Data, br BlockResult) error

// Run executes the full processing-test contract: activate, start
// processing, n_blocks of setup/sort/process/advance, stop processing,
// deactivate. Any error aborts immediately; the instance is left in
// whatever state the failing transition produced, for the caller to tear
// down.
func Run(inst *plugin.Instance, data *process.Data, blockSize, nBlocks int, sampleRate float64, setup Setup, inspect Inspect) error {
	if err := inst.Activate(sampleRate, uint32(blockSize), uint32(blockSize)); err != nil {
		return err
	}
	inst.Host.HandleCallbacksOnce()

	if err := inst.StartProcessing(); err != nil {
		return err
	}

	for k := 0; k < nBlocks; k++ {
		data.Input.Clear()
		if setup != nil {
			if err := setup(data, k); err != nil {
				return result.Wrap(result.KindInternal, fmt.Sprintf("setup failed at block %d", k), err)
			}
		}
		data.Input.Sort()

		status, err := inst.Process(data)
		if err != nil {
			return err
		}
		if status == clap.ProcessError {
			return result.Wrap(result.KindContract,
				fmt.Sprintf("process() returned Error at block %d (events=%d)", k, data.Input.Len()), nil)
		}

		if inspect != nil {
			if err := inspect(data, BlockResult{BlockIndex: k, Status: status}); err != nil {
				return err
			}
		}

		data.AdvanceTransport(blockSize)
		data.Output.Clear()
	}

	if err := inst.StopProcessing(); err != nil {
		return err
	}
	if err := inst.Deactivate(); err != nil {
		return err
	}
	inst.Host.HandleCallbacksOnce()
	return nil
}
