// Package printer formats signal-level trace lines for the bench
// tools. It is pure formatting: observability lives out here, never in
// the simulation core.
package printer

import (
	"fmt"

	"hamuart/common"
	"hamuart/core"
	"hamuart/hamming"
)

// FormatTickLine renders one clock cycle of input and output levels.
func FormatTickLine(tick uint64, in core.Inputs, out core.Outputs) string {
	return fmt.Sprintf("Tick:%d; RX:%s TX:%s; STATE:%s; DATA:%s SYN:%s VALID:%s BUSY:%s",
		tick,
		level(in.SerialRx),
		level(out.SerialTx),
		out.RxState,
		common.Bits(uint(out.DecodedData), hamming.DataBits),
		common.Bits(uint(out.Syndrome), 3),
		level(out.RxValid),
		level(out.TxBusy))
}

// FormatFrameLine summarises a completed frame from the cycle its
// valid pulse fired.
func FormatFrameLine(tick uint64, out core.Outputs) string {
	status := "ok"
	if out.Syndrome != 0 {
		status = fmt.Sprintf("corrected bit %d", out.Syndrome)
	}
	return fmt.Sprintf("Tick:%d; FRAME; DATA:%s SYN:%s; %s",
		tick,
		common.Bits(uint(out.DecodedData), hamming.DataBits),
		common.Bits(uint(out.Syndrome), 3),
		status)
}

// FormatCodeTable renders the full data-to-codeword table, one line
// per data value.
func FormatCodeTable() []string {
	table := hamming.CodeTable()
	lines := make([]string, len(table))
	for d, code := range table {
		lines[d] = fmt.Sprintf("%s -> %s",
			common.Bits(uint(d), hamming.DataBits),
			common.Bits(uint(code), hamming.CodeBits))
	}
	return lines
}

func level(b bool) string {
	if b {
		return "1"
	}
	return "0"
}
