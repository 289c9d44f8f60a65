// Package nepfolio tracks an investor's NEPSE share holdings from a
// chronological stream of buy and sell transactions.
//
// The core is a pure accounting engine:
//   - Fee schedule: the tiered NEPSE broker commission, the SEBON regulatory
//     fee, and the flat DP charge, computed exactly on the trade notional.
//   - Capital-gains tax: 7.5% short-term, 5% long-term, on positive profit only.
//   - Validation and enrichment: a proposed transaction is checked against the
//     current position (no oversell, no sell without a prior buy) and turned
//     into an immutable record carrying its full fee and tax breakdown.
//   - Holdings: a running weighted-average-cost fold of the history into the
//     current position per company.
//   - Realized P&L: an independent FIFO lot-matching replay of the same
//     history. The two cost models intentionally diverge: position valuation
//     uses the pooled average, tax-style realized gains use lots.
//
// Every aggregate is a total function of the full ordered history and is
// recomputed from scratch whenever the history changes. Persistence (JSONL
// and SQLite), quote feeds, and report rendering live around this core and
// never feed back into it.
//
// This package serves as the foundational logic for the `npf` command-line
// tool.
package nepfolio
