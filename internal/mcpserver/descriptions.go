package mcpserver

// Tool descriptions with interpretation guidance for LLMs.
// Each description explains what the tool does, when to use it,
// and how to interpret results.

func describeAnalyzeSource() string {
	return `Runs the full proactive analysis pipeline on inline source code: pattern scan, AST traversal, data-dependency tracking, and complexity aggregation.

USE WHEN:
- Reviewing a code snippet before it lands
- Checking generated or pasted code for latent bugs
- Explaining why a piece of code is risky

INTERPRETING RESULTS:
- issues: each has severity (critical > high > medium > low) and confidence 0.0-1.0
- Critical issues (infinite_loop, missing_loop_increment) mean the code likely hangs at runtime
- assignment_in_condition at confidence 0.95 is almost always a typo for ==
- code_flow: tagged graph of functions, loops, conditions, assignments, calls
- data_dependencies: per-variable definition, use and mutation lines; potential_issues flags shadowing
- complexity: structural complexity plus severity-weighted issue penalty
- priority: overall urgency (critical when any critical issue exists)

Languages with full AST support: javascript, typescript, javascriptreact, typescriptreact.
Python and Ruby fall back to a line-based pseudo-AST with reduced detection.`
}

func describeAnalyzeFiles() string {
	return `Analyzes source files on disk with the full pipeline and returns per-file results plus a run summary.

USE WHEN:
- Auditing a directory or project for latent bugs
- Prioritizing files for review (summary includes mean/p90/max complexity)
- Gating changes on critical issues

INTERPRETING RESULTS:
- files: per-file issues, code flow, data dependencies, complexity, priority
- summary.by_severity: issue counts across the run
- summary complexity stats identify outlier files worth attention first

Unsupported and excluded files (minified bundles, vendored dirs) are skipped automatically.`
}

func describeScanPatterns() string {
	return `Scans source text for risky patterns only, without parsing: infinite-loop idioms, eval usage, innerHTML assignment, hardcoded secrets, sync filesystem calls, and similar.

USE WHEN:
- A fast check is enough and full AST analysis is overkill
- The source is a fragment that would not parse on its own

INTERPRETING RESULTS:
- Pure text matching: line/column point at the match start
- Confidence reflects how often the pattern is a real problem
- quick_fix, when present, is a drop-in replacement suggestion`
}
