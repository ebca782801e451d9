package cli

import (
	"fmt"
	"io"
	"time"

	"github.com/doeshing/vox-go/internal/domain"
)

// chainResultJSON is the stable JSON shape handed to downstream consumers
// (e.g. the spoken-delivery layer).
type chainResultJSON struct {
	RunID          string           `json:"run_id"`
	OverallSuccess bool             `json:"overall_success"`
	HaltedEarly    bool             `json:"halted_early"`
	DurationMS     int64            `json:"duration_ms"`
	Results        []linkResultJSON `json:"results"`
}

type linkResultJSON struct {
	Command    string `json:"command"`
	Success    bool   `json:"success"`
	ReturnCode int    `json:"return_code"`
	Stdout     string `json:"stdout"`
	Stderr     string `json:"stderr"`
	DurationMS int64  `json:"duration_ms"`
}

func chainResultView(result domain.ChainResult) chainResultJSON {
	view := chainResultJSON{
		RunID:          result.RunID,
		OverallSuccess: result.OverallSuccess,
		HaltedEarly:    result.HaltedEarly,
		DurationMS:     result.Duration.Milliseconds(),
	}
	for _, r := range result.Results {
		view.Results = append(view.Results, linkResultJSON{
			Command:    r.Invocation.String(),
			Success:    r.Success,
			ReturnCode: r.ReturnCode,
			Stdout:     r.Stdout,
			Stderr:     r.Stderr,
			DurationMS: r.Duration.Milliseconds(),
		})
	}
	return view
}

func renderChainResult(w io.Writer, result domain.ChainResult) {
	for i, r := range result.Results {
		fmt.Fprintf(w, "[%d/%d] %s -> %s\n", i+1, len(result.Results), r.Invocation.String(), outcomeLabel(r))
		if r.Stdout != "" {
			fmt.Fprintln(w, indent(r.Stdout))
		}
		if !r.Success && r.Stderr != "" {
			fmt.Fprintln(w, indent(r.Stderr))
		}
	}
	if result.HaltedEarly {
		fmt.Fprintln(w, "Chain halted early.")
	}
	fmt.Fprintf(w, "Run %s finished in %s.\n", result.RunID, result.Duration.Round(time.Millisecond))
}

func renderVerdicts(w io.Writer, verdicts []domain.Verdict) {
	for _, v := range verdicts {
		if v.Accepted {
			fmt.Fprintf(w, "ok       %s\n", v.Invocation.String())
			continue
		}
		fmt.Fprintf(w, "rejected %s (%s: %s)\n", v.Invocation.String(), v.Reason, v.Detail)
	}
}

func outcomeLabel(r domain.ExecutionResult) string {
	switch {
	case r.Success:
		return "ok"
	case r.Rejected():
		return "rejected"
	case r.TimedOut():
		return "timed out"
	case r.ReturnCode == domain.CodeSpawnFailure:
		return "spawn failed"
	default:
		return fmt.Sprintf("exit %d", r.ReturnCode)
	}
}

func indent(s string) string {
	return "    " + s
}
