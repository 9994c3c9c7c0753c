package driver

import (
	"fmt"
	"io"

	"github.com/ethereum/go-ethereum/common"

	"github.com/yourorg/chesszk/pkg/chess"
)

// Report is the structured result handed to the caller once a proof has
// been generated, verified and decoded. Timings are measurements, not
// correctness signals.
type Report struct {
	ProofSizeBytes int              `json:"proofSizeBytes"`
	ProofTimeMS    int64            `json:"proofTimeMs"`
	Verified       bool             `json:"verified"`
	VerifyTimeMS   int64            `json:"verifyTimeMs"`
	Output         chess.MoveOutput `json:"output"`
	ArtifactID     common.Hash      `json:"artifactId"`
}

// WriteFrame emits the line-based framing consumed by wrapping processes,
// one KEY:VALUE pair per line.
func (r *Report) WriteFrame(w io.Writer) error {
	_, err := fmt.Fprintf(w,
		"PROOF_RESULT:SUCCESS\nPROOF_SIZE:%d\nPROOF_TIME:%d\nPROOF_VERIFIED:%t\nVERIFY_TIME:%d\n",
		r.ProofSizeBytes, r.ProofTimeMS, r.Output.IsValid, r.VerifyTimeMS)
	return err
}
