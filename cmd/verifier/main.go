package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/yourorg/chesszk/pkg/backend"
)

// The verifier is the third party in the design: given only the proof, the
// committed bytes and the verifying key, it reaches its own verdict without
// ever running the prover.
func main() {
	var proofPath, publicPath, vkPath string
	var boardAware bool

	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	cmd := &cobra.Command{
		Use:   "verifier",
		Short: "Verify a Groth16 proof of chess move validation",
		RunE: func(cmd *cobra.Command, args []string) error {
			proofBytes, err := os.ReadFile(proofPath)
			if err != nil {
				return err
			}
			publicBytes, err := os.ReadFile(publicPath)
			if err != nil {
				return err
			}
			vkFile, err := os.Open(vkPath)
			if err != nil {
				return err
			}
			defer vkFile.Close()

			be := backend.NewGroth16Backend(boardAware)
			vk, err := be.ReadVerifyingKey(vkFile)
			if err != nil {
				return err
			}

			artifact := &backend.ProofArtifact{Proof: proofBytes, PublicValues: publicBytes}
			if err := be.Verify(artifact, vk); err != nil {
				return err
			}
			out, err := be.Decode(artifact)
			if err != nil {
				return err
			}

			fmt.Printf("proof verified: move %d -> %d (move #%d) valid=%t checksum=%d\n",
				out.From, out.To, out.MoveNumber, out.IsValid, out.Checksum)
			return nil
		},
	}

	cmd.Flags().StringVar(&proofPath, "proof", "", "chess_proof.bin")
	cmd.Flags().StringVar(&publicPath, "public", "", "chess_public.bin")
	cmd.Flags().StringVar(&vkPath, "vk", "", "chess_vk.bin")
	cmd.Flags().BoolVar(&boardAware, "board", false, "Expect a board-aware record")
	_ = cmd.MarkFlagRequired("proof")
	_ = cmd.MarkFlagRequired("public")
	_ = cmd.MarkFlagRequired("vk")

	if err := cmd.Execute(); err != nil {
		log.Fatal().Err(err).Msg("verification failed")
	}
}
