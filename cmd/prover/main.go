package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/yourorg/chesszk/pkg/backend"
	"github.com/yourorg/chesszk/pkg/config"
	"github.com/yourorg/chesszk/pkg/driver"
)

// loadKeys reloads a persisted trusted setup; any failure means a fresh
// setup runs instead.
func loadKeys(be *backend.Groth16Backend, pkPath, vkPath string) (backend.ProvingKey, backend.VerifyingKey, error) {
	pkFile, err := os.Open(pkPath)
	if err != nil {
		return nil, nil, err
	}
	defer pkFile.Close()
	vkFile, err := os.Open(vkPath)
	if err != nil {
		return nil, nil, err
	}
	defer vkFile.Close()

	pk, err := be.ReadProvingKey(pkFile)
	if err != nil {
		return nil, nil, err
	}
	vk, err := be.ReadVerifyingKey(vkFile)
	if err != nil {
		return nil, nil, err
	}
	return pk, vk, nil
}

func saveKey(key io.WriterTo, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if _, err := key.WriteTo(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func main() {
	var (
		from      uint8
		to        uint8
		moveNum   uint32
		boardPath string
		outDir    string
	)

	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	rootCmd := &cobra.Command{
		Use:   "prover",
		Short: "Generate a Groth16 proof of chess move validation",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := config.FromEnv()
			if cmd.Flags().Changed("from") {
				cfg.From = from
			}
			if cmd.Flags().Changed("to") {
				cfg.To = to
			}
			if cmd.Flags().Changed("move") {
				cfg.MoveNumber = moveNum
			}
			if cmd.Flags().Changed("outdir") {
				cfg.OutDir = outDir
			}
			if boardPath != "" {
				if err := cfg.LoadBoard(boardPath); err != nil {
					return err
				}
			}
			log.Info().Uint8("from", cfg.From).Uint8("to", cfg.To).
				Uint32("move", cfg.MoveNumber).Msg("proving chess move")

			be := backend.NewGroth16Backend(cfg.Board != nil)

			if err := os.MkdirAll(cfg.OutDir, 0o755); err != nil {
				return err
			}

			// -----------------------------------------------------------------
			// Trusted setup (cached per circuit under outdir)
			// -----------------------------------------------------------------
			prefix := "chess"
			if cfg.Board != nil {
				prefix = "chess_board"
			}
			pkPath := filepath.Join(cfg.OutDir, prefix+"_pk.bin")
			vkPath := filepath.Join(cfg.OutDir, prefix+"_vk.bin")

			opts := []driver.Option{driver.WithLogger(log)}
			keysLoaded := false
			if pk, vk, err := loadKeys(be, pkPath, vkPath); err == nil {
				opts = append(opts, driver.WithKeys(pk, vk))
				keysLoaded = true
				log.Info().Str("pk", pkPath).Msg("reusing cached setup keys")
			}

			d := driver.New(be, opts...)

			if err := d.Supply(cfg.MoveInput()); err != nil {
				return err
			}
			if err := d.Setup(); err != nil {
				return err
			}
			if !keysLoaded {
				if err := saveKey(d.ProvingKey(), pkPath); err != nil {
					return err
				}
				if err := saveKey(d.VerifyingKey(), vkPath); err != nil {
					return err
				}
			}
			if err := d.Prove(cmd.Context()); err != nil {
				return err
			}
			if err := d.Verify(); err != nil {
				return err
			}
			report, err := d.Report()
			if err != nil {
				return err
			}

			// -----------------------------------------------------------------
			// Outputs: proof, committed bytes, report
			// -----------------------------------------------------------------
			artifact := d.Artifact()
			if err := os.WriteFile(filepath.Join(cfg.OutDir, "chess_proof.bin"), artifact.Proof, 0o644); err != nil {
				return err
			}
			if err := os.WriteFile(filepath.Join(cfg.OutDir, "chess_public.bin"), artifact.PublicValues, 0o644); err != nil {
				return err
			}
			reportJSON, _ := json.MarshalIndent(report, "", "  ")
			if err := os.WriteFile(filepath.Join(cfg.OutDir, "chess_report.json"), reportJSON, 0o644); err != nil {
				return err
			}

			fmt.Printf("move %d -> %d (move #%d): valid=%t checksum=%d\n",
				report.Output.From, report.Output.To, report.Output.MoveNumber,
				report.Output.IsValid, report.Output.Checksum)
			return report.WriteFrame(os.Stdout)
		},
	}

	rootCmd.Flags().Uint8Var(&from, "from", config.DefaultFrom, "Origin square [0,64)")
	rootCmd.Flags().Uint8Var(&to, "to", config.DefaultTo, "Destination square [0,64)")
	rootCmd.Flags().Uint32Var(&moveNum, "move", config.DefaultMoveNumber, "Move number (>= 1)")
	rootCmd.Flags().StringVar(&boardPath, "board", "", "JSON board snapshot for board-aware proving")
	rootCmd.Flags().StringVar(&outDir, "outdir", config.DefaultOutDir, "Output directory")

	if err := rootCmd.Execute(); err != nil {
		log.Fatal().Err(err).Msg("proving run failed")
	}
}
