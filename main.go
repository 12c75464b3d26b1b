package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/urfave/cli"
)

// VERSION is populated via build flags when packaging binaries.
var VERSION = "SELFBUILD"

func main() {
	app := cli.NewApp()
	app.Name = "gaussprep"
	app.Usage = "Kitaev-Webb preparation of discrete periodic Gaussian states"
	app.Version = VERSION
	app.Action = func(*cli.Context) error {
		return runTUI()
	}
	app.Commands = []cli.Command{
		{
			Name:  "prepare",
			Usage: "build the preparation circuit headlessly and emit QASM",
			Flags: []cli.Flag{
				cli.Float64Flag{
					Name:  "mu",
					Value: 0,
					Usage: "mean of the Gaussian",
				},
				cli.Float64Flag{
					Name:  "sigma",
					Value: 1,
					Usage: "standard deviation of the Gaussian (must be positive)",
				},
				cli.IntFlag{
					Name:  "radius",
					Value: DefaultRadius,
					Usage: "truncation radius of the normalization sum",
				},
				cli.IntFlag{
					Name:  "precision,k",
					Value: 6,
					Usage: "bit budget of each angle approximation",
				},
				cli.IntFlag{
					Name:  "qubits,n",
					Value: 3,
					Usage: "register depth (number of recursion levels)",
				},
				cli.StringFlag{
					Name:  "output,o",
					Usage: "write QASM to this file instead of stdout",
				},
				cli.StringFlag{
					Name:  "chart",
					Usage: "write an HTML chart of target vs simulated distribution",
				},
				cli.BoolFlag{
					Name:  "simulate",
					Usage: "run the statevector simulation and log the distribution",
				},
				cli.BoolFlag{
					Name:  "measure",
					Usage: "append a measurement on every register qubit",
				},
			},
			Action: runPrepare,
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runPrepare(ctx *cli.Context) error {
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	params := GaussianParams{
		Mu:     ctx.Float64("mu"),
		Sigma:  ctx.Float64("sigma"),
		Radius: ctx.Int("radius"),
	}
	precision := ctx.Int("precision")
	qubits := ctx.Int("qubits")

	levels, err := PlanLevels(params, precision, qubits)
	if err != nil {
		return err
	}
	for _, lv := range levels {
		log.Info().
			Int("qubit", lv.Qubit).
			Float64("mu", lv.Mu).
			Float64("sigma", lv.Sigma).
			Float64("alpha", lv.Angle).
			Str("bits", bitString(lv.Approx.Bits)).
			Float64("reconstructed", lv.Approx.Value).
			Msg("planned level")
	}

	circuit := NewCircuit(qubits)
	if _, err := PrepareGaussianState(circuit, params, precision, qubits); err != nil {
		return err
	}
	if ctx.Bool("measure") {
		circuit.MeasureAll()
	}
	log.Info().
		Int("rotations", circuit.RotationGateCount()).
		Int("steps", circuit.MaxSteps).
		Msg("circuit emitted")

	qasm := circuit.ToQASM()
	if out := ctx.String("output"); out != "" {
		if err := os.WriteFile(out, []byte(qasm), 0644); err != nil {
			return err
		}
		log.Info().Str("path", out).Msg("wrote QASM")
	} else {
		fmt.Print(qasm)
	}

	if ctx.Bool("simulate") || ctx.String("chart") != "" {
		target := TargetDistribution(params, qubits)
		state := SimulateCircuit(circuit)
		simulated := state.BasisProbabilities()

		if ctx.Bool("simulate") {
			for i, prob := range simulated {
				log.Info().
					Str("state", fmt.Sprintf("|%0*b>", qubits, i)).
					Float64("target", target[i]).
					Float64("simulated", prob).
					Msg("basis state")
			}
			log.Info().
				Float64("norm", state.Norm()).
				Float64("kl_divergence", DistributionDivergence(target, simulated)).
				Msg("simulation complete")
		}

		if chartPath := ctx.String("chart"); chartPath != "" {
			if err := WriteDistributionChart(chartPath, params, target, simulated); err != nil {
				return err
			}
			log.Info().Str("path", chartPath).Msg("wrote chart")
		}
	}

	return nil
}
