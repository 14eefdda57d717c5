package main

import (
	"fmt"
	"io"

	"github.com/urfave/cli/v2"

	"scworld/blockdata"
)

func blockCommand() *cli.Command {
	return &cli.Command{
		Name:      "block",
		Usage:     "look blocks up in a BlocksData.xml table by name",
		ArgsUsage: "BLOCKSDATA.XML NAME",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "output-file",
				Aliases: []string{"o"},
				Usage:   "file to write; defaults to standard output",
			},
		},
		Action: func(c *cli.Context) error {
			if c.NArg() != 2 {
				return cli.Exit("usage: scworld block BLOCKSDATA.XML NAME", 1)
			}
			table, err := blockdata.Load(c.Args().Get(0))
			if err != nil {
				return err
			}

			out, closeOut, err := openOutput(c.String("output-file"))
			if err != nil {
				return err
			}
			for _, block := range table.Search(c.Args().Get(1)) {
				printBlock(out, block)
			}
			return closeOut()
		},
	}
}

func printBlock(out io.Writer, block blockdata.Block) {
	fmt.Fprintln(out, block.Name)
	fmt.Fprintf(out, "    id = %d\n", block.ID)
	fmt.Fprintf(out, "    power = quarry %g, shovel %g, hack %g, weapon %g, longevity %g\n",
		block.Power.Quarry, block.Power.Shovel, block.Power.Hack,
		block.Power.Weapon, block.Power.Longevity)
	fmt.Fprintf(out, "    resilience = %g\n", block.Resilience)
	fmt.Fprintf(out, "    blocks_fluid = %t\n", block.BlocksFluid)
	fmt.Fprintf(out, "    aimable = %t\n", block.Aimable)
	fmt.Fprintf(out, "    light_attenuation = %d\n", block.LightAttenuation)
	fmt.Fprintf(out, "    light_emission = %d\n", block.LightEmission)
	fmt.Fprintf(out, "    max_stacking = %d\n", block.MaxStacking)
	fmt.Fprintf(out, "    nutrition = %g\n", block.Nutrition)
}
