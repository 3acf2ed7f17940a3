// Package main contains a command to extract and replay Denavit-Hartenberg tables
// from robot description files.
package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/edaniels/golog"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"

	"github.com/EdsterG/autodh/dh"
)

var logger = golog.NewDevelopmentLogger("autodh")

func main() {
	app := &cli.App{
		Name:            "autodh",
		Usage:           "extract Denavit-Hartenberg parameters from robot descriptions",
		HideHelpCommand: true,
		Commands: []*cli.Command{
			{
				Name:      "table",
				Usage:     "print the DH table extracted from a robot description",
				ArgsUsage: "<robot.json>",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "convention",
						Usage: "override the description's convention (standard or modified)",
					},
					&cli.Float64Flag{
						Name:  "scale",
						Value: 1,
						Usage: "scale factor applied to the linear parameters d and a",
					},
				},
				Action: tableAction,
			},
			{
				Name:      "fk",
				Usage:     "print the forward kinematics transform at the given joint values",
				ArgsUsage: "<robot.json> [joint values...]",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "convention",
						Usage: "override the description's convention (standard or modified)",
					},
				},
				Action: fkAction,
			},
		},
	}
	if err := app.Run(os.Args); err != nil {
		logger.Fatal(err)
	}
}

func loadDescription(c *cli.Context) (*dh.Description, error) {
	if c.Args().Len() < 1 {
		return nil, errors.New("missing robot description file argument")
	}
	desc, err := dh.ParseRobotJSONFile(c.Args().First())
	if err != nil {
		return nil, err
	}
	switch strings.ToLower(c.String("convention")) {
	case "":
	case "standard":
		desc.Convention = dh.Standard
	case "modified":
		desc.Convention = dh.Modified
	default:
		return nil, errors.Errorf("unsupported convention: %s", c.String("convention"))
	}
	return desc, nil
}

func tableAction(c *cli.Context) error {
	desc, err := loadDescription(c)
	if err != nil {
		return err
	}
	table, err := desc.Table()
	if err != nil {
		return err
	}
	logger.Debugw("extracted table", "robot", desc.Name, "convention", table.Convention().String(), "dof", table.NumDoF())
	fmt.Println(table.Render(c.Float64("scale")))
	return nil
}

func fkAction(c *cli.Context) error {
	desc, err := loadDescription(c)
	if err != nil {
		return err
	}
	table, err := desc.Table()
	if err != nil {
		return err
	}

	values := make([]float64, 0, c.Args().Len()-1)
	for _, arg := range c.Args().Slice()[1:] {
		v, err := strconv.ParseFloat(arg, 64)
		if err != nil {
			return errors.Wrapf(err, "invalid joint value %q", arg)
		}
		values = append(values, v)
	}

	pose, err := table.Forward(values)
	if err != nil {
		return err
	}
	for row := 0; row < 4; row++ {
		fmt.Printf("%10.5f %10.5f %10.5f %10.5f\n",
			pose.At(row, 0), pose.At(row, 1), pose.At(row, 2), pose.At(row, 3))
	}
	return nil
}
