package main

import (
	"github.com/urfave/cli/v2"
)

var configCmd = cli.Command{
	Name:  "config",
	Usage: "Print local configuration of the bdex CLI",
	Action: func(ctx *cli.Context) error {
		state, err := getState()
		if err != nil {
			return err
		}
		printRespJSON(state)
		return nil
	},
	Subcommands: []*cli.Command{
		{
			Name:  "init",
			Usage: "Set the address of the bdexd daemon to connect to",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:  "daemon_addr",
					Usage: "the address <host:port> of the bdexd HTTP interface",
					Value: "http://localhost:9945",
				},
			},
			Action: func(ctx *cli.Context) error {
				return setState(map[string]string{
					"daemon_addr": ctx.String("daemon_addr"),
				})
			},
		},
	},
}
