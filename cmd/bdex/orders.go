package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/urfave/cli/v2"
)

var listorders = cli.Command{
	Name:  "listorders",
	Usage: "list all orders known to the daemon",
	Action: func(ctx *cli.Context) error {
		var orders []json.RawMessage
		if err := callDaemon(http.MethodGet, "/v1/orders", nil, &orders); err != nil {
			return err
		}
		printRespJSON(orders)
		return nil
	},
}

var showorder = cli.Command{
	Name:      "showorder",
	Usage:     "show the order with the given p2wdb hash",
	ArgsUsage: "<hash>",
	Action: func(ctx *cli.Context) error {
		if ctx.NArg() != 1 {
			return cli.Exit("missing order hash", 1)
		}

		var order json.RawMessage
		path := fmt.Sprintf("/v1/order/%s", ctx.Args().First())
		if err := callDaemon(http.MethodGet, path, nil, &order); err != nil {
			return err
		}
		printRespJSON(order)
		return nil
	},
}

var takeorder = cli.Command{
	Name:      "takeorder",
	Usage:     "take the posted order with the given p2wdb hash",
	ArgsUsage: "<hash>",
	Action: func(ctx *cli.Context) error {
		if ctx.NArg() != 1 {
			return cli.Exit("missing order hash", 1)
		}

		body := map[string]string{"orderHash": ctx.Args().First()}
		var resp map[string]string
		if err := callDaemon(http.MethodPost, "/v1/order/take", body, &resp); err != nil {
			return err
		}
		printRespJSON(resp)
		return nil
	},
}

func callDaemon(method, path string, body, out interface{}) error {
	addr, err := getDaemonAddr()
	if err != nil {
		return err
	}

	var reqBody io.Reader
	if body != nil {
		content, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reqBody = bytes.NewReader(content)
	}

	req, err := http.NewRequest(method, addr+path, reqBody)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	content, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	if resp.StatusCode != http.StatusOK {
		var errResp struct {
			Error string `json:"error"`
		}
		if err := json.Unmarshal(content, &errResp); err == nil && errResp.Error != "" {
			return fmt.Errorf(errResp.Error)
		}
		return fmt.Errorf("daemon returned status %d", resp.StatusCode)
	}

	return json.Unmarshal(content, out)
}
