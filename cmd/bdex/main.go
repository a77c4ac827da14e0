package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/urfave/cli/v2"
)

var (
	bdexDataDir = btcutil.AppDataDir("bdex-operator", false)
	statePath   = path.Join(bdexDataDir, "state.json")
)

func main() {
	app := cli.NewApp()

	app.Version = "0.1.0"
	app.Name = "bdex operator CLI"
	app.Usage = "Command line interface for bdexd daemon operators"
	app.Commands = append(
		app.Commands,
		&configCmd,
		&listorders,
		&showorder,
		&takeorder,
	)

	err := app.Run(os.Args)
	if err != nil {
		fatal(err)
	}
}

func getState() (map[string]string, error) {
	data := map[string]string{}

	file, err := os.ReadFile(statePath)
	if err != nil {
		return nil, errors.New("get config state error: try 'config init'")
	}
	if err := json.Unmarshal(file, &data); err != nil {
		return nil, err
	}

	return data, nil
}

func setState(data map[string]string) error {
	if _, err := os.Stat(bdexDataDir); os.IsNotExist(err) {
		if err := os.Mkdir(bdexDataDir, os.ModeDir|0755); err != nil {
			return err
		}
	}

	currentData, _ := getState()
	if currentData == nil {
		currentData = map[string]string{}
	}
	for key, value := range data {
		currentData[key] = value
	}

	content, err := json.MarshalIndent(currentData, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(statePath, content, 0644)
}

func getDaemonAddr() (string, error) {
	state, err := getState()
	if err != nil {
		return "", err
	}
	addr, ok := state["daemon_addr"]
	if !ok || addr == "" {
		return "", errors.New("missing daemon address: try 'config init'")
	}
	return addr, nil
}

func printRespJSON(v interface{}) {
	content, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fmt.Println("unable to decode response")
		return
	}
	fmt.Println(string(content))
}

func fatal(err error) {
	fmt.Fprintf(os.Stderr, "[bdex] %v\n", err)
	os.Exit(1)
}
