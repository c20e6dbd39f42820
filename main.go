package main

import "github.com/chrisdamba/heatwavesim/cmd"

func main() {
	cmd.Execute()
}
