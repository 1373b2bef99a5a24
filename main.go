package main

import "github.com/Yates-Labs/recast/cmd"

func main() {
	cmd.Execute()
}
