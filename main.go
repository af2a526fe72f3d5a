package main

import "github.com/Anastasialos/osmoh/cmd"

func main() {
	cmd.Execute()
}
