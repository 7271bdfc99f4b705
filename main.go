package main

import "github.com/KaramelBytes/autoviz/cmd"

func main() {
	cmd.Execute()
}
