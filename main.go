package main

import "github.com/theirongolddev/saastrack/cmd"

func main() {
	cmd.Execute()
}
