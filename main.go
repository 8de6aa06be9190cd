package main

import "worklog/cmd"

func main() {
	cmd.Execute()
}
