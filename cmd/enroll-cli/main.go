package main

import "github.com/nfrund/enroll/cmd/enroll-cli/cmd"

func main() {
	cmd.Execute()
}
